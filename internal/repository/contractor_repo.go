package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PersonFilter narrows contractor and employee listings.
type PersonFilter struct {
	Status     string
	Department string
}

type ContractorRepository interface {
	Create(ctx context.Context, contractor *model.Contractor) error
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Contractor, error)
	List(ctx context.Context, orgID uuid.UUID, filter PersonFilter) ([]model.Contractor, error)
	ListActive(ctx context.Context, orgID uuid.UUID) ([]model.Contractor, error)
	Update(ctx context.Context, contractor *model.Contractor) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

type contractorRepository struct {
	db *gorm.DB
}

func NewContractorRepository(db *gorm.DB) ContractorRepository {
	return &contractorRepository{db: db}
}

func (r *contractorRepository) Create(ctx context.Context, contractor *model.Contractor) error {
	return GetDB(ctx, r.db).Create(contractor).Error
}

func (r *contractorRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Contractor, error) {
	var contractor model.Contractor
	if err := GetDB(ctx, r.db).First(&contractor, "id = ? AND org_id = ?", id, orgID).Error; err != nil {
		return nil, err
	}
	return &contractor, nil
}

func (r *contractorRepository) List(ctx context.Context, orgID uuid.UUID, filter PersonFilter) ([]model.Contractor, error) {
	query := GetDB(ctx, r.db).Where("org_id = ?", orgID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	var contractors []model.Contractor
	if err := query.Order("created_at DESC").Find(&contractors).Error; err != nil {
		return nil, err
	}
	return contractors, nil
}

func (r *contractorRepository) ListActive(ctx context.Context, orgID uuid.UUID) ([]model.Contractor, error) {
	var contractors []model.Contractor
	if err := GetDB(ctx, r.db).
		Where("org_id = ? AND status = ?", orgID, model.StaffStatusActive).
		Find(&contractors).Error; err != nil {
		return nil, err
	}
	return contractors, nil
}

func (r *contractorRepository) Update(ctx context.Context, contractor *model.Contractor) error {
	return GetDB(ctx, r.db).Save(contractor).Error
}

func (r *contractorRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("org_id = ?", orgID).Delete(&model.Contractor{}, "id = ?", id).Error
}
