package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OnboardingRepository interface {
	Create(ctx context.Context, record *model.ClientOnboarding) error
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.ClientOnboarding, error)
	List(ctx context.Context, orgID uuid.UUID) ([]model.ClientOnboarding, error)
	Update(ctx context.Context, record *model.ClientOnboarding) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

type onboardingRepository struct {
	db *gorm.DB
}

func NewOnboardingRepository(db *gorm.DB) OnboardingRepository {
	return &onboardingRepository{db: db}
}

func (r *onboardingRepository) Create(ctx context.Context, record *model.ClientOnboarding) error {
	return GetDB(ctx, r.db).Create(record).Error
}

func (r *onboardingRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.ClientOnboarding, error) {
	var record model.ClientOnboarding
	if err := GetDB(ctx, r.db).First(&record, "id = ? AND org_id = ?", id, orgID).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *onboardingRepository) List(ctx context.Context, orgID uuid.UUID) ([]model.ClientOnboarding, error) {
	var records []model.ClientOnboarding
	if err := GetDB(ctx, r.db).Where("org_id = ?", orgID).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *onboardingRepository) Update(ctx context.Context, record *model.ClientOnboarding) error {
	return GetDB(ctx, r.db).Save(record).Error
}

func (r *onboardingRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("org_id = ?", orgID).Delete(&model.ClientOnboarding{}, "id = ?", id).Error
}
