package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApprovalRepository interface {
	Create(ctx context.Context, approval *model.Approval) error
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Approval, error)
	// FindByIDForUpdate locks the row so concurrent decisions serialize.
	FindByIDForUpdate(ctx context.Context, orgID, id uuid.UUID) (*model.Approval, error)
	// FindByItemForUpdate locks the existing row for the item, if any, so a
	// concurrent duplicate request serializes behind it.
	FindByItemForUpdate(ctx context.Context, orgID uuid.UUID, itemType string, itemID uuid.UUID) (*model.Approval, error)
	List(ctx context.Context, orgID uuid.UUID, status string, page, limit int) ([]model.Approval, int64, error)
	Update(ctx context.Context, approval *model.Approval) error
	DeleteAllForOrg(ctx context.Context, orgID uuid.UUID) (int64, error)
}

type approvalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) Create(ctx context.Context, approval *model.Approval) error {
	return GetDB(ctx, r.db).Create(approval).Error
}

func (r *approvalRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Approval, error) {
	var approval model.Approval
	if err := GetDB(ctx, r.db).
		Preload("Requester").Preload("Decider").
		First(&approval, "id = ? AND org_id = ?", id, orgID).Error; err != nil {
		return nil, err
	}
	return &approval, nil
}

func (r *approvalRepository) FindByIDForUpdate(ctx context.Context, orgID, id uuid.UUID) (*model.Approval, error) {
	var approval model.Approval
	err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&approval, "id = ? AND org_id = ?", id, orgID).Error
	if err != nil {
		return nil, err
	}
	return &approval, nil
}

func (r *approvalRepository) FindByItemForUpdate(ctx context.Context, orgID uuid.UUID, itemType string, itemID uuid.UUID) (*model.Approval, error) {
	var approval model.Approval
	err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&approval, "org_id = ? AND item_type = ? AND item_id = ?", orgID, itemType, itemID).Error
	if err != nil {
		return nil, err
	}
	return &approval, nil
}

func (r *approvalRepository) List(ctx context.Context, orgID uuid.UUID, status string, page, limit int) ([]model.Approval, int64, error) {
	var approvals []model.Approval
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.Approval{}).Where("org_id = ?", orgID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetchQuery := db.Preload("Requester").Preload("Decider").Where("org_id = ?", orgID)
	if status != "" {
		fetchQuery = fetchQuery.Where("status = ?", status)
	}
	if err := fetchQuery.Order("created_at DESC").Offset(offset).Limit(limit).Find(&approvals).Error; err != nil {
		return nil, 0, err
	}

	return approvals, total, nil
}

func (r *approvalRepository) Update(ctx context.Context, approval *model.Approval) error {
	return GetDB(ctx, r.db).Save(approval).Error
}

func (r *approvalRepository) DeleteAllForOrg(ctx context.Context, orgID uuid.UUID) (int64, error) {
	res := GetDB(ctx, r.db).Where("org_id = ?", orgID).Delete(&model.Approval{})
	return res.RowsAffected, res.Error
}
