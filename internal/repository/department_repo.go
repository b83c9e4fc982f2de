package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepartmentRepository interface {
	Create(ctx context.Context, dept *model.Department) error
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Department, error)
	List(ctx context.Context, orgID uuid.UUID) ([]model.Department, error)
	Count(ctx context.Context, orgID uuid.UUID) (int64, error)
	Update(ctx context.Context, dept *model.Department) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, dept *model.Department) error {
	return GetDB(ctx, r.db).Create(dept).Error
}

func (r *departmentRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Department, error) {
	var dept model.Department
	if err := GetDB(ctx, r.db).First(&dept, "id = ? AND org_id = ?", id, orgID).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context, orgID uuid.UUID) ([]model.Department, error) {
	var depts []model.Department
	if err := GetDB(ctx, r.db).Where("org_id = ?", orgID).Order("name").Find(&depts).Error; err != nil {
		return nil, err
	}
	return depts, nil
}

func (r *departmentRepository) Count(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Department{}).Where("org_id = ?", orgID).Count(&count).Error
	return count, err
}

func (r *departmentRepository) Update(ctx context.Context, dept *model.Department) error {
	return GetDB(ctx, r.db).Save(dept).Error
}

func (r *departmentRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("org_id = ?", orgID).Delete(&model.Department{}, "id = ?", id).Error
}
