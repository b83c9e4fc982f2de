package service

import (
	"context"
	"errors"

	"backoffice/internal/apperror"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateDepartmentDTO struct {
	Name string `json:"name" binding:"required"`
}

// --- Interface ---

// DepartmentService manages the org's service lines. A fresh org gets the
// default set seeded on first access.
type DepartmentService interface {
	EnsureDefaults(ctx context.Context, actor Actor) error
	Create(ctx context.Context, actor Actor, req CreateDepartmentDTO) (*model.Department, error)
	List(ctx context.Context, actor Actor) ([]model.Department, error)
	Delete(ctx context.Context, actor Actor, deptID string) error
}

type departmentService struct {
	departmentRepo repository.DepartmentRepository
	txManager      repository.TransactionManager
}

func NewDepartmentService(departmentRepo repository.DepartmentRepository, txManager repository.TransactionManager) DepartmentService {
	return &departmentService{departmentRepo: departmentRepo, txManager: txManager}
}

// --- Implementation ---

func (s *departmentService) EnsureDefaults(ctx context.Context, actor Actor) error {
	count, err := s.departmentRepo.Count(ctx, actor.OrgID)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		for _, name := range model.DefaultDepartments {
			dept := &model.Department{OrgID: actor.OrgID, Name: name}
			if createErr := s.departmentRepo.Create(txCtx, dept); createErr != nil {
				// A concurrent seeding run may have won the race.
				if errors.Is(createErr, gorm.ErrDuplicatedKey) {
					continue
				}
				return createErr
			}
		}
		return nil
	})
}

func (s *departmentService) Create(ctx context.Context, actor Actor, req CreateDepartmentDTO) (*model.Department, error) {
	dept := &model.Department{OrgID: actor.OrgID, Name: req.Name}
	if err := s.departmentRepo.Create(ctx, dept); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("department already exists")
		}
		return nil, err
	}
	return dept, nil
}

func (s *departmentService) List(ctx context.Context, actor Actor) ([]model.Department, error) {
	if err := s.EnsureDefaults(ctx, actor); err != nil {
		return nil, err
	}
	return s.departmentRepo.List(ctx, actor.OrgID)
}

func (s *departmentService) Delete(ctx context.Context, actor Actor, deptID string) error {
	id, err := uuid.Parse(deptID)
	if err != nil {
		return apperror.Validation("invalid department id")
	}
	dept, err := s.departmentRepo.FindByID(ctx, actor.OrgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("department not found")
		}
		return err
	}
	return s.departmentRepo.Delete(ctx, actor.OrgID, dept.ID)
}
