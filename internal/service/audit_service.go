package service

import (
	"context"

	"backoffice/internal/model"
	"backoffice/internal/repository"
)

// AuditService exposes the org's audit trail, read only.
type AuditService interface {
	List(ctx context.Context, actor Actor, page, limit int) ([]model.AuditLog, int64, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) List(ctx context.Context, actor Actor, page, limit int) ([]model.AuditLog, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	return s.auditRepo.List(ctx, actor.OrgID, page, limit)
}
