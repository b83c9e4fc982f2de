package service

import (
	"context"
	"encoding/json"

	"backoffice/internal/apperror"
	"backoffice/internal/model"
	"backoffice/internal/repository"
)

// --- Interface ---

// AdminService hosts destructive org-wide maintenance operations.
type AdminService interface {
	// ClearOrgData wipes every business record in the actor's org while
	// keeping the org, its users and the audit trail. Returns the number
	// of rows removed per entity.
	ClearOrgData(ctx context.Context, actor Actor) (map[string]int64, error)
}

type adminService struct {
	adminRepo repository.AdminRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewAdminService(adminRepo repository.AdminRepository, auditRepo repository.AuditRepository, txManager repository.TransactionManager) AdminService {
	return &adminService{adminRepo: adminRepo, auditRepo: auditRepo, txManager: txManager}
}

// --- Implementation ---

func (s *adminService) ClearOrgData(ctx context.Context, actor Actor) (map[string]int64, error) {
	if actor.Role != model.RoleAdmin {
		return nil, apperror.Forbidden("only admins can clear organization data")
	}

	var counts map[string]int64
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		cleared, clearErr := s.adminRepo.ClearOrgData(txCtx, actor.OrgID)
		if clearErr != nil {
			return clearErr
		}
		counts = cleared
		return nil
	})
	if err != nil {
		return nil, err
	}

	payload, _ := json.Marshal(counts)
	_ = s.auditRepo.Log(ctx, &model.AuditLog{
		OrgID:      actor.OrgID,
		UserID:     &actor.UserID,
		Action:     model.ActionClearOrgData,
		EntityID:   actor.OrgID.String(),
		EntityName: "organization data",
		Details:    string(payload),
	})
	return counts, nil
}
