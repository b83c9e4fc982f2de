package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/apperror"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Approval actions a Director can take.
const (
	ApprovalActionApprove = "approve"
	ApprovalActionReject  = "reject"
	ApprovalActionHold    = "hold"
)

// EventBroadcaster pushes JSON events to connected websocket clients.
// Services treat it as optional.
type EventBroadcaster interface {
	BroadcastEvent(event string, data interface{})
}

// --- DTOs ---

type RequestApprovalDTO struct {
	ItemType     string `json:"item_type" binding:"required,oneof=client contractor employee"`
	ItemID       string `json:"item_id" binding:"required"`
	StaffRemarks string `json:"staff_remarks"`
}

type DecideApprovalDTO struct {
	Action string `json:"action" binding:"required,oneof=approve reject hold"`
	Notes  string `json:"notes"`
}

type ApprovalResponse struct {
	ID           string  `json:"id"`
	ItemType     string  `json:"item_type"`
	ItemID       string  `json:"item_id"`
	Status       string  `json:"status"`
	StaffRemarks string  `json:"staff_remarks"`
	Notes        string  `json:"notes"`
	RequestedBy  string  `json:"requested_by"`
	RequesterName string `json:"requester_name"`
	DecidedBy    *string `json:"decided_by"`
	DeciderName  string  `json:"decider_name"`
	DecidedAt    *string `json:"decided_at"`
	CreatedAt    string  `json:"created_at"`
}

// --- Interface ---

// ApprovalService runs the request/decision workflow for sign-off on a
// record's financial terms. Separation of duties is enforced by role:
// Staff request, Directors decide.
type ApprovalService interface {
	Request(ctx context.Context, actor Actor, req RequestApprovalDTO) (ApprovalResponse, error)
	Decide(ctx context.Context, actor Actor, approvalID string, req DecideApprovalDTO) (ApprovalResponse, error)
	List(ctx context.Context, actor Actor, status string, page, limit int) ([]ApprovalResponse, int64, error)
	Reset(ctx context.Context, actor Actor) (int64, error)
}

type approvalService struct {
	approvalRepo   repository.ApprovalRepository
	clientRepo     repository.ClientRepository
	contractorRepo repository.ContractorRepository
	employeeRepo   repository.EmployeeRepository
	auditRepo      repository.AuditRepository
	txManager      repository.TransactionManager
	hub            EventBroadcaster
}

func NewApprovalService(
	approvalRepo repository.ApprovalRepository,
	clientRepo repository.ClientRepository,
	contractorRepo repository.ContractorRepository,
	employeeRepo repository.EmployeeRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub EventBroadcaster,
) ApprovalService {
	return &approvalService{
		approvalRepo:   approvalRepo,
		clientRepo:     clientRepo,
		contractorRepo: contractorRepo,
		employeeRepo:   employeeRepo,
		auditRepo:      auditRepo,
		txManager:      txManager,
		hub:            hub,
	}
}

// --- Implementation ---

func (s *approvalService) Request(ctx context.Context, actor Actor, req RequestApprovalDTO) (ApprovalResponse, error) {
	if actor.Role != model.RoleStaff {
		return ApprovalResponse{}, apperror.Forbidden("only Staff can request approval")
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return ApprovalResponse{}, apperror.Validation("invalid item_id")
	}

	approval := model.Approval{
		OrgID:        actor.OrgID,
		ItemType:     req.ItemType,
		ItemID:       itemID,
		Status:       model.ApprovalRequested,
		StaffRemarks: req.StaffRemarks,
		RequestedBy:  actor.UserID,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.itemExists(txCtx, actor.OrgID, req.ItemType, itemID); err != nil {
			return err
		}

		// Locked check-and-insert: a resolved approval still blocks a new
		// request for the same item.
		_, findErr := s.approvalRepo.FindByItemForUpdate(txCtx, actor.OrgID, req.ItemType, itemID)
		if findErr == nil {
			return apperror.Conflict(fmt.Sprintf("approval already exists for %s %s", req.ItemType, req.ItemID))
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		if createErr := s.approvalRepo.Create(txCtx, &approval); createErr != nil {
			// The unique index backstops concurrent inserts that both
			// passed the locked check against an absent row.
			if errors.Is(createErr, gorm.ErrDuplicatedKey) {
				return apperror.Conflict(fmt.Sprintf("approval already exists for %s %s", req.ItemType, req.ItemID))
			}
			return createErr
		}

		return s.audit(txCtx, actor, model.ActionRequestApproval, approval.ID.String(), req.ItemType, map[string]interface{}{
			"item_type": req.ItemType,
			"item_id":   req.ItemID,
		})
	})
	if err != nil {
		return ApprovalResponse{}, err
	}

	s.broadcast("approval_requested", &approval)

	loaded, err := s.approvalRepo.FindByID(ctx, actor.OrgID, approval.ID)
	if err != nil {
		return ApprovalResponse{}, err
	}
	return toApprovalResponse(*loaded), nil
}

func (s *approvalService) Decide(ctx context.Context, actor Actor, approvalID string, req DecideApprovalDTO) (ApprovalResponse, error) {
	if actor.Role != model.RoleDirector {
		return ApprovalResponse{}, apperror.Forbidden("only Directors can approve, reject or hold")
	}

	id, err := uuid.Parse(approvalID)
	if err != nil {
		return ApprovalResponse{}, apperror.Validation("invalid approval id")
	}

	var status string
	var action string
	switch req.Action {
	case ApprovalActionApprove:
		status, action = model.ApprovalApproved, model.ActionApproveItem
	case ApprovalActionReject:
		status, action = model.ApprovalRejected, model.ActionRejectItem
	case ApprovalActionHold:
		status, action = model.ApprovalHold, model.ActionHoldItem
	default:
		return ApprovalResponse{}, apperror.Validation(fmt.Sprintf("unknown action %q", req.Action))
	}

	var approval *model.Approval
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		found, findErr := s.approvalRepo.FindByIDForUpdate(txCtx, actor.OrgID, id)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return apperror.NotFound("approval not found")
			}
			return findErr
		}
		approval = found

		// Hold is a parking state and stays decidable; Approved and
		// Rejected are terminal.
		if approval.Status != model.ApprovalRequested && approval.Status != model.ApprovalHold {
			return apperror.InvalidState(fmt.Sprintf("approval is already %s", approval.Status))
		}

		now := time.Now().UTC()
		approval.Status = status
		approval.DecidedBy = &actor.UserID
		approval.DecidedAt = &now
		approval.Notes = req.Notes

		if saveErr := s.approvalRepo.Update(txCtx, approval); saveErr != nil {
			return saveErr
		}

		return s.audit(txCtx, actor, action, approval.ID.String(), approval.ItemType, map[string]interface{}{
			"item_type": approval.ItemType,
			"item_id":   approval.ItemID.String(),
			"status":    status,
		})
	})
	if err != nil {
		return ApprovalResponse{}, err
	}

	s.broadcast("approval_decided", approval)

	loaded, err := s.approvalRepo.FindByID(ctx, actor.OrgID, approval.ID)
	if err != nil {
		return ApprovalResponse{}, err
	}
	return toApprovalResponse(*loaded), nil
}

func (s *approvalService) List(ctx context.Context, actor Actor, status string, page, limit int) ([]ApprovalResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	approvals, total, err := s.approvalRepo.List(ctx, actor.OrgID, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]ApprovalResponse, 0, len(approvals))
	for _, a := range approvals {
		result = append(result, toApprovalResponse(a))
	}
	return result, total, nil
}

func (s *approvalService) Reset(ctx context.Context, actor Actor) (int64, error) {
	if actor.Role == model.RoleDirector {
		return 0, apperror.Forbidden("Directors cannot reset approvals")
	}

	var deleted int64
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		n, delErr := s.approvalRepo.DeleteAllForOrg(txCtx, actor.OrgID)
		if delErr != nil {
			return delErr
		}
		deleted = n
		return s.audit(txCtx, actor, model.ActionResetApprovals, "", "", map[string]interface{}{
			"deleted": n,
		})
	})
	return deleted, err
}

// itemExists checks the referenced record inside the actor's org.
func (s *approvalService) itemExists(ctx context.Context, orgID uuid.UUID, itemType string, itemID uuid.UUID) error {
	var err error
	switch itemType {
	case model.ApprovalItemClient:
		_, err = s.clientRepo.FindByID(ctx, orgID, itemID)
	case model.ApprovalItemContractor:
		_, err = s.contractorRepo.FindByID(ctx, orgID, itemID)
	case model.ApprovalItemEmployee:
		_, err = s.employeeRepo.FindByID(ctx, orgID, itemID)
	default:
		return apperror.Validation(fmt.Sprintf("unknown item type %q", itemType))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound(fmt.Sprintf("%s not found", itemType))
		}
		return err
	}
	return nil
}

func (s *approvalService) audit(ctx context.Context, actor Actor, action, entityID, entityName string, details map[string]interface{}) error {
	payload, _ := json.Marshal(details)
	return s.auditRepo.Log(ctx, &model.AuditLog{
		OrgID:      actor.OrgID,
		UserID:     &actor.UserID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
	})
}

func (s *approvalService) broadcast(event string, approval *model.Approval) {
	if s.hub == nil || approval == nil {
		return
	}
	s.hub.BroadcastEvent(event, map[string]interface{}{
		"approval_id": approval.ID.String(),
		"org_id":      approval.OrgID.String(),
		"item_type":   approval.ItemType,
		"item_id":     approval.ItemID.String(),
		"status":      approval.Status,
	})
}

// --- Helpers ---

func toApprovalResponse(a model.Approval) ApprovalResponse {
	resp := ApprovalResponse{
		ID:           a.ID.String(),
		ItemType:     a.ItemType,
		ItemID:       a.ItemID.String(),
		Status:       a.Status,
		StaffRemarks: a.StaffRemarks,
		Notes:        a.Notes,
		RequestedBy:  a.RequestedBy.String(),
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
	if a.Requester != nil {
		resp.RequesterName = a.Requester.Name
	}
	if a.DecidedBy != nil {
		s := a.DecidedBy.String()
		resp.DecidedBy = &s
	}
	if a.Decider != nil {
		resp.DeciderName = a.Decider.Name
	}
	if a.DecidedAt != nil {
		s := a.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &s
	}
	return resp
}
