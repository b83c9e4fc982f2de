package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"backoffice/internal/apperror"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateClientDTO struct {
	Name                 string   `json:"name" binding:"required"`
	Address              string   `json:"address"`
	StartDate            string   `json:"start_date" binding:"required"`
	TenureMonths         int      `json:"tenure_months" binding:"required,gt=0"`
	CurrencyPreference   string   `json:"currency_preference"`
	Service              string   `json:"service" binding:"required"`
	AmountINR            float64  `json:"amount_inr" binding:"required,gt=0"`
	AmountPPC            *float64 `json:"amount_ppc"`
	AmountSEO            *float64 `json:"amount_seo"`
	AuthorisedSignatory  string   `json:"authorised_signatory"`
	SignatoryDesignation string   `json:"signatory_designation"`
	GST                  string   `json:"gst"`
	POCName              string   `json:"poc_name"`
	POCEmail             string   `json:"poc_email"`
	POCDesignation       string   `json:"poc_designation"`
	POCMobile            string   `json:"poc_mobile"`
	ApproverUserID       *string  `json:"approver_user_id"`
}

// UpdateClientDTO is a patch: nil fields are left untouched.
type UpdateClientDTO struct {
	Name                 *string  `json:"name"`
	Address              *string  `json:"address"`
	StartDate            *string  `json:"start_date"`
	TenureMonths         *int     `json:"tenure_months"`
	CurrencyPreference   *string  `json:"currency_preference"`
	Service              *string  `json:"service"`
	AmountINR            *float64 `json:"amount_inr"`
	AmountPPC            *float64 `json:"amount_ppc"`
	AmountSEO            *float64 `json:"amount_seo"`
	AuthorisedSignatory  *string  `json:"authorised_signatory"`
	SignatoryDesignation *string  `json:"signatory_designation"`
	GST                  *string  `json:"gst"`
	POCName              *string  `json:"poc_name"`
	POCEmail             *string  `json:"poc_email"`
	POCDesignation       *string  `json:"poc_designation"`
	POCMobile            *string  `json:"poc_mobile"`
	ApproverUserID       *string  `json:"approver_user_id"`
}

type ToggleStatusDTO struct {
	Field string `json:"field" binding:"required"`
}

type ListClientsQuery struct {
	Status     string
	Department string
	SortBy     string
	SortDesc   bool
}

// --- Interface ---

// ClientService manages customer accounts and their contract terms.
// Agreement status is recomputed on every read; the stored column only
// caches the last derivation.
type ClientService interface {
	Create(ctx context.Context, actor Actor, req CreateClientDTO) (*model.Client, error)
	Get(ctx context.Context, actor Actor, clientID string) (*model.Client, error)
	List(ctx context.Context, actor Actor, query ListClientsQuery) ([]model.Client, error)
	Update(ctx context.Context, actor Actor, clientID string, req UpdateClientDTO) (*model.Client, error)
	Toggle(ctx context.Context, actor Actor, clientID string, req ToggleStatusDTO) (*model.Client, error)
	Delete(ctx context.Context, actor Actor, clientID string) error
}

type clientService struct {
	clientRepo repository.ClientRepository
	auditRepo  repository.AuditRepository
	now        func() time.Time
}

func NewClientService(clientRepo repository.ClientRepository, auditRepo repository.AuditRepository) ClientService {
	return &clientService{clientRepo: clientRepo, auditRepo: auditRepo, now: time.Now}
}

// --- Implementation ---

func (s *clientService) Create(ctx context.Context, actor Actor, req CreateClientDTO) (*model.Client, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, apperror.Validation("invalid start_date, expected YYYY-MM-DD")
	}

	currency := req.CurrencyPreference
	if currency == "" {
		currency = model.CurrencyINR
	}
	if currency != model.CurrencyINR && currency != model.CurrencyUSD {
		return nil, apperror.Validation("currency_preference must be INR or USD")
	}

	client := &model.Client{
		OrgID:                actor.OrgID,
		Name:                 req.Name,
		Address:              req.Address,
		StartDate:            start,
		TenureMonths:         req.TenureMonths,
		EndDate:              AgreementEndDate(start, req.TenureMonths),
		CurrencyPreference:   currency,
		Service:              req.Service,
		AmountINR:            req.AmountINR,
		AmountPPC:            req.AmountPPC,
		AmountSEO:            req.AmountSEO,
		AuthorisedSignatory:  req.AuthorisedSignatory,
		SignatoryDesignation: req.SignatoryDesignation,
		GST:                  req.GST,
		POCName:              req.POCName,
		POCEmail:             req.POCEmail,
		POCDesignation:       req.POCDesignation,
		POCMobile:            req.POCMobile,
		SignStatus:           model.SignStatusNotSigned,
		ClientStatus:         model.ClientStatusActive,
		AgreementStatus:      DeriveAgreementStatus(start, req.TenureMonths, s.now()),
	}
	if req.ApproverUserID != nil {
		approverID, parseErr := uuid.Parse(*req.ApproverUserID)
		if parseErr != nil {
			return nil, apperror.Validation("invalid approver_user_id")
		}
		client.ApproverUserID = &approverID
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, model.ActionCreateClient, client.ID.String(), client.Name)
	return client, nil
}

func (s *clientService) Get(ctx context.Context, actor Actor, clientID string) (*model.Client, error) {
	client, err := s.find(ctx, actor.OrgID, clientID)
	if err != nil {
		return nil, err
	}
	s.refreshDerived(ctx, client)
	return client, nil
}

func (s *clientService) List(ctx context.Context, actor Actor, query ListClientsQuery) ([]model.Client, error) {
	clients, err := s.clientRepo.List(ctx, actor.OrgID, repository.ClientFilter{
		Status:     query.Status,
		Department: query.Department,
		SortBy:     query.SortBy,
		SortDesc:   query.SortDesc,
	})
	if err != nil {
		return nil, err
	}
	for i := range clients {
		s.refreshDerived(ctx, &clients[i])
	}
	return clients, nil
}

func (s *clientService) Update(ctx context.Context, actor Actor, clientID string, req UpdateClientDTO) (*model.Client, error) {
	client, err := s.find(ctx, actor.OrgID, clientID)
	if err != nil {
		return nil, err
	}

	if req.StartDate != nil {
		start, parseErr := parseDate(*req.StartDate)
		if parseErr != nil {
			return nil, apperror.Validation("invalid start_date, expected YYYY-MM-DD")
		}
		client.StartDate = start
	}
	if req.TenureMonths != nil {
		if *req.TenureMonths <= 0 {
			return nil, apperror.Validation("tenure_months must be positive")
		}
		client.TenureMonths = *req.TenureMonths
	}
	if req.CurrencyPreference != nil {
		if *req.CurrencyPreference != model.CurrencyINR && *req.CurrencyPreference != model.CurrencyUSD {
			return nil, apperror.Validation("currency_preference must be INR or USD")
		}
		client.CurrencyPreference = *req.CurrencyPreference
	}
	if req.AmountINR != nil {
		if *req.AmountINR <= 0 {
			return nil, apperror.Validation("amount_inr must be positive")
		}
		client.AmountINR = *req.AmountINR
	}
	if req.ApproverUserID != nil {
		approverID, parseErr := uuid.Parse(*req.ApproverUserID)
		if parseErr != nil {
			return nil, apperror.Validation("invalid approver_user_id")
		}
		client.ApproverUserID = &approverID
	}
	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Service != nil {
		client.Service = *req.Service
	}
	if req.AmountPPC != nil {
		client.AmountPPC = req.AmountPPC
	}
	if req.AmountSEO != nil {
		client.AmountSEO = req.AmountSEO
	}
	if req.AuthorisedSignatory != nil {
		client.AuthorisedSignatory = *req.AuthorisedSignatory
	}
	if req.SignatoryDesignation != nil {
		client.SignatoryDesignation = *req.SignatoryDesignation
	}
	if req.GST != nil {
		client.GST = *req.GST
	}
	if req.POCName != nil {
		client.POCName = *req.POCName
	}
	if req.POCEmail != nil {
		client.POCEmail = *req.POCEmail
	}
	if req.POCDesignation != nil {
		client.POCDesignation = *req.POCDesignation
	}
	if req.POCMobile != nil {
		client.POCMobile = *req.POCMobile
	}

	client.EndDate = AgreementEndDate(client.StartDate, client.TenureMonths)
	client.AgreementStatus = DeriveAgreementStatus(client.StartDate, client.TenureMonths, s.now())

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, model.ActionUpdateClient, client.ID.String(), client.Name)
	return client, nil
}

func (s *clientService) Toggle(ctx context.Context, actor Actor, clientID string, req ToggleStatusDTO) (*model.Client, error) {
	client, err := s.find(ctx, actor.OrgID, clientID)
	if err != nil {
		return nil, err
	}

	switch req.Field {
	case FieldSignStatus:
		next, toggleErr := ToggleStatus(KindClient, FieldSignStatus, client.SignStatus)
		if toggleErr != nil {
			return nil, toggleErr
		}
		client.SignStatus = next
	case FieldClientStatus:
		next, toggleErr := ToggleStatus(KindClient, FieldClientStatus, client.ClientStatus)
		if toggleErr != nil {
			return nil, toggleErr
		}
		client.ClientStatus = next
	default:
		return nil, apperror.Validation("field must be sign_status or client_status")
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, model.ActionToggleStatus, client.ID.String(), client.Name)
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, actor Actor, clientID string) error {
	client, err := s.find(ctx, actor.OrgID, clientID)
	if err != nil {
		return err
	}
	if err := s.clientRepo.Delete(ctx, actor.OrgID, client.ID); err != nil {
		return err
	}
	s.audit(ctx, actor, model.ActionDeleteClient, client.ID.String(), client.Name)
	return nil
}

// refreshDerived recomputes the agreement status and persists it if drifted.
func (s *clientService) refreshDerived(ctx context.Context, client *model.Client) {
	derived := DeriveAgreementStatus(client.StartDate, client.TenureMonths, s.now())
	end := AgreementEndDate(client.StartDate, client.TenureMonths)
	if client.AgreementStatus != derived || !client.EndDate.Equal(end) {
		client.AgreementStatus = derived
		client.EndDate = end
		if err := s.clientRepo.Update(ctx, client); err != nil {
			log.Printf("Failed to persist derived agreement status for client %s: %v", client.ID, err)
		}
	}
}

func (s *clientService) find(ctx context.Context, orgID uuid.UUID, clientID string) (*model.Client, error) {
	id, err := uuid.Parse(clientID)
	if err != nil {
		return nil, apperror.Validation("invalid client id")
	}
	client, err := s.clientRepo.FindByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("client not found")
		}
		return nil, err
	}
	return client, nil
}

func (s *clientService) audit(ctx context.Context, actor Actor, action, entityID, entityName string) {
	payload, _ := json.Marshal(map[string]interface{}{"name": entityName})
	_ = s.auditRepo.Log(ctx, &model.AuditLog{
		OrgID:      actor.OrgID,
		UserID:     &actor.UserID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
	})
}
