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

type CreateOnboardingDTO struct {
	ClientName     string   `json:"client_name" binding:"required"`
	POCName        string   `json:"poc_name"`
	POCEmail       string   `json:"poc_email"`
	Services       []string `json:"services"`
	Currency       string   `json:"currency"`
	Pricing        float64  `json:"pricing" binding:"required,gt=0"`
	ApproverUserID *string  `json:"approver_user_id"`
}

type UpdateOnboardingDTO struct {
	ClientName       *string   `json:"client_name"`
	POCName          *string   `json:"poc_name"`
	POCEmail         *string   `json:"poc_email"`
	Services         *[]string `json:"services"`
	Currency         *string   `json:"currency"`
	Pricing          *float64  `json:"pricing"`
	ApproverUserID   *string   `json:"approver_user_id"`
	ProposalStatus   *string   `json:"proposal_status"`
	OnboardingStatus *string   `json:"onboarding_status"`
}

// --- Interface ---

// OnboardingService tracks prospective clients through the proposal
// pipeline before a full client record exists.
type OnboardingService interface {
	Create(ctx context.Context, actor Actor, req CreateOnboardingDTO) (*model.ClientOnboarding, error)
	Get(ctx context.Context, actor Actor, recordID string) (*model.ClientOnboarding, error)
	List(ctx context.Context, actor Actor) ([]model.ClientOnboarding, error)
	Update(ctx context.Context, actor Actor, recordID string, req UpdateOnboardingDTO) (*model.ClientOnboarding, error)
	Delete(ctx context.Context, actor Actor, recordID string) error
}

type onboardingService struct {
	onboardingRepo repository.OnboardingRepository
}

func NewOnboardingService(onboardingRepo repository.OnboardingRepository) OnboardingService {
	return &onboardingService{onboardingRepo: onboardingRepo}
}

var validProposalStatuses = map[string]bool{
	model.ProposalSent:          true,
	model.ProposalApproved:      true,
	model.ProposalRejected:      true,
	model.ProposalInNegotiation: true,
}

var validOnboardingStatuses = map[string]bool{
	model.OnboardingDone: true,
	model.OnboardingWIP:  true,
	model.OnboardingNot:  true,
}

// --- Implementation ---

func (s *onboardingService) Create(ctx context.Context, actor Actor, req CreateOnboardingDTO) (*model.ClientOnboarding, error) {
	currency := req.Currency
	if currency == "" {
		currency = model.CurrencyINR
	}
	if currency != model.CurrencyINR && currency != model.CurrencyUSD {
		return nil, apperror.Validation("currency must be INR or USD")
	}

	record := &model.ClientOnboarding{
		OrgID:            actor.OrgID,
		ClientName:       req.ClientName,
		POCName:          req.POCName,
		POCEmail:         req.POCEmail,
		Services:         model.StringList(req.Services),
		Currency:         currency,
		Pricing:          req.Pricing,
		ProposalStatus:   model.ProposalSent,
		OnboardingStatus: model.OnboardingNot,
	}
	if req.ApproverUserID != nil {
		approverID, err := uuid.Parse(*req.ApproverUserID)
		if err != nil {
			return nil, apperror.Validation("invalid approver_user_id")
		}
		record.ApproverUserID = &approverID
	}

	if err := s.onboardingRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *onboardingService) Get(ctx context.Context, actor Actor, recordID string) (*model.ClientOnboarding, error) {
	return s.find(ctx, actor.OrgID, recordID)
}

func (s *onboardingService) List(ctx context.Context, actor Actor) ([]model.ClientOnboarding, error) {
	return s.onboardingRepo.List(ctx, actor.OrgID)
}

func (s *onboardingService) Update(ctx context.Context, actor Actor, recordID string, req UpdateOnboardingDTO) (*model.ClientOnboarding, error) {
	record, err := s.find(ctx, actor.OrgID, recordID)
	if err != nil {
		return nil, err
	}

	if req.ProposalStatus != nil {
		if !validProposalStatuses[*req.ProposalStatus] {
			return nil, apperror.Validation("invalid proposal_status")
		}
		record.ProposalStatus = *req.ProposalStatus
	}
	if req.OnboardingStatus != nil {
		if !validOnboardingStatuses[*req.OnboardingStatus] {
			return nil, apperror.Validation("invalid onboarding_status")
		}
		record.OnboardingStatus = *req.OnboardingStatus
	}
	if req.Currency != nil {
		if *req.Currency != model.CurrencyINR && *req.Currency != model.CurrencyUSD {
			return nil, apperror.Validation("currency must be INR or USD")
		}
		record.Currency = *req.Currency
	}
	if req.Pricing != nil {
		if *req.Pricing <= 0 {
			return nil, apperror.Validation("pricing must be positive")
		}
		record.Pricing = *req.Pricing
	}
	if req.Services != nil {
		record.Services = model.StringList(*req.Services)
	}
	if req.ApproverUserID != nil {
		approverID, parseErr := uuid.Parse(*req.ApproverUserID)
		if parseErr != nil {
			return nil, apperror.Validation("invalid approver_user_id")
		}
		record.ApproverUserID = &approverID
	}
	applyString(&record.ClientName, req.ClientName)
	applyString(&record.POCName, req.POCName)
	applyString(&record.POCEmail, req.POCEmail)

	if err := s.onboardingRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *onboardingService) Delete(ctx context.Context, actor Actor, recordID string) error {
	record, err := s.find(ctx, actor.OrgID, recordID)
	if err != nil {
		return err
	}
	return s.onboardingRepo.Delete(ctx, actor.OrgID, record.ID)
}

func (s *onboardingService) find(ctx context.Context, orgID uuid.UUID, recordID string) (*model.ClientOnboarding, error) {
	id, err := uuid.Parse(recordID)
	if err != nil {
		return nil, apperror.Validation("invalid onboarding id")
	}
	record, err := s.onboardingRepo.FindByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("onboarding record not found")
		}
		return nil, err
	}
	return record, nil
}
