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

type CreateContractorDTO struct {
	Name            string   `json:"name" binding:"required"`
	DOJ             string   `json:"doj"`
	StartDate       string   `json:"start_date" binding:"required"`
	TenureMonths    int      `json:"tenure_months" binding:"required,gt=0"`
	DOB             string   `json:"dob"`
	Gender          string   `json:"gender"`
	PAN             string   `json:"pan"`
	Aadhar          string   `json:"aadhar"`
	Mobile          string   `json:"mobile"`
	PersonalEmail   string   `json:"personal_email"`
	BankName        string   `json:"bank_name"`
	AccountHolder   string   `json:"account_holder"`
	AccountNo       string   `json:"account_no"`
	IFSC            string   `json:"ifsc"`
	Address1        string   `json:"address_1"`
	Address2        string   `json:"address_2"`
	Pincode         string   `json:"pincode"`
	City            string   `json:"city"`
	Department      string   `json:"department" binding:"required"`
	Projects        []string `json:"projects"`
	MonthlyRetainer float64  `json:"monthly_retainer_inr" binding:"required,gt=0"`
	Designation     string   `json:"designation"`
	ApproverUserID  *string  `json:"approver_user_id"`
}

type UpdateContractorDTO struct {
	Name            *string   `json:"name"`
	DOJ             *string   `json:"doj"`
	StartDate       *string   `json:"start_date"`
	TenureMonths    *int      `json:"tenure_months"`
	DOB             *string   `json:"dob"`
	Gender          *string   `json:"gender"`
	PAN             *string   `json:"pan"`
	Aadhar          *string   `json:"aadhar"`
	Mobile          *string   `json:"mobile"`
	PersonalEmail   *string   `json:"personal_email"`
	BankName        *string   `json:"bank_name"`
	AccountHolder   *string   `json:"account_holder"`
	AccountNo       *string   `json:"account_no"`
	IFSC            *string   `json:"ifsc"`
	Address1        *string   `json:"address_1"`
	Address2        *string   `json:"address_2"`
	Pincode         *string   `json:"pincode"`
	City            *string   `json:"city"`
	Department      *string   `json:"department"`
	Projects        *[]string `json:"projects"`
	MonthlyRetainer *float64  `json:"monthly_retainer_inr"`
	Designation     *string   `json:"designation"`
	ApproverUserID  *string   `json:"approver_user_id"`
}

// --- Interface ---

// ContractorService manages external retainer resources. Project
// assignments feed the allocation engine.
type ContractorService interface {
	Create(ctx context.Context, actor Actor, req CreateContractorDTO) (*model.Contractor, error)
	Get(ctx context.Context, actor Actor, contractorID string) (*model.Contractor, error)
	List(ctx context.Context, actor Actor, status, department string) ([]model.Contractor, error)
	Update(ctx context.Context, actor Actor, contractorID string, req UpdateContractorDTO) (*model.Contractor, error)
	Toggle(ctx context.Context, actor Actor, contractorID string, req ToggleStatusDTO) (*model.Contractor, error)
	Delete(ctx context.Context, actor Actor, contractorID string) error
}

type contractorService struct {
	contractorRepo repository.ContractorRepository
	auditRepo      repository.AuditRepository
	now            func() time.Time
}

func NewContractorService(contractorRepo repository.ContractorRepository, auditRepo repository.AuditRepository) ContractorService {
	return &contractorService{contractorRepo: contractorRepo, auditRepo: auditRepo, now: time.Now}
}

// --- Implementation ---

func (s *contractorService) Create(ctx context.Context, actor Actor, req CreateContractorDTO) (*model.Contractor, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, apperror.Validation("invalid start_date, expected YYYY-MM-DD")
	}

	contractor := &model.Contractor{
		OrgID:           actor.OrgID,
		Name:            req.Name,
		StartDate:       start,
		TenureMonths:    req.TenureMonths,
		EndDate:         AgreementEndDate(start, req.TenureMonths),
		Gender:          req.Gender,
		PAN:             req.PAN,
		Aadhar:          req.Aadhar,
		Mobile:          req.Mobile,
		PersonalEmail:   req.PersonalEmail,
		BankName:        req.BankName,
		AccountHolder:   req.AccountHolder,
		AccountNo:       req.AccountNo,
		IFSC:            req.IFSC,
		Address1:        req.Address1,
		Address2:        req.Address2,
		Pincode:         req.Pincode,
		City:            req.City,
		Department:      req.Department,
		MonthlyRetainer: req.MonthlyRetainer,
		Designation:     req.Designation,
		SignStatus:      model.SignStatusNotSigned,
		Status:          model.StaffStatusActive,
		AgreementStatus: DeriveAgreementStatus(start, req.TenureMonths, s.now()),
	}

	if contractor.Projects, err = parseProjects(req.Projects); err != nil {
		return nil, err
	}
	if err := setOptionalDate(&contractor.DOJ, req.DOJ); err != nil {
		return nil, apperror.Validation("invalid doj, expected YYYY-MM-DD")
	}
	if err := setOptionalDate(&contractor.DOB, req.DOB); err != nil {
		return nil, apperror.Validation("invalid dob, expected YYYY-MM-DD")
	}
	if req.ApproverUserID != nil {
		approverID, parseErr := uuid.Parse(*req.ApproverUserID)
		if parseErr != nil {
			return nil, apperror.Validation("invalid approver_user_id")
		}
		contractor.ApproverUserID = &approverID
	}

	if err := s.contractorRepo.Create(ctx, contractor); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, model.ActionCreateContractor, contractor.ID.String(), contractor.Name)
	return contractor, nil
}

func (s *contractorService) Get(ctx context.Context, actor Actor, contractorID string) (*model.Contractor, error) {
	contractor, err := s.find(ctx, actor.OrgID, contractorID)
	if err != nil {
		return nil, err
	}
	s.refreshDerived(ctx, contractor)
	return contractor, nil
}

func (s *contractorService) List(ctx context.Context, actor Actor, status, department string) ([]model.Contractor, error) {
	contractors, err := s.contractorRepo.List(ctx, actor.OrgID, repository.PersonFilter{
		Status:     status,
		Department: department,
	})
	if err != nil {
		return nil, err
	}
	for i := range contractors {
		s.refreshDerived(ctx, &contractors[i])
	}
	return contractors, nil
}

func (s *contractorService) Update(ctx context.Context, actor Actor, contractorID string, req UpdateContractorDTO) (*model.Contractor, error) {
	contractor, err := s.find(ctx, actor.OrgID, contractorID)
	if err != nil {
		return nil, err
	}

	if req.StartDate != nil {
		start, parseErr := parseDate(*req.StartDate)
		if parseErr != nil {
			return nil, apperror.Validation("invalid start_date, expected YYYY-MM-DD")
		}
		contractor.StartDate = start
	}
	if req.TenureMonths != nil {
		if *req.TenureMonths <= 0 {
			return nil, apperror.Validation("tenure_months must be positive")
		}
		contractor.TenureMonths = *req.TenureMonths
	}
	if req.MonthlyRetainer != nil {
		if *req.MonthlyRetainer <= 0 {
			return nil, apperror.Validation("monthly_retainer_inr must be positive")
		}
		contractor.MonthlyRetainer = *req.MonthlyRetainer
	}
	if req.Projects != nil {
		projects, parseErr := parseProjects(*req.Projects)
		if parseErr != nil {
			return nil, parseErr
		}
		contractor.Projects = projects
	}
	if req.DOJ != nil {
		if parseErr := setOptionalDate(&contractor.DOJ, *req.DOJ); parseErr != nil {
			return nil, apperror.Validation("invalid doj, expected YYYY-MM-DD")
		}
	}
	if req.DOB != nil {
		if parseErr := setOptionalDate(&contractor.DOB, *req.DOB); parseErr != nil {
			return nil, apperror.Validation("invalid dob, expected YYYY-MM-DD")
		}
	}
	if req.ApproverUserID != nil {
		approverID, parseErr := uuid.Parse(*req.ApproverUserID)
		if parseErr != nil {
			return nil, apperror.Validation("invalid approver_user_id")
		}
		contractor.ApproverUserID = &approverID
	}
	applyString(&contractor.Name, req.Name)
	applyString(&contractor.Gender, req.Gender)
	applyString(&contractor.PAN, req.PAN)
	applyString(&contractor.Aadhar, req.Aadhar)
	applyString(&contractor.Mobile, req.Mobile)
	applyString(&contractor.PersonalEmail, req.PersonalEmail)
	applyString(&contractor.BankName, req.BankName)
	applyString(&contractor.AccountHolder, req.AccountHolder)
	applyString(&contractor.AccountNo, req.AccountNo)
	applyString(&contractor.IFSC, req.IFSC)
	applyString(&contractor.Address1, req.Address1)
	applyString(&contractor.Address2, req.Address2)
	applyString(&contractor.Pincode, req.Pincode)
	applyString(&contractor.City, req.City)
	applyString(&contractor.Department, req.Department)
	applyString(&contractor.Designation, req.Designation)

	contractor.EndDate = AgreementEndDate(contractor.StartDate, contractor.TenureMonths)
	contractor.AgreementStatus = DeriveAgreementStatus(contractor.StartDate, contractor.TenureMonths, s.now())

	if err := s.contractorRepo.Update(ctx, contractor); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, model.ActionUpdateContractor, contractor.ID.String(), contractor.Name)
	return contractor, nil
}

func (s *contractorService) Toggle(ctx context.Context, actor Actor, contractorID string, req ToggleStatusDTO) (*model.Contractor, error) {
	contractor, err := s.find(ctx, actor.OrgID, contractorID)
	if err != nil {
		return nil, err
	}

	switch req.Field {
	case FieldSignStatus:
		next, toggleErr := ToggleStatus(KindContractor, FieldSignStatus, contractor.SignStatus)
		if toggleErr != nil {
			return nil, toggleErr
		}
		contractor.SignStatus = next
	case FieldStatus:
		next, toggleErr := ToggleStatus(KindContractor, FieldStatus, contractor.Status)
		if toggleErr != nil {
			return nil, toggleErr
		}
		contractor.Status = next
	default:
		return nil, apperror.Validation("field must be sign_status or status")
	}

	if err := s.contractorRepo.Update(ctx, contractor); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, model.ActionToggleStatus, contractor.ID.String(), contractor.Name)
	return contractor, nil
}

func (s *contractorService) Delete(ctx context.Context, actor Actor, contractorID string) error {
	contractor, err := s.find(ctx, actor.OrgID, contractorID)
	if err != nil {
		return err
	}
	if err := s.contractorRepo.Delete(ctx, actor.OrgID, contractor.ID); err != nil {
		return err
	}
	s.audit(ctx, actor, model.ActionDeleteContractor, contractor.ID.String(), contractor.Name)
	return nil
}

func (s *contractorService) refreshDerived(ctx context.Context, contractor *model.Contractor) {
	derived := DeriveAgreementStatus(contractor.StartDate, contractor.TenureMonths, s.now())
	end := AgreementEndDate(contractor.StartDate, contractor.TenureMonths)
	if contractor.AgreementStatus != derived || !contractor.EndDate.Equal(end) {
		contractor.AgreementStatus = derived
		contractor.EndDate = end
		if err := s.contractorRepo.Update(ctx, contractor); err != nil {
			log.Printf("Failed to persist derived agreement status for contractor %s: %v", contractor.ID, err)
		}
	}
}

func (s *contractorService) find(ctx context.Context, orgID uuid.UUID, contractorID string) (*model.Contractor, error) {
	id, err := uuid.Parse(contractorID)
	if err != nil {
		return nil, apperror.Validation("invalid contractor id")
	}
	contractor, err := s.contractorRepo.FindByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("contractor not found")
		}
		return nil, err
	}
	return contractor, nil
}

func (s *contractorService) audit(ctx context.Context, actor Actor, action, entityID, entityName string) {
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

// --- Shared field helpers ---

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setOptionalDate(dst *time.Time, value string) error {
	if value == "" {
		return nil
	}
	t, err := parseDate(value)
	if err != nil {
		return err
	}
	*dst = t
	return nil
}

func parseProjects(ids []string) (model.ProjectList, error) {
	projects := make(model.ProjectList, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperror.Validation("invalid project client id")
		}
		projects = append(projects, id)
	}
	return projects.Normalize(), nil
}
