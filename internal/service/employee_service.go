package service

import (
	"context"
	"encoding/json"
	"errors"

	"backoffice/internal/apperror"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateEmployeeDTO struct {
	EmpID          string   `json:"emp_id" binding:"required"`
	FirstName      string   `json:"first_name" binding:"required"`
	LastName       string   `json:"last_name" binding:"required"`
	FatherName     string   `json:"father_name"`
	DOJ            string   `json:"doj"`
	DOB            string   `json:"dob"`
	Gender         string   `json:"gender"`
	WorkEmail      string   `json:"work_email"`
	PersonalEmail  string   `json:"personal_email"`
	Mobile         string   `json:"mobile"`
	PAN            string   `json:"pan"`
	Aadhar         string   `json:"aadhar"`
	UAN            string   `json:"uan"`
	PFAccountNo    string   `json:"pf_account_no"`
	BankName       string   `json:"bank_name"`
	AccountNo      string   `json:"account_no"`
	IFSC           string   `json:"ifsc"`
	Branch         string   `json:"branch"`
	Address        string   `json:"address"`
	Pincode        string   `json:"pincode"`
	City           string   `json:"city"`
	MonthlyGross   float64  `json:"monthly_gross_inr" binding:"required,gt=0"`
	Department     string   `json:"department" binding:"required"`
	Projects       []string `json:"projects"`
	ApproverUserID *string  `json:"approver_user_id"`
}

type UpdateEmployeeDTO struct {
	EmpID          *string   `json:"emp_id"`
	FirstName      *string   `json:"first_name"`
	LastName       *string   `json:"last_name"`
	FatherName     *string   `json:"father_name"`
	DOJ            *string   `json:"doj"`
	DOB            *string   `json:"dob"`
	Gender         *string   `json:"gender"`
	WorkEmail      *string   `json:"work_email"`
	PersonalEmail  *string   `json:"personal_email"`
	Mobile         *string   `json:"mobile"`
	PAN            *string   `json:"pan"`
	Aadhar         *string   `json:"aadhar"`
	UAN            *string   `json:"uan"`
	PFAccountNo    *string   `json:"pf_account_no"`
	BankName       *string   `json:"bank_name"`
	AccountNo      *string   `json:"account_no"`
	IFSC           *string   `json:"ifsc"`
	Branch         *string   `json:"branch"`
	Address        *string   `json:"address"`
	Pincode        *string   `json:"pincode"`
	City           *string   `json:"city"`
	MonthlyGross   *float64  `json:"monthly_gross_inr"`
	Department     *string   `json:"department"`
	Projects       *[]string `json:"projects"`
	ApproverUserID *string   `json:"approver_user_id"`
}

// --- Interface ---

// EmployeeService manages in-house staff records.
type EmployeeService interface {
	Create(ctx context.Context, actor Actor, req CreateEmployeeDTO) (*model.Employee, error)
	Get(ctx context.Context, actor Actor, employeeID string) (*model.Employee, error)
	List(ctx context.Context, actor Actor, status, department string) ([]model.Employee, error)
	Update(ctx context.Context, actor Actor, employeeID string, req UpdateEmployeeDTO) (*model.Employee, error)
	Toggle(ctx context.Context, actor Actor, employeeID string, req ToggleStatusDTO) (*model.Employee, error)
	Delete(ctx context.Context, actor Actor, employeeID string) error
}

type employeeService struct {
	employeeRepo repository.EmployeeRepository
	auditRepo    repository.AuditRepository
}

func NewEmployeeService(employeeRepo repository.EmployeeRepository, auditRepo repository.AuditRepository) EmployeeService {
	return &employeeService{employeeRepo: employeeRepo, auditRepo: auditRepo}
}

// --- Implementation ---

func (s *employeeService) Create(ctx context.Context, actor Actor, req CreateEmployeeDTO) (*model.Employee, error) {
	employee := &model.Employee{
		OrgID:         actor.OrgID,
		EmpID:         req.EmpID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		FatherName:    req.FatherName,
		Gender:        req.Gender,
		WorkEmail:     req.WorkEmail,
		PersonalEmail: req.PersonalEmail,
		Mobile:        req.Mobile,
		PAN:           req.PAN,
		Aadhar:        req.Aadhar,
		UAN:           req.UAN,
		PFAccountNo:   req.PFAccountNo,
		BankName:      req.BankName,
		AccountNo:     req.AccountNo,
		IFSC:          req.IFSC,
		Branch:        req.Branch,
		Address:       req.Address,
		Pincode:       req.Pincode,
		City:          req.City,
		MonthlyGross:  req.MonthlyGross,
		Department:    req.Department,
		Status:        model.StaffStatusActive,
	}

	var err error
	if employee.Projects, err = parseProjects(req.Projects); err != nil {
		return nil, err
	}
	if err := setOptionalDate(&employee.DOJ, req.DOJ); err != nil {
		return nil, apperror.Validation("invalid doj, expected YYYY-MM-DD")
	}
	if err := setOptionalDate(&employee.DOB, req.DOB); err != nil {
		return nil, apperror.Validation("invalid dob, expected YYYY-MM-DD")
	}
	if req.ApproverUserID != nil {
		approverID, parseErr := uuid.Parse(*req.ApproverUserID)
		if parseErr != nil {
			return nil, apperror.Validation("invalid approver_user_id")
		}
		employee.ApproverUserID = &approverID
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, model.ActionCreateEmployee, employee.ID.String(), employee.FullName())
	return employee, nil
}

func (s *employeeService) Get(ctx context.Context, actor Actor, employeeID string) (*model.Employee, error) {
	return s.find(ctx, actor.OrgID, employeeID)
}

func (s *employeeService) List(ctx context.Context, actor Actor, status, department string) ([]model.Employee, error) {
	return s.employeeRepo.List(ctx, actor.OrgID, repository.PersonFilter{
		Status:     status,
		Department: department,
	})
}

func (s *employeeService) Update(ctx context.Context, actor Actor, employeeID string, req UpdateEmployeeDTO) (*model.Employee, error) {
	employee, err := s.find(ctx, actor.OrgID, employeeID)
	if err != nil {
		return nil, err
	}

	if req.MonthlyGross != nil {
		if *req.MonthlyGross <= 0 {
			return nil, apperror.Validation("monthly_gross_inr must be positive")
		}
		employee.MonthlyGross = *req.MonthlyGross
	}
	if req.Projects != nil {
		projects, parseErr := parseProjects(*req.Projects)
		if parseErr != nil {
			return nil, parseErr
		}
		employee.Projects = projects
	}
	if req.DOJ != nil {
		if parseErr := setOptionalDate(&employee.DOJ, *req.DOJ); parseErr != nil {
			return nil, apperror.Validation("invalid doj, expected YYYY-MM-DD")
		}
	}
	if req.DOB != nil {
		if parseErr := setOptionalDate(&employee.DOB, *req.DOB); parseErr != nil {
			return nil, apperror.Validation("invalid dob, expected YYYY-MM-DD")
		}
	}
	if req.ApproverUserID != nil {
		approverID, parseErr := uuid.Parse(*req.ApproverUserID)
		if parseErr != nil {
			return nil, apperror.Validation("invalid approver_user_id")
		}
		employee.ApproverUserID = &approverID
	}
	applyString(&employee.EmpID, req.EmpID)
	applyString(&employee.FirstName, req.FirstName)
	applyString(&employee.LastName, req.LastName)
	applyString(&employee.FatherName, req.FatherName)
	applyString(&employee.Gender, req.Gender)
	applyString(&employee.WorkEmail, req.WorkEmail)
	applyString(&employee.PersonalEmail, req.PersonalEmail)
	applyString(&employee.Mobile, req.Mobile)
	applyString(&employee.PAN, req.PAN)
	applyString(&employee.Aadhar, req.Aadhar)
	applyString(&employee.UAN, req.UAN)
	applyString(&employee.PFAccountNo, req.PFAccountNo)
	applyString(&employee.BankName, req.BankName)
	applyString(&employee.AccountNo, req.AccountNo)
	applyString(&employee.IFSC, req.IFSC)
	applyString(&employee.Branch, req.Branch)
	applyString(&employee.Address, req.Address)
	applyString(&employee.Pincode, req.Pincode)
	applyString(&employee.City, req.City)
	applyString(&employee.Department, req.Department)

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, model.ActionUpdateEmployee, employee.ID.String(), employee.FullName())
	return employee, nil
}

func (s *employeeService) Toggle(ctx context.Context, actor Actor, employeeID string, req ToggleStatusDTO) (*model.Employee, error) {
	employee, err := s.find(ctx, actor.OrgID, employeeID)
	if err != nil {
		return nil, err
	}

	if req.Field != FieldStatus {
		return nil, apperror.Validation("field must be status")
	}
	next, err := ToggleStatus(KindEmployee, FieldStatus, employee.Status)
	if err != nil {
		return nil, err
	}
	employee.Status = next

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, model.ActionToggleStatus, employee.ID.String(), employee.FullName())
	return employee, nil
}

func (s *employeeService) Delete(ctx context.Context, actor Actor, employeeID string) error {
	employee, err := s.find(ctx, actor.OrgID, employeeID)
	if err != nil {
		return err
	}
	if err := s.employeeRepo.Delete(ctx, actor.OrgID, employee.ID); err != nil {
		return err
	}
	s.audit(ctx, actor, model.ActionDeleteEmployee, employee.ID.String(), employee.FullName())
	return nil
}

func (s *employeeService) find(ctx context.Context, orgID uuid.UUID, employeeID string) (*model.Employee, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, apperror.Validation("invalid employee id")
	}
	employee, err := s.employeeRepo.FindByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("employee not found")
		}
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) audit(ctx context.Context, actor Actor, action, entityID, entityName string) {
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
