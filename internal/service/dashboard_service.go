package service

import (
	"context"
	"time"

	"backoffice/internal/model"
	"backoffice/internal/repository"
)

// DashboardService rolls entity snapshots up into the derived reports.
// All reads are point-in-time: the reports reflect the store at invocation
// and never mutate anything.
type DashboardService interface {
	Summary(ctx context.Context, actor Actor, now time.Time) (model.DashboardSummary, error)
	DepartmentPL(ctx context.Context, actor Actor) ([]model.DepartmentPL, error)
	ClientProfitability(ctx context.Context, actor Actor, deptFilter string) ([]model.ClientProfitability, error)
	ResourceUtilization(ctx context.Context, actor Actor) ([]model.ResourceUtilization, error)
}

type dashboardService struct {
	clientRepo     repository.ClientRepository
	contractorRepo repository.ContractorRepository
	employeeRepo   repository.EmployeeRepository
	departmentRepo repository.DepartmentRepository
	strategy       AllocationStrategy
}

func NewDashboardService(
	clientRepo repository.ClientRepository,
	contractorRepo repository.ContractorRepository,
	employeeRepo repository.EmployeeRepository,
	departmentRepo repository.DepartmentRepository,
	strategy AllocationStrategy,
) DashboardService {
	return &dashboardService{
		clientRepo:     clientRepo,
		contractorRepo: contractorRepo,
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
		strategy:       strategy,
	}
}

// snapshot loads the org's entities once so every report in a request sees
// the same state.
func (s *dashboardService) snapshot(ctx context.Context, actor Actor) ([]model.Client, []model.Employee, []model.Contractor, []string, error) {
	clients, err := s.clientRepo.List(ctx, actor.OrgID, repository.ClientFilter{})
	if err != nil {
		return nil, nil, nil, nil, err
	}
	employees, err := s.employeeRepo.List(ctx, actor.OrgID, repository.PersonFilter{})
	if err != nil {
		return nil, nil, nil, nil, err
	}
	contractors, err := s.contractorRepo.List(ctx, actor.OrgID, repository.PersonFilter{})
	if err != nil {
		return nil, nil, nil, nil, err
	}
	depts, err := s.departmentRepo.List(ctx, actor.OrgID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	names := make([]string, 0, len(depts))
	for _, d := range depts {
		names = append(names, d.Name)
	}
	if len(names) == 0 {
		names = model.DefaultDepartments
	}
	return clients, employees, contractors, names, nil
}

func (s *dashboardService) Summary(ctx context.Context, actor Actor, now time.Time) (model.DashboardSummary, error) {
	clients, employees, contractors, departments, err := s.snapshot(ctx, actor)
	if err != nil {
		return model.DashboardSummary{}, err
	}

	expiring, expired := BuildAgreementAlerts(clients, now)
	birthdays := BuildBirthdayAlerts(employees, contractors, now)
	revenue, empCost, conCost := BuildDeptMetrics(departments, clients, employees, contractors)

	return model.DashboardSummary{
		Alerts: model.DashboardAlerts{
			ExpiringAgreements: expiring,
			ExpiredAgreements:  expired,
			UpcomingBirthdays:  birthdays,
		},
		Revenue:     revenue,
		Employees:   empCost,
		Contractors: conCost,
		GeneratedAt: now,
	}, nil
}

func (s *dashboardService) DepartmentPL(ctx context.Context, actor Actor) ([]model.DepartmentPL, error) {
	clients, employees, contractors, departments, err := s.snapshot(ctx, actor)
	if err != nil {
		return nil, err
	}
	return BuildDepartmentPL(departments, clients, employees, contractors), nil
}

func (s *dashboardService) ClientProfitability(ctx context.Context, actor Actor, deptFilter string) ([]model.ClientProfitability, error) {
	clients, employees, contractors, _, err := s.snapshot(ctx, actor)
	if err != nil {
		return nil, err
	}
	return BuildClientProfitability(s.strategy, clients, employees, contractors, deptFilter), nil
}

func (s *dashboardService) ResourceUtilization(ctx context.Context, actor Actor) ([]model.ResourceUtilization, error) {
	_, employees, contractors, _, err := s.snapshot(ctx, actor)
	if err != nil {
		return nil, err
	}
	return BuildResourceUtilization(s.strategy, employees, contractors), nil
}
