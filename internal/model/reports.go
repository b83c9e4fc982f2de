package model

import "time"

// DashboardSummary aggregates alert lists and per-department metrics.
type DashboardSummary struct {
	Alerts      DashboardAlerts           `json:"alerts"`
	Revenue     map[string]DeptRevenue    `json:"revenue"`
	Employees   map[string]DeptHeadcount  `json:"employees"`
	Contractors map[string]DeptHeadcount  `json:"contractors"`
	GeneratedAt time.Time                 `json:"generated_at"`
}

// DashboardAlerts groups the attention lists shown on the dashboard.
// Each list is sorted ascending by days until the trigger date.
type DashboardAlerts struct {
	ExpiringAgreements []AgreementAlert `json:"expiring_agreements"`
	ExpiredAgreements  []AgreementAlert `json:"expired_agreements"`
	UpcomingBirthdays  []BirthdayAlert  `json:"upcoming_birthdays"`
}

// AgreementAlert flags a client agreement that is about to expire or has.
type AgreementAlert struct {
	ClientID string    `json:"client_id"`
	Name     string    `json:"name"`
	Service  string    `json:"service"`
	EndDate  time.Time `json:"end_date"`
	DaysLeft int       `json:"days_left"` // negative when already expired
}

// BirthdayAlert flags an upcoming employee/contractor birthday.
type BirthdayAlert struct {
	Name       string    `json:"name"`
	Date       time.Time `json:"date"` // date of birth
	Type       string    `json:"type"` // Employee or Contractor
	Department string    `json:"department"`
	DaysUntil  int       `json:"days_until"`
}

// DeptRevenue holds active-client count and revenue for one department.
type DeptRevenue struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// DeptHeadcount holds active headcount and monthly cost for one department.
type DeptHeadcount struct {
	Count int     `json:"count"`
	Cost  float64 `json:"cost"`
}

// DepartmentPL is one row of the department profit & loss report.
type DepartmentPL struct {
	Department     string  `json:"department"`
	Revenue        float64 `json:"revenue"`
	EmployeeCost   float64 `json:"employee_cost"`
	ContractorCost float64 `json:"contractor_cost"`
	Profit         float64 `json:"profit"`
	ProfitPercent  float64 `json:"profit_percent"` // 0 when revenue is 0
}

// ClientProfitability is one row of the per-client profitability report.
type ClientProfitability struct {
	ClientID  string         `json:"client_id"`
	Name      string         `json:"name"`
	Service   string         `json:"service"`
	Revenue   float64        `json:"revenue"`
	TotalCost float64        `json:"total_cost"`
	Profit    float64        `json:"profit"`
	Resources []ResourceCost `json:"resources"`
}

// ResourceCost is one person's monthly share attributed to a client.
type ResourceCost struct {
	PersonID string  `json:"person_id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"` // Employee or Contractor
	Share    float64 `json:"share"`
}

// ResourceUtilization reports how a person's cost spreads over projects.
type ResourceUtilization struct {
	PersonID        string  `json:"person_id"`
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	Department      string  `json:"department"`
	Compensation    float64 `json:"compensation"`
	ProjectCount    int     `json:"project_count"`
	SharePerProject float64 `json:"share_per_project"` // 0 when unassigned
}
