package service

import (
	"sort"
	"time"

	"backoffice/internal/model"
)

// Alert windows for the dashboard summary.
const (
	expiryAlertWindowDays   = 30
	birthdayAlertWindowDays = 15
)

// BuildDepartmentPL computes one P&L row per department from entity
// snapshots. Revenue counts Active clients only; cost counts Active
// employees and contractors. profitPercent is 0 when revenue is 0.
func BuildDepartmentPL(departments []string, clients []model.Client, employees []model.Employee, contractors []model.Contractor) []model.DepartmentPL {
	rows := make([]model.DepartmentPL, 0, len(departments))
	for _, dept := range departments {
		row := model.DepartmentPL{Department: dept}
		for _, c := range clients {
			if c.Service == dept && c.ClientStatus == model.ClientStatusActive {
				row.Revenue += c.AmountINR
			}
		}
		for _, e := range employees {
			if e.Department == dept && e.Status == model.StaffStatusActive {
				row.EmployeeCost += e.MonthlyGross
			}
		}
		for _, c := range contractors {
			if c.Department == dept && c.Status == model.StaffStatusActive {
				row.ContractorCost += c.MonthlyRetainer
			}
		}
		row.Profit = row.Revenue - row.EmployeeCost - row.ContractorCost
		if row.Revenue != 0 {
			row.ProfitPercent = row.Profit / row.Revenue * 100
		}
		rows = append(rows, row)
	}
	return rows
}

// BuildClientProfitability computes per-client profitability. Resource
// shares come from the allocation strategy restricted to each client.
// deptFilter narrows to one department when non-empty.
func BuildClientProfitability(strategy AllocationStrategy, clients []model.Client, employees []model.Employee, contractors []model.Contractor, deptFilter string) []model.ClientProfitability {
	rows := make([]model.ClientProfitability, 0, len(clients))
	for _, client := range clients {
		if client.ClientStatus != model.ClientStatusActive {
			continue
		}
		if deptFilter != "" && client.Service != deptFilter {
			continue
		}

		row := model.ClientProfitability{
			ClientID: client.ID.String(),
			Name:     client.Name,
			Service:  client.Service,
			Revenue:  client.AmountINR,
		}

		for _, emp := range employees {
			if emp.Status != model.StaffStatusActive {
				continue
			}
			if share, ok := strategy.AllocateCost(emp.MonthlyGross, emp.Projects)[client.ID]; ok {
				row.Resources = append(row.Resources, model.ResourceCost{
					PersonID: emp.ID.String(),
					Name:     emp.FullName(),
					Type:     "Employee",
					Share:    share,
				})
				row.TotalCost += share
			}
		}
		for _, con := range contractors {
			if con.Status != model.StaffStatusActive {
				continue
			}
			if share, ok := strategy.AllocateCost(con.MonthlyRetainer, con.Projects)[client.ID]; ok {
				row.Resources = append(row.Resources, model.ResourceCost{
					PersonID: con.ID.String(),
					Name:     con.Name,
					Type:     "Contractor",
					Share:    share,
				})
				row.TotalCost += share
			}
		}

		row.Profit = row.Revenue - row.TotalCost
		rows = append(rows, row)
	}
	return rows
}

// BuildResourceUtilization reports each active person's project spread.
func BuildResourceUtilization(strategy AllocationStrategy, employees []model.Employee, contractors []model.Contractor) []model.ResourceUtilization {
	rows := make([]model.ResourceUtilization, 0, len(employees)+len(contractors))
	add := func(id, name, personType, dept string, compensation float64, projects model.ProjectList) {
		row := model.ResourceUtilization{
			PersonID:     id,
			Name:         name,
			Type:         personType,
			Department:   dept,
			Compensation: compensation,
			ProjectCount: len(projects.Normalize()),
		}
		if shares := strategy.AllocateCost(compensation, projects); len(shares) > 0 {
			for _, share := range shares {
				row.SharePerProject = share
				break
			}
		}
		rows = append(rows, row)
	}

	for _, e := range employees {
		if e.Status == model.StaffStatusActive {
			add(e.ID.String(), e.FullName(), "Employee", e.Department, e.MonthlyGross, e.Projects)
		}
	}
	for _, c := range contractors {
		if c.Status == model.StaffStatusActive {
			add(c.ID.String(), c.Name, "Contractor", c.Department, c.MonthlyRetainer, c.Projects)
		}
	}
	return rows
}

// BuildAgreementAlerts splits Active clients into expiring (end date within
// the 30-day window from now) and expired (end date already passed). Both
// lists sort ascending by days until / since the end date.
func BuildAgreementAlerts(clients []model.Client, now time.Time) (expiring, expired []model.AgreementAlert) {
	today := dateOnly(now)
	for _, client := range clients {
		if client.ClientStatus != model.ClientStatusActive {
			continue
		}
		end := dateOnly(AgreementEndDate(client.StartDate, client.TenureMonths))
		daysLeft := int(end.Sub(today).Hours() / 24)
		alert := model.AgreementAlert{
			ClientID: client.ID.String(),
			Name:     client.Name,
			Service:  client.Service,
			EndDate:  end,
			DaysLeft: daysLeft,
		}
		switch {
		case daysLeft < 0:
			expired = append(expired, alert)
		case daysLeft <= expiryAlertWindowDays:
			expiring = append(expiring, alert)
		}
	}
	sort.Slice(expiring, func(i, j int) bool { return expiring[i].DaysLeft < expiring[j].DaysLeft })
	sort.Slice(expired, func(i, j int) bool { return expired[i].DaysLeft < expired[j].DaysLeft })
	return expiring, expired
}

// BuildBirthdayAlerts lists active employees and contractors whose birthday
// (month/day, year ignored) falls within the next 15 days, sorted by
// proximity.
func BuildBirthdayAlerts(employees []model.Employee, contractors []model.Contractor, now time.Time) []model.BirthdayAlert {
	var alerts []model.BirthdayAlert
	add := func(name, personType, dept string, dob time.Time) {
		if dob.IsZero() {
			return
		}
		days := daysUntilBirthday(dob, now)
		if days >= 0 && days <= birthdayAlertWindowDays {
			alerts = append(alerts, model.BirthdayAlert{
				Name:       name,
				Date:       dob,
				Type:       personType,
				Department: dept,
				DaysUntil:  days,
			})
		}
	}

	for _, e := range employees {
		if e.Status == model.StaffStatusActive {
			add(e.FullName(), "Employee", e.Department, e.DOB)
		}
	}
	for _, c := range contractors {
		if c.Status == model.StaffStatusActive {
			add(c.Name, "Contractor", c.Department, c.DOB)
		}
	}

	sort.Slice(alerts, func(i, j int) bool { return alerts[i].DaysUntil < alerts[j].DaysUntil })
	return alerts
}

// daysUntilBirthday compares month/day only; a birthday that already passed
// this year counts toward next year's occurrence.
func daysUntilBirthday(dob, now time.Time) int {
	today := dateOnly(now)
	next := time.Date(today.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = time.Date(today.Year()+1, dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
	}
	return int(next.Sub(today).Hours() / 24)
}

// BuildDeptMetrics produces the per-department count/amount maps the
// dashboard shows for revenue, employee cost and contractor cost.
func BuildDeptMetrics(departments []string, clients []model.Client, employees []model.Employee, contractors []model.Contractor) (map[string]model.DeptRevenue, map[string]model.DeptHeadcount, map[string]model.DeptHeadcount) {
	revenue := make(map[string]model.DeptRevenue, len(departments))
	empCost := make(map[string]model.DeptHeadcount, len(departments))
	conCost := make(map[string]model.DeptHeadcount, len(departments))

	for _, dept := range departments {
		var rev model.DeptRevenue
		for _, c := range clients {
			if c.Service == dept && c.ClientStatus == model.ClientStatusActive {
				rev.Count++
				rev.Amount += c.AmountINR
			}
		}
		revenue[dept] = rev

		var emp model.DeptHeadcount
		for _, e := range employees {
			if e.Department == dept && e.Status == model.StaffStatusActive {
				emp.Count++
				emp.Cost += e.MonthlyGross
			}
		}
		empCost[dept] = emp

		var con model.DeptHeadcount
		for _, c := range contractors {
			if c.Department == dept && c.Status == model.StaffStatusActive {
				con.Count++
				con.Cost += c.MonthlyRetainer
			}
		}
		conCost[dept] = con
	}

	return revenue, empCost, conCost
}
