package service

import (
	"backoffice/internal/model"

	"github.com/google/uuid"
)

// AllocationStrategy decides how a person's monthly compensation spreads
// across their assigned client projects. The aggregation engine only talks
// to this interface, so alternate policies (weighted, time-based) can be
// swapped in without touching the reports.
type AllocationStrategy interface {
	// AllocateCost returns the per-client share of compensation. An
	// unassigned person yields an empty map: the cost stays unattributed.
	AllocateCost(compensation float64, projects model.ProjectList) map[uuid.UUID]float64
}

// EqualSplit divides compensation equally across all assigned projects.
// Division is exact floating point; rounding belongs to presentation.
type EqualSplit struct{}

func (EqualSplit) AllocateCost(compensation float64, projects model.ProjectList) map[uuid.UUID]float64 {
	projects = projects.Normalize()
	if len(projects) == 0 {
		return map[uuid.UUID]float64{}
	}
	share := compensation / float64(len(projects))
	out := make(map[uuid.UUID]float64, len(projects))
	for _, clientID := range projects {
		out[clientID] = share
	}
	return out
}

// CostForClient sums every assigned person's share for one client.
func CostForClient(strategy AllocationStrategy, clientID uuid.UUID, employees []model.Employee, contractors []model.Contractor) float64 {
	total := 0.0
	for _, emp := range employees {
		if share, ok := strategy.AllocateCost(emp.MonthlyGross, emp.Projects)[clientID]; ok {
			total += share
		}
	}
	for _, con := range contractors {
		if share, ok := strategy.AllocateCost(con.MonthlyRetainer, con.Projects)[clientID]; ok {
			total += share
		}
	}
	return total
}
