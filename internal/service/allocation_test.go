package service

import (
	"testing"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEqualSplitNoProjects(t *testing.T) {
	shares := EqualSplit{}.AllocateCost(50000, nil)
	assert.Empty(t, shares)
}

func TestEqualSplitSingleProject(t *testing.T) {
	clientID := uuid.New()
	shares := EqualSplit{}.AllocateCost(60000, model.ProjectList{clientID})
	assert.Len(t, shares, 1)
	assert.InDelta(t, 60000, shares[clientID], 0.001)
}

func TestEqualSplitDividesEqually(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	shares := EqualSplit{}.AllocateCost(90000, model.ProjectList{a, b, c})
	assert.Len(t, shares, 3)
	assert.InDelta(t, 30000, shares[a], 0.001)
	assert.InDelta(t, 30000, shares[b], 0.001)
	assert.InDelta(t, 30000, shares[c], 0.001)
}

func TestEqualSplitDeduplicatesAssignments(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	shares := EqualSplit{}.AllocateCost(80000, model.ProjectList{a, b, a})
	assert.Len(t, shares, 2)
	assert.InDelta(t, 40000, shares[a], 0.001)
	assert.InDelta(t, 40000, shares[b], 0.001)
}

func TestCostForClient(t *testing.T) {
	clientID := uuid.New()
	otherID := uuid.New()

	employees := []model.Employee{
		{MonthlyGross: 60000, Projects: model.ProjectList{clientID, otherID}}, // 30000 here
		{MonthlyGross: 40000, Projects: model.ProjectList{otherID}},           // nothing here
		{MonthlyGross: 20000},                                                 // unassigned, unattributed
	}
	contractors := []model.Contractor{
		{MonthlyRetainer: 25000, Projects: model.ProjectList{clientID}}, // 25000 here
	}

	total := CostForClient(EqualSplit{}, clientID, employees, contractors)
	assert.InDelta(t, 55000, total, 0.001)
}
