package service

import (
	"context"
	"testing"

	"backoffice/internal/apperror"
	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type approvalFixture struct {
	svc       ApprovalService
	approvals *fakeApprovalRepo
	audit     *fakeAuditRepo
	hub       *fakeBroadcaster
	staff     Actor
	director  Actor
	client    *model.Client
}

func newApprovalFixture(t *testing.T) *approvalFixture {
	t.Helper()

	orgID := uuid.New()
	client := &model.Client{ID: uuid.New(), OrgID: orgID, Name: "Acme"}

	approvals := newFakeApprovalRepo()
	audit := &fakeAuditRepo{}
	hub := &fakeBroadcaster{}

	svc := NewApprovalService(
		approvals,
		&fakeClientRepo{clients: map[uuid.UUID]*model.Client{client.ID: client}},
		newFakeContractorRepo(),
		&fakeEmployeeRepo{employees: map[uuid.UUID]*model.Employee{}},
		audit,
		fakeTxManager{},
		hub,
	)

	return &approvalFixture{
		svc:       svc,
		approvals: approvals,
		audit:     audit,
		hub:       hub,
		staff:     Actor{UserID: uuid.New(), Role: model.RoleStaff, OrgID: orgID},
		director:  Actor{UserID: uuid.New(), Role: model.RoleDirector, OrgID: orgID},
		client:    client,
	}
}

func (f *approvalFixture) request(t *testing.T) ApprovalResponse {
	t.Helper()
	resp, err := f.svc.Request(context.Background(), f.staff, RequestApprovalDTO{
		ItemType: model.ApprovalItemClient,
		ItemID:   f.client.ID.String(),
	})
	require.NoError(t, err)
	return resp
}

func assertAppCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestRequestApprovalOnlyStaff(t *testing.T) {
	f := newApprovalFixture(t)

	for _, role := range []string{model.RoleAdmin, model.RoleDirector} {
		actor := Actor{UserID: uuid.New(), Role: role, OrgID: f.staff.OrgID}
		_, err := f.svc.Request(context.Background(), actor, RequestApprovalDTO{
			ItemType: model.ApprovalItemClient,
			ItemID:   f.client.ID.String(),
		})
		assertAppCode(t, err, apperror.CodeForbidden)
	}
}

func TestRequestApproval(t *testing.T) {
	f := newApprovalFixture(t)

	resp := f.request(t)

	assert.Equal(t, model.ApprovalRequested, resp.Status)
	assert.Equal(t, model.ApprovalItemClient, resp.ItemType)
	assert.Equal(t, f.staff.UserID.String(), resp.RequestedBy)
	assert.Nil(t, resp.DecidedBy)

	assert.Equal(t, []string{model.ActionRequestApproval}, f.audit.actions())
	assert.Equal(t, []string{"approval_requested"}, f.hub.events)
}

func TestRequestApprovalInvalidItemID(t *testing.T) {
	f := newApprovalFixture(t)

	_, err := f.svc.Request(context.Background(), f.staff, RequestApprovalDTO{
		ItemType: model.ApprovalItemClient,
		ItemID:   "not-a-uuid",
	})
	assertAppCode(t, err, apperror.CodeInvalidInput)
}

func TestRequestApprovalUnknownItem(t *testing.T) {
	f := newApprovalFixture(t)

	_, err := f.svc.Request(context.Background(), f.staff, RequestApprovalDTO{
		ItemType: model.ApprovalItemEmployee,
		ItemID:   uuid.NewString(),
	})
	assertAppCode(t, err, apperror.CodeNotFound)
}

func TestRequestApprovalDuplicateConflicts(t *testing.T) {
	f := newApprovalFixture(t)
	f.request(t)

	_, err := f.svc.Request(context.Background(), f.staff, RequestApprovalDTO{
		ItemType: model.ApprovalItemClient,
		ItemID:   f.client.ID.String(),
	})
	assertAppCode(t, err, apperror.CodeConflict)
}

func TestRequestApprovalBlockedAfterDecision(t *testing.T) {
	f := newApprovalFixture(t)
	resp := f.request(t)

	_, err := f.svc.Decide(context.Background(), f.director, resp.ID, DecideApprovalDTO{Action: ApprovalActionReject})
	require.NoError(t, err)

	// A resolved approval still blocks a fresh request for the same item.
	_, err = f.svc.Request(context.Background(), f.staff, RequestApprovalDTO{
		ItemType: model.ApprovalItemClient,
		ItemID:   f.client.ID.String(),
	})
	assertAppCode(t, err, apperror.CodeConflict)
}

func TestDecideOnlyDirector(t *testing.T) {
	f := newApprovalFixture(t)
	resp := f.request(t)

	for _, role := range []string{model.RoleAdmin, model.RoleStaff} {
		actor := Actor{UserID: uuid.New(), Role: role, OrgID: f.staff.OrgID}
		_, err := f.svc.Decide(context.Background(), actor, resp.ID, DecideApprovalDTO{Action: ApprovalActionApprove})
		assertAppCode(t, err, apperror.CodeForbidden)
	}
}

func TestDecideApprove(t *testing.T) {
	f := newApprovalFixture(t)
	resp := f.request(t)

	decided, err := f.svc.Decide(context.Background(), f.director, resp.ID, DecideApprovalDTO{
		Action: ApprovalActionApprove,
		Notes:  "terms look fine",
	})
	require.NoError(t, err)

	assert.Equal(t, model.ApprovalApproved, decided.Status)
	assert.Equal(t, "terms look fine", decided.Notes)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, f.director.UserID.String(), *decided.DecidedBy)
	assert.NotNil(t, decided.DecidedAt)

	assert.Contains(t, f.audit.actions(), model.ActionApproveItem)
	assert.Equal(t, []string{"approval_requested", "approval_decided"}, f.hub.events)
}

func TestDecideHoldStaysDecidable(t *testing.T) {
	f := newApprovalFixture(t)
	resp := f.request(t)

	held, err := f.svc.Decide(context.Background(), f.director, resp.ID, DecideApprovalDTO{Action: ApprovalActionHold})
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalHold, held.Status)

	approved, err := f.svc.Decide(context.Background(), f.director, resp.ID, DecideApprovalDTO{Action: ApprovalActionApprove})
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalApproved, approved.Status)
}

func TestDecideTerminalStates(t *testing.T) {
	f := newApprovalFixture(t)
	resp := f.request(t)

	_, err := f.svc.Decide(context.Background(), f.director, resp.ID, DecideApprovalDTO{Action: ApprovalActionApprove})
	require.NoError(t, err)

	_, err = f.svc.Decide(context.Background(), f.director, resp.ID, DecideApprovalDTO{Action: ApprovalActionReject})
	assertAppCode(t, err, apperror.CodeInvalidState)
}

func TestDecideUnknownApproval(t *testing.T) {
	f := newApprovalFixture(t)

	_, err := f.svc.Decide(context.Background(), f.director, uuid.NewString(), DecideApprovalDTO{Action: ApprovalActionApprove})
	assertAppCode(t, err, apperror.CodeNotFound)
}

func TestListFiltersByStatus(t *testing.T) {
	f := newApprovalFixture(t)
	resp := f.request(t)

	_, err := f.svc.Decide(context.Background(), f.director, resp.ID, DecideApprovalDTO{Action: ApprovalActionApprove})
	require.NoError(t, err)

	approved, total, err := f.svc.List(context.Background(), f.director, model.ApprovalApproved, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, approved, 1)
	assert.Equal(t, resp.ID, approved[0].ID)

	requested, total, err := f.svc.List(context.Background(), f.director, model.ApprovalRequested, 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, requested)
}

func TestResetForbiddenForDirectors(t *testing.T) {
	f := newApprovalFixture(t)

	_, err := f.svc.Reset(context.Background(), f.director)
	assertAppCode(t, err, apperror.CodeForbidden)
}

func TestResetDeletesAll(t *testing.T) {
	f := newApprovalFixture(t)
	f.request(t)

	deleted, err := f.svc.Reset(context.Background(), f.staff)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, total, err := f.svc.List(context.Background(), f.staff, "", 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total)

	// The item can be requested again after a reset.
	f.request(t)
}
