package service

import (
	"context"
	"testing"

	"backoffice/internal/apperror"
	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stockFixture struct {
	svc   StockService
	repo  *fakeStockRepo
	audit *fakeAuditRepo
	hub   *fakeBroadcaster
	actor Actor
}

func newStockFixture(t *testing.T) *stockFixture {
	t.Helper()

	repo := newFakeStockRepo()
	audit := &fakeAuditRepo{}
	hub := &fakeBroadcaster{}

	return &stockFixture{
		svc:   NewStockService(repo, audit, fakeTxManager{}, hub),
		repo:  repo,
		audit: audit,
		hub:   hub,
		actor: Actor{UserID: uuid.New(), Role: model.RoleAdmin, OrgID: uuid.New()},
	}
}

func (f *stockFixture) available(t *testing.T, product string) int {
	t.Helper()
	stocks, err := f.svc.ListAvailability(context.Background(), f.actor)
	require.NoError(t, err)
	for _, s := range stocks {
		if s.ProductName == product {
			return s.Available
		}
	}
	t.Fatalf("no availability row for %q", product)
	return 0
}

func TestStockInCreatesAvailability(t *testing.T) {
	f := newStockFixture(t)

	tx, err := f.svc.StockIn(context.Background(), f.actor, StockInDTO{
		ProductName: "Laptop",
		VendorName:  "Dell",
		InvoiceNo:   "INV-001",
		Date:        "2026-09-01",
		Quantity:    100,
		Price:       decimal.NewFromInt(55000),
	})
	require.NoError(t, err)

	assert.Equal(t, model.StockTxIn, tx.Type)
	assert.Equal(t, 100, tx.Quantity)
	assert.Equal(t, 100, tx.StockAfter)
	require.NotNil(t, tx.Price)
	assert.True(t, tx.Price.Equal(decimal.NewFromInt(55000)))

	assert.Equal(t, 100, f.available(t, "Laptop"))
	assert.Equal(t, []string{model.ActionStockIn}, f.audit.actions())
	assert.Equal(t, []string{"stock_in"}, f.hub.events)
}

func TestStockOutReducesAvailability(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.StockIn(context.Background(), f.actor, StockInDTO{
		ProductName: "Laptop", Date: "2026-09-01", Quantity: 100,
	})
	require.NoError(t, err)

	tx, err := f.svc.StockOut(context.Background(), f.actor, StockOutDTO{
		ProductName: "Laptop", IssuedTo: "Asha Rao", Date: "2026-09-02", Quantity: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StockTxOut, tx.Type)
	assert.Equal(t, 70, tx.StockAfter)
	assert.Nil(t, tx.Price)
	assert.Equal(t, 70, f.available(t, "Laptop"))
}

func TestStockOutInsufficientLeavesBalanceUntouched(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.StockIn(context.Background(), f.actor, StockInDTO{
		ProductName: "Laptop", Date: "2026-09-01", Quantity: 100,
	})
	require.NoError(t, err)
	_, err = f.svc.StockOut(context.Background(), f.actor, StockOutDTO{
		ProductName: "Laptop", Date: "2026-09-02", Quantity: 30,
	})
	require.NoError(t, err)

	_, err = f.svc.StockOut(context.Background(), f.actor, StockOutDTO{
		ProductName: "Laptop", Date: "2026-09-03", Quantity: 80,
	})
	assertAppCode(t, err, apperror.CodeConflict)

	assert.Equal(t, 70, f.available(t, "Laptop"))

	// The rejected movement leaves no ledger entry behind.
	txs, err := f.svc.ListTransactions(context.Background(), f.actor)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestStockOutUnknownProduct(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.StockOut(context.Background(), f.actor, StockOutDTO{
		ProductName: "Ghost", Date: "2026-09-01", Quantity: 1,
	})
	assertAppCode(t, err, apperror.CodeNotFound)
}

func TestStockInInvalidDate(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.StockIn(context.Background(), f.actor, StockInDTO{
		ProductName: "Laptop", Date: "01/09/2026", Quantity: 10,
	})
	assertAppCode(t, err, apperror.CodeInvalidInput)
}

func TestLedgerBalanceMatchesAvailability(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	_, err := f.svc.StockIn(ctx, f.actor, StockInDTO{ProductName: "Chair", Date: "2026-08-01", Quantity: 40})
	require.NoError(t, err)
	_, err = f.svc.StockOut(ctx, f.actor, StockOutDTO{ProductName: "Chair", Date: "2026-08-10", Quantity: 15})
	require.NoError(t, err)
	_, err = f.svc.StockIn(ctx, f.actor, StockInDTO{ProductName: "Chair", Date: "2026-08-20", Quantity: 5})
	require.NoError(t, err)

	balance, err := f.svc.LedgerBalance(ctx, f.actor, "Chair")
	require.NoError(t, err)
	assert.Equal(t, 30, balance)
	assert.Equal(t, balance, f.available(t, "Chair"))
}

func TestUpdateNotes(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	_, err := f.svc.StockIn(ctx, f.actor, StockInDTO{ProductName: "Desk", Date: "2026-09-01", Quantity: 3})
	require.NoError(t, err)

	stocks, err := f.svc.ListAvailability(ctx, f.actor)
	require.NoError(t, err)
	require.Len(t, stocks, 1)

	updated, err := f.svc.UpdateNotes(ctx, f.actor, stocks[0].ID.String(), UpdateStockNotesDTO{Notes: "storage room B"})
	require.NoError(t, err)
	assert.Equal(t, "storage room B", updated.Notes)
}

func TestUpdateNotesUnknownID(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.UpdateNotes(context.Background(), f.actor, uuid.NewString(), UpdateStockNotesDTO{Notes: "x"})
	assertAppCode(t, err, apperror.CodeNotFound)
}

// racingStockRepo simulates the window where another transaction inserts
// the first availability row after this one saw nothing to lock.
type racingStockRepo struct {
	*fakeStockRepo
}

func (r *racingStockRepo) FindAvailabilityForUpdate(ctx context.Context, orgID uuid.UUID, productName string) (*model.StockAvailability, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestStockInConcurrentFirstMovementConflicts(t *testing.T) {
	inner := newFakeStockRepo()
	audit := &fakeAuditRepo{}
	hub := &fakeBroadcaster{}
	actor := Actor{UserID: uuid.New(), Role: model.RoleAdmin, OrgID: uuid.New()}

	require.NoError(t, inner.CreateAvailability(context.Background(), &model.StockAvailability{
		OrgID: actor.OrgID, ProductName: "Laptop", Available: 50,
	}))

	svc := NewStockService(&racingStockRepo{inner}, audit, fakeTxManager{}, hub)
	_, err := svc.StockIn(context.Background(), actor, StockInDTO{
		ProductName: "Laptop", Date: "2026-09-01", Quantity: 10,
	})
	assertAppCode(t, err, apperror.CodeConflict)

	// The losing movement leaves no trace: no ledger entry, no audit
	// entry, no broadcast, balance unchanged.
	assert.Empty(t, inner.transactions)
	assert.Empty(t, audit.entries)
	assert.Empty(t, hub.events)

	stocks, err := inner.ListAvailability(context.Background(), actor.OrgID)
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	assert.Equal(t, 50, stocks[0].Available)
}
