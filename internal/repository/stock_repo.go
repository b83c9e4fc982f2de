package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockRepository persists the availability balances and the append-only
// transaction ledger. Transactions are never updated or deleted.
type StockRepository interface {
	// FindAvailabilityForUpdate locks the product's balance row so
	// concurrent stock movements for the same product serialize.
	FindAvailabilityForUpdate(ctx context.Context, orgID uuid.UUID, productName string) (*model.StockAvailability, error)
	CreateAvailability(ctx context.Context, stock *model.StockAvailability) error
	UpdateAvailability(ctx context.Context, stock *model.StockAvailability) error
	ListAvailability(ctx context.Context, orgID uuid.UUID) ([]model.StockAvailability, error)
	FindAvailabilityByID(ctx context.Context, orgID, id uuid.UUID) (*model.StockAvailability, error)

	AppendTransaction(ctx context.Context, tx *model.StockTransaction) error
	ListTransactions(ctx context.Context, orgID uuid.UUID) ([]model.StockTransaction, error)
	ListTransactionsForProduct(ctx context.Context, orgID uuid.UUID, productName string) ([]model.StockTransaction, error)
}

type stockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) FindAvailabilityForUpdate(ctx context.Context, orgID uuid.UUID, productName string) (*model.StockAvailability, error) {
	var stock model.StockAvailability
	err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&stock, "org_id = ? AND product_name = ?", orgID, productName).Error
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *stockRepository) CreateAvailability(ctx context.Context, stock *model.StockAvailability) error {
	return GetDB(ctx, r.db).Create(stock).Error
}

func (r *stockRepository) UpdateAvailability(ctx context.Context, stock *model.StockAvailability) error {
	return GetDB(ctx, r.db).Save(stock).Error
}

func (r *stockRepository) ListAvailability(ctx context.Context, orgID uuid.UUID) ([]model.StockAvailability, error) {
	var stocks []model.StockAvailability
	if err := GetDB(ctx, r.db).Where("org_id = ?", orgID).Order("product_name").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

func (r *stockRepository) FindAvailabilityByID(ctx context.Context, orgID, id uuid.UUID) (*model.StockAvailability, error) {
	var stock model.StockAvailability
	if err := GetDB(ctx, r.db).First(&stock, "id = ? AND org_id = ?", id, orgID).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *stockRepository) AppendTransaction(ctx context.Context, tx *model.StockTransaction) error {
	return GetDB(ctx, r.db).Create(tx).Error
}

func (r *stockRepository) ListTransactions(ctx context.Context, orgID uuid.UUID) ([]model.StockTransaction, error) {
	var txs []model.StockTransaction
	if err := GetDB(ctx, r.db).Where("org_id = ?", orgID).Order("date DESC, created_at DESC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *stockRepository) ListTransactionsForProduct(ctx context.Context, orgID uuid.UUID, productName string) ([]model.StockTransaction, error) {
	var txs []model.StockTransaction
	if err := GetDB(ctx, r.db).
		Where("org_id = ? AND product_name = ?", orgID, productName).
		Order("date, created_at").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}
