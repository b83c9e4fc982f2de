package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"backoffice/internal/apperror"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type StockInDTO struct {
	ProductName string          `json:"product_name" binding:"required"`
	VendorName  string          `json:"vendor_name"`
	InvoiceNo   string          `json:"invoice_number"`
	Email       string          `json:"email"`
	Date        string          `json:"date" binding:"required"` // YYYY-MM-DD
	Quantity    int             `json:"quantity" binding:"required,gt=0"`
	Price       decimal.Decimal `json:"price"`
	Notes       string          `json:"notes"`
}

type StockOutDTO struct {
	ProductName string `json:"product_name" binding:"required"`
	IssuedTo    string `json:"issued_to"`
	Email       string `json:"email"`
	Date        string `json:"date" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	Notes       string `json:"notes"`
}

type UpdateStockNotesDTO struct {
	Notes string `json:"notes"`
}

// --- Interface ---

// StockService maintains the office stock ledger: an append-only
// transaction log plus a running availability balance per product.
type StockService interface {
	StockIn(ctx context.Context, actor Actor, req StockInDTO) (*model.StockTransaction, error)
	StockOut(ctx context.Context, actor Actor, req StockOutDTO) (*model.StockTransaction, error)
	ListAvailability(ctx context.Context, actor Actor) ([]model.StockAvailability, error)
	ListTransactions(ctx context.Context, actor Actor) ([]model.StockTransaction, error)
	// LedgerBalance folds the product's transactions into a balance. It must
	// agree with the stored availability row; used by consistency checks.
	LedgerBalance(ctx context.Context, actor Actor, productName string) (int, error)
	UpdateNotes(ctx context.Context, actor Actor, stockID string, req UpdateStockNotesDTO) (*model.StockAvailability, error)
}

type stockService struct {
	stockRepo repository.StockRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
	hub       EventBroadcaster
}

func NewStockService(
	stockRepo repository.StockRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub EventBroadcaster,
) StockService {
	return &stockService{
		stockRepo: stockRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		hub:       hub,
	}
}

// --- Implementation ---

func (s *stockService) StockIn(ctx context.Context, actor Actor, req StockInDTO) (*model.StockTransaction, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, apperror.Validation("invalid date, expected YYYY-MM-DD")
	}
	if req.Quantity <= 0 {
		return nil, apperror.Validation("quantity must be positive")
	}

	var tx *model.StockTransaction
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		stock, findErr := s.stockRepo.FindAvailabilityForUpdate(txCtx, actor.OrgID, req.ProductName)
		if findErr != nil {
			if !errors.Is(findErr, gorm.ErrRecordNotFound) {
				return findErr
			}
			stock = &model.StockAvailability{
				OrgID:       actor.OrgID,
				ProductName: req.ProductName,
				VendorName:  req.VendorName,
				Available:   0,
				Notes:       req.Notes,
			}
			if createErr := s.stockRepo.CreateAvailability(txCtx, stock); createErr != nil {
				// The unique index backstops two first-ever stock-ins for
				// the same product that both saw no row to lock.
				if errors.Is(createErr, gorm.ErrDuplicatedKey) {
					return apperror.Conflict("concurrent stock movement for " + req.ProductName + ", please retry")
				}
				return createErr
			}
		}

		stock.Available += req.Quantity
		if req.VendorName != "" {
			stock.VendorName = req.VendorName
		}
		if updateErr := s.stockRepo.UpdateAvailability(txCtx, stock); updateErr != nil {
			return updateErr
		}

		price := req.Price
		tx = &model.StockTransaction{
			OrgID:       actor.OrgID,
			Type:        model.StockTxIn,
			ProductName: req.ProductName,
			Counterpart: req.VendorName,
			InvoiceNo:   req.InvoiceNo,
			Email:       req.Email,
			Date:        date,
			Quantity:    req.Quantity,
			Price:       &price,
			StockAfter:  stock.Available,
		}
		if appendErr := s.stockRepo.AppendTransaction(txCtx, tx); appendErr != nil {
			return appendErr
		}

		return s.audit(txCtx, actor, model.ActionStockIn, tx.ID.String(), req.ProductName, map[string]interface{}{
			"product":     req.ProductName,
			"quantity":    req.Quantity,
			"stock_after": stock.Available,
		})
	})
	if err != nil {
		return nil, err
	}

	s.broadcastStock("stock_in", tx)
	return tx, nil
}

func (s *stockService) StockOut(ctx context.Context, actor Actor, req StockOutDTO) (*model.StockTransaction, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, apperror.Validation("invalid date, expected YYYY-MM-DD")
	}
	if req.Quantity <= 0 {
		return nil, apperror.Validation("quantity must be positive")
	}

	var tx *model.StockTransaction
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		stock, findErr := s.stockRepo.FindAvailabilityForUpdate(txCtx, actor.OrgID, req.ProductName)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return apperror.NotFound("product not found in stock")
			}
			return findErr
		}

		// Balance can never go negative; rejection leaves it untouched.
		if req.Quantity > stock.Available {
			return apperror.Conflict("insufficient stock available")
		}

		stock.Available -= req.Quantity
		if updateErr := s.stockRepo.UpdateAvailability(txCtx, stock); updateErr != nil {
			return updateErr
		}

		tx = &model.StockTransaction{
			OrgID:       actor.OrgID,
			Type:        model.StockTxOut,
			ProductName: req.ProductName,
			Counterpart: req.IssuedTo,
			Email:       req.Email,
			Date:        date,
			Quantity:    req.Quantity,
			StockAfter:  stock.Available,
		}
		if appendErr := s.stockRepo.AppendTransaction(txCtx, tx); appendErr != nil {
			return appendErr
		}

		return s.audit(txCtx, actor, model.ActionStockOut, tx.ID.String(), req.ProductName, map[string]interface{}{
			"product":     req.ProductName,
			"quantity":    req.Quantity,
			"stock_after": stock.Available,
		})
	})
	if err != nil {
		return nil, err
	}

	s.broadcastStock("stock_out", tx)
	return tx, nil
}

func (s *stockService) ListAvailability(ctx context.Context, actor Actor) ([]model.StockAvailability, error) {
	return s.stockRepo.ListAvailability(ctx, actor.OrgID)
}

func (s *stockService) ListTransactions(ctx context.Context, actor Actor) ([]model.StockTransaction, error) {
	return s.stockRepo.ListTransactions(ctx, actor.OrgID)
}

func (s *stockService) LedgerBalance(ctx context.Context, actor Actor, productName string) (int, error) {
	txs, err := s.stockRepo.ListTransactionsForProduct(ctx, actor.OrgID, productName)
	if err != nil {
		return 0, err
	}
	balance := 0
	for _, tx := range txs {
		switch tx.Type {
		case model.StockTxIn:
			balance += tx.Quantity
		case model.StockTxOut:
			balance -= tx.Quantity
		}
	}
	return balance, nil
}

func (s *stockService) UpdateNotes(ctx context.Context, actor Actor, stockID string, req UpdateStockNotesDTO) (*model.StockAvailability, error) {
	id, err := uuid.Parse(stockID)
	if err != nil {
		return nil, apperror.Validation("invalid stock id")
	}

	stock, err := s.stockRepo.FindAvailabilityByID(ctx, actor.OrgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("stock record not found")
		}
		return nil, err
	}

	stock.Notes = req.Notes
	if err := s.stockRepo.UpdateAvailability(ctx, stock); err != nil {
		return nil, err
	}
	return stock, nil
}

func (s *stockService) audit(ctx context.Context, actor Actor, action, entityID, entityName string, details map[string]interface{}) error {
	payload, _ := json.Marshal(details)
	return s.auditRepo.Log(ctx, &model.AuditLog{
		OrgID:      actor.OrgID,
		UserID:     &actor.UserID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
	})
}

func (s *stockService) broadcastStock(event string, tx *model.StockTransaction) {
	if s.hub == nil || tx == nil {
		return
	}
	s.hub.BroadcastEvent(event, map[string]interface{}{
		"transaction_id": tx.ID.String(),
		"org_id":         tx.OrgID.String(),
		"product_name":   tx.ProductName,
		"type":           tx.Type,
		"quantity":       tx.Quantity,
		"stock_after":    tx.StockAfter,
	})
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
