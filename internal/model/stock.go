package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockTransactionType enum constants
const (
	StockTxIn  = "Stock In"
	StockTxOut = "Stock Out"
)

// StockAvailability is the maintained running balance per (org, product).
// It always equals the fold over the product's transactions; stock-out is
// rejected if it would drive the balance negative.
type StockAvailability struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrgID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_org_product" json:"org_id"`
	ProductName string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_stock_org_product" json:"product_name"`
	VendorName  string    `gorm:"type:varchar(255)" json:"vendor_name"`
	Available   int       `gorm:"column:stock_available;type:int;not null;default:0" json:"stock_available"`
	Notes       string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StockTransaction is an immutable ledger entry. Rows are only ever
// appended — no update or delete path exists.
type StockTransaction struct {
	ID          uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrgID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"org_id"`
	Type        string           `gorm:"type:varchar(20);not null" json:"type"` // Stock In, Stock Out
	ProductName string           `gorm:"type:varchar(255);not null;index" json:"product_name"`
	Counterpart string           `gorm:"column:vendor_name_or_issued_to;type:varchar(255)" json:"vendor_name_or_issued_to"`
	InvoiceNo   string           `gorm:"type:varchar(100)" json:"invoice_number"`
	Email       string           `gorm:"type:varchar(255)" json:"email"`
	Date        time.Time        `gorm:"type:date;not null;index" json:"date"`
	Quantity    int              `gorm:"type:int;not null" json:"quantity"`
	Price       *decimal.Decimal `gorm:"type:decimal(14,2)" json:"price"` // stock-in only
	StockAfter  int              `gorm:"type:int;not null" json:"stock_after"`
	CreatedAt   time.Time        `json:"created_at"`
}
