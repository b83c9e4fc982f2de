package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WarrantyStatus enum constants. Derived from purchase_date +
// warranty_period_months against the current date.
const (
	WarrantyActive  = "Active"
	WarrantyExpired = "Expired"
)

// Asset represents a company-owned item allotted to a person.
type Asset struct {
	ID                    uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrgID                 uuid.UUID       `gorm:"type:uuid;not null;index" json:"org_id"`
	AssetType             string          `gorm:"type:varchar(100);not null" json:"asset_type"`
	Model                 string          `gorm:"type:varchar(255)" json:"model"`
	SerialNumber          string          `gorm:"type:varchar(100)" json:"serial_number"`
	PurchaseDate          time.Time       `gorm:"type:date;not null" json:"purchase_date"`
	Vendor                string          `gorm:"type:varchar(255)" json:"vendor"`
	ValueExGST            decimal.Decimal `gorm:"column:value_ex_gst;type:decimal(14,2);not null" json:"value_ex_gst"`
	WarrantyPeriodMonths  int             `gorm:"type:int;not null" json:"warranty_period_months"`
	AllotedTo             string          `gorm:"type:varchar(255)" json:"alloted_to"`
	Email                 string          `gorm:"type:varchar(255)" json:"email"`
	Department            string          `gorm:"type:varchar(100);index" json:"department"`
	WarrantyStatus        string          `gorm:"type:varchar(20);not null;default:'Active'" json:"warranty_status"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
	DeletedAt             gorm.DeletedAt  `gorm:"index" json:"-"`
}
