package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SignStatus enum constants
const (
	SignStatusSigned    = "Signed"
	SignStatusNotSigned = "Not signed"
)

// ClientStatus enum constants
const (
	ClientStatusActive  = "Active"
	ClientStatusChurned = "Churned"
)

// AgreementStatus enum constants. Agreement status is derived from
// start_date + tenure_months against the current date and recomputed on
// every read — the stored value is a convenience, never the truth.
const (
	AgreementLive    = "Live"
	AgreementExpired = "Expired"
)

// Currency enum constants
const (
	CurrencyUSD = "USD"
	CurrencyINR = "INR"
)

// Client represents a serviced customer account with its contract terms.
type Client struct {
	ID                   uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrgID                uuid.UUID      `gorm:"type:uuid;not null;index" json:"org_id"`
	Name                 string         `gorm:"type:varchar(255);not null" json:"name"`
	Address              string         `gorm:"type:text" json:"address"`
	StartDate            time.Time      `gorm:"type:date;not null" json:"start_date"`
	TenureMonths         int            `gorm:"type:int;not null" json:"tenure_months"`
	EndDate              time.Time      `gorm:"type:date" json:"end_date"` // start_date + tenure_months
	CurrencyPreference   string         `gorm:"type:varchar(10);not null;default:'INR'" json:"currency_preference"`
	Service              string         `gorm:"type:varchar(100);not null;index" json:"service"` // department delivering the account
	AmountINR            float64        `gorm:"type:decimal(14,2);not null" json:"amount_inr"`
	AmountPPC            *float64       `gorm:"type:decimal(14,2)" json:"amount_ppc"`
	AmountSEO            *float64       `gorm:"type:decimal(14,2)" json:"amount_seo"`
	AuthorisedSignatory  string         `gorm:"type:varchar(255)" json:"authorised_signatory"`
	SignatoryDesignation string         `gorm:"type:varchar(255)" json:"signatory_designation"`
	GST                  string         `gorm:"type:varchar(50)" json:"gst"`
	POCName              string         `gorm:"type:varchar(255)" json:"poc_name"`
	POCEmail             string         `gorm:"type:varchar(255)" json:"poc_email"`
	POCDesignation       string         `gorm:"type:varchar(255)" json:"poc_designation"`
	POCMobile            string         `gorm:"type:varchar(50)" json:"poc_mobile"`
	ApproverUserID       *uuid.UUID     `gorm:"type:uuid" json:"approver_user_id"`
	SignStatus           string         `gorm:"type:varchar(20);not null;default:'Not signed'" json:"sign_status"`
	ClientStatus         string         `gorm:"type:varchar(20);not null;default:'Active';index" json:"client_status"`
	AgreementStatus      string         `gorm:"type:varchar(20);not null;default:'Live'" json:"agreement_status"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}
