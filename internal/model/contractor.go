package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StaffStatus enum constants (employees and contractors)
const (
	StaffStatusActive     = "Active"
	StaffStatusTerminated = "Terminated"
)

// Contractor represents an external resource on a monthly retainer.
// Projects holds the client IDs the contractor is allocated to; the retainer
// is split equally across them by the allocation engine.
type Contractor struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrgID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"org_id"`
	Name              string         `gorm:"type:varchar(255);not null" json:"name"`
	DOJ               time.Time      `gorm:"type:date" json:"doj"`
	StartDate         time.Time      `gorm:"type:date;not null" json:"start_date"`
	TenureMonths      int            `gorm:"type:int;not null" json:"tenure_months"`
	EndDate           time.Time      `gorm:"type:date" json:"end_date"`
	DOB               time.Time      `gorm:"type:date" json:"dob"`
	Gender            string         `gorm:"type:varchar(10)" json:"gender"`
	PAN               string         `gorm:"type:varchar(20)" json:"pan"`
	Aadhar            string         `gorm:"type:varchar(20)" json:"aadhar"`
	Mobile            string         `gorm:"type:varchar(50)" json:"mobile"`
	PersonalEmail     string         `gorm:"type:varchar(255)" json:"personal_email"`
	BankName          string         `gorm:"type:varchar(255)" json:"bank_name"`
	AccountHolder     string         `gorm:"type:varchar(255)" json:"account_holder"`
	AccountNo         string         `gorm:"type:varchar(50)" json:"account_no"`
	IFSC              string         `gorm:"type:varchar(20)" json:"ifsc"`
	Address1          string         `gorm:"type:text" json:"address_1"`
	Address2          string         `gorm:"type:text" json:"address_2"`
	Pincode           string         `gorm:"type:varchar(10)" json:"pincode"`
	City              string         `gorm:"type:varchar(100)" json:"city"`
	Department        string         `gorm:"type:varchar(100);not null;index" json:"department"`
	Projects          ProjectList    `gorm:"type:jsonb" json:"projects"` // client IDs this person is allocated to
	MonthlyRetainer   float64        `gorm:"column:monthly_retainer_inr;type:decimal(14,2);not null" json:"monthly_retainer_inr"`
	Designation       string         `gorm:"type:varchar(255)" json:"designation"`
	ApproverUserID    *uuid.UUID     `gorm:"type:uuid" json:"approver_user_id"`
	SignStatus        string         `gorm:"type:varchar(20);not null;default:'Not signed'" json:"sign_status"`
	Status            string         `gorm:"type:varchar(20);not null;default:'Active';index" json:"status"`
	AgreementStatus   string         `gorm:"type:varchar(20);not null;default:'Live'" json:"agreement_status"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
