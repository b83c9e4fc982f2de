package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee represents an in-house staff member on a monthly gross salary.
type Employee struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrgID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"org_id"`
	EmpID          string         `gorm:"type:varchar(50);not null" json:"emp_id"`
	FirstName      string         `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName       string         `gorm:"type:varchar(255);not null" json:"last_name"`
	FatherName     string         `gorm:"type:varchar(255)" json:"father_name"`
	DOJ            time.Time      `gorm:"type:date" json:"doj"`
	DOB            time.Time      `gorm:"type:date" json:"dob"`
	Gender         string         `gorm:"type:varchar(10)" json:"gender"`
	WorkEmail      string         `gorm:"type:varchar(255)" json:"work_email"`
	PersonalEmail  string         `gorm:"type:varchar(255)" json:"personal_email"`
	Mobile         string         `gorm:"type:varchar(50)" json:"mobile"`
	PAN            string         `gorm:"type:varchar(20)" json:"pan"`
	Aadhar         string         `gorm:"type:varchar(20)" json:"aadhar"`
	UAN            string         `gorm:"type:varchar(20)" json:"uan"`
	PFAccountNo    string         `gorm:"type:varchar(50)" json:"pf_account_no"`
	BankName       string         `gorm:"type:varchar(255)" json:"bank_name"`
	AccountNo      string         `gorm:"type:varchar(50)" json:"account_no"`
	IFSC           string         `gorm:"type:varchar(20)" json:"ifsc"`
	Branch         string         `gorm:"type:varchar(255)" json:"branch"`
	Address        string         `gorm:"type:text" json:"address"`
	Pincode        string         `gorm:"type:varchar(10)" json:"pincode"`
	City           string         `gorm:"type:varchar(100)" json:"city"`
	MonthlyGross   float64        `gorm:"column:monthly_gross_inr;type:decimal(14,2);not null" json:"monthly_gross_inr"`
	Department     string         `gorm:"type:varchar(100);not null;index" json:"department"`
	Projects       ProjectList    `gorm:"type:jsonb" json:"projects"`
	ApproverUserID *uuid.UUID     `gorm:"type:uuid" json:"approver_user_id"`
	Status         string         `gorm:"type:varchar(20);not null;default:'Active';index" json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// FullName joins first and last name for alert and report rows.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
