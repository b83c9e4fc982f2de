package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProposalStatus enum constants
const (
	ProposalSent          = "Sent"
	ProposalApproved      = "Approved"
	ProposalRejected      = "Rejected"
	ProposalInNegotiation = "In Negotiation"
)

// OnboardingStatus enum constants
const (
	OnboardingDone = "Onboarded"
	OnboardingWIP  = "WIP"
	OnboardingNot  = "Not Onboarded"
)

// StringList stores a jsonb array of strings (requested service names).
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = StringList{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
	return json.Unmarshal(raw, s)
}

// ClientOnboarding is a pipeline record for a prospective client before a
// full Client row exists.
type ClientOnboarding struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrgID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"org_id"`
	ClientName       string         `gorm:"type:varchar(255);not null" json:"client_name"`
	POCName          string         `gorm:"type:varchar(255)" json:"poc_name"`
	POCEmail         string         `gorm:"type:varchar(255)" json:"poc_email"`
	Services         StringList     `gorm:"type:jsonb" json:"services"`
	Currency         string         `gorm:"type:varchar(10);not null;default:'INR'" json:"currency"`
	Pricing          float64        `gorm:"type:decimal(14,2);not null" json:"pricing"`
	ApproverUserID   *uuid.UUID     `gorm:"type:uuid" json:"approver_user_id"`
	ProposalStatus   string         `gorm:"type:varchar(30);not null;default:'Sent'" json:"proposal_status"`
	OnboardingStatus string         `gorm:"type:varchar(30);not null;default:'Not Onboarded'" json:"onboarding_status"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// Department is a per-org service line (PPC, SEO, ...). Both client revenue
// and staff cost roll up by department name.
type Department struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrgID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_departments_org_name" json:"org_id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_departments_org_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultDepartments seeds a fresh organization.
var DefaultDepartments = []string{"PPC", "SEO", "Content", "Backlink", "Business Development", "Others"}
