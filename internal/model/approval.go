package model

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalItemType enum constants
const (
	ApprovalItemClient     = "client"
	ApprovalItemContractor = "contractor"
	ApprovalItemEmployee   = "employee"
)

// ApprovalStatus enum constants
const (
	ApprovalRequested = "Requested"
	ApprovalApproved  = "Approved"
	ApprovalRejected  = "Rejected"
	ApprovalHold      = "Hold"
)

// Approval tracks sign-off on a record's financial terms. At most one row
// exists per (org, item_type, item_id) — enforced by the unique index and a
// locked check-and-insert in the service layer. A resolved row still blocks
// re-requests.
type Approval struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrgID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_approvals_org_item" json:"org_id"`
	ItemType     string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_approvals_org_item" json:"item_type"`
	ItemID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_approvals_org_item" json:"item_id"`
	Status       string     `gorm:"type:varchar(20);not null;default:'Requested';index" json:"status"`
	StaffRemarks string     `gorm:"type:text" json:"staff_remarks"`
	Notes        string     `gorm:"type:text" json:"notes"` // director's decision notes
	RequestedBy  uuid.UUID  `gorm:"type:uuid;not null;index" json:"requested_by"`
	Requester    *User      `gorm:"foreignKey:RequestedBy" json:"requester,omitempty"`
	DecidedBy    *uuid.UUID `gorm:"type:uuid" json:"decided_by"`
	Decider      *User      `gorm:"foreignKey:DecidedBy" json:"decider,omitempty"`
	DecidedAt    *time.Time `json:"decided_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
