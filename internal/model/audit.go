package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateClient     = "CREATE_CLIENT"
	ActionUpdateClient     = "UPDATE_CLIENT"
	ActionDeleteClient     = "DELETE_CLIENT"
	ActionCreateContractor = "CREATE_CONTRACTOR"
	ActionUpdateContractor = "UPDATE_CONTRACTOR"
	ActionDeleteContractor = "DELETE_CONTRACTOR"
	ActionCreateEmployee   = "CREATE_EMPLOYEE"
	ActionUpdateEmployee   = "UPDATE_EMPLOYEE"
	ActionDeleteEmployee   = "DELETE_EMPLOYEE"
	ActionToggleStatus     = "TOGGLE_STATUS"

	ActionClearOrgData = "CLEAR_ORG_DATA"

	ActionCreateUser  = "CREATE_USER"
	ActionUpdateUser  = "UPDATE_USER"
	ActionDeleteUser  = "DELETE_USER"
	ActionCreateAsset = "CREATE_ASSET"
	ActionUpdateAsset = "UPDATE_ASSET"
	ActionDeleteAsset = "DELETE_ASSET"

	// Approval workflow actions
	ActionRequestApproval = "REQUEST_APPROVAL"
	ActionApproveItem     = "APPROVE_ITEM"
	ActionRejectItem      = "REJECT_ITEM"
	ActionHoldItem        = "HOLD_ITEM"
	ActionResetApprovals  = "RESET_APPROVALS"

	// Stock ledger actions
	ActionStockIn  = "STOCK_IN"
	ActionStockOut = "STOCK_OUT"
)

// AuditLog tracks who, what, and when for critical system changes.
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrgID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"org_id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"` // serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
