package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role enum constants
const (
	RoleAdmin    = "Admin"
	RoleDirector = "Director"
	RoleStaff    = "Staff"
)

// UserStatus enum constants
const (
	UserStatusActive  = "Active"
	UserStatusInvited = "Invited"
)

// Organization is the tenant root. Every other record carries its OrgID.
type Organization struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	LogoURL     string    `gorm:"type:text" json:"logo_url"`
	AdminName   string    `gorm:"type:varchar(255);not null" json:"admin_name"`
	AdminEmail  string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"admin_email"`
	AdminMobile string    `gorm:"type:varchar(50)" json:"admin_mobile"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// User represents an org member. Role drives approval workflow gating:
// Staff originate requests, Directors decide them, Admins manage users.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrgID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_users_org_email" json:"org_id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_org_email" json:"email"`
	Mobile       string         `gorm:"type:varchar(50)" json:"mobile"`
	Role         string         `gorm:"type:varchar(20);not null" json:"role"` // Admin, Director, Staff
	Status       string         `gorm:"type:varchar(20);not null;default:'Active'" json:"status"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	OTPVerified  bool           `gorm:"default:false" json:"otp_verified"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// OTPCode stores the one-time code issued at login, consumed by verify-otp.
type OTPCode struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrgID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_otps_org_email" json:"org_id"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_otps_org_email" json:"email"`
	Code      string    `gorm:"type:varchar(10);not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
