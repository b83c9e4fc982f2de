package service

import "github.com/google/uuid"

// Actor is the explicit session context passed into every core operation.
// The engines never read tenant or role state from anywhere else.
type Actor struct {
	UserID uuid.UUID
	Role   string // Admin, Director, Staff
	OrgID  uuid.UUID
}
