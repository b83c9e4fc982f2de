package service

import (
	"fmt"
	"time"

	"backoffice/internal/apperror"
	"backoffice/internal/model"
)

// Togglable status fields.
const (
	FieldSignStatus   = "sign_status"
	FieldClientStatus = "client_status"
	FieldStatus       = "status"
)

// Entity kinds accepted by the status engine.
const (
	KindClient     = "client"
	KindContractor = "contractor"
	KindEmployee   = "employee"
)

// statusRing is a two-state cycle. Toggling always lands on the other
// member, so invalid target states are unrepresentable.
type statusRing [2]string

func (r statusRing) next(current string) (string, bool) {
	switch current {
	case r[0]:
		return r[1], true
	case r[1]:
		return r[0], true
	default:
		return "", false
	}
}

// statusRings maps (entity kind, field) to its transition ring.
var statusRings = map[[2]string]statusRing{
	{KindClient, FieldSignStatus}:       {model.SignStatusNotSigned, model.SignStatusSigned},
	{KindClient, FieldClientStatus}:     {model.ClientStatusActive, model.ClientStatusChurned},
	{KindContractor, FieldSignStatus}:   {model.SignStatusNotSigned, model.SignStatusSigned},
	{KindContractor, FieldStatus}:       {model.StaffStatusActive, model.StaffStatusTerminated},
	{KindEmployee, FieldStatus}:         {model.StaffStatusActive, model.StaffStatusTerminated},
}

// ToggleStatus returns the deterministic complement of the current value for
// the given entity kind and field. Unknown fields fail with INVALID_INPUT,
// unknown current values with INVALID_STATE.
func ToggleStatus(kind, field, current string) (string, error) {
	ring, ok := statusRings[[2]string{kind, field}]
	if !ok {
		return "", apperror.Validation(fmt.Sprintf("field %q is not a togglable status for %s", field, kind))
	}
	next, ok := ring.next(current)
	if !ok {
		return "", apperror.InvalidState(fmt.Sprintf("unexpected %s value %q", field, current))
	}
	return next, nil
}

// AgreementEndDate computes the contract end from start date and tenure.
func AgreementEndDate(startDate time.Time, tenureMonths int) time.Time {
	return startDate.AddDate(0, tenureMonths, 0)
}

// DeriveAgreementStatus classifies an agreement as Live or Expired. The
// comparison is date-only: an agreement stays Live through its end date.
func DeriveAgreementStatus(startDate time.Time, tenureMonths int, now time.Time) string {
	end := AgreementEndDate(startDate, tenureMonths)
	if dateOnly(now).After(dateOnly(end)) {
		return model.AgreementExpired
	}
	return model.AgreementLive
}

// DeriveWarrantyStatus classifies an asset warranty the same way.
func DeriveWarrantyStatus(purchaseDate time.Time, warrantyMonths int, now time.Time) string {
	end := purchaseDate.AddDate(0, warrantyMonths, 0)
	if dateOnly(now).After(dateOnly(end)) {
		return model.WarrantyExpired
	}
	return model.WarrantyActive
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
