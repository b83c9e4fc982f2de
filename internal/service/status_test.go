package service

import (
	"testing"
	"time"

	"backoffice/internal/apperror"
	"backoffice/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleStatus(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		field   string
		current string
		want    string
	}{
		{"client sign not signed to signed", KindClient, FieldSignStatus, model.SignStatusNotSigned, model.SignStatusSigned},
		{"client sign signed back to not signed", KindClient, FieldSignStatus, model.SignStatusSigned, model.SignStatusNotSigned},
		{"client status active to churned", KindClient, FieldClientStatus, model.ClientStatusActive, model.ClientStatusChurned},
		{"client status churned back to active", KindClient, FieldClientStatus, model.ClientStatusChurned, model.ClientStatusActive},
		{"contractor sign toggle", KindContractor, FieldSignStatus, model.SignStatusNotSigned, model.SignStatusSigned},
		{"contractor status active to terminated", KindContractor, FieldStatus, model.StaffStatusActive, model.StaffStatusTerminated},
		{"employee status terminated back to active", KindEmployee, FieldStatus, model.StaffStatusTerminated, model.StaffStatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToggleStatus(tt.kind, tt.field, tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToggleStatusDoubleToggleRoundTrips(t *testing.T) {
	once, err := ToggleStatus(KindClient, FieldClientStatus, model.ClientStatusActive)
	require.NoError(t, err)
	twice, err := ToggleStatus(KindClient, FieldClientStatus, once)
	require.NoError(t, err)
	assert.Equal(t, model.ClientStatusActive, twice)
}

func TestToggleStatusUnknownField(t *testing.T) {
	_, err := ToggleStatus(KindEmployee, FieldSignStatus, model.SignStatusSigned)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
}

func TestToggleStatusUnknownCurrentValue(t *testing.T) {
	_, err := ToggleStatus(KindClient, FieldClientStatus, "Paused")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
}

func TestAgreementEndDate(t *testing.T) {
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	end := AgreementEndDate(start, 12)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), end)
}

func TestDeriveAgreementStatus(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	// 6-month tenure ends 2025-07-01.
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"mid tenure", time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), model.AgreementLive},
		{"on the end date stays live", time.Date(2025, 7, 1, 23, 59, 0, 0, time.UTC), model.AgreementLive},
		{"day after end date", time.Date(2025, 7, 2, 0, 0, 1, 0, time.UTC), model.AgreementExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveAgreementStatus(start, 6, tt.now))
		})
	}
}

func TestDeriveWarrantyStatus(t *testing.T) {
	purchase := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, model.WarrantyActive, DeriveWarrantyStatus(purchase, 24, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, model.WarrantyExpired, DeriveWarrantyStatus(purchase, 24, time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)))
}
