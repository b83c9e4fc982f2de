package service

import (
	"context"
	"testing"
	"time"

	"backoffice/internal/apperror"
	"backoffice/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocFixture(t *testing.T) (DocumentGenerator, *model.Organization) {
	t.Helper()
	gen, err := NewTemplateGenerator()
	require.NoError(t, err)
	gen.(*templateGenerator).now = func() time.Time {
		return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	}
	return gen, &model.Organization{Name: "Acme Agency"}
}

func TestClientAgreementSLA(t *testing.T) {
	gen, org := newDocFixture(t)
	client := &model.Client{
		Name:               "Globex",
		Service:            "PPC",
		StartDate:          time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		TenureMonths:       12,
		AmountINR:          100000,
		CurrencyPreference: model.CurrencyINR,
	}

	doc, err := gen.ClientAgreement(context.Background(), org, client, DocSLA)
	require.NoError(t, err)

	text := string(doc)
	assert.Contains(t, text, "SERVICE LEVEL AGREEMENT")
	assert.Contains(t, text, "Acme Agency")
	assert.Contains(t, text, "Globex")
	assert.Contains(t, text, "15 January 2026")
	assert.Contains(t, text, "15 January 2027")
	assert.Contains(t, text, "INR 100000.00")
}

func TestClientAgreementNDA(t *testing.T) {
	gen, org := newDocFixture(t)
	client := &model.Client{
		Name:      "Globex",
		Service:   "SEO",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	doc, err := gen.ClientAgreement(context.Background(), org, client, DocNDA)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "NON-DISCLOSURE AGREEMENT")
}

func TestClientAgreementUnknownKind(t *testing.T) {
	gen, org := newDocFixture(t)

	_, err := gen.ClientAgreement(context.Background(), org, &model.Client{}, "invoice")
	assertAppCode(t, err, apperror.CodeInvalidInput)
}

func TestContractorAgreement(t *testing.T) {
	gen, org := newDocFixture(t)
	contractor := &model.Contractor{
		Name:            "Freelance Co",
		Department:      "Content",
		Designation:     "Copywriter",
		StartDate:       time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		TenureMonths:    6,
		MonthlyRetainer: 25000,
	}

	doc, err := gen.ContractorAgreement(context.Background(), org, contractor)
	require.NoError(t, err)

	text := string(doc)
	assert.Contains(t, text, "INDEPENDENT CONTRACTOR AGREEMENT")
	assert.Contains(t, text, "Freelance Co")
	assert.Contains(t, text, "Copywriter")
	assert.Contains(t, text, "25000.00")
	assert.Contains(t, text, "01 August 2026")
}

func TestOfferLetter(t *testing.T) {
	gen, org := newDocFixture(t)
	employee := &model.Employee{
		FirstName:    "Asha",
		LastName:     "Rao",
		Department:   "PPC",
		DOJ:          time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		MonthlyGross: 60000,
	}

	doc, err := gen.OfferLetter(context.Background(), org, employee)
	require.NoError(t, err)

	text := string(doc)
	assert.Contains(t, text, "OFFER LETTER")
	assert.Contains(t, text, "Dear Asha Rao")
	assert.Contains(t, text, "01 October 2026")
	assert.Contains(t, text, "60000.00")
}
