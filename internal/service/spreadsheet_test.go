package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strings"
	"testing"
	"time"

	"backoffice/internal/apperror"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spreadsheetFixture struct {
	svc         SpreadsheetService
	clients     *fakeClientRepo
	contractors *fakeContractorRepo
	employees   *fakeEmployeeRepo
	assets      *fakeAssetRepo
	audit       *fakeAuditRepo
	actor       Actor
}

func newSpreadsheetFixture(t *testing.T) *spreadsheetFixture {
	t.Helper()

	clients := newFakeClientRepo()
	contractors := newFakeContractorRepo()
	employees := newFakeEmployeeRepo()
	assets := newFakeAssetRepo()
	audit := &fakeAuditRepo{}

	now := func() time.Time {
		return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	}
	clientSvc := NewClientService(clients, audit)
	clientSvc.(*clientService).now = now
	contractorSvc := NewContractorService(contractors, audit)
	contractorSvc.(*contractorService).now = now
	employeeSvc := NewEmployeeService(employees, audit)
	assetSvc := NewAssetService(assets, audit)
	assetSvc.(*assetService).now = now

	svc := NewSpreadsheetService(
		clients, contractors, employees, assets,
		clientSvc, contractorSvc, employeeSvc, assetSvc,
	)
	return &spreadsheetFixture{
		svc:         svc,
		clients:     clients,
		contractors: contractors,
		employees:   employees,
		assets:      assets,
		audit:       audit,
		actor:       Actor{UserID: uuid.New(), Role: model.RoleAdmin, OrgID: uuid.New()},
	}
}

func TestImportClients(t *testing.T) {
	f := newSpreadsheetFixture(t)

	input := strings.Join([]string{
		"name,address,start_date,tenure_months,service,amount_inr",
		"Acme,12 High St,2026-01-15,12,PPC,100000",
		"Globex,,2026-03-01,6,SEO,50000",
	}, "\n")

	result, err := f.svc.ImportClients(context.Background(), f.actor, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Empty(t, result.Errors)

	stored, err := f.clients.List(context.Background(), f.actor.OrgID, repository.ClientFilter{})
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	// Imports go through the same create path as the API, so audit entries
	// and derived fields appear.
	assert.Len(t, f.audit.entries, 2)
	for _, c := range stored {
		assert.NotZero(t, c.EndDate)
		assert.Equal(t, model.ClientStatusActive, c.ClientStatus)
	}
}

func TestImportClientsCollectsRowErrors(t *testing.T) {
	f := newSpreadsheetFixture(t)

	input := strings.Join([]string{
		"name,start_date,tenure_months,service,amount_inr",
		"Acme,2026-01-15,12,PPC,100000",
		"Broken,2026-01-15,twelve,PPC,100000",
		",2026-01-15,12,PPC,100000",
		"Bad Date,15/01/2026,12,PPC,100000",
	}, "\n")

	result, err := f.svc.ImportClients(context.Background(), f.actor, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Equal(t, 5, result.Errors[2].Row)

	stored, err := f.clients.List(context.Background(), f.actor.OrgID, repository.ClientFilter{})
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestImportClientsMissingColumns(t *testing.T) {
	f := newSpreadsheetFixture(t)

	input := "name,service\nAcme,PPC\n"
	_, err := f.svc.ImportClients(context.Background(), f.actor, strings.NewReader(input))
	assertAppCode(t, err, apperror.CodeInvalidInput)
}

func TestExportClientsRoundTrip(t *testing.T) {
	f := newSpreadsheetFixture(t)

	input := strings.Join([]string{
		"name,start_date,tenure_months,service,amount_inr",
		"Acme,2026-01-15,12,PPC,100000",
	}, "\n")
	_, err := f.svc.ImportClients(context.Background(), f.actor, strings.NewReader(input))
	require.NoError(t, err)

	data, err := f.svc.ExportClients(context.Background(), f.actor)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, clientCSVHeader, records[0])
	assert.Equal(t, "Acme", records[1][0])
	assert.Equal(t, "2026-01-15", records[1][2])
	assert.Equal(t, "100000.00", records[1][6])
}

func TestImportAndExportContractors(t *testing.T) {
	f := newSpreadsheetFixture(t)

	input := strings.Join([]string{
		"name,start_date,tenure_months,department,monthly_retainer_inr,designation",
		"Freelance Co,2026-02-01,12,Content,25000,Copywriter",
		"Design Studio,2026-01-01,6,SEO,40000,Designer",
	}, "\n")

	result, err := f.svc.ImportContractors(context.Background(), f.actor, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Empty(t, result.Errors)

	stored, err := f.contractors.List(context.Background(), f.actor.OrgID, repository.PersonFilter{})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, c := range stored {
		assert.Equal(t, model.StaffStatusActive, c.Status)
		assert.NotEmpty(t, c.AgreementStatus)
	}
	assert.Len(t, f.audit.entries, 2)

	data, err := f.svc.ExportContractors(context.Background(), f.actor)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, contractorCSVHeader, records[0])
}

func TestImportContractorsCollectsRowErrors(t *testing.T) {
	f := newSpreadsheetFixture(t)

	input := strings.Join([]string{
		"name,start_date,tenure_months,department,monthly_retainer_inr",
		"Freelance Co,2026-02-01,12,Content,25000",
		"Bad Retainer,2026-02-01,12,Content,lots",
		",2026-02-01,12,Content,25000",
	}, "\n")

	result, err := f.svc.ImportContractors(context.Background(), f.actor, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, 4, result.Errors[1].Row)
}

func TestImportAndExportEmployees(t *testing.T) {
	f := newSpreadsheetFixture(t)

	input := strings.Join([]string{
		"emp_id,first_name,last_name,doj,dob,department,monthly_gross_inr",
		"E001,Asha,Rao,2025-06-01,1995-02-10,PPC,60000",
		"E002,Ravi,Menon,,,SEO,45000",
	}, "\n")

	result, err := f.svc.ImportEmployees(context.Background(), f.actor, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Empty(t, result.Errors)

	stored, err := f.employees.ListActive(context.Background(), f.actor.OrgID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	data, err := f.svc.ExportEmployees(context.Background(), f.actor)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, employeeCSVHeader, records[0])
}

func TestImportEmployeesRequiredFields(t *testing.T) {
	f := newSpreadsheetFixture(t)

	input := strings.Join([]string{
		"emp_id,first_name,department,monthly_gross_inr",
		",Asha,PPC,60000",
	}, "\n")

	result, err := f.svc.ImportEmployees(context.Background(), f.actor, strings.NewReader(input))
	require.NoError(t, err)
	assert.Zero(t, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
}

func TestImportAndExportAssets(t *testing.T) {
	f := newSpreadsheetFixture(t)

	input := strings.Join([]string{
		"asset_type,model,serial_number,purchase_date,vendor,value_ex_gst,warranty_period_months,department",
		"Laptop,Dell XPS 15,SN123456,2026-01-15,Dell India,75000,12,PPC",
		"Monitor,LG 27inch,SN789012,2024-02-01,LG Store,15000,24,SEO",
	}, "\n")

	result, err := f.svc.ImportAssets(context.Background(), f.actor, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Empty(t, result.Errors)

	stored, err := f.assets.List(context.Background(), f.actor.OrgID, "")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, a := range stored {
		assert.NotEmpty(t, a.WarrantyStatus)
	}

	data, err := f.svc.ExportAssets(context.Background(), f.actor)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, assetCSVHeader, records[0])

	byType := map[string][]string{}
	for _, r := range records[1:] {
		byType[r[0]] = r
	}
	require.Contains(t, byType, "Laptop")
	assert.Equal(t, "75000.00", byType["Laptop"][5])
	assert.Equal(t, model.WarrantyActive, byType["Laptop"][10])
	require.Contains(t, byType, "Monitor")
	assert.Equal(t, model.WarrantyExpired, byType["Monitor"][10])
}

func TestImportAssetsCollectsRowErrors(t *testing.T) {
	f := newSpreadsheetFixture(t)

	input := strings.Join([]string{
		"asset_type,purchase_date,value_ex_gst,warranty_period_months",
		"Laptop,2026-01-15,75000,12",
		"Monitor,2026-02-01,cheap,24",
		"Keyboard,2026-03-10,8500,forever",
		",2026-03-10,8500,12",
	}, "\n")

	result, err := f.svc.ImportAssets(context.Background(), f.actor, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Equal(t, 5, result.Errors[2].Row)
}

func TestSampleTemplatesImportCleanly(t *testing.T) {
	f := newSpreadsheetFixture(t)
	ctx := context.Background()

	imports := map[string]func(context.Context, Actor, io.Reader) (ImportResult, error){
		"clients":     f.svc.ImportClients,
		"contractors": f.svc.ImportContractors,
		"employees":   f.svc.ImportEmployees,
		"assets":      f.svc.ImportAssets,
	}

	for entity, importFn := range imports {
		data, err := f.svc.Sample(entity)
		require.NoError(t, err, entity)

		result, err := importFn(ctx, f.actor, bytes.NewReader(data))
		require.NoError(t, err, entity)
		assert.Empty(t, result.Errors, entity)
		assert.Greater(t, result.Imported, 1, entity)
	}
}

func TestSampleUnknownEntity(t *testing.T) {
	f := newSpreadsheetFixture(t)

	_, err := f.svc.Sample("invoices")
	assertAppCode(t, err, apperror.CodeInvalidInput)
}
