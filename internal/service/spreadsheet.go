package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"backoffice/internal/apperror"
	"backoffice/internal/repository"

	"github.com/shopspring/decimal"
)

// RowError reports a single failed row during a CSV import. Valid rows
// around it are still committed.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResult struct {
	Imported int        `json:"imported"`
	Errors   []RowError `json:"errors"`
}

// SpreadsheetService handles bulk CSV export and import for clients,
// contractors, employees and assets, plus downloadable sample templates.
// Imports go through the entity services so every row gets the same
// validation, derived fields and audit trail as an API create.
type SpreadsheetService interface {
	ExportClients(ctx context.Context, actor Actor) ([]byte, error)
	ExportContractors(ctx context.Context, actor Actor) ([]byte, error)
	ExportEmployees(ctx context.Context, actor Actor) ([]byte, error)
	ExportAssets(ctx context.Context, actor Actor) ([]byte, error)
	ImportClients(ctx context.Context, actor Actor, r io.Reader) (ImportResult, error)
	ImportContractors(ctx context.Context, actor Actor, r io.Reader) (ImportResult, error)
	ImportEmployees(ctx context.Context, actor Actor, r io.Reader) (ImportResult, error)
	ImportAssets(ctx context.Context, actor Actor, r io.Reader) (ImportResult, error)
	// Sample returns a filled-in CSV template for the entity that imports
	// cleanly as-is.
	Sample(entity string) ([]byte, error)
}

type spreadsheetService struct {
	clientRepo        repository.ClientRepository
	contractorRepo    repository.ContractorRepository
	employeeRepo      repository.EmployeeRepository
	assetRepo         repository.AssetRepository
	clientService     ClientService
	contractorService ContractorService
	employeeService   EmployeeService
	assetService      AssetService
}

func NewSpreadsheetService(
	clientRepo repository.ClientRepository,
	contractorRepo repository.ContractorRepository,
	employeeRepo repository.EmployeeRepository,
	assetRepo repository.AssetRepository,
	clientService ClientService,
	contractorService ContractorService,
	employeeService EmployeeService,
	assetService AssetService,
) SpreadsheetService {
	return &spreadsheetService{
		clientRepo:        clientRepo,
		contractorRepo:    contractorRepo,
		employeeRepo:      employeeRepo,
		assetRepo:         assetRepo,
		clientService:     clientService,
		contractorService: contractorService,
		employeeService:   employeeService,
		assetService:      assetService,
	}
}

// --- Clients ---

var clientCSVHeader = []string{
	"name", "address", "start_date", "tenure_months", "currency_preference",
	"service", "amount_inr", "authorised_signatory", "gst",
	"poc_name", "poc_email", "poc_mobile", "sign_status", "client_status", "agreement_status",
}

func (s *spreadsheetService) ExportClients(ctx context.Context, actor Actor) ([]byte, error) {
	clients, err := s.clientRepo.List(ctx, actor.OrgID, repository.ClientFilter{})
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(clients))
	for _, c := range clients {
		records = append(records, []string{
			c.Name, c.Address, c.StartDate.Format("2006-01-02"),
			strconv.Itoa(c.TenureMonths), c.CurrencyPreference,
			c.Service, strconv.FormatFloat(c.AmountINR, 'f', 2, 64),
			c.AuthorisedSignatory, c.GST,
			c.POCName, c.POCEmail, c.POCMobile,
			c.SignStatus, c.ClientStatus, c.AgreementStatus,
		})
	}
	return writeCSV(clientCSVHeader, records)
}

func (s *spreadsheetService) ImportClients(ctx context.Context, actor Actor, r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, apperror.Validation("empty or unreadable CSV")
	}
	cols := indexColumns(header)
	if missing := missingColumns(cols, []string{"name", "start_date", "tenure_months", "service", "amount_inr"}); len(missing) > 0 {
		return ImportResult{}, apperror.Validation(fmt.Sprintf("missing columns: %v", missing))
	}

	var result ImportResult
	for row := 2; ; row++ {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Message: "malformed row"})
			continue
		}

		tenure, convErr := strconv.Atoi(cell(record, cols, "tenure_months"))
		if convErr != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Message: "invalid tenure_months"})
			continue
		}
		amount, convErr := strconv.ParseFloat(cell(record, cols, "amount_inr"), 64)
		if convErr != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Message: "invalid amount_inr"})
			continue
		}

		dto := CreateClientDTO{
			Name:                cell(record, cols, "name"),
			Address:             cell(record, cols, "address"),
			StartDate:           cell(record, cols, "start_date"),
			TenureMonths:        tenure,
			CurrencyPreference:  cell(record, cols, "currency_preference"),
			Service:             cell(record, cols, "service"),
			AmountINR:           amount,
			AuthorisedSignatory: cell(record, cols, "authorised_signatory"),
			GST:                 cell(record, cols, "gst"),
			POCName:             cell(record, cols, "poc_name"),
			POCEmail:            cell(record, cols, "poc_email"),
			POCMobile:           cell(record, cols, "poc_mobile"),
		}
		if dto.Name == "" || dto.Service == "" {
			result.Errors = append(result.Errors, RowError{Row: row, Message: "name and service are required"})
			continue
		}
		if _, createErr := s.clientService.Create(ctx, actor, dto); createErr != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Message: createErr.Error()})
			continue
		}
		result.Imported++
	}
	return result, nil
}

// --- Contractors ---

var contractorCSVHeader = []string{
	"name", "doj", "start_date", "tenure_months", "dob",
	"pan", "aadhar", "mobile", "personal_email",
	"bank_name", "account_holder", "account_no", "ifsc",
	"address_1", "address_2", "pincode", "city",
	"department", "monthly_retainer_inr", "designation",
	"sign_status", "status", "agreement_status",
}

func (s *spreadsheetService) ExportContractors(ctx context.Context, actor Actor) ([]byte, error) {
	contractors, err := s.contractorRepo.List(ctx, actor.OrgID, repository.PersonFilter{})
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(contractors))
	for _, c := range contractors {
		records = append(records, []string{
			c.Name, formatOptionalDate(c.DOJ), c.StartDate.Format("2006-01-02"),
			strconv.Itoa(c.TenureMonths), formatOptionalDate(c.DOB),
			c.PAN, c.Aadhar, c.Mobile, c.PersonalEmail,
			c.BankName, c.AccountHolder, c.AccountNo, c.IFSC,
			c.Address1, c.Address2, c.Pincode, c.City,
			c.Department, strconv.FormatFloat(c.MonthlyRetainer, 'f', 2, 64), c.Designation,
			c.SignStatus, c.Status, c.AgreementStatus,
		})
	}
	return writeCSV(contractorCSVHeader, records)
}

func (s *spreadsheetService) ImportContractors(ctx context.Context, actor Actor, r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, apperror.Validation("empty or unreadable CSV")
	}
	cols := indexColumns(header)
	if missing := missingColumns(cols, []string{"name", "start_date", "tenure_months", "department", "monthly_retainer_inr"}); len(missing) > 0 {
		return ImportResult{}, apperror.Validation(fmt.Sprintf("missing columns: %v", missing))
	}

	var result ImportResult
	for row := 2; ; row++ {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Message: "malformed row"})
			continue
		}

		tenure, convErr := strconv.Atoi(cell(record, cols, "tenure_months"))
		if convErr != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Message: "invalid tenure_months"})
			continue
		}
		retainer, convErr := strconv.ParseFloat(cell(record, cols, "monthly_retainer_inr"), 64)
		if convErr != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Message: "invalid monthly_retainer_inr"})
			continue
		}

		dto := CreateContractorDTO{
			Name:            cell(record, cols, "name"),
			DOJ:             cell(record, cols, "doj"),
			StartDate:       cell(record, cols, "start_date"),
			TenureMonths:    tenure,
			DOB:             cell(record, cols, "dob"),
			PAN:             cell(record, cols, "pan"),
			Aadhar:          cell(record, cols, "aadhar"),
			Mobile:          cell(record, cols, "mobile"),
			PersonalEmail:   cell(record, cols, "personal_email"),
			BankName:        cell(record, cols, "bank_name"),
			AccountHolder:   cell(record, cols, "account_holder"),
			AccountNo:       cell(record, cols, "account_no"),
			IFSC:            cell(record, cols, "ifsc"),
			Address1:        cell(record, cols, "address_1"),
			Address2:        cell(record, cols, "address_2"),
			Pincode:         cell(record, cols, "pincode"),
			City:            cell(record, cols, "city"),
			Department:      cell(record, cols, "department"),
			MonthlyRetainer: retainer,
			Designation:     cell(record, cols, "designation"),
		}
		if dto.Name == "" || dto.Department == "" {
			result.Errors = append(result.Errors, RowError{Row: row, Message: "name and department are required"})
			continue
		}
		if _, createErr := s.contractorService.Create(ctx, actor, dto); createErr != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Message: createErr.Error()})
			continue
		}
		result.Imported++
	}
	return result, nil
}

// --- Employees ---

var employeeCSVHeader = []string{
	"emp_id", "first_name", "last_name", "doj", "dob",
	"work_email", "mobile", "department", "monthly_gross_inr", "status",
}

func (s *spreadsheetService) ExportEmployees(ctx context.Context, actor Actor) ([]byte, error) {
	employees, err := s.employeeRepo.List(ctx, actor.OrgID, repository.PersonFilter{})
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(employees))
	for _, e := range employees {
		records = append(records, []string{
			e.EmpID, e.FirstName, e.LastName, formatOptionalDate(e.DOJ), formatOptionalDate(e.DOB),
			e.WorkEmail, e.Mobile, e.Department,
			strconv.FormatFloat(e.MonthlyGross, 'f', 2, 64), e.Status,
		})
	}
	return writeCSV(employeeCSVHeader, records)
}

func (s *spreadsheetService) ImportEmployees(ctx context.Context, actor Actor, r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, apperror.Validation("empty or unreadable CSV")
	}
	cols := indexColumns(header)
	if missing := missingColumns(cols, []string{"emp_id", "first_name", "department", "monthly_gross_inr"}); len(missing) > 0 {
		return ImportResult{}, apperror.Validation(fmt.Sprintf("missing columns: %v", missing))
	}

	var result ImportResult
	for row := 2; ; row++ {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Message: "malformed row"})
			continue
		}

		gross, convErr := strconv.ParseFloat(cell(record, cols, "monthly_gross_inr"), 64)
		if convErr != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Message: "invalid monthly_gross_inr"})
			continue
		}

		dto := CreateEmployeeDTO{
			EmpID:        cell(record, cols, "emp_id"),
			FirstName:    cell(record, cols, "first_name"),
			LastName:     cell(record, cols, "last_name"),
			DOJ:          cell(record, cols, "doj"),
			DOB:          cell(record, cols, "dob"),
			WorkEmail:    cell(record, cols, "work_email"),
			Mobile:       cell(record, cols, "mobile"),
			Department:   cell(record, cols, "department"),
			MonthlyGross: gross,
		}
		if dto.EmpID == "" || dto.FirstName == "" || dto.Department == "" {
			result.Errors = append(result.Errors, RowError{Row: row, Message: "emp_id, first_name and department are required"})
			continue
		}
		if _, createErr := s.employeeService.Create(ctx, actor, dto); createErr != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Message: createErr.Error()})
			continue
		}
		result.Imported++
	}
	return result, nil
}

// --- Assets ---

var assetCSVHeader = []string{
	"asset_type", "model", "serial_number", "purchase_date", "vendor",
	"value_ex_gst", "warranty_period_months", "alloted_to", "email",
	"department", "warranty_status",
}

func (s *spreadsheetService) ExportAssets(ctx context.Context, actor Actor) ([]byte, error) {
	assets, err := s.assetRepo.List(ctx, actor.OrgID, "")
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(assets))
	for _, a := range assets {
		records = append(records, []string{
			a.AssetType, a.Model, a.SerialNumber, a.PurchaseDate.Format("2006-01-02"), a.Vendor,
			a.ValueExGST.StringFixed(2), strconv.Itoa(a.WarrantyPeriodMonths),
			a.AllotedTo, a.Email, a.Department, a.WarrantyStatus,
		})
	}
	return writeCSV(assetCSVHeader, records)
}

func (s *spreadsheetService) ImportAssets(ctx context.Context, actor Actor, r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, apperror.Validation("empty or unreadable CSV")
	}
	cols := indexColumns(header)
	if missing := missingColumns(cols, []string{"asset_type", "purchase_date", "warranty_period_months"}); len(missing) > 0 {
		return ImportResult{}, apperror.Validation(fmt.Sprintf("missing columns: %v", missing))
	}

	var result ImportResult
	for row := 2; ; row++ {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Message: "malformed row"})
			continue
		}

		warranty, convErr := strconv.Atoi(cell(record, cols, "warranty_period_months"))
		if convErr != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Message: "invalid warranty_period_months"})
			continue
		}
		value := decimal.Zero
		if raw := cell(record, cols, "value_ex_gst"); raw != "" {
			value, convErr = decimal.NewFromString(raw)
			if convErr != nil {
				result.Errors = append(result.Errors, RowError{Row: row, Message: "invalid value_ex_gst"})
				continue
			}
		}

		dto := CreateAssetDTO{
			AssetType:            cell(record, cols, "asset_type"),
			Model:                cell(record, cols, "model"),
			SerialNumber:         cell(record, cols, "serial_number"),
			PurchaseDate:         cell(record, cols, "purchase_date"),
			Vendor:               cell(record, cols, "vendor"),
			ValueExGST:           value,
			WarrantyPeriodMonths: warranty,
			AllotedTo:            cell(record, cols, "alloted_to"),
			Email:                cell(record, cols, "email"),
			Department:           cell(record, cols, "department"),
		}
		if dto.AssetType == "" {
			result.Errors = append(result.Errors, RowError{Row: row, Message: "asset_type is required"})
			continue
		}
		if _, createErr := s.assetService.Create(ctx, actor, dto); createErr != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Message: createErr.Error()})
			continue
		}
		result.Imported++
	}
	return result, nil
}

// --- Sample templates ---

// sampleCSV holds filled-in bulk upload templates keyed by entity. Each
// sample must satisfy its importer's required columns.
var sampleCSV = map[string][][]string{
	"clients": {
		{"name", "address", "start_date", "tenure_months", "currency_preference", "service", "amount_inr", "authorised_signatory", "gst", "poc_name", "poc_email", "poc_mobile"},
		{"ABC Corp", "123 Main St, New York", "2025-01-01", "12", "INR", "PPC", "50000", "John Doe", "GST123456", "Jane Smith", "jane.smith@abccorp.com", "9876543210"},
		{"XYZ Ltd", "456 Park Ave, Boston", "2025-02-01", "6", "INR", "SEO", "75000", "Mike Johnson", "GST789012", "Sarah Lee", "sarah.lee@xyzltd.com", "9876543211"},
	},
	"contractors": {
		{"name", "doj", "start_date", "tenure_months", "dob", "pan", "aadhar", "mobile", "personal_email", "bank_name", "account_holder", "account_no", "ifsc", "address_1", "address_2", "pincode", "city", "department", "monthly_retainer_inr", "designation"},
		{"John Contractor", "2025-01-01", "2025-01-01", "6", "1990-05-15", "ABCDE1234F", "123456789012", "9876543210", "john.contractor@email.com", "HDFC Bank", "John Contractor", "1234567890", "HDFC0001234", "123 Street, Area", "Near Market", "110001", "Delhi", "PPC", "35000", "Consultant"},
		{"Mary Freelancer", "2025-01-15", "2025-01-15", "12", "1992-08-20", "XYZAB5678C", "987654321098", "9876543211", "mary.freelancer@email.com", "ICICI Bank", "Mary Freelancer", "0987654321", "ICIC0005678", "456 Avenue, Sector", "Behind Mall", "110002", "Mumbai", "SEO", "40000", "Specialist"},
	},
	"employees": {
		{"emp_id", "first_name", "last_name", "doj", "dob", "work_email", "mobile", "department", "monthly_gross_inr"},
		{"EMP001", "John", "Doe", "2025-01-15", "1995-03-20", "john.doe@company.com", "9876543210", "PPC", "60000"},
		{"EMP002", "Jane", "Smith", "2025-02-01", "1993-07-15", "jane.smith@company.com", "9876543211", "SEO", "75000"},
	},
	"assets": {
		{"asset_type", "model", "serial_number", "purchase_date", "vendor", "value_ex_gst", "warranty_period_months", "alloted_to", "email", "department"},
		{"Laptop", "Dell XPS 15", "SN123456", "2024-01-15", "Dell India", "75000", "12", "John Doe", "john.doe@example.com", "PPC"},
		{"Monitor", "LG 27inch 4K", "SN789012", "2024-02-01", "LG Store", "15000", "24", "Jane Smith", "jane.smith@example.com", "SEO"},
		{"Keyboard", "Logitech MX Keys", "SN345678", "2024-03-10", "Amazon", "8500", "12", "Bob Wilson", "bob.wilson@example.com", "Content"},
	},
}

func (s *spreadsheetService) Sample(entity string) ([]byte, error) {
	records, ok := sampleCSV[entity]
	if !ok {
		return nil, apperror.Validation("unknown sample entity, expected clients, contractors, employees or assets")
	}
	return writeCSV(records[0], records[1:])
}

// --- CSV helpers ---

// ExportContentType is the MIME type handlers attach to CSV downloads.
const ExportContentType = "text/csv"

func writeCSV(header []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, apperror.Internal(err)
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return nil, apperror.Internal(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperror.Internal(err)
	}
	return buf.Bytes(), nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	return cols
}

func cell(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func missingColumns(cols map[string]int, required []string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

func formatOptionalDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
