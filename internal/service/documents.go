package service

import (
	"bytes"
	"context"
	"text/template"
	"time"

	"backoffice/internal/apperror"
	"backoffice/internal/model"
)

// Document kinds the generator can produce.
const (
	DocSLA         = "sla"
	DocNDA         = "nda"
	DocICA         = "ica"
	DocOfferLetter = "offer_letter"
)

// DocumentGenerator renders agreement text from a record. Kept behind an
// interface so a PDF or docx renderer can replace the plain-text one.
type DocumentGenerator interface {
	ClientAgreement(ctx context.Context, org *model.Organization, client *model.Client, kind string) ([]byte, error)
	ContractorAgreement(ctx context.Context, org *model.Organization, contractor *model.Contractor) ([]byte, error)
	OfferLetter(ctx context.Context, org *model.Organization, employee *model.Employee) ([]byte, error)
}

type templateGenerator struct {
	templates *template.Template
	now       func() time.Time
}

// NewTemplateGenerator builds the plain-text document renderer.
func NewTemplateGenerator() (DocumentGenerator, error) {
	t, err := template.New("documents").Parse(documentTemplates)
	if err != nil {
		return nil, err
	}
	return &templateGenerator{templates: t, now: time.Now}, nil
}

type clientDocData struct {
	OrgName     string
	Date        string
	Client      *model.Client
	StartDate   string
	EndDate     string
}

func (g *templateGenerator) ClientAgreement(ctx context.Context, org *model.Organization, client *model.Client, kind string) ([]byte, error) {
	var name string
	switch kind {
	case DocSLA:
		name = "sla"
	case DocNDA:
		name = "nda"
	default:
		return nil, apperror.Validation("kind must be sla or nda")
	}

	data := clientDocData{
		OrgName:   org.Name,
		Date:      g.now().Format("02 January 2006"),
		Client:    client,
		StartDate: client.StartDate.Format("02 January 2006"),
		EndDate:   AgreementEndDate(client.StartDate, client.TenureMonths).Format("02 January 2006"),
	}
	return g.render(name, data)
}

type contractorDocData struct {
	OrgName    string
	Date       string
	Contractor *model.Contractor
	StartDate  string
	EndDate    string
}

func (g *templateGenerator) ContractorAgreement(ctx context.Context, org *model.Organization, contractor *model.Contractor) ([]byte, error) {
	data := contractorDocData{
		OrgName:    org.Name,
		Date:       g.now().Format("02 January 2006"),
		Contractor: contractor,
		StartDate:  contractor.StartDate.Format("02 January 2006"),
		EndDate:    AgreementEndDate(contractor.StartDate, contractor.TenureMonths).Format("02 January 2006"),
	}
	return g.render("ica", data)
}

type offerDocData struct {
	OrgName  string
	Date     string
	Employee *model.Employee
	DOJ      string
}

func (g *templateGenerator) OfferLetter(ctx context.Context, org *model.Organization, employee *model.Employee) ([]byte, error) {
	data := offerDocData{
		OrgName:  org.Name,
		Date:     g.now().Format("02 January 2006"),
		Employee: employee,
		DOJ:      employee.DOJ.Format("02 January 2006"),
	}
	return g.render("offer_letter", data)
}

func (g *templateGenerator) render(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, apperror.Internal(err)
	}
	return buf.Bytes(), nil
}

const documentTemplates = `
{{define "sla"}}SERVICE LEVEL AGREEMENT

This Service Level Agreement is made on {{.Date}} between {{.OrgName}}
("the Agency") and {{.Client.Name}}{{if .Client.Address}}, having its
address at {{.Client.Address}}{{end}} ("the Client").

1. SERVICES
The Agency shall provide {{.Client.Service}} services to the Client.

2. TERM
This agreement commences on {{.StartDate}} and continues for a period of
{{.Client.TenureMonths}} months, ending on {{.EndDate}}.

3. FEES
The Client shall pay the Agency a monthly fee of {{.Client.CurrencyPreference}} {{printf "%.2f" .Client.AmountINR}}.

4. AUTHORISED SIGNATORY
{{if .Client.AuthorisedSignatory}}{{.Client.AuthorisedSignatory}}{{if .Client.SignatoryDesignation}}, {{.Client.SignatoryDesignation}}{{end}}{{else}}________________{{end}}

For {{.OrgName}}                    For {{.Client.Name}}

________________                    ________________
{{end}}

{{define "nda"}}NON-DISCLOSURE AGREEMENT

This Non-Disclosure Agreement is made on {{.Date}} between {{.OrgName}}
and {{.Client.Name}}.

1. CONFIDENTIAL INFORMATION
Each party agrees to hold in confidence all business, technical and
financial information disclosed by the other party in connection with
the {{.Client.Service}} engagement commencing {{.StartDate}}.

2. TERM
The confidentiality obligations survive for two years beyond the
termination of the engagement.

For {{.OrgName}}                    For {{.Client.Name}}

________________                    ________________
{{end}}

{{define "ica"}}INDEPENDENT CONTRACTOR AGREEMENT

This Independent Contractor Agreement is made on {{.Date}} between
{{.OrgName}} ("the Company") and {{.Contractor.Name}} ("the Contractor").

1. ENGAGEMENT
The Contractor shall provide services to the {{.Contractor.Department}}
department{{if .Contractor.Designation}} as {{.Contractor.Designation}}{{end}}.

2. TERM
The engagement commences on {{.StartDate}} and continues for
{{.Contractor.TenureMonths}} months, ending on {{.EndDate}}.

3. RETAINER
The Company shall pay the Contractor a monthly retainer of
INR {{printf "%.2f" .Contractor.MonthlyRetainer}}.

For {{.OrgName}}                    Contractor

________________                    ________________
{{end}}

{{define "offer_letter"}}OFFER LETTER

{{.Date}}

Dear {{.Employee.FirstName}} {{.Employee.LastName}},

We are pleased to offer you the position in our {{.Employee.Department}}
department at {{.OrgName}}, with a date of joining of {{.DOJ}}.

Your monthly gross compensation will be INR {{printf "%.2f" .Employee.MonthlyGross}}.

We look forward to having you on the team.

Sincerely,
{{.OrgName}}
{{end}}
`
