package workflow

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"estate-sales-portal-server/models"

	"gorm.io/gorm"
)

type documentData struct {
	Reference   string
	FullName    string
	Address     string
	EstateName  string
	Property    string
	Units       int
	PaymentPlan string
	TotalAmount float64
	Percentage  float64
	Date        string
}

var documentTemplates = map[string]*template.Template{
	DocOfferLetter: template.Must(template.New(DocOfferLetter).Parse(
		`OFFER LETTER
Date: {{.Date}}
Ref: {{.Reference}}

Dear {{.FullName}},

We are pleased to offer you {{.Units}} unit(s) of {{.Property}} at {{.EstateName}}
under the {{.PaymentPlan}} plan for a total consideration of {{printf "%.2f" .TotalAmount}}.

This offer is subject to the terms of the sales agreement to follow.
`)),
	DocProvisionalAllocation: template.Must(template.New(DocProvisionalAllocation).Parse(
		`PROVISIONAL ALLOCATION
Date: {{.Date}}
Ref: {{.Reference}}

Dear {{.FullName}},

Having received payments covering {{printf "%.1f" .Percentage}}% of the purchase
price, {{.Property}} at {{.EstateName}} is provisionally allocated to you pending
completion of payment.
`)),
	DocFullAllocation: template.Must(template.New(DocFullAllocation).Parse(
		`FULL ALLOCATION
Date: {{.Date}}
Ref: {{.Reference}}

Dear {{.FullName}},

Payment for {{.Property}} at {{.EstateName}} is complete. The unit is fully
allocated to you. Your sales agreement and deed of assignment accompany this
letter.
`)),
	DocSalesAgreement: template.Must(template.New(DocSalesAgreement).Parse(
		`SALES AGREEMENT
Date: {{.Date}}
Ref: {{.Reference}}

This agreement is made between the vendor and {{.FullName}} of {{.Address}} in
respect of {{.Units}} unit(s) of {{.Property}} at {{.EstateName}} for the sum of
{{printf "%.2f" .TotalAmount}}, receipt of which is hereby acknowledged.
`)),
	DocDeedAssignment: template.Must(template.New(DocDeedAssignment).Parse(
		`DEED OF ASSIGNMENT
Date: {{.Date}}
Ref: {{.Reference}}

The vendor hereby assigns to {{.FullName}} all rights and interest in
{{.Property}} at {{.EstateName}}, full consideration of {{printf "%.2f" .TotalAmount}}
having been received.
`)),
	"application_form": template.Must(template.New("application_form").Parse(
		`PURCHASE APPLICATION
Date: {{.Date}}
Ref: {{.Reference}}

Applicant: {{.FullName}}
Address: {{.Address}}
Property: {{.Property}}, {{.EstateName}}
Units: {{.Units}}
Payment plan: {{.PaymentPlan}}
Total amount: {{printf "%.2f" .TotalAmount}}
`)),
}

// StorageDir is where rendered documents are written. The documents handler
// serves them under /documents after an ownership check.
func StorageDir() string {
	if dir := os.Getenv("DOCUMENT_STORAGE_DIR"); dir != "" {
		return dir
	}
	return "storage/documents"
}

func renderDocument(db *gorm.DB, application *models.Application, kind string, percentage float64) (string, error) {
	tmpl, ok := documentTemplates[kind]
	if !ok {
		return "", fmt.Errorf("unknown document kind %q", kind)
	}

	var property models.Property
	if err := db.First(&property, application.PropertyID).Error; err != nil {
		return "", fmt.Errorf("property lookup failed: %w", err)
	}
	var estate models.Estate
	if err := db.First(&estate, application.EstateID).Error; err != nil {
		return "", fmt.Errorf("estate lookup failed: %w", err)
	}

	data := documentData{
		Reference:   application.Reference,
		FullName:    application.FullName,
		Address:     application.Address,
		EstateName:  estate.Name,
		Property:    property.Title,
		Units:       application.Units,
		PaymentPlan: application.PaymentPlan,
		TotalAmount: application.TotalAmount,
		Percentage:  percentage,
		Date:        time.Now().Format("2006-01-02"),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template render failed: %w", err)
	}

	dir := StorageDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage dir: %w", err)
	}

	fileName := fmt.Sprintf("%s_%s.txt", application.Reference, kind)
	if err := os.WriteFile(filepath.Join(dir, fileName), buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("storage write failed: %w", err)
	}

	return "/documents/" + fileName, nil
}

// GenerateDocument renders one threshold document and records it. A kind is
// generated at most once per application; repeat calls return the existing
// row with created=false.
func GenerateDocument(db *gorm.DB, application *models.Application, kind string, percentage float64) (models.GeneratedDocument, bool, error) {
	var existing models.GeneratedDocument
	err := db.Where("application_id = ? AND kind = ?", application.ID, kind).First(&existing).Error
	if err == nil {
		return existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return models.GeneratedDocument{}, false, err
	}

	fileURL, err := renderDocument(db, application, kind, percentage)
	if err != nil {
		return models.GeneratedDocument{}, false, err
	}

	doc := models.GeneratedDocument{
		ApplicationID: application.ID,
		Kind:          kind,
		FileURL:       fileURL,
		Percentage:    percentage,
	}
	if err := db.Create(&doc).Error; err != nil {
		return models.GeneratedDocument{}, false, err
	}

	return doc, true, nil
}

// GenerateApplicationForm renders the filled application form produced at
// submission time and records it against the application.
func GenerateApplicationForm(db *gorm.DB, application *models.Application) (models.Document, error) {
	fileURL, err := renderDocument(db, application, "application_form", 0)
	if err != nil {
		return models.Document{}, err
	}

	doc := models.Document{
		ApplicationID: application.ID,
		Kind:          "application_form",
		FileURL:       fileURL,
	}
	if err := db.Create(&doc).Error; err != nil {
		return models.Document{}, err
	}

	return doc, nil
}
