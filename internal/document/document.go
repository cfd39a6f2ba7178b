// Package document reads a document description, validates it, and computes
// every figure that appears on the rendered document.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/billdoc-dev/billdoc/internal/model"
	"github.com/billdoc-dev/billdoc/internal/tax"
)

// DateFormat is the layout of issue_date and due_date.
const DateFormat = "2006-01-02"

// Document is the YAML description of one invoice, quotation or receipt.
type Document struct {
	Type           model.DocumentType `yaml:"type" validate:"required,oneof=invoice quotation receipt"`
	Number         string             `yaml:"number,omitempty"`
	IssueDate      string             `yaml:"issue_date" validate:"required,datetime=2006-01-02"`
	DueDate        string             `yaml:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Reference      string             `yaml:"reference,omitempty"`
	Client         Client             `yaml:"client"`
	Items          []Item             `yaml:"items" validate:"required,min=1,dive"`
	TaxRate        *float64           `yaml:"tax_rate,omitempty" validate:"omitempty,gte=0,lte=1"`
	TaxType        string             `yaml:"tax_type,omitempty" validate:"omitempty,oneof=withholding vat"`
	TaxConfig      *TaxConfig         `yaml:"tax_config,omitempty"`
	Discount       *Discount          `yaml:"discount,omitempty"`
	PartialPayment *PartialPayment    `yaml:"partial_payment,omitempty"`
	Installment    *Installment       `yaml:"installment,omitempty"`
	Notes          string             `yaml:"notes,omitempty"`
}

// Client is the billed party.
type Client struct {
	Name    string `yaml:"name" validate:"required"`
	Address string `yaml:"address,omitempty"`
	TaxID   string `yaml:"tax_id,omitempty"`
	Email   string `yaml:"email,omitempty" validate:"omitempty,email"`
	Phone   string `yaml:"phone,omitempty"`
}

// Item is one line of the item table.
type Item struct {
	Description string  `yaml:"description" validate:"required"`
	Details     string  `yaml:"details,omitempty"`
	Quantity    float64 `yaml:"quantity" validate:"gt=0"`
	Unit        string  `yaml:"unit" validate:"required"`
	UnitPrice   float64 `yaml:"unit_price" validate:"gte=0"`
}

// TaxRate is one optional tax with a fractional rate.
type TaxRate struct {
	Enabled bool    `yaml:"enabled"`
	Rate    float64 `yaml:"rate" validate:"gte=0,lte=1"`
}

// TaxConfig selects multi-tax mode.
type TaxConfig struct {
	VAT         TaxRate `yaml:"vat"`
	Withholding TaxRate `yaml:"withholding"`
	GrossUp     bool    `yaml:"gross_up"`
}

// Discount is a percent (0-100) or fixed reduction of the total.
type Discount struct {
	Type  string  `yaml:"type" validate:"required,oneof=percent fixed"`
	Value float64 `yaml:"value" validate:"gte=0"`
}

// PartialPayment bills a slice of the total.
type PartialPayment struct {
	Type        string   `yaml:"type" validate:"required,oneof=percent fixed"`
	Value       float64  `yaml:"value" validate:"gte=0"`
	BaseAmount  *float64 `yaml:"base_amount,omitempty" validate:"omitempty,gte=0"`
	Description string   `yaml:"description,omitempty"`
}

// Installment places the document within a larger contract.
type Installment struct {
	Number              int      `yaml:"number,omitempty" validate:"omitempty,gte=1"`
	Total               int      `yaml:"total,omitempty" validate:"omitempty,gte=1"`
	TotalContractAmount float64  `yaml:"total_contract_amount" validate:"gt=0"`
	PaidToDate          float64  `yaml:"paid_to_date" validate:"gte=0"`
	RemainingAmount     *float64 `yaml:"remaining_amount,omitempty" validate:"omitempty,gte=0"`
}

// Load reads and decodes a document file. Unknown keys are rejected so a
// misspelled field never silently drops a figure.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	return doc, nil
}

// Decode decodes a document from YAML.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return &doc, nil
}

// LineItems converts the item table to domain line items.
func (d *Document) LineItems() []model.LineItem {
	items := make([]model.LineItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = model.LineItem{
			Description: it.Description,
			Details:     it.Details,
			Quantity:    decimal.NewFromFloat(it.Quantity),
			Unit:        it.Unit,
			UnitPrice:   decimal.NewFromFloat(it.UnitPrice),
		}
	}
	return items
}

// ClientParty returns the client as a model.Party.
func (d *Document) ClientParty() model.Party {
	return model.Party{
		Name:    d.Client.Name,
		Address: d.Client.Address,
		TaxID:   d.Client.TaxID,
		Email:   d.Client.Email,
		Phone:   d.Client.Phone,
	}
}

// Issued parses the issue date.
func (d *Document) Issued() (time.Time, error) {
	return time.Parse(DateFormat, d.IssueDate)
}

// Due parses the due date; ok is false when none is set.
func (d *Document) Due() (due time.Time, ok bool, err error) {
	if d.DueDate == "" {
		return time.Time{}, false, nil
	}
	due, err = time.Parse(DateFormat, d.DueDate)
	return due, err == nil, err
}

// taxConfig converts the multi-tax block.
func (tc *TaxConfig) taxConfig() tax.Config {
	return tax.Config{
		VAT:         tax.Rate{Enabled: tc.VAT.Enabled, Rate: decimal.NewFromFloat(tc.VAT.Rate)},
		Withholding: tax.Rate{Enabled: tc.Withholding.Enabled, Rate: decimal.NewFromFloat(tc.Withholding.Rate)},
		GrossUp:     tc.GrossUp,
	}
}

func (ds *Discount) spec() tax.DiscountSpec {
	return tax.DiscountSpec{
		Type:  tax.AdjustmentType(ds.Type),
		Value: decimal.NewFromFloat(ds.Value),
	}
}

func (pp *PartialPayment) spec() tax.PartialPaymentSpec {
	spec := tax.PartialPaymentSpec{
		Type:  tax.AdjustmentType(pp.Type),
		Value: decimal.NewFromFloat(pp.Value),
	}
	if pp.BaseAmount != nil {
		base := decimal.NewFromFloat(*pp.BaseAmount)
		spec.BaseAmount = &base
	}
	return spec
}

func (in *Installment) context() *tax.InstallmentContext {
	ctx := &tax.InstallmentContext{
		TotalContractAmount: decimal.NewFromFloat(in.TotalContractAmount),
		PaidToDate:          decimal.NewFromFloat(in.PaidToDate),
	}
	if in.RemainingAmount != nil {
		remaining := decimal.NewFromFloat(*in.RemainingAmount)
		ctx.RemainingAmount = &remaining
	}
	return ctx
}
