package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DocumentType identifies one of the numbered document series.
type DocumentType string

const (
	DocumentTypeInvoice   DocumentType = "invoice"
	DocumentTypeQuotation DocumentType = "quotation"
	DocumentTypeReceipt   DocumentType = "receipt"
)

// DocumentTypes lists every numbered series in a stable order.
var DocumentTypes = []DocumentType{
	DocumentTypeInvoice,
	DocumentTypeQuotation,
	DocumentTypeReceipt,
}

// DefaultPrefix returns the fixed number prefix for a document type.
func (t DocumentType) DefaultPrefix() string {
	switch t {
	case DocumentTypeInvoice:
		return "INV"
	case DocumentTypeQuotation:
		return "QT"
	case DocumentTypeReceipt:
		return "RC"
	default:
		return strings.ToUpper(string(t))
	}
}

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	for _, known := range DocumentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseDocumentType converts user input ("Invoice", "receipt") to a DocumentType.
func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown document type %q (want invoice, quotation or receipt)", s)
	}
	return t, nil
}

// LineItem is one billed row. Line totals are never rounded.
type LineItem struct {
	Description string
	Details     string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
}

// Total returns quantity x unit price.
func (li LineItem) Total() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// Party is the client (or issuer) block printed on a document.
type Party struct {
	Name    string
	Address string
	TaxID   string
	Email   string
	Phone   string
}
