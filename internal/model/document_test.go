package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPrefix(t *testing.T) {
	tests := []struct {
		docType DocumentType
		want    string
	}{
		{DocumentTypeInvoice, "INV"},
		{DocumentTypeQuotation, "QT"},
		{DocumentTypeReceipt, "RC"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.docType.DefaultPrefix(), "prefix for %s", tt.docType)
	}
}

func TestParseDocumentType(t *testing.T) {
	got, err := ParseDocumentType(" Invoice ")
	require.NoError(t, err)
	assert.Equal(t, DocumentTypeInvoice, got)

	_, err = ParseDocumentType("credit-note")
	assert.Error(t, err)
}

func TestLineItemTotal(t *testing.T) {
	li := LineItem{
		Quantity:  decimal.RequireFromString("2.5"),
		UnitPrice: decimal.RequireFromString("333.333"),
	}
	assert.True(t, decimal.RequireFromString("833.3325").Equal(li.Total()), "got %s", li.Total())
}
