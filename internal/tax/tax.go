// Package tax computes subtotals, VAT, withholding tax, gross-up, discounts
// and installment slices. Every function is pure.
package tax

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/billdoc-dev/billdoc/internal/model"
	"github.com/billdoc-dev/billdoc/internal/money"
)

var one = decimal.NewFromInt(1)

// Kind selects how a single legacy tax rate is applied.
type Kind string

const (
	KindWithholding Kind = "withholding"
	KindVAT         Kind = "vat"
)

// LegacyResult holds unrounded legacy totals. Rounding happens at display time.
type LegacyResult struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// Subtotal sums quantity x unit price over items with no intermediate rounding.
func Subtotal(items []model.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Total())
	}
	return sum
}

// Legacy applies one tax rate to the item subtotal. Withholding is deducted,
// VAT is added. No field is rounded; older documents were produced this way.
func Legacy(items []model.LineItem, rate decimal.Decimal, kind Kind) (LegacyResult, error) {
	subtotal := Subtotal(items)
	taxAmount := subtotal.Mul(rate)

	var total decimal.Decimal
	switch kind {
	case KindWithholding:
		total = subtotal.Sub(taxAmount)
	case KindVAT:
		total = subtotal.Add(taxAmount)
	default:
		return LegacyResult{}, ConfigurationError{Field: "tax_type", Reason: fmt.Sprintf("unknown tax kind %q", kind)}
	}

	return LegacyResult{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     total,
	}, nil
}

// Rate is one optional tax with its fractional rate (0.07 = 7%).
type Rate struct {
	Enabled bool
	Rate    decimal.Decimal
}

// effective returns the rate when enabled, zero otherwise.
func (r Rate) effective() decimal.Decimal {
	if !r.Enabled {
		return decimal.Zero
	}
	return r.Rate
}

// Config describes which taxes apply and whether the items subtotal is the
// net amount the business must receive (gross-up).
type Config struct {
	VAT         Rate
	Withholding Rate
	GrossUp     bool
}

// Breakdown is the multi-tax result. Every field is rounded to 2 places from
// its own exact value.
type Breakdown struct {
	Subtotal          decimal.Decimal
	VATAmount         decimal.Decimal
	WithholdingAmount decimal.Decimal
	Total             decimal.Decimal
	// GrossUpAmount is only meaningful when GrossUp is true.
	GrossUpAmount decimal.Decimal
	GrossUp       bool
}

// Multi computes VAT and withholding on itemsSubtotal.
//
// In normal mode taxes are applied on top of / against itemsSubtotal. In
// gross-up mode itemsSubtotal is the net amount to receive; the gross base G
// is solved so that G + VAT(G) - WHT(G) equals the net, and Total is the net
// itself.
func Multi(itemsSubtotal decimal.Decimal, cfg Config) (Breakdown, error) {
	vatRate := cfg.VAT.effective()
	whtRate := cfg.Withholding.effective()

	if !cfg.GrossUp {
		vatAmount := itemsSubtotal.Mul(vatRate)
		whtAmount := itemsSubtotal.Mul(whtRate)
		return Breakdown{
			Subtotal:          money.Round2(itemsSubtotal),
			VATAmount:         money.Round2(vatAmount),
			WithholdingAmount: money.Round2(whtAmount),
			Total:             money.Round2(itemsSubtotal.Add(vatAmount).Sub(whtAmount)),
		}, nil
	}

	gross, err := grossBase(itemsSubtotal, cfg)
	if err != nil {
		return Breakdown{}, err
	}

	grossUpAmount := gross.Sub(itemsSubtotal)
	if grossUpAmount.IsNegative() {
		grossUpAmount = decimal.Zero
	}

	return Breakdown{
		Subtotal:          money.Round2(gross),
		VATAmount:         money.Round2(gross.Mul(vatRate)),
		WithholdingAmount: money.Round2(gross.Mul(whtRate)),
		Total:             money.Round2(itemsSubtotal),
		GrossUpAmount:     money.Round2(grossUpAmount),
		GrossUp:           true,
	}, nil
}

// grossBase solves for the pre-tax base that nets to net.
func grossBase(net decimal.Decimal, cfg Config) (decimal.Decimal, error) {
	var factor decimal.Decimal
	var field string
	switch {
	case cfg.VAT.Enabled && cfg.Withholding.Enabled:
		factor = one.Add(cfg.VAT.Rate).Sub(cfg.Withholding.Rate)
		field = "vat.rate - withholding.rate"
	case cfg.Withholding.Enabled:
		factor = one.Sub(cfg.Withholding.Rate)
		field = "withholding.rate"
	case cfg.VAT.Enabled:
		factor = one.Add(cfg.VAT.Rate)
		field = "vat.rate"
	default:
		return net, nil
	}

	if !factor.IsPositive() {
		return decimal.Zero, ConfigurationError{
			Field:  field,
			Reason: fmt.Sprintf("gross-up net factor %s is not positive", factor.String()),
		}
	}
	return net.Div(factor), nil
}
