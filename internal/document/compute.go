package document

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/billdoc-dev/billdoc/internal/bahttext"
	"github.com/billdoc-dev/billdoc/internal/model"
	"github.com/billdoc-dev/billdoc/internal/tax"
)

// Mode tells which tax path produced a Summary.
type Mode string

const (
	// ModeLegacy is a single tax rate with display-time rounding.
	ModeLegacy Mode = "legacy"
	// ModeMulti is VAT plus withholding with per-field rounding.
	ModeMulti Mode = "multi"
)

// LegacyDefaults fills in tax_rate and tax_type when a legacy-mode document
// leaves them out.
type LegacyDefaults struct {
	Rate decimal.Decimal
	Kind tax.Kind
}

// Summary carries every computed figure of a document. The renderer only
// formats and places these values.
type Summary struct {
	Items         []model.LineItem
	ItemsSubtotal decimal.Decimal
	Mode          Mode

	// Set in ModeLegacy.
	Legacy     *tax.LegacyResult
	LegacyRate decimal.Decimal
	LegacyKind tax.Kind

	// Set in ModeMulti.
	Breakdown *tax.Breakdown
	TaxConfig tax.Config

	// Subtotal is the gross subtotal percent discounts are taken from.
	Subtotal decimal.Decimal
	// Total is the amount after tax, before any discount.
	Total decimal.Decimal

	Discount      *tax.DiscountResult
	AfterDiscount decimal.Decimal

	Payment     *tax.PaymentResult
	Installment *tax.InstallmentContext

	// Payable is the amount this document asks for: the payment slice when
	// billing partially, otherwise the post-discount total.
	Payable       decimal.Decimal
	AmountInWords string
}

// Compute runs items -> tax -> discount -> partial payment -> amount in words.
func Compute(doc *Document, defaults LegacyDefaults) (*Summary, error) {
	items := doc.LineItems()
	sum := &Summary{
		Items:         items,
		ItemsSubtotal: tax.Subtotal(items),
	}

	if doc.TaxConfig != nil {
		cfg := doc.TaxConfig.taxConfig()
		bd, err := tax.Multi(sum.ItemsSubtotal, cfg)
		if err != nil {
			return nil, fmt.Errorf("computing taxes: %w", err)
		}
		sum.Mode = ModeMulti
		sum.Breakdown = &bd
		sum.TaxConfig = cfg
		sum.Subtotal = bd.Subtotal
		sum.Total = bd.Total
	} else {
		rate := defaults.Rate
		if doc.TaxRate != nil {
			rate = decimal.NewFromFloat(*doc.TaxRate)
		}
		kind := defaults.Kind
		if doc.TaxType != "" {
			kind = tax.Kind(doc.TaxType)
		}
		res, err := tax.Legacy(items, rate, kind)
		if err != nil {
			return nil, fmt.Errorf("computing taxes: %w", err)
		}
		sum.Mode = ModeLegacy
		sum.Legacy = &res
		sum.LegacyRate = rate
		sum.LegacyKind = kind
		sum.Subtotal = res.Subtotal
		sum.Total = res.Total
	}

	sum.AfterDiscount = sum.Total
	if doc.Discount != nil {
		dr, err := tax.ApplyDiscount(sum.Total, sum.Subtotal, doc.Discount.spec())
		if err != nil {
			return nil, fmt.Errorf("applying discount: %w", err)
		}
		sum.Discount = &dr
		sum.AfterDiscount = dr.NewTotal
	}

	if doc.Installment != nil {
		sum.Installment = doc.Installment.context()
	}
	sum.Payable = sum.AfterDiscount
	if doc.PartialPayment != nil {
		pr, err := tax.ApplyPartialPayment(sum.AfterDiscount, doc.PartialPayment.spec(), sum.Installment)
		if err != nil {
			return nil, fmt.Errorf("applying partial payment: %w", err)
		}
		sum.Payment = &pr
		sum.Payable = pr.PaymentAmount
	}

	sum.AmountInWords = bahttext.FromDecimal(sum.Payable)
	return sum, nil
}
