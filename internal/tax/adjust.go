package tax

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/billdoc-dev/billdoc/internal/money"
)

// AdjustmentType selects between a percentage and a literal amount.
type AdjustmentType string

const (
	AdjustPercent AdjustmentType = "percent"
	AdjustFixed   AdjustmentType = "fixed"
)

// DiscountSpec reduces the post-tax total. Percent values are on a 0-100 scale.
type DiscountSpec struct {
	Type  AdjustmentType
	Value decimal.Decimal
}

// DiscountResult is the discount actually taken and the total after it.
type DiscountResult struct {
	Amount   decimal.Decimal
	NewTotal decimal.Decimal
}

// ApplyDiscount subtracts a discount from total. Percent discounts are taken
// from subtotalForPercent (the gross subtotal), not from total. The result
// may be negative.
func ApplyDiscount(total, subtotalForPercent decimal.Decimal, spec DiscountSpec) (DiscountResult, error) {
	var amount decimal.Decimal
	switch spec.Type {
	case AdjustPercent:
		amount = money.Percent(subtotalForPercent, spec.Value)
	case AdjustFixed:
		amount = spec.Value
	default:
		return DiscountResult{}, ConfigurationError{Field: "discount.type", Reason: fmt.Sprintf("unknown discount type %q", spec.Type)}
	}
	return DiscountResult{
		Amount:   amount,
		NewTotal: total.Sub(amount),
	}, nil
}

// PartialPaymentSpec bills one slice of a total. BaseAmount, when set,
// overrides the amount percent payments are taken from.
type PartialPaymentSpec struct {
	Type       AdjustmentType
	Value      decimal.Decimal
	BaseAmount *decimal.Decimal
}

// InstallmentContext tracks a larger contract that this document bills part of.
type InstallmentContext struct {
	TotalContractAmount decimal.Decimal
	PaidToDate          decimal.Decimal
	RemainingAmount     *decimal.Decimal
}

// PaymentResult is the billed slice and the contract balance around it.
type PaymentResult struct {
	PaymentAmount   decimal.Decimal
	RemainingBefore decimal.Decimal
	RemainingAfter  decimal.Decimal
}

// FullyPaid reports whether nothing remains after this payment. The remaining
// balance is not shown on a document in that case.
func (p PaymentResult) FullyPaid() bool {
	return !p.RemainingAfter.IsPositive()
}

// ApplyPartialPayment computes the slice of postDiscountTotal billed now.
//
// Percent payments are taken from, in order: spec.BaseAmount, the
// installment's remaining amount, postDiscountTotal.
func ApplyPartialPayment(postDiscountTotal decimal.Decimal, spec PartialPaymentSpec, inst *InstallmentContext) (PaymentResult, error) {
	var payment decimal.Decimal
	switch spec.Type {
	case AdjustPercent:
		payment = money.Percent(paymentBase(postDiscountTotal, spec, inst), spec.Value)
	case AdjustFixed:
		payment = spec.Value
	default:
		return PaymentResult{}, ConfigurationError{Field: "partial_payment.type", Reason: fmt.Sprintf("unknown payment type %q", spec.Type)}
	}

	remainingBefore := postDiscountTotal
	if inst != nil {
		remainingBefore = inst.TotalContractAmount.Sub(inst.PaidToDate)
	}

	return PaymentResult{
		PaymentAmount:   payment,
		RemainingBefore: remainingBefore,
		RemainingAfter:  money.Round2(remainingBefore.Sub(payment)),
	}, nil
}

func paymentBase(postDiscountTotal decimal.Decimal, spec PartialPaymentSpec, inst *InstallmentContext) decimal.Decimal {
	if spec.BaseAmount != nil {
		return *spec.BaseAmount
	}
	if inst != nil && inst.RemainingAmount != nil {
		return *inst.RemainingAmount
	}
	return postDiscountTotal
}
