// Package render lays computed documents out as paginated PDFs.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/billdoc-dev/billdoc/internal/config"
	"github.com/billdoc-dev/billdoc/internal/document"
	"github.com/billdoc-dev/billdoc/internal/model"
	"github.com/billdoc-dev/billdoc/internal/money"
	"github.com/billdoc-dev/billdoc/internal/tax"
)

// Renderer writes a finished document.
type Renderer interface {
	Render(w io.Writer, v View) error
}

// View is a document reduced to display strings. Nothing in it is computed
// by the renderer.
type View struct {
	Type          model.DocumentType
	Title         string
	Number        string
	IssueDate     string
	DueDate       string
	Reference     string
	Installment   string
	Issuer        model.Party
	Client        model.Party
	Rows          []Row
	Totals        []TotalLine
	AmountInWords string
	PaymentLines  []string
	Notes         string
}

// Row is one line of the item table.
type Row struct {
	No          string
	Description string
	Details     string
	Quantity    string
	Unit        string
	UnitPrice   string
	Amount      string
}

// TotalLine is one label/value pair under the item table.
type TotalLine struct {
	Label    string
	Value    string
	Emphasis bool
}

var titles = map[model.DocumentType]string{
	model.DocumentTypeInvoice:   "ใบแจ้งหนี้ / Invoice",
	model.DocumentTypeQuotation: "ใบเสนอราคา / Quotation",
	model.DocumentTypeReceipt:   "ใบเสร็จรับเงิน / Receipt",
}

// Title returns the printed heading for a document type.
func Title(t model.DocumentType) string {
	if title, ok := titles[t]; ok {
		return title
	}
	return string(t)
}

// NewView lays out doc and its computed summary under the given number.
func NewView(cfg *config.Config, doc *document.Document, sum *document.Summary, number string) (View, error) {
	issued, err := doc.Issued()
	if err != nil {
		return View{}, fmt.Errorf("issue date: %w", err)
	}

	v := View{
		Type:          doc.Type,
		Title:         Title(doc.Type),
		Number:        number,
		IssueDate:     ThaiDate(issued),
		Reference:     doc.Reference,
		Client:        doc.ClientParty(),
		AmountInWords: "(" + sum.AmountInWords + ")",
		Notes:         doc.Notes,
	}
	due, ok, err := doc.Due()
	if err != nil {
		return View{}, fmt.Errorf("due date: %w", err)
	}
	if ok {
		v.DueDate = ThaiDate(due)
	}

	if in := doc.Installment; in != nil && in.Number > 0 {
		if in.Total > 0 {
			v.Installment = fmt.Sprintf("งวดที่ %d/%d / Installment %d of %d", in.Number, in.Total, in.Number, in.Total)
		} else {
			v.Installment = fmt.Sprintf("งวดที่ %d / Installment %d", in.Number, in.Number)
		}
	}

	if cfg != nil {
		v.Issuer = model.Party{
			Name:    cfg.Business.Name,
			Address: cfg.Business.Address,
			TaxID:   cfg.Business.TaxID,
			Email:   cfg.Business.Email,
			Phone:   cfg.Business.Phone,
		}
		v.PaymentLines = paymentLines(cfg.Payment)
	}

	for i, it := range sum.Items {
		v.Rows = append(v.Rows, Row{
			No:          strconv.Itoa(i + 1),
			Description: it.Description,
			Details:     it.Details,
			Quantity:    it.Quantity.String(),
			Unit:        it.Unit,
			UnitPrice:   money.Format2(it.UnitPrice),
			Amount:      money.Format2(it.Total()),
		})
	}

	v.Totals = totalLines(doc, sum)
	return v, nil
}

func totalLines(doc *document.Document, sum *document.Summary) []TotalLine {
	var lines []TotalLine
	add := func(label string, value decimal.Decimal) {
		lines = append(lines, TotalLine{Label: label, Value: money.Format2(value)})
	}

	switch sum.Mode {
	case document.ModeMulti:
		bd := sum.Breakdown
		if bd.GrossUp {
			add("ค่าบริการสุทธิ / Net amount", sum.ItemsSubtotal)
			if bd.GrossUpAmount.IsPositive() {
				add("ภาษีรับภาระแทน / Gross-up", bd.GrossUpAmount)
			}
		}
		add("รวมเงิน / Subtotal", bd.Subtotal)
		if sum.TaxConfig.VAT.Enabled {
			add("ภาษีมูลค่าเพิ่ม / VAT "+percent(sum.TaxConfig.VAT.Rate), bd.VATAmount)
		}
		if sum.TaxConfig.Withholding.Enabled {
			add("หัก ณ ที่จ่าย / Withholding "+percent(sum.TaxConfig.Withholding.Rate), bd.WithholdingAmount.Neg())
		}
	default:
		add("รวมเงิน / Subtotal", sum.Legacy.Subtotal)
		if sum.LegacyKind == tax.KindWithholding {
			add("หัก ณ ที่จ่าย / Withholding "+percent(sum.LegacyRate), sum.Legacy.TaxAmount.Neg())
		} else {
			add("ภาษีมูลค่าเพิ่ม / VAT "+percent(sum.LegacyRate), sum.Legacy.TaxAmount)
		}
	}
	add("ยอดรวม / Total", sum.Total)

	if sum.Discount != nil {
		add("ส่วนลด / Discount", sum.Discount.Amount.Neg())
		add("ยอดหลังหักส่วนลด / Total after discount", sum.AfterDiscount)
	}

	if sum.Payment != nil {
		if inst := sum.Installment; inst != nil {
			add("มูลค่าสัญญา / Contract amount", inst.TotalContractAmount)
			add("ชำระแล้ว / Paid to date", inst.PaidToDate)
		}
		add("ยอดคงเหลือก่อนงวดนี้ / Remaining before", sum.Payment.RemainingBefore)
		label := "ยอดชำระงวดนี้ / This payment"
		if pp := doc.PartialPayment; pp != nil && pp.Description != "" {
			label = pp.Description
		}
		add(label, sum.Payment.PaymentAmount)
		if !sum.Payment.FullyPaid() {
			add("ยอดคงเหลือ / Remaining after", sum.Payment.RemainingAfter)
		}
	}

	lines = append(lines, TotalLine{
		Label:    "ยอดที่ต้องชำระ / Amount due",
		Value:    money.Format2(sum.Payable),
		Emphasis: true,
	})
	return lines
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(money.Hundred).String() + "%"
}

func paymentLines(p config.PaymentConfig) []string {
	var lines []string
	if p.Bank != "" {
		lines = append(lines, "ธนาคาร / Bank: "+p.Bank)
	}
	if p.AccountName != "" {
		lines = append(lines, "ชื่อบัญชี / Account name: "+p.AccountName)
	}
	if p.AccountNumber != "" {
		lines = append(lines, "เลขที่บัญชี / Account no.: "+p.AccountNumber)
	}
	return lines
}
