package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/billdoc-dev/billdoc/internal/model"
)

const (
	pageWidth  = 190.0 // A4 width minus the default 10mm margins
	lineHeight = 6.0
	fontFamily = "body"
	coreFamily = "Helvetica"
)

// column widths of the item table; they sum to pageWidth.
var columns = []struct {
	header string
	width  float64
	align  string
}{
	{"#", 10, "C"},
	{"รายการ / Description", 83, "L"},
	{"จำนวน / Qty", 20, "R"},
	{"หน่วย / Unit", 20, "C"},
	{"ราคา / Price", 28.5, "R"},
	{"จำนวนเงิน / Amount", 28.5, "R"},
}

// PDF renders A4 documents with gofpdf. Thai text needs FontPath to point at a
// UTF-8 TrueType font with Thai glyphs; without one the core Helvetica font is
// used and non-Latin text is lost.
type PDF struct {
	FontPath string
}

type pdfWriter struct {
	pdf    *gofpdf.Fpdf
	family string
	tr     func(string) string
}

// Render writes v as a PDF to w.
func (p *PDF) Render(w io.Writer, v View) error {
	pw := p.newWriter()
	pdf := pw.pdf

	pdf.SetTitle(v.Title+" "+v.Number, true)
	pdf.SetAuthor(v.Issuer.Name, true)
	pdf.SetCreator("billdoc", true)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pw.font("", 8)
		pdf.CellFormat(0, 10, pw.tr(fmt.Sprintf("%s  %d/{nb}", v.Number, pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pw.header(v)
	pw.parties(v)
	pw.table(v.Rows)
	pw.totals(v)
	pw.footer(v)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("laying out pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func (p *PDF) newWriter() *pdfWriter {
	if p.FontPath == "" {
		pdf := gofpdf.New("P", "mm", "A4", "")
		return &pdfWriter{pdf: pdf, family: coreFamily, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	}
	// gofpdf resolves font files relative to its font directory.
	pdf := gofpdf.New("P", "mm", "A4", filepath.Dir(p.FontPath))
	file := filepath.Base(p.FontPath)
	pdf.AddUTF8Font(fontFamily, "", file)
	pdf.AddUTF8Font(fontFamily, "B", file)
	return &pdfWriter{pdf: pdf, family: fontFamily, tr: func(s string) string { return s }}
}

func (pw *pdfWriter) font(style string, size float64) {
	pw.pdf.SetFont(pw.family, style, size)
}

func (pw *pdfWriter) line(text string) {
	pw.pdf.CellFormat(0, lineHeight, pw.tr(text), "", 1, "L", false, 0, "")
}

func (pw *pdfWriter) header(v View) {
	pdf := pw.pdf

	pw.font("B", 14)
	pw.line(v.Issuer.Name)
	pw.font("", 9)
	for _, s := range partyLines(v.Issuer) {
		pw.line(s)
	}

	pdf.Ln(4)
	pw.font("B", 18)
	pdf.CellFormat(0, 10, pw.tr(v.Title), "", 1, "R", false, 0, "")

	pw.font("", 10)
	meta := [][2]string{
		{"เลขที่ / No.", v.Number},
		{"วันที่ / Date", v.IssueDate},
	}
	if v.DueDate != "" {
		meta = append(meta, [2]string{"ครบกำหนด / Due", v.DueDate})
	}
	if v.Reference != "" {
		meta = append(meta, [2]string{"อ้างอิง / Ref.", v.Reference})
	}
	if v.Installment != "" {
		meta = append(meta, [2]string{"", v.Installment})
	}
	for _, m := range meta {
		pdf.CellFormat(pageWidth-60, lineHeight, pw.tr(m[0]), "", 0, "R", false, 0, "")
		pdf.CellFormat(60, lineHeight, pw.tr(m[1]), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func (pw *pdfWriter) parties(v View) {
	pw.font("B", 10)
	pw.line("ลูกค้า / Bill to")
	pw.font("", 10)
	pw.line(v.Client.Name)
	for _, s := range partyLines(v.Client) {
		pw.line(s)
	}
	pw.pdf.Ln(4)
}

func (pw *pdfWriter) tableHeader() {
	pw.font("B", 9)
	pw.pdf.SetFillColor(230, 230, 230)
	for _, c := range columns {
		pw.pdf.CellFormat(c.width, 8, pw.tr(c.header), "1", 0, "C", true, 0, "")
	}
	pw.pdf.Ln(-1)
}

func (pw *pdfWriter) table(rows []Row) {
	pdf := pw.pdf
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()

	pw.tableHeader()
	for _, r := range rows {
		height := lineHeight
		if r.Details != "" {
			height += lineHeight - 1
		}
		// Break before the row so the header repeats on the new page.
		if pdf.GetY()+height > pageHeight-bottom {
			pdf.AddPage()
			pw.tableHeader()
		}

		pw.font("", 9)
		cells := []string{r.No, r.Description, r.Quantity, r.Unit, r.UnitPrice, r.Amount}
		border := "LR"
		if r.Details == "" {
			border = "LRB"
		}
		for i, c := range columns {
			pdf.CellFormat(c.width, lineHeight, pw.tr(cells[i]), border, 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)

		if r.Details != "" {
			pw.font("", 8)
			for i, c := range columns {
				text := ""
				if i == 1 {
					text = r.Details
				}
				pdf.CellFormat(c.width, lineHeight-1, pw.tr(text), "LRB", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}
	pdf.Ln(2)
}

func (pw *pdfWriter) totals(v View) {
	pdf := pw.pdf
	for _, t := range v.Totals {
		style, size := "", 10.0
		if t.Emphasis {
			style, size = "B", 11
		}
		pw.font(style, size)
		pdf.CellFormat(pageWidth-40, lineHeight+1, pw.tr(t.Label), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, lineHeight+1, pw.tr(t.Value), "", 1, "R", false, 0, "")
	}
	pw.font("B", 10)
	pdf.CellFormat(0, lineHeight+2, pw.tr(v.AmountInWords), "", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func (pw *pdfWriter) footer(v View) {
	if len(v.PaymentLines) > 0 {
		pw.font("B", 10)
		pw.line("การชำระเงิน / Payment")
		pw.font("", 9)
		for _, s := range v.PaymentLines {
			pw.line(s)
		}
		pw.pdf.Ln(3)
	}
	if notes := strings.TrimSpace(v.Notes); notes != "" {
		pw.font("B", 10)
		pw.line("หมายเหตุ / Notes")
		pw.font("", 9)
		pw.pdf.MultiCell(0, lineHeight-1, pw.tr(notes), "", "L", false)
	}
}

// partyLines lists the contact details printed below a party's name.
func partyLines(p model.Party) []string {
	var lines []string
	if p.Address != "" {
		lines = append(lines, strings.Split(strings.TrimSpace(p.Address), "\n")...)
	}
	if p.TaxID != "" {
		lines = append(lines, "เลขประจำตัวผู้เสียภาษี / Tax ID: "+p.TaxID)
	}
	var contact []string
	if p.Phone != "" {
		contact = append(contact, p.Phone)
	}
	if p.Email != "" {
		contact = append(contact, p.Email)
	}
	if len(contact) > 0 {
		lines = append(lines, strings.Join(contact, "  "))
	}
	return lines
}
