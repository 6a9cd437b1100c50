// Package document renders quotes as PDF files.
package document

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/flowquote/flowquote/internal/money"
)

// Quote is the data printed on a quote document.
type Quote struct {
	Number        string
	Status        string
	CreatedAt     time.Time
	ValidUntil    *time.Time
	Notes         string
	RejectionNote string
	Total         decimal.Decimal
	Items         []Item

	BusinessName    string
	BusinessPhone   string
	BusinessEmail   string
	BusinessAddress string

	ClientName    string
	ClientEmail   string
	ClientPhone   string
	ClientAddress string
}

type Item struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

const (
	pageWidth = 180.0
	lineH     = 6.0
)

var columns = []struct {
	title string
	width float64
	align string
}{
	{"Description", 95, "L"},
	{"Qty", 20, "R"},
	{"Unit price", 32.5, "R"},
	{"Total", 32.5, "R"},
}

// Render writes q as a single A4 PDF to w.
func Render(w io.Writer, q Quote) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle("Quote "+q.Number, true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(pageWidth/2, 10, tr(q.BusinessName), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(pageWidth/2, 10, "QUOTE", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)

	for _, line := range nonEmpty(q.BusinessPhone, q.BusinessEmail, q.BusinessAddress) {
		pdf.CellFormat(pageWidth, 5, tr(line), "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.CellFormat(pageWidth/2, 5, "Quote #"+q.Number, "", 0, "L", false, 0, "")
	pdf.CellFormat(pageWidth/2, 5, "Date: "+q.CreatedAt.Format("Jan 2, 2006"), "", 1, "R", false, 0, "")

	if q.ValidUntil != nil {
		pdf.CellFormat(pageWidth, 5, "Valid until: "+q.ValidUntil.Format("Jan 2, 2006"), "", 1, "R", false, 0, "")
	}

	pdf.CellFormat(pageWidth, 5, "Status: "+q.Status, "", 1, "R", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(pageWidth, lineH, "Prepared for", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	for _, line := range nonEmpty(q.ClientName, q.ClientEmail, q.ClientPhone, q.ClientAddress) {
		pdf.CellFormat(pageWidth, 5, tr(line), "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(241, 245, 249)

	for _, c := range columns {
		pdf.CellFormat(c.width, 8, c.title, "B", 0, c.align, true, 0, "")
	}

	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)

	for _, it := range q.Items {
		cells := []string{
			tr(it.Description),
			money.FormatQuantity(it.Quantity),
			money.Format(it.UnitPrice),
			money.Format(it.Total),
		}

		for i, c := range columns {
			pdf.CellFormat(c.width, 7, cells[i], "B", 0, c.align, false, 0, "")
		}

		pdf.Ln(-1)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(pageWidth-32.5, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(32.5, 8, money.Format(q.Total), "", 1, "R", false, 0, "")

	if q.Notes != "" {
		section(pdf, "Notes", tr(q.Notes))
	}

	if q.RejectionNote != "" {
		section(pdf, "Rejection note", tr(q.RejectionNote))
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render quote pdf: %w", err)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write quote pdf: %w", err)
	}

	return nil
}

func section(pdf *fpdf.Fpdf, title, body string) {
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(pageWidth, lineH, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(pageWidth, 5, body, "", "L", false)
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))

	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	return out
}
