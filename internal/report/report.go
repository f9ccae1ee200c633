// Package report renders bills and expense reports as PDF documents.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/mmynk/receipts/internal/calculator"
	"github.com/mmynk/receipts/internal/models"
)

const (
	fontFamily = "Helvetica"
	lineHeight = 7.0
	margin     = 15.0
	chartName  = "category-chart"
)

// Renderer writes PDF documents. Amounts are prefixed with Currency.
type Renderer struct {
	Currency string
}

// New creates a Renderer for currency.
func New(currency string) *Renderer {
	return &Renderer{Currency: currency}
}

// RenderBill writes a printable bill with one row per line item.
func (r *Renderer) RenderBill(w io.Writer, expense *models.Expense, profile models.StoreProfile) error {
	pdf := newDocument()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(fontFamily, "B", 16)
	title := "Bill"
	if profile.StoreName != "" {
		title = profile.StoreName
	}
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	if profile.GSTNumber != "" {
		pdf.SetFont(fontFamily, "", 10)
		pdf.CellFormat(0, 6, tr("GSTIN: "+profile.GSTNumber), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(fontFamily, "", 12)
	if expense.ID > 0 {
		pdf.CellFormat(0, lineHeight, fmt.Sprintf("Bill No: %d", expense.ID), "", 1, "", false, 0, "")
	}
	pdf.CellFormat(0, lineHeight, tr("Store: "+expense.Store), "", 1, "", false, 0, "")
	pdf.CellFormat(0, lineHeight, tr("Date: "+expense.Date), "", 1, "", false, 0, "")
	pdf.CellFormat(0, lineHeight, tr("Category: "+expense.Category), "", 1, "", false, 0, "")
	pdf.Ln(4)

	widths := []float64{80, 35, 25, 40}
	header := func() {
		pdf.SetFont(fontFamily, "B", 12)
		for i, h := range []string{"Item", "Price", "Qty", "Total"} {
			pdf.CellFormat(widths[i], lineHeight, h, "B", 0, align(i), false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(fontFamily, "", 12)
	}
	header()

	for _, item := range expense.Items {
		if newPage(pdf) {
			header()
		}
		pdf.CellFormat(widths[0], lineHeight, tr(item.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], lineHeight, r.money(item.Price), "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], lineHeight, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], lineHeight, r.money(item.Total().Round(2).InexactFloat64()), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont(fontFamily, "B", 12)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], lineHeight, "Grand Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(widths[3], lineHeight, r.money(expense.Amount), "T", 1, "R", false, 0, "")

	return pdf.Output(w)
}

// RenderMonthly writes a report listing one row per expense with a
// running total, followed by a category breakdown and pie chart.
func (r *Renderer) RenderMonthly(w io.Writer, title string, expenses []*models.Expense) error {
	pdf := newDocument()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{15, 28, 55, 32, 25, 25}
	header := func() {
		pdf.SetFont(fontFamily, "B", 10)
		for i, h := range []string{"ID", "Date", "Store", "Category", "Amount", "Running"} {
			a := "L"
			if i >= 4 {
				a = "R"
			}
			pdf.CellFormat(widths[i], lineHeight, h, "B", 0, a, false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(fontFamily, "", 10)
	}
	header()

	summary := calculator.Summarize(expenses)
	running := 0.0
	for _, e := range expenses {
		if newPage(pdf) {
			header()
		}
		running += e.Amount
		pdf.CellFormat(widths[0], lineHeight, fmt.Sprintf("%d", e.ID), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], lineHeight, tr(e.Date), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], lineHeight, tr(truncate(e.Store, 28)), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], lineHeight, tr(truncate(e.Category, 16)), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], lineHeight, fmt.Sprintf("%.2f", e.Amount), "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], lineHeight, fmt.Sprintf("%.2f", running), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont(fontFamily, "B", 12)
	pdf.CellFormat(0, lineHeight, fmt.Sprintf("Total (%d bills): %s", summary.Count, r.money(summary.Total)), "T", 1, "R", false, 0, "")

	if len(summary.ByCategory) > 0 {
		r.categorySection(pdf, tr, summary.ByCategory)
	}

	return pdf.Output(w)
}

func (r *Renderer) categorySection(pdf *fpdf.Fpdf, tr func(string) string, breakdown []calculator.CategoryTotal) {
	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(0, 10, "Spending by Category", "", 1, "L", false, 0, "")

	pdf.SetFont(fontFamily, "", 11)
	for _, c := range breakdown {
		pdf.CellFormat(100, lineHeight, tr(categoryLabel(c.Category)), "", 0, "L", false, 0, "")
		pdf.CellFormat(40, lineHeight, r.money(c.Amount), "", 1, "R", false, 0, "")
	}

	png, err := CategoryChart(breakdown)
	if err != nil {
		pdf.Ln(4)
		pdf.CellFormat(0, lineHeight, "Chart unavailable: "+err.Error(), "", 1, "L", false, 0, "")
		return
	}

	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader(chartName, opts, bytes.NewReader(png))
	pdf.Ln(4)
	pdf.ImageOptions(chartName, margin+20, pdf.GetY(), 140, 0, true, opts, 0, "")
}

// CategoryChart draws a pie chart of the breakdown as PNG.
func CategoryChart(breakdown []calculator.CategoryTotal) ([]byte, error) {
	var values []chart.Value
	for _, c := range breakdown {
		if c.Amount <= 0 {
			continue
		}
		values = append(values, chart.Value{Value: c.Amount, Label: categoryLabel(c.Category)})
	}
	if len(values) == 0 {
		return nil, errors.New("no positive amounts to chart")
	}

	pie := chart.PieChart{
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}

func newDocument() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-margin)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	return pdf
}

// newPage starts a new page when the next row would run into the footer.
func newPage(pdf *fpdf.Fpdf) bool {
	_, pageHeight := pdf.GetPageSize()
	if pdf.GetY()+lineHeight > pageHeight-2*margin {
		pdf.AddPage()
		return true
	}
	return false
}

func (r *Renderer) money(amount float64) string {
	return fmt.Sprintf("%s %.2f", r.Currency, amount)
}

func align(col int) string {
	if col == 0 {
		return "L"
	}
	return "R"
}

func categoryLabel(category string) string {
	if category == "" {
		return "Uncategorized"
	}
	return category
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "."
}
