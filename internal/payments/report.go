package payments

import (
	"bytes"
	"fmt"
	"time"

	"letsparkit/internal/parking"

	"github.com/phpdave11/gofpdf"
)

var reportColumns = []struct {
	title string
	width float64
}{
	{"Transaction", 45},
	{"Booking", 30},
	{"Method", 30},
	{"Amount (INR)", 25},
	{"Date", 35},
	{"Status", 20},
}

// RenderReport writes the payment ledger and its summary as a PDF
func RenderReport(payments []parking.Payment, stats Stats, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "LetsParkIt Payment Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, "Generated: "+generatedAt.In(parking.IST).Format("02 Jan 2006 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	summary := []string{
		fmt.Sprintf("Total revenue: INR %.2f", stats.TotalRevenue),
		fmt.Sprintf("Successful payments: %d of %d (%.1f%%)", stats.SuccessfulPayments, stats.TotalPayments, stats.SuccessRate),
		fmt.Sprintf("Average payment: INR %.0f", stats.AverageAmount),
	}
	for _, line := range summary {
		pdf.Cell(0, 8, line)
		pdf.Ln(7)
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 10)
	for _, col := range reportColumns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, p := range payments {
		row := []string{
			p.TransactionID,
			p.BookingID,
			string(p.PaymentMethod),
			fmt.Sprintf("%.2f", p.Amount),
			p.Timestamp.In(parking.IST).Format("02 Jan 2006 15:04"),
			string(p.Status),
		}
		for i, col := range reportColumns {
			align := "L"
			if i == 3 {
				align = "R"
			}
			pdf.CellFormat(col.width, 7, row[i], "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payment report: %w", err)
	}
	return buf.Bytes(), nil
}
