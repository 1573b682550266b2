package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator — interface so handlers can be tested without gofpdf.
type Generator interface {
	GenerateReceipt(data ReceiptData) ([]byte, error)
}

type ReceiptData struct {
	DonationID int
	SessionID  string
	Amount     int64 // cents
	Currency   string
	DonorEmail string
	CreatedAt  time.Time
}

type ReceiptGenerator struct{}

func NewReceiptGenerator() *ReceiptGenerator {
	return &ReceiptGenerator{}
}

func (g *ReceiptGenerator) GenerateReceipt(data ReceiptData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Donation receipt #%d", data.DonationID), false)
	pdf.SetAuthor("GiveStream", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Donation Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	line("Receipt no.", fmt.Sprintf("%d", data.DonationID))
	line("Reference", data.SessionID)
	line("Date", data.CreatedAt.Format("2006-01-02 15:04 MST"))
	line("Amount", fmt.Sprintf("%.2f %s", float64(data.Amount)/100, strings.ToUpper(data.Currency)))
	if data.DonorEmail != "" {
		line("Donor", data.DonorEmail)
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Thank you for your support. This receipt confirms a completed donation processed by our payment provider.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
