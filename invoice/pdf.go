// Package invoice renders order invoices as PDFs with an embedded payment QR.
package invoice

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"goldenwine/models"
	"goldenwine/utils"
)

// Render produces an A4 invoice PDF for the order. qrPNG may be nil when no
// payment QR applies (already-paid or refunded orders).
func Render(o *models.Order, customerName string, qrPNG []byte) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order: %s", o.ID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", utils.LocalDate(o.CreatedAt)))
	pdf.Ln(8)
	if customerName != "" {
		pdf.Cell(0, 10, fmt.Sprintf("Customer: %s", customerName))
		pdf.Ln(8)
	}
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", o.FinancialStatus))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Price", "1", 0, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	for _, it := range o.LineItems {
		pdf.CellFormat(90, 8, it.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", it.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, it.Price, "1", 0, "R", false, 0, "")
		pdf.Ln(8)
	}
	pdf.Ln(4)

	pdf.Cell(0, 8, fmt.Sprintf("Subtotal: %s %s", o.SubtotalPrice, o.Currency))
	pdf.Ln(8)
	for _, dc := range o.DiscountCodes {
		pdf.Cell(0, 8, fmt.Sprintf("Discount %s (%s %s)", dc.Code, dc.Amount, dc.Type))
		pdf.Ln(8)
	}
	if o.TotalDiscounts != "" && o.TotalDiscounts != "0" {
		pdf.Cell(0, 8, fmt.Sprintf("Discounts: -%s %s", o.TotalDiscounts, o.Currency))
		pdf.Ln(8)
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s %s", o.TotalPrice, o.Currency))
	pdf.Ln(8)

	if len(qrPNG) > 0 {
		imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("payment-qr", imageOpts, bytes.NewReader(qrPNG))
		pdf.ImageOptions("payment-qr", 150, 40, 40, 40, false, imageOpts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
