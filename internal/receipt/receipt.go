// Package receipt renders the downloadable order confirmation PDF.
package receipt

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/taha12-ok/comforty-order-service/internal/entities"
)

const (
	pageWidth   = 210.0
	marginLeft  = 20.0
	marginRight = 190.0
)

// Generator renders receipts. BaseURL is the public storefront address the
// embedded QR code points at.
type Generator struct {
	BaseURL string
}

func NewGenerator(baseURL string) *Generator {
	return &Generator{BaseURL: baseURL}
}

// OrderURL is the exact string encoded into the receipt's QR code.
func (g *Generator) OrderURL(orderID string) string {
	return fmt.Sprintf("%s/order/%s", g.BaseURL, orderID)
}

// Filename is the deterministic download name for an order's receipt.
func Filename(orderID string) string {
	return fmt.Sprintf("comforty-order-%s.pdf", orderID)
}

// Generate renders the receipt as a single-page PDF. It is a pure function
// of the order: no network, no clock (the printed date is the order's
// creation date). Item titles outside the core font charset are
// transliterated rather than failing the whole document.
func (g *Generator) Generate(order entities.Order) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Branding header with rule.
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(2, 159, 174)
	g.textCenter(pdf, 15, "COMFORTY")

	pdf.SetDrawColor(2, 159, 174)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, 20, marginRight, 20)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	g.textCenter(pdf, 30, "ORDER CONFIRMATION")

	g.drawQR(pdf, order.OrderID)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(marginLeft, 45, "ORDER INFORMATION")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(marginLeft, 55, tr("Order ID: "+order.OrderID))
	pdf.Text(marginLeft, 62, "Date: "+order.CreatedAt.Format("2006-01-02"))

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(marginLeft, 75, "CUSTOMER DETAILS")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(marginLeft, 85, tr(order.Customer.Name))
	pdf.Text(marginLeft, 92, tr(order.Customer.Email))
	pdf.Text(marginLeft, 99, tr(order.Customer.Phone))
	pdf.Text(marginLeft, 106, tr(order.Customer.Address))
	pdf.Text(marginLeft, 113, tr(fmt.Sprintf("%s, %s %s",
		order.Customer.City, order.Customer.Country, order.Customer.PostalCode)))
	pdf.Text(marginLeft, 123, tr("Payment Method: "+string(order.Customer.PaymentMethod)))

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(marginLeft, 140, "ORDER ITEMS")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(marginLeft, 150, "Item")
	pdf.Text(130, 150, "Qty")
	pdf.Text(160, 150, "Price")

	for i, item := range order.Items {
		y := 160 + float64(i)*10
		pdf.Text(marginLeft, y, tr(item.Title))
		pdf.Text(130, y, fmt.Sprintf("%d", item.Quantity))
		pdf.Text(160, y, "$"+item.LineTotal().StringFixed(2))
	}

	totalY := 170 + float64(len(order.Items))*10
	pdf.Line(marginLeft, totalY-5, marginRight, totalY-5)
	pdf.SetFont("Helvetica", "B", 11)
	g.textRight(pdf, marginRight, totalY, "Total Amount: $"+order.Total.StringFixed(2))

	pdf.SetFont("Helvetica", "", 8)
	g.textCenter(pdf, 285, "Thank you for shopping with Comforty!")
	g.textCenter(pdf, 290, "For any queries, please contact support@comforty.com")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// drawQR embeds the order URL as a QR code. Encoding a plain URL cannot
// realistically fail; if it somehow does, the receipt is still produced
// without the code.
func (g *Generator) drawQR(pdf *fpdf.Fpdf, orderID string) {
	png, err := qrcode.Encode(g.OrderURL(orderID), qrcode.Medium, 256)
	if err != nil {
		return
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("order-qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("order-qr", 160, 35, 30, 30, false, opts, 0, "")
}

func (g *Generator) textCenter(pdf *fpdf.Fpdf, y float64, s string) {
	pdf.Text((pageWidth-pdf.GetStringWidth(s))/2, y, s)
}

func (g *Generator) textRight(pdf *fpdf.Fpdf, x, y float64, s string) {
	pdf.Text(x-pdf.GetStringWidth(s), y, s)
}
