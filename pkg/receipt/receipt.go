// Package receipt renders transaction receipts as PDF documents with a signed
// QR payload, so a printed or emailed receipt can later be verified against
// the store's records.
package receipt

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/sangkips/salespoint-api/internal/domain/entity"
	"github.com/sangkips/salespoint-api/pkg/utils"
	"github.com/skip2/go-qrcode"
)

// Renderer produces receipt PDFs. The secret signs QR payloads; verification
// recomputes the HMAC over the invoice data.
type Renderer struct {
	secret []byte
}

// NewRenderer creates a renderer that signs QR payloads with the given secret.
func NewRenderer(secret string) *Renderer {
	return &Renderer{secret: []byte(secret)}
}

// QRPayload returns "invoiceNo|total|signature" where the signature is a
// base64 HMAC-SHA256 over the first two fields.
func (r *Renderer) QRPayload(invoiceNo string, total int64) string {
	data := fmt.Sprintf("%s|%d", invoiceNo, total)

	h := hmac.New(sha256.New, r.secret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return data + "|" + sig
}

// VerifyQRPayload checks a scanned payload's signature and returns the
// invoice number it refers to.
func (r *Renderer) VerifyQRPayload(payload string) (string, bool) {
	parts := strings.Split(payload, "|")
	if len(parts) != 3 {
		return "", false
	}

	data := parts[0] + "|" + parts[1]
	h := hmac.New(sha256.New, r.secret)
	h.Write([]byte(data))
	want := base64.StdEncoding.EncodeToString(h.Sum(nil))

	if !hmac.Equal([]byte(want), []byte(parts[2])) {
		return "", false
	}
	return parts[0], true
}

// RenderPDF renders the receipt as an A6 PDF (receipt-ish proportions) with
// the signed QR code at the bottom.
func (r *Renderer) RenderPDF(rc *entity.Receipt) ([]byte, error) {
	qrPNG, err := qrcode.Encode(r.QRPayload(rc.InvoiceNo, rc.Total), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("receipt: failed to generate QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A6", "")
	pdf.SetMargins(8, 8, 8)
	pdf.AddPage()

	// Store header
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 6, rc.Header.StoreName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 8)
	if rc.Header.Address != "" {
		pdf.CellFormat(0, 4, rc.Header.Address, "", 1, "C", false, 0, "")
	}
	if rc.Header.Phone != "" {
		pdf.CellFormat(0, 4, rc.Header.Phone, "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)

	// Invoice info
	pdf.SetFont("Arial", "", 8)
	r.keyValue(pdf, "Invoice", rc.InvoiceNo)
	r.keyValue(pdf, "Date", rc.Date)
	if rc.Cashier != "" {
		r.keyValue(pdf, "Cashier", rc.Cashier)
	}
	if rc.Customer != "" {
		r.keyValue(pdf, "Member", fmt.Sprintf("%s (%s)", rc.Customer, rc.MemberCode))
	}
	if rc.PaymentMethod != "" {
		r.keyValue(pdf, "Payment", rc.PaymentMethod)
	}
	pdf.Ln(1)
	r.rule(pdf)

	// Items
	for _, item := range rc.Items {
		pdf.CellFormat(0, 4, item.Name, "", 1, "L", false, 0, "")
		left := fmt.Sprintf("  %d x %s", item.Quantity, utils.FormatIDR(item.UnitPrice))
		pdf.CellFormat(50, 4, left, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 4, utils.FormatIDR(item.Total), "", 1, "R", false, 0, "")
	}
	r.rule(pdf)

	// Totals
	r.keyValue(pdf, "Subtotal", utils.FormatIDR(rc.Subtotal))
	if rc.Discount > 0 {
		r.keyValue(pdf, "Discount", "-"+utils.FormatIDR(rc.Discount))
	}
	r.keyValue(pdf, "Tax", utils.FormatIDR(rc.Tax))
	pdf.SetFont("Arial", "B", 9)
	r.keyValue(pdf, "TOTAL", utils.FormatIDR(rc.Total))
	pdf.SetFont("Arial", "", 8)
	r.keyValue(pdf, "Paid", utils.FormatIDR(rc.Paid))
	r.keyValue(pdf, "Change", utils.FormatIDR(rc.Change))
	if rc.PointsEarned > 0 {
		r.keyValue(pdf, "Points earned", fmt.Sprintf("+%d", rc.PointsEarned))
	}
	pdf.Ln(2)

	// Signed QR
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
	x := (105.0 - 24.0) / 2 // center on A6 width
	pdf.ImageOptions("qr", x, pdf.GetY(), 24, 24, false, opts, 0, "")
	pdf.SetY(pdf.GetY() + 26)

	pdf.SetFont("Arial", "I", 7)
	pdf.CellFormat(0, 4, "Thank you for shopping with us!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("receipt: failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) keyValue(pdf *gofpdf.Fpdf, key, value string) {
	pdf.CellFormat(30, 4, key, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 4, value, "", 1, "R", false, 0, "")
}

func (r *Renderer) rule(pdf *gofpdf.Fpdf) {
	y := pdf.GetY()
	w, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	pdf.Line(left, y+1, w-right, y+1)
	pdf.SetY(y + 2)
}
