package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/domain/entity"
	"github.com/sangkips/salespoint-api/pkg/printer"
	"github.com/sangkips/salespoint-api/pkg/receipt"
	"github.com/sangkips/salespoint-api/pkg/utils"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	txService   *TransactionService
	renderer    *receipt.Renderer
	printerType string
	header      entity.ReceiptHeader
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	txService *TransactionService,
	renderer *receipt.Renderer,
	printerType string,
	header entity.ReceiptHeader,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		txService:   txService,
		renderer:    renderer,
		printerType: printerType,
		header:      header,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "null" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printing is disabled.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	rc := &entity.Receipt{
		Header:    s.header,
		InvoiceNo: "TEST-001",
		Date:      "Test Date",
		Cashier:   "System",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 10000, Total: 10000},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 5000, Total: 10000},
		},
		Subtotal: 20000,
		Tax:      2000,
		Total:    22000,
		Paid:     22000,
	}

	data := s.FormatReceipt(rc)
	if err := s.printer.Print(data); err != nil {
		return rc, fmt.Errorf("test print failed: %w", err)
	}

	return rc, nil
}

// PrintTransactionReceipt fetches a transaction and prints its receipt.
func (s *PrinterService) PrintTransactionReceipt(ctx context.Context, transactionID uuid.UUID) (*entity.Receipt, error) {
	tx, err := s.txService.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	rc := s.txService.BuildReceipt(tx)

	data := s.FormatReceipt(rc)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (transaction %s): %v", transactionID, err)
		return rc, fmt.Errorf("failed to print receipt: %w", err)
	}

	return rc, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes, including the signed
// QR code for later verification.
func (s *PrinterService) FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("Tax ID: %s", r.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Invoice info
	doc.KeyValue("Invoice:", r.InvoiceNo).
		KeyValue("Date:", r.Date)

	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.Customer != "" {
		doc.KeyValue("Member:", r.Customer)
	}
	if r.PaymentMethod != "" {
		doc.KeyValue("Payment:", r.PaymentMethod)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, utils.FormatIDR(item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %s each", utils.FormatIDR(item.UnitPrice))
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", utils.FormatIDR(r.Subtotal))
	if r.Discount > 0 {
		doc.KeyValue("Discount:", "-"+utils.FormatIDR(r.Discount))
	}
	doc.KeyValue("Tax:", utils.FormatIDR(r.Tax))
	doc.SetBold(true).
		KeyValue("TOTAL:", utils.FormatIDR(r.Total)).
		SetBold(false)

	doc.KeyValue("Paid:", utils.FormatIDR(r.Paid)).
		KeyValue("Change:", utils.FormatIDR(r.Change))

	if r.PointsEarned > 0 {
		doc.KeyValue("Points:", fmt.Sprintf("+%d", r.PointsEarned))
	}

	doc.Separator('-')

	// Signed QR code for receipt verification
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		QRCode(s.renderer.QRPayload(r.InvoiceNo, r.Total), 5).
		LineFeed().
		Text("Thank you for shopping with us!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
