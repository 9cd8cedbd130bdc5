package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/domain/entity"
	"github.com/sangkips/salespoint-api/internal/domain/enum"
	"github.com/sangkips/salespoint-api/internal/domain/repository"
	"github.com/sangkips/salespoint-api/internal/infrastructure/cache"
	"github.com/sangkips/salespoint-api/pkg/apperror"
	"github.com/sangkips/salespoint-api/pkg/email"
	"github.com/sangkips/salespoint-api/pkg/pricing"
	"github.com/sangkips/salespoint-api/pkg/receipt"
	"github.com/sangkips/salespoint-api/pkg/utils"
)

// TransactionService orchestrates checkout. Prices, discounts, tax and
// points are always computed here from the catalog; the terminal's cart
// totals are treated as a preview only.
type TransactionService struct {
	transactionRepo repository.TransactionRepository
	productRepo     repository.ProductRepository
	customerRepo    repository.CustomerRepository
	shiftRepo       repository.ShiftRepository
	calculator      pricing.Calculator
	renderer        *receipt.Renderer
	emailService    *email.EmailService
	cache           *cache.Cache
	header          entity.ReceiptHeader
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	shiftRepo repository.ShiftRepository,
	calculator pricing.Calculator,
	renderer *receipt.Renderer,
	emailService *email.EmailService,
	reportCache *cache.Cache,
	header entity.ReceiptHeader,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		productRepo:     productRepo,
		customerRepo:    customerRepo,
		shiftRepo:       shiftRepo,
		calculator:      calculator,
		renderer:        renderer,
		emailService:    emailService,
		cache:           reportCache,
		header:          header,
	}
}

// CheckoutItemInput is one cart line sent by the terminal. Only the product
// reference and quantity are trusted; pricing comes from the catalog.
type CheckoutItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CheckoutInput represents the checkout input
type CheckoutInput struct {
	UserID        uuid.UUID
	CustomerID    *uuid.UUID
	PaymentMethod enum.PaymentMethod
	AmountPaid    int64
	Notes         string
	Items         []CheckoutItemInput
}

// Checkout posts a sale against the cashier's open shift. Stock is
// decremented atomically; if any line has insufficient stock nothing is
// written and the failing products are named in the error.
func (s *TransactionService) Checkout(ctx context.Context, input *CheckoutInput) (*entity.Transaction, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}
	if !input.PaymentMethod.Valid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}

	// Sales only post against an open shift
	shift, err := s.shiftRepo.GetOpenByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.ErrNoOpenShift
	}

	// Validate customer if provided
	var customer *entity.Customer
	if input.CustomerID != nil {
		customer, err = s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	// Price every line from the catalog and prepare stock decrements
	var subtotal int64
	items := make([]entity.TransactionItem, 0, len(input.Items))
	stockDecrements := make(map[uuid.UUID]int)

	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}

		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if !product.IsActive {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Product %s is not for sale", product.Name))
		}

		lineTotal := product.Price * int64(item.Quantity)
		subtotal += lineTotal

		items = append(items, entity.TransactionItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    item.Quantity,
			Total:       lineTotal,
		})

		// Merge duplicate lines for the same product
		stockDecrements[product.ID] += item.Quantity
	}

	totals := s.calculator.Compute(subtotal, customer != nil)

	if input.AmountPaid < totals.Total {
		return nil, apperror.NewBadRequestError("Amount paid is less than the total")
	}

	// Atomically decrement stock. This is race-condition safe: if any
	// product has insufficient stock, nothing is decremented.
	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			if product, exists := productMap[id]; exists {
				failedNames = append(failedNames, product.Name)
			}
		}
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Insufficient stock for: %v", failedNames))
	}

	now := time.Now()
	tx := &entity.Transaction{
		InvoiceNo:     utils.GenerateInvoiceNo(now),
		ShiftID:       shift.ID,
		UserID:        input.UserID,
		CustomerID:    input.CustomerID,
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		Tax:           totals.Tax,
		Total:         totals.Total,
		AmountPaid:    input.AmountPaid,
		Change:        input.AmountPaid - totals.Total,
		PointsEarned:  totals.PointsEarned,
		PaymentMethod: input.PaymentMethod,
		Status:        enum.TransactionCompleted,
		Items:         items,
	}
	if input.Notes != "" {
		tx.Notes = &input.Notes
	}

	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		// Stock was already decremented, put it back
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	// Keep the shift's running totals current
	delta := repository.ShiftTotalsDelta{Sales: tx.Total, Transactions: 1}
	if input.PaymentMethod == enum.PaymentCash {
		delta.CashSales = tx.Total
	}
	if err := s.shiftRepo.IncrementTotals(ctx, shift.ID, delta); err != nil {
		log.Printf("Warning: failed to update shift totals for %s: %v", tx.InvoiceNo, err)
	}

	// Award loyalty points
	if customer != nil && tx.PointsEarned > 0 {
		if err := s.customerRepo.AddPoints(ctx, customer.ID, tx.PointsEarned); err != nil {
			log.Printf("Warning: failed to award points for %s: %v", tx.InvoiceNo, err)
		}
	}

	// Email the receipt to members with an address, best effort
	if customer != nil && customer.Email != nil && s.emailService != nil && s.emailService.Enabled() {
		s.sendReceiptEmail(tx, customer)
	}

	return s.transactionRepo.GetByID(ctx, tx.ID)
}

// GetTransaction retrieves a transaction by ID
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	tx, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return tx, nil
}

// GetTransactionByInvoice retrieves a transaction by invoice number, used by
// QR verification on printed receipts.
func (s *TransactionService) GetTransactionByInvoice(ctx context.Context, invoiceNo string) (*entity.Transaction, error) {
	tx, err := s.transactionRepo.GetByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return tx, nil
}

// ListTransactions returns a filtered, paginated transaction list
func (s *TransactionService) ListTransactions(ctx context.Context, params *repository.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	return s.transactionRepo.List(ctx, params)
}

// VoidTransactionInput represents the void transaction input
type VoidTransactionInput struct {
	TransactionID uuid.UUID
	Reason        string
}

// VoidTransaction reverses a completed sale: stock is restored, loyalty
// points are revoked and the shift totals are rolled back. The record itself
// is kept for audit.
func (s *TransactionService) VoidTransaction(ctx context.Context, input *VoidTransactionInput) (*entity.Transaction, error) {
	if input.Reason == "" {
		return nil, apperror.NewBadRequestError("Void reason is required")
	}

	tx, err := s.transactionRepo.GetByID(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	if tx.IsVoided() {
		return nil, apperror.NewBadRequestError("Transaction is already voided")
	}

	// Restore stock
	stockIncrements := make(map[uuid.UUID]int)
	for _, item := range tx.Items {
		stockIncrements[item.ProductID] += item.Quantity
	}
	if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
		return nil, err
	}

	// Revoke points
	if tx.CustomerID != nil && tx.PointsEarned > 0 {
		if err := s.customerRepo.AddPoints(ctx, *tx.CustomerID, -tx.PointsEarned); err != nil {
			log.Printf("Warning: failed to revoke points for %s: %v", tx.InvoiceNo, err)
		}
	}

	// Roll the sale back out of the shift totals
	delta := repository.ShiftTotalsDelta{Sales: -tx.Total, Transactions: -1}
	if tx.PaymentMethod == enum.PaymentCash {
		delta.CashSales = -tx.Total
	}
	if err := s.shiftRepo.IncrementTotals(ctx, tx.ShiftID, delta); err != nil {
		log.Printf("Warning: failed to roll back shift totals for %s: %v", tx.InvoiceNo, err)
	}

	now := time.Now()
	tx.Status = enum.TransactionVoided
	tx.VoidReason = &input.Reason
	tx.VoidedAt = &now

	if err := s.transactionRepo.Update(ctx, tx); err != nil {
		return nil, err
	}

	// Cached reports for the sale's day are now stale
	if err := s.cache.Delete(ctx, reportCacheKeys(tx.CreatedAt)...); err != nil {
		log.Printf("Warning: failed to invalidate report cache: %v", err)
	}

	return tx, nil
}

// BuildReceipt composes the printable receipt for a transaction.
func (s *TransactionService) BuildReceipt(tx *entity.Transaction) *entity.Receipt {
	rc := &entity.Receipt{
		Header:        s.header,
		InvoiceNo:     tx.InvoiceNo,
		Date:          tx.CreatedAt.Format("2006-01-02 15:04"),
		PaymentMethod: tx.PaymentMethod.String(),
		Subtotal:      tx.Subtotal,
		Discount:      tx.Discount,
		Tax:           tx.Tax,
		Total:         tx.Total,
		Paid:          tx.AmountPaid,
		Change:        tx.Change,
		PointsEarned:  tx.PointsEarned,
	}

	if tx.User != nil {
		rc.Cashier = tx.User.FullName
	}
	if tx.Customer != nil {
		rc.Customer = tx.Customer.Name
		rc.MemberCode = tx.Customer.MemberCode
	}

	for _, item := range tx.Items {
		rc.Items = append(rc.Items, entity.ReceiptItem{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}

	return rc
}

// RenderReceiptPDF renders a transaction's receipt as a PDF with its signed
// QR code.
func (s *TransactionService) RenderReceiptPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	tx, err := s.GetTransaction(ctx, id)
	if err != nil {
		return nil, "", err
	}

	pdf, err := s.renderer.RenderPDF(s.BuildReceipt(tx))
	if err != nil {
		return nil, "", err
	}

	return pdf, tx.InvoiceNo, nil
}

// VerifyReceipt checks a scanned QR payload and returns the transaction it
// belongs to.
func (s *TransactionService) VerifyReceipt(ctx context.Context, payload string) (*entity.Transaction, error) {
	invoiceNo, ok := s.renderer.VerifyQRPayload(payload)
	if !ok {
		return nil, apperror.NewBadRequestError("Invalid receipt signature")
	}
	return s.GetTransactionByInvoice(ctx, invoiceNo)
}

func (s *TransactionService) sendReceiptEmail(tx *entity.Transaction, customer *entity.Customer) {
	rc := s.BuildReceipt(tx)
	rc.Customer = customer.Name
	rc.MemberCode = customer.MemberCode

	pdf, err := s.renderer.RenderPDF(rc)
	if err != nil {
		log.Printf("Warning: failed to render receipt PDF for %s: %v", tx.InvoiceNo, err)
		return
	}

	if err := s.emailService.SendReceiptEmail(*customer.Email, rc, pdf); err != nil {
		log.Printf("Warning: failed to email receipt for %s: %v", tx.InvoiceNo, err)
	}
}
