package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/domain/entity"
	"github.com/sangkips/salespoint-api/internal/domain/enum"
	domainRepo "github.com/sangkips/salespoint-api/internal/domain/repository"
	"github.com/sangkips/salespoint-api/pkg/pagination"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var tx entity.Transaction
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("User").Preload("Customer").
		First(&tx, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tx, err
}

func (r *transactionRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Transaction, error) {
	var tx entity.Transaction
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("User").Preload("Customer").
		First(&tx, "invoice_no = ?", invoiceNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tx, err
}

func (r *transactionRepository) Update(ctx context.Context, tx *entity.Transaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

func (r *transactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var txs []entity.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Transaction{})

	if params.Search != "" {
		query = query.Where("invoice_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.ShiftID != nil {
		query = query.Where("shift_id = ?", *params.ShiftID)
	}

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if params.PaymentMethod != "" {
		query = query.Where("payment_method = ?", params.PaymentMethod)
	}

	if params.From != nil {
		query = query.Where("created_at >= ?", *params.From)
	}

	if params.To != nil {
		query = query.Where("created_at < ?", *params.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").Preload("Customer").
		Order("created_at DESC").
		Find(&txs).Error

	return txs, total, err
}

func (r *transactionRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) ([]entity.Transaction, int64, error) {
	var txs []entity.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Where("customer_id = ?", customerID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Items").
		Order("created_at DESC").
		Find(&txs).Error

	return txs, total, err
}

func (r *transactionRepository) GetSalesSummary(ctx context.Context, from, to time.Time) (*domainRepo.SalesSummaryResult, error) {
	var result domainRepo.SalesSummaryResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(total), 0) as total_sales,
			COUNT(*) as total_transactions,
			COALESCE(SUM(discount), 0) as total_discount,
			COALESCE(SUM(tax), 0) as total_tax
		FROM transactions
		WHERE status = ?
		  AND deleted_at IS NULL
		  AND created_at >= ? AND created_at < ?
	`, enum.TransactionCompleted, from, to).Scan(&result).Error

	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *transactionRepository) GetPaymentBreakdown(ctx context.Context, from, to time.Time) ([]domainRepo.PaymentBreakdownResult, error) {
	var results []domainRepo.PaymentBreakdownResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			payment_method,
			COALESCE(SUM(total), 0) as total,
			COUNT(*) as count
		FROM transactions
		WHERE status = ?
		  AND deleted_at IS NULL
		  AND created_at >= ? AND created_at < ?
		GROUP BY payment_method
		ORDER BY total DESC
	`, enum.TransactionCompleted, from, to).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *transactionRepository) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			ti.product_id as product_id,
			ti.product_name as product_name,
			COALESCE(SUM(ti.quantity), 0) as quantity_sold,
			COALESCE(SUM(ti.total), 0) as revenue
		FROM transaction_items ti
		JOIN transactions t ON t.id = ti.transaction_id
		WHERE t.status = ?
		  AND t.deleted_at IS NULL
		  AND t.created_at >= ? AND t.created_at < ?
		GROUP BY ti.product_id, ti.product_name
		ORDER BY quantity_sold DESC
		LIMIT ?
	`, enum.TransactionCompleted, from, to, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *transactionRepository) GetDailySales(ctx context.Context, from, to time.Time) ([]domainRepo.DailySalesResult, error) {
	var results []domainRepo.DailySalesResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			DATE_TRUNC('day', created_at) as date,
			COALESCE(SUM(total), 0) as total,
			COUNT(*) as count
		FROM transactions
		WHERE status = ?
		  AND deleted_at IS NULL
		  AND created_at >= ? AND created_at < ?
		GROUP BY DATE_TRUNC('day', created_at)
		ORDER BY date ASC
	`, enum.TransactionCompleted, from, to).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}
