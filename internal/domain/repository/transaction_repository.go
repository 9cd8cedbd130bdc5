package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/domain/entity"
	"github.com/sangkips/salespoint-api/pkg/pagination"
)

// SalesSummaryResult aggregates completed transactions over a period
type SalesSummaryResult struct {
	TotalSales        int64
	TotalTransactions int64
	TotalDiscount     int64
	TotalTax          int64
}

// PaymentBreakdownResult represents sales totals for a single payment method
type PaymentBreakdownResult struct {
	PaymentMethod string
	Total         int64
	Count         int64
}

// TopProductResult represents a product's sales performance over a period
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	QuantitySold int64
	Revenue      int64
}

// DailySalesResult represents sales totals for a single day
type DailySalesResult struct {
	Date  time.Time
	Total int64
	Count int64
}

// TransactionRepository defines the interface for transaction data operations
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Transaction, error)
	Update(ctx context.Context, tx *entity.Transaction) error
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) ([]entity.Transaction, int64, error)

	// Report aggregations run over completed transactions only.
	GetSalesSummary(ctx context.Context, from, to time.Time) (*SalesSummaryResult, error)
	GetPaymentBreakdown(ctx context.Context, from, to time.Time) ([]PaymentBreakdownResult, error)
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProductResult, error)
	GetDailySales(ctx context.Context, from, to time.Time) ([]DailySalesResult, error)
}

// TransactionFilterParams contains filtering parameters for transaction queries
type TransactionFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	ShiftID       *uuid.UUID
	UserID        *uuid.UUID
	CustomerID    *uuid.UUID
	Status        string
	PaymentMethod string
	From          *time.Time
	To            *time.Time
}
