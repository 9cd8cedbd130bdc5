package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/domain/entity"
	"github.com/sangkips/salespoint-api/pkg/pagination"
)

// ShiftTotalsDelta carries the per-transaction adjustments applied to the
// running totals of an open shift.
type ShiftTotalsDelta struct {
	Sales        int64
	CashSales    int64
	Transactions int64
}

// ShiftRepository defines the interface for cashier shift data operations
type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.Shift) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error)
	// GetOpenByUser returns the user's currently open shift, or (nil, nil)
	// when none is open.
	GetOpenByUser(ctx context.Context, userID uuid.UUID) (*entity.Shift, error)
	// Close writes only the closing fields so that totals incremented by a
	// concurrent checkout are never overwritten with stale values.
	Close(ctx context.Context, shift *entity.Shift) error
	List(ctx context.Context, params *ShiftFilterParams) ([]entity.Shift, int64, error)
	// IncrementTotals atomically applies a delta to an open shift's running
	// totals. Negative values roll a voided transaction back out.
	IncrementTotals(ctx context.Context, id uuid.UUID, delta ShiftTotalsDelta) error
}

// ShiftFilterParams contains filtering parameters for shift queries
type ShiftFilterParams struct {
	Pagination *pagination.PaginationParams
	UserID     *uuid.UUID
	Status     string
}
