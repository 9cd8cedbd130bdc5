package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/domain/entity"
	"github.com/sangkips/salespoint-api/internal/domain/enum"
	domainRepo "github.com/sangkips/salespoint-api/internal/domain/repository"
	"gorm.io/gorm"
)

type shiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *gorm.DB) domainRepo.ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) Create(ctx context.Context, shift *entity.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&shift, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shift, err
}

func (r *shiftRepository) GetOpenByUser(ctx context.Context, userID uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, enum.ShiftOpen).
		Order("shift_start DESC").
		First(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shift, err
}

func (r *shiftRepository) Close(ctx context.Context, shift *entity.Shift) error {
	return r.db.WithContext(ctx).Model(&entity.Shift{}).
		Where("id = ?", shift.ID).
		Updates(map[string]interface{}{
			"status":          shift.Status,
			"shift_end":       shift.ShiftEnd,
			"closing_balance": shift.ClosingBalance,
			"notes":           shift.Notes,
		}).Error
}

func (r *shiftRepository) List(ctx context.Context, params *domainRepo.ShiftFilterParams) ([]entity.Shift, int64, error) {
	var shifts []entity.Shift
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Shift{})

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("User").
		Order("shift_start DESC").
		Find(&shifts).Error

	return shifts, total, err
}

// IncrementTotals atomically applies a delta to an open shift's running totals.
func (r *shiftRepository) IncrementTotals(ctx context.Context, id uuid.UUID, delta domainRepo.ShiftTotalsDelta) error {
	return r.db.WithContext(ctx).Model(&entity.Shift{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_sales":        gorm.Expr("total_sales + ?", delta.Sales),
			"total_cash_sales":   gorm.Expr("total_cash_sales + ?", delta.CashSales),
			"total_transactions": gorm.Expr("total_transactions + ?", delta.Transactions),
		}).Error
}
