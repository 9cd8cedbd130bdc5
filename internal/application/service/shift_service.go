package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/domain/entity"
	"github.com/sangkips/salespoint-api/internal/domain/enum"
	"github.com/sangkips/salespoint-api/internal/domain/repository"
	"github.com/sangkips/salespoint-api/pkg/apperror"
)

// ShiftService handles cashier shift lifecycle. A cashier holds at most one
// open shift at a time, and sales only post against an open shift.
type ShiftService struct {
	shiftRepo repository.ShiftRepository
}

// NewShiftService creates a new shift service
func NewShiftService(shiftRepo repository.ShiftRepository) *ShiftService {
	return &ShiftService{shiftRepo: shiftRepo}
}

// OpenShiftInput represents the open shift input
type OpenShiftInput struct {
	UserID         uuid.UUID
	OpeningBalance int64
	Notes          string
}

// OpenShift starts a new shift for the cashier with the counted drawer float.
func (s *ShiftService) OpenShift(ctx context.Context, input *OpenShiftInput) (*entity.Shift, error) {
	if input.OpeningBalance < 0 {
		return nil, apperror.NewBadRequestError("Opening balance cannot be negative")
	}

	existing, err := s.shiftRepo.GetOpenByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrShiftAlreadyOpen
	}

	shift := &entity.Shift{
		UserID:         input.UserID,
		ShiftStart:     time.Now(),
		OpeningBalance: input.OpeningBalance,
		Status:         enum.ShiftOpen,
	}
	if input.Notes != "" {
		shift.Notes = &input.Notes
	}

	if err := s.shiftRepo.Create(ctx, shift); err != nil {
		return nil, err
	}

	return shift, nil
}

// GetCurrentShift returns the cashier's open shift, or nil when none is open.
func (s *ShiftService) GetCurrentShift(ctx context.Context, userID uuid.UUID) (*entity.Shift, error) {
	return s.shiftRepo.GetOpenByUser(ctx, userID)
}

// CloseShiftInput represents the close shift input
type CloseShiftInput struct {
	ShiftID        uuid.UUID
	UserID         uuid.UUID
	ClosingBalance int64
	Notes          string
}

// CloseShift ends the cashier's open shift and returns a reconciliation
// summary comparing the declared drawer count against the expected cash.
func (s *ShiftService) CloseShift(ctx context.Context, input *CloseShiftInput) (*entity.ShiftSummary, error) {
	if input.ClosingBalance < 0 {
		return nil, apperror.NewBadRequestError("Closing balance cannot be negative")
	}

	shift, err := s.shiftRepo.GetOpenByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.ErrNoOpenShift
	}
	if shift.ID != input.ShiftID {
		return nil, apperror.NewNotFoundError("Shift")
	}

	now := time.Now()
	shift.ShiftEnd = &now
	shift.ClosingBalance = &input.ClosingBalance
	shift.Status = enum.ShiftClosed
	if input.Notes != "" {
		shift.Notes = &input.Notes
	}

	if err := s.shiftRepo.Close(ctx, shift); err != nil {
		return nil, err
	}

	// Re-read the totals after closing; a checkout may have landed between
	// the open-shift lookup and the close.
	if closed, err := s.shiftRepo.GetByID(ctx, shift.ID); err == nil && closed != nil {
		shift = closed
	}

	expected := shift.ExpectedCash()
	return &entity.ShiftSummary{
		ShiftID:           shift.ID,
		OpeningBalance:    shift.OpeningBalance,
		ClosingBalance:    input.ClosingBalance,
		TotalSales:        shift.TotalSales,
		TotalCashSales:    shift.TotalCashSales,
		TotalTransactions: shift.TotalTx,
		ExpectedCash:      expected,
		Difference:        input.ClosingBalance - expected,
		ShiftStart:        shift.ShiftStart,
		ShiftEnd:          now,
	}, nil
}

// GetShift returns a single shift by ID
func (s *ShiftService) GetShift(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	shift, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NewNotFoundError("Shift")
	}
	return shift, nil
}

// ListShifts returns a filtered, paginated shift list
func (s *ShiftService) ListShifts(ctx context.Context, params *repository.ShiftFilterParams) ([]entity.Shift, int64, error) {
	return s.shiftRepo.List(ctx, params)
}
