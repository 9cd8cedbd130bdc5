package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/domain/entity"
	"github.com/sangkips/salespoint-api/internal/domain/enum"
	"github.com/sangkips/salespoint-api/internal/domain/repository"
	"github.com/sangkips/salespoint-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShiftRepo struct {
	open    *entity.Shift
	byID    map[uuid.UUID]*entity.Shift
	created *entity.Shift
	closed  *entity.Shift
}

func (f *fakeShiftRepo) Create(_ context.Context, shift *entity.Shift) error {
	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}
	f.created = shift
	return nil
}

func (f *fakeShiftRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Shift, error) {
	if s, ok := f.byID[id]; ok {
		return s, nil
	}
	return nil, nil
}

func (f *fakeShiftRepo) GetOpenByUser(_ context.Context, userID uuid.UUID) (*entity.Shift, error) {
	if f.open != nil && f.open.UserID == userID {
		return f.open, nil
	}
	return nil, nil
}

func (f *fakeShiftRepo) Close(_ context.Context, shift *entity.Shift) error {
	f.closed = shift
	return nil
}

func (f *fakeShiftRepo) List(_ context.Context, _ *repository.ShiftFilterParams) ([]entity.Shift, int64, error) {
	return nil, 0, nil
}

func (f *fakeShiftRepo) IncrementTotals(_ context.Context, id uuid.UUID, delta repository.ShiftTotalsDelta) error {
	if s, ok := f.byID[id]; ok {
		s.TotalSales += delta.Sales
		s.TotalCashSales += delta.CashSales
		s.TotalTx += delta.Transactions
	}
	return nil
}

func openShift(userID uuid.UUID, opening, cashSales, sales, txCount int64) *entity.Shift {
	return &entity.Shift{
		ID:             uuid.New(),
		UserID:         userID,
		ShiftStart:     time.Now().Add(-4 * time.Hour),
		OpeningBalance: opening,
		TotalSales:     sales,
		TotalCashSales: cashSales,
		TotalTx:        txCount,
		Status:         enum.ShiftOpen,
	}
}

func TestOpenShift(t *testing.T) {
	repo := &fakeShiftRepo{}
	svc := NewShiftService(repo)
	userID := uuid.New()

	shift, err := svc.OpenShift(context.Background(), &OpenShiftInput{
		UserID:         userID,
		OpeningBalance: 100000,
	})

	require.NoError(t, err)
	assert.Equal(t, userID, shift.UserID)
	assert.Equal(t, int64(100000), shift.OpeningBalance)
	assert.Equal(t, enum.ShiftOpen, shift.Status)
	assert.Nil(t, shift.Notes)
	require.NotNil(t, repo.created)
}

func TestOpenShiftKeepsNotes(t *testing.T) {
	repo := &fakeShiftRepo{}
	svc := NewShiftService(repo)

	shift, err := svc.OpenShift(context.Background(), &OpenShiftInput{
		UserID:         uuid.New(),
		OpeningBalance: 50000,
		Notes:          "Morning shift",
	})

	require.NoError(t, err)
	require.NotNil(t, shift.Notes)
	assert.Equal(t, "Morning shift", *shift.Notes)
}

func TestOpenShiftRejectsSecondOpen(t *testing.T) {
	userID := uuid.New()
	repo := &fakeShiftRepo{open: openShift(userID, 100000, 0, 0, 0)}
	svc := NewShiftService(repo)

	_, err := svc.OpenShift(context.Background(), &OpenShiftInput{
		UserID:         userID,
		OpeningBalance: 100000,
	})

	assert.Equal(t, apperror.ErrShiftAlreadyOpen, err)
	assert.Nil(t, repo.created)
}

func TestOpenShiftRejectsNegativeBalance(t *testing.T) {
	svc := NewShiftService(&fakeShiftRepo{})

	_, err := svc.OpenShift(context.Background(), &OpenShiftInput{
		UserID:         uuid.New(),
		OpeningBalance: -1,
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestCloseShiftSummary(t *testing.T) {
	userID := uuid.New()
	shift := openShift(userID, 100000, 250000, 400000, 12)
	shift.Notes = nil
	repo := &fakeShiftRepo{
		open: shift,
		byID: map[uuid.UUID]*entity.Shift{shift.ID: shift},
	}
	svc := NewShiftService(repo)

	summary, err := svc.CloseShift(context.Background(), &CloseShiftInput{
		ShiftID:        shift.ID,
		UserID:         userID,
		ClosingBalance: 340000,
		Notes:          "Drawer short",
	})

	require.NoError(t, err)
	assert.Equal(t, shift.ID, summary.ShiftID)
	assert.Equal(t, int64(100000), summary.OpeningBalance)
	assert.Equal(t, int64(340000), summary.ClosingBalance)
	assert.Equal(t, int64(400000), summary.TotalSales)
	assert.Equal(t, int64(250000), summary.TotalCashSales)
	assert.Equal(t, int64(12), summary.TotalTransactions)
	// Expected cash is the opening float plus cash sales; the drawer is
	// 10000 short of that.
	assert.Equal(t, int64(350000), summary.ExpectedCash)
	assert.Equal(t, int64(-10000), summary.Difference)

	require.NotNil(t, repo.closed)
	assert.Equal(t, enum.ShiftClosed, repo.closed.Status)
	require.NotNil(t, repo.closed.ShiftEnd)
	require.NotNil(t, repo.closed.ClosingBalance)
	assert.Equal(t, int64(340000), *repo.closed.ClosingBalance)
	require.NotNil(t, repo.closed.Notes)
	assert.Equal(t, "Drawer short", *repo.closed.Notes)
}

func TestCloseShiftPicksUpLateSales(t *testing.T) {
	userID := uuid.New()
	shift := openShift(userID, 100000, 200000, 200000, 5)
	stored := *shift
	repo := &fakeShiftRepo{
		open: shift,
		byID: map[uuid.UUID]*entity.Shift{shift.ID: &stored},
	}
	svc := NewShiftService(repo)

	// A cash sale posts between the open-shift lookup and the close; the
	// summary must reflect the final totals, not the ones read first.
	require.NoError(t, repo.IncrementTotals(context.Background(), shift.ID,
		repository.ShiftTotalsDelta{Sales: 50000, CashSales: 50000, Transactions: 1}))

	summary, err := svc.CloseShift(context.Background(), &CloseShiftInput{
		ShiftID:        shift.ID,
		UserID:         userID,
		ClosingBalance: 350000,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(250000), summary.TotalCashSales)
	assert.Equal(t, int64(6), summary.TotalTransactions)
	assert.Equal(t, int64(350000), summary.ExpectedCash)
	assert.Equal(t, int64(0), summary.Difference)
}

func TestCloseShiftRejectsWrongID(t *testing.T) {
	userID := uuid.New()
	shift := openShift(userID, 100000, 0, 0, 0)
	repo := &fakeShiftRepo{
		open: shift,
		byID: map[uuid.UUID]*entity.Shift{shift.ID: shift},
	}
	svc := NewShiftService(repo)

	_, err := svc.CloseShift(context.Background(), &CloseShiftInput{
		ShiftID:        uuid.New(),
		UserID:         userID,
		ClosingBalance: 100000,
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Nil(t, repo.closed)
}

func TestCloseShiftRequiresOpenShift(t *testing.T) {
	svc := NewShiftService(&fakeShiftRepo{})

	_, err := svc.CloseShift(context.Background(), &CloseShiftInput{
		ShiftID:        uuid.New(),
		UserID:         uuid.New(),
		ClosingBalance: 100000,
	})

	assert.Equal(t, apperror.ErrNoOpenShift, err)
}

func TestCloseShiftRejectsNegativeBalance(t *testing.T) {
	userID := uuid.New()
	shift := openShift(userID, 100000, 0, 0, 0)
	repo := &fakeShiftRepo{open: shift}
	svc := NewShiftService(repo)

	_, err := svc.CloseShift(context.Background(), &CloseShiftInput{
		ShiftID:        shift.ID,
		UserID:         userID,
		ClosingBalance: -1,
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Nil(t, repo.closed)
}
