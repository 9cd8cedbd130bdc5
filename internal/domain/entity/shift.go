package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Shift is a bounded operator work session bracketed by declared opening and
// closing cash amounts. Sales posted while the shift is open roll into
// TotalSales/TotalTransactions; checkout is only permitted against an open
// shift. At most one shift is open per operator at a time.
type Shift struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	ShiftStart     time.Time        `gorm:"not null" json:"shift_start"`
	ShiftEnd       *time.Time       `json:"shift_end,omitempty"`
	OpeningBalance int64            `gorm:"not null;default:0" json:"opening_balance"`
	ClosingBalance *int64           `json:"closing_balance,omitempty"`
	TotalSales     int64            `gorm:"not null;default:0" json:"total_sales"`
	TotalCashSales int64            `gorm:"not null;default:0" json:"total_cash_sales"`
	TotalTx        int64            `gorm:"not null;default:0;column:total_transactions" json:"total_transactions"`
	Status         enum.ShiftStatus `gorm:"size:20;not null;default:'open'" json:"status"`
	Notes          *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:ShiftID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new shift
func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Shift model
func (Shift) TableName() string {
	return "shifts"
}

// IsOpen reports whether the shift is still accepting sales.
func (s *Shift) IsOpen() bool {
	return s.Status == enum.ShiftOpen
}

// ExpectedCash is the cash that should be in the drawer: the declared opening
// float plus cash sales posted during the shift. Card and wallet sales never
// touch the drawer.
func (s *Shift) ExpectedCash() int64 {
	return s.OpeningBalance + s.TotalCashSales
}

// ShiftSummary is returned when a shift closes: the drawer reconciliation the
// operator sees before signing off.
type ShiftSummary struct {
	ShiftID           uuid.UUID `json:"shift_id"`
	OpeningBalance    int64     `json:"opening_balance"`
	ClosingBalance    int64     `json:"closing_balance"`
	TotalSales        int64     `json:"total_sales"`
	TotalCashSales    int64     `json:"total_cash_sales"`
	TotalTransactions int64     `json:"total_transactions"`
	ExpectedCash      int64     `json:"expected_cash"`
	// Difference is declared minus expected: negative means the drawer is
	// short.
	Difference int64     `json:"difference"`
	ShiftStart time.Time `json:"shift_start"`
	ShiftEnd   time.Time `json:"shift_end"`
}
