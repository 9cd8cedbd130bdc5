package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Transaction is a completed sale. All amounts are whole currency units and
// are computed server-side at creation time; whatever the terminal showed the
// operator was only a preview. Voiding restores stock and revokes points but
// never deletes the record.
type Transaction struct {
	ID            uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo     string                 `gorm:"size:100;unique;not null" json:"invoice_no"`
	ShiftID       uuid.UUID              `gorm:"type:uuid;not null;index" json:"shift_id"`
	UserID        uuid.UUID              `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID    *uuid.UUID             `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Subtotal      int64                  `gorm:"not null;default:0" json:"subtotal"`
	Discount      int64                  `gorm:"not null;default:0" json:"discount"`
	Tax           int64                  `gorm:"not null;default:0" json:"tax"`
	Total         int64                  `gorm:"not null;default:0" json:"total"`
	AmountPaid    int64                  `gorm:"not null;default:0" json:"amount_paid"`
	Change        int64                  `gorm:"not null;default:0" json:"change"`
	PointsEarned  int64                  `gorm:"not null;default:0" json:"points_earned"`
	PaymentMethod enum.PaymentMethod     `gorm:"size:20;not null" json:"payment_method"`
	Status        enum.TransactionStatus `gorm:"size:20;not null;default:'completed'" json:"status"`
	Notes         *string                `gorm:"type:text" json:"notes,omitempty"`
	VoidReason    *string                `gorm:"type:text" json:"void_reason,omitempty"`
	VoidedAt      *time.Time             `json:"voided_at,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	DeletedAt     gorm.DeletedAt         `gorm:"index" json:"-"`

	// Relationships
	User     *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Customer *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []TransactionItem `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// IsVoided reports whether the sale has been voided.
func (t *Transaction) IsVoided() bool {
	return t.Status == enum.TransactionVoided
}

// TransactionItem is one line of a sale. ProductName and UnitPrice are
// snapshots taken at sale time so receipts survive later catalog edits.
type TransactionItem struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName   string         `gorm:"size:255;not null" json:"product_name"`
	UnitPrice     int64          `gorm:"not null" json:"unit_price"`
	Quantity      int            `gorm:"not null" json:"quantity"`
	Total         int64          `gorm:"not null" json:"total"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Transaction Transaction `gorm:"foreignKey:TransactionID" json:"-"`
	Product     Product     `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new transaction item
func (ti *TransactionItem) BeforeCreate(tx *gorm.DB) error {
	if ti.ID == uuid.Nil {
		ti.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionItem model
func (TransactionItem) TableName() string {
	return "transaction_items"
}
