package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a loyalty-program member. Attaching a customer to a sale
// unlocks the member discount and accrues points on the sale's subtotal.
type Customer struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	MemberCode string         `gorm:"size:50;unique;not null" json:"member_code"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Phone      *string        `gorm:"size:50;uniqueIndex" json:"phone,omitempty"`
	Email      *string        `gorm:"size:255" json:"email,omitempty"`
	Address    *string        `gorm:"type:text" json:"address,omitempty"`
	Points     int64          `gorm:"not null;default:0" json:"points"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
