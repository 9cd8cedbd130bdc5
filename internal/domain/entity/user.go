package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User is a POS operator account. Accounts are provisioned by admins;
// deactivated accounts keep their sales history but can no longer log in.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Username  string         `gorm:"size:100;unique;not null" json:"username"`
	FullName  string         `gorm:"size:255;not null" json:"fullname"`
	Email     string         `gorm:"size:255;unique;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      enum.Role      `gorm:"size:20;not null;default:'cashier'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Shifts       []Shift       `gorm:"foreignKey:UserID" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
