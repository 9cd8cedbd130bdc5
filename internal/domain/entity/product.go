package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a sellable item in the catalog. Price is stored in whole
// currency units (IDR); Stock is the live on-hand quantity, decremented
// atomically when transactions post.
type Product struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Barcode    string         `gorm:"size:100;unique;not null" json:"barcode"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Price      int64          `gorm:"not null;default:0" json:"price"`
	Stock      int            `gorm:"not null;default:0" json:"stock"`
	StockAlert int            `gorm:"not null;default:0" json:"stock_alert"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	ImageURL   *string        `gorm:"size:255" json:"image_url,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether the product has fallen to its alert level.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.StockAlert
}

// Category groups products for browsing on the POS screen.
type Category struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:255;unique;not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
