package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	CategoryID *uuid.UUID `json:"category_id"`
	Barcode    string     `json:"barcode" binding:"omitempty,max=100"`
	Name       string     `json:"name" binding:"required,min=2,max=255"`
	Price      int64      `json:"price" binding:"min=0"`
	Stock      int        `json:"stock" binding:"min=0"`
	StockAlert int        `json:"stock_alert" binding:"min=0"`
	ImageURL   *string    `json:"image_url"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	CategoryID *uuid.UUID `json:"category_id"`
	Name       string     `json:"name" binding:"omitempty,min=2,max=255"`
	Price      *int64     `json:"price" binding:"omitempty,min=0"`
	Stock      *int       `json:"stock" binding:"omitempty,min=0"`
	StockAlert *int       `json:"stock_alert" binding:"omitempty,min=0"`
	IsActive   *bool      `json:"is_active"`
	ImageURL   *string    `json:"image_url"`
}

// AdjustStockRequest represents a manual stock adjustment
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	LowStock   bool   `form:"low_stock"`
	ActiveOnly bool   `form:"active_only"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
	Limit      int    `form:"limit"` // For cursor-based pagination
	Cursor     string `form:"cursor"`
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=255"`
	Description string `json:"description"`
}

// UpdateCategoryRequest represents a category update request
type UpdateCategoryRequest struct {
	Name        string  `json:"name" binding:"omitempty,min=2,max=255"`
	Description *string `json:"description"`
}
