package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/domain/entity"
	"github.com/sangkips/salespoint-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	ListWithCursor(ctx context.Context, params *ProductCursorFilterParams) ([]entity.Product, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	// AtomicDecrementBatch atomically decrements stock for multiple products.
	// Returns IDs of products that failed (insufficient stock) and any error.
	// If any product fails, the entire transaction is rolled back.
	AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) (failedIDs []uuid.UUID, err error)
	// AtomicIncrementBatch atomically increments stock for multiple products (for voids/returns).
	AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uuid.UUID
	LowStock   bool
	ActiveOnly bool
	SortBy     string
	SortOrder  string
}

// ProductCursorFilterParams contains cursor-based filtering parameters for product queries
type ProductCursorFilterParams struct {
	Cursor     *pagination.CursorParams
	Search     string
	CategoryID *uuid.UUID
	ActiveOnly bool
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error)
}
