package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/domain/entity"
	"github.com/sangkips/salespoint-api/internal/domain/repository"
	"github.com/sangkips/salespoint-api/pkg/apperror"
	"github.com/sangkips/salespoint-api/pkg/utils"
)

// ProductService handles catalog management and barcode lookup
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	CategoryID *uuid.UUID
	Barcode    string
	Name       string
	Price      int64
	Stock      int
	StockAlert int
	ImageURL   *string
}

// CreateProduct creates a new product. A barcode is generated when none is
// provided.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Price < 0 {
		return nil, apperror.NewBadRequestError("Price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, apperror.NewBadRequestError("Stock cannot be negative")
	}

	barcode := input.Barcode
	if barcode == "" {
		barcode = utils.GenerateBarcode()
	} else {
		existing, err := s.productRepo.GetByBarcode(ctx, barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Barcode already in use")
		}
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	product := &entity.Product{
		CategoryID: input.CategoryID,
		Barcode:    barcode,
		Name:       input.Name,
		Price:      input.Price,
		Stock:      input.Stock,
		StockAlert: input.StockAlert,
		IsActive:   true,
		ImageURL:   input.ImageURL,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct returns a single product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByBarcode resolves a scanned barcode to a product. Inactive
// products are not sellable and resolve as not found.
func (s *ProductService) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	product, err := s.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts returns a filtered, paginated product list
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return s.productRepo.List(ctx, params)
}

// ListProductsWithCursor returns products using cursor-based pagination, used
// by the POS grid for infinite scrolling.
func (s *ProductService) ListProductsWithCursor(ctx context.Context, params *repository.ProductCursorFilterParams) ([]entity.Product, bool, error) {
	products, err := s.productRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(products) > params.Cursor.Limit
	if hasMore {
		products = products[:params.Cursor.Limit]
	}

	return products, hasMore, nil
}

// GetLowStockProducts returns active products at or below their alert level
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// AdjustStock applies a stock delta to a product. A decrement that would
// drive stock negative rejects the whole adjustment.
func (s *ProductService) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*entity.Product, error) {
	if delta == 0 {
		return nil, apperror.NewBadRequestError("Stock delta cannot be zero")
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if delta > 0 {
		if err := s.productRepo.AtomicIncrementBatch(ctx, map[uuid.UUID]int{id: delta}); err != nil {
			return nil, err
		}
	} else {
		failed, err := s.productRepo.AtomicDecrementBatch(ctx, map[uuid.UUID]int{id: -delta})
		if err != nil {
			return nil, err
		}
		if len(failed) > 0 {
			return nil, apperror.NewBadRequestError("Insufficient stock for adjustment")
		}
	}

	return s.productRepo.GetByID(ctx, id)
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID         uuid.UUID
	CategoryID *uuid.UUID
	Name       string
	Price      *int64
	Stock      *int
	StockAlert *int
	IsActive   *bool
	ImageURL   *string
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != "" {
		product.Name = input.Name
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		product.CategoryID = input.CategoryID
	}

	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewBadRequestError("Price cannot be negative")
		}
		product.Price = *input.Price
	}

	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, apperror.NewBadRequestError("Stock cannot be negative")
		}
		product.Stock = *input.Stock
	}

	if input.StockAlert != nil {
		product.StockAlert = *input.StockAlert
	}

	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct soft-deletes a product. Transaction items keep their own
// name and price snapshots, so history is unaffected.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	return s.productRepo.Delete(ctx, id)
}
