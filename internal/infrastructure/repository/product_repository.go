package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/domain/entity"
	domainRepo "github.com/sangkips/salespoint-api/internal/domain/repository"
	"github.com/sangkips/salespoint-api/pkg/pagination"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// GetByIDs retrieves multiple products by their IDs in a single query
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&product, "barcode = ?", barcode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR barcode ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}

	if params.LowStock {
		query = query.Where("stock <= stock_alert")
	}

	if params.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	switch params.SortBy {
	case "name", "price", "stock", "created_at":
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Category").
		Order(sortBy + " " + sortOrder).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("stock <= stock_alert AND is_active = ?", true).
		Preload("Category").
		Find(&products).Error
	return products, err
}

// AtomicDecrementBatch atomically decrements stock for multiple products in a single transaction.
// If any product has insufficient stock, the entire transaction is rolled back.
func (r *productRepository) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	if len(decrements) == 0 {
		return nil, nil
	}

	var failedIDs []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range decrements {
			result := tx.Model(&entity.Product{}).
				Where("id = ? AND stock >= ?", id, amount).
				Update("stock", gorm.Expr("stock - ?", amount))

			if result.Error != nil {
				return result.Error
			}

			if result.RowsAffected == 0 {
				failedIDs = append(failedIDs, id)
			}
		}

		// If any products failed, rollback entire transaction
		if len(failedIDs) > 0 {
			return gorm.ErrInvalidTransaction
		}

		return nil
	})

	// If we rolled back due to insufficient stock, return the failed IDs without the transaction error
	if err == gorm.ErrInvalidTransaction && len(failedIDs) > 0 {
		return failedIDs, nil
	}

	return failedIDs, err
}

// AtomicIncrementBatch atomically increments stock for multiple products (for voids/returns).
func (r *productRepository) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	if len(increments) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range increments {
			if err := tx.Model(&entity.Product{}).
				Where("id = ?", id).
				Update("stock", gorm.Expr("stock + ?", amount)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListWithCursor returns products using cursor-based pagination
func (r *productRepository) ListWithCursor(ctx context.Context, params *domainRepo.ProductCursorFilterParams) ([]entity.Product, error) {
	var products []entity.Product

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR barcode ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}

	if params.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	// Decode cursor if provided
	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	// Fetch limit+1 to detect hasMore
	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Category").
		Order("created_at ASC, id ASC").
		Find(&products).Error

	return products, err
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domainRepo.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error) {
	var categories []entity.Category
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Category{})

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&categories).Error

	return categories, total, err
}
