package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/domain/entity"
	"github.com/sangkips/salespoint-api/internal/domain/repository"
	"github.com/sangkips/salespoint-api/pkg/apperror"
	"github.com/sangkips/salespoint-api/pkg/pagination"
)

// CategoryService handles category management
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	Name        string
	Description string
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	existing, err := s.categoryRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category already exists")
	}

	category := &entity.Category{
		Name: input.Name,
	}
	if input.Description != "" {
		category.Description = &input.Description
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory returns a single category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories returns a paginated list of categories
func (s *CategoryService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error) {
	return s.categoryRepo.List(ctx, params, search)
}

// UpdateCategoryInput represents the update category input
type UpdateCategoryInput struct {
	ID          uuid.UUID
	Name        string
	Description *string
}

// UpdateCategory updates a category
func (s *CategoryService) UpdateCategory(ctx context.Context, input *UpdateCategoryInput) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	if input.Name != "" && input.Name != category.Name {
		existing, err := s.categoryRepo.GetByName(ctx, input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != category.ID {
			return nil, apperror.NewConflictError("Category already exists")
		}
		category.Name = input.Name
	}

	if input.Description != nil {
		category.Description = input.Description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory soft-deletes a category. Products keep their category_id and
// fall back to uncategorized display.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}

	return s.categoryRepo.Delete(ctx, id)
}
