package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/application/service"
	"github.com/sangkips/salespoint-api/internal/domain/repository"
	"github.com/sangkips/salespoint-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salespoint-api/internal/presentation/http/dto/response"
	"github.com/sangkips/salespoint-api/pkg/pagination"
)

// ProductHandler handles product HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create handles creating a product
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param request body request.CreateProductRequest true "Product data"
// @Success 201 {object} response.APIResponse
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		CategoryID: req.CategoryID,
		Barcode:    req.Barcode,
		Name:       req.Name,
		Price:      req.Price,
		Stock:      req.Stock,
		StockAlert: req.StockAlert,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// List handles listing products (supports both page-based and cursor-based pagination)
// @Summary List products
// @Tags products
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var req request.ProductFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	var categoryID *uuid.UUID
	if req.CategoryID != "" {
		id, err := uuid.Parse(req.CategoryID)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		categoryID = &id
	}

	// Cursor-based pagination when a cursor or limit is provided
	if req.Cursor != "" || req.Limit > 0 {
		h.listWithCursor(c, &req, categoryID)
		return
	}

	params := &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage}
	params.Validate()

	products, total, err := h.productService.ListProducts(c.Request.Context(), &repository.ProductFilterParams{
		Pagination: params,
		Search:     req.Search,
		CategoryID: categoryID,
		LowStock:   req.LowStock,
		ActiveOnly: req.ActiveOnly,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(products, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// listWithCursor handles listing products with cursor-based pagination
func (h *ProductHandler) listWithCursor(c *gin.Context, req *request.ProductFilterRequest, categoryID *uuid.UUID) {
	cursorParams := &pagination.CursorParams{
		Cursor:    req.Cursor,
		Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
		Limit:     req.Limit,
	}
	cursorParams.Validate()

	products, hasMore, err := h.productService.ListProductsWithCursor(c.Request.Context(), &repository.ProductCursorFilterParams{
		Cursor:     cursorParams,
		Search:     req.Search,
		CategoryID: categoryID,
		ActiveOnly: req.ActiveOnly,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	cursorPagination := &pagination.CursorPagination{
		Limit:   cursorParams.Limit,
		HasNext: hasMore,
		HasPrev: cursorParams.Cursor != "",
	}
	if len(products) > 0 {
		last := products[len(products)-1]
		nextCursor := pagination.EncodeCursor(last.ID.String(), last.CreatedAt)
		cursorPagination.NextCursor = &nextCursor

		first := products[0]
		prevCursor := pagination.EncodeCursor(first.ID.String(), first.CreatedAt)
		cursorPagination.PrevCursor = &prevCursor
	}

	result := pagination.NewCursorPaginatedResult(products, cursorPagination)
	response.Success(c, 200, "Products retrieved successfully", result)
}

// GetByBarcode handles product lookup by barcode at the register
// @Summary Lookup product by barcode
// @Tags products
// @Produce json
// @Param barcode path string true "Product barcode"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /products/barcode/{barcode} [get]
func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		response.BadRequest(c, "Barcode is required")
		return
	}

	product, err := h.productService.GetProductByBarcode(c.Request.Context(), barcode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// LowStock handles listing products at or below their stock alert level
// @Summary List low stock products
// @Tags products
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /products/alerts/low-stock [get]
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.productService.GetLowStockProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", gin.H{
		"products": products,
		"count":    len(products),
	})
}

// Get handles getting a single product
// @Summary Get product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.APIResponse
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating a product
// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body request.UpdateProductRequest true "Product data"
// @Success 200 {object} response.APIResponse
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), &service.UpdateProductInput{
		ID:         id,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Price:      req.Price,
		Stock:      req.Stock,
		StockAlert: req.StockAlert,
		IsActive:   req.IsActive,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// AdjustStock handles a manual stock delta adjustment
// @Summary Adjust product stock
// @Description Apply a positive or negative stock delta; stock never goes negative
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body request.AdjustStockRequest true "Stock delta"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /products/{id}/stock [patch]
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock adjusted successfully", product)
}

// Delete handles deleting a product
// @Summary Delete product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.APIResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted successfully", nil)
}
