package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/application/service"
	"github.com/sangkips/salespoint-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salespoint-api/internal/presentation/http/dto/response"
	"github.com/sangkips/salespoint-api/pkg/pagination"
)

// CustomerHandler handles member HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create handles registering a member
// @Summary Create customer
// @Tags customers
// @Accept json
// @Produce json
// @Param request body request.CreateCustomerRequest true "Customer data"
// @Success 201 {object} response.APIResponse
// @Router /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// List handles listing members
// @Summary List customers
// @Tags customers
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	params := paginationFromQuery(c)
	search := c.Query("search")

	customers, total, err := h.customerService.ListCustomers(c.Request.Context(), params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(customers, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// GetByPhone handles member lookup by phone at the register
// @Summary Lookup customer by phone
// @Tags customers
// @Produce json
// @Param phone path string true "Phone number"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /customers/phone/{phone} [get]
func (h *CustomerHandler) GetByPhone(c *gin.Context) {
	phone := c.Param("phone")
	if phone == "" {
		response.BadRequest(c, "Phone number is required")
		return
	}

	customer, err := h.customerService.LookupCustomer(c.Request.Context(), "", phone)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// GetByCode handles member lookup by member code
// @Summary Lookup customer by member code
// @Tags customers
// @Produce json
// @Param code path string true "Member code"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /customers/code/{code} [get]
func (h *CustomerHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, "Member code is required")
		return
	}

	customer, err := h.customerService.LookupCustomer(c.Request.Context(), code, "")
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Get handles getting a single member
// @Summary Get customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} response.APIResponse
// @Router /customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Transactions handles listing a member's purchase history
// @Summary List customer transactions
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} response.APIResponse
// @Router /customers/{id}/transactions [get]
func (h *CustomerHandler) Transactions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	params := paginationFromQuery(c)

	transactions, total, err := h.customerService.ListCustomerTransactions(c.Request.Context(), id, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(transactions, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Customer transactions retrieved successfully", result)
}

// Update handles updating a member
// @Summary Update customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param request body request.UpdateCustomerRequest true "Customer data"
// @Success 200 {object} response.APIResponse
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), &service.UpdateCustomerInput{
		ID:      id,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a member
// @Summary Delete customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} response.APIResponse
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer deleted successfully", nil)
}
