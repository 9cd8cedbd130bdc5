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

// ShiftHandler handles shift HTTP requests
type ShiftHandler struct {
	shiftService *service.ShiftService
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(shiftService *service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

// Open handles opening a shift for the authenticated cashier
// @Summary Open shift
// @Description Start a shift with the counted drawer float
// @Tags shifts
// @Accept json
// @Produce json
// @Param request body request.OpenShiftRequest true "Shift data"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /shifts/open [post]
func (h *ShiftHandler) Open(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.OpenShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	shift, err := h.shiftService.OpenShift(c.Request.Context(), &service.OpenShiftInput{
		UserID:         *userID,
		OpeningBalance: req.OpeningBalance,
		Notes:          req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Shift opened successfully", shift)
}

// Current returns the authenticated cashier's open shift
// @Summary Current shift
// @Description Get the caller's open shift; 404 when no shift is open
// @Tags shifts
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /shifts/current [get]
func (h *ShiftHandler) Current(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	shift, err := h.shiftService.GetCurrentShift(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if shift == nil {
		response.NotFound(c, "No open shift")
		return
	}

	response.OK(c, "Current shift retrieved successfully", shift)
}

// Close handles closing the authenticated cashier's open shift
// @Summary Close shift
// @Description Close the open shift and return the drawer reconciliation
// @Tags shifts
// @Accept json
// @Produce json
// @Param id path string true "Shift ID"
// @Param request body request.CloseShiftRequest true "Shift data"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /shifts/{id}/close [put]
func (h *ShiftHandler) Close(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	shiftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shift ID")
		return
	}

	var req request.CloseShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	summary, err := h.shiftService.CloseShift(c.Request.Context(), &service.CloseShiftInput{
		ShiftID:        shiftID,
		UserID:         *userID,
		ClosingBalance: req.ClosingBalance,
		Notes:          req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift closed successfully", summary)
}

// List handles listing shifts
// @Summary List shifts
// @Tags shifts
// @Produce json
// @Param user_id query string false "Filter by user"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.APIResponse
// @Router /shifts [get]
func (h *ShiftHandler) List(c *gin.Context) {
	params := paginationFromQuery(c)

	var userID *uuid.UUID
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		id, err := uuid.Parse(userIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid user ID")
			return
		}
		userID = &id
	}

	shifts, total, err := h.shiftService.ListShifts(c.Request.Context(), &repository.ShiftFilterParams{
		Pagination: params,
		UserID:     userID,
		Status:     c.Query("status"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(shifts, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Shifts retrieved successfully", result)
}

// Get handles getting a single shift
// @Summary Get shift
// @Tags shifts
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} response.APIResponse
// @Router /shifts/{id} [get]
func (h *ShiftHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shift ID")
		return
	}

	shift, err := h.shiftService.GetShift(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift retrieved successfully", shift)
}
