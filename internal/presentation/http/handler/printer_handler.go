package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/salespoint-api/internal/application/service"
	"github.com/sangkips/salespoint-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salespoint-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles receipt printer HTTP requests
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// Status returns printer configuration and connection status
// @Summary Printer status
// @Tags printer
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /printer/status [get]
func (h *PrinterHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status retrieved successfully", h.printerService.GetStatus())
}

// TestPrint prints a sample receipt to verify the printer works
// @Summary Test print
// @Tags printer
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /printer/test [post]
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	receipt, err := h.printerService.TestPrint()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Test receipt printed successfully", receipt)
}

// PrintReceipt prints the receipt for a transaction
// @Summary Print transaction receipt
// @Tags printer
// @Accept json
// @Produce json
// @Param request body request.PrintReceiptRequest true "Transaction reference"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /printer/receipt [post]
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	var req request.PrintReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	receipt, err := h.printerService.PrintTransactionReceipt(c.Request.Context(), req.TransactionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", receipt)
}
