package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/application/service"
	"github.com/sangkips/salespoint-api/internal/domain/enum"
	"github.com/sangkips/salespoint-api/internal/domain/repository"
	"github.com/sangkips/salespoint-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salespoint-api/internal/presentation/http/dto/response"
	"github.com/sangkips/salespoint-api/pkg/pagination"
)

// TransactionHandler handles sale transaction HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// Checkout handles posting a sale from a POS terminal
// @Summary Checkout
// @Description Post a sale against the caller's open shift
// @Tags transactions
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body request.CheckoutRequest true "Checkout data"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /transactions [post]
func (h *TransactionHandler) Checkout(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.CheckoutItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CheckoutItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	tx, err := h.transactionService.Checkout(c.Request.Context(), &service.CheckoutInput{
		UserID:        *userID,
		CustomerID:    req.CustomerID,
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		AmountPaid:    req.AmountPaid,
		Notes:         req.Notes,
		Items:         items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction completed successfully", tx)
}

// List handles listing transactions
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	params := paginationFromQuery(c)

	filter := &repository.TransactionFilterParams{
		Pagination:    params,
		Search:        c.Query("search"),
		Status:        c.Query("status"),
		PaymentMethod: c.Query("payment_method"),
	}

	if shiftIDStr := c.Query("shift_id"); shiftIDStr != "" {
		id, err := uuid.Parse(shiftIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid shift ID")
			return
		}
		filter.ShiftID = &id
	}
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		id, err := uuid.Parse(userIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid user ID")
			return
		}
		filter.UserID = &id
	}
	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		id, err := uuid.Parse(customerIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		filter.CustomerID = &id
	}
	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
		if err != nil {
			response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		filter.From = &from
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
		if err != nil {
			response.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}

	transactions, total, err := h.transactionService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(transactions, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// Get handles getting a single transaction
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.APIResponse
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	tx, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", tx)
}

// GetByInvoice handles getting a transaction by invoice number
// @Summary Get transaction by invoice
// @Tags transactions
// @Produce json
// @Param invoice_no path string true "Invoice number"
// @Success 200 {object} response.APIResponse
// @Router /transactions/invoice/{invoice_no} [get]
func (h *TransactionHandler) GetByInvoice(c *gin.Context) {
	invoiceNo := c.Param("invoice_no")
	if invoiceNo == "" {
		response.BadRequest(c, "Invoice number is required")
		return
	}

	tx, err := h.transactionService.GetTransactionByInvoice(c.Request.Context(), invoiceNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", tx)
}

// Void handles voiding a completed transaction
// @Summary Void transaction
// @Description Reverse a completed sale: restores stock, revokes points and rolls back shift totals
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body request.VoidTransactionRequest true "Void reason"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /transactions/{id}/void [put]
func (h *TransactionHandler) Void(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req request.VoidTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tx, err := h.transactionService.VoidTransaction(c.Request.Context(), &service.VoidTransactionInput{
		TransactionID: id,
		Reason:        req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction voided successfully", tx)
}

// ReceiptPDF streams the transaction receipt as a PDF download
// @Summary Download receipt PDF
// @Tags transactions
// @Produce application/pdf
// @Param id path string true "Transaction ID"
// @Success 200 {file} binary
// @Router /transactions/{id}/receipt [get]
func (h *TransactionHandler) ReceiptPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	pdf, invoiceNo, err := h.transactionService.RenderReceiptPDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", invoiceNo))
	c.Data(200, "application/pdf", pdf)
}

// VerifyReceipt checks a receipt QR payload and resolves the transaction
// @Summary Verify receipt
// @Description Verify a signed receipt QR payload
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body request.VerifyReceiptRequest true "QR payload"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /transactions/verify-receipt [post]
func (h *TransactionHandler) VerifyReceipt(c *gin.Context) {
	var req request.VerifyReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tx, err := h.transactionService.VerifyReceipt(c.Request.Context(), req.Payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt verified successfully", gin.H{
		"valid":       true,
		"transaction": tx,
	})
}
