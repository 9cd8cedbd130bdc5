package request

import "github.com/google/uuid"

// CreateCustomerRequest represents a member registration request
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=255"`
	Phone   string `json:"phone" binding:"omitempty,max=50"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
}

// UpdateCustomerRequest represents a member update request
type UpdateCustomerRequest struct {
	Name    string  `json:"name" binding:"omitempty,min=2,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
}

// OpenShiftRequest represents a shift open request
type OpenShiftRequest struct {
	OpeningBalance int64  `json:"opening_balance" binding:"min=0"`
	Notes          string `json:"notes"`
}

// CloseShiftRequest represents a shift close request
type CloseShiftRequest struct {
	ClosingBalance int64  `json:"closing_balance" binding:"min=0"`
	Notes          string `json:"notes"`
}

// CheckoutItemRequest is one cart line in a checkout request
type CheckoutItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest represents a checkout request from a POS terminal
type CheckoutRequest struct {
	Items         []CheckoutItemRequest `json:"items" binding:"required,min=1,dive"`
	CustomerID    *uuid.UUID            `json:"customer_id"`
	PaymentMethod string                `json:"payment_method" binding:"required,oneof=cash debit credit ewallet"`
	AmountPaid    int64                 `json:"amount_paid" binding:"required,min=0"`
	Notes         string                `json:"notes"`
}

// VoidTransactionRequest represents a void request
type VoidTransactionRequest struct {
	Reason string `json:"reason" binding:"required,min=3"`
}

// PrintReceiptRequest asks the thermal printer to reprint a receipt
type PrintReceiptRequest struct {
	TransactionID uuid.UUID `json:"transaction_id" binding:"required"`
}

// VerifyReceiptRequest represents a QR payload verification request
type VerifyReceiptRequest struct {
	Payload string `json:"payload" binding:"required"`
}
