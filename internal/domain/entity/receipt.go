package entity

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem is a single line item on a receipt.
type ReceiptItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Total     int64  `json:"total"`
}

// Receipt is a value object for printing and PDF export. It is NOT a database
// entity; it is composed from a transaction at render time.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	InvoiceNo     string        `json:"invoice_no"`
	Date          string        `json:"date"`
	Cashier       string        `json:"cashier,omitempty"`
	Customer      string        `json:"customer,omitempty"`
	MemberCode    string        `json:"member_code,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Items         []ReceiptItem `json:"items"`
	Subtotal      int64         `json:"subtotal"`
	Discount      int64         `json:"discount"`
	Tax           int64         `json:"tax"`
	Total         int64         `json:"total"`
	Paid          int64         `json:"paid"`
	Change        int64         `json:"change"`
	PointsEarned  int64         `json:"points_earned,omitempty"`
}
