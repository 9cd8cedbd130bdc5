// Package client implements the POS terminal side of the API: one cart, one
// mirrored shift, and the checkout call that turns the cart into a sale.
// The terminal never prices anything itself; server responses are the source
// of truth for totals, stock and points.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/pkg/cart"
)

// Shift is the terminal's view of its open shift.
type Shift struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	OpeningBalance int64     `json:"opening_balance"`
	TotalSales     int64     `json:"total_sales"`
	TotalCashSales int64     `json:"total_cash_sales"`
	Status         string    `json:"status"`
	ShiftStart     time.Time `json:"shift_start"`
}

// ShiftSummary is the drawer reconciliation returned when a shift closes.
type ShiftSummary struct {
	ShiftID           uuid.UUID `json:"shift_id"`
	OpeningBalance    int64     `json:"opening_balance"`
	ClosingBalance    int64     `json:"closing_balance"`
	TotalSales        int64     `json:"total_sales"`
	TotalCashSales    int64     `json:"total_cash_sales"`
	TotalTransactions int64     `json:"total_transactions"`
	ExpectedCash      int64     `json:"expected_cash"`
	Difference        int64     `json:"difference"`
}

// Product is the catalog record used to feed the cart.
type Product struct {
	ID       uuid.UUID `json:"id"`
	Barcode  string    `json:"barcode"`
	Name     string    `json:"name"`
	Price    int64     `json:"price"`
	Stock    int       `json:"stock"`
	IsActive bool      `json:"is_active"`
	ImageURL string    `json:"image_url,omitempty"`
}

// Customer is the loyalty member record used to feed the cart.
type Customer struct {
	ID         uuid.UUID `json:"id"`
	MemberCode string    `json:"member_code"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	Points     int64     `json:"points"`
}

// Transaction is the server's record of a posted sale. Totals here are
// authoritative; whatever the terminal previewed is discarded.
type Transaction struct {
	ID            uuid.UUID `json:"id"`
	InvoiceNo     string    `json:"invoice_no"`
	Subtotal      int64     `json:"subtotal"`
	Discount      int64     `json:"discount"`
	Tax           int64     `json:"tax"`
	Total         int64     `json:"total"`
	AmountPaid    int64     `json:"amount_paid"`
	Change        int64     `json:"change"`
	PointsEarned  int64     `json:"points_earned"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// apiEnvelope mirrors the server's response wrapper.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors,omitempty"`
}

// Terminal drives one register session: it owns the cart, mirrors the
// operator's current shift and posts checkouts. It is used by a single
// goroutine, same as the cart it owns.
type Terminal struct {
	baseURL    string
	token      string
	httpClient *http.Client

	cart    *cart.Cart
	shift   *Shift
	lastErr string
}

// NewTerminal creates a terminal session against baseURL authenticated with
// the given bearer token. A nil httpClient gets a 10 second timeout default.
func NewTerminal(baseURL, token string, httpClient *http.Client) *Terminal {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Terminal{
		baseURL:    baseURL,
		token:      token,
		httpClient: httpClient,
		cart:       cart.New(),
	}
}

// Cart returns the terminal's cart.
func (t *Terminal) Cart() *cart.Cart {
	return t.cart
}

// CurrentShift returns the mirrored open shift, or nil when none.
func (t *Terminal) CurrentShift() *Shift {
	return t.shift
}

// Err returns the message recorded by the last failed shift operation.
func (t *Terminal) Err() string {
	return t.lastErr
}

// FetchCurrentShift refreshes the mirrored shift from the server. Any
// failure, network or HTTP, is treated as "no open shift": the operator is
// forced to open one rather than trusting stale state.
func (t *Terminal) FetchCurrentShift(ctx context.Context) {
	var shift Shift
	status, _, err := t.do(ctx, http.MethodGet, "/api/v1/shifts/current", nil, &shift)
	if err != nil || status < 200 || status >= 300 {
		t.shift = nil
		return
	}
	t.shift = &shift
}

// OpenShift opens a shift with the counted drawer float. Returns true on
// success; on failure the message is available via Err() and the terminal
// stays without a shift.
func (t *Terminal) OpenShift(ctx context.Context, openingBalance int64, notes string) bool {
	body := map[string]interface{}{
		"opening_balance": openingBalance,
	}
	if notes != "" {
		body["notes"] = notes
	}

	var shift Shift
	status, msg, err := t.do(ctx, http.MethodPost, "/api/v1/shifts/open", body, &shift)
	if err != nil {
		t.lastErr = err.Error()
		return false
	}
	if status < 200 || status >= 300 {
		t.lastErr = msg
		return false
	}

	t.shift = &shift
	t.lastErr = ""
	return true
}

// CloseShift closes the open shift and returns the server's reconciliation
// summary. On failure the shift stays open and the error is returned.
func (t *Terminal) CloseShift(ctx context.Context, closingBalance int64, notes string) (*ShiftSummary, error) {
	if t.shift == nil {
		return nil, fmt.Errorf("no open shift")
	}

	body := map[string]interface{}{
		"closing_balance": closingBalance,
	}
	if notes != "" {
		body["notes"] = notes
	}

	var summary ShiftSummary
	path := fmt.Sprintf("/api/v1/shifts/%s/close", t.shift.ID)
	status, msg, err := t.do(ctx, http.MethodPut, path, body, &summary)
	if err != nil {
		t.lastErr = err.Error()
		return nil, err
	}
	if status < 200 || status >= 300 {
		t.lastErr = msg
		return nil, fmt.Errorf("%s", msg)
	}

	t.shift = nil
	t.lastErr = ""
	return &summary, nil
}

// CanCheckout reports whether a sale can be posted right now: an open shift
// and at least one cart line. Both must hold.
func (t *Terminal) CanCheckout() bool {
	return t.shift != nil && !t.cart.IsEmpty()
}

// Checkout posts the cart as a sale. Only product references and quantities
// are sent; the server reprices everything. On success the cart is cleared
// (customer detached with it) and the server's transaction is returned. On
// failure the cart is left exactly as it was.
func (t *Terminal) Checkout(ctx context.Context, paymentMethod string, amountPaid int64, notes string) (*Transaction, error) {
	if !t.CanCheckout() {
		return nil, fmt.Errorf("checkout requires an open shift and a non-empty cart")
	}

	items := make([]map[string]interface{}, 0, t.cart.Len())
	for _, item := range t.cart.Items() {
		items = append(items, map[string]interface{}{
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
		})
	}

	body := map[string]interface{}{
		"items":          items,
		"payment_method": paymentMethod,
		"amount_paid":    amountPaid,
	}
	if customer := t.cart.Customer(); customer != nil {
		body["customer_id"] = customer.ID
	}
	if notes != "" {
		body["notes"] = notes
	}

	req, err := t.newRequest(ctx, http.MethodPost, "/api/v1/transactions", body)
	if err != nil {
		return nil, err
	}
	// Terminal retries must not post the same sale twice
	req.Header.Set("Idempotency-Key", uuid.NewString())

	var tx Transaction
	status, msg, err := t.send(req, &tx)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%s", msg)
	}

	t.cart.Clear()
	return &tx, nil
}

// LookupProductByBarcode fetches a product for the cart. A miss is a normal
// negative result, not an error.
func (t *Terminal) LookupProductByBarcode(ctx context.Context, barcode string) (*Product, error) {
	var product Product
	status, msg, err := t.do(ctx, http.MethodGet, "/api/v1/products/barcode/"+barcode, nil, &product)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%s", msg)
	}
	return &product, nil
}

// LookupCustomerByPhone fetches a member for the cart. A miss is a normal
// negative result, not an error.
func (t *Terminal) LookupCustomerByPhone(ctx context.Context, phone string) (*Customer, error) {
	var customer Customer
	status, msg, err := t.do(ctx, http.MethodGet, "/api/v1/customers/phone/"+phone, nil, &customer)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%s", msg)
	}
	return &customer, nil
}

// AddProduct puts a looked-up product into the cart.
func (t *Terminal) AddProduct(p *Product, qty int) cart.Result {
	return t.cart.AddItem(cart.Item{
		ProductID:   p.ID,
		ProductName: p.Name,
		Barcode:     p.Barcode,
		UnitPrice:   p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
	}, qty)
}

// AttachCustomer attaches a looked-up member to the cart; nil detaches.
func (t *Terminal) AttachCustomer(c *Customer) {
	if c == nil {
		t.cart.SetCustomer(nil)
		return
	}
	t.cart.SetCustomer(&cart.Customer{
		ID:         c.ID,
		MemberCode: c.MemberCode,
		Name:       c.Name,
		Phone:      c.Phone,
		Points:     c.Points,
	})
}

func (t *Terminal) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	return req, nil
}

func (t *Terminal) send(req *http.Request, out interface{}) (int, string, error) {
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", err
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return resp.StatusCode, "", fmt.Errorf("unexpected response: %s", string(raw))
	}

	if envelope.Success && out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return resp.StatusCode, envelope.Message, err
		}
	}
	return resp.StatusCode, envelope.Message, nil
}

func (t *Terminal) do(ctx context.Context, method, path string, body, out interface{}) (int, string, error) {
	req, err := t.newRequest(ctx, method, path, body)
	if err != nil {
		return 0, "", err
	}
	return t.send(req, out)
}
