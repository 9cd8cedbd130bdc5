package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": status >= 200 && status < 300,
		"message": message,
		"data":    data,
	})
}

func testProduct(stock int) *Product {
	return &Product{
		ID:       uuid.New(),
		Barcode:  "SKU-TEST0001",
		Name:     "Coffee Beans",
		Price:    55000,
		Stock:    stock,
		IsActive: true,
	}
}

func TestFetchCurrentShiftMirrorsOpenShift(t *testing.T) {
	shiftID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/shifts/current", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		writeEnvelope(w, 200, "Current shift retrieved successfully", map[string]interface{}{
			"id":              shiftID,
			"opening_balance": 500000,
			"status":          "open",
		})
	}))
	defer server.Close()

	term := NewTerminal(server.URL, "test-token", nil)
	term.FetchCurrentShift(context.Background())

	require.NotNil(t, term.CurrentShift())
	assert.Equal(t, shiftID, term.CurrentShift().ID)
	assert.Equal(t, int64(500000), term.CurrentShift().OpeningBalance)
}

func TestFetchCurrentShiftFailsOpenOn404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 404, "No open shift", nil)
	}))
	defer server.Close()

	term := NewTerminal(server.URL, "test-token", nil)
	term.FetchCurrentShift(context.Background())

	assert.Nil(t, term.CurrentShift())
}

func TestFetchCurrentShiftFailsOpenOnNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, "ok", map[string]interface{}{"id": uuid.New()})
	}))
	term := NewTerminal(server.URL, "test-token", nil)
	term.FetchCurrentShift(context.Background())
	require.NotNil(t, term.CurrentShift())

	// Server goes away; the stale mirror must not survive a refresh.
	server.Close()
	term.FetchCurrentShift(context.Background())
	assert.Nil(t, term.CurrentShift())
}

func TestOpenShift(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/shifts/open", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(300000), body["opening_balance"])

		writeEnvelope(w, 201, "Shift opened successfully", map[string]interface{}{
			"id":              uuid.New(),
			"opening_balance": 300000,
			"status":          "open",
		})
	}))
	defer server.Close()

	term := NewTerminal(server.URL, "test-token", nil)
	ok := term.OpenShift(context.Background(), 300000, "")

	assert.True(t, ok)
	assert.NotNil(t, term.CurrentShift())
	assert.Empty(t, term.Err())
}

func TestOpenShiftFailureStaysWithoutShift(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 409, "You already have an open shift", nil)
	}))
	defer server.Close()

	term := NewTerminal(server.URL, "test-token", nil)
	ok := term.OpenShift(context.Background(), 300000, "")

	assert.False(t, ok)
	assert.Nil(t, term.CurrentShift())
	assert.Equal(t, "You already have an open shift", term.Err())
}

func TestCloseShiftReturnsSummaryAndClearsShift(t *testing.T) {
	shiftID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/shifts/current" {
			writeEnvelope(w, 200, "ok", map[string]interface{}{"id": shiftID, "status": "open"})
			return
		}

		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, fmt.Sprintf("/api/v1/shifts/%s/close", shiftID), r.URL.Path)
		writeEnvelope(w, 200, "Shift closed successfully", map[string]interface{}{
			"shift_id":        shiftID,
			"opening_balance": 300000,
			"closing_balance": 780000,
			"expected_cash":   800000,
			"difference":      -20000,
		})
	}))
	defer server.Close()

	term := NewTerminal(server.URL, "test-token", nil)
	term.FetchCurrentShift(context.Background())
	require.NotNil(t, term.CurrentShift())

	summary, err := term.CloseShift(context.Background(), 780000, "drawer short")
	require.NoError(t, err)
	assert.Equal(t, int64(-20000), summary.Difference)
	assert.Nil(t, term.CurrentShift())
}

func TestCloseShiftFailureLeavesShiftOpen(t *testing.T) {
	shiftID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/shifts/current" {
			writeEnvelope(w, 200, "ok", map[string]interface{}{"id": shiftID, "status": "open"})
			return
		}
		writeEnvelope(w, 500, "Something went wrong", nil)
	}))
	defer server.Close()

	term := NewTerminal(server.URL, "test-token", nil)
	term.FetchCurrentShift(context.Background())

	summary, err := term.CloseShift(context.Background(), 780000, "")
	assert.Error(t, err)
	assert.Nil(t, summary)
	assert.NotNil(t, term.CurrentShift())
	assert.Equal(t, "Something went wrong", term.Err())
}

func TestCanCheckoutRequiresShiftAndItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, "ok", map[string]interface{}{"id": uuid.New(), "status": "open"})
	}))
	defer server.Close()

	// No shift, empty cart
	term := NewTerminal(server.URL, "test-token", nil)
	assert.False(t, term.CanCheckout())

	// No shift, non-empty cart
	term.AddProduct(testProduct(10), 1)
	assert.False(t, term.CanCheckout())

	// Open shift, empty cart
	term2 := NewTerminal(server.URL, "test-token", nil)
	term2.FetchCurrentShift(context.Background())
	assert.False(t, term2.CanCheckout())

	// Open shift, non-empty cart
	term2.AddProduct(testProduct(10), 1)
	assert.True(t, term2.CanCheckout())
}

func TestCheckoutSendsOnlyProductAndQuantity(t *testing.T) {
	product := testProduct(10)
	customerID := uuid.New()
	var captured map[string]interface{}
	var idempotencyKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/shifts/current" {
			writeEnvelope(w, 200, "ok", map[string]interface{}{"id": uuid.New(), "status": "open"})
			return
		}

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/transactions", r.URL.Path)
		idempotencyKey = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		writeEnvelope(w, 201, "Transaction completed successfully", map[string]interface{}{
			"id":         uuid.New(),
			"invoice_no": "TRX-20260830-AB12CD34",
			"total":      115500,
			"status":     "completed",
		})
	}))
	defer server.Close()

	term := NewTerminal(server.URL, "test-token", nil)
	term.FetchCurrentShift(context.Background())
	term.AddProduct(product, 2)
	term.AttachCustomer(&Customer{ID: customerID, MemberCode: "MBR-TEST0001", Name: "Budi"})

	tx, err := term.Checkout(context.Background(), "cash", 120000, "")
	require.NoError(t, err)
	assert.Equal(t, "TRX-20260830-AB12CD34", tx.InvoiceNo)

	// The line items carry product reference and quantity, nothing else.
	// Prices never travel from the terminal to the server.
	items := captured["items"].([]interface{})
	require.Len(t, items, 1)
	line := items[0].(map[string]interface{})
	assert.Equal(t, product.ID.String(), line["product_id"])
	assert.Equal(t, float64(2), line["quantity"])
	assert.NotContains(t, line, "unit_price")
	assert.NotContains(t, captured, "total")

	assert.Equal(t, customerID.String(), captured["customer_id"])
	assert.Equal(t, "cash", captured["payment_method"])
	assert.Equal(t, float64(120000), captured["amount_paid"])
	assert.NotEmpty(t, idempotencyKey)

	// Success clears the cart and detaches the customer.
	assert.True(t, term.Cart().IsEmpty())
	assert.Nil(t, term.Cart().Customer())
}

func TestCheckoutFailureLeavesCartUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/shifts/current" {
			writeEnvelope(w, 200, "ok", map[string]interface{}{"id": uuid.New(), "status": "open"})
			return
		}
		writeEnvelope(w, 400, "Insufficient stock for: Coffee Beans", nil)
	}))
	defer server.Close()

	term := NewTerminal(server.URL, "test-token", nil)
	term.FetchCurrentShift(context.Background())
	term.AddProduct(testProduct(10), 2)

	tx, err := term.Checkout(context.Background(), "cash", 120000, "")
	require.Error(t, err)
	assert.Nil(t, tx)
	assert.EqualError(t, err, "Insufficient stock for: Coffee Beans")
	assert.Equal(t, 1, term.Cart().Len())
}

func TestCheckoutRefusedWithoutPrecondition(t *testing.T) {
	term := NewTerminal("http://unused", "test-token", nil)
	tx, err := term.Checkout(context.Background(), "cash", 10000, "")
	assert.Error(t, err)
	assert.Nil(t, tx)
}

func TestLookupProductByBarcode(t *testing.T) {
	product := testProduct(7)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/products/barcode/"+product.Barcode {
			writeEnvelope(w, 200, "Product retrieved successfully", product)
			return
		}
		writeEnvelope(w, 404, "Product not found", nil)
	}))
	defer server.Close()

	term := NewTerminal(server.URL, "test-token", nil)

	found, err := term.LookupProductByBarcode(context.Background(), product.Barcode)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, product.ID, found.ID)
	assert.Equal(t, int64(55000), found.Price)

	// A miss is a normal negative result.
	missing, err := term.LookupProductByBarcode(context.Background(), "SKU-NOPE")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLookupCustomerByPhone(t *testing.T) {
	customer := &Customer{ID: uuid.New(), MemberCode: "MBR-TEST0001", Name: "Budi", Phone: "081234567890", Points: 42}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/customers/phone/"+customer.Phone {
			writeEnvelope(w, 200, "Customer retrieved successfully", customer)
			return
		}
		writeEnvelope(w, 404, "Customer not found", nil)
	}))
	defer server.Close()

	term := NewTerminal(server.URL, "test-token", nil)

	found, err := term.LookupCustomerByPhone(context.Background(), customer.Phone)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, int64(42), found.Points)

	missing, err := term.LookupCustomerByPhone(context.Background(), "000")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
