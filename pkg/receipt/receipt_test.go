package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/salespoint-api/internal/domain/entity"
)

func TestQRPayloadRoundTrip(t *testing.T) {
	r := NewRenderer("test-secret")

	payload := r.QRPayload("TRX-20260830-ABCD1234", 104500)
	invoiceNo, ok := r.VerifyQRPayload(payload)

	assert.True(t, ok)
	assert.Equal(t, "TRX-20260830-ABCD1234", invoiceNo)
}

func TestVerifyQRPayloadRejectsTampering(t *testing.T) {
	r := NewRenderer("test-secret")

	payload := r.QRPayload("TRX-20260830-ABCD1234", 104500)

	tampered := "TRX-20260830-ABCD1234|999|" + payload[len(payload)-44:]
	_, ok := r.VerifyQRPayload(tampered)
	assert.False(t, ok)

	_, ok = r.VerifyQRPayload("garbage")
	assert.False(t, ok)
}

func TestVerifyQRPayloadRejectsWrongSecret(t *testing.T) {
	payload := NewRenderer("secret-a").QRPayload("TRX-20260830-ABCD1234", 104500)

	_, ok := NewRenderer("secret-b").VerifyQRPayload(payload)
	assert.False(t, ok)
}

func TestRenderPDF(t *testing.T) {
	r := NewRenderer("test-secret")

	pdf, err := r.RenderPDF(&entity.Receipt{
		Header:        entity.ReceiptHeader{StoreName: "SalesPoint Store", Address: "Jl. Sudirman 1", Phone: "021-555-0100"},
		InvoiceNo:     "TRX-20260830-ABCD1234",
		Date:          "2026-08-30 14:05",
		Cashier:       "kasir1",
		Customer:      "Budi Santoso",
		MemberCode:    "MBR-12345678",
		PaymentMethod: "cash",
		Items: []entity.ReceiptItem{
			{Name: "Indomie Goreng", Quantity: 4, UnitPrice: 25000, Total: 100000},
		},
		Subtotal:     100000,
		Discount:     5000,
		Tax:          9500,
		Total:        104500,
		Paid:         110000,
		Change:       5500,
		PointsEarned: 10,
	})

	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
