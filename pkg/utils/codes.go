package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateInvoiceNo generates a unique invoice number, e.g. TRX-20260830-1A2B3C4D.
// The date segment keeps invoices sortable in drawer reports.
func GenerateInvoiceNo(at time.Time) string {
	return "TRX-" + at.Format("20060102") + "-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateMemberCode generates a unique loyalty member code, e.g. MBR-1A2B3C4D.
func GenerateMemberCode() string {
	return "MBR-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateBarcode generates a placeholder barcode for products created without
// one, e.g. SKU-1A2B3C4D.
func GenerateBarcode() string {
	return "SKU-" + strings.ToUpper(uuid.New().String()[:8])
}
