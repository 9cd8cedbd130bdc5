package pricing

// Default rates applied at checkout. Amounts are whole currency units (IDR),
// so all arithmetic stays in int64.
const (
	DefaultMemberDiscountPercent = 5
	DefaultTaxPercent            = 10
	DefaultPointsThreshold       = 10000
)

// Totals is the derived pricing breakdown for a sale. It is recomputed from
// scratch on every change and never persisted on its own.
type Totals struct {
	Subtotal        int64 `json:"subtotal"`
	Discount        int64 `json:"discount"`
	DiscountPercent int64 `json:"discount_percent"`
	Tax             int64 `json:"tax"`
	TaxPercent      int64 `json:"tax_percent"`
	Total           int64 `json:"total"`
	PointsEarned    int64 `json:"points_earned"`
}

// Calculator computes sale totals. The zero value is not usable; construct
// with NewCalculator or use Compute for the default rates.
type Calculator struct {
	// MemberDiscountPercent is applied to the subtotal for member sales only.
	MemberDiscountPercent int64
	// TaxPercent is applied to the discounted base on every sale.
	TaxPercent int64
	// PointsThreshold is the subtotal per loyalty point. Subtotals below the
	// threshold earn nothing.
	PointsThreshold int64
}

// NewCalculator returns a calculator with the default rates.
func NewCalculator() Calculator {
	return Calculator{
		MemberDiscountPercent: DefaultMemberDiscountPercent,
		TaxPercent:            DefaultTaxPercent,
		PointsThreshold:       DefaultPointsThreshold,
	}
}

// roundHalfUpPercent returns amount*percent/100 rounded half-up, in integer
// arithmetic so results are exact and deterministic.
func roundHalfUpPercent(amount, percent int64) int64 {
	return (amount*percent + 50) / 100
}

// Compute maps (subtotal, membership) to the full pricing breakdown.
// Pure function: no I/O, identical inputs always yield identical output.
//
// Discount applies only to members. Tax applies to the discounted base on
// every sale. Loyalty points come from the raw subtotal, before discount and
// tax, and only when the subtotal reaches the threshold.
func (c Calculator) Compute(subtotal int64, isMember bool) Totals {
	t := Totals{
		Subtotal:   subtotal,
		TaxPercent: c.TaxPercent,
	}

	if isMember {
		t.DiscountPercent = c.MemberDiscountPercent
		t.Discount = roundHalfUpPercent(subtotal, c.MemberDiscountPercent)
	}

	taxable := subtotal - t.Discount
	t.Tax = roundHalfUpPercent(taxable, c.TaxPercent)
	t.Total = taxable + t.Tax

	if isMember && c.PointsThreshold > 0 && subtotal >= c.PointsThreshold {
		t.PointsEarned = subtotal / c.PointsThreshold
	}

	return t
}

// Compute applies the default rates. See Calculator.Compute.
func Compute(subtotal int64, isMember bool) Totals {
	return NewCalculator().Compute(subtotal, isMember)
}
