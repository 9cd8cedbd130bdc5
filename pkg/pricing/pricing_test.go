package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeMemberSale(t *testing.T) {
	got := Compute(100000, true)

	assert.Equal(t, int64(100000), got.Subtotal)
	assert.Equal(t, int64(5000), got.Discount)
	assert.Equal(t, int64(5), got.DiscountPercent)
	assert.Equal(t, int64(9500), got.Tax)
	assert.Equal(t, int64(10), got.TaxPercent)
	assert.Equal(t, int64(104500), got.Total)
	assert.Equal(t, int64(10), got.PointsEarned)
}

func TestComputeNonMemberSale(t *testing.T) {
	got := Compute(100000, false)

	assert.Equal(t, int64(0), got.Discount)
	assert.Equal(t, int64(0), got.DiscountPercent)
	assert.Equal(t, int64(10000), got.Tax)
	assert.Equal(t, int64(110000), got.Total)
	assert.Equal(t, int64(0), got.PointsEarned)
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		isMember bool
		want     Totals
	}{
		{
			name:     "zero subtotal",
			subtotal: 0,
			isMember: false,
			want:     Totals{TaxPercent: 10},
		},
		{
			name:     "zero subtotal member earns nothing",
			subtotal: 0,
			isMember: true,
			want:     Totals{DiscountPercent: 5, TaxPercent: 10},
		},
		{
			name:     "member below points threshold",
			subtotal: 9999,
			isMember: true,
			want: Totals{
				Subtotal:        9999,
				Discount:        500, // 499.95 rounds up
				DiscountPercent: 5,
				Tax:             950, // 9499 * 10% = 949.9 rounds up
				TaxPercent:      10,
				Total:           10449,
				PointsEarned:    0,
			},
		},
		{
			name:     "member exactly at threshold",
			subtotal: 10000,
			isMember: true,
			want: Totals{
				Subtotal:        10000,
				Discount:        500,
				DiscountPercent: 5,
				Tax:             950,
				TaxPercent:      10,
				Total:           10450,
				PointsEarned:    1,
			},
		},
		{
			name:     "non-member never earns points",
			subtotal: 250000,
			isMember: false,
			want: Totals{
				Subtotal:   250000,
				Tax:        25000,
				TaxPercent: 10,
				Total:      275000,
			},
		},
		{
			name:     "half rounds up",
			subtotal: 10, // 5% = 0.5 -> 1
			isMember: true,
			want: Totals{
				Subtotal:        10,
				Discount:        1,
				DiscountPercent: 5,
				Tax:             1, // 9 * 10% = 0.9 -> 1
				TaxPercent:      10,
				Total:           10,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.subtotal, tt.isMember))
		})
	}
}

// Compute must be referentially transparent: repeated calls with the same
// inputs always agree.
func TestComputeDeterministic(t *testing.T) {
	for _, subtotal := range []int64{0, 1, 9999, 10000, 123457, 999999} {
		for _, member := range []bool{true, false} {
			first := Compute(subtotal, member)
			for i := 0; i < 3; i++ {
				assert.Equal(t, first, Compute(subtotal, member))
			}
		}
	}
}

func TestDiscountOnlyForMembers(t *testing.T) {
	for _, subtotal := range []int64{0, 1, 500, 10000, 99999, 1000000} {
		got := Compute(subtotal, false)
		assert.Equal(t, int64(0), got.Discount, "subtotal %d", subtotal)
		assert.Equal(t, int64(0), got.DiscountPercent, "subtotal %d", subtotal)
	}
}

func TestCustomRates(t *testing.T) {
	calc := Calculator{MemberDiscountPercent: 10, TaxPercent: 11, PointsThreshold: 50000}
	got := calc.Compute(100000, true)

	assert.Equal(t, int64(10000), got.Discount)
	assert.Equal(t, int64(9900), got.Tax)
	assert.Equal(t, int64(99900), got.Total)
	assert.Equal(t, int64(2), got.PointsEarned)
}
