package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatIDR(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Rp0"},
		{500, "Rp500"},
		{1000, "Rp1.000"},
		{104500, "Rp104.500"},
		{1234567890, "Rp1.234.567.890"},
		{-15000, "-Rp15.000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatIDR(tt.amount))
	}
}
