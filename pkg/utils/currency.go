package utils

import "strconv"

// FormatIDR formats a whole-rupiah amount with dot thousand separators,
// e.g. 104500 -> "Rp104.500". Negative amounts keep the sign before "Rp".
func FormatIDR(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var out []byte
	for i, c := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	return sign + "Rp" + string(out)
}
