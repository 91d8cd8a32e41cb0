package product

import (
	"fmt"
	"strconv"
	"strings"
)

// ResolvePrice normalizes a raw catalog price into a single numeric value.
// It strips the "Rs." currency marker and thousands separators. For a range
// ("Rs.1200-450") it always takes the final bound; callers on the cart-view
// and checkout paths both go through here so the convention cannot diverge.
func ResolvePrice(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "Rs.")
	s = strings.ReplaceAll(s, ",", "")
	if i := strings.LastIndexByte(s, '-'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSpace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadPrice, raw)
	}
	return v, nil
}

// FormatPrice renders a numeric value back in the feed's currency notation.
func FormatPrice(v float64) string {
	return fmt.Sprintf("Rs.%.2f", v)
}
