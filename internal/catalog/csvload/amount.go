package csvload

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// parsePrice converts a localized price such as "Rp 78.500" or "12,345.50"
// into whole currency units, rounding half away from zero.
func parsePrice(s string, p Profile) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(strings.TrimPrefix(clean, "Rp"), "IDR")
	clean = strings.TrimSpace(clean)
	clean = strings.ReplaceAll(clean, p.Thousands, "")
	clean = strings.ReplaceAll(clean, p.Decimal, ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}

	if d.IsNegative() {
		return 0, fmt.Errorf("negative price %q", s)
	}

	return d.Round(0).IntPart(), nil
}
