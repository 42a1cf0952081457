package extract

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a numeric capture, ignoring thousands separators and surrounding spaces.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(s, ",", "")))
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number %q: %w", s, err)
	}
	return d, nil
}

// FormatAmount renders a whole-unit amount, rounding half away from zero.
func FormatAmount(d decimal.Decimal) string {
	return d.Round(0).StringFixed(0)
}

// normalize applies the Field's Kind to a rule capture.
func normalize(kind Kind, v string) (string, error) {
	if v == "" || kind == KindText {
		return v, nil
	}
	d, err := ParseAmount(v)
	if err != nil {
		return "", err
	}
	switch kind {
	case KindMoney:
		return FormatAmount(d), nil
	case KindInteger:
		return d.Truncate(0).StringFixed(0), nil
	case KindPercent:
		return d.String(), nil
	default:
		return v, nil
	}
}
