// Package core holds the pure transformation stages of the report pipeline:
// amount normalization, aggregation and snapshot assembly.
//
// Amounts follow the bank's locale convention where "." separates thousands
// and "," is the decimal separator, e.g. "1.234,56" means 1234.56.
package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// NormalizeAmount converts a locale-formatted amount string to a decimal.
//
// "1.234,56" -> 1234.56
// "50,00"    -> 50
// "10"       -> ErrInvalidAmount (no decimal comma)
//
// A string without a decimal comma is rejected rather than read as a whole
// number; the notification template always carries two decimals, so its
// absence means the capture went wrong.
func NormalizeAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Drop thousands separators, then promote the decimal comma.
	s = strings.ReplaceAll(s, ".", "")
	if strings.Count(s, ",") != 1 {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.Replace(s, ",", ".", 1)

	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' {
			return decimal.Zero, ErrInvalidAmount
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatAmount renders a decimal back in the locale convention used by the
// sheet and the report email: thousands separated by "." and two decimals
// after ",". FormatAmount(1234.5) == "1.234,50".
func FormatAmount(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}
