package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Cents is a money amount in minor units (euro cents). All price arithmetic
// in this repo happens on Cents; float64 never carries money.
type Cents int64

// Times returns the extended amount for qty units.
func (c Cents) Times(qty int) Cents {
	return c * Cents(qty)
}

// String formats the amount as a decimal with two fraction digits, e.g. "49.99".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// ParseCents parses a decimal string like "49.99" or "50" into Cents.
// At most two fraction digits are accepted. Only one leading sign is allowed
// and both parts must be pure digits; anything else is rejected.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	orig := s
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if s == "" {
		return 0, fmt.Errorf("invalid amount %q", orig)
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("invalid amount %q", orig)
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two fraction digits", orig)
	}
	if !allDigits(whole) || (frac != "" && !allDigits(frac)) {
		return 0, fmt.Errorf("invalid amount %q", orig)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", orig, err)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", orig, err)
	}

	total := units*100 + cents
	if neg {
		total = -total
	}
	return Cents(total), nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
