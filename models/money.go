package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Amount is a monetary value in hundredths of the platform currency unit.
// All pricing arithmetic stays integral; JSON renders two fractional digits.
type Amount int64

// MarshalJSON renders the amount as a plain decimal number, e.g. 100.00.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a decimal number with up to two fractional digits.
func (a *Amount) UnmarshalJSON(data []byte) error {
	parsed, err := ParseAmount(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// String renders the amount with exactly two fractional digits.
func (a Amount) String() string {
	cents := int64(a)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Cents returns the raw integral value.
func (a Amount) Cents() int64 {
	return int64(a)
}

// Percent returns the given percentage of the amount, rounded half away from zero.
func (a Amount) Percent(p int64) Amount {
	v := int64(a) * p
	if v >= 0 {
		return Amount((v + 50) / 100)
	}
	return Amount((v - 50) / 100)
}

// ParseAmount parses a decimal string such as "100", "100.5" or "100.50".
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two fractional digits", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	cents := w*100 + f
	if neg {
		cents = -cents
	}
	return Amount(cents), nil
}
