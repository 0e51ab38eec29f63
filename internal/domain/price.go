package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Price is a non-negative amount with two decimal places, held as cents.
// It allows at most five digits in total, so the largest value is 999.99.
type Price int64

const (
	priceMaxDigits    = 5
	priceDecimalPlace = 2
	maxPriceIntDigits = priceMaxDigits - priceDecimalPlace
)

var (
	ErrPriceInvalid  = errors.New("must be a valid number")
	ErrPricePlaces   = fmt.Errorf("must have no more than %d decimal places", priceDecimalPlace)
	ErrPriceDigits   = fmt.Errorf("must have no more than %d digits in total", priceMaxDigits)
	ErrPriceNegative = errors.New("must be greater than or equal to 0")
)

// ParsePrice parses a plain decimal such as "5", "5.5" or "005.50".
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		if _, err := ParsePrice(s[1:]); err != nil {
			return 0, err
		}
		return 0, ErrPriceNegative
	}
	s = strings.TrimPrefix(s, "+")

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, ErrPriceInvalid
	}
	if !allDigits(whole) || !allDigits(frac) {
		return 0, ErrPriceInvalid
	}

	frac = strings.TrimRight(frac, "0")
	if len(frac) > priceDecimalPlace {
		return 0, ErrPricePlaces
	}
	whole = strings.TrimLeft(whole, "0")
	if len(whole) > maxPriceIntDigits {
		return 0, ErrPriceDigits
	}

	for len(frac) < priceDecimalPlace {
		frac += "0"
	}
	cents, err := strconv.ParseInt(whole+frac, 10, 64)
	if err != nil {
		return 0, ErrPriceInvalid
	}
	return Price(cents), nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String formats the price with exactly two decimal places.
func (p Price) String() string {
	return fmt.Sprintf("%d.%02d", int64(p)/100, int64(p)%100)
}

// MarshalJSON renders the price as a decimal string, e.g. "5.50".
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts either a JSON number or a numeric string.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return ErrPriceInvalid
		}
	}
	parsed, err := ParsePrice(text)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MaxPrice is the largest representable price, 999.99.
const MaxPrice Price = 99999

// Validate reports whether p is within 0.00 and MaxPrice.
func (p Price) Validate() error {
	switch {
	case p < 0:
		return ErrPriceNegative
	case p > MaxPrice:
		return ErrPriceDigits
	}
	return nil
}
