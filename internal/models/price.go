package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NoPriceLabel is shown instead of an amount for sentinel or missing prices.
const NoPriceLabel = "no price"

// priceSentinels are the price values that mean "no amount". The French
// forms are what the list scraper emits.
var priceSentinels = []string{"no price", "no limit", "Pas de prix", "Sans limite"}

// Price is a present's price as sent by the endpoint: either an amount
// (JSON number or numeric string) or a sentinel string.
type Price struct {
	Raw string
}

// NewPrice wraps a raw price value.
func NewPrice(raw string) Price {
	return Price{Raw: strings.TrimSpace(raw)}
}

// UnmarshalJSON accepts a string, a number, or null.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		p.Raw = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid price: %w", err)
		}
		*p = NewPrice(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid price %s: %w", data, err)
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("invalid price %s: %w", data, err)
	}
	p.Raw = strconv.FormatFloat(f, 'f', -1, 64)
	return nil
}

// MarshalJSON writes the raw value back as a string, or null when unset.
func (p Price) MarshalJSON() ([]byte, error) {
	if p.Raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(p.Raw)
}

// IsSentinel reports whether the price is one of the "no amount" values
func (p Price) IsSentinel() bool {
	for _, s := range priceSentinels {
		if strings.EqualFold(p.Raw, s) {
			return true
		}
	}
	return false
}

// Label returns the display form: NoPriceLabel for sentinel or missing
// prices, otherwise the amount followed by the currency symbol.
func (p Price) Label(currency string) string {
	if p.Raw == "" || p.IsSentinel() {
		return NoPriceLabel
	}
	return p.Raw + currency
}
