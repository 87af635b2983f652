package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in       string
		price    float64
		currency string
	}{
		{"$49.99", 49.99, "USD"},
		{"€120", 120, "EUR"},
		{"£1,299.00", 1299, "GBP"},
		{"₹999", 999, "INR"},
		{"US$ 35.00", 35, "USD"},
		{"49.99", 49.99, "USD"},
		{"free shipping", 0, "USD"},
		{"", 0, "USD"},
	}
	for _, tt := range tests {
		price, currency := ParsePrice(tt.in)
		assert.Equal(t, tt.price, price, "price for %q", tt.in)
		assert.Equal(t, tt.currency, currency, "currency for %q", tt.in)
	}
}
