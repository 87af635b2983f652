package search

import (
	"regexp"
	"strconv"
	"strings"
)

var pricePattern = regexp.MustCompile(`([A-Z$£€₹]{0,3})\s*([0-9,.]+)`)

// ParsePrice parses a shopping-result price string like "$49.99" or "€120"
// into an amount and ISO currency code. Unrecognized symbols default to USD;
// unparsable strings yield zero.
func ParsePrice(s string) (float64, string) {
	currency := "USD"
	m := pricePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, currency
	}

	symbol := m[1]
	amount := strings.ReplaceAll(m[2], ",", "")
	price, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0, currency
	}

	switch {
	case strings.Contains(symbol, "$"):
		currency = "USD"
	case strings.Contains(symbol, "€"):
		currency = "EUR"
	case strings.Contains(symbol, "£"):
		currency = "GBP"
	case strings.Contains(symbol, "₹"):
		currency = "INR"
	}
	return price, currency
}
