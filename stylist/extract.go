package stylist

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ProductRequest is one structured product request extracted from a user
// message. Query is always set; the other fields are set when known.
type ProductRequest struct {
	Query    string
	Brand    string
	Color    string
	Category string
}

// ParsedItem is one garment mention extracted by the language model.
type ParsedItem struct {
	Brand    string   `json:"brand"`
	Color    string   `json:"color"`
	Category string   `json:"category"`
	Style    []string `json:"style"`
}

// ExtractResult is the validated result of a language-model parse: one or
// more items. A flat single-object response is wrapped into a one-item list.
type ExtractResult struct {
	Items []ParsedItem `json:"items"`
}

// QueryParser extracts structured garment mentions from a message. A nil or
// failing parser is never fatal; extraction falls through to the keyword
// parse.
type QueryParser interface {
	ExtractQuery(ctx context.Context, message string) (*ExtractResult, error)
}

var conjunctionPattern = regexp.MustCompile(`(?i)\band\b|,|\bthen\b|\balso\b|\bplus\b`)

const literalQueryLimit = 80

// ExtractRequests turns a raw message into an ordered list of product
// requests. Strategies are tried in order, first non-empty wins:
// conjunction split with keyword parsing, language-model parse, keyword parse
// of the whole message, and finally the trimmed message itself as a literal
// query so the pipeline never dead-ends.
func ExtractRequests(ctx context.Context, message string, parser QueryParser) []ProductRequest {
	var requests []ProductRequest

	if conjunctionPattern.MatchString(message) {
		for _, part := range conjunctionPattern.Split(message, -1) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			parsed := ParseUserQuery(part)
			if parsed.Brand == "" && parsed.Color == "" && parsed.Category == "" {
				continue
			}
			q := JoinQueryTerms(parsed.Brand, parsed.Color, parsed.Category)
			if q != "" {
				requests = append(requests, ProductRequest{
					Query:    q,
					Brand:    parsed.Brand,
					Color:    parsed.Color,
					Category: parsed.Category,
				})
			}
		}
	}

	if len(requests) == 0 && parser != nil {
		if result, err := parser.ExtractQuery(ctx, message); err == nil && result != nil {
			for _, item := range result.Items {
				terms := append([]string{item.Brand, item.Color, item.Category}, item.Style...)
				q := JoinQueryTerms(terms...)
				if q != "" {
					requests = append(requests, ProductRequest{
						Query:    q,
						Brand:    item.Brand,
						Color:    item.Color,
						Category: item.Category,
					})
				}
			}
		}
	}

	if len(requests) == 0 {
		parsed := ParseUserQuery(message)
		q := JoinQueryTerms(parsed.Brand, parsed.Color, parsed.Category)
		if q != "" {
			requests = append(requests, ProductRequest{
				Query:    q,
				Brand:    parsed.Brand,
				Color:    parsed.Color,
				Category: parsed.Category,
			})
		}
	}

	if len(requests) == 0 {
		literal := strings.TrimSpace(message)
		if utf8.RuneCountInString(literal) > literalQueryLimit {
			// Slice on runes so the cap cannot split a multibyte character
			literal = string([]rune(literal)[:literalQueryLimit])
		}
		requests = append(requests, ProductRequest{Query: literal})
	}

	return requests
}
