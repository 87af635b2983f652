package stylist

import (
	"regexp"
	"sort"
	"strings"
)

// ParsedQuery is the result of the lightweight keyword parse of a message
// fragment: brand, color and category, any of which may be empty.
type ParsedQuery struct {
	Brand    string
	Color    string
	Category string
}

// Keyword tables are data, kept apart from the matching logic so they can be
// extended without touching control flow.

var brandAliases = []struct {
	Alias string
	Brand string
}{
	{"h&m", "H&M"},
	{"h & m", "H&M"},
	{"h and m", "H&M"},
	{"hm", "H&M"},
	{"zara", "Zara"},
	{"uniqlo", "UNIQLO"},
	{"nike", "Nike"},
	{"adidas", "Adidas"},
	{"patagonia", "Patagonia"},
	{"gap", "GAP"},
	{"hollister", "Hollister"},
}

var colorTerms = []string{
	"black", "blue", "red", "white", "green", "pink", "purple", "yellow",
	"orange", "brown", "grey", "gray", "navy", "beige", "cream", "tan",
}

var categorySynonyms = map[string]string{
	"jacket":   "jacket",
	"coat":     "jacket",
	"puffer":   "jacket",
	"parka":    "jacket",
	"top":      "top",
	"t shirt":  "top",
	"tshirt":   "top",
	"tee":      "top",
	"blouse":   "top",
	"shirt":    "top",
	"jeans":    "jeans",
	"denim":    "jeans",
	"trousers": "pants",
	"pants":    "pants",
	"dress":    "dress",
	"skirt":    "skirt",
	"hoodie":   "hoodie",
	"sweater":  "sweater",
}

// categoryKeys is categorySynonyms' keys sorted longest-first so that more
// specific synonyms ("t shirt") win over shorter ones ("shirt").
var categoryKeys = func() []string {
	keys := make([]string, 0, len(categorySynonyms))
	for k := range categorySynonyms {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

var nonWordPattern = regexp.MustCompile(`[^a-z0-9&\s]`)
var spacePattern = regexp.MustCompile(`\s+`)

// ParseUserQuery extracts brand, color and category from a free-text message
// using word-boundary matching against the fixed keyword tables.
func ParseUserQuery(message string) ParsedQuery {
	text := strings.ToLower(message)
	text = nonWordPattern.ReplaceAllString(text, " ")
	text = spacePattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	padded := " " + text + " "

	var parsed ParsedQuery

	for _, b := range brandAliases {
		if strings.Contains(padded, " "+b.Alias+" ") {
			parsed.Brand = b.Brand
			break
		}
	}

	for _, c := range colorTerms {
		if strings.Contains(padded, " "+c+" ") {
			parsed.Color = c
			break
		}
	}

	for _, key := range categoryKeys {
		if strings.Contains(padded, " "+key+" ") {
			parsed.Category = categorySynonyms[key]
			break
		}
	}

	return parsed
}

// JoinQueryTerms builds a search query from the non-empty terms.
func JoinQueryTerms(terms ...string) string {
	var parts []string
	for _, t := range terms {
		if strings.TrimSpace(t) != "" {
			parts = append(parts, strings.TrimSpace(t))
		}
	}
	return strings.Join(parts, " ")
}
