package search

import (
	"strings"

	"github.com/scootpie/stylist-server/models"
)

var genderTerms = map[string]string{
	"men":        "men",
	"women":      "women",
	"unisex":     "unisex",
	"non-binary": "unisex",
}

// Size-slot keyword tables: a query matching a slot gets that slot's stored
// size appended. Generic queries fall back to top size, then bottom.
var (
	topSizeTerms = []string{
		"shirt", "top", "t-shirt", "blouse", "sweater", "hoodie", "jacket",
		"coat", "sweatshirt", "cardigan", "blazer", "dress", "apparel",
	}
	bottomSizeTerms = []string{
		"pants", "jeans", "trousers", "shorts", "skirt", "leggings", "tights",
	}
	shoeSizeTerms = []string{
		"shoe", "shoes", "sneaker", "sneakers", "boot", "boots", "sandal",
		"sandals", "heel", "heels", "slipper", "slippers",
	}
)

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// EnhanceQuery appends the user's gender term and the relevant stored size to
// a search query. Applied before every search, external and internal alike.
func EnhanceQuery(query string, prefs *models.Preferences) string {
	if strings.TrimSpace(query) == "" || prefs == nil {
		return query
	}

	parts := []string{query}
	queryLower := strings.ToLower(query)

	if term, ok := genderTerms[prefs.Gender]; ok && !strings.Contains(queryLower, term) {
		parts = append(parts, term)
	}

	if sizes := prefs.Sizes; sizes != nil {
		switch {
		case containsAny(queryLower, topSizeTerms) && sizes.Top != "":
			parts = append(parts, "size "+sizes.Top)
		case containsAny(queryLower, bottomSizeTerms) && sizes.Bottom != "":
			parts = append(parts, "size "+sizes.Bottom)
		case containsAny(queryLower, shoeSizeTerms) && sizes.Shoes != "":
			parts = append(parts, "size "+sizes.Shoes)
		case sizes.Top != "":
			parts = append(parts, "size "+sizes.Top)
		case sizes.Bottom != "":
			parts = append(parts, "size "+sizes.Bottom)
		}
	}

	return strings.Join(parts, " ")
}
