package stylist

import (
	"strings"

	"github.com/scootpie/stylist-server/models"
)

// PickBestProduct scores candidates by lexical overlap with the parsed query
// and returns the highest scorer. Ties keep the first candidate scanned. When
// nothing matches at all the first candidate is still returned as an explicit
// default, so the result is nil only for empty input.
func PickBestProduct(candidates []models.ProductCandidate, query ParsedQuery) *models.ProductCandidate {
	if len(candidates) == 0 {
		return nil
	}

	brand := strings.ToLower(query.Brand)
	color := strings.ToLower(query.Color)
	category := strings.ToLower(query.Category)

	var best *models.ProductCandidate
	bestScore := -1
	for i := range candidates {
		c := &candidates[i]
		name := strings.ToLower(c.Name)
		retailer := strings.ToLower(c.Retailer)

		score := 0
		if brand != "" && (strings.Contains(name, brand) || strings.Contains(retailer, brand)) {
			score += 3
		}
		if color != "" && strings.Contains(name, color) {
			score += 2
		}
		if category != "" && strings.Contains(name, category) {
			score += 2
		}
		if c.ImageURL != "" {
			score++
		}

		if score > bestScore {
			bestScore = score
			best = c
		}
	}

	if best == nil {
		best = &candidates[0]
	}
	return best
}
