package search

import (
	"context"

	"github.com/scootpie/stylist-server/models"
	"github.com/scootpie/stylist-server/stylist"
)

// SearchFunc runs one query string and returns whatever candidates it found.
type SearchFunc func(ctx context.Context, query string) []models.ProductCandidate

// ResolveRequest runs a product request through search with progressive
// relaxation: when the full query finds nothing, brand/color/category are
// re-derived and the sub-queries brand+color+category, brand+category,
// color+category and category alone are tried in that exact order, skipping
// empties and stopping at the first non-empty result.
func ResolveRequest(ctx context.Context, req stylist.ProductRequest, searchFn SearchFunc) []models.ProductCandidate {
	candidates := searchFn(ctx, req.Query)
	if len(candidates) > 0 {
		return candidates
	}

	brand, color, category := req.Brand, req.Color, req.Category
	if brand == "" && color == "" && category == "" {
		parsed := stylist.ParseUserQuery(req.Query)
		brand, color, category = parsed.Brand, parsed.Color, parsed.Category
	}

	relaxed := []string{
		stylist.JoinQueryTerms(brand, color, category),
		stylist.JoinQueryTerms(brand, category),
		stylist.JoinQueryTerms(color, category),
		stylist.JoinQueryTerms(category),
	}
	for _, q := range relaxed {
		if q == "" {
			continue
		}
		if candidates = searchFn(ctx, q); len(candidates) > 0 {
			return candidates
		}
	}
	return nil
}

// Resolve is ResolveRequest bound to this client's preference-enhanced
// search.
func (c *Client) Resolve(ctx context.Context, req stylist.ProductRequest, prefs *models.Preferences) []models.ProductCandidate {
	return ResolveRequest(ctx, req, func(ctx context.Context, query string) []models.ProductCandidate {
		return c.Search(ctx, query, prefs, defaultCap)
	})
}
