package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scootpie/stylist-server/models"
	"github.com/scootpie/stylist-server/stylist"
)

// recordingSearch returns results for configured queries and records the
// order queries were attempted in.
func recordingSearch(hits map[string][]models.ProductCandidate, log *[]string) SearchFunc {
	return func(ctx context.Context, query string) []models.ProductCandidate {
		*log = append(*log, query)
		return hits[query]
	}
}

func TestResolveRequestFirstQueryWins(t *testing.T) {
	var attempts []string
	fn := recordingSearch(map[string][]models.ProductCandidate{
		"Zara red jacket": {{Name: "Hit"}},
	}, &attempts)

	req := stylist.ProductRequest{Query: "Zara red jacket", Brand: "Zara", Color: "red", Category: "jacket"}
	results := ResolveRequest(context.Background(), req, fn)

	require.Len(t, results, 1)
	assert.Equal(t, []string{"Zara red jacket"}, attempts)
}

func TestResolveRequestRelaxationOrder(t *testing.T) {
	var attempts []string
	fn := recordingSearch(map[string][]models.ProductCandidate{
		"jacket": {{Name: "Plain Jacket"}},
	}, &attempts)

	req := stylist.ProductRequest{Query: "Zara red cropped jacket", Brand: "Zara", Color: "red", Category: "jacket"}
	results := ResolveRequest(context.Background(), req, fn)

	require.Len(t, results, 1)
	assert.Equal(t, []string{
		"Zara red cropped jacket",
		"Zara red jacket",
		"Zara jacket",
		"red jacket",
		"jacket",
	}, attempts)
}

func TestResolveRequestStopsAtFirstNonEmpty(t *testing.T) {
	var attempts []string
	fn := recordingSearch(map[string][]models.ProductCandidate{
		"Zara jacket": {{Name: "Zara Jacket"}},
		"jacket":      {{Name: "Plain Jacket"}},
	}, &attempts)

	req := stylist.ProductRequest{Query: "Zara red cropped jacket", Brand: "Zara", Color: "red", Category: "jacket"}
	results := ResolveRequest(context.Background(), req, fn)

	require.Len(t, results, 1)
	assert.Equal(t, "Zara Jacket", results[0].Name)
	assert.Equal(t, []string{"Zara red cropped jacket", "Zara red jacket", "Zara jacket"}, attempts)
}

func TestResolveRequestSkipsEmptySubQueries(t *testing.T) {
	var attempts []string
	fn := recordingSearch(nil, &attempts)

	// No brand: brand+category collapses to category, brand+color+category
	// to color+category. Duplicates are still attempted in order, never "".
	req := stylist.ProductRequest{Query: "red jacket", Color: "red", Category: "jacket"}
	ResolveRequest(context.Background(), req, fn)

	assert.Equal(t, []string{"red jacket", "red jacket", "jacket", "red jacket", "jacket"}, attempts)
	for _, q := range attempts {
		assert.NotEmpty(t, q)
	}
}

func TestResolveRequestRederivesPartsFromQuery(t *testing.T) {
	var attempts []string
	fn := recordingSearch(map[string][]models.ProductCandidate{
		"jeans": {{Name: "Jeans"}},
	}, &attempts)

	// The request arrives with only a literal query; the relaxation step
	// re-derives color and category from it.
	req := stylist.ProductRequest{Query: "black jeans with rips"}
	results := ResolveRequest(context.Background(), req, fn)

	require.Len(t, results, 1)
	assert.Equal(t, []string{"black jeans with rips", "black jeans", "jeans"}, attempts)
}
