package stylist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scootpie/stylist-server/models"
)

func TestPickBestProduct(t *testing.T) {
	candidates := []models.ProductCandidate{
		{Name: "Generic Jacket", Retailer: "SomeStore", ImageURL: "http://img/1"},
		{Name: "Zara Red Puffer Jacket", Retailer: "Zara", ImageURL: "http://img/2"},
		{Name: "Red Jacket", Retailer: "Other"},
	}

	best := PickBestProduct(candidates, ParsedQuery{Brand: "Zara", Color: "red", Category: "jacket"})
	require.NotNil(t, best)
	assert.Equal(t, "Zara Red Puffer Jacket", best.Name)
}

func TestPickBestProductBrandMatchesRetailer(t *testing.T) {
	candidates := []models.ProductCandidate{
		{Name: "Slim Jeans", Retailer: "Target"},
		{Name: "Slim Jeans", Retailer: "H&M Online"},
	}

	best := PickBestProduct(candidates, ParsedQuery{Brand: "H&M"})
	require.NotNil(t, best)
	assert.Equal(t, "H&M Online", best.Retailer)
}

func TestPickBestProductTieKeepsFirst(t *testing.T) {
	candidates := []models.ProductCandidate{
		{Name: "Blue Shirt A", ImageURL: "http://img/a"},
		{Name: "Blue Shirt B", ImageURL: "http://img/b"},
	}

	best := PickBestProduct(candidates, ParsedQuery{Color: "blue"})
	require.NotNil(t, best)
	assert.Equal(t, "Blue Shirt A", best.Name)
}

func TestPickBestProductNoFieldMatchDefaultsToFirst(t *testing.T) {
	// A completely irrelevant candidate list still yields the first entry.
	// This default is intentional: the caller always gets something to show.
	candidates := []models.ProductCandidate{
		{Name: "Lawn Mower"},
		{Name: "Office Chair", ImageURL: "http://img/chair"},
	}

	best := PickBestProduct(candidates, ParsedQuery{Brand: "Zara", Color: "red", Category: "dress"})
	require.NotNil(t, best)
	assert.Equal(t, "Office Chair", best.Name, "image bonus still ranks within irrelevant results")
}

func TestPickBestProductEmptyInput(t *testing.T) {
	assert.Nil(t, PickBestProduct(nil, ParsedQuery{Brand: "Zara"}))
}
