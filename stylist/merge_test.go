package stylist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scootpie/stylist-server/models"
)

func item(name, category string) models.OutfitItem {
	return models.OutfitItem{Name: name, Category: category, ImageURL: "http://img/" + name}
}

func TestMergeOutfitItemsReplacesSameCategory(t *testing.T) {
	prior := []models.OutfitItem{item("Old Jacket", "jacket"), item("Blue Jeans", "jeans")}
	incoming := []models.OutfitItem{item("New Puffer", "puffer")}

	merged := MergeOutfitItems(prior, incoming)

	require.Len(t, merged, 2)
	assert.Equal(t, "Blue Jeans", merged[0].Name)
	assert.Equal(t, "New Puffer", merged[1].Name)
}

func TestMergeOutfitItemsDistinctCategoriesAllSurvive(t *testing.T) {
	prior := []models.OutfitItem{item("Jacket", "jacket")}
	incoming := []models.OutfitItem{item("Jeans", "jeans"), item("Sneakers", "sneakers")}

	merged := MergeOutfitItems(prior, incoming)

	require.Len(t, merged, 3)

	// Post-merge, no two items share a normalized category.
	seen := map[string]bool{}
	for _, it := range merged {
		cat := NormalizeCategory(it.Category)
		assert.False(t, seen[cat], "duplicate category %s", cat)
		seen[cat] = true
	}
}

func TestMergeOutfitItemsEmptyIncomingIsIdentity(t *testing.T) {
	prior := []models.OutfitItem{item("Jacket", "jacket"), item("Jeans", "jeans")}

	merged := MergeOutfitItems(prior, nil)

	assert.Equal(t, prior, merged)
}

func TestMergeOutfitItemsNotCommutative(t *testing.T) {
	a := []models.OutfitItem{item("Jacket A", "jacket")}
	b := []models.OutfitItem{item("Jacket B", "coat")}

	ab := MergeOutfitItems(a, b)
	ba := MergeOutfitItems(b, a)

	require.Len(t, ab, 1)
	require.Len(t, ba, 1)
	assert.Equal(t, "Jacket B", ab[0].Name, "incoming wins")
	assert.Equal(t, "Jacket A", ba[0].Name, "incoming wins either way")
}

func TestMergeOutfitItemsToleratesDuplicatePriorCategories(t *testing.T) {
	prior := []models.OutfitItem{item("Jacket 1", "jacket"), item("Jacket 2", "coat")}
	incoming := []models.OutfitItem{item("Parka", "parka")}

	merged := MergeOutfitItems(prior, incoming)

	require.Len(t, merged, 1)
	assert.Equal(t, "Parka", merged[0].Name)
}

func TestHasReplacement(t *testing.T) {
	assert.True(t, HasReplacement(
		[]models.OutfitItem{item("Old", "jacket")},
		[]models.OutfitItem{item("New", "coat")},
	))
	assert.False(t, HasReplacement(
		[]models.OutfitItem{item("Jacket", "jacket")},
		[]models.OutfitItem{item("Jeans", "jeans")},
	))
	assert.False(t, HasReplacement(nil, []models.OutfitItem{item("Jeans", "jeans")}))
	assert.False(t, HasReplacement([]models.OutfitItem{item("Jacket", "jacket")}, nil))
}
