package stylist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scootpie/stylist-server/models"
)

const (
	primaryPhoto = "https://photos/primary.jpg"
	priorOutfit  = "https://outfits/prior.jpg"
)

func TestPlanTryOnReplacement(t *testing.T) {
	prior := []models.OutfitItem{item("Old Jacket", "jacket")}
	incoming := []models.OutfitItem{item("New Jacket", "jacket")}
	merged := MergeOutfitItems(prior, incoming)

	plan := PlanTryOn(prior, incoming, merged, priorOutfit, primaryPhoto)

	// Replacement wins over addition even with a prior composite available:
	// the composite still shows the replaced garment.
	assert.Equal(t, ModeReplacement, plan.Mode)
	assert.Equal(t, primaryPhoto, plan.BaseImage)
	require.Len(t, plan.Items, 1)
	assert.Equal(t, "New Jacket", plan.Items[0].Name)
}

func TestPlanTryOnAddition(t *testing.T) {
	prior := []models.OutfitItem{item("Jacket", "jacket")}
	incoming := []models.OutfitItem{item("Jeans", "jeans")}
	merged := MergeOutfitItems(prior, incoming)

	plan := PlanTryOn(prior, incoming, merged, priorOutfit, primaryPhoto)

	assert.Equal(t, ModeAddition, plan.Mode)
	assert.Equal(t, priorOutfit, plan.BaseImage)
	require.Len(t, plan.Items, 1, "addition applies only the new items")
	assert.Equal(t, "Jeans", plan.Items[0].Name)
}

func TestPlanTryOnFirstTime(t *testing.T) {
	incoming := []models.OutfitItem{item("Top", "top")}
	merged := MergeOutfitItems(nil, incoming)

	plan := PlanTryOn(nil, incoming, merged, "", primaryPhoto)

	assert.Equal(t, ModeFirstTime, plan.Mode)
	assert.Equal(t, primaryPhoto, plan.BaseImage)
	require.Len(t, plan.Items, 1)
}

func TestPlanTryOnNoPriorImageFallsBackToFirstTime(t *testing.T) {
	// Prior items but no composite image: nothing to build on incrementally.
	prior := []models.OutfitItem{item("Jacket", "jacket")}
	incoming := []models.OutfitItem{item("Jeans", "jeans")}
	merged := MergeOutfitItems(prior, incoming)

	plan := PlanTryOn(prior, incoming, merged, "", primaryPhoto)

	assert.Equal(t, ModeFirstTime, plan.Mode)
	assert.Equal(t, primaryPhoto, plan.BaseImage)
	assert.Len(t, plan.Items, 2)
}

func TestPlanTryOnFiltersImagelessItems(t *testing.T) {
	noImage := models.OutfitItem{Name: "Listed Only", Category: "hat"}
	incoming := []models.OutfitItem{item("Top", "top"), noImage}
	merged := MergeOutfitItems(nil, incoming)

	plan := PlanTryOn(nil, incoming, merged, "", primaryPhoto)

	require.Len(t, plan.Items, 1)
	assert.Equal(t, "Top", plan.Items[0].Name)
}

func TestItemsWithImages(t *testing.T) {
	items := []models.OutfitItem{
		{Name: "A", ImageURL: "http://img/a"},
		{Name: "B"},
	}
	filtered := ItemsWithImages(items)
	require.Len(t, filtered, 1)
	assert.Equal(t, "A", filtered[0].Name)

	assert.Empty(t, ItemsWithImages(nil))
}
