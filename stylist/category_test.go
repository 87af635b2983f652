package stylist

import (
	"testing"

	"github.com/scootpie/stylist-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"jacket", CategoryOuterwear},
		{"Puffer Coat", CategoryOuterwear},
		{"cardigan", CategoryOuterwear},
		{"t-shirt", CategoryTop},
		{"hoodie", CategoryTop},
		{"sweater", CategoryTop},
		{"jeans", CategoryBottom},
		{"slim joggers", CategoryBottom},
		{"dress", CategoryDress},
		{"gown", CategoryDress},
		{"skirt", CategorySkirt},
		{"sneakers", CategoryFootwear},
		{"heels", CategoryFootwear},
		{"backpack", CategoryBag},
		{"beanie", CategoryHeadwear},
		{"necklace", CategoryAccessories},
		{"watch", CategoryAccessories},
		{"search", CategoryOther},
		{"", CategoryOther},
		{"gadget", CategoryOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCategory(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeCategoryIdempotent(t *testing.T) {
	// Every bucket name normalizes to itself, so normalization can be applied
	// twice without changing the result.
	for _, b := range categoryBuckets {
		assert.Equal(t, b.Bucket, NormalizeCategory(b.Bucket))
	}
	assert.Equal(t, CategoryOther, NormalizeCategory(CategoryOther))
}

func TestResolveItemCategory(t *testing.T) {
	// The category parsed from the request wins even when the product record
	// carries an unusable category and the name has no recognizable keyword.
	assert.Equal(t, CategoryOuterwear, ResolveItemCategory("jacket", "search", "Moncler Maya 70", "red jacket"))
	// Without a request category the product's own category decides.
	assert.Equal(t, CategoryFootwear, ResolveItemCategory("", "sneakers", "Moncler Maya 70", ""))
	// Last resort: infer from the product name and the user's message.
	assert.Equal(t, "jeans", ResolveItemCategory("", "search", "Slim Fit Chino Pants", ""))
	assert.Equal(t, CategoryOther, ResolveItemCategory("", "", "Mystery Box", "surprise me"))
}

func TestResolvedCategoryDisplacesPriorItem(t *testing.T) {
	prior := []models.OutfitItem{{Name: "Everyday Denim Jacket", Category: "jacket"}}
	incoming := []models.OutfitItem{{
		Name:     "Moncler Maya 70",
		Category: ResolveItemCategory("jacket", "search", "Moncler Maya 70", "red jacket"),
	}}

	merged := MergeOutfitItems(prior, incoming)
	require.Len(t, merged, 1)
	assert.Equal(t, "Moncler Maya 70", merged[0].Name)
	assert.True(t, HasReplacement(prior, incoming))
}

func TestInferCategory(t *testing.T) {
	assert.Equal(t, "jacket", InferCategory("Mountain Parka 3-in-1", ""))
	assert.Equal(t, "jeans", InferCategory("Slim Fit Chino Pants", ""))
	assert.Equal(t, "top", InferCategory("Ribbed Cami", ""))
	assert.Equal(t, "top", InferCategory("Basic Essential", "show me a cute top"))
	assert.Equal(t, "dress", InferCategory("Evening Gown", ""))
	assert.Equal(t, "shoes", InferCategory("Air Max Sneaker", ""))
	assert.Equal(t, "sweater", InferCategory("Fleece Pullover", ""))
	assert.Equal(t, CategoryOther, InferCategory("Mystery Box", "surprise me"))
}
