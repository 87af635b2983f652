package stylist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scootpie/stylist-server/models"
)

func TestBuildResponseTextNoMatches(t *testing.T) {
	text := BuildResponseText("glitter spacesuit", nil, nil, nil, "women")
	assert.Contains(t, text, "couldn't find good matches for women")
	assert.Contains(t, text, `"glitter spacesuit"`)

	text = BuildResponseText("glitter spacesuit", nil, nil, nil, "non-binary")
	assert.Contains(t, text, "couldn't find good matches for you")

	text = BuildResponseText("glitter spacesuit", nil, nil, nil, "prefer-not-to-say")
	assert.Contains(t, text, "couldn't find good matches for \"glitter spacesuit\"")
}

func TestBuildResponseTextFirstLook(t *testing.T) {
	merged := []models.OutfitItem{item("Red Jacket", "jacket")}

	text := BuildResponseText("red jacket", merged, merged, nil, "men")

	assert.Contains(t, text, "Here's your look with: Red Jacket (outerwear)")
}

func TestBuildResponseTextAddition(t *testing.T) {
	prior := []models.OutfitItem{item("Jacket", "jacket")}
	incoming := []models.OutfitItem{item("Jeans", "jeans")}
	merged := MergeOutfitItems(prior, incoming)

	text := BuildResponseText("black jeans", merged, incoming, prior, "men")

	assert.Contains(t, text, "Added to your outfit!")
	assert.Contains(t, text, "Jacket (outerwear)")
	assert.Contains(t, text, "Jeans (bottom)")
}

func TestBuildResponseTextReplacement(t *testing.T) {
	prior := []models.OutfitItem{item("Old Jacket", "jacket")}
	incoming := []models.OutfitItem{item("New Coat", "coat")}
	merged := MergeOutfitItems(prior, incoming)

	text := BuildResponseText("a new coat", merged, incoming, prior, "men")

	assert.Contains(t, text, "Updated your outfit!")
	assert.Contains(t, text, "New Coat (outerwear)")
	assert.NotContains(t, text, "Old Jacket")
}
