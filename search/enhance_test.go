package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scootpie/stylist-server/models"
)

func TestEnhanceQueryGender(t *testing.T) {
	prefs := &models.Preferences{Gender: "women"}
	assert.Equal(t, "red jacket women", EnhanceQuery("red jacket", prefs))

	// Already present: not duplicated.
	assert.Equal(t, "womens red jacket", EnhanceQuery("womens red jacket", prefs))

	prefs.Gender = "non-binary"
	assert.Equal(t, "red jacket unisex", EnhanceQuery("red jacket", prefs))

	prefs.Gender = "prefer-not-to-say"
	assert.Equal(t, "red jacket", EnhanceQuery("red jacket", prefs))
}

func TestEnhanceQuerySizeSlots(t *testing.T) {
	prefs := &models.Preferences{
		Sizes: &models.Sizes{Top: "M", Bottom: "32", Shoes: "10"},
	}

	assert.Equal(t, "blue shirt size M", EnhanceQuery("blue shirt", prefs))
	assert.Equal(t, "black jeans size 32", EnhanceQuery("black jeans", prefs))
	assert.Equal(t, "white sneakers size 10", EnhanceQuery("white sneakers", prefs))
}

func TestEnhanceQueryGenericDefaultsToTopThenBottom(t *testing.T) {
	prefs := &models.Preferences{Sizes: &models.Sizes{Top: "L", Bottom: "30"}}
	assert.Equal(t, "trending fashion size L", EnhanceQuery("trending fashion", prefs))

	prefs.Sizes.Top = ""
	assert.Equal(t, "trending fashion size 30", EnhanceQuery("trending fashion", prefs))
}

func TestEnhanceQueryNoPreferences(t *testing.T) {
	assert.Equal(t, "red jacket", EnhanceQuery("red jacket", nil))
	assert.Equal(t, "  ", EnhanceQuery("  ", &models.Preferences{Gender: "men"}))
}
