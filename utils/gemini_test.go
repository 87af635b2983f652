package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtractionItemsShape(t *testing.T) {
	raw := `{"items": [{"brand": "Zara", "color": "red", "category": "jacket", "style": ["cropped"]}, {"brand": "", "color": "black", "category": "jeans", "style": []}]}`

	result, err := parseExtraction(raw)
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Zara", result.Items[0].Brand)
	assert.Equal(t, []string{"cropped"}, result.Items[0].Style)
	assert.Equal(t, "jeans", result.Items[1].Category)
}

func TestParseExtractionCodeFences(t *testing.T) {
	raw := "```json\n{\"items\": [{\"brand\": \"Nike\", \"color\": \"\", \"category\": \"sneakers\", \"style\": []}]}\n```"

	result, err := parseExtraction(raw)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Nike", result.Items[0].Brand)
}

func TestParseExtractionFlatObject(t *testing.T) {
	raw := `{"brand": "H&M", "color": "blue", "category": "shirt", "style": []}`

	result, err := parseExtraction(raw)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "H&M", result.Items[0].Brand)
	assert.Equal(t, "shirt", result.Items[0].Category)
}

func TestParseExtractionRejectsGarbage(t *testing.T) {
	_, err := parseExtraction("I could not find any products in that message.")
	assert.Error(t, err)

	_, err = parseExtraction(`{}`)
	assert.Error(t, err)
}
