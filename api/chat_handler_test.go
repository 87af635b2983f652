package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenderUnset(t *testing.T) {
	assert.True(t, genderUnset(""))
	assert.True(t, genderUnset("prefer-not-to-say"))
	assert.False(t, genderUnset("men"))
	assert.False(t, genderUnset("women"))
	assert.False(t, genderUnset("non-binary"))
}

func TestChatRequestDecodesPriorItems(t *testing.T) {
	var req ChatRequest
	body := `{"message":"swap the jacket","priorItems":[{"name":"Denim Jacket","category":"jacket"}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	prior := req.priorOutfitItems()
	require.Len(t, prior, 1)
	assert.Equal(t, "Denim Jacket", prior[0].Name)
}

func TestChatRequestAcceptsOutfitItemsAlias(t *testing.T) {
	var req ChatRequest
	body := `{"message":"swap the jacket","outfitItems":[{"name":"Denim Jacket","category":"jacket"}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	prior := req.priorOutfitItems()
	require.Len(t, prior, 1)
	assert.Equal(t, "Denim Jacket", prior[0].Name)
}

func TestChatRequestPriorItemsWinsOverAlias(t *testing.T) {
	var req ChatRequest
	body := `{"priorItems":[{"name":"Wool Coat"}],"outfitItems":[{"name":"Denim Jacket"}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	prior := req.priorOutfitItems()
	require.Len(t, prior, 1)
	assert.Equal(t, "Wool Coat", prior[0].Name)
}
