package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOutfitImageFilterRequiresImageField(t *testing.T) {
	ids := []primitive.ObjectID{primitive.NewObjectID()}
	filter := outfitImageFilter(ids)

	assert.Equal(t, "assistant", filter["role"])
	assert.Equal(t, bson.M{"$in": ids}, filter["conversation_id"])

	// Text-only assistant turns store no outfit_image_url at all, and
	// Mongo's missing-as-null lets them slip past a plain $ne. The filter
	// must demand the field exists as well.
	imageCond, ok := filter["outfit_image_url"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, true, imageCond["$exists"])
	assert.Equal(t, "", imageCond["$ne"])
}
