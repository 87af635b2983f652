package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scootpie/stylist-server/config"
	"github.com/scootpie/stylist-server/models"
	"github.com/scootpie/stylist-server/utils"
)

// OutfitEntry is one generated look in the user's gallery
type OutfitEntry struct {
	MessageID      primitive.ObjectID  `json:"messageId"`
	ConversationID primitive.ObjectID  `json:"conversationId"`
	ImageURL       string              `json:"imageUrl"`
	Products       []models.OutfitItem `json:"products"`
	CreatedAt      time.Time           `json:"createdAt"`
}

// OutfitsResponse is the paginated gallery payload
type OutfitsResponse struct {
	Outfits     []OutfitEntry `json:"outfits"`
	Total       int64         `json:"total"`
	CurrentPage int           `json:"current_page"`
	TotalPages  int           `json:"total_pages"`
}

// outfitImageFilter matches assistant messages that actually carry an outfit
// image. Text-only turns omit outfit_image_url entirely (Mongo reads the
// missing field as null, which passes a bare $ne check), so the field must
// also exist.
func outfitImageFilter(conversationIDs []primitive.ObjectID) bson.M {
	return bson.M{
		"conversation_id":  bson.M{"$in": conversationIDs},
		"role":             "assistant",
		"outfit_image_url": bson.M{"$exists": true, "$ne": ""},
	}
}

// OutfitsHandler pages through the outfit images generated across all of
// the user's conversations, latest first.
func OutfitsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, nil, "Unauthorized", http.StatusUnauthorized)
		return
	}
	userObjID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		utils.RespondError(w, nil, "Invalid user ID", http.StatusBadRequest)
		return
	}

	page := 1
	limit := 10
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Outfit images hang off assistant messages, so resolve the user's
	// conversations first.
	conversationsCollection := utils.GetCollection(config.DatabaseName, "conversations")
	cursor, err := conversationsCollection.Find(ctx, bson.M{"user_id": userObjID})
	if err != nil {
		utils.RespondError(w, nil, "Failed to fetch conversations", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var conversations []models.Conversation
	if err := cursor.All(ctx, &conversations); err != nil {
		utils.RespondError(w, nil, "Failed to decode conversations", http.StatusInternalServerError)
		return
	}

	conversationIDs := make([]primitive.ObjectID, 0, len(conversations))
	for _, c := range conversations {
		conversationIDs = append(conversationIDs, c.ID)
	}

	outfits := []OutfitEntry{}
	var total int64
	if len(conversationIDs) > 0 {
		messagesCollection := utils.GetCollection(config.DatabaseName, "messages")
		filter := outfitImageFilter(conversationIDs)

		total, err = messagesCollection.CountDocuments(ctx, filter)
		if err != nil {
			utils.RespondError(w, nil, "Failed to fetch data", http.StatusInternalServerError)
			return
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(int64((page - 1) * limit)).
			SetLimit(int64(limit))

		messageCursor, err := messagesCollection.Find(ctx, filter, findOptions)
		if err != nil {
			utils.RespondError(w, nil, "Failed to fetch data", http.StatusInternalServerError)
			return
		}
		defer messageCursor.Close(ctx)

		var messages []models.Message
		if err := messageCursor.All(ctx, &messages); err != nil {
			utils.RespondError(w, nil, "Failed to decode data", http.StatusInternalServerError)
			return
		}

		for _, m := range messages {
			outfits = append(outfits, OutfitEntry{
				MessageID:      m.ID,
				ConversationID: m.ConversationID,
				ImageURL:       presignIfKey(r.Context(), m.OutfitImageURL),
				Products:       m.OutfitProducts,
				CreatedAt:      m.CreatedAt,
			})
		}
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	utils.RespondJSON(w, http.StatusOK, OutfitsResponse{
		Outfits:     outfits,
		Total:       total,
		CurrentPage: page,
		TotalPages:  totalPages,
	})
}
