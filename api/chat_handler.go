package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scootpie/stylist-server/config"
	"github.com/scootpie/stylist-server/models"
	"github.com/scootpie/stylist-server/search"
	"github.com/scootpie/stylist-server/stylist"
	"github.com/scootpie/stylist-server/utils"
)

// ChatRequest is the payload for one styling turn. The client echoes the
// outfit state from the latest assistant message back as priorItems;
// outfitItems is accepted as an older alias for the same field.
type ChatRequest struct {
	Message          string              `json:"message"`
	ConversationID   string              `json:"conversationId"`
	PriorItems       []models.OutfitItem `json:"priorItems"`
	OutfitItems      []models.OutfitItem `json:"outfitItems"`
	PriorOutfitImage string              `json:"priorOutfitImage"`
}

// priorOutfitItems resolves the echoed outfit state, preferring priorItems
// over the outfitItems alias.
func (r ChatRequest) priorOutfitItems() []models.OutfitItem {
	if len(r.PriorItems) > 0 {
		return r.PriorItems
	}
	return r.OutfitItems
}

// ChatResponse is the turn result returned to the client
type ChatResponse struct {
	Success        bool           `json:"success"`
	Message        models.Message `json:"message"`
	ConversationID string         `json:"conversationId"`
}

var (
	searchOnce   sync.Once
	searchClient *search.Client
)

func getSearchClient() *search.Client {
	searchOnce.Do(func() {
		catalog := &search.MongoCatalog{
			Collection: utils.GetCollection(config.DatabaseName, "products"),
		}
		searchClient = search.NewClient(config.SerpAPIKey, catalog)
	})
	return searchClient
}

func loadUser(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return user, fmt.Errorf("invalid user ID: %v", err)
	}
	collection := utils.GetCollection(config.DatabaseName, "users")
	err = collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	return user, err
}

// genderUnset reports whether the profile carries no usable gender for
// styling. "prefer-not-to-say" is a valid profile value but gives the search
// nothing to work with, so it counts as unset here.
func genderUnset(gender string) bool {
	return gender == "" || gender == "prefer-not-to-say"
}

// primaryPhotoURL returns the URL of the user's primary photo, or "" when
// the user has no photos yet.
func primaryPhotoURL(ctx context.Context, user models.User) string {
	collection := utils.GetCollection(config.DatabaseName, "photos")

	var photo models.Photo
	if !user.PrimaryPhotoID.IsZero() {
		if err := collection.FindOne(ctx, bson.M{"_id": user.PrimaryPhotoID}).Decode(&photo); err == nil {
			return photo.URL
		}
	}
	err := collection.FindOne(ctx, bson.M{"user_id": user.ID, "is_primary": true}).Decode(&photo)
	if err != nil {
		return ""
	}
	return photo.URL
}

// presignIfKey turns a stored S3 key into a presigned URL. Full URLs pass
// through unchanged.
func presignIfKey(ctx context.Context, image string) string {
	if image == "" || strings.HasPrefix(image, "http") {
		return image
	}
	if url, err := utils.GetPresignedURL(ctx, image); err == nil {
		return url
	}
	return image
}

// ChatHandler runs one styling turn: extract product requests from the
// message, search and rank candidates, merge them into the outfit, render
// the try-on image and answer.
func ChatHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Chat API]")

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		utils.RespondError(w, &logMessageBuilder, "message is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := loadUser(ctx, userID)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "User not found", http.StatusNotFound)
		return
	}

	// The turn needs a base photo and a gender preference before anything
	// can be searched or rendered.
	basePhotoURL := primaryPhotoURL(ctx, user)
	if basePhotoURL == "" {
		utils.AddToLogMessage(&logMessageBuilder, "User has no photo, asking for upload")
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":    false,
			"needsPhoto": true,
			"message":    "Please upload a photo of yourself first so I can show you how outfits look on you.",
		})
		return
	}

	gender := ""
	if user.Preferences != nil {
		gender = user.Preferences.Gender
	}
	if genderUnset(gender) {
		utils.AddToLogMessage(&logMessageBuilder, "User has no gender preference, asking for profile")
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":    false,
			"code":       "GENDER_REQUIRED",
			"redirectTo": "/profile",
			"message":    "Please set your style preference in your profile first so I can find pieces that fit you.",
		})
		return
	}

	conversationID, err := getOrCreateConversation(ctx, user.ID, req.ConversationID)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to resolve conversation: %v", err), http.StatusInternalServerError)
		return
	}

	messagesCollection := utils.GetCollection(config.DatabaseName, "messages")
	now := time.Now()
	userMessage := models.Message{
		ID:             primitive.NewObjectID(),
		ConversationID: conversationID,
		Role:           "user",
		Content:        req.Message,
		CreatedAt:      now,
	}
	if _, err := messagesCollection.InsertOne(ctx, userMessage); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to save user message: %v", err))
	}

	// Extraction and search run against a longer deadline than the DB ops.
	turnCtx, cancelTurn := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelTurn()

	requests := stylist.ExtractRequests(turnCtx, req.Message, utils.GeminiParser{})
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Extracted %d product requests", len(requests)))

	var prefs *models.Preferences
	if user.Preferences != nil {
		prefs = user.Preferences
	}

	client := getSearchClient()
	var incoming []models.OutfitItem
	var recommendations []models.ProductCandidate
	for _, productReq := range requests {
		candidates := client.Resolve(turnCtx, productReq, prefs)
		if len(candidates) == 0 {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("No results for query %q", productReq.Query))
			continue
		}

		query := stylist.ParsedQuery{
			Brand:    strings.ToLower(productReq.Brand),
			Color:    strings.ToLower(productReq.Color),
			Category: strings.ToLower(productReq.Category),
		}
		if query.Brand == "" && query.Color == "" && query.Category == "" {
			query = stylist.ParseUserQuery(productReq.Query)
		}

		best := stylist.PickBestProduct(candidates, query)
		if best == nil {
			continue
		}

		category := stylist.ResolveItemCategory(productReq.Category, best.Category, best.Name, req.Message)

		recommendations = append(recommendations, *best)
		incoming = append(incoming, models.OutfitItem{
			Name:       best.Name,
			ImageURL:   best.ImageURL,
			ProductURL: best.ProductURL,
			Price:      best.Price,
			Currency:   best.Currency,
			Brand:      best.Brand,
			Retailer:   best.Retailer,
			Category:   category,
		})
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Selected %d products", len(incoming)))

	prior := req.priorOutfitItems()
	merged := stylist.MergeOutfitItems(prior, incoming)

	plan := stylist.PlanTryOn(prior, incoming, merged, req.PriorOutfitImage, basePhotoURL)

	outfitImageKey := ""
	if len(plan.Items) > 0 && plan.BaseImage != "" {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Generating outfit image, mode=%s items=%d", plan.Mode, len(plan.Items)))

		geminiCtx, cancelGemini := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancelGemini()

		imageData, err := utils.GenerateOutfitImage(geminiCtx, presignIfKey(r.Context(), plan.BaseImage), plan.Items)
		if err != nil {
			// Image generation failing must not sink the turn. The textual
			// answer and outfit state still go back to the client.
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to generate outfit image: %v", err))
		} else {
			objectKey := fmt.Sprintf("outfits/outfit_%d.jpg", time.Now().UnixNano())
			if _, err := utils.UploadFileToS3(r.Context(), bytes.NewReader(imageData), objectKey, "image/jpeg"); err != nil {
				utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to upload outfit image: %v", err))
			} else {
				outfitImageKey = objectKey
			}
		}
	}

	responseText := stylist.BuildResponseText(req.Message, merged, incoming, prior, gender)

	assistantMessage := models.Message{
		ID:                     primitive.NewObjectID(),
		ConversationID:         conversationID,
		Role:                   "assistant",
		Content:                responseText,
		ProductRecommendations: recommendations,
		OutfitImageURL:         outfitImageKey,
		OutfitProducts:         merged,
		CreatedAt:              time.Now(),
	}

	saveCtx, cancelSave := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelSave()

	if _, err := messagesCollection.InsertOne(saveCtx, assistantMessage); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to save assistant message: %v", err))
	}

	conversationsCollection := utils.GetCollection(config.DatabaseName, "conversations")
	_, err = conversationsCollection.UpdateOne(saveCtx, bson.M{"_id": conversationID},
		bson.M{"$set": bson.M{"last_message_at": assistantMessage.CreatedAt}})
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to touch conversation: %v", err))
	}

	assistantMessage.OutfitImageURL = presignIfKey(r.Context(), assistantMessage.OutfitImageURL)

	utils.AddToLogMessage(&logMessageBuilder, "Chat turn completed")
	utils.RespondJSON(w, http.StatusOK, ChatResponse{
		Success:        true,
		Message:        assistantMessage,
		ConversationID: conversationID.Hex(),
	})
}

func getOrCreateConversation(ctx context.Context, userID primitive.ObjectID, conversationID string) (primitive.ObjectID, error) {
	collection := utils.GetCollection(config.DatabaseName, "conversations")

	if conversationID != "" {
		objID, err := primitive.ObjectIDFromHex(conversationID)
		if err != nil {
			return primitive.NilObjectID, fmt.Errorf("invalid conversation ID")
		}
		var conversation models.Conversation
		err = collection.FindOne(ctx, bson.M{"_id": objID, "user_id": userID}).Decode(&conversation)
		if err == nil {
			return conversation.ID, nil
		}
		if err != mongo.ErrNoDocuments {
			return primitive.NilObjectID, err
		}
		// Unknown ID falls through to a fresh conversation
	}

	conversation := models.Conversation{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		CreatedAt:     time.Now(),
		LastMessageAt: time.Now(),
	}
	if _, err := collection.InsertOne(ctx, conversation); err != nil {
		return primitive.NilObjectID, err
	}
	return conversation.ID, nil
}

// ConversationsHandler lists the user's conversations, latest activity first
func ConversationsHandler(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := utils.GetCollection(config.DatabaseName, "conversations")
	findOptions := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{"user_id": userObjID}, findOptions)
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
	if conversations == nil {
		conversations = []models.Conversation{}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"conversations": conversations,
	})
}

// ConversationMessagesHandler returns the full message history of one
// conversation, outfit images presigned.
func ConversationMessagesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, nil, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conversation, status, err := findOwnedConversation(r, userID)
	if err != nil {
		utils.RespondError(w, nil, err.Error(), status)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	messagesCollection := utils.GetCollection(config.DatabaseName, "messages")
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := messagesCollection.Find(ctx, bson.M{"conversation_id": conversation.ID}, findOptions)
	if err != nil {
		utils.RespondError(w, nil, "Failed to fetch messages", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		utils.RespondError(w, nil, "Failed to decode messages", http.StatusInternalServerError)
		return
	}
	for i := range messages {
		messages[i].OutfitImageURL = presignIfKey(r.Context(), messages[i].OutfitImageURL)
	}
	if messages == nil {
		messages = []models.Message{}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"conversation": conversation,
		"messages":     messages,
	})
}

// DeleteConversationHandler removes a conversation and its messages
func DeleteConversationHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Delete Conversation API]")

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conversation, status, err := findOwnedConversation(r, userID)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), status)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	messagesCollection := utils.GetCollection(config.DatabaseName, "messages")
	if _, err := messagesCollection.DeleteMany(ctx, bson.M{"conversation_id": conversation.ID}); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to delete messages", http.StatusInternalServerError)
		return
	}

	conversationsCollection := utils.GetCollection(config.DatabaseName, "conversations")
	if _, err := conversationsCollection.DeleteOne(ctx, bson.M{"_id": conversation.ID}); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to delete conversation", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Deleted conversation %s", conversation.ID.Hex()))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Conversation deleted",
	})
}

// findOwnedConversation resolves the {id} path value to a conversation owned
// by the authenticated user.
func findOwnedConversation(r *http.Request, userID string) (models.Conversation, int, error) {
	var conversation models.Conversation

	userObjID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return conversation, http.StatusBadRequest, fmt.Errorf("invalid user ID")
	}
	convObjID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		return conversation, http.StatusBadRequest, fmt.Errorf("invalid conversation ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := utils.GetCollection(config.DatabaseName, "conversations")
	err = collection.FindOne(ctx, bson.M{"_id": convObjID, "user_id": userObjID}).Decode(&conversation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return conversation, http.StatusNotFound, fmt.Errorf("conversation not found")
		}
		return conversation, http.StatusInternalServerError, fmt.Errorf("database error")
	}
	return conversation, http.StatusOK, nil
}
