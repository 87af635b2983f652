package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scootpie/stylist-server/config"
	"github.com/scootpie/stylist-server/models"
	"github.com/scootpie/stylist-server/utils"
)

// SwipeRequest records one card decision from the discovery deck
type SwipeRequest struct {
	ProductID    string `json:"productId"`
	Direction    string `json:"direction"`
	SessionID    string `json:"sessionId"`
	CardPosition int    `json:"cardPosition"`
}

// RecordSwipeHandler stores a swipe. Right swipes also land the product in
// the user's default collection.
func RecordSwipeHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Record Swipe API]")

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}
	userObjID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var req SwipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.Direction != "left" && req.Direction != "right" && req.Direction != "up" {
		utils.RespondError(w, &logMessageBuilder, "direction must be left, right or up", http.StatusBadRequest)
		return
	}
	productObjID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid product ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	swipe := models.Swipe{
		ID:           primitive.NewObjectID(),
		UserID:       userObjID,
		ProductID:    productObjID,
		Direction:    req.Direction,
		SessionID:    req.SessionID,
		CardPosition: req.CardPosition,
		SwipedAt:     time.Now(),
	}

	swipesCollection := utils.GetCollection(config.DatabaseName, "swipes")
	if _, err := swipesCollection.InsertOne(ctx, swipe); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to record swipe", http.StatusInternalServerError)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Recorded %s swipe on %s", req.Direction, req.ProductID))

	if req.Direction == "right" {
		if err := addToDefaultCollection(ctx, userObjID, productObjID); err != nil {
			// The swipe itself is saved, a failed save-to-likes is logged only
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to add product to likes: %v", err))
		} else {
			utils.AddToLogMessage(&logMessageBuilder, "Product added to likes")
		}
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"swipe":   swipe,
	})
}

// addToDefaultCollection puts the product into the user's default collection,
// creating it if the user does not have one yet. Duplicate products are
// silently skipped.
func addToDefaultCollection(ctx context.Context, userID, productID primitive.ObjectID) error {
	collectionsCollection := utils.GetCollection(config.DatabaseName, "collections")

	var defaultCollection models.Collection
	err := collectionsCollection.FindOne(ctx, bson.M{"user_id": userID, "is_default": true}).Decode(&defaultCollection)
	if err == mongo.ErrNoDocuments {
		defaultCollection = models.Collection{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			Name:      "Likes",
			IsDefault: true,
			CreatedAt: time.Now(),
		}
		if _, err := collectionsCollection.InsertOne(ctx, defaultCollection); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	itemsCollection := utils.GetCollection(config.DatabaseName, "collection_items")
	count, err := itemsCollection.CountDocuments(ctx, bson.M{
		"collection_id": defaultCollection.ID,
		"product_id":    productID,
	})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	item := models.CollectionItem{
		ID:           primitive.NewObjectID(),
		CollectionID: defaultCollection.ID,
		ProductID:    productID,
		AddedAt:      time.Now(),
	}
	_, err = itemsCollection.InsertOne(ctx, item)
	return err
}

// SwipesHandler returns the user's swipe history with the swiped products
// joined in. The direction parameter narrows to one direction.
func SwipesHandler(w http.ResponseWriter, r *http.Request) {
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

	filter := bson.M{"user_id": userObjID}
	if direction := r.URL.Query().Get("direction"); direction != "" {
		filter["direction"] = direction
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	swipesCollection := utils.GetCollection(config.DatabaseName, "swipes")
	findOptions := options.Find().SetSort(bson.D{{Key: "swiped_at", Value: -1}})
	cursor, err := swipesCollection.Find(ctx, filter, findOptions)
	if err != nil {
		utils.RespondError(w, nil, "Failed to fetch swipes", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var swipes []models.Swipe
	if err := cursor.All(ctx, &swipes); err != nil {
		utils.RespondError(w, nil, "Failed to decode swipes", http.StatusInternalServerError)
		return
	}
	if swipes == nil {
		swipes = []models.Swipe{}
	}

	productIDs := make([]primitive.ObjectID, 0, len(swipes))
	for _, s := range swipes {
		productIDs = append(productIDs, s.ProductID)
	}

	products := map[string]models.Product{}
	if len(productIDs) > 0 {
		productsCollection := utils.GetCollection(config.DatabaseName, "products")
		productCursor, err := productsCollection.Find(ctx, bson.M{"_id": bson.M{"$in": productIDs}})
		if err == nil {
			defer productCursor.Close(ctx)
			var found []models.Product
			if err := productCursor.All(ctx, &found); err == nil {
				for _, p := range found {
					products[p.ID.Hex()] = p
				}
			}
		}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"swipes":   swipes,
		"products": products,
	})
}
