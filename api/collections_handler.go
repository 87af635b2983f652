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

// CollectionWithItems is a collection expanded with its saved products
type CollectionWithItems struct {
	models.Collection
	Items []CollectionItemWithProduct `json:"items"`
}

// CollectionItemWithProduct pairs a saved item with its product
type CollectionItemWithProduct struct {
	models.CollectionItem
	Product *models.Product `json:"product,omitempty"`
}

// CollectionsHandler lists the user's collections with their items
func CollectionsHandler(w http.ResponseWriter, r *http.Request) {
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

	collectionsCollection := utils.GetCollection(config.DatabaseName, "collections")
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := collectionsCollection.Find(ctx, bson.M{"user_id": userObjID}, findOptions)
	if err != nil {
		utils.RespondError(w, nil, "Failed to fetch collections", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var collections []models.Collection
	if err := cursor.All(ctx, &collections); err != nil {
		utils.RespondError(w, nil, "Failed to decode collections", http.StatusInternalServerError)
		return
	}

	result := make([]CollectionWithItems, 0, len(collections))
	for _, c := range collections {
		items, err := loadCollectionItems(ctx, c.ID)
		if err != nil {
			utils.RespondError(w, nil, "Failed to fetch collection items", http.StatusInternalServerError)
			return
		}
		result = append(result, CollectionWithItems{Collection: c, Items: items})
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"collections": result,
	})
}

func loadCollectionItems(ctx context.Context, collectionID primitive.ObjectID) ([]CollectionItemWithProduct, error) {
	itemsCollection := utils.GetCollection(config.DatabaseName, "collection_items")
	findOptions := options.Find().SetSort(bson.D{{Key: "added_at", Value: -1}})
	cursor, err := itemsCollection.Find(ctx, bson.M{"collection_id": collectionID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.CollectionItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	productIDs := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}

	products := map[string]models.Product{}
	if len(productIDs) > 0 {
		productsCollection := utils.GetCollection(config.DatabaseName, "products")
		productCursor, err := productsCollection.Find(ctx, bson.M{"_id": bson.M{"$in": productIDs}})
		if err != nil {
			return nil, err
		}
		defer productCursor.Close(ctx)

		var found []models.Product
		if err := productCursor.All(ctx, &found); err != nil {
			return nil, err
		}
		for _, p := range found {
			products[p.ID.Hex()] = p
		}
	}

	result := make([]CollectionItemWithProduct, 0, len(items))
	for _, item := range items {
		entry := CollectionItemWithProduct{CollectionItem: item}
		if p, ok := products[item.ProductID.Hex()]; ok {
			product := p
			entry.Product = &product
		}
		result = append(result, entry)
	}
	return result, nil
}

// CreateCollectionRequest is the payload for creating a named collection
type CreateCollectionRequest struct {
	Name string `json:"name"`
}

// CreateCollectionHandler creates a new named collection for the user
func CreateCollectionHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Create Collection API]")

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

	var req CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.RespondError(w, &logMessageBuilder, "name is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collectionsCollection := utils.GetCollection(config.DatabaseName, "collections")

	count, err := collectionsCollection.CountDocuments(ctx, bson.M{"user_id": userObjID, "name": req.Name})
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Database error", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		utils.RespondError(w, &logMessageBuilder, "A collection with this name already exists", http.StatusConflict)
		return
	}

	collection := models.Collection{
		ID:        primitive.NewObjectID(),
		UserID:    userObjID,
		Name:      req.Name,
		IsDefault: false,
		CreatedAt: time.Now(),
	}
	if _, err := collectionsCollection.InsertOne(ctx, collection); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to create collection", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Created collection %q", req.Name))
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"collection": collection,
	})
}

// DeleteCollectionItemHandler removes a saved product from one of the
// user's collections.
func DeleteCollectionItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Delete Collection Item API]")

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

	collectionObjID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid collection ID", http.StatusBadRequest)
		return
	}
	itemObjID, err := primitive.ObjectIDFromHex(r.PathValue("itemId"))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid item ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ownership check before touching the item
	collectionsCollection := utils.GetCollection(config.DatabaseName, "collections")
	var owned models.Collection
	err = collectionsCollection.FindOne(ctx, bson.M{"_id": collectionObjID, "user_id": userObjID}).Decode(&owned)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondError(w, &logMessageBuilder, "Collection not found", http.StatusNotFound)
		} else {
			utils.RespondError(w, &logMessageBuilder, "Database error", http.StatusInternalServerError)
		}
		return
	}

	itemsCollection := utils.GetCollection(config.DatabaseName, "collection_items")
	result, err := itemsCollection.DeleteOne(ctx, bson.M{"_id": itemObjID, "collection_id": collectionObjID})
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to delete item", http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, &logMessageBuilder, "Item not found", http.StatusNotFound)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Deleted item %s from collection %s", itemObjID.Hex(), collectionObjID.Hex()))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Item removed from collection",
	})
}
