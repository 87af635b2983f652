package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scootpie/stylist-server/config"
	"github.com/scootpie/stylist-server/models"
	"github.com/scootpie/stylist-server/utils"
)

// ProductsHandler serves the catalog feed for the swipe deck. The filter
// parameter selects trending, new or editorial picks; without it a random
// sample is returned so the deck varies between sessions.
func ProductsHandler(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := utils.GetCollection(config.DatabaseName, "products")

	filter := bson.M{"in_stock": true}
	switch r.URL.Query().Get("filter") {
	case "trending":
		filter["trending"] = true
	case "new":
		filter["is_new"] = true
	case "editorial":
		filter["is_editorial"] = true
	case "", "random":
		pipeline := []bson.M{
			{"$match": filter},
			{"$sample": bson.M{"size": limit}},
		}
		cursor, err := collection.Aggregate(ctx, pipeline)
		if err != nil {
			utils.RespondError(w, nil, "Failed to fetch products", http.StatusInternalServerError)
			return
		}
		defer cursor.Close(ctx)

		var products []models.Product
		if err := cursor.All(ctx, &products); err != nil {
			utils.RespondError(w, nil, "Failed to decode products", http.StatusInternalServerError)
			return
		}
		respondProducts(w, products)
		return
	default:
		utils.RespondError(w, nil, "Unknown filter", http.StatusBadRequest)
		return
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "last_updated", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		utils.RespondError(w, nil, "Failed to fetch products", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondError(w, nil, "Failed to decode products", http.StatusInternalServerError)
		return
	}
	respondProducts(w, products)
}

func respondProducts(w http.ResponseWriter, products []models.Product) {
	if products == nil {
		products = []models.Product{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": products,
	})
}
