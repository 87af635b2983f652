package search

import (
	"context"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scootpie/stylist-server/models"
)

// MongoCatalog searches the internal product catalog by case-insensitive
// substring over name, brand, category and description.
type MongoCatalog struct {
	Collection *mongo.Collection
}

func (m *MongoCatalog) SearchProducts(ctx context.Context, query string, limit int) ([]models.ProductCandidate, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(query)), Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"name": pattern},
		{"brand": pattern},
		{"category": pattern},
		{"description": pattern},
	}}

	cursor, err := m.Collection.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	candidates := make([]models.ProductCandidate, 0, len(products))
	for _, p := range products {
		candidates = append(candidates, CandidateFromProduct(p))
	}
	return candidates, nil
}

// CandidateFromProduct converts a catalog record into the common candidate
// shape, tagged internal.
func CandidateFromProduct(p models.Product) models.ProductCandidate {
	return models.ProductCandidate{
		ID:         p.ID.Hex(),
		Name:       p.Name,
		Brand:      p.Brand,
		Price:      p.Price,
		Currency:   p.Currency,
		Retailer:   p.Retailer,
		Category:   p.Category,
		ImageURL:   p.ImageURL,
		ProductURL: p.ProductURL,
		IsExternal: false,
	}
}
