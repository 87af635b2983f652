package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog product stored in the internal database.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExternalID  string             `bson:"external_id,omitempty" json:"externalId,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Brand       string             `bson:"brand" json:"brand"`
	Price       float64            `bson:"price" json:"price"`
	Currency    string             `bson:"currency" json:"currency"`
	Retailer    string             `bson:"retailer" json:"retailer"`
	Category    string             `bson:"category" json:"category"`
	Subcategory string             `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	ImageURL    string             `bson:"image_url" json:"imageUrl"`
	ProductURL  string             `bson:"product_url" json:"productUrl"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	InStock     bool               `bson:"in_stock" json:"inStock"`
	Trending    bool               `bson:"trending" json:"trending"`
	IsNew       bool               `bson:"is_new" json:"isNew"`
	IsEditorial bool               `bson:"is_editorial" json:"isEditorial"`
	LastUpdated time.Time          `bson:"last_updated" json:"lastUpdated"`
}

// ProductCandidate is a transient search result. It is not persisted
// unless the ranker selects it into the outfit.
type ProductCandidate struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Brand      string  `json:"brand"`
	Price      float64 `json:"price"`
	Currency   string  `json:"currency"`
	Retailer   string  `json:"retailer"`
	Category   string  `json:"category"`
	ImageURL   string  `json:"imageUrl"`
	ProductURL string  `json:"productUrl"`
	IsExternal bool    `json:"isExternal"`
}

// OutfitItem is one garment currently worn in a conversation's outfit state.
// The client echoes the latest assistant message's items back as priorItems.
type OutfitItem struct {
	Name       string  `bson:"name" json:"name"`
	ImageURL   string  `bson:"image_url" json:"imageUrl"`
	ProductURL string  `bson:"product_url" json:"productUrl"`
	Price      float64 `bson:"price" json:"price"`
	Currency   string  `bson:"currency" json:"currency"`
	Brand      string  `bson:"brand" json:"brand"`
	Retailer   string  `bson:"retailer" json:"retailer"`
	Category   string  `bson:"category" json:"category"`
}
