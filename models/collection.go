package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection is a named set of saved products. Every user gets a default
// "Likes" collection that right-swipes land in.
type Collection struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	IsDefault bool               `bson:"is_default" json:"isDefault"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// CollectionItem links a product into a collection
type CollectionItem struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CollectionID  primitive.ObjectID `bson:"collection_id" json:"collectionId"`
	ProductID     primitive.ObjectID `bson:"product_id" json:"productId"`
	AddedAt       time.Time          `bson:"added_at" json:"addedAt"`
	TryOnImageURL string             `bson:"try_on_image_url,omitempty" json:"tryOnImageUrl,omitempty"`
}
