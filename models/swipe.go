package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Swipe records one card swipe in the discovery feed
type Swipe struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"userId"`
	ProductID    primitive.ObjectID `bson:"product_id" json:"productId"`
	Direction    string             `bson:"direction" json:"direction"` // left, right, up
	SessionID    string             `bson:"session_id" json:"sessionId"`
	CardPosition int                `bson:"card_position" json:"cardPosition"`
	SwipedAt     time.Time          `bson:"swiped_at" json:"swipedAt"`
}
