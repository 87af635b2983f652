package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation groups the chat messages of one styling session
type Conversation struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"userId"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	LastMessageAt time.Time          `bson:"last_message_at" json:"lastMessageAt"`
}

// Message is one chat turn. Assistant messages carry the outfit state
// active after the turn; the latest assistant message is canonical.
type Message struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationID         primitive.ObjectID `bson:"conversation_id" json:"conversationId"`
	Role                   string             `bson:"role" json:"role"` // user or assistant
	Content                string             `bson:"content" json:"content"`
	ProductRecommendations []ProductCandidate `bson:"product_recommendations,omitempty" json:"productRecommendations,omitempty"`
	OutfitImageURL         string             `bson:"outfit_image_url,omitempty" json:"outfitImage,omitempty"`
	OutfitProducts         []OutfitItem       `bson:"outfit_products,omitempty" json:"products,omitempty"`
	CreatedAt              time.Time          `bson:"created_at" json:"timestamp"`
}
