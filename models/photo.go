package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Photo is one uploaded user photo. Exactly one photo per user is primary;
// the primary photo is the base image for first-time outfit generation.
type Photo struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"userId"`
	URL        string             `bson:"url" json:"url"`
	IsPrimary  bool               `bson:"is_primary" json:"isPrimary"`
	UploadedAt time.Time          `bson:"uploaded_at" json:"uploadedAt"`
}
