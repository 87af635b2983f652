package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sizes holds the user's clothing sizes used for search query enhancement
type Sizes struct {
	Top    string `bson:"top,omitempty" json:"top,omitempty"`
	Bottom string `bson:"bottom,omitempty" json:"bottom,omitempty"`
	Shoes  string `bson:"shoes,omitempty" json:"shoes,omitempty"`
}

// Preferences holds profile preferences that shape product search
type Preferences struct {
	Gender      string    `bson:"gender,omitempty" json:"gender,omitempty"` // men, women, unisex, non-binary, prefer-not-to-say
	Sizes       *Sizes    `bson:"sizes,omitempty" json:"sizes,omitempty"`
	BudgetRange []float64 `bson:"budget_range,omitempty" json:"budgetRange,omitempty"`
}

// User represents a registered user
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	Password          string             `bson:"password,omitempty" json:"-"` // Password is not returned in JSON
	Preferences       *Preferences       `bson:"preferences,omitempty" json:"preferences,omitempty"`
	PrimaryPhotoID    primitive.ObjectID `bson:"primary_photo_id,omitempty" json:"primaryPhotoId,omitempty"`
	Status            string             `bson:"status" json:"status"`        // pending, verified, active
	VerificationToken string             `bson:"verification_token,omitempty" json:"-"`
	OTP               string             `bson:"otp,omitempty" json:"-"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}
