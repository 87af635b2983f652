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

	"github.com/scootpie/stylist-server/config"
	"github.com/scootpie/stylist-server/models"
	"github.com/scootpie/stylist-server/utils"
)

var validGenders = map[string]bool{
	"men":               true,
	"women":             true,
	"unisex":            true,
	"non-binary":        true,
	"prefer-not-to-say": true,
}

// ProfileRequest is the payload for creating or updating the style profile
type ProfileRequest struct {
	Name         string        `json:"name"`
	Gender       string        `json:"gender"`
	Sizes        *models.Sizes `json:"sizes"`
	BudgetRange  []float64     `json:"budgetRange"`
	Photos       []string      `json:"photos"`
	PrimaryIndex int           `json:"primaryIndex"`
}

// SaveProfileHandler creates or updates the user's style profile. On first
// save it also registers the submitted photos and the default collection.
func SaveProfileHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Save Profile API]")

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

	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.Gender != "" && !validGenders[req.Gender] {
		utils.RespondError(w, &logMessageBuilder, "gender must be one of men, women, unisex, non-binary, prefer-not-to-say", http.StatusBadRequest)
		return
	}
	if len(req.BudgetRange) != 0 && len(req.BudgetRange) != 2 {
		utils.RespondError(w, &logMessageBuilder, "budgetRange must be [min, max]", http.StatusBadRequest)
		return
	}
	if len(req.BudgetRange) == 2 && req.BudgetRange[0] > req.BudgetRange[1] {
		utils.RespondError(w, &logMessageBuilder, "budgetRange min must not exceed max", http.StatusBadRequest)
		return
	}
	if len(req.Photos) > maxPhotosPerUser {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("At most %d photos are allowed", maxPhotosPerUser), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	usersCollection := utils.GetCollection(config.DatabaseName, "users")
	var user models.User
	if err := usersCollection.FindOne(ctx, bson.M{"_id": userObjID}).Decode(&user); err != nil {
		utils.RespondError(w, &logMessageBuilder, "User not found", http.StatusNotFound)
		return
	}

	preferences := user.Preferences
	if preferences == nil {
		preferences = &models.Preferences{}
	}
	if req.Gender != "" {
		preferences.Gender = req.Gender
	}
	if req.Sizes != nil {
		preferences.Sizes = req.Sizes
	}
	if len(req.BudgetRange) == 2 {
		preferences.BudgetRange = req.BudgetRange
	}

	update := bson.M{
		"preferences": preferences,
		"updated_at":  time.Now(),
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		update["name"] = name
	}
	if _, err := usersCollection.UpdateOne(ctx, bson.M{"_id": userObjID}, bson.M{"$set": update}); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to save profile", http.StatusInternalServerError)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, "Profile preferences saved")

	if len(req.Photos) > 0 {
		if err := registerProfilePhotos(ctx, userObjID, req.Photos, req.PrimaryIndex); err != nil {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to save photos: %v", err), http.StatusInternalServerError)
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Registered %d photos", len(req.Photos)))
	}

	if err := ensureDefaultCollection(ctx, userObjID); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to ensure default collection: %v", err))
	}

	if err := usersCollection.FindOne(ctx, bson.M{"_id": userObjID}).Decode(&user); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to reload user", http.StatusInternalServerError)
		return
	}
	photos, err := loadUserPhotos(ctx, userObjID)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to fetch photos", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, "Profile saved")
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
		"photos":  photos,
	})
}

// registerProfilePhotos replaces the user's photo set with the submitted
// URLs. primaryIndex picks the base image; out of range falls back to the
// first photo.
func registerProfilePhotos(ctx context.Context, userID primitive.ObjectID, urls []string, primaryIndex int) error {
	if primaryIndex < 0 || primaryIndex >= len(urls) {
		primaryIndex = 0
	}

	photosCollection := utils.GetCollection(config.DatabaseName, "photos")
	if _, err := photosCollection.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return err
	}

	now := time.Now()
	var primaryID primitive.ObjectID
	docs := make([]interface{}, 0, len(urls))
	for i, url := range urls {
		photo := models.Photo{
			ID:         primitive.NewObjectID(),
			UserID:     userID,
			URL:        url,
			IsPrimary:  i == primaryIndex,
			UploadedAt: now.Add(time.Duration(i) * time.Millisecond),
		}
		if photo.IsPrimary {
			primaryID = photo.ID
		}
		docs = append(docs, photo)
	}
	if _, err := photosCollection.InsertMany(ctx, docs); err != nil {
		return err
	}
	return setUserPrimaryPhoto(ctx, userID, primaryID)
}

func ensureDefaultCollection(ctx context.Context, userID primitive.ObjectID) error {
	collectionsCollection := utils.GetCollection(config.DatabaseName, "collections")
	count, err := collectionsCollection.CountDocuments(ctx, bson.M{"user_id": userID, "is_default": true})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err = collectionsCollection.InsertOne(ctx, models.Collection{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Name:      "Likes",
		IsDefault: true,
		CreatedAt: time.Now(),
	})
	return err
}

// ProfileHandler returns the user with their photos
func ProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, nil, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := loadUser(ctx, userID)
	if err != nil {
		utils.RespondError(w, nil, "User not found", http.StatusNotFound)
		return
	}

	photos, err := loadUserPhotos(ctx, user.ID)
	if err != nil {
		utils.RespondError(w, nil, "Failed to fetch photos", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
		"photos":  photos,
	})
}
