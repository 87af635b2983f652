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

const maxPhotosPerUser = 5

// AddPhotoRequest is the payload for registering an uploaded photo
type AddPhotoRequest struct {
	URL string `json:"url"`
}

// PhotosHandler lists the user's photos, primary first
func PhotosHandler(w http.ResponseWriter, r *http.Request) {
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

	photos, err := loadUserPhotos(ctx, userObjID)
	if err != nil {
		utils.RespondError(w, nil, "Failed to fetch photos", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"photos":  photos,
	})
}

func loadUserPhotos(ctx context.Context, userID primitive.ObjectID) ([]models.Photo, error) {
	collection := utils.GetCollection(config.DatabaseName, "photos")
	findOptions := options.Find().SetSort(bson.D{
		{Key: "is_primary", Value: -1},
		{Key: "uploaded_at", Value: 1},
	})
	cursor, err := collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var photos []models.Photo
	if err := cursor.All(ctx, &photos); err != nil {
		return nil, err
	}
	if photos == nil {
		photos = []models.Photo{}
	}
	return photos, nil
}

// AddPhotoHandler registers a new photo. The first photo a user adds
// becomes the primary automatically.
func AddPhotoHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Add Photo API]")

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

	var req AddPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		utils.RespondError(w, &logMessageBuilder, "url is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := utils.GetCollection(config.DatabaseName, "photos")
	count, err := collection.CountDocuments(ctx, bson.M{"user_id": userObjID})
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Database error", http.StatusInternalServerError)
		return
	}
	if count >= maxPhotosPerUser {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Photo limit of %d reached", maxPhotosPerUser), http.StatusBadRequest)
		return
	}

	photo := models.Photo{
		ID:         primitive.NewObjectID(),
		UserID:     userObjID,
		URL:        req.URL,
		IsPrimary:  count == 0,
		UploadedAt: time.Now(),
	}
	if _, err := collection.InsertOne(ctx, photo); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to save photo", http.StatusInternalServerError)
		return
	}

	if photo.IsPrimary {
		if err := setUserPrimaryPhoto(ctx, userObjID, photo.ID); err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to set primary photo on user: %v", err))
		}
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Added photo %s (primary=%t)", photo.ID.Hex(), photo.IsPrimary))
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"photo":   photo,
	})
}

func setUserPrimaryPhoto(ctx context.Context, userID, photoID primitive.ObjectID) error {
	usersCollection := utils.GetCollection(config.DatabaseName, "users")
	update := bson.M{"$set": bson.M{"primary_photo_id": photoID, "updated_at": time.Now()}}
	if photoID.IsZero() {
		update = bson.M{
			"$unset": bson.M{"primary_photo_id": ""},
			"$set":   bson.M{"updated_at": time.Now()},
		}
	}
	_, err := usersCollection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	return err
}

// DeletePhotoHandler removes a photo. Deleting the primary promotes the
// oldest remaining photo so the user never silently loses their base image.
func DeletePhotoHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Delete Photo API]")

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
	photoObjID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid photo ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := utils.GetCollection(config.DatabaseName, "photos")
	var photo models.Photo
	err = collection.FindOne(ctx, bson.M{"_id": photoObjID, "user_id": userObjID}).Decode(&photo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondError(w, &logMessageBuilder, "Photo not found", http.StatusNotFound)
		} else {
			utils.RespondError(w, &logMessageBuilder, "Database error", http.StatusInternalServerError)
		}
		return
	}

	if _, err := collection.DeleteOne(ctx, bson.M{"_id": photoObjID}); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to delete photo", http.StatusInternalServerError)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Deleted photo %s", photoObjID.Hex()))

	if photo.IsPrimary {
		findOptions := options.FindOne().SetSort(bson.D{{Key: "uploaded_at", Value: 1}})
		var next models.Photo
		err := collection.FindOne(ctx, bson.M{"user_id": userObjID}, findOptions).Decode(&next)
		switch err {
		case nil:
			if _, err := collection.UpdateOne(ctx, bson.M{"_id": next.ID}, bson.M{"$set": bson.M{"is_primary": true}}); err != nil {
				utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to promote photo: %v", err))
			} else if err := setUserPrimaryPhoto(ctx, userObjID, next.ID); err != nil {
				utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to update user primary photo: %v", err))
			} else {
				utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Promoted photo %s to primary", next.ID.Hex()))
			}
		case mongo.ErrNoDocuments:
			if err := setUserPrimaryPhoto(ctx, userObjID, primitive.NilObjectID); err != nil {
				utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to clear user primary photo: %v", err))
			}
		default:
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to look up remaining photos: %v", err))
		}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Photo deleted",
	})
}

// SetPrimaryPhotoHandler marks one photo as the primary base image
func SetPrimaryPhotoHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Set Primary Photo API]")

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
	photoObjID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid photo ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := utils.GetCollection(config.DatabaseName, "photos")

	result, err := collection.UpdateOne(ctx, bson.M{"_id": photoObjID, "user_id": userObjID},
		bson.M{"$set": bson.M{"is_primary": true}})
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to update photo", http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, &logMessageBuilder, "Photo not found", http.StatusNotFound)
		return
	}

	// Demote every other photo
	_, err = collection.UpdateMany(ctx, bson.M{"user_id": userObjID, "_id": bson.M{"$ne": photoObjID}},
		bson.M{"$set": bson.M{"is_primary": false}})
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to demote other photos: %v", err))
	}

	if err := setUserPrimaryPhoto(ctx, userObjID, photoObjID); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to update user primary photo: %v", err))
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Photo %s is now primary", photoObjID.Hex()))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Primary photo updated",
	})
}

// ReplacePhotoHandler swaps the stored URL of an existing photo
func ReplacePhotoHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Replace Photo API]")

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
	photoObjID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid photo ID", http.StatusBadRequest)
		return
	}

	var req AddPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		utils.RespondError(w, &logMessageBuilder, "url is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := utils.GetCollection(config.DatabaseName, "photos")
	result, err := collection.UpdateOne(ctx, bson.M{"_id": photoObjID, "user_id": userObjID},
		bson.M{"$set": bson.M{"url": req.URL, "uploaded_at": time.Now()}})
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to update photo", http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, &logMessageBuilder, "Photo not found", http.StatusNotFound)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Replaced photo %s", photoObjID.Hex()))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Photo updated",
	})
}
