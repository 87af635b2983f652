package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/scootpie/stylist-server/api"
	"github.com/scootpie/stylist-server/config"
	"github.com/scootpie/stylist-server/utils"
)

func main() {
	config.LoadConfig()

	// Initialize MongoDB
	if err := utils.ConnectMongo(config.MongoURI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	// CORS Middleware
	corsMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}

	authed := func(h http.HandlerFunc) http.Handler {
		return api.AuthMiddleware(h)
	}

	mux := http.NewServeMux()

	// Auth Routes
	mux.HandleFunc("GET /auth/google/login", api.GoogleLoginHandler)
	mux.HandleFunc("GET /auth/google/callback", api.GoogleCallbackHandler)
	mux.HandleFunc("POST /auth/signup", api.SignupHandler)
	mux.HandleFunc("GET /auth/verify-email", api.VerifyEmailHandler)
	mux.HandleFunc("POST /auth/verify-otp", api.VerifyOTPHandler)
	mux.HandleFunc("POST /auth/login", api.LoginHandler)
	mux.HandleFunc("POST /auth/forgot-password", api.ForgotPasswordHandler)
	mux.HandleFunc("POST /auth/reset-password", api.ResetPasswordHandler)

	// Catalog feed is public, everything personal sits behind auth
	mux.HandleFunc("GET /products", api.ProductsHandler)

	// Styling Chat
	mux.Handle("POST /chat", authed(api.ChatHandler))
	mux.Handle("GET /chat", authed(api.ConversationsHandler))
	mux.Handle("GET /chat/{id}", authed(api.ConversationMessagesHandler))
	mux.Handle("DELETE /chat/{id}", authed(api.DeleteConversationHandler))

	// Product Search
	mux.Handle("GET /search/products", authed(api.SearchProductsHandler))

	// Swipes and Collections
	mux.Handle("POST /swipes", authed(api.RecordSwipeHandler))
	mux.Handle("GET /swipes", authed(api.SwipesHandler))
	mux.Handle("GET /collections", authed(api.CollectionsHandler))
	mux.Handle("POST /collections", authed(api.CreateCollectionHandler))
	mux.Handle("DELETE /collections/{id}/items/{itemId}", authed(api.DeleteCollectionItemHandler))

	// Profile and Photos
	mux.Handle("GET /user/profile", authed(api.ProfileHandler))
	mux.Handle("POST /user/profile", authed(api.SaveProfileHandler))
	mux.Handle("PUT /user/profile", authed(api.SaveProfileHandler))
	mux.Handle("GET /user/photos", authed(api.PhotosHandler))
	mux.Handle("POST /user/photos", authed(api.AddPhotoHandler))
	mux.Handle("PUT /user/photos/{id}", authed(api.ReplacePhotoHandler))
	mux.Handle("PUT /user/photos/{id}/primary", authed(api.SetPrimaryPhotoHandler))
	mux.Handle("DELETE /user/photos/{id}", authed(api.DeletePhotoHandler))

	// Outfit Gallery
	mux.Handle("GET /outfits", authed(api.OutfitsHandler))

	port := config.Port
	fmt.Printf("Server starting on port %s...\n", port)
	if err := http.ListenAndServe(":"+port, corsMiddleware(utils.LatencyMiddleware(mux))); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
