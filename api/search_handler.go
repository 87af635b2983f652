package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/scootpie/stylist-server/models"
	"github.com/scootpie/stylist-server/utils"
)

// SearchProductsHandler searches products for the query string, using the
// user's preferences to refine the query.
func SearchProductsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Search Products API]")

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		utils.RespondError(w, &logMessageBuilder, "q parameter is required", http.StatusBadRequest)
		return
	}

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 50 {
			limit = l
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var prefs *models.Preferences
	if user, err := loadUser(ctx, userID); err == nil {
		prefs = user.Preferences
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Searching products: %q limit=%d", query, limit))
	candidates := getSearchClient().Search(ctx, query, prefs, limit)
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Found %d products", len(candidates)))
	if candidates == nil {
		candidates = []models.ProductCandidate{}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": candidates,
		"query":    query,
	})
}
