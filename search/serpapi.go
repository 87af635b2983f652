package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scootpie/stylist-server/models"
)

const (
	defaultBaseURL   = "https://serpapi.com"
	defaultCap       = 10
	externalCategory = "search"
)

// CatalogSearcher is the internal-catalog fallback behind the external
// shopping search.
type CatalogSearcher interface {
	SearchProducts(ctx context.Context, query string, limit int) ([]models.ProductCandidate, error)
}

// Client resolves free-text product queries. External SerpAPI results are
// preferred; on a missing key, a per-call failure, or zero results, the
// internal catalog serves as fallback. Search never fails the caller: every
// error collapses to an empty or fallback result.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Catalog    CatalogSearcher
}

// NewClient builds a search client with a per-call timeout on external
// requests.
func NewClient(apiKey string, catalog CatalogSearcher) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Catalog:    catalog,
	}
}

type serpResult struct {
	Position    int    `json:"position"`
	ProductID   string `json:"product_id"`
	Title       string `json:"title"`
	Source      string `json:"source"`
	Store       string `json:"store"`
	Price       string `json:"price"`
	Thumbnail   string `json:"thumbnail"`
	Image       string `json:"image"`
	Link        string `json:"link"`
	ProductLink string `json:"product_link"`
}

type serpResponse struct {
	ShoppingResults []serpResult `json:"shopping_results"`
}

// Search runs one query through the external service with catalog fallback.
// The query is enhanced with profile preferences before either path runs.
// limit caps the result count; zero or negative means the default cap of 10.
func (c *Client) Search(ctx context.Context, query string, prefs *models.Preferences, limit int) []models.ProductCandidate {
	if limit <= 0 {
		limit = defaultCap
	}
	enhanced := EnhanceQuery(query, prefs)

	var found []models.ProductCandidate
	if c.APIKey != "" {
		results, err := c.searchExternal(ctx, enhanced, limit)
		if err != nil {
			log.Printf("[SEARCH] external search failed for %q: %v", enhanced, err)
		} else {
			found = results
		}
	}

	if len(found) == 0 && c.Catalog != nil {
		results, err := c.Catalog.SearchProducts(ctx, enhanced, limit)
		if err != nil {
			log.Printf("[SEARCH] catalog fallback failed for %q: %v", enhanced, err)
			return nil
		}
		found = results
	}
	return found
}

func (c *Client) searchExternal(ctx context.Context, query string, limit int) ([]models.ProductCandidate, error) {
	body, err := c.serpGet(ctx, url.Values{
		"engine": {"google_shopping_light"},
		"q":      {query},
	})
	if err != nil {
		return nil, err
	}

	var parsed serpResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode shopping results: %w", err)
	}

	results := parsed.ShoppingResults
	if len(results) > limit {
		results = results[:limit]
	}

	candidates := make([]models.ProductCandidate, 0, len(results))
	for i, r := range results {
		price, currency := ParsePrice(r.Price)

		name := r.Title
		if name == "" {
			name = "Product"
		}
		source := r.Source
		if source == "" {
			source = r.Store
		}
		if source == "" {
			source = "Unknown"
		}

		productURL := pickRetailerURL(r)
		imageURL := r.Thumbnail
		if imageURL == "" {
			imageURL = r.Image
		}
		if imageURL == "" && r.ProductID != "" {
			imageURL = c.fetchProductImage(ctx, r.ProductID)
		}
		if imageURL == "" {
			imageURL = fetchOGImage(ctx, c.HTTPClient, productURL)
		}

		id := r.ProductID
		if id == "" {
			id = fmt.Sprintf("%d", i)
		}

		candidates = append(candidates, models.ProductCandidate{
			ID:         fmt.Sprintf("serp-%s-%s", id, uuid.NewString()[:8]),
			Name:       name,
			Brand:      source,
			Price:      price,
			Currency:   currency,
			Retailer:   source,
			Category:   externalCategory,
			ImageURL:   imageURL,
			ProductURL: productURL,
			IsExternal: true,
		})
	}
	return candidates, nil
}

// fetchProductImage fills a missing thumbnail from the per-product endpoint.
func (c *Client) fetchProductImage(ctx context.Context, productID string) string {
	body, err := c.serpGet(ctx, url.Values{
		"engine":     {"google_shopping_product"},
		"product_id": {productID},
	})
	if err != nil {
		return ""
	}

	var parsed struct {
		Images []struct {
			Link      string `json:"link"`
			Thumbnail string `json:"thumbnail"`
		} `json:"images"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Images) == 0 {
		return ""
	}
	if parsed.Images[0].Link != "" {
		return parsed.Images[0].Link
	}
	return parsed.Images[0].Thumbnail
}

func (c *Client) serpGet(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("api_key", c.APIKey)

	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("serpapi status %d: %s", resp.StatusCode, snippet)
	}
	return io.ReadAll(resp.Body)
}

// pickRetailerURL prefers a link pointing at the retailer over Google or
// SerpAPI redirect links.
func pickRetailerURL(r serpResult) string {
	for _, candidate := range []string{r.Link, r.ProductLink} {
		if isExternalRetailerURL(candidate) {
			return candidate
		}
	}
	if r.Link != "" {
		return r.Link
	}
	if r.ProductLink != "" {
		return r.ProductLink
	}
	return "#"
}

func isExternalRetailerURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	return !strings.Contains(host, "google.") && !strings.Contains(host, "serpapi.com")
}
