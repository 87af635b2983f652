package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scootpie/stylist-server/models"
)

type fakeCatalog struct {
	results []models.ProductCandidate
	err     error
	queries []string
}

func (f *fakeCatalog) SearchProducts(ctx context.Context, query string, limit int) ([]models.ProductCandidate, error) {
	f.queries = append(f.queries, query)
	return f.results, f.err
}

func newTestClient(serverURL string, catalog CatalogSearcher) *Client {
	c := NewClient("test-key", catalog)
	c.BaseURL = serverURL
	return c
}

func TestSearchExternalMapsResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "google_shopping_light", r.URL.Query().Get("engine"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "red jacket", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"shopping_results":[
			{"product_id":"p1","title":"Red Puffer Jacket","source":"Zara","price":"$89.90","thumbnail":"https://cdn/img1.jpg","link":"https://www.zara.com/jacket"},
			{"title":"Budget Jacket","store":"Outlet","price":"€40","thumbnail":"https://cdn/img2.jpg","link":"https://www.google.com/shopping/x","product_link":"https://outlet.example/jacket"}
		]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	candidates := client.Search(context.Background(), "red jacket", nil, 10)

	require.Len(t, candidates, 2)
	first := candidates[0]
	assert.Equal(t, "Red Puffer Jacket", first.Name)
	assert.Equal(t, "Zara", first.Brand)
	assert.Equal(t, "Zara", first.Retailer)
	assert.Equal(t, 89.90, first.Price)
	assert.Equal(t, "USD", first.Currency)
	assert.Equal(t, "search", first.Category)
	assert.Equal(t, "https://www.zara.com/jacket", first.ProductURL)
	assert.True(t, first.IsExternal)
	assert.Contains(t, first.ID, "serp-p1-")

	second := candidates[1]
	assert.Equal(t, "Outlet", second.Brand)
	assert.Equal(t, "EUR", second.Currency)
	// Google link is skipped in favor of the retailer product link.
	assert.Equal(t, "https://outlet.example/jacket", second.ProductURL)
}

func TestSearchCapsResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"shopping_results":[`)
		for i := 0; i < 15; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"product_id":"p%d","title":"Item %d","source":"Store","price":"$10","thumbnail":"https://cdn/%d.jpg","link":"https://store.example/%d"}`, i, i, i, i)
		}
		fmt.Fprint(w, `]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	candidates := client.Search(context.Background(), "jacket", nil, 10)
	assert.Len(t, candidates, 10)
}

func TestSearchFallsBackToCatalogOnEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"shopping_results":[]}`)
	}))
	defer server.Close()

	catalog := &fakeCatalog{results: []models.ProductCandidate{{Name: "Catalog Jacket"}}}
	client := newTestClient(server.URL, catalog)

	candidates := client.Search(context.Background(), "red jacket", nil, 10)

	require.Len(t, candidates, 1)
	assert.Equal(t, "Catalog Jacket", candidates[0].Name)
	require.Len(t, catalog.queries, 1)
}

func TestSearchFallsBackToCatalogOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	catalog := &fakeCatalog{results: []models.ProductCandidate{{Name: "Catalog Jacket"}}}
	client := newTestClient(server.URL, catalog)

	candidates := client.Search(context.Background(), "red jacket", nil, 10)

	require.Len(t, candidates, 1)
	assert.Equal(t, "Catalog Jacket", candidates[0].Name)
}

func TestSearchNoKeyskipsExternal(t *testing.T) {
	catalog := &fakeCatalog{results: []models.ProductCandidate{{Name: "Catalog Jacket"}}}
	client := NewClient("", catalog)
	client.BaseURL = "http://127.0.0.1:0" // would fail if ever contacted

	candidates := client.Search(context.Background(), "red jacket", nil, 10)

	require.Len(t, candidates, 1)
	assert.Equal(t, "Catalog Jacket", candidates[0].Name)
}

func TestSearchCatalogErrorCollapsesToEmpty(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("database down")}
	client := NewClient("", catalog)

	assert.Empty(t, client.Search(context.Background(), "red jacket", nil, 10))
}

func TestSearchAppliesPreferenceEnhancement(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		fmt.Fprint(w, `{"shopping_results":[{"title":"X","source":"S","price":"$1","thumbnail":"t","link":"https://s.example/x"}]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	prefs := &models.Preferences{Gender: "men", Sizes: &models.Sizes{Top: "M"}}
	client.Search(context.Background(), "blue shirt", prefs, 10)

	assert.Equal(t, "blue shirt men size M", gotQuery)
}
