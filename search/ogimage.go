package search

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// fetchOGImage scrapes a retailer page's og:image (or twitter:image) meta tag
// as the last resort for a result that arrived without a thumbnail.
func fetchOGImage(ctx context.Context, client *http.Client, pageURL string) string {
	if pageURL == "" || pageURL == "#" {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 scootpieBot")
	req.Header.Set("Accept", "text/html")

	resp, err := client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return ""
	}

	img, ok := doc.Find(`meta[property="og:image"]`).Attr("content")
	if !ok || img == "" {
		img, _ = doc.Find(`meta[name="twitter:image"]`).Attr("content")
	}
	if img == "" {
		return ""
	}

	if strings.HasPrefix(img, "//") {
		return "https:" + img
	}
	if strings.HasPrefix(img, "/") {
		base, err := url.Parse(pageURL)
		if err != nil {
			return img
		}
		ref, err := url.Parse(img)
		if err != nil {
			return img
		}
		return base.ResolveReference(ref).String()
	}
	return img
}
