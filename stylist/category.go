package stylist

import "strings"

// Normalized category buckets. These are the merge/conflict keys: an incoming
// item displaces any prior item that normalizes to the same bucket.
const (
	CategoryOuterwear   = "outerwear"
	CategoryTop         = "top"
	CategoryBottom      = "bottom"
	CategoryDress       = "dress"
	CategorySkirt       = "skirt"
	CategoryFootwear    = "footwear"
	CategoryBag         = "bag"
	CategoryHeadwear    = "headwear"
	CategoryAccessories = "accessories"
	CategoryOther       = "other"
)

// categoryBuckets is checked in order. No two buckets share a keyword, so the
// order only fixes an arbitrary tie that cannot occur with the current table.
var categoryBuckets = []struct {
	Bucket   string
	Keywords []string
}{
	{CategoryOuterwear, []string{"jacket", "coat", "puffer", "parka", "blazer", "cardigan"}},
	{CategoryTop, []string{"top", "t-shirt", "tshirt", "tee", "blouse", "shirt", "sweater", "hoodie"}},
	{CategoryBottom, []string{"jeans", "pants", "trousers", "chinos", "joggers"}},
	{CategoryDress, []string{"dress", "gown"}},
	{CategorySkirt, []string{"skirt"}},
	{CategoryFootwear, []string{"shoes", "sneakers", "boots", "sandals", "heels"}},
	{CategoryBag, []string{"bag", "purse", "backpack", "tote"}},
	{CategoryHeadwear, []string{"hat", "cap", "beanie"}},
	{CategoryAccessories, []string{"necklace", "bracelet", "earrings", "ring", "watch", "jewelry"}},
}

// NormalizeCategory maps a free-form category string to one of the fixed
// buckets. Unknown or empty input maps to "other". Idempotent: an already
// normalized value passes through unchanged.
func NormalizeCategory(category string) string {
	if category == "" {
		return CategoryOther
	}
	cat := strings.ToLower(category)
	if cat == CategoryOther {
		return CategoryOther
	}
	for _, b := range categoryBuckets {
		if cat == b.Bucket {
			return b.Bucket
		}
	}
	for _, b := range categoryBuckets {
		for _, kw := range b.Keywords {
			if strings.Contains(cat, kw) {
				return b.Bucket
			}
		}
	}
	return CategoryOther
}

// ResolveItemCategory picks the category recorded on a chosen item. The
// category parsed from the user's request wins: a product whose name carries
// no keyword (e.g. "Moncler Maya 70" for "red jacket") must still land in the
// bucket the user asked for, or merging cannot displace the prior item. Only
// when the request had no usable category does the product's own category,
// then name inference, decide.
func ResolveItemCategory(requestCategory, productCategory, productName, userMessage string) string {
	if c := NormalizeCategory(requestCategory); c != CategoryOther {
		return c
	}
	if c := NormalizeCategory(productCategory); c != CategoryOther {
		return c
	}
	return InferCategory(productName, userMessage)
}

// inferenceTable maps product-name keywords to the raw category recorded on a
// chosen item when the user's query did not name one. Raw categories feed
// NormalizeCategory for merging but stay human-readable for display.
var inferenceTable = []struct {
	Category string
	Keywords []string
}{
	{"jacket", []string{"jacket", "coat", "puffer", "parka", "blazer", "cardigan"}},
	{"jeans", []string{"jean", "pants", "trouser", "chino", "jogger"}},
	{"top", []string{"top", "t-shirt", "tshirt", "tee", "blouse", "shirt", "cami"}},
	{"dress", []string{"dress", "gown"}},
	{"skirt", []string{"skirt"}},
	{"shoes", []string{"shoe", "sneaker", "boot", "sandal", "heel"}},
	{"sweater", []string{"sweater", "hoodie", "sweatshirt", "pullover"}},
}

// InferCategory derives a raw category from a product name, falling back to
// the user's message for top-related keywords. External search results carry
// the useless category "search", so the name is the only reliable signal.
func InferCategory(productName, userMessage string) string {
	name := strings.ToLower(productName)
	msg := strings.ToLower(userMessage)
	for _, e := range inferenceTable {
		for _, kw := range e.Keywords {
			if strings.Contains(name, kw) {
				return e.Category
			}
			// The top bucket alone also checks the message, matching how
			// users ask for "a top" without it appearing in product names.
			if e.Category == "top" && strings.Contains(msg, kw) {
				return e.Category
			}
		}
	}
	return CategoryOther
}
