package stylist

import "github.com/scootpie/stylist-server/models"

// MergeOutfitItems combines newly chosen items with the prior outfit state.
// Incoming items displace every prior item sharing their normalized category;
// empty incoming returns prior unchanged. The merge is deliberately not
// commutative: whichever list is passed as incoming wins conflicts.
func MergeOutfitItems(prior, incoming []models.OutfitItem) []models.OutfitItem {
	if len(incoming) == 0 {
		return prior
	}

	newCategories := make(map[string]bool, len(incoming))
	for _, item := range incoming {
		newCategories[NormalizeCategory(item.Category)] = true
	}

	merged := make([]models.OutfitItem, 0, len(prior)+len(incoming))
	for _, item := range prior {
		if !newCategories[NormalizeCategory(item.Category)] {
			merged = append(merged, item)
		}
	}
	return append(merged, incoming...)
}

// HasReplacement reports whether any prior item's normalized category appears
// among the incoming items' categories.
func HasReplacement(prior, incoming []models.OutfitItem) bool {
	if len(prior) == 0 || len(incoming) == 0 {
		return false
	}
	newCategories := make(map[string]bool, len(incoming))
	for _, item := range incoming {
		newCategories[NormalizeCategory(item.Category)] = true
	}
	for _, item := range prior {
		if newCategories[NormalizeCategory(item.Category)] {
			return true
		}
	}
	return false
}
