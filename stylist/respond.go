package stylist

import (
	"fmt"
	"strings"

	"github.com/scootpie/stylist-server/models"
)

// BuildResponseText picks the assistant reply template for a turn. Templates
// distinguish replacement from pure addition, first outfits, and the
// no-matches case, which carries a gender-aware hint from the profile.
func BuildResponseText(message string, merged, incoming, prior []models.OutfitItem, gender string) string {
	if len(merged) == 0 {
		hint := ""
		switch gender {
		case "", "prefer-not-to-say":
			// no hint
		case "men":
			hint = " for men"
		case "women":
			hint = " for women"
		default:
			hint = " for you"
		}
		return fmt.Sprintf("I couldn't find good matches%s for %q. Try something like 'red crop top from Zara', 'black jeans from H&M', or include specific brands and colors.", hint, message)
	}

	names := make([]string, 0, len(merged))
	for _, item := range merged {
		names = append(names, fmt.Sprintf("%s (%s)", item.Name, NormalizeCategory(item.Category)))
	}
	itemsList := strings.Join(names, ", ")

	if len(incoming) > 0 && len(prior) > 0 {
		if HasReplacement(prior, incoming) {
			return fmt.Sprintf("Updated your outfit! Now wearing: %s. Want to add or replace anything else?", itemsList)
		}
		return fmt.Sprintf("Added to your outfit! Now wearing: %s. Keep building your look by adding more items!", itemsList)
	}
	return fmt.Sprintf("Here's your look with: %s. Add more items to complete your outfit (e.g., 'black jeans', 'white sneakers')!", itemsList)
}
