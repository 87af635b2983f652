package stylist

import "github.com/scootpie/stylist-server/models"

// TryOnMode names the decision branch taken for one turn's image generation.
type TryOnMode string

const (
	// ModeReplacement regenerates from the original photo with the full
	// merged list: the cached composite still shows the replaced item.
	ModeReplacement TryOnMode = "replacement"
	// ModeAddition composes only the new items on top of the prior composite.
	ModeAddition TryOnMode = "addition"
	// ModeFirstTime composes all wearable items on the original photo.
	ModeFirstTime TryOnMode = "first-time"
)

// TryOnPlan is the orchestrator's decision for one turn: which base image to
// build on and which items to apply. An empty Items slice means image
// generation is skipped for the turn.
type TryOnPlan struct {
	Mode      TryOnMode
	BaseImage string
	Items     []models.OutfitItem
}

// ItemsWithImages filters out items lacking an image URL. Imageless items
// stay in the outfit list for display but never reach image generation.
func ItemsWithImages(items []models.OutfitItem) []models.OutfitItem {
	var out []models.OutfitItem
	for _, item := range items {
		if item.ImageURL != "" {
			out = append(out, item)
		}
	}
	return out
}

// PlanTryOn picks the base image and item subset for image generation. The
// three branches are mutually exclusive and checked in order: replacement,
// addition, first-time.
func PlanTryOn(prior, incoming, merged []models.OutfitItem, priorOutfitImage, primaryPhotoURL string) TryOnPlan {
	if HasReplacement(prior, incoming) {
		return TryOnPlan{
			Mode:      ModeReplacement,
			BaseImage: primaryPhotoURL,
			Items:     ItemsWithImages(merged),
		}
	}
	if priorOutfitImage != "" && len(prior) > 0 {
		return TryOnPlan{
			Mode:      ModeAddition,
			BaseImage: priorOutfitImage,
			Items:     ItemsWithImages(incoming),
		}
	}
	return TryOnPlan{
		Mode:      ModeFirstTime,
		BaseImage: primaryPhotoURL,
		Items:     ItemsWithImages(merged),
	}
}
