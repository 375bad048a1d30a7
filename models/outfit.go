package models

import (
	"fmt"
	"time"

	"github.com/raushankrgupta/fitly-wardrobe/utils"
)

// DateLayout is the ISO date used to key calendar outfits
const DateLayout = "2006-01-02"

// CalendarOutfit is the outfit planned for one date; one per date per user
type CalendarOutfit struct {
	ID                 string         `json:"id,omitempty"`
	OutfitDate         string         `json:"outfit_date"`
	Prompt             string         `json:"prompt"`
	CombinedImageURL   string         `json:"combined_image_url"`
	SelectedCategories []string       `json:"selected_categories"`
	Items              []WardrobeItem `json:"items"`
	Temperature        *float64       `json:"temperature,omitempty"`
	Weather            string         `json:"weather,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
}

// ValidateDate checks that s is a YYYY-MM-DD calendar date.
func ValidateDate(s string) error {
	if err := utils.Validate.Var(s, "required,datetime="+DateLayout); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return nil
}

// Recommendation is the AI styling answer for a free-text prompt
type Recommendation struct {
	Prompt             string         `json:"prompt"`
	CombinedImageURL   string         `json:"combined_image_url"`
	Items              []WardrobeItem `json:"items"`
	SelectedCategories []string       `json:"selected_categories"`
	Temperature        *float64       `json:"temperature,omitempty"`
	Weather            string         `json:"weather,omitempty"`
}
