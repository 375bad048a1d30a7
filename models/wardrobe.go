package models

import (
	"fmt"
	"strings"
	"time"
)

// CategoryGroup partitions wardrobe items
type CategoryGroup string

const (
	UpperWear   CategoryGroup = "upper_wear"
	BottomWear  CategoryGroup = "bottom_wear"
	OuterWear   CategoryGroup = "outer_wear"
	Footwear    CategoryGroup = "footwear"
	Accessories CategoryGroup = "accessories"
)

// AllCategoryGroups returns the groups in display order
func AllCategoryGroups() []CategoryGroup {
	return []CategoryGroup{UpperWear, BottomWear, OuterWear, Footwear, Accessories}
}

// ParseCategoryGroup accepts the wire value or a spaced/hyphenated label ("Upper Wear").
func ParseCategoryGroup(s string) (CategoryGroup, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	for _, g := range AllCategoryGroups() {
		if string(g) == normalized {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown category group %q", s)
}

// Label is the human readable name of the group
func (g CategoryGroup) Label() string {
	switch g {
	case UpperWear:
		return "Upper Wear"
	case BottomWear:
		return "Bottom Wear"
	case OuterWear:
		return "Outer Wear"
	case Footwear:
		return "Footwear"
	case Accessories:
		return "Accessories"
	}
	return string(g)
}

// WardrobeItem is a single tagged clothing photo
type WardrobeItem struct {
	ID            string            `json:"id"`
	ImageURL      string            `json:"image_url"`
	Category      string            `json:"category"`
	CategoryGroup CategoryGroup     `json:"category_group"`
	Attributes    map[string]string `json:"attributes,omitempty"`
	IsSaved       bool              `json:"is_saved,omitempty"`
	SavedImageID  string            `json:"saved_image_id,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// Tag is one entry of the wardrobe tag listing
type Tag struct {
	Name          string        `json:"name"`
	CategoryGroup CategoryGroup `json:"category_group"`
	Count         int           `json:"count"`
}
