package models

import "time"

// StudioImage pairs an item photo with its AI-enhanced rendering
type StudioImage struct {
	ID               string    `json:"id"`
	WardrobeItemID   string    `json:"wardrobe_item_id"`
	OriginalImageURL string    `json:"original_image_url"`
	EnhancedImageURL string    `json:"enhanced_image_url"`
	CreatedAt        time.Time `json:"created_at"`
}

// StudioListResponse is the studio gallery with the remaining token balance
type StudioListResponse struct {
	Images          []StudioImage `json:"images"`
	TokensRemaining int           `json:"tokens_remaining"`
}

// StudioGenerateResponse is returned after one generation
type StudioGenerateResponse struct {
	Image           StudioImage `json:"image"`
	TokensRemaining int         `json:"tokens_remaining"`
}

// SavedImage is a studio image the user kept
type SavedImage struct {
	ID            string    `json:"id"`
	StudioImageID string    `json:"studio_image_id"`
	ImageURL      string    `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
}
