package models

// Product is what a shop page yields for wardrobe import
type Product struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Images      []string `json:"image_paths"`
	SourceURL   string   `json:"source_url"`
}
