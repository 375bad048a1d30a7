package models

import "time"

// Post is an outfit shared to the social feed
type Post struct {
	ID            string    `json:"id"`
	Author        Author    `json:"author"`
	ImageURL      string    `json:"image_url"`
	ImageURLs     []string  `json:"image_urls,omitempty"`
	Text          string    `json:"text,omitempty"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	LikedBy       []string  `json:"liked_by"`
	SavedBy       []string  `json:"saved_by"`
	IsLiked       bool      `json:"is_liked"` // trusted as received, never recomputed
	IsSaved       bool      `json:"is_saved"`
	CreatedAt     time.Time `json:"created_at"`
}

// Comment belongs to exactly one post
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Author    Author    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedPage is one limit/offset page of the feed
type FeedPage struct {
	Posts   []Post `json:"posts"`
	HasMore bool   `json:"has_more"`
	Total   int    `json:"total"`
}

// LikeResult is the server-confirmed like state after a toggle
type LikeResult struct {
	IsLiked    bool `json:"is_liked"`
	LikesCount int  `json:"likes_count"`
}

// SaveResult is the server-confirmed save state after a toggle
type SaveResult struct {
	IsSaved bool `json:"is_saved"`
}
