package api

import (
	"context"

	"github.com/raushankrgupta/fitly-wardrobe/models"
)

// RecommendRequest asks the stylist for an outfit
type RecommendRequest struct {
	Prompt      string   `json:"prompt"`
	Categories  []string `json:"categories,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Weather     string   `json:"weather,omitempty"`
}

// StylingService calls the AI recommendation endpoint
type StylingService struct {
	c *Client
}

func NewStylingService(c *Client) *StylingService {
	return &StylingService{c: c}
}

func (s *StylingService) Recommend(ctx context.Context, req RecommendRequest) (*models.Recommendation, error) {
	var rec models.Recommendation
	if err := s.c.Post(ctx, "/api/styling/recommend", req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
