package api

import (
	"context"
	"net/url"

	"github.com/raushankrgupta/fitly-wardrobe/models"
)

type generateRequest struct {
	WardrobeItemID string `json:"wardrobe_item_id"`
}

type saveImageRequest struct {
	StudioImageID string `json:"studio_image_id"`
}

// StudioService generates enhanced item images against the token quota
type StudioService struct {
	c *Client
}

func NewStudioService(c *Client) *StudioService {
	return &StudioService{c: c}
}

// Generate consumes one token on the backend.
func (s *StudioService) Generate(ctx context.Context, wardrobeItemID string) (*models.StudioGenerateResponse, error) {
	var resp models.StudioGenerateResponse
	if err := s.c.Post(ctx, "/api/studio/images", generateRequest{WardrobeItemID: wardrobeItemID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *StudioService) List(ctx context.Context) (*models.StudioListResponse, error) {
	var resp models.StudioListResponse
	if err := s.c.Get(ctx, "/api/studio/images", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SavedImageService manages images kept from the studio
type SavedImageService struct {
	c *Client
}

func NewSavedImageService(c *Client) *SavedImageService {
	return &SavedImageService{c: c}
}

func (s *SavedImageService) List(ctx context.Context) ([]models.SavedImage, error) {
	var resp struct {
		Images []models.SavedImage `json:"images"`
	}
	if err := s.c.Get(ctx, "/api/saved-images", &resp); err != nil {
		return nil, err
	}
	return resp.Images, nil
}

func (s *SavedImageService) Save(ctx context.Context, studioImageID string) (*models.SavedImage, error) {
	var img models.SavedImage
	if err := s.c.Post(ctx, "/api/saved-images", saveImageRequest{StudioImageID: studioImageID}, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

func (s *SavedImageService) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, "/api/saved-images/"+url.PathEscape(id), nil)
}
