package api

import (
	"context"
	"net/url"

	"github.com/raushankrgupta/fitly-wardrobe/models"
)

// WardrobeService covers wardrobe items and their tags
type WardrobeService struct {
	c *Client
}

func NewWardrobeService(c *Client) *WardrobeService {
	return &WardrobeService{c: c}
}

// Upload sends clothing photos; the backend tags them and returns the created items.
func (s *WardrobeService) Upload(ctx context.Context, images []File) ([]models.WardrobeItem, error) {
	form := NewMultipart()
	for _, img := range images {
		form.AddFile("images", img)
	}
	var resp struct {
		Items []models.WardrobeItem `json:"items"`
	}
	if err := s.c.Post(ctx, "/api/wardrobe/items", form, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// List returns the wardrobe, optionally limited to one category group.
func (s *WardrobeService) List(ctx context.Context, group models.CategoryGroup) ([]models.WardrobeItem, error) {
	path := "/api/wardrobe/items"
	if group != "" {
		path += "?category_group=" + url.QueryEscape(string(group))
	}
	var resp struct {
		Items []models.WardrobeItem `json:"items"`
	}
	if err := s.c.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (s *WardrobeService) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, "/api/wardrobe/items/"+url.PathEscape(id), nil)
}

func (s *WardrobeService) Tags(ctx context.Context) ([]models.Tag, error) {
	var resp struct {
		Tags []models.Tag `json:"tags"`
	}
	if err := s.c.Get(ctx, "/api/wardrobe/tags", &resp); err != nil {
		return nil, err
	}
	return resp.Tags, nil
}
