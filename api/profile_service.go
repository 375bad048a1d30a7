package api

import (
	"context"

	"github.com/raushankrgupta/fitly-wardrobe/models"
)

// UpdateNameRequest is the name-edit payload
type UpdateNameRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ProfileService talks to /api/users/me
type ProfileService struct {
	c *Client
}

func NewProfileService(c *Client) *ProfileService {
	return &ProfileService{c: c}
}

func (s *ProfileService) Get(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.c.Get(ctx, "/api/users/me", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileService) UpdateName(ctx context.Context, req UpdateNameRequest) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.c.Put(ctx, "/api/users/me", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UploadImage replaces the profile picture.
func (s *ProfileService) UploadImage(ctx context.Context, image File) (*models.UserProfile, error) {
	var profile models.UserProfile
	form := NewMultipart().AddFile("image", image)
	if err := s.c.Post(ctx, "/api/users/me/image", form, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
