package api

import (
	"context"
	"net/url"

	"github.com/raushankrgupta/fitly-wardrobe/models"
)

// CalendarService stores one outfit per date
type CalendarService struct {
	c *Client
}

func NewCalendarService(c *Client) *CalendarService {
	return &CalendarService{c: c}
}

func calendarPath(date string) string {
	return "/api/calendar/outfits/" + url.PathEscape(date)
}

// Save creates or overwrites the outfit for outfit.OutfitDate.
func (s *CalendarService) Save(ctx context.Context, outfit models.CalendarOutfit) (*models.CalendarOutfit, error) {
	var saved models.CalendarOutfit
	if err := s.c.Post(ctx, "/api/calendar/outfits", outfit, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *CalendarService) List(ctx context.Context) ([]models.CalendarOutfit, error) {
	var resp struct {
		Outfits []models.CalendarOutfit `json:"outfits"`
	}
	if err := s.c.Get(ctx, "/api/calendar/outfits", &resp); err != nil {
		return nil, err
	}
	return resp.Outfits, nil
}

func (s *CalendarService) Get(ctx context.Context, date string) (*models.CalendarOutfit, error) {
	var outfit models.CalendarOutfit
	if err := s.c.Get(ctx, calendarPath(date), &outfit); err != nil {
		return nil, err
	}
	return &outfit, nil
}

func (s *CalendarService) Delete(ctx context.Context, date string) error {
	return s.c.Delete(ctx, calendarPath(date), nil)
}
