package views

import (
	"context"
	"strings"

	"github.com/raushankrgupta/fitly-wardrobe/api"
	"github.com/raushankrgupta/fitly-wardrobe/models"
)

const recommendFailed = "Could not get a recommendation."

// StylingView asks the stylist for an outfit and can pin the answer to the calendar.
type StylingView struct {
	status

	styling  StylingAPI
	calendar *CalendarView
	last     *models.Recommendation
}

func NewStylingView(styling StylingAPI, calendar *CalendarView) *StylingView {
	return &StylingView{styling: styling, calendar: calendar}
}

// Recommend requests an outfit for prompt restricted to categories (all when empty).
func (v *StylingView) Recommend(ctx context.Context, prompt string, categories []string) (*models.Recommendation, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, v.fail(invalid("prompt", "Describe the occasion or look you want."), "")
	}
	groups := make([]string, 0, len(categories))
	for _, c := range categories {
		g, err := models.ParseCategoryGroup(c)
		if err != nil {
			return nil, v.fail(invalid("categories", err.Error()), "")
		}
		groups = append(groups, string(g))
	}
	if !v.begin() {
		return nil, ErrInFlight
	}
	defer v.end()

	rec, err := v.styling.Recommend(ctx, api.RecommendRequest{Prompt: prompt, Categories: groups})
	if err != nil {
		return nil, v.fail(err, recommendFailed)
	}
	if rec.Prompt == "" {
		rec.Prompt = prompt
	}

	v.mu.Lock()
	v.last = rec
	v.mu.Unlock()
	return rec, nil
}

// Last is the most recent recommendation, or nil.
func (v *StylingView) Last() *models.Recommendation {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.last
}

// SaveToCalendar plans the last recommendation for date.
func (v *StylingView) SaveToCalendar(ctx context.Context, date string) (*models.CalendarOutfit, error) {
	rec := v.Last()
	if rec == nil {
		return nil, v.fail(invalid("recommendation", "Get a recommendation first."), "")
	}
	outfit := models.CalendarOutfit{
		OutfitDate:         date,
		Prompt:             rec.Prompt,
		CombinedImageURL:   rec.CombinedImageURL,
		SelectedCategories: rec.SelectedCategories,
		Items:              rec.Items,
		Temperature:        rec.Temperature,
		Weather:            rec.Weather,
	}
	saved, err := v.calendar.Save(ctx, outfit)
	if err != nil {
		return nil, v.fail(err, calendarSaveFailed)
	}
	return saved, nil
}
