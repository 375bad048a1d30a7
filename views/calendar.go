package views

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/raushankrgupta/fitly-wardrobe/cache"
	"github.com/raushankrgupta/fitly-wardrobe/models"
)

const (
	calendarLoadFailed   = "Failed to load calendar."
	calendarSaveFailed   = "Could not save outfit."
	calendarDeleteFailed = "Could not remove outfit."
	badDateMessage       = "Pick a valid date (YYYY-MM-DD)."
)

// CalendarView maps dates to planned outfits. The list under cache.KeyCalendarOutfits
// is rebuilt from the backend on every refresh, one outfit per date, ordered by date.
type CalendarView struct {
	status

	calendar CalendarAPI
	cache    *cache.QueryCache
}

func NewCalendarView(calendar CalendarAPI, c *cache.QueryCache) *CalendarView {
	return &CalendarView{calendar: calendar, cache: c}
}

// Refresh reloads the full outfit list.
func (v *CalendarView) Refresh(ctx context.Context) error {
	if !v.begin() {
		return ErrInFlight
	}
	defer v.end()
	return v.refresh(ctx)
}

func (v *CalendarView) refresh(ctx context.Context) error {
	outfits, err := v.calendar.List(ctx)
	if err != nil {
		return v.fail(err, calendarLoadFailed)
	}

	byDate := make(map[string]models.CalendarOutfit, len(outfits))
	for _, o := range outfits {
		byDate[o.OutfitDate] = o
	}
	list := make([]models.CalendarOutfit, 0, len(byDate))
	for _, o := range byDate {
		list = append(list, o)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].OutfitDate < list[j].OutfitDate })

	v.cache.Set(cache.KeyCalendarOutfits, list)
	return nil
}

// Save stores the outfit for its date, replacing any earlier one, then refreshes.
func (v *CalendarView) Save(ctx context.Context, outfit models.CalendarOutfit) (*models.CalendarOutfit, error) {
	if err := models.ValidateDate(outfit.OutfitDate); err != nil {
		return nil, v.fail(invalid("date", badDateMessage), "")
	}
	if !v.begin() {
		return nil, ErrInFlight
	}
	defer v.end()

	saved, err := v.calendar.Save(ctx, outfit)
	if err != nil {
		return nil, v.fail(err, calendarSaveFailed)
	}
	if err := v.refresh(ctx); err != nil {
		return saved, err
	}
	return saved, nil
}

// Delete removes the outfit planned for date.
func (v *CalendarView) Delete(ctx context.Context, date string) error {
	if err := models.ValidateDate(date); err != nil {
		return v.fail(invalid("date", badDateMessage), "")
	}
	if err := v.calendar.Delete(ctx, date); err != nil {
		return v.fail(err, calendarDeleteFailed)
	}
	v.clearError()

	cache.Patch(v.cache, cache.KeyCalendarOutfits, func(cur []models.CalendarOutfit) []models.CalendarOutfit {
		out := make([]models.CalendarOutfit, 0, len(cur))
		for _, o := range cur {
			if o.OutfitDate != date {
				out = append(out, o)
			}
		}
		return out
	})
	return nil
}

// OutfitFor returns the outfit planned for date.
func (v *CalendarView) OutfitFor(date string) (models.CalendarOutfit, bool) {
	for _, o := range v.Outfits() {
		if o.OutfitDate == date {
			return o, true
		}
	}
	return models.CalendarOutfit{}, false
}

// Outfits returns every planned outfit ordered by date.
func (v *CalendarView) Outfits() []models.CalendarOutfit {
	outfits, _ := cache.Load[[]models.CalendarOutfit](v.cache, cache.KeyCalendarOutfits)
	return append([]models.CalendarOutfit(nil), outfits...)
}

// Month lists the dates in year/month that have an outfit, in order.
func (v *CalendarView) Month(year int, month time.Month) []string {
	prefix := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-")
	var dates []string
	for _, o := range v.Outfits() {
		if strings.HasPrefix(o.OutfitDate, prefix) {
			dates = append(dates, o.OutfitDate)
		}
	}
	return dates
}
