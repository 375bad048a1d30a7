package views

import (
	"context"
	"errors"
	"strings"

	"github.com/raushankrgupta/fitly-wardrobe/cache"
	"github.com/raushankrgupta/fitly-wardrobe/models"
	"github.com/raushankrgupta/fitly-wardrobe/utils"
	"go.uber.org/zap"
)

// ErrNoTokens is returned when the known studio balance is zero.
var ErrNoTokens = errors.New("no studio tokens left")

const (
	studioLoadFailed     = "Failed to load studio."
	studioGenerateFailed = "Could not enhance this item."
	studioSaveFailed     = "Could not save image."
	noTokensMessage      = "You have no studio tokens left."
	exportFailed         = "Export failed."
)

// Exporter copies image URLs to external storage and returns url -> object key.
type Exporter interface {
	Export(ctx context.Context, urls []string, prefix string) (map[string]string, error)
}

// StudioView lists AI-enhanced item renders and the user's token balance.
// The backend enforces the balance; the view only refuses early when it already knows it is zero.
type StudioView struct {
	status

	studio StudioAPI
	saved  SavedImageAPI
	cache  *cache.QueryCache

	tokens      int
	tokensKnown bool
}

func NewStudioView(studio StudioAPI, saved SavedImageAPI, c *cache.QueryCache) *StudioView {
	return &StudioView{studio: studio, saved: saved, cache: c}
}

// Load fetches the gallery, the balance and the saved images.
func (v *StudioView) Load(ctx context.Context) error {
	if !v.begin() {
		return ErrInFlight
	}
	defer v.end()

	list, err := v.studio.List(ctx)
	if err != nil {
		return v.fail(err, studioLoadFailed)
	}
	saved, err := v.saved.List(ctx)
	if err != nil {
		return v.fail(err, studioLoadFailed)
	}

	v.mu.Lock()
	v.tokens, v.tokensKnown = list.TokensRemaining, true
	v.mu.Unlock()
	v.cache.Set(cache.KeyStudioImages, list.Images)
	v.cache.Set(cache.KeySavedImages, saved)
	return nil
}

// Tokens is the last balance reported by the backend.
func (v *StudioView) Tokens() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tokens
}

func (v *StudioView) Images() []models.StudioImage {
	images, _ := cache.Load[[]models.StudioImage](v.cache, cache.KeyStudioImages)
	return append([]models.StudioImage(nil), images...)
}

func (v *StudioView) SavedImages() []models.SavedImage {
	saved, _ := cache.Load[[]models.SavedImage](v.cache, cache.KeySavedImages)
	return append([]models.SavedImage(nil), saved...)
}

// Generate enhances one wardrobe item and spends a token.
func (v *StudioView) Generate(ctx context.Context, wardrobeItemID string) (*models.StudioImage, error) {
	if strings.TrimSpace(wardrobeItemID) == "" {
		return nil, v.fail(invalid("item", "Pick a wardrobe item."), "")
	}
	v.mu.Lock()
	empty := v.tokensKnown && v.tokens <= 0
	v.mu.Unlock()
	if empty {
		return nil, v.fail(ErrNoTokens, noTokensMessage)
	}
	if !v.begin() {
		return nil, ErrInFlight
	}
	defer v.end()

	resp, err := v.studio.Generate(ctx, wardrobeItemID)
	if err != nil {
		return nil, v.fail(err, studioGenerateFailed)
	}

	v.mu.Lock()
	v.tokens, v.tokensKnown = resp.TokensRemaining, true
	v.mu.Unlock()

	image := resp.Image
	if !cache.Patch(v.cache, cache.KeyStudioImages, func(cur []models.StudioImage) []models.StudioImage {
		return append([]models.StudioImage{image}, cur...)
	}) {
		v.cache.Set(cache.KeyStudioImages, []models.StudioImage{image})
	}
	return &image, nil
}

// Save keeps a studio image in the saved gallery.
func (v *StudioView) Save(ctx context.Context, studioImageID string) (*models.SavedImage, error) {
	saved, err := v.saved.Save(ctx, studioImageID)
	if err != nil {
		return nil, v.fail(err, studioSaveFailed)
	}
	v.clearError()
	if !cache.Patch(v.cache, cache.KeySavedImages, func(cur []models.SavedImage) []models.SavedImage {
		return append([]models.SavedImage{*saved}, cur...)
	}) {
		v.cache.Set(cache.KeySavedImages, []models.SavedImage{*saved})
	}
	return saved, nil
}

// Unsave removes a saved image.
func (v *StudioView) Unsave(ctx context.Context, savedImageID string) error {
	if err := v.saved.Delete(ctx, savedImageID); err != nil {
		return v.fail(err, studioSaveFailed)
	}
	v.clearError()
	cache.Patch(v.cache, cache.KeySavedImages, func(cur []models.SavedImage) []models.SavedImage {
		out := make([]models.SavedImage, 0, len(cur))
		for _, s := range cur {
			if s.ID != savedImageID {
				out = append(out, s)
			}
		}
		return out
	})
	return nil
}

// Export copies every enhanced and saved image URL through exporter under prefix.
func (v *StudioView) Export(ctx context.Context, exporter Exporter, prefix string) (map[string]string, error) {
	seen := map[string]bool{}
	var urls []string
	add := func(u string) {
		if u != "" && !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	for _, img := range v.Images() {
		add(img.EnhancedImageURL)
	}
	for _, s := range v.SavedImages() {
		add(s.ImageURL)
	}
	if len(urls) == 0 {
		return nil, v.fail(invalid("images", "Nothing to export yet."), "")
	}

	keys, err := exporter.Export(ctx, urls, prefix)
	if err != nil {
		return nil, v.fail(err, exportFailed)
	}
	utils.Logger.Info("studio export finished", zap.Int("requested", len(urls)), zap.Int("exported", len(keys)))
	return keys, nil
}
