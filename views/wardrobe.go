package views

import (
	"context"

	"github.com/raushankrgupta/fitly-wardrobe/api"
	"github.com/raushankrgupta/fitly-wardrobe/cache"
	"github.com/raushankrgupta/fitly-wardrobe/models"
	"github.com/raushankrgupta/fitly-wardrobe/utils"
	"go.uber.org/zap"
)

const (
	wardrobeLoadFailed   = "Failed to load wardrobe."
	wardrobeUploadFailed = "Upload failed. Please try again."
	wardrobeDeleteFailed = "Could not delete item."
	importFailed         = "Could not import that product."
)

// ProductImporter scrapes a shop URL into a product.
type ProductImporter interface {
	Import(ctx context.Context, url string) (*models.Product, error)
}

// WardrobeView is the tagged wardrobe grid.
type WardrobeView struct {
	status

	wardrobe    WardrobeAPI
	cache       *cache.QueryCache
	importer    ProductImporter
	cropMaxSide int

	// Fetch downloads imported product images.
	Fetch func(ctx context.Context, pathOrURL string) ([]byte, string, error)
}

// NewWardrobeView creates the view. importer may be nil when import is unavailable.
func NewWardrobeView(wardrobe WardrobeAPI, c *cache.QueryCache, importer ProductImporter, cropMaxSide int) *WardrobeView {
	return &WardrobeView{
		wardrobe:    wardrobe,
		cache:       c,
		importer:    importer,
		cropMaxSide: cropMaxSide,
		Fetch:       utils.FetchImage,
	}
}

// Load fetches every item; filtering happens locally.
func (v *WardrobeView) Load(ctx context.Context) error {
	if !v.begin() {
		return ErrInFlight
	}
	defer v.end()

	items, err := v.wardrobe.List(ctx, "")
	if err != nil {
		return v.fail(err, wardrobeLoadFailed)
	}
	v.cache.Set(cache.KeyWardrobeItems, items)
	return nil
}

// Items returns every cached item.
func (v *WardrobeView) Items() []models.WardrobeItem {
	items, _ := cache.Load[[]models.WardrobeItem](v.cache, cache.KeyWardrobeItems)
	return append([]models.WardrobeItem(nil), items...)
}

// Filter returns the cached items of group; an empty group returns all.
func (v *WardrobeView) Filter(group models.CategoryGroup) []models.WardrobeItem {
	items := v.Items()
	if group == "" {
		return items
	}
	out := make([]models.WardrobeItem, 0, len(items))
	for _, it := range items {
		if it.CategoryGroup == group {
			out = append(out, it)
		}
	}
	return out
}

// GroupCounts counts cached items per category group. Every group is present.
func (v *WardrobeView) GroupCounts() map[models.CategoryGroup]int {
	counts := make(map[models.CategoryGroup]int, len(models.AllCategoryGroups()))
	for _, g := range models.AllCategoryGroups() {
		counts[g] = 0
	}
	for _, it := range v.Items() {
		counts[it.CategoryGroup]++
	}
	return counts
}

// Upload sends photos for auto-tagging and adds the returned items to the grid.
func (v *WardrobeView) Upload(ctx context.Context, files []api.File) ([]models.WardrobeItem, error) {
	if len(files) == 0 {
		return nil, v.fail(invalid("images", "Select at least one photo."), "")
	}
	if !v.begin() {
		return nil, ErrInFlight
	}
	defer v.end()
	return v.upload(ctx, files)
}

func (v *WardrobeView) upload(ctx context.Context, files []api.File) ([]models.WardrobeItem, error) {
	files, err := prepareUploads(files, v.cropMaxSide)
	if err != nil {
		return nil, v.fail(err, "Could not read one of the photos.")
	}

	items, err := v.wardrobe.Upload(ctx, files)
	if err != nil {
		return nil, v.fail(err, wardrobeUploadFailed)
	}

	if !cache.Patch(v.cache, cache.KeyWardrobeItems, func(cur []models.WardrobeItem) []models.WardrobeItem {
		return append(append([]models.WardrobeItem(nil), items...), cur...)
	}) {
		v.cache.Set(cache.KeyWardrobeItems, items)
	}
	v.cache.Invalidate(cache.KeyWardrobeTags)
	return items, nil
}

// Delete removes one item.
func (v *WardrobeView) Delete(ctx context.Context, id string) error {
	if err := v.wardrobe.Delete(ctx, id); err != nil {
		return v.fail(err, wardrobeDeleteFailed)
	}
	v.clearError()
	cache.Patch(v.cache, cache.KeyWardrobeItems, func(cur []models.WardrobeItem) []models.WardrobeItem {
		out := make([]models.WardrobeItem, 0, len(cur))
		for _, it := range cur {
			if it.ID != id {
				out = append(out, it)
			}
		}
		return out
	})
	v.cache.Invalidate(cache.KeyWardrobeTags)
	return nil
}

// Tags returns the tag listing, from cache when present.
func (v *WardrobeView) Tags(ctx context.Context) ([]models.Tag, error) {
	if tags, ok := cache.Load[[]models.Tag](v.cache, cache.KeyWardrobeTags); ok {
		return tags, nil
	}
	tags, err := v.wardrobe.Tags(ctx)
	if err != nil {
		return nil, v.fail(err, wardrobeLoadFailed)
	}
	v.cache.Set(cache.KeyWardrobeTags, tags)
	return tags, nil
}

// ImportFromURL scrapes a shop product page and uploads its first image.
func (v *WardrobeView) ImportFromURL(ctx context.Context, url string) ([]models.WardrobeItem, error) {
	if v.importer == nil {
		return nil, v.fail(invalid("url", "Product import is not available."), "")
	}
	if url == "" {
		return nil, v.fail(invalid("url", "Enter a product link."), "")
	}
	if !v.begin() {
		return nil, ErrInFlight
	}
	defer v.end()

	product, err := v.importer.Import(ctx, url)
	if err != nil {
		return nil, v.fail(err, importFailed)
	}
	if len(product.Images) == 0 {
		return nil, v.fail(invalid("url", "That page has no product images."), "")
	}

	imageURL := product.Images[0]
	data, contentType, err := v.Fetch(ctx, imageURL)
	if err != nil {
		utils.Logger.Warn("product image download failed", zap.String("image", imageURL), zap.Error(err))
		return nil, v.fail(err, importFailed)
	}

	file := api.File{Name: utils.ImageFileName(imageURL, 0), ContentType: contentType, Data: data}
	return v.upload(ctx, []api.File{file})
}
