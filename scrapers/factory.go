package scrapers

import (
	"context"
	"errors"
	"fmt"

	"github.com/raushankrgupta/fitly-wardrobe/models"
	"github.com/raushankrgupta/fitly-wardrobe/scrapers/base"
	"github.com/raushankrgupta/fitly-wardrobe/scrapers/flipkart"
	"github.com/raushankrgupta/fitly-wardrobe/scrapers/generic"
	"github.com/raushankrgupta/fitly-wardrobe/scrapers/myntra"
	"github.com/raushankrgupta/fitly-wardrobe/utils"
	"go.uber.org/zap"
)

// ErrNoImages is returned when a product page yields nothing to upload.
var ErrNoImages = errors.New("no product images found")

// GetScraper returns the appropriate scraper and the resolved URL.
// Shops without a dedicated scraper fall back to OpenGraph tags.
func GetScraper(ctx context.Context, url string, opts base.Options) (Scraper, string, error) {
	// Resolve shortened URLs (e.g., myntr.it, bit.ly)
	resolvedURL, err := utils.ResolveShortenedURL(ctx, url)
	if err != nil {
		return nil, url, fmt.Errorf("error resolving url: %w", err)
	}

	// Register scrapers here, most specific first
	scrapers := []Scraper{
		flipkart.NewFlipkartScraper(opts),
		myntra.NewMyntraScraper(opts),
		generic.NewGenericScraper(opts),
	}

	for _, s := range scrapers {
		if s.CanScrape(resolvedURL) {
			return s, resolvedURL, nil
		}
	}

	return nil, resolvedURL, fmt.Errorf("no scraper found for url: %s", resolvedURL)
}

// Importer turns a shop URL into a product ready for wardrobe upload.
type Importer struct {
	Options base.Options
}

// NewImporter creates an importer; headless enables the browser fallback.
func NewImporter(headless bool) *Importer {
	return &Importer{Options: base.Options{Headless: headless}}
}

// Import scrapes url and returns the product with at least one image.
func (i *Importer) Import(ctx context.Context, url string) (*models.Product, error) {
	scraper, resolvedURL, err := GetScraper(ctx, url, i.Options)
	if err != nil {
		return nil, err
	}

	product, err := scraper.ScrapeProduct(ctx, resolvedURL)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", resolvedURL, err)
	}
	product.SourceURL = resolvedURL

	if len(product.Images) == 0 {
		return nil, ErrNoImages
	}

	utils.Logger.Info("product imported",
		zap.String("url", resolvedURL),
		zap.String("title", product.Title),
		zap.Int("images", len(product.Images)),
	)
	return product, nil
}
