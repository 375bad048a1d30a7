// Package generic scrapes any shop page that publishes OpenGraph product tags.
package generic

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/raushankrgupta/fitly-wardrobe/models"
	"github.com/raushankrgupta/fitly-wardrobe/scrapers/base"
)

type GenericScraper struct {
	*base.BaseScraper
}

func NewGenericScraper(opts base.Options) *GenericScraper {
	return &GenericScraper{
		BaseScraper: base.NewBaseScraper(opts),
	}
}

// CanScrape accepts any http(s) URL.
func (s *GenericScraper) CanScrape(rawURL string) bool {
	u, err := url.Parse(rawURL)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (s *GenericScraper) ScrapeProduct(ctx context.Context, rawURL string) (*models.Product, error) {
	doc, err := s.FetchDocument(ctx, rawURL, func(doc *goquery.Document) bool {
		return base.IsValidDocument(doc) && (meta(doc, "og:image") != "" || doc.Find("img[src]").Length() > 0)
	})
	if err != nil {
		return nil, err
	}
	return Parse(doc, rawURL), nil
}

// Parse reads OpenGraph and product meta tags, falling back to the page title and first image.
// Relative image URLs are resolved against pageURL.
func Parse(doc *goquery.Document, pageURL string) *models.Product {
	product := &models.Product{
		Title:       meta(doc, "og:title"),
		Description: meta(doc, "og:description"),
		Category:    meta(doc, "product:category"),
	}
	if product.Title == "" {
		product.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if product.Description == "" {
		product.Description = doc.Find(`meta[name="description"]`).AttrOr("content", "")
	}

	doc.Find(`meta[property="og:image"], meta[property="og:image:secure_url"]`).Each(func(i int, s *goquery.Selection) {
		product.Images = appendUnique(product.Images, resolve(pageURL, s.AttrOr("content", "")))
	})
	if len(product.Images) == 0 {
		if src := doc.Find("img[src]").First().AttrOr("src", ""); src != "" {
			product.Images = appendUnique(product.Images, resolve(pageURL, src))
		}
	}

	return product
}

func meta(doc *goquery.Document, property string) string {
	sel := doc.Find(`meta[property="` + property + `"]`)
	if sel.Length() == 0 {
		sel = doc.Find(`meta[name="` + property + `"]`)
	}
	return strings.TrimSpace(sel.First().AttrOr("content", ""))
}

func resolve(pageURL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return ref
	}
	u, err := base.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}

func appendUnique(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
