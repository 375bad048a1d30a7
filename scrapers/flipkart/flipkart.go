package flipkart

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/raushankrgupta/fitly-wardrobe/models"
	"github.com/raushankrgupta/fitly-wardrobe/scrapers/base"
)

type FlipkartScraper struct {
	*base.BaseScraper
}

func NewFlipkartScraper(opts base.Options) *FlipkartScraper {
	return &FlipkartScraper{
		BaseScraper: base.NewBaseScraper(opts),
	}
}

func (s *FlipkartScraper) CanScrape(url string) bool {
	return strings.Contains(url, "flipkart.com")
}

func (s *FlipkartScraper) ScrapeProduct(ctx context.Context, url string) (*models.Product, error) {
	doc, err := s.FetchDocument(ctx, url, func(doc *goquery.Document) bool {
		return base.IsValidDocument(doc) && (doc.Find("h1").Length() > 0 || doc.Find(".B_NuCI").Length() > 0)
	})
	if err != nil {
		return nil, err
	}
	return Parse(doc), nil
}

// Parse extracts a product from a Flipkart product page.
func Parse(doc *goquery.Document) *models.Product {
	product := &models.Product{}

	product.Title = strings.TrimSpace(doc.Find(".B_NuCI").Text())
	if product.Title == "" {
		product.Title = strings.TrimSpace(doc.Find("h1.yhB1nd span").Text())
	}
	if product.Title == "" {
		product.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	product.Description = strings.TrimSpace(doc.Find("div._1mXcCf").Text())
	if product.Description == "" {
		product.Description = strings.TrimSpace(doc.Find("div.yN5-Ad").Text())
	}

	// breadcrumb: Home > Clothing > Men > T-Shirts > ...
	crumbs := doc.Find("div._1MR4o5 a, div.r2CdBx a")
	if crumbs.Length() > 1 {
		product.Category = strings.TrimSpace(crumbs.Eq(crumbs.Length() - 2).Text())
	}

	// thumbnails are 128px; the same path serves 832px
	doc.Find("ul._3GnUWp li._20Gt85, ul.ZqtVYK li").Each(func(i int, s *goquery.Selection) {
		img := s.Find("img").AttrOr("src", "")
		if img != "" {
			product.Images = append(product.Images, strings.Replace(img, "/128/128/", "/832/832/", 1))
		}
	})

	if len(product.Images) == 0 {
		if mainImg := doc.Find("img._396cs4, img.DByuf4").AttrOr("src", ""); mainImg != "" {
			product.Images = append(product.Images, mainImg)
		}
	}

	return product
}
