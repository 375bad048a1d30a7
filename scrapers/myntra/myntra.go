package myntra

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/raushankrgupta/fitly-wardrobe/models"
	"github.com/raushankrgupta/fitly-wardrobe/scrapers/base"
)

const stateMarker = "window.__myx ="

type MyntraScraper struct {
	*base.BaseScraper
}

func NewMyntraScraper(opts base.Options) *MyntraScraper {
	return &MyntraScraper{
		BaseScraper: base.NewBaseScraper(opts),
	}
}

func (s *MyntraScraper) CanScrape(url string) bool {
	return strings.Contains(url, "myntra.com")
}

func (s *MyntraScraper) ScrapeProduct(ctx context.Context, url string) (*models.Product, error) {
	doc, err := s.FetchDocument(ctx, url, func(doc *goquery.Document) bool {
		return strings.Contains(doc.Text(), stateMarker) || doc.Find("h1").Length() > 0
	})
	if err != nil {
		return nil, err
	}
	return Parse(doc), nil
}

// pageState is the slice of the embedded page state the import needs.
type pageState struct {
	PdpData struct {
		Name      string `json:"name"`
		Analytics struct {
			ArticleType string `json:"articleType"`
		} `json:"analytics"`
		ProductDetails []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"productDetails"`
		Media struct {
			Albums []struct {
				Images []struct {
					Src string `json:"src"`
				} `json:"images"`
			} `json:"albums"`
		} `json:"media"`
	} `json:"pdpData"`
}

// Parse extracts a product from a Myntra product page, preferring the embedded JSON state.
func Parse(doc *goquery.Document) *models.Product {
	product := &models.Product{}

	if state, ok := extractState(doc); ok {
		pd := state.PdpData
		product.Title = pd.Name
		product.Category = pd.Analytics.ArticleType
		if len(pd.ProductDetails) > 0 {
			product.Description = strings.TrimSpace(pd.ProductDetails[0].Description)
		}
		for _, album := range pd.Media.Albums {
			for _, img := range album.Images {
				if img.Src != "" {
					product.Images = append(product.Images, img.Src)
				}
			}
		}
	}

	// Fallback to HTML parsing if JSON fails
	if product.Title == "" {
		product.Title = strings.TrimSpace(doc.Find(".pdp-title").Text())
		if name := strings.TrimSpace(doc.Find(".pdp-name").Text()); name != "" {
			product.Title = strings.TrimSpace(product.Title + " " + name)
		}
		product.Description = strings.TrimSpace(doc.Find(".pdp-product-description-content").Text())

		doc.Find(".image-grid-image").Each(func(i int, s *goquery.Selection) {
			if url := backgroundURL(s.AttrOr("style", "")); url != "" {
				product.Images = append(product.Images, url)
			}
		})
	}

	return product
}

func extractState(doc *goquery.Document) (pageState, bool) {
	var state pageState
	found := false
	doc.Find("script").EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, stateMarker)
		if idx < 0 {
			return true
		}
		raw := strings.TrimSpace(text[idx+len(stateMarker):])
		raw = strings.TrimSuffix(raw, ";")
		found = json.Unmarshal([]byte(raw), &state) == nil
		return !found
	})
	return state, found
}

// backgroundURL pulls the url out of `background-image: url("...")`.
func backgroundURL(style string) string {
	start := strings.Index(style, "url(")
	if start == -1 {
		return ""
	}
	start += len("url(")
	end := strings.Index(style[start:], ")")
	if end == -1 {
		return ""
	}
	return strings.Trim(style[start:start+end], "\"'")
}
