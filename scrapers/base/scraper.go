package base

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/raushankrgupta/fitly-wardrobe/utils"
	"go.uber.org/zap"
)

// Options controls how pages are fetched.
type Options struct {
	// Headless enables the chromedp fallback when plain HTTP yields nothing usable.
	Headless bool
}

// BaseScraper handles common scraping logic
type BaseScraper struct {
	Client  *http.Client
	Options Options
}

// NewBaseScraper creates a new BaseScraper instance
func NewBaseScraper(opts Options) *BaseScraper {
	return &BaseScraper{
		Client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				ForceAttemptHTTP2:     false,
				TLSNextProto:          make(map[string]func(string, *tls.Conn) http.RoundTripper),
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		Options: opts,
	}
}

// FetchDocument fetches the URL over HTTP and, when enabled, through headless Chrome.
// validator decides whether a fetched page carries the product.
func (b *BaseScraper) FetchDocument(ctx context.Context, url string, validator func(*goquery.Document) bool) (*goquery.Document, error) {
	// Strategy 1: HTTP Client (Fastest)
	doc, err := b.FetchDocumentHTTP(ctx, url)
	if err == nil {
		if validator(doc) {
			utils.Logger.Debug("http fetch succeeded", zap.String("url", url))
			return doc, nil
		}
		utils.Logger.Debug("http fetch yielded invalid content", zap.String("url", url))
	} else {
		utils.Logger.Debug("http fetch failed", zap.String("url", url), zap.Error(err))
	}

	if !b.Options.Headless {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("page at %s has no product content", url)
	}

	// Strategy 2: ChromeDP (Headless)
	utils.Logger.Debug("trying chromedp", zap.String("url", url))
	doc, err = b.FetchDocumentChromeDP(ctx, url)
	if err == nil && validator(doc) {
		return doc, nil
	}
	if err != nil {
		utils.Logger.Warn("chromedp fetch failed", zap.String("url", url), zap.Error(err))
	}

	return nil, fmt.Errorf("all strategies failed for %s", url)
}

// IsValidDocument rejects bot walls and near-empty pages.
func IsValidDocument(doc *goquery.Document) bool {
	title := strings.ToLower(strings.TrimSpace(doc.Find("title").Text()))
	if strings.Contains(title, "robot check") ||
		strings.Contains(title, "captcha") ||
		strings.Contains(title, "access denied") {
		return false
	}
	return doc.Find("body").Length() > 0
}

// FetchDocumentHTTP fetches the URL and returns a GoQuery document via standard HTTP
func (b *BaseScraper) FetchDocumentHTTP(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	// Common headers to mimic a real browser
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	req.Header.Set("Sec-Fetch-User", "?1")

	res, err := b.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d %s", res.StatusCode, res.Status)
	}

	return goquery.NewDocumentFromReader(res.Body)
}
