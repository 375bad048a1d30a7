package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxImageBytes caps a single downloaded image.
const maxImageBytes = 20 << 20

// ErrImageTooLarge is returned for images over maxImageBytes.
var ErrImageTooLarge = fmt.Errorf("image exceeds %d bytes", maxImageBytes)

// FetchImage reads an image from a local path or an http(s) URL and returns its bytes and content type.
func FetchImage(ctx context.Context, pathOrURL string) ([]byte, string, error) {
	if !strings.HasPrefix(pathOrURL, "http") {
		data, err := os.ReadFile(pathOrURL)
		if err != nil {
			return nil, "", err
		}
		return data, http.DetectContentType(data), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pathOrURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch image, status: %d", resp.StatusCode)
	}

	if resp.ContentLength > maxImageBytes {
		return nil, "", ErrImageTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) > maxImageBytes {
		return nil, "", ErrImageTooLarge
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}

// ImageFileName derives a unique file name for an image URL or path.
func ImageFileName(pathOrURL string, i int) string {
	name := path.Base(pathOrURL)
	if idx := strings.IndexAny(name, "?#"); idx >= 0 {
		name = name[:idx]
	}
	if name == "" || name == "." || name == "/" || len(name) > 200 {
		name = fmt.Sprintf("image_%d.jpg", i)
	}
	if filepath.Ext(name) == "" {
		name += ".jpg"
	}
	return fmt.Sprintf("%s_%s", uuid.NewString()[:8], name)
}
