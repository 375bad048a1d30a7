package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/raushankrgupta/fitly-wardrobe/utils"
	"go.uber.org/zap"
)

// DefaultLoginPath is the route a 401 redirects to.
const DefaultLoginPath = "/login"

// Navigator is the route holder a 401 redirects through.
type Navigator interface {
	CurrentPath() string
	Redirect(path string)
}

// Client is a thin JSON client for the Fitly REST API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	LoginPath  string

	mu          sync.RWMutex
	tokenGetter func() string
	navigator   Navigator

	// held across the current-path check and the redirect so concurrent 401s redirect once
	redirectMu sync.Mutex
}

// NewClient creates a client for baseURL. A zero timeout means requests never time out.
func NewClient(baseURL string, timeout time.Duration) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout, Jar: jar},
		LoginPath:  DefaultLoginPath,
	}
}

// SetTokenGetter registers the source of the bearer token.
func (c *Client) SetTokenGetter(fn func() string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokenGetter = fn
}

// SetNavigator registers where 401 responses redirect.
func (c *Client) SetNavigator(n Navigator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.navigator = n
}

func (c *Client) token() string {
	c.mu.RLock()
	getter := c.tokenGetter
	c.mu.RUnlock()
	if getter == nil {
		return ""
	}
	return getter()
}

// Get issues a GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with body (JSON, or multipart when body is *Multipart).
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do sends one request. Failures are always *Error; nothing is retried.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	start := time.Now()

	var reader io.Reader
	contentType := "application/json"
	switch b := body.(type) {
	case nil:
	case *Multipart:
		data, ct, err := b.Encode()
		if err != nil {
			return fmt.Errorf("encode multipart body: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = ct
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		utils.Logger.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &Error{Message: NetworkErrorMessage, Status: 0, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Message: NetworkErrorMessage, Status: 0, Err: err}
	}

	utils.Logger.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode == http.StatusUnauthorized {
		c.redirectToLogin()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			Success: false,
			Message: errorMessage(resp.StatusCode, data),
			Status:  resp.StatusCode,
		}
	}

	if err := decodeBody(resp.Header.Get("Content-Type"), data, out); err != nil {
		return &Error{Message: DecodeErrorMessage, Status: resp.StatusCode, Err: err}
	}
	return nil
}

func (c *Client) redirectToLogin() {
	c.mu.RLock()
	nav := c.navigator
	c.mu.RUnlock()
	if nav == nil {
		return
	}

	loginPath := c.LoginPath
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}

	c.redirectMu.Lock()
	defer c.redirectMu.Unlock()
	if nav.CurrentPath() == loginPath {
		return
	}
	utils.Logger.Info("session rejected, redirecting to login", zap.String("from", nav.CurrentPath()))
	nav.Redirect(loginPath)
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func decodeBody(contentType string, data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if isJSON(contentType) {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	switch o := out.(type) {
	case *[]byte:
		*o = append((*o)[:0], data...)
	case *string:
		*o = string(data)
	}
	return nil
}

func errorMessage(status int, data []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "Request failed"
}
