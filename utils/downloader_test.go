package utils

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchImageHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, browserUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	data, contentType, err := FetchImage(context.Background(), srv.URL+"/shirt.png")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", contentType)
}

func TestFetchImageLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shirt.jpg")
	require.NoError(t, os.WriteFile(path, []byte("\xff\xd8\xff\xe0jpeg"), 0o600))

	data, contentType, err := FetchImage(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, data, 8)
	assert.Equal(t, "image/jpeg", contentType)
}

func TestFetchImageNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, _, err := FetchImage(context.Background(), srv.URL+"/missing.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status: 404")
}

func TestFetchImageRejectsOversize(t *testing.T) {
	body := bytes.Repeat([]byte{0xAB}, maxImageBytes+1024)

	t.Run("declared length", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/jpeg")
			w.Header().Set("Content-Length", strconv.Itoa(len(body)))
			_, _ = w.Write(body)
		}))
		defer srv.Close()

		data, _, err := FetchImage(context.Background(), srv.URL)
		assert.ErrorIs(t, err, ErrImageTooLarge)
		assert.Nil(t, data)
	})

	t.Run("chunked", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/jpeg")
			w.WriteHeader(http.StatusOK)
			for off := 0; off < len(body); off += 1 << 20 {
				_, _ = w.Write(body[off:min(off+1<<20, len(body))])
				w.(http.Flusher).Flush()
			}
		}))
		defer srv.Close()

		data, _, err := FetchImage(context.Background(), srv.URL)
		assert.ErrorIs(t, err, ErrImageTooLarge)
		assert.Nil(t, data)
	})
}

func TestFetchImageAtLimit(t *testing.T) {
	body := bytes.Repeat([]byte{0xAB}, maxImageBytes)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	data, _, err := FetchImage(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, data, maxImageBytes)
}

func TestImageFileName(t *testing.T) {
	name := ImageFileName("https://cdn.test/img/shirt.png?w=400", 0)
	assert.True(t, strings.HasSuffix(name, "_shirt.png"), name)
	assert.Len(t, strings.TrimSuffix(name, "_shirt.png"), 8)

	assert.True(t, strings.HasSuffix(ImageFileName("/tmp/photo", 0), "_photo.jpg"))
}

func TestResolveShortenedURLFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/s/abc", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/product/42", http.StatusFound)
	})
	mux.HandleFunc("/product/42", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	final, err := ResolveShortenedURL(context.Background(), srv.URL+"/s/abc")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/product/42", final)
}

func TestResolveShortenedURLFallsBackToGET(t *testing.T) {
	var mu sync.Mutex
	var methods []string
	mux := http.NewServeMux()
	mux.HandleFunc("/s/abc", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		methods = append(methods, r.Method)
		mu.Unlock()
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		http.Redirect(w, r, "/product/7", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/product/7", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	final, err := ResolveShortenedURL(context.Background(), srv.URL+"/s/abc")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/product/7", final)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{http.MethodHead, http.MethodGet}, methods)
}

func TestResolveShortenedURLNon200KeepsFinalURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	final, err := ResolveShortenedURL(context.Background(), srv.URL+"/blocked")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/blocked", final)
}

func TestResolveShortenedURLUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL + "/s/abc"
	srv.Close()

	final, err := ResolveShortenedURL(context.Background(), url)
	require.Error(t, err)
	assert.Equal(t, url, final)
}
