package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 0), srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		writeJSON(w, http.StatusOK, map[string]string{})
	})

	require.NoError(t, c.Get(context.Background(), "/api/users/me", nil))

	token := ""
	c.SetTokenGetter(func() string { return token })
	require.NoError(t, c.Get(context.Background(), "/api/users/me", nil))
	token = "tok-123"
	require.NoError(t, c.Get(context.Background(), "/api/users/me", nil))

	assert.Equal(t, []string{"", "", "Bearer tok-123"}, gotAuth)
}

func TestClientJSONBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusCreated, map[string]string{"echo": body["text"]})
	})

	var out struct {
		Echo string `json:"echo"`
	}
	require.NoError(t, c.Post(context.Background(), "/echo", map[string]string{"text": "hi"}, &out))
	assert.Equal(t, "hi", out.Echo)
}

func TestClientMultipartBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary="))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "summer look", r.FormValue("text"))
		files := r.MultipartForm.File["images"]
		require.Len(t, files, 2)
		assert.Equal(t, "a.jpg", files[0].Filename)
		assert.Equal(t, "image/jpeg", files[0].Header.Get("Content-Type"))
		f, err := files[1].Open()
		require.NoError(t, err)
		data, _ := io.ReadAll(f)
		assert.Equal(t, "png-bytes", string(data))
		w.WriteHeader(http.StatusNoContent)
	})

	form := NewMultipart().
		AddField("text", "summer look").
		AddFile("images", File{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("jpg-bytes")}).
		AddFile("images", File{Name: "b.png", Data: []byte("png-bytes")})
	require.NoError(t, c.Post(context.Background(), "/api/posts", form, nil))
}

func TestClientErrorShape(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		ctype   string
		message string
	}{
		{"message field", http.StatusBadRequest, `{"success":false,"message":"Prompt is required"}`, "application/json", "Prompt is required"},
		{"error field", http.StatusConflict, `{"error":"User with this email already exists"}`, "application/json", "User with this email already exists"},
		{"non json", http.StatusBadGateway, `<html>bad gateway</html>`, "text/html", "Bad Gateway"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tc.ctype)
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})

			err := c.Get(context.Background(), "/x", nil)
			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.False(t, apiErr.Success)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.message, apiErr.Message)
		})
	}
}

func TestClientNetworkFailure(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	err := c.Get(context.Background(), "/api/posts", nil)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, NetworkErrorMessage, apiErr.Message)
	assert.Equal(t, 0, StatusOf(err))
}

func TestClientNonJSONSuccess(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "pong")
	})

	var text string
	require.NoError(t, c.Get(context.Background(), "/ping", &text))
	assert.Equal(t, "pong", text)

	var ignored struct{ A int }
	require.NoError(t, c.Get(context.Background(), "/ping", &ignored))
}

func TestClientMalformedJSONSuccess(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"posts": [`)
	})

	var out struct{ Posts []string }
	err := c.Get(context.Background(), "/api/posts", &out)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusOK, apiErr.Status)
	assert.Equal(t, DecodeErrorMessage, apiErr.Message)
	var syntaxErr *json.SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
}

func TestClientUnauthorizedRedirectsOnce(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Token expired"})
	})
	history := NewHistory("/dashboard/feed")
	c.SetNavigator(history)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := c.Get(context.Background(), "/api/posts", nil)
			assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{"/login"}, history.Redirects())
	assert.Equal(t, "/login", history.CurrentPath())
}

func TestClientUnauthorizedOnLoginPageDoesNotRedirect(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
	})
	history := NewHistory("/login")
	c.SetNavigator(history)

	err := c.Post(context.Background(), "/api/auth/login", LoginRequest{Email: "a@b.c", Password: "x"}, nil)
	assert.Equal(t, "Invalid email or password", MessageOf(err, ""))
	assert.Empty(t, history.Redirects())
}

func TestHistoryOnRedirectHook(t *testing.T) {
	var got []string
	h := NewHistory("/wardrobe")
	h.OnRedirect = func(path string) { got = append(got, path) }

	h.Navigate("/calendar")
	h.Redirect("/login")

	assert.Equal(t, []string{"/login"}, got)
	assert.Equal(t, []string{"/login"}, h.Redirects())
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "boom", MessageOf(&Error{Message: "boom", Status: 500}, "fallback"))
	assert.Equal(t, "fallback", MessageOf(errors.New("raw"), "fallback"))
	assert.Equal(t, "raw", MessageOf(errors.New("raw"), ""))
	assert.Equal(t, -1, StatusOf(errors.New("raw")))
}
