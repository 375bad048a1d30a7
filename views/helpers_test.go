package views

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raushankrgupta/fitly-wardrobe/api"
	"github.com/raushankrgupta/fitly-wardrobe/cache"
	"github.com/raushankrgupta/fitly-wardrobe/inflight"
)

type fixture struct {
	svc   *api.Services
	cache *cache.QueryCache
	guard *inflight.Guard
}

func newFixture(t *testing.T, h http.Handler) *fixture {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &fixture{
		svc:   api.NewServices(api.NewClient(srv.URL, 0)),
		cache: cache.New(),
		guard: &inflight.Guard{},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
