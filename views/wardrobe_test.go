package views

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/raushankrgupta/fitly-wardrobe/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockImporter struct {
	mock.Mock
}

func (m *MockImporter) Import(ctx context.Context, url string) (*models.Product, error) {
	args := m.Called(ctx, url)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func wardrobeMux(uploads *int32) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/wardrobe/items", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"items": []models.WardrobeItem{
			{ID: "w1", CategoryGroup: models.UpperWear},
			{ID: "w2", CategoryGroup: models.UpperWear},
			{ID: "w3", CategoryGroup: models.Footwear},
		}})
	})
	mux.HandleFunc("POST /api/wardrobe/items", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(uploads, 1)
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad form"})
			return
		}
		var items []models.WardrobeItem
		for _, fh := range r.MultipartForm.File["images"] {
			items = append(items, models.WardrobeItem{ID: "new-" + fh.Filename, CategoryGroup: models.Accessories})
		}
		writeJSON(w, http.StatusCreated, map[string]any{"items": items})
	})
	mux.HandleFunc("DELETE /api/wardrobe/items/w2", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/wardrobe/tags", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"tags": []models.Tag{{Name: "denim", CategoryGroup: models.BottomWear, Count: 2}}})
	})
	return mux
}

func TestWardrobeLoadFilterAndCounts(t *testing.T) {
	var uploads int32
	f := newFixture(t, wardrobeMux(&uploads))
	v := NewWardrobeView(f.svc.Wardrobe, f.cache, nil, 0)
	ctx := context.Background()

	require.NoError(t, v.Load(ctx))
	assert.Len(t, v.Filter(""), 3)
	assert.Len(t, v.Filter(models.UpperWear), 2)
	assert.Empty(t, v.Filter(models.OuterWear))

	counts := v.GroupCounts()
	assert.Equal(t, 2, counts[models.UpperWear])
	assert.Equal(t, 1, counts[models.Footwear])
	assert.Equal(t, 0, counts[models.BottomWear])
	assert.Len(t, counts, 5)

	require.NoError(t, v.Delete(ctx, "w2"))
	assert.Len(t, v.Filter(models.UpperWear), 1)

	tags, err := v.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, "denim", tags[0].Name)
}

func TestWardrobeUploadPrepends(t *testing.T) {
	var uploads int32
	f := newFixture(t, wardrobeMux(&uploads))
	v := NewWardrobeView(f.svc.Wardrobe, f.cache, nil, 0)
	ctx := context.Background()
	require.NoError(t, v.Load(ctx))

	items, err := v.Upload(ctx, files(2))
	require.NoError(t, err)
	assert.Len(t, items, 2)
	all := v.Items()
	assert.Len(t, all, 5)
	assert.Equal(t, "new-look0.jpg", all[0].ID)

	_, err = v.Upload(ctx, nil)
	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&uploads))
}

func TestWardrobeImportFromURL(t *testing.T) {
	var uploads int32
	f := newFixture(t, wardrobeMux(&uploads))
	importer := &MockImporter{}
	importer.On("Import", mock.Anything, "https://shop.test/p/1").
		Return(&models.Product{Title: "Tote", Images: []string{"https://cdn.shop.test/tote.png?w=800"}}, nil)

	v := NewWardrobeView(f.svc.Wardrobe, f.cache, importer, 0)
	v.Fetch = func(ctx context.Context, pathOrURL string) ([]byte, string, error) {
		assert.Equal(t, "https://cdn.shop.test/tote.png?w=800", pathOrURL)
		return []byte("png"), "image/png", nil
	}

	items, err := v.ImportFromURL(context.Background(), "https://shop.test/p/1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Contains(t, items[0].ID, "tote.png")
	importer.AssertExpectations(t)
}

func TestWardrobeImportWithoutImporter(t *testing.T) {
	v := NewWardrobeView(nil, nil, nil, 0)
	_, err := v.ImportFromURL(context.Background(), "https://shop.test/p/1")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Product import is not available.", v.ErrorMessage())
}
