package views

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/raushankrgupta/fitly-wardrobe/api"
	"github.com/raushankrgupta/fitly-wardrobe/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) SetUser(ctx context.Context, user models.UserProfile) error {
	return m.Called(ctx, user).Error(0)
}

func TestProfileRename(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/users/me", func(w http.ResponseWriter, r *http.Request) {
		var req api.UpdateNameRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, http.StatusOK, models.UserProfile{ID: "u1", FirstName: req.FirstName, LastName: req.LastName})
	})
	f := newFixture(t, mux)
	store := &MockUserStore{}
	store.On("SetUser", mock.Anything, models.UserProfile{ID: "u1", FirstName: "Asha", LastName: "Rao"}).Return(nil).Once()
	v := NewProfileView(f.svc.Profile, store, f.cache, 0)

	user, err := v.Rename(context.Background(), " Asha ", "Rao")
	require.NoError(t, err)
	assert.Equal(t, "Asha", user.FirstName)

	cached, ok := v.Profile()
	require.True(t, ok)
	assert.Equal(t, "Rao", cached.LastName)
	store.AssertExpectations(t)
}

func TestProfileRenameValidation(t *testing.T) {
	v := NewProfileView(nil, nil, nil, 0)
	_, err := v.Rename(context.Background(), "Asha", " ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "last_name", verr.Field)
	assert.Equal(t, "Last name is required.", v.ErrorMessage())
}

func TestProfileUploadImage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/me/image", func(w http.ResponseWriter, r *http.Request) {
		_, fh, err := r.FormFile("image")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "image missing"})
			return
		}
		writeJSON(w, http.StatusOK, models.UserProfile{ID: "u1", ProfileImageURL: "https://cdn.test/" + fh.Filename})
	})
	f := newFixture(t, mux)
	v := NewProfileView(f.svc.Profile, nil, f.cache, 0)

	user, err := v.UploadImage(context.Background(), api.File{Name: "me.jpg", ContentType: "image/jpeg", Data: []byte("jpg")})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/me.jpg", user.ProfileImageURL)
}
