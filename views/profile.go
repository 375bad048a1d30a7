package views

import (
	"context"
	"strings"

	"github.com/raushankrgupta/fitly-wardrobe/api"
	"github.com/raushankrgupta/fitly-wardrobe/cache"
	"github.com/raushankrgupta/fitly-wardrobe/models"
	"github.com/raushankrgupta/fitly-wardrobe/utils"
	"go.uber.org/zap"
)

const (
	profileLoadFailed   = "Failed to load profile."
	profileUpdateFailed = "Could not update profile."
)

// UserStore is the session surface the profile page updates.
type UserStore interface {
	SetUser(ctx context.Context, user models.UserProfile) error
}

// ProfileView shows and edits the signed-in user.
type ProfileView struct {
	status

	profile     ProfileAPI
	session     UserStore
	cache       *cache.QueryCache
	cropMaxSide int
}

func NewProfileView(profile ProfileAPI, session UserStore, c *cache.QueryCache, cropMaxSide int) *ProfileView {
	return &ProfileView{profile: profile, session: session, cache: c, cropMaxSide: cropMaxSide}
}

// Load fetches the profile and refreshes the session copy.
func (v *ProfileView) Load(ctx context.Context) (*models.UserProfile, error) {
	if !v.begin() {
		return nil, ErrInFlight
	}
	defer v.end()

	user, err := v.profile.Get(ctx)
	if err != nil {
		return nil, v.fail(err, profileLoadFailed)
	}
	v.store(ctx, *user)
	return user, nil
}

// Profile returns the cached profile.
func (v *ProfileView) Profile() (models.UserProfile, bool) {
	return cache.Load[models.UserProfile](v.cache, cache.KeyProfile)
}

type renameForm struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// Rename changes the display name. Both parts are required.
func (v *ProfileView) Rename(ctx context.Context, first, last string) (*models.UserProfile, error) {
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	if err := validateForm(renameForm{FirstName: first, LastName: last}, signupMessages); err != nil {
		return nil, v.fail(err, "")
	}
	if !v.begin() {
		return nil, ErrInFlight
	}
	defer v.end()

	user, err := v.profile.UpdateName(ctx, api.UpdateNameRequest{FirstName: first, LastName: last})
	if err != nil {
		return nil, v.fail(err, profileUpdateFailed)
	}
	v.store(ctx, *user)
	return user, nil
}

// UploadImage replaces the profile picture.
func (v *ProfileView) UploadImage(ctx context.Context, image api.File) (*models.UserProfile, error) {
	if len(image.Data) == 0 {
		return nil, v.fail(invalid("image", "Choose an image."), "")
	}
	if !v.begin() {
		return nil, ErrInFlight
	}
	defer v.end()

	files, err := prepareUploads([]api.File{image}, v.cropMaxSide)
	if err != nil {
		return nil, v.fail(err, "Could not read the image.")
	}
	user, err := v.profile.UploadImage(ctx, files[0])
	if err != nil {
		return nil, v.fail(err, profileUpdateFailed)
	}
	v.store(ctx, *user)
	return user, nil
}

func (v *ProfileView) store(ctx context.Context, user models.UserProfile) {
	v.cache.Set(cache.KeyProfile, user)
	if v.session == nil {
		return
	}
	if err := v.session.SetUser(ctx, user); err != nil {
		utils.Logger.Warn("could not persist updated profile", zap.Error(err))
	}
}
