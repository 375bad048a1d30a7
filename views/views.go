// Package views holds the page and modal controllers. Each view owns its loading flag,
// inline error message and local derived state, and talks to the backend through services.
package views

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/raushankrgupta/fitly-wardrobe/api"
	"github.com/raushankrgupta/fitly-wardrobe/models"
	"github.com/raushankrgupta/fitly-wardrobe/photo"
	"github.com/raushankrgupta/fitly-wardrobe/utils"
	"go.uber.org/zap"
)

// ErrInFlight is returned when the same action is already waiting on the backend.
var ErrInFlight = errors.New("request already in progress")

// ValidationError is a client-side check that failed before any request was sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// validateForm runs the validate tags on form and reports the first failure as a
// *ValidationError, its message looked up by "field.tag" in messages.
func validateForm(form any, messages map[string]string) error {
	err := utils.Validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	msg, ok := messages[fe.Field()+"."+fe.Tag()]
	if !ok {
		msg = fe.Error()
	}
	return invalid(fe.Field(), msg)
}

// PostAPI is the post surface used by the feed, the comments modal and the outfit picker.
type PostAPI interface {
	Create(ctx context.Context, text string, images []api.File) (*models.Post, error)
	Feed(ctx context.Context, limit, offset int) (*models.FeedPage, error)
	Delete(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id string) (*models.LikeResult, error)
	ToggleSave(ctx context.Context, id string) (*models.SaveResult, error)
	Saved(ctx context.Context) ([]models.Post, error)
	Comments(ctx context.Context, postID string) ([]models.Comment, error)
	AddComment(ctx context.Context, postID, text string) (*models.Comment, error)
	UpdateComment(ctx context.Context, postID, commentID, text string) (*models.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID string) error
}

type WardrobeAPI interface {
	Upload(ctx context.Context, images []api.File) ([]models.WardrobeItem, error)
	List(ctx context.Context, group models.CategoryGroup) ([]models.WardrobeItem, error)
	Delete(ctx context.Context, id string) error
	Tags(ctx context.Context) ([]models.Tag, error)
}

type StylingAPI interface {
	Recommend(ctx context.Context, req api.RecommendRequest) (*models.Recommendation, error)
}

type CalendarAPI interface {
	Save(ctx context.Context, outfit models.CalendarOutfit) (*models.CalendarOutfit, error)
	List(ctx context.Context) ([]models.CalendarOutfit, error)
	Delete(ctx context.Context, date string) error
}

type ChatAPI interface {
	Send(ctx context.Context, message string, history []models.ChatMessage) (*api.ChatReply, error)
}

type StudioAPI interface {
	Generate(ctx context.Context, wardrobeItemID string) (*models.StudioGenerateResponse, error)
	List(ctx context.Context) (*models.StudioListResponse, error)
}

type SavedImageAPI interface {
	List(ctx context.Context) ([]models.SavedImage, error)
	Save(ctx context.Context, studioImageID string) (*models.SavedImage, error)
	Delete(ctx context.Context, id string) error
}

type ProfileAPI interface {
	Get(ctx context.Context) (*models.UserProfile, error)
	UpdateName(ctx context.Context, req api.UpdateNameRequest) (*models.UserProfile, error)
	UploadImage(ctx context.Context, image api.File) (*models.UserProfile, error)
}

// status is the loading flag and inline error shared by every view.
type status struct {
	mu           sync.Mutex
	loading      bool
	errorMessage string
}

// Loading reports whether a request started by the view is outstanding.
func (s *status) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// ErrorMessage is the inline message of the last failure, empty after a success.
func (s *status) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errorMessage
}

// begin sets the loading flag; it fails when a request is already outstanding.
func (s *status) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return false
	}
	s.loading = true
	s.errorMessage = ""
	return true
}

func (s *status) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

// fail records err as the inline message, logs it and returns it unchanged.
func (s *status) fail(err error, fallback string) error {
	logger := utils.Logger.WithOptions(zap.AddCallerSkip(1))
	msg := api.MessageOf(err, fallback)
	var verr *ValidationError
	if errors.As(err, &verr) {
		msg = verr.Message
		logger.Debug("input rejected", zap.String("field", verr.Field), zap.String("message", msg))
	} else {
		logger.Warn("action failed", zap.String("message", msg), zap.Int("status", api.StatusOf(err)), zap.Error(err))
	}
	s.mu.Lock()
	s.errorMessage = msg
	s.mu.Unlock()
	return err
}

func (s *status) clearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorMessage = ""
}

// prepareUploads square-crops files when maxSide is positive.
func prepareUploads(files []api.File, maxSide int) ([]api.File, error) {
	if maxSide <= 0 {
		return files, nil
	}
	out := make([]api.File, 0, len(files))
	for _, f := range files {
		cropped, err := photo.CropFile(f, maxSide)
		if err != nil {
			return nil, err
		}
		out = append(out, cropped)
	}
	return out, nil
}
