package views

import (
	"context"
	"strings"

	"github.com/raushankrgupta/fitly-wardrobe/cache"
	"github.com/raushankrgupta/fitly-wardrobe/inflight"
	"github.com/raushankrgupta/fitly-wardrobe/models"
	"github.com/raushankrgupta/fitly-wardrobe/utils"
	"go.uber.org/zap"
)

const (
	commentsLoadFailed  = "Failed to load comments."
	commentAddFailed    = "Could not post comment."
	commentEditFailed   = "Could not update comment."
	commentDeleteFailed = "Could not delete comment."
)

// CommentsModal shows one post with its comments. Its like button is the only
// optimistic update in the client: it moves first and rolls back on failure.
type CommentsModal struct {
	status

	posts PostAPI
	cache *cache.QueryCache
	guard *inflight.Guard

	post models.Post

	// OnLike receives every server-confirmed like so the opener can sync its copy.
	OnLike func(postID string, result models.LikeResult)
}

func NewCommentsModal(posts PostAPI, c *cache.QueryCache, guard *inflight.Guard, post models.Post) *CommentsModal {
	return &CommentsModal{posts: posts, cache: c, guard: guard, post: post}
}

// Open loads the comment list.
func (m *CommentsModal) Open(ctx context.Context) error {
	if !m.begin() {
		return ErrInFlight
	}
	defer m.end()

	comments, err := m.posts.Comments(ctx, m.post.ID)
	if err != nil {
		return m.fail(err, commentsLoadFailed)
	}

	m.cache.Set(cache.CommentsKey(m.post.ID), comments)
	return nil
}

func (m *CommentsModal) Post() models.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.post
}

// Comments returns the cached list for the post, empty until Open succeeds.
func (m *CommentsModal) Comments() []models.Comment {
	comments, _ := cache.Load[[]models.Comment](m.cache, cache.CommentsKey(m.post.ID))
	return append([]models.Comment(nil), comments...)
}

// Add posts a comment and appends the one the server returns.
func (m *CommentsModal) Add(ctx context.Context, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, m.fail(invalid("text", "Comment cannot be empty."), "")
	}
	release, ok := m.guard.TryAcquire(inflight.CommentKey(m.post.ID))
	if !ok {
		return nil, ErrInFlight
	}
	defer release()

	comment, err := m.posts.AddComment(ctx, m.post.ID, text)
	if err != nil {
		return nil, m.fail(err, commentAddFailed)
	}
	m.clearError()

	cache.Patch(m.cache, cache.CommentsKey(m.post.ID), func(cur []models.Comment) []models.Comment {
		return append(append([]models.Comment(nil), cur...), *comment)
	})

	m.mu.Lock()
	m.post.CommentsCount++
	count := m.post.CommentsCount
	m.mu.Unlock()

	m.syncCount(count)
	return comment, nil
}

// Edit replaces the text of one comment.
func (m *CommentsModal) Edit(ctx context.Context, commentID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, m.fail(invalid("text", "Comment cannot be empty."), "")
	}

	updated, err := m.posts.UpdateComment(ctx, m.post.ID, commentID, text)
	if err != nil {
		return nil, m.fail(err, commentEditFailed)
	}
	m.clearError()

	cache.Patch(m.cache, cache.CommentsKey(m.post.ID), func(cur []models.Comment) []models.Comment {
		out := append([]models.Comment(nil), cur...)
		for i := range out {
			if out[i].ID == commentID {
				out[i] = *updated
			}
		}
		return out
	})
	return updated, nil
}

// Delete removes exactly the comment with commentID.
func (m *CommentsModal) Delete(ctx context.Context, commentID string) error {
	if err := m.posts.DeleteComment(ctx, m.post.ID, commentID); err != nil {
		return m.fail(err, commentDeleteFailed)
	}
	m.clearError()

	removed := true
	cache.Patch(m.cache, cache.CommentsKey(m.post.ID), func(cur []models.Comment) []models.Comment {
		kept := make([]models.Comment, 0, len(cur))
		for _, c := range cur {
			if c.ID != commentID {
				kept = append(kept, c)
			}
		}
		removed = len(kept) < len(cur)
		return kept
	})

	m.mu.Lock()
	if removed && m.post.CommentsCount > 0 {
		m.post.CommentsCount--
	}
	count := m.post.CommentsCount
	m.mu.Unlock()

	m.syncCount(count)
	return nil
}

// Like toggles the like optimistically, then settles on the server's count.
// On failure the previous state is restored.
func (m *CommentsModal) Like(ctx context.Context) (*models.LikeResult, error) {
	release, ok := m.guard.TryAcquire(inflight.LikeKey(m.post.ID))
	if !ok {
		return nil, ErrInFlight
	}
	defer release()

	m.mu.Lock()
	prevLiked, prevCount := m.post.IsLiked, m.post.LikesCount
	m.post.IsLiked = !prevLiked
	if prevLiked {
		m.post.LikesCount--
	} else {
		m.post.LikesCount++
	}
	m.mu.Unlock()

	result, err := m.posts.ToggleLike(ctx, m.post.ID)
	if err != nil {
		m.mu.Lock()
		m.post.IsLiked, m.post.LikesCount = prevLiked, prevCount
		m.mu.Unlock()
		utils.Logger.Debug("like rolled back", zap.String("post_id", m.post.ID), zap.Error(err))
		return nil, m.fail(err, likeFailed)
	}
	m.clearError()

	m.mu.Lock()
	m.post.IsLiked, m.post.LikesCount = result.IsLiked, result.LikesCount
	onLike := m.OnLike
	m.mu.Unlock()

	if onLike != nil {
		onLike(m.post.ID, *result)
	}
	return result, nil
}

// syncCount copies the comment count into every cached list holding the post.
func (m *CommentsModal) syncCount(count int) {
	patchPost(m.cache, m.post.ID, func(p models.Post) models.Post {
		p.CommentsCount = count
		return p
	})
}
