package views

import (
	"context"

	"github.com/raushankrgupta/fitly-wardrobe/cache"
	"github.com/raushankrgupta/fitly-wardrobe/inflight"
	"github.com/raushankrgupta/fitly-wardrobe/models"
	"github.com/raushankrgupta/fitly-wardrobe/utils"
	"go.uber.org/zap"
)

const (
	feedLoadFailed   = "Failed to load feed."
	likeFailed       = "Could not update like."
	saveFailed       = "Could not update save."
	deletePostFailed = "Could not delete post."
)

// FeedView is the social feed page. The post list lives in the shared cache under
// cache.KeyFeed as a models.FeedPage so other surfaces can patch it.
type FeedView struct {
	status

	posts    PostAPI
	cache    *cache.QueryCache
	guard    *inflight.Guard
	pageSize int
}

func NewFeedView(posts PostAPI, c *cache.QueryCache, guard *inflight.Guard, pageSize int) *FeedView {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &FeedView{posts: posts, cache: c, guard: guard, pageSize: pageSize}
}

// Load fetches the first page and replaces the cached feed.
func (v *FeedView) Load(ctx context.Context) error {
	if !v.begin() {
		return ErrInFlight
	}
	defer v.end()

	page, err := v.posts.Feed(ctx, v.pageSize, 0)
	if err != nil {
		return v.fail(err, feedLoadFailed)
	}
	v.cache.Set(cache.KeyFeed, *page)
	return nil
}

// LoadMore appends the next page at offset len(posts). It does nothing once the
// backend has reported has_more=false.
func (v *FeedView) LoadMore(ctx context.Context) error {
	current, ok := cache.Load[models.FeedPage](v.cache, cache.KeyFeed)
	if !ok {
		return v.Load(ctx)
	}
	if !current.HasMore {
		return nil
	}
	if !v.begin() {
		return ErrInFlight
	}
	defer v.end()

	page, err := v.posts.Feed(ctx, v.pageSize, len(current.Posts))
	if err != nil {
		return v.fail(err, feedLoadFailed)
	}

	cache.Patch(v.cache, cache.KeyFeed, func(feed models.FeedPage) models.FeedPage {
		seen := make(map[string]bool, len(feed.Posts))
		posts := append([]models.Post(nil), feed.Posts...)
		for _, p := range posts {
			seen[p.ID] = true
		}
		for _, p := range page.Posts {
			if !seen[p.ID] {
				posts = append(posts, p)
			}
		}
		return models.FeedPage{Posts: posts, HasMore: page.HasMore, Total: page.Total}
	})
	return nil
}

// Posts returns a copy of the cached feed.
func (v *FeedView) Posts() []models.Post {
	feed, _ := cache.Load[models.FeedPage](v.cache, cache.KeyFeed)
	return append([]models.Post(nil), feed.Posts...)
}

// HasMore reports whether another page can be loaded.
func (v *FeedView) HasMore() bool {
	feed, ok := cache.Load[models.FeedPage](v.cache, cache.KeyFeed)
	return !ok || feed.HasMore
}

// Post returns the cached post with id.
func (v *FeedView) Post(id string) (models.Post, bool) {
	for _, p := range v.Posts() {
		if p.ID == id {
			return p, true
		}
	}
	return models.Post{}, false
}

// ToggleLike flips the like on the backend and then shows the server's count.
func (v *FeedView) ToggleLike(ctx context.Context, id string) (*models.LikeResult, error) {
	release, ok := v.guard.TryAcquire(inflight.LikeKey(id))
	if !ok {
		return nil, ErrInFlight
	}
	defer release()

	result, err := v.posts.ToggleLike(ctx, id)
	if err != nil {
		return nil, v.fail(err, likeFailed)
	}
	v.clearError()
	v.ApplyLike(id, *result)
	return result, nil
}

// ApplyLike writes a server-confirmed like state into every cached list holding the post.
// The comments modal calls it after its own like round trip.
func (v *FeedView) ApplyLike(id string, result models.LikeResult) {
	patchPost(v.cache, id, func(p models.Post) models.Post {
		p.IsLiked = result.IsLiked
		p.LikesCount = result.LikesCount
		return p
	})
}

// ToggleSave flips the bookmark and drops the cached saved-posts list.
func (v *FeedView) ToggleSave(ctx context.Context, id string) (*models.SaveResult, error) {
	release, ok := v.guard.TryAcquire(inflight.SaveKey(id))
	if !ok {
		return nil, ErrInFlight
	}
	defer release()

	result, err := v.posts.ToggleSave(ctx, id)
	if err != nil {
		return nil, v.fail(err, saveFailed)
	}
	v.clearError()
	patchPost(v.cache, id, func(p models.Post) models.Post {
		p.IsSaved = result.IsSaved
		return p
	})
	v.cache.Invalidate(cache.KeySavedPosts)
	return result, nil
}

// Saved returns the user's bookmarked posts, cached under cache.KeySavedPosts.
func (v *FeedView) Saved(ctx context.Context) ([]models.Post, error) {
	if posts, ok := cache.Load[[]models.Post](v.cache, cache.KeySavedPosts); ok {
		return append([]models.Post(nil), posts...), nil
	}
	posts, err := v.posts.Saved(ctx)
	if err != nil {
		return nil, v.fail(err, feedLoadFailed)
	}
	v.cache.Set(cache.KeySavedPosts, posts)
	return append([]models.Post(nil), posts...), nil
}

// Delete removes the post on the backend and then from the feed.
func (v *FeedView) Delete(ctx context.Context, id string) error {
	if err := v.posts.Delete(ctx, id); err != nil {
		return v.fail(err, deletePostFailed)
	}
	v.Remove(id)
	return nil
}

// Remove drops a post from the cached lists.
func (v *FeedView) Remove(id string) {
	cache.Patch(v.cache, cache.KeyFeed, func(feed models.FeedPage) models.FeedPage {
		posts := make([]models.Post, 0, len(feed.Posts))
		for _, p := range feed.Posts {
			if p.ID != id {
				posts = append(posts, p)
			}
		}
		if feed.Total > 0 && len(posts) < len(feed.Posts) {
			feed.Total--
		}
		feed.Posts = posts
		return feed
	})
	cache.Patch(v.cache, cache.KeySavedPosts, func(saved []models.Post) []models.Post {
		out := make([]models.Post, 0, len(saved))
		for _, p := range saved {
			if p.ID != id {
				out = append(out, p)
			}
		}
		return out
	})
	v.cache.Invalidate(cache.CommentsKey(id))
}

// Prepend puts a freshly created post at the head of the cached feed.
func (v *FeedView) Prepend(post models.Post) {
	patched := cache.Patch(v.cache, cache.KeyFeed, func(feed models.FeedPage) models.FeedPage {
		feed.Posts = append([]models.Post{post}, feed.Posts...)
		feed.Total++
		return feed
	})
	if !patched {
		utils.Logger.Debug("feed not loaded, new post will show on next load", zap.String("post_id", post.ID))
	}
}

// patchPost applies fn to the post with id in the feed and the saved list.
func patchPost(c *cache.QueryCache, id string, fn func(models.Post) models.Post) {
	cache.Patch(c, cache.KeyFeed, func(feed models.FeedPage) models.FeedPage {
		posts := append([]models.Post(nil), feed.Posts...)
		for i := range posts {
			if posts[i].ID == id {
				posts[i] = fn(posts[i])
			}
		}
		feed.Posts = posts
		return feed
	})
	cache.Patch(c, cache.KeySavedPosts, func(saved []models.Post) []models.Post {
		out := append([]models.Post(nil), saved...)
		for i := range out {
			if out[i].ID == id {
				out[i] = fn(out[i])
			}
		}
		return out
	})
}
