package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/raushankrgupta/fitly-wardrobe/api"
	"github.com/raushankrgupta/fitly-wardrobe/models"
)

// MaxOutfitImages is the most images one post can carry.
const MaxOutfitImages = 9

const postCreateFailed = "Could not share your outfit."

// NewOutfitPicker collects images and a caption for a new feed post.
type NewOutfitPicker struct {
	status

	posts       PostAPI
	feed        *FeedView
	cropMaxSide int

	files []api.File
}

// NewNewOutfitPicker creates a picker. feed may be nil; cropMaxSide 0 disables cropping.
func NewNewOutfitPicker(posts PostAPI, feed *FeedView, cropMaxSide int) *NewOutfitPicker {
	return &NewOutfitPicker{posts: posts, feed: feed, cropMaxSide: cropMaxSide}
}

// AddFiles appends files up to MaxOutfitImages and silently drops the rest.
// It returns how many were accepted.
func (p *NewOutfitPicker) AddFiles(files []api.File) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	room := MaxOutfitImages - len(p.files)
	if room <= 0 {
		return 0
	}
	if len(files) > room {
		files = files[:room]
	}
	p.files = append(p.files, files...)
	return len(files)
}

// Remove drops the file at index i.
func (p *NewOutfitPicker) Remove(i int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.files) {
		return fmt.Errorf("no image at position %d", i)
	}
	p.files = append(p.files[:i], p.files[i+1:]...)
	return nil
}

func (p *NewOutfitPicker) Files() []api.File {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]api.File(nil), p.files...)
}

// Submit creates the post. On success the picker is emptied and the post is put at
// the head of the feed.
func (p *NewOutfitPicker) Submit(ctx context.Context, text string) (*models.Post, error) {
	files := p.Files()
	if len(files) == 0 {
		return nil, p.fail(invalid("images", "Add at least one image."), "")
	}
	if !p.begin() {
		return nil, ErrInFlight
	}
	defer p.end()

	files, err := prepareUploads(files, p.cropMaxSide)
	if err != nil {
		return nil, p.fail(err, "Could not read one of the images.")
	}

	post, err := p.posts.Create(ctx, strings.TrimSpace(text), files)
	if err != nil {
		return nil, p.fail(err, postCreateFailed)
	}

	p.mu.Lock()
	p.files = nil
	p.mu.Unlock()

	if p.feed != nil {
		p.feed.Prepend(*post)
	}
	return post, nil
}
