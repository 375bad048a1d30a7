package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/raushankrgupta/fitly-wardrobe/models"
)

type commentRequest struct {
	Text string `json:"text"`
}

type updatePostRequest struct {
	Text string `json:"text"`
}

// PostService covers posts, the feed, likes, saves and comments
type PostService struct {
	c *Client
}

func NewPostService(c *Client) *PostService {
	return &PostService{c: c}
}

func postPath(id string) string {
	return "/api/posts/" + url.PathEscape(id)
}

// Create posts an outfit with its images and optional text.
func (s *PostService) Create(ctx context.Context, text string, images []File) (*models.Post, error) {
	form := NewMultipart()
	if text != "" {
		form.AddField("text", text)
	}
	for _, img := range images {
		form.AddFile("images", img)
	}
	var post models.Post
	if err := s.c.Post(ctx, "/api/posts", form, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Feed lists posts with limit/offset pagination.
func (s *PostService) Feed(ctx context.Context, limit, offset int) (*models.FeedPage, error) {
	var page models.FeedPage
	if err := s.c.Get(ctx, fmt.Sprintf("/api/posts?limit=%d&offset=%d", limit, offset), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := s.c.Get(ctx, postPath(id), &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostService) Update(ctx context.Context, id, text string) (*models.Post, error) {
	var post models.Post
	if err := s.c.Put(ctx, postPath(id), updatePostRequest{Text: text}, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, postPath(id), nil)
}

// ToggleLike flips the current user's like and returns the server count.
func (s *PostService) ToggleLike(ctx context.Context, id string) (*models.LikeResult, error) {
	var res models.LikeResult
	if err := s.c.Post(ctx, postPath(id)+"/like", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ToggleSave flips the current user's bookmark.
func (s *PostService) ToggleSave(ctx context.Context, id string) (*models.SaveResult, error) {
	var res models.SaveResult
	if err := s.c.Post(ctx, postPath(id)+"/save", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Saved lists the posts the current user bookmarked.
func (s *PostService) Saved(ctx context.Context) ([]models.Post, error) {
	var resp struct {
		Posts []models.Post `json:"posts"`
	}
	if err := s.c.Get(ctx, "/api/posts/saved", &resp); err != nil {
		return nil, err
	}
	return resp.Posts, nil
}

func (s *PostService) Comments(ctx context.Context, postID string) ([]models.Comment, error) {
	var resp struct {
		Comments []models.Comment `json:"comments"`
	}
	if err := s.c.Get(ctx, postPath(postID)+"/comments", &resp); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}

func (s *PostService) AddComment(ctx context.Context, postID, text string) (*models.Comment, error) {
	var comment models.Comment
	if err := s.c.Post(ctx, postPath(postID)+"/comments", commentRequest{Text: text}, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *PostService) UpdateComment(ctx context.Context, postID, commentID, text string) (*models.Comment, error) {
	var comment models.Comment
	path := postPath(postID) + "/comments/" + url.PathEscape(commentID)
	if err := s.c.Put(ctx, path, commentRequest{Text: text}, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *PostService) DeleteComment(ctx context.Context, postID, commentID string) error {
	return s.c.Delete(ctx, postPath(postID)+"/comments/"+url.PathEscape(commentID), nil)
}
