package api

import (
	"context"

	"github.com/raushankrgupta/fitly-wardrobe/models"
)

// LoginRequest represents the payload for user login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest represents the payload for user registration
type SignupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthResponse is returned by login and signup
type AuthResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	User    *models.UserProfile `json:"user"`
	Token   string              `json:"token"`
}

// AuthService talks to /api/auth
type AuthService struct {
	c *Client
}

func NewAuthService(c *Client) *AuthService {
	return &AuthService{c: c}
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := s.c.Post(ctx, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := s.c.Post(ctx, "/api/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.c.Post(ctx, "/api/auth/logout", nil, nil)
}
