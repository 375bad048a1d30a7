// Package session is the client auth context: the signed-in user held in memory and
// mirrored to persisted storage.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/raushankrgupta/fitly-wardrobe/api"
	"github.com/raushankrgupta/fitly-wardrobe/models"
	"github.com/raushankrgupta/fitly-wardrobe/storage"
	"github.com/raushankrgupta/fitly-wardrobe/utils"
	"go.uber.org/zap"
)

// Storage keys.
const (
	UserKey  = "fitly.user"
	TokenKey = "fitly.token"
)

const (
	loginFailedMessage  = "Login failed. Please try again."
	signupFailedMessage = "Signup failed. Please try again."
)

// AuthAPI is the backend surface the provider needs.
type AuthAPI interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Signup(ctx context.Context, req api.SignupRequest) (*api.AuthResponse, error)
	Logout(ctx context.Context) error
}

// Provider owns the current user. Hydrate once at startup; Logout tears everything down.
type Provider struct {
	auth  AuthAPI
	store storage.Store
	now   func() time.Time

	mu       sync.RWMutex
	user     *models.UserProfile
	token    string
	clearers []func()
}

func NewProvider(auth AuthAPI, store storage.Store) *Provider {
	return &Provider{auth: auth, store: store, now: time.Now}
}

// OnClear registers a cache to wipe on logout.
func (p *Provider) OnClear(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clearers = append(p.clearers, fn)
}

// Hydrate loads the persisted session. A corrupt record or an expired token is discarded.
func (p *Provider) Hydrate(ctx context.Context) error {
	rawUser, ok, err := p.store.Get(ctx, UserKey)
	if err != nil {
		return fmt.Errorf("load persisted user: %w", err)
	}
	if !ok {
		return nil
	}
	token, _, err := p.store.Get(ctx, TokenKey)
	if err != nil {
		return fmt.Errorf("load persisted token: %w", err)
	}

	var user models.UserProfile
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		utils.Logger.Warn("discarding unreadable persisted user", zap.Error(err))
		p.clearStorage(ctx)
		return nil
	}
	if token != "" && utils.TokenExpired(token, p.now()) {
		utils.Logger.Info("persisted session expired", zap.String("user_id", user.ID))
		p.clearStorage(ctx)
		return nil
	}

	p.mu.Lock()
	p.user = &user
	p.token = token
	p.mu.Unlock()
	return nil
}

// Login never returns an error; failures come back as ok=false with a message to show.
func (p *Provider) Login(ctx context.Context, email, password string) (bool, string) {
	resp, err := p.auth.Login(ctx, api.LoginRequest{Email: email, Password: password})
	return p.accept(ctx, resp, err, loginFailedMessage)
}

// Signup never returns an error; failures come back as ok=false with a message to show.
func (p *Provider) Signup(ctx context.Context, req api.SignupRequest) (bool, string) {
	resp, err := p.auth.Signup(ctx, req)
	return p.accept(ctx, resp, err, signupFailedMessage)
}

func (p *Provider) accept(ctx context.Context, resp *api.AuthResponse, err error, fallback string) (bool, string) {
	if err != nil {
		return false, api.MessageOf(err, fallback)
	}
	if resp == nil || resp.User == nil {
		msg := fallback
		if resp != nil && resp.Message != "" {
			msg = resp.Message
		}
		return false, msg
	}

	user := *resp.User
	p.mu.Lock()
	p.user = &user
	p.token = resp.Token
	p.mu.Unlock()

	if err := p.persist(ctx, user, resp.Token); err != nil {
		utils.Logger.Warn("could not persist session", zap.Error(err))
	}

	msg := resp.Message
	if msg == "" {
		msg = "Welcome, " + utils.FullName(user.FirstName, user.LastName)
	}
	return true, msg
}

// Logout tells the backend (best effort) and then always clears memory, storage and caches.
func (p *Provider) Logout(ctx context.Context) {
	if err := p.auth.Logout(ctx); err != nil {
		utils.Logger.Warn("backend logout failed, clearing local session anyway", zap.Error(err))
	}

	p.mu.Lock()
	p.user = nil
	p.token = ""
	clearers := append([]func(){}, p.clearers...)
	p.mu.Unlock()

	p.clearStorage(ctx)
	for _, fn := range clearers {
		fn()
	}
}

// SetUser replaces the in-memory user after a profile edit and persists it.
func (p *Provider) SetUser(ctx context.Context, user models.UserProfile) error {
	p.mu.Lock()
	p.user = &user
	token := p.token
	p.mu.Unlock()
	return p.persist(ctx, user, token)
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (p *Provider) CurrentUser() *models.UserProfile {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.user == nil {
		return nil
	}
	u := *p.user
	return &u
}

// Token is registered as the HTTP client's token getter.
func (p *Provider) Token() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token
}

func (p *Provider) IsAuthenticated() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user != nil
}

func (p *Provider) persist(ctx context.Context, user models.UserProfile, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := p.store.Set(ctx, UserKey, string(raw)); err != nil {
		return err
	}
	if token == "" {
		return p.store.Delete(ctx, TokenKey)
	}
	return p.store.Set(ctx, TokenKey, token)
}

func (p *Provider) clearStorage(ctx context.Context) {
	for _, key := range []string{UserKey, TokenKey} {
		if err := p.store.Delete(ctx, key); err != nil {
			utils.Logger.Warn("could not clear persisted key", zap.String("key", key), zap.Error(err))
		}
	}
}
