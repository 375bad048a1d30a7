package api

import "sync"

// History is an in-memory route holder. It records every redirect it receives.
type History struct {
	mu        sync.Mutex
	current   string
	redirects []string

	// OnRedirect, when set, is called after each redirect with the new path.
	OnRedirect func(path string)
}

// NewHistory starts at path.
func NewHistory(path string) *History {
	return &History{current: path}
}

// CurrentPath returns the active route.
func (h *History) CurrentPath() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Navigate moves to path as a user action; it is not counted as a redirect.
func (h *History) Navigate(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = path
}

// Redirect moves to path as a side effect.
func (h *History) Redirect(path string) {
	h.mu.Lock()
	h.current = path
	h.redirects = append(h.redirects, path)
	hook := h.OnRedirect
	h.mu.Unlock()

	if hook != nil {
		hook(path)
	}
}

// Redirects returns a copy of the redirects seen so far.
func (h *History) Redirects() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.redirects...)
}
