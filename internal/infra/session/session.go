// Package session provides token sources for the core API client. The
// original console read the token straight out of browser storage inside
// every request; here the session is an explicit dependency wired in once.
package session

import (
	"context"
	"sync"

	"github.com/noahops/console-bfa-go/internal/domain"
)

// Static is a fixed service token, set once at startup (the usual deployment:
// the BFA holds a machine credential for the core API).
type Static struct {
	token string
}

// NewStatic creates a token source that always returns the given token.
func NewStatic(token string) *Static {
	return &Static{token: token}
}

func (s *Static) Token(_ context.Context) (string, error) {
	if s.token == "" {
		return "", &domain.ErrUnauthorized{Message: "core API token not configured"}
	}
	return s.token, nil
}

// Renewable holds a token that can be swapped at runtime (login/logout
// lifecycle). Reads and writes are safe for concurrent use.
type Renewable struct {
	mu    sync.RWMutex
	token string
}

// NewRenewable creates an initially empty renewable token source.
func NewRenewable(initial string) *Renewable {
	return &Renewable{token: initial}
}

func (r *Renewable) Token(_ context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.token == "" {
		return "", &domain.ErrUnauthorized{Message: "no active session"}
	}
	return r.token, nil
}

// Set replaces the current token. An empty token clears the session.
func (r *Renewable) Set(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = token
}
