// Package auth resolves identity-provider sessions and gates routes on them.
package auth

import (
	"errors"
	"net/http"
	"strings"
)

// DefaultCookieName is the cookie the identity provider stores its session token in.
const DefaultCookieName = "__session"

var (
	// ErrNoSession means the request carried no session token at all.
	ErrNoSession = errors.New("auth: no session")
	// ErrInvalidSession means a token was present but failed verification.
	ErrInvalidSession = errors.New("auth: invalid session")
)

// Session is the caller identity resolved from a request.
// UserID is opaque; it is only compared, never interpreted.
type Session struct {
	UserID string
}

// SessionResolver turns a request into a Session. It returns ErrNoSession or
// ErrInvalidSession (possibly wrapped) when the caller is not signed in.
type SessionResolver interface {
	Resolve(r *http.Request) (*Session, error)
}

// ResolverFunc adapts a function to SessionResolver.
type ResolverFunc func(r *http.Request) (*Session, error)

func (f ResolverFunc) Resolve(r *http.Request) (*Session, error) { return f(r) }

// tokenFromRequest prefers the session cookie and falls back to a bearer header.
func tokenFromRequest(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
