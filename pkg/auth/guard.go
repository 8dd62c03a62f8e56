package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
)

// Outcome is the terminal state of a guarded request.
type Outcome int

const (
	// Redirected: no valid session; the request ends at the sign-in redirect.
	Redirected Outcome = iota + 1
	// Authorized: a session was resolved and the protected handler may run.
	Authorized
)

func (o Outcome) String() string {
	switch o {
	case Redirected:
		return "redirected"
	case Authorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Guard gates handlers behind a resolved session. Any signed-in user passes;
// there are no roles beyond the admin flag set by MarkAdmin.
type Guard struct {
	resolver  SessionResolver
	signInURL string
	logger    func(ctx context.Context) *slog.Logger
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithLogger makes the guard log through the request-scoped logger returned by fn.
func WithLogger(fn func(ctx context.Context) *slog.Logger) GuardOption {
	return func(g *Guard) {
		if fn != nil {
			g.logger = fn
		}
	}
}

// NewGuard creates a Guard that resolves sessions with resolver and sends
// anonymous page requests to signInURL.
func NewGuard(resolver SessionResolver, signInURL string, opts ...GuardOption) *Guard {
	if signInURL == "" {
		signInURL = "/sign-in"
	}
	g := &Guard{
		resolver:  resolver,
		signInURL: signInURL,
		logger:    func(context.Context) *slog.Logger { return slog.Default() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check resolves the caller's session.
func (g *Guard) Check(r *http.Request) (Outcome, *Session) {
	s, err := g.resolver.Resolve(r)
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			g.logger(r.Context()).DebugContext(r.Context(), "session rejected", "path", r.URL.Path, "error", err)
		}
		return Redirected, nil
	}
	if s == nil || s.UserID == "" {
		return Redirected, nil
	}
	return Authorized, s
}

// SignInURL returns the sign-in entry point with redirect_url pointing back at r.
func (g *Guard) SignInURL(r *http.Request) string {
	u, err := url.Parse(g.signInURL)
	if err != nil {
		return g.signInURL
	}
	q := u.Query()
	q.Set("redirect_url", r.URL.RequestURI())
	u.RawQuery = q.Encode()
	return u.String()
}

// RequirePage redirects anonymous callers to sign-in; next never runs for them.
func (g *Guard) RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		outcome, s := g.Check(r)
		if outcome != Authorized {
			http.Redirect(w, r, g.SignInURL(r), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), s.UserID)))
	})
}

// RequireAPI answers anonymous callers with a JSON 401.
func (g *Guard) RequireAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		outcome, s := g.Check(r)
		if outcome != Authorized {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), s.UserID)))
	})
}

// Optional puts the user id in context when a session exists and never rejects.
func (g *Guard) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if outcome, s := g.Check(r); outcome == Authorized {
			r = r.WithContext(WithUserID(r.Context(), s.UserID))
		}
		next.ServeHTTP(w, r)
	})
}
