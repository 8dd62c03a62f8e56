package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig selects how session tokens are verified. Exactly one of
// PublicKeyPEM (RS256) or Secret (HS256) should be set; the public key wins.
type JWTConfig struct {
	PublicKeyPEM string
	Secret       string
	Issuer       string
	CookieName   string
	Leeway       time.Duration
}

// JWTResolver verifies the identity provider's signed session token and uses
// its subject as the user id.
type JWTResolver struct {
	key        any
	parser     *jwt.Parser
	cookieName string
}

var _ SessionResolver = (*JWTResolver)(nil)

// NewJWTResolver builds a resolver from cfg.
func NewJWTResolver(cfg JWTConfig) (*JWTResolver, error) {
	var (
		key    any
		method string
	)
	switch {
	case cfg.PublicKeyPEM != "":
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("auth: parse public key: %w", err)
		}
		key, method = pub, jwt.SigningMethodRS256.Alg()
	case cfg.Secret != "":
		key, method = []byte(cfg.Secret), jwt.SigningMethodHS256.Alg()
	default:
		return nil, errors.New("auth: no verification key configured")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{method}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	cookie := cfg.CookieName
	if cookie == "" {
		cookie = DefaultCookieName
	}
	return &JWTResolver{key: key, parser: jwt.NewParser(opts...), cookieName: cookie}, nil
}

// Resolve verifies the request's session token.
func (j *JWTResolver) Resolve(r *http.Request) (*Session, error) {
	raw := tokenFromRequest(r, j.cookieName)
	if raw == "" {
		return nil, ErrNoSession
	}

	claims := &jwt.RegisteredClaims{}
	if _, err := j.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return j.key, nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidSession)
	}
	return &Session{UserID: claims.Subject}, nil
}
