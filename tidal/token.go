package tidal

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// DefaultExpiryLeeway renews tokens this long before they expire.
const DefaultExpiryLeeway = 30 * time.Second

// StaticToken returns a source that always yields the given bearer token.
func StaticToken(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
}

// FetchFunc returns the host player's current access token.
type FetchFunc func(ctx context.Context) (string, error)

// JWTSource turns the host's raw access token into oauth2 tokens whose
// Expiry comes from the JWT exp claim. The signature is not verified; the
// API does that.
type JWTSource struct {
	ctx    context.Context
	fetch  FetchFunc
	leeway time.Duration
	now    func() time.Time
}

// NewJWTSource wraps fetch. ctx is passed to every fetch call.
// Wrap the result in oauth2.ReuseTokenSource to cache tokens until expiry.
func NewJWTSource(ctx context.Context, fetch FetchFunc) *JWTSource {
	return &JWTSource{ctx: ctx, fetch: fetch, leeway: DefaultExpiryLeeway, now: time.Now}
}

// Token implements oauth2.TokenSource.
func (s *JWTSource) Token() (*oauth2.Token, error) {
	raw, err := s.fetch(s.ctx)
	if err != nil {
		return nil, fmt.Errorf("tidal: fetch token: %w", err)
	}
	if raw == "" {
		return nil, ErrNoToken
	}

	tok := &oauth2.Token{AccessToken: raw, TokenType: "Bearer"}
	exp, ok := Expiry(raw)
	if !ok {
		// Opaque token: let the API decide.
		return tok, nil
	}
	if !exp.After(s.now()) {
		return nil, fmt.Errorf("%w at %s", ErrTokenExpired, exp.UTC().Format(time.RFC3339))
	}
	tok.Expiry = exp.Add(-s.leeway)
	return tok, nil
}

// Expiry reads the exp claim of a JWT without verifying it.
func Expiry(raw string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

var _ oauth2.TokenSource = (*JWTSource)(nil)
