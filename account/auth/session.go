package auth

import (
	"time"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// Session is the signed-in user's access token
type Session struct {
	Token     string       `json:"token"`
	Email     kernel.Email `json:"email"`
	ExpiresAt time.Time    `json:"expiresAt,omitempty"`
}

// NewSession reads the expiry from the token's exp claim. The signature is
// not checked; the server does that on every request.
func NewSession(token string, email kernel.Email) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidToken()
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrRegistry.NewWithCause(CodeInvalidToken, err)
	}

	s := &Session{Token: token, Email: email}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, ErrRegistry.NewWithCause(CodeInvalidToken, err)
	}
	if exp != nil {
		s.ExpiresAt = exp.Time.UTC()
	}
	if s.Email == "" {
		if v, ok := claims["email"].(string); ok {
			s.Email = kernel.Email(v)
		}
	}
	return s, nil
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsExpired reports whether the token has expired at now. Tokens without an
// exp claim never expire locally.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

func (s *Session) OAuth2Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken: s.Token,
		TokenType:   "Bearer",
		Expiry:      s.ExpiresAt,
	}
}
