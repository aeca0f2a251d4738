package auth

import (
	"context"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
)

// TokenStore persists the session between runs. Load returns nil, nil when
// nothing is stored.
type TokenStore interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}

// Store runs the sign-in flows and owns the current session
type Store interface {
	Login(ctx context.Context, req SignInRequest) (*Session, error)
	Signup(ctx context.Context, form RegisterForm) (kernel.VerificationID, error)
	Verify(ctx context.Context, req VerifyRequest) (*Session, error)
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (kernel.VerificationID, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	Logout(ctx context.Context) error

	// Current returns the live session or nil
	Current() *Session
	Snapshot() storex.Snapshot[Session]
}
