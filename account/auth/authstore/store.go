package authstore

import (
	"context"
	"net/http"

	"github.com/Abraxas-365/aikyuu/account/auth"
	"github.com/Abraxas-365/aikyuu/pkg/apix"
	"github.com/Abraxas-365/aikyuu/pkg/formx"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/logx"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
)

const basePath = "/v1/auth"

type Store struct {
	api      *apix.Client
	notifier storex.Notifier
	keeper   *Keeper
	state    *storex.State[auth.Session]
}

var _ auth.Store = (*Store)(nil)

// New builds the auth store. api should carry keeper as its token source.
func New(api *apix.Client, notifier storex.Notifier, keeper *Keeper) *Store {
	return &Store{
		api:      api,
		notifier: notifier,
		keeper:   keeper,
		state:    storex.NewState[auth.Session](),
	}
}

func (s *Store) Login(ctx context.Context, req auth.SignInRequest) (*auth.Session, error) {
	return storex.Run(ctx, s.state, s.notifier, storex.Op[auth.Session, *auth.Session]{
		Name:     "login",
		Fallback: "An error occurred during login",
		Call: func(ctx context.Context) (*auth.Session, error) {
			if err := formx.Validate(req).Err(); err != nil {
				return nil, err
			}
			var resp auth.LoginResponse
			if err := s.api.Post(ctx, basePath+"/login", req, &resp); err != nil {
				if apix.StatusCode(err) == http.StatusUnauthorized {
					return nil, auth.ErrInvalidCredentials()
				}
				return nil, err
			}
			return s.open(ctx, resp, kernel.Email(req.Email))
		},
		Apply: setCurrent,
	})
}

func (s *Store) Signup(ctx context.Context, form auth.RegisterForm) (kernel.VerificationID, error) {
	return storex.Run(ctx, s.state, s.notifier, storex.Op[auth.Session, kernel.VerificationID]{
		Name:     "signup",
		Fallback: "An error occurred during sign up",
		Success:  "We sent a verification code to your email",
		Call: func(ctx context.Context) (kernel.VerificationID, error) {
			if err := formx.Validate(form).Err(); err != nil {
				return "", err
			}
			var resp auth.VerificationResponse
			if err := s.api.Post(ctx, basePath+"/signup", form.Request(), &resp); err != nil {
				return "", err
			}
			return resp.VerificationID, nil
		},
	})
}

// Verify confirms a signup. A token in the response signs the user in.
func (s *Store) Verify(ctx context.Context, req auth.VerifyRequest) (*auth.Session, error) {
	return storex.Run(ctx, s.state, s.notifier, storex.Op[auth.Session, *auth.Session]{
		Name:     "verify",
		Fallback: "Verification failed",
		Success:  "Your account has been verified",
		Call: func(ctx context.Context) (*auth.Session, error) {
			if err := formx.Validate(req).Err(); err != nil {
				return nil, err
			}
			var resp auth.LoginResponse
			if err := s.api.Post(ctx, basePath+"/verify", req, &resp); err != nil {
				return nil, err
			}
			if resp.AccessToken == "" {
				return nil, nil
			}
			return s.open(ctx, resp, resp.Email)
		},
		Apply: setCurrent,
	})
}

func (s *Store) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) (kernel.VerificationID, error) {
	return storex.Run(ctx, s.state, s.notifier, storex.Op[auth.Session, kernel.VerificationID]{
		Name:     "forgot-password",
		Fallback: "An error occurred while resetting password",
		Call: func(ctx context.Context) (kernel.VerificationID, error) {
			if err := formx.Validate(req).Err(); err != nil {
				return "", err
			}
			var resp auth.VerificationResponse
			if err := s.api.Post(ctx, basePath+"/forgot-password", req, &resp); err != nil {
				if apix.StatusCode(err) == http.StatusNotFound {
					return "", auth.ErrEmailNotFound()
				}
				return "", err
			}
			return resp.VerificationID, nil
		},
	})
}

func (s *Store) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	_, err := storex.Run(ctx, s.state, s.notifier, storex.Op[auth.Session, struct{}]{
		Name:     "reset-password",
		Fallback: "An error occurred while resetting password",
		Success:  "Password has been reset",
		Call: func(ctx context.Context) (struct{}, error) {
			if err := formx.Validate(req).Err(); err != nil {
				return struct{}{}, err
			}
			return struct{}{}, s.api.Post(ctx, basePath+"/reset-password", req, nil)
		},
	})
	return err
}

// Logout forgets the session locally; there is no server call
func (s *Store) Logout(ctx context.Context) error {
	_, err := storex.Run(ctx, s.state, s.notifier, storex.Op[auth.Session, struct{}]{
		Name:     "logout",
		Fallback: "Failed to sign out",
		Call: func(ctx context.Context) (struct{}, error) {
			if err := s.keeper.Clear(ctx); err != nil {
				return struct{}{}, auth.ErrSessionStore(err)
			}
			return struct{}{}, nil
		},
		Apply: func(d *storex.Data[auth.Session], _ struct{}) {
			d.Current = nil
		},
	})
	return err
}

func (s *Store) Current() *auth.Session {
	return s.keeper.Current()
}

func (s *Store) Snapshot() storex.Snapshot[auth.Session] {
	snap := s.state.Snapshot()
	snap.Current = s.keeper.Current()
	return snap
}

func (s *Store) open(ctx context.Context, resp auth.LoginResponse, email kernel.Email) (*auth.Session, error) {
	if resp.Email != "" {
		email = resp.Email
	}
	session, err := auth.NewSession(resp.AccessToken, email)
	if err != nil {
		return nil, err
	}
	if err := s.keeper.Set(ctx, session); err != nil {
		return nil, auth.ErrSessionStore(err)
	}
	logx.Infof("signed in as %s", session.Email)
	return session, nil
}

func setCurrent(d *storex.Data[auth.Session], s *auth.Session) {
	if s == nil {
		return
	}
	cp := *s
	d.Current = &cp
}
