package authstore

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/aikyuu/account/auth"
	"github.com/Abraxas-365/aikyuu/pkg/logx"
	"golang.org/x/oauth2"
)

// Keeper holds the current session and hands its token to the transport.
// It implements oauth2.TokenSource; an absent or expired session yields an
// empty token, never an error.
type Keeper struct {
	mu      sync.RWMutex
	session *auth.Session
	tokens  auth.TokenStore
	now     func() time.Time
}

var _ oauth2.TokenSource = (*Keeper)(nil)

func NewKeeper(tokens auth.TokenStore) *Keeper {
	return &Keeper{tokens: tokens, now: time.Now}
}

// Restore loads a persisted session. An expired one is cleared.
func (k *Keeper) Restore(ctx context.Context) (*auth.Session, error) {
	if k.tokens == nil {
		return nil, nil
	}
	s, err := k.tokens.Load(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	if s.IsExpired(k.now()) {
		logx.Debugf("stored session for %s has expired", s.Email)
		return nil, k.tokens.Clear(ctx)
	}

	k.mu.Lock()
	k.session = s
	k.mu.Unlock()
	return s, nil
}

// Set installs s once it has been persisted. A failed save leaves the
// previous session in place.
func (k *Keeper) Set(ctx context.Context, s *auth.Session) error {
	if k.tokens != nil {
		if err := k.tokens.Save(ctx, s); err != nil {
			return err
		}
	}

	k.mu.Lock()
	k.session = s
	k.mu.Unlock()
	return nil
}

func (k *Keeper) Clear(ctx context.Context) error {
	k.mu.Lock()
	k.session = nil
	k.mu.Unlock()

	if k.tokens == nil {
		return nil
	}
	return k.tokens.Clear(ctx)
}

// Current returns a copy of the live session, or nil
func (k *Keeper) Current() *auth.Session {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.session == nil || k.session.IsExpired(k.now()) {
		return nil
	}
	cp := *k.session
	return &cp
}

func (k *Keeper) Token() (*oauth2.Token, error) {
	s := k.Current()
	if s == nil {
		return &oauth2.Token{}, nil
	}
	return s.OAuth2Token(), nil
}
