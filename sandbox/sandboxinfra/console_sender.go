package sandboxinfra

import (
	"context"
	"sync"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/logx"
	"github.com/Abraxas-365/aikyuu/sandbox"
)

// ConsoleSender logs verification codes instead of mailing them. The last
// code per email is kept so tests and the CLI can read it back.
type ConsoleSender struct {
	mu   sync.Mutex
	last map[kernel.Email]string
}

var _ sandbox.CodeSender = (*ConsoleSender)(nil)

func NewConsoleSender() *ConsoleSender {
	return &ConsoleSender{last: make(map[kernel.Email]string)}
}

func (s *ConsoleSender) SendCode(_ context.Context, email kernel.Email, purpose sandbox.Purpose, code string) error {
	s.mu.Lock()
	s.last[email] = code
	s.mu.Unlock()

	logx.With("email", email.String(), "purpose", string(purpose)).Info("verification code: " + code)
	return nil
}

// LastCode returns the most recent code sent to email
func (s *ConsoleSender) LastCode(email kernel.Email) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last[email]
}
