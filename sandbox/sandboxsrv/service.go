package sandboxsrv

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/Abraxas-365/aikyuu/pkg/fsx"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/sandbox"
	"github.com/Abraxas-365/aikyuu/sandbox/sandboxauth"
	"github.com/google/uuid"
)

type Config struct {
	// StartingPoints are granted to every verified account
	StartingPoints int
	CodeTTL        time.Duration
	// PointsPerResume is charged when an analysis starts
	PointsPerResume int
}

func (c Config) withDefaults() Config {
	if c.StartingPoints <= 0 {
		c.StartingPoints = 50
	}
	if c.CodeTTL <= 0 {
		c.CodeTTL = 15 * time.Minute
	}
	if c.PointsPerResume <= 0 {
		c.PointsPerResume = 1
	}
	return c
}

// Service implements every sandbox route on top of the repository
type Service struct {
	repo   sandbox.Repository
	files  fsx.FileSystem
	queue  sandbox.JobQueue
	scorer sandbox.Scorer
	sender sandbox.CodeSender
	tokens *sandboxauth.TokenService
	cfg    Config

	// analysisMu serializes the points check and status change of StartProcessing
	analysisMu sync.Mutex

	now     func() time.Time
	newCode func() string
}

func NewService(
	repo sandbox.Repository,
	files fsx.FileSystem,
	queue sandbox.JobQueue,
	scorer sandbox.Scorer,
	sender sandbox.CodeSender,
	tokens *sandboxauth.TokenService,
	cfg Config,
) *Service {
	return &Service{
		repo:    repo,
		files:   files,
		queue:   queue,
		scorer:  scorer,
		sender:  sender,
		tokens:  tokens,
		cfg:     cfg.withDefaults(),
		now:     time.Now,
		newCode: randomCode,
	}
}

func newID() string { return uuid.NewString() }

// randomCode returns six random digits
func randomCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return fmt.Sprintf("%06d", time.Now().UnixNano()%1_000_000)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// ownedPosition loads a position and hides other users' positions
func (s *Service) ownedPosition(ctx context.Context, owner kernel.UserID, id kernel.PositionID) (*sandbox.PositionRecord, error) {
	p, err := s.repo.GetPosition(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Owner != owner {
		return nil, sandbox.ErrPositionNotFound()
	}
	return p, nil
}
