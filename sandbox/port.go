package sandbox

import (
	"context"
	"time"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/recruitment/criteria"
)

// Repository is the sandbox's storage. Get methods return a NotFound errx
// error for unknown ids. Returned records are copies.
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, id kernel.UserID) (*Account, error)
	GetAccountByEmail(ctx context.Context, email kernel.Email) (*Account, error)
	UpdateAccount(ctx context.Context, a *Account) error

	SaveVerification(ctx context.Context, v *Verification) error
	GetVerification(ctx context.Context, id kernel.VerificationID) (*Verification, error)
	DeleteVerification(ctx context.Context, id kernel.VerificationID) error

	SavePosition(ctx context.Context, p *PositionRecord) error
	GetPosition(ctx context.Context, id kernel.PositionID) (*PositionRecord, error)
	ListPositions(ctx context.Context, owner kernel.UserID) ([]PositionRecord, error)
	DeletePosition(ctx context.Context, id kernel.PositionID) error

	AddCriteria(ctx context.Context, c *criteria.Criteria) error
	GetCriteria(ctx context.Context, id kernel.CriteriaID) (*criteria.Criteria, error)
	ListCriteria(ctx context.Context, positionID kernel.PositionID) ([]criteria.Criteria, error)
	DeleteCriteria(ctx context.Context, id kernel.CriteriaID) error

	SaveResume(ctx context.Context, r *ResumeRecord) error
	GetResume(ctx context.Context, id kernel.ResumeID) (*ResumeRecord, error)
	ListResumes(ctx context.Context, positionID kernel.PositionID) ([]ResumeRecord, error)
	DeleteResume(ctx context.Context, id kernel.ResumeID) error

	AddBill(ctx context.Context, b *BillRecord) error
	ListBills(ctx context.Context, owner kernel.UserID) ([]BillRecord, error)

	AddFeedback(ctx context.Context, f *Feedback) error
}

// JobQueue carries analysis jobs to the workers. Dequeue returns nil, nil
// when nothing arrived within timeout.
type JobQueue interface {
	Enqueue(ctx context.Context, job Job) error
	Dequeue(ctx context.Context, timeout time.Duration) (*Job, error)
	EnqueueDelayed(ctx context.Context, job Job, delay time.Duration) error
	MoveDelayedToReady(ctx context.Context) (int, error)
	Size(ctx context.Context) (int64, error)
}

// Scorer rates one resume against a position's criteria
type Scorer interface {
	Score(ctx context.Context, in ScoreInput) (*Score, error)
}

// CodeSender delivers verification codes
type CodeSender interface {
	SendCode(ctx context.Context, email kernel.Email, purpose Purpose, code string) error
}
