package position

import (
	"time"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/recruitment/criteria"
	"github.com/Abraxas-365/aikyuu/recruitment/resume"
)

// Status represents where a position is in the analysis lifecycle
type Status string

const (
	StatusCreated    Status = "created"     // Accepting criteria and resumes
	StatusInProgress Status = "in_progress" // Analysis running on the server
	StatusCompleted  Status = "completed"   // Every resume has been scored
)

// Rank orders statuses; unknown statuses rank -1
func (s Status) Rank() int {
	switch s {
	case StatusCreated:
		return 0
	case StatusInProgress:
		return 1
	case StatusCompleted:
		return 2
	}
	return -1
}

func (s Status) IsValid() bool { return s.Rank() >= 0 }

// CanAdvanceTo reports whether moving from s to next keeps the lifecycle
// moving forward (or standing still).
func (s Status) CanAdvanceTo(next Status) bool {
	return next.IsValid() && next.Rank() >= s.Rank()
}

type Position struct {
	ID          kernel.PositionID   `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      Status              `json:"status"`
	Criterias   []criteria.Criteria `json:"criterias"`
	Resumes     []resume.Resume     `json:"resumes"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// ============================================================================
// Domain Methods
// ============================================================================

func (p *Position) IsCompleted() bool {
	return p.Status == StatusCompleted
}

func (p *Position) IsInProgress() bool {
	return p.Status == StatusInProgress
}

func (p *Position) HasCriteria() bool {
	return len(p.Criterias) > 0
}

func (p *Position) HasResumes() bool {
	return len(p.Resumes) > 0
}

// RankedResumes returns the resumes ordered by score, best first
func (p *Position) RankedResumes() []resume.Resume {
	return resume.Ranked(p.Resumes)
}
