package analysis

import (
	"time"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/recruitment/position"
	"github.com/Abraxas-365/aikyuu/recruitment/resume"
)

// Session is the server's view of an analysis run
type Session struct {
	PositionID  kernel.PositionID `json:"positionId"`
	Status      position.Status   `json:"status"`
	Processed   int               `json:"processed"`
	Total       int               `json:"total"`
	Results     []resume.Resume   `json:"results,omitempty"`
	StartedAt   *time.Time        `json:"startedAt,omitempty"`
	CompletedAt *time.Time        `json:"completedAt,omitempty"`
}

// Percent is the share of processed resumes, 0 when nothing is known
func (s *Session) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Processed) * 100 / float64(s.Total)
}

func (s *Session) IsCompleted() bool {
	return s.Status == position.StatusCompleted
}

// CheckReady enforces the preconditions of an analysis run
func CheckReady(p *position.Position) error {
	if !p.HasCriteria() {
		return ErrNoCriteria()
	}
	if !p.HasResumes() {
		return ErrNoResumes()
	}
	if p.IsCompleted() {
		return ErrAlreadyCompleted()
	}
	return nil
}
