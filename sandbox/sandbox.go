// Package sandbox emulates the Aikyuu backend for local development and
// contract tests. State lives in memory; uploads go through fsx.
package sandbox

import (
	"time"

	"github.com/Abraxas-365/aikyuu/account/billing"
	"github.com/Abraxas-365/aikyuu/account/profile"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/recruitment/position"
	"github.com/Abraxas-365/aikyuu/recruitment/resume"
)

// Account is a registered user
type Account struct {
	ID           kernel.UserID
	Name         string
	Email        kernel.Email
	PasswordHash string
	Verified     bool
	Points       int
	PhotoURL     string
	CreatedAt    time.Time
}

func (a *Account) Profile() profile.Profile {
	return profile.Profile{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		PhotoURL:  a.PhotoURL,
		Points:    a.Points,
		CreatedAt: a.CreatedAt,
	}
}

type Purpose string

const (
	PurposeSignup Purpose = "signup"
	PurposeReset  Purpose = "reset"
)

// Verification is a pending emailed code
type Verification struct {
	ID        kernel.VerificationID
	Email     kernel.Email
	Code      string
	Purpose   Purpose
	ExpiresAt time.Time
}

func (v *Verification) IsExpired(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}

// PositionRecord is a stored position without its nested lists
type PositionRecord struct {
	Owner       kernel.UserID
	ID          kernel.PositionID
	Title       string
	Description string
	Status      position.Status
	CreatedAt   time.Time

	// analysis bookkeeping
	Processed   int
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// ResumeRecord is a stored resume and where its file lives
type ResumeRecord struct {
	resume.Resume
	Owner       kernel.UserID
	FilePath    string
	FileName    string
	ContentType string
	Text        string
}

// BillRecord is a stored points charge
type BillRecord struct {
	billing.Bill
	Owner  kernel.UserID
	PlanID string
}

// Feedback is a stored feedback message
type Feedback struct {
	ID          string
	Owner       kernel.UserID
	Title       string
	Description string
	ImageURL    string
	CreatedAt   time.Time
}

// Plan is a purchasable points package
type Plan struct {
	ID      string
	Name    string
	Credits int
}

var Plans = map[string]Plan{
	"starter":  {ID: "starter", Name: "Starter", Credits: 50},
	"pro":      {ID: "pro", Name: "Pro", Credits: 200},
	"ultimate": {ID: "ultimate", Name: "Ultimate Vault", Credits: 1000},
}

// Job asks a worker to analyze every resume of a position
type Job struct {
	ID         string            `json:"id"`
	PositionID kernel.PositionID `json:"positionId"`
	Owner      kernel.UserID     `json:"owner"`
	Attempt    int               `json:"attempt"`
	EnqueuedAt time.Time         `json:"enqueuedAt"`
}

// ScoreInput is what a Scorer sees of one resume
type ScoreInput struct {
	Criteria    []string
	Text        string
	File        []byte
	ContentType string
}

// Score is the result for one resume, Value in 0..100
type Score struct {
	Value       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// Clamp keeps Value in 0..100 rounded to one decimal
func (s Score) Clamp() Score {
	switch {
	case s.Value < 0:
		s.Value = 0
	case s.Value > 100:
		s.Value = 100
	}
	s.Value = float64(int(s.Value*10+0.5)) / 10
	return s
}
