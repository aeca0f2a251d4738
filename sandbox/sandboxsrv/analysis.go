package sandboxsrv

import (
	"context"
	"fmt"
	"time"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/logx"
	"github.com/Abraxas-365/aikyuu/recruitment/analysis"
	"github.com/Abraxas-365/aikyuu/recruitment/position"
	"github.com/Abraxas-365/aikyuu/recruitment/resume"
	"github.com/Abraxas-365/aikyuu/sandbox"
)

// ============================================================================
// Analysis
// ============================================================================

// StartProcessing charges the owner one point per resume, moves the
// position to in_progress and enqueues the analysis job.
func (s *Service) StartProcessing(ctx context.Context, owner kernel.UserID, id kernel.PositionID) error {
	s.analysisMu.Lock()
	defer s.analysisMu.Unlock()

	rec, err := s.ownedPosition(ctx, owner, id)
	if err != nil {
		return err
	}
	switch rec.Status {
	case position.StatusInProgress:
		return sandbox.ErrAlreadyProcessing()
	case position.StatusCompleted:
		return sandbox.ErrNotEditable().WithDetail("status", rec.Status)
	}

	crits, err := s.repo.ListCriteria(ctx, id)
	if err != nil {
		return err
	}
	if len(crits) == 0 {
		return sandbox.ErrNoCriteria()
	}
	resumes, err := s.repo.ListResumes(ctx, id)
	if err != nil {
		return err
	}
	if len(resumes) == 0 {
		return sandbox.ErrNoResumes()
	}

	account, err := s.repo.GetAccount(ctx, owner)
	if err != nil {
		return err
	}
	cost := len(resumes) * s.cfg.PointsPerResume
	if account.Points < cost {
		return sandbox.ErrNotEnoughPoints(account.Points, cost)
	}
	account.Points -= cost
	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return err
	}

	now := s.now()
	rec.Status = position.StatusInProgress
	rec.Processed = 0
	rec.StartedAt = &now
	rec.CompletedAt = nil
	if err := s.repo.SavePosition(ctx, rec); err != nil {
		return err
	}

	job := sandbox.Job{ID: newID(), PositionID: id, Owner: owner, EnqueuedAt: now}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		// give the points back so the user can retry
		account.Points += cost
		_ = s.repo.UpdateAccount(ctx, account)
		rec.Status = position.StatusCreated
		rec.StartedAt = nil
		_ = s.repo.SavePosition(ctx, rec)
		return err
	}

	logx.Infof("Analysis of position %s enqueued as job %s (%d resumes)", id, job.ID, len(resumes))
	return nil
}

// Session reports the progress of the position's analysis. Results are
// included once it has completed.
func (s *Service) Session(ctx context.Context, owner kernel.UserID, id kernel.PositionID) (*analysis.Session, error) {
	rec, err := s.ownedPosition(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.ListResumes(ctx, id)
	if err != nil {
		return nil, err
	}

	sess := &analysis.Session{
		PositionID:  id,
		Status:      rec.Status,
		Processed:   rec.Processed,
		Total:       len(records),
		StartedAt:   rec.StartedAt,
		CompletedAt: rec.CompletedAt,
	}
	if rec.Status == position.StatusCompleted {
		all := make([]resume.Resume, len(records))
		for i, r := range records {
			all[i] = r.Resume
		}
		sess.Results = resume.Ranked(all)
	}
	return sess, nil
}

// ProcessJob scores every resume of the job's position that has no score
// yet, then completes the position. It stops at the first scoring error so
// a retry picks up where it left off.
func (s *Service) ProcessJob(ctx context.Context, job *sandbox.Job) error {
	rec, err := s.repo.GetPosition(ctx, job.PositionID)
	if err != nil {
		return err
	}
	if rec.Status != position.StatusInProgress {
		logx.Warnf("Job %s skipped: position %s is %s", job.ID, rec.ID, rec.Status)
		return nil
	}

	crits, err := s.repo.ListCriteria(ctx, rec.ID)
	if err != nil {
		return err
	}
	descriptions := make([]string, len(crits))
	for i, c := range crits {
		descriptions[i] = c.Description
	}

	resumes, err := s.repo.ListResumes(ctx, rec.ID)
	if err != nil {
		return err
	}

	for i := range resumes {
		r := &resumes[i]
		if r.IsScored() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := s.files.ReadFile(ctx, r.FilePath)
		if err != nil {
			return err
		}
		score, err := s.scorer.Score(ctx, sandbox.ScoreInput{
			Criteria:    descriptions,
			Text:        r.Text,
			File:        data,
			ContentType: r.ContentType,
		})
		if err != nil {
			return err
		}

		r.Score = score.Value
		r.Explanation = score.Explanation
		if err := s.repo.SaveResume(ctx, r); err != nil {
			return err
		}
		if err := s.advance(ctx, rec.ID); err != nil {
			return err
		}
		logx.Debugf("Resume %s scored %.1f", r.ID, r.Score)
	}

	return s.complete(ctx, rec.ID)
}

// AbandonJob gives up on a job after its last attempt. Unscored resumes get
// a zero score carrying the failure and the position completes.
func (s *Service) AbandonJob(ctx context.Context, job *sandbox.Job, cause error) error {
	resumes, err := s.repo.ListResumes(ctx, job.PositionID)
	if err != nil {
		return err
	}
	for i := range resumes {
		r := &resumes[i]
		if r.IsScored() {
			continue
		}
		r.Score = 0
		r.Explanation = fmt.Sprintf("Could not score this resume: %v", cause)
		if err := s.repo.SaveResume(ctx, r); err != nil {
			return err
		}
	}
	logx.Errorf("Job %s abandoned after %d attempts: %v", job.ID, job.Attempt+1, cause)
	return s.complete(ctx, job.PositionID)
}

func (s *Service) advance(ctx context.Context, id kernel.PositionID) error {
	rec, err := s.repo.GetPosition(ctx, id)
	if err != nil {
		return err
	}
	rec.Processed++
	return s.repo.SavePosition(ctx, rec)
}

func (s *Service) complete(ctx context.Context, id kernel.PositionID) error {
	rec, err := s.repo.GetPosition(ctx, id)
	if err != nil {
		return err
	}
	resumes, err := s.repo.ListResumes(ctx, id)
	if err != nil {
		return err
	}

	now := s.now()
	rec.Status = position.StatusCompleted
	rec.Processed = len(resumes)
	rec.CompletedAt = &now
	if err := s.repo.SavePosition(ctx, rec); err != nil {
		return err
	}

	var elapsed time.Duration
	if rec.StartedAt != nil {
		elapsed = now.Sub(*rec.StartedAt)
	}
	logx.Infof("Analysis of position %s completed in %s", id, elapsed.Round(time.Millisecond))
	return nil
}
