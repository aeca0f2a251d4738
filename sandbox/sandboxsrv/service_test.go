package sandboxsrv

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/aikyuu/account/auth"
	"github.com/Abraxas-365/aikyuu/account/billing"
	"github.com/Abraxas-365/aikyuu/account/profile"
	"github.com/Abraxas-365/aikyuu/pkg/errx"
	"github.com/Abraxas-365/aikyuu/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/recruitment/criteria"
	"github.com/Abraxas-365/aikyuu/recruitment/position"
	"github.com/Abraxas-365/aikyuu/recruitment/resume"
	"github.com/Abraxas-365/aikyuu/sandbox"
	"github.com/Abraxas-365/aikyuu/sandbox/sandboxauth"
	"github.com/Abraxas-365/aikyuu/sandbox/sandboxinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scorerFunc func(ctx context.Context, in sandbox.ScoreInput) (*sandbox.Score, error)

func (f scorerFunc) Score(ctx context.Context, in sandbox.ScoreInput) (*sandbox.Score, error) {
	return f(ctx, in)
}

type fixture struct {
	svc    *Service
	queue  *sandboxinfra.MemoryQueue
	sender *sandboxinfra.ConsoleSender
}

func newFixture(t *testing.T, scorer sandbox.Scorer) *fixture {
	t.Helper()
	if scorer == nil {
		scorer = sandboxinfra.KeywordScorer{}
	}
	f := &fixture{
		queue:  sandboxinfra.NewMemoryQueue(16),
		sender: sandboxinfra.NewConsoleSender(),
	}
	f.svc = NewService(
		sandboxinfra.NewMemoryRepository(),
		fsxlocal.NewLocalFileSystem(t.TempDir()),
		f.queue,
		scorer,
		f.sender,
		sandboxauth.NewTokenService("test-secret", time.Hour),
		Config{StartingPoints: 10},
	)
	return f
}

func (f *fixture) seed(t *testing.T, email string) kernel.UserID {
	t.Helper()
	a, err := f.svc.Seed(context.Background(), "Demo", email, "secret1!")
	require.NoError(t, err)
	return a.ID
}

// readyPosition creates a position with one criteria and the given resumes
func (f *fixture) readyPosition(t *testing.T, owner kernel.UserID, resumes ...string) kernel.PositionID {
	t.Helper()
	ctx := context.Background()
	p, err := f.svc.CreatePosition(ctx, owner, position.CreatePositionRequest{Title: "Go developer", Description: "Backend"})
	require.NoError(t, err)
	_, err = f.svc.AddCriteria(ctx, owner, p.ID, criteria.CreateCriteriaRequest{Description: "Go and Kubernetes"})
	require.NoError(t, err)
	for i, text := range resumes {
		_, err := f.svc.UploadResume(ctx, owner, p.ID, resume.File{
			Name: []string{"ana.txt", "bob.txt", "eve.txt"}[i%3],
			Data: []byte(text),
		})
		require.NoError(t, err)
	}
	return p.ID
}

func TestSignupVerifyLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	v, err := f.svc.Signup(ctx, auth.SignupRequest{Name: "Ana", Email: "Ana@Example.com", Password: "secret1"})
	require.NoError(t, err)
	require.False(t, v.VerificationID.IsEmpty())

	_, err = f.svc.Login(ctx, auth.SignInRequest{Email: "ana@example.com", Password: "secret1"})
	assert.True(t, errx.IsCode(err, sandbox.CodeNotVerified))

	_, err = f.svc.Verify(ctx, auth.VerifyRequest{VerificationID: v.VerificationID, Code: "000000x"})
	assert.True(t, errx.IsCode(err, sandbox.CodeInvalidCode))

	code := f.sender.LastCode("ana@example.com")
	require.Len(t, code, 6)
	resp, err := f.svc.Verify(ctx, auth.VerifyRequest{VerificationID: v.VerificationID, Code: code})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, kernel.Email("ana@example.com"), resp.Email)

	_, err = f.svc.Verify(ctx, auth.VerifyRequest{VerificationID: v.VerificationID, Code: code})
	assert.True(t, errx.IsCode(err, sandbox.CodeInvalidCode), "codes are single use")

	login, err := f.svc.Login(ctx, auth.SignInRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	claims, err := f.svc.tokens.Validate(login.AccessToken)
	require.NoError(t, err)

	p, err := f.svc.Profile(ctx, claims.UserID())
	require.NoError(t, err)
	assert.Equal(t, 10, p.Points)
	assert.Equal(t, "Ana", p.Name)

	_, err = f.svc.Signup(ctx, auth.SignupRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
	assert.True(t, errx.IsCode(err, sandbox.CodeEmailTaken))
}

func TestExpiredCodeIsRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	v, err := f.svc.Signup(ctx, auth.SignupRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)

	f.svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = f.svc.Verify(ctx, auth.VerifyRequest{VerificationID: v.VerificationID, Code: f.sender.LastCode("ana@example.com")})
	assert.True(t, errx.IsCode(err, sandbox.CodeInvalidCode))
}

func TestLoginFailuresLookAlike(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.seed(t, "demo@example.com")

	_, err := f.svc.Login(ctx, auth.SignInRequest{Email: "nobody@example.com", Password: "secret1!"})
	assert.True(t, errx.IsCode(err, sandbox.CodeInvalidCredentials))

	_, err = f.svc.Login(ctx, auth.SignInRequest{Email: "demo@example.com", Password: "wrong-one"})
	assert.True(t, errx.IsCode(err, sandbox.CodeInvalidCredentials))
}

func TestForgotAndResetPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.seed(t, "demo@example.com")

	_, err := f.svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: "nobody@example.com"})
	assert.True(t, errx.IsCode(err, sandbox.CodeEmailNotFound))

	v, err := f.svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: "demo@example.com"})
	require.NoError(t, err)

	err = f.svc.ResetPassword(ctx, auth.ResetPasswordRequest{
		VerificationID: v.VerificationID,
		Code:           f.sender.LastCode("demo@example.com"),
		NewPassword:    "newpass1!",
	})
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, auth.SignInRequest{Email: "demo@example.com", Password: "newpass1!"})
	assert.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	id := f.seed(t, "demo@example.com")

	err := f.svc.ChangePassword(ctx, id, profile.ChangePasswordBody{OldPassword: "nope", NewPassword: "newpass1!"})
	assert.True(t, errx.IsCode(err, sandbox.CodeWrongPassword))

	err = f.svc.ChangePassword(ctx, id, profile.ChangePasswordBody{OldPassword: "secret1!", NewPassword: "short"})
	assert.True(t, errx.IsType(err, errx.TypeValidation))

	require.NoError(t, f.svc.ChangePassword(ctx, id, profile.ChangePasswordBody{OldPassword: "secret1!", NewPassword: "newpass1!"}))
}

func TestPositionsAreScopedToOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	ana := f.seed(t, "ana@example.com")
	bob := f.seed(t, "bob@example.com")

	id := f.readyPosition(t, ana, "Go")

	_, err := f.svc.GetPosition(ctx, bob, id)
	assert.True(t, errx.IsCode(err, sandbox.CodePositionNotFound))

	page, err := f.svc.ListPositions(ctx, bob, kernel.PaginationOptions{})
	require.NoError(t, err)
	assert.Zero(t, page.Count)

	page, err = f.svc.ListPositions(ctx, ana, kernel.PaginationOptions{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Len(t, page.Items[0].Criterias, 1)
	assert.Len(t, page.Items[0].Resumes, 1)
}

func TestDuplicateCopiesCriteriaOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	owner := f.seed(t, "ana@example.com")
	id := f.readyPosition(t, owner, "Go")

	dup, err := f.svc.DuplicatePosition(ctx, owner, id)
	require.NoError(t, err)
	assert.NotEqual(t, id, dup.ID)
	assert.Equal(t, "Go developer (copy)", dup.Title)
	assert.Equal(t, position.StatusCreated, dup.Status)
	require.Len(t, dup.Criterias, 1)
	assert.Equal(t, dup.ID, dup.Criterias[0].PositionID)
	assert.Empty(t, dup.Resumes)
}

func TestUploadRejectsEmptyAndBrokenPDF(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	owner := f.seed(t, "ana@example.com")
	id := f.readyPosition(t, owner)

	_, err := f.svc.UploadResume(ctx, owner, id, resume.File{Name: "empty.pdf"})
	assert.True(t, errx.IsCode(err, sandbox.CodeInvalidInput))

	_, err = f.svc.UploadResume(ctx, owner, id, resume.File{Name: "broken.pdf", Data: []byte("%PDF-1.4 nope")})
	assert.True(t, errx.IsCode(err, sandbox.CodeInvalidInput))
}

func TestStartProcessingGuards(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	owner := f.seed(t, "ana@example.com")

	p, err := f.svc.CreatePosition(ctx, owner, position.CreatePositionRequest{Title: "Empty", Description: "x"})
	require.NoError(t, err)
	assert.True(t, errx.IsCode(f.svc.StartProcessing(ctx, owner, p.ID), sandbox.CodeNoCriteria))

	_, err = f.svc.AddCriteria(ctx, owner, p.ID, criteria.CreateCriteriaRequest{Description: "Go"})
	require.NoError(t, err)
	assert.True(t, errx.IsCode(f.svc.StartProcessing(ctx, owner, p.ID), sandbox.CodeNoResumes))

	size, _ := f.queue.Size(ctx)
	assert.Zero(t, size)
}

func TestStartProcessingNeedsPoints(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	owner := f.seed(t, "ana@example.com")

	texts := make([]string, 11)
	for i := range texts {
		texts[i] = "Go"
	}
	id := f.readyPosition(t, owner, texts...)

	err := f.svc.StartProcessing(ctx, owner, id)
	require.True(t, errx.IsCode(err, sandbox.CodeNotEnoughPoints))
	e, _ := errx.As(err)
	assert.Equal(t, 10, e.Details["points"])
	assert.Equal(t, 11, e.Details["required"])

	p, err := f.svc.GetPosition(ctx, owner, id)
	require.NoError(t, err)
	assert.Equal(t, position.StatusCreated, p.Status)
}

func TestAnalysisRunsToCompletion(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := newFixture(t, nil)
	owner := f.seed(t, "ana@example.com")
	id := f.readyPosition(t, owner,
		"Photoshop and Illustrator",
		"Go services on Kubernetes",
		"Go scripts",
	)

	require.NoError(t, f.svc.StartProcessing(ctx, owner, id))
	assert.True(t, errx.IsCode(f.svc.StartProcessing(ctx, owner, id), sandbox.CodeAlreadyProcessing))

	sess, err := f.svc.Session(ctx, owner, id)
	require.NoError(t, err)
	assert.Equal(t, position.StatusInProgress, sess.Status)
	assert.Equal(t, 3, sess.Total)
	assert.Empty(t, sess.Results)

	_, err = f.svc.AddCriteria(ctx, owner, id, criteria.CreateCriteriaRequest{Description: "Late"})
	assert.True(t, errx.IsCode(err, sandbox.CodeNotEditable))

	acc, err := f.svc.Profile(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 7, acc.Points)

	w := NewAnalysisWorker(f.svc, f.queue, WorkerConfig{Workers: 2, PollTimeout: 10 * time.Millisecond})
	w.Start(ctx)

	require.Eventually(t, func() bool {
		s, err := f.svc.Session(ctx, owner, id)
		return err == nil && s.IsCompleted()
	}, 5*time.Second, 10*time.Millisecond)

	sess, err = f.svc.Session(ctx, owner, id)
	require.NoError(t, err)
	assert.Equal(t, 3, sess.Processed)
	require.Len(t, sess.Results, 3)
	assert.Equal(t, "bob", sess.Results[0].Title)
	assert.Equal(t, 100.0, sess.Results[0].Score)
	assert.Equal(t, 50.0, sess.Results[1].Score)
	assert.Equal(t, 0.0, sess.Results[2].Score)
	assert.NotNil(t, sess.CompletedAt)

	cancel()
	w.Wait()
}

func TestWorkerRetriesThenAbandons(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int
	f := newFixture(t, scorerFunc(func(context.Context, sandbox.ScoreInput) (*sandbox.Score, error) {
		calls++
		return nil, errors.New("model unavailable")
	}))
	owner := f.seed(t, "ana@example.com")
	id := f.readyPosition(t, owner, "Go")

	require.NoError(t, f.svc.StartProcessing(ctx, owner, id))

	w := NewAnalysisWorker(f.svc, f.queue, WorkerConfig{
		Workers:      1,
		PollTimeout:  10 * time.Millisecond,
		MoveInterval: 5 * time.Millisecond,
		RetryDelay:   time.Millisecond,
		MaxAttempts:  2,
	})
	w.Start(ctx)

	require.Eventually(t, func() bool {
		s, err := f.svc.Session(ctx, owner, id)
		return err == nil && s.IsCompleted()
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	w.Wait()

	sess, err := f.svc.Session(context.Background(), owner, id)
	require.NoError(t, err)
	require.Len(t, sess.Results, 1)
	assert.True(t, strings.HasPrefix(sess.Results[0].Explanation, "Could not score this resume"))
	assert.Equal(t, 2, calls)
}

func TestBuyCreditsPointsAndRecordsBill(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	owner := f.seed(t, "ana@example.com")

	purchase, err := f.svc.Buy(ctx, owner, billing.PurchaseRequest{PlanID: "pro", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 410, purchase.Points)

	_, err = f.svc.Buy(ctx, owner, billing.PurchaseRequest{PlanID: "gold", Quantity: 1})
	assert.True(t, errx.IsCode(err, sandbox.CodePlanNotFound))

	_, err = f.svc.Buy(ctx, owner, billing.PurchaseRequest{PlanID: "pro"})
	assert.True(t, errx.IsType(err, errx.TypeValidation))

	page, err := f.svc.BillingHistory(ctx, owner, kernel.PaginationOptions{PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 400, page.Items[0].Amount)
	assert.Equal(t, "400 CVs", page.Items[0].Package())
}

type noRetryQueue struct {
	*sandboxinfra.MemoryQueue
}

func (noRetryQueue) EnqueueDelayed(context.Context, sandbox.Job, time.Duration) error {
	return errors.New("queue unavailable")
}

func TestWorkerAbandonsWhenRetryCannotBeScheduled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int
	f := newFixture(t, scorerFunc(func(context.Context, sandbox.ScoreInput) (*sandbox.Score, error) {
		calls++
		return nil, errors.New("model unavailable")
	}))
	owner := f.seed(t, "ana@example.com")
	id := f.readyPosition(t, owner, "Go")

	require.NoError(t, f.svc.StartProcessing(ctx, owner, id))

	w := NewAnalysisWorker(f.svc, noRetryQueue{f.queue}, WorkerConfig{
		Workers:     1,
		PollTimeout: 10 * time.Millisecond,
		MaxAttempts: 3,
	})
	w.Start(ctx)

	require.Eventually(t, func() bool {
		s, err := f.svc.Session(ctx, owner, id)
		return err == nil && s.IsCompleted()
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	w.Wait()

	sess, err := f.svc.Session(context.Background(), owner, id)
	require.NoError(t, err)
	require.Len(t, sess.Results, 1)
	assert.True(t, strings.HasPrefix(sess.Results[0].Explanation, "Could not score this resume"))
	assert.Equal(t, 1, calls)
}
