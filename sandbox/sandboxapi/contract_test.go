package sandboxapi_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Abraxas-365/aikyuu/account/auth"
	"github.com/Abraxas-365/aikyuu/account/auth/authinfra"
	"github.com/Abraxas-365/aikyuu/account/auth/authstore"
	"github.com/Abraxas-365/aikyuu/account/billing"
	"github.com/Abraxas-365/aikyuu/account/billing/billingstore"
	"github.com/Abraxas-365/aikyuu/account/profile/profilestore"
	"github.com/Abraxas-365/aikyuu/internal/apitest"
	"github.com/Abraxas-365/aikyuu/pkg/apix"
	"github.com/Abraxas-365/aikyuu/pkg/errx"
	"github.com/Abraxas-365/aikyuu/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
	"github.com/Abraxas-365/aikyuu/recruitment/analysis/analysissrv"
	"github.com/Abraxas-365/aikyuu/recruitment/analysis/analysisstore"
	"github.com/Abraxas-365/aikyuu/recruitment/criteria"
	"github.com/Abraxas-365/aikyuu/recruitment/criteria/criteriastore"
	"github.com/Abraxas-365/aikyuu/recruitment/position"
	"github.com/Abraxas-365/aikyuu/recruitment/position/positionstore"
	"github.com/Abraxas-365/aikyuu/recruitment/resume"
	"github.com/Abraxas-365/aikyuu/recruitment/resume/resumestore"
	"github.com/Abraxas-365/aikyuu/sandbox/sandboxapi"
	"github.com/Abraxas-365/aikyuu/sandbox/sandboxauth"
	"github.com/Abraxas-365/aikyuu/sandbox/sandboxinfra"
	"github.com/Abraxas-365/aikyuu/sandbox/sandboxsrv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	api    *apix.Client
	keeper *authstore.Keeper
	sender *sandboxinfra.ConsoleSender
	rec    *storex.Recorder
}

// startSandbox serves a fresh sandbox with a running worker pool and
// returns a client transport authenticated through a keeper.
func startSandbox(t *testing.T) env {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	queue := sandboxinfra.NewMemoryQueue(16)
	sender := sandboxinfra.NewConsoleSender()
	tokens := sandboxauth.NewTokenService("test-secret", time.Hour)
	svc := sandboxsrv.NewService(
		sandboxinfra.NewMemoryRepository(),
		fsxlocal.NewLocalFileSystem(t.TempDir()),
		queue,
		sandboxinfra.KeywordScorer{},
		sender,
		tokens,
		sandboxsrv.Config{StartingPoints: 20},
	)
	worker := sandboxsrv.NewAnalysisWorker(svc, queue, sandboxsrv.WorkerConfig{Workers: 1, PollTimeout: 10 * time.Millisecond})
	worker.Start(ctx)
	t.Cleanup(func() {
		cancel()
		worker.Wait()
	})

	srv := apitest.ServeApp(t, sandboxapi.NewApp(sandboxapi.NewHandlers(svc), tokens, false))
	keeper := authstore.NewKeeper(authinfra.NewMemoryTokenStore())
	return env{
		api:    apitest.NewClient(srv, keeper),
		keeper: keeper,
		sender: sender,
		rec:    &storex.Recorder{},
	}
}

func (e env) signUp(t *testing.T, email string) *authstore.Store {
	t.Helper()
	ctx := context.Background()
	store := authstore.New(e.api, e.rec, e.keeper)

	id, err := store.Signup(ctx, auth.RegisterForm{
		Name:            "Ana",
		Email:           email,
		Password:        "secret1!",
		ConfirmPassword: "secret1!",
		AgreeToTerms:    true,
	})
	require.NoError(t, err)

	sess, err := store.Verify(ctx, auth.VerifyRequest{VerificationID: id, Code: e.sender.LastCode(kernel.Email(email))})
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, kernel.Email(email), sess.Email)
	assert.False(t, sess.ExpiresAt.IsZero())
	return store
}

func TestClientAgainstSandbox(t *testing.T) {
	ctx := context.Background()
	e := startSandbox(t)
	e.signUp(t, "ana@example.com")

	positions := positionstore.New(e.api, e.rec)
	crits := criteriastore.New(e.api, e.rec, positions)
	resumes := resumestore.New(e.api, e.rec, resumestore.Config{Concurrency: 2, Checker: resumestore.PDFChecker{}})

	p, err := positions.Create(ctx, position.CreatePositionRequest{Title: "Go developer", Description: "Backend services"})
	require.NoError(t, err)
	_, err = crits.Create(ctx, p.ID, criteria.CreateCriteriaRequest{Description: "Go and Kubernetes"})
	require.NoError(t, err)

	report, err := resumes.UploadMany(ctx, p.ID, []resume.File{
		{Name: "ana.txt", Data: []byte("Go services on Kubernetes")},
		{Name: "bob.txt", Data: []byte("Photoshop")},
		{Name: "empty.txt"},
	})
	require.Error(t, err)
	assert.Equal(t, 2, report.Succeeded())
	require.Len(t, report.Failed(), 1)
	assert.Equal(t, "empty.txt", report.Failed()[0].File)

	page, err := positions.List(ctx, kernel.PaginationOptions{PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Len(t, page.Items[0].Resumes, 2)

	svc := analysissrv.NewService(positions, analysisstore.New(e.api, e.rec), nil, e.rec, analysissrv.Config{
		StatusInterval:   10 * time.Millisecond,
		ProgressInterval: 5 * time.Millisecond,
		RedirectDelay:    time.Millisecond,
		ProgressStart:    55,
		ProgressCeiling:  90,
		MaxIncrement:     1.5,
		MaxDuration:      5 * time.Second,
	})

	redirects := 0
	done, err := svc.Analyze(ctx, p.ID, analysissrv.Hooks{
		OnRedirect: func(kernel.PositionID) { redirects++ },
	})
	require.NoError(t, err)
	assert.Equal(t, 1, redirects)
	require.True(t, done.IsCompleted())

	ranked := done.RankedResumes()
	require.Len(t, ranked, 2)
	assert.Equal(t, "ana", ranked[0].Title)
	assert.Equal(t, 100.0, ranked[0].Score)
	assert.Equal(t, 0.0, ranked[1].Score)

	file, err := resumes.FetchFile(ctx, ranked[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "ana.txt", file.Name)
	assert.Equal(t, "Go services on Kubernetes", string(file.Data))

	prof, err := profilestore.New(e.api, e.rec).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 18, prof.Points)
}

func TestSandboxErrorsReachTheClient(t *testing.T) {
	ctx := context.Background()
	e := startSandbox(t)
	store := e.signUp(t, "ana@example.com")
	require.NoError(t, store.Logout(ctx))

	_, err := store.Login(ctx, auth.SignInRequest{Email: "ana@example.com", Password: "wrong-password"})
	assert.True(t, errx.IsCode(err, auth.CodeInvalidCredentials))

	_, err = positionstore.New(e.api, e.rec).GetByID(ctx, "p-1")
	assert.Equal(t, http.StatusUnauthorized, apix.StatusCode(err))

	_, err = store.Login(ctx, auth.SignInRequest{Email: "ana@example.com", Password: "secret1!"})
	require.NoError(t, err)

	_, err = positionstore.New(e.api, e.rec).GetByID(ctx, "p-1")
	assert.Equal(t, http.StatusNotFound, apix.StatusCode(err))
	assert.Equal(t, "Position not found", apix.Message(err, "fallback"))

	_, err = store.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: "nobody@example.com"})
	assert.True(t, errx.IsCode(err, auth.CodeEmailNotFound))
}

func TestBillingAgainstSandbox(t *testing.T) {
	ctx := context.Background()
	e := startSandbox(t)
	e.signUp(t, "ana@example.com")

	bills := billingstore.New(e.api, e.rec)
	purchase, err := bills.BuyProduct(ctx, billing.PurchaseRequest{PlanID: "starter", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 70, purchase.Points)

	page, err := bills.History(ctx, kernel.PaginationOptions{PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "50 CVs", page.Items[0].Package())
	assert.Equal(t, 1, bills.Snapshot().Pagination.Total)
}
