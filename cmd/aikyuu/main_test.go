package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Abraxas-365/aikyuu/account/auth"
	"github.com/Abraxas-365/aikyuu/internal/apitest"
	"github.com/Abraxas-365/aikyuu/pkg/config"
	"github.com/Abraxas-365/aikyuu/pkg/errx"
	"github.com/Abraxas-365/aikyuu/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
	"github.com/Abraxas-365/aikyuu/recruitment/report"
	"github.com/Abraxas-365/aikyuu/sandbox/sandboxapi"
	"github.com/Abraxas-365/aikyuu/sandbox/sandboxauth"
	"github.com/Abraxas-365/aikyuu/sandbox/sandboxinfra"
	"github.com/Abraxas-365/aikyuu/sandbox/sandboxsrv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubcommandAndPositional(t *testing.T) {
	_, _, err := subcommand(nil, "positions <list>")
	assert.EqualError(t, err, "usage: aikyuu positions <list>")

	verb, rest, err := subcommand([]string{"get", "p-1"}, "positions <get>")
	require.NoError(t, err)
	assert.Equal(t, "get", verb)
	assert.Equal(t, []string{"p-1"}, rest)

	fs := flag.NewFlagSet("criteria add", flag.ContinueOnError)
	desc := fs.String("description", "", "")
	id, err := positional(fs, []string{"-description", "Go", "p-1"}, "position-id")
	require.NoError(t, err)
	assert.Equal(t, "p-1", id)
	assert.Equal(t, "Go", *desc)

	_, err = positional(flag.NewFlagSet("positions get", flag.ContinueOnError), nil, "position-id")
	assert.EqualError(t, err, "usage: aikyuu positions get <position-id>")
}

func TestCommandsAgainstSandbox(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := sandboxinfra.NewMemoryQueue(8)
	sender := sandboxinfra.NewConsoleSender()
	tokens := sandboxauth.NewTokenService("test-secret", time.Hour)
	svc := sandboxsrv.NewService(sandboxinfra.NewMemoryRepository(), fsxlocal.NewLocalFileSystem(t.TempDir()),
		queue, sandboxinfra.KeywordScorer{}, sender, tokens, sandboxsrv.Config{})
	worker := sandboxsrv.NewAnalysisWorker(svc, queue, sandboxsrv.WorkerConfig{Workers: 1, PollTimeout: 10 * time.Millisecond})
	worker.Start(ctx)
	t.Cleanup(worker.Wait)
	t.Cleanup(cancel)

	srv := apitest.ServeApp(t, sandboxapi.NewApp(sandboxapi.NewHandlers(svc), tokens, false))

	cfg := config.Default()
	cfg.API.BaseURL = srv.URL
	cfg.Session.Store = "memory"
	cfg.Export.Sink = "local"
	cfg.Export.Dir = t.TempDir()
	cfg.Polling.StatusInterval = 10 * time.Millisecond
	cfg.Polling.ProgressInterval = 5 * time.Millisecond
	cfg.Polling.RedirectDelay = time.Millisecond

	c, err := NewContainer(ctx, cfg, &storex.Recorder{})
	require.NoError(t, err)
	defer c.Close()

	id, err := c.Auth.Signup(ctx, auth.RegisterForm{
		Name: "Ana", Email: "ana@example.com", Password: "secret1!", ConfirmPassword: "secret1!", AgreeToTerms: true,
	})
	require.NoError(t, err)
	require.NoError(t, runVerify(ctx, c, []string{"-id", string(id), "-code", sender.LastCode("ana@example.com")}))

	require.NoError(t, runPositions(ctx, c, []string{"create", "-title", "Go developer", "-description", "Backend"}))
	require.NoError(t, runPositions(ctx, c, []string{"list"}))
	listed := c.Positions.Snapshot().Items
	require.Len(t, listed, 1)
	pid := string(listed[0].ID)

	require.NoError(t, runCriteria(ctx, c, []string{"add", "-description", "Go and Kubernetes", pid}))

	cv := filepath.Join(t.TempDir(), "ana.txt")
	require.NoError(t, os.WriteFile(cv, []byte("Go on Kubernetes"), 0o600))
	require.NoError(t, runResumes(ctx, c, []string{"upload", "-position", pid, cv}))

	err = runExport(ctx, c, []string{pid})
	assert.True(t, errx.IsCode(err, report.CodeNotCompleted))

	require.NoError(t, runAnalyze(ctx, c, []string{pid}))
	assert.True(t, c.Prefs.State().ShowAnalysis)
	assert.False(t, c.Prefs.State().IsAnalyzing)

	require.NoError(t, runExport(ctx, c, []string{"-format", "json", pid}))
	p, err := c.Positions.GetByID(ctx, kernel.NewPositionID(pid))
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(cfg.Export.Dir, "reports", report.Build(p, time.Now()).FileName(report.FormatJSON)))
	require.NoError(t, err)
	assert.Contains(t, string(data), "ana")

	require.NoError(t, runLogout(ctx, c, nil))
	assert.Nil(t, c.Keeper.Current())
}
