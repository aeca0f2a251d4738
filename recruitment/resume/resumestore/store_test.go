package resumestore

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Abraxas-365/aikyuu/internal/apitest"
	"github.com/Abraxas-365/aikyuu/pkg/errx"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
	"github.com/Abraxas-365/aikyuu/recruitment/resume"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// acceptAll lets every non-empty file through so tests exercise the server
type acceptAll struct{}

func (acceptAll) Check(f resume.File) error {
	if len(f.Data) == 0 {
		return resume.ErrEmptyFile(f.Name)
	}
	return nil
}

func uploadRoutes(attempts *atomic.Int32) func(app *fiber.App) {
	return func(app *fiber.App) {
		app.Post("/v1/positions/:id/resumes", func(c *fiber.Ctx) error {
			attempts.Add(1)
			fh, err := c.FormFile("file")
			if err != nil {
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "file is required"})
			}
			if strings.HasPrefix(fh.Filename, "bad") {
				return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "storage unavailable"})
			}
			return c.Status(http.StatusCreated).JSON(resume.Resume{
				ID:         kernel.ResumeID("r-" + fh.Filename),
				PositionID: kernel.PositionID(c.Params("id")),
				Title:      fh.Filename,
			})
		})
	}
}

func TestUploadManyAttemptsEveryFile(t *testing.T) {
	var attempts atomic.Int32
	rec := &storex.Recorder{}
	store := New(apitest.Serve(t, uploadRoutes(&attempts)), rec, Config{Checker: acceptAll{}})

	files := []resume.File{
		{Name: "ana.pdf", Data: []byte("a")},
		{Name: "bad-1.pdf", Data: []byte("b")},
		{Name: "luis.docx", Data: []byte("c")},
		{Name: "bad-2.pdf", Data: []byte("d")},
		{Name: "empty.pdf"},
	}

	report, err := store.UploadMany(context.Background(), "pos-1", files)
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, resume.CodeUploadFailed))

	assert.EqualValues(t, 4, attempts.Load())
	require.Len(t, report.Results, 5)
	assert.Equal(t, 2, report.Succeeded())
	assert.Len(t, report.Failed(), 3)

	for i, f := range files {
		assert.Equal(t, f.Name, report.Results[i].File)
	}
	assert.True(t, report.Results[0].OK())
	assert.Equal(t, kernel.ResumeID("r-ana.pdf"), report.Results[0].Resume.ID)
	assert.True(t, errx.IsCode(report.Results[4].Err, resume.CodeEmptyFile))

	assert.Equal(t, []storex.Notification{
		{Level: storex.LevelError, Message: "3 of 5 resumes could not be uploaded"},
	}, rec.All())
	assert.False(t, store.Snapshot().IsLoading)
}

func TestUploadManyRunsConcurrently(t *testing.T) {
	const n = 3
	var arrived atomic.Int32
	all := make(chan struct{})

	client := apitest.Serve(t, func(app *fiber.App) {
		app.Post("/v1/positions/:id/resumes", func(c *fiber.Ctx) error {
			if arrived.Add(1) == n {
				close(all)
			}
			select {
			case <-all:
				return c.JSON(resume.Resume{ID: "r"})
			case <-time.After(5 * time.Second):
				return c.SendStatus(http.StatusGatewayTimeout)
			}
		})
	})
	rec := &storex.Recorder{}
	store := New(client, rec, Config{Checker: acceptAll{}})

	files := make([]resume.File, n)
	for i := range files {
		files[i] = resume.File{Name: "cv.pdf", Data: []byte("x")}
	}

	report, err := store.UploadMany(context.Background(), "pos-1", files)
	require.NoError(t, err)
	assert.Equal(t, n, report.Succeeded())
	assert.Equal(t, "3 resumes uploaded", rec.All()[0].Message)
}

func TestUploadManyRespectsConcurrencyLimit(t *testing.T) {
	var mu sync.Mutex
	active, peak := 0, 0

	client := apitest.Serve(t, func(app *fiber.App) {
		app.Post("/v1/positions/:id/resumes", func(c *fiber.Ctx) error {
			mu.Lock()
			active++
			if active > peak {
				peak = active
			}
			mu.Unlock()

			time.Sleep(20 * time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
			return c.JSON(resume.Resume{ID: "r"})
		})
	})
	store := New(client, nil, Config{Concurrency: 2, Checker: acceptAll{}})

	files := make([]resume.File, 6)
	for i := range files {
		files[i] = resume.File{Name: "cv.pdf", Data: []byte("x")}
	}
	_, err := store.UploadMany(context.Background(), "pos-1", files)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, 2)
}

func TestUploadManyWithoutFiles(t *testing.T) {
	store := New(apitest.Serve(t, func(*fiber.App) {}), nil, Config{})
	_, err := store.UploadMany(context.Background(), "pos-1", nil)
	assert.True(t, errx.IsCode(err, resume.CodeNoFiles))
}

func TestUploadRejectsUnreadablePDF(t *testing.T) {
	var attempts atomic.Int32
	rec := &storex.Recorder{}
	store := New(apitest.Serve(t, uploadRoutes(&attempts)), rec, Config{})

	_, err := store.Upload(context.Background(), "pos-1", resume.File{Name: "cv.pdf", Data: []byte("not really a pdf")})
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, resume.CodeUnreadablePDF))
	assert.Zero(t, attempts.Load())
	assert.Equal(t, "PDF could not be read", rec.All()[0].Message)
}

func TestListAndDeleteDoNotPatchLocally(t *testing.T) {
	var mu sync.Mutex
	items := []resume.Resume{{ID: "r-1", Title: "ana.pdf"}, {ID: "r-2", Title: "luis.pdf"}}

	client := apitest.Serve(t, func(app *fiber.App) {
		app.Get("/v1/positions/:id/resumes", func(c *fiber.Ctx) error {
			mu.Lock()
			defer mu.Unlock()
			opts := kernel.PaginationOptions{PageNumber: c.QueryInt("pageNumber"), PageSize: c.QueryInt("pageSize")}
			return c.JSON(kernel.NewPaginated(items, opts))
		})
		app.Delete("/v1/resumes/:id", func(c *fiber.Ctx) error {
			mu.Lock()
			defer mu.Unlock()
			items = items[1:]
			return c.SendStatus(http.StatusNoContent)
		})
		app.Get("/v1/resumes/:id/file", func(c *fiber.Ctx) error {
			c.Set("Content-Type", "application/pdf")
			c.Set("Content-Disposition", `attachment; filename="luis.pdf"`)
			return c.SendString("%PDF-1.4")
		})
	})
	store := New(client, nil, Config{})
	ctx := context.Background()

	_, err := store.List(ctx, "pos-1", kernel.PaginationOptions{PageSize: 1})
	require.NoError(t, err)
	snap := store.Snapshot()
	assert.Len(t, snap.Items, 1)
	assert.Equal(t, 2, snap.Pagination.Pages)

	require.NoError(t, store.Delete(ctx, "r-1"))
	assert.Equal(t, kernel.ResumeID("r-1"), store.Snapshot().Items[0].ID)

	file, err := store.FetchFile(ctx, "r-2")
	require.NoError(t, err)
	assert.Equal(t, "luis.pdf", file.Name)
}
