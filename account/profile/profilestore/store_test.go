package profilestore

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Abraxas-365/aikyuu/account/profile"
	"github.com/Abraxas-365/aikyuu/internal/apitest"
	"github.com/Abraxas-365/aikyuu/pkg/errx"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type backend struct {
	mu       sync.Mutex
	uploaded string
	magic    []byte
	feedback profile.FeedbackRequest
	password profile.ChangePasswordBody
	calls    atomic.Int32
}

func (b *backend) routes(app *fiber.App) {
	app.Use(func(c *fiber.Ctx) error {
		b.calls.Add(1)
		return c.Next()
	})
	app.Get("/v1/user/profile", func(c *fiber.Ctx) error {
		return c.JSON(profile.Profile{ID: "u-1", Name: "Ana", Email: "ana@example.com", Points: 40})
	})
	app.Post("/v1/user/photo", func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "file is required"})
		}
		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()
		data, _ := io.ReadAll(f)

		b.mu.Lock()
		b.uploaded = fh.Filename
		b.magic = data[:2]
		b.mu.Unlock()
		return c.JSON(profile.Photo{URL: "https://cdn.example.test/" + fh.Filename})
	})
	app.Post("/v1/user/feedback", func(c *fiber.Ctx) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		return c.BodyParser(&b.feedback)
	})
	app.Post("/v1/user/change-password", func(c *fiber.Ctx) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		if err := c.BodyParser(&b.password); err != nil {
			return err
		}
		if b.password.OldPassword != "current1!" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "wrong password"})
		}
		return c.SendStatus(http.StatusNoContent)
	})
}

func newStore(t *testing.T) (*Store, *backend, *storex.Recorder) {
	b := &backend{}
	rec := &storex.Recorder{}
	return New(apitest.Serve(t, b.routes), rec), b, rec
}

func TestGetSetsCurrent(t *testing.T) {
	s, _, _ := newStore(t)

	p, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)
	require.NotNil(t, s.Snapshot().Current)
	assert.Equal(t, 40, s.Snapshot().Current.Points)
}

func TestSendFeedbackUploadsImageFirst(t *testing.T) {
	s, b, rec := newStore(t)

	err := s.SendFeedback(context.Background(), profile.FeedbackForm{
		Title:       "Export button",
		Description: "Please add PDF export",
		Attachment:  &profile.Attachment{Name: "screen.png", Data: pngImage(t)},
	})
	require.NoError(t, err)

	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Equal(t, "screen.jpg", b.uploaded)
	assert.Equal(t, []byte{0xFF, 0xD8}, b.magic)
	assert.Equal(t, profile.FeedbackRequest{
		Title:       "Export button",
		Description: "Please add PDF export",
		ImageURL:    "https://cdn.example.test/screen.jpg",
	}, b.feedback)
	assert.Equal(t, 1, rec.Count(storex.LevelSuccess))
}

func TestSendFeedbackWithoutAttachment(t *testing.T) {
	s, b, _ := newStore(t)

	require.NoError(t, s.SendFeedback(context.Background(), profile.FeedbackForm{Title: "Hi", Description: "Works well"}))
	assert.EqualValues(t, 1, b.calls.Load())
	assert.Empty(t, b.feedback.ImageURL)
}

func TestSendFeedbackRejectsBadInput(t *testing.T) {
	s, b, _ := newStore(t)
	ctx := context.Background()

	err := s.SendFeedback(ctx, profile.FeedbackForm{Title: string(make([]byte, 101)), Description: "x"})
	e, ok := errx.As(err)
	require.True(t, ok)
	assert.Equal(t, "Title is too long", e.Message)

	err = s.SendFeedback(ctx, profile.FeedbackForm{
		Title: "t", Description: "d", Attachment: &profile.Attachment{Name: "notes.txt", Data: []byte("plain text")},
	})
	assert.True(t, errx.IsCode(err, profile.CodeBadImage))
	assert.Zero(t, b.calls.Load())
}

func TestChangePassword(t *testing.T) {
	s, b, rec := newStore(t)
	ctx := context.Background()

	err := s.ChangePassword(ctx, profile.ChangePasswordRequest{OldPassword: "current1!", NewPassword: "abcdefg1!", ConfirmPassword: "abcdefg1?"})
	e, _ := errx.As(err)
	assert.Equal(t, "Passwords don't match", e.Message)
	assert.Zero(t, b.calls.Load())

	err = s.ChangePassword(ctx, profile.ChangePasswordRequest{OldPassword: "nope", NewPassword: "abcdefg1!", ConfirmPassword: "abcdefg1!"})
	assert.True(t, errx.IsCode(err, profile.CodeWrongPassword))

	require.NoError(t, s.ChangePassword(ctx, profile.ChangePasswordRequest{OldPassword: "current1!", NewPassword: "abcdefg1!", ConfirmPassword: "abcdefg1!"}))
	assert.Equal(t, profile.ChangePasswordBody{OldPassword: "current1!", NewPassword: "abcdefg1!"}, b.password)
	assert.Equal(t, 1, rec.Count(storex.LevelSuccess))
}
