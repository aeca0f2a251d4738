package sandboxauth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abraxas-365/aikyuu/pkg/errx"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/sandbox"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Generate("u-1", "ana@example.com")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, kernel.UserID("u-1"), claims.UserID())
	assert.Equal(t, kernel.Email("ana@example.com"), claims.Email)
}

func TestTokenRejectsOtherSecretAndExpiry(t *testing.T) {
	token, err := NewTokenService("secret", time.Hour).Generate("u-1", "ana@example.com")
	require.NoError(t, err)

	_, err = NewTokenService("other", time.Hour).Validate(token)
	assert.True(t, errx.IsCode(err, sandbox.CodeUnauthorized))

	late := NewTokenService("secret", time.Hour)
	late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = late.Validate(token)
	assert.True(t, errx.IsCode(err, sandbox.CodeUnauthorized))
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("abcdefg1!")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "abcdefg1!"))
	assert.False(t, CheckPassword(hash, "abcdefg1?"))
	assert.False(t, CheckPassword("not-a-hash", "abcdefg1!"))
}

func TestMiddleware(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := errx.As(err); ok {
				return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
			}
			return c.SendStatus(http.StatusInternalServerError)
		},
	})
	app.Get("/me", Middleware(svc), func(c *fiber.Ctx) error {
		id, ok := UserID(c)
		if !ok {
			return c.SendStatus(http.StatusTeapot)
		}
		return c.SendString(id.String())
	})

	token, err := svc.Generate("u-7", "ana@example.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + token, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
