// Package apitest spins up throwaway fiber apps behind httptest so stores can
// be exercised against a real HTTP round trip.
package apitest

import (
	"net/http/httptest"
	"testing"

	"github.com/Abraxas-365/aikyuu/pkg/apix"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"golang.org/x/oauth2"
)

// NewServer registers routes on a fresh fiber app and serves it until the
// test ends.
func NewServer(t testing.TB, routes func(app *fiber.App)) *httptest.Server {
	t.Helper()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	routes(app)
	return ServeApp(t, app)
}

// ServeApp serves an already configured app until the test ends
func ServeApp(t testing.TB, app *fiber.App) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return srv
}

// NewClient returns a transport pointed at srv
func NewClient(srv *httptest.Server, tokens oauth2.TokenSource) *apix.Client {
	return apix.NewClient(apix.Config{BaseURL: srv.URL}, tokens)
}

// Serve is NewServer followed by NewClient without credentials
func Serve(t testing.TB, routes func(app *fiber.App)) *apix.Client {
	t.Helper()
	return NewClient(NewServer(t, routes), nil)
}

// StaticToken is a fixed oauth2 token source
func StaticToken(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
}
