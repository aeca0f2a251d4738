package billingstore

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Abraxas-365/aikyuu/account/billing"
	"github.com/Abraxas-365/aikyuu/internal/apitest"
	"github.com/Abraxas-365/aikyuu/pkg/errx"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryPaginates(t *testing.T) {
	var bills []billing.Bill
	for i := 0; i < 23; i++ {
		bills = append(bills, billing.Bill{
			ID:        kernel.BillID(fmt.Sprintf("b-%d", i)),
			Amount:    (i + 1) * 10,
			CreatedAt: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		})
	}
	api := apitest.Serve(t, func(app *fiber.App) {
		app.Get("/v1/user/pointsCharges/history", func(c *fiber.Ctx) error {
			opts := kernel.PaginationOptions{PageNumber: c.QueryInt("pageNumber"), PageSize: c.QueryInt("pageSize")}
			page := kernel.NewPaginated(bills, opts)
			return c.JSON(fiber.Map{"items": page.Items, "count": page.Count})
		})
	})
	s := New(api, nil)

	page, err := s.History(context.Background(), kernel.PaginationOptions{PageNumber: 2, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "210 CVs", page.Items[0].Package())
	assert.Equal(t, "12.01.2025", page.Items[0].StartDate())

	snap := s.Snapshot()
	assert.Equal(t, kernel.Page{Number: 2, Size: 10, Total: 23, Pages: 3}, snap.Pagination)
	assert.False(t, snap.Pagination.HasNext())
	assert.Len(t, snap.Items, 3)
}

func TestHistoryFailureNotifiesFallback(t *testing.T) {
	api := apitest.Serve(t, func(app *fiber.App) {
		app.Get("/v1/user/pointsCharges/history", func(c *fiber.Ctx) error {
			return c.SendStatus(http.StatusBadGateway)
		})
	})
	rec := &storex.Recorder{}
	s := New(api, rec)

	_, err := s.History(context.Background(), kernel.PaginationOptions{})
	require.Error(t, err)
	assert.Equal(t, []storex.Notification{{Level: storex.LevelError, Message: "Failed to fetch billing history"}}, rec.All())
	assert.Error(t, s.Snapshot().Error)
}

func TestBuyProduct(t *testing.T) {
	var calls atomic.Int32
	var got billing.PurchaseRequest
	api := apitest.Serve(t, func(app *fiber.App) {
		app.Post("/v1/user/pointsCharges/buy", func(c *fiber.Ctx) error {
			calls.Add(1)
			if err := c.BodyParser(&got); err != nil {
				return err
			}
			return c.JSON(billing.Purchase{ID: "ch-1", Points: got.Quantity * 50})
		})
	})
	rec := &storex.Recorder{}
	s := New(api, rec)
	ctx := context.Background()

	_, err := s.BuyProduct(ctx, billing.PurchaseRequest{PlanID: "starter", Quantity: 0})
	e, ok := errx.As(err)
	require.True(t, ok)
	assert.Equal(t, "Quantity must be at least 1", e.Message)
	assert.Zero(t, calls.Load())

	p, err := s.BuyProduct(ctx, billing.PurchaseRequest{PlanID: "starter", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 150, p.Points)
	assert.Equal(t, billing.PurchaseRequest{PlanID: "starter", Quantity: 3}, got)
	assert.Empty(t, s.Snapshot().Items)
	assert.Equal(t, 1, rec.Count(storex.LevelSuccess))
}
