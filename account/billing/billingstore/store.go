package billingstore

import (
	"context"

	"github.com/Abraxas-365/aikyuu/account/billing"
	"github.com/Abraxas-365/aikyuu/pkg/apix"
	"github.com/Abraxas-365/aikyuu/pkg/formx"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
)

const basePath = "/v1/user/pointsCharges"

type Store struct {
	api      *apix.Client
	notifier storex.Notifier
	state    *storex.State[billing.Bill]
}

var _ billing.Store = (*Store)(nil)

func New(api *apix.Client, notifier storex.Notifier) *Store {
	return &Store{
		api:      api,
		notifier: notifier,
		state:    storex.NewState[billing.Bill](),
	}
}

func (s *Store) History(ctx context.Context, opts kernel.PaginationOptions) (*kernel.Paginated[billing.Bill], error) {
	opts = opts.Normalize()

	return storex.Run(ctx, s.state, s.notifier, storex.Op[billing.Bill, *kernel.Paginated[billing.Bill]]{
		Name:     "history",
		Fallback: "Failed to fetch billing history",
		Call: func(ctx context.Context) (*kernel.Paginated[billing.Bill], error) {
			var page kernel.Paginated[billing.Bill]
			if err := s.api.Get(ctx, basePath+"/history", opts.Query(), &page); err != nil {
				return nil, err
			}
			return &page, nil
		},
		Apply: func(d *storex.Data[billing.Bill], page *kernel.Paginated[billing.Bill]) {
			d.Items = page.Items
			d.Page = page.Page(opts)
		},
	})
}

func (s *Store) BuyProduct(ctx context.Context, req billing.PurchaseRequest) (*billing.Purchase, error) {
	return storex.Run(ctx, s.state, s.notifier, storex.Op[billing.Bill, *billing.Purchase]{
		Name:     "buy",
		Fallback: "Failed to complete the purchase",
		Success:  "Purchase completed",
		Call: func(ctx context.Context) (*billing.Purchase, error) {
			if err := formx.Validate(req).Err(); err != nil {
				return nil, err
			}
			var p billing.Purchase
			if err := s.api.Post(ctx, basePath+"/buy", req, &p); err != nil {
				return nil, err
			}
			return &p, nil
		},
	})
}

func (s *Store) Snapshot() storex.Snapshot[billing.Bill] {
	return s.state.Snapshot()
}
