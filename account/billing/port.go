package billing

import (
	"context"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
)

// Store holds a page of the billing history. BuyProduct does not touch the
// held page; callers re-fetch History.
type Store interface {
	History(ctx context.Context, opts kernel.PaginationOptions) (*kernel.Paginated[Bill], error)
	BuyProduct(ctx context.Context, req PurchaseRequest) (*Purchase, error)
	Snapshot() storex.Snapshot[Bill]
}
