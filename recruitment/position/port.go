package position

import (
	"context"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
)

// Store holds the position list (Items) and the opened position (Current).
// The two are fetched independently and Current need not appear in Items.
//
// Create, Update, Delete and Duplicate never touch Items or Current: after
// any of them the held list is stale until List is called again.
type Store interface {
	// List fetches one page of positions and replaces Items and Pagination
	List(ctx context.Context, opts kernel.PaginationOptions) (*kernel.Paginated[Position], error)

	// GetByID fetches a position, stores it as Current and returns it
	GetByID(ctx context.Context, id kernel.PositionID) (*Position, error)

	// Create returns the position as created by the server
	Create(ctx context.Context, req CreatePositionRequest) (*Position, error)

	Update(ctx context.Context, id kernel.PositionID, req UpdatePositionRequest) error

	Delete(ctx context.Context, id kernel.PositionID) error

	// Duplicate returns the server-side copy of a position
	Duplicate(ctx context.Context, id kernel.PositionID) (*Position, error)

	Snapshot() storex.Snapshot[Position]
}

// Getter fetches a single position. The analysis coordinator depends on it.
type Getter interface {
	GetByID(ctx context.Context, id kernel.PositionID) (*Position, error)
}
