package positionstore

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/aikyuu/pkg/apix"
	"github.com/Abraxas-365/aikyuu/pkg/formx"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/logx"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
	"github.com/Abraxas-365/aikyuu/recruitment/position"
)

const basePath = "/v1/positions"

// Store is the HTTP-backed position.Store
type Store struct {
	api      *apix.Client
	notifier storex.Notifier
	state    *storex.State[position.Position]
}

var _ position.Store = (*Store)(nil)

func New(api *apix.Client, notifier storex.Notifier) *Store {
	return &Store{
		api:      api,
		notifier: notifier,
		state:    storex.NewState[position.Position](),
	}
}

func itemPath(id kernel.PositionID) string {
	return fmt.Sprintf("%s/%s", basePath, id)
}

func (s *Store) List(ctx context.Context, opts kernel.PaginationOptions) (*kernel.Paginated[position.Position], error) {
	opts = opts.Normalize()

	return storex.Run(ctx, s.state, s.notifier, storex.Op[position.Position, *kernel.Paginated[position.Position]]{
		Name:     "list",
		Fallback: "Failed to fetch positions",
		Call: func(ctx context.Context) (*kernel.Paginated[position.Position], error) {
			var page kernel.Paginated[position.Position]
			if err := s.api.Get(ctx, basePath, opts.Query(), &page); err != nil {
				return nil, err
			}
			return &page, nil
		},
		Apply: func(d *storex.Data[position.Position], page *kernel.Paginated[position.Position]) {
			d.Items = page.Items
			d.Page = page.Page(opts)
		},
	})
}

// GetByID makes the fetched position Current. The server copy always wins;
// a status that moved backwards is recorded as the state error.
func (s *Store) GetByID(ctx context.Context, id kernel.PositionID) (*position.Position, error) {
	if id.IsEmpty() {
		return nil, position.ErrMissingID()
	}

	return storex.Run(ctx, s.state, s.notifier, storex.Op[position.Position, *position.Position]{
		Name:     "get",
		Fallback: "Failed to fetch position",
		Call: func(ctx context.Context) (*position.Position, error) {
			var p position.Position
			if err := s.api.Get(ctx, itemPath(id), nil, &p); err != nil {
				return nil, err
			}
			return &p, nil
		},
		Apply: func(d *storex.Data[position.Position], p *position.Position) {
			if d.Current != nil && d.Current.ID == p.ID && !d.Current.Status.CanAdvanceTo(p.Status) {
				logx.Warnf("position %s status went from %s to %s", p.ID, d.Current.Status, p.Status)
				d.Err = position.ErrStatusRegressed(d.Current.Status, p.Status)
			}
			cp := *p
			d.Current = &cp
		},
	})
}

// Refresh re-fetches a position into Current. It satisfies the refresher
// used by the criteria and resume stores.
func (s *Store) Refresh(ctx context.Context, id kernel.PositionID) error {
	_, err := s.GetByID(ctx, id)
	return err
}

func (s *Store) Create(ctx context.Context, req position.CreatePositionRequest) (*position.Position, error) {
	return storex.Run(ctx, s.state, s.notifier, storex.Op[position.Position, *position.Position]{
		Name:     "create",
		Fallback: "Failed to create position",
		Success:  "Position created",
		Call: func(ctx context.Context) (*position.Position, error) {
			if err := formx.Validate(req).Err(); err != nil {
				return nil, err
			}
			var p position.Position
			if err := s.api.Post(ctx, basePath, req, &p); err != nil {
				return nil, err
			}
			return &p, nil
		},
	})
}

func (s *Store) Update(ctx context.Context, id kernel.PositionID, req position.UpdatePositionRequest) error {
	_, err := storex.Run(ctx, s.state, s.notifier, storex.Op[position.Position, struct{}]{
		Name:     "update",
		Fallback: "Failed to update position",
		Success:  "Position updated",
		Call: func(ctx context.Context) (struct{}, error) {
			if id.IsEmpty() {
				return struct{}{}, position.ErrMissingID()
			}
			if err := formx.Validate(req).Err(); err != nil {
				return struct{}{}, err
			}
			return struct{}{}, s.api.Put(ctx, itemPath(id), req, nil)
		},
	})
	return err
}

func (s *Store) Delete(ctx context.Context, id kernel.PositionID) error {
	_, err := storex.Run(ctx, s.state, s.notifier, storex.Op[position.Position, struct{}]{
		Name:     "delete",
		Fallback: "Failed to delete position",
		Success:  "Position deleted",
		Call: func(ctx context.Context) (struct{}, error) {
			if id.IsEmpty() {
				return struct{}{}, position.ErrMissingID()
			}
			return struct{}{}, s.api.Delete(ctx, itemPath(id))
		},
	})
	return err
}

func (s *Store) Duplicate(ctx context.Context, id kernel.PositionID) (*position.Position, error) {
	return storex.Run(ctx, s.state, s.notifier, storex.Op[position.Position, *position.Position]{
		Name:     "duplicate",
		Fallback: "Failed to duplicate position",
		Success:  "Position duplicated",
		Call: func(ctx context.Context) (*position.Position, error) {
			if id.IsEmpty() {
				return nil, position.ErrMissingID()
			}
			var p position.Position
			if err := s.api.Post(ctx, itemPath(id)+"/duplicate", nil, &p); err != nil {
				return nil, err
			}
			return &p, nil
		},
	})
}

func (s *Store) Snapshot() storex.Snapshot[position.Position] {
	return s.state.Snapshot()
}
