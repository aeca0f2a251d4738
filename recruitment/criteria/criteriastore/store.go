package criteriastore

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/aikyuu/pkg/apix"
	"github.com/Abraxas-365/aikyuu/pkg/formx"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/logx"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
	"github.com/Abraxas-365/aikyuu/recruitment/criteria"
)

// PositionRefresher re-fetches the position that owns the criteria
type PositionRefresher interface {
	Refresh(ctx context.Context, id kernel.PositionID) error
}

type Store struct {
	api       *apix.Client
	notifier  storex.Notifier
	positions PositionRefresher
	state     *storex.State[criteria.Criteria]
}

var _ criteria.Store = (*Store)(nil)

// New creates the store. positions may be nil when no position view needs
// to be kept in sync.
func New(api *apix.Client, notifier storex.Notifier, positions PositionRefresher) *Store {
	return &Store{
		api:       api,
		notifier:  notifier,
		positions: positions,
		state:     storex.NewState[criteria.Criteria](),
	}
}

func listPath(positionID kernel.PositionID) string {
	return fmt.Sprintf("/v1/positions/%s/criterias", positionID)
}

func (s *Store) List(ctx context.Context, positionID kernel.PositionID) ([]criteria.Criteria, error) {
	return storex.Run(ctx, s.state, s.notifier, storex.Op[criteria.Criteria, []criteria.Criteria]{
		Name:     "list",
		Fallback: "Failed to fetch criteria",
		Call: func(ctx context.Context) ([]criteria.Criteria, error) {
			if positionID.IsEmpty() {
				return nil, criteria.ErrMissingPosition()
			}
			var items []criteria.Criteria
			if err := s.api.Get(ctx, listPath(positionID), nil, &items); err != nil {
				return nil, err
			}
			return items, nil
		},
		Apply: func(d *storex.Data[criteria.Criteria], items []criteria.Criteria) {
			d.Items = items
		},
	})
}

func (s *Store) Create(ctx context.Context, positionID kernel.PositionID, req criteria.CreateCriteriaRequest) (*criteria.Criteria, error) {
	created, err := storex.Run(ctx, s.state, s.notifier, storex.Op[criteria.Criteria, *criteria.Criteria]{
		Name:     "create",
		Fallback: "Failed to add criteria",
		Success:  "Criteria added",
		Call: func(ctx context.Context) (*criteria.Criteria, error) {
			if positionID.IsEmpty() {
				return nil, criteria.ErrMissingPosition()
			}
			if err := formx.Validate(req).Err(); err != nil {
				return nil, err
			}
			var c criteria.Criteria
			if err := s.api.Post(ctx, listPath(positionID), req, &c); err != nil {
				return nil, err
			}
			return &c, nil
		},
	})
	if err != nil {
		return nil, err
	}

	s.refresh(ctx, positionID)
	return created, nil
}

// Delete removes one criteria on the server and from the held list. Each id
// has its own fence so overlapping deletes all filter the list.
func (s *Store) Delete(ctx context.Context, positionID kernel.PositionID, id kernel.CriteriaID) error {
	_, err := storex.Run(ctx, s.state, s.notifier, storex.Op[criteria.Criteria, struct{}]{
		Name:     "delete:" + id.String(),
		Fallback: "Failed to delete criteria",
		Success:  "Criteria deleted",
		Call: func(ctx context.Context) (struct{}, error) {
			if id.IsEmpty() {
				return struct{}{}, criteria.ErrCriteriaNotFound()
			}
			return struct{}{}, s.api.Delete(ctx, "/v1/criterias/"+id.String())
		},
		Apply: func(d *storex.Data[criteria.Criteria], _ struct{}) {
			d.Items = criteria.Without(d.Items, id)
		},
	})
	if err != nil {
		return err
	}

	s.refresh(ctx, positionID)
	return nil
}

// refresh keeps the owning position current. A failed refresh is already
// notified by the position store and does not fail the mutation.
func (s *Store) refresh(ctx context.Context, positionID kernel.PositionID) {
	if s.positions == nil || positionID.IsEmpty() {
		return
	}
	if err := s.positions.Refresh(ctx, positionID); err != nil {
		logx.Warnf("refresh position %s after criteria change: %v", positionID, err)
	}
}

func (s *Store) Snapshot() storex.Snapshot[criteria.Criteria] {
	return s.state.Snapshot()
}
