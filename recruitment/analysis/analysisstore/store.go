package analysisstore

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/aikyuu/pkg/apix"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
	"github.com/Abraxas-365/aikyuu/recruitment/analysis"
	"github.com/Abraxas-365/aikyuu/recruitment/position"
)

type Store struct {
	api      *apix.Client
	notifier storex.Notifier
	state    *storex.State[analysis.Session]
}

var _ analysis.Store = (*Store)(nil)

func New(api *apix.Client, notifier storex.Notifier) *Store {
	return &Store{
		api:      api,
		notifier: notifier,
		state:    storex.NewState[analysis.Session](),
	}
}

func (s *Store) StartProcessing(ctx context.Context, positionID kernel.PositionID) error {
	_, err := storex.Run(ctx, s.state, s.notifier, storex.Op[analysis.Session, struct{}]{
		Name:     "start",
		Fallback: "Failed to start analysis",
		Success:  "Analysis started",
		Call: func(ctx context.Context) (struct{}, error) {
			if positionID.IsEmpty() {
				return struct{}{}, position.ErrMissingID()
			}
			return struct{}{}, s.api.Post(ctx, fmt.Sprintf("/v1/positions/%s/process", positionID), nil, nil)
		},
	})
	return err
}

func (s *Store) GetSession(ctx context.Context, positionID kernel.PositionID) (*analysis.Session, error) {
	return storex.Run(ctx, s.state, s.notifier, storex.Op[analysis.Session, *analysis.Session]{
		Name:     "session",
		Fallback: "Failed to fetch analysis session",
		Call: func(ctx context.Context) (*analysis.Session, error) {
			if positionID.IsEmpty() {
				return nil, position.ErrMissingID()
			}
			var sess analysis.Session
			if err := s.api.Get(ctx, fmt.Sprintf("/v1/positions/%s/analysis", positionID), nil, &sess); err != nil {
				return nil, err
			}
			return &sess, nil
		},
		Apply: func(d *storex.Data[analysis.Session], sess *analysis.Session) {
			cp := *sess
			d.Current = &cp
		},
	})
}

func (s *Store) Snapshot() storex.Snapshot[analysis.Session] {
	return s.state.Snapshot()
}
