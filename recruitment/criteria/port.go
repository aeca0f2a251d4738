package criteria

import (
	"context"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
)

// Store holds the criteria of the position being edited.
//
// Create and Delete re-fetch the owning position on success so its nested
// criteria list is current. Delete additionally filters the local list; no
// other call patches local state.
type Store interface {
	// List replaces the held criteria with the position's criteria
	List(ctx context.Context, positionID kernel.PositionID) ([]Criteria, error)

	// Create adds a criteria and returns it as stored by the server
	Create(ctx context.Context, positionID kernel.PositionID, req CreateCriteriaRequest) (*Criteria, error)

	// Delete removes a criteria of the given position
	Delete(ctx context.Context, positionID kernel.PositionID, id kernel.CriteriaID) error

	Snapshot() storex.Snapshot[Criteria]
}
