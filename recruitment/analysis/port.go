package analysis

import (
	"context"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
)

// Store triggers analysis runs and reads their sessions. Completion is only
// observed by polling the position's status.
type Store interface {
	// StartProcessing asks the server to analyze every resume of a position
	StartProcessing(ctx context.Context, positionID kernel.PositionID) error

	// GetSession fetches the current analysis session and keeps it as Current
	GetSession(ctx context.Context, positionID kernel.PositionID) (*Session, error)

	Snapshot() storex.Snapshot[Session]
}
