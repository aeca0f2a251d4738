package storex

import (
	"context"

	"github.com/Abraxas-365/aikyuu/pkg/apix"
)

// Op describes one store action for Run
type Op[T, R any] struct {
	// Name fences concurrent calls: a newer call of the same Name makes older
	// responses stale.
	Name string
	// Fallback is the message notified when the server does not send one
	Fallback string
	// Success, when set, is notified after a successful call
	Success string
	Call    func(ctx context.Context) (R, error)
	// Apply writes the result into the state. Nil leaves the state untouched.
	Apply func(d *Data[T], r R)
}

// Run executes op against s: it tracks loading, applies the result only while
// the call is the latest of its kind, records and notifies failures and
// returns the call's own result and error either way.
func Run[T, R any](ctx context.Context, s *State[T], n Notifier, op Op[T, R]) (R, error) {
	t := s.Begin(op.Name)
	defer s.End(t)

	r, err := op.Call(ctx)
	if err != nil {
		s.Apply(ctx, t, func(d *Data[T]) { d.Err = err })
		if n != nil && ctx.Err() == nil {
			n.Notify(LevelError, apix.Message(err, op.Fallback))
		}
		return r, err
	}

	s.Apply(ctx, t, func(d *Data[T]) {
		d.Err = nil
		if op.Apply != nil {
			op.Apply(d, r)
		}
	})
	if n != nil && op.Success != "" {
		n.Notify(LevelSuccess, op.Success)
	}
	return r, nil
}
