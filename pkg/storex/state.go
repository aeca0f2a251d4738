package storex

import (
	"context"
	"sync"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
)

// Ticket identifies one in-flight call of an operation. Only the most recent
// ticket of an operation may write to the state.
type Ticket struct {
	op  string
	seq uint64
}

// Data is the mutable part of a State, handed to Apply callbacks
type Data[T any] struct {
	Items   []T
	Current *T
	Err     error
	Page    kernel.Page
}

// Snapshot is a consistent copy of a State
type Snapshot[T any] struct {
	Items      []T
	Current    *T
	IsLoading  bool
	Error      error
	Pagination kernel.Page
}

// State holds a resource collection, a selection and request bookkeeping.
// It is safe for concurrent use.
type State[T any] struct {
	mu       sync.RWMutex
	data     Data[T]
	inflight int
	seqs     map[string]uint64
}

func NewState[T any]() *State[T] {
	return &State[T]{seqs: make(map[string]uint64)}
}

// Begin marks the start of op, clears the last error and returns the ticket
// that must accompany every write made on behalf of this call.
func (s *State[T]) Begin(op string) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seqs == nil {
		s.seqs = make(map[string]uint64)
	}
	s.seqs[op]++
	s.inflight++
	s.data.Err = nil
	return Ticket{op: op, seq: s.seqs[op]}
}

// End marks the call behind t as finished
func (s *State[T]) End(t Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight > 0 {
		s.inflight--
	}
}

// Fresh reports whether t is still the latest ticket of its operation
func (s *State[T]) Fresh(t Ticket) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seqs[t.op] == t.seq
}

// Apply runs fn against the state when t is fresh and ctx is still live.
// It reports whether fn ran.
func (s *State[T]) Apply(ctx context.Context, t Ticket, fn func(d *Data[T])) bool {
	if ctx.Err() != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seqs[t.op] != t.seq {
		return false
	}
	fn(&s.data)
	return true
}

// Reset drops all held data, e.g. on logout
func (s *State[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = Data[T]{}
}

func (s *State[T]) Snapshot() Snapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]T, len(s.data.Items))
	copy(items, s.data.Items)

	var current *T
	if s.data.Current != nil {
		c := *s.data.Current
		current = &c
	}

	return Snapshot[T]{
		Items:      items,
		Current:    current,
		IsLoading:  s.inflight > 0,
		Error:      s.data.Err,
		Pagination: s.data.Page,
	}
}
