// Package portfolio holds the live canonical record and its undo/redo
// history. All mutation goes through store commands; nothing else may touch
// the record, which keeps the store testable in isolation and lets multiple
// independent instances coexist.
package portfolio

import (
	"errors"
	"sync"
	"time"

	"github.com/jonathan/folioflow/internal/types"
)

// ErrNothingToUndo is returned by Undo on an empty history; it is a
// user-visible notice, not a failure.
var ErrNothingToUndo = errors.New("nothing to undo")

// ErrNothingToRedo is the redo counterpart of ErrNothingToUndo.
var ErrNothingToRedo = errors.New("nothing to redo")

// StoreOptions tunes history capacity and the text-edit quiet period.
type StoreOptions struct {
	// Capacity bounds each of the past and future stacks.
	Capacity int
	// Debounce is the quiet period after the last text keystroke before the
	// pending snapshot is committed.
	Debounce time.Duration
}

// DefaultStoreOptions returns the production tuning.
func DefaultStoreOptions() StoreOptions {
	return StoreOptions{Capacity: 50, Debounce: time.Second}
}

// Store is the edit store: one live record, two bounded snapshot stacks,
// and a restore guard. Go handlers are concurrent even though the intended
// client is a single session, so a mutex protects the whole state machine.
type Store struct {
	mu        sync.Mutex
	data      *types.CanonicalResume
	past      []*types.CanonicalResume
	future    []*types.CanonicalResume
	opts      StoreOptions
	restoring bool

	pending *types.CanonicalResume
	timer   *time.Timer
}

// NewStore creates an empty store.
func NewStore(opts StoreOptions) *Store {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultStoreOptions().Capacity
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultStoreOptions().Debounce
	}
	return &Store{data: types.NewCanonicalResume(), opts: opts}
}

// Data returns a deep copy of the live record.
func (s *Store) Data() *types.CanonicalResume {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// CanUndo reports whether the past stack is non-empty.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.past) > 0
}

// CanRedo reports whether the future stack is non-empty.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.future) > 0
}

// Replace swaps in a whole new record (a finished import). The previous
// state is committed so the swap is undoable.
func (s *Store) Replace(data *types.CanonicalResume) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushPendingLocked()
	s.commitLocked(s.data.Clone())
	s.data = data.Clone()
}

// Update applies a structural mutation (add/remove item, photo change). The
// pre-mutation state is committed immediately.
func (s *Store) Update(mutate func(*types.CanonicalResume)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushPendingLocked()
	s.commitLocked(s.data.Clone())
	mutate(s.data)
}

// UpdateText applies a text-field mutation with coalescing: the snapshot is
// captured at the start of an edit burst and committed only after the quiet
// period, so continuous typing produces one history entry.
func (s *Store) UpdateText(mutate func(*types.CanonicalResume)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		s.pending = s.data.Clone()
	}
	mutate(s.data)

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.opts.Debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.flushPendingLocked()
	})
}

// Flush commits any pending text-edit snapshot immediately.
func (s *Store) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushPendingLocked()
}

// Undo restores the most recent past snapshot. The restore itself must not
// record history, so the guard suppresses re-entrant commits.
func (s *Store) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushPendingLocked()
	if len(s.past) == 0 {
		return ErrNothingToUndo
	}

	s.restoring = true
	defer func() { s.restoring = false }()

	s.future = pushBounded(s.future, s.data, s.opts.Capacity)
	s.data = s.past[len(s.past)-1]
	s.past = s.past[:len(s.past)-1]
	return nil
}

// Redo restores the most recently undone snapshot.
func (s *Store) Redo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushPendingLocked()
	if len(s.future) == 0 {
		return ErrNothingToRedo
	}

	s.restoring = true
	defer func() { s.restoring = false }()

	s.past = pushBounded(s.past, s.data, s.opts.Capacity)
	s.data = s.future[len(s.future)-1]
	s.future = s.future[:len(s.future)-1]
	return nil
}

// commitLocked pushes a snapshot onto the past stack and clears the redo
// stack. No-op while a restore is in flight.
func (s *Store) commitLocked(snapshot *types.CanonicalResume) {
	if s.restoring {
		return
	}
	s.past = pushBounded(s.past, snapshot, s.opts.Capacity)
	s.future = nil
}

func (s *Store) flushPendingLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.pending == nil {
		return
	}
	snapshot := s.pending
	s.pending = nil
	s.commitLocked(snapshot)
}

// pushBounded appends, evicting the oldest entry when over capacity.
func pushBounded(stack []*types.CanonicalResume, entry *types.CanonicalResume, capacity int) []*types.CanonicalResume {
	stack = append(stack, entry)
	if len(stack) > capacity {
		stack = stack[1:]
	}
	return stack
}
