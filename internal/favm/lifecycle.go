package favm

import (
	"errors"
	"sync"
	"sync/atomic"
)

// Phase is the edit state of a view model.
type Phase int

const (
	Viewing Phase = iota
	Editing
	Saving
	Deleting
)

func (p Phase) String() string {
	switch p {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	case Deleting:
		return "deleting"
	default:
		return "unknown"
	}
}

var (
	// ErrInFlight is returned when a save or delete is already running.
	ErrInFlight = errors.New("another write is in progress")

	// ErrLocked is returned for writes to a module whose gate is locked.
	ErrLocked = errors.New("module is locked")
)

// Editor tracks the edit phase and guards against duplicate submissions.
// Only one save or delete runs at a time.
type Editor struct {
	mu    sync.Mutex
	phase Phase
	busy  atomic.Bool
}

func (e *Editor) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Begin opens the editor. It fails while a write is in flight.
func (e *Editor) Begin() error {
	if e.busy.Load() {
		return ErrInFlight
	}
	e.set(Editing)
	return nil
}

// Cancel closes the editor without writing.
func (e *Editor) Cancel() {
	if e.busy.Load() {
		return
	}
	e.set(Viewing)
}

func (e *Editor) set(p Phase) {
	e.mu.Lock()
	e.phase = p
	e.mu.Unlock()
}

// acquire claims the write guard and enters phase p.
func (e *Editor) acquire(p Phase) bool {
	if !e.busy.CompareAndSwap(false, true) {
		return false
	}
	e.set(p)
	return true
}

// release leaves the write phase for next and frees the guard.
func (e *Editor) release(next Phase) {
	e.set(next)
	e.busy.Store(false)
}
