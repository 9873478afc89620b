// Package scan drives the inventory scan: grid navigation, settle timing,
// per-item reads, parsing, filtering, dedup, and deterministic termination.
package scan

import (
	"errors"

	"github.com/google/uuid"

	"github.com/artiscan/artiscan/domain/item"
)

// State enumerates the scan state machine.
type State int

const (
	StateIdle State = iota
	StateLocatingWindow
	StateScanning
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLocatingWindow:
		return "locating_window"
	case StateScanning:
		return "scanning"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends a scan.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCancelled || s == StateFailed
}

// StateListener is called on each state transition.
type StateListener func(prev, next State)

// Session is the process-wide state of one scan run. Mutated only by the
// controller on its single control goroutine.
type Session struct {
	ID           uuid.UUID
	Records      []*item.Record
	seen         map[item.Fingerprint]struct{}
	ScrolledRows int
	Skipped      int
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{
		ID:   uuid.New(),
		seen: make(map[item.Fingerprint]struct{}),
	}
}

// Admit registers the record's fingerprint and reports false for a
// duplicate, which the controller reads as a wrap signal. keep controls
// whether the record joins the output sequence: records below the
// rarity/level filter are not kept, but their fingerprints must still feed
// the dedup set or a page of filtered items could never signal a wrap.
func (s *Session) Admit(rec *item.Record, keep bool) bool {
	fp := rec.Fingerprint()
	if _, dup := s.seen[fp]; dup {
		return false
	}
	s.seen[fp] = struct{}{}
	if keep {
		s.Records = append(s.Records, rec)
	}
	return true
}

// Result is what a finished scan hands to the caller. Records holds whatever
// accumulated before termination; partial results are never discarded.
type Result struct {
	State   State
	Records []*item.Record
	Skipped int
}

// Per-item read errors.
var (
	// ErrUnreadableRarity reports a star count outside 1..5.
	ErrUnreadableRarity = errors.New("unreadable rarity")
	// ErrLowConfidence reports a field below the configured confidence floor.
	ErrLowConfidence = errors.New("low recognition confidence")
)
