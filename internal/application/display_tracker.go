package application

import (
	"fmt"
	"sync"
)

type DisplayMode string

const (
	ModeAlwaysCollapsed DisplayMode = "always_collapsed"
	ModeAlwaysExpanded  DisplayMode = "always_expanded"
	ModeRememberState   DisplayMode = "remember_state"
	ModeUserChoice      DisplayMode = "user_choice"
)

func (m DisplayMode) Valid() bool {
	switch m {
	case ModeAlwaysCollapsed, ModeAlwaysExpanded, ModeRememberState, ModeUserChoice:
		return true
	default:
		return false
	}
}

// DisplayState is the disclosure record for one message index.
type DisplayState struct {
	Expanded   bool
	VisitCount int
}

// DisplayStats aggregates the tracked indices of one session.
type DisplayStats struct {
	Tracked   int
	Expanded  int
	Collapsed int
}

// DisplayTracker remembers, per message index, whether the human last left a
// thinking summary expanded or collapsed. One tracker serves one interactive
// session and is discarded with it; nothing here is persisted.
type DisplayTracker struct {
	mu         sync.RWMutex
	mode       DisplayMode
	states     map[int]DisplayState
	userChoice *bool
}

func NewDisplayTracker() *DisplayTracker {
	return &DisplayTracker{
		mode:   ModeRememberState,
		states: map[int]DisplayState{},
	}
}

func (t *DisplayTracker) Mode() DisplayMode {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.mode
}

// SetMode switches the session-wide tracking mode. Recorded per-index state
// survives mode changes, so returning to remember_state restores prior
// memory. Entering user_choice forgets any previously captured choice; the
// next recorded toggle becomes the new global default.
func (t *DisplayTracker) SetMode(mode DisplayMode) error {
	if !mode.Valid() {
		return fmt.Errorf("invalid display mode %q", mode)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.mode = mode
	if mode == ModeUserChoice {
		t.userChoice = nil
	}

	return nil
}

func (t *DisplayTracker) ShouldBeExpanded(index int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	switch t.mode {
	case ModeAlwaysCollapsed:
		return false
	case ModeAlwaysExpanded:
		return true
	case ModeUserChoice:
		if t.userChoice != nil {
			return *t.userChoice
		}
		return false
	default:
		return t.states[index].Expanded
	}
}

// RecordState stores the disclosure choice for index and bumps its visit
// count. In user_choice mode the first recorded toggle becomes the global
// default for every index until the mode changes.
func (t *DisplayTracker) RecordState(index int, expanded bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := t.states[index]
	state.Expanded = expanded
	state.VisitCount++
	t.states[index] = state

	if t.mode == ModeUserChoice && t.userChoice == nil {
		choice := expanded
		t.userChoice = &choice
	}
}

func (t *DisplayTracker) GetState(index int) (DisplayState, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	state, ok := t.states[index]
	return state, ok
}

func (t *DisplayTracker) Stats() DisplayStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stats := DisplayStats{Tracked: len(t.states)}
	for _, state := range t.states {
		if state.Expanded {
			stats.Expanded++
		} else {
			stats.Collapsed++
		}
	}

	return stats
}
