package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/domain"
	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/ports"
)

// LogHandle is an opaque reference to an open work log.
type LogHandle string

// WorkLogService opens, appends to and seals work logs, one per processed
// request. Appends on a single handle are serialized so sequence numbers
// stay contiguous; distinct handles never contend.
type WorkLogService struct {
	clock   ports.Clock
	archive ports.WorkLogArchive

	mu        sync.RWMutex
	logs      map[LogHandle]*logState
	bySession map[string][]LogHandle
	next      int
}

type logState struct {
	mu  sync.Mutex
	log domain.WorkLog
}

// NewWorkLogService builds a work log manager. The archive may be nil, in
// which case sealed logs stay in memory only.
func NewWorkLogService(archive ports.WorkLogArchive, clock ports.Clock) *WorkLogService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &WorkLogService{
		clock:     clock,
		archive:   archive,
		logs:      map[LogHandle]*logState{},
		bySession: map[string][]LogHandle{},
	}
}

// Open starts a new work log for sessionKey, freezing the room's id, type
// and participants as they are at this instant.
func (s *WorkLogService) Open(ctx context.Context, sessionKey string, room domain.Room) (LogHandle, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	handle := LogHandle(fmt.Sprintf("%s#%d", sessionKey, s.next))

	s.logs[handle] = &logState{
		log: domain.WorkLog{
			SessionKey:  sessionKey,
			RoomContext: domain.SnapshotRoom(room),
			StartedAt:   s.clock.Now(),
		},
	}
	s.bySession[sessionKey] = append(s.bySession[sessionKey], handle)

	return handle, nil
}

// Append assigns the next sequence number and stores the entry. Appending
// to a sealed log fails; the log is left untouched.
func (s *WorkLogService) Append(ctx context.Context, handle LogHandle, entry domain.LogEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !entry.Level.Valid() {
		return fmt.Errorf("invalid log level %q", entry.Level)
	}

	state, err := s.state(handle)
	if err != nil {
		return err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if state.log.Sealed() {
		return fmt.Errorf("%w: %q", domain.ErrLogSealed, handle)
	}

	entry.Sequence = len(state.log.Entries) + 1
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = s.clock.Now()
	}
	state.log.Entries = append(state.log.Entries, entry)

	return nil
}

// Seal closes the log to further appends and hands the sealed log to the
// archive. Sealing an already-sealed log is a no-op success and does not
// archive a second time.
func (s *WorkLogService) Seal(ctx context.Context, handle LogHandle) (domain.WorkLog, error) {
	if err := ctx.Err(); err != nil {
		return domain.WorkLog{}, err
	}

	state, err := s.state(handle)
	if err != nil {
		return domain.WorkLog{}, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if state.log.Sealed() {
		return copyLog(state.log), nil
	}

	state.log.SealedAt = s.clock.Now()
	sealed := copyLog(state.log)

	if s.archive != nil {
		if err := s.archive.Archive(ctx, sealed); err != nil {
			return sealed, fmt.Errorf("archive sealed work log: %w", err)
		}
	}

	return sealed, nil
}

// GetCurrent returns the most recently opened work log for a session,
// sealed or not.
func (s *WorkLogService) GetCurrent(ctx context.Context, sessionKey string) (domain.WorkLog, error) {
	if err := ctx.Err(); err != nil {
		return domain.WorkLog{}, err
	}

	s.mu.RLock()
	handles := s.bySession[sessionKey]
	s.mu.RUnlock()

	if len(handles) == 0 {
		return domain.WorkLog{}, fmt.Errorf("%w: session %q", domain.ErrLogNotFound, sessionKey)
	}

	state, err := s.state(handles[len(handles)-1])
	if err != nil {
		return domain.WorkLog{}, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	return copyLog(state.log), nil
}

// GetBySession returns a session's work logs in open order. A non-empty
// roomFilter restricts the result to logs whose recorded room context
// matches that id.
func (s *WorkLogService) GetBySession(ctx context.Context, sessionKey string, roomFilter domain.RoomID) ([]domain.WorkLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	handles := make([]LogHandle, len(s.bySession[sessionKey]))
	copy(handles, s.bySession[sessionKey])
	s.mu.RUnlock()

	logs := make([]domain.WorkLog, 0, len(handles))
	for _, handle := range handles {
		state, err := s.state(handle)
		if err != nil {
			return nil, err
		}

		state.mu.Lock()
		log := copyLog(state.log)
		state.mu.Unlock()

		if roomFilter != "" && log.RoomContext.RoomID != roomFilter {
			continue
		}
		logs = append(logs, log)
	}

	return logs, nil
}

func (s *WorkLogService) state(handle LogHandle) (*logState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.logs[handle]
	if !ok {
		return nil, fmt.Errorf("%w: handle %q", domain.ErrLogNotFound, handle)
	}

	return state, nil
}

func copyLog(log domain.WorkLog) domain.WorkLog {
	entries := make([]domain.LogEntry, len(log.Entries))
	copy(entries, log.Entries)
	log.Entries = entries
	return log
}
