package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/domain"
	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/ports"
)

// RoomService is the single source of truth for room existence and
// membership. Mutations on one room id are serialized through a per-id
// mutex; session focus is session-scoped state kept apart from the room
// records themselves.
type RoomService struct {
	store ports.RoomStore
	clock ports.Clock

	locksMu sync.Mutex
	locks   map[domain.RoomID]*sync.Mutex

	focusMu sync.RWMutex
	focus   map[string]domain.RoomID
}

func NewRoomService(store ports.RoomStore, clock ports.Clock) *RoomService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &RoomService{
		store: store,
		clock: clock,
		locks: map[domain.RoomID]*sync.Mutex{},
		focus: map[string]domain.RoomID{},
	}
}

// Initialize loads persisted rooms and creates the default lobby room when
// no default exists. Safe to call on every process start.
func (s *RoomService) Initialize(ctx context.Context) error {
	mu := s.lockFor(domain.DefaultRoomID)
	mu.Lock()
	defer mu.Unlock()

	rooms, err := s.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load rooms: %w", err)
	}

	for _, room := range rooms {
		if room.IsDefault {
			return nil
		}
	}

	lobby := domain.Room{
		ID:           domain.DefaultRoomID,
		Type:         domain.RoomTypeOpen,
		Participants: []string{domain.CoordinatorName},
		CreatedAt:    s.clock.Now(),
		IsDefault:    true,
	}

	if err := s.store.Save(ctx, lobby); err != nil {
		return fmt.Errorf("save default room: %w", err)
	}

	return nil
}

// CreateRoom normalizes the raw id, rejects duplicates and persists the new
// room. When the caller supplies no participants the coordinating agent is
// enrolled so the room is never empty.
func (s *RoomService) CreateRoom(ctx context.Context, rawID string, roomType domain.RoomType, participants []string) (domain.Room, error) {
	id := domain.NormalizeRoomID(rawID)
	if id == "" {
		return domain.Room{}, fmt.Errorf("room id %q is empty after normalization", rawID)
	}
	if !roomType.Valid() {
		return domain.Room{}, fmt.Errorf("%w: %q", domain.ErrInvalidRoomType, roomType)
	}

	room := domain.Room{
		ID:           id,
		Type:         roomType,
		Participants: participants,
		CreatedAt:    s.clock.Now(),
	}
	room.NormalizeParticipants()
	if len(room.Participants) == 0 {
		room.Participants = []string{domain.CoordinatorName}
	}

	if err := room.Validate(); err != nil {
		return domain.Room{}, err
	}

	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return domain.Room{}, fmt.Errorf("check room existence: %w", err)
	}
	if exists {
		return domain.Room{}, fmt.Errorf("%w: %q", domain.ErrDuplicateRoom, id)
	}

	if err := s.store.Save(ctx, room); err != nil {
		return domain.Room{}, fmt.Errorf("save room: %w", err)
	}

	return room, nil
}

func (s *RoomService) GetRoom(ctx context.Context, rawID string) (domain.Room, error) {
	room, err := s.store.Load(ctx, domain.NormalizeRoomID(rawID))
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			return domain.Room{}, err
		}
		return domain.Room{}, fmt.Errorf("load room: %w", err)
	}

	return room, nil
}

// ListRooms returns summaries in creation order, except that the default
// room always sorts first regardless of its creation time.
func (s *RoomService) ListRooms(ctx context.Context) ([]RoomSummary, error) {
	rooms, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rooms: %w", err)
	}

	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].IsDefault != rooms[j].IsDefault {
			return rooms[i].IsDefault
		}
		if !rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
		}
		return rooms[i].ID < rooms[j].ID
	})

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		summaries = append(summaries, summaryFromRoom(room))
	}

	return summaries, nil
}

// InviteParticipant grows the room's membership. Re-inviting a present
// participant succeeds without touching the record.
func (s *RoomService) InviteParticipant(ctx context.Context, rawID, participant string) (domain.Room, error) {
	id := domain.NormalizeRoomID(rawID)

	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	room, err := s.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			return domain.Room{}, fmt.Errorf("%w: %q", domain.ErrRoomNotFound, id)
		}
		return domain.Room{}, fmt.Errorf("load room: %w", err)
	}

	if room.HasParticipant(participant) {
		return room, nil
	}
	if room.AtCapacity() {
		return domain.Room{}, fmt.Errorf("%w: direct room %q already has %d participants", domain.ErrRoomCapacity, id, len(room.Participants))
	}

	room.Participants = append(room.Participants, participant)
	room.NormalizeParticipants()

	if err := s.store.Save(ctx, room); err != nil {
		return domain.Room{}, fmt.Errorf("save room: %w", err)
	}

	return room, nil
}

// SwitchFocus marks roomID as the current room for sessionKey. The room
// record itself is untouched; focus is session state.
func (s *RoomService) SwitchFocus(ctx context.Context, sessionKey, rawID string) error {
	id := domain.NormalizeRoomID(rawID)

	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check room existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %q", domain.ErrRoomNotFound, id)
	}

	s.focusMu.Lock()
	s.focus[sessionKey] = id
	s.focusMu.Unlock()

	return nil
}

// CurrentRoom resolves the focused room for a session. A session that never
// switched focus lives in the default room.
func (s *RoomService) CurrentRoom(ctx context.Context, sessionKey string) (domain.Room, error) {
	s.focusMu.RLock()
	id, ok := s.focus[sessionKey]
	s.focusMu.RUnlock()

	if !ok {
		id = domain.DefaultRoomID
	}

	room, err := s.store.Load(ctx, id)
	if err != nil {
		return domain.Room{}, fmt.Errorf("load current room: %w", err)
	}

	return room, nil
}

// ApplyIntent validates a room intent and, when it asks for a room, creates
// it with the recommended participants. The second return reports whether a
// room was created; an intent with ShouldCreateRoom unset is a no-op.
func (s *RoomService) ApplyIntent(ctx context.Context, intent RoomIntent) (domain.Room, bool, error) {
	if err := intent.Validate(); err != nil {
		return domain.Room{}, false, err
	}
	if !intent.ShouldCreateRoom {
		return domain.Room{}, false, nil
	}

	room, err := s.CreateRoom(ctx, intent.RoomName, intent.RoomType, intent.Participants())
	if err != nil {
		return domain.Room{}, false, err
	}

	return room, true, nil
}

func (s *RoomService) lockFor(id domain.RoomID) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	if mu, ok := s.locks[id]; ok {
		return mu
	}

	mu := &sync.Mutex{}
	s.locks[id] = mu
	return mu
}
