package domain

import (
	"fmt"
	"strings"
	"time"
)

type RoomID string
type RoomType string

const (
	RoomTypeOpen         RoomType = "open"
	RoomTypeProject      RoomType = "project"
	RoomTypeDirect       RoomType = "direct"
	RoomTypeCoordination RoomType = "coordination"
)

const (
	// DefaultRoomID is the well-known id of the always-present OPEN room.
	DefaultRoomID RoomID = "lobby"

	// CoordinatorName is the participant id of the coordinating agent. It is
	// enrolled automatically whenever a room is created with no named
	// participants, so no room is ever empty.
	CoordinatorName = "leader"

	// DirectRoomCapacity caps direct rooms at the creator plus one invitee.
	DirectRoomCapacity = 2
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeOpen, RoomTypeProject, RoomTypeDirect, RoomTypeCoordination:
		return true
	default:
		return false
	}
}

type Room struct {
	ID           RoomID
	Type         RoomType
	Participants []string
	CreatedAt    time.Time
	IsDefault    bool
}

func (r Room) Validate() error {
	if strings.TrimSpace(string(r.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if !r.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRoomType, r.Type)
	}
	if len(r.Participants) == 0 {
		return fmt.Errorf("participants must not be empty")
	}
	if r.Type == RoomTypeDirect && len(r.Participants) > DirectRoomCapacity {
		return fmt.Errorf("%w: direct room %q has %d participants", ErrRoomCapacity, r.ID, len(r.Participants))
	}

	return nil
}

func (r Room) HasParticipant(participant string) bool {
	for _, p := range r.Participants {
		if p == participant {
			return true
		}
	}
	return false
}

// AtCapacity reports whether the room cannot accept another participant.
// Only direct rooms have a capacity; every other type grows without bound.
func (r Room) AtCapacity() bool {
	return r.Type == RoomTypeDirect && len(r.Participants) >= DirectRoomCapacity
}

// NormalizeParticipants trims, deduplicates and preserves the insertion order
// of the participant list. Insertion order is the display order.
func (r *Room) NormalizeParticipants() {
	if r == nil {
		return
	}

	participants := make([]string, 0, len(r.Participants))
	seen := make(map[string]struct{}, len(r.Participants))
	for _, participant := range r.Participants {
		trimmed := strings.TrimSpace(participant)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		participants = append(participants, trimmed)
	}

	r.Participants = participants
}

// NormalizeRoomID lowercases the raw id and strips everything but slug
// characters. Interior whitespace and underscores become hyphens so
// "Launch Plan" and "launch_plan" both address the room "launch-plan".
func NormalizeRoomID(raw string) RoomID {
	lowered := strings.ToLower(strings.TrimSpace(raw))

	var b strings.Builder
	b.Grow(len(lowered))
	lastHyphen := false
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == '-' || r == '_' || r == ' ':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return RoomID(strings.TrimSuffix(b.String(), "-"))
}
