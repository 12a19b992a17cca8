package application

import (
	"time"

	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/domain"
)

// RoomSummary is the listing view of a room: enough for a roster line
// without exposing the full participant set.
type RoomSummary struct {
	ID               domain.RoomID
	Type             domain.RoomType
	ParticipantCount int
	CreatedAt        time.Time
	IsDefault        bool
}

func summaryFromRoom(room domain.Room) RoomSummary {
	return RoomSummary{
		ID:               room.ID,
		Type:             room.Type,
		ParticipantCount: len(room.Participants),
		CreatedAt:        room.CreatedAt,
		IsDefault:        room.IsDefault,
	}
}
