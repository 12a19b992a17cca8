package application

import (
	"fmt"
	"strings"

	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/domain"
)

// ParticipantRecommendation names a bot an intent would like in the room and
// why.
type ParticipantRecommendation struct {
	Name   string
	Reason string
}

// RoomIntent is the validated form of the free-form "create a room" payloads
// the intent layer produces. ApplyIntent re-validates before touching the
// store, so an unvalidated intent can never reach CreateRoom.
type RoomIntent struct {
	ShouldCreateRoom        bool
	RoomName                string
	RoomType                domain.RoomType
	RecommendedParticipants []ParticipantRecommendation
}

func (i RoomIntent) Validate() error {
	if !i.ShouldCreateRoom {
		return nil
	}
	if strings.TrimSpace(i.RoomName) == "" {
		return fmt.Errorf("room intent: name is required")
	}
	if domain.NormalizeRoomID(i.RoomName) == "" {
		return fmt.Errorf("room intent: name %q has no slug characters", i.RoomName)
	}
	if !i.RoomType.Valid() {
		return fmt.Errorf("room intent: %w: %q", domain.ErrInvalidRoomType, i.RoomType)
	}
	for _, rec := range i.RecommendedParticipants {
		if strings.TrimSpace(rec.Name) == "" {
			return fmt.Errorf("room intent: recommended participant without a name")
		}
	}
	if i.RoomType == domain.RoomTypeDirect && len(i.RecommendedParticipants) > domain.DirectRoomCapacity {
		return fmt.Errorf("room intent: %w: direct room recommends %d participants", domain.ErrRoomCapacity, len(i.RecommendedParticipants))
	}

	return nil
}

// Participants flattens the recommendations into the participant list
// CreateRoom accepts.
func (i RoomIntent) Participants() []string {
	names := make([]string, 0, len(i.RecommendedParticipants))
	for _, rec := range i.RecommendedParticipants {
		names = append(names, rec.Name)
	}

	return names
}
