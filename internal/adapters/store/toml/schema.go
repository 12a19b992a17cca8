package toml

import (
	"fmt"
	"time"

	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/domain"
)

const currentSchemaVersion = 1

type roomSchema struct {
	Version      int      `toml:"version"`
	ID           string   `toml:"id"`
	Type         string   `toml:"type"`
	Participants []string `toml:"participants"`
	CreatedAt    string   `toml:"created_at"`
	IsDefault    bool     `toml:"is_default"`
}

func (s *roomSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s roomSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported room schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

func toSchema(room domain.Room) roomSchema {
	participants := make([]string, len(room.Participants))
	copy(participants, room.Participants)

	return roomSchema{
		ID:           string(room.ID),
		Type:         string(room.Type),
		Participants: participants,
		CreatedAt:    formatTime(room.CreatedAt),
		IsDefault:    room.IsDefault,
	}
}

func fromSchema(record roomSchema) domain.Room {
	participants := make([]string, len(record.Participants))
	copy(participants, record.Participants)

	return domain.Room{
		ID:           domain.RoomID(record.ID),
		Type:         domain.RoomType(record.Type),
		Participants: participants,
		CreatedAt:    parseTime(record.CreatedAt),
		IsDefault:    record.IsDefault,
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339Nano)
}
