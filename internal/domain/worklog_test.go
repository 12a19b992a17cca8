package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotRoomDoesNotAliasTheLiveRoom(t *testing.T) {
	room := Room{
		ID:           "launch",
		Type:         RoomTypeProject,
		Participants: []string{"alice", "bob"},
	}

	snapshot := SnapshotRoom(room)

	room.Participants[0] = "mallory"
	room.Participants = append(room.Participants, "carol")

	assert.Equal(t, []string{"alice", "bob"}, snapshot.Participants)
	assert.Equal(t, RoomID("launch"), snapshot.RoomID)
	assert.Equal(t, RoomTypeProject, snapshot.RoomType)
}

func TestWorkLogSealed(t *testing.T) {
	log := WorkLog{}
	assert.False(t, log.Sealed())

	log.SealedAt = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	assert.True(t, log.Sealed())
}

func TestLogLevelValid(t *testing.T) {
	for _, level := range []LogLevel{LevelDecision, LevelTool, LevelCorrection, LevelError, LevelCoordination} {
		assert.True(t, level.Valid(), string(level))
	}

	assert.False(t, LogLevel("debug").Valid())
	assert.False(t, LogLevel("").Valid())
}
