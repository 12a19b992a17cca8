package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRoomID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want RoomID
	}{
		{name: "already a slug", raw: "launch", want: "launch"},
		{name: "uppercase is lowered", raw: "Launch", want: "launch"},
		{name: "spaces become hyphens", raw: "Launch Plan", want: "launch-plan"},
		{name: "underscores become hyphens", raw: "launch_plan", want: "launch-plan"},
		{name: "runs of separators collapse", raw: "launch -- plan", want: "launch-plan"},
		{name: "punctuation is stripped", raw: "launch!plan?", want: "launchplan"},
		{name: "leading separators are dropped", raw: "--launch", want: "launch"},
		{name: "trailing separators are dropped", raw: "launch--", want: "launch"},
		{name: "digits survive", raw: "Q3 2026", want: "q3-2026"},
		{name: "only punctuation normalizes to empty", raw: "!!!", want: ""},
		{name: "whitespace only normalizes to empty", raw: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRoomID(tt.raw))
		})
	}
}

func TestRoomTypeValid(t *testing.T) {
	for _, roomType := range []RoomType{RoomTypeOpen, RoomTypeProject, RoomTypeDirect, RoomTypeCoordination} {
		assert.True(t, roomType.Valid(), string(roomType))
	}

	assert.False(t, RoomType("channel").Valid())
	assert.False(t, RoomType("").Valid())
}

func TestRoomValidate(t *testing.T) {
	room := Room{
		ID:           "launch",
		Type:         RoomTypeProject,
		Participants: []string{"alice"},
		CreatedAt:    time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, room.Validate())

	empty := room
	empty.Participants = nil
	require.Error(t, empty.Validate())

	badType := room
	badType.Type = "channel"
	require.ErrorIs(t, badType.Validate(), ErrInvalidRoomType)

	crowdedDirect := room
	crowdedDirect.Type = RoomTypeDirect
	crowdedDirect.Participants = []string{"alice", "bob", "carol"}
	require.ErrorIs(t, crowdedDirect.Validate(), ErrRoomCapacity)
}

func TestNormalizeParticipantsPreservesInsertionOrder(t *testing.T) {
	room := Room{Participants: []string{" alice ", "bob", "alice", "", "carol", "bob"}}
	room.NormalizeParticipants()

	assert.Equal(t, []string{"alice", "bob", "carol"}, room.Participants)
}

func TestRoomAtCapacityOnlyAppliesToDirectRooms(t *testing.T) {
	direct := Room{Type: RoomTypeDirect, Participants: []string{"alice", "bob"}}
	assert.True(t, direct.AtCapacity())

	direct.Participants = []string{"alice"}
	assert.False(t, direct.AtCapacity())

	project := Room{Type: RoomTypeProject, Participants: []string{"a", "b", "c", "d", "e"}}
	assert.False(t, project.AtCapacity())
}
