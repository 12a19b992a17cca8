package domain

import "time"

type LogLevel string

const (
	LevelDecision     LogLevel = "decision"
	LevelTool         LogLevel = "tool"
	LevelCorrection   LogLevel = "correction"
	LevelError        LogLevel = "error"
	LevelCoordination LogLevel = "coordination"
)

func (l LogLevel) Valid() bool {
	switch l {
	case LevelDecision, LevelTool, LevelCorrection, LevelError, LevelCoordination:
		return true
	default:
		return false
	}
}

// LogEntry is one recorded decision or tool invocation within a work log.
// BotName is empty for entries attributed to the coordinating agent.
// Sequence is assigned at append time and is the sole ordering key;
// wall-clock timestamps on entries are advisory only.
type LogEntry struct {
	Sequence   int
	Level      LogLevel
	Message    string
	BotName    string
	ToolName   string
	Result     string
	Duration   time.Duration
	Confidence float64
	RecordedAt time.Time
}

// RoomContext is a frozen copy of the room a work log was opened under.
// Later invites to the room never alter an existing log's context.
type RoomContext struct {
	RoomID       RoomID
	RoomType     RoomType
	Participants []string
}

// SnapshotRoom copies the fields of room that a work log records. The
// participant slice is duplicated so the snapshot cannot alias the live room.
func SnapshotRoom(room Room) RoomContext {
	participants := make([]string, len(room.Participants))
	copy(participants, room.Participants)

	return RoomContext{
		RoomID:       room.ID,
		RoomType:     room.Type,
		Participants: participants,
	}
}

// WorkLog is the append-only trace of one processed request. Entries carry
// contiguous sequence numbers starting at 1 and are immutable once appended.
type WorkLog struct {
	SessionKey  string
	RoomContext RoomContext
	Entries     []LogEntry
	StartedAt   time.Time
	SealedAt    time.Time
}

func (l WorkLog) Sealed() bool {
	return !l.SealedAt.IsZero()
}
