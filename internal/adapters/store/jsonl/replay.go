package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/domain"
)

// Replay reads archived work logs back for display. A non-empty sessionKey
// or roomFilter restricts the result. Corrupt lines are reported, never
// skipped.
func (a *Archive) Replay(ctx context.Context, sessionKey string, roomFilter domain.RoomID) ([]domain.WorkLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	file, err := os.Open(a.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open work log archive: %w", err)
	}
	defer file.Close()

	var logs []domain.WorkLog
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		var record logRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			return nil, fmt.Errorf("decode work log archive line %d: %w", line, err)
		}

		log := fromRecord(record)
		if sessionKey != "" && log.SessionKey != sessionKey {
			continue
		}
		if roomFilter != "" && log.RoomContext.RoomID != roomFilter {
			continue
		}
		logs = append(logs, log)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read work log archive: %w", err)
	}

	return logs, nil
}

func fromRecord(record logRecord) domain.WorkLog {
	entries := make([]domain.LogEntry, 0, len(record.Entries))
	for _, entry := range record.Entries {
		entries = append(entries, domain.LogEntry{
			Sequence:   entry.Sequence,
			Level:      domain.LogLevel(entry.Level),
			Message:    entry.Message,
			BotName:    entry.BotName,
			ToolName:   entry.ToolName,
			Result:     entry.Result,
			Duration:   time.Duration(entry.DurationMS) * time.Millisecond,
			Confidence: entry.Confidence,
		})
	}

	return domain.WorkLog{
		SessionKey: record.SessionKey,
		RoomContext: domain.RoomContext{
			RoomID:       domain.RoomID(record.RoomID),
			RoomType:     domain.RoomType(record.RoomType),
			Participants: record.Participants,
		},
		Entries:   entries,
		StartedAt: record.StartedAt,
		SealedAt:  record.SealedAt,
	}
}
