package jsonl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/domain"
	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/ports"
)

const (
	configName     = "config"
	configType     = "toml"
	archivePathKey = "worklog.archive_path"
	archiveDirMode = 0o700
	archiveMode    = 0o600
	configDir      = ".nanofolks"
	archiveFile    = "worklog.jsonl"
)

// Archive appends one JSON line per sealed work log to a single file.
// Lines are written whole under a per-path mutex so concurrent sessions
// never interleave records.
type Archive struct {
	path string
	mu   *sync.Mutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.Mutex{}
)

var _ ports.WorkLogArchive = (*Archive)(nil)

func NewArchive(cfg *viper.Viper) (*Archive, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, configDir, archiveFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	cfg.SetDefault(archivePathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	path := cfg.GetString(archivePathKey)
	if path == "" {
		return nil, errors.New("work log archive path is empty")
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve work log archive path: %w", err)
	}

	return &Archive{path: filepath.Clean(path), mu: lockForPath(path)}, nil
}

func (a *Archive) Archive(ctx context.Context, log domain.WorkLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	record := toRecord(log)
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode work log record: %w", err)
	}
	data = append(data, '\n')

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(a.path), archiveDirMode); err != nil {
		return fmt.Errorf("create work log archive directory: %w", err)
	}

	file, err := os.OpenFile(a.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, archiveMode)
	if err != nil {
		return fmt.Errorf("open work log archive: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return fmt.Errorf("append work log record: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("close work log archive: %w", err)
	}

	return nil
}

type logRecord struct {
	SessionKey   string        `json:"session_key"`
	RoomID       string        `json:"room_id"`
	RoomType     string        `json:"room_type"`
	Participants []string      `json:"participants"`
	StartedAt    time.Time     `json:"started_at"`
	SealedAt     time.Time     `json:"sealed_at"`
	Entries      []entryRecord `json:"entries"`
}

type entryRecord struct {
	Sequence   int     `json:"sequence"`
	Level      string  `json:"level"`
	Message    string  `json:"message"`
	BotName    string  `json:"bot_name,omitempty"`
	ToolName   string  `json:"tool_name,omitempty"`
	Result     string  `json:"result,omitempty"`
	DurationMS int64   `json:"duration_ms,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

func toRecord(log domain.WorkLog) logRecord {
	entries := make([]entryRecord, 0, len(log.Entries))
	for _, entry := range log.Entries {
		entries = append(entries, entryRecord{
			Sequence:   entry.Sequence,
			Level:      string(entry.Level),
			Message:    entry.Message,
			BotName:    entry.BotName,
			ToolName:   entry.ToolName,
			Result:     entry.Result,
			DurationMS: entry.Duration.Milliseconds(),
			Confidence: entry.Confidence,
		})
	}

	return logRecord{
		SessionKey:   log.SessionKey,
		RoomID:       string(log.RoomContext.RoomID),
		RoomType:     string(log.RoomContext.RoomType),
		Participants: log.RoomContext.Participants,
		StartedAt:    log.StartedAt,
		SealedAt:     log.SealedAt,
		Entries:      entries,
	}
}

func lockForPath(path string) *sync.Mutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.Mutex{}
	pathLockMap[path] = mu
	return mu
}
