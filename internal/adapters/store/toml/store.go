package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/domain"
	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/ports"
)

const (
	configName      = "config"
	configType      = "toml"
	roomsPathKey    = "rooms.path"
	roomFileMode    = 0o600
	roomDirMode     = 0o700
	roomsConfigDir  = ".nanofolks"
	roomsSubDir     = "rooms"
	roomFileExt     = ".toml"
	tempFilePattern = ".room-*.toml.tmp"
)

// Store persists one TOML record per room id under a rooms directory.
// Writes are atomic from a reader's perspective: records are written to a
// temp file in the same directory and renamed into place.
type Store struct {
	roomsDir string
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.RoomStore = (*Store)(nil)

func NewStore(cfg *viper.Viper) (*Store, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultDir := filepath.Join(homeDir, roomsConfigDir, roomsSubDir)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, roomsConfigDir))
	cfg.SetDefault(roomsPathKey, defaultDir)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	roomsDir := cfg.GetString(roomsPathKey)
	if roomsDir == "" {
		return nil, errors.New("rooms path is empty")
	}
	roomsDir, err = normalizeRoomsDir(roomsDir)
	if err != nil {
		return nil, err
	}

	return &Store{roomsDir: roomsDir}, nil
}

func (s *Store) Save(ctx context.Context, room domain.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.roomPath(room.ID)
	mu := lockForPath(path)
	mu.Lock()
	defer mu.Unlock()

	return s.writeRecord(path, toSchema(room))
}

func (s *Store) Load(ctx context.Context, id domain.RoomID) (domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return domain.Room{}, err
	}

	path := s.roomPath(id)
	mu := lockForPath(path)
	mu.RLock()
	defer mu.RUnlock()

	return s.readRecord(path)
}

func (s *Store) LoadAll(ctx context.Context) ([]domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.roomsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read rooms directory: %w", err)
	}

	rooms := make([]domain.Room, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != roomFileExt {
			continue
		}

		path := filepath.Join(s.roomsDir, entry.Name())
		mu := lockForPath(path)
		mu.RLock()
		room, err := s.readRecord(path)
		mu.RUnlock()
		if err != nil {
			if errors.Is(err, domain.ErrRoomNotFound) {
				// Removed between enumeration and read.
				continue
			}
			return nil, fmt.Errorf("load room record %q: %w", entry.Name(), err)
		}

		rooms = append(rooms, room)
	}

	return rooms, nil
}

func (s *Store) Exists(ctx context.Context, id domain.RoomID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	path := s.roomPath(id)
	mu := lockForPath(path)
	mu.RLock()
	defer mu.RUnlock()

	_, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat room record: %w", err)
	}

	return true, nil
}

func (s *Store) roomPath(id domain.RoomID) string {
	return filepath.Join(s.roomsDir, string(id)+roomFileExt)
}

func (s *Store) readRecord(path string) (domain.Room, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Room{}, domain.ErrRoomNotFound
		}
		return domain.Room{}, fmt.Errorf("read room record: %w", err)
	}

	var record roomSchema
	if err := toml.Unmarshal(data, &record); err != nil {
		return domain.Room{}, fmt.Errorf("decode room record: %w", err)
	}
	if err := record.validateVersion(); err != nil {
		return domain.Room{}, err
	}

	return fromSchema(record), nil
}

func (s *Store) writeRecord(path string, record roomSchema) error {
	record.applyDefaults()

	if err := os.MkdirAll(s.roomsDir, roomDirMode); err != nil {
		return fmt.Errorf("create rooms directory: %w", err)
	}

	data, err := toml.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode room record: %w", err)
	}

	tempFile, err := os.CreateTemp(s.roomsDir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp room record: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp room record: %w", err)
	}

	if err := tempFile.Chmod(roomFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp room record: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp room record: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace room record: %w", err)
	}

	cleanup = false

	return nil
}

func normalizeRoomsDir(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve rooms path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
