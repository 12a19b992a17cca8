package toml

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	config := viper.New()
	config.Set("rooms.path", filepath.Join(t.TempDir(), "rooms"))

	store, err := NewStore(config)
	require.NoError(t, err)
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	room := domain.Room{
		ID:           "launch",
		Type:         domain.RoomTypeProject,
		Participants: []string{"alice", "bob"},
		CreatedAt:    time.Date(2026, 8, 1, 10, 30, 0, 123456789, time.UTC),
		IsDefault:    false,
	}

	require.NoError(t, store.Save(context.Background(), room))

	got, err := store.Load(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, room, got)
}

func TestStoreLoadMissingRoom(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	_, err := store.Load(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestStoreExists(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	exists, err := store.Exists(context.Background(), "lobby")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Save(context.Background(), domain.Room{
		ID:           "lobby",
		Type:         domain.RoomTypeOpen,
		Participants: []string{"leader"},
		IsDefault:    true,
	}))

	exists, err = store.Exists(context.Background(), "lobby")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStoreLoadAllReturnsEveryRecord(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	first := domain.Room{ID: "lobby", Type: domain.RoomTypeOpen, Participants: []string{"leader"}, IsDefault: true}
	second := domain.Room{ID: "launch", Type: domain.RoomTypeProject, Participants: []string{"alice"}}

	require.NoError(t, store.Save(context.Background(), first))
	require.NoError(t, store.Save(context.Background(), second))

	rooms, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.Room{first, second}, rooms)
}

func TestStoreLoadAllOnEmptyDirectory(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	rooms, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestStoreLoadAllReportsCorruptRecord(t *testing.T) {
	t.Parallel()

	roomsDir := filepath.Join(t.TempDir(), "rooms")
	config := viper.New()
	config.Set("rooms.path", roomsDir)

	store, err := NewStore(config)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), domain.Room{
		ID: "launch", Type: domain.RoomTypeProject, Participants: []string{"alice"},
	}))
	require.NoError(t, os.WriteFile(filepath.Join(roomsDir, "broken.toml"), []byte("not = [valid"), 0o600))

	_, err = store.LoadAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.toml")
}

func TestStoreSaveOverwritesWholeRecord(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	room := domain.Room{ID: "dm", Type: domain.RoomTypeDirect, Participants: []string{"alice"}}
	require.NoError(t, store.Save(context.Background(), room))

	room.Participants = append(room.Participants, "bob")
	require.NoError(t, store.Save(context.Background(), room))

	got, err := store.Load(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, got.Participants)
}

func TestStoreConcurrentWritersOnDistinctIDs(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	const writers = 8
	var wg sync.WaitGroup
	wg.Add(writers)
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			errs[i] = store.Save(context.Background(), domain.Room{
				ID:           domain.RoomID("room-" + strconv.Itoa(i)),
				Type:         domain.RoomTypeProject,
				Participants: []string{"alice"},
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "writer %d", i)
	}

	rooms, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, rooms, writers)
}

func TestStoreRejectsCancelledContext(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, store.Save(ctx, domain.Room{ID: "launch"}))
	_, err := store.Load(ctx, "launch")
	require.Error(t, err)
}

func TestStoreRejectsFutureSchemaVersion(t *testing.T) {
	t.Parallel()

	roomsDir := filepath.Join(t.TempDir(), "rooms")
	config := viper.New()
	config.Set("rooms.path", roomsDir)

	store, err := NewStore(config)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(roomsDir, 0o700))
	record := "version = 99\nid = \"launch\"\ntype = \"project\"\nparticipants = [\"alice\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(roomsDir, "launch.toml"), []byte(record), 0o600))

	_, err = store.Load(context.Background(), "launch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema version")
}
