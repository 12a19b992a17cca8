package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	thinkingadapter "github.com/jhonny-cinco-ai/nanofolks-sub004/internal/adapters/render/thinking"
	jsonlstore "github.com/jhonny-cinco-ai/nanofolks-sub004/internal/adapters/store/jsonl"
	tomlstore "github.com/jhonny-cinco-ai/nanofolks-sub004/internal/adapters/store/toml"
	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/application"
	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/domain"
	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/ports"
)

const sessionKeyEnv = "NANOFOLKS_SESSION"

type app struct {
	rooms       *application.RoomService
	logs        *application.WorkLogService
	archive     *jsonlstore.Archive
	logRenderer func(domain.WorkLog, thinkingadapter.RenderOptions) (string, error)
	sessionKey  string
	now         func() time.Time
}

func wireApp() (*app, error) {
	store, err := tomlstore.NewStore(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire room store: %w", err)
	}

	archive, err := jsonlstore.NewArchive(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire work log archive: %w", err)
	}

	return &app{
		rooms:       application.NewRoomService(store, ports.SystemClock{}),
		logs:        application.NewWorkLogService(archive, ports.SystemClock{}),
		archive:     archive,
		logRenderer: thinkingadapter.Render,
		sessionKey:  envOrDefault(sessionKeyEnv, "cli"),
		now:         time.Now,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
