package ports

import (
	"context"

	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/domain"
)

type RoomStore interface {
	Save(ctx context.Context, room domain.Room) error
	Load(ctx context.Context, id domain.RoomID) (domain.Room, error)
	LoadAll(ctx context.Context) ([]domain.Room, error)
	Exists(ctx context.Context, id domain.RoomID) (bool, error)
}
