package ports

import (
	"context"

	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/domain"
)

// WorkLogArchive is an append-only sink for sealed work logs. Archived logs
// are never read back by this core; they exist so an audit trail survives
// process restarts.
type WorkLogArchive interface {
	Archive(ctx context.Context, log domain.WorkLog) error
}
