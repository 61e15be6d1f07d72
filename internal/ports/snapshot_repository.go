package ports

import (
	"context"

	"github.com/openlist-contrib/openlist-bridge/internal/domain"
)

// SnapshotRepository persists the latest published sensor snapshot so the
// status view can render without hitting the service. It is a presentation
// cache only; the poller recomputes everything on its first cycle.
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot domain.SensorSnapshot) error
	Load(ctx context.Context) (domain.SensorSnapshot, error)
}
