package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"parking-reservation/internal/infra/db"
	"parking-reservation/internal/infra/memstore"
	"parking-reservation/internal/infra/pgstore"
	"parking-reservation/internal/pkg/config"
	"parking-reservation/internal/pkg/metrics"
	"parking-reservation/internal/usecase/shared"

	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork opens the store selected by STORE_DRIVER.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config, m *metrics.Metrics) (shared.UnitOfWork, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		slog.Warn("using in-memory store; data is lost on restart")
		return memstore.NewUoW(memstore.New()), nil
	case config.StoreDriverPostgres:
		pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := m.Register(metrics.NewPoolCollector(pool)); err != nil {
			cleanup()
			return nil, fmt.Errorf("failed to register pool metrics: %w", err)
		}

		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				cleanup()
				return nil
			},
		})
		return pgstore.NewPostgresUoW(pool, m), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
