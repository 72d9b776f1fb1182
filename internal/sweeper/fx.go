package sweeper

import (
	"context"

	"github.com/pointraillabs/pointrail/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("sweeper",
	fx.Provide(New),
)

// Start launches the interval sweep loop when sweeping is enabled.
func Start(lc fx.Lifecycle, s *Sweeper, cfg config.Config) {
	if !cfg.Sweep.Enabled {
		return
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go s.Run(loopCtx, cfg.Sweep.Interval)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return nil
		},
	})
}
