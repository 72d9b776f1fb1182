// Package db owns the shared gorm handle. The handle is constructed once and
// injected into every component; nothing in the tree reaches for a global pool.
package db

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormprometheus "gorm.io/plugin/prometheus"
)

type Config struct {
	Driver  string
	DSN     string
	Metrics bool
}

var Module = fx.Module("db",
	fx.Provide(New),
)

type Params struct {
	fx.In

	Config Config
	Log    *zap.Logger
	LC     fx.Lifecycle
}

func New(p Params) (*gorm.DB, error) {
	handle, err := Open(p.Config)
	if err != nil {
		return nil, err
	}

	p.Log.Info("database connected", zap.String("driver", p.Config.Driver))

	p.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := handle.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return handle, nil
}

// Open dials the configured engine and attaches the tracing and metrics
// plugins. TranslateError is always on so constraint violations surface as
// gorm sentinel errors regardless of driver.
func Open(cfg Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	handle, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := handle.Use(otelgorm.NewPlugin()); err != nil {
		return nil, fmt.Errorf("register otel plugin: %w", err)
	}

	if cfg.Metrics {
		if err := handle.Use(gormprometheus.New(gormprometheus.Config{
			DBName:          cfg.Driver,
			RefreshInterval: 15,
		})); err != nil {
			return nil, fmt.Errorf("register prometheus plugin: %w", err)
		}
	}

	return handle, nil
}

func dialectorFor(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	case "mysql":
		return mysql.Open(cfg.DSN), nil
	case "sqlite":
		return sqlite.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
