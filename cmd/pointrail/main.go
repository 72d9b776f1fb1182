package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/joho/godotenv"
	"github.com/pointraillabs/pointrail/internal/clock"
	"github.com/pointraillabs/pointrail/internal/config"
	"github.com/pointraillabs/pointrail/internal/discount"
	"github.com/pointraillabs/pointrail/internal/metrics"
	"github.com/pointraillabs/pointrail/internal/migration"
	"github.com/pointraillabs/pointrail/internal/observability"
	"github.com/pointraillabs/pointrail/internal/partner"
	"github.com/pointraillabs/pointrail/internal/program"
	"github.com/pointraillabs/pointrail/internal/quota"
	"github.com/pointraillabs/pointrail/internal/redis"
	"github.com/pointraillabs/pointrail/internal/server"
	"github.com/pointraillabs/pointrail/internal/sweeper"
	"github.com/pointraillabs/pointrail/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "pointrail",
		Short:   "Pointrail partner network CLI",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newMigrateCmd(), newServeCmd(), newSweepCmd(), newAllCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and activate schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run partner admin API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run the expiry sweeper loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			runSweep()
			return nil
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run migrations, then start the API server and sweeper",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMigrate(); err != nil {
				return err
			}
			runMonolith()
			return nil
		},
	}
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		migration.Module,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runServe() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		metrics.Module,
		partner.Module,
		quota.Module,
		program.Module,
		discount.Module,
		sweeper.Module,
		server.Module,
		fx.Invoke(sweeper.Start),
	)
	app.Run()
}

func runSweep() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		metrics.Module,
		partner.Module,
		quota.Module,
		program.Module,
		discount.Module,
		sweeper.Module,
		fx.Invoke(sweeper.Start),
	)
	app.Run()
}

func runMonolith() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		metrics.Module,
		partner.Module,
		quota.Module,
		program.Module,
		discount.Module,
		sweeper.Module,
		server.Module,
		fx.Invoke(sweeper.Start),
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}
