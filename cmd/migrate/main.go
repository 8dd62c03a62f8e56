package main

import (
	"context"
	"fmt"
	"os"

	"github.com/elitedog/backend/internal/config"
	"github.com/elitedog/backend/internal/logging"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	databaseURL  string
	migrationDir string
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending Postgres migrations",
	Long: `Applies every migrations/*.up.sql file not yet recorded in schema_migrations,
in file-name order.`,
	SilenceUsage: true,
	RunE: withPool(func(ctx context.Context, pool *pgxpool.Pool, cmd *cobra.Command) error {
		return runIncremental(ctx, pool, migrationDir)
	}),
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop all tables and recreate them from the consolidated schema",
	RunE: withPool(func(ctx context.Context, pool *pgxpool.Pool, cmd *cobra.Command) error {
		if err := runDropAll(ctx, pool, migrationDir); err != nil {
			return err
		}
		return runConsolidated(ctx, pool, migrationDir)
	}),
}

var freshCmd = &cobra.Command{
	Use:   "fresh",
	Short: "Drop all tables and apply every migration in order",
	RunE: withPool(func(ctx context.Context, pool *pgxpool.Pool, cmd *cobra.Command) error {
		if err := runDropAll(ctx, pool, migrationDir); err != nil {
			return err
		}
		return runIncremental(ctx, pool, migrationDir)
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which migrations have been applied",
	RunE: withPool(func(ctx context.Context, pool *pgxpool.Pool, cmd *cobra.Command) error {
		return runStatus(ctx, pool, migrationDir, cmd.OutOrStdout())
	}),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Postgres URL (default: $DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&migrationDir, "dir", "", "migrations directory (default: ./migrations or ../migrations)")
	rootCmd.AddCommand(resetCmd, freshCmd, statusCmd)
}

func main() {
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")
	logging.Setup(os.Getenv("LOG_LEVEL"))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type poolFunc func(ctx context.Context, pool *pgxpool.Pool, cmd *cobra.Command) error

// withPool resolves flags, connects, and hands the pool to fn.
func withPool(fn poolFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		url := databaseURL
		if url == "" {
			url = os.Getenv("DATABASE_URL")
		}
		if url == "" {
			url = config.DefaultDatabaseURL
		}
		if migrationDir == "" {
			migrationDir = findMigrationDir()
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		pool, err := pgxpool.New(ctx, url)
		if err != nil {
			return fmt.Errorf("connect failed: %w", err)
		}
		defer pool.Close()
		return fn(ctx, pool, cmd)
	}
}
