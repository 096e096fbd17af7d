// Package main is coldbd, the column-store server process. It uses cobra
// for its command tree, generalizing the teacher's cmd/smf/main.go
// root-command-with-subcommands layout from a one-shot schema tool to a
// long-running server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"coldb/internal/config"
	"coldb/internal/index"
	"coldb/internal/logging"
	"coldb/internal/persist"
	"coldb/internal/pool"
	"coldb/internal/server"
	"coldb/internal/value"
)

type serveFlags struct {
	configPath string
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "coldbd",
		Short: "Column-store database server",
	}

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	flags := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start accepting client connections",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(flags)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "Path to server TOML config (defaults built in if omitted)")

	return cmd
}

func runServe(flags *serveFlags) error {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return fmt.Errorf("coldbd: %w", err)
		}
		cfg = loaded
	}

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("coldbd: %w", err)
	}
	defer logger.Sync()

	applyIndexConfig(cfg.Index)

	resources := pool.NewResourcePool()
	if err := loadExistingDatabases(resources, cfg.Storage.DataDir); err != nil {
		return fmt.Errorf("coldbd: %w", err)
	}

	srv, err := server.New(cfg.Server.SocketPath, cfg.Storage.DataDir, resources, logger)
	if err != nil {
		return fmt.Errorf("coldbd: %w", err)
	}

	logger.Named("main").Info("listening", zap.String("socket", cfg.Server.SocketPath))
	return srv.Serve()
}

// applyIndexConfig overrides the package-level column/B+-tree sizing
// defaults from the server config, letting a deployment (or a test harness)
// shrink them well below the compiled-in defaults; a zero field in cfg means
// "keep the default".
func applyIndexConfig(cfg config.IndexConfig) {
	if cfg.ColumnInitialCapacity > 0 {
		value.InitialCapacity = cfg.ColumnInitialCapacity
	}
	if cfg.BTreeFanout > 0 {
		index.Fanout = cfg.BTreeFanout
	}
}

// loadExistingDatabases reads the system catalog and loads every database
// it lists from disk into resources, so a restart picks up where the
// previous run's SHUTDOWN flush left off.
func loadExistingDatabases(resources *pool.ResourcePool, dataDir string) error {
	cat, err := persist.LoadSystemCatalog(dataDir)
	if err != nil {
		return err
	}
	for _, entry := range cat.Databases {
		db, err := persist.LoadDatabase(dataDir, entry.Name)
		if err != nil {
			return err
		}
		resources.Register(db)
	}
	return nil
}
