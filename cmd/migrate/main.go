package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"pomodoroclock/backend/internal/config"
	"pomodoroclock/backend/internal/db"
)

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the pomodoro clock API",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			log.Println("migrations applied successfully")
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfg.DBDriver, "driver", cfg.DBDriver, "database driver (sqlite3 or pgx)")
	rootCmd.PersistentFlags().StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "sqlite path or postgres URL")
	rootCmd.PersistentFlags().StringVar(&cfg.MigrationsDir, "migrations", cfg.MigrationsDir, "migrations root directory")

	rootCmd.AddCommand(seedCmd(&cfg))
	rootCmd.AddCommand(sweepCmd(&cfg))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDatabase connects and brings the schema up to date.
func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	database, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.RunMigrations(database, db.MigrationsPath(cfg.MigrationsDir, cfg.DBDriver)); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return database, nil
}
