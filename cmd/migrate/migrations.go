package main

import (
	"database/sql"
	"fmt"

	"library-backend/internal/config"
	"library-backend/internal/infrastructure/database/migrations"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

// openSQL opens a database/sql handle through lib/pq, which is what goose expects.
func openSQL() (*sql.DB, error) {
	cfg, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func withGoose(fn func(db *sql.DB) error) error {
	db, err := openSQL()
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return fn(db)
}

func newUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGoose(func(db *sql.DB) error {
				if err := goose.UpContext(cmd.Context(), db, "."); err != nil {
					return fmt.Errorf("apply migrations: %w", err)
				}
				cmd.Println("Migrations applied successfully")
				return nil
			})
		},
	}
}

func newDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGoose(func(db *sql.DB) error {
				if err := goose.DownContext(cmd.Context(), db, "."); err != nil {
					return fmt.Errorf("roll back migration: %w", err)
				}
				cmd.Println("Migration rolled back successfully")
				return nil
			})
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the state of every migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGoose(func(db *sql.DB) error {
				return goose.StatusContext(cmd.Context(), db, ".")
			})
		},
	}
}
