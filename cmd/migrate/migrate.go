// Package migrate applies the database schema.
package migrate

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"card-ingest/cmd/root"
	"card-ingest/migrations"
)

// Cmd represents the migrate command.
var Cmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if root.Cfg.Database.URL == "" {
			return fmt.Errorf("no database configured: set DATABASE_URL")
		}

		db, err := sql.Open("pgx", root.Cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		if err := migrations.Up(db); err != nil {
			return fmt.Errorf("applying migrations: %w", err)
		}
		root.Log.Info("Migrations applied")
		return nil
	},
}
