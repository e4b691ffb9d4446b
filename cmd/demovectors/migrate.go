package demovectors

import (
	"fmt"
	"log/slog"

	"github.com/yammerjp/demovectors/internal/storage"
)

func runMigration(dsn string) error {
	slog.Info("running database migration")

	// NewDB は接続時にマイグレーションを実行する
	db, err := storage.NewDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	defer db.Close()

	slog.Info("database migration completed successfully")
	return nil
}
