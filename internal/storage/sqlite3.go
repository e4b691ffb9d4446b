package storage

import (
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/glebarez/go-sqlite"
)

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

// SQLiteDialect はSQLite用の実装
type SQLiteDialect struct{}

func (d SQLiteDialect) GetPrimaryKeyType() string {
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

func (d SQLiteDialect) Initialize(db *sql.DB) error {
	// :memory: は接続ごとに別のDBになるので接続を1本に絞る
	db.SetMaxOpenConns(1)

	// WALモードを有効化
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	return nil
}

func (d SQLiteDialect) ConvertPlaceholders(query string) string {
	// $1, $2, ... を ? に変換
	return placeholderRe.ReplaceAllString(query, "?")
}
