package storage

import "database/sql"

type Dialect interface {
	GetPrimaryKeyType() string
	Initialize(db *sql.DB) error
	ConvertPlaceholders(query string) string
}
