package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yammerjp/demovectors/internal/testvectors"
	"github.com/yammerjp/demovectors/internal/util"
)

const (
	sqlCreateTable = `
	CREATE TABLE IF NOT EXISTS test_vectors (
		id %s,
		set_name TEXT NOT NULL,
		idx INTEGER NOT NULL,
		dimension INTEGER NOT NULL,
		vector_data TEXT NOT NULL, -- base64 encoded float32 array
		created_at TIMESTAMP NOT NULL,
		UNIQUE(set_name, idx)
	)`

	createIndexSQL = `
	CREATE INDEX IF NOT EXISTS idx_set_name_idx
	ON test_vectors(set_name, idx)
	`

	sqlCountVectors = `
	SELECT COUNT(*)
	FROM test_vectors
	WHERE set_name = $1`

	sqlVectorBounds = `
	SELECT COUNT(*), COALESCE(MAX(idx), -1)
	FROM test_vectors
	WHERE set_name = $1`

	sqlGetVector = `
	SELECT vector_data
	FROM test_vectors
	WHERE set_name = $1 AND idx = $2`

	sqlLoadSet = `
	SELECT idx, vector_data
	FROM test_vectors
	WHERE set_name = $1
	ORDER BY idx`

	sqlListSets = `
	SELECT set_name, COUNT(*), MAX(dimension)
	FROM test_vectors
	GROUP BY set_name
	ORDER BY set_name`

	sqlDeleteStaleVectors = `
	DELETE FROM test_vectors
	WHERE set_name = $1 AND idx >= $2`

	sqlStoreVector = `
	INSERT INTO test_vectors (set_name, idx, dimension, vector_data, created_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT(set_name, idx) DO UPDATE
	SET dimension = EXCLUDED.dimension,
		vector_data = EXCLUDED.vector_data,
		created_at = EXCLUDED.created_at`

	// セットの一部だけが消えないように、範囲に掛かったセットは丸ごと削除する
	sqlDeleteEntriesBefore = `
		DELETE FROM test_vectors
		WHERE set_name IN (
			SELECT set_name FROM test_vectors
			WHERE id >= $1 AND id < $2
			AND created_at < $3
		)
	`

	sqlGetMaxID = `
		SELECT COALESCE(MAX(id), 0) FROM test_vectors
	`
)

// ErrNotFound は指定された名前のセットが保存されていない場合のエラーです
var ErrNotFound = errors.New("test vector set not found")

// SetInfo は保存済みセットの概要
type SetInfo struct {
	Name      string
	Count     int
	Dimension int
}

type DB struct {
	*sql.DB
	sleeper Sleeper
	dialect Dialect
}

func NewDB(dsn string) (*DB, error) {
	config, err := parseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	db, err := sql.Open(config.Driver, config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := config.Dialect.Initialize(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	ret := &DB{
		DB:      db,
		sleeper: RealSleeper{},
		dialect: config.Dialect,
	}

	if err := ret.RunMigrations(); err != nil {
		ret.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return ret, nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}

func (db *DB) Dialect() Dialect {
	return db.dialect
}

func (db *DB) RunMigrations() error {
	createTableSQL := fmt.Sprintf(sqlCreateTable, db.dialect.GetPrimaryKeyType())

	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := db.Exec(createIndexSQL); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	return nil
}

// StoreSet はセットの全ベクトルを1トランザクションで保存します。
// 既存のセットより短い場合、余ったインデックスの行は削除されます。
func (db *DB) StoreSet(ctx context.Context, set *testvectors.Set) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, db.dialect.ConvertPlaceholders(sqlDeleteStaleVectors), set.Name(), set.Len()); err != nil {
		return fmt.Errorf("failed to delete stale vectors: %w", err)
	}

	now := time.Now().UTC()
	query := db.dialect.ConvertPlaceholders(sqlStoreVector)
	for i, v := range set.Vectors() {
		if _, err := tx.ExecContext(ctx, query, set.Name(), i, len(v), string(util.Float32ToBase64(v)), now); err != nil {
			return fmt.Errorf("failed to store vector %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Debug("stored test vector set",
		"set", set.Name(),
		"count", set.Len(),
		"dimension", set.Dim(),
	)
	return nil
}

func (db *DB) CountVectors(ctx context.Context, name string) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, db.dialect.ConvertPlaceholders(sqlCountVectors), name).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count vectors: %w", err)
	}
	return count, nil
}

// GetVector は保存済みセットの index 番目のベクトルを返します
func (db *DB) GetVector(ctx context.Context, name string, index int) ([]float32, error) {
	var b64 util.EmbeddedVectorBase64
	err := db.QueryRowContext(ctx, db.dialect.ConvertPlaceholders(sqlGetVector), name, index).Scan(&b64)
	if err == sql.ErrNoRows {
		return nil, db.missingVectorError(ctx, name, index)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vector: %w", err)
	}

	vec, err := util.Base64ToFloat32Slice(b64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode vector %d: %w", index, err)
	}
	return vec, nil
}

// 行が無かった理由を、セット自体が無いのか範囲外なのか欠番なのかで区別する
func (db *DB) missingVectorError(ctx context.Context, name string, index int) error {
	var count, maxIdx int
	err := db.QueryRowContext(ctx, db.dialect.ConvertPlaceholders(sqlVectorBounds), name).Scan(&count, &maxIdx)
	if err != nil {
		return fmt.Errorf("failed to query set bounds: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if index < 0 || index > maxIdx {
		return &testvectors.IndexError{Index: index, Count: maxIdx + 1}
	}
	return fmt.Errorf("%w: %s[%d]", ErrNotFound, name, index)
}

// LoadSet は保存済みのセットを読み込みます
func (db *DB) LoadSet(ctx context.Context, name string) (*testvectors.Set, error) {
	rows, err := db.QueryContext(ctx, db.dialect.ConvertPlaceholders(sqlLoadSet), name)
	if err != nil {
		return nil, fmt.Errorf("failed to query set: %w", err)
	}
	defer rows.Close()

	var vectors [][]float32
	for rows.Next() {
		var idx int
		var b64 util.EmbeddedVectorBase64
		if err := rows.Scan(&idx, &b64); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if idx != len(vectors) {
			return nil, fmt.Errorf("set %s has a gap at index %d", name, len(vectors))
		}
		vec, err := util.Base64ToFloat32Slice(b64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode vector %d: %w", idx, err)
		}
		vectors = append(vectors, vec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return testvectors.NewSet(name, vectors)
}

func (db *DB) ListSets(ctx context.Context) ([]SetInfo, error) {
	rows, err := db.QueryContext(ctx, sqlListSets)
	if err != nil {
		return nil, fmt.Errorf("failed to list sets: %w", err)
	}
	defer rows.Close()

	var sets []SetInfo
	for rows.Next() {
		var info SetInfo
		if err := rows.Scan(&info.Name, &info.Count, &info.Dimension); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		sets = append(sets, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return sets, nil
}

// DeleteEntriesBeforeWithSleep は [startID, endID) の範囲に threshold より古い行を持つセットをバッチ削除します
func (db *DB) DeleteEntriesBeforeWithSleep(threshold time.Duration, startID, endID int64, batchSize int64, sleep time.Duration) error {
	if batchSize <= 0 {
		return fmt.Errorf("invalid batch size: %d", batchSize)
	}
	thresholdTime := time.Now().UTC().Add(-threshold)

	query := db.dialect.ConvertPlaceholders(sqlDeleteEntriesBefore)

	var totalDeleted int64
	currentID := startID

	for currentID < endID {
		batchEndID := currentID + batchSize - 1
		if batchEndID >= endID {
			batchEndID = endID - 1
		}

		result, err := db.Exec(query, currentID, batchEndID+1, thresholdTime)
		if err != nil {
			return fmt.Errorf("failed to delete batch: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}

		totalDeleted += rowsAffected

		slog.Info("batch deletion progress",
			"current_id", currentID,
			"batch_end_id", batchEndID,
			"batch_deleted", rowsAffected,
			"total_deleted", totalDeleted,
			"threshold_time", thresholdTime)

		if sleep > 0 {
			db.sleeper.Sleep(sleep)
		}

		currentID = batchEndID + 1
	}

	return nil
}

func (db *DB) GetMaxID() (int64, error) {
	var maxID int64
	err := db.QueryRow(sqlGetMaxID).Scan(&maxID)
	if err != nil {
		return 0, fmt.Errorf("failed to get max ID: %w", err)
	}
	return maxID, nil
}
