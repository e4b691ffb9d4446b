package storage

import (
	"context"

	"github.com/yammerjp/demovectors/internal/testvectors"
)

// Database はテストベクトルセットの保存先のインターフェースです
type Database interface {
	StoreSet(ctx context.Context, set *testvectors.Set) error
	GetVector(ctx context.Context, name string, index int) ([]float32, error)
	LoadSet(ctx context.Context, name string) (*testvectors.Set, error)
}

var _ Database = (*DB)(nil)
