package demovectors

import (
	"context"
	"fmt"

	"github.com/yammerjp/demovectors/internal/storage"
	"github.com/yammerjp/demovectors/internal/testvectors"
)

// loadNamedSet は name が空なら組み込みセットを、そうでなければ db に保存されたセットを返します
func loadNamedSet(ctx context.Context, db storage.Database, name string) (*testvectors.Set, error) {
	if name == "" {
		return testvectors.Demo(), nil
	}
	set, err := db.LoadSet(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load set %q: %w", name, err)
	}
	return set, nil
}

// openSet は必要な場合だけデータベースを開いてセットを読み込みます
func openSet(ctx context.Context, dsn, name string) (*testvectors.Set, error) {
	if name == "" {
		return testvectors.Demo(), nil
	}

	db, err := storage.NewDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	return loadNamedSet(ctx, db, name)
}
