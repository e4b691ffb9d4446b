package demovectors

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/yammerjp/demovectors/internal/export"
	"github.com/yammerjp/demovectors/internal/storage"
	"github.com/yammerjp/demovectors/internal/testvectors"
)

func runLoad(ctx context.Context, cmd LoadCmd, dsn string) error {
	set := testvectors.Demo()
	var err error
	switch {
	case cmd.Header != "":
		set, err = readHeaderFile(cmd.Header)
	case cmd.Fvecs != "":
		set, err = readFvecsFile(cmd.Fvecs, cmd.Name)
	}
	if err != nil {
		return err
	}

	db, err := storage.NewDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	return storeSet(ctx, db, set)
}

func readHeaderFile(path string) (*testvectors.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open header: %w", err)
	}
	defer f.Close()

	set, err := export.ParseHeader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return set, nil
}

func readFvecsFile(path, name string) (*testvectors.Set, error) {
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fvecs file: %w", err)
	}
	defer f.Close()

	vectors, err := export.ReadFvecs(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return testvectors.NewSet(name, vectors)
}

func storeSet(ctx context.Context, db storage.Database, set *testvectors.Set) error {
	if err := db.StoreSet(ctx, set); err != nil {
		return fmt.Errorf("failed to store set %q: %w", set.Name(), err)
	}
	slog.Info("stored test vector set",
		"set", set.Name(),
		"count", set.Len(),
		"dimension", set.Dim(),
	)
	return nil
}
