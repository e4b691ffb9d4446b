package demovectors

import (
	"context"
	"fmt"
	"io"

	"github.com/yammerjp/demovectors/internal/storage"
	"github.com/yammerjp/demovectors/internal/testvectors"
)

func runList(ctx context.Context, w io.Writer, cmd ListCmd, dsn string) error {
	if cmd.Stored {
		return listStoredSets(ctx, w, dsn)
	}

	set, err := openSet(ctx, dsn, cmd.Set)
	if err != nil {
		return err
	}
	return printSet(w, set)
}

func printSet(w io.Writer, set *testvectors.Set) error {
	if _, err := fmt.Fprintf(w, "name=%s count=%d dimension=%d\n", set.Name(), set.Len(), set.Dim()); err != nil {
		return err
	}
	for i, v := range set.Vectors() {
		if _, err := fmt.Fprintf(w, "%d\t", i); err != nil {
			return err
		}
		if err := printVector(w, v, "float"); err != nil {
			return err
		}
	}
	return nil
}

func listStoredSets(ctx context.Context, w io.Writer, dsn string) error {
	db, err := storage.NewDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	sets, err := db.ListSets(ctx)
	if err != nil {
		return err
	}
	for _, s := range sets {
		if _, err := fmt.Fprintf(w, "name=%s count=%d dimension=%d\n", s.Name, s.Count, s.Dimension); err != nil {
			return err
		}
	}
	return nil
}
