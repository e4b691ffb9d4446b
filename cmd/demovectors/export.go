package demovectors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/yammerjp/demovectors/internal/export"
)

func runExport(ctx context.Context, stdout io.Writer, cmd ExportCmd, dsn string) error {
	format, err := export.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}

	set, err := openSet(ctx, dsn, cmd.Set)
	if err != nil {
		return err
	}

	if cmd.Output == "" {
		return export.Write(stdout, set, format)
	}

	f, err := os.Create(cmd.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := export.Write(f, set, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	slog.Info("exported test vectors",
		"set", set.Name(),
		"format", format,
		"output", cmd.Output,
	)
	return nil
}
