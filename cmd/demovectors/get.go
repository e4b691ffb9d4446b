package demovectors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/yammerjp/demovectors/internal/client"
	"github.com/yammerjp/demovectors/internal/util"
)

func runGet(ctx context.Context, w io.Writer, cmd GetCmd, dsn string) error {
	var vec []float32
	if cmd.Remote != "" {
		slog.Debug("fetching test vector", "remote", cmd.Remote, "index", cmd.Index)
		var err error
		vec, err = client.NewClient(nil, cmd.Remote).GetVector(ctx, cmd.Index)
		if err != nil {
			return fmt.Errorf("failed to fetch test vector: %w", err)
		}
	} else {
		set, err := openSet(ctx, dsn, cmd.Set)
		if err != nil {
			return err
		}
		vec, err = set.Vector(cmd.Index)
		if err != nil {
			return err
		}
	}

	return printVector(w, vec, cmd.Encoding)
}

func printVector(w io.Writer, vec []float32, encoding string) error {
	if encoding == "base64" {
		_, err := fmt.Fprintln(w, util.Float32ToBase64(vec))
		return err
	}

	b, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("failed to encode vector: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
