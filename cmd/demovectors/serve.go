package demovectors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/yammerjp/demovectors/internal/handler"
)

const shutdownTimeout = 5 * time.Second

func runServer(ctx context.Context, cmd ServeCmd, dsn string) error {
	set, err := openSet(ctx, dsn, cmd.Set)
	if err != nil {
		return err
	}

	slog.Info("starting server",
		"host", cmd.Host,
		"port", cmd.Port,
		"set", set.Name(),
		"count", set.Len(),
		"dimension", set.Dim(),
	)

	addr := fmt.Sprintf("%s:%d", cmd.Host, cmd.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler.NewHandler(set),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server is ready", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
