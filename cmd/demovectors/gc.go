package demovectors

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/yammerjp/demovectors/internal/storage"
)

func runGarbageCollection(cmd GCCmd, dsn string) error {
	duration, err := parseDuration(cmd.Before)
	if err != nil {
		return fmt.Errorf("invalid duration format %q: %w", cmd.Before, err)
	}

	db, err := storage.NewDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// EndIDが0（未指定）の場合は最大IDまでを対象にする
	endID := cmd.EndID
	if endID == 0 {
		endID, err = db.GetMaxID()
		if err != nil {
			return err
		}
	}

	slog.Info("running garbage collection",
		"before", cmd.Before,
		"start_id", cmd.StartID,
		"end_id", endID,
		"batch", cmd.Batch,
	)

	// 削除範囲は半開区間なので +1 する
	if err := db.DeleteEntriesBeforeWithSleep(duration, cmd.StartID, endID+1, int64(cmd.Batch), time.Duration(cmd.Sleep)*time.Second); err != nil {
		return fmt.Errorf("failed to run garbage collection: %w", err)
	}

	slog.Info("garbage collection completed successfully")
	return nil
}

// parseDuration は "24h", "7d", "30d" のような文字列をtime.Durationに変換します
func parseDuration(s string) (time.Duration, error) {
	// 日単位の指定をサポート
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid day format: %w", err)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	return time.ParseDuration(s)
}
