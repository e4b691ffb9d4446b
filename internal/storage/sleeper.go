package storage

import "time"

// Sleeper はGCのバッチ間の待機を差し替えるためのインターフェース
type Sleeper interface {
	Sleep(d time.Duration)
}

type RealSleeper struct{}

func (s RealSleeper) Sleep(d time.Duration) {
	time.Sleep(d)
}

// SetSleeper はテストなどで待機処理を差し替えます
func (db *DB) SetSleeper(s Sleeper) {
	db.sleeper = s
}
