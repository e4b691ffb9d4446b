package testvectors

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange はインデックスが [0, N) の範囲外のときのエラーです
	ErrOutOfRange = errors.New("test vector index out of range")
	ErrEmptySet   = errors.New("empty test vector set")
	ErrRaggedSet  = errors.New("test vectors must share one length")
)

// IndexError は範囲外のインデックスを要求されたときのエラー
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d not in [0, %d)", ErrOutOfRange, e.Index, e.Count)
}

func (e *IndexError) Unwrap() error {
	return ErrOutOfRange
}
