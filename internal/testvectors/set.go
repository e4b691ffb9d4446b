package testvectors

import (
	"fmt"
	"slices"
)

// Set は同じ長さのベクトルを0始まりの連番で保持する読み取り専用のセット
type Set struct {
	name    string
	dim     int
	vectors [][]float32
}

// NewSet は vectors をコピーして新しいSetを作成します。
// 空のセットや長さの揃わないセットはエラーになります。
func NewSet(name string, vectors [][]float32) (*Set, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrEmptySet)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: set %q has no vectors", ErrEmptySet, name)
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: set %q has zero-length vectors", ErrEmptySet, name)
	}

	copied := make([][]float32, len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has length %d, expected %d", ErrRaggedSet, i, len(v), dim)
		}
		copied[i] = slices.Clone(v)
	}

	return &Set{
		name:    name,
		dim:     dim,
		vectors: copied,
	}, nil
}

func (s *Set) Name() string {
	return s.name
}

// Len はベクトル数を返します
func (s *Set) Len() int {
	return len(s.vectors)
}

// Dim は各ベクトルの要素数を返します
func (s *Set) Dim() int {
	return s.dim
}

// Vector は index 番目のベクトルのコピーを返します
func (s *Set) Vector(index int) ([]float32, error) {
	if index < 0 || index >= len(s.vectors) {
		return nil, &IndexError{Index: index, Count: len(s.vectors)}
	}
	return slices.Clone(s.vectors[index]), nil
}

// Vectors は全ベクトルのコピーを返します
func (s *Set) Vectors() [][]float32 {
	ret := make([][]float32, len(s.vectors))
	for i, v := range s.vectors {
		ret[i] = slices.Clone(v)
	}
	return ret
}
