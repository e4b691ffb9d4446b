package testvectors

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetValidIndexes(t *testing.T) {
	for i := 0; i < NTestVectors; i++ {
		v, err := Get(i)
		require.NoError(t, err)
		assert.Len(t, v, VectorLength, "index %d", i)
	}
}

func TestGetOutOfRange(t *testing.T) {
	for _, index := range []int{-1, NTestVectors, 100} {
		v, err := Get(index)
		assert.Nil(t, v)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrOutOfRange), "index %d: %v", index, err)

		var ie *IndexError
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, index, ie.Index)
		assert.Equal(t, NTestVectors, ie.Count)
	}
}

func TestGetLiteralValues(t *testing.T) {
	v0, err := Get(0)
	require.NoError(t, err)
	assert.InDelta(t, -0.16711809, v0[0], 1e-7)
	assert.InDelta(t, 0.04643655, v0[VectorLength-1], 1e-7)

	v4, err := Get(4)
	require.NoError(t, err)
	assert.InDelta(t, 0.24380071, v4[2], 1e-7)
}

func TestGetIsIdempotent(t *testing.T) {
	first, err := Get(3)
	require.NoError(t, err)

	// 返されたスライスを書き換えてもセットには影響しない
	first[0] = 42

	second, err := Get(3)
	require.NoError(t, err)
	third, err := Get(3)
	require.NoError(t, err)
	assert.Equal(t, second, third)
	assert.InDelta(t, -0.55892187, second[0], 1e-7)
}

func TestCount(t *testing.T) {
	assert.Equal(t, NTestVectors, Count())
	assert.Equal(t, NTestVectors, Demo().Len())
	assert.Equal(t, VectorLength, Demo().Dim())
	assert.Equal(t, DemoSetName, Demo().Name())
	assert.Len(t, Demo().Vectors(), Count())
}

func TestConcurrentReads(t *testing.T) {
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < NTestVectors; i++ {
				v, err := Get(i)
				if err != nil || len(v) != VectorLength {
					t.Errorf("Get(%d) = %v, %v", i, v, err)
				}
			}
		}()
	}
	wg.Wait()
}

func TestNewSet(t *testing.T) {
	tests := []struct {
		name    string
		setName string
		vectors [][]float32
		wantErr error
	}{
		{
			name:    "valid set",
			setName: "small",
			vectors: [][]float32{{1, 2}, {3, 4}, {5, 6}},
		},
		{
			name:    "missing name",
			vectors: [][]float32{{1}},
			wantErr: ErrEmptySet,
		},
		{
			name:    "no vectors",
			setName: "empty",
			wantErr: ErrEmptySet,
		},
		{
			name:    "zero length vectors",
			setName: "zero",
			vectors: [][]float32{{}, {}},
			wantErr: ErrEmptySet,
		},
		{
			name:    "ragged vectors",
			setName: "ragged",
			vectors: [][]float32{{1, 2}, {3}},
			wantErr: ErrRaggedSet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NewSet(tt.setName, tt.vectors)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, set)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.vectors), set.Len())
			assert.Equal(t, len(tt.vectors[0]), set.Dim())
		})
	}
}

func TestNewSetCopiesInput(t *testing.T) {
	src := [][]float32{{1, 2}, {3, 4}}
	set, err := NewSet("copy", src)
	require.NoError(t, err)

	src[0][0] = 99

	v, err := set.Vector(0)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, v)

	all := set.Vectors()
	all[1][1] = 99
	v, err = set.Vector(1)
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 4}, v)
}
