package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/yammerjp/demovectors/internal/testvectors"
)

// MockDB はテスト用のモックデータベース
type MockDB struct {
	mu   sync.RWMutex
	sets map[string]*testvectors.Set
}

func NewMockDB() *MockDB {
	return &MockDB{
		sets: make(map[string]*testvectors.Set),
	}
}

func (db *MockDB) StoreSet(ctx context.Context, set *testvectors.Set) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.sets[set.Name()] = set
	return nil
}

func (db *MockDB) GetVector(ctx context.Context, name string, index int) ([]float32, error) {
	set, err := db.LoadSet(ctx, name)
	if err != nil {
		return nil, err
	}
	return set.Vector(index)
}

func (db *MockDB) LoadSet(ctx context.Context, name string) (*testvectors.Set, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	set, ok := db.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return set, nil
}

// MockDB が Database インターフェースを実装していることを確認
var _ Database = (*MockDB)(nil)
