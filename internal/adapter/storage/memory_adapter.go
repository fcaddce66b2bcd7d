package storage

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/rl1809/shopping-cart/internal/core/domain"
)

type memoryEntry struct {
	product *domain.Product
	version int
}

// MemoryAdapter keeps products in process. It hands out the stored product
// instances, so every lookup of a name returns the same *domain.Product.
type MemoryAdapter struct {
	mu       sync.RWMutex
	products map[string]memoryEntry
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{products: make(map[string]memoryEntry)}
}

func (m *MemoryAdapter) Save(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	version := product.Version()
	if entry, ok := m.products[product.Name()]; ok {
		if entry.version != version {
			return ErrOptimisticLock
		}
		version++
	}

	product.SetVersion(version)
	m.products[product.Name()] = memoryEntry{product: product, version: version}
	return nil
}

func (m *MemoryAdapter) GetAll(ctx context.Context) ([]*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Product, 0, len(m.products))
	for _, entry := range m.products {
		out = append(out, entry.product)
	}
	slices.SortFunc(out, func(a, b *domain.Product) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return out, nil
}

func (m *MemoryAdapter) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.products[name]
	if !ok {
		return nil, nil
	}
	return entry.product, nil
}
