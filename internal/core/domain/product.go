package domain

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidArgument is returned when a caller passes an out-of-range count or quantity.
var ErrInvalidArgument = errors.New("invalid argument")

type Product struct {
	name string

	mu      sync.RWMutex
	count   int
	version int // optimistic locking, owned by storage adapters
}

func NewProduct(name string, count int) (*Product, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrInvalidArgument)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: product count may not be negative", ErrInvalidArgument)
	}
	return &Product{name: name, count: count}, nil
}

// RestoreProduct rebuilds a product loaded from storage.
func RestoreProduct(name string, count, version int) (*Product, error) {
	p, err := NewProduct(name, count)
	if err != nil {
		return nil, err
	}
	p.version = version
	return p, nil
}

func (p *Product) Name() string { return p.name }

func (p *Product) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.count
}

// SubtractCount decreases stock by n. n must be within [0, Count()].
func (p *Product) SubtractCount(n int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n < 0 {
		return fmt.Errorf("%w: cannot subtract negative amount %d from product '%s'", ErrInvalidArgument, n, p.name)
	}
	if n > p.count {
		return fmt.Errorf("%w: cannot subtract %d from product '%s' with count %d", ErrInvalidArgument, n, p.name, p.count)
	}
	p.count -= n
	return nil
}

func (p *Product) Version() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version
}

func (p *Product) SetVersion(v int) {
	p.mu.Lock()
	p.version = v
	p.mu.Unlock()
}

func (p *Product) String() string {
	return fmt.Sprintf("%s(%d)", p.name, p.Count())
}
