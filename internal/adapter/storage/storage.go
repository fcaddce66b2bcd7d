package storage

import (
	"errors"

	"github.com/rl1809/shopping-cart/internal/port"
)

// ErrOptimisticLock is returned by Save when the stored product has moved on
// from the version the caller loaded.
var ErrOptimisticLock = errors.New("optimistic lock conflict")

var (
	_ port.ProductStorage = (*MySQLAdapter)(nil)
	_ port.ProductStorage = (*PostgresAdapter)(nil)
	_ port.ProductStorage = (*RedisAdapter)(nil)
	_ port.ProductStorage = (*MemoryAdapter)(nil)
)
