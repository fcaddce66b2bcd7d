package service

import (
	"sync"

	"github.com/rl1809/shopping-cart/internal/core/domain"
)

// CartRegistry keeps exactly one cart per customer for the life of the process.
type CartRegistry struct {
	mu    sync.Mutex
	carts map[domain.Customer]*domain.Cart
}

func NewCartRegistry() *CartRegistry {
	return &CartRegistry{carts: make(map[domain.Customer]*domain.Cart)}
}

// Resolve returns the customer's cart, creating an empty one on first access.
func (r *CartRegistry) Resolve(customer domain.Customer) *domain.Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart, ok := r.carts[customer]; ok {
		return cart
	}
	cart := domain.NewCart(customer)
	r.carts[customer] = cart
	return cart
}

func (r *CartRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}
