package domain

import (
	"fmt"
	"sync"
)

type cartEntry struct {
	product  *Product
	quantity int
}

// Cart holds a customer's pending purchase intent. Adding a product only
// checks it against the current stock; nothing is reserved until the cart
// is bought. Entries are keyed by product name.
type Cart struct {
	customer Customer

	mu      sync.Mutex
	entries map[string]cartEntry
}

func NewCart(customer Customer) *Cart {
	return &Cart{
		customer: customer,
		entries:  make(map[string]cartEntry),
	}
}

func (c *Cart) Customer() Customer { return c.customer }

// Add records quantity of product in the cart. An earlier entry with the same
// name is replaced, and the cart then refers to this product instance.
func (c *Cart) Add(product *Product, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity may not be negative", ErrInvalidArgument)
	}
	if quantity > product.Count() {
		return fmt.Errorf("%w: cannot add product '%s' to cart: insufficient stock", ErrInvalidArgument, product.Name())
	}

	c.mu.Lock()
	c.entries[product.Name()] = cartEntry{product: product, quantity: quantity}
	c.mu.Unlock()
	return nil
}

// Products returns a copy of the cart contents, one product per name.
func (c *Cart) Products() map[*Product]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[*Product]int, len(c.entries))
	for _, e := range c.entries {
		out[e.product] = e.quantity
	}
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}
