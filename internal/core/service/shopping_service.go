package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/rl1809/shopping-cart/internal/core/domain"
	"github.com/rl1809/shopping-cart/internal/port"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// BuyError reports a cart entry that asks for more than the product has in stock.
type BuyError struct {
	Product string
}

func (e *BuyError) Error() string {
	return fmt.Sprintf("not enough stock available for product '%s'", e.Product)
}

func (e *BuyError) Unwrap() error { return ErrInsufficientStock }

type ShoppingService struct {
	storage port.ProductStorage
	carts   *CartRegistry
	logger  *slog.Logger

	// serializes validation and commit between buyers
	buyMu sync.Mutex
}

func NewShoppingService(storage port.ProductStorage, logger *slog.Logger) *ShoppingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShoppingService{
		storage: storage,
		carts:   NewCartRegistry(),
		logger:  logger,
	}
}

func (s *ShoppingService) GetCart(customer domain.Customer) *domain.Cart {
	return s.carts.Resolve(customer)
}

func (s *ShoppingService) GetAllProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.storage.GetAll(ctx)
}

func (s *ShoppingService) GetProductByName(ctx context.Context, name string) (*domain.Product, error) {
	return s.storage.GetByName(ctx, name)
}

type cartLine struct {
	product  *domain.Product
	quantity int
}

// Buy commits the cart against inventory. It returns false with a nil error
// when the cart is empty. Every entry is checked before any product is
// changed; a *BuyError is returned if one of them is short of stock.
//
// Products are decremented and saved one at a time. If a save fails the
// products already saved stay decremented and the cart is left intact.
func (s *ShoppingService) Buy(ctx context.Context, cart *domain.Cart) (bool, error) {
	s.buyMu.Lock()
	defer s.buyMu.Unlock()

	items := cart.Products()
	if len(items) == 0 {
		return false, nil
	}

	lines := make([]cartLine, 0, len(items))
	for p, q := range items {
		lines = append(lines, cartLine{product: p, quantity: q})
	}
	slices.SortFunc(lines, func(a, b cartLine) int {
		return cmp.Compare(a.product.Name(), b.product.Name())
	})

	for _, l := range lines {
		if l.quantity > l.product.Count() {
			return false, &BuyError{Product: l.product.Name()}
		}
	}

	for i, l := range lines {
		if err := l.product.SubtractCount(l.quantity); err != nil {
			return false, fmt.Errorf("subtract product '%s': %w", l.product.Name(), err)
		}
		if err := s.storage.Save(ctx, l.product); err != nil {
			s.logger.Error("buy left partially committed",
				"customer_id", cart.Customer().ID,
				"product", l.product.Name(),
				"saved", i,
				"total", len(lines),
				"error", err,
			)
			return false, fmt.Errorf("save product '%s': %w", l.product.Name(), err)
		}
	}

	cart.Clear()
	s.logger.Debug("cart bought", "customer_id", cart.Customer().ID, "lines", len(lines))
	return true, nil
}
