package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/shopping-cart/internal/adapter/storage"
	"github.com/rl1809/shopping-cart/internal/config"
	"github.com/rl1809/shopping-cart/internal/core/domain"
	"github.com/rl1809/shopping-cart/internal/core/service"
	"github.com/rl1809/shopping-cart/internal/logger"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	slogger := logger.New(logger.Options{
		Service: "stress_test",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
		Backend: cfg.StorageBackend,
	})

	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.StorageBackend, err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Printf("failed to close storage: %v", err)
		}
	}()

	// Fresh product per run so earlier runs don't skew the result
	itemName := "stress-item-" + uuid.New().String()
	item, err := domain.NewProduct(itemName, cfg.StressStock)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	if err := store.Save(ctx, item); err != nil {
		return fmt.Errorf("failed to seed stock: %w", err)
	}

	svc := service.NewShoppingService(store, slogger)

	var successCount atomic.Int32
	var rejectedCount atomic.Int32
	var failCount atomic.Int32

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < cfg.StressBuyers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			cart := svc.GetCart(domain.Customer{ID: int64(id), Contact: fmt.Sprintf("buyer-%d", id)})
			if err := cart.Add(item, 1); err != nil {
				rejectedCount.Add(1)
				return
			}

			ok, err := svc.Buy(ctx, cart)
			switch {
			case err == nil && ok:
				successCount.Add(1)
			case errors.Is(err, service.ErrInsufficientStock):
				rejectedCount.Add(1)
			default:
				failCount.Add(1)
				log.Printf("buyer %d: %v", id, err)
			}
		}(i)
	}

	wg.Wait()
	elapsed := time.Since(start)

	success := successCount.Load()
	rejected := rejectedCount.Load()
	fail := failCount.Load()
	expected := int32(min(cfg.StressStock, cfg.StressBuyers))

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Backend:          %s\n", cfg.StorageBackend)
	fmt.Printf("Initial Stock:    %d\n", cfg.StressStock)
	fmt.Printf("Total Buyers:     %d\n", cfg.StressBuyers)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Out of stock:     %d\n", rejected)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	if success == expected && fail == 0 {
		fmt.Printf("PASS: exactly %d buys succeeded\n", expected)
	} else {
		fmt.Printf("FAIL: expected %d successes and no failures, got %d/%d\n", expected, success, fail)
	}

	stored, err := store.GetByName(ctx, itemName)
	if err != nil {
		return fmt.Errorf("failed to reload product: %w", err)
	}
	if stored == nil {
		return fmt.Errorf("product %s missing after run", itemName)
	}
	fmt.Printf("Final Stored Stock: %d\n", stored.Count())

	if want := cfg.StressStock - int(expected); stored.Count() == want {
		fmt.Println("PASS: stored stock matches")
	} else {
		fmt.Printf("FAIL: expected stored stock %d, got %d\n", want, stored.Count())
	}
	return nil
}
