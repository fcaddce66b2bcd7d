package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rl1809/shopping-cart/internal/adapter/storage"
	"github.com/rl1809/shopping-cart/internal/core/domain"
	"github.com/rl1809/shopping-cart/internal/core/service"
)

func newApp() (*app, *bytes.Buffer) {
	store := storage.NewMemoryAdapter()
	var out bytes.Buffer
	return &app{
		storage: store,
		svc:     service.NewShoppingService(store, nil),
		out:     &out,
	}, &out
}

func TestRun_SeedBuyList(t *testing.T) {
	a, out := newApp()
	args := strings.Fields("seed milk=3 bread=2 -- buy -customer 1 -contact 11-11-11 milk=2 -- list")

	if err := a.run(context.Background(), args); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"bought 1 product(s) for customer 1", "bread\t2\n", "milk\t1\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRun_BuyRepeatedName(t *testing.T) {
	a, out := newApp()
	args := strings.Fields("seed milk=3 -- buy -customer 1 milk=2 milk=2 -- list")

	if err := a.run(context.Background(), args); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "bought 1 product(s) for customer 1") {
		t.Errorf("expected one distinct product reported:\n%s", got)
	}
	if !strings.Contains(got, "milk\t1\n") {
		t.Errorf("expected milk stock 1:\n%s", got)
	}
}

func TestRun_BuyNothing(t *testing.T) {
	a, out := newApp()

	if err := a.run(context.Background(), []string{"buy", "-customer", "1"}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "nothing to buy") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestRun_BuyMoreThanStock(t *testing.T) {
	a, _ := newApp()
	args := strings.Fields("seed milk=1 -- buy -customer 1 milk=2")

	err := a.run(context.Background(), args)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got: %v", err)
	}
}

func TestRun_UnknownProduct(t *testing.T) {
	a, _ := newApp()

	err := a.run(context.Background(), []string{"buy", "cheese=1"})
	if err == nil || !strings.Contains(err.Error(), `unknown product "cheese"`) {
		t.Fatalf("expected unknown product error, got: %v", err)
	}
}

func TestRun_Usage(t *testing.T) {
	a, _ := newApp()

	if err := a.run(context.Background(), nil); !errors.Is(err, errUsage) {
		t.Errorf("expected usage error, got: %v", err)
	}
	if err := a.run(context.Background(), []string{"refund"}); !errors.Is(err, errUsage) {
		t.Errorf("expected usage error, got: %v", err)
	}
}

func TestParseLines(t *testing.T) {
	lines, err := parseLines([]string{"milk=3", "bread=0"})
	if err != nil {
		t.Fatalf("parseLines failed: %v", err)
	}
	if len(lines) != 2 || lines[0] != (line{name: "milk", quantity: 3}) {
		t.Errorf("unexpected lines: %+v", lines)
	}

	for _, bad := range []string{"milk", "=3", "milk=x"} {
		if _, err := parseLines([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
