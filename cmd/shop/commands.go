package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rl1809/shopping-cart/internal/core/domain"
	"github.com/rl1809/shopping-cart/internal/core/service"
	"github.com/rl1809/shopping-cart/internal/port"
)

const usage = `usage:
  shop list
  shop seed name=count...
  shop buy -customer <id> -contact <contact> name=quantity...

Commands may be chained with "--", e.g. shop seed milk=3 -- buy -customer 1 milk=2`

var errUsage = errors.New(usage)

type app struct {
	storage port.ProductStorage
	svc     *service.ShoppingService
	out     io.Writer
}

// run executes each "--" separated command in order and stops at the first error.
func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	for _, cmd := range splitCommands(args) {
		if len(cmd) == 0 {
			return errUsage
		}

		var err error
		switch cmd[0] {
		case "list":
			err = a.list(ctx)
		case "seed":
			err = a.seed(ctx, cmd[1:])
		case "buy":
			err = a.buy(ctx, cmd[1:])
		default:
			return fmt.Errorf("unknown command %q\n%w", cmd[0], errUsage)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", cmd[0], err)
		}
	}
	return nil
}

func splitCommands(args []string) [][]string {
	var (
		out [][]string
		cur []string
	)
	for _, arg := range args {
		if arg == "--" {
			out = append(out, cur)
			cur = nil
			continue
		}
		cur = append(cur, arg)
	}
	return append(out, cur)
}

func (a *app) list(ctx context.Context) error {
	products, err := a.svc.GetAllProducts(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Fprintf(a.out, "%s\t%d\n", p.Name(), p.Count())
	}
	return nil
}

// seed sets the stock of each named product, creating it when needed.
func (a *app) seed(ctx context.Context, args []string) error {
	lines, err := parseLines(args)
	if err != nil {
		return err
	}

	for _, l := range lines {
		version := 0
		existing, err := a.storage.GetByName(ctx, l.name)
		if err != nil {
			return err
		}
		if existing != nil {
			version = existing.Version()
		}

		p, err := domain.RestoreProduct(l.name, l.quantity, version)
		if err != nil {
			return err
		}
		if err := a.storage.Save(ctx, p); err != nil {
			return fmt.Errorf("save %s: %w", l.name, err)
		}
		fmt.Fprintf(a.out, "seeded %s\t%d\n", l.name, l.quantity)
	}
	return nil
}

func (a *app) buy(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("buy", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	id := fs.Int64("customer", 0, "customer id")
	contact := fs.String("contact", "", "customer contact")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w\n%w", err, errUsage)
	}

	lines, err := parseLines(fs.Args())
	if err != nil {
		return err
	}

	cart := a.svc.GetCart(domain.Customer{ID: *id, Contact: *contact})
	for _, l := range lines {
		p, err := a.svc.GetProductByName(ctx, l.name)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("unknown product %q", l.name)
		}
		if err := cart.Add(p, l.quantity); err != nil {
			return err
		}
	}

	distinct := cart.Len()
	ok, err := a.svc.Buy(ctx, cart)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "nothing to buy")
		return nil
	}
	fmt.Fprintf(a.out, "bought %d product(s) for customer %d\n", distinct, *id)
	return nil
}

type line struct {
	name     string
	quantity int
}

func parseLines(args []string) ([]line, error) {
	out := make([]line, 0, len(args))
	for _, arg := range args {
		name, qty, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name=quantity, got %q", arg)
		}
		n, err := strconv.Atoi(qty)
		if err != nil {
			return nil, fmt.Errorf("bad quantity for %s: %w", name, err)
		}
		out = append(out, line{name: name, quantity: n})
	}
	return out, nil
}
