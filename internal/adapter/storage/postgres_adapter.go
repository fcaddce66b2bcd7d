package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/rl1809/shopping-cart/internal/core/domain"
)

const pgUniqueViolation = "23505"

const (
	pgUpdateProduct = `
		UPDATE products
		SET stock = $1, version = version + 1, updated_at = now()
		WHERE name = $2 AND version = $3`

	pgInsertProduct = `
		INSERT INTO products (name, stock, version, updated_at)
		VALUES ($1, $2, $3, now())`

	pgSelectProducts = `SELECT name, stock, version FROM products ORDER BY name`

	pgSelectProduct = `SELECT name, stock, version FROM products WHERE name = $1`
)

// PostgresAdapter is the Postgres flavour of MySQLAdapter; the schema and the
// versioning rules are the same.
type PostgresAdapter struct {
	db *sql.DB
}

func NewPostgresAdapter(db *sql.DB) *PostgresAdapter {
	return &PostgresAdapter{db: db}
}

func (a *PostgresAdapter) Save(ctx context.Context, product *domain.Product) error {
	version := product.Version()

	result, err := a.db.ExecContext(ctx, pgUpdateProduct, product.Count(), product.Name(), version)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows > 0 {
		product.SetVersion(version + 1)
		return nil
	}

	_, err = a.db.ExecContext(ctx, pgInsertProduct, product.Name(), product.Count(), version)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return ErrOptimisticLock
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

func (a *PostgresAdapter) GetAll(ctx context.Context) ([]*domain.Product, error) {
	rows, err := a.db.QueryContext(ctx, pgSelectProducts)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (a *PostgresAdapter) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	return scanProduct(a.db.QueryRowContext(ctx, pgSelectProduct, name))
}
