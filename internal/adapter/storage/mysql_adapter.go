package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/rl1809/shopping-cart/internal/core/domain"
)

const mysqlDuplicateEntry = 1062

const (
	mysqlUpdateProduct = `
		UPDATE products
		SET stock = ?, version = version + 1, updated_at = NOW()
		WHERE name = ? AND version = ?`

	mysqlInsertProduct = `
		INSERT INTO products (name, stock, version, updated_at)
		VALUES (?, ?, ?, NOW())`

	mysqlSelectProducts = `SELECT name, stock, version FROM products ORDER BY name`

	mysqlSelectProduct = `SELECT name, stock, version FROM products WHERE name = ?`
)

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// Save updates the product row when its version matches, otherwise inserts
// it. A duplicate key on insert means another writer got there first.
func (m *MySQLAdapter) Save(ctx context.Context, product *domain.Product) error {
	version := product.Version()

	result, err := m.db.ExecContext(ctx, mysqlUpdateProduct, product.Count(), product.Name(), version)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows > 0 {
		product.SetVersion(version + 1)
		return nil
	}

	_, err = m.db.ExecContext(ctx, mysqlInsertProduct, product.Name(), product.Count(), version)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
			return ErrOptimisticLock
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

func (m *MySQLAdapter) GetAll(ctx context.Context) ([]*domain.Product, error) {
	rows, err := m.db.QueryContext(ctx, mysqlSelectProducts)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (m *MySQLAdapter) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	return scanProduct(m.db.QueryRowContext(ctx, mysqlSelectProduct, name))
}

func scanProducts(rows *sql.Rows) ([]*domain.Product, error) {
	out := []*domain.Product{}
	for rows.Next() {
		var (
			name           string
			stock, version int
		)
		if err := rows.Scan(&name, &stock, &version); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p, err := domain.RestoreProduct(name, stock, version)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return out, nil
}

func scanProduct(row *sql.Row) (*domain.Product, error) {
	var (
		name           string
		stock, version int
	)
	err := row.Scan(&name, &stock, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return domain.RestoreProduct(name, stock, version)
}
