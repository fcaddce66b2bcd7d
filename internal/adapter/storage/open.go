package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/shopping-cart/internal/config"
	"github.com/rl1809/shopping-cart/internal/port"
)

// Open connects the backend named by cfg.StorageBackend. The returned close
// func releases the underlying connection pool.
func Open(ctx context.Context, cfg config.Config) (port.ProductStorage, func() error, error) {
	switch cfg.StorageBackend {
	case config.BackendMySQL:
		db, err := openSQL(ctx, "mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		return NewMySQLAdapter(db), db.Close, nil

	case config.BackendPostgres:
		db, err := openSQL(ctx, "postgres", cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return NewPostgresAdapter(db), db.Close, nil

	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			PoolSize: 100,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return NewRedisAdapter(rdb), rdb.Close, nil

	case config.BackendMemory:
		return NewMemoryAdapter(), func() error { return nil }, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

func openSQL(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}
