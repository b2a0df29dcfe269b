//go:build integration

package testutil

import (
	"context"
	"time"

	pgrepo "github.com/Gunvolt24/bookstore_orders/internal/repo/postgres"
)

// ApplyMigrationsGoose — схема orders в тестовой базе теми же миграциями, что и при старте сервиса.
func ApplyMigrationsGoose(dsn string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgrepo.NewPool(ctx, dsn, 2)
	if err != nil {
		return err
	}
	defer pool.Close()
	return pgrepo.Migrate(ctx, pool)
}
