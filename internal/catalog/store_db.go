package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const loadTimeout = 10 * time.Second

// Querier is the subset of *pgxpool.Pool the loader needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LoadPostgres reads the whole catalog once and freezes it into a MemStore.
// The pool is closed before returning.
func LoadPostgres(ctx context.Context, dsn string) (*MemStore, error) {
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping catalog db: %w", err)
	}
	return Load(ctx, pool)
}

func Load(ctx context.Context, q Querier) (*MemStore, error) {
	categories, err := queryCategories(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	products, err := queryProducts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	return NewMemStoreFrom(products, categories), nil
}

func queryCategories(ctx context.Context, q Querier) ([]Category, error) {
	rows, err := q.Query(ctx, `
		SELECT id, name, display_name
		FROM categories
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Category, error) {
		var c Category
		err := row.Scan(&c.ID, &c.Name, &c.DisplayName)
		return c, err
	})
}

func queryProducts(ctx context.Context, q Querier) ([]Product, error) {
	rows, err := q.Query(ctx, `
		SELECT id, name, description, price::float8, category, image, rating::float8, stock
		FROM products
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Product, error) {
		var p Product
		err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Image, &p.Rating, &p.Stock)
		return p, err
	})
}
