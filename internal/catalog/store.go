package catalog

import "context"

type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`
	Stock       int     `json:"stock"`
}

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// Store is the read side of the catalog. Implementations must be safe for
// concurrent use.
type Store interface {
	Ping(ctx context.Context) error
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int) (Product, bool, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListProductsByCategory(ctx context.Context, name string) ([]Product, error)
}
