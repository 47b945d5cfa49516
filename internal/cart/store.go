package cart

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Item is one cart line. Name, Price and Image are copied from the product
// when the line is added and do not follow later catalog changes.
type Item struct {
	ID        int64   `json:"id"`
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

type Store interface {
	List(ctx context.Context) ([]Item, error)
	// Add assigns the item a fresh id and appends it. The returned length is
	// the cart size right after the append.
	Add(ctx context.Context, it Item) (Item, int, error)
	// Remove returns the cart size right after the removal.
	Remove(ctx context.Context, id int64) (int, error)
	Len() int
	Ping(ctx context.Context) error
}
