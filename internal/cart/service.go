package cart

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"PetShop/internal/catalog"
)

var (
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	ErrItemNotFound    = fmt.Errorf("cart item %w", ErrNotFound)
	ErrInvalidQuantity = errors.New("invalid quantity")
)

const defaultQuantity = 1

// ProductFinder is the slice of the catalog the cart depends on.
type ProductFinder interface {
	GetProduct(ctx context.Context, id int) (catalog.Product, bool, error)
}

type Service struct {
	store   Store
	catalog ProductFinder
	log     *zap.Logger
	metrics *Metrics
}

func NewService(store Store, products ProductFinder, log *zap.Logger, metrics *Metrics) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	metrics.reset(store.Len())
	return &Service{
		store:   store,
		catalog: products,
		log:     log,
		metrics: metrics,
	}
}

func (s *Service) ListCart(ctx context.Context) ([]Item, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Debug("list cart", zap.Int("items", len(items)))
	return items, nil
}

// AddToCart snapshots the product into a new cart line. A zero quantity means
// one.
func (s *Service) AddToCart(ctx context.Context, productID, quantity int) (Item, error) {
	if quantity < 0 {
		return Item{}, ErrInvalidQuantity
	}
	if quantity == 0 {
		quantity = defaultQuantity
	}

	p, ok, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		s.metrics.observe(opAdd, resultError, 0)
		return Item{}, fmt.Errorf("lookup product %d: %w", productID, err)
	}
	if !ok {
		s.log.Info("add to cart: product not found", zap.Int("product_id", productID))
		s.metrics.observe(opAdd, resultNotFound, 0)
		return Item{}, ErrProductNotFound
	}

	it, size, err := s.store.Add(ctx, Item{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  quantity,
		Image:     p.Image,
	})
	if err != nil {
		s.metrics.observe(opAdd, resultError, 0)
		return Item{}, err
	}

	s.log.Info("added to cart",
		zap.Int64("item_id", it.ID),
		zap.Int("product_id", it.ProductID),
		zap.Int("quantity", it.Quantity),
		zap.Int("cart_items", size),
	)
	s.metrics.observe(opAdd, resultOK, 1)
	return it, nil
}

func (s *Service) RemoveFromCart(ctx context.Context, itemID int64) error {
	size, err := s.store.Remove(ctx, itemID)

	switch {
	case errors.Is(err, ErrNotFound):
		s.log.Info("remove from cart: item not found", zap.Int64("item_id", itemID))
		s.metrics.observe(opRemove, resultNotFound, 0)
		return ErrItemNotFound
	case err != nil:
		s.metrics.observe(opRemove, resultError, 0)
		return err
	}

	s.log.Info("removed from cart", zap.Int64("item_id", itemID), zap.Int("cart_items", size))
	s.metrics.observe(opRemove, resultOK, -1)
	return nil
}
