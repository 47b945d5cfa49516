package catalog

import (
	"context"
	"slices"
)

// MemStore holds the catalog in memory. It is never written after
// construction, so reads take no lock.
type MemStore struct {
	products   []Product
	categories []Category
	byID       map[int]int
}

func NewMemStore() *MemStore {
	return NewMemStoreFrom(seedProducts, seedCategories)
}

func NewMemStoreFrom(products []Product, categories []Category) *MemStore {
	s := &MemStore{
		products:   slices.Clone(products),
		categories: slices.Clone(categories),
		byID:       make(map[int]int, len(products)),
	}
	for i, p := range s.products {
		if _, dup := s.byID[p.ID]; !dup {
			s.byID[p.ID] = i
		}
	}
	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) ListProducts(ctx context.Context) ([]Product, error) {
	return slices.Clone(s.products), nil
}

func (s *MemStore) GetProduct(ctx context.Context, id int) (Product, bool, error) {
	i, ok := s.byID[id]
	if !ok {
		return Product{}, false, nil
	}
	return s.products[i], true, nil
}

func (s *MemStore) ListCategories(ctx context.Context) ([]Category, error) {
	return slices.Clone(s.categories), nil
}

func (s *MemStore) ListProductsByCategory(ctx context.Context, name string) ([]Product, error) {
	out := make([]Product, 0, 4)
	for _, p := range s.products {
		if p.Category == name {
			out = append(out, p)
		}
	}
	return out, nil
}

var seedCategories = []Category{
	{ID: 1, Name: "food", DisplayName: "Pet Food"},
	{ID: 2, Name: "accessories", DisplayName: "Accessories"},
	{ID: 3, Name: "equipment", DisplayName: "Equipment"},
	{ID: 4, Name: "housing", DisplayName: "Housing"},
	{ID: 5, Name: "supplies", DisplayName: "Supplies"},
}

var seedProducts = []Product{
	{
		ID:          1,
		Name:        "Premium Dog Food",
		Description: "Nutritionally complete dry food for adult dogs",
		Price:       29.99,
		Category:    "food",
		Image:       "https://images.unsplash.com/photo-1589924691995-400dc9ecc119?q=80&w=2070",
		Rating:      4.8,
		Stock:       50,
	},
	{
		ID:          2,
		Name:        "Cat Scratching Post",
		Description: "Durable sisal scratching post with toy",
		Price:       24.99,
		Category:    "accessories",
		Image:       "https://images.unsplash.com/photo-1545249390-6bdfa286032f?q=80&w=2034",
		Rating:      4.5,
		Stock:       30,
	},
	{
		ID:          3,
		Name:        "Aquarium Filter",
		Description: "3-stage filtration system for clear water",
		Price:       34.99,
		Category:    "equipment",
		Image:       "https://images.unsplash.com/photo-1522069169874-c58ec4b76be5?q=80&w=2012",
		Rating:      4.2,
		Stock:       15,
	},
	{
		ID:          4,
		Name:        "Bird Cage",
		Description: "Spacious cage with multiple perches",
		Price:       79.99,
		Category:    "housing",
		Image:       "https://images.unsplash.com/photo-1520808663317-647b476a81b9?q=80&w=2073",
		Rating:      4.6,
		Stock:       10,
	},
	{
		ID:          5,
		Name:        "Small Animal Bedding",
		Description: "Soft, absorbent bedding for small pets",
		Price:       12.99,
		Category:    "supplies",
		Image:       "https://images.unsplash.com/photo-1548767797-d8c844163c4c?q=80&w=2071",
		Rating:      4.4,
		Stock:       45,
	},
	{
		ID:          6,
		Name:        "Dog Collar",
		Description: "Adjustable nylon collar with reflective strip",
		Price:       14.99,
		Category:    "accessories",
		Image:       "https://images.unsplash.com/photo-1567612529009-afe25068d59e?q=80&w=2070",
		Rating:      4.7,
		Stock:       60,
	},
}
