package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productIDs(ps []Product) []int {
	ids := make([]int, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestMemStore_ListProducts_Seed(t *testing.T) {
	s := NewMemStore()

	products, err := s.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 6)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, productIDs(products))

	first := products[0]
	assert.Equal(t, "Premium Dog Food", first.Name)
	assert.Equal(t, 29.99, first.Price)
	assert.Equal(t, "food", first.Category)
	assert.Equal(t, 4.8, first.Rating)
	assert.Equal(t, 50, first.Stock)
}

func TestMemStore_GetProduct(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	p, ok, err := s.GetProduct(ctx, 4)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Bird Cage", p.Name)

	_, ok, err = s.GetProduct(ctx, 99)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemStore_ListProductsByCategory(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	products, err := s.ListProductsByCategory(ctx, "accessories")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 6}, productIDs(products))

	products, err = s.ListProductsByCategory(ctx, "Accessories")
	require.NoError(t, err)
	assert.Empty(t, products, "match is case-sensitive")

	products, err = s.ListProductsByCategory(ctx, "nonexistent")
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestMemStore_ListCategories(t *testing.T) {
	s := NewMemStore()

	categories, err := s.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 5)
	assert.Equal(t, Category{ID: 1, Name: "food", DisplayName: "Pet Food"}, categories[0])
	assert.Equal(t, "supplies", categories[4].Name)
}

func TestMemStore_ReadsAreIsolated(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	first, err := s.ListProducts(ctx)
	require.NoError(t, err)
	first[0].Name = "changed"
	first[1].Price = 0

	second, err := s.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Premium Dog Food", second[0].Name)
	assert.Equal(t, 24.99, second[1].Price)

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	cats[0].DisplayName = "changed"

	again, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Pet Food", again[0].DisplayName)
}

func TestNewMemStoreFrom_FirstDuplicateWins(t *testing.T) {
	s := NewMemStoreFrom([]Product{
		{ID: 7, Name: "a"},
		{ID: 7, Name: "b"},
	}, nil)

	p, ok, err := s.GetProduct(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", p.Name)
}
