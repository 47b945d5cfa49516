//go:build integration

package catalog

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Expects the categories/products tables to hold the seed catalog.
func TestLoadPostgres(t *testing.T) {
	dsn := os.Getenv("CATALOG_DSN")
	if dsn == "" {
		t.Skip("CATALOG_DSN not set")
	}

	s, err := LoadPostgres(context.Background(), dsn)
	require.NoError(t, err)

	products, err := s.ListProducts(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, products)

	for i := 1; i < len(products); i++ {
		assert.Less(t, products[i-1].ID, products[i].ID, "products must be ordered by id")
	}

	p, ok, err := s.GetProduct(context.Background(), products[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, products[0], p)
}
