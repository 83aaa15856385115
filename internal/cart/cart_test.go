// internal/cart/cart_test.go
package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gadaelectronics/storefront/internal/models"
)

func testProduct(id string, price float64, stock int) models.Product {
	return models.Product{ID: id, Name: "Product " + id, Price: price, Stock: stock}
}

func TestAddLine_InsertAndMerge(t *testing.T) {
	c := New()
	earbuds := testProduct("2", 149.99, 50)

	c.AddLine(earbuds, 1)
	c.AddLine(earbuds, 2)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestAddLine_ClampsToStock(t *testing.T) {
	c := New()
	camera := testProduct("5", 1499.99, 5)

	c.AddLine(camera, 3)
	c.AddLine(camera, 10)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestAddLine_NoEffectWhenClampedBelowOne(t *testing.T) {
	c := New()
	outOfStock := testProduct("9", 9.99, 0)

	c.AddLine(outOfStock, 2)
	assert.True(t, c.IsEmpty())

	c.AddLine(testProduct("2", 149.99, 50), 0)
	assert.True(t, c.IsEmpty())
}

func TestSetQuantity(t *testing.T) {
	c := New()
	tv := testProduct("1", 699.99, 15)
	c.AddLine(tv, 1)

	c.SetQuantity("1", 4)
	assert.Equal(t, 4, c.Lines()[0].Quantity)

	// Above stock clamps to stock.
	c.SetQuantity("1", 99)
	assert.Equal(t, 15, c.Lines()[0].Quantity)

	// Below 1 removes the line.
	c.SetQuantity("1", 0)
	assert.True(t, c.IsEmpty())

	// Unknown product is a no-op.
	c.SetQuantity("missing", 3)
	assert.True(t, c.IsEmpty())
}

func TestRemoveLine_Idempotent(t *testing.T) {
	c := New()
	c.AddLine(testProduct("1", 699.99, 15), 1)

	c.RemoveLine("1")
	c.RemoveLine("1")
	assert.True(t, c.IsEmpty())
}

func TestSubtotal(t *testing.T) {
	c := New()
	c.AddLine(testProduct("2", 149.99, 50), 2)
	c.AddLine(testProduct("4", 299.99, 25), 1)

	assert.InDelta(t, 599.97, c.Subtotal(), 1e-9)

	c.Clear()
	assert.Zero(t, c.Subtotal())
}

func TestLines_StableOrder(t *testing.T) {
	c := New()
	c.AddLine(testProduct("6", 999.99, 20), 1)
	c.AddLine(testProduct("1", 699.99, 15), 1)
	c.AddLine(testProduct("3", 1299.99, 10), 1)

	lines := c.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "1", lines[0].Product.ID)
	assert.Equal(t, "3", lines[1].Product.ID)
	assert.Equal(t, "6", lines[2].Product.ID)
}

// Simultaneous requests for one user share a single cart; mutation and
// iteration from multiple goroutines must be safe.
func TestCart_ConcurrentAccess(t *testing.T) {
	store := NewStore()
	tv := testProduct("1", 699.99, 1000)
	earbuds := testProduct("2", 149.99, 1000)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := store.Get("user-a")
			for j := 0; j < 100; j++ {
				switch i % 4 {
				case 0:
					c.AddLine(tv, 1)
				case 1:
					c.AddLine(earbuds, 1)
				case 2:
					c.Lines()
					c.Subtotal()
				case 3:
					c.SetQuantity("1", j+1)
				}
			}
		}(i)
	}
	wg.Wait()

	lines := store.Get("user-a").Lines()
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.GreaterOrEqual(t, line.Quantity, 1)
		assert.LessOrEqual(t, line.Quantity, line.Product.Stock)
	}
}

func TestStore_PerUserCarts(t *testing.T) {
	store := NewStore()

	store.Get("user-a").AddLine(testProduct("1", 699.99, 15), 1)
	store.Get("user-b").AddLine(testProduct("2", 149.99, 50), 2)

	assert.Len(t, store.Get("user-a").Lines(), 1)
	assert.Len(t, store.Get("user-b").Lines(), 1)
	assert.Equal(t, "1", store.Get("user-a").Lines()[0].Product.ID)

	store.Clear("user-a")
	assert.True(t, store.Get("user-a").IsEmpty())
	assert.False(t, store.Get("user-b").IsEmpty())
}
