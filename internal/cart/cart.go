// internal/cart/cart.go
package cart

import (
	"sort"
	"sync"

	"github.com/gadaelectronics/storefront/internal/models"
)

// Line is one product entry in a cart. Quantity is always >= 1 and never
// exceeds the product's stock at the time the line was touched.
type Line struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Cart is a user's purchase intent, keyed by product id so a product never
// appears on two lines. Held in process memory only; it is not persisted and
// is cleared once an order's payment verifies. Safe for concurrent use: the
// store hands the same cart to every request for a user, so simultaneous
// requests hit the same map.
type Cart struct {
	mtx   sync.Mutex
	lines map[string]*Line
}

func New() *Cart {
	return &Cart{lines: make(map[string]*Line)}
}

// AddLine merges quantity into an existing line or inserts a new one,
// clamping the result to the product's stock. A request that clamps to zero
// or less leaves the cart unchanged.
func (c *Cart) AddLine(product models.Product, quantity int) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	current := 0
	if line, ok := c.lines[product.ID]; ok {
		current = line.Quantity
	}

	next := clamp(current+quantity, product.Stock)
	if next < 1 {
		return
	}

	c.lines[product.ID] = &Line{Product: product, Quantity: next}
}

// SetQuantity replaces a line's quantity. Below 1 removes the line; above
// stock clamps to stock. Unknown product ids are ignored.
func (c *Cart) SetQuantity(productID string, quantity int) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	line, ok := c.lines[productID]
	if !ok {
		return
	}

	if quantity < 1 {
		delete(c.lines, productID)
		return
	}

	line.Quantity = clamp(quantity, line.Product.Stock)
}

// RemoveLine deletes a line; absent lines are a no-op.
func (c *Cart) RemoveLine(productID string) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	delete(c.lines, productID)
}

func (c *Cart) Clear() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.lines = make(map[string]*Line)
}

func (c *Cart) IsEmpty() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return len(c.lines) == 0
}

func (c *Cart) Subtotal() float64 {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	var subtotal float64
	for _, line := range c.lines {
		subtotal += line.Product.Price * float64(line.Quantity)
	}
	return subtotal
}

// Lines returns a copy of the cart's lines ordered by product id for stable
// rendering.
func (c *Cart) Lines() []Line {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	out := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Product.ID < out[j].Product.ID
	})
	return out
}

func clamp(quantity, stock int) int {
	if quantity > stock {
		return stock
	}
	return quantity
}

// Store keeps one cart per user for the life of the process, matching the
// original storefront's session-only cart semantics.
type Store struct {
	mtx   sync.Mutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// Get returns the user's cart, creating it on first use.
func (s *Store) Get(userID string) *Cart {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		cart = New()
		s.carts[userID] = cart
	}
	return cart
}

// Clear drops the user's cart entirely.
func (s *Store) Clear(userID string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	delete(s.carts, userID)
}
