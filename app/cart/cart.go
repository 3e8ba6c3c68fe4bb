// Package cart implements the in-memory cart engine.
//
// The cart is an ordered sequence of lines, keyed by product id with at most
// one line per product; insertion order is first-added order and survives
// quantity updates. Every mutation synchronously writes the resulting state
// through the configured persist hook before returning, so durable storage
// never lags the in-memory cart.
package cart

import (
	"sync"

	"github.com/ananyakrishnan/zaika/app/models"
	"github.com/ananyakrishnan/zaika/pkg/logger"
)

// Outcome reports what Add did, so callers can phrase the notification.
type Outcome int

const (
	// LineAdded means a new line was appended with quantity 1.
	LineAdded Outcome = iota
	// QuantityBumped means an existing line's quantity was incremented.
	QuantityBumped
)

// PersistFunc receives the full cart snapshot after each mutation.
type PersistFunc func([]models.CartLine) error

// Cart is the cart engine. Safe for use from a single owner goroutine or
// under concurrent access.
type Cart struct {
	mu      sync.Mutex
	lines   []models.CartLine
	persist PersistFunc
}

// Option configures a Cart.
type Option func(*Cart)

// WithPersist installs the write-through hook.
func WithPersist(fn PersistFunc) Option {
	return func(c *Cart) { c.persist = fn }
}

// New creates an empty cart.
func New(opts ...Option) *Cart {
	c := &Cart{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Restore replaces the cart contents with previously persisted lines.
// Used at startup; does not itself trigger persistence.
func (c *Cart) Restore(lines []models.CartLine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append([]models.CartLine(nil), lines...)
}

// Add puts one unit of p in the cart: a new line at the end for a product
// not yet present, otherwise +1 on the existing line. Always succeeds.
func (c *Cart) Add(p models.Product) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity++
			c.sync()
			return QuantityBumped
		}
	}

	c.lines = append(c.lines, models.CartLine{Product: p, Quantity: 1})
	c.sync()
	return LineAdded
}

// Remove deletes the line for productID. Removing an absent line is a no-op.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.sync()
			return
		}
	}
}

// SetQuantity replaces the quantity of productID's line. Zero removes the
// line; negative values are rejected as a no-op; a reference to a
// since-removed line is silently ignored.
func (c *Cart) SetQuantity(productID string, n int) {
	if n < 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID != productID {
			continue
		}
		if n == 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity = n
		}
		c.sync()
		return
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.sync()
}

// Total returns the sum of price × quantity across all lines. Pure.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// Count returns the total number of units across lines (the cart badge).
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Lines returns a snapshot copy in insertion order. Mutating the returned
// slice never touches the live cart.
func (c *Cart) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CartLine(nil), c.lines...)
}

// sync runs the write-through hook with the current snapshot.
// Caller must hold c.mu. A persistence failure keeps the in-memory mutation
// (memory is the source of truth) and is logged, not surfaced.
func (c *Cart) sync() {
	if c.persist == nil {
		return
	}
	snapshot := append([]models.CartLine(nil), c.lines...)
	if err := c.persist(snapshot); err != nil {
		logger.Warn("cart: persist failed", "error", err)
	}
}
