package cart_test

import (
	"testing"

	"github.com/ananyakrishnan/zaika/app/cart"
	"github.com/ananyakrishnan/zaika/app/models"
)

var (
	samosa  = models.Product{ID: "1", Name: "Samosa", Price: 10, Category: "snacks"}
	chai    = models.Product{ID: "2", Name: "Masala Chai", Price: 5, Category: "drinks"}
	biryani = models.Product{ID: "3", Name: "Veg Biryani", Price: 120, Category: "mains"}
)

func TestAddSameProductTwiceMergesLines(t *testing.T) {
	c := cart.New()

	if got := c.Add(samosa); got != cart.LineAdded {
		t.Errorf("first add: expected LineAdded, got %v", got)
	}
	if got := c.Add(samosa); got != cart.QuantityBumped {
		t.Errorf("second add: expected QuantityBumped, got %v", got)
	}

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", lines[0].Quantity)
	}
}

func TestInsertionOrderIsFirstAdded(t *testing.T) {
	c := cart.New()
	c.Add(chai)
	c.Add(samosa)
	c.Add(chai) // bump must not reorder

	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Product.ID != chai.ID || lines[1].Product.ID != samosa.ID {
		t.Errorf("unexpected order: %s then %s", lines[0].Product.Name, lines[1].Product.Name)
	}
}

func TestSetQuantityZeroEqualsRemove(t *testing.T) {
	a := cart.New()
	a.Add(samosa)
	a.Add(chai)
	a.SetQuantity(samosa.ID, 0)

	b := cart.New()
	b.Add(samosa)
	b.Add(chai)
	b.Remove(samosa.ID)

	al, bl := a.Lines(), b.Lines()
	if len(al) != 1 || len(bl) != 1 || al[0].Product.ID != bl[0].Product.ID {
		t.Errorf("SetQuantity(id, 0) and Remove(id) diverged: %+v vs %+v", al, bl)
	}
}

func TestNegativeQuantityRejected(t *testing.T) {
	c := cart.New()
	c.Add(samosa)
	c.SetQuantity(samosa.ID, -1)

	lines := c.Lines()
	if len(lines) != 1 || lines[0].Quantity != 1 {
		t.Errorf("negative quantity must be a no-op, got %+v", lines)
	}
}

func TestSetQuantityOnRemovedLineIsNoop(t *testing.T) {
	c := cart.New()
	c.Add(samosa)
	c.Remove(samosa.ID)
	c.SetQuantity(samosa.ID, 5) // stale reference, silently ignored

	if !c.Empty() {
		t.Errorf("expected empty cart, got %+v", c.Lines())
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	c := cart.New()
	c.Add(chai)
	c.Remove("nope")

	if len(c.Lines()) != 1 {
		t.Error("removing an absent line must not change the cart")
	}
}

func TestTotal(t *testing.T) {
	c := cart.New()
	if c.Total() != 0 {
		t.Errorf("empty cart total: expected 0, got %v", c.Total())
	}

	// Product A ($10) qty 1 and B ($5) qty 2 → 10 + 10 = 20.
	a := models.Product{ID: "1", Name: "A", Price: 10}
	b := models.Product{ID: "2", Name: "B", Price: 5}
	c.Add(a)
	c.Add(b)
	c.Add(b)

	if got := c.Total(); got != 20 {
		t.Errorf("expected total 20, got %v", got)
	}

	c.Remove(a.ID)
	if got := c.Total(); got != 10 {
		t.Errorf("after removing A: expected 10, got %v", got)
	}
}

func TestCount(t *testing.T) {
	c := cart.New()
	c.Add(samosa)
	c.Add(biryani)
	c.Add(biryani)

	if got := c.Count(); got != 3 {
		t.Errorf("expected badge count 3, got %d", got)
	}
}

func TestClear(t *testing.T) {
	c := cart.New()
	c.Add(samosa)
	c.Add(chai)
	c.Clear()

	if !c.Empty() || c.Total() != 0 {
		t.Error("expected cleared cart")
	}
}

func TestWriteThroughPersistence(t *testing.T) {
	var persisted [][]models.CartLine
	c := cart.New(cart.WithPersist(func(lines []models.CartLine) error {
		persisted = append(persisted, lines)
		return nil
	}))

	c.Add(samosa)
	c.SetQuantity(samosa.ID, 3)
	c.Remove(samosa.ID)

	if len(persisted) != 3 {
		t.Fatalf("expected 3 persist calls, got %d", len(persisted))
	}
	if persisted[1][0].Quantity != 3 {
		t.Errorf("persisted snapshot lags mutation: %+v", persisted[1])
	}
	if len(persisted[2]) != 0 {
		t.Errorf("final snapshot should be empty, got %+v", persisted[2])
	}
}

func TestRestoreDoesNotPersist(t *testing.T) {
	calls := 0
	c := cart.New(cart.WithPersist(func([]models.CartLine) error {
		calls++
		return nil
	}))

	c.Restore([]models.CartLine{{Product: samosa, Quantity: 2}})
	if calls != 0 {
		t.Errorf("Restore must not write through, got %d persist calls", calls)
	}
	if c.Total() != 20 {
		t.Errorf("restored total: expected 20, got %v", c.Total())
	}
}

func TestLinesReturnsSnapshot(t *testing.T) {
	c := cart.New()
	c.Add(samosa)

	lines := c.Lines()
	lines[0].Quantity = 99

	if c.Lines()[0].Quantity != 1 {
		t.Error("mutating the snapshot must not touch the live cart")
	}
}
