// Package orders implements the order list flow: loading the authenticated
// user's order history and cancelling individual orders.
//
// Cancellation is a two-phase commit at the view-model level: the order's
// status flips to cancelled tentatively, the request goes out, and the
// response either commits the change or rolls it back to the previous
// status. While a cancel is pending the order carries a "cancelling" marker
// so its control stays disabled; other orders are unaffected.
package orders

import (
	"context"
	"errors"
	"sync"

	"github.com/ananyakrishnan/zaika/app/models"
	"github.com/ananyakrishnan/zaika/app/state"
	"github.com/ananyakrishnan/zaika/internal/api"
)

// ErrCancelPending rejects a second cancel of an order whose first cancel
// has not come back yet.
var ErrCancelPending = errors.New("orders: cancellation already in progress")

// ErrUnknownOrder is returned when a cancel references an order not in the
// loaded list.
var ErrUnknownOrder = errors.New("orders: no such order")

// ErrNotCancellable is returned when the order's status no longer allows
// cancellation. No request is issued and the local status is untouched.
var ErrNotCancellable = errors.New("orders: order can no longer be cancelled")

// Flow drives one order history surface.
type Flow struct {
	app *state.App

	mu         sync.Mutex
	list       []models.Order
	cancelling map[string]bool
}

// New creates a Flow over the application state.
func New(app *state.App) *Flow {
	return &Flow{app: app, cancelling: make(map[string]bool)}
}

// Load fetches the order history. Without a session it returns
// ErrAuthRequired immediately so the caller can show a login prompt; no
// request is issued.
func (f *Flow) Load(ctx context.Context) error {
	token := f.app.Token()
	if token == "" {
		return api.ErrAuthRequired
	}

	list, err := f.app.Client().Orders(ctx, token)
	if err != nil {
		f.app.Notifier().ShowError(api.UserMessage(err))
		return err
	}

	f.mu.Lock()
	f.list = list
	f.mu.Unlock()
	return nil
}

// Orders returns a snapshot of the loaded list, in backend order.
func (f *Flow) Orders() []models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Order(nil), f.list...)
}

// Cancelling reports whether the given order has a cancel in flight.
func (f *Flow) Cancelling(orderID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancelling[orderID]
}

// CanCancel reports whether the order's cancel control should be enabled.
func (f *Flow) CanCancel(o models.Order) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return o.Status.Cancellable() && !f.cancelling[o.ID]
}

// Cancel cancels one order. Orders past the confirmed stage are rejected
// with ErrNotCancellable before any request goes out. Otherwise the local
// status flips to cancelled up front and is rolled back if the backend
// refuses; the cancelling marker is cleared either way.
func (f *Flow) Cancel(ctx context.Context, orderID string) error {
	token := f.app.Token()
	if token == "" {
		return api.ErrAuthRequired
	}

	// Phase one: tentative state.
	f.mu.Lock()
	if f.cancelling[orderID] {
		f.mu.Unlock()
		return ErrCancelPending
	}
	idx := -1
	for i := range f.list {
		if f.list[i].ID == orderID {
			idx = i
			break
		}
	}
	if idx == -1 {
		f.mu.Unlock()
		return ErrUnknownOrder
	}
	if !f.list[idx].Status.Cancellable() {
		f.mu.Unlock()
		return ErrNotCancellable
	}
	prev := f.list[idx].Status
	f.list[idx].Status = models.StatusCancelled
	f.cancelling[orderID] = true
	f.mu.Unlock()

	err := f.app.Client().CancelOrder(ctx, token, orderID)

	// Phase two: reconcile.
	f.mu.Lock()
	delete(f.cancelling, orderID)
	if err != nil {
		for i := range f.list {
			if f.list[i].ID == orderID {
				f.list[i].Status = prev
				break
			}
		}
	}
	f.mu.Unlock()

	if err != nil {
		f.app.Notifier().ShowError(api.UserMessage(err))
		return err
	}
	f.app.Notifier().ShowSuccess("order cancelled")
	return nil
}

// StatusColor maps an order status to its display color.
func StatusColor(s models.OrderStatus) string {
	switch s {
	case models.StatusPending:
		return "#ff9800"
	case models.StatusConfirmed:
		return "#2196f3"
	case models.StatusPreparing:
		return "#ff5722"
	case models.StatusDelivered:
		return "#4caf50"
	case models.StatusCancelled:
		return "#f44336"
	}
	return "#9e9e9e"
}
