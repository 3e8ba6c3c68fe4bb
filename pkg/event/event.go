// Package event is the in-process bus connecting the order lifecycle to its
// observers: the API handlers fire "order.placed", the progression ticker
// fires "order.status_changed", and the websocket hub listens on both.
// Dispatch is synchronous, in registration order.
package event

import "sync"

// Handler receives the event payload, a models.Order for the order
// lifecycle events.
type Handler func(payload interface{})

var (
	mu        sync.RWMutex
	listeners = map[string][]Handler{}
)

// Listen subscribes handler to the named event.
func Listen(name string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	listeners[name] = append(listeners[name], handler)
}

// Fire delivers payload to every listener of the named event, in the order
// they subscribed. Returns once all listeners have run.
func Fire(name string, payload interface{}) {
	mu.RLock()
	hs := append([]Handler(nil), listeners[name]...)
	mu.RUnlock()

	for _, h := range hs {
		h(payload)
	}
}
