// Package notify is the transient user-facing message layer: the Go
// counterpart of the storefront's alert banner.
//
// One notification is active at a time. Showing a new one replaces the
// current one and restarts the auto-dismiss timer (default 3 seconds).
// Dismissing early cancels the pending timer so a stale dismiss can never
// wipe out a newer message.
package notify

import (
	"sync"
	"time"
)

// DefaultDuration is how long a notification stays visible before
// auto-dismissing.
const DefaultDuration = 3000 * time.Millisecond

// Kind classifies a notification.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

// Notification is the currently displayed message.
type Notification struct {
	Message string
	Kind    Kind
	Visible bool
}

// Notifier owns the single active notification.
type Notifier struct {
	mu       sync.Mutex
	current  Notification
	timer    *time.Timer
	duration time.Duration
	gen      uint64 // invalidates timers belonging to replaced notifications
	onChange func(Notification)
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithDuration overrides the auto-dismiss duration.
func WithDuration(d time.Duration) Option {
	return func(n *Notifier) { n.duration = d }
}

// WithListener registers a callback invoked (outside the lock) whenever the
// notification changes. The CLI uses it to print banners as they happen.
func WithListener(fn func(Notification)) Option {
	return func(n *Notifier) { n.onChange = fn }
}

// New creates a Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{duration: DefaultDuration}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Show displays a message, replacing any visible notification and restarting
// the auto-dismiss timer.
func (n *Notifier) Show(message string, kind Kind) {
	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.gen++
	gen := n.gen
	n.current = Notification{Message: message, Kind: kind, Visible: true}
	n.timer = time.AfterFunc(n.duration, func() { n.expire(gen) })
	cur, fn := n.current, n.onChange
	n.mu.Unlock()

	if fn != nil {
		fn(cur)
	}
}

// ShowSuccess is shorthand for Show(message, Success).
func (n *Notifier) ShowSuccess(message string) { n.Show(message, Success) }

// ShowError is shorthand for Show(message, Error).
func (n *Notifier) ShowError(message string) { n.Show(message, Error) }

// ShowWarning is shorthand for Show(message, Warning).
func (n *Notifier) ShowWarning(message string) { n.Show(message, Warning) }

// ShowInfo is shorthand for Show(message, Info).
func (n *Notifier) ShowInfo(message string) { n.Show(message, Info) }

// Dismiss hides the current notification. Idempotent: dismissing an already
// hidden notification does nothing. Cancels the pending auto-dismiss timer
// so it cannot fire later against a newer message.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	if !n.current.Visible {
		n.mu.Unlock()
		return
	}
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
	n.current = Notification{}
	cur, fn := n.current, n.onChange
	n.mu.Unlock()

	if fn != nil {
		fn(cur)
	}
}

// Current returns a copy of the active notification.
func (n *Notifier) Current() Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// expire is the auto-dismiss path. The generation check makes an expiry from
// a replaced notification a no-op.
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	if gen != n.gen || !n.current.Visible {
		n.mu.Unlock()
		return
	}
	n.timer = nil
	n.current = Notification{}
	cur, fn := n.current, n.onChange
	n.mu.Unlock()

	if fn != nil {
		fn(cur)
	}
}
