// Package checkout implements the order submission flow.
//
// A Flow walks Idle → Validating → Submitting → Succeeded or Failed on each
// Submit. Failed returns the flow to Idle with the last input preserved so
// the caller can correct and resubmit; Succeeded clears the cart and hands
// the confirmation payload back. A second Submit while one is in flight is
// rejected up front.
package checkout

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/ananyakrishnan/zaika/app/models"
	"github.com/ananyakrishnan/zaika/app/state"
	"github.com/ananyakrishnan/zaika/internal/api"
	"github.com/ananyakrishnan/zaika/pkg/notify"
)

// Phase is a position in the submission state machine.
type Phase int

const (
	Idle Phase = iota
	Validating
	Submitting
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Input is the checkout form.
type Input struct {
	DeliveryAddress string
	Phone           string
}

// Confirmation is the handoff to the confirmation view after a successful
// order.
type Confirmation struct {
	OrderID         string
	Items           []models.OrderItem
	TotalAmount     float64
	DeliveryAddress string
	Phone           string
	EstimatedAt     time.Time
}

// estimatedDelivery is the window promised on the confirmation view.
const estimatedDelivery = 40 * time.Minute

// ErrInFlight rejects a Submit while a previous one is still pending.
var ErrInFlight = errors.New("checkout: submission already in progress")

// Flow drives one checkout surface. It reads the cart and session through
// the App and never mutates either except to clear the cart on success.
type Flow struct {
	app *state.App

	mu       sync.Mutex
	phase    Phase
	inFlight bool
	last     Input
}

// New creates a Flow over the application state.
func New(app *state.App) *Flow {
	return &Flow{app: app}
}

// Phase returns the flow's current position.
func (f *Flow) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// LastInput returns the most recently submitted form, preserved across a
// failed attempt.
func (f *Flow) LastInput() Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

var nonDigitRE = regexp.MustCompile(`\D`)

// validateInput applies the form rules. No network I/O.
func validateInput(in Input) map[string]string {
	errs := make(map[string]string)
	if len(strings.TrimSpace(in.DeliveryAddress)) < 10 {
		errs["deliveryAddress"] = "delivery address must be at least 10 characters"
	}
	if digits := nonDigitRE.ReplaceAllString(in.Phone, ""); len(digits) != 10 {
		errs["phone"] = "phone number must be 10 digits"
	}
	return errs
}

// Submit runs one pass of the state machine. It returns the confirmation
// payload on success. While a submission is in flight, further calls return
// ErrInFlight without touching anything.
func (f *Flow) Submit(ctx context.Context, in Input) (*Confirmation, error) {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return nil, ErrInFlight
	}
	f.inFlight = true
	f.phase = Validating
	f.last = in
	f.mu.Unlock()

	conf, err := f.submit(ctx, in)

	f.mu.Lock()
	f.inFlight = false
	if err != nil {
		f.phase = Failed
	} else {
		f.phase = Succeeded
		f.last = Input{}
	}
	f.mu.Unlock()
	return conf, err
}

func (f *Flow) submit(ctx context.Context, in Input) (*Confirmation, error) {
	notifier := f.app.Notifier()

	if errs := validateInput(in); len(errs) > 0 {
		err := &api.ValidationError{Fields: errs}
		notifier.ShowError(err.Error())
		return nil, err
	}
	token := f.app.Token()
	if token == "" {
		notifier.Show(api.UserMessage(api.ErrAuthRequired), notify.Warning)
		return nil, api.ErrAuthRequired
	}
	if f.app.Cart().Empty() {
		err := &api.ValidationError{Fields: map[string]string{"cart": "your cart is empty"}}
		notifier.ShowError(err.Error())
		return nil, err
	}

	address := strings.TrimSpace(in.DeliveryAddress)
	phone := nonDigitRE.ReplaceAllString(in.Phone, "")

	// Snapshot the cart before the request so a concurrent mutation cannot
	// change what is billed.
	lines := f.app.Cart().Lines()
	items := make([]models.OrderItem, 0, len(lines))
	total := 0.0
	for _, l := range lines {
		items = append(items, models.OrderItem{
			Name:     l.Product.Name,
			Price:    l.Product.Price,
			Quantity: l.Quantity,
			Image:    l.Product.Image,
		})
		total += l.Subtotal()
	}

	f.mu.Lock()
	f.phase = Submitting
	f.mu.Unlock()

	order, err := f.app.Client().PlaceOrder(ctx, token, api.OrderRequest{
		Items:           items,
		TotalAmount:     total,
		DeliveryAddress: address,
		Phone:           phone,
	})
	if err != nil {
		notifier.ShowError(api.UserMessage(err))
		return nil, err
	}

	f.app.Cart().Clear()
	notifier.ShowSuccess("order placed")

	return &Confirmation{
		OrderID:         order.ID,
		Items:           items,
		TotalAmount:     total,
		DeliveryAddress: address,
		Phone:           phone,
		EstimatedAt:     time.Now().Add(estimatedDelivery),
	}, nil
}
