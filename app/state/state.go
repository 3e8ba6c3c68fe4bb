// Package state holds the single owner of client-side application state.
//
// One App instance owns the cart engine, the active session, and the
// notification layer. Flows (checkout, order list) receive snapshots and
// callback handles from the App; they never touch the underlying structures
// directly. All mutations happen under the App's lock, which stands in for
// the single-threaded ownership a UI event loop would provide.
package state

import (
	"context"
	"strings"
	"sync"

	"github.com/ananyakrishnan/zaika/app/cart"
	"github.com/ananyakrishnan/zaika/app/models"
	"github.com/ananyakrishnan/zaika/internal/api"
	"github.com/ananyakrishnan/zaika/pkg/collection"
	"github.com/ananyakrishnan/zaika/pkg/logger"
	"github.com/ananyakrishnan/zaika/pkg/notify"
	"github.com/ananyakrishnan/zaika/pkg/store"
	"github.com/ananyakrishnan/zaika/pkg/validate"
)

// App is the application state holder.
type App struct {
	mu       sync.Mutex
	session  *models.Session
	cart     *cart.Cart
	notifier *notify.Notifier

	client   *api.Client
	carts    *store.CartStore
	sessions *store.SessionStore
}

// Option configures an App.
type Option func(*App)

// WithClient sets the backend client.
func WithClient(c *api.Client) Option {
	return func(a *App) { a.client = c }
}

// WithStores sets the persistence stores for cart and session.
func WithStores(carts *store.CartStore, sessions *store.SessionStore) Option {
	return func(a *App) {
		a.carts = carts
		a.sessions = sessions
	}
}

// WithNotifier replaces the default notifier (tests shorten its duration).
func WithNotifier(n *notify.Notifier) Option {
	return func(a *App) { a.notifier = n }
}

// New assembles an App. The cart writes through to the cart store on every
// mutation when one is configured.
func New(opts ...Option) *App {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}
	if a.client == nil {
		a.client = api.New()
	}
	if a.notifier == nil {
		a.notifier = notify.New()
	}

	var cartOpts []cart.Option
	if a.carts != nil {
		cartOpts = append(cartOpts, cart.WithPersist(a.carts.Save))
	}
	a.cart = cart.New(cartOpts...)
	return a
}

// Restore loads the persisted session and cart, if any. Corrupt or missing
// state starts the app clean; it is never fatal.
func (a *App) Restore() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sessions != nil {
		sess, err := a.sessions.Load()
		if err != nil {
			logger.Warn("state: restore session", "error", err)
		} else if sess != nil {
			a.session = sess
		}
	}
	if a.carts != nil {
		lines, err := a.carts.Load()
		if err != nil {
			logger.Warn("state: restore cart", "error", err)
		} else if len(lines) > 0 {
			a.cart.Restore(lines)
		}
	}
}

// Cart exposes the cart engine. The engine is its own synchronization
// domain; callers mutate it directly.
func (a *App) Cart() *cart.Cart { return a.cart }

// Notifier exposes the notification layer.
func (a *App) Notifier() *notify.Notifier { return a.notifier }

// Session returns a copy of the active session, or nil when logged out.
func (a *App) Session() *models.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return nil
	}
	s := *a.session
	return &s
}

// Token returns the active bearer token, or "" when logged out.
func (a *App) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return ""
	}
	return a.session.Token
}

// LoggedIn reports whether a session is active.
func (a *App) LoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session != nil
}

// ─── Auth flows ───────────────────────────────────────────────────────────────

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Registration is the register form.
type Registration struct {
	Name     string `json:"name"     validate:"required,min=2"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"    validate:"required,digits=10"`
	Address  string `json:"address"  validate:"required,min=10"`
}

// Login validates credentials locally, exchanges them for a session, and
// persists it. Shows a notification either way.
func (a *App) Login(ctx context.Context, in Credentials) error {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		err := &api.ValidationError{Fields: errs}
		a.notifier.ShowError(err.Error())
		return err
	}

	sess, err := a.client.Login(ctx, in.Email, in.Password)
	if err != nil {
		a.notifier.ShowError(api.UserMessage(err))
		return err
	}

	a.adoptSession(sess)
	a.notifier.ShowSuccess("welcome back, " + sess.User.Name)
	return nil
}

// Register creates an account; a successful register logs the user in.
func (a *App) Register(ctx context.Context, in Registration) error {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		err := &api.ValidationError{Fields: errs}
		a.notifier.ShowError(err.Error())
		return err
	}

	sess, err := a.client.Register(ctx, api.RegisterInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Phone:    in.Phone,
		Address:  in.Address,
	})
	if err != nil {
		a.notifier.ShowError(api.UserMessage(err))
		return err
	}

	a.adoptSession(sess)
	a.notifier.ShowSuccess("welcome, " + sess.User.Name)
	return nil
}

// Logout drops the session and the cart, in memory and at rest.
func (a *App) Logout() {
	a.mu.Lock()
	a.session = nil
	a.mu.Unlock()

	if a.sessions != nil {
		if err := a.sessions.Clear(); err != nil {
			logger.Warn("state: clear session store", "error", err)
		}
	}
	a.cart.Clear()
	if a.carts != nil {
		if err := a.carts.Clear(); err != nil {
			logger.Warn("state: clear cart store", "error", err)
		}
	}

	a.notifier.ShowInfo("logged out")
}

func (a *App) adoptSession(sess models.Session) {
	a.mu.Lock()
	a.session = &sess
	a.mu.Unlock()

	if a.sessions != nil {
		if err := a.sessions.Save(sess); err != nil {
			logger.Warn("state: persist session", "error", err)
		}
	}
}

// ─── Menu ─────────────────────────────────────────────────────────────────────

// Menu fetches the product list.
func (a *App) Menu(ctx context.Context) ([]models.Product, error) {
	foods, err := a.client.Foods(ctx)
	if err != nil {
		a.notifier.ShowError(api.UserMessage(err))
		return nil, err
	}
	return foods, nil
}

// Client exposes the backend client for the order flows.
func (a *App) Client() *api.Client { return a.client }

// FilterMenu narrows a product list by search term and category. The search
// matches product names case-insensitively; category "" or "all" keeps
// everything.
func FilterMenu(products []models.Product, search, category string) []models.Product {
	search = strings.ToLower(strings.TrimSpace(search))
	category = strings.ToLower(strings.TrimSpace(category))

	return collection.Filter(products, func(p models.Product) bool {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			return false
		}
		if category != "" && category != "all" && strings.ToLower(p.Category) != category {
			return false
		}
		return true
	})
}
