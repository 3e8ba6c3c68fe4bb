// Package api is the typed client for the Zaika backend REST surface.
//
// Six endpoints are consumed: food listing, login, register, order creation,
// order listing, and order cancellation. Methods translate transport
// outcomes into the error taxonomy in errors.go; they never panic and never
// leave partial client state behind.
package api

import (
	"context"
	"time"

	"github.com/ananyakrishnan/zaika/app/models"
	"github.com/ananyakrishnan/zaika/config"
	"github.com/ananyakrishnan/zaika/pkg/http"
)

// Client talks to one backend environment, selected once at startup.
type Client struct {
	baseURL string
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the configured backend base URL (tests point this at
// an httptest server).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a Client against the configured API_BASE_URL.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: config.APIBaseURL(),
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterInput is the register form payload.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// OrderRequest is the create-order payload: a snapshot of the cart plus
// delivery details.
type OrderRequest struct {
	Items           []models.OrderItem `json:"items"`
	TotalAmount     float64            `json:"totalAmount"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Phone           string             `json:"phone"`
}

// Foods lists the menu. No auth. Idempotent, so a transient transport
// failure is retried once.
func (c *Client) Foods(ctx context.Context) ([]models.Product, error) {
	resp, err := http.Get(c.baseURL + "/api/foods").
		WithContext(ctx).
		Timeout(c.timeout).
		Retry(2, 500*time.Millisecond).
		Send()
	if err != nil {
		return nil, c.transportErr("fetch foods", err)
	}
	if !resp.OK() {
		return nil, serverErr(resp)
	}

	var foods []models.Product
	if err := resp.JSON(&foods); err != nil {
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: "unexpected response from server"}
	}
	return foods, nil
}

// sessionResponse is the {user, token} shape shared by login and register.
type sessionResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (models.Session, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := http.Post(c.baseURL+"/api/login").
		WithContext(ctx).
		Timeout(c.timeout).
		Body(body).
		Send()
	if err != nil {
		return models.Session{}, c.transportErr("login", err)
	}
	if !resp.OK() {
		return models.Session{}, serverErr(resp)
	}

	var out sessionResponse
	if err := resp.JSON(&out); err != nil {
		return models.Session{}, &ServerError{StatusCode: resp.StatusCode, Message: "unexpected response from server"}
	}
	return models.Session{User: out.User, Token: out.Token}, nil
}

// Register creates an account and returns the fresh session.
func (c *Client) Register(ctx context.Context, in RegisterInput) (models.Session, error) {
	resp, err := http.Post(c.baseURL+"/api/register").
		WithContext(ctx).
		Timeout(c.timeout).
		Body(in).
		Send()
	if err != nil {
		return models.Session{}, c.transportErr("register", err)
	}
	if !resp.OK() {
		return models.Session{}, serverErr(resp)
	}

	var out sessionResponse
	if err := resp.JSON(&out); err != nil {
		return models.Session{}, &ServerError{StatusCode: resp.StatusCode, Message: "unexpected response from server"}
	}
	return models.Session{User: out.User, Token: out.Token}, nil
}

// PlaceOrder submits an order. Never retried: a duplicate attempt would
// place a duplicate order.
func (c *Client) PlaceOrder(ctx context.Context, token string, req OrderRequest) (models.Order, error) {
	if token == "" {
		return models.Order{}, ErrAuthRequired
	}

	resp, err := http.Post(c.baseURL+"/api/orders").
		WithContext(ctx).
		Timeout(c.timeout).
		Bearer(token).
		Body(req).
		Send()
	if err != nil {
		return models.Order{}, c.transportErr("place order", err)
	}
	if !resp.OK() {
		return models.Order{}, serverErr(resp)
	}

	var out struct {
		Order models.Order `json:"order"`
	}
	if err := resp.JSON(&out); err != nil {
		return models.Order{}, &ServerError{StatusCode: resp.StatusCode, Message: "unexpected response from server"}
	}
	return out.Order, nil
}

// Orders lists the authenticated user's orders, in backend order.
func (c *Client) Orders(ctx context.Context, token string) ([]models.Order, error) {
	if token == "" {
		return nil, ErrAuthRequired
	}

	resp, err := http.Get(c.baseURL+"/api/orders").
		WithContext(ctx).
		Timeout(c.timeout).
		Bearer(token).
		Send()
	if err != nil {
		return nil, c.transportErr("fetch orders", err)
	}
	if !resp.OK() {
		return nil, serverErr(resp)
	}

	var orders []models.Order
	if err := resp.JSON(&orders); err != nil {
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: "unexpected response from server"}
	}
	return orders, nil
}

// CancelOrder asks the backend to cancel an order.
func (c *Client) CancelOrder(ctx context.Context, token, orderID string) error {
	if token == "" {
		return ErrAuthRequired
	}

	resp, err := http.Put(c.baseURL+"/api/orders/"+orderID+"/cancel").
		WithContext(ctx).
		Timeout(c.timeout).
		Bearer(token).
		Send()
	if err != nil {
		return c.transportErr("cancel order", err)
	}
	if !resp.OK() {
		return serverErr(resp)
	}
	return nil
}

// ─── Error mapping ────────────────────────────────────────────────────────────

// transportErr splits "never sent" from "sent but no response".
func (c *Client) transportErr(op string, err error) error {
	if http.IsBuildError(err) {
		return &RequestError{Op: op, Err: err}
	}
	return &NetworkError{Op: op, Err: err}
}

// serverErr extracts the backend's "message" field when the body carries one.
func serverErr(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	_ = resp.JSON(&body) // non-JSON bodies fall back to the generic message
	return &ServerError{StatusCode: resp.StatusCode, Message: body.Message}
}
