// Package devserver is a self-contained backend for developing the Zaika
// client against: the six REST endpoints the storefront consumes, JWT
// sessions, GORM persistence, a seeded menu, an order progression ticker,
// and a WebSocket feed of status changes at /ws/orders.
//
// It is a development convenience. The real storefront backend is external;
// this one only speaks the same wire shapes.
package devserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/ananyakrishnan/zaika/app/models"
	"github.com/ananyakrishnan/zaika/config"
	"github.com/ananyakrishnan/zaika/pkg/database"
	"github.com/ananyakrishnan/zaika/pkg/event"
	"github.com/ananyakrishnan/zaika/pkg/logger"
	"github.com/ananyakrishnan/zaika/pkg/metrics"
	"github.com/ananyakrishnan/zaika/pkg/middleware"
	"github.com/ananyakrishnan/zaika/pkg/reqid"
	"github.com/ananyakrishnan/zaika/pkg/router"
	"github.com/ananyakrishnan/zaika/pkg/schedule"
	"github.com/ananyakrishnan/zaika/pkg/ws"
)

// Event names fired by the handlers and the progression ticker.
const (
	eventOrderPlaced = "order.placed"
	eventOrderStatus = "order.status_changed"
)

// progressInterval is how often the kitchen "advances" active orders.
const progressInterval = 20

// statusEvent is the JSON shape pushed over /ws/orders.
type statusEvent struct {
	OrderID string             `json:"orderId"`
	Status  models.OrderStatus `json:"status"`
}

// Server is the assembled dev backend.
type Server struct {
	repo   *repository
	router *router.Router
	hub    *ws.Hub
}

// Option configures a Server.
type Option func(*Server)

// WithDB supplies a gorm handle directly; tests use an in-memory sqlite.
func WithDB(db *gorm.DB) Option {
	return func(s *Server) { s.repo = &repository{db: db} }
}

// New assembles the server: migrations, seed data, routes, event wiring.
// Without WithDB it connects using the configured driver and DSN.
func New(opts ...Option) (*Server, error) {
	s := &Server{hub: ws.NewHub()}
	for _, opt := range opts {
		opt(s)
	}

	if s.repo == nil {
		if err := database.Connect(); err != nil {
			return nil, fmt.Errorf("devserver: %w", err)
		}
		s.repo = &repository{db: database.DB}
	}

	if err := s.repo.db.AutoMigrate(&Food{}, &Account{}, &Order{}); err != nil {
		return nil, fmt.Errorf("devserver: migrate: %w", err)
	}
	if err := s.seed(); err != nil {
		return nil, fmt.Errorf("devserver: %w", err)
	}

	s.wireEvents()
	s.routes()
	return s, nil
}

// wireEvents forwards order lifecycle events to the WebSocket hub.
func (s *Server) wireEvents() {
	forward := func(payload interface{}) {
		order, ok := payload.(models.Order)
		if !ok {
			return
		}
		s.hub.BroadcastJSON(statusEvent{OrderID: order.ID, Status: order.Status})
	}
	event.Listen(eventOrderPlaced, forward)
	event.Listen(eventOrderStatus, forward)
}

func (s *Server) routes() {
	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/ws/orders", "ws.orders", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, s.hub)
	})

	api := r.Group("/api")
	api.Get("/foods", "foods.list", s.handleFoods)
	api.Post("/register", "auth.register", s.handleRegister, middleware.RateLimit(10, time.Minute))
	api.Post("/login", "auth.login", s.handleLogin, middleware.RateLimit(10, time.Minute))

	protected := api.Group("", middleware.Auth)
	protected.Post("/orders", "orders.create", s.handleCreateOrder)
	protected.Get("/orders", "orders.list", s.handleListOrders)
	protected.Put("/orders/{id}/cancel", "orders.cancel", s.handleCancelOrder)

	s.router = r
}

// Handler returns the HTTP handler; tests mount it on httptest servers.
func (s *Server) Handler() http.Handler {
	return s.router.Handler()
}

// Run starts the hub, the progression ticker, and the HTTP listener. Blocks
// until the listener fails or ctx is cancelled at startup.
func (s *Server) Run(ctx context.Context) error {
	go s.hub.Run()

	schedule.Every(progressInterval).Seconds().
		Name("orders.progress").
		WithoutOverlapping().
		Run(s.progressOrders)
	schedule.Start(ctx)

	addr := ":" + config.AppPort()
	logger.Info("devserver: listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// progressOrders advances every active order one step:
// pending → confirmed → preparing → delivered.
func (s *Server) progressOrders() {
	next := map[string]models.OrderStatus{
		string(models.StatusPending):   models.StatusConfirmed,
		string(models.StatusConfirmed): models.StatusPreparing,
		string(models.StatusPreparing): models.StatusDelivered,
	}

	orders, err := s.repo.activeOrders()
	if err != nil {
		logger.Error("devserver: progress orders", "error", err)
		return
	}

	for _, order := range orders {
		to, ok := next[order.Status]
		if !ok {
			continue
		}
		order.Status = string(to)
		if err := s.repo.saveOrder(&order); err != nil {
			logger.Error("devserver: progress order", "order", order.PublicID, "error", err)
			continue
		}
		metrics.OrderStatusTransitions.WithLabelValues(string(to)).Inc()
		event.Fire(eventOrderStatus, order.toAPI())
	}
}
