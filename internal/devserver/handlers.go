package devserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ananyakrishnan/zaika/app/models"
	"github.com/ananyakrishnan/zaika/pkg/auth"
	"github.com/ananyakrishnan/zaika/pkg/bind"
	"github.com/ananyakrishnan/zaika/pkg/event"
	"github.com/ananyakrishnan/zaika/pkg/logger"
	"github.com/ananyakrishnan/zaika/pkg/metrics"
	"github.com/ananyakrishnan/zaika/pkg/middleware"
	"github.com/ananyakrishnan/zaika/pkg/response"
)

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"    validate:"required,digits=10"`
	Address  string `json:"address"  validate:"required,min=10"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type orderRequest struct {
	Items           []models.OrderItem `json:"items"           validate:"required"`
	TotalAmount     float64            `json:"totalAmount"     validate:"required,gt=0"`
	DeliveryAddress string             `json:"deliveryAddress" validate:"required,min=10"`
	Phone           string             `json:"phone"           validate:"required,digits=10"`
}

// handleFoods serves the menu. Public.
func (s *Server) handleFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := s.repo.listFoods()
	if err != nil {
		logger.Error("devserver: list foods", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not load the menu")
		return
	}
	response.JSON(w, foods)
}

// handleRegister creates an account and logs it in.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if _, err := s.repo.findAccountByEmail(req.Email); err == nil {
		response.Error(w, http.StatusBadRequest, "email already registered")
		return
	} else if !errors.Is(err, errNotFound) {
		logger.Error("devserver: register lookup", "error", err)
		response.Error(w, http.StatusInternalServerError, "registration failed")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error("devserver: hash password", "error", err)
		response.Error(w, http.StatusInternalServerError, "registration failed")
		return
	}

	acc := Account{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Phone:    req.Phone,
		Address:  req.Address,
	}
	if err := s.repo.createAccount(&acc); err != nil {
		logger.Error("devserver: create account", "error", err)
		response.Error(w, http.StatusInternalServerError, "registration failed")
		return
	}

	s.respondSession(w, acc, http.StatusCreated)
}

// handleLogin exchanges credentials for a session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	acc, err := s.repo.findAccountByEmail(req.Email)
	if errors.Is(err, errNotFound) || (err == nil && !auth.CheckPassword(acc.Password, req.Password)) {
		response.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		logger.Error("devserver: login lookup", "error", err)
		response.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	s.respondSession(w, acc, http.StatusOK)
}

func (s *Server) respondSession(w http.ResponseWriter, acc Account, status int) {
	token, err := auth.GenerateToken(acc.ID)
	if err != nil {
		logger.Error("devserver: issue token", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not issue a session")
		return
	}

	body := map[string]interface{}{
		"user":  acc.toUser(),
		"token": token,
	}
	if status == http.StatusCreated {
		response.Created(w, body)
		return
	}
	response.JSON(w, body)
}

// handleCreateOrder places an order for the authenticated account.
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.UserID(r.Context())

	var req orderRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}
	if len(req.Items) == 0 {
		response.Error(w, http.StatusBadRequest, "order has no items")
		return
	}

	order, err := s.repo.createOrder(accountID, req.Items, req.TotalAmount, req.DeliveryAddress, req.Phone)
	if err != nil {
		logger.Error("devserver: create order", "error", err)
		response.Error(w, http.StatusInternalServerError, "order creation failed")
		return
	}

	metrics.OrdersPlaced.Inc()
	event.Fire(eventOrderPlaced, order.toAPI())

	response.Created(w, map[string]interface{}{"order": order.toAPI()})
}

// handleListOrders returns the account's order history, newest first.
func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.UserID(r.Context())

	orders, err := s.repo.listOrders(accountID)
	if err != nil {
		logger.Error("devserver: list orders", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not load orders")
		return
	}

	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.toAPI())
	}
	response.JSON(w, out)
}

// handleCancelOrder cancels one of the account's orders while the kitchen
// still allows it.
func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.UserID(r.Context())
	publicID := chi.URLParam(r, "id")

	order, err := s.repo.findOrder(accountID, publicID)
	if errors.Is(err, errNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.Error("devserver: find order", "error", err)
		response.Error(w, http.StatusInternalServerError, "cancellation failed")
		return
	}

	if !models.OrderStatus(order.Status).Cancellable() {
		response.Error(w, http.StatusBadRequest, "order can no longer be cancelled")
		return
	}

	order.Status = string(models.StatusCancelled)
	if err := s.repo.saveOrder(&order); err != nil {
		logger.Error("devserver: cancel order", "error", err)
		response.Error(w, http.StatusInternalServerError, "cancellation failed")
		return
	}

	metrics.OrdersCancelled.Inc()
	event.Fire(eventOrderStatus, order.toAPI())

	response.Message(w, "order cancelled")
}
