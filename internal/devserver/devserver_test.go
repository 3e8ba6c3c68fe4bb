package devserver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ananyakrishnan/zaika/app/models"
	"github.com/ananyakrishnan/zaika/pkg/testkit"
)

var seq int

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	// A named shared in-memory database keeps all pooled connections on the
	// same data.
	seq++
	dsn := fmt.Sprintf("file:devserver_test_%d?mode=memory&cache=shared", seq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "open sqlite")

	s, err := New(WithDB(db))
	require.NoError(t, err, "assemble server")

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func register(t *testing.T, srv *httptest.Server, email string) (models.User, string) {
	t.Helper()
	resp := testkit.Do(t, srv.URL, testkit.Request{
		Method: http.MethodPost,
		Path:   "/api/register",
		Body: map[string]string{
			"name":     "Asha Rao",
			"email":    email,
			"password": "secret123",
			"phone":    "9876543210",
			"address":  "12 MG Road, Bengaluru",
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "register: %s", resp.Body)

	var out struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	resp.JSON(t, &out)
	require.NotEmpty(t, out.Token)
	return out.User, out.Token
}

func placeOrder(t *testing.T, srv *httptest.Server, token string) models.Order {
	t.Helper()
	resp := testkit.Do(t, srv.URL, testkit.Request{
		Method: http.MethodPost,
		Path:   "/api/orders",
		Token:  token,
		Body: map[string]interface{}{
			"items": []models.OrderItem{
				{Name: "Paneer Tikka", Price: 180, Quantity: 2, Image: "/images/paneer-tikka.jpg"},
			},
			"totalAmount":     360,
			"deliveryAddress": "12 MG Road, Bengaluru",
			"phone":           "9876543210",
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "place order: %s", resp.Body)

	var out struct {
		Order models.Order `json:"order"`
	}
	resp.JSON(t, &out)
	return out.Order
}

func TestFoodsServesSeededMenu(t *testing.T) {
	srv := newTestServer(t)

	resp := testkit.Do(t, srv.URL, testkit.Request{Method: http.MethodGet, Path: "/api/foods"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var foods []models.Product
	resp.JSON(t, &foods)
	assert.NotEmpty(t, foods)
	for _, f := range foods {
		assert.NotEmpty(t, f.ID)
		assert.NotEmpty(t, f.Name)
		assert.Greater(t, f.Price, 0.0)
	}
}

func TestRegisterThenLogin(t *testing.T) {
	srv := newTestServer(t)

	user, token := register(t, srv, "asha@example.com")
	assert.Equal(t, "Asha Rao", user.Name)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.NotEmpty(t, token)

	resp := testkit.Do(t, srv.URL, testkit.Request{
		Method: http.MethodPost,
		Path:   "/api/login",
		Body:   map[string]string{"email": "asha@example.com", "password": "secret123"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	resp.JSON(t, &out)
	assert.Equal(t, user.ID, out.User.ID)
	assert.NotEmpty(t, out.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv, "asha@example.com")

	resp := testkit.Do(t, srv.URL, testkit.Request{
		Method: http.MethodPost,
		Path:   "/api/register",
		Body: map[string]string{
			"name":     "Asha Again",
			"email":    "asha@example.com",
			"password": "secret123",
			"phone":    "9876543210",
			"address":  "12 MG Road, Bengaluru",
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "email already registered", resp.Message(t))
}

func TestLoginWrongPassword(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv, "asha@example.com")

	resp := testkit.Do(t, srv.URL, testkit.Request{
		Method: http.MethodPost,
		Path:   "/api/login",
		Body:   map[string]string{"email": "asha@example.com", "password": "wrongpass"},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid email or password", resp.Message(t))
}

func TestOrdersRequireAuth(t *testing.T) {
	srv := newTestServer(t)

	for _, req := range []testkit.Request{
		{Method: http.MethodGet, Path: "/api/orders"},
		{Method: http.MethodPost, Path: "/api/orders", Body: map[string]string{}},
		{Method: http.MethodPut, Path: "/api/orders/64b1f0aa9c1d2e3f4a5b6c7d/cancel"},
	} {
		resp := testkit.Do(t, srv.URL, req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", req.Method, req.Path)
		assert.Equal(t, "please login to continue", resp.Message(t))
	}
}

func TestPlaceOrderShape(t *testing.T) {
	srv := newTestServer(t)
	_, token := register(t, srv, "asha@example.com")

	order := placeOrder(t, srv, token)

	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{24}$`), order.ID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 360.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Paneer Tikka", order.Items[0].Name)
	assert.False(t, order.CreatedAt.IsZero())
}

func TestListOrdersNewestFirst(t *testing.T) {
	srv := newTestServer(t)
	_, token := register(t, srv, "asha@example.com")

	first := placeOrder(t, srv, token)
	second := placeOrder(t, srv, token)

	resp := testkit.Do(t, srv.URL, testkit.Request{
		Method: http.MethodGet,
		Path:   "/api/orders",
		Token:  token,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var orders []models.Order
	resp.JSON(t, &orders)
	require.Len(t, orders, 2)
	ids := []string{orders[0].ID, orders[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}

func TestCancelOrder(t *testing.T) {
	srv := newTestServer(t)
	_, token := register(t, srv, "asha@example.com")
	order := placeOrder(t, srv, token)

	resp := testkit.Do(t, srv.URL, testkit.Request{
		Method: http.MethodPut,
		Path:   "/api/orders/" + order.ID + "/cancel",
		Token:  token,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "order cancelled", resp.Message(t))

	// Cancelled is terminal; a second cancel is refused.
	resp = testkit.Do(t, srv.URL, testkit.Request{
		Method: http.MethodPut,
		Path:   "/api/orders/" + order.ID + "/cancel",
		Token:  token,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "order can no longer be cancelled", resp.Message(t))
}

func TestCancelSomeoneElsesOrder(t *testing.T) {
	srv := newTestServer(t)
	_, ashaToken := register(t, srv, "asha@example.com")
	order := placeOrder(t, srv, ashaToken)

	_, raviToken := register(t, srv, "ravi@example.com")
	resp := testkit.Do(t, srv.URL, testkit.Request{
		Method: http.MethodPut,
		Path:   "/api/orders/" + order.ID + "/cancel",
		Token:  raviToken,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProgressOrdersAdvancesStatuses(t *testing.T) {
	seq++
	dsn := fmt.Sprintf("file:devserver_test_%d?mode=memory&cache=shared", seq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	s, err := New(WithDB(db))
	require.NoError(t, err)

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	_, token := register(t, srv, "asha@example.com")
	order := placeOrder(t, srv, token)

	statuses := []models.OrderStatus{
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusDelivered,
	}
	for _, want := range statuses {
		s.progressOrders()

		stored, err := s.repo.findOrder(1, order.ID)
		require.NoError(t, err)
		assert.Equal(t, string(want), stored.Status)
	}

	// Delivered is terminal for the ticker.
	s.progressOrders()
	stored, err := s.repo.findOrder(1, order.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusDelivered), stored.Status)
}
