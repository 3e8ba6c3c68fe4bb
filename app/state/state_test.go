package state_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ananyakrishnan/zaika/app/models"
	"github.com/ananyakrishnan/zaika/app/state"
	"github.com/ananyakrishnan/zaika/internal/api"
	"github.com/ananyakrishnan/zaika/pkg/notify"
	"github.com/ananyakrishnan/zaika/pkg/storage"
	"github.com/ananyakrishnan/zaika/pkg/store"
)

func newStores(t *testing.T, root string) (*store.CartStore, *store.SessionStore) {
	t.Helper()
	disk := storage.NewLocalDisk(root)
	return store.NewCartStore(disk), store.NewSessionStore(disk)
}

func authServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user":  models.User{ID: "u1", Name: "Asha", Email: "asha@example.com"},
			"token": "tok-abc",
		})
	}))
}

func TestLoginValidatesBeforeNetwork(t *testing.T) {
	var calls int32
	srv := authServer(t, &calls)
	defer srv.Close()

	app := state.New(state.WithClient(api.New(api.WithBaseURL(srv.URL))))

	err := app.Login(context.Background(), state.Credentials{
		Email:    "not-an-email",
		Password: "short",
	})

	var valErr *api.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("got %T (%v), want *api.ValidationError", err, err)
	}
	if _, ok := valErr.Fields["email"]; !ok {
		t.Errorf("expected email error, fields = %v", valErr.Fields)
	}
	if _, ok := valErr.Fields["password"]; !ok {
		t.Errorf("expected password error, fields = %v", valErr.Fields)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("server was called %d times, want 0", calls)
	}
	if app.LoggedIn() {
		t.Error("should not be logged in after validation failure")
	}
	if n := app.Notifier().Current(); !n.Visible || n.Kind != notify.Error {
		t.Errorf("expected visible error notification, got %+v", n)
	}
}

func TestLoginAdoptsAndPersistsSession(t *testing.T) {
	srv := authServer(t, nil)
	defer srv.Close()

	root := t.TempDir()
	carts, sessions := newStores(t, root)
	app := state.New(
		state.WithClient(api.New(api.WithBaseURL(srv.URL))),
		state.WithStores(carts, sessions),
	)

	err := app.Login(context.Background(), state.Credentials{
		Email:    "asha@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !app.LoggedIn() || app.Token() != "tok-abc" {
		t.Fatalf("session not adopted: token=%q", app.Token())
	}
	if n := app.Notifier().Current(); n.Kind != notify.Success {
		t.Errorf("expected success notification, got %+v", n)
	}

	// A fresh app over the same stores comes back logged in.
	carts2, sessions2 := newStores(t, root)
	app2 := state.New(state.WithStores(carts2, sessions2))
	app2.Restore()
	if !app2.LoggedIn() {
		t.Fatal("restored app should be logged in")
	}
	if got := app2.Session().User.Name; got != "Asha" {
		t.Errorf("restored user = %q", got)
	}
}

func TestLoginServerFailureLeavesStateUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid email or password"})
	}))
	defer srv.Close()

	app := state.New(state.WithClient(api.New(api.WithBaseURL(srv.URL))))
	err := app.Login(context.Background(), state.Credentials{
		Email:    "asha@example.com",
		Password: "wrongpass",
	})

	var srvErr *api.ServerError
	if !errors.As(err, &srvErr) {
		t.Fatalf("got %T (%v), want *api.ServerError", err, err)
	}
	if app.LoggedIn() {
		t.Error("should not be logged in after server rejection")
	}
	if n := app.Notifier().Current(); n.Message != "invalid email or password" {
		t.Errorf("notification = %+v", n)
	}
}

func TestRegisterValidation(t *testing.T) {
	app := state.New()
	err := app.Register(context.Background(), state.Registration{
		Name:     "R",
		Email:    "ravi@example.com",
		Password: "secret123",
		Phone:    "12345",
		Address:  "short",
	})

	var valErr *api.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("got %T (%v), want *api.ValidationError", err, err)
	}
	for _, field := range []string{"name", "phone", "address"} {
		if _, ok := valErr.Fields[field]; !ok {
			t.Errorf("expected %s error, fields = %v", field, valErr.Fields)
		}
	}
}

func TestCartSurvivesRestart(t *testing.T) {
	root := t.TempDir()
	carts, sessions := newStores(t, root)
	app := state.New(state.WithStores(carts, sessions))

	app.Cart().Add(models.Product{ID: "f1", Name: "Paneer Tikka", Price: 180})
	app.Cart().Add(models.Product{ID: "f1", Name: "Paneer Tikka", Price: 180})
	app.Cart().Add(models.Product{ID: "f2", Name: "Masala Dosa", Price: 90})

	carts2, sessions2 := newStores(t, root)
	app2 := state.New(state.WithStores(carts2, sessions2))
	app2.Restore()

	lines := app2.Cart().Lines()
	if len(lines) != 2 {
		t.Fatalf("restored %d lines, want 2", len(lines))
	}
	if lines[0].Quantity != 2 || lines[1].Product.ID != "f2" {
		t.Errorf("unexpected restored lines: %+v", lines)
	}
	if got := app2.Cart().Total(); got != 450 {
		t.Errorf("restored total = %v, want 450", got)
	}
}

func TestLogoutClearsSessionAndCart(t *testing.T) {
	srv := authServer(t, nil)
	defer srv.Close()

	root := t.TempDir()
	carts, sessions := newStores(t, root)
	app := state.New(
		state.WithClient(api.New(api.WithBaseURL(srv.URL))),
		state.WithStores(carts, sessions),
	)

	if err := app.Login(context.Background(), state.Credentials{
		Email:    "asha@example.com",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	app.Cart().Add(models.Product{ID: "f1", Name: "Paneer Tikka", Price: 180})

	app.Logout()

	if app.LoggedIn() {
		t.Error("still logged in after logout")
	}
	if !app.Cart().Empty() {
		t.Error("cart not emptied on logout")
	}

	// Nothing comes back after a restart.
	carts2, sessions2 := newStores(t, root)
	app2 := state.New(state.WithStores(carts2, sessions2))
	app2.Restore()
	if app2.LoggedIn() {
		t.Error("session survived logout")
	}
	if !app2.Cart().Empty() {
		t.Error("cart survived logout")
	}
}

func TestFilterMenu(t *testing.T) {
	menu := []models.Product{
		{ID: "f1", Name: "Paneer Tikka", Category: "Starters"},
		{ID: "f2", Name: "Masala Dosa", Category: "South Indian"},
		{ID: "f3", Name: "Paneer Butter Masala", Category: "Main Course"},
	}

	if got := state.FilterMenu(menu, "", "all"); len(got) != 3 {
		t.Errorf(`FilterMenu("", "all") kept %d, want 3`, len(got))
	}
	if got := state.FilterMenu(menu, "paneer", ""); len(got) != 2 {
		t.Errorf(`FilterMenu("paneer", "") kept %d, want 2`, len(got))
	}
	if got := state.FilterMenu(menu, "", "south indian"); len(got) != 1 || got[0].ID != "f2" {
		t.Errorf(`FilterMenu("", "south indian") = %+v`, got)
	}
	if got := state.FilterMenu(menu, "dosa", "starters"); len(got) != 0 {
		t.Errorf("search+category mismatch kept %d, want 0", len(got))
	}
}
