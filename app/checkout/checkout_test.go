package checkout_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ananyakrishnan/zaika/app/checkout"
	"github.com/ananyakrishnan/zaika/app/models"
	"github.com/ananyakrishnan/zaika/app/state"
	"github.com/ananyakrishnan/zaika/internal/api"
)

// seedCart puts one Paneer Tikka (180) and two Masala Dosa (90 each) in the
// cart, total 360.
func seedCart(app *state.App) {
	app.Cart().Add(models.Product{ID: "f1", Name: "Paneer Tikka", Price: 180, Image: "paneer.jpg"})
	app.Cart().Add(models.Product{ID: "f2", Name: "Masala Dosa", Price: 90, Image: "dosa.jpg"})
	app.Cart().Add(models.Product{ID: "f2", Name: "Masala Dosa", Price: 90, Image: "dosa.jpg"})
}

func TestSubmitRejectsShortAddressWithoutNetwork(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	app := state.New(state.WithClient(api.New(api.WithBaseURL(srv.URL))))
	seedCart(app)
	flow := checkout.New(app)

	_, err := flow.Submit(context.Background(), checkout.Input{
		DeliveryAddress: "123 Main", // 8 chars
		Phone:           "5551234567",
	})

	var valErr *api.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("got %T (%v), want *api.ValidationError", err, err)
	}
	if _, ok := valErr.Fields["deliveryAddress"]; !ok {
		t.Errorf("expected deliveryAddress error, fields = %v", valErr.Fields)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("server was called %d times, want 0", calls)
	}
	if flow.Phase() != checkout.Failed {
		t.Errorf("phase = %v, want Failed", flow.Phase())
	}
}

func TestSubmitRejectsBadPhone(t *testing.T) {
	app := state.New()
	seedCart(app)
	flow := checkout.New(app)

	for _, phone := range []string{"555123", "55512345678", ""} {
		_, err := flow.Submit(context.Background(), checkout.Input{
			DeliveryAddress: "123 Main Street",
			Phone:           phone,
		})
		var valErr *api.ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("phone %q: got %T (%v), want *api.ValidationError", phone, err, err)
		}
	}

	// Formatting characters are stripped before counting.
	_, err := flow.Submit(context.Background(), checkout.Input{
		DeliveryAddress: "123 Main Street",
		Phone:           "(555) 123-4567",
	})
	var valErr *api.ValidationError
	if errors.As(err, &valErr) {
		t.Fatalf("formatted 10-digit phone rejected: %v", err)
	}
	// Past validation it fails on the missing session instead.
	if !errors.Is(err, api.ErrAuthRequired) {
		t.Fatalf("got %v, want ErrAuthRequired", err)
	}
}

func TestSubmitRequiresSession(t *testing.T) {
	app := state.New()
	seedCart(app)
	flow := checkout.New(app)

	_, err := flow.Submit(context.Background(), checkout.Input{
		DeliveryAddress: "123 Main Street",
		Phone:           "5551234567",
	})
	if !errors.Is(err, api.ErrAuthRequired) {
		t.Fatalf("got %v, want ErrAuthRequired", err)
	}
}

func TestSubmitSuccessClearsCartAndHandsOff(t *testing.T) {
	var gotReq api.OrderRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user":  models.User{ID: "u1", Name: "Asha"},
			"token": "tok-abc",
		})
	})
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-abc" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"order": models.Order{ID: "64b1f0aa9c1d2e3f4a5b6c7d", TotalAmount: 360, Status: models.StatusPending},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	app := state.New(state.WithClient(api.New(api.WithBaseURL(srv.URL))))
	if err := app.Login(context.Background(), state.Credentials{Email: "asha@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	seedCart(app)
	flow := checkout.New(app)

	conf, err := flow.Submit(context.Background(), checkout.Input{
		DeliveryAddress: "  12 MG Road, Bengaluru  ",
		Phone:           "555-123-4567",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if conf.OrderID != "64b1f0aa9c1d2e3f4a5b6c7d" {
		t.Errorf("order id = %q", conf.OrderID)
	}
	if conf.TotalAmount != 360 {
		t.Errorf("total = %v, want 360", conf.TotalAmount)
	}
	if conf.DeliveryAddress != "12 MG Road, Bengaluru" {
		t.Errorf("address not trimmed: %q", conf.DeliveryAddress)
	}
	if conf.Phone != "5551234567" {
		t.Errorf("phone not normalized: %q", conf.Phone)
	}
	if len(conf.Items) != 2 || conf.Items[1].Quantity != 2 {
		t.Errorf("unexpected items: %+v", conf.Items)
	}
	if !app.Cart().Empty() {
		t.Error("cart not cleared after successful order")
	}
	if flow.Phase() != checkout.Succeeded {
		t.Errorf("phase = %v, want Succeeded", flow.Phase())
	}
	if gotReq.TotalAmount != 360 || gotReq.DeliveryAddress != "12 MG Road, Bengaluru" {
		t.Errorf("request payload = %+v", gotReq)
	}
}

func TestSubmitFailurePreservesCartAndInput(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user":  models.User{ID: "u1", Name: "Asha"},
			"token": "tok-abc",
		})
	})
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "order creation failed"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	app := state.New(state.WithClient(api.New(api.WithBaseURL(srv.URL))))
	if err := app.Login(context.Background(), state.Credentials{Email: "asha@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	seedCart(app)
	flow := checkout.New(app)

	in := checkout.Input{DeliveryAddress: "12 MG Road, Bengaluru", Phone: "5551234567"}
	_, err := flow.Submit(context.Background(), in)

	var srvErr *api.ServerError
	if !errors.As(err, &srvErr) {
		t.Fatalf("got %T (%v), want *api.ServerError", err, err)
	}
	if app.Cart().Empty() {
		t.Error("cart cleared on failed order")
	}
	if flow.Phase() != checkout.Failed {
		t.Errorf("phase = %v, want Failed", flow.Phase())
	}
	if flow.LastInput() != in {
		t.Errorf("input not preserved: %+v", flow.LastInput())
	}
}

func TestSubmitInFlightGuard(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user":  models.User{ID: "u1", Name: "Asha"},
			"token": "tok-abc",
		})
	})
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		<-release
		json.NewEncoder(w).Encode(map[string]interface{}{
			"order": models.Order{ID: "64b1f0aa9c1d2e3f4a5b6c7d"},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	app := state.New(state.WithClient(api.New(api.WithBaseURL(srv.URL))))
	if err := app.Login(context.Background(), state.Credentials{Email: "asha@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	seedCart(app)
	flow := checkout.New(app)

	in := checkout.Input{DeliveryAddress: "12 MG Road, Bengaluru", Phone: "5551234567"}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := flow.Submit(context.Background(), in); err != nil {
			t.Errorf("first Submit: %v", err)
		}
	}()

	// Wait for the first submission to reach the server.
	for flow.Phase() != checkout.Submitting {
		time.Sleep(time.Millisecond)
	}

	if _, err := flow.Submit(context.Background(), in); !errors.Is(err, checkout.ErrInFlight) {
		t.Errorf("second Submit: got %v, want ErrInFlight", err)
	}

	close(release)
	wg.Wait()

	if flow.Phase() != checkout.Succeeded {
		t.Errorf("phase = %v, want Succeeded", flow.Phase())
	}
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user":  models.User{ID: "u1", Name: "Asha"},
			"token": "tok-abc",
		})
	}))
	defer srv.Close()

	app := state.New(state.WithClient(api.New(api.WithBaseURL(srv.URL))))
	if err := app.Login(context.Background(), state.Credentials{Email: "asha@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	flow := checkout.New(app)

	_, err := flow.Submit(context.Background(), checkout.Input{
		DeliveryAddress: "12 MG Road, Bengaluru",
		Phone:           "5551234567",
	})
	var valErr *api.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("got %T (%v), want *api.ValidationError", err, err)
	}
	if _, ok := valErr.Fields["cart"]; !ok {
		t.Errorf("expected cart error, fields = %v", valErr.Fields)
	}
}
