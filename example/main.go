// Package main shows the Zaika client library used programmatically,
// without the CLI: log in, build a cart, and place an order.
//
// Run the bundled dev backend first:
//
//	zaika serve
//	go run ./example
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ananyakrishnan/zaika/app/checkout"
	"github.com/ananyakrishnan/zaika/app/state"
	"github.com/ananyakrishnan/zaika/internal/api"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// No stores: this example keeps everything in memory.
	app := state.New(state.WithClient(api.New(api.WithBaseURL("http://localhost:5000"))))

	err := app.Register(ctx, state.Registration{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Password: "secret123",
		Phone:    "9876543210",
		Address:  "12 MG Road, Bengaluru",
	})
	if err != nil {
		// The account may exist from a previous run.
		err = app.Login(ctx, state.Credentials{Email: "asha@example.com", Password: "secret123"})
		if err != nil {
			return err
		}
	}

	menu, err := app.Menu(ctx)
	if err != nil {
		return err
	}
	for _, p := range menu[:min(3, len(menu))] {
		app.Cart().Add(p)
	}
	fmt.Printf("cart: %d items, total ₹%.2f\n", app.Cart().Count(), app.Cart().Total())

	conf, err := checkout.New(app).Submit(ctx, checkout.Input{
		DeliveryAddress: "12 MG Road, Bengaluru",
		Phone:           "9876543210",
	})
	if err != nil {
		return err
	}

	fmt.Printf("order %s placed, arriving around %s\n",
		conf.OrderID, conf.EstimatedAt.Format("3:04 PM"))
	return nil
}
