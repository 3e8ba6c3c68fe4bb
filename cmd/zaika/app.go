package main

import (
	"fmt"
	"os"

	"github.com/ananyakrishnan/zaika/app/state"
	"github.com/ananyakrishnan/zaika/config"
	"github.com/ananyakrishnan/zaika/pkg/logger"
	"github.com/ananyakrishnan/zaika/pkg/notify"
	"github.com/ananyakrishnan/zaika/pkg/storage"
	"github.com/ananyakrishnan/zaika/pkg/store"
)

// newApp boots the client side: config, the state disk, and the persisted
// cart and session. Notifications raised by the flows print as banners on
// stderr the moment they happen.
func newApp() *state.App {
	if err := config.Load(); err != nil {
		logger.Warn("config load failed, using defaults", "error", err)
	}
	storage.Connect()

	disk := storage.Default()
	app := state.New(
		state.WithStores(store.NewCartStore(disk), store.NewSessionStore(disk)),
		state.WithNotifier(notify.New(notify.WithListener(printBanner))),
	)
	app.Restore()
	return app
}

func printBanner(n notify.Notification) {
	if !n.Visible {
		return
	}
	fmt.Fprintf(os.Stderr, "[%s] %s\n", n.Kind, n.Message)
}

func money(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}
