package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ananyakrishnan/zaika/config"
	"github.com/ananyakrishnan/zaika/internal/devserver"
	"github.com/ananyakrishnan/zaika/pkg/cache"
	"github.com/ananyakrishnan/zaika/pkg/logger"
)

// zaika serve — run the bundled backend for local development.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bundled dev backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		// The menu cache degrades to plain DB reads without redis.
		if err := cache.Connect(); err != nil {
			logger.Warn("serve: redis unavailable, caching disabled", "error", err)
		}

		if uri := config.Get("LOG_MONGO_URI", ""); uri != "" {
			h, err := logger.NewMongoHandler(uri,
				config.Get("LOG_MONGO_DB", "zaika"),
				config.Get("LOG_MONGO_COLLECTION", "logs"))
			if err != nil {
				logger.Warn("serve: mongo log shipping disabled", "error", err)
			} else {
				defer h.Close()
				logger.Attach(h)
			}
		}

		s, err := devserver.New()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return s.Run(ctx)
	},
}
