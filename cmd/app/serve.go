package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/psm5556/Crisis-Alert/internal/di"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := di.InitializeApp(cfg)
		if err != nil {
			return fmt.Errorf("app initialization failed: %w", err)
		}
		defer cleanup()

		// blocks until SIGINT/SIGTERM
		return app.Run(cmd.Context())
	},
}
