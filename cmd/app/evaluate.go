package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/psm5556/Crisis-Alert/internal/di"
)

var (
	evalPoints int
	evalPretty bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate all indicators once and print the snapshot as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the snapshot
		if cfg.Log.Output == "" || cfg.Log.Output == "stdout" {
			cfg.Log.Output = "stderr"
		}
		app, cleanup, err := di.InitializeApp(cfg)
		if err != nil {
			return fmt.Errorf("app initialization failed: %w", err)
		}
		defer cleanup()

		d, err := app.Dashboard().Evaluate(cmd.Context())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		if evalPretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(d.TrimSeries(evalPoints))
	},
}

func init() {
	evaluateCmd.Flags().IntVar(&evalPoints, "points", 12, "trailing points per series (0 = all)")
	evaluateCmd.Flags().BoolVar(&evalPretty, "pretty", true, "indent output")
}
