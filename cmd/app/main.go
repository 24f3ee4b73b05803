package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/psm5556/Crisis-Alert/pkg/config"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "crisis-alert",
	Short: "Macro crisis signal service",
	Long:  "Fetches the funding rate, manufacturing activity index and yield curve spread, classifies each and reports a composite crisis tier.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadWithEnv(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "config file path")
	rootCmd.AddCommand(serveCmd, evaluateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
