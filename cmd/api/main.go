package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sangkips/shopflow/internal/app"
	"github.com/sangkips/shopflow/internal/config"
	"github.com/sangkips/shopflow/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shopflow",
	Short: "ShopFlow mobile shop point of sale",
	Long:  "ShopFlow serves the billing API for a mobile phone shop and manages its backups.",
	// Running without a subcommand starts the server.
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}

// bootstrap loads configuration and wires the application over the
// configured store. Logs go to logOut.
func bootstrap(logOut io.Writer) (*config.Config, *logrus.Logger, *app.App, error) {
	cfg := config.Load()
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.SetOutput(logOut)

	a, err := app.New(cfg, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	return cfg, log, a, nil
}
