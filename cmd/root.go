package cmd

import (
	"fmt"

	"github.com/devmobasa/wayscriber/internal/config"
	"github.com/devmobasa/wayscriber/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Version is set during build
	Version = "0.1.0-dev"

	configPath string
	logLevel   string

	rootCmd = &cobra.Command{
		Use:   "wayscriber",
		Short: "Wayscriber - on-screen annotation for Wayland",
		Long: `Wayscriber is a screen annotation overlay for Wayland compositors.
It draws shapes, text and highlights over the desktop, keeps per-board
pages with undo history across restarts, and takes screenshots through
the desktop portal. A running instance is controlled over a unix socket
with the subcommands below.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				config.SetConfigPath(configPath)
			}
			if err := config.Init(); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if logLevel != "" {
				logger.SetLevelName(logLevel)
			}
			return nil
		},
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}
