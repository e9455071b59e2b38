package cmd

import (
	"fmt"

	"github.com/devmobasa/wayscriber/internal/config"
	"github.com/devmobasa/wayscriber/internal/logger"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Wayscriber configuration",
	Long:  `Manage Wayscriber configuration including drawing defaults, session persistence and capture settings.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		logger.Info("Current Configuration:")
		logger.Infof("Config file: %s\n", config.GetConfigPath())

		logger.Info("[Drawing]")
		logger.Infof("  Default Tool: %s", cfg.Drawing.DefaultTool)
		logger.Infof("  Default Color: %s", cfg.Drawing.DefaultColor)
		logger.Infof("  Default Thickness: %.1f", cfg.Drawing.DefaultThickness)
		logger.Infof("  History Limit: %d", cfg.Drawing.HistoryLimit)
		logger.Infof("  Eraser Size: %.1f", cfg.Drawing.EraserSize)
		logger.Infof("  Marker Opacity: %.2f", cfg.Drawing.MarkerOpacity)
		logger.Infof("  Font Size: %.1f", cfg.Drawing.FontSize)

		logger.Info("[Board]")
		logger.Infof("  Default: %s", cfg.Board.Default)
		logger.Infof("  Auto Adjust Pen: %v", cfg.Board.AutoAdjustPen)

		logger.Info("[Zoom]")
		logger.Infof("  Scale Range: %.1f - %.1f", cfg.Zoom.MinScale, cfg.Zoom.MaxScale)

		logger.Info("[Session]")
		logger.Infof("  Enabled: %v", cfg.Session.Enabled)
		logger.Infof("  Path: %s", cfg.SessionPath())
		logger.Infof("  Max File Size: %d bytes", cfg.Session.MaxFileSizeBytes)
		logger.Infof("  Max Shapes Per Page: %d", cfg.Session.MaxShapesPerFrame)
		logger.Infof("  History Retention: %d", cfg.Session.HistoryRetention)
		logger.Infof("  Save Debounce: %s", cfg.SaveDebounce())
		logger.Infof("  Backup: %v", cfg.Session.Backup)

		logger.Info("[Capture]")
		logger.Infof("  Directory: %s", cfg.CaptureDirectory())
		logger.Infof("  Filename Template: %s", cfg.Capture.FilenameTemplate)
		logger.Infof("  Include Cursor: %v", cfg.Capture.IncludeCursor)
		logger.Infof("  Timeout: %s", cfg.CaptureTimeout())

		logger.Info("[IPC]")
		logger.Infof("  Enabled: %v", cfg.IPC.Enabled)
		socket := cfg.IPC.SocketPath
		if socket == "" {
			socket = "(per-user default)"
		}
		logger.Infof("  Socket Path: %s", socket)

		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.GetConfigPath())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current configuration to file",
	Long:  `Write the current configuration (defaults merged with any existing file) to the config path, creating it if needed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Save(); err != nil {
			return err
		}
		logger.Infof("Configuration written to %s", config.GetConfigPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
