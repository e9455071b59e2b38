package cmd

import (
	"context"
	"errors"
	"image"
	"os/signal"
	"syscall"

	"github.com/devmobasa/wayscriber/internal/app"
	"github.com/devmobasa/wayscriber/internal/config"
	"github.com/devmobasa/wayscriber/internal/logger"
	"github.com/spf13/cobra"
)

var (
	runWidth  int
	runHeight int

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Start the annotation overlay",
		Long: `Start the annotation engine and serve the control socket.

Display backends register themselves at build time; without one the
engine runs headless at the size given by --width/--height, which is
useful for driving it through the control subcommands.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			surface, err := newSurface()
			if err != nil {
				return err
			}

			a, err := app.New(config.Get(), surface)
			if err != nil {
				return err
			}
			a.State.Resize(runWidth, runHeight, 1)

			config.Watch(a.ReloadConfig)

			logger.Info("wayscriber running", "width", runWidth, "height", runHeight)
			if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			logger.Info("wayscriber stopped")
			return nil
		},
	}
)

// newSurface builds the display backend. Display integrations replace
// this in their own init; the default is a headless surface.
var newSurface = func() (app.Surface, error) {
	return &headlessSurface{}, nil
}

// headlessSurface accepts commits without putting pixels anywhere.
type headlessSurface struct{}

func (h *headlessSurface) Commit(buf *image.RGBA, damage []image.Rectangle) error {
	logger.Debug("frame committed", "damage", len(damage))
	return nil
}

func (h *headlessSurface) HideForCapture() {}

func (h *headlessSurface) RestoreAfterCapture() {}

func init() {
	runCmd.Flags().IntVar(&runWidth, "width", 1920, "surface width in pixels")
	runCmd.Flags().IntVar(&runHeight, "height", 1080, "surface height in pixels")
	rootCmd.AddCommand(runCmd)
}
