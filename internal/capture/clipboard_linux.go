//go:build linux && cgo

package capture

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"sync"

	"golang.design/x/clipboard"
)

var (
	clipInitOnce sync.Once
	clipInitErr  error

	errNoDisplay = errors.New("clipboard requires DISPLAY or WAYLAND_DISPLAY")
)

func clipInit() error {
	clipInitOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			clipInitErr = errNoDisplay
			return
		}
		clipInitErr = clipboard.Init()
	})
	return clipInitErr
}

// writeClipboardImage publishes the image to the system clipboard as PNG.
func writeClipboardImage(img image.Image) error {
	if err := clipInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	return nil
}
