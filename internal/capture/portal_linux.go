//go:build linux

package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"

	"github.com/devmobasa/wayscriber/internal/logger"
)

// PortalBackend captures the screen through the XDG desktop portal
// (org.freedesktop.portal.Screenshot). It works on any compositor that
// ships a portal implementation, which is the common case on Wayland.
type PortalBackend struct {
	// IncludeCursor embeds the pointer in the shot.
	IncludeCursor bool
}

// Screenshot asks the portal for a full-desktop screenshot and decodes
// the PNG it hands back. Cancelling the context abandons the request.
func (b *PortalBackend) Screenshot(ctx context.Context) (*image.RGBA, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("dbus connect: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			logger.Warn("dbus close", "error", cerr)
		}
	}()

	cursorMode := "hidden"
	if b.IncludeCursor {
		cursorMode = "embedded"
	}
	opts := map[string]dbus.Variant{
		"interactive":  dbus.MakeVariant(false),
		"modal":        dbus.MakeVariant(false),
		"handle_token": dbus.MakeVariant("wayscriber_" + strings.ReplaceAll(uuid.NewString(), "-", "")),
		"cursor_mode":  dbus.MakeVariant(cursorMode),
	}

	obj := conn.Object("org.freedesktop.portal.Desktop", "/org/freedesktop/portal/desktop")
	var handle dbus.ObjectPath
	call := obj.Call("org.freedesktop.portal.Screenshot.Screenshot", 0, "", opts)
	if call.Err != nil {
		return nil, fmt.Errorf("portal screenshot call: %w", call.Err)
	}
	if err := call.Store(&handle); err != nil {
		return nil, fmt.Errorf("portal screenshot response: %w", err)
	}

	sigc := make(chan *dbus.Signal, 1)
	conn.Signal(sigc)
	rule := fmt.Sprintf("type='signal',interface='org.freedesktop.portal.Request',member='Response',path='%s'", handle)
	if err := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
		return nil, fmt.Errorf("portal screenshot subscribe: %w", err)
	}
	defer conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, rule)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case sig, ok := <-sigc:
			if !ok {
				return nil, fmt.Errorf("portal screenshot: signal channel closed")
			}
			if sig.Path != handle || sig.Name != "org.freedesktop.portal.Request.Response" {
				continue
			}
			if len(sig.Body) < 2 {
				return nil, fmt.Errorf("portal screenshot: malformed response")
			}
			res, ok := sig.Body[1].(map[string]dbus.Variant)
			if !ok {
				return nil, fmt.Errorf("portal screenshot: malformed response body")
			}
			uriVar, ok := res["uri"]
			if !ok {
				return nil, fmt.Errorf("portal screenshot: response missing image uri")
			}
			uri, _ := uriVar.Value().(string)
			return loadPortalPNG(strings.TrimPrefix(uri, "file://"))
		}
	}
}

// loadPortalPNG reads and removes the temp file the portal wrote.
func loadPortalPNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.Warn("close portal image", "path", path, "error", cerr)
		}
		if rerr := os.Remove(path); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
			logger.Warn("remove portal image", "path", path, "error", rerr)
		}
	}()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, image.Point{}, draw.Src)
	return rgba, nil
}
