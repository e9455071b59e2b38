//go:build !linux

package capture

import (
	"context"
	"fmt"
	"image"
)

// PortalBackend is only functional on Linux.
type PortalBackend struct {
	IncludeCursor bool
}

func (b *PortalBackend) Screenshot(context.Context) (*image.RGBA, error) {
	return nil, fmt.Errorf("portal screenshots are not supported on this platform")
}
