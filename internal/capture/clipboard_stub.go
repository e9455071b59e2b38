//go:build !(linux && cgo)

package capture

import (
	"fmt"
	"image"
)

func writeClipboardImage(image.Image) error {
	return fmt.Errorf("clipboard image writes are not supported in this build")
}
