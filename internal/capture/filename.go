package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ExpandTemplate substitutes {date}, {time} and {n} in a filename
// template. Unknown placeholders are left alone.
func ExpandTemplate(tmpl string, now time.Time, n int) string {
	out := strings.ReplaceAll(tmpl, "{date}", now.Format("2006-01-02"))
	out = strings.ReplaceAll(out, "{time}", now.Format("15-04-05"))
	out = strings.ReplaceAll(out, "{n}", strconv.Itoa(n))
	return out
}

// saveImage writes the image under the configured directory using the
// filename template. When the template produces a name that already
// exists the sequence number is bumped until a free one is found; if the
// template has no {n} placeholder a single overwrite is allowed.
func (p *Pipeline) saveImage(img *image.RGBA) (string, error) {
	dir := p.opts.Directory
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("capture directory: %w", err)
	}

	now := time.Now()
	name := ExpandTemplate(p.opts.Template, now, p.counter)
	if strings.Contains(p.opts.Template, "{n}") {
		for {
			if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
				break
			}
			p.counter++
			name = ExpandTemplate(p.opts.Template, now, p.counter)
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
