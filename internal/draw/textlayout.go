package draw

import (
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/devmobasa/wayscriber/internal/logger"
)

// The raster layer has no access to system fonts; every FontDescriptor is
// mapped onto the embedded Go faces by weight and style. Hit testing,
// bounding boxes and the renderer all measure through the same face cache
// so they always agree.

type faceKey struct {
	weight FontWeight
	style  FontStyle
	size   int // tenths of a point
}

var (
	faceMu    sync.Mutex
	faceCache = map[faceKey]font.Face{}
	fontMu    sync.Once
	parsed    map[[2]string]*opentype.Font
)

func parseFonts() {
	parsed = map[[2]string]*opentype.Font{}
	sources := []struct {
		weight FontWeight
		style  FontStyle
		ttf    []byte
	}{
		{WeightNormal, StyleNormal, goregular.TTF},
		{WeightBold, StyleNormal, gobold.TTF},
		{WeightNormal, StyleItalic, goitalic.TTF},
		{WeightBold, StyleItalic, gobolditalic.TTF},
	}
	for _, src := range sources {
		f, err := opentype.Parse(src.ttf)
		if err != nil {
			logger.Fatalf("parse embedded font: %v", err)
		}
		parsed[[2]string{string(src.weight), string(src.style)}] = f
	}
}

// Face returns a cached font face for the descriptor at the given size.
func Face(desc FontDescriptor, size float64) font.Face {
	fontMu.Do(parseFonts)
	desc = desc.Normalize()
	if size < 4 {
		size = 4
	}
	key := faceKey{weight: desc.Weight, style: desc.Style, size: int(size * 10)}

	faceMu.Lock()
	defer faceMu.Unlock()
	if face, ok := faceCache[key]; ok {
		return face
	}
	base := parsed[[2]string{string(desc.Weight), string(desc.Style)}]
	face, err := opentype.NewFace(base, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		logger.Fatalf("font face: %v", err)
	}
	faceCache[key] = face
	return face
}

// TextLayout is the measured form of a text block: wrapped lines plus the
// metrics needed to position and hit-test it.
type TextLayout struct {
	Lines      []string
	Width      int
	LineHeight int
	Ascent     int
}

// Height returns the total layout height.
func (l TextLayout) Height() int {
	n := len(l.Lines)
	if n == 0 {
		n = 1
	}
	return n * l.LineHeight
}

// LayoutText wraps text at wrapWidth (0 disables wrapping) and measures it
// with the face for desc at size. Explicit newlines always break lines.
func LayoutText(text string, desc FontDescriptor, size float64, wrapWidth int) TextLayout {
	face := Face(desc, size)
	metrics := face.Metrics()
	layout := TextLayout{
		LineHeight: (metrics.Ascent + metrics.Descent).Ceil(),
		Ascent:     metrics.Ascent.Ceil(),
	}

	measure := func(s string) int {
		return font.MeasureString(face, s).Ceil()
	}

	for _, paragraph := range strings.Split(text, "\n") {
		if wrapWidth <= 0 || measure(paragraph) <= wrapWidth {
			layout.Lines = append(layout.Lines, paragraph)
			continue
		}
		layout.Lines = append(layout.Lines, wrapParagraph(paragraph, wrapWidth, measure)...)
	}
	for _, line := range layout.Lines {
		if w := measure(line); w > layout.Width {
			layout.Width = w
		}
	}
	return layout
}

// wrapParagraph greedily packs words into lines no wider than wrapWidth.
// A single word wider than the limit gets its own overflowing line rather
// than being split mid-word.
func wrapParagraph(paragraph string, wrapWidth int, measure func(string) int) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{paragraph}
	}
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) <= wrapWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
