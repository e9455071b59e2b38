package draw

// FontWeight selects the face weight.
type FontWeight string

// FontStyle selects the face slant.
type FontStyle string

const (
	WeightNormal FontWeight = "normal"
	WeightBold   FontWeight = "bold"

	StyleNormal FontStyle = "normal"
	StyleItalic FontStyle = "italic"
)

// FontDescriptor names a font family plus weight and style. The family is
// advisory; the raster layer maps every family onto its embedded faces.
type FontDescriptor struct {
	Family string     `json:"family"`
	Weight FontWeight `json:"weight"`
	Style  FontStyle  `json:"style"`
}

// DefaultFont is the descriptor used for new text shapes and labels.
func DefaultFont() FontDescriptor {
	return FontDescriptor{Family: "Sans", Weight: WeightNormal, Style: StyleNormal}
}

// Normalize fills zero-valued fields with defaults, for descriptors read
// from old session files.
func (f FontDescriptor) Normalize() FontDescriptor {
	if f.Family == "" {
		f.Family = "Sans"
	}
	if f.Weight != WeightBold {
		f.Weight = WeightNormal
	}
	if f.Style != StyleItalic {
		f.Style = StyleNormal
	}
	return f
}
