package input

import (
	"strings"

	"github.com/rivo/uniseg"
)

// TextBuffer is the in-memory editing buffer for text input. It is
// byte-indexed but edited by grapheme clusters so multi-byte characters
// and combining sequences delete as one unit.
type TextBuffer struct {
	content strings.Builder
}

// NewTextBuffer returns a buffer seeded with existing text, used when
// re-editing a committed shape.
func NewTextBuffer(text string) *TextBuffer {
	b := &TextBuffer{}
	b.content.WriteString(text)
	return b
}

// String returns the current contents.
func (b *TextBuffer) String() string { return b.content.String() }

// Len reports the byte length.
func (b *TextBuffer) Len() int { return b.content.Len() }

// IsEmpty reports whether nothing has been typed.
func (b *TextBuffer) IsEmpty() bool { return b.content.Len() == 0 }

// Append appends a string verbatim.
func (b *TextBuffer) Append(s string) {
	b.content.WriteString(s)
}

// AppendRune appends a printable character.
func (b *TextBuffer) AppendRune(r rune) {
	b.content.WriteRune(r)
}

// AppendNewline inserts a line break.
func (b *TextBuffer) AppendNewline() {
	b.content.WriteByte('\n')
}

// DeleteGrapheme removes the last grapheme cluster and reports whether
// anything was deleted.
func (b *TextBuffer) DeleteGrapheme() bool {
	s := b.content.String()
	if s == "" {
		return false
	}
	cut := len(s)
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if len(rest) == 0 {
			cut = len(s) - len(cluster)
		}
	}
	b.content.Reset()
	b.content.WriteString(s[:cut])
	return true
}
