package editor

import (
	"github.com/gdamore/tcell/v2"

	"github.com/fathomedit/fathom/internal/engine/buffer"
	"github.com/fathomedit/fathom/internal/syntax"
)

// ViewCache is the derived render state for one buffer revision: the
// flattened text, a byte offset per line start, the widest line width in
// characters, and one highlight color per byte.
type ViewCache struct {
	revision buffer.Revision
	built    bool

	text         string
	lineOffsets  []int
	maxLineWidth int
	colors       []tcell.Color
}

// Sync rebuilds the cache if the buffer has moved past the revision the
// cache was built at. Returns true if a rebuild happened.
func (v *ViewCache) Sync(buf *buffer.Buffer, lang syntax.Language, theme *syntax.Theme) bool {
	rev := buf.Revision()
	if v.built && rev == v.revision {
		return false
	}

	v.text = buf.Text()
	v.lineOffsets = scanLineOffsets(v.text)
	v.maxLineWidth = scanMaxLineWidth(v.text)
	v.colors = syntax.HighlightAll(v.text, lang, theme)
	v.revision = rev
	v.built = true
	return true
}

// Invalidate forces the next Sync to rebuild. Used when something other
// than the buffer changes the render inputs, such as a language switch.
func (v *ViewCache) Invalidate() {
	v.built = false
}

// scanLineOffsets records the byte offset of every line start: zero,
// then one past each newline.
func scanLineOffsets(text string) []int {
	offsets := make([]int, 1, 64)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// scanMaxLineWidth returns the character count of the widest line,
// counting only UTF-8 lead bytes so multi-byte runes count once.
func scanMaxLineWidth(text string) int {
	maxWidth, width := 0, 0
	for i := 0; i < len(text); i++ {
		b := text[i]
		if b == '\n' {
			if width > maxWidth {
				maxWidth = width
			}
			width = 0
			continue
		}
		if b < 0x80 || b >= 0xC0 {
			width++
		}
	}
	if width > maxWidth {
		maxWidth = width
	}
	return maxWidth
}

// LineCount returns the number of lines in the cached text.
func (v *ViewCache) LineCount() int {
	return len(v.lineOffsets)
}

// MaxLineWidth returns the character width of the widest line.
func (v *ViewCache) MaxLineWidth() int {
	return v.maxLineWidth
}

// lineRange returns the byte range of line i, excluding its newline.
func (v *ViewCache) lineRange(i int) (start, end int) {
	if i < 0 || i >= len(v.lineOffsets) {
		return 0, 0
	}
	start = v.lineOffsets[i]
	if i+1 < len(v.lineOffsets) {
		return start, v.lineOffsets[i+1] - 1
	}
	return start, len(v.text)
}

// Line returns the text of line i without its newline.
func (v *ViewCache) Line(i int) string {
	start, end := v.lineRange(i)
	return v.text[start:end]
}

// LineColors returns the per-byte colors of line i, or nil when the
// text is unhighlighted.
func (v *ViewCache) LineColors(i int) []tcell.Color {
	if v.colors == nil {
		return nil
	}
	start, end := v.lineRange(i)
	return v.colors[start:end]
}
