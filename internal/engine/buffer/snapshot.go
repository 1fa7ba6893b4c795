package buffer

import "github.com/fathomedit/fathom/internal/engine/rope"

// Snapshot is an immutable view of a buffer at a fixed revision. Parked
// sessions hold snapshots so a reopened tab restores the exact content,
// and background consumers can read without locking the live buffer.
type Snapshot struct {
	rope     rope.Rope
	revision Revision
	tabWidth int
}

// Text returns the full snapshot content.
func (s *Snapshot) Text() string {
	return s.rope.String()
}

// TextRange returns text in the given character range.
func (s *Snapshot) TextRange(start, end int) string {
	return s.rope.Slice(start, end)
}

// Len returns the snapshot length in characters.
func (s *Snapshot) Len() int {
	return s.rope.Len()
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return s.rope.LineCount()
}

// Line returns the text of a specific line without its newline.
func (s *Snapshot) Line(line int) string {
	return s.rope.Line(line)
}

// Revision returns the revision the snapshot was taken at.
func (s *Snapshot) Revision() Revision {
	return s.revision
}

// TabWidth returns the tab width the buffer carried when snapped.
func (s *Snapshot) TabWidth() int {
	return s.tabWidth
}
