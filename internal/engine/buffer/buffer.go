package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/fathomedit/fathom/internal/engine/rope"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// Buffer wraps a Rope with revision tracking. All methods are thread-safe;
// the underlying rope is immutable, so snapshots share structure with the
// live buffer at no cost.
type Buffer struct {
	mu       sync.RWMutex
	rope     rope.Rope
	saved    rope.Rope
	revision Revision
	tabWidth int
}

// New creates a new empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		rope:     rope.New(),
		saved:    rope.New(),
		tabWidth: 4,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// FromString creates a buffer with initial content. Line endings are
// normalized to LF.
func FromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.rope = rope.FromString(normalizeLineEndings(s))
	b.saved = b.rope
	return b
}

// FromReader creates a buffer from an io.Reader.
func FromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read everything up front so CRLF sequences split across read
	// boundaries normalize correctly.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	b := New(opts...)
	b.rope = rope.FromString(normalizeLineEndings(string(data)))
	b.saved = b.rope
	return b, nil
}

// normalizeLineEndings converts CRLF and bare CR to LF. The buffer stores
// LF internally regardless of the on-disk style.
func normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.String()
}

// TextRange returns text in the given character range.
func (b *Buffer) TextRange(start, end int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.Slice(start, end)
}

// Len returns the total length of the buffer in characters.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.Len()
}

// ByteLen returns the total length of the buffer in bytes.
func (b *Buffer) ByteLen() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.ByteLen()
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineCount()
}

// Line returns the text of a specific line without its newline.
func (b *Buffer) Line(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.Line(line)
}

// LineLen returns the length of a line in characters, excluding the newline.
func (b *Buffer) LineLen(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineLen(line)
}

// LineToChar returns the character offset of the start of a line.
func (b *Buffer) LineToChar(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineToChar(line)
}

// LineAt returns the line containing the given character offset.
func (b *Buffer) LineAt(charIdx int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineAt(charIdx)
}

// PointOf converts a character offset to a (line, column) pair.
func (b *Buffer) PointOf(charIdx int) (line, col int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.PointOf(charIdx)
}

// CharAt returns the character at the given offset.
func (b *Buffer) CharAt(charIdx int) (rune, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.CharAt(charIdx)
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.IsEmpty()
}

// Write Operations

// Insert inserts text at the given character offset and returns the
// offset just past the inserted text.
func (b *Buffer) Insert(charIdx int, text string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if charIdx < 0 || charIdx > b.rope.Len() {
		return 0, ErrOffsetOutOfRange
	}

	text = normalizeLineEndings(text)
	before := b.rope.Len()
	b.rope = b.rope.Insert(charIdx, text)
	b.revision++

	return charIdx + (b.rope.Len() - before), nil
}

// Delete removes text in the given character range.
func (b *Buffer) Delete(start, end int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > b.rope.Len() {
		return ErrRangeInvalid
	}
	if start == end {
		return nil
	}

	b.rope = b.rope.Delete(start, end)
	b.revision++

	return nil
}

// Replace replaces text in the given range with new text and returns the
// offset just past the replacement.
func (b *Buffer) Replace(start, end int, text string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > b.rope.Len() {
		return 0, ErrRangeInvalid
	}

	text = normalizeLineEndings(text)
	r := b.rope
	if start < end {
		r = r.Delete(start, end)
	}
	before := r.Len()
	b.rope = r.Insert(start, text)
	b.revision++

	return start + (b.rope.Len() - before), nil
}

// Buffer State

// Revision returns the current revision. The counter increases by at
// least one for every completed edit and never decreases.
func (b *Buffer) Revision() Revision {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// IsModified reports whether the buffer content differs from the last
// saved content. The comparison is by content, not by edit count: an
// edit sequence that lands back on the saved text reads as clean.
func (b *Buffer) IsModified() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.rope.ByteLen() != b.saved.ByteLen() {
		return true
	}
	return b.rope.String() != b.saved.String()
}

// MarkSaved records the current content as the on-disk state. The rope
// is immutable, so holding it costs nothing beyond the reference.
func (b *Buffer) MarkSaved() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saved = b.rope
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// Snapshot returns a read-only snapshot of the current buffer state.
// Safe for concurrent access from other goroutines.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return &Snapshot{
		rope:     b.rope, // immutable, safe to share
		revision: b.revision,
		tabWidth: b.tabWidth,
	}
}

// SavedSnapshot returns a read-only snapshot of the last saved content.
// Parked sessions hold it next to the live snapshot so a restored tab
// keeps an accurate modified state.
func (b *Buffer) SavedSnapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return &Snapshot{
		rope:     b.saved,
		revision: b.revision,
		tabWidth: b.tabWidth,
	}
}

// Restore replaces the buffer with previously taken live and saved
// snapshots, keeping the revision counter monotonic. The live snapshot's
// tab width is adopted.
func (b *Buffer) Restore(live, saved *Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.rope = live.rope
	b.saved = saved.rope
	b.tabWidth = live.tabWidth
	b.revision++
}
