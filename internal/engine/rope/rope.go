// Package rope implements an immutable rope data structure for efficient
// text storage. All public offsets are character (rune) offsets, which is
// what editor cursor arithmetic works in; byte offsets never leak out.
// Operations return new Rope values; the original is never modified. This
// enables cheap snapshots for parked editing sessions.
package rope

import "strings"

// Rope is an immutable character-indexed rope.
type Rope struct {
	root *node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

// buildFromChunks builds a balanced rope from a slice of chunks.
func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	var leaves []*node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := i + MaxChunksPerLeaf
		if end > len(chunks) {
			end = len(chunks)
		}
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, newLeafNodeWithChunks(leafChunks))
	}

	nodes := leaves
	for len(nodes) > 1 {
		var parents []*node
		for i := 0; i < len(nodes); i += MaxChildren {
			end := i + MaxChildren
			if end > len(nodes) {
				end = len(nodes)
			}
			children := make([]*node, end-i)
			copy(children, nodes[i:end])
			parents = append(parents, newInternalNode(children))
		}
		nodes = parents
	}

	return Rope{root: nodes[0]}
}

// Len returns the total character count.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Chars
}

// ByteLen returns the total byte length of the text.
func (r Rope) ByteLen() int {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Bytes
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.summary.Lines + 1
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// String returns the full text as a string. Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}

	var sb strings.Builder
	sb.Grow(r.ByteLen())
	r.root.appendTo(&sb)
	return sb.String()
}

// EachChunk visits the rope's text chunks in document order until fn
// returns false. This is the allocation-free way to flatten the rope.
func (r Rope) EachChunk(fn func(s string) bool) {
	if r.root == nil {
		return
	}
	r.root.eachChunk(fn)
}

// Slice returns the text in the character range [start, end).
func (r Rope) Slice(start, end int) string {
	if r.root == nil || start >= end {
		return ""
	}
	if start < 0 {
		start = 0
	}
	if end > r.Len() {
		end = r.Len()
	}

	var sb strings.Builder
	r.root.appendCharRange(&sb, start, end)
	return sb.String()
}

// CharAt returns the character at the given offset.
// Returns 0 and false if the offset is out of range.
func (r Rope) CharAt(charIdx int) (rune, bool) {
	if r.root == nil || charIdx < 0 || charIdx >= r.Len() {
		return 0, false
	}

	n := r.root
	for !n.isLeaf() {
		idx, childOff := n.findChildByChar(charIdx)
		n = n.children[idx]
		charIdx = childOff
	}

	for _, chunk := range n.chunks {
		chunkChars := chunk.Chars()
		if charIdx < chunkChars {
			for _, ch := range chunk.String() {
				if charIdx == 0 {
					return ch, true
				}
				charIdx--
			}
		}
		charIdx -= chunkChars
	}

	return 0, false
}

// findChildByChar finds the child containing the given character offset.
// Returns the child index and the offset within that child.
func (n *node) findChildByChar(charOff int) (int, int) {
	current := 0
	for i, summary := range n.childSummaries {
		if current+summary.Chars > charOff {
			return i, charOff - current
		}
		current += summary.Chars
	}

	lastIdx := len(n.children) - 1
	return lastIdx, charOff - (n.summary.Chars - n.childSummaries[lastIdx].Chars)
}

// Insert inserts text at the given character offset.
// Out-of-range offsets are clamped; callers are expected to clamp first.
func (r Rope) Insert(charIdx int, text string) Rope {
	if len(text) == 0 {
		return r
	}

	if r.root == nil || r.Len() == 0 {
		return FromString(text)
	}

	if charIdx <= 0 {
		return FromString(text).Concat(r)
	}
	if charIdx >= r.Len() {
		return r.Concat(FromString(text))
	}

	left, right := r.Split(charIdx)
	return left.Concat(FromString(text)).Concat(right)
}

// Delete removes text in the character range [start, end).
func (r Rope) Delete(start, end int) Rope {
	if r.root == nil || start >= end {
		return r
	}

	ropeLen := r.Len()
	if start < 0 {
		start = 0
	}
	if start >= ropeLen {
		return r
	}
	if end > ropeLen {
		end = ropeLen
	}

	if start == 0 && end >= ropeLen {
		return New()
	}
	if start == 0 {
		_, right := r.Split(end)
		return right
	}
	if end >= ropeLen {
		left, _ := r.Split(start)
		return left
	}

	left, temp := r.Split(start)
	_, right := temp.Split(end - start)

	return left.Concat(right)
}

// Split splits the rope at a character offset, returning two ropes.
func (r Rope) Split(charIdx int) (Rope, Rope) {
	if r.root == nil || charIdx <= 0 {
		return New(), r
	}
	if charIdx >= r.Len() {
		return r, New()
	}

	leftRoot, rightRoot := r.root.split(charIdx)
	return Rope{root: leftRoot}, Rope{root: rightRoot}
}

// Concat concatenates two ropes.
func (r Rope) Concat(other Rope) Rope {
	if r.root == nil || r.Len() == 0 {
		return other
	}
	if other.root == nil || other.Len() == 0 {
		return r
	}

	return Rope{root: concatNodes(r.root, other.root)}
}

// LineToChar returns the character offset of the start of the given line.
// Lines are 0-indexed. Out-of-range lines return the rope length.
func (r Rope) LineToChar(line int) int {
	if r.root == nil || line <= 0 {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}

	n := r.root
	chars := 0
	remaining := line // newlines still to skip

	for !n.isLeaf() {
		next := -1
		for i, summary := range n.childSummaries {
			if summary.Lines >= remaining {
				next = i
				break
			}
			remaining -= summary.Lines
			chars += summary.Chars
		}
		if next < 0 {
			// Summaries cover all newlines; unreachable with a consistent tree.
			return r.Len()
		}
		n = n.children[next]
	}

	for _, chunk := range n.chunks {
		summary := chunk.Summary()
		if summary.Lines >= remaining {
			count := 0
			for _, ch := range chunk.String() {
				count++
				if ch == '\n' {
					remaining--
					if remaining == 0 {
						return chars + count
					}
				}
			}
		}
		remaining -= summary.Lines
		chars += summary.Chars
	}

	return r.Len()
}

// LineAt returns the line index containing the given character offset.
// Offsets at or past the end return the last line.
func (r Rope) LineAt(charIdx int) int {
	if r.root == nil || charIdx <= 0 {
		return 0
	}
	if charIdx >= r.Len() {
		return r.LineCount() - 1
	}

	n := r.root
	lines := 0

	for !n.isLeaf() {
		next := -1
		for i, summary := range n.childSummaries {
			if summary.Chars > charIdx {
				next = i
				break
			}
			charIdx -= summary.Chars
			lines += summary.Lines
		}
		if next < 0 {
			return r.LineCount() - 1
		}
		n = n.children[next]
	}

	for _, chunk := range n.chunks {
		chunkChars := chunk.Chars()
		if chunkChars > charIdx {
			for _, ch := range chunk.String() {
				if charIdx == 0 {
					break
				}
				charIdx--
				if ch == '\n' {
					lines++
				}
			}
			return lines
		}
		charIdx -= chunkChars
		lines += chunk.Summary().Lines
	}

	return lines
}

// PointOf converts a character offset to a (line, column) pair,
// both 0-indexed, with the column in characters.
func (r Rope) PointOf(charIdx int) (line, col int) {
	if charIdx <= 0 {
		return 0, 0
	}
	if charIdx > r.Len() {
		charIdx = r.Len()
	}

	line = r.LineAt(charIdx)
	col = charIdx - r.LineToChar(line)
	return line, col
}

// LineLen returns the character length of the given line, excluding the
// trailing newline.
func (r Rope) LineLen(line int) int {
	if r.root == nil || line < 0 || line >= r.LineCount() {
		return 0
	}

	start := r.LineToChar(line)
	var end int
	if line == r.LineCount()-1 {
		end = r.Len()
	} else {
		end = r.LineToChar(line+1) - 1 // exclude the newline
	}
	return end - start
}

// Line returns the text of the given line, excluding the trailing newline.
func (r Rope) Line(line int) string {
	if r.root == nil || line < 0 || line >= r.LineCount() {
		return ""
	}

	start := r.LineToChar(line)
	return r.Slice(start, start+r.LineLen(line))
}

// Height returns the height of the rope tree. Useful for balance tests.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}
