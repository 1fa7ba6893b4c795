package rope

import "strings"

// Tree structure constants.
const (
	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// node is a node in the rope B+ tree.
// Leaf nodes (height == 0) hold text chunks; internal nodes hold children.
// All offsets used when descending the tree are character offsets.
type node struct {
	height  uint8
	summary TextSummary

	// Internal node fields (height > 0).
	children       []*node
	childSummaries []TextSummary

	// Leaf node fields (height == 0).
	chunks []Chunk
}

func newLeafNode() *node {
	return &node{
		height: 0,
		chunks: make([]Chunk, 0, MaxChunksPerLeaf),
	}
}

func newLeafNodeWithChunks(chunks []Chunk) *node {
	n := &node{
		height: 0,
		chunks: chunks,
	}
	n.recomputeSummary()
	return n
}

func newInternalNode(children []*node) *node {
	if len(children) == 0 {
		return newLeafNode()
	}

	height := children[0].height + 1
	summaries := make([]TextSummary, len(children))
	total := TextSummary{Flags: FlagASCII}

	for i, child := range children {
		summaries[i] = child.summary
		total = total.Add(child.summary)
	}

	return &node{
		height:         height,
		summary:        total,
		children:       children,
		childSummaries: summaries,
	}
}

func (n *node) isLeaf() bool {
	return n.height == 0
}

func (n *node) chars() int {
	return n.summary.Chars
}

func (n *node) recomputeSummary() {
	n.summary = TextSummary{Flags: FlagASCII}
	if n.isLeaf() {
		for _, chunk := range n.chunks {
			n.summary = n.summary.Add(chunk.Summary())
		}
		return
	}

	n.childSummaries = make([]TextSummary, len(n.children))
	for i, child := range n.children {
		n.childSummaries[i] = child.summary
		n.summary = n.summary.Add(child.summary)
	}
}

func (n *node) clone() *node {
	if n.isLeaf() {
		chunks := make([]Chunk, len(n.chunks))
		copy(chunks, n.chunks)
		return &node{
			height:  0,
			summary: n.summary,
			chunks:  chunks,
		}
	}

	children := make([]*node, len(n.children))
	copy(children, n.children)
	summaries := make([]TextSummary, len(n.childSummaries))
	copy(summaries, n.childSummaries)

	return &node{
		height:         n.height,
		summary:        n.summary,
		children:       children,
		childSummaries: summaries,
	}
}

// appendTo appends all text in this subtree to the builder.
func (n *node) appendTo(sb *strings.Builder) {
	if n.isLeaf() {
		for _, chunk := range n.chunks {
			sb.WriteString(chunk.String())
		}
		return
	}

	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// eachChunk visits chunks in order until fn returns false.
func (n *node) eachChunk(fn func(s string) bool) bool {
	if n.isLeaf() {
		for _, chunk := range n.chunks {
			if !fn(chunk.String()) {
				return false
			}
		}
		return true
	}

	for _, child := range n.children {
		if !child.eachChunk(fn) {
			return false
		}
	}
	return true
}

// appendCharRange appends text in the character range [start, end) to sb.
func (n *node) appendCharRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}

	if n.isLeaf() {
		offset := 0
		for _, chunk := range n.chunks {
			chunkChars := chunk.Chars()
			chunkEnd := offset + chunkChars

			if chunkEnd <= start {
				offset = chunkEnd
				continue
			}
			if offset >= end {
				break
			}

			sliceStart := 0
			if start > offset {
				sliceStart = start - offset
			}
			sliceEnd := chunkChars
			if end < chunkEnd {
				sliceEnd = end - offset
			}

			text := chunk.String()
			if chunk.Summary().Flags&FlagASCII != 0 {
				sb.WriteString(text[sliceStart:sliceEnd])
			} else {
				bs := byteIndexOfChar(text, sliceStart)
				be := byteIndexOfChar(text, sliceEnd)
				sb.WriteString(text[bs:be])
			}
			offset = chunkEnd
		}
		return
	}

	offset := 0
	for i, child := range n.children {
		childChars := n.childSummaries[i].Chars
		childEnd := offset + childChars

		if childEnd <= start {
			offset = childEnd
			continue
		}
		if offset >= end {
			break
		}

		childStart := 0
		if start > offset {
			childStart = start - offset
		}
		childEndAdj := childChars
		if end < childEnd {
			childEndAdj = end - offset
		}

		child.appendCharRange(sb, childStart, childEndAdj)
		offset = childEnd
	}
}

// split splits the node at the given character offset.
func (n *node) split(charOff int) (*node, *node) {
	if charOff <= 0 {
		return newLeafNode(), n.clone()
	}
	if charOff >= n.chars() {
		return n.clone(), newLeafNode()
	}

	if n.isLeaf() {
		return n.splitLeaf(charOff)
	}
	return n.splitInternal(charOff)
}

func (n *node) splitLeaf(charOff int) (*node, *node) {
	var leftChunks, rightChunks []Chunk
	current := 0

	for _, chunk := range n.chunks {
		chunkChars := chunk.Chars()

		switch {
		case current+chunkChars <= charOff:
			leftChunks = append(leftChunks, chunk)
		case current >= charOff:
			rightChunks = append(rightChunks, chunk)
		default:
			left, right := chunk.SplitChars(charOff - current)
			if !left.IsEmpty() {
				leftChunks = append(leftChunks, left)
			}
			if !right.IsEmpty() {
				rightChunks = append(rightChunks, right)
			}
		}
		current += chunkChars
	}

	return newLeafNodeWithChunks(leftChunks), newLeafNodeWithChunks(rightChunks)
}

func (n *node) splitInternal(charOff int) (*node, *node) {
	var leftChildren, rightChildren []*node
	current := 0

	for i, child := range n.children {
		childChars := n.childSummaries[i].Chars

		switch {
		case current+childChars <= charOff:
			leftChildren = append(leftChildren, child)
		case current >= charOff:
			rightChildren = append(rightChildren, child)
		default:
			leftChild, rightChild := child.split(charOff - current)
			if leftChild.chars() > 0 {
				leftChildren = append(leftChildren, leftChild)
			}
			if rightChild.chars() > 0 {
				rightChildren = append(rightChildren, rightChild)
			}
		}
		current += childChars
	}

	return buildNodeFromChildren(leftChildren), buildNodeFromChildren(rightChildren)
}

// buildNodeFromChildren creates a balanced tree from a list of child nodes.
func buildNodeFromChildren(children []*node) *node {
	if len(children) == 0 {
		return newLeafNode()
	}
	if len(children) == 1 {
		return children[0]
	}
	if len(children) <= MaxChildren {
		return newInternalNode(children)
	}

	var parents []*node
	for i := 0; i < len(children); i += MaxChildren {
		end := i + MaxChildren
		if end > len(children) {
			end = len(children)
		}
		parents = append(parents, newInternalNode(children[i:end]))
	}

	return buildNodeFromChildren(parents)
}

// concatNodes concatenates two nodes.
func concatNodes(left, right *node) *node {
	if left == nil || left.chars() == 0 {
		if right == nil {
			return newLeafNode()
		}
		return right
	}
	if right == nil || right.chars() == 0 {
		return left
	}

	if left.isLeaf() && right.isLeaf() {
		return concatLeaves(left, right)
	}

	for left.height < right.height {
		left = newInternalNode([]*node{left})
	}
	for right.height < left.height {
		right = newInternalNode([]*node{right})
	}

	return mergeNodes(left, right)
}

func concatLeaves(left, right *node) *node {
	totalChunks := len(left.chunks) + len(right.chunks)

	if totalChunks <= MaxChunksPerLeaf {
		chunks := make([]Chunk, 0, totalChunks)
		chunks = append(chunks, left.chunks...)
		chunks = append(chunks, right.chunks...)
		return newLeafNodeWithChunks(chunks)
	}

	return newInternalNode([]*node{left.clone(), right.clone()})
}

func mergeNodes(left, right *node) *node {
	if left.isLeaf() {
		return concatLeaves(left, right)
	}

	allChildren := make([]*node, 0, len(left.children)+len(right.children))
	allChildren = append(allChildren, left.children...)
	allChildren = append(allChildren, right.children...)

	if len(allChildren) <= MaxChildren {
		return newInternalNode(allChildren)
	}

	return buildNodeFromChildren(allChildren)
}
