package syntax

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// fencedBlock is a byte range of fenced code and the language named by
// the fence info string.
type fencedBlock struct {
	start int // first byte of the block body
	end   int // one past the last byte of the body
	lang  Language
}

// highlightMarkdown colors markdown with the markdown lexer, then
// overlays each fenced code block with the colors of the language its
// fence names. Fences naming unknown languages keep the base colors.
func highlightMarkdown(src string, theme *Theme) []tcell.Color {
	colors := highlightPlain(src, LangMarkdown, theme)
	if colors == nil {
		return nil
	}

	for _, blk := range findFencedBlocks(src) {
		body := src[blk.start:blk.end]
		inner := highlightPlain(body, blk.lang, theme)
		if inner != nil {
			copy(colors[blk.start:blk.end], inner)
		}
	}
	return colors
}

// findFencedBlocks scans for ``` and ~~~ fences. A block opens at a line
// starting with a fence marker followed by an info string that resolves
// via Lookup, and closes at the next line starting with the same marker.
// An unclosed fence runs to the end of the text.
func findFencedBlocks(src string) []fencedBlock {
	var blocks []fencedBlock

	var open *fencedBlock
	var marker string

	pos := 0
	for pos <= len(src) {
		lineEnd := strings.IndexByte(src[pos:], '\n')
		var next int
		var line string
		if lineEnd < 0 {
			line = src[pos:]
			next = len(src) + 1
		} else {
			line = src[pos : pos+lineEnd]
			next = pos + lineEnd + 1
		}

		trimmed := strings.TrimLeft(line, " \t")
		if open == nil {
			for _, m := range []string{"```", "~~~"} {
				if !strings.HasPrefix(trimmed, m) {
					continue
				}
				info := strings.TrimSpace(strings.TrimLeft(trimmed, string(m[0])))
				if lang, ok := Lookup(info); ok && lang != LangMarkdown {
					open = &fencedBlock{start: next, lang: lang}
					marker = m
				}
				break
			}
		} else if strings.HasPrefix(trimmed, marker) {
			open.end = pos
			if open.end > open.start {
				blocks = append(blocks, *open)
			}
			open = nil
		}

		pos = next
	}

	if open != nil && len(src) > open.start {
		open.end = len(src)
		blocks = append(blocks, *open)
	}
	return blocks
}
