package editor

import "github.com/gdamore/tcell/v2"

// Span is a run of same-colored text within one rendered line.
type Span struct {
	Text  string
	Color tcell.Color
}

// BuildSpans lays out one line for display: skip the first `skip`
// characters (horizontal scroll), take at most `width` characters, and
// group adjacent same-colored characters into spans. colors holds one
// color per byte of line; a nil colors slice renders the whole line in
// fallback.
func BuildSpans(line string, colors []tcell.Color, skip, width int, fallback tcell.Color) []Span {
	if width <= 0 {
		return nil
	}

	var spans []Span
	runStart := -1
	runColor := fallback
	taken := 0
	charIdx := 0

	flush := func(end int) {
		if runStart >= 0 && end > runStart {
			spans = append(spans, Span{Text: line[runStart:end], Color: runColor})
		}
		runStart = -1
	}

	for byteIdx := range line {
		if charIdx < skip {
			charIdx++
			continue
		}
		if taken >= width {
			flush(byteIdx)
			return spans
		}

		c := fallback
		if colors != nil && byteIdx < len(colors) {
			c = colors[byteIdx]
		}
		if runStart < 0 {
			runStart = byteIdx
			runColor = c
		} else if c != runColor {
			flush(byteIdx)
			runStart = byteIdx
			runColor = c
		}

		charIdx++
		taken++
	}
	flush(len(line))
	return spans
}
