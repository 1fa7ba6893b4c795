package syntax

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/gdamore/tcell/v2"
)

// HighlightAll colors a whole source text, returning one color per byte.
// LangNone, empty source, and lexer failures all yield nil, which the
// render layer treats as unhighlighted.
func HighlightAll(src string, lang Language, theme *Theme) []tcell.Color {
	if lang == LangNone || src == "" {
		return nil
	}
	if lang == LangMarkdown {
		return highlightMarkdown(src, theme)
	}
	return highlightPlain(src, lang, theme)
}

// highlightPlain runs one lexer over the whole text.
func highlightPlain(src string, lang Language, theme *Theme) []tcell.Color {
	lx := lang.lexer()
	if lx == nil {
		return nil
	}

	it, err := lx.Tokenise(nil, src)
	if err != nil {
		return nil
	}

	colors := make([]tcell.Color, len(src))
	for i := range colors {
		colors[i] = theme.Foreground
	}

	pos := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		c := theme.ColorFor(tok.Type)
		for i := 0; i < len(tok.Value) && pos < len(colors); i++ {
			colors[pos] = c
			pos++
		}
	}
	return colors
}
