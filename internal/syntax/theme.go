package syntax

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme maps token categories to terminal colors.
type Theme struct {
	Foreground tcell.Color
	Background tcell.Color

	Keyword     tcell.Color
	Function    tcell.Color
	Type        tcell.Color
	String      tcell.Color
	Number      tcell.Color
	Constant    tcell.Color
	Comment     tcell.Color
	Operator    tcell.Color
	Punctuation tcell.Color
	Attribute   tcell.Color
	Variable    tcell.Color
}

// DefaultTheme is a dark palette tuned for 24-bit terminals.
func DefaultTheme() *Theme {
	return &Theme{
		Foreground: tcell.NewRGBColor(0xd8, 0xd8, 0xd8),
		Background: tcell.NewRGBColor(0x18, 0x18, 0x18),

		Keyword:     tcell.NewRGBColor(0xc6, 0x78, 0xdd),
		Function:    tcell.NewRGBColor(0x61, 0xaf, 0xef),
		Type:        tcell.NewRGBColor(0xe5, 0xc0, 0x7b),
		String:      tcell.NewRGBColor(0x98, 0xc3, 0x79),
		Number:      tcell.NewRGBColor(0xd1, 0x9a, 0x66),
		Constant:    tcell.NewRGBColor(0xd1, 0x9a, 0x66),
		Comment:     tcell.NewRGBColor(0x5c, 0x63, 0x70),
		Operator:    tcell.NewRGBColor(0x56, 0xb6, 0xc2),
		Punctuation: tcell.NewRGBColor(0xab, 0xb2, 0xbf),
		Attribute:   tcell.NewRGBColor(0xe0, 0x6c, 0x75),
		Variable:    tcell.NewRGBColor(0xd8, 0xd8, 0xd8),
	}
}

// ColorFor maps a chroma token type to a theme color.
func (t *Theme) ColorFor(tt chroma.TokenType) tcell.Color {
	switch {
	case tt.InCategory(chroma.Keyword):
		if tt == chroma.KeywordType {
			return t.Type
		}
		return t.Keyword
	case tt.InCategory(chroma.Comment):
		return t.Comment
	case tt.InCategory(chroma.LiteralString):
		return t.String
	case tt.InCategory(chroma.LiteralNumber):
		return t.Number
	case tt == chroma.NameFunction, tt == chroma.NameBuiltin:
		return t.Function
	case tt == chroma.NameClass, tt == chroma.NameNamespace:
		return t.Type
	case tt == chroma.NameConstant:
		return t.Constant
	case tt == chroma.NameAttribute, tt == chroma.NameTag, tt == chroma.NameDecorator:
		return t.Attribute
	case tt.InCategory(chroma.Name):
		return t.Variable
	case tt.InCategory(chroma.Operator):
		return t.Operator
	case tt.InCategory(chroma.Punctuation):
		return t.Punctuation
	case tt.InCategory(chroma.Generic):
		if tt == chroma.GenericHeading || tt == chroma.GenericSubheading {
			return t.Function
		}
		if tt == chroma.GenericEmph || tt == chroma.GenericStrong {
			return t.Type
		}
		return t.Foreground
	default:
		return t.Foreground
	}
}

// Blend mixes two terminal colors in RGB space; t=0 yields a, t=1
// yields b. Used to derive dimmed UI variants (gutter, inactive tabs)
// from the base palette.
func Blend(a, b tcell.Color, t float64) tcell.Color {
	ar, ag, ab := a.TrueColor().RGB()
	br, bg, bb := b.TrueColor().RGB()

	ca := colorful.Color{R: float64(ar) / 255, G: float64(ag) / 255, B: float64(ab) / 255}
	cb := colorful.Color{R: float64(br) / 255, G: float64(bg) / 255, B: float64(bb) / 255}
	m := ca.BlendRgb(cb, t).Clamped()

	return tcell.NewRGBColor(int32(m.R*255+0.5), int32(m.G*255+0.5), int32(m.B*255+0.5))
}
