package cursor

import "github.com/mattn/go-runewidth"

// DisplayCol returns the display column of the given character column in
// line. Tabs advance to the next tab stop; wide runes occupy two cells.
func DisplayCol(line string, col, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}

	width := 0
	i := 0
	for _, r := range line {
		if i >= col {
			break
		}
		width += cellWidth(r, width, tabWidth)
		i++
	}
	return width
}

// ColFromDisplay maps a display column back to a character column in
// line. Columns that land inside a wide rune or a tab resolve to that
// character; columns past the end of the line resolve to line length.
func ColFromDisplay(line string, displayCol, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}

	width := 0
	col := 0
	for _, r := range line {
		w := cellWidth(r, width, tabWidth)
		if displayCol < width+w {
			return col
		}
		width += w
		col++
	}
	return col
}

// LineWidth returns the full display width of line.
func LineWidth(line string, tabWidth int) int {
	return DisplayCol(line, len([]rune(line)), tabWidth)
}

func cellWidth(r rune, atWidth, tabWidth int) int {
	if r == '\t' {
		return tabWidth - atWidth%tabWidth
	}
	w := runewidth.RuneWidth(r)
	if w == 0 {
		// combining marks and other zero-width runes still need a cell
		// to be addressable
		return 1
	}
	return w
}
