package imaging

import (
	"image"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"
)

// pixelsPerCellX and pixelsPerCellY are the pixel dimensions one
// terminal cell represents with the half-block glyph: one column of
// pixels horizontally, two rows vertically.
const (
	pixelsPerCellX = 1
	pixelsPerCellY = 2
)

// Cell is one rendered terminal cell of an image frame. The half-block
// glyph shows the upper pixel as foreground and the lower as background.
type Cell struct {
	Rune rune
	Fg   tcell.Color
	Bg   tcell.Color
}

// Protocol is a renderable image: the decoded source pixels plus a cell
// frame fitted to one terminal area. The source is retained so a resize
// re-rasterizes without re-decoding.
type Protocol struct {
	src   image.Image
	cols  int
	rows  int
	cells [][]Cell
}

// newProtocol fits src into a cols×rows cell area, preserving aspect
// ratio and never upscaling, and rasterizes it to half-block cells.
func newProtocol(src image.Image, cols, rows int) *Protocol {
	p := &Protocol{src: src}
	p.render(cols, rows)
	return p
}

// render rebuilds the cell frame for a new area.
func (p *Protocol) render(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	fitW, fitH := fitInto(
		p.src.Bounds().Dx(), p.src.Bounds().Dy(),
		cols*pixelsPerCellX, rows*pixelsPerCellY,
	)

	scaled := image.NewRGBA(image.Rect(0, 0, fitW, fitH))
	scaleNearest(scaled, p.src)

	p.cols = (fitW + pixelsPerCellX - 1) / pixelsPerCellX
	p.rows = (fitH + pixelsPerCellY - 1) / pixelsPerCellY
	p.cells = make([][]Cell, p.rows)

	for y := 0; y < p.rows; y++ {
		row := make([]Cell, p.cols)
		for x := 0; x < p.cols; x++ {
			top := pixelColor(scaled, x, y*2)
			bottom := pixelColor(scaled, x, y*2+1)
			row[x] = Cell{Rune: '▀', Fg: top, Bg: bottom}
		}
		p.cells[y] = row
	}
}

// Size returns the frame dimensions in cells.
func (p *Protocol) Size() (cols, rows int) {
	return p.cols, p.rows
}

// Cell returns the rendered cell at (x, y).
func (p *Protocol) Cell(x, y int) Cell {
	if y < 0 || y >= p.rows || x < 0 || x >= len(p.cells[y]) {
		return Cell{Rune: ' '}
	}
	return p.cells[y][x]
}

// fitInto scales (w, h) to fit inside (maxW, maxH) preserving aspect
// ratio. Dimensions already inside the box are kept; this never
// upscales.
func fitInto(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 1, 1
	}
	if w <= maxW && h <= maxH {
		return w, h
	}

	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	fw := int(float64(w) * scale)
	fh := int(float64(h) * scale)
	if fw < 1 {
		fw = 1
	}
	if fh < 1 {
		fh = 1
	}
	return fw, fh
}

func scaleNearest(dst *image.RGBA, src image.Image) {
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
}

func pixelColor(img *image.RGBA, x, y int) tcell.Color {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return tcell.ColorDefault
	}
	c := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
