package term

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = rune(0x2800)

type cell struct {
	ink   colorful.Color
	inked bool
	stamp uint64
}

// Canvas is a braille surface. Its pixel size is (Cols*2) x (Rows*4);
// each character cell carries one blended colour.
type Canvas struct {
	Cols, Rows int
	Grid       [][]rune

	cells   [][]cell
	bg      colorful.Color
	theme   Theme
	visible bool
	stamp   uint64
}

func NewCanvas(cols, rows int, theme Theme) *Canvas {
	c := &Canvas{visible: true}
	c.SetTheme(theme)
	c.resizeCells(cols, rows)
	return c
}

func (c *Canvas) SetTheme(t Theme) {
	c.theme = t
	bg, err := colorful.Hex(string(t.Background))
	if err != nil {
		bg = colorful.Color{}
	}
	c.bg = bg
}

func (c *Canvas) Theme() Theme { return c.theme }

// SetSize takes the size in sub-pixels and rounds up to whole cells.
func (c *Canvas) SetSize(width, height int) {
	c.resizeCells((width+1)/2, (height+3)/4)
}

func (c *Canvas) resizeCells(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c.Cols, c.Rows = cols, rows
	c.Grid = make([][]rune, rows)
	c.cells = make([][]cell, rows)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, cols)
		c.cells[i] = make([]cell, cols)
	}
	c.Clear()
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.cells[i][j] = cell{}
		}
	}
}

func (c *Canvas) SetVisible(visible bool) { c.visible = visible }
func (c *Canvas) Visible() bool           { return c.visible }

// Set sets a sub-pixel and tints its cell with col at the given alpha.
func (c *Canvas) Set(x, y int, col colorful.Color, alpha float64) {
	if x < 0 || y < 0 {
		return
	}
	cx, row := x/2, y/4
	if cx >= c.Cols || row >= c.Rows {
		return
	}
	c.Grid[row][cx] |= rune(pixelMap[y%4][x%2])

	ce := &c.cells[row][cx]
	if ce.stamp == c.stamp {
		return
	}
	base := c.bg
	if ce.inked {
		base = ce.ink
	}
	ce.ink = base.BlendRgb(col, alpha)
	ce.inked = true
	ce.stamp = c.stamp
}

func (c *Canvas) FillCircle(x, y, r float64, fill color.Color) {
	col, alpha := split(fill)
	c.stamp++

	c.Set(int(math.Floor(x)), int(math.Floor(y)), col, alpha)
	r2 := r * r
	for py := int(math.Floor(y - r)); py <= int(math.Ceil(y+r)); py++ {
		for px := int(math.Floor(x - r)); px <= int(math.Ceil(x+r)); px++ {
			dx := float64(px) + 0.5 - x
			dy := float64(py) + 0.5 - y
			if dx*dx+dy*dy <= r2 {
				c.Set(px, py, col, alpha)
			}
		}
	}
}

// StrokeLine draws a one sub-pixel wide line using Bresenham's algorithm.
func (c *Canvas) StrokeLine(x0, y0, x1, y1, _ float64, stroke color.Color) {
	col, alpha := split(stroke)
	c.stamp++

	ix0, iy0 := int(math.Floor(x0)), int(math.Floor(y0))
	ix1, iy1 := int(math.Floor(x1)), int(math.Floor(y1))
	dx := absInt(ix1 - ix0)
	dy := absInt(iy1 - iy0)
	sx := -1
	if ix0 < ix1 {
		sx = 1
	}
	sy := -1
	if iy0 < iy1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(ix0, iy0, col, alpha)
		if ix0 == ix1 && iy0 == iy1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			ix0 += sx
		}
		if e2 < dx {
			err += dx
			iy0 += sy
		}
	}
}

// inkAt returns the blended colour of a cell and whether anything was drawn there.
func (c *Canvas) inkAt(col, row int) (colorful.Color, bool) {
	if row < 0 || row >= c.Rows || col < 0 || col >= c.Cols {
		return colorful.Color{}, false
	}
	ce := c.cells[row][col]
	return ce.ink, ce.inked
}

func (c *Canvas) String() string {
	if !c.visible {
		return ""
	}
	var b strings.Builder
	base := lipgloss.NewStyle().Background(c.theme.Background)
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.cells[i][j].ink == c.cells[i][start].ink && c.cells[i][j].inked == c.cells[i][start].inked {
				continue
			}
			style := base
			if ce := c.cells[i][start]; ce.inked {
				style = style.Foreground(lipgloss.Color(ce.ink.Clamped().Hex()))
			}
			b.WriteString(style.Render(string(row[start:j])))
			start = j
		}
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// split separates a colour into its opaque RGB and alpha in [0, 1].
func split(c color.Color) (colorful.Color, float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	col := colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}
	return col, float64(n.A) / 255
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
