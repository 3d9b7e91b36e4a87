// Package surface provides an in-memory drawing surface that records
// draw calls, for headless runs and benchmarks.
package surface

import "image/color"

type Circle struct {
	X, Y, R float64
	Color   color.Color
}

type Line struct {
	X0, Y0, X1, Y1 float64
	Width          float64
	Color          color.Color
}

// Recorder keeps the draw calls made since the last Clear.
type Recorder struct {
	Width, Height int
	Visible       bool
	Circles       []Circle
	Lines         []Line
	Clears        int
	Resizes       int
}

func NewRecorder() *Recorder {
	return &Recorder{Visible: true}
}

func (r *Recorder) SetSize(width, height int) {
	r.Width, r.Height = width, height
	r.Resizes++
	r.reset()
}

func (r *Recorder) Clear() {
	r.Clears++
	r.reset()
}

func (r *Recorder) FillCircle(x, y, radius float64, c color.Color) {
	r.Circles = append(r.Circles, Circle{X: x, Y: y, R: radius, Color: c})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	r.Lines = append(r.Lines, Line{X0: x0, Y0: y0, X1: x1, Y1: y1, Width: width, Color: c})
}

func (r *Recorder) SetVisible(visible bool) { r.Visible = visible }

func (r *Recorder) reset() {
	r.Circles = r.Circles[:0]
	r.Lines = r.Lines[:0]
}
