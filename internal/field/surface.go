package field

import "image/color"

// Surface is the drawing target. Resizing a surface clears it.
type Surface interface {
	SetSize(width, height int)
	Clear()
	FillCircle(x, y, r float64, c color.Color)
}

// LineSurface is a Surface that can also stroke straight lines.
type LineSurface interface {
	Surface
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
}

// Effect is one way of animating a background. The classic Renderer and
// the linked constellation are interchangeable behind it.
type Effect interface {
	Resize(width, height int)
	Init()
	Frame()
	SetPaused(paused bool)
	Paused() bool
}
