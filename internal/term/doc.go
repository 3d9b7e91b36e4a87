// Package term hosts the particle background in a terminal using the
// Bubble Tea framework:
//
//   - [Canvas]: braille sub-pixel surface with per-cell colour blending
//   - [Model]: bubbletea program mapping resize, focus and mouse events
//     onto the background
//   - Theme selection with 5 built-in palettes
//
// One terminal cell is 2x4 sub-pixels, so an 80x24 terminal is a
// 160x96 viewport. Losing terminal focus counts as the page being hidden.
//
// # Key Bindings
//
//	T - Cycle color themes
//	? - Toggle the status line
//	Q - Quit
package term
