// Package core provides fundamental types and utilities for the arcade platform.
// It contains no UI dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned rectangle of screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks the rectangle by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return NewRect(r.X+n, r.Y+n, Max(0, r.W-2*n), Max(0, r.H-2*n))
}

// Viewport maps a world rectangle centered at the origin (Y up) onto a
// screen rectangle (Y down).
type Viewport struct {
	HalfW, HalfH float64 // world half extents
	Cells        Rect    // destination cells
}

// Project converts a world point to a cell. ok is false when the point
// falls outside the destination rectangle.
func (v Viewport) Project(x, y float64) (cx, cy int, ok bool) {
	if v.HalfW <= 0 || v.HalfH <= 0 || v.Cells.W <= 0 || v.Cells.H <= 0 {
		return 0, 0, false
	}
	u := (x + v.HalfW) / (2 * v.HalfW) // 0 at left wall, 1 at right wall
	w := (v.HalfH - y) / (2 * v.HalfH) // 0 at top wall, 1 at bottom wall
	cx = v.Cells.X + int(math.Floor(u*float64(v.Cells.W-1)+0.5))
	cy = v.Cells.Y + int(math.Floor(w*float64(v.Cells.H-1)+0.5))
	return cx, cy, v.Cells.Contains(cx, cy)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
