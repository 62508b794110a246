// Package layout computes deterministic positions for stacks, rows and grids
// of normalized shape specs. Everything here is pure; callers apply the
// resulting positions to the store themselves.
package layout

import "sketchdeck-backend/internal/canvas/shapespec"

// Spacing defaults and bounds.
const (
	DefaultVerticalSpacing   = 25.0
	DefaultHorizontalSpacing = 20.0
	MinSpacing               = 0.0
	MaxSpacing               = 500.0
	MaxGridRows              = 20
	MaxGridCols              = 20
)

// Position is an absolute canvas coordinate for one shape.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Options parameterizes Vertical and Horizontal. A nil Spacing selects the
// per-axis default.
type Options struct {
	OriginX float64
	OriginY float64
	Spacing *float64
}

// GridOptions parameterizes Grid.
type GridOptions struct {
	Rows      int
	Cols      int
	OriginX   float64
	OriginY   float64
	Spacing   float64
	ShapeSize float64
}

// Vertical stacks shapes top to bottom: each shape's y is the previous y plus
// the previous shape's height plus spacing; every x is the origin x.
func Vertical(shapes []shapespec.Normalized, opts Options) []Position {
	spacing := clampSpacing(opts.Spacing, DefaultVerticalSpacing)

	positions := make([]Position, 0, len(shapes))
	y := opts.OriginY
	for i := range shapes {
		if i > 0 {
			_, prevH := shapes[i-1].Size()
			y += prevH + spacing
		}
		positions = append(positions, Position{X: opts.OriginX, Y: y})
	}
	return positions
}

// Horizontal lays shapes left to right along the origin y.
func Horizontal(shapes []shapespec.Normalized, opts Options) []Position {
	spacing := clampSpacing(opts.Spacing, DefaultHorizontalSpacing)

	positions := make([]Position, 0, len(shapes))
	x := opts.OriginX
	for i := range shapes {
		if i > 0 {
			prevW, _ := shapes[i-1].Size()
			x += prevW + spacing
		}
		positions = append(positions, Position{X: x, Y: opts.OriginY})
	}
	return positions
}

// Grid produces row-major cell positions with a pitch of shapeSize + spacing
// on both axes. Rows and cols are capped to keep the output bounded.
func Grid(opts GridOptions) []Position {
	rows := capCount(opts.Rows, MaxGridRows)
	cols := capCount(opts.Cols, MaxGridCols)
	spacing := clampSpacingValue(opts.Spacing)
	pitch := opts.ShapeSize + spacing

	positions := make([]Position, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			positions = append(positions, Position{
				X: opts.OriginX + float64(c)*pitch,
				Y: opts.OriginY + float64(r)*pitch,
			})
		}
	}
	return positions
}

// SizeOf returns the bounding-box size of a normalized spec. Circles report
// their diameter on both axes.
func SizeOf(s shapespec.Normalized) (w, h float64) {
	return s.Size()
}

func clampSpacing(spacing *float64, def float64) float64 {
	if spacing == nil {
		return def
	}
	return clampSpacingValue(*spacing)
}

func clampSpacingValue(v float64) float64 {
	if v < MinSpacing {
		return MinSpacing
	}
	if v > MaxSpacing {
		return MaxSpacing
	}
	return v
}

func capCount(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}
