// Package zorder maintains the total paint order over a shape collection.
// All operations take a snapshot and return values or new slices; the caller
// applies the results back to the store.
package zorder

import (
	"sort"

	"sketchdeck-backend/internal/models"
)

// Swap describes a transposition of two shapes' z-indexes. Applying it swaps
// exactly the two values, leaving every other shape's order untouched.
type Swap struct {
	ShapeID     string `json:"shapeId"`
	NewZIndex   int    `json:"newZIndex"`
	SwapShapeID string `json:"swapShapeId"`
	SwapZIndex  int    `json:"swapZIndex"`
}

// Max returns the highest zIndex in the collection, or 0 when empty.
func Max(shapes []models.Shape) int {
	max := 0
	for i, s := range shapes {
		if i == 0 || s.ZIndex > max {
			max = s.ZIndex
		}
	}
	return max
}

// Min returns the lowest zIndex in the collection, or 0 when empty.
func Min(shapes []models.Shape) int {
	min := 0
	for i, s := range shapes {
		if i == 0 || s.ZIndex < min {
			min = s.ZIndex
		}
	}
	return min
}

// BringToFront computes the zIndex that places a shape above everything else.
func BringToFront(shapes []models.Shape) int {
	return Max(shapes) + 1
}

// SendToBack computes the zIndex that places a shape below everything else.
func SendToBack(shapes []models.Shape) int {
	return Min(shapes) - 1
}

// BringForward finds the shape directly above the target in paint order and
// returns the transposition that swaps them. Returns nil when the target is
// already frontmost or not in the collection.
func BringForward(shapeID string, shapes []models.Shape) *Swap {
	ordered := sortedByOrder(shapes)
	idx := indexOf(shapeID, ordered)
	if idx < 0 || idx == len(ordered)-1 {
		return nil
	}
	target, above := ordered[idx], ordered[idx+1]
	return &Swap{
		ShapeID:     target.ID,
		NewZIndex:   above.ZIndex,
		SwapShapeID: above.ID,
		SwapZIndex:  target.ZIndex,
	}
}

// SendBackward is the mirror of BringForward against the next-lower shape.
func SendBackward(shapeID string, shapes []models.Shape) *Swap {
	ordered := sortedByOrder(shapes)
	idx := indexOf(shapeID, ordered)
	if idx <= 0 {
		return nil
	}
	target, below := ordered[idx], ordered[idx-1]
	return &Swap{
		ShapeID:     target.ID,
		NewZIndex:   below.ZIndex,
		SwapShapeID: below.ID,
		SwapZIndex:  target.ZIndex,
	}
}

// Renormalize returns a copy of the collection with dense zIndex values
// 0..N-1, ordered by prior zIndex then createdAt ascending. Ties beyond that
// keep their input order. Used to repair duplicates and bound growth; running
// it twice is a fixed point.
func Renormalize(shapes []models.Shape) []models.Shape {
	out := sortedByOrder(shapes)
	for i := range out {
		out[i].ZIndex = i
	}
	return out
}

// sortedByOrder copies the snapshot and stable-sorts it by (zIndex, createdAt)
// ascending.
func sortedByOrder(shapes []models.Shape) []models.Shape {
	out := make([]models.Shape, len(shapes))
	copy(out, shapes)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ZIndex != out[j].ZIndex {
			return out[i].ZIndex < out[j].ZIndex
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func indexOf(shapeID string, shapes []models.Shape) int {
	for i, s := range shapes {
		if s.ID == shapeID {
			return i
		}
	}
	return -1
}
