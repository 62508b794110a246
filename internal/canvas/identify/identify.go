// Package identify resolves free-text descriptors ("the blue circle",
// "all red triangles") against a shape snapshot. Matching is fuzzy over color
// families and type aliases with a recency bias: among equally good matches
// the highest zIndex wins, modeling the shape the user most likely means.
package identify

import (
	"math"
	"sort"

	"sketchdeck-backend/internal/canvas/canvaserr"
	"sketchdeck-backend/internal/canvas/colors"
	"sketchdeck-backend/internal/models"
)

// One resolves a descriptor to the single best-matching shape. Among shapes
// tied at the maximum score the highest zIndex wins, then the most recent
// createdAt. Returns (nil, nil) when nothing matches and allowPartial is true;
// a SHAPE_NOT_FOUND error otherwise. An empty snapshot never errors in
// partial mode.
func One(shapes []models.Shape, descriptor string, allowPartial bool) (*models.Shape, error) {
	matches, maxScore := match(shapes, Tokenize(descriptor))
	if len(matches) == 0 {
		if allowPartial {
			return nil, nil
		}
		return nil, canvaserr.NewShapeNotFound(descriptor)
	}

	var best *scored
	for i := range matches {
		if matches[i].score != maxScore {
			continue
		}
		if best == nil || moreRecent(matches[i], *best) {
			best = &matches[i]
		}
	}
	s := best.shape
	return &s, nil
}

// All resolves a descriptor to every matching shape, sorted by zIndex
// descending (most recent first). Returns an empty slice when nothing matches.
// Any shape scoring at least 1 is included; the single-result maximum-score
// rule does not apply in multi-mode.
func All(shapes []models.Shape, descriptor string) []models.Shape {
	matches, _ := match(shapes, Tokenize(descriptor))

	sort.SliceStable(matches, func(i, j int) bool {
		return moreRecent(matches[i], matches[j])
	})

	out := make([]models.Shape, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.shape)
	}
	return out
}

// Resolve dispatches on the descriptor itself: a leading "all"/"every" forces
// multi-result mode, anything else resolves to the single best match in strict
// mode. The bool reports which mode was taken so callers can shape their
// response and their side effects accordingly.
func Resolve(shapes []models.Shape, descriptor string) ([]models.Shape, bool, error) {
	if Tokenize(descriptor).All {
		return All(shapes, descriptor), true, nil
	}
	s, err := One(shapes, descriptor, false)
	if err != nil {
		return nil, false, err
	}
	return []models.Shape{*s}, false, nil
}

type scored struct {
	shape models.Shape
	score int
}

// match scores every shape against the token. Shapes scoring 0 while at least
// one token was recognized are excluded entirely, not just deprioritized. An
// unrecognized descriptor matches nothing. Returns the surviving matches and
// the maximum score seen.
func match(shapes []models.Shape, tok Token) ([]scored, int) {
	if !tok.Recognized || len(shapes) == 0 {
		return nil, 0
	}

	// Exact-hex fast path: only literal fill equality counts, no family fuzz.
	if tok.ExactHex != "" {
		var out []scored
		for _, s := range shapes {
			if fill, err := colors.Normalize(s.Fill); err == nil && fill == tok.ExactHex {
				out = append(out, scored{shape: s, score: 1})
			}
		}
		return out, 1
	}

	var out []scored
	maxScore := 0
	for _, s := range shapes {
		score := 0
		if tok.TypeToken != "" && s.Type == tok.TypeToken {
			score++
		}
		if tok.ColorFamily != "" && colors.InFamily(s.Fill, tok.ColorFamily) {
			score++
		}
		if score == 0 {
			continue
		}
		if score > maxScore {
			maxScore = score
		}
		out = append(out, scored{shape: s, score: score})
	}
	return out, maxScore
}

// moreRecent orders by zIndex descending, then createdAt descending.
func moreRecent(a, b scored) bool {
	if a.shape.ZIndex != b.shape.ZIndex {
		return a.shape.ZIndex > b.shape.ZIndex
	}
	return a.shape.CreatedAt.After(b.shape.CreatedAt)
}

// ByID returns the shape with the given id, or nil.
func ByID(shapes []models.Shape, id string) *models.Shape {
	for _, s := range shapes {
		if s.ID == id {
			out := s
			return &out
		}
	}
	return nil
}

// ByType returns every shape of the given type.
func ByType(shapes []models.Shape, shapeType models.ShapeType) []models.Shape {
	var out []models.Shape
	for _, s := range shapes {
		if s.Type == shapeType {
			out = append(out, s)
		}
	}
	return out
}

// ByColor returns every shape whose fill falls in the given family.
func ByColor(shapes []models.Shape, family colors.Family) []models.Shape {
	var out []models.Shape
	for _, s := range shapes {
		if colors.InFamily(s.Fill, family) {
			out = append(out, s)
		}
	}
	return out
}

// ByColorAndType returns every shape matching both the family and the type.
func ByColorAndType(shapes []models.Shape, family colors.Family, shapeType models.ShapeType) []models.Shape {
	var out []models.Shape
	for _, s := range shapes {
		if s.Type == shapeType && colors.InFamily(s.Fill, family) {
			out = append(out, s)
		}
	}
	return out
}

// NearestToPosition returns the shape whose center is closest to (x, y) by
// Euclidean distance, or nil for an empty snapshot.
func NearestToPosition(shapes []models.Shape, x, y float64) *models.Shape {
	var best *models.Shape
	bestDist := math.Inf(1)
	for i, s := range shapes {
		cx, cy := s.Center()
		d := math.Hypot(cx-x, cy-y)
		if d < bestDist {
			bestDist = d
			best = &shapes[i]
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}

// MostRecent returns the shape with the highest zIndex, falling back to the
// first element when no shape carries a zIndex. Nil for an empty snapshot.
func MostRecent(shapes []models.Shape) *models.Shape {
	if len(shapes) == 0 {
		return nil
	}
	best := shapes[0]
	for _, s := range shapes[1:] {
		if s.ZIndex > best.ZIndex {
			best = s
		}
	}
	return &best
}
