// Package shapespec validates shape-creation requests and fills defaults,
// producing the normalized spec the layout and store layers consume.
package shapespec

import (
	"math"
	"strings"

	"sketchdeck-backend/internal/canvas/canvaserr"
	"sketchdeck-backend/internal/canvas/colors"
	"sketchdeck-backend/internal/models"
)

// Defaults applied when a dimension is omitted.
const (
	DefaultRectWidth      = 150.0
	DefaultRectHeight     = 100.0
	DefaultCircleRadius   = 50.0
	DefaultTriangleWidth  = 100.0
	DefaultTriangleHeight = 100.0
	DefaultFontSize       = 16.0
	DefaultTextWidth      = 200.0
	DefaultTextHeight     = 30.0
)

// Inclusive clamp ranges.
const (
	MinDimension   = 10.0
	MaxDimension   = 500.0
	MinFontSize    = 8.0
	MaxFontSize    = 72.0
	MinStrokeWidth = 0.0
	MaxStrokeWidth = 10.0
)

// Spec is a raw shape-creation request. Optional numerics are pointers so
// "omitted" and "zero" stay distinguishable.
type Spec struct {
	Type        string   `json:"type"`
	Color       string   `json:"color"`
	X           *float64 `json:"x,omitempty"`
	Y           *float64 `json:"y,omitempty"`
	Width       *float64 `json:"width,omitempty"`
	Height      *float64 `json:"height,omitempty"`
	Radius      *float64 `json:"radius,omitempty"`
	Text        string   `json:"text,omitempty"`
	FontSize    *float64 `json:"fontSize,omitempty"`
	Stroke      string   `json:"stroke,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
	Rotation    *float64 `json:"rotation,omitempty"`
}

// Normalized is a spec after alias resolution, defaulting, clamping and color
// canonicalization. X/Y stay pointers: when the caller omitted them, placement
// is the layout layer's job, never invented here.
type Normalized struct {
	Type        models.ShapeType `json:"type"`
	Fill        string           `json:"fill"`
	X           *float64         `json:"x,omitempty"`
	Y           *float64         `json:"y,omitempty"`
	Width       float64          `json:"width,omitempty"`
	Height      float64          `json:"height,omitempty"`
	Radius      float64          `json:"radius,omitempty"`
	Text        string           `json:"text,omitempty"`
	FontSize    float64          `json:"fontSize,omitempty"`
	Stroke      string           `json:"stroke,omitempty"`
	StrokeWidth float64          `json:"strokeWidth,omitempty"`
	Rotation    float64          `json:"rotation,omitempty"`
}

// Size returns the bounding-box footprint of the normalized spec.
func (n Normalized) Size() (w, h float64) {
	if n.Type == models.ShapeCircle {
		d := n.Radius * 2
		return d, d
	}
	return n.Width, n.Height
}

// typeAliases resolve before validation.
var typeAliases = map[string]models.ShapeType{
	"rectangle": models.ShapeRectangle,
	"rect":      models.ShapeRectangle,
	"box":       models.ShapeRectangle,
	"square":    models.ShapeRectangle,
	"circle":    models.ShapeCircle,
	"dot":       models.ShapeCircle,
	"triangle":  models.ShapeTriangle,
	"tri":       models.ShapeTriangle,
	"text":      models.ShapeText,
	"label":     models.ShapeText,
}

// ResolveType maps a raw type token to its canonical shape type.
func ResolveType(raw string) (models.ShapeType, bool) {
	t, ok := typeAliases[strings.ToLower(strings.TrimSpace(raw))]
	return t, ok
}

// Normalize validates a spec and fills defaults. Errors name the offending
// field so callers can surface precise diagnostics. The input is not mutated.
func Normalize(spec Spec) (*Normalized, error) {
	rawType := strings.ToLower(strings.TrimSpace(spec.Type))
	if rawType == "" {
		return nil, canvaserr.NewValidation("type", "shape requires a type")
	}
	shapeType, ok := typeAliases[rawType]
	if !ok {
		return nil, canvaserr.NewInvalidShapeType(spec.Type)
	}

	if strings.TrimSpace(spec.Color) == "" {
		return nil, canvaserr.NewValidation("color", "shape requires a color")
	}
	fill, err := colors.Normalize(spec.Color)
	if err != nil {
		return nil, err
	}

	out := &Normalized{
		Type: shapeType,
		Fill: fill,
	}

	switch shapeType {
	case models.ShapeCircle:
		out.Radius = clamp(valueOr(spec.Radius, DefaultCircleRadius), MinDimension, MaxDimension)
	case models.ShapeRectangle:
		w := valueOr(spec.Width, DefaultRectWidth)
		h := valueOr(spec.Height, DefaultRectHeight)
		if rawType == "square" {
			side := math.Max(w, h)
			w, h = side, side
		}
		out.Width = clamp(w, MinDimension, MaxDimension)
		out.Height = clamp(h, MinDimension, MaxDimension)
	case models.ShapeTriangle:
		out.Width = clamp(valueOr(spec.Width, DefaultTriangleWidth), MinDimension, MaxDimension)
		out.Height = clamp(valueOr(spec.Height, DefaultTriangleHeight), MinDimension, MaxDimension)
	case models.ShapeText:
		if strings.TrimSpace(spec.Text) == "" {
			return nil, canvaserr.NewValidation("text", "text shape requires text content")
		}
		out.Text = spec.Text
		out.FontSize = clamp(valueOr(spec.FontSize, DefaultFontSize), MinFontSize, MaxFontSize)
		out.Width = clamp(valueOr(spec.Width, DefaultTextWidth), MinDimension, MaxDimension)
		out.Height = clamp(valueOr(spec.Height, DefaultTextHeight), MinDimension, MaxDimension)
	}

	if spec.X != nil {
		x := clamp(*spec.X, 0, models.CanvasWidth)
		out.X = &x
	}
	if spec.Y != nil {
		y := clamp(*spec.Y, 0, models.CanvasHeight)
		out.Y = &y
	}

	if spec.Stroke != "" {
		stroke, err := colors.Normalize(spec.Stroke)
		if err != nil {
			return nil, err
		}
		out.Stroke = stroke
	}
	if spec.StrokeWidth != nil {
		out.StrokeWidth = clamp(*spec.StrokeWidth, MinStrokeWidth, MaxStrokeWidth)
	}
	if spec.Rotation != nil {
		out.Rotation = NormalizeRotation(*spec.Rotation)
	}

	return out, nil
}

// ClampDimension clamps a width/height/radius patch value into the valid range.
func ClampDimension(v float64) float64 {
	return clamp(v, MinDimension, MaxDimension)
}

// ClampPosition clamps a coordinate pair onto the canvas.
func ClampPosition(x, y float64) (float64, float64) {
	return clamp(x, 0, models.CanvasWidth), clamp(y, 0, models.CanvasHeight)
}

// NormalizeRotation wraps degrees into [0,360).
func NormalizeRotation(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	return r
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
