package shapespec

import (
	"testing"

	"sketchdeck-backend/internal/canvas/canvaserr"
	"sketchdeck-backend/internal/models"
)

func f(v float64) *float64 { return &v }

func TestNormalize_Defaults(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want Normalized
	}{
		{
			name: "rectangle defaults",
			spec: Spec{Type: "rectangle", Color: "red"},
			want: Normalized{Type: models.ShapeRectangle, Fill: "#ff0000", Width: 150, Height: 100},
		},
		{
			name: "rect alias",
			spec: Spec{Type: "rect", Color: "blue"},
			want: Normalized{Type: models.ShapeRectangle, Fill: "#0000ff", Width: 150, Height: 100},
		},
		{
			name: "circle defaults",
			spec: Spec{Type: "circle", Color: "green"},
			want: Normalized{Type: models.ShapeCircle, Fill: "#008000", Radius: 50},
		},
		{
			name: "triangle defaults",
			spec: Spec{Type: "triangle", Color: "#abc"},
			want: Normalized{Type: models.ShapeTriangle, Fill: "#aabbcc", Width: 100, Height: 100},
		},
		{
			name: "text defaults",
			spec: Spec{Type: "text", Color: "black", Text: "hello"},
			want: Normalized{Type: models.ShapeText, Fill: "#000000", Text: "hello", FontSize: 16, Width: 200, Height: 30},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.spec)
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			if *got != tt.want {
				t.Errorf("Normalize = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestNormalize_SquareAlias(t *testing.T) {
	got, err := Normalize(Spec{Type: "square", Color: "red", Width: f(80), Height: f(120)})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got.Width != 120 || got.Height != 120 {
		t.Errorf("square = %gx%g, want 120x120", got.Width, got.Height)
	}
}

func TestNormalize_Clamping(t *testing.T) {
	got, err := Normalize(Spec{Type: "circle", Color: "red", Radius: f(2)})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got.Radius != 10 {
		t.Errorf("radius = %g, want 10 (clamped)", got.Radius)
	}

	got, err = Normalize(Spec{
		Type: "rect", Color: "red",
		Width: f(9999), Height: f(1),
		X: f(-50), Y: f(5000),
		StrokeWidth: f(25), FontSize: f(200),
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got.Width != 500 || got.Height != 10 {
		t.Errorf("dims = %gx%g, want 500x10", got.Width, got.Height)
	}
	if *got.X != 0 || *got.Y != 1080 {
		t.Errorf("position = (%g,%g), want (0,1080)", *got.X, *got.Y)
	}
	if got.StrokeWidth != 10 {
		t.Errorf("strokeWidth = %g, want 10", got.StrokeWidth)
	}

	got, err = Normalize(Spec{Type: "text", Color: "red", Text: "x", FontSize: f(4)})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got.FontSize != 8 {
		t.Errorf("fontSize = %g, want 8", got.FontSize)
	}
}

func TestNormalize_Rotation(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0}, {90, 90}, {360, 0}, {450, 90}, {-90, 270},
	}
	for _, tt := range tests {
		got, err := Normalize(Spec{Type: "rect", Color: "red", Rotation: f(tt.in)})
		if err != nil {
			t.Fatalf("Normalize failed: %v", err)
		}
		if got.Rotation != tt.want {
			t.Errorf("rotation %g -> %g, want %g", tt.in, got.Rotation, tt.want)
		}
	}
}

func TestNormalize_OmittedPositionStaysNil(t *testing.T) {
	got, err := Normalize(Spec{Type: "circle", Color: "red"})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got.X != nil || got.Y != nil {
		t.Error("normalizer invented coordinates for an omitted position")
	}
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		code canvaserr.ErrorCode
	}{
		{"missing type", Spec{Color: "red"}, canvaserr.ErrValidation},
		{"unknown type", Spec{Type: "hexagon", Color: "red"}, canvaserr.ErrInvalidShapeType},
		{"missing color", Spec{Type: "rect"}, canvaserr.ErrValidation},
		{"bad color", Spec{Type: "rect", Color: "nope"}, canvaserr.ErrInvalidColor},
		{"alpha color", Spec{Type: "circle", Color: "rgba(255,0,0,0.5)"}, canvaserr.ErrUnsupportedAlpha},
		{"text without content", Spec{Type: "text", Color: "red"}, canvaserr.ErrValidation},
		{"bad stroke", Spec{Type: "rect", Color: "red", Stroke: "nope"}, canvaserr.ErrInvalidColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.spec)
			if !canvaserr.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSize(t *testing.T) {
	c := Normalized{Type: models.ShapeCircle, Radius: 40}
	if w, h := c.Size(); w != 80 || h != 80 {
		t.Errorf("circle size = %gx%g, want 80x80", w, h)
	}
	r := Normalized{Type: models.ShapeRectangle, Width: 150, Height: 100}
	if w, h := r.Size(); w != 150 || h != 100 {
		t.Errorf("rect size = %gx%g, want 150x100", w, h)
	}
}

func TestNormalizeRotation(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{45, 45},
		{360, 0},
		{720, 0},
		{-90, 270},
		{450, 90},
		{-450, 270},
	}
	for _, tt := range tests {
		if got := NormalizeRotation(tt.in); got != tt.want {
			t.Errorf("NormalizeRotation(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}
