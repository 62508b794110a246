package command

import (
	"strings"
	"testing"

	"sketchdeck-backend/internal/models"
)

func TestVisibleCenter(t *testing.T) {
	vp := Viewport{Scale: 1, StageWidth: 1920, StageHeight: 1080}
	x, y := vp.VisibleCenter()
	if x != 960 || y != 540 {
		t.Errorf("center = (%g,%g), want (960,540)", x, y)
	}

	// zoomed in 2x and panned
	vp = Viewport{Scale: 2, PanX: -100, PanY: 50, StageWidth: 1920, StageHeight: 1080}
	x, y = vp.VisibleCenter()
	if x != 530 || y != 245 {
		t.Errorf("center = (%g,%g), want (530,245)", x, y)
	}

	// zero-valued viewport falls back to full canvas
	x, y = Viewport{}.VisibleCenter()
	if x != 960 || y != 540 {
		t.Errorf("default center = (%g,%g), want (960,540)", x, y)
	}
}

func TestPreprocess_MoveToCenter(t *testing.T) {
	vp := Viewport{Scale: 1, StageWidth: 1920, StageHeight: 1080}
	got := Preprocess("move the blue circle to the center", vp, nil)
	if got.Intent != "move_to_center" {
		t.Fatalf("intent = %q, want move_to_center", got.Intent)
	}
	if got.Rewritten != "move blue circle to x=960 y=540" {
		t.Errorf("rewritten = %q", got.Rewritten)
	}
	if len(got.Calculations) == 0 {
		t.Error("expected calculations to be recorded")
	}
}

func TestPreprocess_ResizeRelative(t *testing.T) {
	shapes := []models.Shape{
		{ID: "c", Type: models.ShapeCircle, Fill: "#ff0000", Radius: 40, ZIndex: 1},
		{ID: "r", Type: models.ShapeRectangle, Fill: "#0000ff", Width: 100, Height: 50, ZIndex: 2},
	}

	got := Preprocess("make the red circle twice as big", Viewport{}, shapes)
	if got.Intent != "resize_relative" {
		t.Fatalf("intent = %q, want resize_relative (rewritten=%q)", got.Intent, got.Rewritten)
	}
	if got.Rewritten != "resize red circle to radius=80" {
		t.Errorf("rewritten = %q", got.Rewritten)
	}

	got = Preprocess("resize the blue rectangle to be half as big", Viewport{}, shapes)
	if got.Rewritten != "resize blue rectangle to width=50 height=25" {
		t.Errorf("rewritten = %q", got.Rewritten)
	}

	got = Preprocess("make the red circle 3x as big", Viewport{}, shapes)
	if !strings.Contains(got.Rewritten, "radius=120") {
		t.Errorf("rewritten = %q, want radius=120", got.Rewritten)
	}
}

func TestPreprocess_Passthrough(t *testing.T) {
	tests := []string{
		"create a red circle at 100, 200",
		"delete all triangles",
		// resize of an unresolvable shape falls through
		"make the purple hexagon twice as big",
	}
	for _, in := range tests {
		got := Preprocess(in, Viewport{}, nil)
		if got.Intent != "passthrough" || got.Rewritten != in {
			t.Errorf("Preprocess(%q) = %+v, want passthrough", in, got)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"create a circle x=100 y=200", ComplexitySimple},
		{"draw a rectangle at 50, 60", ComplexitySimple},
		{"move the blue circle left", ComplexityComplex},
		{"delete all red triangles", ComplexityComplex},
		{"arrange the circles in a grid", ComplexityComplex},
		{"make it bigger and then rotate it", ComplexityComplex},
		{"hello", ComplexitySimple},
	}
	for _, tt := range tests {
		got := Classify(tt.in)
		if got.Complexity != tt.want {
			t.Errorf("Classify(%q) = %s (%s), want %s", tt.in, got.Complexity, got.Reason, tt.want)
		}
		if got.Confidence <= 0 || got.Confidence > 1 {
			t.Errorf("Classify(%q) confidence = %g out of range", tt.in, got.Confidence)
		}
	}
}
