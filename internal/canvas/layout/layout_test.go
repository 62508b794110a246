package layout

import (
	"testing"

	"sketchdeck-backend/internal/canvas/shapespec"
	"sketchdeck-backend/internal/models"
)

func rect(w, h float64) shapespec.Normalized {
	return shapespec.Normalized{Type: models.ShapeRectangle, Width: w, Height: h}
}

func circle(r float64) shapespec.Normalized {
	return shapespec.Normalized{Type: models.ShapeCircle, Radius: r}
}

func spacing(v float64) *float64 { return &v }

func TestVertical(t *testing.T) {
	shapes := []shapespec.Normalized{rect(100, 50), rect(100, 60)}
	got := Vertical(shapes, Options{OriginX: 300, OriginY: 200, Spacing: spacing(25)})

	want := []Position{{X: 300, Y: 200}, {X: 300, Y: 275}}
	if len(got) != len(want) {
		t.Fatalf("got %d positions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestVertical_CircleUsesDiameter(t *testing.T) {
	shapes := []shapespec.Normalized{circle(40), rect(100, 50)}
	got := Vertical(shapes, Options{OriginX: 0, OriginY: 100, Spacing: spacing(10)})
	if got[1].Y != 190 {
		t.Errorf("y after circle = %g, want 190 (100 + 80 + 10)", got[1].Y)
	}
}

func TestVertical_DefaultSpacing(t *testing.T) {
	shapes := []shapespec.Normalized{rect(10, 10), rect(10, 10)}
	got := Vertical(shapes, Options{})
	if got[1].Y != 10+DefaultVerticalSpacing {
		t.Errorf("default spacing y = %g, want %g", got[1].Y, 10+DefaultVerticalSpacing)
	}
}

func TestHorizontal(t *testing.T) {
	shapes := []shapespec.Normalized{rect(100, 50), rect(80, 50), rect(60, 50)}
	got := Horizontal(shapes, Options{OriginX: 50, OriginY: 400, Spacing: spacing(20)})

	want := []Position{{X: 50, Y: 400}, {X: 170, Y: 400}, {X: 270, Y: 400}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSpacingClamped(t *testing.T) {
	shapes := []shapespec.Normalized{rect(10, 10), rect(10, 10)}

	got := Vertical(shapes, Options{Spacing: spacing(-5)})
	if got[1].Y != 10 {
		t.Errorf("negative spacing y = %g, want 10", got[1].Y)
	}

	got = Vertical(shapes, Options{Spacing: spacing(9000)})
	if got[1].Y != 10+MaxSpacing {
		t.Errorf("oversized spacing y = %g, want %g", got[1].Y, 10+MaxSpacing)
	}
}

func TestGrid(t *testing.T) {
	got := Grid(GridOptions{Rows: 2, Cols: 3, OriginX: 100, OriginY: 200, Spacing: 20, ShapeSize: 50})
	if len(got) != 6 {
		t.Fatalf("got %d positions, want 6", len(got))
	}
	// row-major: second cell of first row, first cell of second row
	if got[1] != (Position{X: 170, Y: 200}) {
		t.Errorf("cell[1] = %+v, want {170 200}", got[1])
	}
	if got[3] != (Position{X: 100, Y: 270}) {
		t.Errorf("cell[3] = %+v, want {100 270}", got[3])
	}
}

func TestGrid_Caps(t *testing.T) {
	got := Grid(GridOptions{Rows: 100, Cols: 100, ShapeSize: 10})
	if len(got) != MaxGridRows*MaxGridCols {
		t.Errorf("got %d positions, want %d", len(got), MaxGridRows*MaxGridCols)
	}
	if n := len(Grid(GridOptions{Rows: -1, Cols: 5})); n != 0 {
		t.Errorf("negative rows produced %d positions", n)
	}
}

func TestEmptyInput(t *testing.T) {
	if n := len(Vertical(nil, Options{})); n != 0 {
		t.Errorf("Vertical(nil) returned %d positions", n)
	}
	if n := len(Horizontal(nil, Options{})); n != 0 {
		t.Errorf("Horizontal(nil) returned %d positions", n)
	}
	if n := len(Grid(GridOptions{})); n != 0 {
		t.Errorf("empty Grid returned %d positions", n)
	}
}
