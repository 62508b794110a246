package zorder

import (
	"testing"
	"time"

	"sketchdeck-backend/internal/models"
)

func shape(id string, z int) models.Shape {
	return models.Shape{ID: id, Type: models.ShapeRectangle, ZIndex: z}
}

func TestMaxMin(t *testing.T) {
	if got := Max(nil); got != 0 {
		t.Errorf("Max(empty) = %d, want 0", got)
	}
	if got := Min(nil); got != 0 {
		t.Errorf("Min(empty) = %d, want 0", got)
	}

	shapes := []models.Shape{shape("a", -3), shape("b", 7), shape("c", 2)}
	if got := Max(shapes); got != 7 {
		t.Errorf("Max = %d, want 7", got)
	}
	if got := Min(shapes); got != -3 {
		t.Errorf("Min = %d, want -3", got)
	}
}

func TestBringToFrontSendToBack(t *testing.T) {
	shapes := []models.Shape{shape("a", 1), shape("b", 5)}
	if got := BringToFront(shapes); got != 6 {
		t.Errorf("BringToFront = %d, want 6", got)
	}
	if got := SendToBack(shapes); got != 0 {
		t.Errorf("SendToBack = %d, want 0", got)
	}
}

func TestBringForward(t *testing.T) {
	shapes := []models.Shape{shape("1", 0), shape("2", 1), shape("3", 2)}

	got := BringForward("2", shapes)
	if got == nil {
		t.Fatal("BringForward returned nil for a middle shape")
	}
	want := Swap{ShapeID: "2", NewZIndex: 2, SwapShapeID: "3", SwapZIndex: 1}
	if *got != want {
		t.Errorf("BringForward = %+v, want %+v", *got, want)
	}

	if got := BringForward("3", shapes); got != nil {
		t.Errorf("BringForward on frontmost = %+v, want nil", got)
	}
	if got := BringForward("nope", shapes); got != nil {
		t.Errorf("BringForward on unknown id = %+v, want nil", got)
	}
}

func TestSendBackward(t *testing.T) {
	shapes := []models.Shape{shape("1", 0), shape("2", 1), shape("3", 2)}

	got := SendBackward("2", shapes)
	want := Swap{ShapeID: "2", NewZIndex: 0, SwapShapeID: "1", SwapZIndex: 1}
	if got == nil || *got != want {
		t.Errorf("SendBackward = %+v, want %+v", got, want)
	}

	if got := SendBackward("1", shapes); got != nil {
		t.Errorf("SendBackward on backmost = %+v, want nil", got)
	}
}

func applySwap(shapes []models.Shape, s *Swap) []models.Shape {
	out := make([]models.Shape, len(shapes))
	copy(out, shapes)
	for i := range out {
		switch out[i].ID {
		case s.ShapeID:
			out[i].ZIndex = s.NewZIndex
		case s.SwapShapeID:
			out[i].ZIndex = s.SwapZIndex
		}
	}
	return out
}

func TestForwardThenBackwardRestores(t *testing.T) {
	original := []models.Shape{shape("1", 10), shape("2", 20), shape("3", 30)}

	fwd := BringForward("2", original)
	if fwd == nil {
		t.Fatal("BringForward returned nil")
	}
	moved := applySwap(original, fwd)

	back := SendBackward("2", moved)
	if back == nil {
		t.Fatal("SendBackward returned nil")
	}
	restored := applySwap(moved, back)

	for i := range original {
		if restored[i].ZIndex != original[i].ZIndex {
			t.Errorf("shape %s zIndex = %d, want %d", restored[i].ID, restored[i].ZIndex, original[i].ZIndex)
		}
	}
}

func TestRenormalize(t *testing.T) {
	now := time.Now()
	shapes := []models.Shape{
		{ID: "a", ZIndex: 100, CreatedAt: now},
		{ID: "b", ZIndex: 5, CreatedAt: now},
		{ID: "c", ZIndex: 5, CreatedAt: now.Add(-time.Hour)},
		{ID: "d", ZIndex: -2, CreatedAt: now},
	}

	got := Renormalize(shapes)

	wantOrder := []string{"d", "c", "b", "a"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("order[%d] = %s, want %s", i, got[i].ID, id)
		}
		if got[i].ZIndex != i {
			t.Errorf("zIndex[%d] = %d, want %d", i, got[i].ZIndex, i)
		}
	}

	// input snapshot is untouched
	if shapes[0].ZIndex != 100 {
		t.Error("Renormalize mutated its input")
	}

	// fixed point
	again := Renormalize(got)
	for i := range got {
		if again[i] != got[i] {
			t.Errorf("Renormalize is not a fixed point at index %d", i)
		}
	}
}
