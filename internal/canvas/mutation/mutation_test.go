package mutation

import (
	"testing"

	"sketchdeck-backend/internal/models"
)

func TestInverse_CreateDelete(t *testing.T) {
	s := models.Shape{ID: "a", Type: models.ShapeCircle, Fill: "#ff0000", Radius: 50}

	inv, ok := Create(s).Inverse()
	if !ok || inv.Kind != KindDelete || inv.Shape.ID != "a" {
		t.Errorf("Create inverse = %+v, want delete of a", inv)
	}

	inv, ok = Delete(s).Inverse()
	if !ok || inv.Kind != KindCreate || inv.Shape.ID != "a" {
		t.Errorf("Delete inverse = %+v, want create of a", inv)
	}
}

func TestInverse_Update(t *testing.T) {
	m := Update("a", map[string]any{"fill": "#00ff00"}, map[string]any{"fill": "#ff0000"})
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("Update inverse not derivable")
	}
	if inv.Patch["fill"] != "#ff0000" || inv.Prev["fill"] != "#00ff00" {
		t.Errorf("Update inverse = %+v", inv)
	}

	if _, ok := Update("a", map[string]any{"fill": "#00ff00"}, nil).Inverse(); ok {
		t.Error("update without prior values should not invert")
	}
}

func TestInverse_BatchZIndex(t *testing.T) {
	m := BatchZIndex(
		[]ZIndexUpdate{{ID: "a", ZIndex: 2}, {ID: "b", ZIndex: 1}},
		[]ZIndexUpdate{{ID: "a", ZIndex: 1}, {ID: "b", ZIndex: 2}},
	)
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("BatchZIndex inverse not derivable")
	}
	if inv.ZIndex[0].ZIndex != 1 || inv.PrevZIndex[0].ZIndex != 2 {
		t.Errorf("BatchZIndex inverse = %+v", inv)
	}
}
