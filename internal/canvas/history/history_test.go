package history

import (
	"testing"

	"sketchdeck-backend/internal/canvas/mutation"
	"sketchdeck-backend/internal/models"
)

func create(id string) mutation.Mutation {
	return mutation.Create(models.Shape{ID: id, Type: models.ShapeCircle})
}

func TestUndoRedo(t *testing.T) {
	s := NewStack(0)

	if _, ok := s.Undo(); ok {
		t.Error("Undo on empty stack succeeded")
	}

	s.Push(create("a"))
	s.Push(create("b"))

	inv, ok := s.Undo()
	if !ok || inv.Kind != mutation.KindDelete || inv.Shape.ID != "b" {
		t.Fatalf("Undo = (%+v, %v), want delete of b", inv, ok)
	}

	redo, ok := s.Redo()
	if !ok || redo.Kind != mutation.KindCreate || redo.Shape.ID != "b" {
		t.Fatalf("Redo = (%+v, %v), want create of b", redo, ok)
	}

	if _, ok := s.Redo(); ok {
		t.Error("Redo past the end succeeded")
	}
}

func TestPushClearsRedo(t *testing.T) {
	s := NewStack(0)
	s.Push(create("a"))
	if _, ok := s.Undo(); !ok {
		t.Fatal("Undo failed")
	}
	s.Push(create("b"))
	if _, ok := s.Redo(); ok {
		t.Error("redo stack survived a new push")
	}
}

func TestLimit(t *testing.T) {
	s := NewStack(2)
	s.Push(create("a"))
	s.Push(create("b"))
	s.Push(create("c"))

	ids := []string{}
	for {
		inv, ok := s.Undo()
		if !ok {
			break
		}
		ids = append(ids, inv.Shape.ID)
	}
	if len(ids) != 2 || ids[0] != "c" || ids[1] != "b" {
		t.Errorf("retained undo ids = %v, want [c b]", ids)
	}
}

func TestBoards(t *testing.T) {
	b := NewBoards(10)
	if b.For("x") != b.For("x") {
		t.Error("For returned different stacks for the same board")
	}
	if b.For("x") == b.For("y") {
		t.Error("For shared a stack across boards")
	}
}
