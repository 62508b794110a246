package identify

import (
	"testing"
	"time"

	"sketchdeck-backend/internal/canvas/canvaserr"
	"sketchdeck-backend/internal/canvas/colors"
	"sketchdeck-backend/internal/models"
)

func shape(id string, typ models.ShapeType, fill string, z int) models.Shape {
	return models.Shape{ID: id, Type: typ, Fill: fill, ZIndex: z}
}

func TestOne_ByColor(t *testing.T) {
	shapes := []models.Shape{
		shape("a", models.ShapeRectangle, "#ff0000", 1000),
		shape("b", models.ShapeRectangle, "#0000ff", 2000),
	}
	got, err := One(shapes, "red", true)
	if err != nil {
		t.Fatalf("One failed: %v", err)
	}
	if got == nil || got.ID != "a" {
		t.Errorf("One(red) = %+v, want shape a", got)
	}
}

func TestOne_RecencyBias(t *testing.T) {
	shapes := []models.Shape{
		shape("a", models.ShapeCircle, "#ff0000", 100),
		shape("b", models.ShapeCircle, "#ff0000", 500),
		shape("c", models.ShapeCircle, "#ff0000", 300),
	}
	got, err := One(shapes, "circle", true)
	if err != nil {
		t.Fatalf("One failed: %v", err)
	}
	if got == nil || got.ID != "b" {
		t.Errorf("One(circle) = %+v, want highest-zIndex shape b", got)
	}
}

func TestOne_CreatedAtTiebreak(t *testing.T) {
	now := time.Now()
	older := shape("old", models.ShapeCircle, "#ff0000", 5)
	older.CreatedAt = now.Add(-time.Hour)
	newer := shape("new", models.ShapeCircle, "#ff0000", 5)
	newer.CreatedAt = now

	got, err := One([]models.Shape{older, newer}, "circle", true)
	if err != nil {
		t.Fatalf("One failed: %v", err)
	}
	if got.ID != "new" {
		t.Errorf("One tiebreak = %s, want new", got.ID)
	}
}

func TestOne_CombinedScoreWins(t *testing.T) {
	shapes := []models.Shape{
		shape("redRect", models.ShapeRectangle, "#ff0000", 900),
		shape("redCircle", models.ShapeCircle, "#dc143c", 100),
		shape("blueCircle", models.ShapeCircle, "#0000ff", 800),
	}
	// "red circle" scores 2 on redCircle, 1 elsewhere; recency must not
	// override the better score.
	got, err := One(shapes, "the red circle", true)
	if err != nil {
		t.Fatalf("One failed: %v", err)
	}
	if got == nil || got.ID != "redCircle" {
		t.Errorf("One(red circle) = %+v, want redCircle", got)
	}
}

func TestOne_NoMatch(t *testing.T) {
	shapes := []models.Shape{shape("a", models.ShapeCircle, "#0000ff", 1)}

	got, err := One(shapes, "red triangle", true)
	if err != nil || got != nil {
		t.Errorf("partial One = (%+v, %v), want (nil, nil)", got, err)
	}

	_, err = One(shapes, "red triangle", false)
	if !canvaserr.Is(err, canvaserr.ErrShapeNotFound) {
		t.Errorf("strict One error = %v, want SHAPE_NOT_FOUND", err)
	}
}

func TestOne_EmptyAndUnrecognized(t *testing.T) {
	if got, err := One(nil, "anything", true); got != nil || err != nil {
		t.Errorf("One(empty) = (%+v, %v), want (nil, nil)", got, err)
	}
	shapes := []models.Shape{shape("a", models.ShapeCircle, "#ff0000", 1)}
	if got, err := One(shapes, "zorp blib", true); got != nil || err != nil {
		t.Errorf("One(gibberish) = (%+v, %v), want (nil, nil)", got, err)
	}
	if got, err := One(shapes, "   ", true); got != nil || err != nil {
		t.Errorf("One(whitespace) = (%+v, %v), want (nil, nil)", got, err)
	}
}

func TestOne_ExactHexFastPath(t *testing.T) {
	shapes := []models.Shape{
		shape("exact", models.ShapeRectangle, "#dc143c", 1),
		shape("family", models.ShapeRectangle, "#ff0000", 99),
	}
	// literal hex matches only the exact fill, bypassing the red family
	got, err := One(shapes, "#dc143c", true)
	if err != nil {
		t.Fatalf("One failed: %v", err)
	}
	if got == nil || got.ID != "exact" {
		t.Errorf("One(#dc143c) = %+v, want exact", got)
	}

	got, _ = One(shapes, "dc143c", true)
	if got == nil || got.ID != "exact" {
		t.Errorf("One(dc143c without #) = %+v, want exact", got)
	}
}

func TestAll_RedFamily(t *testing.T) {
	shapes := []models.Shape{
		shape("r1", models.ShapeRectangle, "#ff0000", 10),
		shape("b1", models.ShapeRectangle, "#0000ff", 50),
		shape("r2", models.ShapeCircle, "#dc143c", 30),
		shape("g1", models.ShapeCircle, "#00ff00", 40),
	}
	got := All(shapes, "all red")
	if len(got) != 2 {
		t.Fatalf("All(all red) returned %d shapes, want 2", len(got))
	}
	// strictly decreasing zIndex
	if got[0].ID != "r2" || got[1].ID != "r1" {
		t.Errorf("order = [%s %s], want [r2 r1]", got[0].ID, got[1].ID)
	}
	for _, s := range got {
		if !colors.InFamily(s.Fill, colors.FamilyRed) {
			t.Errorf("shape %s is not in the red family", s.ID)
		}
	}
}

func TestAll_MinimumScoreThreshold(t *testing.T) {
	shapes := []models.Shape{
		shape("redTri", models.ShapeTriangle, "#ff0000", 3),
		shape("redRect", models.ShapeRectangle, "#ff0000", 2),
		shape("blueTri", models.ShapeTriangle, "#0000ff", 1),
	}
	// multi-mode keeps everything scoring at least 1
	got := All(shapes, "all red triangles")
	if len(got) != 3 {
		t.Fatalf("All returned %d shapes, want 3", len(got))
	}
	if got[0].ID != "redTri" {
		t.Errorf("first = %s, want redTri (highest zIndex among matches)", got[0].ID)
	}
}

func TestResolve_AllPrefixForcesMulti(t *testing.T) {
	shapes := []models.Shape{
		shape("r1", models.ShapeCircle, "#ff0000", 10),
		shape("r2", models.ShapeCircle, "#dc143c", 30),
		shape("b1", models.ShapeRectangle, "#0000ff", 50),
	}

	got, multi, err := Resolve(shapes, "all red")
	if err != nil {
		t.Fatalf("Resolve(all red) error: %v", err)
	}
	if !multi {
		t.Errorf("Resolve(all red) multi = false, want true")
	}
	if len(got) != 2 || got[0].ID != "r2" || got[1].ID != "r1" {
		t.Errorf("Resolve(all red) = %+v, want [r2 r1]", got)
	}
}

func TestResolve_SingularPicksBest(t *testing.T) {
	shapes := []models.Shape{
		shape("r1", models.ShapeCircle, "#ff0000", 10),
		shape("r2", models.ShapeCircle, "#dc143c", 30),
		shape("b1", models.ShapeRectangle, "#0000ff", 50),
	}

	got, multi, err := Resolve(shapes, "the red circle")
	if err != nil {
		t.Fatalf("Resolve(the red circle) error: %v", err)
	}
	if multi {
		t.Errorf("Resolve(the red circle) multi = true, want false")
	}
	if len(got) != 1 || got[0].ID != "r2" {
		t.Errorf("Resolve(the red circle) = %+v, want just r2", got)
	}

	_, _, err = Resolve(shapes, "green triangle")
	if !canvaserr.Is(err, canvaserr.ErrShapeNotFound) {
		t.Errorf("Resolve(no match) error = %v, want SHAPE_NOT_FOUND", err)
	}
}

func TestAll_Empty(t *testing.T) {
	if got := All(nil, "anything"); len(got) != 0 {
		t.Errorf("All(empty) returned %d shapes", len(got))
	}
	shapes := []models.Shape{shape("a", models.ShapeCircle, "#ff0000", 1)}
	if got := All(shapes, "all blue"); len(got) != 0 {
		t.Errorf("All(no match) returned %d shapes", len(got))
	}
}

func TestHelpers(t *testing.T) {
	shapes := []models.Shape{
		{ID: "a", Type: models.ShapeCircle, Fill: "#ff0000", X: 100, Y: 100, Radius: 10, ZIndex: 1},
		{ID: "b", Type: models.ShapeRectangle, Fill: "#0000ff", X: 500, Y: 500, Width: 50, Height: 50, ZIndex: 9},
	}

	if got := ByID(shapes, "b"); got == nil || got.ID != "b" {
		t.Errorf("ByID = %+v", got)
	}
	if got := ByID(shapes, "zz"); got != nil {
		t.Errorf("ByID(unknown) = %+v, want nil", got)
	}
	if got := ByType(shapes, models.ShapeCircle); len(got) != 1 || got[0].ID != "a" {
		t.Errorf("ByType = %+v", got)
	}
	if got := ByColor(shapes, colors.FamilyBlue); len(got) != 1 || got[0].ID != "b" {
		t.Errorf("ByColor = %+v", got)
	}
	if got := ByColorAndType(shapes, colors.FamilyRed, models.ShapeCircle); len(got) != 1 || got[0].ID != "a" {
		t.Errorf("ByColorAndType = %+v", got)
	}
	if got := NearestToPosition(shapes, 110, 110); got == nil || got.ID != "a" {
		t.Errorf("NearestToPosition = %+v, want a", got)
	}
	if got := NearestToPosition(nil, 0, 0); got != nil {
		t.Errorf("NearestToPosition(empty) = %+v, want nil", got)
	}
	if got := MostRecent(shapes); got == nil || got.ID != "b" {
		t.Errorf("MostRecent = %+v, want b", got)
	}
	if got := MostRecent(nil); got != nil {
		t.Errorf("MostRecent(empty) = %+v, want nil", got)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want Token
	}{
		{"the blue circle", Token{ColorFamily: colors.FamilyBlue, TypeToken: models.ShapeCircle, Recognized: true}},
		{"all red triangles", Token{ColorFamily: colors.FamilyRed, TypeToken: models.ShapeTriangle, All: true, Recognized: true}},
		{"every green box", Token{ColorFamily: colors.FamilyGreen, TypeToken: models.ShapeRectangle, All: true, Recognized: true}},
		{"squares", Token{TypeToken: models.ShapeRectangle, Recognized: true}},
		{"#ff0000", Token{ExactHex: "#ff0000", Recognized: true}},
		{"abc", Token{ExactHex: "#aabbcc", Recognized: true}},
		{"zorp", Token{}},
		{"", Token{}},
		{"the grey one!", Token{ColorFamily: colors.FamilyGray, Recognized: true}},
	}
	for _, tt := range tests {
		if got := Tokenize(tt.in); got != tt.want {
			t.Errorf("Tokenize(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
