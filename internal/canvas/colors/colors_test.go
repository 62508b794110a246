package colors

import (
	"testing"

	"sketchdeck-backend/internal/canvas/canvaserr"
)

func TestNormalize_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"#ff0000", "#ff0000"},
		{"#FF0000", "#ff0000"},
		{"ff0000", "#ff0000"},
		{"#abc", "#aabbcc"},
		{"abc", "#aabbcc"},
		{"red", "#ff0000"},
		{"rebeccapurple", "#663399"},
		{"  CornflowerBlue ", "#6495ed"},
		{"rgb(255, 0, 0)", "#ff0000"},
		{"rgb(300, -20, 128)", "#ff0080"},
		{"rgba(0, 0, 255, 1)", "#0000ff"},
		{"hsl(0, 100%, 50%)", "#ff0000"},
		{"hsl(120, 100%, 50%)", "#00ff00"},
		{"hsl(240, 100%, 50%)", "#0000ff"},
		{"hsl(360, 100%, 50%)", "#ff0000"},
		{"hsl(-120, 100%, 50%)", "#0000ff"},
		{"hsl(0, 0%, 100%)", "#ffffff"},
		{"hsla(0, 100%, 50%, 1)", "#ff0000"},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.input)
		if err != nil {
			t.Errorf("Normalize(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"#abc", "red", "rgb(12, 200, 7)", "hsl(200, 40%, 60%)", "teal"}
	for _, in := range inputs {
		once, err := Normalize(in)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", in, err)
		}
		twice, err := Normalize(once)
		if err != nil {
			t.Fatalf("Normalize(Normalize(%q)) error: %v", in, err)
		}
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalize_Invalid(t *testing.T) {
	tests := []string{"", "   ", "#ab", "#abcd", "notacolor", "rgb(1,2)", "cmyk(0,0,0,1)", "#gggggg"}
	for _, in := range tests {
		if _, err := Normalize(in); !canvaserr.Is(err, canvaserr.ErrInvalidColor) {
			t.Errorf("Normalize(%q) error = %v, want INVALID_COLOR", in, err)
		}
	}
}

func TestNormalize_AlphaRejected(t *testing.T) {
	tests := []string{
		"rgba(255, 0, 0, 0.5)",
		"rgba(255, 0, 0, 0)",
		"hsla(0, 100%, 50%, 0.3)",
	}
	for _, in := range tests {
		_, err := Normalize(in)
		if !canvaserr.Is(err, canvaserr.ErrUnsupportedAlpha) {
			t.Errorf("Normalize(%q) error = %v, want UNSUPPORTED_ALPHA", in, err)
		}
	}

	// opaque alpha is accepted
	if _, err := Normalize("rgba(1, 2, 3, 1)"); err != nil {
		t.Errorf("Normalize(rgba with alpha=1) error: %v", err)
	}
}

func TestIsHex(t *testing.T) {
	for _, in := range []string{"#ff0000", "ff0000", "#abc", "ABC"} {
		if !IsHex(in) {
			t.Errorf("IsHex(%q) = false, want true", in)
		}
	}
	for _, in := range []string{"red", "#ab", "rgb(1,2,3)", ""} {
		if IsHex(in) {
			t.Errorf("IsHex(%q) = true, want false", in)
		}
	}
}
