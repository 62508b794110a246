package colors

import "testing"

func TestFamilyOf(t *testing.T) {
	tests := []struct {
		hex  string
		want Family
	}{
		{"#ff0000", FamilyRed},
		{"#cc2211", FamilyRed},
		{"#ff9933", FamilyOrange},
		{"#ffee00", FamilyYellow},
		{"#00cc33", FamilyGreen},
		{"#00bbcc", FamilyCyan},
		{"#2244dd", FamilyBlue},
		{"#7722cc", FamilyPurple},
		{"#ff99cc", FamilyPink},
		{"#7a4a1e", FamilyBrown},
		{"#888888", FamilyGray},
		{"#0a0a0a", FamilyBlack},
		{"#fdfdfd", FamilyWhite},
	}
	for _, tt := range tests {
		if got := FamilyOf(tt.hex); got != tt.want {
			t.Errorf("FamilyOf(%q) = %q, want %q", tt.hex, got, tt.want)
		}
	}
}

func TestInFamily(t *testing.T) {
	tests := []struct {
		hex    string
		family Family
		want   bool
	}{
		{"#ff0000", FamilyRed, true},
		{"#dc143c", FamilyRed, true},
		{"#0000ff", FamilyRed, false},
		{"#0000ff", FamilyBlue, true},
		{"#3498db", FamilyBlue, true},
		{"#008080", FamilyCyan, true},
		{"#ffc0cb", FamilyPink, true},
		// non-curated value falls through to the hue buckets
		{"#e63946", FamilyRed, true},
		{"not-a-color", FamilyRed, false},
	}
	for _, tt := range tests {
		if got := InFamily(tt.hex, tt.family); got != tt.want {
			t.Errorf("InFamily(%q, %q) = %v, want %v", tt.hex, tt.family, got, tt.want)
		}
	}
}

func TestLookupFamily(t *testing.T) {
	tests := []struct {
		token string
		want  Family
		ok    bool
	}{
		{"red", FamilyRed, true},
		{"grey", FamilyGray, true},
		{"violet", FamilyPurple, true},
		{"teal", FamilyCyan, true},
		// CSS keyword with no direct alias classifies through its hex
		{"tomato", FamilyOrange, true},
		{"blurple", "", false},
	}
	for _, tt := range tests {
		got, ok := LookupFamily(tt.token)
		if ok != tt.ok || got != tt.want {
			t.Errorf("LookupFamily(%q) = (%q, %v), want (%q, %v)", tt.token, got, ok, tt.want, tt.ok)
		}
	}
}
