package colors

import "strings"

// Family is a named perceptual color bucket used for fuzzy descriptor matching.
type Family string

const (
	FamilyRed    Family = "red"
	FamilyOrange Family = "orange"
	FamilyYellow Family = "yellow"
	FamilyGreen  Family = "green"
	FamilyCyan   Family = "cyan"
	FamilyBlue   Family = "blue"
	FamilyPurple Family = "purple"
	FamilyPink   Family = "pink"
	FamilyBrown  Family = "brown"
	FamilyGray   Family = "gray"
	FamilyBlack  Family = "black"
	FamilyWhite  Family = "white"
)

// familyAliases maps descriptor vocabulary onto canonical families.
var familyAliases = map[string]Family{
	"red":       FamilyRed,
	"crimson":   FamilyRed,
	"scarlet":   FamilyRed,
	"maroon":    FamilyRed,
	"orange":    FamilyOrange,
	"yellow":    FamilyYellow,
	"gold":      FamilyYellow,
	"green":     FamilyGreen,
	"lime":      FamilyGreen,
	"cyan":      FamilyCyan,
	"teal":      FamilyCyan,
	"turquoise": FamilyCyan,
	"aqua":      FamilyCyan,
	"blue":      FamilyBlue,
	"navy":      FamilyBlue,
	"indigo":    FamilyPurple,
	"purple":    FamilyPurple,
	"violet":    FamilyPurple,
	"lavender":  FamilyPurple,
	"pink":      FamilyPink,
	"magenta":   FamilyPink,
	"fuchsia":   FamilyPink,
	"rose":      FamilyPink,
	"brown":     FamilyBrown,
	"tan":       FamilyBrown,
	"beige":     FamilyBrown,
	"gray":      FamilyGray,
	"grey":      FamilyGray,
	"silver":    FamilyGray,
	"black":     FamilyBlack,
	"white":     FamilyWhite,
}

// curatedFamilies pins well-known hexes to their family so that values near
// bucket boundaries still classify the way users expect. The hue-bucket
// fallback below covers everything else.
var curatedFamilies = map[Family][]string{
	FamilyRed:    {"#ff0000", "#dc143c", "#b22222", "#8b0000", "#cd5c5c", "#e74c3c", "#ef4444", "#f44336", "#800000"},
	FamilyOrange: {"#ffa500", "#ff8c00", "#ff7f50", "#ff6347", "#ff4500", "#f97316", "#e67e22", "#fb923c"},
	FamilyYellow: {"#ffff00", "#ffd700", "#f1c40f", "#facc15", "#eab308", "#fde047"},
	FamilyGreen:  {"#008000", "#00ff00", "#228b22", "#2ecc71", "#32cd32", "#90ee90", "#22c55e", "#16a34a", "#006400"},
	FamilyCyan:   {"#00ffff", "#008080", "#40e0d0", "#00ced1", "#06b6d4", "#14b8a6", "#20b2aa"},
	FamilyBlue:   {"#0000ff", "#1e90ff", "#4169e1", "#3498db", "#87ceeb", "#3b82f6", "#2563eb", "#000080", "#00008b"},
	FamilyPurple: {"#800080", "#8a2be2", "#9400d3", "#9b59b6", "#6a5acd", "#a855f7", "#8b5cf6", "#4b0082"},
	FamilyPink:   {"#ffc0cb", "#ff69b4", "#ff1493", "#ff00ff", "#db7093", "#ec4899", "#f472b6"},
	FamilyBrown:  {"#a52a2a", "#8b4513", "#d2691e", "#a0522d", "#deb887", "#d2b48c", "#92400e"},
	FamilyGray:   {"#808080", "#a9a9a9", "#c0c0c0", "#d3d3d3", "#696969", "#6b7280", "#9ca3af", "#708090"},
	FamilyBlack:  {"#000000", "#111111", "#1f2937", "#0f172a"},
	FamilyWhite:  {"#ffffff", "#fffafa", "#f5f5f5", "#fafafa", "#f8f8ff"},
}

var curatedIndex = buildCuratedIndex()

func buildCuratedIndex() map[string]Family {
	idx := make(map[string]Family)
	for fam, hexes := range curatedFamilies {
		for _, h := range hexes {
			idx[h] = fam
		}
	}
	return idx
}

// LookupFamily resolves a descriptor token to a family. Tokens that are CSS
// keywords but not direct aliases (e.g. "coral") classify through their hex.
func LookupFamily(token string) (Family, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	if fam, ok := familyAliases[t]; ok {
		return fam, true
	}
	if hex, ok := cssKeywords[t]; ok {
		if fam, ok := curatedIndex[hex]; ok {
			return fam, true
		}
		return FamilyOf(hex), true
	}
	return "", false
}

// InFamily reports whether a hex fill belongs to the named family.
// An exact curated match wins; otherwise the hue-bucket fallback decides.
func InFamily(hex string, family Family) bool {
	canonical, err := Normalize(hex)
	if err != nil {
		return false
	}
	if fam, ok := curatedIndex[canonical]; ok {
		return fam == family
	}
	return FamilyOf(canonical) == family
}

// FamilyOf buckets a canonical hex by lightness, saturation and hue.
// Thresholds (stable, relied on by tests):
//
//	lightness < 0.10                      -> black
//	lightness > 0.92 and saturation < 0.20 -> white
//	saturation < 0.12                     -> gray (black/white at the extremes)
//	hue [345,15)  -> red (pink when lightness > 0.80)
//	hue [15,45)   -> orange (brown when lightness < 0.35)
//	hue [45,70)   -> yellow
//	hue [70,160)  -> green
//	hue [160,200) -> cyan
//	hue [200,260) -> blue
//	hue [260,300) -> purple
//	hue [300,345) -> pink (purple when lightness < 0.35)
func FamilyOf(hex string) Family {
	r, g, b := hexToRGB(hex)
	h, s, l := rgbToHSL(r, g, b)

	if l < 0.10 {
		return FamilyBlack
	}
	if l > 0.92 && s < 0.20 {
		return FamilyWhite
	}
	if s < 0.12 {
		return FamilyGray
	}

	switch {
	case h >= 345 || h < 15:
		if l > 0.80 {
			return FamilyPink
		}
		return FamilyRed
	case h < 45:
		if l < 0.35 {
			return FamilyBrown
		}
		return FamilyOrange
	case h < 70:
		return FamilyYellow
	case h < 160:
		return FamilyGreen
	case h < 200:
		return FamilyCyan
	case h < 260:
		return FamilyBlue
	case h < 300:
		return FamilyPurple
	default:
		if l < 0.35 {
			return FamilyPurple
		}
		return FamilyPink
	}
}
