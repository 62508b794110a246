package identify

import (
	"regexp"
	"strings"

	"sketchdeck-backend/internal/canvas/colors"
	"sketchdeck-backend/internal/canvas/shapespec"
	"sketchdeck-backend/internal/models"
)

// Token is the parsed form of a descriptor. Keeping it an explicit structure
// (instead of ad hoc regex chains) keeps the matching rules auditable.
type Token struct {
	ColorFamily colors.Family    // recognized color family, "" when absent
	TypeToken   models.ShapeType // recognized shape type, "" when absent
	All         bool             // descriptor started with "all"/"every"
	ExactHex    string           // descriptor parsed as a literal hex color
	Recognized  bool             // at least one token matched a vocabulary
}

var punctRe = regexp.MustCompile(`[^\w#\s]`)

// stopwords are filler words descriptors commonly carry.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "shape": true, "shapes": true,
	"one": true, "ones": true, "thing": true, "things": true,
}

// Tokenize lowercases and strips punctuation from a descriptor, then splits it
// into color and type candidates against the family and type-alias
// vocabularies. A descriptor that is itself a hex color takes the exact-hex
// fast path and skips family matching entirely.
func Tokenize(descriptor string) Token {
	var tok Token

	s := strings.ToLower(strings.TrimSpace(descriptor))
	s = punctRe.ReplaceAllString(s, " ")
	words := strings.Fields(s)
	if len(words) == 0 {
		return tok
	}

	if words[0] == "all" || words[0] == "every" {
		tok.All = true
		words = words[1:]
	}

	for _, w := range words {
		if stopwords[w] {
			continue
		}

		if colors.IsHex(w) {
			if hex, err := colors.Normalize(w); err == nil {
				tok.ExactHex = hex
				tok.Recognized = true
				continue
			}
		}

		if tok.ColorFamily == "" {
			if fam, ok := colors.LookupFamily(w); ok {
				tok.ColorFamily = fam
				tok.Recognized = true
				continue
			}
		}

		if tok.TypeToken == "" {
			if st, ok := resolveTypeNoun(w); ok {
				tok.TypeToken = st
				tok.Recognized = true
				continue
			}
		}
	}

	return tok
}

// resolveTypeNoun resolves a type alias, singularizing plural nouns
// ("circles" -> "circle", "boxes" -> "box") before lookup.
func resolveTypeNoun(word string) (models.ShapeType, bool) {
	if st, ok := shapespec.ResolveType(word); ok {
		return st, true
	}
	if stem, ok := strings.CutSuffix(word, "es"); ok {
		if st, ok := shapespec.ResolveType(stem); ok {
			return st, true
		}
	}
	if stem, ok := strings.CutSuffix(word, "s"); ok {
		if st, ok := shapespec.ResolveType(stem); ok {
			return st, true
		}
	}
	return "", false
}
