package command

import (
	"regexp"
	"strings"
)

// Complexity buckets for routing commands to downstream handling tiers.
// Best-effort heuristic only; nothing correctness-critical may depend on it.
const (
	ComplexitySimple  = "simple"
	ComplexityComplex = "complex"
)

// Classification is the routing hint for one command.
type Classification struct {
	Complexity string  `json:"complexity"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

var (
	explicitCoordsRe = regexp.MustCompile(`(?i)\b(?:x\s*=\s*-?\d|y\s*=\s*-?\d|at\s+-?\d+\s*,\s*-?\d+|to\s+-?\d+\s*,\s*-?\d+)`)
	explicitParamRe  = regexp.MustCompile(`(?i)\b(?:width|height|radius|size)\s*=?\s*\d`)
	descriptorRe     = regexp.MustCompile(`(?i)\b(?:the|all|every)\s+\w+`)
	multiStepRe      = regexp.MustCompile(`(?i)\b(?:and then|then|and also|after that)\b`)
	arrangementRe    = regexp.MustCompile(`(?i)\b(?:grid|row|column|stack|arrange|align|evenly)\b`)
)

// Classify buckets a command as simple (direct parameter extraction) or
// complex (needs shape identification or decomposition).
func Classify(text string) Classification {
	t := strings.TrimSpace(text)
	if t == "" {
		return Classification{Complexity: ComplexitySimple, Confidence: 0.5, Reason: "empty command"}
	}

	switch {
	case multiStepRe.MatchString(t):
		return Classification{Complexity: ComplexityComplex, Confidence: 0.9, Reason: "multi-step command"}
	case arrangementRe.MatchString(t):
		return Classification{Complexity: ComplexityComplex, Confidence: 0.85, Reason: "layout arrangement requested"}
	case explicitCoordsRe.MatchString(t) || explicitParamRe.MatchString(t):
		return Classification{Complexity: ComplexitySimple, Confidence: 0.9, Reason: "explicit parameters present"}
	case descriptorRe.MatchString(t):
		return Classification{Complexity: ComplexityComplex, Confidence: 0.7, Reason: "descriptor reference needs identification"}
	}
	return Classification{Complexity: ComplexitySimple, Confidence: 0.6, Reason: "no descriptor or decomposition detected"}
}
