// Package command rewrites relative natural-language commands into
// absolute-parameter commands before they reach the AI tool layer, and
// classifies command complexity for routing.
package command

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"sketchdeck-backend/internal/canvas/identify"
	"sketchdeck-backend/internal/models"
)

// Viewport describes the client's current view of the canvas.
type Viewport struct {
	Scale       float64 `json:"scale"`
	PanX        float64 `json:"panX"`
	PanY        float64 `json:"panY"`
	StageWidth  float64 `json:"stageWidth"`
	StageHeight float64 `json:"stageHeight"`
}

// VisibleCenter returns the canvas coordinate at the center of the visible
// stage, accounting for pan and zoom.
func (v Viewport) VisibleCenter() (x, y float64) {
	scale := v.Scale
	if scale <= 0 {
		scale = 1
	}
	w := v.StageWidth
	if w <= 0 {
		w = models.CanvasWidth
	}
	h := v.StageHeight
	if h <= 0 {
		h = models.CanvasHeight
	}
	return (w/2 - v.PanX) / scale, (h/2 - v.PanY) / scale
}

// Result carries the rewritten command plus the calculations that produced it,
// so the assistant can explain what it did.
type Result struct {
	Rewritten    string   `json:"rewritten"`
	Calculations []string `json:"calculations,omitempty"`
	Intent       string   `json:"intent"`
}

var (
	moveCenterRe = regexp.MustCompile(`(?i)^move\s+(?:the\s+)?(.+?)\s+to\s+(?:the\s+)?(?:center|middle)(?:\s+of\s+the\s+(?:canvas|screen|board|view))?\s*$`)
	resizeRe     = regexp.MustCompile(`(?i)^(?:resize|make)\s+(?:the\s+)?(.+?)\s+(?:to\s+be\s+)?(twice|half|double|(\d+(?:\.\d+)?)\s*(?:x|times))\s+(?:as\s+)?(?:big|large|small)\s*$`)
)

// Preprocess rewrites a small fixed set of relative-reference commands into
// absolute ones using the viewport center or the target shape's current size.
// Commands matching no pattern fall through unchanged.
func Preprocess(text string, vp Viewport, shapes []models.Shape) Result {
	trimmed := strings.TrimSpace(text)

	if m := moveCenterRe.FindStringSubmatch(trimmed); m != nil {
		cx, cy := vp.VisibleCenter()
		return Result{
			Rewritten: fmt.Sprintf("move %s to x=%.0f y=%.0f", m[1], cx, cy),
			Calculations: []string{
				fmt.Sprintf("visible center = (%.0f, %.0f)", cx, cy),
			},
			Intent: "move_to_center",
		}
	}

	if m := resizeRe.FindStringSubmatch(trimmed); m != nil {
		factor, ok := parseFactor(m[2], m[3])
		if ok {
			if rewritten, calcs, ok := rewriteResize(m[1], factor, shapes); ok {
				return Result{Rewritten: rewritten, Calculations: calcs, Intent: "resize_relative"}
			}
		}
	}

	return Result{Rewritten: text, Intent: "passthrough"}
}

func parseFactor(word, number string) (float64, bool) {
	switch strings.ToLower(word) {
	case "twice", "double":
		return 2, true
	case "half":
		return 0.5, true
	}
	if number != "" {
		if f, err := strconv.ParseFloat(number, 64); err == nil && f > 0 {
			return f, true
		}
	}
	return 0, false
}

// rewriteResize resolves the descriptor against the snapshot and scales the
// shape's current dimensions. Falls through when the shape cannot be resolved.
func rewriteResize(descriptor string, factor float64, shapes []models.Shape) (string, []string, bool) {
	target, err := identify.One(shapes, descriptor, true)
	if err != nil || target == nil {
		return "", nil, false
	}

	if target.Type == models.ShapeCircle {
		newRadius := target.Radius * factor
		return fmt.Sprintf("resize %s to radius=%.0f", descriptor, newRadius),
			[]string{fmt.Sprintf("radius %.0f x %g = %.0f", target.Radius, factor, newRadius)},
			true
	}

	newW := target.Width * factor
	newH := target.Height * factor
	return fmt.Sprintf("resize %s to width=%.0f height=%.0f", descriptor, newW, newH),
		[]string{fmt.Sprintf("size %.0fx%.0f x %g = %.0fx%.0f", target.Width, target.Height, factor, newW, newH)},
		true
}
