package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sketchdeck-backend/internal/canvas/colors"
	"sketchdeck-backend/internal/canvas/history"
	"sketchdeck-backend/internal/canvas/identify"
	"sketchdeck-backend/internal/canvas/layout"
	"sketchdeck-backend/internal/canvas/mutation"
	"sketchdeck-backend/internal/canvas/shapespec"
	"sketchdeck-backend/internal/canvas/zorder"
	"sketchdeck-backend/internal/libraries"
	llmHandlers "sketchdeck-backend/internal/llm_handlers"
	"sketchdeck-backend/internal/models"
	"sketchdeck-backend/internal/repo"

	"github.com/google/uuid"
)

// Deps wires the tool handlers to the store, the undo history, and the
// realtime hub. Set once at startup via RegisterAllTools.
type Deps struct {
	Shapes  repo.ShapeRepoInterface
	History *history.Boards
	Hub     *libraries.Hub
}

var deps Deps

// RegisterAllTools registers every canvas tool with the llm handler registry.
func RegisterAllTools(d Deps) {
	deps = d

	llmHandlers.RegisterTool("getBoardShapes", getBoardShapesHandler)
	llmHandlers.RegisterTool("getBoardData", getBoardDataHandler)
	llmHandlers.RegisterTool("createShape", createShapeHandler)
	llmHandlers.RegisterTool("createShapes", createShapesHandler)
	llmHandlers.RegisterTool("identifyShapes", identifyShapesHandler)
	llmHandlers.RegisterTool("moveShape", moveShapeHandler)
	llmHandlers.RegisterTool("resizeShape", resizeShapeHandler)
	llmHandlers.RegisterTool("recolorShape", recolorShapeHandler)
	llmHandlers.RegisterTool("rotateShape", rotateShapeHandler)
	llmHandlers.RegisterTool("deleteShapes", deleteShapesHandler)
	llmHandlers.RegisterTool("reorderShape", reorderShapeHandler)
}

// apply persists a mutation, records it for undo, and announces it.
func apply(boardID uuid.UUID, m mutation.Mutation, eventType libraries.WebSocketMessageType, payload *libraries.ShapeEventPayload) error {
	if err := deps.Shapes.ApplyMutation(boardID, m); err != nil {
		return err
	}
	deps.History.For(boardID.String()).Push(m)
	if deps.Hub != nil {
		deps.Hub.BroadcastShapeEvent(boardID.String(), eventType, payload)
	}
	return nil
}

func parseBoardID(input map[string]interface{}) (uuid.UUID, error) {
	raw, ok := input["boardId"].(string)
	if !ok || raw == "" {
		return uuid.Nil, fmt.Errorf("boardId is required")
	}
	boardID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid boardId: %w", err)
	}
	return boardID, nil
}

func numField(input map[string]interface{}, key string) (float64, bool) {
	if v, ok := input[key].(float64); ok {
		return v, true
	}
	return 0, false
}

func strField(input map[string]interface{}, key string) string {
	s, _ := input[key].(string)
	return s
}

// resolveTarget finds one shape by explicit id or by descriptor.
func resolveTarget(shapes []models.Shape, input map[string]interface{}) (*models.Shape, error) {
	if id := strField(input, "shapeId"); id != "" {
		if s := identify.ByID(shapes, id); s != nil {
			return s, nil
		}
		return nil, fmt.Errorf("no shape with id %s", id)
	}
	descriptor := strField(input, "descriptor")
	if descriptor == "" {
		return nil, fmt.Errorf("shapeId or descriptor is required")
	}
	return identify.One(shapes, descriptor, false)
}

func getBoardShapesHandler(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	boardID, err := parseBoardID(input)
	if err != nil {
		return nil, err
	}
	shapes, err := deps.Shapes.GetShapes(boardID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"count":  len(shapes),
		"shapes": shapes,
	}, nil
}

func getBoardDataHandler(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	boardId, ok := input["boardId"].(string)
	if !ok {
		return nil, fmt.Errorf("boardId is required")
	}
	boardData, err := GetBoardSnapshot(boardId)
	if err != nil {
		return nil, fmt.Errorf("failed to get board data: %w", err)
	}

	// _imageContent tells the provider layer to format this as image blocks
	return map[string]interface{}{
		"_imageContent": true,
		"boardId":       boardData["boardId"],
		"image":         boardData["image"],
		"format":        boardData["format"],
	}, nil
}

// specFromInput maps tool input fields onto a raw shape spec.
func specFromInput(input map[string]interface{}) shapespec.Spec {
	spec := shapespec.Spec{
		Type:  strField(input, "type"),
		Color: strField(input, "color"),
		Text:  strField(input, "text"),
	}
	if v, ok := numField(input, "x"); ok {
		spec.X = &v
	}
	if v, ok := numField(input, "y"); ok {
		spec.Y = &v
	}
	if v, ok := numField(input, "width"); ok {
		spec.Width = &v
	}
	if v, ok := numField(input, "height"); ok {
		spec.Height = &v
	}
	if v, ok := numField(input, "radius"); ok {
		spec.Radius = &v
	}
	if v, ok := numField(input, "fontSize"); ok {
		spec.FontSize = &v
	}
	if s := strField(input, "stroke"); s != "" {
		spec.Stroke = s
	}
	if v, ok := numField(input, "strokeWidth"); ok {
		spec.StrokeWidth = &v
	}
	if v, ok := numField(input, "rotation"); ok {
		spec.Rotation = &v
	}
	return spec
}

// materialize turns a normalized spec plus a position into a storable shape.
func materialize(n shapespec.Normalized, x, y float64, zIndex int) models.Shape {
	now := time.Now()
	return models.Shape{
		ID:          uuid.NewString(),
		Type:        n.Type,
		X:           x,
		Y:           y,
		Width:       n.Width,
		Height:      n.Height,
		Radius:      n.Radius,
		Fill:        n.Fill,
		Stroke:      n.Stroke,
		StrokeWidth: n.StrokeWidth,
		Text:        n.Text,
		FontSize:    n.FontSize,
		Rotation:    n.Rotation,
		ZIndex:      zIndex,
		CreatedAt:   now,
		CreatedBy:   "assistant",
		UpdatedAt:   now,
		UpdatedBy:   "assistant",
	}
}

func createShapeHandler(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	boardID, err := parseBoardID(input)
	if err != nil {
		return nil, err
	}

	normalized, err := shapespec.Normalize(specFromInput(input))
	if err != nil {
		return nil, err
	}

	snapshot, err := deps.Shapes.GetShapes(boardID)
	if err != nil {
		return nil, err
	}

	// Omitted position centers the shape in the default viewport.
	x, y := models.CanvasWidth/2, models.CanvasHeight/2
	if normalized.X != nil {
		x = *normalized.X
	}
	if normalized.Y != nil {
		y = *normalized.Y
	}

	shape := materialize(*normalized, x, y, zorder.BringToFront(snapshot))
	m := mutation.Create(shape)
	if err := apply(boardID, m, libraries.WebSocketMessageTypeShapeCreated, &libraries.ShapeEventPayload{Shape: shape}); err != nil {
		return nil, err
	}

	return map[string]interface{}{"created": shape}, nil
}

func createShapesHandler(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	boardID, err := parseBoardID(input)
	if err != nil {
		return nil, err
	}

	rawShapes, ok := input["shapes"].([]interface{})
	if !ok || len(rawShapes) == 0 {
		return nil, fmt.Errorf("shapes is required")
	}

	specs := make([]shapespec.Normalized, 0, len(rawShapes))
	for i, raw := range rawShapes {
		item, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("shapes[%d] is not an object", i)
		}
		n, err := shapespec.Normalize(specFromInput(item))
		if err != nil {
			return nil, fmt.Errorf("shapes[%d]: %w", i, err)
		}
		specs = append(specs, *n)
	}

	direction := strings.ToLower(strField(input, "direction"))
	originX, _ := numField(input, "originX")
	originY, _ := numField(input, "originY")

	var positions []layout.Position
	switch direction {
	case "vertical", "horizontal":
		opts := layout.Options{OriginX: originX, OriginY: originY}
		if v, ok := numField(input, "spacing"); ok {
			opts.Spacing = &v
		}
		if direction == "vertical" {
			positions = layout.Vertical(specs, opts)
		} else {
			positions = layout.Horizontal(specs, opts)
		}
	case "grid":
		rows, _ := numField(input, "rows")
		cols, _ := numField(input, "cols")
		spacing, _ := numField(input, "spacing")
		shapeSize := 0.0
		if len(specs) > 0 {
			w, h := specs[0].Size()
			if h > w {
				shapeSize = h
			} else {
				shapeSize = w
			}
		}
		positions = layout.Grid(layout.GridOptions{
			Rows:      int(rows),
			Cols:      int(cols),
			OriginX:   originX,
			OriginY:   originY,
			Spacing:   spacing,
			ShapeSize: shapeSize,
		})
	default:
		return nil, fmt.Errorf("direction must be vertical, horizontal, or grid")
	}

	snapshot, err := deps.Shapes.GetShapes(boardID)
	if err != nil {
		return nil, err
	}
	nextZ := zorder.BringToFront(snapshot)

	created := make([]models.Shape, 0, len(specs))
	for i, n := range specs {
		if i >= len(positions) {
			break
		}
		shape := materialize(n, positions[i].X, positions[i].Y, nextZ)
		nextZ++
		m := mutation.Create(shape)
		if err := apply(boardID, m, libraries.WebSocketMessageTypeShapeCreated, &libraries.ShapeEventPayload{Shape: shape}); err != nil {
			return nil, err
		}
		created = append(created, shape)
	}

	return map[string]interface{}{"created": created, "count": len(created)}, nil
}

func identifyShapesHandler(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	boardID, err := parseBoardID(input)
	if err != nil {
		return nil, err
	}
	descriptor := strField(input, "descriptor")
	if descriptor == "" {
		return nil, fmt.Errorf("descriptor is required")
	}

	shapes, err := deps.Shapes.GetShapes(boardID)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(strField(input, "mode")) {
	case "all":
		matches := identify.All(shapes, descriptor)
		return map[string]interface{}{"shapes": matches, "count": len(matches)}, nil
	case "one":
		match, err := identify.One(shapes, descriptor, false)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"shape": match}, nil
	default:
		matches, multi, err := identify.Resolve(shapes, descriptor)
		if err != nil {
			return nil, err
		}
		if multi {
			return map[string]interface{}{"shapes": matches, "count": len(matches)}, nil
		}
		return map[string]interface{}{"shape": &matches[0]}, nil
	}
}

// patchShape applies an update mutation recording prior values for undo.
func patchShape(boardID uuid.UUID, target *models.Shape, patch, prev map[string]any) (interface{}, error) {
	m := mutation.Update(target.ID, patch, prev)
	payload := &libraries.ShapeEventPayload{ShapeId: target.ID, Shape: patch}
	if err := apply(boardID, m, libraries.WebSocketMessageTypeShapeUpdated, payload); err != nil {
		return nil, err
	}
	return map[string]interface{}{"shapeId": target.ID, "updated": patch}, nil
}

func moveShapeHandler(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	boardID, err := parseBoardID(input)
	if err != nil {
		return nil, err
	}
	x, okX := numField(input, "x")
	y, okY := numField(input, "y")
	if !okX || !okY {
		return nil, fmt.Errorf("x and y are required")
	}

	shapes, err := deps.Shapes.GetShapes(boardID)
	if err != nil {
		return nil, err
	}
	target, err := resolveTarget(shapes, input)
	if err != nil {
		return nil, err
	}

	cx, cy := shapespec.ClampPosition(x, y)
	patch := map[string]any{"x": cx, "y": cy, "updatedBy": "assistant"}
	prev := map[string]any{"x": target.X, "y": target.Y, "updatedBy": target.UpdatedBy}
	return patchShape(boardID, target, patch, prev)
}

func resizeShapeHandler(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	boardID, err := parseBoardID(input)
	if err != nil {
		return nil, err
	}

	shapes, err := deps.Shapes.GetShapes(boardID)
	if err != nil {
		return nil, err
	}
	target, err := resolveTarget(shapes, input)
	if err != nil {
		return nil, err
	}

	patch := map[string]any{"updatedBy": "assistant"}
	prev := map[string]any{"updatedBy": target.UpdatedBy}

	if target.Type == models.ShapeCircle {
		radius, ok := numField(input, "radius")
		if !ok {
			return nil, fmt.Errorf("radius is required for circles")
		}
		patch["radius"] = shapespec.ClampDimension(radius)
		prev["radius"] = target.Radius
	} else {
		w, okW := numField(input, "width")
		h, okH := numField(input, "height")
		if !okW && !okH {
			return nil, fmt.Errorf("width or height is required")
		}
		if okW {
			patch["width"] = shapespec.ClampDimension(w)
			prev["width"] = target.Width
		}
		if okH {
			patch["height"] = shapespec.ClampDimension(h)
			prev["height"] = target.Height
		}
	}

	return patchShape(boardID, target, patch, prev)
}

func recolorShapeHandler(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	boardID, err := parseBoardID(input)
	if err != nil {
		return nil, err
	}
	color := strField(input, "color")
	if color == "" {
		return nil, fmt.Errorf("color is required")
	}
	fill, err := colors.Normalize(color)
	if err != nil {
		return nil, err
	}

	shapes, err := deps.Shapes.GetShapes(boardID)
	if err != nil {
		return nil, err
	}
	target, err := resolveTarget(shapes, input)
	if err != nil {
		return nil, err
	}

	patch := map[string]any{"fill": fill, "updatedBy": "assistant"}
	prev := map[string]any{"fill": target.Fill, "updatedBy": target.UpdatedBy}
	return patchShape(boardID, target, patch, prev)
}

func rotateShapeHandler(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	boardID, err := parseBoardID(input)
	if err != nil {
		return nil, err
	}
	rotation, ok := numField(input, "rotation")
	if !ok {
		return nil, fmt.Errorf("rotation is required")
	}

	shapes, err := deps.Shapes.GetShapes(boardID)
	if err != nil {
		return nil, err
	}
	target, err := resolveTarget(shapes, input)
	if err != nil {
		return nil, err
	}

	patch := map[string]any{"rotation": shapespec.NormalizeRotation(rotation), "updatedBy": "assistant"}
	prev := map[string]any{"rotation": target.Rotation, "updatedBy": target.UpdatedBy}
	return patchShape(boardID, target, patch, prev)
}

func deleteShapesHandler(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	boardID, err := parseBoardID(input)
	if err != nil {
		return nil, err
	}
	descriptor := strField(input, "descriptor")
	if descriptor == "" {
		return nil, fmt.Errorf("descriptor is required")
	}

	shapes, err := deps.Shapes.GetShapes(boardID)
	if err != nil {
		return nil, err
	}

	// "delete the red circle" removes one shape; "delete all red" removes
	// every match.
	matches, _, err := identify.Resolve(shapes, descriptor)
	if err != nil {
		return nil, err
	}
	deleted := make([]string, 0, len(matches))
	for _, s := range matches {
		m := mutation.Delete(s)
		payload := &libraries.ShapeEventPayload{ShapeId: s.ID}
		if err := apply(boardID, m, libraries.WebSocketMessageTypeShapeDeleted, payload); err != nil {
			return nil, err
		}
		deleted = append(deleted, s.ID)
	}

	return map[string]interface{}{"deleted": deleted, "count": len(deleted)}, nil
}

func reorderShapeHandler(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	boardID, err := parseBoardID(input)
	if err != nil {
		return nil, err
	}
	operation := strings.ToLower(strField(input, "operation"))

	shapes, err := deps.Shapes.GetShapes(boardID)
	if err != nil {
		return nil, err
	}

	if operation == "renormalize" {
		updates, prev := renormalizeUpdates(shapes)
		if len(updates) == 0 {
			return map[string]interface{}{"changed": 0}, nil
		}
		m := mutation.BatchZIndex(updates, prev)
		if err := apply(boardID, m, libraries.WebSocketMessageTypeShapeReordered, &libraries.ShapeEventPayload{}); err != nil {
			return nil, err
		}
		return map[string]interface{}{"changed": len(updates)}, nil
	}

	target, err := resolveTarget(shapes, input)
	if err != nil {
		return nil, err
	}

	var updates, prev []mutation.ZIndexUpdate
	switch operation {
	case "bring_to_front":
		z := zorder.BringToFront(shapes)
		updates = []mutation.ZIndexUpdate{{ID: target.ID, ZIndex: z}}
		prev = []mutation.ZIndexUpdate{{ID: target.ID, ZIndex: target.ZIndex}}
	case "send_to_back":
		z := zorder.SendToBack(shapes)
		updates = []mutation.ZIndexUpdate{{ID: target.ID, ZIndex: z}}
		prev = []mutation.ZIndexUpdate{{ID: target.ID, ZIndex: target.ZIndex}}
	case "bring_forward", "send_backward":
		var swap *zorder.Swap
		if operation == "bring_forward" {
			swap = zorder.BringForward(target.ID, shapes)
		} else {
			swap = zorder.SendBackward(target.ID, shapes)
		}
		if swap == nil {
			return map[string]interface{}{"changed": 0, "note": "already at the boundary"}, nil
		}
		updates = []mutation.ZIndexUpdate{
			{ID: swap.ShapeID, ZIndex: swap.NewZIndex},
			{ID: swap.SwapShapeID, ZIndex: swap.SwapZIndex},
		}
		prev = []mutation.ZIndexUpdate{
			{ID: swap.ShapeID, ZIndex: swap.SwapZIndex},
			{ID: swap.SwapShapeID, ZIndex: swap.NewZIndex},
		}
	default:
		return nil, fmt.Errorf("unknown operation %q", operation)
	}

	m := mutation.BatchZIndex(updates, prev)
	payload := &libraries.ShapeEventPayload{ShapeId: target.ID, ZIndex: &updates[0].ZIndex}
	if err := apply(boardID, m, libraries.WebSocketMessageTypeShapeReordered, payload); err != nil {
		return nil, err
	}
	return map[string]interface{}{"shapeId": target.ID, "zIndex": updates[0].ZIndex}, nil
}

// renormalizeUpdates diffs the dense reassignment against current values.
func renormalizeUpdates(shapes []models.Shape) (updates, prev []mutation.ZIndexUpdate) {
	current := make(map[string]int, len(shapes))
	for _, s := range shapes {
		current[s.ID] = s.ZIndex
	}
	for _, s := range zorder.Renormalize(shapes) {
		if current[s.ID] == s.ZIndex {
			continue
		}
		updates = append(updates, mutation.ZIndexUpdate{ID: s.ID, ZIndex: s.ZIndex})
		prev = append(prev, mutation.ZIndexUpdate{ID: s.ID, ZIndex: current[s.ID]})
	}
	return updates, prev
}
