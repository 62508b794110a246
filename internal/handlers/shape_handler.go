package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"sketchdeck-backend/internal/canvas/canvaserr"
	"sketchdeck-backend/internal/canvas/colors"
	"sketchdeck-backend/internal/canvas/command"
	"sketchdeck-backend/internal/canvas/history"
	"sketchdeck-backend/internal/canvas/identify"
	"sketchdeck-backend/internal/canvas/layout"
	"sketchdeck-backend/internal/canvas/mutation"
	"sketchdeck-backend/internal/canvas/shapespec"
	"sketchdeck-backend/internal/canvas/zorder"
	"sketchdeck-backend/internal/libraries"
	"sketchdeck-backend/internal/models"
	"sketchdeck-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ShapeHandler exposes the canvas core over HTTP: create, identify, edit,
// reorder, and undo/redo. Every mutation goes through the same path the
// assistant tools use: normalize, apply, record, broadcast.
type ShapeHandler struct {
	shapeRepo repo.ShapeRepoInterface
	history   *history.Boards
	hub       *libraries.Hub
}

func NewShapeHandler(shapeRepo repo.ShapeRepoInterface, boards *history.Boards, hub *libraries.Hub) *ShapeHandler {
	return &ShapeHandler{
		shapeRepo: shapeRepo,
		history:   boards,
		hub:       hub,
	}
}

// canvasErrorResponse maps core error codes onto HTTP statuses.
func canvasErrorResponse(c *fiber.Ctx, err error) error {
	var cErr *canvaserr.CanvasError
	if errors.As(err, &cErr) {
		status := fiber.StatusBadRequest
		if cErr.Code == canvaserr.ErrShapeNotFound {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error":   cErr.Message,
			"code":    cErr.Code,
			"field":   cErr.Field,
			"details": cErr.Details,
		})
	}
	log.Println(err, "Error in shape handler")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal error",
	})
}

func (h *ShapeHandler) boardID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("boardId"))
}

func (h *ShapeHandler) apply(boardID uuid.UUID, m mutation.Mutation, eventType libraries.WebSocketMessageType, payload *libraries.ShapeEventPayload) error {
	if err := h.shapeRepo.ApplyMutation(boardID, m); err != nil {
		return err
	}
	h.history.For(boardID.String()).Push(m)
	if h.hub != nil {
		h.hub.BroadcastShapeEvent(boardID.String(), eventType, payload)
	}
	return nil
}

// GetShapes returns the board snapshot ordered back to front.
func (h *ShapeHandler) GetShapes(c *fiber.Ctx) error {
	boardID, err := h.boardID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid board ID"})
	}

	shapes, err := h.shapeRepo.GetShapes(boardID)
	if err != nil {
		return canvasErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"shapes": shapes,
		"count":  len(shapes),
	})
}

// CreateShape normalizes a spec and inserts it on top of the stack. An
// omitted position centers the shape.
func (h *ShapeHandler) CreateShape(c *fiber.Ctx) error {
	boardID, err := h.boardID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid board ID"})
	}

	var spec shapespec.Spec
	if err := c.BodyParser(&spec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	normalized, err := shapespec.Normalize(spec)
	if err != nil {
		return canvasErrorResponse(c, err)
	}

	snapshot, err := h.shapeRepo.GetShapes(boardID)
	if err != nil {
		return canvasErrorResponse(c, err)
	}

	x, y := models.CanvasWidth/2, models.CanvasHeight/2
	if normalized.X != nil {
		x = *normalized.X
	}
	if normalized.Y != nil {
		y = *normalized.Y
	}

	shape := shapeFromSpec(*normalized, x, y, zorder.BringToFront(snapshot), "user")
	if err := h.apply(boardID, mutation.Create(shape), libraries.WebSocketMessageTypeShapeCreated, &libraries.ShapeEventPayload{Shape: shape}); err != nil {
		return canvasErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"shape": shape})
}

// ArrangeShapes creates a batch of shapes laid out vertically, horizontally,
// or in a grid.
func (h *ShapeHandler) ArrangeShapes(c *fiber.Ctx) error {
	boardID, err := h.boardID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid board ID"})
	}

	var dto struct {
		Shapes    []shapespec.Spec `json:"shapes"`
		Direction string           `json:"direction"`
		OriginX   float64          `json:"originX"`
		OriginY   float64          `json:"originY"`
		Spacing   *float64         `json:"spacing"`
		Rows      int              `json:"rows"`
		Cols      int              `json:"cols"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(dto.Shapes) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No shapes provided"})
	}

	specs := make([]shapespec.Normalized, 0, len(dto.Shapes))
	for _, raw := range dto.Shapes {
		n, err := shapespec.Normalize(raw)
		if err != nil {
			return canvasErrorResponse(c, err)
		}
		specs = append(specs, *n)
	}

	var positions []layout.Position
	switch strings.ToLower(dto.Direction) {
	case "vertical":
		positions = layout.Vertical(specs, layout.Options{OriginX: dto.OriginX, OriginY: dto.OriginY, Spacing: dto.Spacing})
	case "horizontal":
		positions = layout.Horizontal(specs, layout.Options{OriginX: dto.OriginX, OriginY: dto.OriginY, Spacing: dto.Spacing})
	case "grid":
		spacing := 0.0
		if dto.Spacing != nil {
			spacing = *dto.Spacing
		}
		size := 0.0
		if len(specs) > 0 {
			w, hh := specs[0].Size()
			if hh > w {
				size = hh
			} else {
				size = w
			}
		}
		positions = layout.Grid(layout.GridOptions{
			Rows: dto.Rows, Cols: dto.Cols,
			OriginX: dto.OriginX, OriginY: dto.OriginY,
			Spacing: spacing, ShapeSize: size,
		})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "direction must be vertical, horizontal, or grid"})
	}

	snapshot, err := h.shapeRepo.GetShapes(boardID)
	if err != nil {
		return canvasErrorResponse(c, err)
	}
	nextZ := zorder.BringToFront(snapshot)

	created := make([]models.Shape, 0, len(specs))
	for i, n := range specs {
		if i >= len(positions) {
			break
		}
		shape := shapeFromSpec(n, positions[i].X, positions[i].Y, nextZ, "user")
		nextZ++
		if err := h.apply(boardID, mutation.Create(shape), libraries.WebSocketMessageTypeShapeCreated, &libraries.ShapeEventPayload{Shape: shape}); err != nil {
			return canvasErrorResponse(c, err)
		}
		created = append(created, shape)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"shapes": created, "count": len(created)})
}

// IdentifyShapes resolves a descriptor against the snapshot without mutating
// anything.
func (h *ShapeHandler) IdentifyShapes(c *fiber.Ctx) error {
	boardID, err := h.boardID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid board ID"})
	}

	var dto struct {
		Descriptor   string `json:"descriptor"`
		Mode         string `json:"mode"`
		AllowPartial bool   `json:"allowPartial"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if dto.Descriptor == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "descriptor is required"})
	}

	shapes, err := h.shapeRepo.GetShapes(boardID)
	if err != nil {
		return canvasErrorResponse(c, err)
	}

	switch strings.ToLower(dto.Mode) {
	case "all":
		matches := identify.All(shapes, dto.Descriptor)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"shapes": matches, "count": len(matches)})
	case "one":
		match, err := identify.One(shapes, dto.Descriptor, dto.AllowPartial)
		if err != nil {
			return canvasErrorResponse(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"shape": match})
	default:
		// No explicit mode: the descriptor decides. "all red" fans out,
		// "the red circle" resolves to one.
		matches, multi, err := identify.Resolve(shapes, dto.Descriptor)
		if err != nil {
			if dto.AllowPartial && canvaserr.Is(err, canvaserr.ErrShapeNotFound) {
				return c.Status(fiber.StatusOK).JSON(fiber.Map{"shape": nil})
			}
			return canvasErrorResponse(c, err)
		}
		if multi {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"shapes": matches, "count": len(matches)})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"shape": &matches[0]})
	}
}

// UpdateShape patches one shape. Dimensions and positions are clamped, colors
// normalized; prior values are recorded so the patch is undoable.
func (h *ShapeHandler) UpdateShape(c *fiber.Ctx) error {
	boardID, err := h.boardID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid board ID"})
	}
	shapeID := c.Params("shapeId")

	var raw map[string]any
	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	shapes, err := h.shapeRepo.GetShapes(boardID)
	if err != nil {
		return canvasErrorResponse(c, err)
	}
	target := identify.ByID(shapes, shapeID)
	if target == nil {
		return canvasErrorResponse(c, canvaserr.NewShapeNotFound(shapeID))
	}

	patch, prev, err := buildPatch(target, raw)
	if err != nil {
		return canvasErrorResponse(c, err)
	}
	if len(patch) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No recognized fields in patch"})
	}

	payload := &libraries.ShapeEventPayload{ShapeId: target.ID, Shape: patch}
	if err := h.apply(boardID, mutation.Update(target.ID, patch, prev), libraries.WebSocketMessageTypeShapeUpdated, payload); err != nil {
		return canvasErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"shapeId": target.ID, "updated": patch})
}

// DeleteShape removes one shape by id.
func (h *ShapeHandler) DeleteShape(c *fiber.Ctx) error {
	boardID, err := h.boardID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid board ID"})
	}
	shapeID := c.Params("shapeId")

	shapes, err := h.shapeRepo.GetShapes(boardID)
	if err != nil {
		return canvasErrorResponse(c, err)
	}
	target := identify.ByID(shapes, shapeID)
	if target == nil {
		return canvasErrorResponse(c, canvaserr.NewShapeNotFound(shapeID))
	}

	payload := &libraries.ShapeEventPayload{ShapeId: target.ID}
	if err := h.apply(boardID, mutation.Delete(*target), libraries.WebSocketMessageTypeShapeDeleted, payload); err != nil {
		return canvasErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"deleted": target.ID})
}

// ReorderShape changes a shape's paint order.
func (h *ShapeHandler) ReorderShape(c *fiber.Ctx) error {
	boardID, err := h.boardID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid board ID"})
	}
	shapeID := c.Params("shapeId")

	var dto struct {
		Operation string `json:"operation"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	shapes, err := h.shapeRepo.GetShapes(boardID)
	if err != nil {
		return canvasErrorResponse(c, err)
	}
	target := identify.ByID(shapes, shapeID)
	if target == nil {
		return canvasErrorResponse(c, canvaserr.NewShapeNotFound(shapeID))
	}

	var updates, prev []mutation.ZIndexUpdate
	switch strings.ToLower(dto.Operation) {
	case "bring_to_front":
		updates = []mutation.ZIndexUpdate{{ID: target.ID, ZIndex: zorder.BringToFront(shapes)}}
		prev = []mutation.ZIndexUpdate{{ID: target.ID, ZIndex: target.ZIndex}}
	case "send_to_back":
		updates = []mutation.ZIndexUpdate{{ID: target.ID, ZIndex: zorder.SendToBack(shapes)}}
		prev = []mutation.ZIndexUpdate{{ID: target.ID, ZIndex: target.ZIndex}}
	case "bring_forward", "send_backward":
		var swap *zorder.Swap
		if strings.ToLower(dto.Operation) == "bring_forward" {
			swap = zorder.BringForward(target.ID, shapes)
		} else {
			swap = zorder.SendBackward(target.ID, shapes)
		}
		if swap == nil {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"changed": 0})
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
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown reorder operation"})
	}

	payload := &libraries.ShapeEventPayload{ShapeId: target.ID, ZIndex: &updates[0].ZIndex}
	if err := h.apply(boardID, mutation.BatchZIndex(updates, prev), libraries.WebSocketMessageTypeShapeReordered, payload); err != nil {
		return canvasErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"shapeId": target.ID, "zIndex": updates[0].ZIndex})
}

// RenormalizeShapes compacts the board's z-indexes to dense 0..N-1.
func (h *ShapeHandler) RenormalizeShapes(c *fiber.Ctx) error {
	boardID, err := h.boardID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid board ID"})
	}

	shapes, err := h.shapeRepo.GetShapes(boardID)
	if err != nil {
		return canvasErrorResponse(c, err)
	}

	current := make(map[string]int, len(shapes))
	for _, s := range shapes {
		current[s.ID] = s.ZIndex
	}
	var updates, prev []mutation.ZIndexUpdate
	for _, s := range zorder.Renormalize(shapes) {
		if current[s.ID] == s.ZIndex {
			continue
		}
		updates = append(updates, mutation.ZIndexUpdate{ID: s.ID, ZIndex: s.ZIndex})
		prev = append(prev, mutation.ZIndexUpdate{ID: s.ID, ZIndex: current[s.ID]})
	}
	if len(updates) == 0 {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"changed": 0})
	}

	if err := h.apply(boardID, mutation.BatchZIndex(updates, prev), libraries.WebSocketMessageTypeShapeReordered, &libraries.ShapeEventPayload{}); err != nil {
		return canvasErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"changed": len(updates)})
}

// Undo reverses the board's most recent mutation.
func (h *ShapeHandler) Undo(c *fiber.Ctx) error {
	return h.replay(c, func(st *history.Stack) (mutation.Mutation, bool) { return st.Undo() })
}

// Redo re-applies the most recently undone mutation.
func (h *ShapeHandler) Redo(c *fiber.Ctx) error {
	return h.replay(c, func(st *history.Stack) (mutation.Mutation, bool) { return st.Redo() })
}

func (h *ShapeHandler) replay(c *fiber.Ctx, pop func(*history.Stack) (mutation.Mutation, bool)) error {
	boardID, err := h.boardID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid board ID"})
	}

	m, ok := pop(h.history.For(boardID.String()))
	if !ok {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"applied": false})
	}

	if err := h.shapeRepo.ApplyMutation(boardID, m); err != nil {
		return canvasErrorResponse(c, err)
	}
	if h.hub != nil {
		h.hub.BroadcastShapeEvent(boardID.String(), eventFor(m), &libraries.ShapeEventPayload{ShapeId: m.ShapeID, Shape: m.Shape})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"applied": true, "kind": m.Kind})
}

// PreprocessCommand rewrites a relative command against the live snapshot and
// reports the complexity classification alongside.
func (h *ShapeHandler) PreprocessCommand(c *fiber.Ctx) error {
	boardID, err := h.boardID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid board ID"})
	}

	var dto struct {
		Text     string           `json:"text"`
		Viewport command.Viewport `json:"viewport"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if dto.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "text is required"})
	}

	shapes, err := h.shapeRepo.GetShapes(boardID)
	if err != nil {
		return canvasErrorResponse(c, err)
	}

	result := command.Preprocess(dto.Text, dto.Viewport, shapes)
	classification := command.Classify(dto.Text)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"result":         result,
		"classification": classification,
	})
}

func eventFor(m mutation.Mutation) libraries.WebSocketMessageType {
	switch m.Kind {
	case mutation.KindCreate:
		return libraries.WebSocketMessageTypeShapeCreated
	case mutation.KindDelete:
		return libraries.WebSocketMessageTypeShapeDeleted
	case mutation.KindBatchZIndex:
		return libraries.WebSocketMessageTypeShapeReordered
	}
	return libraries.WebSocketMessageTypeShapeUpdated
}

func shapeFromSpec(n shapespec.Normalized, x, y float64, zIndex int, author string) models.Shape {
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
		CreatedBy:   author,
		UpdatedAt:   now,
		UpdatedBy:   author,
	}
}

// buildPatch validates and clamps a raw patch body, returning the applied
// values and their priors.
func buildPatch(target *models.Shape, raw map[string]any) (patch, prev map[string]any, err error) {
	patch = map[string]any{}
	prev = map[string]any{}

	num := func(v any) (float64, bool) {
		f, ok := v.(float64)
		return f, ok
	}

	for key, val := range raw {
		switch key {
		case "x", "y":
			f, ok := num(val)
			if !ok {
				return nil, nil, canvaserr.NewValidation(key, "must be a number")
			}
			if key == "x" {
				cx, _ := shapespec.ClampPosition(f, 0)
				patch["x"], prev["x"] = cx, target.X
			} else {
				_, cy := shapespec.ClampPosition(0, f)
				patch["y"], prev["y"] = cy, target.Y
			}
		case "width", "height", "radius":
			f, ok := num(val)
			if !ok {
				return nil, nil, canvaserr.NewValidation(key, "must be a number")
			}
			clamped := shapespec.ClampDimension(f)
			switch key {
			case "width":
				patch["width"], prev["width"] = clamped, target.Width
			case "height":
				patch["height"], prev["height"] = clamped, target.Height
			case "radius":
				patch["radius"], prev["radius"] = clamped, target.Radius
			}
		case "fill", "stroke":
			s, ok := val.(string)
			if !ok {
				return nil, nil, canvaserr.NewValidation(key, "must be a string")
			}
			normalized, cerr := colors.Normalize(s)
			if cerr != nil {
				return nil, nil, cerr
			}
			if key == "fill" {
				patch["fill"], prev["fill"] = normalized, target.Fill
			} else {
				patch["stroke"], prev["stroke"] = normalized, target.Stroke
			}
		case "strokeWidth":
			f, ok := num(val)
			if !ok {
				return nil, nil, canvaserr.NewValidation(key, "must be a number")
			}
			if f < shapespec.MinStrokeWidth {
				f = shapespec.MinStrokeWidth
			}
			if f > shapespec.MaxStrokeWidth {
				f = shapespec.MaxStrokeWidth
			}
			patch["strokeWidth"], prev["strokeWidth"] = f, target.StrokeWidth
		case "rotation":
			f, ok := num(val)
			if !ok {
				return nil, nil, canvaserr.NewValidation(key, "must be a number")
			}
			patch["rotation"], prev["rotation"] = shapespec.NormalizeRotation(f), target.Rotation
		case "text":
			s, ok := val.(string)
			if !ok {
				return nil, nil, canvaserr.NewValidation(key, "must be a string")
			}
			patch["text"], prev["text"] = s, target.Text
		case "fontSize":
			f, ok := num(val)
			if !ok {
				return nil, nil, canvaserr.NewValidation(key, "must be a number")
			}
			if f < shapespec.MinFontSize {
				f = shapespec.MinFontSize
			}
			if f > shapespec.MaxFontSize {
				f = shapespec.MaxFontSize
			}
			patch["fontSize"], prev["fontSize"] = f, target.FontSize
		}
	}

	if len(patch) > 0 {
		patch["updatedBy"], prev["updatedBy"] = "user", target.UpdatedBy
	}
	return patch, prev, nil
}
