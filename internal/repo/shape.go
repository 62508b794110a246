package repo

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sketchdeck-backend/internal/canvas/mutation"
	"sketchdeck-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ShapeRepo is the persistence side of the shape store. The canvas core never
// touches it; handlers and AI tools apply the core's mutation descriptions here.
type ShapeRepo struct {
	db *gorm.DB
}

type ShapeRepoInterface interface {
	GetShapes(boardID uuid.UUID) ([]models.Shape, error)
	ApplyMutation(boardID uuid.UUID, m mutation.Mutation) error
	BatchUpdateZIndex(boardID uuid.UUID, updates []mutation.ZIndexUpdate) error
	ClearBoard(boardID uuid.UUID) error
}

func NewShapeRepository(db *gorm.DB) ShapeRepoInterface {
	return &ShapeRepo{db: db}
}

// GetShapes returns a snapshot of the board ordered back to front.
func (r *ShapeRepo) GetShapes(boardID uuid.UUID) ([]models.Shape, error) {
	var records []models.ShapeRecord
	err := r.db.Where("board_id = ?", boardID).Order("z_index asc").Find(&records).Error
	if err != nil {
		return nil, err
	}

	shapes := make([]models.Shape, 0, len(records))
	for _, rec := range records {
		shape, err := decodeShape(rec)
		if err != nil {
			return nil, fmt.Errorf("decode shape %s: %w", rec.UUID, err)
		}
		shapes = append(shapes, shape)
	}
	return shapes, nil
}

// ApplyMutation applies one mutation description to the store.
func (r *ShapeRepo) ApplyMutation(boardID uuid.UUID, m mutation.Mutation) error {
	switch m.Kind {
	case mutation.KindCreate:
		return r.createShape(boardID, *m.Shape)
	case mutation.KindUpdate:
		return r.updateShape(boardID, m.ShapeID, m.Patch)
	case mutation.KindDelete:
		return r.deleteShape(boardID, m.ShapeID)
	case mutation.KindBatchZIndex:
		return r.BatchUpdateZIndex(boardID, m.ZIndex)
	default:
		return fmt.Errorf("unsupported mutation kind: %s", m.Kind)
	}
}

func (r *ShapeRepo) createShape(boardID uuid.UUID, shape models.Shape) error {
	shapeUUID, err := uuid.Parse(shape.ID)
	if err != nil {
		return fmt.Errorf("invalid shape id %q: %w", shape.ID, err)
	}

	rec, err := encodeShape(boardID, shapeUUID, shape)
	if err != nil {
		return err
	}

	// upsert: a re-created shape (redo after undo) keeps its id
	var existing models.ShapeRecord
	result := r.db.Where("uuid = ?", shapeUUID).First(&existing)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return r.db.Create(rec).Error
	} else if result.Error != nil {
		return result.Error
	}

	rec.CreatedAt = existing.CreatedAt
	return r.db.Model(&existing).Updates(rec).Error
}

func (r *ShapeRepo) updateShape(boardID uuid.UUID, shapeID string, patch map[string]any) error {
	shapeUUID, err := uuid.Parse(shapeID)
	if err != nil {
		return fmt.Errorf("invalid shape id %q: %w", shapeID, err)
	}

	var rec models.ShapeRecord
	if err := r.db.Where("uuid = ? AND board_id = ?", shapeUUID, boardID).First(&rec).Error; err != nil {
		return err
	}

	shape, err := decodeShape(rec)
	if err != nil {
		return err
	}
	applyPatch(&shape, patch)

	updated, err := encodeShape(boardID, shapeUUID, shape)
	if err != nil {
		return err
	}
	updated.CreatedAt = rec.CreatedAt
	return r.db.Model(&rec).Updates(updated).Error
}

func (r *ShapeRepo) deleteShape(boardID uuid.UUID, shapeID string) error {
	shapeUUID, err := uuid.Parse(shapeID)
	if err != nil {
		return fmt.Errorf("invalid shape id %q: %w", shapeID, err)
	}
	return r.db.Where("uuid = ? AND board_id = ?", shapeUUID, boardID).Delete(&models.ShapeRecord{}).Error
}

// BatchUpdateZIndex reassigns z-indexes in one transaction so a swap or a
// renormalize never lands partially.
func (r *ShapeRepo) BatchUpdateZIndex(boardID uuid.UUID, updates []mutation.ZIndexUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			shapeUUID, err := uuid.Parse(u.ID)
			if err != nil {
				return fmt.Errorf("invalid shape id %q: %w", u.ID, err)
			}
			if err := tx.Model(&models.ShapeRecord{}).
				Where("uuid = ? AND board_id = ?", shapeUUID, boardID).
				Updates(map[string]any{"z_index": u.ZIndex, "updated_at": time.Now()}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ShapeRepo) ClearBoard(boardID uuid.UUID) error {
	return r.db.Where("board_id = ?", boardID).Delete(&models.ShapeRecord{}).Error
}

// encodeShape packs the geometry/style fields into the JSON payload column.
func encodeShape(boardID, shapeUUID uuid.UUID, shape models.Shape) (*models.ShapeRecord, error) {
	payload := map[string]any{
		"x":    shape.X,
		"y":    shape.Y,
		"fill": shape.Fill,
	}

	switch shape.Type {
	case models.ShapeCircle:
		payload["radius"] = shape.Radius
	case models.ShapeRectangle, models.ShapeTriangle:
		payload["width"] = shape.Width
		payload["height"] = shape.Height
	case models.ShapeText:
		payload["width"] = shape.Width
		payload["height"] = shape.Height
		payload["text"] = shape.Text
		payload["fontSize"] = shape.FontSize
	default:
		return nil, fmt.Errorf("unsupported shape type: %s", shape.Type)
	}

	if shape.Stroke != "" {
		payload["stroke"] = shape.Stroke
		payload["strokeWidth"] = shape.StrokeWidth
	}
	if shape.Rotation != 0 {
		payload["rotation"] = shape.Rotation
	}

	bytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	createdAt := shape.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	return &models.ShapeRecord{
		UUID:      shapeUUID,
		BoardID:   boardID,
		Type:      shape.Type,
		Data:      datatypes.JSON(bytes),
		ZIndex:    shape.ZIndex,
		CreatedAt: createdAt,
		CreatedBy: shape.CreatedBy,
		UpdatedAt: now,
		UpdatedBy: shape.UpdatedBy,
	}, nil
}

func decodeShape(rec models.ShapeRecord) (models.Shape, error) {
	var payload struct {
		X           float64 `json:"x"`
		Y           float64 `json:"y"`
		Width       float64 `json:"width"`
		Height      float64 `json:"height"`
		Radius      float64 `json:"radius"`
		Fill        string  `json:"fill"`
		Stroke      string  `json:"stroke"`
		StrokeWidth float64 `json:"strokeWidth"`
		Text        string  `json:"text"`
		FontSize    float64 `json:"fontSize"`
		Rotation    float64 `json:"rotation"`
	}
	if err := json.Unmarshal(rec.Data, &payload); err != nil {
		return models.Shape{}, err
	}

	return models.Shape{
		ID:          rec.UUID.String(),
		Type:        rec.Type,
		X:           payload.X,
		Y:           payload.Y,
		Width:       payload.Width,
		Height:      payload.Height,
		Radius:      payload.Radius,
		Fill:        payload.Fill,
		Stroke:      payload.Stroke,
		StrokeWidth: payload.StrokeWidth,
		Text:        payload.Text,
		FontSize:    payload.FontSize,
		Rotation:    payload.Rotation,
		ZIndex:      rec.ZIndex,
		CreatedAt:   rec.CreatedAt,
		CreatedBy:   rec.CreatedBy,
		UpdatedAt:   rec.UpdatedAt,
		UpdatedBy:   rec.UpdatedBy,
	}, nil
}

// applyPatch writes known patch keys onto the decoded shape. Unknown keys are
// ignored; validation happened upstream in the canvas core.
func applyPatch(shape *models.Shape, patch map[string]any) {
	for key, val := range patch {
		switch key {
		case "x":
			shape.X = toFloat(val)
		case "y":
			shape.Y = toFloat(val)
		case "width":
			shape.Width = toFloat(val)
		case "height":
			shape.Height = toFloat(val)
		case "radius":
			shape.Radius = toFloat(val)
		case "fill":
			if s, ok := val.(string); ok {
				shape.Fill = s
			}
		case "stroke":
			if s, ok := val.(string); ok {
				shape.Stroke = s
			}
		case "strokeWidth":
			shape.StrokeWidth = toFloat(val)
		case "text":
			if s, ok := val.(string); ok {
				shape.Text = s
			}
		case "fontSize":
			shape.FontSize = toFloat(val)
		case "rotation":
			shape.Rotation = toFloat(val)
		case "zIndex":
			shape.ZIndex = int(toFloat(val))
		case "updatedBy":
			if s, ok := val.(string); ok {
				shape.UpdatedBy = s
			}
		}
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	}
	return 0
}
