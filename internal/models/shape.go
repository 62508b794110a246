package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ShapeType string

const (
	ShapeRectangle ShapeType = "rectangle"
	ShapeCircle    ShapeType = "circle"
	ShapeTriangle  ShapeType = "triangle"
	ShapeText      ShapeType = "text"
)

// Canvas bounds. Coordinates outside are clamped, not rejected.
const (
	CanvasWidth  = 1920.0
	CanvasHeight = 1080.0
)

// Shape is the canonical canvas entity the core operates on.
// Rectangles, triangles and text carry Width/Height; circles carry Radius.
// X/Y is the top-left corner except for circles, where it is the center.
type Shape struct {
	ID          string    `json:"id"`
	Type        ShapeType `json:"type"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Width       float64   `json:"width,omitempty"`
	Height      float64   `json:"height,omitempty"`
	Radius      float64   `json:"radius,omitempty"`
	Fill        string    `json:"fill"`
	Stroke      string    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"strokeWidth,omitempty"`
	Text        string    `json:"text,omitempty"`
	FontSize    float64   `json:"fontSize,omitempty"`
	Rotation    float64   `json:"rotation,omitempty"`
	ZIndex      int       `json:"zIndex"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
	UpdatedBy   string    `json:"updated_by,omitempty"`
}

// Size returns the bounding-box width and height for any shape type.
// A circle reports its diameter on both axes.
func (s Shape) Size() (w, h float64) {
	if s.Type == ShapeCircle {
		d := s.Radius * 2
		return d, d
	}
	return s.Width, s.Height
}

// Center returns the geometric center of the shape.
func (s Shape) Center() (x, y float64) {
	if s.Type == ShapeCircle {
		return s.X, s.Y
	}
	return s.X + s.Width/2, s.Y + s.Height/2
}

// ShapeRecord is the database row backing a Shape. Geometry and style live in
// the JSON payload; z_index is a real column so snapshots come back ordered.
type ShapeRecord struct {
	UUID      uuid.UUID      `gorm:"primarykey" json:"uuid"`
	BoardID   uuid.UUID      `gorm:"not null;index" json:"board_id"`
	Type      ShapeType      `gorm:"not null" json:"type"`
	Data      datatypes.JSON `json:"data"`
	ZIndex    int            `gorm:"column:z_index" json:"z_index"`
	CreatedAt time.Time      `json:"created_at"`
	CreatedBy string         `json:"created_by"`
	UpdatedAt time.Time      `json:"updated_at"`
	UpdatedBy string         `json:"updated_by"`
}
