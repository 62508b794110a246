// Package mutation defines the pure operation descriptions the core hands to
// the store. Each mutation carries enough prior state to be inverted, so undo
// is a data-driven replay rather than bespoke per-operation code.
package mutation

import "sketchdeck-backend/internal/models"

type Kind string

const (
	KindCreate      Kind = "create"
	KindUpdate      Kind = "update"
	KindDelete      Kind = "delete"
	KindBatchZIndex Kind = "batch_zindex"
)

// ZIndexUpdate assigns a zIndex to one shape.
type ZIndexUpdate struct {
	ID     string `json:"id"`
	ZIndex int    `json:"zIndex"`
}

// Mutation is a tagged operation against the shape store. Only the fields for
// its kind are populated.
type Mutation struct {
	Kind Kind `json:"kind"`

	// create / delete: the full shape (for delete, the snapshot being removed)
	Shape *models.Shape `json:"shape,omitempty"`

	// update
	ShapeID string         `json:"shapeId,omitempty"`
	Patch   map[string]any `json:"patch,omitempty"`
	Prev    map[string]any `json:"prev,omitempty"`

	// batch_zindex
	ZIndex     []ZIndexUpdate `json:"zIndex,omitempty"`
	PrevZIndex []ZIndexUpdate `json:"prevZIndex,omitempty"`
}

// Create describes inserting a fully-normalized shape.
func Create(shape models.Shape) Mutation {
	return Mutation{Kind: KindCreate, Shape: &shape}
}

// Update describes patching a shape. prev holds the replaced values for undo.
func Update(shapeID string, patch, prev map[string]any) Mutation {
	return Mutation{Kind: KindUpdate, ShapeID: shapeID, Patch: patch, Prev: prev}
}

// Delete describes removing a shape; the snapshot makes the inverse a create.
func Delete(shape models.Shape) Mutation {
	return Mutation{Kind: KindDelete, Shape: &shape, ShapeID: shape.ID}
}

// BatchZIndex describes reassigning zIndexes, e.g. a swap or a renormalize.
func BatchZIndex(updates, prev []ZIndexUpdate) Mutation {
	return Mutation{Kind: KindBatchZIndex, ZIndex: updates, PrevZIndex: prev}
}

// Inverse returns the mutation that undoes m. The second return is false when
// the inverse cannot be derived (an update recorded without prior values).
func (m Mutation) Inverse() (Mutation, bool) {
	switch m.Kind {
	case KindCreate:
		return Delete(*m.Shape), true
	case KindDelete:
		return Create(*m.Shape), true
	case KindUpdate:
		if m.Prev == nil {
			return Mutation{}, false
		}
		return Update(m.ShapeID, m.Prev, m.Patch), true
	case KindBatchZIndex:
		if m.PrevZIndex == nil {
			return Mutation{}, false
		}
		return BatchZIndex(m.PrevZIndex, m.ZIndex), true
	}
	return Mutation{}, false
}
