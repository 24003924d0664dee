package mall

import (
	"github.com/Faultbox/mallmap/internal/engine/picking"
	"github.com/Faultbox/mallmap/pkg/math"
)

// DefaultTooltipOffset lifts the tooltip above the cursor, in pixels.
const DefaultTooltipOffset = 20

// HoverState is the tooltip for one pointer position.
type HoverState struct {
	Visible bool
	Label   string
	ScreenX float32
	ScreenY float32
}

// Hover picks stores under the pointer. Only store volumes are tested;
// the floor, route and marker never block or match.
type Hover struct {
	group  *Group
	offset float32
}

// NewHover returns a picker over the scene's store group.
func NewHover(group *Group, tooltipOffset float32) *Hover {
	return &Hover{group: group, offset: tooltipOffset}
}

// Pick returns the store nearest the camera along the pointer ray.
func (h *Hover) Pick(px, py, viewportW, viewportH float32, invViewProj math.Mat4) (*Store, bool) {
	if viewportW <= 0 || viewportH <= 0 {
		return nil, false
	}
	ray := picking.ScreenToRay(px, py, viewportW, viewportH, invViewProj)
	idx, _, ok := ray.Nearest(h.group.Bounds())
	if !ok {
		return nil, false
	}
	return &h.group.Stores[idx], true
}

// Update recomputes the hover state from scratch for a pointer at (px, py).
func (h *Hover) Update(px, py, viewportW, viewportH float32, invViewProj math.Mat4) HoverState {
	store, ok := h.Pick(px, py, viewportW, viewportH, invViewProj)
	if !ok {
		return HoverState{}
	}
	return HoverState{
		Visible: true,
		Label:   store.Name,
		ScreenX: px,
		ScreenY: py - h.offset,
	}
}
