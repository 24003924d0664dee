package ui2d

// Tooltip padding in pixels, matching "6px 10px".
const (
	TooltipPadY = 6
	TooltipPadX = 10
)

// Rect is a screen-space rectangle.
type Rect struct {
	X, Y, W, H float32
}

// TooltipLayout places a tooltip box and its text.
type TooltipLayout struct {
	Box   Rect
	TextX float32
	TextY float32
}

// LayoutTooltip positions a label whose box has its top-left corner at the
// anchor. The box is shifted back inside a screenW x screenH viewport when it
// would overflow the right or bottom edge, and never starts above or left of 0.
func LayoutTooltip(f *Font, label string, anchorX, anchorY, scale, screenW, screenH float32) TooltipLayout {
	tw, th := f.MeasureText(label, scale)
	box := Rect{
		X: anchorX,
		Y: anchorY,
		W: tw + 2*TooltipPadX,
		H: th + 2*TooltipPadY,
	}

	if screenW > 0 && box.X+box.W > screenW {
		box.X = screenW - box.W
	}
	if screenH > 0 && box.Y+box.H > screenH {
		box.Y = screenH - box.H
	}
	box.X = max(box.X, 0)
	box.Y = max(box.Y, 0)

	return TooltipLayout{
		Box:   box,
		TextX: box.X + TooltipPadX,
		TextY: box.Y + TooltipPadY,
	}
}

// DrawTooltip queues the tooltip panel and its label.
// Labels are folded first so the box fits the glyphs actually drawn.
func (d *DrawList) DrawTooltip(label string, anchorX, anchorY, scale, screenW, screenH float32) TooltipLayout {
	label = Fold(label)
	l := LayoutTooltip(d.font, label, anchorX, anchorY, scale, screenW, screenH)
	d.DrawRect(l.Box.X, l.Box.Y, l.Box.W, l.Box.H, ColorTooltipBg)
	d.DrawText(l.TextX, l.TextY, label, scale, ColorTooltipText)
	return l
}
