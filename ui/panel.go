package ui

import (
	"fmt"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render"

	"github.com/google/uuid"
)

// OverflowPolicy is the rule a container applies when a child's geometry
// exceeds its bounds.
type OverflowPolicy uint8

const (
	// OverflowAllow lets children exceed the container freely.
	OverflowAllow OverflowPolicy = iota
	// OverflowCheck performs no geometry change but records which edges
	// overflow; callers read the result via Overflowing.
	OverflowCheck
	// OverflowClip shrinks or relocates an overflowing child so it fits.
	OverflowClip
	// OverflowWrap relocates an overflowing child to the opposite edge /
	// next row instead of clipping it.
	OverflowWrap
)

// PanelConfig configures a Panel2D.
type PanelConfig struct {
	Position geom.Point
	Size     geom.Size
	Color    uint32
	Z        int
	Overflow OverflowPolicy
	Theme    *Theme
}

// Panel2D is a free-form container: children sit at explicit offsets from
// the panel's top-left corner. An offset component strictly between 0 and 1
// is interpreted as a fraction of the panel size, matching the original
// percent-placement convention.
type Panel2D struct {
	group
	background *Rectangle2D
	policy     OverflowPolicy

	children map[uuid.UUID]Element
	order    []Element // insertion order, stable for iteration

	overflowing geom.Overflow // last OverflowCheck result
}

// NewPanel creates an empty panel.
func NewPanel(r render.Renderer, cfg PanelConfig) (*Panel2D, error) {
	if !cfg.Size.IsValid() {
		return nil, fmt.Errorf("panel size %.1fx%.1f: %w", cfg.Size.Width, cfg.Size.Height, ErrInvalidGeometry)
	}
	th := themeOrDefault(cfg.Theme)
	color := cfg.Color
	if color == 0 {
		color = th.PanelColor
	}
	bg, err := NewRectangle(r, RectangleConfig{
		Position: cfg.Position, Size: cfg.Size, Color: color, Z: cfg.Z,
	})
	if err != nil {
		return nil, err
	}
	p := &Panel2D{
		group:      newGroup(cfg.Position, cfg.Size),
		background: bg,
		policy:     cfg.Overflow,
		children:   make(map[uuid.UUID]Element),
	}
	p.z = cfg.Z
	p.adopt(bg)
	return p, nil
}

// AddElement places el at the given offset from the panel's top-left.
// Offset components strictly between 0 and 1 are fractions of the panel
// size. The panel takes ownership and applies its overflow policy once.
func (p *Panel2D) AddElement(el Element, offset geom.Point) error {
	if _, ok := p.children[el.ID()]; ok {
		return fmt.Errorf("element %s already in panel: %w", el.ID(), ErrSlotOccupied)
	}
	ox, oy := offset.X, offset.Y
	if ox > 0 && ox < 1 {
		ox *= p.size.Width
	}
	if oy > 0 && oy < 1 {
		oy *= p.size.Height
	}
	el.SetPosition(geom.Point{X: p.pos.X + ox, Y: p.pos.Y + oy})
	el.setParent(p)
	el.setRemoved(false)
	el.SetZOrder(p.z + 1 + len(p.order))
	p.children[el.ID()] = el
	p.order = append(p.order, el)
	p.applyPolicy(el)
	return nil
}

// RemoveElement detaches a child without destroying it.
func (p *Panel2D) RemoveElement(el Element) bool {
	if _, ok := p.children[el.ID()]; !ok {
		return false
	}
	delete(p.children, el.ID())
	for i, c := range p.order {
		if c == el {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	el.setParent(nil)
	el.setRemoved(true)
	return true
}

// Children returns the panel's children in insertion order.
func (p *Panel2D) Children() []Element {
	out := make([]Element, len(p.order))
	copy(out, p.order)
	return out
}

// Policy returns the panel's overflow policy.
func (p *Panel2D) Policy() OverflowPolicy { return p.policy }

// Overflowing returns the union of overflow edges recorded by the last
// policy applications under OverflowCheck.
func (p *Panel2D) Overflowing() geom.Overflow { return p.overflowing }

// SetPosition moves the panel and every child by the same delta.
func (p *Panel2D) SetPosition(pos geom.Point) {
	d := pos.Sub(p.pos)
	if d == (geom.Point{}) {
		return
	}
	p.group.SetPosition(pos) // moves the background
	for _, c := range p.order {
		c.SetPosition(c.Position().Add(d))
	}
}

// SetSize resizes the panel and re-applies the overflow policy to every
// child against the new bounds.
func (p *Panel2D) SetSize(s geom.Size) error {
	if err := p.group.SetSize(s); err != nil {
		return err
	}
	if err := p.background.SetSize(s); err != nil {
		return err
	}
	p.overflowing = 0
	for _, c := range p.order {
		p.applyPolicy(c)
	}
	return nil
}

func (p *Panel2D) ResizeBy(dw, dh float64) error {
	return p.SetSize(geom.Size{Width: p.size.Width + dw, Height: p.size.Height + dh})
}

// SetVisible toggles the panel and all children.
func (p *Panel2D) SetVisible(v bool) {
	p.group.SetVisible(v)
	for _, c := range p.order {
		c.SetVisible(v)
	}
}

// Destroy releases the background and every child (exclusive ownership).
func (p *Panel2D) Destroy() {
	for _, c := range p.order {
		c.Destroy()
	}
	p.children = nil
	p.order = nil
	p.group.Destroy()
}

// applyPolicy recomputes the child's bounding box and applies the configured
// overflow policy exactly once.
func (p *Panel2D) applyPolicy(el Element) {
	box := el.BoundingBox()
	parent := p.BoundingBox()
	switch p.policy {
	case OverflowAllow:
	case OverflowCheck:
		p.overflowing |= geom.Check(box, parent)
	case OverflowClip:
		pos, size := geom.Clip(box.Min, geom.Size{Width: box.Width(), Height: box.Height()}, parent)
		// Squashing an image into the clipped box would distort it;
		// refitting keeps the aspect ratio inside the same region.
		if img, ok := el.(*ImageContainer2D); ok {
			img.FitTo(geom.BoundingBox{
				Min: pos,
				Max: geom.Point{X: pos.X + size.Width, Y: pos.Y + size.Height},
			})
			return
		}
		el.SetPosition(pos)
		// Clip never produces a negative size, so this cannot fail.
		_ = el.SetSize(size)
	case OverflowWrap:
		el.SetPosition(geom.Wrap(box.Min, geom.Size{Width: box.Width(), Height: box.Height()}, parent))
	}
}
