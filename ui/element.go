// Package ui implements the surface layout & interaction engine: the
// element/container hierarchy, interactive widgets, event dispatch, and the
// per-scene registry. It sits on the render contract and owns no rendering
// of its own.
//
// The package follows a single-threaded cooperative model: all geometry
// mutation, event dispatch, and callback invocation happen on one logical
// thread (the UI thread). Every mutating call completes synchronously,
// including the update of the backing renderer primitive, so an element's
// on-screen geometry is never stale when a mutator returns.
package ui

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render"
)

// Element is the smallest positionable, resizable, drawable UI unit.
// Leaf shapes own exactly one renderer primitive; composite widgets own a
// set of leaf members and present them as one element.
type Element interface {
	// ID returns the element's stable unique identifier.
	ID() uuid.UUID

	Position() geom.Point
	SetPosition(geom.Point)

	Size() geom.Size
	// SetSize fails with ErrInvalidGeometry on a negative dimension.
	SetSize(geom.Size) error
	// ResizeBy grows or shrinks the element by a delta; it fails with
	// ErrInvalidGeometry if the result would be negative.
	ResizeBy(dw, dh float64) error

	Visible() bool
	SetVisible(bool)

	ZOrder() int
	SetZOrder(int)

	// BoundingBox returns the cached axis-aligned box, recomputing it if a
	// geometry mutation invalidated the cache.
	BoundingBox() geom.BoundingBox

	// Parent returns the owning container, or nil for top-level elements.
	// The back-pointer is non-owning; containers own their children.
	Parent() Container

	// Removed reports whether the element has been removed from its
	// container or scene (or destroyed) and is awaiting re-attachment.
	// The dispatcher uses this to cancel drags on dangling targets.
	Removed() bool

	// Destroy releases the element's renderer primitives. Containers
	// destroy their children.
	Destroy()

	// HandleEvent processes an input event. It returns true if the event
	// was consumed.
	HandleEvent(ev *Event) bool

	setParent(Container)
	setRemoved(bool)
}

// Container owns and lays out a set of child Elements. Destroying a
// container destroys its children (exclusive ownership).
type Container interface {
	Element

	// Children returns the current children. The slice is a copy.
	Children() []Element

	// RemoveElement detaches a child without destroying it. It returns
	// false if the element is not a child of this container.
	RemoveElement(Element) bool
}

// meta carries the identity and attachment state shared by every element.
type meta struct {
	id      uuid.UUID
	parent  Container
	removed bool
}

func newMeta() meta {
	return meta{id: uuid.New()}
}

func (m *meta) ID() uuid.UUID          { return m.id }
func (m *meta) Parent() Container      { return m.parent }
func (m *meta) Removed() bool          { return m.removed }
func (m *meta) setParent(p Container)  { m.parent = p }
func (m *meta) setRemoved(r bool)      { m.removed = r }

// Core is the base for leaf elements backed by a single renderer primitive.
// Every mutator pushes the new geometry to the renderer before returning and
// invalidates the bounding-box cache.
type Core struct {
	meta
	r      render.Renderer
	kind   render.Kind
	handle render.Handle
	geo    render.Geometry

	bbox   geom.BoundingBox
	bboxOK bool
}

func newCore(r render.Renderer, kind render.Kind, geo render.Geometry) (Core, error) {
	if !geo.Size.IsValid() {
		return Core{}, fmt.Errorf("create %s: size %.1fx%.1f: %w",
			kind, geo.Size.Width, geo.Size.Height, ErrInvalidGeometry)
	}
	h, err := r.CreatePrimitive(kind, geo)
	if err != nil {
		return Core{}, fmt.Errorf("create %s: %w", kind, err)
	}
	return Core{meta: newMeta(), r: r, kind: kind, handle: h, geo: geo}, nil
}

// sync pushes the current geometry to the renderer and invalidates the
// bounding-box cache. Update failures on a live handle indicate a broken
// renderer contract; the mutators have no error return to surface them, so
// they are dropped here.
func (c *Core) sync() {
	c.bboxOK = false
	_ = c.r.UpdatePrimitive(c.handle, c.geo)
}

// Handle exposes the backing primitive handle, mainly for tests and
// renderer-side tooling.
func (c *Core) Handle() render.Handle { return c.handle }

func (c *Core) Position() geom.Point { return c.geo.Pos }

func (c *Core) SetPosition(p geom.Point) {
	if c.geo.Pos == p {
		return
	}
	c.geo.Pos = p
	c.sync()
}

func (c *Core) Size() geom.Size { return c.geo.Size }

func (c *Core) SetSize(s geom.Size) error {
	if !s.IsValid() {
		return fmt.Errorf("set size %.1fx%.1f: %w", s.Width, s.Height, ErrInvalidGeometry)
	}
	if c.geo.Size == s {
		return nil
	}
	c.geo.Size = s
	c.sync()
	return nil
}

func (c *Core) ResizeBy(dw, dh float64) error {
	return c.SetSize(geom.Size{Width: c.geo.Size.Width + dw, Height: c.geo.Size.Height + dh})
}

func (c *Core) Visible() bool { return c.geo.Visible }

func (c *Core) SetVisible(v bool) {
	if c.geo.Visible == v {
		return
	}
	c.geo.Visible = v
	c.sync()
}

func (c *Core) ZOrder() int { return c.geo.Z }

func (c *Core) SetZOrder(z int) {
	if c.geo.Z == z {
		return
	}
	c.geo.Z = z
	c.sync()
}

// Rotation returns the rotation angle in degrees.
func (c *Core) Rotation() float64 { return c.geo.Rotation }

// SetRotation sets the rotation angle in degrees (counter-clockwise in a
// Y-up frame, see geom.Rotate).
func (c *Core) SetRotation(degrees float64) {
	d := geom.NormalizeAngle(degrees)
	if c.geo.Rotation == d {
		return
	}
	c.geo.Rotation = d
	c.sync()
}

// Color returns the primitive color as 0xRRGGBBAA.
func (c *Core) Color() uint32 { return c.geo.Color }

// SetColor sets the primitive color as 0xRRGGBBAA.
func (c *Core) SetColor(color uint32) {
	if c.geo.Color == color {
		return
	}
	c.geo.Color = color
	c.sync()
}

func (c *Core) BoundingBox() geom.BoundingBox {
	if !c.bboxOK {
		c.bbox = c.geo.Bounds()
		c.bboxOK = true
	}
	return c.bbox
}

func (c *Core) Destroy() {
	if c.removed && c.handle == 0 {
		return
	}
	_ = c.r.DestroyPrimitive(c.handle)
	c.handle = 0
	c.removed = true
}

// HandleEvent is a no-op for passive leaves; interactive widgets override it.
func (c *Core) HandleEvent(*Event) bool { return false }

// group is the base for composite widgets built from leaf members. The
// composite owns its members' geometry: translation, visibility, and z-order
// cascade, while size semantics are widget-specific.
type group struct {
	meta
	pos     geom.Point
	size    geom.Size
	visible bool
	z       int
	members []Element
}

func newGroup(pos geom.Point, size geom.Size) group {
	return group{meta: newMeta(), pos: pos, size: size, visible: true}
}

// adopt takes ownership of member elements. Call once from the widget
// constructor, in back-to-front draw order.
func (g *group) adopt(members ...Element) {
	g.members = append(g.members, members...)
	g.applyZ()
}

func (g *group) applyZ() {
	for i, m := range g.members {
		m.SetZOrder(g.z + i)
	}
}

func (g *group) Position() geom.Point { return g.pos }

func (g *group) SetPosition(p geom.Point) {
	d := p.Sub(g.pos)
	if d == (geom.Point{}) {
		return
	}
	g.pos = p
	for _, m := range g.members {
		m.SetPosition(m.Position().Add(d))
	}
}

func (g *group) Size() geom.Size { return g.size }

// SetSize stores the new extent. Composites that re-lay their members out on
// resize override this.
func (g *group) SetSize(s geom.Size) error {
	if !s.IsValid() {
		return fmt.Errorf("set size %.1fx%.1f: %w", s.Width, s.Height, ErrInvalidGeometry)
	}
	g.size = s
	return nil
}

func (g *group) ResizeBy(dw, dh float64) error {
	return g.SetSize(geom.Size{Width: g.size.Width + dw, Height: g.size.Height + dh})
}

func (g *group) Visible() bool { return g.visible }

func (g *group) SetVisible(v bool) {
	g.visible = v
	for _, m := range g.members {
		m.SetVisible(v)
	}
}

func (g *group) ZOrder() int { return g.z }

func (g *group) SetZOrder(z int) {
	g.z = z
	g.applyZ()
}

func (g *group) BoundingBox() geom.BoundingBox {
	return geom.BoundingBox{
		Min: g.pos,
		Max: geom.Point{X: g.pos.X + g.size.Width, Y: g.pos.Y + g.size.Height},
	}
}

func (g *group) Destroy() {
	for _, m := range g.members {
		m.Destroy()
	}
	g.removed = true
}

func (g *group) HandleEvent(*Event) bool { return false }
