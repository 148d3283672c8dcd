// Package render defines the contract between the surface UI layer and the
// retained-mode rendering engine that hosts it. The UI core consumes only
// this narrow surface: create/update/destroy visual primitives and query
// their on-screen bounds. Concrete engines (ebitenrender, test recorders)
// live behind it.
package render

import (
	"sync/atomic"

	"github.com/agiangrant/surface/geom"
)

// Kind identifies the type of visual primitive.
type Kind string

const (
	KindRect  Kind = "rect"
	KindDisk  Kind = "disk"
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindLine  Kind = "line"
)

// Handle identifies a primitive owned by the renderer. Handles are opaque to
// the UI core; each Element owns its handles exclusively.
type Handle uint64

var nextHandle atomic.Uint64

// NewHandle issues a process-unique handle. Renderer implementations call
// this from CreatePrimitive so handles stay unique across renderer instances.
func NewHandle() Handle {
	return Handle(nextHandle.Add(1))
}

// Geometry describes a primitive's visual state. Fields beyond Pos/Size are
// interpreted per Kind: Radius/InnerRadius for disks, Text/FontSize for text,
// Points for lines, Source for images.
type Geometry struct {
	Pos      geom.Point // top-left corner (disks: bounding-box top-left)
	Size     geom.Size
	Rotation float64 // degrees, counter-clockwise in a Y-up frame
	Visible  bool
	Z        int
	Color    uint32 // 0xRRGGBBAA

	// Disk
	Radius      float64
	InnerRadius float64

	// Text
	Text     string
	FontSize float64

	// Line / freeform shape
	Points      []geom.Point
	StrokeWidth float64

	// Image
	Source string
}

// Bounds returns the axis-aligned box the geometry occupies, honoring
// rotation. This is the reference implementation renderers use to answer
// QueryBounds.
func (g Geometry) Bounds() geom.BoundingBox {
	if len(g.Points) > 0 {
		return geom.BoundingBoxOfPoints(g.Points)
	}
	center := geom.Point{X: g.Pos.X + g.Size.Width/2, Y: g.Pos.Y + g.Size.Height/2}
	return geom.BoundingBoxOf(center, g.Size, g.Rotation)
}

// Renderer is the engine-side contract the UI layer consumes.
//
// All methods are called from the UI thread; implementations do not need
// internal synchronization beyond what their own draw loop requires.
type Renderer interface {
	// CreatePrimitive allocates a primitive of the given kind and returns
	// its handle.
	CreatePrimitive(kind Kind, g Geometry) (Handle, error)

	// UpdatePrimitive replaces the geometry of an existing primitive.
	UpdatePrimitive(h Handle, g Geometry) error

	// DestroyPrimitive releases a primitive. Destroying an unknown handle
	// is an error.
	DestroyPrimitive(h Handle) error

	// QueryBounds returns the primitive's current screen-space bounding box.
	QueryBounds(h Handle) (geom.BoundingBox, error)
}
