// Package rendertest provides an in-memory render.Renderer for tests. It
// records every call so tests can assert that widget mutations reach the
// renderer synchronously, and serves current geometry back through
// QueryBounds exactly like a real engine would.
package rendertest

import (
	"fmt"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render"
)

// Op is one recorded renderer call.
type Op struct {
	Name   string // "create", "update", "destroy"
	Kind   render.Kind
	Handle render.Handle
}

// Recorder implements render.Renderer over a map of live primitives.
type Recorder struct {
	prims map[render.Handle]primitive
	Ops   []Op

	// FailCreate, when set, makes the next CreatePrimitive return an error.
	// Used to exercise widget constructor error paths.
	FailCreate error
}

type primitive struct {
	kind render.Kind
	geo  render.Geometry
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{prims: make(map[render.Handle]primitive)}
}

func (r *Recorder) CreatePrimitive(kind render.Kind, g render.Geometry) (render.Handle, error) {
	if r.FailCreate != nil {
		err := r.FailCreate
		r.FailCreate = nil
		return 0, err
	}
	h := render.NewHandle()
	r.prims[h] = primitive{kind: kind, geo: g}
	r.Ops = append(r.Ops, Op{Name: "create", Kind: kind, Handle: h})
	return h, nil
}

func (r *Recorder) UpdatePrimitive(h render.Handle, g render.Geometry) error {
	p, ok := r.prims[h]
	if !ok {
		return fmt.Errorf("rendertest: update of unknown handle %d", h)
	}
	p.geo = g
	r.prims[h] = p
	r.Ops = append(r.Ops, Op{Name: "update", Kind: p.kind, Handle: h})
	return nil
}

func (r *Recorder) DestroyPrimitive(h render.Handle) error {
	p, ok := r.prims[h]
	if !ok {
		return fmt.Errorf("rendertest: destroy of unknown handle %d", h)
	}
	delete(r.prims, h)
	r.Ops = append(r.Ops, Op{Name: "destroy", Kind: p.kind, Handle: h})
	return nil
}

func (r *Recorder) QueryBounds(h render.Handle) (geom.BoundingBox, error) {
	p, ok := r.prims[h]
	if !ok {
		return geom.BoundingBox{}, fmt.Errorf("rendertest: bounds of unknown handle %d", h)
	}
	return p.geo.Bounds(), nil
}

// Geometry returns the current geometry of a live primitive.
func (r *Recorder) Geometry(h render.Handle) (render.Geometry, bool) {
	p, ok := r.prims[h]
	return p.geo, ok
}

// Live returns the number of primitives that have been created and not
// destroyed.
func (r *Recorder) Live() int {
	return len(r.prims)
}

// UpdatesFor counts recorded updates for a handle.
func (r *Recorder) UpdatesFor(h render.Handle) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == "update" && op.Handle == h {
			n++
		}
	}
	return n
}
