package ui

import (
	"fmt"
	"math"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render"
)

// RingSliderConfig configures a RingSlider2D.
type RingSliderConfig struct {
	Center       geom.Point
	Radius       float64 // handle orbit radius
	InitialAngle float64 // degrees, CCW from the positive X axis
	Z            int
	Theme        *Theme
}

// RingSlider2D selects an angle in [0, 360) by dragging a disk handle around
// a ring track. The pointer position anywhere on the widget converts to an
// angle about the center, so the handle tracks the pointer's bearing rather
// than its distance.
type RingSlider2D struct {
	group
	center geom.Point
	radius float64
	ring   *Disk2D
	handle *Disk2D
	label  *TextBlock2D
	angle  float64

	dragging bool

	onAngleChanged handlerList[float64]
	onDragEnd      handlerList[float64]
}

// NewRingSlider creates a ring slider at cfg.InitialAngle (normalized).
func NewRingSlider(r render.Renderer, cfg RingSliderConfig) (*RingSlider2D, error) {
	if cfg.Radius <= 0 {
		return nil, fmt.Errorf("ring radius %.1f: %w", cfg.Radius, ErrInvalidGeometry)
	}
	th := themeOrDefault(cfg.Theme)
	hr := th.HandleRadius
	ring, err := NewDisk(r, DiskConfig{
		Center:      cfg.Center,
		OuterRadius: cfg.Radius + th.TrackThickness/2,
		InnerRadius: cfg.Radius - th.TrackThickness/2,
		Color:       th.SliderTrackColor,
		Z:           cfg.Z,
	})
	if err != nil {
		return nil, err
	}
	handle, err := NewDisk(r, DiskConfig{
		Center:      cfg.Center,
		OuterRadius: hr,
		Color:       th.SliderHandleColor,
		Z:           cfg.Z + 1,
	})
	if err != nil {
		ring.Destroy()
		return nil, err
	}
	label, err := NewTextBlock(r, TextConfig{
		Position: cfg.Center,
		Z:        cfg.Z + 1,
		Theme:    th,
	})
	if err != nil {
		ring.Destroy()
		handle.Destroy()
		return nil, err
	}

	ext := cfg.Radius + hr
	s := &RingSlider2D{
		group: newGroup(
			geom.Point{X: cfg.Center.X - ext, Y: cfg.Center.Y - ext},
			geom.Size{Width: 2 * ext, Height: 2 * ext},
		),
		center: cfg.Center,
		radius: cfg.Radius,
		ring:   ring,
		handle: handle,
		label:  label,
	}
	s.z = cfg.Z
	s.adopt(ring, handle, label)
	s.angle = geom.NormalizeAngle(cfg.InitialAngle)
	s.place()
	return s, nil
}

// SetPosition moves the whole ring; the orbit center moves by the same
// delta.
func (s *RingSlider2D) SetPosition(p geom.Point) {
	d := p.Sub(s.pos)
	if d == (geom.Point{}) {
		return
	}
	s.center = s.center.Add(d)
	s.group.SetPosition(p)
}

// Angle returns the current angle in degrees, in [0, 360).
func (s *RingSlider2D) Angle() float64 { return s.angle }

// SetAngle moves the handle to the given bearing. Any finite angle is
// accepted and normalized to [0, 360).
func (s *RingSlider2D) SetAngle(degrees float64) error {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return fmt.Errorf("ring angle %v: %w", degrees, ErrInvalidValue)
	}
	s.setAngleInternal(geom.NormalizeAngle(degrees))
	return nil
}

func (s *RingSlider2D) setAngleInternal(a float64) {
	if a == s.angle {
		return
	}
	s.angle = a
	s.place()
	s.onAngleChanged.fire(a)
}

// place positions the handle on the orbit by rotating the zero-angle point
// about the center. The angle lives in the Y-up frame while screen Y grows
// downward, hence the negation.
func (s *RingSlider2D) place() {
	start := geom.Point{X: s.center.X + s.radius, Y: s.center.Y}
	s.handle.SetCenter(geom.Rotate(start, -s.angle, s.center))
	s.label.SetText(fmt.Sprintf("%.0f°", s.angle))
}

// angleAt converts a pointer position to a bearing about the center, in the
// package's CCW-positive Y-up convention.
func (s *RingSlider2D) angleAt(p geom.Point) float64 {
	// Screen Y grows downward, so negate dy for the Y-up convention.
	a := math.Atan2(-(p.Y - s.center.Y), p.X-s.center.X) * 180 / math.Pi
	return geom.NormalizeAngle(a)
}

// OnAngleChanged registers a callback fired whenever the angle changes,
// including continuously during a drag.
func (s *RingSlider2D) OnAngleChanged(fn func(degrees float64)) HandlerID {
	return s.onAngleChanged.add(func(a float64) { fn(a) })
}

// RemoveAngleChanged unregisters an angle-change callback.
func (s *RingSlider2D) RemoveAngleChanged(id HandlerID) { s.onAngleChanged.remove(id) }

// OnDragEnd registers a callback fired once on release with the final angle.
func (s *RingSlider2D) OnDragEnd(fn func(degrees float64)) HandlerID {
	return s.onDragEnd.add(func(a float64) { fn(a) })
}

// RemoveDragEnd unregisters a drag-end callback.
func (s *RingSlider2D) RemoveDragEnd(id HandlerID) { s.onDragEnd.remove(id) }

// HandleEvent implements press-drag-release angle editing.
func (s *RingSlider2D) HandleEvent(ev *Event) bool {
	switch ev.Type {
	case EventPointerDown:
		s.dragging = true
		s.setAngleInternal(s.angleAt(ev.Pos))
		return true
	case EventPointerMove:
		if !s.dragging {
			return false
		}
		s.setAngleInternal(s.angleAt(ev.Pos))
		return true
	case EventPointerUp:
		if !s.dragging {
			return false
		}
		s.dragging = false
		s.setAngleInternal(s.angleAt(ev.Pos))
		s.onDragEnd.fire(s.angle)
		return true
	}
	return false
}
