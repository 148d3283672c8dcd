package ui

import (
	"fmt"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render"
)

// Orientation is a slider's track direction.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

// SliderConfig configures a LineSlider2D or LineDoubleSlider2D.
type SliderConfig struct {
	Position    geom.Point // top-left of the track's bounding box
	Min, Max    float64
	Initial     float64
	Orientation Orientation
	Length      float64 // track length along the orientation axis
	Z           int
	Theme       *Theme
}

func (c SliderConfig) validate() error {
	if c.Min >= c.Max {
		return fmt.Errorf("slider range [%.2f, %.2f]: %w", c.Min, c.Max, ErrInvalidValue)
	}
	if c.Initial < c.Min || c.Initial > c.Max {
		return fmt.Errorf("slider initial %.2f outside [%.2f, %.2f]: %w",
			c.Initial, c.Min, c.Max, ErrInvalidValue)
	}
	if c.Length <= 0 {
		return fmt.Errorf("slider length %.1f: %w", c.Length, ErrInvalidGeometry)
	}
	return nil
}

// LineSlider2D selects one value from a continuous range by dragging a disk
// handle along a straight track. Pointer position anywhere on the widget
// projects onto the track axis and clamps to the ends, so dragging past an
// end pins the value exactly at that bound.
type LineSlider2D struct {
	group
	cfg    SliderConfig
	track  *Rectangle2D
	fill   *Rectangle2D
	handle *Disk2D
	label  *TextBlock2D
	value  float64

	dragging bool

	onValueChanged handlerList[float64]
	onDragEnd      handlerList[float64]
}

// NewLineSlider creates a slider at cfg.Initial.
func NewLineSlider(r render.Renderer, cfg SliderConfig) (*LineSlider2D, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	th := themeOrDefault(cfg.Theme)
	hr := th.HandleRadius
	tt := th.TrackThickness

	var size geom.Size
	var trackPos geom.Point
	var trackSize geom.Size
	if cfg.Orientation == Horizontal {
		size = geom.Size{Width: cfg.Length, Height: 2 * hr}
		trackPos = geom.Point{X: cfg.Position.X, Y: cfg.Position.Y + hr - tt/2}
		trackSize = geom.Size{Width: cfg.Length, Height: tt}
	} else {
		size = geom.Size{Width: 2 * hr, Height: cfg.Length}
		trackPos = geom.Point{X: cfg.Position.X + hr - tt/2, Y: cfg.Position.Y}
		trackSize = geom.Size{Width: tt, Height: cfg.Length}
	}

	track, err := NewRectangle(r, RectangleConfig{
		Position: trackPos, Size: trackSize, Color: th.SliderTrackColor, Z: cfg.Z,
	})
	if err != nil {
		return nil, err
	}
	fill, err := NewRectangle(r, RectangleConfig{
		Position: trackPos, Size: geom.Size{Width: 0, Height: trackSize.Height},
		Color:    th.AccentColor, Z: cfg.Z + 1,
	})
	if err != nil {
		track.Destroy()
		return nil, err
	}
	handle, err := NewDisk(r, DiskConfig{
		Center:      trackPos,
		OuterRadius: hr,
		Color:       th.SliderHandleColor,
		Z:           cfg.Z + 2,
	})
	if err != nil {
		track.Destroy()
		fill.Destroy()
		return nil, err
	}
	label, err := NewTextBlock(r, TextConfig{
		Position: geom.Point{X: cfg.Position.X, Y: cfg.Position.Y - th.FontSize*1.4},
		Text:     "",
		Z:        cfg.Z + 2,
		Theme:    th,
	})
	if err != nil {
		track.Destroy()
		fill.Destroy()
		handle.Destroy()
		return nil, err
	}

	s := &LineSlider2D{
		group:  newGroup(cfg.Position, size),
		cfg:    cfg,
		track:  track,
		fill:   fill,
		handle: handle,
		label:  label,
		value:  cfg.Initial,
	}
	s.z = cfg.Z
	s.adopt(track, fill, handle, label)
	s.applyZ()
	s.place()
	return s, nil
}

// Value returns the current value.
func (s *LineSlider2D) Value() float64 { return s.value }

// ShowValueText toggles the floating value label above the track.
func (s *LineSlider2D) ShowValueText(show bool) {
	s.label.SetVisible(show && s.visible)
}

// Ratio returns the value's position within the range, in [0, 1].
func (s *LineSlider2D) Ratio() float64 {
	return (s.value - s.cfg.Min) / (s.cfg.Max - s.cfg.Min)
}

// SetValue moves the slider programmatically. A value outside the range
// fails with ErrInvalidValue and changes nothing. Observers fire when the
// value actually changed.
func (s *LineSlider2D) SetValue(v float64) error {
	if v < s.cfg.Min || v > s.cfg.Max {
		return fmt.Errorf("slider value %.2f outside [%.2f, %.2f]: %w",
			v, s.cfg.Min, s.cfg.Max, ErrInvalidValue)
	}
	s.setValueInternal(v)
	return nil
}

func (s *LineSlider2D) setValueInternal(v float64) {
	v = clamp(v, s.cfg.Min, s.cfg.Max)
	if v == s.value {
		return
	}
	s.value = v
	s.place()
	s.onValueChanged.fire(v)
}

// place updates handle, fill, and label from the current value.
func (s *LineSlider2D) place() {
	ratio := s.Ratio()
	box := s.track.BoundingBox()
	if s.cfg.Orientation == Horizontal {
		s.handle.SetCenter(geom.Point{
			X: box.Min.X + ratio*s.cfg.Length,
			Y: box.Center().Y,
		})
		_ = s.fill.SetSize(geom.Size{Width: ratio * s.cfg.Length, Height: box.Height()})
	} else {
		// Vertical sliders grow upward: min at the bottom.
		s.handle.SetCenter(geom.Point{
			X: box.Center().X,
			Y: box.Max.Y - ratio*s.cfg.Length,
		})
		fillH := ratio * s.cfg.Length
		s.fill.SetPosition(geom.Point{X: box.Min.X, Y: box.Max.Y - fillH})
		_ = s.fill.SetSize(geom.Size{Width: box.Width(), Height: fillH})
	}
	s.label.SetText(fmt.Sprintf("%.1f", s.value))
}

// valueAt projects a pointer position onto the track axis and converts it
// to a clamped range value.
func (s *LineSlider2D) valueAt(p geom.Point) float64 {
	box := s.track.BoundingBox()
	var ratio float64
	if s.cfg.Orientation == Horizontal {
		ratio = (p.X - box.Min.X) / s.cfg.Length
	} else {
		ratio = (box.Max.Y - p.Y) / s.cfg.Length
	}
	ratio = clamp(ratio, 0, 1)
	return s.cfg.Min + ratio*(s.cfg.Max-s.cfg.Min)
}

// OnValueChanged registers a callback fired whenever the value changes,
// including continuously during a drag.
func (s *LineSlider2D) OnValueChanged(fn func(value float64)) HandlerID {
	return s.onValueChanged.add(func(v float64) { fn(v) })
}

// RemoveValueChanged unregisters a value-change callback.
func (s *LineSlider2D) RemoveValueChanged(id HandlerID) { s.onValueChanged.remove(id) }

// OnDragEnd registers a callback fired once when a drag releases, with the
// final value.
func (s *LineSlider2D) OnDragEnd(fn func(value float64)) HandlerID {
	return s.onDragEnd.add(func(v float64) { fn(v) })
}

// RemoveDragEnd unregisters a drag-end callback.
func (s *LineSlider2D) RemoveDragEnd(id HandlerID) { s.onDragEnd.remove(id) }

// HandleEvent implements press-drag-release value editing.
func (s *LineSlider2D) HandleEvent(ev *Event) bool {
	switch ev.Type {
	case EventPointerDown:
		s.dragging = true
		s.setValueInternal(s.valueAt(ev.Pos))
		return true
	case EventPointerMove:
		if !s.dragging {
			return false
		}
		s.setValueInternal(s.valueAt(ev.Pos))
		return true
	case EventPointerUp:
		if !s.dragging {
			return false
		}
		s.dragging = false
		s.setValueInternal(s.valueAt(ev.Pos))
		s.onDragEnd.fire(s.value)
		return true
	}
	return false
}

// LineDoubleSlider2D selects a [low, high] sub-range with two handles on a
// shared track. The handles cannot cross: each drag clamps against the
// other handle's value.
type LineDoubleSlider2D struct {
	group
	cfg        SliderConfig
	track      *Rectangle2D
	fill       *Rectangle2D
	lowHandle  *Disk2D
	highHandle *Disk2D
	low, high  float64

	drag *Disk2D // handle being dragged, nil when idle

	onRangeChanged handlerList[[2]float64]
	onDragEnd      handlerList[[2]float64]
}

// DoubleSliderConfig configures a LineDoubleSlider2D.
type DoubleSliderConfig struct {
	SliderConfig
	InitialLow, InitialHigh float64
}

// NewLineDoubleSlider creates a double slider at [InitialLow, InitialHigh].
func NewLineDoubleSlider(r render.Renderer, cfg DoubleSliderConfig) (*LineDoubleSlider2D, error) {
	cfg.Initial = cfg.Min // satisfy the single-value validation
	if err := cfg.SliderConfig.validate(); err != nil {
		return nil, err
	}
	if cfg.InitialLow < cfg.Min || cfg.InitialHigh > cfg.Max || cfg.InitialLow > cfg.InitialHigh {
		return nil, fmt.Errorf("double slider initial [%.2f, %.2f] in [%.2f, %.2f]: %w",
			cfg.InitialLow, cfg.InitialHigh, cfg.Min, cfg.Max, ErrInvalidValue)
	}
	th := themeOrDefault(cfg.Theme)
	hr := th.HandleRadius
	tt := th.TrackThickness

	var size geom.Size
	var trackPos geom.Point
	var trackSize geom.Size
	if cfg.Orientation == Horizontal {
		size = geom.Size{Width: cfg.Length, Height: 2 * hr}
		trackPos = geom.Point{X: cfg.Position.X, Y: cfg.Position.Y + hr - tt/2}
		trackSize = geom.Size{Width: cfg.Length, Height: tt}
	} else {
		size = geom.Size{Width: 2 * hr, Height: cfg.Length}
		trackPos = geom.Point{X: cfg.Position.X + hr - tt/2, Y: cfg.Position.Y}
		trackSize = geom.Size{Width: tt, Height: cfg.Length}
	}

	track, err := NewRectangle(r, RectangleConfig{
		Position: trackPos, Size: trackSize, Color: th.SliderTrackColor, Z: cfg.Z,
	})
	if err != nil {
		return nil, err
	}
	fill, err := NewRectangle(r, RectangleConfig{
		Position: trackPos, Size: trackSize, Color: th.AccentColor, Z: cfg.Z + 1,
	})
	if err != nil {
		track.Destroy()
		return nil, err
	}
	lo, err := NewDisk(r, DiskConfig{Center: trackPos, OuterRadius: hr, Color: th.SliderHandleColor, Z: cfg.Z + 2})
	if err != nil {
		track.Destroy()
		fill.Destroy()
		return nil, err
	}
	hi, err := NewDisk(r, DiskConfig{Center: trackPos, OuterRadius: hr, Color: th.SliderHandleColor, Z: cfg.Z + 2})
	if err != nil {
		track.Destroy()
		fill.Destroy()
		lo.Destroy()
		return nil, err
	}

	d := &LineDoubleSlider2D{
		group:      newGroup(cfg.Position, size),
		cfg:        cfg.SliderConfig,
		track:      track,
		fill:       fill,
		lowHandle:  lo,
		highHandle: hi,
		low:        cfg.InitialLow,
		high:       cfg.InitialHigh,
	}
	d.z = cfg.Z
	d.adopt(track, fill, lo, hi)
	d.place()
	return d, nil
}

// Low returns the lower bound of the selected sub-range.
func (d *LineDoubleSlider2D) Low() float64 { return d.low }

// High returns the upper bound of the selected sub-range.
func (d *LineDoubleSlider2D) High() float64 { return d.high }

// SetRange moves both handles. It fails with ErrInvalidValue when the
// bounds are out of range or inverted.
func (d *LineDoubleSlider2D) SetRange(low, high float64) error {
	if low < d.cfg.Min || high > d.cfg.Max || low > high {
		return fmt.Errorf("double slider range [%.2f, %.2f]: %w", low, high, ErrInvalidValue)
	}
	if low == d.low && high == d.high {
		return nil
	}
	d.low, d.high = low, high
	d.place()
	d.onRangeChanged.fire([2]float64{low, high})
	return nil
}

func (d *LineDoubleSlider2D) ratio(v float64) float64 {
	return (v - d.cfg.Min) / (d.cfg.Max - d.cfg.Min)
}

func (d *LineDoubleSlider2D) place() {
	box := d.track.BoundingBox()
	rl, rh := d.ratio(d.low), d.ratio(d.high)
	if d.cfg.Orientation == Horizontal {
		d.lowHandle.SetCenter(geom.Point{X: box.Min.X + rl*d.cfg.Length, Y: box.Center().Y})
		d.highHandle.SetCenter(geom.Point{X: box.Min.X + rh*d.cfg.Length, Y: box.Center().Y})
		d.fill.SetPosition(geom.Point{X: box.Min.X + rl*d.cfg.Length, Y: box.Min.Y})
		_ = d.fill.SetSize(geom.Size{Width: (rh - rl) * d.cfg.Length, Height: box.Height()})
	} else {
		d.lowHandle.SetCenter(geom.Point{X: box.Center().X, Y: box.Max.Y - rl*d.cfg.Length})
		d.highHandle.SetCenter(geom.Point{X: box.Center().X, Y: box.Max.Y - rh*d.cfg.Length})
		d.fill.SetPosition(geom.Point{X: box.Min.X, Y: box.Max.Y - rh*d.cfg.Length})
		_ = d.fill.SetSize(geom.Size{Width: box.Width(), Height: (rh - rl) * d.cfg.Length})
	}
}

func (d *LineDoubleSlider2D) valueAt(p geom.Point) float64 {
	box := d.track.BoundingBox()
	var ratio float64
	if d.cfg.Orientation == Horizontal {
		ratio = (p.X - box.Min.X) / d.cfg.Length
	} else {
		ratio = (box.Max.Y - p.Y) / d.cfg.Length
	}
	return d.cfg.Min + clamp(ratio, 0, 1)*(d.cfg.Max-d.cfg.Min)
}

// OnRangeChanged registers a callback fired whenever either bound changes.
func (d *LineDoubleSlider2D) OnRangeChanged(fn func(low, high float64)) HandlerID {
	return d.onRangeChanged.add(func(r [2]float64) { fn(r[0], r[1]) })
}

// RemoveRangeChanged unregisters a range-change callback.
func (d *LineDoubleSlider2D) RemoveRangeChanged(id HandlerID) { d.onRangeChanged.remove(id) }

// OnDragEnd registers a callback fired once when a drag releases.
func (d *LineDoubleSlider2D) OnDragEnd(fn func(low, high float64)) HandlerID {
	return d.onDragEnd.add(func(r [2]float64) { fn(r[0], r[1]) })
}

// RemoveDragEnd unregisters a drag-end callback.
func (d *LineDoubleSlider2D) RemoveDragEnd(id HandlerID) { d.onDragEnd.remove(id) }

// HandleEvent drags the handle nearest to the press point; each handle
// clamps against the other so low never exceeds high.
func (d *LineDoubleSlider2D) HandleEvent(ev *Event) bool {
	switch ev.Type {
	case EventPointerDown:
		v := d.valueAt(ev.Pos)
		if v-d.low <= d.high-v {
			d.drag = d.lowHandle
		} else {
			d.drag = d.highHandle
		}
		d.applyDrag(v)
		return true
	case EventPointerMove:
		if d.drag == nil {
			return false
		}
		d.applyDrag(d.valueAt(ev.Pos))
		return true
	case EventPointerUp:
		if d.drag == nil {
			return false
		}
		d.applyDrag(d.valueAt(ev.Pos))
		d.drag = nil
		d.onDragEnd.fire([2]float64{d.low, d.high})
		return true
	}
	return false
}

func (d *LineDoubleSlider2D) applyDrag(v float64) {
	var low, high float64
	if d.drag == d.lowHandle {
		low, high = clamp(v, d.cfg.Min, d.high), d.high
	} else {
		low, high = d.low, clamp(v, d.low, d.cfg.Max)
	}
	if low == d.low && high == d.high {
		return
	}
	d.low, d.high = low, high
	d.place()
	d.onRangeChanged.fire([2]float64{low, high})
}
