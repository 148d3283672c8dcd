package ui

import (
	"fmt"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render"
)

// RangeSlider pairs a LineDoubleSlider2D with a live "low - high" readout.
// The low bound never exceeds the high bound; the underlying double slider
// cross-clamps its handles.
type RangeSlider struct {
	group
	slider *LineDoubleSlider2D
	text   *TextBlock2D
}

// NewRangeSlider creates a range slider at [cfg.InitialLow, cfg.InitialHigh].
func NewRangeSlider(r render.Renderer, cfg DoubleSliderConfig) (*RangeSlider, error) {
	th := themeOrDefault(cfg.Theme)
	cfg.Theme = th
	slider, err := NewLineDoubleSlider(r, cfg)
	if err != nil {
		return nil, err
	}
	text, err := NewTextBlock(r, TextConfig{
		Position: geom.Point{X: cfg.Position.X, Y: cfg.Position.Y - th.FontSize*1.4},
		Text:     rangeText(cfg.InitialLow, cfg.InitialHigh),
		Z:        cfg.Z + 2,
		Theme:    th,
	})
	if err != nil {
		slider.Destroy()
		return nil, err
	}
	rs := &RangeSlider{
		group:  newGroup(cfg.Position, slider.Size()),
		slider: slider,
		text:   text,
	}
	rs.z = cfg.Z
	rs.adopt(slider, text)
	slider.OnRangeChanged(func(low, high float64) {
		text.SetText(rangeText(low, high))
	})
	return rs, nil
}

func rangeText(low, high float64) string {
	return fmt.Sprintf("%.1f - %.1f", low, high)
}

// Low returns the lower bound.
func (rs *RangeSlider) Low() float64 { return rs.slider.Low() }

// High returns the upper bound.
func (rs *RangeSlider) High() float64 { return rs.slider.High() }

// SetRange moves both bounds; ErrInvalidValue on inverted or out-of-range
// bounds.
func (rs *RangeSlider) SetRange(low, high float64) error {
	return rs.slider.SetRange(low, high)
}

// OnRangeChanged registers a callback fired whenever either bound changes.
func (rs *RangeSlider) OnRangeChanged(fn func(low, high float64)) HandlerID {
	return rs.slider.OnRangeChanged(fn)
}

// RemoveRangeChanged unregisters a range-change callback.
func (rs *RangeSlider) RemoveRangeChanged(id HandlerID) { rs.slider.RemoveRangeChanged(id) }

// OnDragEnd registers a callback fired once on handle release.
func (rs *RangeSlider) OnDragEnd(fn func(low, high float64)) HandlerID {
	return rs.slider.OnDragEnd(fn)
}

// RemoveDragEnd unregisters a drag-end callback.
func (rs *RangeSlider) RemoveDragEnd(id HandlerID) { rs.slider.RemoveDragEnd(id) }

// HandleEvent forwards drags to the inner double slider.
func (rs *RangeSlider) HandleEvent(ev *Event) bool {
	return rs.slider.HandleEvent(ev)
}
