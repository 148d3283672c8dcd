package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render"
)

// SpinBoxConfig configures a SpinBox.
type SpinBoxConfig struct {
	Position geom.Point
	Width    float64
	Min, Max float64
	Initial  float64
	Step     float64 // zero defaults to 1
	Z        int
	Theme    *Theme
}

// SpinBox edits a numeric value with increment/decrement buttons and direct
// text entry. Steps clamp to the range. Typed entry commits on enter: a
// parseable number clamps into range, anything else reverts silently to the
// last valid value.
type SpinBox struct {
	group
	cfg    SpinBoxConfig
	field  *Rectangle2D
	text   *TextBlock2D
	incBtn *Rectangle2D
	incCap *TextBlock2D
	decBtn *Rectangle2D
	decCap *TextBlock2D

	value   float64
	editing bool
	buffer  strings.Builder

	onValueChanged handlerList[float64]
}

// NewSpinBox creates a spin box at cfg.Initial.
func NewSpinBox(r render.Renderer, cfg SpinBoxConfig) (*SpinBox, error) {
	if cfg.Min >= cfg.Max {
		return nil, fmt.Errorf("spin box range [%.2f, %.2f]: %w", cfg.Min, cfg.Max, ErrInvalidValue)
	}
	if cfg.Initial < cfg.Min || cfg.Initial > cfg.Max {
		return nil, fmt.Errorf("spin box initial %.2f outside [%.2f, %.2f]: %w",
			cfg.Initial, cfg.Min, cfg.Max, ErrInvalidValue)
	}
	if cfg.Width <= 0 {
		return nil, fmt.Errorf("spin box width %.1f: %w", cfg.Width, ErrInvalidGeometry)
	}
	if cfg.Step == 0 {
		cfg.Step = 1
	}
	th := themeOrDefault(cfg.Theme)
	h := th.ItemHeight
	btnW := h // square buttons
	fieldW := cfg.Width - 2*btnW
	if fieldW <= 0 {
		return nil, fmt.Errorf("spin box width %.1f too small for buttons: %w", cfg.Width, ErrInvalidGeometry)
	}

	decBtn, err := NewRectangle(r, RectangleConfig{
		Position: cfg.Position,
		Size:     geom.Size{Width: btnW, Height: h},
		Color:    th.AccentColor,
		Z:        cfg.Z,
	})
	if err != nil {
		return nil, err
	}
	decCap, err := NewTextBlock(r, TextConfig{
		Position: geom.Point{X: cfg.Position.X + btnW*0.35, Y: cfg.Position.Y + (h-th.FontSize)/2},
		Text:     "-",
		Z:        cfg.Z + 1,
		Theme:    th,
	})
	if err != nil {
		decBtn.Destroy()
		return nil, err
	}
	field, err := NewRectangle(r, RectangleConfig{
		Position: geom.Point{X: cfg.Position.X + btnW, Y: cfg.Position.Y},
		Size:     geom.Size{Width: fieldW, Height: h},
		Color:    th.PanelColor,
		Z:        cfg.Z,
	})
	if err != nil {
		decBtn.Destroy()
		decCap.Destroy()
		return nil, err
	}
	text, err := NewTextBlock(r, TextConfig{
		Position: geom.Point{X: cfg.Position.X + btnW + th.Padding, Y: cfg.Position.Y + (h-th.FontSize)/2},
		Z:        cfg.Z + 1,
		Theme:    th,
	})
	if err != nil {
		decBtn.Destroy()
		decCap.Destroy()
		field.Destroy()
		return nil, err
	}
	incBtn, err := NewRectangle(r, RectangleConfig{
		Position: geom.Point{X: cfg.Position.X + btnW + fieldW, Y: cfg.Position.Y},
		Size:     geom.Size{Width: btnW, Height: h},
		Color:    th.AccentColor,
		Z:        cfg.Z,
	})
	if err != nil {
		decBtn.Destroy()
		decCap.Destroy()
		field.Destroy()
		text.Destroy()
		return nil, err
	}
	incCap, err := NewTextBlock(r, TextConfig{
		Position: geom.Point{X: cfg.Position.X + btnW + fieldW + btnW*0.35, Y: cfg.Position.Y + (h-th.FontSize)/2},
		Text:     "+",
		Z:        cfg.Z + 1,
		Theme:    th,
	})
	if err != nil {
		decBtn.Destroy()
		decCap.Destroy()
		field.Destroy()
		text.Destroy()
		incBtn.Destroy()
		return nil, err
	}

	sb := &SpinBox{
		group:  newGroup(cfg.Position, geom.Size{Width: cfg.Width, Height: h}),
		cfg:    cfg,
		field:  field,
		text:   text,
		incBtn: incBtn,
		incCap: incCap,
		decBtn: decBtn,
		decCap: decCap,
		value:  cfg.Initial,
	}
	sb.z = cfg.Z
	sb.adopt(decBtn, decCap, field, text, incBtn, incCap)
	sb.refresh()
	return sb, nil
}

// Value returns the current value.
func (sb *SpinBox) Value() float64 { return sb.value }

// SetValue sets the value programmatically. Out-of-range fails with
// ErrInvalidValue and changes nothing.
func (sb *SpinBox) SetValue(v float64) error {
	if v < sb.cfg.Min || v > sb.cfg.Max {
		return fmt.Errorf("spin box value %.2f outside [%.2f, %.2f]: %w",
			v, sb.cfg.Min, sb.cfg.Max, ErrInvalidValue)
	}
	sb.commit(v)
	return nil
}

// Increment steps the value up, clamping at the maximum.
func (sb *SpinBox) Increment() { sb.commit(clamp(sb.value+sb.cfg.Step, sb.cfg.Min, sb.cfg.Max)) }

// Decrement steps the value down, clamping at the minimum.
func (sb *SpinBox) Decrement() { sb.commit(clamp(sb.value-sb.cfg.Step, sb.cfg.Min, sb.cfg.Max)) }

func (sb *SpinBox) commit(v float64) {
	sb.editing = false
	sb.buffer.Reset()
	if v == sb.value {
		sb.refresh()
		return
	}
	sb.value = v
	sb.refresh()
	sb.onValueChanged.fire(v)
}

func (sb *SpinBox) refresh() {
	if sb.editing {
		sb.text.SetText(sb.buffer.String())
		return
	}
	sb.text.SetText(strconv.FormatFloat(sb.value, 'f', -1, 64))
}

// Editing reports whether a text entry is in progress.
func (sb *SpinBox) Editing() bool { return sb.editing }

// OnValueChanged registers a callback fired after the value changes.
func (sb *SpinBox) OnValueChanged(fn func(value float64)) HandlerID {
	return sb.onValueChanged.add(func(v float64) { fn(v) })
}

// RemoveValueChanged unregisters a value callback.
func (sb *SpinBox) RemoveValueChanged(id HandlerID) { sb.onValueChanged.remove(id) }

// loseFocus aborts an in-progress edit, reverting to the last valid value.
func (sb *SpinBox) loseFocus() {
	if sb.editing {
		sb.editing = false
		sb.buffer.Reset()
		sb.refresh()
	}
}

// HandleEvent steps on button clicks, starts an edit on field clicks, and
// consumes key events while editing. Enter commits: a parseable entry
// clamps into range, garbage reverts silently.
func (sb *SpinBox) HandleEvent(ev *Event) bool {
	switch ev.Type {
	case EventPointerDown:
		switch {
		case sb.incBtn.BoundingBox().Contains(ev.Pos):
			sb.Increment()
		case sb.decBtn.BoundingBox().Contains(ev.Pos):
			sb.Decrement()
		case sb.field.BoundingBox().Contains(ev.Pos):
			sb.editing = true
			sb.buffer.Reset()
			sb.refresh()
		default:
			return false
		}
		return true
	case EventKey:
		if !sb.editing {
			return false
		}
		switch ev.Key {
		case "enter":
			entry := sb.buffer.String()
			v, err := strconv.ParseFloat(entry, 64)
			if err != nil {
				sb.commit(sb.value) // silent revert
				return true
			}
			sb.commit(clamp(v, sb.cfg.Min, sb.cfg.Max))
			return true
		case "escape":
			sb.commit(sb.value)
			return true
		case "backspace":
			s := sb.buffer.String()
			if len(s) > 0 {
				sb.buffer.Reset()
				sb.buffer.WriteString(s[:len(s)-1])
			}
			sb.refresh()
			return true
		case "":
			if ev.Rune != 0 {
				sb.buffer.WriteRune(ev.Rune)
				sb.refresh()
				return true
			}
		}
		return false
	}
	return false
}
