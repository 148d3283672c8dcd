package ui

import (
	"fmt"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render"
)

// ButtonConfig configures a Button2D.
type ButtonConfig struct {
	Position geom.Point
	Size     geom.Size
	// Icons is the ordered set of image sources the button cycles through.
	// At least one is required.
	Icons []string
	Z     int
}

// Button2D is a clickable icon. It carries an ordered icon set and can cycle
// through it, e.g. a play button flipping between play and pause art.
type Button2D struct {
	Core
	icons     []string
	iconIndex int
	pressed   bool

	onPressed handlerList[struct{}]
	onClicked handlerList[struct{}]
}

// NewButton creates a button showing the first configured icon.
func NewButton(r render.Renderer, cfg ButtonConfig) (*Button2D, error) {
	if len(cfg.Icons) == 0 {
		return nil, fmt.Errorf("button without icons: %w", ErrInvalidValue)
	}
	core, err := newCore(r, render.KindImage, render.Geometry{
		Pos:     cfg.Position,
		Size:    cfg.Size,
		Source:  cfg.Icons[0],
		Z:       cfg.Z,
		Visible: true,
	})
	if err != nil {
		return nil, err
	}
	b := &Button2D{Core: core}
	b.icons = make([]string, len(cfg.Icons))
	copy(b.icons, cfg.Icons)
	return b, nil
}

// Icon returns the currently displayed icon source.
func (b *Button2D) Icon() string { return b.icons[b.iconIndex] }

// NextIcon advances to the next icon in the set, wrapping around.
func (b *Button2D) NextIcon() {
	b.SetIconIndex((b.iconIndex + 1) % len(b.icons))
}

// IconIndex returns the index of the displayed icon.
func (b *Button2D) IconIndex() int { return b.iconIndex }

// SetIconIndex shows the icon at the given index.
func (b *Button2D) SetIconIndex(i int) {
	if i < 0 || i >= len(b.icons) || i == b.iconIndex {
		return
	}
	b.iconIndex = i
	b.geo.Source = b.icons[i]
	b.sync()
}

// Pressed reports whether a pointer is currently held down on the button.
func (b *Button2D) Pressed() bool { return b.pressed }

// OnPressed registers a callback fired on pointer-down.
func (b *Button2D) OnPressed(fn func()) HandlerID {
	return b.onPressed.add(func(struct{}) { fn() })
}

// RemovePressed unregisters a pressed callback.
func (b *Button2D) RemovePressed(id HandlerID) bool { return b.onPressed.remove(id) }

// OnClicked registers a callback fired when a press is released inside the
// button's bounds.
func (b *Button2D) OnClicked(fn func()) HandlerID {
	return b.onClicked.add(func(struct{}) { fn() })
}

// RemoveClicked unregisters a click callback.
func (b *Button2D) RemoveClicked(id HandlerID) bool { return b.onClicked.remove(id) }

func (b *Button2D) HandleEvent(ev *Event) bool {
	switch ev.Type {
	case EventPointerDown:
		b.pressed = true
		b.onPressed.fire(struct{}{})
		return true
	case EventPointerUp:
		if !b.pressed {
			return false
		}
		b.pressed = false
		if b.BoundingBox().Contains(ev.Pos) {
			b.onClicked.fire(struct{}{})
		}
		return true
	}
	return false
}
