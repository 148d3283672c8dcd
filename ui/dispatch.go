package ui

import (
	"log/slog"
	"math"
	"sort"

	"github.com/agiangrant/surface/geom"
)

// blurrer is implemented by widgets that react to losing focus, such as a
// combo box collapsing its drop-down.
type blurrer interface {
	loseFocus()
}

// overlay is implemented by widgets whose open state extends past their
// ancestors' bounds, such as an expanded combo box or a menu with an open
// submenu. The dispatcher hit-tests active overlays before the bounds-pruned
// tree walk so the fly-out region stays clickable even where it sticks out
// of its container.
type overlay interface {
	overlayActive() bool
}

// Dispatcher routes the normalized event stream to scene elements. It holds
// the interaction state that spans events: the focused element and the
// active drag target. Like the rest of the package it is single-threaded;
// feed it events from the UI thread only.
type Dispatcher struct {
	scene *Scene
	log   *slog.Logger

	focused Element
	drag    Element
}

// NewDispatcher creates a dispatcher for a scene.
func NewDispatcher(s *Scene) *Dispatcher {
	return &Dispatcher{scene: s, log: s.logger}
}

// Focused returns the element holding keyboard focus, or nil.
func (d *Dispatcher) Focused() Element { return d.focused }

// DragTarget returns the element receiving the active drag, or nil.
func (d *Dispatcher) DragTarget() Element { return d.drag }

// Dispatch routes one event. Events that hit nothing are dropped silently;
// malformed events (non-finite coordinates) are absorbed with a warning.
// Dispatch never panics the loop on a per-event problem.
func (d *Dispatcher) Dispatch(ev *Event) {
	if ev == nil {
		return
	}
	if math.IsNaN(ev.Pos.X) || math.IsNaN(ev.Pos.Y) ||
		math.IsInf(ev.Pos.X, 0) || math.IsInf(ev.Pos.Y, 0) {
		d.log.Warn("dropping malformed event", "type", ev.Type, "x", ev.Pos.X, "y", ev.Pos.Y)
		return
	}

	switch ev.Type {
	case EventPointerDown:
		d.pointerDown(ev)
	case EventPointerMove, EventPointerUp:
		d.pointerDrag(ev)
	case EventScroll:
		d.scroll(ev)
	case EventKey:
		d.key(ev)
	}
}

func (d *Dispatcher) pointerDown(ev *Event) {
	target := d.hitTest(ev.Pos)
	d.setFocus(target)
	if target == nil {
		return
	}
	if target.HandleEvent(ev) {
		// The press target receives all move/up events until release.
		d.drag = target
	}
}

// pointerDrag routes move and up events. An active drag bypasses hit-testing
// entirely; the drag target sees every event until pointer-up or until it is
// removed from its container mid-drag, which cancels the drag and drops the
// event.
func (d *Dispatcher) pointerDrag(ev *Event) {
	if d.drag == nil {
		if ev.Type == EventPointerMove {
			if t := d.hitTest(ev.Pos); t != nil {
				t.HandleEvent(ev)
			}
		}
		return
	}
	if d.drag.Removed() {
		d.log.Debug("drag target removed mid-drag, cancelling")
		d.drag = nil
		return
	}
	d.drag.HandleEvent(ev)
	if ev.Type == EventPointerUp {
		d.drag = nil
	}
}

// scroll goes to the focused element first, then to the hit element, then
// bubbles up its parent chain until someone consumes it.
func (d *Dispatcher) scroll(ev *Event) {
	if d.focused != nil && !d.focused.Removed() && d.focused.HandleEvent(ev) {
		return
	}
	for el := d.hitTest(ev.Pos); el != nil; el = parentElement(el) {
		if el.HandleEvent(ev) {
			return
		}
	}
}

func parentElement(el Element) Element {
	if p := el.Parent(); p != nil {
		return p
	}
	return nil
}

// key events go to the focused element only.
func (d *Dispatcher) key(ev *Event) {
	if d.focused == nil || d.focused.Removed() {
		return
	}
	d.focused.HandleEvent(ev)
}

// setFocus moves keyboard focus, delivering blur to the outgoing element.
func (d *Dispatcher) setFocus(target Element) {
	if target == d.focused {
		return
	}
	if d.focused != nil {
		if b, ok := d.focused.(blurrer); ok {
			b.loseFocus()
		}
	}
	d.focused = target
}

// hitTest finds the topmost visible element containing p: top-levels in
// descending z, recursing into containers child-first so the deepest hit
// wins. A container whose child hits yields the child; a container hit with
// no child hit yields the container itself.
func (d *Dispatcher) hitTest(p geom.Point) Element {
	tops := d.scene.Snapshot()
	// Snapshot is ascending z; walk it back to front. Open drop-downs and
	// submenus draw above everything else and may stick out past their
	// ancestors' bounds, so they get a dedicated pass first.
	for i := len(tops) - 1; i >= 0; i-- {
		if el := hitOverlay(tops[i], p); el != nil {
			return el
		}
	}
	for i := len(tops) - 1; i >= 0; i-- {
		if el := hitElement(tops[i], p); el != nil {
			return el
		}
	}
	return nil
}

// hitOverlay searches the subtree for an active overlay widget containing p.
// Ancestor bounds cannot prune this walk: the whole point of an overlay is
// that its open region extends beyond them.
func hitOverlay(el Element, p geom.Point) Element {
	if !el.Visible() {
		return nil
	}
	if ov, ok := el.(overlay); ok && ov.overlayActive() && el.BoundingBox().Contains(p) {
		return hitElement(el, p)
	}
	if c, ok := el.(Container); ok {
		children := c.Children()
		sort.SliceStable(children, func(i, j int) bool {
			return children[i].ZOrder() < children[j].ZOrder()
		})
		for i := len(children) - 1; i >= 0; i-- {
			if hit := hitOverlay(children[i], p); hit != nil {
				return hit
			}
		}
	}
	return nil
}

func hitElement(el Element, p geom.Point) Element {
	if !el.Visible() || !el.BoundingBox().Contains(p) {
		return nil
	}
	if c, ok := el.(Container); ok {
		children := c.Children()
		sort.SliceStable(children, func(i, j int) bool {
			return children[i].ZOrder() < children[j].ZOrder()
		})
		for i := len(children) - 1; i >= 0; i-- {
			if hit := hitElement(children[i], p); hit != nil {
				return hit
			}
		}
	}
	return el
}
