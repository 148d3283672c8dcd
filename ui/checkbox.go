package ui

import (
	"fmt"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render"
)

// CheckboxConfig configures a Checkbox2D or a RadioButton.
type CheckboxConfig struct {
	Position geom.Point
	Label    string
	Checked  bool
	Z        int
	Theme    *Theme
}

// Checkbox2D is a labeled toggle. Clicking anywhere on the box or label
// flips the state.
type Checkbox2D struct {
	group
	box     *Rectangle2D
	mark    *Rectangle2D
	caption *TextBlock2D
	checked bool

	onChanged handlerList[bool]
}

// NewCheckbox creates a checkbox.
func NewCheckbox(r render.Renderer, cfg CheckboxConfig) (*Checkbox2D, error) {
	th := themeOrDefault(cfg.Theme)
	bs := th.CheckboxSize
	box, err := NewRectangle(r, RectangleConfig{
		Position: cfg.Position,
		Size:     geom.Size{Width: bs, Height: bs},
		Color:    th.PanelColor,
		Z:        cfg.Z,
	})
	if err != nil {
		return nil, err
	}
	inset := bs * 0.2
	mark, err := NewRectangle(r, RectangleConfig{
		Position: geom.Point{X: cfg.Position.X + inset, Y: cfg.Position.Y + inset},
		Size:     geom.Size{Width: bs - 2*inset, Height: bs - 2*inset},
		Color:    th.AccentColor,
		Z:        cfg.Z + 1,
	})
	if err != nil {
		box.Destroy()
		return nil, err
	}
	caption, err := NewTextBlock(r, TextConfig{
		Position: geom.Point{
			X: cfg.Position.X + bs + th.Padding,
			Y: cfg.Position.Y + (bs-th.FontSize)/2,
		},
		Text:  cfg.Label,
		Z:     cfg.Z,
		Theme: th,
	})
	if err != nil {
		box.Destroy()
		mark.Destroy()
		return nil, err
	}
	c := &Checkbox2D{
		group: newGroup(cfg.Position, geom.Size{
			Width:  bs + th.Padding + caption.Size().Width,
			Height: bs,
		}),
		box:     box,
		mark:    mark,
		caption: caption,
		checked: cfg.Checked,
	}
	c.z = cfg.Z
	c.adopt(box, mark, caption)
	mark.SetVisible(cfg.Checked)
	return c, nil
}

// Checked reports the current state.
func (c *Checkbox2D) Checked() bool { return c.checked }

// SetChecked sets the state programmatically; observers fire only on change.
func (c *Checkbox2D) SetChecked(v bool) {
	if v == c.checked {
		return
	}
	c.checked = v
	c.mark.SetVisible(v && c.visible)
	c.onChanged.fire(v)
}

// Toggle flips the state.
func (c *Checkbox2D) Toggle() { c.SetChecked(!c.checked) }

// OnChanged registers a callback fired after the state flips.
func (c *Checkbox2D) OnChanged(fn func(checked bool)) HandlerID {
	return c.onChanged.add(func(v bool) { fn(v) })
}

// RemoveChanged unregisters a state-change callback.
func (c *Checkbox2D) RemoveChanged(id HandlerID) { c.onChanged.remove(id) }

// SetVisible keeps the mark hidden while unchecked.
func (c *Checkbox2D) SetVisible(v bool) {
	c.group.SetVisible(v)
	c.mark.SetVisible(v && c.checked)
}

// HandleEvent toggles on pointer-down.
func (c *Checkbox2D) HandleEvent(ev *Event) bool {
	if ev.Type != EventPointerDown {
		return false
	}
	c.Toggle()
	return true
}

// RadioButton is a single choice in a RadioGroup. It renders as a ring with
// a filled dot when selected. Unlike a checkbox, clicking a selected radio
// does not deselect it; only selecting a sibling does.
type RadioButton struct {
	group
	ring     *Disk2D
	dot      *Disk2D
	caption  *TextBlock2D
	selected bool
	owner    *RadioGroup
}

// NewRadioButton creates an unselected radio button. Attach it to a
// RadioGroup to make it interactive.
func NewRadioButton(r render.Renderer, cfg CheckboxConfig) (*RadioButton, error) {
	th := themeOrDefault(cfg.Theme)
	radius := th.CheckboxSize / 2
	center := geom.Point{X: cfg.Position.X + radius, Y: cfg.Position.Y + radius}
	ring, err := NewDisk(r, DiskConfig{
		Center:      center,
		OuterRadius: radius,
		InnerRadius: radius * 0.7,
		Color:       th.PanelColor,
		Z:           cfg.Z,
	})
	if err != nil {
		return nil, err
	}
	dot, err := NewDisk(r, DiskConfig{
		Center:      center,
		OuterRadius: radius * 0.5,
		Color:       th.AccentColor,
		Z:           cfg.Z + 1,
	})
	if err != nil {
		ring.Destroy()
		return nil, err
	}
	caption, err := NewTextBlock(r, TextConfig{
		Position: geom.Point{
			X: cfg.Position.X + 2*radius + th.Padding,
			Y: cfg.Position.Y + radius - th.FontSize/2,
		},
		Text:  cfg.Label,
		Z:     cfg.Z,
		Theme: th,
	})
	if err != nil {
		ring.Destroy()
		dot.Destroy()
		return nil, err
	}
	rb := &RadioButton{
		group: newGroup(cfg.Position, geom.Size{
			Width:  2*radius + th.Padding + caption.Size().Width,
			Height: 2 * radius,
		}),
		ring:    ring,
		dot:     dot,
		caption: caption,
	}
	rb.z = cfg.Z
	rb.adopt(ring, dot, caption)
	dot.SetVisible(false)
	return rb, nil
}

// Selected reports whether this radio is the group's current choice.
func (rb *RadioButton) Selected() bool { return rb.selected }

func (rb *RadioButton) setSelected(v bool) {
	rb.selected = v
	rb.dot.SetVisible(v && rb.visible)
}

// SetVisible keeps the dot hidden while unselected.
func (rb *RadioButton) SetVisible(v bool) {
	rb.group.SetVisible(v)
	rb.dot.SetVisible(v && rb.selected)
}

// HandleEvent selects this radio within its group.
func (rb *RadioButton) HandleEvent(ev *Event) bool {
	if ev.Type != EventPointerDown || rb.owner == nil {
		return false
	}
	rb.owner.selectButton(rb)
	return true
}

// RadioGroup owns a set of RadioButtons and enforces that exactly one is
// selected at all times once the group is non-empty.
type RadioGroup struct {
	group
	buttons []*RadioButton

	onSelected handlerList[int]
}

// NewRadioGroup creates an empty group. The first button added becomes the
// selection.
func NewRadioGroup(pos geom.Point) *RadioGroup {
	g := &RadioGroup{group: newGroup(pos, geom.Size{})}
	return g
}

// AddButton attaches a radio to the group below the previous one. The first
// button added becomes selected.
func (g *RadioGroup) AddButton(rb *RadioButton) {
	rb.owner = g
	rb.setParent(g)
	rb.setRemoved(false)
	g.buttons = append(g.buttons, rb)
	g.growTo(rb.BoundingBox())
	if len(g.buttons) == 1 {
		rb.setSelected(true)
	}
}

// growTo extends the group's extent to cover a new member's box.
func (g *RadioGroup) growTo(box geom.BoundingBox) {
	if len(g.buttons) == 1 {
		g.pos = box.Min
		g.size = geom.Size{Width: box.Width(), Height: box.Height()}
		return
	}
	own := g.BoundingBox()
	min := geom.Point{X: minF(own.Min.X, box.Min.X), Y: minF(own.Min.Y, box.Min.Y)}
	max := geom.Point{X: maxF(own.Max.X, box.Max.X), Y: maxF(own.Max.Y, box.Max.Y)}
	g.pos = min
	g.size = geom.Size{Width: max.X - min.X, Height: max.Y - min.Y}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// SelectedIndex returns the index of the selected button, or -1 when empty.
func (g *RadioGroup) SelectedIndex() int {
	for i, rb := range g.buttons {
		if rb.selected {
			return i
		}
	}
	return -1
}

// Select makes button i the selection. An out-of-range index fails with
// ErrIndexOutOfRange and changes nothing.
func (g *RadioGroup) Select(i int) error {
	if i < 0 || i >= len(g.buttons) {
		return fmt.Errorf("radio %d of %d: %w", i, len(g.buttons), ErrIndexOutOfRange)
	}
	g.selectButton(g.buttons[i])
	return nil
}

// selectButton flips the selection to rb, deselecting every sibling first so
// the exactly-one invariant holds at callback time.
func (g *RadioGroup) selectButton(rb *RadioButton) {
	if rb.selected {
		return
	}
	for _, b := range g.buttons {
		if b != rb && b.selected {
			b.setSelected(false)
		}
	}
	rb.setSelected(true)
	g.onSelected.fire(g.SelectedIndex())
}

// OnSelected registers a callback fired with the newly selected index.
func (g *RadioGroup) OnSelected(fn func(index int)) HandlerID {
	return g.onSelected.add(func(i int) { fn(i) })
}

// RemoveSelected unregisters a selection callback.
func (g *RadioGroup) RemoveSelected(id HandlerID) { g.onSelected.remove(id) }

// Children returns the group's buttons.
func (g *RadioGroup) Children() []Element {
	out := make([]Element, len(g.buttons))
	for i, rb := range g.buttons {
		out[i] = rb
	}
	return out
}

// RemoveElement detaches a button. Removing the selected button promotes
// the first remaining button so the invariant survives.
func (g *RadioGroup) RemoveElement(el Element) bool {
	for i, rb := range g.buttons {
		if Element(rb) == el {
			wasSelected := rb.selected
			g.buttons = append(g.buttons[:i], g.buttons[i+1:]...)
			rb.owner = nil
			rb.setParent(nil)
			rb.setRemoved(true)
			rb.setSelected(false)
			if wasSelected && len(g.buttons) > 0 {
				g.buttons[0].setSelected(true)
				g.onSelected.fire(0)
			}
			return true
		}
	}
	return false
}

// SetPosition moves the group and every button by the same delta.
func (g *RadioGroup) SetPosition(pos geom.Point) {
	d := pos.Sub(g.pos)
	if d == (geom.Point{}) {
		return
	}
	g.pos = pos
	for _, rb := range g.buttons {
		rb.SetPosition(rb.Position().Add(d))
	}
}

// SetVisible toggles every button.
func (g *RadioGroup) SetVisible(v bool) {
	g.visible = v
	for _, rb := range g.buttons {
		rb.SetVisible(v)
	}
}

// Destroy releases every button.
func (g *RadioGroup) Destroy() {
	for _, rb := range g.buttons {
		rb.Destroy()
	}
	g.buttons = nil
	g.removed = true
}
