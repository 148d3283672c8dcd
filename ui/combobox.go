package ui

import (
	"fmt"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render"
)

// ComboBoxConfig configures a ComboBox2D.
type ComboBoxConfig struct {
	Position geom.Point
	Width    float64
	Options  []string
	Z        int
	Theme    *Theme
}

// ComboBox2D is a drop-down selector. Collapsed it shows the current
// selection; clicking it expands an option list below. Clicking an option
// selects it and collapses; losing focus (a click elsewhere) collapses
// without changing the selection.
type ComboBox2D struct {
	group
	theme   *Theme
	field   *Rectangle2D
	caption *TextBlock2D
	options []string
	rows    []*Rectangle2D
	labels  []*TextBlock2D

	selected int
	expanded bool

	onSelected handlerList[int]
}

// NewComboBox creates a collapsed combo box with the first option selected.
func NewComboBox(r render.Renderer, cfg ComboBoxConfig) (*ComboBox2D, error) {
	if len(cfg.Options) == 0 {
		return nil, fmt.Errorf("combo box needs at least one option: %w", ErrInvalidValue)
	}
	if cfg.Width <= 0 {
		return nil, fmt.Errorf("combo box width %.1f: %w", cfg.Width, ErrInvalidGeometry)
	}
	th := themeOrDefault(cfg.Theme)
	field, err := NewRectangle(r, RectangleConfig{
		Position: cfg.Position,
		Size:     geom.Size{Width: cfg.Width, Height: th.ItemHeight},
		Color:    th.PanelColor,
		Z:        cfg.Z,
	})
	if err != nil {
		return nil, err
	}
	caption, err := NewTextBlock(r, TextConfig{
		Position: geom.Point{
			X: cfg.Position.X + th.Padding,
			Y: cfg.Position.Y + (th.ItemHeight-th.FontSize)/2,
		},
		Text:  cfg.Options[0],
		Z:     cfg.Z + 1,
		Theme: th,
	})
	if err != nil {
		field.Destroy()
		return nil, err
	}
	c := &ComboBox2D{
		group:   newGroup(cfg.Position, geom.Size{Width: cfg.Width, Height: th.ItemHeight}),
		theme:   th,
		field:   field,
		caption: caption,
		options: append([]string(nil), cfg.Options...),
	}
	c.z = cfg.Z
	c.adopt(field, caption)

	for i, opt := range cfg.Options {
		rowPos := geom.Point{
			X: cfg.Position.X,
			Y: cfg.Position.Y + float64(i+1)*th.ItemHeight,
		}
		row, err := NewRectangle(r, RectangleConfig{
			Position: rowPos,
			Size:     geom.Size{Width: cfg.Width, Height: th.ItemHeight},
			Color:    th.PanelColor,
			Z:        cfg.Z + 2,
		})
		if err != nil {
			c.Destroy()
			return nil, err
		}
		lbl, err := NewTextBlock(r, TextConfig{
			Position: geom.Point{
				X: rowPos.X + th.Padding,
				Y: rowPos.Y + (th.ItemHeight-th.FontSize)/2,
			},
			Text:  opt,
			Z:     cfg.Z + 3,
			Theme: th,
		})
		if err != nil {
			row.Destroy()
			c.Destroy()
			return nil, err
		}
		row.SetVisible(false)
		lbl.SetVisible(false)
		c.rows = append(c.rows, row)
		c.labels = append(c.labels, lbl)
		c.adopt(row, lbl)
	}
	return c, nil
}

// Selected returns the index of the current selection.
func (c *ComboBox2D) Selected() int { return c.selected }

// SelectedOption returns the text of the current selection.
func (c *ComboBox2D) SelectedOption() string { return c.options[c.selected] }

// Expanded reports whether the option list is open.
func (c *ComboBox2D) Expanded() bool { return c.expanded }

// Select sets the selection programmatically. An out-of-range index fails
// with ErrIndexOutOfRange.
func (c *ComboBox2D) Select(i int) error {
	if i < 0 || i >= len(c.options) {
		return fmt.Errorf("combo option %d of %d: %w", i, len(c.options), ErrIndexOutOfRange)
	}
	c.selectInternal(i)
	return nil
}

func (c *ComboBox2D) selectInternal(i int) {
	if i == c.selected {
		return
	}
	c.selected = i
	c.caption.SetText(c.options[i])
	c.onSelected.fire(i)
}

// OnSelected registers a callback fired after the selection changes.
func (c *ComboBox2D) OnSelected(fn func(index int)) HandlerID {
	return c.onSelected.add(func(i int) { fn(i) })
}

// RemoveSelected unregisters a selection callback.
func (c *ComboBox2D) RemoveSelected(id HandlerID) { c.onSelected.remove(id) }

func (c *ComboBox2D) setExpanded(open bool) {
	if open == c.expanded {
		return
	}
	c.expanded = open
	for i := range c.rows {
		c.rows[i].SetVisible(open && c.visible)
		c.labels[i].SetVisible(open && c.visible)
	}
}

// loseFocus collapses the drop-down without touching the selection. The
// dispatcher calls it when focus moves elsewhere.
func (c *ComboBox2D) loseFocus() {
	c.setExpanded(false)
}

// overlayActive reports an open option list, which may extend past the
// bounds of whatever container holds the combo box.
func (c *ComboBox2D) overlayActive() bool { return c.expanded }

// SetVisible hides the option list along with the field; re-showing starts
// collapsed.
func (c *ComboBox2D) SetVisible(v bool) {
	c.expanded = false
	c.group.SetVisible(v)
	for i := range c.rows {
		c.rows[i].SetVisible(false)
		c.labels[i].SetVisible(false)
	}
}

// BoundingBox covers the field plus, while expanded, the open option list,
// so hit-testing reaches the drop-down rows.
func (c *ComboBox2D) BoundingBox() geom.BoundingBox {
	box := c.group.BoundingBox()
	if c.expanded {
		box.Max.Y += float64(len(c.options)) * c.theme.ItemHeight
	}
	return box
}

// HandleEvent toggles expansion on field clicks and selects on row clicks.
func (c *ComboBox2D) HandleEvent(ev *Event) bool {
	if ev.Type != EventPointerDown {
		return false
	}
	if c.field.BoundingBox().Contains(ev.Pos) {
		c.setExpanded(!c.expanded)
		return true
	}
	if !c.expanded {
		return false
	}
	for i := range c.rows {
		if c.rows[i].BoundingBox().Contains(ev.Pos) {
			c.selectInternal(i)
			c.setExpanded(false)
			return true
		}
	}
	return false
}
