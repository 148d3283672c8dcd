package ui

import (
	"fmt"
	"sort"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render"
)

// ListBoxConfig configures a ListBox2D.
type ListBoxConfig struct {
	Position    geom.Point
	Size        geom.Size // viewport extent
	Items       []string
	MultiSelect bool
	Z           int
	Theme       *Theme
}

// ListBox2D shows a scrollable list of text items. Single-select replaces
// the selection on click; multi-select toggles the clicked item. Rows
// outside the viewport are hidden, and scrolling clamps so the content
// never detaches from the viewport edges.
type ListBox2D struct {
	group
	r        render.Renderer
	theme    *Theme
	multi    bool
	viewport *Rectangle2D

	items    []string
	rows     []*Rectangle2D
	labels   []*TextBlock2D
	selected map[int]bool
	scroll   float64 // content offset in pixels, >= 0

	onSelectionChanged handlerList[[]int]
}

// NewListBox creates a list box at scroll offset zero with nothing
// selected.
func NewListBox(r render.Renderer, cfg ListBoxConfig) (*ListBox2D, error) {
	if !cfg.Size.IsValid() {
		return nil, fmt.Errorf("list box %.1fx%.1f: %w", cfg.Size.Width, cfg.Size.Height, ErrInvalidGeometry)
	}
	th := themeOrDefault(cfg.Theme)
	viewport, err := NewRectangle(r, RectangleConfig{
		Position: cfg.Position, Size: cfg.Size, Color: th.PanelColor, Z: cfg.Z,
	})
	if err != nil {
		return nil, err
	}
	lb := &ListBox2D{
		group:    newGroup(cfg.Position, cfg.Size),
		r:        r,
		theme:    th,
		multi:    cfg.MultiSelect,
		viewport: viewport,
		selected: make(map[int]bool),
	}
	lb.z = cfg.Z
	lb.adopt(viewport)
	if err := lb.SetItems(cfg.Items); err != nil {
		lb.Destroy()
		return nil, err
	}
	return lb, nil
}

// Items returns a copy of the bound items.
func (lb *ListBox2D) Items() []string {
	return append([]string(nil), lb.items...)
}

// SetItems rebinds the list contents. Selection and scroll reset.
func (lb *ListBox2D) SetItems(items []string) error {
	for _, row := range lb.rows {
		row.Destroy()
	}
	for _, lbl := range lb.labels {
		lbl.Destroy()
	}
	lb.rows = lb.rows[:0]
	lb.labels = lb.labels[:0]
	lb.items = append([]string(nil), items...)
	lb.selected = make(map[int]bool)
	lb.scroll = 0

	for i, item := range lb.items {
		row, err := NewRectangle(lb.r, RectangleConfig{
			Position: lb.rowOrigin(i),
			Size:     geom.Size{Width: lb.size.Width, Height: lb.theme.ItemHeight},
			Color:    lb.theme.PanelColor,
			Z:        lb.z + 1,
		})
		if err != nil {
			return err
		}
		lbl, err := NewTextBlock(lb.r, TextConfig{
			Position: lb.labelOrigin(i),
			Text:     item,
			Z:        lb.z + 2,
			Theme:    lb.theme,
		})
		if err != nil {
			row.Destroy()
			return err
		}
		lb.rows = append(lb.rows, row)
		lb.labels = append(lb.labels, lbl)
	}
	lb.relayout()
	return nil
}

func (lb *ListBox2D) rowOrigin(i int) geom.Point {
	return geom.Point{
		X: lb.pos.X,
		Y: lb.pos.Y + float64(i)*lb.theme.ItemHeight - lb.scroll,
	}
}

func (lb *ListBox2D) labelOrigin(i int) geom.Point {
	o := lb.rowOrigin(i)
	return geom.Point{
		X: o.X + lb.theme.Padding,
		Y: o.Y + (lb.theme.ItemHeight-lb.theme.FontSize)/2,
	}
}

// contentHeight is the full height of all rows.
func (lb *ListBox2D) contentHeight() float64 {
	return float64(len(lb.items)) * lb.theme.ItemHeight
}

// maxScroll is the clamp ceiling: content height minus viewport height, or
// zero when everything fits.
func (lb *ListBox2D) maxScroll() float64 {
	m := lb.contentHeight() - lb.size.Height
	if m < 0 {
		return 0
	}
	return m
}

// relayout repositions every row for the current scroll offset and hides
// rows that fall outside the viewport.
func (lb *ListBox2D) relayout() {
	view := lb.viewport.BoundingBox()
	for i := range lb.rows {
		o := lb.rowOrigin(i)
		lb.rows[i].SetPosition(o)
		lb.labels[i].SetPosition(lb.labelOrigin(i))
		inside := o.Y >= view.Min.Y && o.Y+lb.theme.ItemHeight <= view.Max.Y
		lb.rows[i].SetVisible(inside && lb.visible)
		lb.labels[i].SetVisible(inside && lb.visible)
		lb.paintRow(i)
	}
}

func (lb *ListBox2D) paintRow(i int) {
	if lb.selected[i] {
		lb.rows[i].SetColor(lb.theme.AccentColor)
	} else {
		lb.rows[i].SetColor(lb.theme.PanelColor)
	}
}

// Scroll returns the current content offset in pixels.
func (lb *ListBox2D) Scroll() float64 { return lb.scroll }

// ScrollBy moves the content by dy pixels, clamped to
// [0, contentHeight-viewportHeight].
func (lb *ListBox2D) ScrollBy(dy float64) {
	lb.ScrollTo(lb.scroll + dy)
}

// ScrollTo sets the content offset, clamped to the valid range.
func (lb *ListBox2D) ScrollTo(offset float64) {
	offset = clamp(offset, 0, lb.maxScroll())
	if offset == lb.scroll {
		return
	}
	lb.scroll = offset
	lb.relayout()
}

// Selection returns the selected indices in ascending order.
func (lb *ListBox2D) Selection() []int {
	out := make([]int, 0, len(lb.selected))
	for i := range lb.selected {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// SelectIndex sets the selection programmatically using the same semantics
// as a click: replace in single-select mode, toggle in multi-select. An
// out-of-range index fails with ErrIndexOutOfRange.
func (lb *ListBox2D) SelectIndex(i int) error {
	if i < 0 || i >= len(lb.items) {
		return fmt.Errorf("list item %d of %d: %w", i, len(lb.items), ErrIndexOutOfRange)
	}
	lb.applySelect(i)
	return nil
}

func (lb *ListBox2D) applySelect(i int) {
	if lb.multi {
		if lb.selected[i] {
			delete(lb.selected, i)
		} else {
			lb.selected[i] = true
		}
	} else {
		if len(lb.selected) == 1 && lb.selected[i] {
			return
		}
		lb.selected = map[int]bool{i: true}
	}
	for j := range lb.rows {
		lb.paintRow(j)
	}
	lb.onSelectionChanged.fire(lb.Selection())
}

// OnSelectionChanged registers a callback fired with the new ascending
// selection after every change.
func (lb *ListBox2D) OnSelectionChanged(fn func(indices []int)) HandlerID {
	return lb.onSelectionChanged.add(func(s []int) { fn(s) })
}

// RemoveSelectionChanged unregisters a selection callback.
func (lb *ListBox2D) RemoveSelectionChanged(id HandlerID) { lb.onSelectionChanged.remove(id) }

// SetPosition moves the viewport and every row.
func (lb *ListBox2D) SetPosition(pos geom.Point) {
	d := pos.Sub(lb.pos)
	if d == (geom.Point{}) {
		return
	}
	lb.group.SetPosition(pos)
	for i := range lb.rows {
		lb.rows[i].SetPosition(lb.rows[i].Position().Add(d))
		lb.labels[i].SetPosition(lb.labels[i].Position().Add(d))
	}
}

// SetVisible re-applies windowing so only in-viewport rows show.
func (lb *ListBox2D) SetVisible(v bool) {
	lb.visible = v
	lb.viewport.SetVisible(v)
	lb.relayout()
}

// SetSize resizes the viewport, re-clamps the scroll offset, and re-windows
// the rows.
func (lb *ListBox2D) SetSize(s geom.Size) error {
	if err := lb.group.SetSize(s); err != nil {
		return err
	}
	if err := lb.viewport.SetSize(s); err != nil {
		return err
	}
	lb.scroll = clamp(lb.scroll, 0, lb.maxScroll())
	lb.relayout()
	return nil
}

// Destroy releases the viewport and every row.
func (lb *ListBox2D) Destroy() {
	for i := range lb.rows {
		lb.rows[i].Destroy()
		lb.labels[i].Destroy()
	}
	lb.rows, lb.labels = nil, nil
	lb.group.Destroy()
}

// HandleEvent selects on click and scrolls on wheel events.
func (lb *ListBox2D) HandleEvent(ev *Event) bool {
	switch ev.Type {
	case EventPointerDown:
		view := lb.viewport.BoundingBox()
		if !view.Contains(ev.Pos) {
			return false
		}
		i := int((ev.Pos.Y - view.Min.Y + lb.scroll) / lb.theme.ItemHeight)
		if i < 0 || i >= len(lb.items) {
			return false
		}
		// The strip at the viewport's bottom edge can belong to a row the
		// windowing hides; a click there must not select an invisible item.
		if !lb.rows[i].Visible() {
			return false
		}
		lb.applySelect(i)
		return true
	case EventScroll:
		// Positive delta scrolls content up, revealing later items.
		lb.ScrollBy(ev.Delta * lb.theme.ScrollStep)
		return true
	}
	return false
}
