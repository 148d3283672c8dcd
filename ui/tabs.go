package ui

import (
	"fmt"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render"
)

// TabConfig configures a TabPanel2D.
type TabConfig struct {
	Position     geom.Point
	ContentSize  geom.Size // size of each tab's content panel
	HeaderHeight float64   // zero takes the theme item height
	Z            int
	Theme        *Theme
}

type tab struct {
	label   string
	header  *Rectangle2D
	caption *TextBlock2D
	content *Panel2D
}

// TabPanel2D stacks content panels behind a horizontal header strip.
// Exactly one content panel is visible at a time.
type TabPanel2D struct {
	group
	r       render.Renderer
	theme   *Theme
	headerH float64
	tabs    []tab
	active  int

	onTabChanged handlerList[int]
}

// NewTabPanel creates a tab panel with no tabs. The first AddTab selects
// its tab.
func NewTabPanel(r render.Renderer, cfg TabConfig) (*TabPanel2D, error) {
	if !cfg.ContentSize.IsValid() {
		return nil, fmt.Errorf("tab content %.1fx%.1f: %w",
			cfg.ContentSize.Width, cfg.ContentSize.Height, ErrInvalidGeometry)
	}
	th := themeOrDefault(cfg.Theme)
	hh := cfg.HeaderHeight
	if hh == 0 {
		hh = th.ItemHeight
	}
	if hh < 0 {
		return nil, fmt.Errorf("tab header height %.1f: %w", hh, ErrInvalidGeometry)
	}
	t := &TabPanel2D{
		group: newGroup(cfg.Position, geom.Size{
			Width:  cfg.ContentSize.Width,
			Height: cfg.ContentSize.Height + hh,
		}),
		r:       r,
		theme:   th,
		headerH: hh,
		active:  -1,
	}
	t.z = cfg.Z
	return t, nil
}

// AddTab appends a tab with the given label and returns its content panel.
// The first tab added becomes the active tab.
func (t *TabPanel2D) AddTab(label string) (*Panel2D, error) {
	// Geometry is provisional; layoutHeaders recomputes the strip below.
	header, err := NewRectangle(t.r, RectangleConfig{
		Position: geom.Point{X: t.pos.X, Y: t.pos.Y},
		Size:     geom.Size{Width: t.size.Width, Height: t.headerH},
		Color:    t.theme.PanelColor,
		Z:        t.z + 1,
	})
	if err != nil {
		return nil, err
	}
	caption, err := NewTextBlock(t.r, TextConfig{
		Position: geom.Point{
			X: header.Position().X + t.theme.Padding,
			Y: t.pos.Y + (t.headerH-t.theme.FontSize)/2,
		},
		Text:  label,
		Z:     t.z + 2,
		Theme: t.theme,
	})
	if err != nil {
		header.Destroy()
		return nil, err
	}
	content, err := NewPanel(t.r, PanelConfig{
		Position: geom.Point{X: t.pos.X, Y: t.pos.Y + t.headerH},
		Size:     geom.Size{Width: t.size.Width, Height: t.size.Height - t.headerH},
		Z:        t.z,
		Theme:    t.theme,
	})
	if err != nil {
		header.Destroy()
		caption.Destroy()
		return nil, err
	}
	content.setParent(t)
	t.tabs = append(t.tabs, tab{label: label, header: header, caption: caption, content: content})
	t.layoutHeaders()
	if t.active < 0 {
		t.active = 0
		t.applyActive()
	} else {
		content.SetVisible(false)
	}
	return content, nil
}

// layoutHeaders repositions every header after a tab count change.
func (t *TabPanel2D) layoutHeaders() {
	hw := t.size.Width / float64(len(t.tabs))
	for i := range t.tabs {
		x := t.pos.X + float64(i)*hw
		t.tabs[i].header.SetPosition(geom.Point{X: x, Y: t.pos.Y})
		_ = t.tabs[i].header.SetSize(geom.Size{Width: hw, Height: t.headerH})
		t.tabs[i].caption.SetPosition(geom.Point{
			X: x + t.theme.Padding,
			Y: t.pos.Y + (t.headerH-t.theme.FontSize)/2,
		})
	}
}

// TabCount returns the number of tabs.
func (t *TabPanel2D) TabCount() int { return len(t.tabs) }

// ActiveTab returns the index of the visible tab, or -1 with no tabs.
func (t *TabPanel2D) ActiveTab() int { return t.active }

// Panel returns the content panel of tab i, or nil when out of range.
func (t *TabPanel2D) Panel(i int) *Panel2D {
	if i < 0 || i >= len(t.tabs) {
		return nil
	}
	return t.tabs[i].content
}

// SelectTab makes tab i the visible one. An out-of-range index fails with
// ErrIndexOutOfRange and leaves visibility unchanged.
func (t *TabPanel2D) SelectTab(i int) error {
	if i < 0 || i >= len(t.tabs) {
		return fmt.Errorf("tab %d of %d: %w", i, len(t.tabs), ErrIndexOutOfRange)
	}
	if i == t.active {
		return nil
	}
	t.active = i
	t.applyActive()
	t.onTabChanged.fire(i)
	return nil
}

func (t *TabPanel2D) applyActive() {
	for i := range t.tabs {
		sel := i == t.active
		t.tabs[i].content.SetVisible(sel && t.visible)
		if sel {
			t.tabs[i].header.SetColor(t.theme.AccentColor)
		} else {
			t.tabs[i].header.SetColor(t.theme.PanelColor)
		}
	}
}

// OnTabChanged registers a callback fired after the active tab changes.
func (t *TabPanel2D) OnTabChanged(fn func(index int)) HandlerID {
	return t.onTabChanged.add(func(i int) { fn(i) })
}

// RemoveTabChanged unregisters a tab-change callback.
func (t *TabPanel2D) RemoveTabChanged(id HandlerID) { t.onTabChanged.remove(id) }

// Children returns the content panels, active first so hit-testing finds
// the visible page before the hidden ones.
func (t *TabPanel2D) Children() []Element {
	out := make([]Element, 0, len(t.tabs))
	if t.active >= 0 {
		out = append(out, t.tabs[t.active].content)
	}
	for i := range t.tabs {
		if i != t.active {
			out = append(out, t.tabs[i].content)
		}
	}
	return out
}

// RemoveElement is a no-op: tab pages are owned by the panel for life.
func (t *TabPanel2D) RemoveElement(Element) bool { return false }

// SetPosition moves the strip and every page.
func (t *TabPanel2D) SetPosition(pos geom.Point) {
	d := pos.Sub(t.pos)
	if d == (geom.Point{}) {
		return
	}
	t.pos = pos
	for i := range t.tabs {
		t.tabs[i].header.SetPosition(t.tabs[i].header.Position().Add(d))
		t.tabs[i].caption.SetPosition(t.tabs[i].caption.Position().Add(d))
		t.tabs[i].content.SetPosition(t.tabs[i].content.Position().Add(d))
	}
}

// SetVisible toggles the strip; only the active page becomes visible again.
func (t *TabPanel2D) SetVisible(v bool) {
	t.visible = v
	for i := range t.tabs {
		t.tabs[i].header.SetVisible(v)
		t.tabs[i].caption.SetVisible(v)
	}
	t.applyActive()
}

// Destroy releases every header and page.
func (t *TabPanel2D) Destroy() {
	for i := range t.tabs {
		t.tabs[i].header.Destroy()
		t.tabs[i].caption.Destroy()
		t.tabs[i].content.Destroy()
	}
	t.tabs = nil
	t.removed = true
}

// HandleEvent switches tabs on header clicks.
func (t *TabPanel2D) HandleEvent(ev *Event) bool {
	if ev.Type != EventPointerDown || len(t.tabs) == 0 {
		return false
	}
	strip := geom.BoundingBox{
		Min: t.pos,
		Max: geom.Point{X: t.pos.X + t.size.Width, Y: t.pos.Y + t.headerH},
	}
	if !strip.Contains(ev.Pos) {
		return false
	}
	hw := t.size.Width / float64(len(t.tabs))
	i := int((ev.Pos.X - t.pos.X) / hw)
	if i >= len(t.tabs) {
		i = len(t.tabs) - 1
	}
	_ = t.SelectTab(i)
	return true
}
