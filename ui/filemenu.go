package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render"
)

// MenuItem is one entry in a Menu2D: either a leaf with an action or a
// parent with a submenu.
type MenuItem struct {
	Label string
	Items []MenuItem // non-empty makes this a submenu parent
}

// MenuConfig configures a Menu2D.
type MenuConfig struct {
	Position geom.Point
	Width    float64
	Items    []MenuItem
	Z        int
	Theme    *Theme
}

type menuEntry struct {
	item    MenuItem
	row     *Rectangle2D
	label   *TextBlock2D
	submenu *Menu2D // nil for leaves
}

// Menu2D is a vertical menu with hierarchical submenus. Opening a submenu
// closes its same-level siblings; activating a leaf fires the callback and
// collapses the whole tree. Losing focus collapses all open submenus.
type Menu2D struct {
	group
	r       render.Renderer
	theme   *Theme
	entries []menuEntry
	parent2 *Menu2D // owning menu for nested levels, nil at the root

	onActivated handlerList[string]
}

// NewMenu creates a menu with all submenus closed.
func NewMenu(r render.Renderer, cfg MenuConfig) (*Menu2D, error) {
	if cfg.Width <= 0 {
		return nil, fmt.Errorf("menu width %.1f: %w", cfg.Width, ErrInvalidGeometry)
	}
	th := themeOrDefault(cfg.Theme)
	m := &Menu2D{
		group: newGroup(cfg.Position, geom.Size{
			Width:  cfg.Width,
			Height: float64(len(cfg.Items)) * th.ItemHeight,
		}),
		r:     r,
		theme: th,
	}
	m.z = cfg.Z
	for i, item := range cfg.Items {
		if err := m.buildEntry(i, item); err != nil {
			m.Destroy()
			return nil, err
		}
	}
	return m, nil
}

func (m *Menu2D) buildEntry(i int, item MenuItem) error {
	rowPos := geom.Point{X: m.pos.X, Y: m.pos.Y + float64(i)*m.theme.ItemHeight}
	row, err := NewRectangle(m.r, RectangleConfig{
		Position: rowPos,
		Size:     geom.Size{Width: m.size.Width, Height: m.theme.ItemHeight},
		Color:    m.theme.PanelColor,
		Z:        m.z,
	})
	if err != nil {
		return err
	}
	text := item.Label
	if len(item.Items) > 0 {
		text += " >"
	}
	label, err := NewTextBlock(m.r, TextConfig{
		Position: geom.Point{
			X: rowPos.X + m.theme.Padding,
			Y: rowPos.Y + (m.theme.ItemHeight-m.theme.FontSize)/2,
		},
		Text:  text,
		Z:     m.z + 1,
		Theme: m.theme,
	})
	if err != nil {
		row.Destroy()
		return err
	}
	e := menuEntry{item: item, row: row, label: label}
	if len(item.Items) > 0 {
		sub, err := NewMenu(m.r, MenuConfig{
			Position: geom.Point{X: rowPos.X + m.size.Width, Y: rowPos.Y},
			Width:    m.size.Width,
			Items:    item.Items,
			Z:        m.z + 2,
			Theme:    m.theme,
		})
		if err != nil {
			row.Destroy()
			label.Destroy()
			return err
		}
		sub.parent2 = m
		sub.SetVisible(false)
		e.submenu = sub
	}
	m.entries = append(m.entries, e)
	m.adopt(row, label)
	return nil
}

// OnActivated registers a callback fired with the activated leaf's label.
func (m *Menu2D) OnActivated(fn func(label string)) HandlerID {
	return m.onActivated.add(func(s string) { fn(s) })
}

// RemoveActivated unregisters an activation callback.
func (m *Menu2D) RemoveActivated(id HandlerID) { m.onActivated.remove(id) }

// CollapseAll closes every open submenu below this menu.
func (m *Menu2D) CollapseAll() {
	for i := range m.entries {
		if sub := m.entries[i].submenu; sub != nil {
			sub.CollapseAll()
			sub.SetVisible(false)
		}
	}
}

// loseFocus collapses the menu tree when a click lands elsewhere.
func (m *Menu2D) loseFocus() {
	m.root().CollapseAll()
}

// overlayActive reports an open submenu, which may extend past the bounds of
// whatever container holds the menu.
func (m *Menu2D) overlayActive() bool {
	for i := range m.entries {
		if sub := m.entries[i].submenu; sub != nil && sub.Visible() {
			return true
		}
	}
	return false
}

// root walks up to the top-level menu.
func (m *Menu2D) root() *Menu2D {
	r := m
	for r.parent2 != nil {
		r = r.parent2
	}
	return r
}

// BoundingBox covers this menu plus any open submenus so hit-testing
// reaches nested levels.
func (m *Menu2D) BoundingBox() geom.BoundingBox {
	box := m.group.BoundingBox()
	for i := range m.entries {
		sub := m.entries[i].submenu
		if sub != nil && sub.Visible() {
			sb := sub.BoundingBox()
			box.Min.X = minF(box.Min.X, sb.Min.X)
			box.Min.Y = minF(box.Min.Y, sb.Min.Y)
			box.Max.X = maxF(box.Max.X, sb.Max.X)
			box.Max.Y = maxF(box.Max.Y, sb.Max.Y)
		}
	}
	return box
}

// SetPosition moves the menu and its submenus.
func (m *Menu2D) SetPosition(pos geom.Point) {
	d := pos.Sub(m.pos)
	if d == (geom.Point{}) {
		return
	}
	m.group.SetPosition(pos)
	for i := range m.entries {
		if sub := m.entries[i].submenu; sub != nil {
			sub.SetPosition(sub.Position().Add(d))
		}
	}
}

// SetVisible hides the menu; submenus start closed when it reappears.
func (m *Menu2D) SetVisible(v bool) {
	m.group.SetVisible(v)
	for i := range m.entries {
		if sub := m.entries[i].submenu; sub != nil {
			sub.SetVisible(false)
		}
	}
}

// Destroy releases every row and submenu.
func (m *Menu2D) Destroy() {
	for i := range m.entries {
		if sub := m.entries[i].submenu; sub != nil {
			sub.Destroy()
		}
	}
	m.entries = nil
	m.group.Destroy()
}

// HandleEvent opens submenus and activates leaves. A submenu click closes
// same-level siblings before opening; a leaf click fires the callback and
// collapses the whole tree.
func (m *Menu2D) HandleEvent(ev *Event) bool {
	if ev.Type != EventPointerDown {
		return false
	}
	// Open submenus first so nested levels win over this level's rows.
	for i := range m.entries {
		sub := m.entries[i].submenu
		if sub != nil && sub.Visible() && sub.BoundingBox().Contains(ev.Pos) {
			return sub.HandleEvent(ev)
		}
	}
	for i := range m.entries {
		if !m.entries[i].row.BoundingBox().Contains(ev.Pos) {
			continue
		}
		if sub := m.entries[i].submenu; sub != nil {
			open := sub.Visible()
			// Opening one submenu closes its siblings.
			for j := range m.entries {
				if s := m.entries[j].submenu; s != nil {
					s.CollapseAll()
					s.SetVisible(false)
				}
			}
			if !open {
				sub.SetVisible(true)
			}
			return true
		}
		label := m.entries[i].item.Label
		m.root().CollapseAll()
		m.fireActivated(label)
		return true
	}
	return false
}

// fireActivated bubbles the activation to the root's observers.
func (m *Menu2D) fireActivated(label string) {
	if m.parent2 != nil {
		m.parent2.fireActivated(label)
		return
	}
	m.onActivated.fire(label)
}

// FileMenuConfig configures a FileMenu2D.
type FileMenuConfig struct {
	Position geom.Point
	Size     geom.Size
	Dir      string // starting directory
	Z        int
	Theme    *Theme
}

// FileMenu2D browses a directory tree with a ListBox2D. Directories list
// before files, both alphabetically, with a ".." entry to go up. Activating
// a directory descends into it; activating a file fires the file callback.
type FileMenu2D struct {
	group
	list  *ListBox2D
	title *TextBlock2D
	dir   string

	onFileSelected handlerList[string]
	onDirChanged   handlerList[string]
}

// NewFileMenu creates a browser rooted at cfg.Dir.
func NewFileMenu(r render.Renderer, cfg FileMenuConfig) (*FileMenu2D, error) {
	th := themeOrDefault(cfg.Theme)
	title, err := NewTextBlock(r, TextConfig{
		Position: cfg.Position,
		Text:     cfg.Dir,
		Z:        cfg.Z + 1,
		Theme:    th,
	})
	if err != nil {
		return nil, err
	}
	list, err := NewListBox(r, ListBoxConfig{
		Position: geom.Point{X: cfg.Position.X, Y: cfg.Position.Y + th.ItemHeight},
		Size:     cfg.Size,
		Z:        cfg.Z,
		Theme:    th,
	})
	if err != nil {
		title.Destroy()
		return nil, err
	}
	fm := &FileMenu2D{
		group: newGroup(cfg.Position, geom.Size{
			Width:  cfg.Size.Width,
			Height: cfg.Size.Height + th.ItemHeight,
		}),
		list:  list,
		title: title,
	}
	fm.z = cfg.Z
	fm.adopt(title, list)
	if err := fm.SetDir(cfg.Dir); err != nil {
		fm.Destroy()
		return nil, err
	}
	return fm, nil
}

// Dir returns the directory currently listed.
func (fm *FileMenu2D) Dir() string { return fm.dir }

// SetDir lists the given directory: ".." first, then directories, then
// files, each group alphabetical. Directory entries carry a trailing
// separator.
func (fm *FileMenu2D) SetDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}
	var dirs, files []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name()+string(filepath.Separator))
		} else {
			files = append(files, e.Name())
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)
	items := make([]string, 0, 1+len(dirs)+len(files))
	items = append(items, "..")
	items = append(items, dirs...)
	items = append(items, files...)

	if err := fm.list.SetItems(items); err != nil {
		return err
	}
	fm.dir = dir
	fm.title.SetText(dir)
	fm.onDirChanged.fire(dir)
	return nil
}

// OnFileSelected registers a callback fired with the full path of an
// activated file.
func (fm *FileMenu2D) OnFileSelected(fn func(path string)) HandlerID {
	return fm.onFileSelected.add(func(p string) { fn(p) })
}

// RemoveFileSelected unregisters a file callback.
func (fm *FileMenu2D) RemoveFileSelected(id HandlerID) { fm.onFileSelected.remove(id) }

// OnDirChanged registers a callback fired after the listing changes
// directory.
func (fm *FileMenu2D) OnDirChanged(fn func(dir string)) HandlerID {
	return fm.onDirChanged.add(func(d string) { fn(d) })
}

// RemoveDirChanged unregisters a directory callback.
func (fm *FileMenu2D) RemoveDirChanged(id HandlerID) { fm.onDirChanged.remove(id) }

// HandleEvent routes clicks to the listing: directories descend, files fire
// the callback, ".." goes up. Scroll events forward to the list.
func (fm *FileMenu2D) HandleEvent(ev *Event) bool {
	if ev.Type == EventScroll {
		return fm.list.HandleEvent(ev)
	}
	if ev.Type != EventPointerDown {
		return false
	}
	if !fm.list.HandleEvent(ev) {
		return false
	}
	sel := fm.list.Selection()
	if len(sel) != 1 {
		return true
	}
	items := fm.list.Items()
	name := items[sel[0]]
	switch {
	case name == "..":
		// Failures (permissions, removed dir) leave the listing in place.
		_ = fm.SetDir(filepath.Dir(fm.dir))
	case len(name) > 0 && name[len(name)-1] == filepath.Separator:
		_ = fm.SetDir(filepath.Join(fm.dir, name[:len(name)-1]))
	default:
		fm.onFileSelected.fire(filepath.Join(fm.dir, name))
	}
	return true
}
