package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render/rendertest"
)

// fileMenuFixture builds root/{zeta.txt,alpha.txt,sub/inner.txt}.
func fileMenuFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))
	for _, name := range []string{"zeta.txt", "alpha.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "inner.txt"), nil, 0o644))
	return root
}

func newTestFileMenu(t *testing.T, root string) *FileMenu2D {
	t.Helper()
	fm, err := NewFileMenu(rendertest.New(), FileMenuConfig{
		Position: geom.Point{X: 0, Y: 0},
		Size:     geom.Size{Width: 200, Height: 200},
		Dir:      root,
	})
	require.NoError(t, err)
	return fm
}

func TestFileMenuListsDirsBeforeFiles(t *testing.T) {
	root := fileMenuFixture(t)
	fm := newTestFileMenu(t, root)

	sep := string(filepath.Separator)
	assert.Equal(t, []string{"..", "sub" + sep, "alpha.txt", "zeta.txt"}, fm.list.Items())
}

// clickRow presses the file list at the given visible row index. The list
// sits below the title line (one item height down).
func clickRow(fm *FileMenu2D, row int) {
	th := DefaultTheme()
	fm.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{
		X: 10,
		Y: th.ItemHeight + (float64(row)+0.5)*th.ItemHeight,
	}})
}

func TestFileMenuDescendsIntoDirectory(t *testing.T) {
	root := fileMenuFixture(t)
	fm := newTestFileMenu(t, root)

	var dirs []string
	fm.OnDirChanged(func(d string) { dirs = append(dirs, d) })

	clickRow(fm, 1) // "sub/"
	assert.Equal(t, filepath.Join(root, "sub"), fm.Dir())
	assert.Equal(t, []string{filepath.Join(root, "sub")}, dirs)
	assert.Equal(t, []string{"..", "inner.txt"}, fm.list.Items())
}

func TestFileMenuDotDotGoesUp(t *testing.T) {
	root := fileMenuFixture(t)
	fm := newTestFileMenu(t, root)
	clickRow(fm, 1) // descend into sub
	require.Equal(t, filepath.Join(root, "sub"), fm.Dir())

	clickRow(fm, 0) // ".."
	assert.Equal(t, root, fm.Dir())
}

func TestFileMenuFiresFileCallbackWithFullPath(t *testing.T) {
	root := fileMenuFixture(t)
	fm := newTestFileMenu(t, root)

	var picked []string
	fm.OnFileSelected(func(p string) { picked = append(picked, p) })

	clickRow(fm, 2) // "alpha.txt"
	assert.Equal(t, []string{filepath.Join(root, "alpha.txt")}, picked)
	assert.Equal(t, root, fm.Dir(), "picking a file stays in the directory")
}

func TestMenuSubmenuOpenClosesSiblings(t *testing.T) {
	rec := rendertest.New()
	m, err := NewMenu(rec, MenuConfig{
		Position: geom.Point{X: 0, Y: 0},
		Width:    100,
		Items: []MenuItem{
			{Label: "file", Items: []MenuItem{{Label: "open"}, {Label: "save"}}},
			{Label: "edit", Items: []MenuItem{{Label: "undo"}}},
			{Label: "quit"},
		},
	})
	require.NoError(t, err)

	th := DefaultTheme()
	rowY := func(i int) float64 { return (float64(i) + 0.5) * th.ItemHeight }

	// Open "file", then "edit": only one submenu stays open.
	m.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 10, Y: rowY(0)}})
	require.True(t, m.entries[0].submenu.Visible())

	m.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 10, Y: rowY(1)}})
	assert.False(t, m.entries[0].submenu.Visible(), "opening a sibling closes the open submenu")
	assert.True(t, m.entries[1].submenu.Visible())
}

func TestMenuLeafActivationCollapsesTree(t *testing.T) {
	rec := rendertest.New()
	m, err := NewMenu(rec, MenuConfig{
		Position: geom.Point{X: 0, Y: 0},
		Width:    100,
		Items: []MenuItem{
			{Label: "file", Items: []MenuItem{{Label: "open"}, {Label: "save"}}},
		},
	})
	require.NoError(t, err)

	var activated []string
	m.OnActivated(func(l string) { activated = append(activated, l) })

	th := DefaultTheme()
	// Open "file", then click "save" in the submenu (second row, shifted
	// one menu width right).
	m.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 10, Y: 0.5 * th.ItemHeight}})
	sub := m.entries[0].submenu
	require.True(t, sub.Visible())

	m.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 110, Y: 1.5 * th.ItemHeight}})
	assert.Equal(t, []string{"save"}, activated)
	assert.False(t, sub.Visible(), "leaf activation collapses the whole tree")
}

func TestMenuBlurCollapsesAllLevels(t *testing.T) {
	rec := rendertest.New()
	m, err := NewMenu(rec, MenuConfig{
		Width: 100,
		Items: []MenuItem{
			{Label: "file", Items: []MenuItem{{Label: "open"}}},
		},
	})
	require.NoError(t, err)

	th := DefaultTheme()
	m.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 10, Y: 0.5 * th.ItemHeight}})
	require.True(t, m.entries[0].submenu.Visible())

	m.loseFocus()
	assert.False(t, m.entries[0].submenu.Visible())
}
