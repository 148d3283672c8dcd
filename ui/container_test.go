package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render/rendertest"
)

func newTestPanel(t *testing.T, rec *rendertest.Recorder, policy OverflowPolicy) *Panel2D {
	t.Helper()
	p, err := NewPanel(rec, PanelConfig{
		Position: geom.Point{X: 100, Y: 100},
		Size:     geom.Size{Width: 200, Height: 100},
		Overflow: policy,
	})
	require.NoError(t, err)
	return p
}

func TestPanelPlacesChildAtPixelOffset(t *testing.T) {
	rec := rendertest.New()
	p := newTestPanel(t, rec, OverflowAllow)
	child, err := NewRectangle(rec, RectangleConfig{Size: geom.Size{Width: 10, Height: 10}})
	require.NoError(t, err)

	require.NoError(t, p.AddElement(child, geom.Point{X: 30, Y: 40}))
	assert.Equal(t, geom.Point{X: 130, Y: 140}, child.Position())
	assert.Same(t, Container(p), child.Parent())
}

func TestPanelFractionalOffsetIsPanelRelative(t *testing.T) {
	rec := rendertest.New()
	p := newTestPanel(t, rec, OverflowAllow)
	child, err := NewRectangle(rec, RectangleConfig{Size: geom.Size{Width: 10, Height: 10}})
	require.NoError(t, err)

	// (0.5, 0.5) of a 200x100 panel at (100,100) lands at (200, 150).
	require.NoError(t, p.AddElement(child, geom.Point{X: 0.5, Y: 0.5}))
	assert.Equal(t, geom.Point{X: 200, Y: 150}, child.Position())
}

func TestPanelRepositionMovesChildrenByDelta(t *testing.T) {
	rec := rendertest.New()
	p := newTestPanel(t, rec, OverflowAllow)
	child, err := NewRectangle(rec, RectangleConfig{Size: geom.Size{Width: 10, Height: 10}})
	require.NoError(t, err)
	require.NoError(t, p.AddElement(child, geom.Point{X: 30, Y: 40}))

	p.SetPosition(geom.Point{X: 0, Y: 0})
	assert.Equal(t, geom.Point{X: 30, Y: 40}, child.Position())
}

func TestPanelClipPolicyKeepsChildInside(t *testing.T) {
	rec := rendertest.New()
	p := newTestPanel(t, rec, OverflowClip)
	child, err := NewRectangle(rec, RectangleConfig{Size: geom.Size{Width: 80, Height: 20}})
	require.NoError(t, err)

	// Offset 180 of a 200-wide panel: 80 wide child sticks out by 60.
	require.NoError(t, p.AddElement(child, geom.Point{X: 180, Y: 10}))
	box := child.BoundingBox()
	parent := p.BoundingBox()
	assert.LessOrEqual(t, box.Max.X, parent.Max.X)
	assert.GreaterOrEqual(t, box.Min.X, parent.Min.X)
	assert.Greater(t, child.Size().Width, 0.0, "clip never produces a negative or zero-by-accident size")
}

func TestPanelClipRefitsImageKeepingAspect(t *testing.T) {
	rec := rendertest.New()
	p, err := NewPanel(rec, PanelConfig{
		Size:     geom.Size{Width: 100, Height: 100},
		Overflow: OverflowClip,
	})
	require.NoError(t, err)
	img, err := NewImageContainer(rec, ImageConfig{
		Size:   geom.Size{Width: 80, Height: 80},
		Source: "photo.png",
	})
	require.NoError(t, err)
	require.NoError(t, img.SetNaturalSize(geom.Size{Width: 200, Height: 100}))

	// The image overflows right and bottom; clipping pulls the region back
	// to (20,20)-(100,100) and the refit keeps the 2:1 aspect inside it
	// instead of squashing the image to 80x80.
	require.NoError(t, p.AddElement(img, geom.Point{X: 60, Y: 40}))
	assert.Equal(t, geom.Size{Width: 80, Height: 40}, img.Size())
	assert.Equal(t, geom.Point{X: 20, Y: 40}, img.Position())
}

func TestPanelCheckPolicyRecordsEdges(t *testing.T) {
	rec := rendertest.New()
	p := newTestPanel(t, rec, OverflowCheck)
	child, err := NewRectangle(rec, RectangleConfig{Size: geom.Size{Width: 80, Height: 20}})
	require.NoError(t, err)

	require.NoError(t, p.AddElement(child, geom.Point{X: 180, Y: 10}))
	assert.True(t, p.Overflowing().Right())
	// Check-only never moves or resizes the child.
	assert.Equal(t, geom.Point{X: 280, Y: 110}, child.Position())
	assert.Equal(t, geom.Size{Width: 80, Height: 20}, child.Size())
}

func TestPanelResizeReappliesPolicy(t *testing.T) {
	rec := rendertest.New()
	p := newTestPanel(t, rec, OverflowClip)
	child, err := NewRectangle(rec, RectangleConfig{Size: geom.Size{Width: 50, Height: 20}})
	require.NoError(t, err)
	require.NoError(t, p.AddElement(child, geom.Point{X: 100, Y: 10}))

	// Shrinking the panel pulls the child back inside.
	require.NoError(t, p.SetSize(geom.Size{Width: 120, Height: 100}))
	assert.LessOrEqual(t, child.BoundingBox().Max.X, p.BoundingBox().Max.X)
}

func TestPanelRemoveElementDetaches(t *testing.T) {
	rec := rendertest.New()
	p := newTestPanel(t, rec, OverflowAllow)
	child, err := NewRectangle(rec, RectangleConfig{Size: geom.Size{Width: 10, Height: 10}})
	require.NoError(t, err)
	require.NoError(t, p.AddElement(child, geom.Point{}))

	require.True(t, p.RemoveElement(child))
	assert.Nil(t, child.Parent())
	assert.True(t, child.Removed())
	assert.Empty(t, p.Children())
	assert.False(t, p.RemoveElement(child), "removing twice reports false")
}

func TestGridPlacementAndErrors(t *testing.T) {
	rec := rendertest.New()
	g, err := NewGrid(rec, GridConfig{
		Position:    geom.Point{X: 0, Y: 0},
		Rows:        2,
		Cols:        3,
		CellSize:    geom.Size{Width: 40, Height: 30},
		CellPadding: 5,
	})
	require.NoError(t, err)

	a, err := NewRectangle(rec, RectangleConfig{Size: geom.Size{Width: 10, Height: 10}})
	require.NoError(t, err)
	require.NoError(t, g.AddElement(a, 0, 0))
	assert.Equal(t, geom.Point{X: 5, Y: 5}, a.Position())

	b, err := NewRectangle(rec, RectangleConfig{Size: geom.Size{Width: 10, Height: 10}})
	require.NoError(t, err)
	require.NoError(t, g.AddElement(b, 1, 2))
	assert.Equal(t, geom.Point{X: 5 + 2*45, Y: 5 + 35}, b.Position())

	c, err := NewRectangle(rec, RectangleConfig{Size: geom.Size{Width: 10, Height: 10}})
	require.NoError(t, err)

	err = g.AddElement(c, 2, 0)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange), "row 2 of a 2x3 grid is out of range")

	err = g.AddElement(c, 0, 0)
	assert.True(t, errors.Is(err, ErrSlotOccupied))
	assert.Same(t, Element(a), g.ElementAt(0, 0), "failed add leaves the occupant in place")
}

func TestGridRemoveAtFreesSlot(t *testing.T) {
	rec := rendertest.New()
	g, err := NewGrid(rec, GridConfig{
		Rows:     1, Cols: 1,
		CellSize: geom.Size{Width: 40, Height: 30},
	})
	require.NoError(t, err)

	a, err := NewRectangle(rec, RectangleConfig{Size: geom.Size{Width: 10, Height: 10}})
	require.NoError(t, err)
	require.NoError(t, g.AddElement(a, 0, 0))

	got := g.RemoveAt(0, 0)
	assert.Same(t, Element(a), got)
	assert.True(t, a.Removed())
	assert.Nil(t, g.ElementAt(0, 0))
	require.NoError(t, g.AddElement(a, 0, 0), "freed slot accepts a new occupant")
}

func TestGridRepositionMovesOccupants(t *testing.T) {
	rec := rendertest.New()
	g, err := NewGrid(rec, GridConfig{
		Rows:     1, Cols: 2,
		CellSize: geom.Size{Width: 40, Height: 30}, CellPadding: 5,
	})
	require.NoError(t, err)
	a, err := NewRectangle(rec, RectangleConfig{Size: geom.Size{Width: 10, Height: 10}})
	require.NoError(t, err)
	require.NoError(t, g.AddElement(a, 0, 1))
	before := a.Position()

	g.SetPosition(geom.Point{X: 100, Y: 200})
	assert.Equal(t, before.Add(geom.Point{X: 100, Y: 200}), a.Position())
}

func TestTabPanelExactlyOneVisible(t *testing.T) {
	rec := rendertest.New()
	tp, err := NewTabPanel(rec, TabConfig{
		Position:    geom.Point{X: 0, Y: 0},
		ContentSize: geom.Size{Width: 300, Height: 200},
	})
	require.NoError(t, err)

	for _, label := range []string{"one", "two", "three"} {
		_, err := tp.AddTab(label)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, tp.ActiveTab(), "first tab added becomes active")
	assert.True(t, tp.Panel(0).Visible())
	assert.False(t, tp.Panel(1).Visible())
	assert.False(t, tp.Panel(2).Visible())

	require.NoError(t, tp.SelectTab(1))
	assert.False(t, tp.Panel(0).Visible())
	assert.True(t, tp.Panel(1).Visible())
	assert.False(t, tp.Panel(2).Visible())
}

func TestTabPanelSelectOutOfRangeLeavesVisibilityUnchanged(t *testing.T) {
	rec := rendertest.New()
	tp, err := NewTabPanel(rec, TabConfig{
		ContentSize: geom.Size{Width: 300, Height: 200},
	})
	require.NoError(t, err)
	_, err = tp.AddTab("only")
	require.NoError(t, err)

	err = tp.SelectTab(5)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	assert.Equal(t, 0, tp.ActiveTab())
	assert.True(t, tp.Panel(0).Visible())
}

func TestTabPanelHeaderClickSwitches(t *testing.T) {
	rec := rendertest.New()
	tp, err := NewTabPanel(rec, TabConfig{
		Position:     geom.Point{X: 0, Y: 0},
		ContentSize:  geom.Size{Width: 300, Height: 200},
		HeaderHeight: 30,
	})
	require.NoError(t, err)
	_, err = tp.AddTab("a")
	require.NoError(t, err)
	_, err = tp.AddTab("b")
	require.NoError(t, err)

	changed := -1
	tp.OnTabChanged(func(i int) { changed = i })

	// Headers split 300 evenly: second header starts at x=150.
	consumed := tp.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 200, Y: 15}})
	assert.True(t, consumed)
	assert.Equal(t, 1, tp.ActiveTab())
	assert.Equal(t, 1, changed)

	// Clicks below the header strip are not tab switches.
	consumed = tp.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 200, Y: 100}})
	assert.False(t, consumed)
}

func TestContainerDestroyCascades(t *testing.T) {
	rec := rendertest.New()
	p := newTestPanel(t, rec, OverflowAllow)
	child, err := NewRectangle(rec, RectangleConfig{Size: geom.Size{Width: 10, Height: 10}})
	require.NoError(t, err)
	require.NoError(t, p.AddElement(child, geom.Point{}))

	p.Destroy()
	assert.Equal(t, 0, rec.Live(), "destroying a container destroys its children's primitives")
	assert.True(t, child.Removed())
}
