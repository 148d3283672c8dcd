package ui

import (
	"fmt"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render"
)

// GridConfig configures a GridUI.
type GridConfig struct {
	Position    geom.Point
	Rows, Cols  int
	CellSize    geom.Size
	CellPadding float64
	Color       uint32 // background; zero takes the theme panel color
	Z           int
	Theme       *Theme
}

// GridUI arranges children on a fixed rows x cols lattice. Each cell holds
// at most one element; placement is by explicit cell index, not flow order.
type GridUI struct {
	group
	background *Rectangle2D
	cfg        GridConfig
	cells      []Element // row-major, nil for empty slots
}

// NewGrid creates an empty grid.
func NewGrid(r render.Renderer, cfg GridConfig) (*GridUI, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil, fmt.Errorf("grid %dx%d: %w", cfg.Rows, cfg.Cols, ErrInvalidGeometry)
	}
	if !cfg.CellSize.IsValid() || cfg.CellPadding < 0 {
		return nil, fmt.Errorf("grid cell %.1fx%.1f pad %.1f: %w",
			cfg.CellSize.Width, cfg.CellSize.Height, cfg.CellPadding, ErrInvalidGeometry)
	}
	th := themeOrDefault(cfg.Theme)
	color := cfg.Color
	if color == 0 {
		color = th.PanelColor
	}
	size := geom.Size{
		Width:  float64(cfg.Cols)*(cfg.CellSize.Width+cfg.CellPadding) + cfg.CellPadding,
		Height: float64(cfg.Rows)*(cfg.CellSize.Height+cfg.CellPadding) + cfg.CellPadding,
	}
	bg, err := NewRectangle(r, RectangleConfig{
		Position: cfg.Position, Size: size, Color: color, Z: cfg.Z,
	})
	if err != nil {
		return nil, err
	}
	g := &GridUI{
		group:      newGroup(cfg.Position, size),
		background: bg,
		cfg:        cfg,
		cells:      make([]Element, cfg.Rows*cfg.Cols),
	}
	g.z = cfg.Z
	g.adopt(bg)
	return g, nil
}

// Rows returns the grid's row count.
func (g *GridUI) Rows() int { return g.cfg.Rows }

// Cols returns the grid's column count.
func (g *GridUI) Cols() int { return g.cfg.Cols }

// cellOrigin returns the top-left corner of cell (row, col).
func (g *GridUI) cellOrigin(row, col int) geom.Point {
	return geom.Point{
		X: g.pos.X + g.cfg.CellPadding + float64(col)*(g.cfg.CellSize.Width+g.cfg.CellPadding),
		Y: g.pos.Y + g.cfg.CellPadding + float64(row)*(g.cfg.CellSize.Height+g.cfg.CellPadding),
	}
}

// AddElement places el in cell (row, col). It fails with ErrIndexOutOfRange
// if the cell does not exist and ErrSlotOccupied if it already holds an
// element; in both cases el is untouched.
func (g *GridUI) AddElement(el Element, row, col int) error {
	if row < 0 || row >= g.cfg.Rows || col < 0 || col >= g.cfg.Cols {
		return fmt.Errorf("grid cell (%d,%d) of %dx%d: %w",
			row, col, g.cfg.Rows, g.cfg.Cols, ErrIndexOutOfRange)
	}
	i := row*g.cfg.Cols + col
	if g.cells[i] != nil {
		return fmt.Errorf("grid cell (%d,%d): %w", row, col, ErrSlotOccupied)
	}
	g.cells[i] = el
	el.SetPosition(g.cellOrigin(row, col))
	el.setParent(g)
	el.setRemoved(false)
	el.SetZOrder(g.z + 1)
	el.SetVisible(g.visible)
	return nil
}

// ElementAt returns the element in cell (row, col), or nil for an empty or
// out-of-range cell.
func (g *GridUI) ElementAt(row, col int) Element {
	if row < 0 || row >= g.cfg.Rows || col < 0 || col >= g.cfg.Cols {
		return nil
	}
	return g.cells[row*g.cfg.Cols+col]
}

// RemoveAt detaches the element in cell (row, col) without destroying it
// and returns it, or nil if the cell was empty or out of range.
func (g *GridUI) RemoveAt(row, col int) Element {
	if row < 0 || row >= g.cfg.Rows || col < 0 || col >= g.cfg.Cols {
		return nil
	}
	i := row*g.cfg.Cols + col
	el := g.cells[i]
	if el == nil {
		return nil
	}
	g.cells[i] = nil
	el.setParent(nil)
	el.setRemoved(true)
	return el
}

// RemoveElement detaches a child found by identity.
func (g *GridUI) RemoveElement(el Element) bool {
	for i, c := range g.cells {
		if c == el {
			g.cells[i] = nil
			el.setParent(nil)
			el.setRemoved(true)
			return true
		}
	}
	return false
}

// Children returns the occupied cells in row-major order.
func (g *GridUI) Children() []Element {
	out := make([]Element, 0, len(g.cells))
	for _, c := range g.cells {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// SetPosition moves the grid and every occupant by the same delta.
func (g *GridUI) SetPosition(pos geom.Point) {
	d := pos.Sub(g.pos)
	if d == (geom.Point{}) {
		return
	}
	g.group.SetPosition(pos)
	for _, c := range g.cells {
		if c != nil {
			c.SetPosition(c.Position().Add(d))
		}
	}
}

// SetSize fails: a grid's extent is derived from its cell lattice.
func (g *GridUI) SetSize(geom.Size) error {
	return fmt.Errorf("grid size is fixed by rows x cols: %w", ErrInvalidGeometry)
}

func (g *GridUI) ResizeBy(dw, dh float64) error {
	return g.SetSize(geom.Size{})
}

// SetVisible toggles the grid and all occupants.
func (g *GridUI) SetVisible(v bool) {
	g.group.SetVisible(v)
	for _, c := range g.cells {
		if c != nil {
			c.SetVisible(v)
		}
	}
}

// Destroy releases the background and every occupant.
func (g *GridUI) Destroy() {
	for _, c := range g.cells {
		if c != nil {
			c.Destroy()
		}
	}
	g.cells = nil
	g.group.Destroy()
}
