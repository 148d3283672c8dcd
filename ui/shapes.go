package ui

import (
	"fmt"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render"
)

// Leaf shapes: the drawable primitives everything else is built from.
// Each owns exactly one renderer primitive.

// RectangleConfig configures a Rectangle2D.
type RectangleConfig struct {
	Position geom.Point
	Size     geom.Size
	Color    uint32 // 0xRRGGBBAA; zero means opaque white
	Z        int
}

// Rectangle2D is an axis-aligned (optionally rotated) filled rectangle.
type Rectangle2D struct {
	Core
}

// NewRectangle creates a rectangle primitive.
func NewRectangle(r render.Renderer, cfg RectangleConfig) (*Rectangle2D, error) {
	if cfg.Color == 0 {
		cfg.Color = 0xFFFFFFFF
	}
	core, err := newCore(r, render.KindRect, render.Geometry{
		Pos:     cfg.Position,
		Size:    cfg.Size,
		Color:   cfg.Color,
		Z:       cfg.Z,
		Visible: true,
	})
	if err != nil {
		return nil, err
	}
	return &Rectangle2D{Core: core}, nil
}

// DiskConfig configures a Disk2D.
type DiskConfig struct {
	Center      geom.Point
	OuterRadius float64
	InnerRadius float64 // > 0 renders a ring
	Color       uint32
	Z           int
}

// Disk2D is a filled disk, or a ring when an inner radius is set. Its
// bounding box is derived from center and outer radius, not corner points.
type Disk2D struct {
	Core
}

// NewDisk creates a disk primitive.
func NewDisk(r render.Renderer, cfg DiskConfig) (*Disk2D, error) {
	if cfg.OuterRadius < 0 || cfg.InnerRadius < 0 || cfg.InnerRadius > cfg.OuterRadius {
		return nil, fmt.Errorf("disk radii outer=%.1f inner=%.1f: %w",
			cfg.OuterRadius, cfg.InnerRadius, ErrInvalidGeometry)
	}
	if cfg.Color == 0 {
		cfg.Color = 0xFFFFFFFF
	}
	core, err := newCore(r, render.KindDisk, render.Geometry{
		Pos:         geom.Point{X: cfg.Center.X - cfg.OuterRadius, Y: cfg.Center.Y - cfg.OuterRadius},
		Size:        geom.Size{Width: 2 * cfg.OuterRadius, Height: 2 * cfg.OuterRadius},
		Radius:      cfg.OuterRadius,
		InnerRadius: cfg.InnerRadius,
		Color:       cfg.Color,
		Z:           cfg.Z,
		Visible:     true,
	})
	if err != nil {
		return nil, err
	}
	return &Disk2D{Core: core}, nil
}

// Center returns the disk center.
func (d *Disk2D) Center() geom.Point {
	return geom.Point{X: d.geo.Pos.X + d.geo.Radius, Y: d.geo.Pos.Y + d.geo.Radius}
}

// SetCenter moves the disk so its center lands on p.
func (d *Disk2D) SetCenter(p geom.Point) {
	d.SetPosition(geom.Point{X: p.X - d.geo.Radius, Y: p.Y - d.geo.Radius})
}

// Radius returns the outer radius.
func (d *Disk2D) Radius() float64 { return d.geo.Radius }

// SetRadius changes the outer radius, keeping the center fixed. It fails
// with ErrInvalidGeometry on a negative radius or one smaller than the
// inner radius.
func (d *Disk2D) SetRadius(radius float64) error {
	if radius < 0 || radius < d.geo.InnerRadius {
		return fmt.Errorf("disk radius %.1f: %w", radius, ErrInvalidGeometry)
	}
	center := d.Center()
	d.geo.Radius = radius
	d.geo.Pos = geom.Point{X: center.X - radius, Y: center.Y - radius}
	d.geo.Size = geom.Size{Width: 2 * radius, Height: 2 * radius}
	d.sync()
	return nil
}

// TextConfig configures a TextBlock2D.
type TextConfig struct {
	Position geom.Point
	Text     string
	FontSize float64 // zero means the theme default
	Color    uint32
	Z        int
	Theme    *Theme
}

// TextBlock2D is a single block of text. The core does no text shaping; the
// extent is an estimate good enough for layout and hit-testing, and the
// renderer is free to rasterize however it likes.
type TextBlock2D struct {
	Core
}

// NewTextBlock creates a text primitive.
func NewTextBlock(r render.Renderer, cfg TextConfig) (*TextBlock2D, error) {
	th := themeOrDefault(cfg.Theme)
	if cfg.FontSize == 0 {
		cfg.FontSize = th.FontSize
	}
	if cfg.FontSize < 0 {
		return nil, fmt.Errorf("font size %.1f: %w", cfg.FontSize, ErrInvalidValue)
	}
	if cfg.Color == 0 {
		cfg.Color = th.TextColor
	}
	core, err := newCore(r, render.KindText, render.Geometry{
		Pos:      cfg.Position,
		Size:     estimateTextSize(cfg.Text, cfg.FontSize),
		Text:     cfg.Text,
		FontSize: cfg.FontSize,
		Color:    cfg.Color,
		Z:        cfg.Z,
		Visible:  true,
	})
	if err != nil {
		return nil, err
	}
	return &TextBlock2D{Core: core}, nil
}

// Text returns the current content.
func (t *TextBlock2D) Text() string { return t.geo.Text }

// SetText replaces the content and refreshes the layout extent.
func (t *TextBlock2D) SetText(s string) {
	if t.geo.Text == s {
		return
	}
	t.geo.Text = s
	t.geo.Size = estimateTextSize(s, t.geo.FontSize)
	t.sync()
}

// FontSize returns the font size in points.
func (t *TextBlock2D) FontSize() float64 { return t.geo.FontSize }

// SetFontSize changes the font size and refreshes the layout extent.
func (t *TextBlock2D) SetFontSize(size float64) error {
	if size < 0 {
		return fmt.Errorf("font size %.1f: %w", size, ErrInvalidValue)
	}
	t.geo.FontSize = size
	t.geo.Size = estimateTextSize(t.geo.Text, size)
	t.sync()
	return nil
}

// estimateTextSize approximates a text extent for layout. Average glyph
// advance of 0.6em and a 1.2 line height, the same heuristic the renderer
// falls back to before real metrics arrive.
func estimateTextSize(text string, fontSize float64) geom.Size {
	return geom.Size{
		Width:  float64(len([]rune(text))) * fontSize * 0.6,
		Height: fontSize * 1.2,
	}
}

// DrawShapeConfig configures a DrawShape2D.
type DrawShapeConfig struct {
	Points      []geom.Point
	StrokeWidth float64
	Color       uint32
	Z           int
}

// DrawShape2D is a freeform polyline used by drawing canvases. Its bounding
// box is the hull of its points.
type DrawShape2D struct {
	Core
}

// NewDrawShape creates a polyline primitive. At least two points are
// required.
func NewDrawShape(r render.Renderer, cfg DrawShapeConfig) (*DrawShape2D, error) {
	if len(cfg.Points) < 2 {
		return nil, fmt.Errorf("draw shape with %d points: %w", len(cfg.Points), ErrInvalidGeometry)
	}
	if cfg.StrokeWidth <= 0 {
		cfg.StrokeWidth = 1
	}
	if cfg.Color == 0 {
		cfg.Color = 0xFFFFFFFF
	}
	pts := make([]geom.Point, len(cfg.Points))
	copy(pts, cfg.Points)
	box := geom.BoundingBoxOfPoints(pts)
	core, err := newCore(r, render.KindLine, render.Geometry{
		Pos:         box.Min,
		Size:        geom.Size{Width: box.Width(), Height: box.Height()},
		Points:      pts,
		StrokeWidth: cfg.StrokeWidth,
		Color:       cfg.Color,
		Z:           cfg.Z,
		Visible:     true,
	})
	if err != nil {
		return nil, err
	}
	return &DrawShape2D{Core: core}, nil
}

// Points returns a copy of the shape's points.
func (s *DrawShape2D) Points() []geom.Point {
	pts := make([]geom.Point, len(s.geo.Points))
	copy(pts, s.geo.Points)
	return pts
}

// SetPoints replaces the shape's points.
func (s *DrawShape2D) SetPoints(pts []geom.Point) error {
	if len(pts) < 2 {
		return fmt.Errorf("draw shape with %d points: %w", len(pts), ErrInvalidGeometry)
	}
	s.geo.Points = make([]geom.Point, len(pts))
	copy(s.geo.Points, pts)
	box := geom.BoundingBoxOfPoints(s.geo.Points)
	s.geo.Pos = box.Min
	s.geo.Size = geom.Size{Width: box.Width(), Height: box.Height()}
	s.sync()
	return nil
}

// SetPosition translates every point so the shape's hull lands at p.
func (s *DrawShape2D) SetPosition(p geom.Point) {
	d := p.Sub(s.geo.Pos)
	if d == (geom.Point{}) {
		return
	}
	for i := range s.geo.Points {
		s.geo.Points[i] = s.geo.Points[i].Add(d)
	}
	s.geo.Pos = p
	s.sync()
}
