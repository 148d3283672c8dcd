package ui

import (
	"fmt"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render"
)

// ImageConfig configures an ImageContainer2D.
type ImageConfig struct {
	Position geom.Point
	Size     geom.Size
	Source   string
	Z        int
}

// ImageContainer2D wraps a single image primitive with scale-to-fit
// semantics.
type ImageContainer2D struct {
	Core
	// natural aspect ratio (width/height) used by FitTo; zero until known
	aspect float64
}

// NewImageContainer creates an image element.
func NewImageContainer(r render.Renderer, cfg ImageConfig) (*ImageContainer2D, error) {
	if cfg.Source == "" {
		return nil, fmt.Errorf("image without source: %w", ErrInvalidValue)
	}
	core, err := newCore(r, render.KindImage, render.Geometry{
		Pos:     cfg.Position,
		Size:    cfg.Size,
		Source:  cfg.Source,
		Z:       cfg.Z,
		Visible: true,
	})
	if err != nil {
		return nil, err
	}
	img := &ImageContainer2D{Core: core}
	if cfg.Size.Height > 0 {
		img.aspect = cfg.Size.Width / cfg.Size.Height
	}
	return img, nil
}

// Source returns the image source path or URL.
func (i *ImageContainer2D) Source() string { return i.geo.Source }

// SetNaturalSize records the image's native dimensions once the renderer has
// decoded them, so FitTo can preserve the aspect ratio.
func (i *ImageContainer2D) SetNaturalSize(s geom.Size) error {
	if !s.IsValid() {
		return fmt.Errorf("natural size %.1fx%.1f: %w", s.Width, s.Height, ErrInvalidGeometry)
	}
	if s.Height > 0 {
		i.aspect = s.Width / s.Height
	}
	return nil
}

// FitTo scales and centers the image inside bounds, preserving aspect ratio
// ("contain"). The image never exceeds bounds, so it conforms to any
// container overflow policy by construction.
func (i *ImageContainer2D) FitTo(bounds geom.BoundingBox) {
	aspect := i.aspect
	if aspect == 0 {
		aspect = 1
	}
	w := bounds.Width()
	h := w / aspect
	if h > bounds.Height() {
		h = bounds.Height()
		w = h * aspect
	}
	i.geo.Size = geom.Size{Width: w, Height: h}
	i.geo.Pos = geom.Point{
		X: bounds.Min.X + (bounds.Width()-w)/2,
		Y: bounds.Min.Y + (bounds.Height()-h)/2,
	}
	i.sync()
}
