// Package ebitenrender hosts the surface UI layer on Ebitengine. The
// Renderer keeps the retained primitive set and draws it back to front each
// frame; Input translates Ebitengine's polled input into the ui event
// stream.
package ebitenrender

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render"
)

// whiteImage is the 1x1 source for transformed rectangle fills, the usual
// Ebitengine idiom for solid shapes that need a GeoM.
var whiteImage = func() *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	return img
}()

type primitive struct {
	kind render.Kind
	geo  render.Geometry
}

// Renderer implements render.Renderer on an Ebitengine draw loop. Primitive
// mutation happens on the UI thread; Draw reads the same state from the
// frame callback, so a mutex guards the primitive map.
type Renderer struct {
	mu     sync.RWMutex
	prims  map[render.Handle]primitive
	images map[string]*ebiten.Image
}

// New creates an empty renderer.
func New() *Renderer {
	return &Renderer{
		prims:  make(map[render.Handle]primitive),
		images: make(map[string]*ebiten.Image),
	}
}

func (r *Renderer) CreatePrimitive(kind render.Kind, g render.Geometry) (render.Handle, error) {
	h := render.NewHandle()
	r.mu.Lock()
	r.prims[h] = primitive{kind: kind, geo: g}
	r.mu.Unlock()
	return h, nil
}

func (r *Renderer) UpdatePrimitive(h render.Handle, g render.Geometry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.prims[h]
	if !ok {
		return fmt.Errorf("ebitenrender: update of unknown handle %d", h)
	}
	p.geo = g
	r.prims[h] = p
	return nil
}

func (r *Renderer) DestroyPrimitive(h render.Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.prims[h]; !ok {
		return fmt.Errorf("ebitenrender: destroy of unknown handle %d", h)
	}
	delete(r.prims, h)
	return nil
}

func (r *Renderer) QueryBounds(h render.Handle) (geom.BoundingBox, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.prims[h]
	if !ok {
		return geom.BoundingBox{}, fmt.Errorf("ebitenrender: bounds of unknown handle %d", h)
	}
	return p.geo.Bounds(), nil
}

// Draw paints every visible primitive in ascending z. Call it from the
// ebiten.Game Draw callback.
func (r *Renderer) Draw(screen *ebiten.Image) {
	r.mu.RLock()
	ordered := make([]primitive, 0, len(r.prims))
	for _, p := range r.prims {
		ordered = append(ordered, p)
	}
	r.mu.RUnlock()

	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].geo.Z < ordered[j].geo.Z })
	for _, p := range ordered {
		if !p.geo.Visible {
			continue
		}
		r.drawOne(screen, p.kind, p.geo)
	}
}

func (r *Renderer) drawOne(screen *ebiten.Image, kind render.Kind, g render.Geometry) {
	switch kind {
	case render.KindRect:
		r.drawRect(screen, g)
	case render.KindDisk:
		r.drawDisk(screen, g)
	case render.KindText:
		ebitenutil.DebugPrintAt(screen, g.Text, int(g.Pos.X), int(g.Pos.Y))
	case render.KindLine:
		r.drawLine(screen, g)
	case render.KindImage:
		r.drawImage(screen, g)
	}
}

func (r *Renderer) drawRect(screen *ebiten.Image, g render.Geometry) {
	if g.Rotation == 0 {
		vector.DrawFilledRect(screen,
			float32(g.Pos.X), float32(g.Pos.Y),
			float32(g.Size.Width), float32(g.Size.Height),
			rgba(g.Color), true)
		return
	}
	// Rotated rects go through the white-image GeoM path. The UI angle is
	// counter-clockwise in a Y-up frame; GeoM.Rotate is clockwise on screen.
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(g.Size.Width, g.Size.Height)
	op.GeoM.Translate(-g.Size.Width/2, -g.Size.Height/2)
	op.GeoM.Rotate(-g.Rotation * math.Pi / 180)
	op.GeoM.Translate(g.Pos.X+g.Size.Width/2, g.Pos.Y+g.Size.Height/2)
	op.ColorScale.ScaleWithColor(rgba(g.Color))
	screen.DrawImage(whiteImage, op)
}

func (r *Renderer) drawDisk(screen *ebiten.Image, g render.Geometry) {
	cx := float32(g.Pos.X + g.Radius)
	cy := float32(g.Pos.Y + g.Radius)
	if g.InnerRadius > 0 {
		mid := float32((g.Radius + g.InnerRadius) / 2)
		vector.StrokeCircle(screen, cx, cy, mid, float32(g.Radius-g.InnerRadius), rgba(g.Color), true)
		return
	}
	vector.DrawFilledCircle(screen, cx, cy, float32(g.Radius), rgba(g.Color), true)
}

func (r *Renderer) drawLine(screen *ebiten.Image, g render.Geometry) {
	for i := 1; i < len(g.Points); i++ {
		vector.StrokeLine(screen,
			float32(g.Points[i-1].X), float32(g.Points[i-1].Y),
			float32(g.Points[i].X), float32(g.Points[i].Y),
			float32(g.StrokeWidth), rgba(g.Color), true)
	}
}

func (r *Renderer) drawImage(screen *ebiten.Image, g render.Geometry) {
	img := r.loadImage(g.Source)
	if img == nil {
		// Missing art draws as a placeholder rect so layout stays visible.
		vector.DrawFilledRect(screen,
			float32(g.Pos.X), float32(g.Pos.Y),
			float32(g.Size.Width), float32(g.Size.Height),
			color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}, true)
		return
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(g.Size.Width/float64(w), g.Size.Height/float64(h))
	op.GeoM.Translate(g.Pos.X, g.Pos.Y)
	screen.DrawImage(img, op)
}

// loadImage fetches and caches an image source. Load failures cache a nil so
// the disk is hit once per missing path.
func (r *Renderer) loadImage(source string) *ebiten.Image {
	r.mu.RLock()
	img, ok := r.images[source]
	r.mu.RUnlock()
	if ok {
		return img
	}
	loaded, _, err := ebitenutil.NewImageFromFile(source)
	if err != nil {
		loaded = nil
	}
	r.mu.Lock()
	r.images[source] = loaded
	r.mu.Unlock()
	return loaded
}

func rgba(c uint32) color.RGBA {
	return color.RGBA{
		R: uint8(c >> 24),
		G: uint8(c >> 16),
		B: uint8(c >> 8),
		A: uint8(c),
	}
}
