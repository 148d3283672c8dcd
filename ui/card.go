package ui

import (
	"fmt"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render"
)

// CardConfig configures a Card2D.
type CardConfig struct {
	Position geom.Point
	Size     geom.Size
	Image    string // image source, empty for a text-only card
	Title    string
	Body     string
	Z        int
	Theme    *Theme
}

// Card2D is a static composite: an image strip over a title and body text
// on a background. The whole card is one click target.
type Card2D struct {
	group
	background *Rectangle2D
	image      *ImageContainer2D
	title      *TextBlock2D
	body       *TextBlock2D

	onClicked handlerList[struct{}]
	pressed   bool
}

// NewCard creates a card. The image, when present, takes the top half; text
// flows below it.
func NewCard(r render.Renderer, cfg CardConfig) (*Card2D, error) {
	if !cfg.Size.IsValid() {
		return nil, fmt.Errorf("card %.1fx%.1f: %w", cfg.Size.Width, cfg.Size.Height, ErrInvalidGeometry)
	}
	th := themeOrDefault(cfg.Theme)
	bg, err := NewRectangle(r, RectangleConfig{
		Position: cfg.Position, Size: cfg.Size, Color: th.PanelColor, Z: cfg.Z,
	})
	if err != nil {
		return nil, err
	}
	c := &Card2D{group: newGroup(cfg.Position, cfg.Size), background: bg}
	c.z = cfg.Z
	c.adopt(bg)

	textY := cfg.Position.Y + th.Padding
	if cfg.Image != "" {
		img, err := NewImageContainer(r, ImageConfig{
			Position: cfg.Position,
			Size:     geom.Size{Width: cfg.Size.Width, Height: cfg.Size.Height / 2},
			Source:   cfg.Image,
			Z:        cfg.Z + 1,
		})
		if err != nil {
			c.Destroy()
			return nil, err
		}
		c.image = img
		c.adopt(img)
		textY = cfg.Position.Y + cfg.Size.Height/2 + th.Padding
	}

	title, err := NewTextBlock(r, TextConfig{
		Position: geom.Point{X: cfg.Position.X + th.Padding, Y: textY},
		Text:     cfg.Title,
		FontSize: th.FontSize * 1.25,
		Z:        cfg.Z + 1,
		Theme:    th,
	})
	if err != nil {
		c.Destroy()
		return nil, err
	}
	c.title = title
	c.adopt(title)

	body, err := NewTextBlock(r, TextConfig{
		Position: geom.Point{X: cfg.Position.X + th.Padding, Y: textY + th.FontSize*1.8},
		Text:     cfg.Body,
		Z:        cfg.Z + 1,
		Theme:    th,
	})
	if err != nil {
		c.Destroy()
		return nil, err
	}
	c.body = body
	c.adopt(body)
	return c, nil
}

// Title returns the title text element.
func (c *Card2D) Title() *TextBlock2D { return c.title }

// Body returns the body text element.
func (c *Card2D) Body() *TextBlock2D { return c.body }

// Image returns the image element, or nil for a text-only card.
func (c *Card2D) Image() *ImageContainer2D { return c.image }

// OnClicked registers a callback fired on press-and-release inside the
// card.
func (c *Card2D) OnClicked(fn func()) HandlerID {
	return c.onClicked.add(func(struct{}) { fn() })
}

// RemoveClicked unregisters a click callback.
func (c *Card2D) RemoveClicked(id HandlerID) { c.onClicked.remove(id) }

// HandleEvent fires the click callback on a press-release pair completed
// inside the card's bounds.
func (c *Card2D) HandleEvent(ev *Event) bool {
	switch ev.Type {
	case EventPointerDown:
		c.pressed = true
		return true
	case EventPointerUp:
		if !c.pressed {
			return false
		}
		c.pressed = false
		if c.BoundingBox().Contains(ev.Pos) {
			c.onClicked.fire(struct{}{})
		}
		return true
	}
	return false
}
