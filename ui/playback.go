package ui

import (
	"fmt"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render"
)

// PlaybackState is a PlaybackPanel transport state.
type PlaybackState uint8

const (
	PlaybackStopped PlaybackState = iota
	PlaybackPlaying
	PlaybackPaused
)

func (s PlaybackState) String() string {
	switch s {
	case PlaybackStopped:
		return "stopped"
	case PlaybackPlaying:
		return "playing"
	case PlaybackPaused:
		return "paused"
	}
	return fmt.Sprintf("PlaybackState(%d)", uint8(s))
}

// PlaybackConfig configures a PlaybackPanel.
type PlaybackConfig struct {
	Position geom.Point
	Width    float64
	Duration float64 // seek range upper bound, in the caller's time unit
	Z        int
	Theme    *Theme
}

// PlaybackPanel is a transport bar: play, pause, and stop buttons plus a
// seek slider. Seeking works in any state; stop resets the seek position
// to zero.
type PlaybackPanel struct {
	group
	playBtn  *Rectangle2D
	playCap  *TextBlock2D
	pauseBtn *Rectangle2D
	pauseCap *TextBlock2D
	stopBtn  *Rectangle2D
	stopCap  *TextBlock2D
	seek     *LineSlider2D
	theme    *Theme

	state PlaybackState

	onStateChanged handlerList[PlaybackState]
	onSeek         handlerList[float64]
}

// NewPlaybackPanel creates a stopped panel at seek position zero.
func NewPlaybackPanel(r render.Renderer, cfg PlaybackConfig) (*PlaybackPanel, error) {
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("playback duration %.2f: %w", cfg.Duration, ErrInvalidValue)
	}
	th := themeOrDefault(cfg.Theme)
	h := th.ItemHeight
	btnW := h * 1.5
	sliderX := cfg.Position.X + 3*(btnW+th.Padding)
	sliderLen := cfg.Width - 3*(btnW+th.Padding) - 2*th.HandleRadius
	if sliderLen <= 0 {
		return nil, fmt.Errorf("playback width %.1f too small for transport: %w", cfg.Width, ErrInvalidGeometry)
	}

	mkButton := func(i int, label string) (*Rectangle2D, *TextBlock2D, error) {
		x := cfg.Position.X + float64(i)*(btnW+th.Padding)
		btn, err := NewRectangle(r, RectangleConfig{
			Position: geom.Point{X: x, Y: cfg.Position.Y},
			Size:     geom.Size{Width: btnW, Height: h},
			Color:    th.PanelColor,
			Z:        cfg.Z,
		})
		if err != nil {
			return nil, nil, err
		}
		caption, err := NewTextBlock(r, TextConfig{
			Position: geom.Point{X: x + th.Padding, Y: cfg.Position.Y + (h-th.FontSize)/2},
			Text:     label,
			Z:        cfg.Z + 1,
			Theme:    th,
		})
		if err != nil {
			btn.Destroy()
			return nil, nil, err
		}
		return btn, caption, nil
	}

	playBtn, playCap, err := mkButton(0, "play")
	if err != nil {
		return nil, err
	}
	pauseBtn, pauseCap, err := mkButton(1, "pause")
	if err != nil {
		playBtn.Destroy()
		playCap.Destroy()
		return nil, err
	}
	stopBtn, stopCap, err := mkButton(2, "stop")
	if err != nil {
		playBtn.Destroy()
		playCap.Destroy()
		pauseBtn.Destroy()
		pauseCap.Destroy()
		return nil, err
	}
	seek, err := NewLineSlider(r, SliderConfig{
		Position:    geom.Point{X: sliderX, Y: cfg.Position.Y + h/2 - th.HandleRadius},
		Min:         0,
		Max:         cfg.Duration,
		Initial:     0,
		Orientation: Horizontal,
		Length:      sliderLen,
		Z:           cfg.Z,
		Theme:       th,
	})
	if err != nil {
		playBtn.Destroy()
		playCap.Destroy()
		pauseBtn.Destroy()
		pauseCap.Destroy()
		stopBtn.Destroy()
		stopCap.Destroy()
		return nil, err
	}

	p := &PlaybackPanel{
		group:    newGroup(cfg.Position, geom.Size{Width: cfg.Width, Height: h}),
		playBtn:  playBtn,
		playCap:  playCap,
		pauseBtn: pauseBtn,
		pauseCap: pauseCap,
		stopBtn:  stopBtn,
		stopCap:  stopCap,
		seek:     seek,
		theme:    th,
	}
	p.z = cfg.Z
	p.adopt(playBtn, playCap, pauseBtn, pauseCap, stopBtn, stopCap, seek)
	seek.setParent(p)
	seek.OnValueChanged(func(v float64) {
		p.onSeek.fire(v)
	})
	p.paint()
	return p, nil
}

// State returns the current transport state.
func (p *PlaybackPanel) State() PlaybackState { return p.state }

// SeekPosition returns the seek slider's current value.
func (p *PlaybackPanel) SeekPosition() float64 { return p.seek.Value() }

// Play transitions to playing from any state.
func (p *PlaybackPanel) Play() { p.setState(PlaybackPlaying) }

// Pause transitions to paused. Pausing while stopped is a no-op.
func (p *PlaybackPanel) Pause() {
	if p.state == PlaybackStopped {
		return
	}
	p.setState(PlaybackPaused)
}

// Stop transitions to stopped and rewinds the seek slider to zero.
func (p *PlaybackPanel) Stop() {
	_ = p.seek.SetValue(0)
	p.setState(PlaybackStopped)
}

// SeekTo moves the slider programmatically; ErrInvalidValue out of range.
func (p *PlaybackPanel) SeekTo(v float64) error {
	return p.seek.SetValue(v)
}

func (p *PlaybackPanel) setState(s PlaybackState) {
	if s == p.state {
		return
	}
	p.state = s
	p.paint()
	p.onStateChanged.fire(s)
}

// paint highlights the button matching the current state.
func (p *PlaybackPanel) paint() {
	th := p.theme
	for _, b := range []*Rectangle2D{p.playBtn, p.pauseBtn, p.stopBtn} {
		b.SetColor(th.PanelColor)
	}
	switch p.state {
	case PlaybackPlaying:
		p.playBtn.SetColor(th.AccentColor)
	case PlaybackPaused:
		p.pauseBtn.SetColor(th.AccentColor)
	case PlaybackStopped:
		p.stopBtn.SetColor(th.AccentColor)
	}
}

// OnStateChanged registers a callback fired after a transport transition.
func (p *PlaybackPanel) OnStateChanged(fn func(state PlaybackState)) HandlerID {
	return p.onStateChanged.add(func(s PlaybackState) { fn(s) })
}

// RemoveStateChanged unregisters a transport callback.
func (p *PlaybackPanel) RemoveStateChanged(id HandlerID) { p.onStateChanged.remove(id) }

// OnSeek registers a callback fired as the seek slider moves, in any state.
func (p *PlaybackPanel) OnSeek(fn func(position float64)) HandlerID {
	return p.onSeek.add(func(v float64) { fn(v) })
}

// RemoveSeek unregisters a seek callback.
func (p *PlaybackPanel) RemoveSeek(id HandlerID) { p.onSeek.remove(id) }

// Children exposes the seek slider so the dispatcher can drag it directly.
func (p *PlaybackPanel) Children() []Element {
	return []Element{p.seek}
}

// RemoveElement is a no-op: the transport owns its slider for life.
func (p *PlaybackPanel) RemoveElement(Element) bool { return false }

// HandleEvent routes button clicks; slider hits reach the seek slider via
// the dispatcher's container recursion.
func (p *PlaybackPanel) HandleEvent(ev *Event) bool {
	if ev.Type != EventPointerDown {
		return false
	}
	switch {
	case p.playBtn.BoundingBox().Contains(ev.Pos):
		p.Play()
	case p.pauseBtn.BoundingBox().Contains(ev.Pos):
		p.Pause()
	case p.stopBtn.BoundingBox().Contains(ev.Pos):
		p.Stop()
	default:
		return false
	}
	return true
}
