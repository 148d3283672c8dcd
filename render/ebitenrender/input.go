package ebitenrender

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/ui"
)

// Input polls Ebitengine's input state once per tick and produces the
// normalized ui event stream. Create one per game and call Poll from the
// ebiten.Game Update callback.
type Input struct {
	lastX, lastY int
	runeBuf      []rune
}

// NewInput creates an input pump.
func NewInput() *Input {
	return &Input{lastX: -1, lastY: -1}
}

// namedKeys maps the keys the UI layer understands to their logical names.
var namedKeys = map[ebiten.Key]string{
	ebiten.KeyEnter:      "enter",
	ebiten.KeyEscape:     "escape",
	ebiten.KeyBackspace:  "backspace",
	ebiten.KeyArrowUp:    "up",
	ebiten.KeyArrowDown:  "down",
	ebiten.KeyArrowLeft:  "left",
	ebiten.KeyArrowRight: "right",
}

// Poll reads the current input state and returns the events it implies, in
// arrival order: pointer, scroll, then keys.
func (in *Input) Poll() []ui.Event {
	var events []ui.Event

	x, y := ebiten.CursorPosition()
	pos := geom.Point{X: float64(x), Y: float64(y)}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		events = append(events, ui.Event{Type: ui.EventPointerDown, Pos: pos})
	}
	if x != in.lastX || y != in.lastY {
		events = append(events, ui.Event{Type: ui.EventPointerMove, Pos: pos})
		in.lastX, in.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		events = append(events, ui.Event{Type: ui.EventPointerUp, Pos: pos})
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		events = append(events, ui.Event{Type: ui.EventScroll, Pos: pos, Delta: wy})
	}

	in.runeBuf = ebiten.AppendInputChars(in.runeBuf[:0])
	for _, r := range in.runeBuf {
		events = append(events, ui.Event{Type: ui.EventKey, Pos: pos, Rune: r})
	}
	for key, name := range namedKeys {
		if inpututil.IsKeyJustPressed(key) {
			events = append(events, ui.Event{Type: ui.EventKey, Pos: pos, Key: name})
		}
	}
	return events
}
