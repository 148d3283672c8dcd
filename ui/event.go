package ui

import "github.com/agiangrant/surface/geom"

// EventType identifies the kind of input event.
type EventType uint8

const (
	EventPointerDown EventType = iota + 1
	EventPointerMove
	EventPointerUp
	EventScroll
	EventKey
)

// Event is one normalized input event in screen coordinates. The embedding
// application (or a backend like ebitenrender) produces the stream; the
// Dispatcher routes it.
type Event struct {
	Type EventType
	Pos  geom.Point

	// Delta is the scroll amount for EventScroll. Positive scrolls content
	// up (wheel away from the user).
	Delta float64

	// Key is the logical key name for EventKey: "enter", "escape",
	// "backspace", "up", "down", "left", "right", or "" for plain character
	// input carried in Rune.
	Key string

	// Rune is the typed character for EventKey character input.
	Rune rune
}

// HandlerID identifies a registered callback so it can be unregistered.
type HandlerID int

// handlerList is a registered-handler list for one event kind. Handlers fire
// in registration order; removal is by id. This replaces the original
// system's dynamic closure binding with explicit register/unregister.
type handlerList[T any] struct {
	nextID HandlerID
	order  []HandlerID
	fns    map[HandlerID]func(T)
}

func (l *handlerList[T]) add(fn func(T)) HandlerID {
	if l.fns == nil {
		l.fns = make(map[HandlerID]func(T))
	}
	l.nextID++
	id := l.nextID
	l.fns[id] = fn
	l.order = append(l.order, id)
	return id
}

func (l *handlerList[T]) remove(id HandlerID) bool {
	if _, ok := l.fns[id]; !ok {
		return false
	}
	delete(l.fns, id)
	for i, o := range l.order {
		if o == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

// fire invokes handlers synchronously, in registration order. Callers invoke
// it only after widget state is fully consistent.
func (l *handlerList[T]) fire(v T) {
	for _, id := range l.order {
		if fn, ok := l.fns[id]; ok {
			fn(v)
		}
	}
}
