package ui

import (
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/agiangrant/surface/render"
)

// Scene is the registry of top-level elements for one render surface. It is
// an explicit context: construct one per window or viewport, never a
// process-wide singleton. The registry itself is safe for concurrent
// Add/Remove/Snapshot; element mutation stays on the UI thread.
type Scene struct {
	renderer render.Renderer
	logger   *slog.Logger

	mu   sync.RWMutex
	tops map[uuid.UUID]Element
}

// SceneOption configures a Scene at construction.
type SceneOption func(*Scene)

// WithLogger sets the scene's structured logger. The default discards.
func WithLogger(l *slog.Logger) SceneOption {
	return func(s *Scene) { s.logger = l }
}

// NewScene creates an empty scene bound to a renderer.
func NewScene(r render.Renderer, opts ...SceneOption) *Scene {
	s := &Scene{
		renderer: r,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tops:     make(map[uuid.UUID]Element),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Renderer returns the renderer this scene's elements draw through.
func (s *Scene) Renderer() render.Renderer { return s.renderer }

// Add registers a top-level element. Re-adding a removed element clears its
// detached flag.
func (s *Scene) Add(el Element) {
	s.mu.Lock()
	s.tops[el.ID()] = el
	s.mu.Unlock()
	el.setRemoved(false)
}

// Remove unregisters a top-level element, marks its subtree detached, and
// destroys its primitives. It returns false if the element was not
// registered.
func (s *Scene) Remove(el Element) bool {
	s.mu.Lock()
	_, ok := s.tops[el.ID()]
	if ok {
		delete(s.tops, el.ID())
	}
	s.mu.Unlock()
	if !ok {
		return false
	}
	s.logger.Debug("removing top-level element", "id", el.ID())
	markRemoved(el)
	el.Destroy()
	return true
}

// markRemoved flags el and every descendant as detached so any in-flight
// drag on them cancels.
func markRemoved(el Element) {
	el.setRemoved(true)
	if c, ok := el.(Container); ok {
		for _, child := range c.Children() {
			markRemoved(child)
		}
	}
}

// Len returns the number of registered top-level elements.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tops)
}

// Snapshot returns the top-level elements sorted by ascending z. The slice
// is fresh; callers may reorder it.
func (s *Scene) Snapshot() []Element {
	s.mu.RLock()
	out := make([]Element, 0, len(s.tops))
	for _, el := range s.tops {
		out = append(out, el)
	}
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZOrder() < out[j].ZOrder()
	})
	return out
}
