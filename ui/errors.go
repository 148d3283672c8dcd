package ui

import "errors"

// Error kinds for construction-time misconfiguration and invalid operations.
// Per-event processing problems are never surfaced as errors; the dispatcher
// absorbs them and drops the event. Clamping during drags is documented
// behavior, not an error.
var (
	// ErrInvalidGeometry reports a negative size or malformed bounding box.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrIndexOutOfRange reports a tab/grid/list index beyond bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrSlotOccupied reports a grid cell collision.
	ErrSlotOccupied = errors.New("slot occupied")

	// ErrInvalidValue reports a slider/spinbox value outside the configured
	// range, or an otherwise unusable configuration value.
	ErrInvalidValue = errors.New("invalid value")
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
