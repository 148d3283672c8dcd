// Package geom provides the pure 2D geometry used by the surface UI layer:
// points, sizes, axis-aligned bounding boxes, rotation, and overflow
// resolution.
//
// Coordinate convention: the origin is the top-left corner of the screen,
// X grows rightward and Y grows downward, units are pixels. Rotation angles
// are in degrees, positive counter-clockwise in the mathematical (Y-up)
// sense; on screen that appears as a clockwise turn. Rotate is the single
// trigonometric source of truth — every widget that places rotated geometry
// (ring slider handles, rotated rectangles) goes through it.
package geom

// Point is a 2D coordinate in screen space.
type Point struct {
	X, Y float64
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{p.X + d.X, p.Y + d.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Size is a width/height pair. Negative dimensions are invalid everywhere in
// this module; constructors and setters reject them.
type Size struct {
	Width, Height float64
}

// IsValid reports whether both dimensions are non-negative.
func (s Size) IsValid() bool {
	return s.Width >= 0 && s.Height >= 0
}

// BoundingBox is an axis-aligned rectangle {Min, Max}. It is always a derived
// quantity: callers compute it from position, size and rotation and cache it,
// never mutate it independently.
type BoundingBox struct {
	Min, Max Point
}

// Width returns the horizontal extent.
func (b BoundingBox) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns the vertical extent.
func (b BoundingBox) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Area returns width times height.
func (b BoundingBox) Area() float64 {
	return b.Width() * b.Height()
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Point {
	return Point{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

// Contains reports whether the point lies inside the box. The top-left edge
// is inclusive and the bottom-right edge exclusive, so adjacent boxes never
// both claim a shared edge during hit-testing.
func (b BoundingBox) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X < b.Max.X &&
		p.Y >= b.Min.Y && p.Y < b.Max.Y
}

// LocalPoint converts a screen coordinate to a coordinate relative to the
// box's top-left corner.
func (b BoundingBox) LocalPoint(p Point) Point {
	return Point{p.X - b.Min.X, p.Y - b.Min.Y}
}

// Translate returns the box shifted by d.
func (b BoundingBox) Translate(d Point) BoundingBox {
	return BoundingBox{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}
