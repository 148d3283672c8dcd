package geom

// Overflow is a bitmask of the parent edges a child's bounding box exceeds.
type Overflow uint8

const (
	OverflowLeft Overflow = 1 << iota
	OverflowRight
	OverflowTop
	OverflowBottom
)

// None reports whether no edge overflows.
func (o Overflow) None() bool { return o == 0 }

// Left reports whether the child exceeds the parent's left edge.
func (o Overflow) Left() bool { return o&OverflowLeft != 0 }

// Right reports whether the child exceeds the parent's right edge.
func (o Overflow) Right() bool { return o&OverflowRight != 0 }

// Top reports whether the child exceeds the parent's top edge.
func (o Overflow) Top() bool { return o&OverflowTop != 0 }

// Bottom reports whether the child exceeds the parent's bottom edge.
func (o Overflow) Bottom() bool { return o&OverflowBottom != 0 }

// Check returns which edges of child exceed parent. Pure predicate, no
// mutation.
func Check(child, parent BoundingBox) Overflow {
	var o Overflow
	if child.Min.X < parent.Min.X {
		o |= OverflowLeft
	}
	if child.Max.X > parent.Max.X {
		o |= OverflowRight
	}
	if child.Min.Y < parent.Min.Y {
		o |= OverflowTop
	}
	if child.Max.Y > parent.Max.Y {
		o |= OverflowBottom
	}
	return o
}

// Clip adjusts a child's position and size so its box fits within parent.
// The position is pulled inside the parent first; if a dimension is still
// larger than the parent's extent it is truncated to that extent. The
// returned size is never negative.
func Clip(pos Point, size Size, parent BoundingBox) (Point, Size) {
	if size.Width > parent.Width() {
		size.Width = parent.Width()
	}
	if size.Height > parent.Height() {
		size.Height = parent.Height()
	}
	if pos.X < parent.Min.X {
		pos.X = parent.Min.X
	}
	if pos.Y < parent.Min.Y {
		pos.Y = parent.Min.Y
	}
	if pos.X+size.Width > parent.Max.X {
		pos.X = parent.Max.X - size.Width
	}
	if pos.Y+size.Height > parent.Max.Y {
		pos.Y = parent.Max.Y - size.Height
	}
	return pos, size
}

// Wrap relocates an overflowing child to the opposite edge, grid-wrap style:
// a child past the right edge restarts at the parent's left edge one row
// down (by its own height); a child past the bottom restarts at the top.
// Children exceeding the left or top edge snap back to that edge. Applying
// Wrap to an already-conforming child is a no-op, so the operation is
// idempotent.
func Wrap(pos Point, size Size, parent BoundingBox) Point {
	child := BoundingBox{Min: pos, Max: Point{pos.X + size.Width, pos.Y + size.Height}}
	o := Check(child, parent)
	if o.None() {
		return pos
	}
	// An oversize child already flush with the left/top edge cannot be
	// relocated anywhere that fits; leaving it put keeps Wrap idempotent.
	if o.Right() && pos.X > parent.Min.X {
		pos.X = parent.Min.X
		pos.Y += size.Height
	}
	if o.Left() {
		pos.X = parent.Min.X
	}
	if o.Top() {
		pos.Y = parent.Min.Y
	}
	// Re-check the bottom after a potential row advance.
	if pos.Y+size.Height > parent.Max.Y && pos.Y > parent.Min.Y {
		pos.Y = parent.Min.Y
	}
	return pos
}
