package geom

import "math"

// NormalizeAngle maps an angle in degrees to [0, 360).
func NormalizeAngle(degrees float64) float64 {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// sinCos returns sin and cos for an angle in degrees, exact at the quadrant
// angles. Going through floating-point radians at 90/180/270 leaves residues
// around 1e-16 that can flip integer pixel bounds; the switch removes them.
func sinCos(degrees float64) (sin, cos float64) {
	switch NormalizeAngle(degrees) {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	rad := degrees * math.Pi / 180
	return math.Sin(rad), math.Cos(rad)
}

// Rotate rotates p about pivot by the given angle in degrees. Positive angles
// rotate counter-clockwise in a Y-up frame (clockwise as seen on screen).
func Rotate(p Point, degrees float64, pivot Point) Point {
	sin, cos := sinCos(degrees)
	dx, dy := p.X-pivot.X, p.Y-pivot.Y
	return Point{
		X: pivot.X + dx*cos - dy*sin,
		Y: pivot.Y + dx*sin + dy*cos,
	}
}

// BoundingBoxOf computes the axis-aligned box enclosing a rectangle of the
// given size centered at center and rotated by degrees. At 0, 90, 180 and 270
// degrees the result is exact (no floating drift).
func BoundingBoxOf(center Point, size Size, degrees float64) BoundingBox {
	hw, hh := size.Width/2, size.Height/2
	corners := [4]Point{
		{center.X - hw, center.Y - hh},
		{center.X + hw, center.Y - hh},
		{center.X + hw, center.Y + hh},
		{center.X - hw, center.Y + hh},
	}
	for i, c := range corners {
		corners[i] = Rotate(c, degrees, center)
	}
	return BoundingBoxOfPoints(corners[:])
}

// BoundingBoxOfPoints returns the smallest axis-aligned box enclosing all
// points. An empty slice yields the zero box.
func BoundingBoxOfPoints(pts []Point) BoundingBox {
	if len(pts) == 0 {
		return BoundingBox{}
	}
	b := BoundingBox{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}
