package geom

import "testing"

var parent = BoundingBox{Min: Point{0, 0}, Max: Point{100, 100}}

func box(x, y, w, h float64) BoundingBox {
	return BoundingBox{Min: Point{x, y}, Max: Point{x + w, y + h}}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name  string
		child BoundingBox
		want  Overflow
	}{
		{"fits", box(10, 10, 20, 20), 0},
		{"right", box(90, 10, 20, 20), OverflowRight},
		{"left", box(-5, 10, 20, 20), OverflowLeft},
		{"top", box(10, -5, 20, 20), OverflowTop},
		{"bottom", box(10, 90, 20, 20), OverflowBottom},
		{"corner", box(95, 95, 20, 20), OverflowRight | OverflowBottom},
		{"oversize", box(-10, -10, 200, 200), OverflowLeft | OverflowRight | OverflowTop | OverflowBottom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Check(tt.child, parent); got != tt.want {
				t.Errorf("Check = %b, want %b", got, tt.want)
			}
		})
	}
}

func TestClipNeverNegative(t *testing.T) {
	tests := []struct {
		name string
		pos  Point
		size Size
	}{
		{"right overflow", Point{90, 10}, Size{30, 20}},
		{"oversize both", Point{-50, -50}, Size{400, 400}},
		{"bottom left", Point{-10, 95}, Size{30, 30}},
		{"fits already", Point{10, 10}, Size{20, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, size := Clip(tt.pos, tt.size, parent)
			if size.Width < 0 || size.Height < 0 {
				t.Fatalf("negative size %+v", size)
			}
			child := box(pos.X, pos.Y, size.Width, size.Height)
			if !Check(child, parent).None() {
				t.Errorf("clipped child %+v still overflows", child)
			}
		})
	}
}

func TestClipKeepsConformingChild(t *testing.T) {
	pos, size := Clip(Point{10, 20}, Size{30, 40}, parent)
	if pos != (Point{10, 20}) || size != (Size{30, 40}) {
		t.Errorf("Clip moved a conforming child: %+v %+v", pos, size)
	}
}

func TestClipOversizeDimensionUsesFullExtent(t *testing.T) {
	pos, size := Clip(Point{30, 10}, Size{300, 20}, parent)
	if size.Width != parent.Width() {
		t.Errorf("width = %v, want parent extent %v", size.Width, parent.Width())
	}
	if pos.X != parent.Min.X {
		t.Errorf("pos.X = %v, want %v", pos.X, parent.Min.X)
	}
}

func TestWrapIdempotent(t *testing.T) {
	tests := []struct {
		name string
		pos  Point
		size Size
	}{
		{"fits", Point{10, 10}, Size{20, 20}},
		{"right overflow", Point{95, 10}, Size{20, 20}},
		{"bottom overflow", Point{10, 95}, Size{20, 20}},
		{"corner overflow", Point{95, 95}, Size{20, 20}},
		{"negative", Point{-15, -15}, Size{20, 20}},
		{"wider than parent", Point{40, 10}, Size{150, 20}},
		{"taller than parent", Point{10, 40}, Size{20, 150}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := Wrap(tt.pos, tt.size, parent)
			twice := Wrap(once, tt.size, parent)
			if once != twice {
				t.Errorf("Wrap not idempotent: once=%+v twice=%+v", once, twice)
			}
		})
	}
}

func TestWrapConformingIsNoOp(t *testing.T) {
	pos := Point{10, 10}
	if got := Wrap(pos, Size{20, 20}, parent); got != pos {
		t.Errorf("Wrap moved a conforming child to %+v", got)
	}
}

func TestWrapRightOverflowStartsNextRow(t *testing.T) {
	got := Wrap(Point{95, 10}, Size{20, 20}, parent)
	want := Point{0, 30}
	if got != want {
		t.Errorf("Wrap = %+v, want %+v", got, want)
	}
}

func TestWrapBottomOverflowReturnsToTop(t *testing.T) {
	got := Wrap(Point{10, 95}, Size{20, 20}, parent)
	want := Point{10, 0}
	if got != want {
		t.Errorf("Wrap = %+v, want %+v", got, want)
	}
}
