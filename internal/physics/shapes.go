package physics

// Rect is an axis-aligned rectangle described by its centre and half extents.
type Rect struct {
	Center Vec
	Half   Vec
}

// NewRect creates a rectangle centred on center with the given full size.
func NewRect(center Vec, width, height float64) Rect {
	return Rect{Center: center, Half: Vec{X: width / 2, Y: height / 2}}
}

// Min returns the top-left corner.
func (r Rect) Min() Vec {
	return r.Center.Sub(r.Half)
}

// Max returns the bottom-right corner.
func (r Rect) Max() Vec {
	return r.Center.Add(r.Half)
}

// Contains reports whether p lies inside r (edges included).
func (r Rect) Contains(p Vec) bool {
	lo, hi := r.Min(), r.Max()
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}

// Inflate returns r grown by margin on every side.
func (r Rect) Inflate(margin float64) Rect {
	return Rect{Center: r.Center, Half: Vec{X: r.Half.X + margin, Y: r.Half.Y + margin}}
}

// Circle is a circle described by its centre and radius.
type Circle struct {
	Center Vec
	Radius float64
}
