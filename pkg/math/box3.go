package math

// Box3 is an axis-aligned bounding box.
// The zero value is treated as the empty box.
type Box3 struct {
	Min Vec3
	Max Vec3
}

// Box3FromPoints returns the tightest box containing all points.
// Returns the empty box for an empty slice.
func Box3FromPoints(points []Vec3) Box3 {
	if len(points) == 0 {
		return Box3{}
	}
	b := Box3{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b = b.ExpandByPoint(p)
	}
	return b
}

// IsEmpty reports whether the box is the zero (empty) box.
func (b Box3) IsEmpty() bool {
	return b == Box3{}
}

// ExpandByPoint grows the box to contain p.
func (b Box3) ExpandByPoint(p Vec3) Box3 {
	return Box3{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Join returns the union of two boxes. An empty box is the identity
// element: joining with it returns the other box unchanged.
func (b Box3) Join(other Box3) Box3 {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	return Box3{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Size returns the extents of the box.
func (b Box3) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the box.
func (b Box3) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// HalfExtents returns half the size of the box.
func (b Box3) HalfExtents() Vec3 {
	return b.Size().Scale(0.5)
}

// Translate returns the box moved by delta.
func (b Box3) Translate(delta Vec3) Box3 {
	return Box3{Min: b.Min.Add(delta), Max: b.Max.Add(delta)}
}

// Expand returns the box grown by margin on all sides.
func (b Box3) Expand(margin float32) Box3 {
	m := Vec3{margin, margin, margin}
	return Box3{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}

// Intersects reports whether two boxes overlap. Empty boxes intersect nothing.
func (b Box3) Intersects(other Box3) bool {
	if b.IsEmpty() || other.IsEmpty() {
		return false
	}
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// Transformed returns the axis-aligned box containing this box after
// transforming its eight corners by m.
func (b Box3) Transformed(m Mat4) Box3 {
	if b.IsEmpty() {
		return Box3{}
	}
	corners := [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}
	p := m.TransformPoint(corners[0])
	out := Box3{Min: p, Max: p}
	for _, c := range corners[1:] {
		out = out.ExpandByPoint(m.TransformPoint(c))
	}
	return out
}
