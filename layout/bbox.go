package layout

import "math"

// BBox is a bounding box in device space. The zero value is not empty; use
// EmptyBBox to start collecting points.
type BBox struct {
	MinX, MinY, MaxX, MaxY float32
}

// EmptyBBox returns a box containing no points.
func EmptyBBox() BBox {
	return BBox{
		MinX: math.MaxFloat32, MinY: math.MaxFloat32,
		MaxX: -math.MaxFloat32, MaxY: -math.MaxFloat32,
	}
}

// IsEmpty reports whether no point has been added to b.
func (b BBox) IsEmpty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// Add extends b to contain point (x,y).
func (b *BBox) Add(x, y float32) {
	b.MinX, b.MaxX = min(b.MinX, x), max(b.MaxX, x)
	b.MinY, b.MaxY = min(b.MinY, y), max(b.MaxY, y)
}

// Union returns the smallest box containing b and c.
func (b BBox) Union(c BBox) BBox {
	if c.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return c
	}
	return BBox{
		MinX: min(b.MinX, c.MinX), MinY: min(b.MinY, c.MinY),
		MaxX: max(b.MaxX, c.MaxX), MaxY: max(b.MaxY, c.MaxY),
	}
}

// Width returns the horizontal extent of b, or 0 for empty boxes.
func (b BBox) Width() float32 {
	if b.IsEmpty() {
		return 0
	}
	return b.MaxX - b.MinX
}

// Height returns the vertical extent of b, or 0 for empty boxes.
func (b BBox) Height() float32 {
	if b.IsEmpty() {
		return 0
	}
	return b.MaxY - b.MinY
}
