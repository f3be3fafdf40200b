package face

import (
	"github.com/npillmayer/txt2svg/arena"
	"github.com/npillmayer/txt2svg/fpmath"
)

// maxSubdivision limits curve splitting to 2^16 line segments per curve.
const maxSubdivision = 16

// Flattener replaces the curves of an outline by line segments.
//
// Tolerance is the allowed deviation in design units. A renderer working at a given
// pixel scale will usually pass a tolerance of (pixels / scale).
type Flattener struct {
	Num       fpmath.Numeric
	Tolerance float32
	out       []Segment
}

// NewFlattener creates a flattener. If num is nil, fpmath.Default() is used.
func NewFlattener(tolerance float32, num fpmath.Numeric) *Flattener {
	if num == nil {
		num = fpmath.Default()
	}
	return &Flattener{Num: num, Tolerance: tolerance}
}

// Flatten returns a copy of o with quadratic and cubic curves subdivided into lines.
// Segments of the result are allocated from slab.
func (fl *Flattener) Flatten(o Outline, slab *arena.Slab[Segment]) Outline {
	fl.out = fl.out[:0]
	tol2 := fl.Tolerance * fl.Tolerance
	var x, y float32
	for _, seg := range o.Segments {
		switch seg.Op {
		case SegmentMoveTo, SegmentLineTo:
			fl.out = append(fl.out, Segment{Op: seg.Op, X: seg.X, Y: seg.Y})
		case SegmentQuadTo:
			fl.quad(x, y, seg.CX, seg.CY, seg.X, seg.Y, tol2, 0)
		case SegmentCubeTo:
			fl.cube(x, y, seg.CX, seg.CY, seg.CX1, seg.CY1, seg.X, seg.Y, tol2, 0)
		}
		x, y = seg.X, seg.Y
	}
	flat := Outline{GID: o.GID, Segments: slab.Alloc(len(fl.out))}
	copy(flat.Segments, fl.out)
	return flat
}

func (fl *Flattener) line(x, y float32) {
	fl.out = append(fl.out, Segment{Op: SegmentLineTo, X: x, Y: y})
}

func (fl *Flattener) quad(x0, y0, x1, y1, x2, y2, tol2 float32, n int) {
	// distance of the curve's midpoint from the chord's midpoint
	mx := (x0 + 2*x1 + x2) / 4
	my := (y0 + 2*y1 + y2) / 4
	dx := (x0+x2)/2 - mx
	dy := (y0+y2)/2 - my
	if n > maxSubdivision || dx*dx+dy*dy <= tol2 {
		fl.line(x2, y2)
		return
	}
	fl.quad(x0, y0, (x0+x1)/2, (y0+y1)/2, mx, my, tol2, n+1)
	fl.quad(mx, my, (x1+x2)/2, (y1+y2)/2, x2, y2, tol2, n+1)
}

func (fl *Flattener) cube(x0, y0, x1, y1, x2, y2, x3, y3, tol2 float32, n int) {
	// the difference between the control polygon's length and the chord's length
	// bounds the deviation of the curve from the chord
	dx0, dy0 := x1-x0, y1-y0
	dx1, dy1 := x2-x1, y2-y1
	dx2, dy2 := x3-x2, y3-y2
	dx, dy := x3-x0, y3-y0
	sqrt := fl.Num.Sqrt
	long := sqrt(dx0*dx0+dy0*dy0) + sqrt(dx1*dx1+dy1*dy1) + sqrt(dx2*dx2+dy2*dy2)
	short := sqrt(dx*dx + dy*dy)
	if n > maxSubdivision || long*long-short*short <= tol2 {
		fl.line(x3, y3)
		return
	}
	x01, y01 := (x0+x1)/2, (y0+y1)/2
	x12, y12 := (x1+x2)/2, (y1+y2)/2
	x23, y23 := (x2+x3)/2, (y2+y3)/2
	xa, ya := (x01+x12)/2, (y01+y12)/2
	xb, yb := (x12+x23)/2, (y12+y23)/2
	mx, my := (xa+xb)/2, (ya+yb)/2
	fl.cube(x0, y0, x01, y01, xa, ya, mx, my, tol2, n+1)
	fl.cube(mx, my, xb, yb, x23, y23, x3, y3, tol2, n+1)
}

// BitmapBox returns the box of whole pixels covering an outline at a given scale,
// in a y-down coordinate system with the glyph origin at (0,0). Control points are
// included, so the box may be slightly larger than the glyph's ink.
func BitmapBox(o Outline, scale float32, num fpmath.Numeric) (x0, y0, x1, y1 int) {
	if o.IsEmpty() {
		return 0, 0, 0, 0
	}
	if num == nil {
		num = fpmath.Default()
	}
	minX, minY := o.Segments[0].X, o.Segments[0].Y
	maxX, maxY := minX, minY
	add := func(x, y float32) {
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	for _, seg := range o.Segments {
		add(seg.X, seg.Y)
		switch seg.Op {
		case SegmentCubeTo:
			add(seg.CX1, seg.CY1)
			fallthrough
		case SegmentQuadTo:
			add(seg.CX, seg.CY)
		}
	}
	x0 = num.IFloor(minX * scale)
	y0 = num.IFloor(-maxY * scale)
	x1 = num.ICeil(maxX * scale)
	y1 = num.ICeil(-minY * scale)
	return
}
