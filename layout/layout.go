package layout

import (
	"github.com/npillmayer/txt2svg/arena"
	"github.com/npillmayer/txt2svg/face"
	"github.com/npillmayer/txt2svg/fpmath"
	"github.com/npillmayer/txt2svg/utf8z"
)

// Sink receives glyph outlines in device space.
type Sink interface {
	BeginGlyph(gid face.GlyphIndex)
	MoveTo(x, y float32)
	LineTo(x, y float32)
	QuadTo(cx, cy, x, y float32)
	CubeTo(cx0, cy0, cx1, cy1, x, y float32)
	EndGlyph()
}

// Discard is a Sink which ignores everything. It is useful for measuring text.
var Discard Sink = discard{}

type discard struct{}

func (discard) BeginGlyph(face.GlyphIndex)              {}
func (discard) MoveTo(x, y float32)                     {}
func (discard) LineTo(x, y float32)                     {}
func (discard) QuadTo(cx, cy, x, y float32)             {}
func (discard) CubeTo(cx0, cy0, cx1, cy1, x, y float32) {}
func (discard) EndGlyph()                               {}

// Options control an Engine.
type Options struct {
	PixelHeight float32        // distance from ascent to descent in device units
	PenStart    int            // initial pen position
	Flatness    float32        // if > 0, curves are flattened to lines with this tolerance in device units
	Numeric     fpmath.Numeric // numeric primitives for flattening
}

// DefaultOptions returns the options for 64 pixel high text, starting at x=10.
func DefaultOptions() Options {
	return Options{
		PixelHeight: 64,
		PenStart:    10,
		Numeric:     fpmath.Default(),
	}
}

// Stats collects statistics about a layout run.
type Stats struct {
	Glyphs    int // glyphs laid out, including empty ones
	Missing   int // code-points without a glyph in the font
	Fallbacks int // bytes decoded by the single-byte fallback
	Segments  int // outline segments handed to the sink
	Errors    int // outlines which could not be extracted
	Kerning   int // sum of kerning adjustments
	Pen       int // pen position after the last glyph
}

// Engine lays out text with a fixed font and scale.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	font     face.Font
	opts     Options
	scale    float32
	baseline int
	slab     *arena.Slab[face.Segment]
	flat     *face.Flattener
}

// NewEngine creates a layout engine for font f. Zero-valued options are replaced
// by their defaults.
func NewEngine(f face.Font, opts Options) *Engine {
	def := DefaultOptions()
	if opts.PixelHeight <= 0 {
		opts.PixelHeight = def.PixelHeight
	}
	if opts.Numeric == nil {
		opts.Numeric = def.Numeric
	}
	e := &Engine{
		font: f,
		opts: opts,
		slab: arena.NewSlab[face.Segment](1024),
	}
	e.scale = f.ScaleForPixelHeight(opts.PixelHeight)
	e.baseline = int(float32(f.VMetrics().Ascent) * e.scale)
	if opts.Flatness > 0 && e.scale > 0 {
		e.flat = face.NewFlattener(opts.Flatness/e.scale, opts.Numeric)
	}
	tracer().Debugf("layout engine: scale = %.5f, baseline = %d", e.scale, e.baseline)
	return e
}

// Scale returns the factor from design units to device units.
func (e *Engine) Scale() float32 {
	return e.scale
}

// Baseline returns the vertical position of the baseline in device space.
func (e *Engine) Baseline() int {
	return e.baseline
}

// Run lays out text, which is UTF-8 and ends at its first NUL byte or at the end
// of the slice. It returns the bounding box of all points, including curve control
// points, which have been handed to sink.
func (e *Engine) Run(text []byte, sink Sink) (BBox, Stats) {
	e.slab.Reset()
	bbox := EmptyBBox()
	st := Stats{Pen: e.opts.PenStart}
	it := utf8z.NewIterator(text)
	r, ok := it.Next()
	var gid face.GlyphIndex
	if ok {
		gid = e.lookup(r, &st)
	}
	for ok {
		e.emit(gid, st.Pen, sink, &bbox, &st)
		st.Glyphs++
		st.Pen += int(float32(e.font.HMetrics(gid).Advance) * e.scale)
		if r, ok = it.Next(); ok {
			next := e.lookup(r, &st)
			kern := int(e.scale * float32(e.font.KernAdvance(gid, next)))
			st.Pen += kern
			st.Kerning += kern
			gid = next
		}
	}
	st.Fallbacks = it.Fallbacks()
	if st.Fallbacks > 0 {
		tracer().Infof("%d invalid UTF-8 bytes in input", st.Fallbacks)
	}
	return bbox, st
}

func (e *Engine) lookup(r rune, st *Stats) face.GlyphIndex {
	gid := e.font.GlyphIndex(r)
	if gid == face.NOTDEF {
		tracer().Debugf("no glyph for %#U, using .notdef", r)
		st.Missing++
	}
	return gid
}

func (e *Engine) emit(gid face.GlyphIndex, pen int, sink Sink, bbox *BBox, st *Stats) {
	o, err := e.font.GlyphOutline(gid, e.slab)
	if err != nil {
		tracer().Errorf("cannot render glyph: %v", err)
		st.Errors++
	}
	segs := o.Segments
	if e.flat != nil && !o.IsEmpty() {
		segs = e.flat.Flatten(o, e.slab).Segments
	}
	x0, y0 := float32(pen), float32(e.baseline)
	tr := func(x, y float32) (float32, float32) {
		x, y = x0+x*e.scale, y0-y*e.scale
		bbox.Add(x, y)
		return x, y
	}
	sink.BeginGlyph(gid)
	for _, s := range segs {
		switch s.Op {
		case face.SegmentMoveTo:
			sink.MoveTo(tr(s.X, s.Y))
		case face.SegmentLineTo:
			sink.LineTo(tr(s.X, s.Y))
		case face.SegmentQuadTo:
			cx, cy := tr(s.CX, s.CY)
			x, y := tr(s.X, s.Y)
			sink.QuadTo(cx, cy, x, y)
		case face.SegmentCubeTo:
			cx0, cy0 := tr(s.CX, s.CY)
			cx1, cy1 := tr(s.CX1, s.CY1)
			x, y := tr(s.X, s.Y)
			sink.CubeTo(cx0, cy0, cx1, cy1, x, y)
		}
	}
	st.Segments += len(segs)
	sink.EndGlyph()
	e.font.ReleaseOutline(o)
}
