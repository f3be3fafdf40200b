package txt2svg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/npillmayer/txt2svg/face"
	_ "github.com/npillmayer/txt2svg/face/gotextface" // register go-text backend
	_ "github.com/npillmayer/txt2svg/face/sfntface"   // register default backend
	"github.com/npillmayer/txt2svg/fpmath"
	"github.com/npillmayer/txt2svg/layout"
	"github.com/npillmayer/txt2svg/svgdoc"
)

// ErrFontInit is returned if font data cannot be parsed.
var ErrFontInit = errors.New("txt2svg: cannot initialize font")

// ErrTruncated is returned by Render if the document does not fit into a buffer
// even after resizing.
var ErrTruncated = errors.New("txt2svg: document truncated")

// ErrInvalidColor is returned by NormalizeColor.
var ErrInvalidColor = errors.New("txt2svg: invalid color")

// DefaultBufferSize is the size of the output buffer Render starts with.
const DefaultBufferSize = 64 * 1024

type settings struct {
	layout  layout.Options
	backend string
	bufsize int
}

// Option configures rendering.
type Option func(*settings)

// WithPixelHeight sets the height of the text from descent to ascent, in device
// units. The default is 64.
func WithPixelHeight(px float32) Option {
	return func(s *settings) {
		s.layout.PixelHeight = px
	}
}

// WithFlatness replaces curves by line segments which deviate at most px device
// units from the curve. 0 keeps curves.
func WithFlatness(px float32) Option {
	return func(s *settings) {
		s.layout.Flatness = px
	}
}

// WithNumeric selects the numeric primitives for curve flattening.
func WithNumeric(num fpmath.Numeric) Option {
	return func(s *settings) {
		s.layout.Numeric = num
	}
}

// WithBackend selects the font parser registered with package face under name.
func WithBackend(name string) Option {
	return func(s *settings) {
		s.backend = name
	}
}

// WithBufferSize sets the size of the first output buffer Render tries.
func WithBufferSize(size int) Option {
	return func(s *settings) {
		s.bufsize = size
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{
		layout:  layout.DefaultOptions(),
		backend: face.DefaultParser,
		bufsize: DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Parse parses font data with the backend selected by the options.
func Parse(fontData []byte, opts ...Option) (face.Font, error) {
	s := newSettings(opts)
	p, err := face.ParserFor(s.backend)
	if err != nil {
		tracer().Errorf("font initialization failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrFontInit, err)
	}
	f, err := p.Parse(fontData)
	if err != nil {
		tracer().Errorf("font initialization failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrFontInit, err)
	}
	return f, nil
}

// Generate renders text with the font given as raw font data into out. Text ends at
// its first NUL byte or at the end of the slice. color is written verbatim as the fill
// attribute of every path; see NormalizeColor.
//
// If the font cannot be parsed, or the backend selected by the options is unknown,
// Generate returns ErrFontInit and writes nothing.
func Generate(text, fontData []byte, color string, out []byte, opts ...Option) (svgdoc.Result, error) {
	f, err := Parse(fontData, opts...)
	if err != nil {
		return svgdoc.Result{}, err
	}
	res, _ := Write(text, f, color, out, opts...)
	return res, nil
}

// Write renders text with font f into out, returning the document's size and
// statistics about the layout.
func Write(text []byte, f face.Font, color string, out []byte, opts ...Option) (svgdoc.Result, layout.Stats) {
	s := newSettings(opts)
	engine := layout.NewEngine(f, s.layout)
	buf := svgdoc.NewBuffer(out, color)
	bbox, stats := engine.Run(text, pathSink{buf})
	vb := svgdoc.EmptyViewBox()
	if !bbox.IsEmpty() {
		vb = svgdoc.NewViewBox(bbox.MinX, bbox.MinY, bbox.MaxX, bbox.MaxY)
	}
	res := buf.Finish(vb)
	tracer().Debugf("rendered %d glyphs into %d bytes", stats.Glyphs, res.Written)
	return res, stats
}

// Render renders text with font f and returns the document. If the initial buffer is
// too small, rendering is repeated once with a buffer of the size needed.
func Render(text string, f face.Font, color string, opts ...Option) ([]byte, error) {
	s := newSettings(opts)
	out := make([]byte, max(s.bufsize, svgdoc.HeaderSize))
	res, _ := Write([]byte(text), f, color, out, opts...)
	if res.Truncated && res.Needed > len(out) {
		tracer().Debugf("output buffer too small, retrying with %d bytes", res.Needed)
		out = make([]byte, res.Needed)
		res, _ = Write([]byte(text), f, color, out, opts...)
	}
	if res.Truncated {
		return out[:res.Written], ErrTruncated
	}
	return out[:res.Written], nil
}

// NormalizeColor checks a hex RGB color, with or without leading '#', and returns it
// in the form "#rrggbb".
func NormalizeColor(color string) (string, error) {
	color = strings.TrimSpace(color)
	if !strings.HasPrefix(color, "#") {
		color = "#" + color
	}
	c, err := colorful.Hex(color)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	return c.Hex(), nil
}

// pathSink connects a layout engine to an SVG buffer, one path per glyph.
type pathSink struct {
	buf *svgdoc.Buffer
}

func (s pathSink) BeginGlyph(face.GlyphIndex) { s.buf.BeginPath() }
func (s pathSink) MoveTo(x, y float32)        { s.buf.MoveTo(x, y) }
func (s pathSink) LineTo(x, y float32)        { s.buf.LineTo(x, y) }
func (s pathSink) QuadTo(cx, cy, x, y float32) {
	s.buf.QuadTo(cx, cy, x, y)
}
func (s pathSink) CubeTo(cx0, cy0, cx1, cy1, x, y float32) {
	s.buf.CubeTo(cx0, cy0, cx1, cy1, x, y)
}
func (s pathSink) EndGlyph() { s.buf.ClosePath() }
