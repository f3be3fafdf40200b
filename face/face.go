package face

import (
	"fmt"
	"sort"
	"sync"

	"github.com/npillmayer/txt2svg/arena"
)

// GlyphIndex identifies a glyph within a font. Index 0 is '.notdef'.
type GlyphIndex uint16

// NOTDEF is the glyph every unmapped code-point resolves to.
const NOTDEF = GlyphIndex(0)

// SegmentOp is the kind of an outline segment.
type SegmentOp uint8

const (
	SegmentMoveTo SegmentOp = iota
	SegmentLineTo
	SegmentQuadTo
	SegmentCubeTo
)

func (op SegmentOp) String() string {
	switch op {
	case SegmentMoveTo:
		return "move"
	case SegmentLineTo:
		return "line"
	case SegmentQuadTo:
		return "quad"
	case SegmentCubeTo:
		return "cube"
	}
	return "unknown"
}

// Segment is one step of a glyph outline, in font design units (y up).
// (X,Y) is the end point. Quadratic curves use (CX,CY) as their control point,
// cubic curves additionally (CX1,CY1) as their second control point.
type Segment struct {
	Op       SegmentOp
	X, Y     float32
	CX, CY   float32
	CX1, CY1 float32
}

// Outline is the shape of a glyph.
type Outline struct {
	GID      GlyphIndex
	Segments []Segment
}

// IsEmpty reports whether the outline has no segments, e.g. for a space.
func (o Outline) IsEmpty() bool {
	return len(o.Segments) == 0
}

// VMetrics are a font's vertical metrics in design units. Descent is negative
// for descenders below the baseline.
type VMetrics struct {
	Ascent, Descent, LineGap int
}

// HMetrics are a glyph's horizontal metrics in design units.
type HMetrics struct {
	Advance int // advance width
	LSB     int // left side bearing
}

// Font is a parsed font, as seen by a text renderer.
//
// Implementations need not be safe for concurrent use.
type Font interface {
	// ScaleForPixelHeight returns the factor which maps the font's ascent-to-descent
	// height to px pixels.
	ScaleForPixelHeight(px float32) float32
	VMetrics() VMetrics
	// GlyphIndex returns NOTDEF for code-points not covered by the font.
	GlyphIndex(r rune) GlyphIndex
	// GlyphOutline extracts the outline of a glyph, allocating segments from slab.
	GlyphOutline(gid GlyphIndex, slab *arena.Slab[Segment]) (Outline, error)
	// ReleaseOutline hands an outline back after it has been consumed.
	ReleaseOutline(o Outline)
	HMetrics(gid GlyphIndex) HMetrics
	// KernAdvance returns the kerning adjustment between two adjacent glyphs,
	// in design units. Fonts without kerning information return 0.
	KernAdvance(left, right GlyphIndex) int
}

// Parser creates Fonts from raw font data (TTF or OTF).
type Parser interface {
	Parse(data []byte) (Font, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(data []byte) (Font, error)

// Parse calls f(data).
func (f ParserFunc) Parse(data []byte) (Font, error) {
	return f(data)
}

// DefaultParser is the name of the parser used if clients do not select one.
const DefaultParser = "sfnt"

var (
	parsersMu sync.RWMutex
	parsers   = map[string]Parser{}
)

// RegisterParser makes a parser available under a name. Backend packages call this
// from their init functions. Registering a name twice replaces the first parser.
func RegisterParser(name string, p Parser) {
	parsersMu.Lock()
	defer parsersMu.Unlock()
	parsers[name] = p
}

// ParserFor returns the parser registered under name. An empty name selects
// DefaultParser.
func ParserFor(name string) (Parser, error) {
	if name == "" {
		name = DefaultParser
	}
	parsersMu.RLock()
	defer parsersMu.RUnlock()
	p, ok := parsers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoParser, name)
	}
	return p, nil
}

// Parsers lists the names of all registered parsers.
func Parsers() []string {
	parsersMu.RLock()
	defer parsersMu.RUnlock()
	names := make([]string, 0, len(parsers))
	for name := range parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
