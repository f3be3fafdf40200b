/*
Package sfntface implements face.Font on top of golang.org/x/image/font/sfnt.

Importing this package registers a parser with name "sfnt", which is the default
parser of package face.

Package sfnt works in fixed.Int26_6 pixel units for a given ppem. We request all
values at a ppem equal to the font's units-per-em, which makes every value an exact
multiple of 1/64 of a design unit.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package sfntface

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/txt2svg/arena"
	"github.com/npillmayer/txt2svg/face"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'txt2svg.face'
func tracer() tracing.Trace {
	return tracing.Select("txt2svg.face")
}

// Name is the name this backend registers with package face.
const Name = "sfnt"

func init() {
	face.RegisterParser(Name, face.ParserFunc(func(data []byte) (face.Font, error) {
		return Parse(data)
	}))
}

// ScalableFont is an outline font of type TTF or OTF, parsed by package sfnt.
//
// A ScalableFont holds a scratch buffer for package sfnt and therefore is not safe
// for concurrent use.
type ScalableFont struct {
	Fontname string
	Binary   []byte     // raw data, must not change while the font is in use
	SFNT     *sfnt.Font // the font's container
	buf      sfnt.Buffer
	ppem     fixed.Int26_6
	vmetrics face.VMetrics
	pending  int // outlines handed out and not yet released
}

var _ face.Font = (*ScalableFont)(nil)

// Parse parses an OpenType font (TTF or OTF) from memory.
func Parse(fbytes []byte) (*ScalableFont, error) {
	if len(fbytes) == 0 {
		return nil, face.ErrEmptyFontData
	}
	f := &ScalableFont{Binary: fbytes}
	var err error
	if f.SFNT, err = sfnt.Parse(f.Binary); err != nil {
		return nil, fmt.Errorf("sfnt: cannot parse font: %w", err)
	}
	upem := f.SFNT.UnitsPerEm()
	if upem <= 0 {
		return nil, errors.New("sfnt: font has invalid units-per-em")
	}
	f.ppem = fixed.I(int(upem))
	m, err := f.SFNT.Metrics(&f.buf, f.ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("sfnt: cannot read font metrics: %w", err)
	}
	// package font reports descent as a positive distance below the baseline
	f.vmetrics = face.VMetrics{
		Ascent:  m.Ascent.Round(),
		Descent: -m.Descent.Round(),
		LineGap: (m.Height - m.Ascent - m.Descent).Round(),
	}
	if f.Fontname, err = f.SFNT.Name(&f.buf, sfnt.NameIDFull); err == nil {
		tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	}
	return f, nil
}

// UnitsPerEm returns the font's design units per em.
func (f *ScalableFont) UnitsPerEm() int {
	return f.ppem.Floor()
}

// NumGlyphs returns the number of glyphs in the font.
func (f *ScalableFont) NumGlyphs() int {
	return f.SFNT.NumGlyphs()
}

// ScaleForPixelHeight implements face.Font.
func (f *ScalableFont) ScaleForPixelHeight(px float32) float32 {
	h := f.vmetrics.Ascent - f.vmetrics.Descent
	if h <= 0 {
		return px / float32(f.UnitsPerEm())
	}
	return px / float32(h)
}

// VMetrics implements face.Font.
func (f *ScalableFont) VMetrics() face.VMetrics {
	return f.vmetrics
}

// GlyphIndex implements face.Font.
func (f *ScalableFont) GlyphIndex(r rune) face.GlyphIndex {
	gid, err := f.SFNT.GlyphIndex(&f.buf, r)
	if err != nil {
		tracer().Debugf("no glyph for %#U: %v", r, err)
		return face.NOTDEF
	}
	return face.GlyphIndex(gid)
}

// GlyphOutline implements face.Font. Coordinates delivered by package sfnt grow
// downwards and are flipped here.
func (f *ScalableFont) GlyphOutline(gid face.GlyphIndex, slab *arena.Slab[face.Segment]) (face.Outline, error) {
	o := face.Outline{GID: gid}
	segs, err := f.SFNT.LoadGlyph(&f.buf, sfnt.GlyphIndex(gid), f.ppem, nil)
	if err != nil {
		return o, &face.GlyphError{GID: gid, Err: err}
	}
	if len(segs) == 0 {
		return o, nil
	}
	f.pending++
	o.Segments = slab.Alloc(len(segs))
	for i, seg := range segs {
		s := &o.Segments[i]
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			s.Op = face.SegmentMoveTo
			s.X, s.Y = point(seg.Args[0])
		case sfnt.SegmentOpLineTo:
			s.Op = face.SegmentLineTo
			s.X, s.Y = point(seg.Args[0])
		case sfnt.SegmentOpQuadTo:
			s.Op = face.SegmentQuadTo
			s.CX, s.CY = point(seg.Args[0])
			s.X, s.Y = point(seg.Args[1])
		case sfnt.SegmentOpCubeTo:
			s.Op = face.SegmentCubeTo
			s.CX, s.CY = point(seg.Args[0])
			s.CX1, s.CY1 = point(seg.Args[1])
			s.X, s.Y = point(seg.Args[2])
		}
	}
	return o, nil
}

func point(p fixed.Point26_6) (float32, float32) {
	return float32(p.X) / 64, -float32(p.Y) / 64
}

// ReleaseOutline implements face.Font. Segment memory belongs to the caller's slab;
// the font only keeps track of outstanding outlines.
func (f *ScalableFont) ReleaseOutline(o face.Outline) {
	if o.Segments == nil {
		return
	}
	if f.pending == 0 {
		tracer().Errorf("release of glyph %d outline which has not been handed out", o.GID)
		return
	}
	f.pending--
}

// Pending returns the number of outlines handed out and not yet released.
func (f *ScalableFont) Pending() int {
	return f.pending
}

// HMetrics implements face.Font.
func (f *ScalableFont) HMetrics(gid face.GlyphIndex) face.HMetrics {
	bounds, adv, err := f.SFNT.GlyphBounds(&f.buf, sfnt.GlyphIndex(gid), f.ppem, font.HintingNone)
	if err != nil {
		tracer().Debugf("no metrics for glyph %d: %v", gid, err)
		return face.HMetrics{}
	}
	return face.HMetrics{Advance: adv.Round(), LSB: bounds.Min.X.Round()}
}

// KernAdvance implements face.Font. sfnt reads GPOS pair adjustments of the
// 'kern' feature and falls back to the 'kern' table.
func (f *ScalableFont) KernAdvance(left, right face.GlyphIndex) int {
	k, err := f.SFNT.Kern(&f.buf, sfnt.GlyphIndex(left), sfnt.GlyphIndex(right), f.ppem, font.HintingNone)
	if err != nil {
		if !errors.Is(err, sfnt.ErrNotFound) {
			tracer().Debugf("kerning %d/%d: %v", left, right, err)
		}
		return 0
	}
	return k.Round()
}
