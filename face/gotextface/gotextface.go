/*
Package gotextface implements face.Font on top of github.com/go-text/typesetting.

Importing this package registers a parser with name "gotext". This backend works
directly in font design units. Kerning is read from GPOS pair adjustments of the
'kern' feature, with the legacy 'kern' table as fallback.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package gotextface

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/txt2svg/arena"
	"github.com/npillmayer/txt2svg/face"
)

// tracer traces with key 'txt2svg.face'
func tracer() tracing.Trace {
	return tracing.Select("txt2svg.face")
}

// Name is the name this backend registers with package face.
const Name = "gotext"

func init() {
	face.RegisterParser(Name, face.ParserFunc(func(data []byte) (face.Font, error) {
		return Parse(data)
	}))
}

// ErrNoOutline is wrapped into a face.GlyphError for glyphs which are not
// represented as vector outlines, e.g. bitmap or SVG glyphs.
var ErrNoOutline = errors.New("gotext: glyph has no outline")

// Face is a font parsed by go-text.
type Face struct {
	Face     *font.Face
	upem     int
	vmetrics face.VMetrics
	kern     kerning
	pending  int
}

var _ face.Font = (*Face)(nil)

// Parse parses an OpenType font (TTF or OTF) from memory.
func Parse(fbytes []byte) (*Face, error) {
	if len(fbytes) == 0 {
		return nil, face.ErrEmptyFontData
	}
	ft, err := font.ParseTTF(bytes.NewReader(fbytes))
	if err != nil {
		return nil, fmt.Errorf("gotext: cannot parse font: %w", err)
	}
	f := &Face{Face: ft, upem: int(ft.Upem())}
	if f.upem <= 0 {
		return nil, errors.New("gotext: font has invalid units-per-em")
	}
	f.kern = newKerning(ft.Font)
	if ext, ok := ft.FontHExtents(); ok {
		f.vmetrics = face.VMetrics{
			Ascent:  int(ext.Ascender),
			Descent: int(ext.Descender),
			LineGap: int(ext.LineGap),
		}
	} else {
		tracer().Infof("font has no horizontal extents, using units-per-em")
		f.vmetrics = face.VMetrics{Ascent: f.upem}
	}
	return f, nil
}

// UnitsPerEm returns the font's design units per em.
func (f *Face) UnitsPerEm() int {
	return f.upem
}

// ScaleForPixelHeight implements face.Font.
func (f *Face) ScaleForPixelHeight(px float32) float32 {
	h := f.vmetrics.Ascent - f.vmetrics.Descent
	if h <= 0 {
		return px / float32(f.upem)
	}
	return px / float32(h)
}

// VMetrics implements face.Font.
func (f *Face) VMetrics() face.VMetrics {
	return f.vmetrics
}

// GlyphIndex implements face.Font.
func (f *Face) GlyphIndex(r rune) face.GlyphIndex {
	gid, ok := f.Face.NominalGlyph(r)
	if !ok {
		tracer().Debugf("no glyph for %#U", r)
		return face.NOTDEF
	}
	return face.GlyphIndex(gid)
}

// GlyphOutline implements face.Font.
func (f *Face) GlyphOutline(gid face.GlyphIndex, slab *arena.Slab[face.Segment]) (face.Outline, error) {
	o := face.Outline{GID: gid}
	outline, ok := f.Face.GlyphData(font.GID(gid)).(font.GlyphOutline)
	if !ok {
		return o, &face.GlyphError{GID: gid, Err: ErrNoOutline}
	}
	if len(outline.Segments) == 0 {
		return o, nil
	}
	f.pending++
	o.Segments = slab.Alloc(len(outline.Segments))
	for i, seg := range outline.Segments {
		s := &o.Segments[i]
		switch seg.Op {
		case opentype.SegmentOpMoveTo:
			s.Op = face.SegmentMoveTo
			s.X, s.Y = seg.Args[0].X, seg.Args[0].Y
		case opentype.SegmentOpLineTo:
			s.Op = face.SegmentLineTo
			s.X, s.Y = seg.Args[0].X, seg.Args[0].Y
		case opentype.SegmentOpQuadTo:
			s.Op = face.SegmentQuadTo
			s.CX, s.CY = seg.Args[0].X, seg.Args[0].Y
			s.X, s.Y = seg.Args[1].X, seg.Args[1].Y
		case opentype.SegmentOpCubeTo:
			s.Op = face.SegmentCubeTo
			s.CX, s.CY = seg.Args[0].X, seg.Args[0].Y
			s.CX1, s.CY1 = seg.Args[1].X, seg.Args[1].Y
			s.X, s.Y = seg.Args[2].X, seg.Args[2].Y
		}
	}
	return o, nil
}

// ReleaseOutline implements face.Font.
func (f *Face) ReleaseOutline(o face.Outline) {
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
func (f *Face) Pending() int {
	return f.pending
}

// HMetrics implements face.Font.
func (f *Face) HMetrics(gid face.GlyphIndex) face.HMetrics {
	hm := face.HMetrics{Advance: int(f.Face.HorizontalAdvance(font.GID(gid)))}
	if ext, ok := f.Face.GlyphExtents(font.GID(gid)); ok {
		hm.LSB = int(ext.XBearing)
	}
	return hm
}

// KernAdvance implements face.Font.
func (f *Face) KernAdvance(left, right face.GlyphIndex) int {
	return f.kern.pair(uint16(left), uint16(right))
}
