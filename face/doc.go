/*
Package face is the boundary between text rendering and font parsing.

A Font gives access to everything a renderer needs from a parsed font: pixel scale,
vertical metrics, glyph lookup, glyph outlines in font design units, advance widths
and kerning. Parsing itself is left to backend packages, which register a Parser with
this package:

▪︎ sfntface, based on golang.org/x/image/font/sfnt (the default)

▪︎ gotextface, based on github.com/go-text/typesetting

Outlines are sequences of segments in font design units, with the y-axis pointing
upwards. Segment storage is provided by the caller in the form of an arena.Slab, and
outlines are handed back to the font with ReleaseOutline once consumed.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package face

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'txt2svg.face'
func tracer() tracing.Trace {
	return tracing.Select("txt2svg.face")
}

// ErrEmptyFontData is returned by parsers for empty input.
var ErrEmptyFontData = errors.New("face: empty font data")

// ErrNoParser is returned if no parser is registered under a given name.
var ErrNoParser = errors.New("face: no such font parser")

// GlyphError is returned if a glyph's outline cannot be extracted.
type GlyphError struct {
	GID GlyphIndex
	Err error
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("face: glyph %d: %v", e.GID, e.Err)
}

func (e *GlyphError) Unwrap() error {
	return e.Err
}
