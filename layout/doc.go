/*
Package layout places the glyphs of a single line of text.

An Engine decodes UTF-8 input, looks up glyphs and their outlines from a face.Font,
transforms outlines from font design units to device space and hands the result to a
Sink. Device space has its y-axis pointing downwards; the baseline sits at the font's
ascent, scaled to the requested pixel height. Every glyph advances the pen by its
advance width and, if another glyph follows, by the kerning between the two.

Layout is strictly left-to-right on one line. There is no shaping, no bidi and no
line breaking.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'txt2svg.layout'
func tracer() tracing.Trace {
	return tracing.Select("txt2svg.layout")
}
