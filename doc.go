/*
Package txt2svg renders a line of text into an SVG document, using the outlines of
a TrueType or OpenType font.

Every glyph becomes one path element, filled with a single color. Text is laid out
left-to-right on a single baseline at a fixed pixel height, kerned if the font
supports it:

	svg, err := txt2svg.Render("Hello World", font, "#000000")

All output is written into a fixed-size byte buffer; Generate works on caller-provided
buffers and never allocates output memory. If a buffer is too small, path commands are
dropped and the Result tells how large the buffer should have been.

Fonts are parsed by backends in sub-packages of package face. The default backend is
based on golang.org/x/image/font/sfnt; an alternative one based on
github.com/go-text/typesetting may be selected with WithBackend.

# Status

No shaping: glyphs are mapped one-to-one from code-points. Bidi text and line breaking
are not supported.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package txt2svg

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'txt2svg'
func tracer() tracing.Trace {
	return tracing.Select("txt2svg")
}
