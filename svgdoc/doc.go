/*
Package svgdoc assembles SVG documents in a caller-provided, fixed-size buffer.

The buffer is split into two regions. The first HeaderSize bytes are reserved for the
document's root element, which can only be written after all path data is known.
The remainder is scratch space for path data. Path commands are written into scratch
space one at a time; every command is checked against the remaining capacity (with a
safety margin depending on the command's type) and dropped if it does not fit.
Dropping a command never aborts the document.

Finishing a document moves the path data right behind the header and appends the
closing tags and a NUL byte, for consumers expecting C-style strings. The Result of
Finish tells clients how many bytes have been written and how large a buffer would
have been needed to hold the complete document:

	buf := svgdoc.NewBuffer(out, "#000000")
	buf.BeginPath()
	buf.MoveTo(10, 10)
	buf.LineTo(20, 10)
	buf.ClosePath()
	res := buf.Finish(svgdoc.NewViewBox(10, 10, 20, 10))
	if res.Truncated {
	    out = make([]byte, res.Needed)
	    ...
	}

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package svgdoc

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'txt2svg.svgdoc'
func tracer() tracing.Trace {
	return tracing.Select("txt2svg.svgdoc")
}
