/*
Package arena implements bump allocation over a contiguous block of memory.

An Arena hands out monotonically increasing offsets. There is no way to free a single
allocation; everything is reclaimed at once by calling Reset. This is the memory model
of a WebAssembly module without a libc, where the host stages its input buffers in
linear memory and the guest needs scratch space for glyph outlines.

Arenas are plain values. They are not safe for concurrent use, but clients may create as
many arenas as they like, one per render call in flight.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package arena

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'txt2svg.arena'
func tracer() tracing.Trace {
	return tracing.Select("txt2svg.arena")
}
