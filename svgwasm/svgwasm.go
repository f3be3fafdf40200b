/*
Command svgwasm is txt2svg as a WebAssembly module.

Build with

	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o txt2svg.wasm ./svgwasm

The module exports three functions. The host stages its input in the module's memory
and receives the document in an output buffer it allocated there:

	wasm_reset_heap()                      discard all allocations
	wasm_alloc(size) → ptr                 allocate size bytes
	wasm_generate_svg(text, font, fontLen, color, out, outMax) → length

Text and color are NUL-terminated. The result is the length of the document written
to out, or 0 if the font could not be parsed. The document is followed by a NUL byte
if there is room for it. Hosts have to reset the heap before every render, otherwise
allocations pile up until the heap overflows.
*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/txt2svg"
	"github.com/npillmayer/txt2svg/arena"
	"github.com/npillmayer/txt2svg/fpmath"
)

// tracer traces with key 'txt2svg'
func tracer() tracing.Trace {
	return tracing.Select("txt2svg")
}

// heapSize is the size of the module's static heap.
const heapSize = 8 << 20

// generate renders an SVG document from input staged in mem.
func generate(mem *arena.Arena, textPtr, fontPtr, fontLen, colorPtr, outPtr, outMax uint32) uint32 {
	if mem.Overflowed() {
		tracer().Errorf("heap overflow, host did not reset the heap")
		return 0
	}
	text := mem.CString(textPtr)
	color := mem.CString(colorPtr)
	font := mem.Bytes(fontPtr, fontLen)
	out := mem.Bytes(outPtr, outMax)
	if font == nil || out == nil {
		tracer().Errorf("font or output buffer outside of heap")
		return 0
	}
	res, err := txt2svg.Generate(text, font, string(color), out, txt2svg.WithNumeric(fpmath.Approx{}))
	if err != nil {
		return 0
	}
	return uint32(res.Written)
}
