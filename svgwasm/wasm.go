//go:build wasip1

package main

import (
	"unsafe"

	"github.com/npillmayer/txt2svg/arena"
)

var heap [heapSize]byte

var mem = arena.New(heap[:], uint32(uintptr(unsafe.Pointer(&heap[0]))))

//go:wasmexport wasm_reset_heap
func wasmResetHeap() {
	mem.Reset()
}

//go:wasmexport wasm_alloc
func wasmAlloc(size uint32) uint32 {
	return mem.Allocate(size)
}

//go:wasmexport wasm_generate_svg
func wasmGenerateSVG(textPtr, fontPtr, fontLen, colorPtr, outPtr, outMax uint32) uint32 {
	return generate(mem, textPtr, fontPtr, fontLen, colorPtr, outPtr, outMax)
}

func main() {}
