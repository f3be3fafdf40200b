/*
Package fpmath provides the small set of numeric primitives a glyph outline
extractor needs: absolute value, integer floor and ceiling, square root, logarithm,
exponential, power, modulo, cosine and arc cosine.

Two implementations exist. Hosted forwards to github.com/chewxy/math32 and is what a
regular Go program should use. Approx contains freestanding approximations for
environments without a math library; they are accurate enough for visual resolution
work, but are not general purpose implementations. Both satisfy Numeric, and clients
receive a Numeric rather than calling any of them directly.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fpmath

import (
	"github.com/chewxy/math32"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'txt2svg.fpmath'
func tracer() tracing.Trace {
	return tracing.Select("txt2svg.fpmath")
}

// Numeric is the set of float32 primitives available to outline code.
type Numeric interface {
	Abs(x float32) float32
	IFloor(x float32) int
	ICeil(x float32) int
	Sqrt(x float32) float32
	Log(x float32) float32
	Exp(x float32) float32
	Pow(x, y float32) float32
	Mod(x, y float32) float32
	Cos(x float32) float32
	Acos(x float32) float32
}

// Pi as a float32.
const Pi = float32(3.14159265359)

// Hosted implements Numeric with accurate functions from github.com/chewxy/math32.
type Hosted struct{}

var _ Numeric = Hosted{}

func (Hosted) Abs(x float32) float32    { return math32.Abs(x) }
func (Hosted) IFloor(x float32) int     { return int(math32.Floor(x)) }
func (Hosted) ICeil(x float32) int      { return int(math32.Ceil(x)) }
func (Hosted) Sqrt(x float32) float32   { return math32.Sqrt(x) }
func (Hosted) Log(x float32) float32    { return math32.Log(x) }
func (Hosted) Exp(x float32) float32    { return math32.Exp(x) }
func (Hosted) Pow(x, y float32) float32 { return math32.Pow(x, y) }
func (Hosted) Mod(x, y float32) float32 { return math32.Mod(x, y) }
func (Hosted) Cos(x float32) float32    { return math32.Cos(x) }
func (Hosted) Acos(x float32) float32   { return math32.Acos(x) }

// Default returns the implementation to use if a client did not select one.
func Default() Numeric {
	return Hosted{}
}
