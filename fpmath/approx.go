package fpmath

// Approx implements Numeric with freestanding approximations. It has no dependencies
// beyond basic float32 arithmetic.
type Approx struct{}

var _ Numeric = Approx{}

// SqrtEpsilon is the difference between successive Newton estimates below which
// Sqrt considers the iteration converged.
const SqrtEpsilon = float32(0.0001)

// MaxSqrtIterations caps the Newton iteration of Sqrt. For large arguments the
// spacing of float32 values exceeds SqrtEpsilon and the estimates may oscillate
// between two neighbours forever.
const MaxSqrtIterations = 128

// Abs returns |x|.
func (Approx) Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// IFloor truncates x towards zero and adjusts downwards for negative fractions.
func (Approx) IFloor(x float32) int {
	i := int(x)
	if x < float32(i) {
		return i - 1
	}
	return i
}

// ICeil truncates x towards zero and adjusts upwards for positive fractions.
func (Approx) ICeil(x float32) int {
	i := int(x)
	if x > float32(i) {
		return i + 1
	}
	return i
}

// Sqrt approximates the square root of x by Newton-Raphson iteration.
// Non-positive arguments yield 0.
func (n Approx) Sqrt(x float32) float32 {
	r, _ := n.SqrtConverged(x)
	return r
}

// SqrtConverged is Sqrt, additionally reporting whether the iteration converged
// before hitting MaxSqrtIterations.
func (n Approx) SqrtConverged(x float32) (float32, bool) {
	if x <= 0 {
		return 0, true
	}
	guess, prev := x, float32(0)
	for i := 0; i < MaxSqrtIterations; i++ {
		if n.Abs(guess-prev) <= SqrtEpsilon {
			return guess, true
		}
		prev = guess
		guess = 0.5 * (guess + x/guess)
	}
	tracer().Debugf("sqrt(%g) did not converge, using %g", x, guess)
	return guess, false
}

// Log approximates the natural logarithm with 2y(1 + y²/3 + y⁴/5), y = (x-1)/(x+1).
// This is only usable for arguments close to 1. Non-positive arguments yield 0.
func (Approx) Log(x float32) float32 {
	if x <= 0 || x == 1 {
		return 0
	}
	y := (x - 1) / (x + 1)
	y2 := y * y
	return 2 * y * (1 + y2/3 + y2*y2/5)
}

// Exp approximates e^x by the first ten terms of its Taylor series.
// Negative arguments are reflected.
func (n Approx) Exp(x float32) float32 {
	if x == 0 {
		return 1
	}
	if x < 0 {
		return 1 / n.Exp(-x)
	}
	result, term := float32(1), float32(1)
	for i := 1; i <= 10; i++ {
		term *= x / float32(i)
		result += term
	}
	return result
}

// Pow is exact for non-negative integer exponents, uses exp(y·log(x)) for fractional
// exponents and the reciprocal for negative ones.
func (n Approx) Pow(x, y float32) float32 {
	switch {
	case y == 0:
		return 1
	case y == 1:
		return x
	case y < 0:
		return 1 / n.Pow(x, -y)
	}
	if iy := int(y); float32(iy) == y {
		result := float32(1)
		for i := 0; i < iy; i++ {
			result *= x
		}
		return result
	}
	return n.Exp(y * n.Log(x))
}

// Mod returns x - y·trunc(x/y). The result has the sign of x.
// A divisor of 0 yields 0.
func (n Approx) Mod(x, y float32) float32 {
	if y == 0 {
		return 0
	}
	q := x / y
	if n.Abs(q) < 1<<23 { // beyond, float32 quotients carry no fraction
		q = float32(int(q))
	}
	return x - q*y
}

// maxCosReductions bounds the range reduction passes of Cos. Each pass shrinks
// a huge argument by at least the 23 bits of float32 precision.
const maxCosReductions = 8

// Cos reduces x to [-π, π] and evaluates a 6th-order Taylor polynomial.
func (n Approx) Cos(x float32) float32 {
	if x-x != 0 { // ±Inf or NaN
		return x - x
	}
	for i := 0; i < maxCosReductions && n.Abs(x) > 2*Pi; i++ {
		x = n.Mod(x, 2*Pi)
	}
	if x > Pi {
		x -= 2 * Pi
	} else if x < -Pi {
		x += 2 * Pi
	}
	x2 := x * x
	x4 := x2 * x2
	x6 := x4 * x2
	return 1 - x2/2 + x4/24 - x6/720
}

// Acos clamps x to [-1, 1]. For |x| ≤ 0.5 it uses π/2 - x - x³/6, otherwise
// sqrt(1-x)·(π/2 + x/2).
func (n Approx) Acos(x float32) float32 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	if n.Abs(x) <= 0.5 {
		return Pi/2 - x - x*x*x/6
	}
	return n.Sqrt(1-x) * (Pi/2 + 0.5*x)
}
