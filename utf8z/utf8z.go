/*
Package utf8z decodes NUL-terminated UTF-8 text, one code-point at a time.

The decoder is lenient by intention. It never reports an error and never stops
early: a byte which cannot start a UTF-8 sequence is taken as a code-point of its
own numeric value. This mirrors what a minimal C decoder in a freestanding
environment does, and differs from unicode/utf8, which maps such bytes to
utf8.RuneError. To keep the fallback observable, every decode step returns a Status.

Input ends at the first NUL byte or at the end of the slice, whichever comes first.
*/
package utf8z

// Status tells how a code-point has been decoded.
type Status uint8

const (
	StatusOK       Status = iota // a well-formed sequence of 1 to 4 bytes
	StatusFallback               // invalid lead byte or truncated sequence; rune is the byte's value
	StatusEnd                    // NUL terminator or end of input; no code-point produced
)

func (st Status) String() string {
	switch st {
	case StatusOK:
		return "ok"
	case StatusFallback:
		return "fallback"
	case StatusEnd:
		return "end"
	}
	return "unknown"
}

// SequenceLength classifies a lead byte by its bit prefix. It returns 0 for bytes
// which cannot start a sequence (continuation bytes and 0xF8…0xFF).
func SequenceLength(lead byte) int {
	switch {
	case lead&0x80 == 0x00:
		return 1
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	}
	return 0
}

// Decode decodes the code-point starting at s[i] and returns it together with the
// position of the next code-point.
//
// Continuation bytes are not checked for their 10xxxxxx prefix, only their payload
// bits are used. If a sequence is cut short by a NUL byte or the end of s, the lead
// byte is returned on its own with StatusFallback.
func Decode(s []byte, i int) (r rune, next int, st Status) {
	if i < 0 || i >= len(s) || s[i] == 0 {
		return 0, i, StatusEnd
	}
	lead := s[i]
	n := SequenceLength(lead)
	if n == 0 {
		return rune(lead), i + 1, StatusFallback
	}
	if n == 1 {
		return rune(lead), i + 1, StatusOK
	}
	if i+n > len(s) {
		return rune(lead), i + 1, StatusFallback
	}
	switch n {
	case 2:
		r = rune(lead & 0x1F)
	case 3:
		r = rune(lead & 0x0F)
	case 4:
		r = rune(lead & 0x07)
	}
	for k := 1; k < n; k++ {
		c := s[i+k]
		if c == 0 {
			return rune(lead), i + 1, StatusFallback
		}
		r = r<<6 | rune(c&0x3F)
	}
	return r, i + n, StatusOK
}

// Iterator walks NUL-terminated UTF-8 input. The zero value is not usable, create
// iterators with NewIterator.
type Iterator struct {
	s         []byte
	pos       int
	fallbacks int
}

// NewIterator creates an iterator positioned at the start of s.
func NewIterator(s []byte) *Iterator {
	return &Iterator{s: s}
}

// Next decodes the next code-point. It returns false at the end of the input.
func (it *Iterator) Next() (rune, bool) {
	r, next, st := Decode(it.s, it.pos)
	if st == StatusEnd {
		return 0, false
	}
	if st == StatusFallback {
		it.fallbacks++
	}
	it.pos = next
	return r, true
}

// Peek decodes the next code-point without advancing.
func (it *Iterator) Peek() (rune, bool) {
	r, _, st := Decode(it.s, it.pos)
	return r, st != StatusEnd
}

// Pos returns the byte position of the next code-point.
func (it *Iterator) Pos() int {
	return it.pos
}

// Fallbacks returns how many bytes have been decoded by the single-byte fallback.
func (it *Iterator) Fallbacks() int {
	return it.fallbacks
}
