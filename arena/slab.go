package arena

// Slab is a typed bump allocator. It serves sub-slices of a pre-allocated slice of T
// and reclaims them only in bulk, with Reset.
//
// A Slab never fails: if a request does not fit into the current chunk, a new chunk of
// at least twice the size is started. Slices handed out earlier stay valid until Reset.
type Slab[T any] struct {
	chunk []T
	next  int
	total int // items allocated since last reset
	spill int // number of chunks started since last reset
}

// NewSlab creates a slab with room for n items in its first chunk.
func NewSlab[T any](n int) *Slab[T] {
	s := &Slab[T]{}
	s.reserve(n)
	return s
}

func (s *Slab[T]) reserve(n int) {
	if n < 16 {
		n = 16
	}
	s.chunk = make([]T, n)
	s.next = 0
}

// Alloc returns a zeroed slice of length n. Its capacity is capped at n, so appending to
// it will never overwrite neighbouring allocations.
func (s *Slab[T]) Alloc(n int) []T {
	if n <= 0 {
		return nil
	}
	if s.next+n > len(s.chunk) {
		size := 2 * len(s.chunk)
		if size < n {
			size = 2 * n
		}
		s.reserve(size)
		s.spill++
	}
	p := s.chunk[s.next : s.next+n : s.next+n]
	clear(p)
	s.next += n
	s.total += n
	return p
}

// Reset discards all allocations. If the slab had to spill into new chunks since the
// last reset, the current (largest) chunk is kept for further use.
func (s *Slab[T]) Reset() {
	if s.spill > 0 {
		tracer().Debugf("slab reset after %d spills, %d items", s.spill, s.total)
	}
	s.next = 0
	s.total = 0
	s.spill = 0
}

// Len returns the number of items allocated since the last reset.
func (s *Slab[T]) Len() int {
	return s.total
}
