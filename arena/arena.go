package arena

// Arena is a linear allocator over a byte region. Offsets handed out by an arena are
// addresses: they start at the arena's base, which need not be 0. Within a WebAssembly
// module the base is the address of the backing array in linear memory, so offsets may
// be passed to the host as pointers.
//
// A freshly created arena has a cursor of 0 and must be primed by Reset before first use.
type Arena struct {
	mem    []byte
	base   uint32
	cursor uint32
	peak   uint32
}

// New creates an arena on top of mem, with offsets starting at base.
// The arena does not copy mem and never grows it.
func New(mem []byte, base uint32) *Arena {
	return &Arena{mem: mem, base: base}
}

// NewSized creates an arena with a fresh backing region of size bytes and base 0.
func NewSized(size int) *Arena {
	return New(make([]byte, size), 0)
}

// Reset sets the cursor to the arena base, discarding every allocation at once.
func (a *Arena) Reset() {
	if a.cursor > a.peak {
		a.peak = a.cursor
	}
	a.cursor = a.base
}

// Allocate returns the current cursor and advances it by size bytes.
//
// Allocate never fails and does not check the request against the capacity of the
// backing region. Clients which care may ask Overflowed after a series of allocations.
func (a *Arena) Allocate(size uint32) uint32 {
	p := a.cursor
	a.cursor += size
	if a.cursor > a.peak {
		a.peak = a.cursor
	}
	if a.Overflowed() && p <= a.limit() {
		tracer().Errorf("arena overflow: cursor %d beyond limit %d", a.cursor, a.limit())
	}
	return p
}

// Base returns the address of the first byte of the arena.
func (a *Arena) Base() uint32 {
	return a.base
}

// Cursor returns the address the next allocation will start at.
func (a *Arena) Cursor() uint32 {
	return a.cursor
}

// Used returns the number of bytes allocated since the last reset.
// An arena which has never been reset reports 0.
func (a *Arena) Used() uint32 {
	if a.cursor < a.base {
		return 0
	}
	return a.cursor - a.base
}

// Peak returns the high-water mark of the cursor, relative to the base.
// It survives calls to Reset.
func (a *Arena) Peak() uint32 {
	if a.peak < a.base {
		return 0
	}
	return a.peak - a.base
}

// Cap returns the size of the backing region in bytes.
func (a *Arena) Cap() int {
	return len(a.mem)
}

// Overflowed reports whether allocations have run past the end of the backing region.
func (a *Arena) Overflowed() bool {
	return a.cursor > a.limit()
}

func (a *Arena) limit() uint32 {
	return a.base + uint32(len(a.mem))
}

// Bytes returns the region [addr, addr+size) as a slice into the backing memory.
// If the region is not completely inside the backing memory, Bytes returns nil.
func (a *Arena) Bytes(addr, size uint32) []byte {
	if addr < a.base {
		return nil
	}
	from := uint64(addr - a.base)
	to := from + uint64(size)
	if to > uint64(len(a.mem)) {
		return nil
	}
	return a.mem[from:to:to]
}

// CString returns the NUL-terminated byte sequence starting at addr, without the
// terminator. If no terminator is found before the end of the backing memory, the
// rest of the memory is returned.
func (a *Arena) CString(addr uint32) []byte {
	if addr < a.base || uint64(addr-a.base) >= uint64(len(a.mem)) {
		return nil
	}
	s := a.mem[addr-a.base:]
	for i, c := range s {
		if c == 0 {
			return s[:i:i]
		}
	}
	return s
}
