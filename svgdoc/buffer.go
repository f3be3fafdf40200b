package svgdoc

// HeaderSize is the number of bytes at the start of an output buffer reserved for
// the document's root element.
const HeaderSize = 256

// Safety margins for path commands. A command is written only if the scratch
// region has more than max(margin, len(command)) bytes left.
const (
	MarginOpen  = 20
	MarginMove  = 50
	MarginLine  = 50
	MarginQuad  = 100
	MarginCube  = 150
	MarginClose = 10
)

// Padding is added around the bounding box of the path data, on every side.
const Padding = 10

const (
	svgOpen  = "<svg xmlns='http://www.w3.org/2000/svg'"
	svgClose = "</g></svg>"
)

// Result describes the outcome of assembling a document.
type Result struct {
	Written   int  // bytes written, excluding the NUL terminator
	Needed    int  // buffer capacity needed for the complete document, including the NUL
	Dropped   int  // number of path commands which did not fit
	Truncated bool // the document in the buffer is incomplete
}

// ViewBox is the visible area of a document, in device units.
// W and H are used as the document's width and height as well.
type ViewBox struct {
	X, Y, W, H int
}

// NewViewBox creates a view box for a bounding box, adding Padding on every side.
func NewViewBox(minX, minY, maxX, maxY float32) ViewBox {
	return ViewBox{
		X: int(minX) - Padding,
		Y: int(minY) - Padding,
		W: int(maxX-minX) + 2*Padding,
		H: int(maxY-minY) + 2*Padding,
	}
}

// EmptyViewBox is the view box for a document without any path data.
func EmptyViewBox() ViewBox {
	return ViewBox{X: -Padding, Y: -Padding, W: 2 * Padding, H: 2 * Padding}
}

// Buffer writes path data into a caller-provided byte slice. It never writes
// outside of that slice and never grows it.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	Fill    string // fill color for paths
	out     []byte
	scratch []byte // out[HeaderSize:]
	off     int    // write position in scratch
	voff    int    // write position if no command had been dropped
	need    int    // scratch capacity needed to drop nothing
	dropped int
	cmd     []byte
}

// NewBuffer creates a Buffer writing to out. out is borrowed until Finish returns.
func NewBuffer(out []byte, fill string) *Buffer {
	b := &Buffer{cmd: make([]byte, 0, 128)}
	b.Reset(out, fill)
	return b
}

// Reset prepares b for a new document in out.
func (b *Buffer) Reset(out []byte, fill string) {
	b.out = out
	b.Fill = fill
	b.scratch = nil
	if len(out) > HeaderSize {
		b.scratch = out[HeaderSize:]
	}
	b.off, b.voff, b.need, b.dropped = 0, 0, 0, 0
}

// Cap returns the capacity of the output buffer.
func (b *Buffer) Cap() int {
	return len(b.out)
}

// Dropped returns the number of commands dropped so far.
func (b *Buffer) Dropped() int {
	return b.dropped
}

// commit copies the staged command into scratch space, if it fits.
func (b *Buffer) commit(margin int) bool {
	n := len(b.cmd)
	m := max(margin, n)
	b.need = max(b.need, b.voff+m+1)
	b.voff += n
	if b.off+m >= len(b.scratch) {
		b.dropped++
		return false
	}
	b.off += copy(b.scratch[b.off:], b.cmd)
	return true
}

func (b *Buffer) point(x, y float32) {
	b.cmd = AppendFloat(b.cmd, x)
	b.cmd = append(b.cmd, ' ')
	b.cmd = AppendFloat(b.cmd, y)
}

// BeginPath opens a path element filled with b.Fill.
func (b *Buffer) BeginPath() bool {
	b.cmd = append(b.cmd[:0], "<path fill='"...)
	b.cmd = append(b.cmd, b.Fill...)
	b.cmd = append(b.cmd, "' d='"...)
	return b.commit(MarginOpen)
}

// MoveTo writes an absolute move-to command.
func (b *Buffer) MoveTo(x, y float32) bool {
	b.cmd = append(b.cmd[:0], 'M')
	b.point(x, y)
	return b.commit(MarginMove)
}

// LineTo writes an absolute line-to command.
func (b *Buffer) LineTo(x, y float32) bool {
	b.cmd = append(b.cmd[:0], 'L')
	b.point(x, y)
	return b.commit(MarginLine)
}

// QuadTo writes an absolute quadratic Bézier command.
func (b *Buffer) QuadTo(cx, cy, x, y float32) bool {
	b.cmd = append(b.cmd[:0], 'Q')
	b.point(cx, cy)
	b.cmd = append(b.cmd, ' ')
	b.point(x, y)
	return b.commit(MarginQuad)
}

// CubeTo writes an absolute cubic Bézier command.
func (b *Buffer) CubeTo(cx0, cy0, cx1, cy1, x, y float32) bool {
	b.cmd = append(b.cmd[:0], 'C')
	b.point(cx0, cy0)
	b.cmd = append(b.cmd, ' ')
	b.point(cx1, cy1)
	b.cmd = append(b.cmd, ' ')
	b.point(x, y)
	return b.commit(MarginCube)
}

// ClosePath closes the current path element.
func (b *Buffer) ClosePath() bool {
	b.cmd = append(b.cmd[:0], "'/>"...)
	return b.commit(MarginClose)
}

func (b *Buffer) header(vb ViewBox) []byte {
	h := append(b.cmd[:0], svgOpen...)
	h = append(h, " width='"...)
	h = AppendInt(h, vb.W)
	h = append(h, "' height='"...)
	h = AppendInt(h, vb.H)
	h = append(h, "' viewBox='"...)
	h = AppendInt(h, vb.X)
	h = append(h, ' ')
	h = AppendInt(h, vb.Y)
	h = append(h, ' ')
	h = AppendInt(h, vb.W)
	h = append(h, ' ')
	h = AppendInt(h, vb.H)
	h = append(h, "'><g>"...)
	b.cmd = h
	return h
}

// Finish writes the root element for view box vb, moves the path data behind it
// and terminates the document. The document is out[:Result.Written], followed by
// a NUL byte if there is room for it.
func (b *Buffer) Finish(vb ViewBox) Result {
	hdr := b.header(vb)
	res := Result{Dropped: b.dropped}
	res.Needed = max(HeaderSize+b.need, len(hdr)+b.voff+len(svgClose)+1)
	w := copy(b.out, hdr)
	res.Truncated = b.dropped > 0 || w < len(hdr)
	if w < len(b.out) {
		// regions may overlap, copy moves correctly
		n := copy(b.out[w:len(b.out)-1], b.scratch[:b.off])
		res.Truncated = res.Truncated || n < b.off
		w += n
	}
	if w+len(svgClose) < len(b.out) {
		w += copy(b.out[w:], svgClose)
	} else {
		res.Truncated = true
	}
	if w < len(b.out) {
		b.out[w] = 0
	}
	res.Written = w
	if res.Truncated {
		tracer().Infof("SVG truncated: %d bytes written, %d needed, %d commands dropped",
			res.Written, res.Needed, res.Dropped)
	}
	return res
}
