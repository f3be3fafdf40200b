package svgdoc

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendInt(t *testing.T) {
	for _, tc := range []struct {
		v    int
		want string
	}{
		{0, "0"}, {7, "7"}, {-42, "-42"}, {1234567, "1234567"}, {-10, "-10"},
	} {
		assert.Equal(t, tc.want, string(AppendInt(nil, tc.v)))
	}
	assert.Equal(t, "x=12", string(AppendInt([]byte("x="), 12)))
}

func TestAppendFloat(t *testing.T) {
	for _, tc := range []struct {
		f    float32
		want string
	}{
		{12.0, "12.000"},
		{-3.5, "-3.500"},
		{0.0, "0.000"},
		{1.25, "1.250"},
		{-12.25, "-12.250"},
		{-0.5, "-0.500"},
		{0.05, "0.050"},
		{100.125, "100.125"},
	} {
		assert.Equal(t, tc.want, string(AppendFloat(nil, tc.f)), "formatting %v", tc.f)
	}
}

func TestViewBox(t *testing.T) {
	vb := NewViewBox(10.5, 3.2, 10.7, 3.3)
	assert.Equal(t, ViewBox{X: 0, Y: -7, W: 20, H: 20}, vb)
	assert.Equal(t, ViewBox{X: -10, Y: -10, W: 20, H: 20}, EmptyViewBox())
}

// writeTestPath writes one path and returns the number of commands issued.
func writeTestPath(b *Buffer) int {
	cmds := []func() bool{
		b.BeginPath,
		func() bool { return b.MoveTo(10, 20) },
		func() bool { return b.LineTo(30.5, -0.25) },
		func() bool { return b.QuadTo(1, 2, 3, 4) },
		b.ClosePath,
	}
	for _, cmd := range cmds {
		cmd()
	}
	return len(cmds)
}

const testDoc = "<svg xmlns='http://www.w3.org/2000/svg' width='40' height='40' viewBox='0 -10 40 40'><g>" +
	"<path fill='#ff0000' d='M10.000 20.000L30.500 -0.250Q1.000 2.000 3.000 4.000'/></g></svg>"

func TestDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "txt2svg.svgdoc")
	defer teardown()
	//
	out := make([]byte, 4096)
	b := NewBuffer(out, "#ff0000")
	writeTestPath(b)
	res := b.Finish(NewViewBox(10, -0.25, 30.5, 20))
	assert.False(t, res.Truncated)
	assert.Equal(t, 0, res.Dropped)
	require.Equal(t, len(testDoc), res.Written)
	assert.Equal(t, testDoc, string(out[:res.Written]))
	assert.Equal(t, byte(0), out[res.Written], "document must be NUL terminated")
	assert.NoError(t, Check(out[:res.Written+1]))
}

func TestCubicCommand(t *testing.T) {
	b := NewBuffer(make([]byte, 1024), "red")
	b.BeginPath()
	b.MoveTo(0, 0)
	b.CubeTo(1, 2, 3, 4, 5, 6)
	b.ClosePath()
	res := b.Finish(NewViewBox(0, 0, 6, 6))
	doc := string(b.out[:res.Written])
	assert.Contains(t, doc, "M0.000 0.000C1.000 2.000 3.000 4.000 5.000 6.000'/>")
	assert.NoError(t, Check(b.out[:res.Written]))
}

func TestExactCapacity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "txt2svg.svgdoc")
	defer teardown()
	//
	vb := NewViewBox(10, -0.25, 30.5, 20)
	sizing := NewBuffer(make([]byte, HeaderSize), "#ff0000")
	writeTestPath(sizing)
	res := sizing.Finish(vb)
	require.True(t, res.Truncated, "header-only buffer cannot hold path data")
	needed := res.Needed
	//
	out := make([]byte, needed)
	b := NewBuffer(out, "#ff0000")
	writeTestPath(b)
	res = b.Finish(vb)
	assert.False(t, res.Truncated)
	assert.Equal(t, 0, res.Dropped)
	assert.Equal(t, needed, res.Needed)
	assert.LessOrEqual(t, res.Written, len(out))
	assert.Equal(t, testDoc, string(out[:res.Written]))
	assert.NoError(t, Check(out[:res.Written]))
	//
	out = make([]byte, needed-1)
	b.Reset(out, "#ff0000")
	writeTestPath(b)
	res = b.Finish(vb)
	assert.True(t, res.Truncated)
	assert.GreaterOrEqual(t, res.Dropped, 1, "at least one command should have been dropped")
	assert.True(t, strings.HasPrefix(string(out[:res.Written]), "<svg xmlns='http://www.w3.org/2000/svg' width='40'"))
}

func TestTinyBuffers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "txt2svg.svgdoc")
	defer teardown()
	//
	for _, size := range []int{0, 1, 16, HeaderSize - 1, HeaderSize, HeaderSize + 1} {
		out := make([]byte, size)
		b := NewBuffer(out, "#000")
		n := writeTestPath(b)
		res := b.Finish(EmptyViewBox())
		assert.True(t, res.Truncated, "size %d", size)
		assert.LessOrEqual(t, res.Written, size)
		assert.Equal(t, n, res.Dropped, "every command is dropped at size %d", size)
	}
}

func TestEmptyDocument(t *testing.T) {
	out := make([]byte, HeaderSize)
	res := NewBuffer(out, "#000").Finish(EmptyViewBox())
	assert.False(t, res.Truncated)
	doc := string(out[:res.Written])
	assert.Equal(t, "<svg xmlns='http://www.w3.org/2000/svg' width='20' height='20' viewBox='-10 -10 20 20'><g></g></svg>", doc)
	assert.NoError(t, Check(out[:res.Written]))
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check([]byte(testDoc)))
	for _, doc := range []string{
		"<svg><g></svg>",
		"<svg><g>",
		"<html></html>",
		"<svg></svg><svg></svg>",
		"",
	} {
		assert.ErrorIs(t, Check([]byte(doc)), ErrMalformed, "document %q", doc)
	}
}
