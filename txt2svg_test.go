package txt2svg

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/txt2svg/face"
	"github.com/npillmayer/txt2svg/fpmath"
	"github.com/npillmayer/txt2svg/svgdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

var headerRE = regexp.MustCompile(`^<svg xmlns='http://www.w3.org/2000/svg' width='(-?\d+)' height='(-?\d+)' viewBox='(-?\d+) (-?\d+) (-?\d+) (-?\d+)'><g>`)

func header(t *testing.T, doc []byte) (w, h int) {
	m := headerRE.FindSubmatch(doc)
	require.NotNil(t, m, "document has no valid header: %.80q", doc)
	w, _ = strconv.Atoi(string(m[1]))
	h, _ = strconv.Atoi(string(m[2]))
	return
}

func TestGenerateAB(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "txt2svg")
	defer teardown()
	//
	out := make([]byte, 32*1024)
	res, err := Generate([]byte("AB\x00ignored"), gomono.TTF, "#ffffff", out)
	require.NoError(t, err)
	assert.False(t, res.Truncated)
	doc := out[:res.Written]
	assert.Equal(t, byte(0), out[res.Written])
	assert.Equal(t, 2, strings.Count(string(doc), "<path fill='#ffffff' d='M"))
	assert.True(t, strings.HasSuffix(string(doc), "'/></g></svg>"))
	assert.NoError(t, svgdoc.Check(doc))
	w, h := header(t, doc)
	assert.Greater(t, w, 20)
	assert.Greater(t, h, 20)
}

func TestGenerateBadFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "txt2svg")
	defer teardown()
	//
	out := make([]byte, 1024)
	res, err := Generate([]byte("A"), []byte("no font"), "#000", out)
	assert.ErrorIs(t, err, ErrFontInit)
	assert.Equal(t, 0, res.Written)
	assert.Equal(t, make([]byte, 1024), out, "nothing must be written")
	//
	res, err = Generate([]byte("A"), gomono.TTF, "#000", out, WithBackend("no-such-backend"))
	assert.ErrorIs(t, err, ErrFontInit)
	assert.ErrorIs(t, err, face.ErrNoParser)
	assert.Equal(t, 0, res.Written)
	assert.Equal(t, make([]byte, 1024), out, "nothing must be written")
}

func TestMinimalDimensions(t *testing.T) {
	f, err := Parse(goregular.TTF)
	require.NoError(t, err)
	for _, text := range []string{"", " ", ".", "i", "W"} {
		doc, err := Render(text, f, "#000000")
		require.NoError(t, err)
		w, h := header(t, doc)
		assert.GreaterOrEqual(t, w, 20, "width for %q", text)
		assert.GreaterOrEqual(t, h, 20, "height for %q", text)
		assert.NoError(t, svgdoc.Check(doc))
	}
}

func TestBufferOneByteShort(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "txt2svg")
	defer teardown()
	//
	f, err := Parse(gomono.TTF)
	require.NoError(t, err)
	sizing, _ := Write([]byte("AB"), f, "#000000", make([]byte, 64))
	require.True(t, sizing.Truncated)
	//
	out := make([]byte, sizing.Needed)
	res, _ := Write([]byte("AB"), f, "#000000", out)
	assert.False(t, res.Truncated)
	assert.LessOrEqual(t, res.Written, len(out))
	assert.NoError(t, svgdoc.Check(out[:res.Written]))
	//
	out = make([]byte, sizing.Needed-1)
	res, _ = Write([]byte("AB"), f, "#000000", out)
	assert.True(t, res.Truncated)
	assert.GreaterOrEqual(t, res.Dropped, 1)
	_, _ = header(t, out[:res.Written])
}

func TestRenderRetries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "txt2svg")
	defer teardown()
	//
	f, err := Parse(goregular.TTF)
	require.NoError(t, err)
	small, err := Render("Hello World", f, "#000000", WithBufferSize(300))
	require.NoError(t, err)
	large, err := Render("Hello World", f, "#000000")
	require.NoError(t, err)
	assert.Equal(t, string(large), string(small))
	assert.Equal(t, 11, strings.Count(string(large), "<path "), "one path per glyph, the space included")
}

func TestRenderBackendsAndCurves(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "txt2svg")
	defer teardown()
	//
	for _, backend := range []string{"sfnt", "gotext"} {
		f, err := Parse(lmroman10regular.TTF, WithBackend(backend))
		require.NoError(t, err, "backend %s", backend)
		doc, err := Render("og", f, "#336699")
		require.NoError(t, err)
		assert.NoError(t, svgdoc.Check(doc))
		flat, err := Render("og", f, "#336699", WithFlatness(0.5), WithNumeric(fpmath.Approx{}))
		require.NoError(t, err)
		assert.NotContains(t, string(flat), "Q", "flattened output has no quadratic curves")
		assert.NotContains(t, string(flat), "C", "flattened output has no cubic curves")
		assert.NoError(t, svgdoc.Check(flat))
	}
}

func TestPixelHeight(t *testing.T) {
	f, err := Parse(gomono.TTF)
	require.NoError(t, err)
	doc, err := Render("M", f, "#000", WithPixelHeight(128))
	require.NoError(t, err)
	_, h128 := header(t, doc)
	doc, err = Render("M", f, "#000")
	require.NoError(t, err)
	_, h64 := header(t, doc)
	assert.InDelta(t, 2*(h64-20), h128-20, 2)
}

func TestNormalizeColor(t *testing.T) {
	for in, want := range map[string]string{
		"#FFFFFF":  "#ffffff",
		"000000":   "#000000",
		"fff":      "#ffffff",
		" #336699": "#336699",
	} {
		c, err := NormalizeColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, c)
	}
	for _, in := range []string{"red", "", "#zzzzzz"} {
		_, err := NormalizeColor(in)
		assert.ErrorIs(t, err, ErrInvalidColor, in)
	}
}
