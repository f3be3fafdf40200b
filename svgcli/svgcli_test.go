package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/txt2svg/config"
	"github.com/npillmayer/txt2svg/internal/fontload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIntp(t *testing.T) *Intp {
	intp := &Intp{conf: config.Default(), fonts: fontload.NewRegistry()}
	require.NoError(t, intp.selectFont("gomono"))
	require.NoError(t, intp.setColor("000000"))
	return intp
}

func TestRenderPNG(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "txt2svg.cli")
	defer teardown()
	//
	intp := testIntp(t)
	img, err := renderPNG("H", intp.font, intp.color, intp.conf.Render)
	require.NoError(t, err)
	b := img.Bounds()
	assert.GreaterOrEqual(t, b.Dx(), 20)
	assert.GreaterOrEqual(t, b.Dy(), 20)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(0, 0), "padding stays white")
	dark := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).R < 128 {
				dark++
			}
		}
	}
	assert.Greater(t, dark, 50, "glyph should have been painted")
}

func TestRenderToFiles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "txt2svg.cli")
	defer teardown()
	//
	dir := t.TempDir()
	intp := testIntp(t)
	intp.outfile = filepath.Join(dir, "out.svg")
	intp.pngfile = filepath.Join(dir, "preview", "out.png")
	require.NoError(t, intp.render("AB"))
	svg, err := os.ReadFile(intp.outfile)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(svg), "<path "))
	_, err = os.Stat(intp.pngfile)
	assert.NoError(t, err)
}

type closeFailure struct {
	bytes.Buffer
	closed bool
}

func (c *closeFailure) Close() error {
	c.closed = true
	return errors.New("disk full")
}

func TestEncodePNGReportsCloseError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "txt2svg.cli")
	defer teardown()
	//
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	w := &closeFailure{}
	err := encodePNG(w, img)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.True(t, w.closed)
	assert.Greater(t, w.Len(), 0, "image has been encoded before closing")
	//
	w = &closeFailure{}
	err = encodePNG(w, image.NewRGBA(image.Rectangle{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot encode png")
	assert.True(t, w.closed, "writer is closed on encoding errors, too")
}

func TestCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "txt2svg.cli")
	defer teardown()
	//
	intp := testIntp(t)
	err, quit := intp.execute([]string{"font", "lmroman"})
	assert.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, "lmroman", intp.fontkey)
	err, _ = intp.execute([]string{"font", "no-such-font"})
	assert.ErrorIs(t, err, fontload.ErrUnknownFont)
	assert.Equal(t, "lmroman", intp.fontkey, "failed switch keeps font")
	err, _ = intp.execute([]string{"color", "FF8800"})
	assert.NoError(t, err)
	assert.Equal(t, "#ff8800", intp.color)
	err, _ = intp.execute([]string{"color"})
	assert.ErrorIs(t, err, errArgMissing)
	err, _ = intp.execute([]string{"bogus"})
	assert.Error(t, err)
	_, quit = intp.execute([]string{"quit"})
	assert.True(t, quit)
}
