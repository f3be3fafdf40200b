package gotextface

import (
	"testing"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-fonts/latin-modern/lmsans10regular"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/txt2svg/arena"
	"github.com/npillmayer/txt2svg/face"
	"github.com/npillmayer/txt2svg/face/sfntface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "txt2svg.face")
	defer teardown()
	//
	_, err := Parse(nil)
	assert.ErrorIs(t, err, face.ErrEmptyFontData)
	_, err = Parse([]byte("not a font at all"))
	assert.Error(t, err)
	f, err := Parse(goregular.TTF)
	require.NoError(t, err)
	vm := f.VMetrics()
	assert.Greater(t, vm.Ascent, 0)
	assert.Less(t, vm.Descent, 0)
	assert.InDelta(t, 64, f.ScaleForPixelHeight(64)*float32(vm.Ascent-vm.Descent), 0.01)
}

func TestRegistered(t *testing.T) {
	p, err := face.ParserFor(Name)
	require.NoError(t, err)
	f, err := p.Parse(goregular.TTF)
	require.NoError(t, err)
	assert.IsType(t, &Face{}, f)
}

// Both backends must see the same font the same way.
func TestAgreesWithSFNT(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "txt2svg.face")
	defer teardown()
	//
	gt, err := Parse(goregular.TTF)
	require.NoError(t, err)
	sf, err := sfntface.Parse(goregular.TTF)
	require.NoError(t, err)
	slab := arena.NewSlab[face.Segment](512)
	for _, r := range "Hag" {
		gid := gt.GlyphIndex(r)
		require.NotEqual(t, face.NOTDEF, gid, "no glyph for %q", r)
		assert.Equal(t, sf.GlyphIndex(r), gid)
		assert.Equal(t, sf.HMetrics(gid).Advance, gt.HMetrics(gid).Advance)
		o1, err := gt.GlyphOutline(gid, slab)
		require.NoError(t, err)
		o2, err := sf.GlyphOutline(gid, slab)
		require.NoError(t, err)
		assert.False(t, o1.IsEmpty())
		x0, y0, x1, y1 := face.BitmapBox(o1, 0.05, nil)
		u0, v0, u1, v1 := face.BitmapBox(o2, 0.05, nil)
		assert.InDelta(t, x0, u0, 1)
		assert.InDelta(t, y0, v0, 1)
		assert.InDelta(t, x1, u1, 1)
		assert.InDelta(t, y1, v1, 1)
		gt.ReleaseOutline(o1)
		sf.ReleaseOutline(o2)
	}
	assert.Equal(t, 0, gt.Pending())
}

func TestCubicOutlines(t *testing.T) {
	f, err := Parse(lmsans10regular.TTF)
	require.NoError(t, err)
	slab := arena.NewSlab[face.Segment](128)
	o, err := f.GlyphOutline(f.GlyphIndex('o'), slab)
	require.NoError(t, err)
	require.False(t, o.IsEmpty())
	assert.Equal(t, face.SegmentMoveTo, o.Segments[0].Op)
	f.ReleaseOutline(o)
}

func TestKerningAgreesWithSFNT(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "txt2svg.face")
	defer teardown()
	//
	fonts := map[string][]byte{
		"lmroman":   lmroman10regular.TTF,
		"lmsans":    lmsans10regular.TTF,
		"goregular": goregular.TTF,
	}
	for name, data := range fonts {
		gt, err := Parse(data)
		require.NoError(t, err)
		sf, err := sfntface.Parse(data)
		require.NoError(t, err)
		kerned := 0
		for l := 'A'; l <= 'z'; l++ {
			for r := 'A'; r <= 'z'; r++ {
				left, right := sf.GlyphIndex(l), sf.GlyphIndex(r)
				k := sf.KernAdvance(left, right)
				if k != 0 {
					kerned++
				}
				assert.Equal(t, k, gt.KernAdvance(left, right), "%s: kerning %c%c", name, l, r)
			}
		}
		t.Logf("%s: %d kerned pairs", name, kerned)
		if name != "goregular" {
			assert.Greater(t, kerned, 0, "%s has kerning", name)
		}
	}
}
