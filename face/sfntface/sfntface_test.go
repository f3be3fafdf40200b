package sfntface

import (
	"testing"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/txt2svg/arena"
	"github.com/npillmayer/txt2svg/face"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/gomono"
)

// --- Test Suite Preparation ------------------------------------------------

type SFNTTestEnviron struct {
	suite.Suite
	mono *ScalableFont
	slab *arena.Slab[face.Segment]
}

func TestSFNTFace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "txt2svg.face")
	defer teardown()
	suite.Run(t, new(SFNTTestEnviron))
}

func (env *SFNTTestEnviron) SetupSuite() {
	tracing.Select("txt2svg.face").SetTraceLevel(tracing.LevelError)
	var err error
	env.mono, err = Parse(gomono.TTF)
	env.Require().NoError(err, "cannot parse Go Mono")
	tracing.Select("txt2svg.face").SetTraceLevel(tracing.LevelInfo)
}

func (env *SFNTTestEnviron) SetupTest() {
	env.slab = arena.NewSlab[face.Segment](256)
}

// --- Tests -----------------------------------------------------------------

func (env *SFNTTestEnviron) TestParseErrors() {
	_, err := Parse(nil)
	env.ErrorIs(err, face.ErrEmptyFontData)
	_, err = Parse([]byte("definitely not a font"))
	env.Error(err)
}

func (env *SFNTTestEnviron) TestRegisteredAsDefault() {
	p, err := face.ParserFor("")
	env.Require().NoError(err)
	f, err := p.Parse(gomono.TTF)
	env.Require().NoError(err)
	env.IsType(&ScalableFont{}, f)
}

func (env *SFNTTestEnviron) TestVerticalMetrics() {
	vm := env.mono.VMetrics()
	env.Greater(vm.Ascent, 0, "ascent must be above the baseline")
	env.Less(vm.Descent, 0, "descent must be below the baseline")
	scale := env.mono.ScaleForPixelHeight(64)
	env.InDelta(64, scale*float32(vm.Ascent-vm.Descent), 0.01)
}

func (env *SFNTTestEnviron) TestMonospacedAdvances() {
	a := env.mono.HMetrics(env.mono.GlyphIndex('A'))
	i := env.mono.HMetrics(env.mono.GlyphIndex('i'))
	env.Greater(a.Advance, 0)
	env.Equal(a.Advance, i.Advance, "Go Mono is monospaced")
}

func (env *SFNTTestEnviron) TestUnmappedCodepoint() {
	env.Equal(face.NOTDEF, env.mono.GlyphIndex(0xE000), "private use code-point should not be mapped")
}

func (env *SFNTTestEnviron) TestOutlineOfA() {
	gid := env.mono.GlyphIndex('A')
	env.Require().NotEqual(face.NOTDEF, gid)
	o, err := env.mono.GlyphOutline(gid, env.slab)
	env.Require().NoError(err)
	env.Require().False(o.IsEmpty())
	env.Equal(face.SegmentMoveTo, o.Segments[0].Op, "outlines start with a move")
	var maxY float32
	for _, seg := range o.Segments {
		maxY = max(maxY, seg.Y)
		env.NotEqual(face.SegmentCubeTo, seg.Op, "TrueType outlines have no cubic curves")
	}
	vm := env.mono.VMetrics()
	env.Greater(maxY, float32(0), "y-axis must point upwards")
	env.LessOrEqual(maxY, float32(vm.Ascent))
	env.Equal(1, env.mono.Pending())
	env.mono.ReleaseOutline(o)
	env.Equal(0, env.mono.Pending())
}

func (env *SFNTTestEnviron) TestSpaceHasEmptyOutline() {
	o, err := env.mono.GlyphOutline(env.mono.GlyphIndex(' '), env.slab)
	env.Require().NoError(err)
	env.True(o.IsEmpty())
	env.mono.ReleaseOutline(o)
	env.Equal(0, env.mono.Pending())
}

func (env *SFNTTestEnviron) TestInvalidGlyph() {
	_, err := env.mono.GlyphOutline(face.GlyphIndex(env.mono.NumGlyphs()+10), env.slab)
	var gerr *face.GlyphError
	env.ErrorAs(err, &gerr)
}

func (env *SFNTTestEnviron) TestKerningIsBounded() {
	a, v := env.mono.GlyphIndex('A'), env.mono.GlyphIndex('V')
	k := env.mono.KernAdvance(a, v)
	env.Less(k, env.mono.UnitsPerEm(), "kerning must stay below one em")
	env.Greater(k, -env.mono.UnitsPerEm(), "kerning must stay below one em")
}

func (env *SFNTTestEnviron) TestLatinModern() {
	f, err := Parse(lmroman10regular.TTF)
	env.Require().NoError(err)
	o, err := f.GlyphOutline(f.GlyphIndex('g'), env.slab)
	env.Require().NoError(err)
	env.False(o.IsEmpty())
	f.ReleaseOutline(o)
}
