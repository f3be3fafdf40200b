package gotextface

import (
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/font/opentype/tables"
)

// useMarkFilteringSet is the GPOS lookup flag for mark filtering sets.
const useMarkFilteringSet = 0x0010

var (
	tagKern = opentype.MustNewTag("kern")
	tagLatn = opentype.MustNewTag("latn")
	tagDFLT = opentype.MustNewTag("DFLT")
)

// kerning holds the pair adjustments of a font. GPOS pair positioning
// subtables of the 'kern' feature take precedence; a font without them falls
// back to its 'kern' (or 'kerx') table.
//
// Only pair adjustments carrying a plain x-advance for the first glyph are
// considered.
type kerning struct {
	pairs []tables.PairPosData
	kernx font.Kernx
}

func newKerning(ft *font.Font) kerning {
	var k kerning
	gpos := &ft.GPOS
	for _, i := range kernLookups(&gpos.Layout) {
		if int(i) >= len(gpos.Lookups) {
			continue
		}
		lk := gpos.Lookups[i]
		if lk.Flag&useMarkFilteringSet != 0 {
			continue
		}
		for _, sub := range lk.Subtables {
			pp, ok := sub.(tables.PairPos)
			if !ok || !xAdvanceOnly(pp.Data) {
				continue
			}
			k.pairs = append(k.pairs, pp.Data)
		}
	}
	if len(k.pairs) == 0 {
		k.kernx = ft.Kern
		if len(k.kernx) == 0 {
			k.kernx = ft.Kerx
		}
	}
	tracer().Debugf("kerning: %d GPOS pair subtables, %d kern subtables", len(k.pairs), len(k.kernx))
	return k
}

// kernLookups collects the lookup indices of the 'kern' feature for the
// default language of script 'latn', or of 'DFLT' if 'latn' has none.
func kernLookups(la *font.Layout) []uint16 {
	var features []uint16
	for _, script := range []font.Tag{tagLatn, tagDFLT} {
		i := la.FindScript(script)
		if i < 0 {
			continue
		}
		if ls := la.Scripts[i].DefaultLangSys; ls != nil && len(ls.FeatureIndices) > 0 {
			features = ls.FeatureIndices
			break
		}
	}
	var lookups []uint16
	for _, fi := range features {
		if int(fi) >= len(la.Features) || la.Features[fi].Tag != tagKern {
			continue
		}
		lookups = append(lookups, la.Features[fi].LookupListIndices...)
	}
	return lookups
}

func xAdvanceOnly(data tables.PairPosData) bool {
	switch pp := data.(type) {
	case tables.PairPosData1:
		return pp.ValueFormat1 == tables.XAdvance && pp.ValueFormat2 == 0
	case tables.PairPosData2:
		return pp.ValueFormat1 == tables.XAdvance && pp.ValueFormat2 == 0
	}
	return false
}

// pair returns the kerning between left and right in font units.
// The first GPOS subtable covering the pair decides.
func (k kerning) pair(left, right uint16) int {
	for _, data := range k.pairs {
		switch pp := data.(type) {
		case tables.PairPosData1:
			idx, ok := pp.Cov().Index(left)
			if !ok || idx >= len(pp.PairSets) {
				continue
			}
			rec, ok := pp.PairSets[idx].FindGlyph(right)
			if !ok {
				continue
			}
			return int(rec.ValueRecord1.XAdvance)
		case tables.PairPosData2:
			if _, ok := pp.Cov().Index(left); !ok {
				continue
			}
			c1, _ := pp.ClassDef1.Class(left)
			c2, _ := pp.ClassDef2.Class(right)
			return int(pp.Record(c1, c2).ValueRecord1.XAdvance)
		}
	}
	if len(k.pairs) > 0 {
		return 0
	}
	kern := 0
	for _, st := range k.kernx {
		if !st.IsHorizontal() || st.IsCrossStream() {
			continue
		}
		if sk, ok := st.Data.(font.SimpleKerns); ok {
			kern += int(sk.KernPair(font.GID(left), font.GID(right)))
		}
	}
	return kern
}
