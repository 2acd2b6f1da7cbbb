// github.com/cdelker/glyphpath - a library for reading font files
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package shaping

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
	"seehuhn.de/go/postscript/funit"

	"github.com/cdelker/glyphpath/cmap"
	"github.com/cdelker/glyphpath/glyph"
	"github.com/cdelker/glyphpath/opentype/coverage"
	"github.com/cdelker/glyphpath/opentype/gtab"
)

// The test font: units per em 1000, ascent 800, descent -200, no line
// gap, and a handful of glyphs with round advance widths.  Shaping at
// size 1000 makes one pixel equal one font unit, so expected positions
// can be written down directly.
var testWidths = map[glyph.ID]float64{
	1: 500, // f
	2: 400, // i
	3: 250, // space
	4: 500, // A
	5: 500, // V
	6: 500, // M
	9: 900, // ff ligature
}

func testMetrics(gsub, gpos *gtab.Info) Metrics {
	sub := cmap.Format4{
		uint16('f'): 1,
		uint16('i'): 2,
		uint16(' '): 3,
		uint16('A'): 4,
		uint16('V'): 5,
		uint16('M'): 6,
	}
	table := cmap.Table{
		{PlatformID: 3, EncodingID: 1}: sub.Encode(0),
	}
	return Metrics{
		UnitsPerEm: 1000,
		Ascent:     800,
		Descent:    -200,
		LineGap:    0,
		CMap:       table,
		Gsub:       gsub,
		Gpos:       gpos,
		GlyphWidth: func(gid glyph.ID) float64 {
			return testWidths[gid]
		},
	}
}

func testGsub() *gtab.Info {
	subst := &gtab.Gsub4_1{
		Cov: coverage.Table{1: 0},
		Repl: [][]gtab.Ligature{
			{{In: []glyph.ID{1}, Out: 9}}, // f f -> ff
		},
	}
	return &gtab.Info{
		ScriptList: map[language.Tag]*gtab.Features{
			language.MustParse("und-Latn-x-latn"): {Required: 0xFFFF, Optional: []gtab.FeatureIndex{0}},
		},
		FeatureList: []*gtab.Feature{
			{Tag: "liga", Lookups: []gtab.LookupIndex{0}},
		},
		LookupList: []*gtab.LookupTable{
			{
				Meta:      &gtab.LookupMetaInfo{LookupType: 4},
				Subtables: []gtab.Subtable{subst},
			},
		},
	}
}

func testGpos() *gtab.Info {
	subtable := gtab.Gpos2_1{
		{Left: 4, Right: 5}: &gtab.PairAdjust{
			First: &gtab.GposValueRecord{XAdvance: -80},
		},
	}
	return &gtab.Info{
		ScriptList: map[language.Tag]*gtab.Features{
			language.MustParse("und-Zzzz"): {Required: 0xFFFF, Optional: []gtab.FeatureIndex{0}},
		},
		FeatureList: []*gtab.Feature{
			{Tag: "kern", Lookups: []gtab.LookupIndex{0}},
		},
		LookupList: []*gtab.LookupTable{
			{
				Meta:      &gtab.LookupMetaInfo{LookupType: 2},
				Subtables: []gtab.Subtable{subtable},
			},
		},
	}
}

func TestShapeAdvances(t *testing.T) {
	m := testMetrics(nil, nil)
	run, err := Shape(m, "fi", Options{Size: 1000})
	if err != nil {
		t.Fatal(err)
	}

	expected := []PositionedGlyph{
		{GID: 1, X: 0, Y: 800, Scale: 1},
		{GID: 2, X: 500, Y: 800, Scale: 1},
	}
	if d := cmp.Diff(expected, run.Glyphs); d != "" {
		t.Errorf("unexpected glyphs (-want +got):\n%s", d)
	}

	// Without positioning lookups the width is exactly the sum of the
	// scaled advance widths.
	if run.Width() != 900 {
		t.Errorf("width: expected 900, got %g", run.Width())
	}
	if run.Height() != 1000 {
		t.Errorf("height: expected 1000, got %g", run.Height())
	}
}

func TestShapeScales(t *testing.T) {
	m := testMetrics(nil, nil)
	run, err := Shape(m, "fi", Options{Size: 100})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(run.Width()-90) > 1e-9 {
		t.Errorf("width: expected 90, got %g", run.Width())
	}
	if math.Abs(run.Glyphs[1].X-50) > 1e-9 {
		t.Errorf("second glyph at %g, expected 50", run.Glyphs[1].X)
	}
}

func TestLigatureFeature(t *testing.T) {
	m := testMetrics(testGsub(), nil)

	run, err := Shape(m, "ffi", Options{Size: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if len(run.Glyphs) != 2 {
		t.Fatalf("expected 2 glyphs with liga enabled, got %d", len(run.Glyphs))
	}
	if run.Glyphs[0].GID != 9 || run.Glyphs[1].GID != 2 {
		t.Errorf("unexpected glyphs %v", run.Glyphs)
	}
	if run.Glyphs[1].X != 900 {
		t.Errorf("glyph after ligature at %g, expected 900", run.Glyphs[1].X)
	}

	run, err = Shape(m, "ffi", Options{
		Size:         1000,
		GsubFeatures: map[string]bool{"liga": false},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(run.Glyphs) != 3 {
		t.Fatalf("expected 3 glyphs with liga disabled, got %d", len(run.Glyphs))
	}
}

func TestKerning(t *testing.T) {
	m := testMetrics(nil, testGpos())

	kerned, err := Shape(m, "AV", Options{Size: 1000})
	if err != nil {
		t.Fatal(err)
	}
	plain, err := Shape(m, "AV", Options{
		Size:         1000,
		GposFeatures: map[string]bool{"kern": false},
	})
	if err != nil {
		t.Fatal(err)
	}

	if plain.Width() != 1000 {
		t.Errorf("unkerned width: expected 1000, got %g", plain.Width())
	}
	if kerned.Width() != 920 {
		t.Errorf("kerned width: expected 920, got %g", kerned.Width())
	}
	// The difference equals the applied pair adjustment.
	if d := plain.Width() - kerned.Width(); d != 80 {
		t.Errorf("kerning difference: expected 80, got %g", d)
	}
	if kerned.Glyphs[1].X != 420 {
		t.Errorf("kerned V at %g, expected 420", kerned.Glyphs[1].X)
	}
}

func TestMultiLineCenter(t *testing.T) {
	m := testMetrics(nil, nil)
	run, err := Shape(m, "MM\nM", Options{
		Size:        1000,
		HAlign:      AlignCenter,
		LineSpacing: 0.8,
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(run.Baselines) != 2 {
		t.Fatalf("expected 2 baselines, got %d", len(run.Baselines))
	}
	// (ascent - descent + lineGap) * linespacing * scale
	if d := run.Baselines[1] - run.Baselines[0]; math.Abs(d-800) > 1e-9 {
		t.Errorf("baseline separation: expected 800, got %g", d)
	}

	// Both line centers share the same x coordinate.
	center1 := run.Glyphs[0].X + 500 // line 1: two glyphs of width 500
	center2 := run.Glyphs[2].X + 250 // line 2: one glyph of width 500
	if center1 != center2 {
		t.Errorf("line centers differ: %g vs %g", center1, center2)
	}
}

func TestVAlign(t *testing.T) {
	m := testMetrics(nil, nil)
	cases := []struct {
		valign VAlign
		y      float64
	}{
		{AlignTop, 800},     // baseline sits one ascent below the anchor
		{AlignBaseline, 0},  // baseline on the anchor
		{AlignMiddle, 300},  // block center on the anchor
		{AlignBottom, -200}, // baseline one descent above the anchor
	}
	for _, c := range cases {
		run, err := Shape(m, "M", Options{Size: 1000, VAlign: c.valign})
		if err != nil {
			t.Fatal(err)
		}
		if run.Glyphs[0].Y != c.y {
			t.Errorf("valign %d: glyph at y=%g, expected %g", c.valign, run.Glyphs[0].Y, c.y)
		}
	}
}

func TestRotationModes(t *testing.T) {
	m := testMetrics(nil, nil)

	near := func(a, b float64) bool {
		return math.Abs(a-b) < 1e-9
	}

	// Default mode: align first, then rotate the aligned block about
	// the anchor point.
	run, err := Shape(m, "fi", Options{
		Size:     1000,
		VAlign:   AlignBaseline,
		Rotation: 90,
	})
	if err != nil {
		t.Fatal(err)
	}
	// (0, 0) and (500, 0) rotate to (0, 0) and (0, 500).
	if !near(run.Glyphs[0].X, 0) || !near(run.Glyphs[0].Y, 0) {
		t.Errorf("glyph 0 at (%g, %g)", run.Glyphs[0].X, run.Glyphs[0].Y)
	}
	if !near(run.Glyphs[1].X, 0) || !near(run.Glyphs[1].Y, 500) {
		t.Errorf("glyph 1 at (%g, %g)", run.Glyphs[1].X, run.Glyphs[1].Y)
	}

	// Anchor mode: rotate the unaligned block, then shift.
	run, err = Shape(m, "fi", Options{
		Size:         1000,
		VAlign:       AlignBaseline,
		Rotation:     90,
		RotationMode: RotateThenAlign,
	})
	if err != nil {
		t.Fatal(err)
	}
	// (0, 800) and (500, 800) rotate to (-800, 0) and (-800, 500),
	// then the baseline shift subtracts 800 from y (up, in y-down
	// pixel space).
	if !near(run.Glyphs[0].X, -800) || !near(run.Glyphs[0].Y, -800) {
		t.Errorf("glyph 0 at (%g, %g)", run.Glyphs[0].X, run.Glyphs[0].Y)
	}
	if !near(run.Glyphs[1].X, -800) || !near(run.Glyphs[1].Y, -300) {
		t.Errorf("glyph 1 at (%g, %g)", run.Glyphs[1].X, run.Glyphs[1].Y)
	}
}

func TestMissingGlyphs(t *testing.T) {
	m := testMetrics(nil, nil)
	run, err := Shape(m, "fXi", Options{Size: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if len(run.Glyphs) != 3 {
		t.Fatalf("expected 3 glyphs, got %d", len(run.Glyphs))
	}
	if run.Glyphs[1].GID != 0 {
		t.Errorf("unmapped code point produced glyph %d, expected 0", run.Glyphs[1].GID)
	}
}

func TestShapeIdempotent(t *testing.T) {
	m := testMetrics(testGsub(), testGpos())
	cm, err := m.CMap.GetBest()
	if err != nil {
		t.Fatal(err)
	}

	newCtx := func(info *gtab.Info, features map[string]bool) *gtab.Context {
		return gtab.NewContext(info.LookupList, nil, info.FindLookups(language.Und, features))
	}

	// shape once: cmap, GSUB, advances, GPOS
	shaped := shapeLine("ff AV", cm, newCtx(m.Gsub, gtab.GsubDefaultFeatures),
		newCtx(m.Gpos, gtab.GposDefaultFeatures), m)

	// Feeding the already-shaped sequence through the engines again
	// must not change it: the ligature glyph is not in any coverage
	// table, and re-running the positioning stage (which resets
	// advances from the widths first, as shapeLine does) re-derives
	// the same adjustments.
	again := make([]glyph.Info, len(shaped))
	copy(again, shaped)

	again = newCtx(m.Gsub, gtab.GsubDefaultFeatures).Apply(again)
	for i := range again {
		again[i].Advance = funit.Int16(m.GlyphWidth(again[i].GID))
	}
	again = newCtx(m.Gpos, gtab.GposDefaultFeatures).Apply(again)

	if d := cmp.Diff(shaped, again); d != "" {
		t.Errorf("re-shaping changed the run (-first +second):\n%s", d)
	}
}
