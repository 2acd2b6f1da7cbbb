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

package glyphpath

import (
	"bytes"
	"math"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func loadGoRegular(t *testing.T) *Font {
	t.Helper()
	info, err := Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}
	return info
}

// TestTextAdvanceSum checks that with all positioning features
// disabled, the width of a shaped run is exactly the sum of the scaled
// advance widths of its glyphs.
func TestTextAdvanceSum(t *testing.T) {
	f := loadGoRegular(t)

	opt := DefaultTextOptions(DefaultConfig())
	opt.Features = map[string]bool{"kern": false, "liga": false, "calt": false}

	const s = "VALVES"
	run, err := f.Text(s, opt)
	if err != nil {
		t.Fatal(err)
	}
	w, _ := run.Size()

	scale := opt.Size / float64(f.UnitsPerEm)
	var want float64
	for _, r := range s {
		gid, err := f.GlyphIndex(r)
		if err != nil {
			t.Fatal(err)
		}
		if gid == 0 {
			t.Fatalf("no glyph for %q", r)
		}
		want += f.GlyphWidth(gid) * scale
	}
	if math.Abs(w-want) > 1e-6 {
		t.Errorf("width = %g, want %g", w, want)
	}
}

func TestTextMultiLine(t *testing.T) {
	f := loadGoRegular(t)

	opt := DefaultTextOptions(DefaultConfig())
	opt.HAlign = AlignCenter
	opt.LineSpacing = 0.8

	run, err := f.Text("Two\nLines", opt)
	if err != nil {
		t.Fatal(err)
	}

	glyphs := run.Glyphs()
	if len(glyphs) != 8 {
		t.Fatalf("got %d glyphs, want 8", len(glyphs))
	}

	if len(run.run.Baselines) != 2 {
		t.Fatalf("got %d baselines, want 2", len(run.run.Baselines))
	}
	scale := opt.Size / float64(f.UnitsPerEm)
	want := (float64(f.Ascent) - float64(f.Descent) + float64(f.LineGap)) * scale * 0.8
	if d := run.run.Baselines[1] - run.run.Baselines[0]; math.Abs(d-want) > 1e-6 {
		t.Errorf("baseline separation = %g, want %g", d, want)
	}
}

func TestTextRunPathModes(t *testing.T) {
	f := loadGoRegular(t)

	opt := DefaultTextOptions(DefaultConfig())
	run, err := f.Text("lll", opt)
	if err != nil {
		t.Fatal(err)
	}

	compat := run.Path(f, false)
	if compat.Reused {
		t.Error("compatibility mode marked as reused")
	}
	if len(compat.Glyphs) != 3 || len(compat.Placements) != 3 {
		t.Errorf("compatibility mode: %d glyphs, %d placements, want 3 and 3",
			len(compat.Glyphs), len(compat.Placements))
	}

	reuse := run.Path(f, true)
	if !reuse.Reused {
		t.Error("reuse mode not marked as reused")
	}
	if len(reuse.Glyphs) != 1 || len(reuse.Placements) != 3 {
		t.Errorf("reuse mode: %d glyphs, %d placements, want 1 and 3",
			len(reuse.Glyphs), len(reuse.Placements))
	}
}

func TestRender(t *testing.T) {
	f := loadGoRegular(t)

	cfg := DefaultConfig()
	cfg.Debug = true
	run, dbg, err := f.Render("Hi", cfg, TextOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(run.Placements) != 2 {
		t.Fatalf("got %d placements, want 2", len(run.Placements))
	}
	if dbg == nil {
		t.Fatal("debug geometry requested but not returned")
	}
	if len(dbg.Baselines) != 1 {
		t.Errorf("got %d baselines, want 1", len(dbg.Baselines))
	}
	if len(dbg.Origins) != 2 {
		t.Errorf("got %d origin marks, want 2", len(dbg.Origins))
	}

	// Coordinates are rounded to cfg.Precision decimal places.
	for _, g := range run.Glyphs {
		for _, c := range g.Contours {
			for _, seg := range c {
				for _, p := range seg.Points {
					if x := p.X * 100; math.Abs(x-math.Round(x)) > 1e-6 {
						t.Fatalf("coordinate %g not rounded to 2 decimals", p.X)
					}
				}
			}
		}
	}

	cfg.Debug = false
	_, dbg, err = f.Render("Hi", cfg, TextOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if dbg != nil {
		t.Error("debug geometry returned although not requested")
	}
}

func TestGlyphAccessors(t *testing.T) {
	f := loadGoRegular(t)

	gid, err := f.GlyphIndex('&')
	if err != nil {
		t.Fatal(err)
	}
	if gid == 0 {
		t.Fatal("no glyph for '&'")
	}

	g := f.Glyph(gid)
	if g.Advance() == 0 {
		t.Error("zero advance for '&'")
	}
	xmin, ymin, xmax, ymax := g.BBox()
	if xmin >= xmax || ymin >= ymax {
		t.Errorf("degenerate bbox (%d, %d, %d, %d)", xmin, ymin, xmax, ymax)
	}

	var n int
	for range g.Outline().Contours() {
		n++
	}
	if n == 0 {
		t.Error("empty outline for '&'")
	}
}

func TestReverseCMap(t *testing.T) {
	f := loadGoRegular(t)

	gid, err := f.GlyphIndex('A')
	if err != nil {
		t.Fatal(err)
	}
	rev, err := f.ReverseCMap()
	if err != nil {
		t.Fatal(err)
	}
	runes := rev[gid]
	found := false
	for _, r := range runes {
		if r == 'A' {
			found = true
		}
	}
	if !found {
		t.Errorf("reverse cmap for glyph %d does not contain 'A': %q", gid, runes)
	}
	if _, ok := rev[0]; ok {
		t.Error("reverse cmap contains .notdef")
	}
}

func TestOutlineCache(t *testing.T) {
	f := loadGoRegular(t)

	gid, err := f.GlyphIndex('A')
	if err != nil {
		t.Fatal(err)
	}
	f.Glyph(gid).Outline()
	if _, ok := f.outlineCache[gid]; !ok {
		t.Fatal("outline not cached after first decode")
	}
	n := len(f.outlineCache)
	f.Glyph(gid).Outline()
	if len(f.outlineCache) != n {
		t.Error("second decode grew the cache")
	}

	// clones decode into their own cache
	clone := f.Clone()
	gid2, err := f.GlyphIndex('B')
	if err != nil {
		t.Fatal(err)
	}
	clone.Glyph(gid2).Outline()
	if _, ok := f.outlineCache[gid2]; ok {
		t.Error("clone shares the original's cache")
	}
	if _, ok := clone.outlineCache[gid2]; !ok {
		t.Error("clone did not cache its own decode")
	}

	f.DecodeAllOutlines()
	if len(f.outlineCache) != f.NumGlyphs() {
		t.Errorf("warm-up cached %d of %d glyphs", len(f.outlineCache), f.NumGlyphs())
	}
}

func TestFeatureDefaults(t *testing.T) {
	f := loadGoRegular(t)
	for _, tag := range []string{"kern", "liga", "calt"} {
		if !f.Features[tag] {
			t.Errorf("feature %q not enabled by default", tag)
		}
	}
	if f.Features["smcp"] {
		t.Error("unexpected default feature smcp")
	}
}
