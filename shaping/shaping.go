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

// Package shaping turns a Unicode string into a positioned glyph run:
// cmap lookup, GSUB substitution, hmtx advances, GPOS adjustment,
// multi-line layout, alignment, and rotation.
package shaping

import (
	"math"

	"golang.org/x/text/language"
	"seehuhn.de/go/postscript/funit"

	"github.com/cdelker/glyphpath/cmap"
	"github.com/cdelker/glyphpath/glyph"
	"github.com/cdelker/glyphpath/opentype/gdef"
	"github.com/cdelker/glyphpath/opentype/gtab"
)

// Metrics is the subset of font-wide metrics the shaper needs. Callers
// pass these in rather than the shaper importing the root package
// directly, avoiding an import cycle (the root Font embeds this
// package's Run type in its public façade).
type Metrics struct {
	UnitsPerEm uint16
	Ascent     funit.Int16
	Descent    funit.Int16 // negative
	LineGap    funit.Int16
	CMap       cmap.Table
	Gdef       *gdef.Table
	Gsub       *gtab.Info
	Gpos       *gtab.Info

	// GlyphWidth returns a glyph's advance width in font design units.
	GlyphWidth func(gid glyph.ID) float64

	// GlyphExtent returns a glyph's bounding box in font design units,
	// y up.  It may be nil, in which case the run's bounding box is
	// estimated from advance widths and the font's vertical metrics.
	GlyphExtent func(gid glyph.ID) (llx, lly, urx, ury float64)
}

// HAlign is a horizontal line alignment.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is a vertical block alignment.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBaseline
	AlignBottom
)

// RotationMode controls whether rotation is applied before or after
// alignment; see the Options doc comment.
type RotationMode int

const (
	// RotateAfterAlign rotates the aligned block about the anchor point.
	RotateAfterAlign RotationMode = iota
	// RotateThenAlign rotates the unaligned block about the anchor
	// point, then applies the vertical alignment offset of the
	// unrotated block.
	RotateThenAlign
)

// Options controls how a string is shaped and positioned.
//
// Alignment and rotation interact: in RotateAfterAlign mode (the
// default) the block is aligned first and then rotated about the
// anchor point; in RotateThenAlign mode the block is rotated first and
// then moved by the same vertical offset, which is computed from the
// unrotated block.  The extent of the rotated block is not used for
// alignment in either mode, and horizontal alignment of the lines
// within the block always happens before rotation.
type Options struct {
	Size         float64 // pixels
	HAlign       HAlign
	VAlign       VAlign
	LineSpacing  float64 // multiplier; 0 means 1.0
	Rotation     float64 // degrees, counter-clockwise
	RotationMode RotationMode
	Language     language.Tag

	GsubFeatures map[string]bool // nil uses gtab.GsubDefaultFeatures
	GposFeatures map[string]bool // nil uses gtab.GposDefaultFeatures
}

// PositionedGlyph is one glyph placed in target pixel space.
type PositionedGlyph struct {
	GID   glyph.ID
	X, Y  float64
	Scale float64
}

// Box is an axis-aligned bounding box in pixel space.
type Box struct {
	XMin, YMin, XMax, YMax float64
}

func (b *Box) extend(x, y float64) {
	if x < b.XMin {
		b.XMin = x
	}
	if x > b.XMax {
		b.XMax = x
	}
	if y < b.YMin {
		b.YMin = y
	}
	if y > b.YMax {
		b.YMax = y
	}
}

// Run is the result of shaping a (possibly multi-line) string.
type Run struct {
	Glyphs    []PositionedGlyph
	BBox      Box       // union of the glyph bounding boxes, in pixel space
	Baselines []float64 // y coordinate of each line's baseline, in order

	w, h float64
}

// Width returns the run's typographic width: the width of the widest
// line, as accumulated from advance widths and positioning
// adjustments.  Without kerning this is exactly the sum of the scaled
// advance widths of the line's glyphs.
func (r *Run) Width() float64 { return r.w }

// Height returns the run's typographic height, from the first line's
// ascent to the last line's descent.
func (r *Run) Height() float64 { return r.h }

type line struct {
	seq   []glyph.Info
	width float64 // scaled
}

// Shape turns s into a positioned glyph run: cmap lookup, GSUB
// substitution, advance accumulation, GPOS adjustment, line layout,
// alignment, and rotation.
func Shape(m Metrics, s string, opt Options) (*Run, error) {
	cm, err := m.CMap.GetBest()
	if err != nil {
		return nil, err
	}

	linespacing := opt.LineSpacing
	if linespacing == 0 {
		linespacing = 1.0
	}

	gsubFeatures := opt.GsubFeatures
	if gsubFeatures == nil {
		gsubFeatures = gtab.GsubDefaultFeatures
	}
	gposFeatures := opt.GposFeatures
	if gposFeatures == nil {
		gposFeatures = gtab.GposDefaultFeatures
	}

	var gsubCtx, gposCtx *gtab.Context
	if m.Gsub != nil {
		gsubCtx = gtab.NewContext(m.Gsub.LookupList, m.Gdef, m.Gsub.FindLookups(opt.Language, gsubFeatures))
	}
	if m.Gpos != nil {
		gposCtx = gtab.NewContext(m.Gpos.LookupList, m.Gdef, m.Gpos.FindLookups(opt.Language, gposFeatures))
	}

	scale := opt.Size / float64(m.UnitsPerEm)

	rawLines := splitLines(s)
	lines := make([]line, len(rawLines))
	for i, text := range rawLines {
		seq := shapeLine(text, cm, gsubCtx, gposCtx, m)
		var width float64
		for _, g := range seq {
			width += float64(g.Advance) * scale
		}
		lines[i] = line{seq: seq, width: width}
	}

	lineHeight := (float64(m.Ascent) - float64(m.Descent) + float64(m.LineGap)) * scale * linespacing
	firstBaseline := float64(m.Ascent) * scale

	run := &Run{}
	var blockWidth float64
	for _, ln := range lines {
		if ln.width > blockWidth {
			blockWidth = ln.width
		}
	}

	for i, ln := range lines {
		baselineY := firstBaseline + float64(i)*lineHeight
		run.Baselines = append(run.Baselines, baselineY)

		var originX float64
		switch opt.HAlign {
		case AlignCenter:
			originX = (blockWidth - ln.width) / 2
		case AlignRight:
			originX = blockWidth - ln.width
		}

		var penX float64
		for _, g := range ln.seq {
			x := originX + penX + float64(g.XOffset)*scale
			y := baselineY - float64(g.YOffset)*scale
			run.Glyphs = append(run.Glyphs, PositionedGlyph{GID: g.GID, X: x, Y: y, Scale: scale})
			penX += float64(g.Advance) * scale
		}
	}

	blockTop := firstBaseline - float64(m.Ascent)*scale
	blockBottom := firstBaseline + float64(len(lines)-1)*lineHeight - float64(m.Descent)*scale
	run.w = blockWidth
	run.h = blockBottom - blockTop

	var vshift float64
	switch opt.VAlign {
	case AlignTop:
		vshift = -blockTop
	case AlignMiddle:
		vshift = -(blockTop + blockBottom) / 2
	case AlignBottom:
		vshift = -blockBottom
	case AlignBaseline:
		vshift = -firstBaseline
	}

	if opt.RotationMode == RotateAfterAlign {
		for i := range run.Glyphs {
			run.Glyphs[i].Y += vshift
		}
		for i := range run.Baselines {
			run.Baselines[i] += vshift
		}
		rotate(run, opt.Rotation)
	} else {
		rotate(run, opt.Rotation)
		for i := range run.Glyphs {
			run.Glyphs[i].Y += vshift
		}
		for i := range run.Baselines {
			run.Baselines[i] += vshift
		}
	}

	run.BBox = computeBBox(run, m)
	return run, nil
}

func rotate(run *Run, degrees float64) {
	if degrees == 0 {
		return
	}
	rad := degrees * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	for i, g := range run.Glyphs {
		run.Glyphs[i].X = g.X*cos - g.Y*sin
		run.Glyphs[i].Y = g.X*sin + g.Y*cos
	}
}

// computeBBox unions the glyph bounding boxes, placed at their final
// origins.  For rotated runs the per-glyph boxes stay axis-aligned, so
// the result is a conservative estimate.
func computeBBox(run *Run, m Metrics) Box {
	if len(run.Glyphs) == 0 {
		return Box{}
	}
	var b Box
	first := true
	for _, g := range run.Glyphs {
		var llx, lly, urx, ury float64
		if m.GlyphExtent != nil {
			llx, lly, urx, ury = m.GlyphExtent(g.GID)
		} else {
			lly = float64(m.Descent)
			ury = float64(m.Ascent)
			urx = m.GlyphWidth(g.GID)
		}
		x0 := g.X + llx*g.Scale
		x1 := g.X + urx*g.Scale
		y0 := g.Y - ury*g.Scale
		y1 := g.Y - lly*g.Scale
		if first {
			b = Box{XMin: x0, YMin: y0, XMax: x1, YMax: y1}
			first = false
		}
		b.extend(x0, y0)
		b.extend(x1, y1)
	}
	return b
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

func shapeLine(s string, cm cmap.Subtable, gsub, gpos *gtab.Context, m Metrics) []glyph.Info {
	seq := make([]glyph.Info, 0, len(s))
	for _, r := range s {
		gid := cm.Lookup(r)
		seq = append(seq, glyph.Info{GID: gid, Text: []rune{r}})
	}

	if gsub != nil {
		seq = gsub.Apply(seq)
	}

	for i := range seq {
		gid := seq[i].GID
		if !m.Gdef.IsMark(gid) {
			seq[i].Advance = funit.Int16(m.GlyphWidth(gid))
		}
	}

	if gpos != nil {
		seq = gpos.Apply(seq)
	}

	return seq
}
