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
	"fmt"

	"golang.org/x/text/language"
	gpath "seehuhn.de/go/geom/path"

	"github.com/cdelker/glyphpath/cmap"
	"github.com/cdelker/glyphpath/glyph"
	"github.com/cdelker/glyphpath/internal/warn"
	"github.com/cdelker/glyphpath/path"
	"github.com/cdelker/glyphpath/shaping"
)

// GlyphIndex looks up the glyph id for a Unicode code point, returning
// glyph id 0 (.notdef) if the font has no mapping for it.
func (f *Font) GlyphIndex(r rune) (glyph.ID, error) {
	cm, err := f.CMapTable.GetBest()
	if err != nil {
		return 0, err
	}
	return cm.Lookup(r), nil
}

// ReverseCMap returns the mapping from glyph id to the code points
// which select it, for inspection.  The map is rebuilt on every call;
// callers which need it repeatedly should keep the result.
func (f *Font) ReverseCMap() (map[glyph.ID][]rune, error) {
	cm, err := f.CMapTable.GetBest()
	if err != nil {
		return nil, err
	}
	return cmap.Reverse(cm), nil
}

// Glyph is a single decoded glyph, giving access to its outline,
// advance width and bounding box.
type Glyph struct {
	font *Font
	gid  glyph.ID
}

// Glyph returns a handle to the glyph with the given id. The id is not
// validated against NumGlyphs; out-of-range ids behave as a
// zero-width, empty-outline glyph.
func (f *Font) Glyph(gid glyph.ID) Glyph {
	return Glyph{font: f, gid: gid}
}

// GID returns the glyph id this handle refers to.
func (g Glyph) GID() glyph.ID { return g.gid }

// Advance returns the glyph's advance width in font design units.
func (g Glyph) Advance() uint16 {
	if int(g.gid) >= g.font.NumGlyphs() {
		return 0
	}
	return uint16(g.font.GlyphWidth(g.gid))
}

// BBox returns the glyph's bounding box in font design units.
func (g Glyph) BBox() (xmin, ymin, xmax, ymax int16) {
	if int(g.gid) >= g.font.NumGlyphs() {
		return 0, 0, 0, 0
	}
	bbox := g.font.GlyphBBox(g.gid)
	return int16(bbox.LLx), int16(bbox.LLy), int16(bbox.URx), int16(bbox.URy)
}

// Outline decodes the glyph's contours. Outlines are decoded on first
// use and cached by glyph id. Decode failures are recovered by
// substituting the .notdef glyph (id 0) and recording a warning
// rather than returning an error, per this package's error-handling
// policy for per-glyph decode failures.
func (g Glyph) Outline() gpath.Path {
	if p, ok := g.font.outlineCache[g.gid]; ok {
		return p
	}
	p := g.decodeOutline()
	if g.font.outlineCache == nil {
		g.font.outlineCache = make(map[glyph.ID]gpath.Path)
	}
	g.font.outlineCache[g.gid] = p
	return p
}

func (g Glyph) decodeOutline() gpath.Path {
	type decoder interface {
		DecodePath(gid glyph.ID) (gpath.Path, error)
	}
	d, ok := g.font.Outlines.(decoder)
	if !ok {
		return g.font.Outlines.(interface{ Path(glyph.ID) gpath.Path }).Path(g.gid)
	}
	p, err := d.DecodePath(g.gid)
	if err != nil {
		g.font.warnings.Add(warn.GlyphDecodeFailed, fmt.Sprintf("glyph %d: %v", g.gid, err))
		return g.font.Outlines.(interface{ Path(glyph.ID) gpath.Path }).Path(0)
	}
	return p
}

func (f *Font) shapingMetrics() shaping.Metrics {
	return shaping.Metrics{
		UnitsPerEm: f.UnitsPerEm,
		Ascent:     f.Ascent,
		Descent:    f.Descent,
		LineGap:    f.LineGap,
		CMap:       f.CMapTable,
		Gdef:       f.Gdef,
		Gsub:       f.Gsub,
		Gpos:       f.Gpos,
		GlyphWidth: f.GlyphWidth,
		GlyphExtent: func(gid glyph.ID) (llx, lly, urx, ury float64) {
			if int(gid) >= f.NumGlyphs() {
				return 0, 0, 0, 0
			}
			bbox := f.GlyphBBox(gid)
			return float64(bbox.LLx), float64(bbox.LLy), float64(bbox.URx), float64(bbox.URy)
		},
	}
}

// Text shapes s according to opt, returning a positioned glyph run
// suitable for rendering. A zero opt uses f.DefaultTextOptions (or the
// package defaults, if that is also zero).
func (f *Font) Text(s string, opt TextOptions) (*TextRun, error) {
	if opt.Size == 0 {
		opt = f.DefaultTextOptions
	}
	if opt.Size == 0 {
		opt = DefaultTextOptions(DefaultConfig())
	}

	features := f.Features
	if opt.Features != nil {
		features = mergeFeatures(features, opt.Features)
	}

	lang := language.Und
	if opt.Language != "" {
		if parsed, err := language.Parse(opt.Language); err == nil {
			lang = parsed
		}
	}

	so := shaping.Options{
		Size:         opt.Size,
		HAlign:       shaping.HAlign(opt.HAlign),
		VAlign:       shaping.VAlign(opt.VAlign),
		LineSpacing:  opt.LineSpacing,
		Rotation:     opt.Rotation,
		RotationMode: shaping.RotationMode(opt.RotationMode),
		Language:     lang,
		GsubFeatures: features,
		GposFeatures: features,
	}

	run, err := shaping.Shape(f.shapingMetrics(), s, so)
	if err != nil {
		return nil, err
	}
	return &TextRun{run: run}, nil
}

func mergeFeatures(base, override map[string]bool) map[string]bool {
	merged := make(map[string]bool, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

// TextRun is the output of Font.Text: an ordered set of positioned
// glyphs plus the block's bounding box, ready for a caller to convert
// each glyph's outline into its serialization of choice.
type TextRun struct {
	run *shaping.Run
}

// PositionedGlyph is a single glyph placed in target pixel space.
type PositionedGlyph struct {
	GID   glyph.ID
	X, Y  float64
	Scale float64
}

// Glyphs returns every positioned glyph in the run, in reading order.
func (tr *TextRun) Glyphs() []PositionedGlyph {
	out := make([]PositionedGlyph, len(tr.run.Glyphs))
	for i, g := range tr.run.Glyphs {
		out[i] = PositionedGlyph{GID: g.GID, X: g.X, Y: g.Y, Scale: g.Scale}
	}
	return out
}

// Size returns the run's pixel width and height.
func (tr *TextRun) Size() (widthPx, heightPx float64) {
	return tr.run.Width(), tr.run.Height()
}

// SizeOf shapes s with opt and returns only its resulting pixel size.
// The full positioned-glyph run is built and then discarded.
func (f *Font) SizeOf(s string, opt TextOptions) (widthPx, heightPx float64, err error) {
	run, err := f.Text(s, opt)
	if err != nil {
		return 0, 0, err
	}
	w, h := run.Size()
	return w, h, nil
}

// Path converts the run into draw-ready glyph outlines and
// placements, in compatibility mode (one outline per placement) or
// reuse mode (one outline per distinct glyph id, referenced by
// position) depending on svg2.
func (tr *TextRun) Path(f *Font, svg2 bool) path.Run {
	if !svg2 {
		glyphs := make([]path.Glyph, len(tr.run.Glyphs))
		placements := make([]path.Placement, len(tr.run.Glyphs))
		for i, g := range tr.run.Glyphs {
			glyphs[i] = path.Emit(g.GID, f.Glyph(g.GID).Outline(), f.UnitsPerEm, g.Scale*float64(f.UnitsPerEm))
			placements[i] = path.Placement{GID: g.GID, X: g.X, Y: g.Y, Scale: g.Scale}
		}
		return path.Run{Glyphs: glyphs, Placements: placements, Reused: false}
	}

	seen := make(map[glyph.ID]bool)
	var glyphs []path.Glyph
	placements := make([]path.Placement, len(tr.run.Glyphs))
	for i, g := range tr.run.Glyphs {
		if !seen[g.GID] {
			seen[g.GID] = true
			glyphs = append(glyphs, path.Emit(g.GID, f.Glyph(g.GID).Outline(), f.UnitsPerEm, g.Scale*float64(f.UnitsPerEm)))
		}
		placements[i] = path.Placement{GID: g.GID, X: g.X, Y: g.Y, Scale: g.Scale}
	}
	return path.Run{Glyphs: glyphs, Placements: placements, Reused: true}
}

// DebugGeometry returns the run's baselines, per-glyph bounding boxes
// and origin marks in pixel coordinates, for drawing alongside the
// primary run.
func (tr *TextRun) DebugGeometry(f *Font) path.Debug {
	var d path.Debug
	xmin := tr.run.BBox.XMin
	xmax := tr.run.BBox.XMax
	for _, y := range tr.run.Baselines {
		d.Baselines = append(d.Baselines, path.Line{X1: xmin, Y1: y, X2: xmax, Y2: y})
	}
	for _, g := range tr.run.Glyphs {
		d.Origins = append(d.Origins, path.Point{X: g.X, Y: g.Y})
		if int(g.GID) >= f.NumGlyphs() {
			continue
		}
		bbox := f.GlyphBBox(g.GID)
		if bbox.IsZero() {
			continue
		}
		d.GlyphBoxes = append(d.GlyphBoxes, path.Box{
			XMin: g.X + float64(bbox.LLx)*g.Scale,
			YMin: g.Y - float64(bbox.URy)*g.Scale,
			XMax: g.X + float64(bbox.URx)*g.Scale,
			YMax: g.Y - float64(bbox.LLy)*g.Scale,
		})
	}
	return d
}

// Render shapes s and emits draw-ready path data in one step.  The
// configuration supplies the pieces TextOptions does not carry: the
// default text size, reuse vs. compatibility emission (SVG2), the
// number of decimal places for emitted coordinates, and whether debug
// geometry is returned (nil otherwise).
func (f *Font) Render(s string, cfg Config, opt TextOptions) (path.Run, *path.Debug, error) {
	if opt.Size == 0 {
		opt.Size = cfg.FontSize
	}
	run, err := f.Text(s, opt)
	if err != nil {
		return path.Run{}, nil, err
	}
	pr := run.Path(f, cfg.SVG2).Round(cfg.Precision)
	var dbg *path.Debug
	if cfg.Debug {
		d := run.DebugGeometry(f)
		dbg = &d
	}
	return pr, dbg, nil
}
