// github.com/cdelker/glyphpath - a library for reading and writing font files
// Copyright (C) 2022  Jochen Voss <voss@seehuhn.de>
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
	"math"
	"strings"
	"time"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/postscript/funit"

	"github.com/cdelker/glyphpath/cff"
	"github.com/cdelker/glyphpath/cmap"
	"github.com/cdelker/glyphpath/glyf"
	"github.com/cdelker/glyphpath/glyph"
	"github.com/cdelker/glyphpath/head"
	"github.com/cdelker/glyphpath/internal/warn"
	"github.com/cdelker/glyphpath/opentype/gdef"
	"github.com/cdelker/glyphpath/opentype/gtab"
	"github.com/cdelker/glyphpath/os2"
)

// TODO(voss): read https://github.com/googlefonts/gf-docs/tree/main/VerticalMetrics

// Outlines represents the glyph data of a TrueType or OpenType font.
// This must be one of [*glyf.Outlines] or [*cff.Outlines].
type Outlines interface {
	NumGlyphs() int
}

// Font contains information about a TrueType or OpenType font.
//
// TODO(voss): clarify the relation between IsOblique, IsItalic, and
// ItalicAngle != 0.
//
// TODO(voss): document which fields are mandatory/optional.
type Font struct {
	FamilyName string
	Width      os2.Width
	Weight     os2.Weight
	IsRegular  bool // glyphs are in the standard weight/style for the font
	IsBold     bool // glyphs are emboldened
	IsItalic   bool // font contains italic or oblique glyphs
	IsOblique  bool // font contains oblique glyphs
	IsSerif    bool // glyph shapes have serifs
	IsScript   bool // glyphs resemble cursive handwriting

	CodePageRange os2.CodePageRange

	Version          head.Version
	CreationTime     time.Time
	ModificationTime time.Time
	Description      string
	SampleText       string

	Copyright  string
	Trademark  string
	License    string
	LicenseURL string
	PermUse    os2.Permissions

	// TODO(voss): remove this in favour of FontMatrix
	UnitsPerEm uint16

	FontMatrix matrix.Matrix

	Ascent    funit.Int16
	Descent   funit.Int16 // negative
	LineGap   funit.Int16 // LineGap = Leading - Ascent + Descent
	CapHeight funit.Int16
	XHeight   funit.Int16

	ItalicAngle        float64       // Italic angle (degrees counterclockwise from vertical)
	UnderlinePosition  funit.Float64 // Underline position (negative)
	UnderlineThickness funit.Float64 // Underline thickness

	// Outlines contains the glyph data of the font.
	// This must be one of [*glyf.Outlines] or [*cff.Outlines].
	Outlines Outlines

	CMapTable cmap.Table

	Gdef *gdef.Table
	Gsub *gtab.Info
	Gpos *gtab.Info

	// Features maps a 4-character OpenType feature tag to whether it is
	// enabled for this font. Unknown tags are accepted but have no
	// effect. See DefaultFeatures for the documented default set.
	Features map[string]bool

	// DefaultTextOptions, if non-zero, is used by Text when the caller
	// passes the zero TextOptions. It lets a caller set per-Font
	// defaults without relying on process-wide state.
	DefaultTextOptions TextOptions

	// outlineCache holds glyph outlines decoded by Glyph.Outline,
	// keyed by glyph id.  Mutating Features never invalidates it: the
	// outline of a glyph does not depend on the enabled features.
	// The cache is not locked; see DecodeAllOutlines for sharing a
	// Font between goroutines.
	outlineCache map[glyph.ID]path.Path

	warnings warn.Sink
}

// DefaultFeatures returns the feature set enabled on a freshly loaded
// Font: standard ligatures, contextual alternates, and pair kerning.
func DefaultFeatures() map[string]bool {
	return map[string]bool{
		"kern": true,
		"liga": true,
		"calt": true,
	}
}

// Warnings returns the non-fatal diagnostics recorded while decoding
// glyph outlines or applying layout lookups for this Font, most recent
// last. It is reset by nothing; callers inspect and discard as needed.
func (f *Font) Warnings() []warn.Warning {
	return f.warnings.All()
}

// InstallCMap replaces the character map of the font with the given
// subtable.
func (f *Font) InstallCMap(s cmap.Subtable) {
	uniEncoding := uint16(3)
	winEncoding := uint16(1)
	if _, high := s.CodeRange(); high > 0xFFFF {
		uniEncoding = 4
		winEncoding = 10
	}
	cmapSubtable := s.Encode(0)
	f.CMapTable = cmap.Table{
		{PlatformID: 0, EncodingID: uniEncoding}: cmapSubtable,
		{PlatformID: 3, EncodingID: winEncoding}: cmapSubtable,
	}
}

// Clone makes a shallow copy of the font object.  The copy has its own
// outline cache, so per-goroutine clones can decode glyphs without
// coordinating.
func (f *Font) Clone() *Font {
	f2 := *f
	if f.outlineCache != nil {
		f2.outlineCache = make(map[glyph.ID]path.Path, len(f.outlineCache))
		for gid, p := range f.outlineCache {
			f2.outlineCache[gid] = p
		}
	}
	return &f2
}

// DecodeAllOutlines decodes and caches the outline of every glyph.
// After this warm-up the Font can be shared read-only between
// goroutines, as long as no caller mutates Features concurrently.
func (f *Font) DecodeAllOutlines() {
	for gid := range f.NumGlyphs() {
		f.Glyph(glyph.ID(gid)).Outline()
	}
}

// IsGlyf returns true if the font contains TrueType glyph outlines.
func (f *Font) IsGlyf() bool {
	_, ok := f.Outlines.(*glyf.Outlines)
	return ok
}

// IsCFF returns true if the font contains CFF glyph outlines.
func (f *Font) IsCFF() bool {
	_, ok := f.Outlines.(*cff.Outlines)
	return ok
}

// FullName returns the full name of the font.
func (f *Font) FullName() string {
	return f.FamilyName + " " + f.Subfamily()
}

// Subfamily returns the subfamily name of the font.
func (f *Font) Subfamily() string {
	var words []string
	if f.Width != 0 && f.Width != os2.WidthNormal {
		words = append(words, f.Width.String())
	}
	if f.Weight != 0 && f.Weight != os2.WeightNormal {
		tag := f.Weight.SimpleString()
		seen := strings.Contains(f.FamilyName, tag)
		for _, w := range words {
			if strings.Contains(w, tag) {
				seen = true
				break
			}
		}
		if !seen {
			words = append(words, tag)
		}
	} else if f.IsBold {
		words = append(words, "Bold")
	}
	if f.IsOblique {
		words = append(words, "Oblique")
	} else if f.IsItalic {
		words = append(words, "Italic")
	}
	if len(words) == 0 {
		return "Regular"
	}
	return strings.Join(words, " ")
}

// FontBBox returns the bounding box of the font.
func (f *Font) FontBBox() (bbox funit.Rect16) {
	first := true
	for i := range f.NumGlyphs() {
		glyphBBox := f.GlyphBBox(glyph.ID(i))
		if glyphBBox.IsZero() {
			continue
		}

		if first {
			bbox = glyphBBox
			first = false
		} else {
			bbox.Extend(glyphBBox)
		}
	}
	return
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.Outlines.NumGlyphs()
}

func (f *Font) BuiltinEncoding() []string {
	switch f := f.Outlines.(type) {
	case *cff.Outlines:
		return f.BuiltinEncoding()
	default:
		return nil
	}
}

// Widths returns the advance widths of the glyphs in the font
// in glyph design units.
func (f *Font) Widths() []float64 {
	widths := make([]float64, f.NumGlyphs())
	switch outlines := f.Outlines.(type) {
	case *cff.Outlines:
		for gid, g := range outlines.Glyphs {
			widths[gid] = g.Width
		}
		return widths
	case *glyf.Outlines:
		for i := range widths {
			widths[i] = float64(outlines.Widths[i])
		}
		return widths
	default:
		panic("unexpected font type")
	}
}

// GlyphBBoxes returns the glyph bounding boxes for the font.
func (f *Font) GlyphBBoxes() []funit.Rect16 {
	extents := make([]funit.Rect16, f.NumGlyphs())
	switch f := f.Outlines.(type) {
	case *cff.Outlines:
		for i, g := range f.Glyphs {
			extents[i] = g.Extent()
		}
	case *glyf.Outlines:
		for i, g := range f.Glyphs {
			if g == nil {
				continue
			}
			extents[i] = g.Rect16
		}
	default:
		panic("unexpected font type")
	}
	return extents
}

// GlyphWidth returns the advance width of the glyph with the given glyph ID,
// in font design units.
func (f *Font) GlyphWidth(gid glyph.ID) float64 {
	switch f := f.Outlines.(type) {
	case *cff.Outlines:
		return f.Glyphs[gid].Width
	case *glyf.Outlines:
		if f.Widths == nil {
			return 0
		}
		return float64(f.Widths[gid])
	default:
		panic("unexpected font type")
	}
}

// GlyphBBox returns the glyph bounding box for one glyph in font design
// units.
func (f *Font) GlyphBBox(gid glyph.ID) funit.Rect16 {
	switch f := f.Outlines.(type) {
	case *cff.Outlines:
		return f.Glyphs[gid].Extent()
	case *glyf.Outlines:
		g := f.Glyphs[gid]
		if g == nil {
			return funit.Rect16{}
		}
		return g.Rect16
	default:
		panic("unexpected font type")
	}
}

func (f *Font) glyphHeight(gid glyph.ID) funit.Int16 {
	switch f := f.Outlines.(type) {
	case *cff.Outlines:
		return f.Glyphs[gid].Extent().URy
	case *glyf.Outlines:
		g := f.Glyphs[gid]
		if g == nil {
			return 0
		}
		return g.Rect16.URy
	default:
		panic("unexpected font type")
	}
}

// GlyphName returns the name of a glyph.
// If the name is not known, the empty string is returned.
func (f *Font) GlyphName(gid glyph.ID) string {
	switch f := f.Outlines.(type) {
	case *cff.Outlines:
		return f.Glyphs[gid].Name
	case *glyf.Outlines:
		if f.Names == nil {
			return ""
		}
		return f.Names[gid]
	default:
		panic("unexpected font type")
	}
}

// IsFixedPitch returns true if all glyphs in the font have the same width.
func (f *Font) IsFixedPitch() bool {
	ww := f.Widths()
	if len(ww) == 0 {
		return false
	}

	var width float64
	for _, w := range ww {
		if w == 0 {
			continue
		}
		if width == 0 {
			width = w
		} else if math.Abs(width-w) >= 0.5 {
			return false
		}
	}

	return true
}
