// github.com/cdelker/glyphpath - a library for reading and writing font files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
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

package glyf

import (
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/postscript/funit"

	"github.com/cdelker/glyphpath/glyph"
	"github.com/cdelker/glyphpath/maxp"
)

// maxCompoundDepth bounds the recursion used to resolve composite glyphs
// that reference other composite glyphs. The OpenType spec does not fix
// a limit; real fonts never nest more than a handful of levels deep.
const maxCompoundDepth = 64

// ErrCompoundDepth is returned by Path/DecodePath when a composite glyph
// references itself, directly or indirectly, through more than
// maxCompoundDepth levels of nesting.
var ErrCompoundDepth = fmt.Errorf("glyf: composite glyph nesting exceeds %d levels", maxCompoundDepth)

// maxCompoundOffset clamps the translation part of a composite glyph's
// transform, so that a malformed or adversarial font cannot make glyph
// coordinates overflow downstream arithmetic.
const maxCompoundOffset = 32768

// Outlines stores the glyph data of a TrueType ("glyf"/"loca") font.
type Outlines struct {
	// Glyphs holds the decoded glyph table, indexed by glyph ID.
	Glyphs Glyphs

	// Widths holds the advance widths from the "hmtx" table, in font
	// units. The last entry applies to all glyphs beyond len(Widths)-1.
	Widths []funit.Int16

	// Names holds glyph names from the "post" table, if present.
	Names []string

	// Tables holds the contents of auxiliary hinting-related tables
	// ("cvt ", "fpgm", "prep", "gasp") verbatim, for callers that need
	// to re-embed them; the outline decoder itself does not use them.
	Tables map[string][]byte

	// Maxp holds the TrueType-specific fields of the "maxp" table.
	Maxp *maxp.TTFInfo
}

// NumGlyphs returns the number of glyphs in the font.
func (o *Outlines) NumGlyphs() int {
	return len(o.Glyphs)
}

// Advance returns the advance width of a glyph, in font units.
func (o *Outlines) Advance(gid glyph.ID) funit.Int16 {
	if len(o.Widths) == 0 {
		return 0
	}
	if int(gid) < len(o.Widths) {
		return o.Widths[gid]
	}
	return o.Widths[len(o.Widths)-1]
}

// GlyphName returns the name of a glyph, or "" if none is known.
func (o *Outlines) GlyphName(gid glyph.ID) string {
	if int(gid) < len(o.Names) {
		return o.Names[gid]
	}
	return ""
}

// Path returns the glyph outline as a path.Path iterator, resolving
// composite glyphs recursively against the rest of the collection. If
// the glyph data is malformed (for example because a composite glyph
// is nested too deeply), an empty path is returned; use DecodePath to
// observe the error instead.
func (gg Glyphs) Path(gid glyph.ID) path.Path {
	p, err := gg.DecodePath(gid)
	if err != nil {
		return func(yield func(path.Command, []path.Point) bool) {}
	}
	return p
}

// DecodePath is like Path, but returns an error instead of silently
// producing an empty outline when a glyph cannot be decoded.
func (gg Glyphs) DecodePath(gid glyph.ID) (path.Path, error) {
	identity := matrix.Matrix{1, 0, 0, 1, 0, 0}
	return gg.path(gid, identity, 0)
}

func (gg Glyphs) path(gid glyph.ID, M matrix.Matrix, depth int) (path.Path, error) {
	if int(gid) >= len(gg) || gg[gid] == nil {
		return func(yield func(path.Command, []path.Point) bool) {}, nil
	}
	if depth > maxCompoundDepth {
		return nil, ErrCompoundDepth
	}

	g := gg[gid]
	switch d := g.Data.(type) {
	case SimpleGlyph:
		return d.Path().Transform([6]float64(M)), nil

	case CompositeGlyph:
		var parts []path.Path
		for _, comp := range d.Components {
			cu, err := comp.Unpack()
			if err != nil {
				return nil, err
			}

			childM := clampOffset(cu.Trfm).Mul(M)

			childPath, err := gg.path(cu.Child, childM, depth+1)
			if err != nil {
				return nil, err
			}
			parts = append(parts, childPath)
		}
		return concatPaths(parts), nil

	default:
		return nil, fmt.Errorf("glyf: glyph %d has unrecognised data type %T", gid, g.Data)
	}
}

// Path returns the glyph outline as a path.Path iterator. See
// Glyphs.Path for details.
func (o *Outlines) Path(gid glyph.ID) path.Path {
	return o.Glyphs.Path(gid)
}

// DecodePath is like Path, but returns an error instead of silently
// producing an empty outline when a glyph cannot be decoded.
func (o *Outlines) DecodePath(gid glyph.ID) (path.Path, error) {
	return o.Glyphs.DecodePath(gid)
}

func clampOffset(m matrix.Matrix) matrix.Matrix {
	if m[4] > maxCompoundOffset {
		m[4] = maxCompoundOffset
	} else if m[4] < -maxCompoundOffset {
		m[4] = -maxCompoundOffset
	}
	if m[5] > maxCompoundOffset {
		m[5] = maxCompoundOffset
	} else if m[5] < -maxCompoundOffset {
		m[5] = -maxCompoundOffset
	}
	return m
}

// concatPaths runs each of parts in sequence, as if they were contours
// of a single path.
func concatPaths(parts []path.Path) path.Path {
	return func(yield func(path.Command, []path.Point) bool) {
		for _, p := range parts {
			stop := false
			p(func(cmd path.Command, pts []path.Point) bool {
				if !yield(cmd, pts) {
					stop = true
					return false
				}
				return true
			})
			if stop {
				return
			}
		}
	}
}

// GlyphBBox computes the bounding box of a glyph, after the matrix M has
// been applied to the glyph outline.
func (o *Outlines) GlyphBBox(M matrix.Matrix, gid glyph.ID) rect.Rect {
	return o.Path(gid).Transform([6]float64(M)).BBox()
}

// GlyphBBoxPDF computes the bounding box of a glyph in PDF glyph space
// units (1/1000th of a text space unit), applying the font matrix M to
// the glyph outline first.
func (o *Outlines) GlyphBBoxPDF(M matrix.Matrix, gid glyph.ID) rect.Rect {
	M = M.Mul(matrix.Scale(1000, 1000))
	return o.GlyphBBox(M, gid)
}

// IsBlank reports whether a glyph has no visible outline.
func (o *Outlines) IsBlank(gid glyph.ID) bool {
	if int(gid) >= len(o.Glyphs) || o.Glyphs[gid] == nil {
		return true
	}
	switch d := o.Glyphs[gid].Data.(type) {
	case SimpleGlyph:
		return len(d.Encoded) == 0
	case CompositeGlyph:
		return len(d.Components) == 0
	default:
		return true
	}
}
