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

// Package path turns the quadratic/cubic contours decoded by glyf/cff
// into draw commands in target (pixel, y-down) coordinate space. It
// does not itself produce any particular file format: a Run's Glyphs
// and Placements are cheap to walk into SVG, a canvas API, or anything
// else a caller chooses.
package path

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	gpath "seehuhn.de/go/geom/path"

	"github.com/cdelker/glyphpath/glyph"
)

// Command identifies the kind of a draw instruction, mirroring
// seehuhn.de/go/geom/path.Command but named for this package's
// y-down, caller-facing contract.
type Command int

const (
	MoveTo Command = iota
	LineTo
	QuadTo
	CubeTo
	Close
)

// Point is a single coordinate in target pixel space.
type Point struct {
	X, Y float64
}

// Segment is one draw instruction. Points holds 1 point for MoveTo/
// LineTo, 2 for QuadTo (control, end), 3 for CubeTo (control1,
// control2, end), and 0 for Close.
type Segment struct {
	Cmd    Command
	Points []Point
}

// Contour is a sequence of segments produced by one glyph, starting
// with MoveTo and ending with Close (per the TrueType/CFF decoders'
// own invariant).
type Contour []Segment

// Glyph is the outline of a single glyph id, already scaled and
// y-flipped into pixel space at the origin (0, 0).
type Glyph struct {
	GID      glyph.ID
	Contours []Contour
}

// Placement records where a glyph (identified by GID, looked up in a
// Run's Glyphs) is drawn.
type Placement struct {
	GID   glyph.ID
	X, Y  float64
	Scale float64
}

// Run is the output of the path emitter for a shaped text block.
//
// In compatibility mode (Reused == false) each Placement has its own
// entry in Glyphs at the matching index, so a consumer can always walk
// Glyphs and Placements in lockstep without a GID lookup. In reuse
// mode (Reused == true, the SVG2 "symbol/use" style) Glyphs holds one
// entry per distinct glyph id actually used, and Placements references
// them by GID.
type Run struct {
	Glyphs     []Glyph
	Placements []Placement
	Reused     bool
}

// pixelMatrix returns the font-unit -> pixel affine: scale by
// fontSize/unitsPerEm, negate y (font space is y-up, target space is
// y-down), then translate the pen to (x, y).
func pixelMatrix(unitsPerEm uint16, fontSize, x, y float64) matrix.Matrix {
	scale := fontSize / float64(unitsPerEm)
	return matrix.Matrix{scale, 0, 0, -scale, x, y}
}

// Emit converts a single glyph outline (as returned by the font's
// Outlines.Path(gid)) into a Glyph, placed at the origin. The caller
// composes the result with a Placement for each occurrence.
func Emit(gid glyph.ID, outline gpath.Path, unitsPerEm uint16, fontSize float64) Glyph {
	transformed := outline.Transform([6]float64(pixelMatrix(unitsPerEm, fontSize, 0, 0)))

	g := Glyph{GID: gid}
	var cur Contour
	transformed(func(cmd gpath.Command, pts []gpath.Point) bool {
		switch cmd {
		case gpath.CmdMoveTo:
			if len(cur) > 0 {
				g.Contours = append(g.Contours, cur)
			}
			cur = Contour{{Cmd: MoveTo, Points: []Point{toPoint(pts[0])}}}
		case gpath.CmdLineTo:
			cur = append(cur, Segment{Cmd: LineTo, Points: []Point{toPoint(pts[0])}})
		case gpath.CmdQuadTo:
			cur = append(cur, Segment{Cmd: QuadTo, Points: []Point{toPoint(pts[0]), toPoint(pts[1])}})
		case gpath.CmdCubeTo:
			cur = append(cur, Segment{Cmd: CubeTo, Points: []Point{toPoint(pts[0]), toPoint(pts[1]), toPoint(pts[2])}})
		case gpath.CmdClose:
			cur = append(cur, Segment{Cmd: Close})
		}
		return true
	})
	if len(cur) > 0 {
		g.Contours = append(g.Contours, cur)
	}
	return g
}

func toPoint(p gpath.Point) Point {
	return Point{X: p.X, Y: p.Y}
}

// Line is a straight line segment in target pixel space.
type Line struct {
	X1, Y1, X2, Y2 float64
}

// Box is an axis-aligned rectangle in target pixel space.
type Box struct {
	XMin, YMin, XMax, YMax float64
}

// Debug is auxiliary geometry describing a shaped run: one baseline
// segment per text line, the bounding box of each glyph, and a mark at
// each glyph origin.  It is drawn alongside the primary run when debug
// output is requested.  Boxes and baselines are axis-aligned; for
// rotated runs they describe the unrotated placement of each element.
type Debug struct {
	Baselines  []Line
	GlyphBoxes []Box
	Origins    []Point
}

// Round quantizes all coordinates in the run to the given number of
// decimal places.  Negative decimals leave the run unchanged.
func (r Run) Round(decimals int) Run {
	if decimals < 0 {
		return r
	}
	out := Run{
		Glyphs:     make([]Glyph, len(r.Glyphs)),
		Placements: make([]Placement, len(r.Placements)),
		Reused:     r.Reused,
	}
	for i, g := range r.Glyphs {
		rg := Glyph{GID: g.GID, Contours: make([]Contour, len(g.Contours))}
		for j, c := range g.Contours {
			rc := make(Contour, len(c))
			for k, seg := range c {
				pts := make([]Point, len(seg.Points))
				for l, p := range seg.Points {
					pts[l] = Point{X: round(p.X, decimals), Y: round(p.Y, decimals)}
				}
				rc[k] = Segment{Cmd: seg.Cmd, Points: pts}
			}
			rg.Contours[j] = rc
		}
		out.Glyphs[i] = rg
	}
	for i, p := range r.Placements {
		out.Placements[i] = Placement{
			GID:   p.GID,
			X:     round(p.X, decimals),
			Y:     round(p.Y, decimals),
			Scale: p.Scale,
		}
	}
	return out
}

func round(x float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	return math.Round(x*scale) / scale
}
