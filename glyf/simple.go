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

package glyf

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/postscript/funit"

	"github.com/cdelker/glyphpath/parser"
)

// SimpleGlyph is a glyph which carries its own outline data, as
// opposed to a composite glyph which references other glyphs.
type SimpleGlyph struct {
	NumContours int16
	Encoded     []byte
}

// A Point is one point of a glyph outline.  Off-curve points are
// quadratic Bézier control points.
type Point struct {
	X, Y    funit.Int16
	OnCurve bool
}

// A Contour is one closed loop of a glyph outline.
type Contour []Point

// SimpleUnpacked is the decoded form of a SimpleGlyph.
type SimpleUnpacked struct {
	Contours     []Contour
	Instructions []byte
}

// Path returns a path.Path iterating over the contours of the glyph
// outline.  Malformed glyph data yields an empty path; use Unpack to
// observe the error instead.
func (sg SimpleGlyph) Path() path.Path {
	unpacked, err := sg.Unpack()
	if err != nil {
		return func(yield func(path.Command, []path.Point) bool) {}
	}
	return unpacked.Path()
}

// The glyph data interleaves three sections after the contour end
// indices: instructions, a run-length encoded flag array, and the
// x/y coordinate deltas selected by the flags.
// https://docs.microsoft.com/en-us/typography/opentype/spec/glyf#simpleGlyphFlags
const (
	flagOnCurve    = 0x01 // ON_CURVE_POINT
	flagXShortVec  = 0x02 // X_SHORT_VECTOR
	flagYShortVec  = 0x04 // Y_SHORT_VECTOR
	flagRepeat     = 0x08 // REPEAT_FLAG
	flagXSameOrPos = 0x10 // X_IS_SAME_OR_POSITIVE_X_SHORT_VECTOR
	flagYSameOrPos = 0x20 // Y_IS_SAME_OR_POSITIVE_Y_SHORT_VECTOR
)

// Unpack decodes the contours of the glyph.
func (sg SimpleGlyph) Unpack() (*SimpleUnpacked, error) {
	numContours := int(sg.NumContours)
	buf := sg.Encoded

	ends, buf, err := readContourEnds(buf, numContours)
	if err != nil {
		return nil, err
	}
	numPoints := 0
	if numContours > 0 {
		numPoints = int(ends[numContours-1]) + 1
	}

	if len(buf) < 2 {
		return nil, errInvalidGlyphData
	}
	instLen := int(buf[0])<<8 | int(buf[1])
	if len(buf) < 2+instLen {
		return nil, errInvalidGlyphData
	}
	var instructions []byte
	if instLen > 0 {
		instructions = append([]byte{}, buf[2:2+instLen]...)
	}
	buf = buf[2+instLen:]

	flags, buf, err := expandFlags(buf, numPoints)
	if err != nil {
		return nil, err
	}
	xs, buf, err := readAxis(buf, flags, flagXShortVec, flagXSameOrPos)
	if err != nil {
		return nil, err
	}
	ys, _, err := readAxis(buf, flags, flagYShortVec, flagYSameOrPos)
	if err != nil {
		return nil, err
	}

	contours := make([]Contour, numContours)
	first := 0
	for i, end := range ends {
		last := int(end) + 1
		contour := make(Contour, last-first)
		for j := first; j < last; j++ {
			contour[j-first] = Point{
				X:       xs[j],
				Y:       ys[j],
				OnCurve: flags[j]&flagOnCurve != 0,
			}
		}
		contours[i] = contour
		first = last
	}
	if numContours == 0 {
		contours = nil
	}

	return &SimpleUnpacked{
		Contours:     contours,
		Instructions: instructions,
	}, nil
}

// readContourEnds reads the per-contour final point indices.
func readContourEnds(buf []byte, numContours int) ([]uint16, []byte, error) {
	if len(buf) < 2*numContours+2 {
		return nil, nil, errInvalidGlyphData
	}
	ends := make([]uint16, numContours)
	for i := range ends {
		ends[i] = uint16(buf[2*i])<<8 | uint16(buf[2*i+1])
	}
	return ends, buf[2*numContours:], nil
}

// expandFlags undoes the run-length encoding of the flag array.
func expandFlags(buf []byte, numPoints int) ([]byte, []byte, error) {
	flags := make([]byte, numPoints)
	i := 0
	for i < numPoints {
		if len(buf) == 0 {
			return nil, nil, errInvalidGlyphData
		}
		flag := buf[0]
		buf = buf[1:]
		flags[i] = flag
		i++

		if flag&flagRepeat == 0 {
			continue
		}
		if len(buf) == 0 {
			return nil, nil, errInvalidGlyphData
		}
		count := int(buf[0])
		buf = buf[1:]
		for ; count > 0 && i < numPoints; count-- {
			flags[i] = flag
			i++
		}
	}
	return flags, buf, nil
}

// readAxis decodes one coordinate axis.  Each flag selects between a
// one-byte delta with a sign bit, a two-byte signed delta, or no delta
// at all (the coordinate repeats); deltas accumulate into absolute
// positions.
func readAxis(buf []byte, flags []byte, shortBit, sameOrPosBit byte) ([]funit.Int16, []byte, error) {
	coords := make([]funit.Int16, len(flags))
	var v funit.Int16
	for i, flag := range flags {
		switch {
		case flag&shortBit != 0:
			if len(buf) < 1 {
				return nil, nil, errInvalidGlyphData
			}
			d := funit.Int16(buf[0])
			buf = buf[1:]
			if flag&sameOrPosBit != 0 {
				v += d
			} else {
				v -= d
			}
		case flag&sameOrPosBit == 0:
			if len(buf) < 2 {
				return nil, nil, errInvalidGlyphData
			}
			v += funit.Int16(buf[0])<<8 | funit.Int16(buf[1])
			buf = buf[2:]
		}
		coords[i] = v
	}
	return coords, buf, nil
}

// deltaSize returns how many coordinate bytes one flag selects for
// one axis.
func deltaSize(flag, shortBit, sameOrPosBit byte) int {
	switch {
	case flag&shortBit != 0:
		return 1
	case flag&sameOrPosBit == 0:
		return 2
	}
	return 0
}

// Pack re-encodes the unpacked glyph data.
func (sd *SimpleUnpacked) Pack() SimpleGlyph {
	numPoints := 0
	ends := make([]uint16, len(sd.Contours))
	for i, contour := range sd.Contours {
		numPoints += len(contour)
		ends[i] = uint16(numPoints - 1)
	}

	flags := make([]byte, 0, numPoints)
	xDeltas := make([]funit.Int16, 0, numPoints)
	yDeltas := make([]funit.Int16, 0, numPoints)
	var prev Point
	for _, contour := range sd.Contours {
		for _, pt := range contour {
			dx := pt.X - prev.X
			dy := pt.Y - prev.Y
			prev = pt

			var flag byte
			if pt.OnCurve {
				flag |= flagOnCurve
			}
			flag |= deltaFlags(dx, flagXShortVec, flagXSameOrPos)
			flag |= deltaFlags(dy, flagYShortVec, flagYSameOrPos)

			flags = append(flags, flag)
			xDeltas = append(xDeltas, dx)
			yDeltas = append(yDeltas, dy)
		}
	}

	var buf []byte
	for _, end := range ends {
		buf = append(buf, byte(end>>8), byte(end))
	}
	buf = append(buf, byte(len(sd.Instructions)>>8), byte(len(sd.Instructions)))
	buf = append(buf, sd.Instructions...)

	// flags, run-length compressed
	for i := 0; i < numPoints; {
		flag := flags[i]
		run := 1
		for i+run < numPoints && flags[i+run] == flag && run < 256 {
			run++
		}
		if run > 1 {
			buf = append(buf, flag|flagRepeat, byte(run-1))
		} else {
			buf = append(buf, flag)
		}
		i += run
	}

	buf = appendDeltas(buf, flags, xDeltas, flagXShortVec, flagXSameOrPos)
	buf = appendDeltas(buf, flags, yDeltas, flagYShortVec, flagYSameOrPos)

	return SimpleGlyph{
		NumContours: int16(len(sd.Contours)),
		Encoded:     buf,
	}
}

// deltaFlags chooses the encoding flags for one coordinate delta.
func deltaFlags(d funit.Int16, shortBit, sameOrPosBit byte) byte {
	switch {
	case d == 0:
		return sameOrPosBit
	case d >= -255 && d <= 255:
		if d > 0 {
			return shortBit | sameOrPosBit
		}
		return shortBit
	}
	return 0
}

// appendDeltas writes the coordinate deltas for one axis.
func appendDeltas(buf []byte, flags []byte, deltas []funit.Int16, shortBit, sameOrPosBit byte) []byte {
	for i, flag := range flags {
		switch deltaSize(flag, shortBit, sameOrPosBit) {
		case 1:
			d := deltas[i]
			if d < 0 {
				d = -d
			}
			buf = append(buf, byte(d))
		case 2:
			buf = append(buf, byte(deltas[i]>>8), byte(deltas[i]))
		}
	}
	return buf
}

// AsGlyph wraps the unpacked data in a Glyph, computing the bounding
// box from the points.
func (sd *SimpleUnpacked) AsGlyph() Glyph {
	var bbox funit.Rect16
	first := true
	for _, contour := range sd.Contours {
		for _, pt := range contour {
			if first {
				bbox = funit.Rect16{LLx: pt.X, LLy: pt.Y, URx: pt.X, URy: pt.Y}
				first = false
				continue
			}
			if pt.X < bbox.LLx {
				bbox.LLx = pt.X
			}
			if pt.X > bbox.URx {
				bbox.URx = pt.X
			}
			if pt.Y < bbox.LLy {
				bbox.LLy = pt.Y
			}
			if pt.Y > bbox.URy {
				bbox.URy = pt.Y
			}
		}
	}
	return Glyph{
		Rect16: bbox,
		Data:   sd.Pack(),
	}
}

// Path returns a path.Path iterating over the glyph's contours.  Each
// contour is emitted as one MoveTo, a run of line and quadratic
// segments, and a closing ClosePath.
func (sd *SimpleUnpacked) Path() path.Path {
	return func(yield func(path.Command, []path.Point) bool) {
		for _, contour := range sd.Contours {
			if !emitContour(contour, yield) {
				return
			}
		}
	}
}

// outlineNode is one entry of an expanded contour: every point of the
// original contour, plus the on-curve midpoints the format leaves
// implicit between consecutive off-curve points.
type outlineNode struct {
	pt      path.Point
	onCurve bool
}

// emitContour renders one closed contour.  It reports false if the
// consumer stopped the iteration.
func emitContour(contour Contour, yield func(path.Command, []path.Point) bool) bool {
	if len(contour) < 2 {
		return true
	}

	nodes := expandContour(contour)

	// The walk must begin at an on-curve point.  Expansion guarantees
	// at least one exists: two consecutive off-curve points always
	// have a midpoint between them.
	start := 0
	for !nodes[start].onCurve {
		start++
	}

	// rotate so that the start node comes first, and append it again
	// at the end to close the loop
	loop := make([]outlineNode, 0, len(nodes)+1)
	loop = append(loop, nodes[start:]...)
	loop = append(loop, nodes[:start+1]...)

	var buf [3]path.Point
	buf[0] = loop[0].pt
	if !yield(path.CmdMoveTo, buf[:1]) {
		return false
	}
	for i := 1; i < len(loop); {
		if loop[i].onCurve {
			buf[0] = loop[i].pt
			if !yield(path.CmdLineTo, buf[:1]) {
				return false
			}
			i++
		} else {
			// an off-curve node is always followed by an on-curve one
			buf[0] = loop[i].pt
			buf[1] = loop[i+1].pt
			if !yield(path.CmdQuadTo, buf[:2]) {
				return false
			}
			i += 2
		}
	}
	return yield(path.CmdClose, nil)
}

// expandContour converts a contour to path points, inserting the
// implicit on-curve midpoint between consecutive off-curve points.
func expandContour(contour Contour) []outlineNode {
	nodes := make([]outlineNode, 0, 2*len(contour))
	prev := contour[len(contour)-1]
	for _, pt := range contour {
		if !prev.OnCurve && !pt.OnCurve {
			mid := path.Point{
				X: float64(prev.X+pt.X) / 2,
				Y: float64(prev.Y+pt.Y) / 2,
			}
			nodes = append(nodes, outlineNode{pt: mid, onCurve: true})
		}
		nodes = append(nodes, outlineNode{
			pt:      path.Point{X: float64(pt.X), Y: float64(pt.Y)},
			onCurve: pt.OnCurve,
		})
		prev = pt
	}
	return nodes
}

var errInvalidGlyphData = &parser.InvalidFontError{
	SubSystem: "sfnt/glyf",
	Reason:    "invalid glyph data",
}
