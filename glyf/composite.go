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
	"fmt"
	"math"
	"strings"

	"seehuhn.de/go/geom/matrix"

	"github.com/cdelker/glyphpath/glyph"
	"github.com/cdelker/glyphpath/parser"
)

// CompositeGlyph is a glyph assembled from other glyphs.  Each
// component names a child glyph together with a placement transform.
type CompositeGlyph struct {
	Components   []GlyphComponent
	Instructions []byte
}

// GlyphComponent is one component of a composite glyph, still in its
// encoded form: Data holds the two placement arguments followed by the
// optional scale values, in the layout selected by Flags.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/glyf#composite-glyph-description
type GlyphComponent struct {
	Flags      ComponentFlag
	GlyphIndex glyph.ID
	Data       []byte
}

// ComponentFlag selects the argument layout and placement behaviour of
// a glyph component.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/glyf#compositeGlyphFlags
type ComponentFlag uint16

const (
	FlagArg1And2AreWords        ComponentFlag = 0x0001 // arguments are 16-bit
	FlagArgsAreXYValues         ComponentFlag = 0x0002 // arguments are offsets, not point indices
	FlagRoundXYToGrid           ComponentFlag = 0x0004 // round offsets to the pixel grid
	FlagWeHaveAScale            ComponentFlag = 0x0008 // one F2.14 scale for both axes
	FlagMoreComponents          ComponentFlag = 0x0020 // another component follows
	FlagWeHaveAnXAndYScale      ComponentFlag = 0x0040 // separate F2.14 x and y scales
	FlagWeHaveATwoByTwo         ComponentFlag = 0x0080 // full F2.14 2x2 matrix
	FlagWeHaveInstructions      ComponentFlag = 0x0100 // instructions follow the last component
	FlagUseMyMetrics            ComponentFlag = 0x0200 // composite uses this component's metrics
	FlagOverlapCompound         ComponentFlag = 0x0400 // components may overlap
	FlagScaledComponentOffset   ComponentFlag = 0x0800 // offsets are in the scaled coordinate system
	FlagUnscaledComponentOffset ComponentFlag = 0x1000 // offsets are unscaled
)

var componentFlagNames = []struct {
	bit  ComponentFlag
	name string
}{
	{FlagArg1And2AreWords, "ARG_1_AND_2_ARE_WORDS"},
	{FlagArgsAreXYValues, "ARGS_ARE_XY_VALUES"},
	{FlagRoundXYToGrid, "ROUND_XY_TO_GRID"},
	{FlagWeHaveAScale, "WE_HAVE_A_SCALE"},
	{FlagMoreComponents, "MORE_COMPONENTS"},
	{FlagWeHaveAnXAndYScale, "WE_HAVE_AN_X_AND_Y_SCALE"},
	{FlagWeHaveATwoByTwo, "WE_HAVE_A_TWO_BY_TWO"},
	{FlagWeHaveInstructions, "WE_HAVE_INSTRUCTIONS"},
	{FlagUseMyMetrics, "USE_MY_METRICS"},
	{FlagOverlapCompound, "OVERLAP_COMPOUND"},
	{FlagScaledComponentOffset, "SCALED_COMPONENT_OFFSET"},
	{FlagUnscaledComponentOffset, "UNSCALED_COMPONENT_OFFSET"},
}

func (f ComponentFlag) String() string {
	var parts []string
	seen := ComponentFlag(0)
	for _, entry := range componentFlagNames {
		if f&entry.bit != 0 {
			parts = append(parts, entry.name)
		}
		seen |= entry.bit
	}
	if rest := f &^ seen; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%04x", uint16(rest)))
	}
	return strings.Join(parts, "|")
}

// componentDataLen returns how many bytes of argument and scale data a
// component with the given flags occupies.
func componentDataLen(flags ComponentFlag) int {
	n := 2 // two one-byte arguments
	if flags&FlagArg1And2AreWords != 0 {
		n = 4
	}
	switch {
	case flags&FlagWeHaveAScale != 0:
		n += 2
	case flags&FlagWeHaveAnXAndYScale != 0:
		n += 4
	case flags&FlagWeHaveATwoByTwo != 0:
		n += 8
	}
	return n
}

// decodeGlyphComposite parses the body of a composite glyph: a chain
// of component records, terminated by a record without the
// MORE_COMPONENTS flag, optionally followed by instructions.
func decodeGlyphComposite(data []byte) (*CompositeGlyph, error) {
	res := &CompositeGlyph{}
	hasInstructions := false

	for {
		if len(data) < 4 {
			return nil, errIncompleteGlyph
		}
		flags := ComponentFlag(data[0])<<8 | ComponentFlag(data[1])
		gid := glyph.ID(data[2])<<8 | glyph.ID(data[3])
		data = data[4:]

		n := componentDataLen(flags)
		if len(data) < n {
			return nil, errIncompleteGlyph
		}
		res.Components = append(res.Components, GlyphComponent{
			Flags:      flags,
			GlyphIndex: gid,
			Data:       data[:n],
		})
		data = data[n:]

		hasInstructions = hasInstructions || flags&FlagWeHaveInstructions != 0
		if flags&FlagMoreComponents == 0 {
			break
		}
	}

	if hasInstructions && len(data) >= 2 {
		instLen := int(data[0])<<8 | int(data[1])
		inst := data[2:]
		if len(inst) > instLen {
			inst = inst[:instLen]
		}
		res.Instructions = inst
	}

	return res, nil
}

// Components returns the child glyph ids of a composite glyph, or nil
// for a simple glyph.
func (g *Glyph) Components() []glyph.ID {
	if g == nil {
		return nil
	}
	composite, ok := g.Data.(CompositeGlyph)
	if !ok {
		return nil
	}
	children := make([]glyph.ID, len(composite.Components))
	for i, comp := range composite.Components {
		children[i] = comp.GlyphIndex
	}
	return children
}

// FixComponents returns a copy of the glyph with its component glyph
// ids mapped through newGid.  Simple glyphs are returned unchanged.
func (g *Glyph) FixComponents(newGid map[glyph.ID]glyph.ID) *Glyph {
	if g == nil {
		return nil
	}
	composite, ok := g.Data.(CompositeGlyph)
	if !ok {
		return g
	}

	fixed := CompositeGlyph{
		Components:   make([]GlyphComponent, len(composite.Components)),
		Instructions: composite.Instructions,
	}
	for i, comp := range composite.Components {
		comp.GlyphIndex = newGid[comp.GlyphIndex]
		fixed.Components[i] = comp
	}
	return &Glyph{
		Rect16: g.Rect16,
		Data:   fixed,
	}
}

// ComponentUnpacked is the decoded form of a glyph component.
type ComponentUnpacked struct {
	// Child is the glyph id of the component glyph.
	Child glyph.ID

	// Trfm is the placement transform in the form
	// [xx, xy, yx, yy, dx, dy]: child coordinates map to
	//   x' = xx*x + yx*y + dx
	//   y' = xy*x + yy*y + dy
	// (with the offset additionally scaled when ScaledComponentOffset
	// is set).
	Trfm matrix.Matrix

	// AlignPoints reports that the component is positioned by matching
	// a point of the parent outline (OurPoint) to a point of the child
	// outline (TheirPoint), instead of by the offset in Trfm.
	AlignPoints bool

	// OurPoint and TheirPoint are the point indices used when
	// AlignPoints is set.
	OurPoint, TheirPoint int16

	// RoundXYToGrid asks the rasterizer to round the placement offset
	// to the pixel grid.
	RoundXYToGrid bool

	// UseMyMetrics makes the composite glyph use this component's
	// advance and side bearings.
	UseMyMetrics bool

	// OverlapCompound is a rasterizer hint that components overlap.
	OverlapCompound bool

	// ScaledComponentOffset applies the component's scale to the
	// placement offset as well.
	ScaledComponentOffset bool
}

// Unpack decodes the component's argument and scale data.
func (gc GlyphComponent) Unpack() (*ComponentUnpacked, error) {
	res := &ComponentUnpacked{
		Child:                 gc.GlyphIndex,
		Trfm:                  matrix.Matrix{1, 0, 0, 1, 0, 0},
		RoundXYToGrid:         gc.Flags&FlagRoundXYToGrid != 0,
		UseMyMetrics:          gc.Flags&FlagUseMyMetrics != 0,
		OverlapCompound:       gc.Flags&FlagOverlapCompound != 0,
		ScaledComponentOffset: gc.Flags&FlagScaledComponentOffset != 0,
	}

	data := gc.Data
	if len(data) < componentDataLen(gc.Flags) {
		return nil, errIncompleteGlyph
	}

	var arg1, arg2 int16
	if gc.Flags&FlagArg1And2AreWords != 0 {
		arg1 = int16(data[0])<<8 | int16(data[1])
		arg2 = int16(data[2])<<8 | int16(data[3])
		data = data[4:]
	} else {
		arg1 = int16(int8(data[0]))
		arg2 = int16(int8(data[1]))
		data = data[2:]
	}

	f2dot14 := func(i int) float64 {
		v := int16(data[2*i])<<8 | int16(data[2*i+1])
		return float64(v) / 16384
	}
	switch {
	case gc.Flags&FlagWeHaveAScale != 0:
		s := f2dot14(0)
		res.Trfm[0] = s
		res.Trfm[3] = s
	case gc.Flags&FlagWeHaveAnXAndYScale != 0:
		res.Trfm[0] = f2dot14(0)
		res.Trfm[3] = f2dot14(1)
	case gc.Flags&FlagWeHaveATwoByTwo != 0:
		res.Trfm[0] = f2dot14(0)
		res.Trfm[1] = f2dot14(1)
		res.Trfm[2] = f2dot14(2)
		res.Trfm[3] = f2dot14(3)
	}

	if gc.Flags&FlagArgsAreXYValues != 0 {
		res.Trfm[4] = float64(arg1)
		res.Trfm[5] = float64(arg2)
	} else {
		res.AlignPoints = true
		res.OurPoint = arg1
		res.TheirPoint = arg2
	}

	return res, nil
}

// Pack re-encodes the component.  The scale data uses the smallest
// layout which represents the transform: nothing for an identity, one
// F2.14 value for a uniform scale, two for an axis-aligned scale, and
// a full 2x2 matrix otherwise.
func (cu *ComponentUnpacked) Pack() GlyphComponent {
	gc := GlyphComponent{GlyphIndex: cu.Child}

	if cu.RoundXYToGrid {
		gc.Flags |= FlagRoundXYToGrid
	}
	if cu.UseMyMetrics {
		gc.Flags |= FlagUseMyMetrics
	}
	if cu.OverlapCompound {
		gc.Flags |= FlagOverlapCompound
	}
	if cu.ScaledComponentOffset {
		gc.Flags |= FlagScaledComponentOffset
	} else {
		gc.Flags |= FlagUnscaledComponentOffset
	}

	var arg1, arg2 int16
	if cu.AlignPoints {
		arg1, arg2 = cu.OurPoint, cu.TheirPoint
	} else {
		gc.Flags |= FlagArgsAreXYValues
		arg1 = int16(math.Round(cu.Trfm[4]))
		arg2 = int16(math.Round(cu.Trfm[5]))
	}

	var data []byte
	if arg1 >= -128 && arg1 <= 127 && arg2 >= -128 && arg2 <= 127 {
		data = append(data, byte(int8(arg1)), byte(int8(arg2)))
	} else {
		gc.Flags |= FlagArg1And2AreWords
		data = append(data, byte(arg1>>8), byte(arg1), byte(arg2>>8), byte(arg2))
	}

	appendF2dot14 := func(v float64) {
		scaled := math.Round(v * 16384)
		if scaled > math.MaxInt16 {
			scaled = math.MaxInt16
		} else if scaled < math.MinInt16 {
			scaled = math.MinInt16
		}
		raw := int16(scaled)
		data = append(data, byte(raw>>8), byte(raw))
	}

	xx, xy, yx, yy := cu.Trfm[0], cu.Trfm[1], cu.Trfm[2], cu.Trfm[3]
	diagonal := xy == 0 && yx == 0
	switch {
	case diagonal && xx == 1 && yy == 1:
		// identity, no scale data
	case diagonal && xx == yy:
		gc.Flags |= FlagWeHaveAScale
		appendF2dot14(xx)
	case diagonal:
		gc.Flags |= FlagWeHaveAnXAndYScale
		appendF2dot14(xx)
		appendF2dot14(yy)
	default:
		gc.Flags |= FlagWeHaveATwoByTwo
		appendF2dot14(xx)
		appendF2dot14(xy)
		appendF2dot14(yx)
		appendF2dot14(yy)
	}

	gc.Data = data
	return gc
}

var errIncompleteGlyph = &parser.InvalidFontError{
	SubSystem: "sfnt/glyf",
	Reason:    "incomplete glyph",
}
