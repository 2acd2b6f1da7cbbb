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

package gtab

import (
	"fmt"
	"slices"

	"golang.org/x/exp/maps"
	"github.com/cdelker/glyphpath/glyph"
	"github.com/cdelker/glyphpath/opentype/classdef"
	"github.com/cdelker/glyphpath/opentype/coverage"
	"github.com/cdelker/glyphpath/parser"
)

// readGposSubtable reads a GPOS subtable.
// This function can be used as the SubtableReader argument to readLookupList().
func readGposSubtable(p *parser.Parser, pos int64, meta *LookupMetaInfo) (Subtable, error) {
	// Cursive attachment (type 3), mark-to-ligature attachment (type 5)
	// and contextual positioning (types 7 and 8) are not applied by this
	// package.  The subtable is replaced by a placeholder which never
	// matches, so that the rest of the lookup list can still be used.
	switch meta.LookupType {
	case 3, 5, 7, 8:
		return &unsupportedSubtable{TableType: TypeGpos, LookupType: meta.LookupType}, nil
	}

	err := p.SeekPos(pos)
	if err != nil {
		return nil, err
	}

	format, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	reader, ok := gposReaders[10*meta.LookupType+format]
	if !ok {
		return nil, &parser.InvalidFontError{
			SubSystem: "sfnt/opentype/gtab",
			Reason: fmt.Sprintf("unknown GPOS subtable format %d.%d",
				meta.LookupType, format),
		}
	}
	return reader(p, pos)
}

// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos#gsubLookupTypeEnum
var gposReaders = map[uint16]func(p *parser.Parser, pos int64) (Subtable, error){
	1_1: readGpos1_1,
	1_2: readGpos1_2,
	2_1: readGpos2_1,
	2_2: readGpos2_2,
	4_1: readGpos4_1,
	6_1: readGpos6_1,
	9_1: readExtensionSubtable,
}

// Gpos1_1 is a Single Adjustment Positioning Subtable (GPOS type 1, format 1).
// If specifies a single adjustment to be applied to all glyphs in the
// coverage table.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos#single-adjustment-positioning-format-1-single-positioning-value
type Gpos1_1 struct {
	Cov    coverage.Table
	Adjust *GposValueRecord
}

func readGpos1_1(p *parser.Parser, subtablePos int64) (Subtable, error) {
	buf, err := p.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	coverageOffset := int64(buf[0])<<8 | int64(buf[1])
	valueFormat := uint16(buf[2])<<8 | uint16(buf[3])
	valueRecord, err := readValueRecord(p, valueFormat)
	if err != nil {
		return nil, err
	}
	cov, err := coverage.Read(p, subtablePos+coverageOffset)
	if err != nil {
		return nil, err
	}
	res := &Gpos1_1{
		Cov:    cov,
		Adjust: valueRecord,
	}
	return res, nil
}

// apply implements the [Subtable] interface.
func (l *Gpos1_1) Apply(ctx *Context, a, b int) int {
	seq := ctx.seq

	_, ok := l.Cov[seq[a].GID]
	if !ok {
		return -1
	}

	l.Adjust.Apply(&seq[a])
	return a + 1
}

// Gpos1_2 is a Single Adjustment Positioning Subtable (GPOS type 1, format 2).
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos#single-adjustment-positioning-format-2-array-of-positioning-values
type Gpos1_2 struct {
	Cov    coverage.Table
	Adjust []*GposValueRecord // indexed by coverage index
}

func readGpos1_2(p *parser.Parser, subtablePos int64) (Subtable, error) {
	buf, err := p.ReadBytes(6)
	if err != nil {
		return nil, err
	}
	coverageOffset := int64(buf[0])<<8 | int64(buf[1])
	valueFormat := uint16(buf[2])<<8 | uint16(buf[3])
	valueCount := int(buf[4])<<8 | int(buf[5])
	valueRecords := make([]*GposValueRecord, valueCount)
	for i := range valueRecords {
		valueRecords[i], err = readValueRecord(p, valueFormat)
		if err != nil {
			return nil, err
		}
	}
	cov, err := coverage.Read(p, subtablePos+coverageOffset)
	if err != nil {
		return nil, err
	}

	if len(valueRecords) > len(cov) {
		valueRecords = valueRecords[:len(cov)]
	} else if len(valueRecords) < len(cov) {
		cov.Prune(len(valueRecords))
	}

	res := &Gpos1_2{
		Cov:    cov,
		Adjust: valueRecords,
	}
	return res, nil
}

// apply implements the [Subtable] interface.
func (l *Gpos1_2) Apply(ctx *Context, a, b int) int {
	seq := ctx.seq
	idx, ok := l.Cov[seq[a].GID]
	if !ok {
		return -1
	}
	l.Adjust[idx].Apply(&seq[a])
	return a + 1
}

// Gpos2_1 is a Pair Adjustment Positioning Subtable (format 1).
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos#pair-adjustment-positioning-format-1-adjustments-for-glyph-pairs
type Gpos2_1 map[glyph.Pair]*PairAdjust

// PairAdjust represents information from a PairValueRecord table.
//
// This is used in [Gpos2_1] and [Gpos2_2] subtables.
type PairAdjust struct {
	First, Second *GposValueRecord
}

// apply implements the [Subtable] interface.
func (l Gpos2_1) Apply(ctx *Context, a, b int) int {
	seq := ctx.seq
	keep := ctx.keep

	p := a + 1
	for p < b && !keep.Keep(seq[p].GID) {
		p++
	}
	if p >= b {
		return -1
	}

	g1 := seq[a]
	g2 := seq[p]
	adj, ok := l[glyph.Pair{Left: g1.GID, Right: g2.GID}]
	if !ok {
		return -1
	}

	adj.First.Apply(&seq[a])
	if adj.Second == nil {
		return p
	}
	adj.Second.Apply(&seq[p])
	return p + 1
}

func readGpos2_1(p *parser.Parser, subtablePos int64) (Subtable, error) {
	buf, err := p.ReadBytes(8)
	if err != nil {
		return nil, err
	}
	coverageOffset := int64(buf[0])<<8 | int64(buf[1])
	valueFormat1 := uint16(buf[2])<<8 | uint16(buf[3])
	valueFormat2 := uint16(buf[4])<<8 | uint16(buf[5])
	pairSetCount := int(buf[6])<<8 | int(buf[7])

	pairSetOffsets := make([]uint16, pairSetCount)
	for i := range pairSetOffsets {
		pairSetOffsets[i], err = p.ReadUint16()
		if err != nil {
			return nil, err
		}
	}

	cov, err := coverage.Read(p, subtablePos+coverageOffset)
	if err != nil {
		return nil, err
	}

	if len(pairSetOffsets) > len(cov) {
		pairSetOffsets = pairSetOffsets[:len(cov)]
	} else if len(pairSetOffsets) < len(cov) {
		cov.Prune(len(pairSetOffsets))
	}

	adjust := make([]map[glyph.ID]*PairAdjust, len(pairSetOffsets))
	for i, offset := range pairSetOffsets {
		err = p.SeekPos(subtablePos + int64(offset))
		if err != nil {
			return nil, err
		}
		pairValueCount, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		adj := make(map[glyph.ID]*PairAdjust, pairValueCount)
		for j := 0; j < int(pairValueCount); j++ {
			secondGlyph, err := p.ReadUint16()
			if err != nil {
				return nil, err
			}
			first, err := readValueRecord(p, valueFormat1)
			if err != nil {
				return nil, err
			}
			second, err := readValueRecord(p, valueFormat2)
			if err != nil {
				return nil, err
			}
			adj[glyph.ID(secondGlyph)] = &PairAdjust{
				First:  first,
				Second: second,
			}
		}
		adjust[i] = adj
	}

	res := Gpos2_1{}
	for first, i := range cov {
		for second, a := range adjust[i] {
			res[glyph.Pair{Left: first, Right: second}] = a
		}
	}
	return res, nil
}

// CovAndAdjust is a convenience function which returns the coverage table and
// the adjustments.
func (l Gpos2_1) CovAndAdjust() (coverage.Table, []map[glyph.ID]*PairAdjust) {
	seen := make(map[glyph.ID]bool)
	for pair := range l {
		seen[pair.Left] = true
	}

	firstGids := maps.Keys(seen)
	slices.Sort(firstGids)
	cov := coverage.Table{}
	adjust := make([]map[glyph.ID]*PairAdjust, len(firstGids))
	for i, gid := range firstGids {
		cov[gid] = i
		adjust[i] = map[glyph.ID]*PairAdjust{}
	}

	for pair := range l {
		adjust[cov[pair.Left]][pair.Right] = l[pair]
	}

	return cov, adjust
}

// Gpos2_2 is a Pair Adjustment Positioning Subtable (format 2).
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos#pair-adjustment-positioning-format-2-class-pair-adjustment
type Gpos2_2 struct {
	Cov            coverage.Set
	Class1, Class2 classdef.Table
	Adjust         [][]*PairAdjust // indexed by class1 index, then class2 index
}

// apply implements the [Subtable] interface.
func (l *Gpos2_2) Apply(ctx *Context, a, b int) int {
	seq := ctx.seq
	keep := ctx.keep

	g1 := seq[a]
	_, ok := l.Cov[g1.GID]
	if !ok {
		return -1
	}

	p := a + 1
	for p < b && !keep.Keep(seq[p].GID) {
		p++
	}
	if p >= b {
		return -1
	}
	g2 := seq[p]

	class1 := l.Class1[g1.GID]
	if int(class1) >= len(l.Adjust) {
		return -1
	}
	row := l.Adjust[class1]
	class2 := l.Class2[g2.GID]
	if int(class2) >= len(row) {
		return -1
	}
	adj := row[class2]

	adj.First.Apply(&seq[a])
	if adj.Second == nil {
		return p
	}
	adj.Second.Apply(&seq[p])
	return p + 1
}

func readGpos2_2(p *parser.Parser, subtablePos int64) (Subtable, error) {
	buf, err := p.ReadBytes(14)
	if err != nil {
		return nil, err
	}
	coverageOffset := int64(buf[0])<<8 | int64(buf[1])
	valueFormat1 := uint16(buf[2])<<8 | uint16(buf[3])
	valueFormat2 := uint16(buf[4])<<8 | uint16(buf[5])
	classDef1Offset := int64(buf[6])<<8 | int64(buf[7])
	classDef2Offset := int64(buf[8])<<8 | int64(buf[9])
	class1Count := uint16(buf[10])<<8 | uint16(buf[11])
	class2Count := uint16(buf[12])<<8 | uint16(buf[13])

	numRecords := int(class1Count) * int(class2Count)
	if numRecords >= 65536 {
		return nil, &parser.InvalidFontError{
			SubSystem: "sfnt/opentype/gtab",
			Reason:    "GPOS2.1 table too large",
		}
	}
	records := make([]*PairAdjust, numRecords)
	for i := 0; i < numRecords; i++ {
		first, err := readValueRecord(p, valueFormat1)
		if err != nil {
			return nil, err
		}
		second, err := readValueRecord(p, valueFormat2)
		if err != nil {
			return nil, err
		}
		records[i] = &PairAdjust{
			First:  first,
			Second: second,
		}
	}

	cov, err := coverage.ReadSet(p, subtablePos+coverageOffset)
	if err != nil {
		return nil, err
	}

	classDef1, err := classdef.Read(p, subtablePos+classDef1Offset)
	if err != nil {
		return nil, err
	}
	classDef2, err := classdef.Read(p, subtablePos+classDef2Offset)
	if err != nil {
		return nil, err
	}

	adjust := make([][]*PairAdjust, class1Count)
	for i := 0; i < int(class1Count); i++ {
		adjust[i] = records[i*int(class2Count) : (i+1)*int(class2Count)]
	}

	return &Gpos2_2{
		Cov:    cov,
		Class1: classDef1,
		Class2: classDef2,
		Adjust: adjust,
	}, nil
}
