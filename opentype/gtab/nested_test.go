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
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/cdelker/glyphpath/glyph"
	"github.com/cdelker/glyphpath/opentype/classdef"
	"github.com/cdelker/glyphpath/opentype/coverage"
	"github.com/cdelker/glyphpath/opentype/gdef"
	"github.com/cdelker/glyphpath/parser"
)

// doFuzz decodes data with reader and fails the test if decoding panics.
// There is no general-purpose encoder for these subtable formats in the
// production code, so this only exercises decode robustness rather than
// a full encode/decode round trip.
func doFuzz(t *testing.T, reader func(*parser.Parser, int64) (Subtable, error), data []byte) {
	p := parser.New(bytes.NewReader(data))
	reader(p, 0)
}

// TestNestedSimple tests that the nested lookup works as expected
// when the nested lookups are single glyph substitutions.
func TestNestedSimple(t *testing.T) {
	type testCase struct {
		sequenceIndex []int
		out           []glyph.ID
	}
	cases := []testCase{
		{[]int{0}, []glyph.ID{2, 1, 1, 1, 1, 3, 3}},
		{[]int{1}, []glyph.ID{1, 1, 2, 1, 1, 3, 3}},
		{[]int{2}, []glyph.ID{1, 1, 1, 1, 2, 3, 3}},
		{[]int{3}, []glyph.ID{1, 1, 1, 1, 1, 3, 3}},
		{[]int{1, 2}, []glyph.ID{1, 1, 2, 1, 2, 3, 3}},
		{[]int{1, 3}, []glyph.ID{1, 1, 2, 1, 1, 3, 3}},
	}
	for _, test := range cases {
		var nested []SeqLookup
		for _, seqenceIndex := range test.sequenceIndex {
			nested = append(nested, SeqLookup{
				SequenceIndex:   uint16(seqenceIndex),
				LookupListIndex: 1,
			})
		}
		info := &Info{
			LookupList: LookupList{
				{
					Meta: &LookupMetaInfo{},
					Subtables: []Subtable{
						&debugNestedLookup{
							matchPos: []int{0, 2, 4},
							actions:  nested,
						},
					},
				},
				{ // 1 -> 2
					Meta: &LookupMetaInfo{
						LookupType: 1,
					},
					Subtables: []Subtable{
						&Gsub1_1{
							Cov:   coverage.Set{1: true},
							Delta: 1,
						},
					},
				},
			},
		}
		seq := []glyph.Info{
			{GID: 1}, {GID: 1}, {GID: 1}, {GID: 1}, {GID: 1}, {GID: 1}, {GID: 1},
		}
		e := NewContext(info.LookupList, nil, []LookupIndex{0})
		seq = e.Apply(seq)
		var out []glyph.ID
		for _, g := range seq {
			out = append(out, g.GID)
		}
		if diff := cmp.Diff(test.out, out); diff != "" {
			t.Error(diff)
		}
	}
}

func TestChainedSeqContext1(t *testing.T) {
	in := []glyph.Info{
		{GID: 1}, {GID: 99}, {GID: 2}, {GID: 99}, {GID: 3}, {GID: 4}, {GID: 99}, {GID: 5},
	}
	l := &ChainedSeqContext1{
		Cov: map[glyph.ID]int{2: 0, 3: 1, 4: 2},
		Rules: [][]*ChainedSeqRule{
			{ // seq = 2, ...
				{
					Input: []glyph.ID{2},
				},
				{
					Input:     []glyph.ID{3, 4},
					Lookahead: []glyph.ID{99},
				},
				{
					Input:     []glyph.ID{3, 4, 5},
					Backtrack: []glyph.ID{2},
				},
			},
			{ // seq = 3, ...
				{
					Input:     []glyph.ID{4},
					Lookahead: []glyph.ID{5},
					Backtrack: []glyph.ID{2, 1},
				},
			},
			{ // seq = 4, ...
			},
		},
	}
	keep := makeDebugKeepFunc()

	cases := []struct {
		before, after int
	}{
		{0, -1},
		{1, -1},
		{2, -1},
		{3, -1},
		{4, 6}, // matches [1, 2,] 3, 4, [5], also skips 99
	}
	ctx := &Context{seq: in, keep: keep}
	for _, test := range cases {
		next := l.Apply(ctx, test.before, len(in))
		if next != test.after {
			t.Errorf("Apply(%d) = %d, want %d", test.before, next, test.after)
		}
	}
}

func BenchmarkChainedSeqContext1(b *testing.B) {
	l0 := &Gsub1_1{
		Cov:   coverage.Set{1: true, 2: true},
		Delta: 1,
	}
	l1 := &ChainedSeqContext1{
		Cov: map[glyph.ID]int{1: 0, 2: 1},
		Rules: [][]*ChainedSeqRule{
			{ // seq = 1, ...
				{
					Input:     []glyph.ID{1, 2},
					Lookahead: []glyph.ID{2},
					Actions:   []SeqLookup{{SequenceIndex: 1, LookupListIndex: 0}},
				},
				{
					Backtrack: []glyph.ID{1},
					Input:     []glyph.ID{2, 2},
					Actions:   []SeqLookup{{SequenceIndex: 1, LookupListIndex: 0}},
				},
			},
			{ // seq = 2, ...
				{
					Backtrack: []glyph.ID{1},
					Input:     []glyph.ID{2, 1},
					Actions:   []SeqLookup{{SequenceIndex: 1, LookupListIndex: 0}},
				},
				{
					Input:     []glyph.ID{1, 1},
					Lookahead: []glyph.ID{2},
					Actions:   []SeqLookup{{SequenceIndex: 1, LookupListIndex: 0}},
				},
			},
		},
	}
	ll := []*LookupTable{
		{
			Meta:      &LookupMetaInfo{LookupType: 1},
			Subtables: []Subtable{l0},
		},
		{
			Meta:      &LookupMetaInfo{LookupType: 5},
			Subtables: []Subtable{l1},
		},
	}
	var seq []glyph.Info
	ctx := NewContext(ll, nil, []LookupIndex{1})

	for _, gid := range []glyph.ID{1, 2, 1, 2, 2, 1, 1, 2, 2, 1, 1, 2, 2, 1, 1, 2, 2, 1, 1, 2} {
		seq = append(seq, glyph.Info{GID: gid})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx.Apply(seq)
	}
}

func FuzzChainedSeqContext1(f *testing.F) {
	f.Add([]byte{
		0, 1, // format 1
		0, 8, // coverageOffset
		0, 1, // ruleSetCount
		0, 14, // ruleSetOffset[0]
		0, 1, 0, 1, 0, 5, // coverage table (format 1, glyph 5)
		0, 1, // seqRuleCount
		0, 4, // seqRuleOffset[0]
		0, 0, // backtrackGlyphCount
		0, 2, // inputGlyphCount
		0, 6, // input[1]
		0, 1, // lookaheadGlyphCount
		0, 7, // lookahead[0]
		0, 1, // seqLookupCount
		0, 0, // sequenceIndex
		0, 0, // lookupListIndex
	})
	f.Fuzz(func(t *testing.T, data []byte) {
		doFuzz(t, readChainedSeqContext1, data)
	})
}

func BenchmarkChainedSeqContext2(b *testing.B) {
	l0 := &Gsub1_1{
		Cov:   coverage.Set{1: true, 2: true},
		Delta: 1,
	}
	l1 := &ChainedSeqContext2{
		Cov:       map[glyph.ID]int{1: 0, 2: 1},
		Backtrack: classdef.Table{1: 1, 2: 2},
		Input:     classdef.Table{1: 1, 2: 1},
		Lookahead: classdef.Table{1: 1, 2: 1},
		Rules: [][]*ChainedClassSeqRule{
			{ // seq = 1, ...
				{
					Input:     []uint16{1, 2},
					Lookahead: []uint16{2},
					Actions:   []SeqLookup{{SequenceIndex: 1, LookupListIndex: 0}},
				},
				{
					Backtrack: []uint16{1},
					Input:     []uint16{2, 2},
					Actions:   []SeqLookup{{SequenceIndex: 1, LookupListIndex: 0}},
				},
			},
			{ // seq = 2, ...
				{
					Backtrack: []uint16{1},
					Input:     []uint16{2, 1},
					Actions:   []SeqLookup{{SequenceIndex: 1, LookupListIndex: 0}},
				},
				{
					Input:     []uint16{1, 1},
					Lookahead: []uint16{2},
					Actions:   []SeqLookup{{SequenceIndex: 1, LookupListIndex: 0}},
				},
			},
		},
	}
	ll := []*LookupTable{
		{
			Meta:      &LookupMetaInfo{LookupType: 1},
			Subtables: []Subtable{l0},
		},
		{
			Meta:      &LookupMetaInfo{LookupType: 5},
			Subtables: []Subtable{l1},
		},
	}
	var seq []glyph.Info
	ctx := NewContext(ll, nil, []LookupIndex{1})

	for _, gid := range []glyph.ID{1, 2, 1, 2, 2, 1, 1, 2, 2, 1, 1, 2, 2, 1, 1, 2, 2, 1, 1, 2} {
		seq = append(seq, glyph.Info{GID: gid})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx.Apply(seq)
	}
}

func FuzzChainedSeqContext2(f *testing.F) {
	f.Add([]byte{
		0, 2, // format 2
		0, 12, // coverageOffset
		0, 16, // backtrackClassDefOffset
		0, 20, // inputClassDefOffset
		0, 24, // lookaheadClassDefOffset
		0, 0, // ruleSetCount
		0, 1, 0, 0, // coverage table (format 1, 0 glyphs)
		0, 2, 0, 0, // backtrack classdef (format 2, 0 ranges)
		0, 2, 0, 0, // input classdef (format 2, 0 ranges)
		0, 2, 0, 0, // lookahead classdef (format 2, 0 ranges)
	})

	f.Fuzz(func(t *testing.T, data []byte) {
		doFuzz(t, readChainedSeqContext2, data)
	})
}

func BenchmarkChainedSeqContext3(b *testing.B) {
	l0 := &Gsub1_1{
		Cov:   coverage.Set{1: true, 2: true},
		Delta: 1,
	}
	l1 := &ChainedSeqContext3{
		Backtrack: []coverage.Set{{1: true}},
		Input:     []coverage.Set{{1: true}, {2: true}},
		Lookahead: []coverage.Set{{2: true}},
		Actions:   []SeqLookup{{SequenceIndex: 1, LookupListIndex: 0}},
	}
	ll := []*LookupTable{
		{
			Meta:      &LookupMetaInfo{LookupType: 1},
			Subtables: []Subtable{l0},
		},
		{
			Meta:      &LookupMetaInfo{LookupType: 5},
			Subtables: []Subtable{l1},
		},
	}
	var seq []glyph.Info
	ctx := NewContext(ll, nil, []LookupIndex{1})

	for _, gid := range []glyph.ID{1, 2, 1, 2, 2, 1, 1, 2, 2, 1, 1, 2, 2, 1, 1, 2, 2, 1, 1, 2} {
		seq = append(seq, glyph.Info{GID: gid})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx.Apply(seq)
	}
}

func FuzzChainedSeqContext3(f *testing.F) {
	f.Add([]byte{
		0, 0, // backtrackGlyphCount
		0, 1, // inputGlyphCount
		0, 10, // inputOffsets[0]
		0, 0, // lookaheadGlyphCount
		0, 0, // seqLookupCount
		0, 1, 0, 0, // coverage table for input[0] (format 1, 0 glyphs)
	})

	f.Fuzz(func(t *testing.T, data []byte) {
		doFuzz(t, readChainedSeqContext3, data)
	})
}

// makeDebugKeepFunc returns a KeepFunc which keeps glyphs with GID < 50,
// and ignores all glyphs 50, ..., 255.
func makeDebugKeepFunc() *keepFunc {
	class := classdef.Table{}
	for i := glyph.ID(0); i < 256; i++ {
		if i < 50 {
			class[i] = gdef.GlyphClassBase
		} else {
			class[i] = gdef.GlyphClassMark
		}
	}
	gdef := &gdef.Table{GlyphClass: class}
	meta := &LookupMetaInfo{LookupFlags: IgnoreMarks}
	return &keepFunc{Gdef: gdef, Meta: meta}
}

func TestDebugKeepFunc(t *testing.T) {
	k := makeDebugKeepFunc()
	for i := glyph.ID(0); i < 256; i++ {
		if k.Keep(i) != (i < 50) {
			t.Errorf("Keep(%d) = %v, want %v", i, k.Keep(i), i < 50)
		}
	}
}

type debugNestedLookup struct {
	matchPos []int
	actions  []SeqLookup
}

func (l *debugNestedLookup) Apply(ctx *Context, a, b int) int {
	if a != 0 {
		ctx.seq[a].GID = 3
		return a + 1
	}

	next := l.matchPos[len(l.matchPos)-1] + 1
	ctx.stack = append(ctx.stack, &nested{
		InputPos: l.matchPos,
		Actions:  l.actions,
		EndPos:   next,
	})
	return next
}
