// github.com/cdelker/glyphpath - a library for reading and writing font files
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

package gtab

import (
	"github.com/cdelker/glyphpath/glyph"
	"github.com/cdelker/glyphpath/opentype/gdef"
)

// A Context drives the application of a list of lookups to a glyph
// sequence. Subtable implementations receive a *Context and read and
// write ctx.seq and ctx.stack directly; this is what allows contextual
// and chaining lookups to trigger nested lookups without the driver
// loop knowing about the specific subtable type.
type Context struct {
	ll      LookupList
	gdef    *gdef.Table
	lookups []LookupIndex

	seq   []glyph.Info
	keep  *keepFunc
	stack []*nested
}

// NewContext creates a new layout context which applies the given
// lookups, in order, to a glyph sequence.  The gdef parameter, if
// non-nil, is used to resolve glyph classes for lookup flags.
func NewContext(ll LookupList, gdef *gdef.Table, lookups []LookupIndex) *Context {
	return &Context{ll: ll, gdef: gdef, lookups: lookups}
}

// Apply applies the context's lookups, in order, to seq and returns the
// resulting glyph sequence.
//
// This is the main entry point for external users of GSUB and GPOS tables.
func (ctx *Context) Apply(seq []glyph.Info) []glyph.Info {
	ctx.seq = seq
	for _, lookupIndex := range ctx.lookups {
		if int(lookupIndex) >= len(ctx.ll) {
			continue
		}

		pos := 0
		numLeft := len(ctx.seq)
		for pos < len(ctx.seq) {
			pos = ctx.applyLookupAt(lookupIndex, pos)

			newNumLeft := len(ctx.seq) - pos
			if newNumLeft >= numLeft {
				pos = len(ctx.seq) - numLeft + 1
			}
			numLeft = newNumLeft
		}
	}
	return ctx.seq
}

// applyLookupAt applies a single lookup at position pos, following
// nested/contextual actions via ctx.stack until all of them are
// resolved.  It returns the position from which to continue scanning.
func (ctx *Context) applyLookupAt(lookupIndex LookupIndex, pos int) int {
	ctx.stack = append(ctx.stack[:0], &nested{
		InputPos: []int{pos},
		Actions:  SeqLookups{{SequenceIndex: 0, LookupListIndex: lookupIndex}},
		EndPos:   len(ctx.seq),
	})

	next := pos + 1
	nextUpdated := false

	numActions := 0
	for len(ctx.stack) > 0 && numActions < 64 {
		k := len(ctx.stack) - 1
		if len(ctx.stack[k].Actions) == 0 {
			ctx.stack = ctx.stack[:k]
			continue
		}

		numActions++

		action := ctx.stack[k].Actions[0]
		seqIdx := action.SequenceIndex
		ctx.stack[k].Actions = ctx.stack[k].Actions[1:]
		if int(seqIdx) >= len(ctx.stack[k].InputPos) {
			continue
		}
		p := ctx.stack[k].InputPos[seqIdx]
		end := ctx.stack[k].EndPos

		idx := action.LookupListIndex
		if int(idx) >= len(ctx.ll) {
			continue
		}
		lookup := ctx.ll[idx]
		ctx.keep = newKeepFunc(lookup.Meta, ctx.gdef)

		if !ctx.keep.Keep(ctx.seq[p].GID) {
			continue
		}

		newPos := -1
		for _, st := range lookup.Subtables {
			r := st.Apply(ctx, p, end)
			if r >= 0 {
				newPos = r
				break
			}
		}
		if newPos < 0 {
			continue
		}

		if !nextUpdated {
			next = newPos
			nextUpdated = true
		}

		// If the subtable pushed further nested actions (contextual or
		// chaining lookups), they remain on ctx.stack to be processed on
		// a later iteration; otherwise it already mutated ctx.seq directly.
	}

	return next
}
