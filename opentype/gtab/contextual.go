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
	"github.com/cdelker/glyphpath/glyph"
	"github.com/cdelker/glyphpath/opentype/classdef"
	"github.com/cdelker/glyphpath/opentype/coverage"
	"github.com/cdelker/glyphpath/parser"
)

// ChainedSeqContext1 is a Chained Sequence Context subtable (format 1),
// used for GSUB lookup type 6.  The match can also depend on backtrack
// and lookahead glyphs outside the replaced range.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#chained-sequence-context-format-1-simple-glyph-contexts
type ChainedSeqContext1 struct {
	Cov   coverage.Table
	Rules [][]*ChainedSeqRule
}

// ChainedSeqRule is one rule inside a [ChainedSeqContext1] rule set.
type ChainedSeqRule struct {
	Backtrack []glyph.ID
	Input     []glyph.ID // excludes the first input glyph, which is in Cov
	Lookahead []glyph.ID
	Actions   SeqLookups
}

func readChainedSeqContext1(p *parser.Parser, subtablePos int64) (Subtable, error) {
	coverageOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	chainedSeqRuleSetOffsets, err := p.ReadUint16Slice()
	if err != nil {
		return nil, err
	}

	cov, err := coverage.Read(p, subtablePos+int64(coverageOffset))
	if err != nil {
		return nil, err
	}
	if len(cov) > len(chainedSeqRuleSetOffsets) {
		cov.Prune(len(chainedSeqRuleSetOffsets))
	} else {
		chainedSeqRuleSetOffsets = chainedSeqRuleSetOffsets[:len(cov)]
	}

	rules := make([][]*ChainedSeqRule, len(chainedSeqRuleSetOffsets))
	for i, chainedSeqRuleSetOffset := range chainedSeqRuleSetOffsets {
		base := subtablePos + int64(chainedSeqRuleSetOffset)
		err = p.SeekPos(base)
		if err != nil {
			return nil, err
		}
		chainedSeqRuleOffsets, err := p.ReadUint16Slice()
		if err != nil {
			return nil, err
		}
		rules[i] = make([]*ChainedSeqRule, len(chainedSeqRuleOffsets))
		for j, chainedSeqRuleOffset := range chainedSeqRuleOffsets {
			err = p.SeekPos(base + int64(chainedSeqRuleOffset))
			if err != nil {
				return nil, err
			}

			backtrack, err := p.ReadGIDSlice()
			if err != nil {
				return nil, err
			}
			inputGlyphCount, err := p.ReadUint16()
			if err != nil {
				return nil, err
			}
			input := make([]glyph.ID, inputGlyphCount-1)
			for k := range input {
				val, err := p.ReadUint16()
				if err != nil {
					return nil, err
				}
				input[k] = glyph.ID(val)
			}
			lookahead, err := p.ReadGIDSlice()
			if err != nil {
				return nil, err
			}
			seqLookupCount, err := p.ReadUint16()
			if err != nil {
				return nil, err
			}
			actions := make(SeqLookups, seqLookupCount)
			for k := range actions {
				buf, err := p.ReadBytes(4)
				if err != nil {
					return nil, err
				}
				actions[k].SequenceIndex = uint16(buf[0])<<8 | uint16(buf[1])
				actions[k].LookupListIndex = LookupIndex(buf[2])<<8 | LookupIndex(buf[3])
			}
			rules[i][j] = &ChainedSeqRule{
				Backtrack: backtrack,
				Input:     input,
				Lookahead: lookahead,
				Actions:   actions,
			}
		}
	}

	return &ChainedSeqContext1{Cov: cov, Rules: rules}, nil
}

// Apply implements the [Subtable] interface.
func (l *ChainedSeqContext1) Apply(ctx *Context, a, b int) int {
	seq := ctx.seq
	keep := ctx.keep

	rulesIdx, ok := l.Cov[seq[a].GID]
	if !ok {
		return -1
	}

ruleLoop:
	for _, rule := range l.Rules[rulesIdx] {
		p := a
		glyphsNeeded := len(rule.Backtrack)
		for _, gid := range rule.Backtrack {
			glyphsNeeded--
			p--
			for p-glyphsNeeded >= 0 && !keep.Keep(seq[p].GID) {
				p--
			}
			if p-glyphsNeeded < 0 || seq[p].GID != gid {
				continue ruleLoop
			}
		}

		p = a
		matchPos := []int{p}
		glyphsNeeded = len(rule.Input) + len(rule.Lookahead)
		for _, gid := range rule.Input {
			glyphsNeeded--
			p++
			for p+glyphsNeeded < b && !keep.Keep(seq[p].GID) {
				p++
			}
			if p+glyphsNeeded >= b || seq[p].GID != gid {
				continue ruleLoop
			}
			matchPos = append(matchPos, p)
		}
		next := p + 1

		for _, gid := range rule.Lookahead {
			glyphsNeeded--
			p++
			for p+glyphsNeeded < b && !keep.Keep(seq[p].GID) {
				p++
			}
			if p+glyphsNeeded >= b || seq[p].GID != gid {
				continue ruleLoop
			}
		}

		ctx.stack = append(ctx.stack, &nested{
			InputPos: matchPos,
			Actions:  resolveActions(rule.Actions, matchPos),
			EndPos:   next,
		})
		return next
	}

	return -1
}

// ChainedSeqContext2 is a Chained Sequence Context subtable (format 2),
// used for GSUB lookup type 6.  Like
// [ChainedSeqContext1], but glyphs are matched by class rather than by
// literal glyph ID.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#chained-sequence-context-format-2-class-based-glyph-contexts
type ChainedSeqContext2 struct {
	Cov       coverage.Table
	Backtrack classdef.Table
	Input     classdef.Table
	Lookahead classdef.Table
	Rules     [][]*ChainedClassSeqRule
}

// ChainedClassSeqRule is one rule inside a [ChainedSeqContext2] rule set.
type ChainedClassSeqRule struct {
	Backtrack []uint16
	Input     []uint16 // class values; excludes the first glyph, which is in Cov
	Lookahead []uint16
	Actions   SeqLookups
}

func readChainedSeqContext2(p *parser.Parser, subtablePos int64) (Subtable, error) {
	buf, err := p.ReadBytes(8)
	if err != nil {
		return nil, err
	}
	coverageOffset := uint16(buf[0])<<8 | uint16(buf[1])
	backtrackClassDefOffset := uint16(buf[2])<<8 | uint16(buf[3])
	inputClassDefOffset := uint16(buf[4])<<8 | uint16(buf[5])
	lookaheadClassDefOffset := uint16(buf[6])<<8 | uint16(buf[7])
	chainedSeqRuleSetOffsets, err := p.ReadUint16Slice()
	if err != nil {
		return nil, err
	}

	cov, err := coverage.Read(p, subtablePos+int64(coverageOffset))
	if err != nil {
		return nil, err
	}
	if len(cov) > len(chainedSeqRuleSetOffsets) {
		cov.Prune(len(chainedSeqRuleSetOffsets))
	} else {
		chainedSeqRuleSetOffsets = chainedSeqRuleSetOffsets[:len(cov)]
	}

	backtrackClasses, err := classdef.Read(p, subtablePos+int64(backtrackClassDefOffset))
	if err != nil {
		return nil, err
	}
	inputClasses, err := classdef.Read(p, subtablePos+int64(inputClassDefOffset))
	if err != nil {
		return nil, err
	}
	lookaheadClasses, err := classdef.Read(p, subtablePos+int64(lookaheadClassDefOffset))
	if err != nil {
		return nil, err
	}

	rules := make([][]*ChainedClassSeqRule, len(chainedSeqRuleSetOffsets))
	for i, chainedSeqRuleSetOffset := range chainedSeqRuleSetOffsets {
		if chainedSeqRuleSetOffset == 0 {
			continue
		}
		base := subtablePos + int64(chainedSeqRuleSetOffset)
		err = p.SeekPos(base)
		if err != nil {
			return nil, err
		}
		chainedSeqRuleOffsets, err := p.ReadUint16Slice()
		if err != nil {
			return nil, err
		}
		rules[i] = make([]*ChainedClassSeqRule, len(chainedSeqRuleOffsets))
		for j, chainedSeqRuleOffset := range chainedSeqRuleOffsets {
			err = p.SeekPos(base + int64(chainedSeqRuleOffset))
			if err != nil {
				return nil, err
			}

			backtrackClassCount, err := p.ReadUint16()
			if err != nil {
				return nil, err
			}
			backtrack := make([]uint16, backtrackClassCount)
			for k := range backtrack {
				backtrack[k], err = p.ReadUint16()
				if err != nil {
					return nil, err
				}
			}
			inputClassCount, err := p.ReadUint16()
			if err != nil {
				return nil, err
			}
			input := make([]uint16, 0, inputClassCount)
			for k := 1; k < int(inputClassCount); k++ {
				val, err := p.ReadUint16()
				if err != nil {
					return nil, err
				}
				input = append(input, val)
			}
			lookaheadClassCount, err := p.ReadUint16()
			if err != nil {
				return nil, err
			}
			lookahead := make([]uint16, lookaheadClassCount)
			for k := range lookahead {
				lookahead[k], err = p.ReadUint16()
				if err != nil {
					return nil, err
				}
			}
			seqLookupCount, err := p.ReadUint16()
			if err != nil {
				return nil, err
			}
			actions := make(SeqLookups, seqLookupCount)
			for k := range actions {
				buf, err := p.ReadBytes(4)
				if err != nil {
					return nil, err
				}
				actions[k].SequenceIndex = uint16(buf[0])<<8 | uint16(buf[1])
				actions[k].LookupListIndex = LookupIndex(buf[2])<<8 | LookupIndex(buf[3])
			}
			rules[i][j] = &ChainedClassSeqRule{
				Backtrack: backtrack,
				Input:     input,
				Lookahead: lookahead,
				Actions:   actions,
			}
		}
	}

	return &ChainedSeqContext2{
		Cov:       cov,
		Backtrack: backtrackClasses,
		Input:     inputClasses,
		Lookahead: lookaheadClasses,
		Rules:     rules,
	}, nil
}

// Apply implements the [Subtable] interface.
func (l *ChainedSeqContext2) Apply(ctx *Context, a, b int) int {
	seq := ctx.seq
	keep := ctx.keep

	ruleIdx, ok := l.Cov[seq[a].GID]
	if !ok || ruleIdx >= len(l.Rules) {
		return -1
	}

ruleLoop:
	for _, rule := range l.Rules[ruleIdx] {
		p := a
		glyphsNeeded := len(rule.Backtrack)
		for _, cls := range rule.Backtrack {
			glyphsNeeded--
			p--
			for p-glyphsNeeded >= 0 && !keep.Keep(seq[p].GID) {
				p--
			}
			if p-glyphsNeeded < 0 || l.Backtrack[seq[p].GID] != cls {
				continue ruleLoop
			}
		}

		p = a
		matchPos := []int{p}
		glyphsNeeded = len(rule.Input) + len(rule.Lookahead)
		for _, cls := range rule.Input {
			glyphsNeeded--
			p++
			for p+glyphsNeeded < b && !keep.Keep(seq[p].GID) {
				p++
			}
			if p+glyphsNeeded >= b || l.Input[seq[p].GID] != cls {
				continue ruleLoop
			}
			matchPos = append(matchPos, p)
		}
		next := p + 1

		for _, cls := range rule.Lookahead {
			glyphsNeeded--
			p++
			for p+glyphsNeeded < b && !keep.Keep(seq[p].GID) {
				p++
			}
			if p+glyphsNeeded >= b || l.Lookahead[seq[p].GID] != cls {
				continue ruleLoop
			}
		}

		ctx.stack = append(ctx.stack, &nested{
			InputPos: matchPos,
			Actions:  resolveActions(rule.Actions, matchPos),
			EndPos:   next,
		})
		return next
	}

	return -1
}

// ChainedSeqContext3 is a Chained Sequence Context subtable (format 3),
// used for GSUB lookup type 6.  Each position in
// the backtrack, input and lookahead sequences has its own coverage
// table.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#chained-sequence-context-format-3-coverage-based-glyph-contexts
type ChainedSeqContext3 struct {
	Backtrack []coverage.Set
	Input     []coverage.Set
	Lookahead []coverage.Set
	Actions   SeqLookups
}

func readChainedSeqContext3(p *parser.Parser, subtablePos int64) (Subtable, error) {
	readCoverageSets := func() ([]coverage.Set, error) {
		offsets, err := p.ReadUint16Slice()
		if err != nil {
			return nil, err
		}
		sets := make([]coverage.Set, len(offsets))
		for i, offs := range offsets {
			sets[i], err = coverage.ReadSet(p, subtablePos+int64(offs))
			if err != nil {
				return nil, err
			}
		}
		return sets, nil
	}

	backtrack, err := readCoverageSets()
	if err != nil {
		return nil, err
	}
	input, err := readCoverageSets()
	if err != nil {
		return nil, err
	}
	if len(input) < 1 {
		return nil, &parser.InvalidFontError{
			SubSystem: "sfnt/opentype/gtab",
			Reason:    "invalid glyph count in ChainedSeqContext3",
		}
	}
	lookahead, err := readCoverageSets()
	if err != nil {
		return nil, err
	}

	seqLookupCount, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	actions := make(SeqLookups, seqLookupCount)
	for k := range actions {
		buf, err := p.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		actions[k].SequenceIndex = uint16(buf[0])<<8 | uint16(buf[1])
		actions[k].LookupListIndex = LookupIndex(buf[2])<<8 | LookupIndex(buf[3])
	}

	return &ChainedSeqContext3{
		Backtrack: backtrack,
		Input:     input,
		Lookahead: lookahead,
		Actions:   actions,
	}, nil
}

// Apply implements the [Subtable] interface.
func (l *ChainedSeqContext3) Apply(ctx *Context, a, b int) int {
	seq := ctx.seq
	keep := ctx.keep

	if !l.Input[0][seq[a].GID] {
		return -1
	}

	p := a
	glyphsNeeded := len(l.Backtrack)
	for _, cov := range l.Backtrack {
		glyphsNeeded--
		p--
		for p-glyphsNeeded >= 0 && !keep.Keep(seq[p].GID) {
			p--
		}
		if p-glyphsNeeded < 0 || !cov[seq[p].GID] {
			return -1
		}
	}

	p = a
	matchPos := []int{p}
	glyphsNeeded = len(l.Input) - 1 + len(l.Lookahead)
	for _, cov := range l.Input[1:] {
		glyphsNeeded--
		p++
		for p+glyphsNeeded < b && !keep.Keep(seq[p].GID) {
			p++
		}
		if p+glyphsNeeded >= b || !cov[seq[p].GID] {
			return -1
		}
		matchPos = append(matchPos, p)
	}
	next := p + 1

	for _, cov := range l.Lookahead {
		glyphsNeeded--
		p++
		for p+glyphsNeeded < b && !keep.Keep(seq[p].GID) {
			p++
		}
		if p+glyphsNeeded >= b || !cov[seq[p].GID] {
			return -1
		}
	}

	ctx.stack = append(ctx.stack, &nested{
		InputPos: matchPos,
		Actions:  resolveActions(l.Actions, matchPos),
		EndPos:   next,
	})
	return next
}

// resolveActions returns the actions whose sequence index falls inside
// matchPos, in order.  The indices stay relative to the matched input
// sequence; applyLookupAt maps them to glyph positions through the
// InputPos of the pushed nested entry.
func resolveActions(actions SeqLookups, matchPos []int) SeqLookups {
	out := make(SeqLookups, 0, len(actions))
	for _, act := range actions {
		idx := int(act.SequenceIndex)
		if idx < 0 || idx >= len(matchPos) {
			continue
		}
		out = append(out, act)
	}
	return out
}
