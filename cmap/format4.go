// github.com/cdelker/glyphpath - a library for reading font files
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

package cmap

import (
	"bytes"
	"encoding/binary"
	"math/bits"

	"github.com/cdelker/glyphpath/glyph"
)

// Format4 represents a format 4 cmap subtable.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-4-segment-mapping-to-delta-values
type Format4 map[uint16]glyph.ID

func decodeFormat4(in []byte, code2rune func(c int) rune) (Subtable, error) {
	if code2rune == nil {
		code2rune = unicode
	}

	if len(in)%2 != 0 || len(in) < 16 {
		return nil, errMalformedSubtable
	}

	segCountX2 := int(in[6])<<8 | int(in[7])
	if segCountX2%2 != 0 || 4*segCountX2+16 > len(in) {
		return nil, errMalformedSubtable
	}
	segCount := segCountX2 / 2

	words := make([]uint16, 0, (len(in)-14)/2)
	for i := 14; i < len(in); i += 2 {
		words = append(words, uint16(in[i])<<8|uint16(in[i+1]))
	}
	endCode := words[:segCount]
	// reservedPad omitted
	startCode := words[segCount+1 : 2*segCount+1]
	idDelta := words[2*segCount+1 : 3*segCount+1]
	idRangeOffset := words[3*segCount+1 : 4*segCount+1]
	glyphIDArray := words[4*segCount+1:]

	cmap := Format4{}
	prevEnd := uint32(0)
	for k := 0; k < segCount; k++ {
		start := uint32(startCode[k])
		end := uint32(endCode[k]) + 1
		if start < prevEnd || end <= start {
			return nil, errMalformedSubtable
		}
		prevEnd = end

		if idRangeOffset[k] == 0 {
			delta := idDelta[k]
			for idx := start; idx < end; idx++ {
				c := glyph.ID(uint16(idx) + delta)
				if c != 0 {
					cmap[uint16(code2rune(int(idx)))] = c
				}
			}
		} else {
			d := int(idRangeOffset[k])/2 - (segCount - k)
			if d < 0 || d+int(end-start) > len(glyphIDArray) {
				if start == 0xFFFF {
					// some fonts have invalid data for the last segment
					continue
				}
				return nil, errMalformedSubtable
			}
			for idx := start; idx < end; idx++ {
				c := glyph.ID(glyphIDArray[d+int(idx-start)])
				if c != 0 {
					cmap[uint16(code2rune(int(idx)))] = c
				}
			}
		}
	}
	return cmap, nil
}

// Lookup implements the Subtable interface.
func (cmap Format4) Lookup(r rune) glyph.ID {
	return cmap[uint16(r)]
}

// Encode encodes the subtable into a byte slice, using one segment per
// run of consecutive character codes that share the same glyph ID
// delta.  Every segment uses idDelta only (idRangeOffset is always 0),
// so the result is correct but not always the smallest encoding.
func (cmap Format4) Encode(language uint16) []byte {
	type seg struct {
		first, last, delta uint16
	}
	var codes []uint16
	for c := range cmap {
		codes = append(codes, c)
	}
	for i := 0; i < len(codes); i++ {
		for j := i + 1; j < len(codes); j++ {
			if codes[j] < codes[i] {
				codes[i], codes[j] = codes[j], codes[i]
			}
		}
	}

	var segs []seg
	for _, c := range codes {
		delta := uint16(cmap[c]) - c
		if n := len(segs); n > 0 && segs[n-1].last == c-1 && segs[n-1].delta == delta {
			segs[n-1].last = c
			continue
		}
		segs = append(segs, seg{first: c, last: c, delta: delta})
	}
	segs = append(segs, seg{first: 0xFFFF, last: 0xFFFF, delta: 1})

	segCount := len(segs)
	sel := bits.Len(uint(segCount))
	hdr := struct {
		Format        uint16
		Length        uint16
		Language      uint16
		SegCountX2    uint16
		SearchRange   uint16
		EntrySelector uint16
		RangeShift    uint16
	}{
		Format:        4,
		Length:        uint16(16 + 8*segCount),
		Language:      language,
		SegCountX2:    uint16(2 * segCount),
		SearchRange:   1 << sel,
		EntrySelector: uint16(sel - 1),
	}
	hdr.RangeShift = hdr.SegCountX2 - hdr.SearchRange

	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.BigEndian, hdr)
	for _, s := range segs {
		_ = binary.Write(buf, binary.BigEndian, s.last)
	}
	_ = binary.Write(buf, binary.BigEndian, uint16(0)) // reservedPad
	for _, s := range segs {
		_ = binary.Write(buf, binary.BigEndian, s.first)
	}
	for _, s := range segs {
		_ = binary.Write(buf, binary.BigEndian, s.delta)
	}
	for range segs {
		_ = binary.Write(buf, binary.BigEndian, uint16(0))
	}
	return buf.Bytes()
}

// CodeRange returns the smallest and largest code point in the subtable.
func (cmap Format4) CodeRange() (low, high rune) {
	if len(cmap) == 0 {
		return
	}
	low = 1<<31 - 1
	for k := range cmap {
		if rune(k) < low {
			low = rune(k)
		}
		if rune(k) > high {
			high = rune(k)
		}
	}
	return
}
