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

package cmap

import (
	"fmt"

	"github.com/cdelker/glyphpath/glyph"
)

// Format0 represents a format 0 cmap subtable: a plain 256-entry
// code-to-glyph table for single-byte encodings.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-0-byte-encoding-table
type Format0 struct {
	Data [256]byte
}

// format0BodyLen is the table length after the 6-byte subtable header.
const format0BodyLen = 256

func decodeFormat0(data []byte, code2rune func(c int) rune) (Subtable, error) {
	if code2rune == nil {
		code2rune = unicode
	}

	body := data[6:]
	if len(body) != format0BodyLen {
		return nil, fmt.Errorf("cmap: format 0: expected %d bytes, got %d",
			format0BodyLen, len(body))
	}

	res := &Format0{}
	copy(res.Data[:], body)
	return res, nil
}

// Lookup returns the glyph index for the given rune.
// Runes outside the single-byte range yield glyph 0 (".notdef").
func (cmap *Format0) Lookup(r rune) glyph.ID {
	if r < 0 || r > 255 {
		return 0
	}
	return glyph.ID(cmap.Data[r])
}

// Encode returns the binary form of the subtable.
func (cmap *Format0) Encode(language uint16) []byte {
	length := 6 + format0BodyLen
	buf := make([]byte, 0, length)
	buf = append(buf,
		0, 0, // format
		byte(length>>8), byte(length),
		byte(language>>8), byte(language),
	)
	return append(buf, cmap.Data[:]...)
}

// CodeRange returns the smallest and largest code point in the subtable.
func (cmap *Format0) CodeRange() (low, high rune) {
	return 0, 255
}
