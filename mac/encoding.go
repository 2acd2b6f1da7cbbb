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

// Package mac implements the Mac Roman encoding, used for cmap
// subtables with PlatformID == 1, EncodingID == 0.  It matches the
// MacRomanEncoding of PDF except for 15 additional entries and the
// Euro sign in place of the currency sign.
// https://en.wikipedia.org/wiki/Mac_OS_Roman
package mac

// Decode decodes a string of Mac Roman bytes.
func Decode(cc []byte) string {
	rr := make([]rune, len(cc))
	for i, c := range cc {
		rr[i] = DecodeOne(c)
	}
	return string(rr)
}

// DecodeOne decodes a single Mac Roman byte.
func DecodeOne(c byte) rune {
	if c < 128 {
		return rune(c)
	}
	return upper[c-128]
}

// Encode encodes a string of Unicode runes.  Runes outside the Mac
// Roman repertoire become question marks.
func Encode(s string) []byte {
	rr := []rune(s)
	res := make([]byte, len(rr))
	for i, r := range rr {
		if r < 128 {
			res[i] = byte(r)
			continue
		}
		c, ok := reverse[r]
		if !ok {
			c = '?'
		}
		res[i] = c
	}
	return res
}

// upper maps the bytes 128-255 to runes; bytes below 128 coincide
// with ASCII.
var upper = [128]rune{
	0x00c4, 0x00c5, 0x00c7, 0x00c9, 0x00d1, 0x00d6, 0x00dc, 0x00e1,
	0x00e0, 0x00e2, 0x00e4, 0x00e3, 0x00e5, 0x00e7, 0x00e9, 0x00e8,
	0x00ea, 0x00eb, 0x00ed, 0x00ec, 0x00ee, 0x00ef, 0x00f1, 0x00f3,
	0x00f2, 0x00f4, 0x00f6, 0x00f5, 0x00fa, 0x00f9, 0x00fb, 0x00fc,
	0x2020, 0x00b0, 0x00a2, 0x00a3, 0x00a7, 0x2022, 0x00b6, 0x00df,
	0x00ae, 0x00a9, 0x2122, 0x00b4, 0x00a8, 0x2260, 0x00c6, 0x00d8,
	0x221e, 0x00b1, 0x2264, 0x2265, 0x00a5, 0x00b5, 0x2202, 0x2211,
	0x220f, 0x03c0, 0x222b, 0x00aa, 0x00ba, 0x03a9, 0x00e6, 0x00f8,
	0x00bf, 0x00a1, 0x00ac, 0x221a, 0x0192, 0x2248, 0x2206, 0x00ab,
	0x00bb, 0x2026, 0x00a0, 0x00c0, 0x00c3, 0x00d5, 0x0152, 0x0153,
	0x2013, 0x2014, 0x201c, 0x201d, 0x2018, 0x2019, 0x00f7, 0x25ca,
	0x00ff, 0x0178, 0x2044, 0x20ac, 0x2039, 0x203a, 0xfb01, 0xfb02,
	0x2021, 0x00b7, 0x201a, 0x201e, 0x2030, 0x00c2, 0x00ca, 0x00c1,
	0x00cb, 0x00c8, 0x00cd, 0x00ce, 0x00cf, 0x00cc, 0x00d3, 0x00d4,
	0xf8ff, 0x00d2, 0x00da, 0x00db, 0x00d9, 0x0131, 0x02c6, 0x02dc,
	0x00af, 0x02d8, 0x02d9, 0x02da, 0x00b8, 0x02dd, 0x02db, 0x02c7,
}

// reverse is the inverse of upper, built once at startup.
var reverse = make(map[rune]byte, len(upper))

func init() {
	for i, r := range upper {
		reverse[r] = byte(i + 128)
	}
}
