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

package cff

import (
	"fmt"
	"io"

	"seehuhn.de/go/postscript/psenc"

	"github.com/cdelker/glyphpath/glyph"
	"github.com/cdelker/glyphpath/parser"
)

// readEncoding reads a custom encoding from the font: a 256-entry code
// to glyph id vector.  The high bit of the format byte marks an
// appended supplement of additional code assignments.
func readEncoding(p *parser.Parser, charset []int32) ([]glyph.ID, error) {
	format, err := p.ReadUint8()
	if err != nil {
		return nil, err
	}

	enc := make([]glyph.ID, 256)
	var nextGid glyph.ID
	switch format & 127 {
	case 0:
		nextGid, err = readEncodingList(p, enc, len(charset))
	case 1:
		nextGid, err = readEncodingRanges(p, enc, len(charset))
	default:
		return nil, unsupported(fmt.Sprintf("encoding format %d", format&127))
	}
	if err != nil {
		return nil, err
	}

	if format&128 != 0 {
		err = readEncodingSupplement(p, enc, nextGid, charset)
		if err != nil {
			return nil, err
		}
	}

	return enc, nil
}

// readEncodingList reads a format 0 encoding: one code per glyph, in
// glyph id order starting at glyph 1.
func readEncodingList(p *parser.Parser, enc []glyph.ID, numGlyphs int) (glyph.ID, error) {
	nCodes, err := p.ReadUint8()
	if err != nil {
		return 0, err
	}
	if int(nCodes) >= numGlyphs {
		return 0, invalidSince("format 0 encoding too long")
	}
	codes := make([]byte, nCodes)
	_, err = io.ReadFull(p, codes)
	if err != nil {
		return 0, err
	}

	gid := glyph.ID(1)
	for _, code := range codes {
		if enc[code] != 0 {
			return 0, invalidSince("invalid format 0 encoding")
		}
		enc[code] = gid
		gid++
	}
	return gid, nil
}

// readEncodingRanges reads a format 1 encoding: runs of consecutive
// codes, again assigning glyph ids in order starting at glyph 1.
func readEncodingRanges(p *parser.Parser, enc []glyph.ID, numGlyphs int) (glyph.ID, error) {
	nRanges, err := p.ReadUint8()
	if err != nil {
		return 0, err
	}

	gid := glyph.ID(1)
	for i := 0; i < int(nRanges); i++ {
		first, err := p.ReadUint8()
		if err != nil {
			return 0, err
		}
		nLeft, err := p.ReadUint8()
		if err != nil {
			return 0, err
		}
		if int(first)+int(nLeft) > 255 {
			return 0, invalidSince("invalid format 1 encoding")
		}
		for code := int(first); code <= int(first)+int(nLeft); code++ {
			if int(gid) >= numGlyphs {
				return 0, invalidSince("format 1 encoding too long")
			}
			if enc[code] != 0 {
				return 0, invalidSince("invalid format 1 encoding")
			}
			enc[code] = gid
			gid++
		}
	}
	return gid, nil
}

// readEncodingSupplement reads extra code assignments for glyphs which
// have more than one code.  The supplement refers to glyphs by SID, so
// the charset is needed to find the glyph ids.
func readEncodingSupplement(p *parser.Parser, enc []glyph.ID, nextGid glyph.ID, charset []int32) error {
	bySID := make(map[uint16]glyph.ID, len(charset))
	for gid, sid := range charset {
		bySID[uint16(sid)] = glyph.ID(gid)
	}

	nSups, err := p.ReadUint8()
	if err != nil {
		return err
	}
	for i := 0; i < int(nSups); i++ {
		code, err := p.ReadUint8()
		if err != nil {
			return err
		}
		if enc[code] != 0 {
			return invalidSince("invalid encoding supplement")
		}
		sid, err := p.ReadUint16()
		if err != nil {
			return err
		}
		gid := bySID[sid]
		if gid >= nextGid {
			return invalidSince("invalid encoding supplement")
		}
		if gid != 0 {
			enc[code] = gid
		}
	}
	return nil
}

// StandardEncoding returns the encoding vector of the PostScript
// standard encoding, for use as the Outlines.Encoding field.
func StandardEncoding(glyphs []*Glyph) []glyph.ID {
	return encodingByName(glyphs, func(name string) (byte, bool) {
		code, ok := psenc.StandardEncodingRev[name]
		return code, ok
	})
}

func expertEncoding(glyphs []*Glyph) []glyph.ID {
	return encodingByName(glyphs, func(name string) (byte, bool) {
		code, ok := expertEnc[name]
		return code, ok
	})
}

// encodingByName builds an encoding vector by looking up each glyph's
// name in a name-to-code table.
func encodingByName(glyphs []*Glyph, codeFor func(string) (byte, bool)) []glyph.ID {
	enc := make([]glyph.ID, 256)
	for gid, g := range glyphs {
		if code, ok := codeFor(g.Name); ok {
			enc[code] = glyph.ID(gid)
		}
	}
	return enc
}

// expertEnc is the built-in expert encoding.
var expertEnc = map[string]byte{
	"space":             32,
	"exclamsmall":       33,
	"Hungarumlautsmall": 34,

	"dollaroldstyle":      36,
	"dollarsuperior":      37,
	"ampersandsmall":      38,
	"Acutesmall":          39,
	"parenleftsuperior":   40,
	"parenrightsuperior":  41,
	"twodotenleader":      42,
	"onedotenleader":      43,
	"comma":               44,
	"hyphen":              45,
	"period":              46,
	"fraction":            47,
	"zerooldstyle":        48,
	"oneoldstyle":         49,
	"twooldstyle":         50,
	"threeoldstyle":       51,
	"fouroldstyle":        52,
	"fiveoldstyle":        53,
	"sixoldstyle":         54,
	"sevenoldstyle":       55,
	"eightoldstyle":       56,
	"nineoldstyle":        57,
	"colon":               58,
	"semicolon":           59,
	"commasuperior":       60,
	"threequartersemdash": 61,
	"periodsuperior":      62,
	"questionsmall":       63,

	"asuperior":    65,
	"bsuperior":    66,
	"centsuperior": 67,
	"dsuperior":    68,
	"esuperior":    69,

	"isuperior": 73,

	"lsuperior": 76,
	"msuperior": 77,
	"nsuperior": 78,
	"osuperior": 79,

	"rsuperior": 82,
	"ssuperior": 83,
	"tsuperior": 84,

	"ff":                86,
	"fi":                87,
	"fl":                88,
	"ffi":               89,
	"ffl":               90,
	"parenleftinferior": 91,

	"parenrightinferior": 93,
	"Circumflexsmall":    94,
	"hyphensuperior":     95,
	"Gravesmall":         96,
	"Asmall":             97,
	"Bsmall":             98,
	"Csmall":             99,
	"Dsmall":             100,
	"Esmall":             101,
	"Fsmall":             102,
	"Gsmall":             103,
	"Hsmall":             104,
	"Ismall":             105,
	"Jsmall":             106,
	"Ksmall":             107,
	"Lsmall":             108,
	"Msmall":             109,
	"Nsmall":             110,
	"Osmall":             111,
	"Psmall":             112,
	"Qsmall":             113,
	"Rsmall":             114,
	"Ssmall":             115,
	"Tsmall":             116,
	"Usmall":             117,
	"Vsmall":             118,
	"Wsmall":             119,
	"Xsmall":             120,
	"Ysmall":             121,
	"Zsmall":             122,
	"colonmonetary":      123,
	"onefitted":          124,
	"rupiah":             125,
	"Tildesmall":         126,

	"exclamdownsmall": 161,
	"centoldstyle":    162,
	"Lslashsmall":     163,

	"Scaronsmall":   166,
	"Zcaronsmall":   167,
	"Dieresissmall": 168,
	"Brevesmall":    169,
	"Caronsmall":    170,

	"Dotaccentsmall": 172,

	"Macronsmall": 175,

	"figuredash":     178,
	"hypheninferior": 179,

	"Ogoneksmall":  182,
	"Ringsmall":    183,
	"Cedillasmall": 184,

	"onequarter":        188,
	"onehalf":           189,
	"threequarters":     190,
	"questiondownsmall": 191,
	"oneeighth":         192,
	"threeeighths":      193,
	"fiveeighths":       194,
	"seveneighths":      195,
	"onethird":          196,
	"twothirds":         197,

	"zerosuperior":     200,
	"onesuperior":      201,
	"twosuperior":      202,
	"threesuperior":    203,
	"foursuperior":     204,
	"fivesuperior":     205,
	"sixsuperior":      206,
	"sevensuperior":    207,
	"eightsuperior":    208,
	"ninesuperior":     209,
	"zeroinferior":     210,
	"oneinferior":      211,
	"twoinferior":      212,
	"threeinferior":    213,
	"fourinferior":     214,
	"fiveinferior":     215,
	"sixinferior":      216,
	"seveninferior":    217,
	"eightinferior":    218,
	"nineinferior":     219,
	"centinferior":     220,
	"dollarinferior":   221,
	"periodinferior":   222,
	"commainferior":    223,
	"Agravesmall":      224,
	"Aacutesmall":      225,
	"Acircumflexsmall": 226,
	"Atildesmall":      227,
	"Adieresissmall":   228,
	"Aringsmall":       229,
	"AEsmall":          230,
	"Ccedillasmall":    231,
	"Egravesmall":      232,
	"Eacutesmall":      233,
	"Ecircumflexsmall": 234,
	"Edieresissmall":   235,
	"Igravesmall":      236,
	"Iacutesmall":      237,
	"Icircumflexsmall": 238,
	"Idieresissmall":   239,
	"Ethsmall":         240,
	"Ntildesmall":      241,
	"Ogravesmall":      242,
	"Oacutesmall":      243,
	"Ocircumflexsmall": 244,
	"Otildesmall":      245,
	"Odieresissmall":   246,
	"OEsmall":          247,
	"Oslashsmall":      248,
	"Ugravesmall":      249,
	"Uacutesmall":      250,
	"Ucircumflexsmall": 251,
	"Udieresissmall":   252,
	"Yacutesmall":      253,
	"Thornsmall":       254,
	"Ydieresissmall":   255,
}
