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

// Package os2 reads "OS/2" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/os2
package os2

import (
	"fmt"
	"io"

	"seehuhn.de/go/postscript/funit"

	"github.com/cdelker/glyphpath/parser"
)

// Info contains information from the "OS/2" table.
type Info struct {
	WeightClass Weight
	WidthClass  Width

	IsBold    bool // glyphs are emboldened
	IsItalic  bool // font contains italic or oblique glyphs
	IsRegular bool // glyphs are in the standard weight/style for the font
	IsOblique bool // font contains oblique glyphs

	FirstCharIndex uint16
	LastCharIndex  uint16

	Ascent     funit.Int16
	Descent    funit.Int16 // negative
	WinAscent  funit.Int16
	WinDescent funit.Int16 // positive
	LineGap    funit.Int16
	CapHeight  funit.Int16
	XHeight    funit.Int16

	AvgGlyphWidth funit.Int16 // arithmetic average of the width of all non-zero width glyphs

	SubscriptXSize     funit.Int16
	SubscriptYSize     funit.Int16
	SubscriptXOffset   funit.Int16
	SubscriptYOffset   funit.Int16
	SuperscriptXSize   funit.Int16
	SuperscriptYSize   funit.Int16
	SuperscriptXOffset funit.Int16
	SuperscriptYOffset funit.Int16
	StrikeoutSize      funit.Int16
	StrikeoutPosition  funit.Int16

	FamilyClass int16    // https://docs.microsoft.com/en-us/typography/opentype/spec/ibmfc
	Panose      [10]byte // https://monotype.github.io/panose/
	Vendor      string   // https://docs.microsoft.com/en-us/typography/opentype/spec/os2#achvendid

	UnicodeRange  UnicodeRange
	CodePageRange CodePageRange

	PermUse          Permissions
	PermNoSubsetting bool // the font may not be subsetted prior to embedding
	PermOnlyBitmap   bool // only bitmaps contained in the font may be embedded
}

// Table section sizes, in bytes.  Old fonts truncate the table after
// the version 0 fields (some even before the Microsoft additions), so
// each later section is optional.
const (
	v0Size       = 68 // version and the original version 0 fields
	msSize       = 10 // typographic and Windows vertical metrics
	codePageSize = 8  // code page range dwords, version 1 and later
	v2Size       = 10 // x height, cap height etc., version 2 and later
)

// Read reads the "OS/2" table from r.
func Read(r io.Reader) (*Info, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < v0Size {
		return nil, io.ErrUnexpectedEOF
	}

	u16 := func(offs int) uint16 {
		return uint16(data[offs])<<8 | uint16(data[offs+1])
	}
	s16 := func(offs int) funit.Int16 {
		return funit.Int16(u16(offs))
	}

	version := u16(0)
	if version > 5 {
		return nil, &parser.NotSupportedError{
			SubSystem: "sfnt/os2",
			Feature:   fmt.Sprintf("OS/2 table version %d", version),
		}
	}

	info := &Info{
		AvgGlyphWidth: s16(2),
		WeightClass:   Weight(u16(4)),
		WidthClass:    Width(u16(6)),

		SubscriptXSize:     s16(10),
		SubscriptYSize:     s16(12),
		SubscriptXOffset:   s16(14),
		SubscriptYOffset:   s16(16),
		SuperscriptXSize:   s16(18),
		SuperscriptYSize:   s16(20),
		SuperscriptXOffset: s16(22),
		SuperscriptYOffset: s16(24),
		StrikeoutSize:      s16(26),
		StrikeoutPosition:  s16(28),

		FamilyClass: int16(u16(30)),
		Vendor:      string(data[58:62]),

		FirstCharIndex: u16(64),
		LastCharIndex:  u16(66),
	}
	copy(info.Panose[:], data[32:42])
	for i := range info.UnicodeRange {
		info.UnicodeRange[i] = uint32(u16(42+4*i))<<16 | uint32(u16(44+4*i))
	}

	// In table versions before 3 the embedding bits were exclusive;
	// only the lowest nibble is meaningful there.
	permBits := u16(8)
	if version < 3 {
		permBits &= 0x000F
	}
	switch {
	case permBits&8 != 0:
		info.PermUse = PermEdit
	case permBits&4 != 0:
		info.PermUse = PermView
	case permBits&2 != 0:
		info.PermUse = PermRestricted
	default:
		info.PermUse = PermInstall
	}
	info.PermNoSubsetting = permBits&0x0100 != 0
	info.PermOnlyBitmap = permBits&0x0200 != 0

	sel := u16(62)
	if version <= 3 {
		// Bits 7 to 15 are only defined from version 4 on.
		sel &= 0x007F
	}
	info.IsBold = sel&0x0060 == 0x0020
	info.IsItalic = sel&0x0041 == 0x0001
	info.IsRegular = sel&0x0040 != 0
	info.IsOblique = sel&0x0200 != 0

	info.UnicodeRange.Bool(57, info.LastCharIndex == 0xFFFF) // "Non-Plane 0"

	if len(data) == v0Size {
		return info, nil
	}
	if len(data) < v0Size+msSize {
		return nil, io.ErrUnexpectedEOF
	}
	info.Ascent = s16(v0Size + 0)
	info.Descent = s16(v0Size + 2)
	info.LineGap = s16(v0Size + 4)
	info.WinAscent = s16(v0Size + 6)
	info.WinDescent = s16(v0Size + 8)

	if version < 2 {
		return info, nil
	}
	if len(data) < v0Size+msSize+codePageSize+v2Size {
		return nil, io.ErrUnexpectedEOF
	}
	base := v0Size + msSize
	range1 := uint32(u16(base))<<16 | uint32(u16(base+2))
	range2 := uint32(u16(base+4))<<16 | uint32(u16(base+6))
	info.CodePageRange = CodePageRange(range1) | CodePageRange(range2)<<32

	base += codePageSize
	if x := s16(base); x > 0 {
		info.XHeight = x
	}
	if c := s16(base + 2); c > 0 {
		info.CapHeight = c
	}

	return info, nil
}

// Encode converts the info to an "OS/2" table (version 4).
func (info *Info) Encode() []byte {
	buf := make([]byte, 0, v0Size+msSize+codePageSize+v2Size)
	u16 := func(v uint16) {
		buf = append(buf, byte(v>>8), byte(v))
	}
	s16 := func(v funit.Int16) {
		u16(uint16(v))
	}

	var permBits uint16
	switch info.PermUse {
	case PermRestricted:
		permBits |= 2
	case PermView:
		permBits |= 4
	case PermEdit:
		permBits |= 8
	}
	if info.PermNoSubsetting {
		permBits |= 0x0100
	}
	if info.PermOnlyBitmap {
		permBits |= 0x0200
	}

	var sel uint16
	if info.IsRegular {
		sel |= 0x0040
	} else {
		if info.IsItalic {
			sel |= 0x0001
		}
		if info.IsBold {
			sel |= 0x0020
		}
	}
	if info.IsOblique {
		sel |= 0x0200
	}
	sel |= 0x0080 // USE_TYPO_METRICS

	vendor := [4]byte{' ', ' ', ' ', ' '}
	if len(info.Vendor) == 4 {
		copy(vendor[:], info.Vendor)
	}

	unicodeRange := info.UnicodeRange
	unicodeRange.Bool(57, info.LastCharIndex == 0xFFFF) // "Non-Plane 0"

	u16(4) // version
	s16(info.AvgGlyphWidth)
	u16(uint16(info.WeightClass))
	u16(uint16(info.WidthClass))
	u16(permBits)
	s16(info.SubscriptXSize)
	s16(info.SubscriptYSize)
	s16(info.SubscriptXOffset)
	s16(info.SubscriptYOffset)
	s16(info.SuperscriptXSize)
	s16(info.SuperscriptYSize)
	s16(info.SuperscriptXOffset)
	s16(info.SuperscriptYOffset)
	s16(info.StrikeoutSize)
	s16(info.StrikeoutPosition)
	u16(uint16(info.FamilyClass))
	buf = append(buf, info.Panose[:]...)
	for _, w := range unicodeRange {
		u16(uint16(w >> 16))
		u16(uint16(w))
	}
	buf = append(buf, vendor[:]...)
	u16(sel)
	u16(info.FirstCharIndex)
	u16(info.LastCharIndex)

	s16(info.Ascent)
	s16(info.Descent)
	s16(info.LineGap)
	s16(info.WinAscent)
	s16(info.WinDescent)

	cpr := info.CodePageRange
	u16(uint16(cpr >> 16))
	u16(uint16(cpr))
	u16(uint16(cpr >> 48))
	u16(uint16(cpr >> 32))

	s16(info.XHeight)
	s16(info.CapHeight)
	u16(0) // default character
	u16(0) // break character
	u16(0) // maximum context

	return buf
}

// UnicodeRange is a bitfield which describes which unicode
// blocks or ranges are "functional" in a font.
// https://learn.microsoft.com/en-us/typography/opentype/spec/os2#ur
type UnicodeRange [4]uint32

// Set sets the given bit in the unicode range.
func (ur *UnicodeRange) Set(bit UnicodeRangeBit) {
	w := bit / 32
	bit = bit % 32
	ur[w] |= 1 << bit
}

// Bool sets or clears the given bit in the unicode range.
func (ur *UnicodeRange) Bool(bit UnicodeRangeBit, set bool) {
	w := bit / 32
	bit = bit % 32
	if set {
		ur[w] |= 1 << bit
	} else {
		ur[w] &^= 1 << bit
	}
}

type UnicodeRangeBit int

const (
	URBasicLatin                UnicodeRangeBit = 0
	URLatin1Sup                 UnicodeRangeBit = 1
	URLatinExtA                 UnicodeRangeBit = 2
	URLatinExtB                 UnicodeRangeBit = 3
	URIPAExtensions             UnicodeRangeBit = 4
	URSpacingModifierLetters    UnicodeRangeBit = 5
	URCombiningDiacriticalMarks UnicodeRangeBit = 6
	URGreek                     UnicodeRangeBit = 7
	URCoptic                    UnicodeRangeBit = 8
	URCyrillic                  UnicodeRangeBit = 9
	URArmenian                  UnicodeRangeBit = 10
	URHebrew                    UnicodeRangeBit = 11
	URVai                       UnicodeRangeBit = 12
	URArabic                    UnicodeRangeBit = 13
	URNko                       UnicodeRangeBit = 14
	URDevanagari                UnicodeRangeBit = 15
	URBengali                   UnicodeRangeBit = 16
	URGurmukhi                  UnicodeRangeBit = 17
	URGujarati                  UnicodeRangeBit = 18
	UROriya                     UnicodeRangeBit = 19
	URTamil                     UnicodeRangeBit = 20
	URTelugu                    UnicodeRangeBit = 21
	URKannada                   UnicodeRangeBit = 22
	URMalayalam                 UnicodeRangeBit = 23
	URThai                      UnicodeRangeBit = 24
	URLao                       UnicodeRangeBit = 25
	URGeorgian                  UnicodeRangeBit = 26
	URBalinese                  UnicodeRangeBit = 27
	URHangulJamo                UnicodeRangeBit = 28
	URLatinExtAdditional        UnicodeRangeBit = 29
	URGreekExt                  UnicodeRangeBit = 30
	URGeneralPunctuation        UnicodeRangeBit = 31
	URSuperscriptsSubscripts    UnicodeRangeBit = 32
	URCurrencySymbols           UnicodeRangeBit = 33
)

// CodePageRange is a bitmask of code pages supported by a font.
type CodePageRange uint64

// Set sets the given bit in the code page range.
func (cpr *CodePageRange) Set(bit CodePage) {
	*cpr |= 1 << bit
}

// CodePage represents the positions of individual bits which may be set in a
// [CodePageRange].
type CodePage int

// List of code pages supported by the "OS/2" table.
const (
	CP1252      CodePage = 0  // CP1252, Latin 1
	CP1250      CodePage = 1  // CP1250, Latin 2: Eastern Europe
	CP1251      CodePage = 2  // CP1251, Cyrillic
	CP1253      CodePage = 3  // CP1253, Greek
	CP1254      CodePage = 4  // CP1254, Turkish
	CP1255      CodePage = 5  // CP1255, Hebrew
	CP1256      CodePage = 6  // CP1256, Arabic
	CP1257      CodePage = 7  // CP1257, Windows Baltic
	CP1258      CodePage = 8  // CP1258, Vietnamese
	CP874       CodePage = 16 // CP874, Thai
	CP932       CodePage = 17 // CP932, JIS/Japan
	CP936       CodePage = 18 // CP936, Chinese: Simplified chars—PRC and Singapore
	CP949       CodePage = 19 // CP949, Korean Wansung
	CP950       CodePage = 20 // CP950, Chinese: Traditional chars—Taiwan and Hong Kong
	CP1361      CodePage = 21 // CP1361, Korean Johab
	CPMacintosh CodePage = 29 // Macintosh Character Set (US Roman)
	CPOEM       CodePage = 30 // OEM Character Set
	CPSymbol    CodePage = 31 // Symbol Character Set
	CP869       CodePage = 48 // CP869, IBM Greek
	CP866       CodePage = 49 // CP866, MS-DOS Russian
	CP865       CodePage = 50 // CP865, MS-DOS Nordic
	CP864       CodePage = 51 // CP864, Arabic
	CP863       CodePage = 52 // CP863, MS-DOS Canadian French
	CP862       CodePage = 53 // CP862, Hebrew
	CP861       CodePage = 54 // CP861, MS-DOS Icelandic
	CP860       CodePage = 55 // CP860, MS-DOS Portuguese
	CP857       CodePage = 56 // CP857, IBM Turkish
	CP855       CodePage = 57 // CP855, IBM Cyrillic; primarily Russian
	CP852       CodePage = 58 // CP852, Latin 2
	CP775       CodePage = 59 // CP775, MS-DOS Baltic
	CP737       CodePage = 60 // CP737, Greek; former 437 G
	CP708       CodePage = 61 // CP708, Arabic; ASMO 708
	CP850       CodePage = 62 // CP850, WE/Latin 1
	CP437       CodePage = 63 // CP437, US
)

// Permissions describes rights to embed and use a font.
type Permissions int

func (perm Permissions) String() string {
	switch perm {
	case PermInstall:
		return "can install"
	case PermEdit:
		return "can edit"
	case PermView:
		return "can view"
	case PermRestricted:
		return "restricted"
	default:
		return fmt.Sprintf("Permissions(%d)", perm)
	}
}

// The possible permission values.
// https://learn.microsoft.com/en-us/typography/opentype/spec/os2#fstype
const (
	PermInstall    Permissions = iota // bits 0-3 unset
	PermEdit                          // only bit 3 set
	PermView                          // only bit 2 set
	PermRestricted                    // only bit 1 set
)
