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

// Package head reads "head" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/head
package head

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cdelker/glyphpath/parser"
)

// Info represents the information in the "head" table of a font.
type Info struct {
	FontRevision Version // set by the font manufacturer

	UnitsPerEm uint16 // font design units per em square

	Created  time.Time
	Modified time.Time

	IsBold   bool
	IsItalic bool

	LowestRecPPEM uint16 // smallest readable size, in pixels

	// LocaFormat is the indexToLocFormat field: 0 for short (16 bit)
	// "loca" offsets, 1 for long (32 bit) offsets.
	LocaFormat int16
}

type binaryHead struct {
	Version            uint32
	FontRevision       uint32
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            int64
	Modified           int64

	XMin int16
	YMin int16
	XMax int16
	YMax int16

	MacStyle uint16

	LowestRecPPEM     uint16
	FontDirectionHint int16

	IndexToLocFormat int16
	GlyphDataFormat  int16
}

// Read reads and decodes the binary representation of the "head" table.
func Read(r io.Reader) (*Info, error) {
	enc := &binaryHead{}
	err := binary.Read(r, binary.BigEndian, enc)
	if err != nil {
		return nil, err
	}

	if enc.Version != 0x00010000 {
		return nil, &parser.InvalidFontError{
			SubSystem: "head",
			Reason:    fmt.Sprintf("unsupported table version %08x", enc.Version),
		}
	}
	if enc.MagicNumber != 0x5F0F3CF5 {
		return nil, &parser.InvalidFontError{
			SubSystem: "head",
			Reason:    fmt.Sprintf("invalid magic number %08x", enc.MagicNumber),
		}
	}

	info := &Info{
		FontRevision:  Version(enc.FontRevision),
		UnitsPerEm:    enc.UnitsPerEm,
		Created:       decodeTime(enc.Created),
		Modified:      decodeTime(enc.Modified),
		IsBold:        enc.MacStyle&(1<<0) != 0,
		IsItalic:      enc.MacStyle&(1<<1) != 0,
		LowestRecPPEM: enc.LowestRecPPEM,
		LocaFormat:    enc.IndexToLocFormat,
	}

	return info, nil
}

// macEpoch is the "head" table's time origin, 1904-01-01 00:00:00 UTC.
var macEpoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

func decodeTime(ts int64) time.Time {
	return macEpoch.Add(time.Duration(ts) * time.Second)
}

// Version represents a font revision number in 16.16 fixed point format,
// as used by the "head" table's fontRevision field and by version
// strings found in the "name" table and in Type 1/CFF FontInfo
// dictionaries.
type Version uint32

// String formats v the way font editors conventionally print a font
// version, e.g. "1.002".
func (v Version) String() string {
	return fmt.Sprintf("%.03f", float64(v)/65536)
}

// Round rounds v to the nearest value representable with three decimal
// digits after the point, which is the precision used by most font
// editors and the only precision the "head" table can exactly store.
func (v Version) Round() Version {
	f := float64(v) / 65536
	f = float64(int64(f*1000+0.5)) / 1000
	return Version(f * 65536)
}

// VersionFromString parses a version string of the form "Version
// 1.002" or "1.002", as found in the "name" table's version string or
// in a Type 1 FontInfo dictionary, into a Version value.
func VersionFromString(s string) (Version, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "Version ")
	s = strings.TrimPrefix(s, "version ")
	if idx := strings.IndexAny(s, " ;"); idx >= 0 {
		s = s[:idx]
	}
	if s == "" {
		return 0, fmt.Errorf("head: empty version string")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("head: invalid version string %q: %w", s, err)
	}
	return Version(f * 65536), nil
}
