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

// Package name reads the "name" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name
package name

import (
	"unicode/utf16"

	"golang.org/x/text/language"

	"github.com/cdelker/glyphpath/mac"
	"github.com/cdelker/glyphpath/parser"
)

const maxNameID = 25

// Table contains the name table data for a single language.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name#name-ids
type Table struct {
	Copyright      string
	Family         string
	Subfamily      string
	Identifier     string
	FullName       string
	Version        string
	PostScriptName string
	Trademark      string
	Manufacturer   string
	Designer       string
	Description    string
	VendorURL      string
	DesignerURL    string
	License        string
	LicenseURL     string
	SampleText     string
}

func (t *Table) set(nameID int, val string) {
	switch nameID {
	case 0:
		t.Copyright = val
	case 1:
		t.Family = val
	case 2:
		t.Subfamily = val
	case 3:
		t.Identifier = val
	case 4:
		t.FullName = val
	case 5:
		t.Version = val
	case 6:
		t.PostScriptName = val
	case 7:
		t.Trademark = val
	case 8:
		t.Manufacturer = val
	case 9:
		t.Designer = val
	case 10:
		t.Description = val
	case 11:
		t.VendorURL = val
	case 12:
		t.DesignerURL = val
	case 13:
		t.License = val
	case 14:
		t.LicenseURL = val
	case 19:
		t.SampleText = val
	}
}

// Tables maps a BCP-47 language tag to the name records found for that
// language.
type Tables map[language.Tag]*Table

// Choose picks the entry in Tables that best matches pref, using the
// same confidence levels as [golang.org/x/text/language.Matcher].
// If the map is empty, nil and language.No are returned.
func (tt Tables) Choose(pref language.Tag) (*Table, language.Confidence) {
	if len(tt) == 0 {
		return nil, language.No
	}

	tags := make([]language.Tag, 0, len(tt))
	for tag := range tt {
		tags = append(tags, tag)
	}
	matcher := language.NewMatcher(tags)
	_, idx, conf := matcher.Match(pref)
	return tt[tags[idx]], conf
}

// Info contains information from the "name" table, split by platform:
// PlatformID 1 (Macintosh) records in Mac, PlatformID 3 (Windows) records
// in Windows.
type Info struct {
	Mac     Tables
	Windows Tables
}

// Decode extracts information from the "name" table.
func Decode(data []byte) (*Info, error) {
	if len(data) < 6 {
		return nil, &parser.InvalidFontError{SubSystem: "name", Reason: "table too short"}
	}
	version := uint16(data[0])<<8 | uint16(data[1])
	if version > 1 {
		return nil, &parser.InvalidFontError{SubSystem: "name", Reason: "unsupported table version"}
	}

	numRec := int(data[2])<<8 + int(data[3])
	storageOffset := int(data[4])<<8 + int(data[5])

	recBase := 6
	endOfHeader := recBase + 12*numRec
	if endOfHeader > len(data) {
		return nil, &parser.InvalidFontError{SubSystem: "name", Reason: "table truncated"}
	}
	if storageOffset < endOfHeader || storageOffset > len(data) {
		return nil, &parser.InvalidFontError{SubSystem: "name", Reason: "invalid storage offset"}
	}

	info := &Info{
		Mac:     Tables{},
		Windows: Tables{},
	}

	for i := 0; i < numRec; i++ {
		pos := recBase + i*12
		platformID := uint16(data[pos])<<8 | uint16(data[pos+1])
		encodingID := uint16(data[pos+2])<<8 | uint16(data[pos+3])
		languageID := uint16(data[pos+4])<<8 | uint16(data[pos+5])
		nameID := int(uint16(data[pos+6])<<8 | uint16(data[pos+7]))
		nameLen := int(data[pos+8])<<8 | int(data[pos+9])
		nameOffset := int(data[pos+10])<<8 | int(data[pos+11])

		if nameID > maxNameID {
			continue
		}
		if storageOffset+nameOffset+nameLen > len(data) {
			return nil, &parser.InvalidFontError{SubSystem: "name", Reason: "name record out of bounds"}
		}
		raw := data[storageOffset+nameOffset : storageOffset+nameOffset+nameLen]

		var tag string
		var val string
		switch platformID {
		case 1: // Macintosh
			if encodingID != 0 {
				// TODO(voss): implement some more encodings
				continue
			}
			var ok bool
			tag, ok = appleBCP[languageID]
			if !ok {
				continue
			}
			val = mac.Decode(raw)
		case 3: // Windows
			var ok bool
			tag, ok = msBCP[languageID]
			if !ok {
				continue
			}
			val = utf16Decode(raw)
		default:
			continue
		}
		if val == "" {
			continue
		}
		parsed, err := language.Parse(tag)
		if err != nil {
			continue
		}

		var tt Tables
		if platformID == 1 {
			tt = info.Mac
		} else {
			tt = info.Windows
		}
		t := tt[parsed]
		if t == nil {
			t = &Table{}
			tt[parsed] = t
		}
		t.set(nameID, val)
	}

	return info, nil
}

func utf16Decode(buf []byte) string {
	var words []uint16
	for i := 0; i+1 < len(buf); i += 2 {
		words = append(words, uint16(buf[i])<<8|uint16(buf[i+1]))
	}
	return string(utf16.Decode(words))
}
