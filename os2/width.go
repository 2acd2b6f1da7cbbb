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

package os2

// Width represents the relative width of a font, using the same 1-9
// scale as the "OS/2" table's usWidthClass field.
// https://learn.microsoft.com/en-us/typography/opentype/spec/os2#uswidthclass
type Width uint16

// The width classes defined by the OS/2 table.
const (
	WidthUltraCondensed Width = 1
	WidthExtraCondensed Width = 2
	WidthCondensed      Width = 3
	WidthSemiCondensed  Width = 4
	WidthNormal         Width = 5
	WidthSemiExpanded   Width = 6
	WidthExpanded       Width = 7
	WidthExtraExpanded  Width = 8
	WidthUltraExpanded  Width = 9
)

var widthNames = map[Width]string{
	WidthUltraCondensed: "Ultra Condensed",
	WidthExtraCondensed: "Extra Condensed",
	WidthCondensed:      "Condensed",
	WidthSemiCondensed:  "Semi Condensed",
	WidthNormal:         "Normal",
	WidthSemiExpanded:   "Semi Expanded",
	WidthExpanded:       "Expanded",
	WidthExtraExpanded:  "Extra Expanded",
	WidthUltraExpanded:  "Ultra Expanded",
}

// String returns the name of the width class.
func (w Width) String() string {
	if name, ok := widthNames[w]; ok {
		return name
	}
	return "Normal"
}
