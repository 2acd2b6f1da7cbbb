// github.com/cdelker/glyphpath - a library for reading font files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
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

// Package cff reads "CFF " (Compact Font Format) tables embedded in
// OpenType fonts.
package cff

import "seehuhn.de/go/postscript/type1"

// Font stores the information decoded from a "CFF " table: the
// Top DICT metadata plus the glyph outline data.
type Font struct {
	FontInfo *type1.FontInfo
	*Outlines
}
