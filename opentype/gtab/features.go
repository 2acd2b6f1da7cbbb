// github.com/cdelker/glyphpath - a library for reading and writing font files
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

package gtab

// GsubDefaultFeatures lists the substitution features enabled unless a
// caller overrides them: standard ligatures and contextual alternates.
var GsubDefaultFeatures = map[string]bool{
	"liga": true,
	"calt": true,
}

// GposDefaultFeatures lists the positioning features enabled unless a
// caller overrides them: pair kerning.
var GposDefaultFeatures = map[string]bool{
	"kern": true,
}
