// github.com/cdelker/glyphpath - a library for reading font files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
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

package parser

// InvalidFontError indicates that a font file is malformed beyond what
// this package can make sense of.
type InvalidFontError struct {
	SubSystem string
	Reason    string
}

func (err *InvalidFontError) Error() string {
	return err.SubSystem + ": " + err.Reason
}

// NotSupportedError indicates that a font file uses a feature which is
// not supported by this package.
type NotSupportedError struct {
	SubSystem string
	Feature   string
}

func (err *NotSupportedError) Error() string {
	return err.SubSystem + ": " + err.Feature + " not supported"
}
