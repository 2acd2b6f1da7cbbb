// github.com/cdelker/glyphpath - a library for reading and writing font files
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

package cff

import (
	"fmt"

	"github.com/cdelker/glyphpath/parser"
)

func invalidSince(reason string) error {
	return &parser.InvalidFontError{SubSystem: "cff", Reason: reason}
}

func unsupported(feature string) error {
	return &parser.NotSupportedError{SubSystem: "cff", Feature: feature}
}

// UnsupportedOpError reports a Type 2 charstring opcode which the
// interpreter does not implement.
type UnsupportedOpError struct {
	Op uint16
}

func (err *UnsupportedOpError) Error() string {
	return fmt.Sprintf("cff: unsupported type 2 opcode %d", err.Op)
}
