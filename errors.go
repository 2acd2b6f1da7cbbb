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

package glyphpath

import (
	"errors"
	"fmt"

	"github.com/cdelker/glyphpath/cff"
	"github.com/cdelker/glyphpath/glyf"
	"github.com/cdelker/glyphpath/header"
	"github.com/cdelker/glyphpath/parser"
)

// ErrorKind classifies the errors this package can report, both the
// fatal ones returned from Read/ReadFile and the recovered ones
// recorded in Font.Warnings.
type ErrorKind int

const (
	BadSignature ErrorKind = iota
	TruncatedTable
	MissingRequiredTable
	UnsupportedFormat
	UnsupportedLookup
	UnsupportedOp
	CompoundDepth
	CharstringVM
	BadGlyphId
	BadCmapSubtable
)

func (k ErrorKind) String() string {
	switch k {
	case BadSignature:
		return "bad signature"
	case TruncatedTable:
		return "truncated table"
	case MissingRequiredTable:
		return "missing required table"
	case UnsupportedFormat:
		return "unsupported format"
	case UnsupportedLookup:
		return "unsupported lookup"
	case UnsupportedOp:
		return "unsupported charstring operator"
	case CompoundDepth:
		return "compound glyph nesting too deep"
	case CharstringVM:
		return "charstring error"
	case BadGlyphId:
		return "invalid glyph id"
	case BadCmapSubtable:
		return "invalid cmap subtable"
	default:
		return "error"
	}
}

// FontError wraps an error from one of the table decoders with its
// classification, so that callers can switch on the Kind without
// knowing which package produced the underlying error.  All errors
// returned by Read and ReadFile (other than I/O errors from the
// reader itself) are of this type.
type FontError struct {
	Kind  ErrorKind
	Table string // 4-character table tag, if tied to one table
	Err   error
}

func (e *FontError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("%s %q: %v", e.Kind, e.Table, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *FontError) Unwrap() error { return e.Err }

// tableError wraps err as a *FontError.  The kind argument gives the
// classification for generic parse failures; errors carrying a more
// specific meaning (a missing table, an unsupported feature, the
// composite nesting limit, an unimplemented charstring opcode)
// override it.
func tableError(kind ErrorKind, table string, err error) error {
	var missing *header.ErrMissing
	var notSup *parser.NotSupportedError
	var invalid *parser.InvalidFontError
	var badOp *cff.UnsupportedOpError
	switch {
	case errors.As(err, &missing):
		kind = MissingRequiredTable
	case errors.As(err, &badOp):
		kind = UnsupportedOp
	case errors.As(err, &notSup):
		kind = UnsupportedFormat
	case errors.Is(err, glyf.ErrCompoundDepth):
		kind = CompoundDepth
	case errors.As(err, &invalid):
		kind = TruncatedTable
	}
	return &FontError{Kind: kind, Table: table, Err: err}
}

// headerError classifies a failure to read the sfnt table directory:
// an unrecognized scaler type is a bad signature, anything else means
// the directory itself is damaged.
func headerError(err error) error {
	var notSup *parser.NotSupportedError
	kind := TruncatedTable
	if errors.As(err, &notSup) {
		kind = BadSignature
	}
	return &FontError{Kind: kind, Err: err}
}
