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
	"bytes"
	"errors"
	"testing"

	"github.com/cdelker/glyphpath/cff"
	"github.com/cdelker/glyphpath/header"
)

func TestReadBadSignature(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("this is not a font file at all")))
	var fe *FontError
	if !errors.As(err, &fe) {
		t.Fatalf("got %T, want *FontError", err)
	}
	if fe.Kind != BadSignature {
		t.Errorf("Kind = %v, want BadSignature", fe.Kind)
	}
}

func TestTableErrorPromotion(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorKind
	}{
		{&header.ErrMissing{TableName: "loca"}, MissingRequiredTable},
		{&cff.UnsupportedOpError{Op: 99}, UnsupportedOp},
		{errors.New("stack overflow"), CharstringVM},
	}
	for _, c := range cases {
		got := tableError(CharstringVM, "CFF ", c.err)
		var fe *FontError
		if !errors.As(got, &fe) {
			t.Fatalf("got %T, want *FontError", got)
		}
		if fe.Kind != c.want {
			t.Errorf("%v: Kind = %v, want %v", c.err, fe.Kind, c.want)
		}
		if !errors.Is(got, c.err) {
			t.Errorf("%v: wrapped error lost", c.err)
		}
	}
}
