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

package cff

import (
	"bytes"
	"testing"

	"github.com/cdelker/glyphpath/glyph"
	"github.com/cdelker/glyphpath/parser"
)

func FuzzFDSelect(f *testing.F) {
	const nGlyphs = 100
	fds := []FDSelectFn{
		func(gid glyph.ID) int { return 0 },
		func(gid glyph.ID) int { return int(gid) / 60 },
		func(gid glyph.ID) int { return int(gid) / 4 },
		func(gid glyph.ID) int { return int(gid) },
		func(gid glyph.ID) int { return int(gid/5) % 5 },
	}
	for _, fd := range fds {
		f.Add(encodeFDSelect(fd, nGlyphs))
	}
	f.Fuzz(func(t *testing.T, in []byte) {
		p := parser.New(bytes.NewReader(in))
		fdSelect, err := readFDSelect(p, nGlyphs, 10)
		if err != nil {
			return
		}

		in2 := encodeFDSelect(fdSelect, nGlyphs)
		if len(in2) > len(in) {
			t.Error("inefficient encoding")
		}

		p = parser.New(bytes.NewReader(in2))
		fdSelect2, err := readFDSelect(p, nGlyphs, 25)
		if err != nil {
			t.Fatal(err)
		}

		for i := glyph.ID(0); i < nGlyphs; i++ {
			if fdSelect(i) != fdSelect2(i) {
				t.Errorf("%d: %d != %d", i, fdSelect(i), fdSelect2(i))
			}
		}
	})
}

// encodeFDSelect writes an FDSelect table for the fuzz seeds, using
// format 3 unless format 0 would be shorter.
func encodeFDSelect(fdSelect FDSelectFn, nGlyphs int) []byte {
	format0Length := nGlyphs + 1

	buf := []byte{3, 0, 0}
	currentFD := -1
	nSeg := 0
	for i := 0; i < nGlyphs; i++ {
		fd := fdSelect(glyph.ID(i))
		if fd == currentFD {
			continue
		}
		if len(buf)+3+2 >= format0Length {
			// format 0 is shorter
			buf = make([]byte, nGlyphs+1)
			for j := 0; j < nGlyphs; j++ {
				buf[j+1] = byte(fdSelect(glyph.ID(j)))
			}
			return buf
		}
		buf = append(buf, byte(i>>8), byte(i), byte(fd))
		nSeg++
		currentFD = fd
	}
	buf = append(buf, byte(nGlyphs>>8), byte(nGlyphs))
	buf[1], buf[2] = byte(nSeg>>8), byte(nSeg)
	return buf
}
