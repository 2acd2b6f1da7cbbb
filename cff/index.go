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
	"bufio"
	"bytes"

	"github.com/cdelker/glyphpath/parser"
)

// cffIndex is a CFF INDEX, i.e. an ordered sequence of binary blobs.
type cffIndex [][]byte

func readIndex(p *parser.Parser) (cffIndex, error) {
	count, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	return readIndexBody(p, count, "INDEX")
}

// readIndexAt reads an INDEX starting at the given offset.  name is
// only used in error messages.
func readIndexAt(p *parser.Parser, offs int32, name string) (cffIndex, error) {
	err := p.SeekPos(int64(offs))
	if err != nil {
		return nil, err
	}

	count, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	return readIndexBody(p, count, name)
}

func readIndexBody(p *parser.Parser, count uint16, name string) (cffIndex, error) {
	if count == 0 {
		return nil, nil
	}

	offSizeByte, err := p.ReadUint8()
	if err != nil {
		return nil, err
	}
	offSize := int(offSizeByte)
	if offSize < 1 || offSize > 4 {
		return nil, invalidSince(name + ": invalid offset size")
	}

	size := p.Size()
	offsets := make([]uint32, count+1)
	prevOffset := uint32(1)
	for i := 0; i <= int(count); i++ {
		blob, err := p.ReadBytes(offSize)
		if err != nil {
			return nil, err
		}

		var o uint32
		for _, x := range blob {
			o = o<<8 | uint32(x)
		}
		if o < prevOffset || int64(o) >= size {
			return nil, invalidSince(name + ": invalid offset")
		}
		offsets[i] = o - 1
		prevOffset = o
	}

	buf := make([]byte, offsets[count])
	_, err = p.Read(buf)
	if err != nil {
		return nil, err
	}

	res := make(cffIndex, count)
	for i := 0; i < int(count); i++ {
		res[i] = buf[offsets[i]:offsets[i+1]]
	}

	return res, nil
}

func (data cffIndex) writeTo(w *bufio.Writer) (int, error) {
	count := len(data)
	if count >= 1<<16 {
		return 0, invalidSince("too many items for CFF INDEX")
	}
	if count == 0 {
		return w.Write([]byte{0, 0})
	}

	bodyLength := 0
	for _, blob := range data {
		bodyLength += len(blob)
	}

	offSize := 1
	for bodyLength+1 >= 1<<(8*offSize) {
		offSize++
	}
	if offSize > 4 {
		return 0, invalidSince("too much data for CFF INDEX")
	}

	total := 0
	n, _ := w.Write([]byte{
		byte(count >> 8), byte(count), // count
		byte(offSize), // offSize
	})
	total += n

	var buf [4]byte
	pos := uint32(1)
	for i := 0; i <= count; i++ {
		for j := 0; j < offSize; j++ {
			buf[j] = byte(pos >> (8 * (offSize - j - 1)))
		}
		n, _ = w.Write(buf[:offSize])
		total += n
		if i < count {
			pos += uint32(len(data[i]))
		}
	}

	for i := 0; i < count; i++ {
		n, _ = w.Write(data[i])
		total += n
	}

	return total, nil
}

// encode converts a CFF INDEX to its binary representation.
func (data cffIndex) encode() []byte {
	buf := &bytes.Buffer{}
	out := bufio.NewWriter(buf)
	data.writeTo(out)
	out.Flush()
	return buf.Bytes()
}
