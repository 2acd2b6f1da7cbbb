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

// Package parser provides a cursor for reading big-endian binary data
// out of SFNT font tables.
package parser

import (
	"fmt"
	"io"

	"github.com/cdelker/glyphpath/glyph"
)

const bufferSize = 1024

// ReadSeekSizer describes the requirements for a reader that can be used
// as the input to a Parser.
type ReadSeekSizer interface {
	io.ReadSeeker
	Size() int64
}

// Parser allows to read data from an sfnt table.
type Parser struct {
	r ReadSeekSizer

	buf       []byte
	from      int64
	pos, used int
	lastRead  int
}

// New allocates a new Parser reading from r, starting at position 0.
func New(r ReadSeekSizer) *Parser {
	p := &Parser{r: r}
	if err := p.SeekPos(0); err != nil {
		panic(err)
	}
	return p
}

// Size returns the total size of the underlying input.
func (p *Parser) Size() int64 {
	return p.r.Size()
}

// Pos returns the current reading position.
func (p *Parser) Pos() int64 {
	return p.from + int64(p.pos)
}

// SeekPos moves the reading position to filePos.
func (p *Parser) SeekPos(filePos int64) error {
	if filePos >= p.from && filePos <= p.from+int64(p.used) {
		p.pos = int(filePos - p.from)
	} else {
		_, err := p.r.Seek(filePos, io.SeekStart)
		if err != nil {
			return err
		}
		p.from = filePos
		p.pos = 0
		p.used = 0
	}
	return nil
}

// Read implements io.Reader.
func (p *Parser) Read(buf []byte) (int, error) {
	total := 0
	for len(buf) > 0 {
		k := len(buf)
		if k > bufferSize {
			k = bufferSize
		}
		tmp, err := p.ReadBytes(k)
		k = copy(buf, tmp)
		total += k
		buf = buf[k:]
		if len(buf) > 0 && err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadUint8 reads a single uint8 value.
func (p *Parser) ReadUint8() (uint8, error) {
	buf, err := p.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadInt8 reads a single int8 value.
func (p *Parser) ReadInt8() (int8, error) {
	v, err := p.ReadUint8()
	return int8(v), err
}

// ReadUint16 reads a single uint16 value.
func (p *Parser) ReadUint16() (uint16, error) {
	buf, err := p.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

// ReadInt16 reads a single int16 value.
func (p *Parser) ReadInt16() (int16, error) {
	v, err := p.ReadUint16()
	return int16(v), err
}

// ReadUint24 reads a single 24-bit unsigned value.
func (p *Parser) ReadUint24() (uint32, error) {
	buf, err := p.ReadBytes(3)
	if err != nil {
		return 0, err
	}
	return uint32(buf[0])<<16 | uint32(buf[1])<<8 | uint32(buf[2]), nil
}

// ReadUint32 reads a single uint32 value.
func (p *Parser) ReadUint32() (uint32, error) {
	buf, err := p.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]), nil
}

// ReadInt32 reads a single int32 value.
func (p *Parser) ReadInt32() (int32, error) {
	v, err := p.ReadUint32()
	return int32(v), err
}

// ReadFixed reads a 16.16 fixed-point value.
func (p *Parser) ReadFixed() (float64, error) {
	v, err := p.ReadInt32()
	if err != nil {
		return 0, err
	}
	return float64(v) / 65536, nil
}

// ReadF2Dot14 reads a 2.14 fixed-point value, as used in glyph
// component transforms.
func (p *Parser) ReadF2Dot14() (float64, error) {
	v, err := p.ReadInt16()
	if err != nil {
		return 0, err
	}
	return float64(v) / 16384, nil
}

// ReadTag reads a 4-byte tag.
func (p *Parser) ReadTag() (string, error) {
	buf, err := p.ReadBytes(4)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadUint16Slice reads a uint16 length followed by that many uint16
// values.
func (p *Parser) ReadUint16Slice() ([]uint16, error) {
	n, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	res := make([]uint16, n)
	for i := range res {
		res[i], err = p.ReadUint16()
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// ReadGIDSlice reads a uint16 length followed by that many glyph IDs.
func (p *Parser) ReadGIDSlice() ([]glyph.ID, error) {
	n, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	res := make([]glyph.ID, n)
	for i := range res {
		val, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		res[i] = glyph.ID(val)
	}
	return res, nil
}

// ReadBytes reads n bytes starting at the current position. The
// returned slice points into the internal buffer and is only valid
// until the next call to a Parser method; callers must not retain or
// modify it. n must be <= 1024.
func (p *Parser) ReadBytes(n int) ([]byte, error) {
	p.lastRead = int(p.from + int64(p.pos))
	if n < 0 {
		n = 0
	} else if n > bufferSize {
		panic("parser: buffer size exceeded")
	}

	for p.pos+n > p.used {
		if len(p.buf) == 0 {
			p.buf = make([]byte, bufferSize)
		}
		k := copy(p.buf, p.buf[p.pos:p.used])
		p.from += int64(p.pos)
		p.pos = 0
		p.used = k

		l, err := p.r.Read(p.buf[p.used:])
		if err == io.EOF {
			if l > 0 {
				err = nil
			} else {
				err = io.ErrUnexpectedEOF
			}
		}
		if err != nil {
			return nil, p.wrapError("read failed: %w", err)
		}
		p.used += l
	}

	res := p.buf[p.pos : p.pos+n]
	p.pos += n
	return res, nil
}

func (p *Parser) wrapError(format string, a ...interface{}) error {
	return fmt.Errorf("parser%+d: "+format, append([]interface{}{p.lastRead}, a...)...)
}
