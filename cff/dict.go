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
	"errors"
	"strconv"

	"seehuhn.de/go/postscript/type1"

	"github.com/cdelker/glyphpath/parser"
)

type cffDict map[dictOp][]interface{}

func decodeDict(buf []byte, ss *cffStrings) (cffDict, error) {
	res := cffDict{}
	var stack []interface{}

	flush := func(op dictOp) error {
		if op.isString() {
			l := len(stack)
			if l > 2 { // special case for opROS
				l = 2
			}
			for i := 0; i < l; i++ {
				var idx int32
				switch x := stack[i].(type) {
				case int32:
					idx = x
				case float64:
					idx = int32(x)
					if float64(idx) != x {
						return errNoString
					}
				default:
					return errNoString
				}
				var err error
				stack[i], err = ss.get(idx)
				if err != nil {
					return err
				}
			}
		}
		res[op] = stack
		stack = nil
		return nil
	}

	for len(buf) > 0 {
		b0 := buf[0]
		var err error
		switch {
		case b0 == 12:
			if len(buf) < 2 {
				return nil, errCorruptDict
			}
			err = flush(dictOp(b0)<<8 + dictOp(buf[1]))
			buf = buf[2:]
		case b0 <= 21:
			err = flush(dictOp(b0))
			buf = buf[1:]
		case b0 <= 27: // values 22-27, 31, and 255 are reserved
			return nil, errCorruptDict
		case b0 == 28:
			if len(buf) < 3 {
				return nil, errCorruptDict
			}
			stack = append(stack, int32(int16(uint16(buf[1])<<8+uint16(buf[2]))))
			buf = buf[3:]
		case b0 == 29:
			if len(buf) < 5 {
				return nil, errCorruptDict
			}
			stack = append(stack,
				int32(uint32(buf[1])<<24+uint32(buf[2])<<16+uint32(buf[3])<<8+uint32(buf[4])))
			buf = buf[5:]
		case b0 == 30:
			tmp, x, err2 := decodeFloat(buf[1:])
			if err2 != nil {
				return nil, err2
			}
			stack = append(stack, x)
			buf = tmp
		case b0 == 31: // values 22-27, 31, and 255 are reserved
			return nil, errCorruptDict
		case b0 <= 246:
			stack = append(stack, int32(b0)-139)
			buf = buf[1:]
		case b0 <= 250:
			if len(buf) < 2 {
				return nil, errCorruptDict
			}
			stack = append(stack, int32(b0)*256+int32(buf[1])+(108-247*256))
			buf = buf[2:]
		case b0 <= 254:
			if len(buf) < 2 {
				return nil, errCorruptDict
			}
			stack = append(stack, -int32(b0)*256-int32(buf[1])-(108-251*256))
			buf = buf[2:]
		default: // values 22-27, 31, and 255 are reserved
			err = errCorruptDict
		}
		if err != nil {
			return nil, err
		}
	}

	if len(stack) > 0 {
		return nil, errCorruptDict
	}

	return res, nil
}

// decodes a float (without the leading 0x1e)
func decodeFloat(buf []byte) ([]byte, float64, error) {
	var s []byte

	first := true
	var next byte
	for {
		var nibble byte
		if first {
			if len(buf) == 0 {
				return nil, 0, errors.New("cff: incomplete float")
			}
			next, buf = buf[0], buf[1:]
			nibble = next >> 4
			next = next & 15
			first = false
		} else {
			nibble = next
			first = true
		}

		switch nibble {
		case 0x0a:
			s = append(s, '.')
		case 0xb:
			s = append(s, 'e')
		case 0xc:
			s = append(s, 'e', '-')
		case 0xd: // reserved
			return nil, 0, errors.New("cff: unsupported float format")
		case 0xe:
			s = append(s, '-')
		case 0xf:
			x, err := strconv.ParseFloat(string(s), 64)
			switch {
			case x > 1e300:
				x = 1e300
			case x > -1e-300 && x < 1e-300:
				x = 0
			case x < -1e300:
				x = -1e300
			}
			return buf, x, err
		default:
			s = append(s, '0'+nibble)
		}
	}
}

func (d cffDict) getInt(op dictOp, defVal int32) int32 {
	if len(d[op]) != 1 {
		return defVal
	}
	x, ok := d[op][0].(int32)
	if !ok {
		return defVal
	}
	return x
}

func (d cffDict) getFloat(op dictOp, defVal float64) float64 {
	if len(d[op]) != 1 {
		return defVal
	}
	switch x := d[op][0].(type) {
	case int32:
		return float64(x)
	case float64:
		return x
	default:
		return defVal
	}
}

func (d cffDict) getString(op dictOp) string {
	if len(d[op]) != 1 {
		return ""
	}
	x, _ := d[op][0].(string)
	x = string([]rune(x)) // make sure we have valid utf-8 data
	return x
}

func (d cffDict) getDelta32(op dictOp) []int32 {
	values := d[op]
	if len(values) == 0 {
		return nil
	}
	res := make([]int32, len(values))
	var prev int32
	for i, v := range values {
		x, ok := v.(int32)
		if !ok {
			return nil
		}
		res[i] = x + prev
		prev = res[i]
	}
	return res
}

func (d cffDict) getPair(op dictOp) (int32, int32, bool) {
	xy := d[op]
	if len(xy) != 2 {
		return 0, 0, false
	}
	x, ok := xy[0].(int32)
	if !ok {
		return 0, 0, false
	}
	y, ok := xy[1].(int32)
	if !ok {
		return 0, 0, false
	}
	return x, y, true
}

func (d cffDict) getFontMatrix(op dictOp) []float64 {
	xx, ok := d[op]
	if !ok || len(xx) != 6 {
		return defaultFontMatrix
	}

	res := make([]float64, 6)
	for i, x := range xx {
		xi, ok := x.(float64)
		if !ok {
			return defaultFontMatrix
		}
		res[i] = xi
	}

	return res
}

type privateInfo struct {
	private      *type1.PrivateDict
	subrs        cffIndex
	defaultWidth float64
	nominalWidth float64
}

func (d cffDict) readPrivate(p *parser.Parser, strings *cffStrings) (*privateInfo, error) {
	pdSize, pdOffs, ok := d.getPair(opPrivate)
	if !ok || pdOffs < 0 || pdSize < 0 {
		return nil, invalidSince("missing Private DICT")
	}

	err := p.SeekPos(int64(pdOffs))
	if err != nil {
		return nil, err
	}

	privateDictBlob := make([]byte, pdSize)
	_, err = p.Read(privateDictBlob)
	if err != nil {
		return nil, err
	}

	privateDict, err := decodeDict(privateDictBlob, strings)
	if err != nil {
		return nil, err
	}

	private := &type1.PrivateDict{
		BlueValues: privateDict.getDelta32(opBlueValues),
		OtherBlues: privateDict.getDelta32(opOtherBlues),
		BlueScale:  privateDict.getFloat(opBlueScale, defaultBlueScale),
		BlueShift:  privateDict.getInt(opBlueShift, 7),
		BlueFuzz:   privateDict.getInt(opBlueFuzz, 1),
		StdHW:      privateDict.getFloat(opStdHW, 0),
		StdVW:      privateDict.getFloat(opStdVW, 0),
		ForceBold:  privateDict.getInt(opForceBold, 0) != 0,
	}
	private.BlueScale = clamp(private.BlueScale, 0, 1)
	private.StdHW = clamp(private.StdHW, 0, 10000)
	private.StdVW = clamp(private.StdVW, 0, 10000)

	var subrs cffIndex
	subrsIndexOffs := privateDict.getInt(opSubrs, 0)
	if subrsIndexOffs > 0 {
		subrs, err = readIndexAt(p, pdOffs+subrsIndexOffs, "Subrs")
		if err != nil {
			return nil, err
		}
	}

	info := &privateInfo{
		private:      private,
		defaultWidth: privateDict.getFloat(opDefaultWidthX, 0),
		nominalWidth: privateDict.getFloat(opNominalWidthX, 0),
		subrs:        subrs,
	}

	return info, nil
}

func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	} else if x > max {
		return max
	}
	return x
}

var defaultFontMatrix = []float64{0.001, 0, 0, 0.001, 0, 0}

var errNoString = invalidSince("expected a string index")
var errCorruptDict = invalidSince("corrupt dict")

type dictOp uint16

const (
	// top DICT operators
	opVersion            dictOp = 0x0000
	opNotice             dictOp = 0x0001
	opFullName           dictOp = 0x0002
	opFamilyName         dictOp = 0x0003
	opWeight             dictOp = 0x0004
	opFontBBox           dictOp = 0x0005
	opCharset            dictOp = 0x000F
	opEncoding           dictOp = 0x0010
	opCharStrings        dictOp = 0x0011
	opPrivate            dictOp = 0x0012
	opCopyright          dictOp = 0x0C00
	opIsFixedPitch       dictOp = 0x0C01
	opItalicAngle        dictOp = 0x0C02
	opUnderlinePosition  dictOp = 0x0C03
	opUnderlineThickness dictOp = 0x0C04
	opPaintType          dictOp = 0x0C05
	opCharstringType     dictOp = 0x0C06
	opFontMatrix         dictOp = 0x0C07
	opSyntheticBase      dictOp = 0x0C14
	opPostScript         dictOp = 0x0C15
	opBaseFontName       dictOp = 0x0C16
	opROS                dictOp = 0x0C1E
	opCIDFontVersion     dictOp = 0x0C1F
	opCIDFontRevision    dictOp = 0x0C20
	opCIDFontType        dictOp = 0x0C21
	opCIDCount           dictOp = 0x0C22
	opUIDBase            dictOp = 0x0C23
	opFDArray            dictOp = 0x0C24
	opFDSelect           dictOp = 0x0C25
	opFontName           dictOp = 0x0C26

	// private DICT operators
	opBlueValues       dictOp = 0x0006
	opOtherBlues       dictOp = 0x0007
	opFamilyBlues      dictOp = 0x0008
	opFamilyOtherBlues dictOp = 0x0009
	opStdHW            dictOp = 0x000A
	opStdVW            dictOp = 0x000B
	opSubrs            dictOp = 0x0013 // offset (self-relative) to local subrs
	opDefaultWidthX    dictOp = 0x0014
	opNominalWidthX    dictOp = 0x0015
	opBlueScale        dictOp = 0x0C09
	opBlueShift        dictOp = 0x0C0A
	opBlueFuzz         dictOp = 0x0C0B
	opForceBold        dictOp = 0x0C0E
)

func (d dictOp) isString() bool {
	switch d {
	case opVersion, opNotice, opCopyright, opFullName, opFamilyName, opWeight,
		opPostScript, opBaseFontName, opROS, opFontName:
		return true
	default:
		return false
	}
}

const (
	defaultUnderlinePosition  = -100
	defaultUnderlineThickness = 50
	defaultBlueScale          = 0.039625
)
