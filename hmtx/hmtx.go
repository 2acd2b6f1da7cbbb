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

// Package hmtx reads the "hhea" and "hmtx" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/hhea
// https://docs.microsoft.com/en-us/typography/opentype/spec/hmtx
package hmtx

// Glyph metrics used for horizontal text layout include glyph advance
// widths, side bearings, and X-direction min/max values. These are
// derived using a combination of the glyph outline data ("glyf",
// "CFF ") and the horizontal metrics table ("hmtx"), which provides
// glyph advance widths and left side bearings.
//
// In a font with TrueType outline data, the advance width is always
// obtained from the "hmtx" table; the "glyf" table alone does not
// carry it.

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"seehuhn.de/go/postscript/funit"

	"github.com/cdelker/glyphpath/parser"
)

// Info contains information from the "hhea" and "hmtx" tables.
type Info struct {
	Widths []funit.Int16
	LSB    []funit.Int16

	Ascent  funit.Int16
	Descent funit.Int16 // negative
	LineGap funit.Int16

	CaretAngle  float64 // in radians, 0 for vertical
	CaretOffset funit.Int16
}

type binaryHhea struct {
	Version             uint32
	Ascent              int16
	Descent             int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	_                   int16
	_                   int16
	_                   int16
	_                   int16
	MetricDataFormat    int16
	NumOfLongHorMetrics uint16
}

// Decode extracts information from the "hhea" and "hmtx" tables.
func Decode(hheaData, hmtxData []byte) (*Info, error) {
	r := bytes.NewReader(hheaData)
	hheaEnc := &binaryHhea{}
	err := binary.Read(r, binary.BigEndian, hheaEnc)
	if err != nil {
		return nil, err
	}
	if hheaEnc.Version != 0x00010000 {
		return nil, &parser.InvalidFontError{
			SubSystem: "hhea",
			Reason:    fmt.Sprintf("unsupported table version %08x", hheaEnc.Version),
		}
	}
	if hheaEnc.MetricDataFormat != 0 {
		return nil, &parser.NotSupportedError{
			SubSystem: "hhea",
			Feature:   fmt.Sprintf("metric data format %d", hheaEnc.MetricDataFormat),
		}
	}

	caretAngle := toAngle(hheaEnc.CaretSlopeRise, hheaEnc.CaretSlopeRun)
	info := &Info{
		Ascent:      funit.Int16(hheaEnc.Ascent),
		Descent:     funit.Int16(hheaEnc.Descent),
		LineGap:     funit.Int16(hheaEnc.LineGap),
		CaretAngle:  caretAngle,
		CaretOffset: funit.Int16(hheaEnc.CaretOffset),
	}

	numHorMetrics := int(hheaEnc.NumOfLongHorMetrics)
	prevWidth := funit.Int16(0)
	var widths []funit.Int16
	var lsbs []funit.Int16
	for i := 0; len(hmtxData) > 0; i++ {
		width := prevWidth
		if i < numHorMetrics {
			if len(hmtxData) < 2 {
				return nil, &parser.InvalidFontError{SubSystem: "hmtx", Reason: "table truncated"}
			}
			width = funit.Int16(int16(hmtxData[0])<<8 | int16(hmtxData[1]))
			hmtxData = hmtxData[2:]
			prevWidth = width
		}
		widths = append(widths, width)

		if len(hmtxData) < 2 {
			return nil, &parser.InvalidFontError{SubSystem: "hmtx", Reason: "table truncated"}
		}
		lsb := funit.Int16(int16(hmtxData[0])<<8 | int16(hmtxData[1]))
		hmtxData = hmtxData[2:]
		lsbs = append(lsbs, lsb)
	}
	if len(widths) < numHorMetrics {
		return nil, &parser.InvalidFontError{SubSystem: "hmtx", Reason: "fewer entries than numberOfHMetrics"}
	}
	info.Widths = widths
	info.LSB = lsbs

	return info, nil
}

func toAngle(rise, run int16) float64 {
	// slope = rise / run (rise = 1, run = 0 for vertical)
	if rise == -32768 {
		rise = -32767
	}
	if run == -32768 {
		run = -32767
	}
	return math.Atan2(float64(rise), float64(run)) - math.Pi/2
}
