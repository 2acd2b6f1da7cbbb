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

package cff

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// assemble builds a charstring from integers and operator codes.  Each
// num() token is emitted as an operand, every cmd() token as an
// operator (two-byte operators get their escape prefix).
type csToken struct {
	operand bool
	val     int
}

func num(v int) csToken { return csToken{operand: true, val: v} }
func cmd(op int) csToken { return csToken{val: op} }

func assemble(tokens ...csToken) []byte {
	var buf []byte
	for _, tok := range tokens {
		if !tok.operand {
			if tok.val > 0xff {
				buf = append(buf, csEscape, byte(tok.val))
			} else {
				buf = append(buf, byte(tok.val))
			}
			continue
		}
		v := tok.val
		switch {
		case v >= -107 && v <= 107:
			buf = append(buf, byte(v+139))
		case v >= 108 && v <= 1131:
			v -= 108
			buf = append(buf, byte(v/256+247), byte(v%256))
		case v >= -1131 && v <= -108:
			v = -v - 108
			buf = append(buf, byte(v/256+251), byte(v%256))
		default:
			buf = append(buf, 28, byte(v>>8), byte(v))
		}
	}
	return buf
}

func testDecoder() *decodeInfo {
	return &decodeInfo{
		subr:         cffIndex{},
		gsubr:        cffIndex{},
		defaultWidth: 500,
		nominalWidth: 666,
	}
}

func TestDecodeLinesAndCurves(t *testing.T) {
	code := assemble(
		num(10), num(20), cmd(csRMoveTo),
		num(100), cmd(csHLineTo),
		num(50), cmd(csVLineTo),
		num(1), num(2), num(3), num(4), num(5), num(6), cmd(csRRCurveTo),
		cmd(csEndChar),
	)
	g, err := testDecoder().decodeCharString(code)
	if err != nil {
		t.Fatal(err)
	}

	want := []GlyphOp{
		{Op: OpMoveTo, Args: []float64{10, 20}},
		{Op: OpLineTo, Args: []float64{110, 20}},
		{Op: OpLineTo, Args: []float64{110, 70}},
		{Op: OpCurveTo, Args: []float64{111, 72, 114, 76, 119, 82}},
	}
	if d := cmp.Diff(want, g.Cmds); d != "" {
		t.Errorf("unexpected commands (-want +got):\n%s", d)
	}
	if g.Width != 500 {
		t.Errorf("Width = %g, want the default width 500", g.Width)
	}
}

func TestDecodeWidth(t *testing.T) {
	// a leading odd operand before the first moveto is the width delta
	code := assemble(
		num(34), num(10), num(20), cmd(csRMoveTo),
		cmd(csEndChar),
	)
	g, err := testDecoder().decodeCharString(code)
	if err != nil {
		t.Fatal(err)
	}
	if g.Width != 700 { // nominalWidth 666 + 34
		t.Errorf("Width = %g, want 700", g.Width)
	}

	// a width may also ride on endchar alone
	code = assemble(num(-66), cmd(csEndChar))
	g, err = testDecoder().decodeCharString(code)
	if err != nil {
		t.Fatal(err)
	}
	if g.Width != 600 {
		t.Errorf("Width = %g, want 600", g.Width)
	}
}

func TestDecodeAlternatingLines(t *testing.T) {
	// hlineto with multiple operands alternates between horizontal
	// and vertical segments
	code := assemble(
		num(0), num(0), cmd(csRMoveTo),
		num(10), num(20), num(30), cmd(csHLineTo),
		cmd(csEndChar),
	)
	g, err := testDecoder().decodeCharString(code)
	if err != nil {
		t.Fatal(err)
	}
	want := []GlyphOp{
		{Op: OpMoveTo, Args: []float64{0, 0}},
		{Op: OpLineTo, Args: []float64{10, 0}},
		{Op: OpLineTo, Args: []float64{10, 20}},
		{Op: OpLineTo, Args: []float64{40, 20}},
	}
	if d := cmp.Diff(want, g.Cmds); d != "" {
		t.Errorf("unexpected commands (-want +got):\n%s", d)
	}
}

func TestDecodeStemsAndHintMask(t *testing.T) {
	// 2 hstem pairs and 1 vstem pair declared via hintmask, so the
	// mask that follows covers 3 stems in a single byte
	code := assemble(
		num(0), num(10), num(50), num(10), cmd(csHStem),
		num(25), num(5), cmd(csHintMask),
	)
	code = append(code, 0xe0) // mask byte
	code = append(code, assemble(
		num(0), num(0), cmd(csRMoveTo),
		cmd(csEndChar),
	)...)

	g, err := testDecoder().decodeCharString(code)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]float64{0, 10, 60, 70}, g.HStem); d != "" {
		t.Errorf("HStem (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]float64{25, 30}, g.VStem); d != "" {
		t.Errorf("VStem (-want +got):\n%s", d)
	}
	if len(g.Cmds) != 2 || g.Cmds[0].Op != OpHintMask {
		t.Fatalf("expected hintmask then moveto, got %v", g.Cmds)
	}
	if d := cmp.Diff([]float64{0xe0}, g.Cmds[0].Args); d != "" {
		t.Errorf("mask bytes (-want +got):\n%s", d)
	}
}

func TestDecodeSubroutine(t *testing.T) {
	// a local subroutine drawing one line; with fewer than 1240
	// subroutines the index bias is 107
	info := testDecoder()
	info.subr = cffIndex{
		assemble(num(10), num(0), cmd(csRLineTo), cmd(csReturn)),
	}

	code := assemble(
		num(0), num(0), cmd(csRMoveTo),
		num(-107), cmd(csCallSubr),
		cmd(csEndChar),
	)
	g, err := info.decodeCharString(code)
	if err != nil {
		t.Fatal(err)
	}
	want := []GlyphOp{
		{Op: OpMoveTo, Args: []float64{0, 0}},
		{Op: OpLineTo, Args: []float64{10, 0}},
	}
	if d := cmp.Diff(want, g.Cmds); d != "" {
		t.Errorf("unexpected commands (-want +got):\n%s", d)
	}
}

func TestDecodeSubrDepthLimit(t *testing.T) {
	// subroutine 0 calls itself unconditionally
	info := testDecoder()
	info.subr = cffIndex{
		assemble(num(-107), cmd(csCallSubr), cmd(csReturn)),
	}
	code := assemble(num(-107), cmd(csCallSubr), cmd(csEndChar))
	_, err := info.decodeCharString(code)
	if err == nil {
		t.Fatal("unbounded recursion not detected")
	}
}

func TestDecodeUnknownOp(t *testing.T) {
	code := assemble(num(0), num(0), cmd(csRMoveTo), cmd(0x0c28), cmd(csEndChar))
	_, err := testDecoder().decodeCharString(code)
	var badOp *UnsupportedOpError
	if !errors.As(err, &badOp) {
		t.Fatalf("got %v, want UnsupportedOpError", err)
	}
	if badOp.Op != 0x0c28 {
		t.Errorf("Op = %#x, want 0xc28", badOp.Op)
	}
}

func TestDecodeMissingEndChar(t *testing.T) {
	code := assemble(num(0), num(0), cmd(csRMoveTo))
	_, err := testDecoder().decodeCharString(code)
	if err == nil {
		t.Fatal("charstring without endchar not rejected")
	}
}

func TestDecodeLineBeforeMoveTo(t *testing.T) {
	code := assemble(num(5), num(5), cmd(csRLineTo), cmd(csEndChar))
	_, err := testDecoder().decodeCharString(code)
	if err == nil {
		t.Fatal("line before initial moveto not rejected")
	}
}

func TestDecodeHVCurveTo(t *testing.T) {
	// one curve starting horizontally, with a fifth trailing operand
	// giving the end point an x offset
	code := assemble(
		num(0), num(0), cmd(csRMoveTo),
		num(10), num(1), num(2), num(20), num(3), cmd(csHVCurveTo),
		cmd(csEndChar),
	)
	g, err := testDecoder().decodeCharString(code)
	if err != nil {
		t.Fatal(err)
	}
	want := []GlyphOp{
		{Op: OpMoveTo, Args: []float64{0, 0}},
		{Op: OpCurveTo, Args: []float64{10, 0, 11, 2, 14, 22}},
	}
	if d := cmp.Diff(want, g.Cmds); d != "" {
		t.Errorf("unexpected commands (-want +got):\n%s", d)
	}
}

func TestOperandEncodings(t *testing.T) {
	// one operand in each of the integer encodings, summed up via a
	// series of rlineto pairs
	code := assemble(
		num(0), num(0), cmd(csRMoveTo),
		num(107), num(-107), cmd(csRLineTo),
		num(108), num(-108), cmd(csRLineTo),
		num(1131), num(-1131), cmd(csRLineTo),
		num(5000), num(-5000), cmd(csRLineTo),
		cmd(csEndChar),
	)
	g, err := testDecoder().decodeCharString(code)
	if err != nil {
		t.Fatal(err)
	}
	want := []GlyphOp{
		{Op: OpMoveTo, Args: []float64{0, 0}},
		{Op: OpLineTo, Args: []float64{107, -107}},
		{Op: OpLineTo, Args: []float64{215, -215}},
		{Op: OpLineTo, Args: []float64{1346, -1346}},
		{Op: OpLineTo, Args: []float64{6346, -6346}},
	}
	if d := cmp.Diff(want, g.Cmds); d != "" {
		t.Errorf("unexpected commands (-want +got):\n%s", d)
	}
}

func TestFixedOperand(t *testing.T) {
	// 255 introduces a 16.16 fixed-point operand: 1.5 = 0x00018000
	code := []byte{139, 139, byte(csRMoveTo)} // 0 0 rmoveto
	code = append(code, 255, 0x00, 0x01, 0x80, 0x00, 255, 0x00, 0x01, 0x80, 0x00, byte(csRLineTo))
	code = append(code, byte(csEndChar))

	g, err := testDecoder().decodeCharString(code)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Cmds) != 2 {
		t.Fatalf("got %d commands, want 2", len(g.Cmds))
	}
	p := g.Cmds[1].Args
	if math.Abs(p[0]-1.5) > 1e-9 || math.Abs(p[1]-1.5) > 1e-9 {
		t.Errorf("LineTo at (%g, %g), want (1.5, 1.5)", p[0], p[1])
	}
}

func TestRoll(t *testing.T) {
	in := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	out := []float64{1, 2, 4, 5, 6, 3, 7, 8}

	roll(in[2:6], 3)
	for i, x := range in {
		if out[i] != x {
			t.Error(in, out)
			break
		}
	}
}

func TestSubrBias(t *testing.T) {
	cases := []struct {
		n    int
		bias int
	}{
		{0, 107},
		{1239, 107},
		{1240, 1131},
		{33899, 1131},
		{33900, 32768},
	}
	for _, c := range cases {
		if got := subrBias(c.n); got != c.bias {
			t.Errorf("subrBias(%d) = %d, want %d", c.n, got, c.bias)
		}
	}
}
