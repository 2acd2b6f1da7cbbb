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

// Package gofont provides access to the embedded Go font family, for
// fixture and demo fonts that don't require a file on disk.
package gofont

import (
	"bytes"
	"fmt"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"

	glyphpath "github.com/cdelker/glyphpath"
)

// ID identifies individual fonts in the Go font family.
type ID int

const (
	Regular ID = iota
	Bold
	BoldItalic
	Italic
	Medium
	MediumItalic
	Smallcaps
	SmallcapsItalic
	Mono
	MonoBold
	MonoBoldItalic
	MonoItalic
)

var ttf = map[ID][]byte{
	Regular:         goregular.TTF,
	Bold:            gobold.TTF,
	BoldItalic:      gobolditalic.TTF,
	Italic:          goitalic.TTF,
	Medium:          gomedium.TTF,
	MediumItalic:    gomediumitalic.TTF,
	Smallcaps:       gosmallcaps.TTF,
	SmallcapsItalic: gosmallcapsitalic.TTF,
	Mono:            gomono.TTF,
	MonoBold:        gomonobold.TTF,
	MonoBoldItalic:  gomonobolditalic.TTF,
	MonoItalic:      gomonoitalic.TTF,
}

// All lists the fonts available through this package.
var All = []ID{
	Regular, Bold, BoldItalic, Italic, Medium, MediumItalic,
	Smallcaps, SmallcapsItalic, Mono, MonoBold, MonoBoldItalic, MonoItalic,
}

// Bytes returns the raw TrueType data for f.
func Bytes(f ID) ([]byte, error) {
	data, ok := ttf[f]
	if !ok {
		return nil, fmt.Errorf("gofont: unknown font %d", f)
	}
	return data, nil
}

// Load decodes f as a *glyphpath.Font.
func Load(f ID) (*glyphpath.Font, error) {
	data, err := Bytes(f)
	if err != nil {
		return nil, err
	}
	return glyphpath.Read(bytes.NewReader(data))
}

// Default loads the regular-weight Go font, for use as a test fixture
// or as a fallback when no font file is supplied.
func Default() (*glyphpath.Font, error) {
	return Load(Regular)
}

// Gopher is the Unicode code point for the gopher symbol in the Go fonts.
const Gopher = '\uF800'
