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

// HAlign is a horizontal line alignment.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is a vertical block alignment.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBaseline
	AlignBottom
)

// RotationMode controls how rotation interacts with alignment: see
// TextOptions.RotationMode.
type RotationMode int

const (
	// RotateAfterAlign rotates the already-aligned block about the anchor
	// point. This is the default.
	RotateAfterAlign RotationMode = iota
	// RotateThenAlign computes alignment on the already-rotated block.
	RotateThenAlign
)

// Config holds the rendering defaults a caller would otherwise have to
// repeat on every TextOptions value. It is never process-wide global
// state: a zero Config is valid (DefaultConfig fills in the documented
// defaults), and callers needing ambient-style convenience set
// Font.DefaultTextOptions once instead.
type Config struct {
	FontSize  float64 // pixels; default 48
	SVG2      bool    // emit reusable <symbol>/<use> pairs; default true
	Precision int     // decimal places for emitted coordinates; default 2
	Debug     bool    // emit baseline/bbox/origin debug geometry; default false
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() Config {
	return Config{
		FontSize:  48,
		SVG2:      true,
		Precision: 2,
		Debug:     false,
	}
}

// TextOptions controls how a string is shaped and positioned by
// Font.Text. The zero value is not meaningful on its own; start from
// Font.DefaultTextOptions and override individual fields.
type TextOptions struct {
	Size         float64 // pixels
	Color        string  // CSS color string, passed through unexamined
	HAlign       HAlign
	VAlign       VAlign
	LineSpacing  float64 // multiplier; default 1.0
	Rotation     float64 // degrees, counter-clockwise
	RotationMode RotationMode
	Language     string // BCP-47 tag; empty selects the font's default script

	// Features overrides the font-wide feature set for this call only;
	// nil means "use Font.Features unchanged".
	Features map[string]bool
}

// DefaultTextOptions returns the documented TextOptions defaults, sized
// from cfg (or the package defaults if cfg is the zero value).
func DefaultTextOptions(cfg Config) TextOptions {
	size := cfg.FontSize
	if size == 0 {
		size = DefaultConfig().FontSize
	}
	return TextOptions{
		Size:        size,
		HAlign:      AlignLeft,
		VAlign:      AlignBaseline,
		LineSpacing: 1.0,
	}
}
