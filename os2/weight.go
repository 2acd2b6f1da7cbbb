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

package os2

import (
	"strconv"
	"strings"
)

// Weight represents the visual weight (boldness) of a font, using the
// same 100-900 scale as the "OS/2" table's usWeightClass field.
// https://learn.microsoft.com/en-us/typography/opentype/spec/os2#usweightclass
type Weight uint16

// The weight classes defined by the OS/2 table.
const (
	WeightThin       Weight = 100
	WeightExtraLight Weight = 200
	WeightLight      Weight = 300
	WeightNormal     Weight = 400
	WeightMedium     Weight = 500
	WeightSemiBold   Weight = 600
	WeightBold       Weight = 700
	WeightExtraBold  Weight = 800
	WeightBlack      Weight = 900
)

var weightNames = []struct {
	Weight Weight
	Name   string
}{
	{WeightThin, "Thin"},
	{WeightExtraLight, "Extra Light"},
	{WeightLight, "Light"},
	{WeightNormal, "Regular"},
	{WeightMedium, "Medium"},
	{WeightSemiBold, "Semi Bold"},
	{WeightBold, "Bold"},
	{WeightExtraBold, "Extra Bold"},
	{WeightBlack, "Black"},
}

// String returns the name of the nearest standard weight class.
func (w Weight) String() string {
	return w.Rounded().SimpleString()
}

// SimpleString returns the name for exactly this weight class, or a
// numeric fallback if w is not one of the nine standard classes.
func (w Weight) SimpleString() string {
	for _, wn := range weightNames {
		if wn.Weight == w {
			return wn.Name
		}
	}
	return strconv.Itoa(int(w))
}

// Rounded returns the nearest of the nine standard weight classes.
func (w Weight) Rounded() Weight {
	best := weightNames[0].Weight
	bestDist := Weight(0)
	first := true
	for _, wn := range weightNames {
		var dist Weight
		if wn.Weight > w {
			dist = wn.Weight - w
		} else {
			dist = w - wn.Weight
		}
		if first || dist < bestDist {
			best = wn.Weight
			bestDist = dist
			first = false
		}
	}
	return best
}

// WeightFromString guesses a weight class from a font subfamily or
// weight name, such as "Bold" or "Semi Bold". Unrecognised strings
// return WeightNormal.
func WeightFromString(s string) Weight {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	switch {
	case strings.Contains(s, "thin") || strings.Contains(s, "hairline"):
		return WeightThin
	case strings.Contains(s, "extralight") || strings.Contains(s, "ultralight"):
		return WeightExtraLight
	case strings.Contains(s, "light"):
		return WeightLight
	case strings.Contains(s, "medium"):
		return WeightMedium
	case strings.Contains(s, "semibold") || strings.Contains(s, "demibold"):
		return WeightSemiBold
	case strings.Contains(s, "extrabold") || strings.Contains(s, "ultrabold"):
		return WeightExtraBold
	case strings.Contains(s, "black") || strings.Contains(s, "heavy"):
		return WeightBlack
	case strings.Contains(s, "bold"):
		return WeightBold
	default:
		return WeightNormal
	}
}
