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

package gtab

import "fmt"

// unsupportedSubtable stands in for a lookup subtable of a type this
// package does not apply: GSUB types 5 and 8, and GPOS types 3, 5, 7
// and 8.  The subtable is parsed past (its contents are not read) and
// never matches, so the driver loop simply tries the next subtable or
// lookup.  Callers can enumerate these via [Info.SkippedLookups] to
// report them.
type unsupportedSubtable struct {
	TableType  Type
	LookupType uint16
}

// Apply implements the [Subtable] interface.  It never matches.
func (l *unsupportedSubtable) Apply(*Context, int, int) int {
	return -1
}

func (l *unsupportedSubtable) String() string {
	return fmt.Sprintf("%s lookup type %d", l.TableType, l.LookupType)
}

// SkippedLookups describes the lookup subtables in the table which were
// skipped because their lookup type is not supported, one entry per
// subtable, in LookupList order.
func (info *Info) SkippedLookups() []string {
	if info == nil {
		return nil
	}
	var res []string
	for _, lookup := range info.LookupList {
		for _, st := range lookup.Subtables {
			if u, ok := st.(*unsupportedSubtable); ok {
				res = append(res, u.String())
			}
		}
	}
	return res
}
