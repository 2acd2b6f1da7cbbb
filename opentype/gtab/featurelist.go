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

package gtab

import (
	"github.com/cdelker/glyphpath/parser"
)

// FeatureIndex is used to refer to a [Feature] inside a [FeatureListInfo].
type FeatureIndex uint16

// Feature describes a single font feature (for example "liga" or "kern")
// in terms of the lookups which implement it.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#feature-list-table
type Feature struct {
	Tag     string
	Lookups []LookupIndex
}

// FeatureListInfo contains the information of a "Feature List" table.
type FeatureListInfo []*Feature

func readFeatureList(p *parser.Parser, pos int64) (FeatureListInfo, error) {
	err := p.SeekPos(pos)
	if err != nil {
		return nil, err
	}

	featureCount, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	type featureRecord struct {
		tag    string
		offset uint16
	}
	records := make([]featureRecord, featureCount)
	for i := range records {
		tag, err := p.ReadTag()
		if err != nil {
			return nil, err
		}
		offset, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		records[i] = featureRecord{tag: tag, offset: offset}
	}

	res := make(FeatureListInfo, len(records))
	for i, rec := range records {
		err := p.SeekPos(pos + int64(rec.offset))
		if err != nil {
			return nil, err
		}

		// featureParamsOffset, lookupIndexCount
		buf, err := p.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		lookupIndexCount := uint16(buf[2])<<8 | uint16(buf[3])

		lookups := make([]LookupIndex, lookupIndexCount)
		for j := range lookups {
			idx, err := p.ReadUint16()
			if err != nil {
				return nil, err
			}
			lookups[j] = LookupIndex(idx)
		}

		res[i] = &Feature{Tag: rec.tag, Lookups: lookups}
	}

	return res, nil
}

