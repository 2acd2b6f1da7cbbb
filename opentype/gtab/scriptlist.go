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
	"strings"

	"golang.org/x/text/language"

	"github.com/cdelker/glyphpath/parser"
)

// otScriptToISO15924 maps OpenType script tags (chapter2#script-tags) to
// the ISO 15924 script subtags used by BCP 47 / golang.org/x/text.
//
// Only the scripts seen in practice in the wild are listed here; unknown
// script tags are skipped rather than rejected, since a font can list
// scripts for systems outside of the ones we shape for.
var otScriptToISO15924 = map[string]string{
	"latn": "Latn",
	"grek": "Grek",
	"cyrl": "Cyrl",
	"arab": "Arab",
	"hebr": "Hebr",
	"deva": "Deva",
	"beng": "Beng",
	"guru": "Guru",
	"gujr": "Gujr",
	"orya": "Orya",
	"taml": "Taml",
	"telu": "Telu",
	"knda": "Knda",
	"mlym": "Mlym",
	"sinh": "Sinh",
	"thai": "Thai",
	"laoo": "Laoo",
	"tibt": "Tibt",
	"mymr": "Mymr",
	"geor": "Geor",
	"armn": "Armn",
	"hang": "Hang",
	"hani": "Hani",
	"kana": "Kana",
	"hira": "Hira",
	"ethi": "Ethi",
	"cher": "Cher",
	"cans": "Cans",
	"ogam": "Ogam",
	"runr": "Runr",
	"brai": "Brai",
	"khmr": "Khmr",
}

// otLanguageToBCP47 maps OpenType language system tags (chapter2#language-
// system-tags) to BCP 47 primary language subtags. "dflt" has no BCP 47
// equivalent and is handled separately.
var otLanguageToBCP47 = map[string]string{
	"ENG": "en",
	"DEU": "de",
	"FRA": "fr",
	"ITA": "it",
	"ESP": "es",
	"NLD": "nl",
	"POR": "pt",
	"POL": "pl",
	"RUS": "ru",
	"ELL": "el",
	"TRK": "tr",
	"ARA": "ar",
	"HEB": "he",
	"JAN": "ja",
	"ZHS": "zh",
	"ZHT": "zh-Hant",
	"KOR": "ko",
	"VIT": "vi",
	"THA": "th",
	"CSY": "cs",
	"DAN": "da",
	"FIN": "fi",
	"NOR": "nb",
	"SVE": "sv",
	"UKR": "uk",
	"HUN": "hu",
	"ROM": "ro",
}

// Features describes the mandatory and optional features for a
// script/language combination.
type Features struct {
	Required FeatureIndex // 0xFFFF, if no required feature
	Optional []FeatureIndex
}

// ScriptListInfo contains the information of a "Script List" table, keyed
// by BCP 47 language tag.
type ScriptListInfo map[language.Tag]*Features

func scriptLangTag(scriptTag, langTag string) (language.Tag, bool) {
	script, ok := otScriptToISO15924[strings.TrimSpace(scriptTag)]
	if !ok {
		return language.Und, false
	}

	if langTag == "" || langTag == "dflt" {
		tag, err := language.Parse("und-" + script)
		if err != nil {
			return language.Und, false
		}
		return tag, true
	}

	lang, ok := otLanguageToBCP47[langTag]
	if !ok {
		return language.Und, false
	}
	tag, err := language.Parse(lang + "-" + script)
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#script-list-table-and-script-record
func readScriptList(p *parser.Parser, pos int64) (ScriptListInfo, error) {
	err := p.SeekPos(pos)
	if err != nil {
		return nil, err
	}

	scriptCount, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	type scriptRecord struct {
		tag    string
		offset uint16
	}
	records := make([]scriptRecord, scriptCount)
	for i := range records {
		tag, err := p.ReadTag()
		if err != nil {
			return nil, err
		}
		offset, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		records[i] = scriptRecord{tag: tag, offset: offset}
	}

	info := ScriptListInfo{}
	for _, rec := range records {
		err := readScriptTable(p, pos+int64(rec.offset), rec.tag, info)
		if err != nil {
			return nil, err
		}
	}
	return info, nil
}

// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#script-table-and-language-system-record
func readScriptTable(p *parser.Parser, pos int64, scriptTag string, info ScriptListInfo) error {
	err := p.SeekPos(pos)
	if err != nil {
		return err
	}

	buf, err := p.ReadBytes(4)
	if err != nil {
		return err
	}
	defaultLangSysOffset := uint16(buf[0])<<8 | uint16(buf[1])
	langSysCount := uint16(buf[2])<<8 | uint16(buf[3])

	type langSysRecord struct {
		tag    string
		offset uint16
	}
	records := make([]langSysRecord, langSysCount)
	for i := range records {
		tag, err := p.ReadTag()
		if err != nil {
			return err
		}
		offset, err := p.ReadUint16()
		if err != nil {
			return err
		}
		records[i] = langSysRecord{tag: tag, offset: offset}
	}

	if defaultLangSysOffset != 0 {
		ff, err := readLangSysTable(p, pos+int64(defaultLangSysOffset))
		if err != nil {
			return err
		}
		if tag, ok := scriptLangTag(scriptTag, "dflt"); ok {
			info[tag] = ff
		}
	}
	for _, rec := range records {
		ff, err := readLangSysTable(p, pos+int64(rec.offset))
		if err != nil {
			return err
		}
		if tag, ok := scriptLangTag(scriptTag, rec.tag); ok {
			info[tag] = ff
		}
	}

	return nil
}

// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#language-system-table
func readLangSysTable(p *parser.Parser, pos int64) (*Features, error) {
	err := p.SeekPos(pos)
	if err != nil {
		return nil, err
	}

	buf, err := p.ReadBytes(6)
	if err != nil {
		return nil, err
	}
	requiredFeatureIndex := FeatureIndex(buf[2])<<8 | FeatureIndex(buf[3])
	featureIndexCount := uint16(buf[4])<<8 | uint16(buf[5])

	featureIndices := make([]FeatureIndex, 0, featureIndexCount)
	for i := 0; i < int(featureIndexCount); i++ {
		idx, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		if idx == 0xFFFF {
			continue
		}
		featureIndices = append(featureIndices, FeatureIndex(idx))
	}

	return &Features{
		Required: requiredFeatureIndex,
		Optional: featureIndices,
	}, nil
}

