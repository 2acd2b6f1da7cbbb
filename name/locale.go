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

package name

// appleBCP maps Macintosh "name" table language IDs to BCP-47 tags.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name#macintosh-language-ids
var appleBCP = map[uint16]string{
	0:  "en",
	1:  "fr",
	2:  "de",
	3:  "it",
	4:  "nl",
	5:  "sv",
	6:  "es",
	7:  "da",
	8:  "pt",
	9:  "nb",
	10: "he",
	11: "ja",
	12: "ar",
	13: "fi",
	14: "el",
	15: "is",
	16: "mt",
	17: "tr",
	18: "hr",
	19: "zh-Hant",
	20: "ur",
	21: "hi",
	22: "th",
	23: "ko",
	24: "lt",
	25: "pl",
	26: "hu",
	27: "et",
	28: "lv",
	30: "fo",
	31: "fa",
	32: "ru",
	33: "zh-Hans",
	35: "ga",
	36: "sq",
	37: "ro",
	38: "cs",
	39: "sk",
	40: "sl",
	41: "yi",
	42: "sr",
	43: "mk",
	44: "bg",
	45: "uk",
	46: "be",
	47: "uz",
	48: "kk",
	51: "hy",
	52: "ka",
	59: "ps",
	60: "ku",
	63: "bo",
	64: "ne",
	65: "sa",
	66: "mr",
	67: "bn",
	69: "gu",
	70: "pa",
	72: "ml",
	73: "kn",
	74: "ta",
	75: "te",
	76: "si",
	80: "vi",
	81: "id",
	82: "tl",
	85: "am",
	88: "so",
	89: "sw",
	94: "eo",
	128: "cy",
	129: "eu",
	130: "ca",
	131: "la",
	140: "gl",
	141: "af",
	142: "br",
	144: "gd",
	147: "to",
}

// msBCP maps Windows "name" table LCID language IDs to BCP-47 tags.
// https://docs.microsoft.com/en-us/openspecs/office_standards/ms-oe376/6c085406-a698-4e12-9d4d-c3b0ee3dbc4a
var msBCP = map[uint16]string{
	0x0436: "af-ZA",
	0x041c: "sq-AL",
	0x045e: "am-ET",
	0x1401: "ar-DZ",
	0x0c01: "ar-EG",
	0x0401: "ar-SA",
	0x042b: "hy-AM",
	0x044d: "as-IN",
	0x082c: "az-Cyrl-AZ",
	0x042c: "az-Latn-AZ",
	0x042d: "eu-ES",
	0x0423: "be-BY",
	0x0845: "bn-BD",
	0x0445: "bn-IN",
	0x201a: "bs-Cyrl-BA",
	0x141a: "bs-Latn-BA",
	0x047e: "br-FR",
	0x0402: "bg-BG",
	0x0403: "ca-ES",
	0x0c04: "zh-HK",
	0x0804: "zh-CN",
	0x1004: "zh-SG",
	0x0404: "zh-TW",
	0x041a: "hr-HR",
	0x0405: "cs-CZ",
	0x0406: "da-DK",
	0x0413: "nl-NL",
	0x0813: "nl-BE",
	0x0c09: "en-AU",
	0x1009: "en-CA",
	0x4009: "en-IN",
	0x1809: "en-IE",
	0x1c09: "en-ZA",
	0x0809: "en-GB",
	0x0409: "en-US",
	0x0425: "et-EE",
	0x0438: "fo-FO",
	0x040b: "fi-FI",
	0x080c: "fr-BE",
	0x0c0c: "fr-CA",
	0x040c: "fr-FR",
	0x100c: "fr-CH",
	0x0456: "gl-ES",
	0x0437: "ka-GE",
	0x0c07: "de-AT",
	0x0407: "de-DE",
	0x0807: "de-CH",
	0x0408: "el-GR",
	0x0447: "gu-IN",
	0x040d: "he-IL",
	0x0439: "hi-IN",
	0x040e: "hu-HU",
	0x040f: "is-IS",
	0x0421: "id-ID",
	0x083c: "ga-IE",
	0x0410: "it-IT",
	0x0810: "it-CH",
	0x0411: "ja-JP",
	0x044b: "kn-IN",
	0x043f: "kk-KZ",
	0x0453: "km-KH",
	0x0457: "kok-IN",
	0x0412: "ko-KR",
	0x0440: "ky-KG",
	0x0454: "lo-LA",
	0x0426: "lv-LV",
	0x0427: "lt-LT",
	0x046e: "lb-LU",
	0x042f: "mk-MK",
	0x083e: "ms-BN",
	0x043e: "ms-MY",
	0x044c: "ml-IN",
	0x043a: "mt-MT",
	0x0481: "mi-NZ",
	0x044e: "mr-IN",
	0x0450: "mn-Cyrl-MN",
	0x0461: "ne-NP",
	0x0414: "nb-NO",
	0x0814: "nn-NO",
	0x0448: "or-IN",
	0x0463: "ps-AF",
	0x0415: "pl-PL",
	0x0416: "pt-BR",
	0x0816: "pt-PT",
	0x0446: "pa-IN",
	0x0418: "ro-RO",
	0x0417: "rm-CH",
	0x0419: "ru-RU",
	0x044f: "sa-IN",
	0x1c1a: "sr-Cyrl-BA",
	0x0c1a: "sr-Cyrl-CS",
	0x181a: "sr-Latn-BA",
	0x081a: "sr-Latn-CS",
	0x045b: "si-LK",
	0x041b: "sk-SK",
	0x0424: "sl-SI",
	0x2c0a: "es-AR",
	0x080a: "es-MX",
	0x0c0a: "es-ES",
	0x040a: "es-ES",
	0x540a: "es-US",
	0x081d: "sv-FI",
	0x041d: "sv-SE",
	0x0449: "ta-IN",
	0x0444: "tt-RU",
	0x044a: "te-IN",
	0x041e: "th-TH",
	0x041f: "tr-TR",
	0x0442: "tk-TM",
	0x0422: "uk-UA",
	0x0420: "ur-PK",
	0x0843: "uz-Cyrl-UZ",
	0x0443: "uz-Latn-UZ",
	0x042a: "vi-VN",
	0x0452: "cy-GB",
	0x0434: "xh-ZA",
	0x0435: "zu-ZA",
}
