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

package post

import "strings"

// isMacRoman reports whether names is exactly the standard Macintosh
// glyph name set.
func isMacRoman(names []string) bool {
	if len(names) != len(macRoman) {
		return false
	}
	for i, name := range names {
		if name != macRoman[i] {
			return false
		}
	}
	return true
}

// macRoman lists the 258 standard Macintosh glyph names.  Format 2
// "post" tables refer to these by index; fonts only store names not in
// this list.
// https://developer.apple.com/fonts/TrueType-Reference-Manual/RM06/Chap6post.html
var macRoman = strings.Fields(`
	.notdef .null nonmarkingreturn space exclam quotedbl numbersign dollar
	percent ampersand quotesingle parenleft parenright asterisk plus comma
	hyphen period slash zero one two three four five six seven eight nine
	colon semicolon less equal greater question at A B C D E F G H I J K L M N
	O P Q R S T U V W X Y Z bracketleft backslash bracketright asciicircum
	underscore grave a b c d e f g h i j k l m n o p q r s t u v w x y z
	braceleft bar braceright asciitilde Adieresis Aring Ccedilla Eacute Ntilde
	Odieresis Udieresis aacute agrave acircumflex adieresis atilde aring
	ccedilla eacute egrave ecircumflex edieresis iacute igrave icircumflex
	idieresis ntilde oacute ograve ocircumflex odieresis otilde uacute ugrave
	ucircumflex udieresis dagger degree cent sterling section bullet paragraph
	germandbls registered copyright trademark acute dieresis notequal AE
	Oslash infinity plusminus lessequal greaterequal yen mu partialdiff
	summation product pi integral ordfeminine ordmasculine Omega ae oslash
	questiondown exclamdown logicalnot radical florin approxequal Delta
	guillemotleft guillemotright ellipsis nonbreakingspace Agrave Atilde
	Otilde OE oe endash emdash quotedblleft quotedblright quoteleft quoteright
	divide lozenge ydieresis Ydieresis fraction currency guilsinglleft
	guilsinglright fi fl daggerdbl periodcentered quotesinglbase quotedblbase
	perthousand Acircumflex Ecircumflex Aacute Edieresis Egrave Iacute
	Icircumflex Idieresis Igrave Oacute Ocircumflex apple Ograve Uacute
	Ucircumflex Ugrave dotlessi circumflex tilde macron breve dotaccent ring
	cedilla hungarumlaut ogonek caron Lslash lslash Scaron scaron Zcaron
	zcaron brokenbar Eth eth Yacute yacute Thorn thorn minus multiply
	onesuperior twosuperior threesuperior onehalf onequarter threequarters
	franc Gbreve gbreve Idotaccent Scedilla scedilla Cacute cacute Ccaron
	ccaron dcroat`)
