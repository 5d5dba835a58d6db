// seehuhn.de/go/pdfops - encode and decode PDF content streams
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
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

// Package standard provides the 14 standard PDF fonts.
//
// These fonts are available in every PDF viewer and are never embedded.
// Text shown with them uses single-byte codes: the WinAnsi encoding for the
// text fonts, and the font's built-in encoding for Symbol and ZapfDingbats.
package standard

import (
	"golang.org/x/text/encoding/charmap"
)

// Font identifies the individual fonts.
type Font string

// Constants for the 14 standard PDF fonts.
const (
	Courier              Font = "Courier"
	CourierBold          Font = "Courier-Bold"
	CourierBoldOblique   Font = "Courier-BoldOblique"
	CourierOblique       Font = "Courier-Oblique"
	Helvetica            Font = "Helvetica"
	HelveticaBold        Font = "Helvetica-Bold"
	HelveticaBoldOblique Font = "Helvetica-BoldOblique"
	HelveticaOblique     Font = "Helvetica-Oblique"
	TimesRoman           Font = "Times-Roman"
	TimesBold            Font = "Times-Bold"
	TimesBoldItalic      Font = "Times-BoldItalic"
	TimesItalic          Font = "Times-Italic"
	Symbol               Font = "Symbol"
	ZapfDingbats         Font = "ZapfDingbats"
)

// All lists the 14 standard fonts.
var All = []Font{
	Courier, CourierBold, CourierBoldOblique, CourierOblique,
	Helvetica, HelveticaBold, HelveticaBoldOblique, HelveticaOblique,
	TimesRoman, TimesBold, TimesBoldItalic, TimesItalic,
	Symbol, ZapfDingbats,
}

// Lookup returns the standard font with the given PostScript name.
func Lookup(name string) (Font, bool) {
	for _, f := range All {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// IsSymbolic reports whether the font uses its own built-in encoding
// instead of WinAnsi.
func (f Font) IsSymbolic() bool {
	return f == Symbol || f == ZapfDingbats
}

// Encode converts text to single-byte character codes.
// Characters which cannot be represented are replaced by '?', and the
// second return value is false if this happened.
func (f Font) Encode(text string) ([]byte, bool) {
	res := make([]byte, 0, len(text))
	ok := true
	for _, r := range text {
		var b byte
		var found bool
		if f.IsSymbolic() {
			b, found = byte(r), r < 256
		} else {
			b, found = charmap.Windows1252.EncodeRune(r)
		}
		if !found {
			b = '?'
			ok = false
		}
		res = append(res, b)
	}
	return res, ok
}

// Decode converts single-byte character codes back to text.
func (f Font) Decode(codes []byte) string {
	res := make([]rune, len(codes))
	for i, c := range codes {
		if f.IsSymbolic() {
			res[i] = rune(c)
		} else {
			res[i] = charmap.Windows1252.DecodeByte(c)
		}
	}
	return string(res)
}
