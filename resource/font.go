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

package resource

import (
	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdfops/font/standard"
	"seehuhn.de/go/pdfops/font/subset"
	"seehuhn.de/go/pdfops/font/tounicode"
	"seehuhn.de/go/pdfops/ops"
)

// Font describes how text is encoded for a font resource.
//
// Simple fonts use single-byte WinAnsi codes.  Composite fonts use
// two-byte CIDs, where the CID of a glyph is its glyph ID in the subsetted
// font plus [tounicode.CodeOffset].
type Font struct {
	ID ops.FontID

	// Composite is true for fonts with two-byte codes.
	Composite bool

	// Encoding is used for simple fonts.  The codes are those of the given
	// standard font; the empty value selects WinAnsi.
	Encoding standard.Font

	// CharMap maps characters to glyph IDs of the original font.
	CharMap cmap.Subtable

	// Subset, if non-nil, maps original glyph IDs to glyph IDs of the
	// embedded font.
	Subset *subset.FontSubset

	// ToUnicode maps codes back to text.
	ToUnicode *tounicode.CMap

	inverse map[glyph.ID]glyph.ID
}

// NewCompositeFont returns the binding for an embedded font with two-byte
// codes.  All arguments except id may be nil.
func NewCompositeFont(id ops.FontID, charMap cmap.Subtable, sub *subset.FontSubset, toUnicode *tounicode.CMap) *Font {
	f := &Font{
		ID:        id,
		Composite: true,
		CharMap:   charMap,
		Subset:    sub,
		ToUnicode: toUnicode,
	}
	if sub != nil {
		f.inverse = sub.Inverse()
	}
	return f
}

// NewSimpleFont returns the binding for a font with single-byte codes.
func NewSimpleFont(id ops.FontID, encoding standard.Font) *Font {
	return &Font{ID: id, Encoding: encoding}
}

// Encode converts text to the single-byte codes of a simple font.
// The second return value is false if some characters could not be
// represented.
func (f *Font) Encode(text string) ([]byte, bool) {
	return f.simpleEncoding().Encode(text)
}

// Decode converts single-byte codes of a simple font to text.
func (f *Font) Decode(codes []byte) string {
	return f.simpleEncoding().Decode(codes)
}

func (f *Font) simpleEncoding() standard.Font {
	if f == nil || f.Encoding == "" {
		return standard.Helvetica
	}
	return f.Encoding
}

// GlyphForRune returns the original glyph ID used to show r.
// The second return value is false if the font has no glyph for r.
func (f *Font) GlyphForRune(r rune) (glyph.ID, bool) {
	if f.CharMap == nil {
		return 0, false
	}
	gid := f.CharMap.Lookup(r)
	return gid, gid != 0
}

// Code returns the two-byte code which shows the original glyph gid.
// The second return value is false if the glyph is not part of the
// subset, or if its code does not fit into two bytes.
func (f *Font) Code(gid glyph.ID) (cid.CID, bool) {
	if f.Subset != nil {
		newGID, ok := f.Subset.Map(gid)
		if !ok {
			return 0, false
		}
		gid = newGID
	}
	code := tounicode.CodeForGlyph(gid)
	return code, code <= 0xFFFF
}

// Glyph returns the original glyph ID shown by a two-byte code.
func (f *Font) Glyph(code cid.CID) (glyph.ID, bool) {
	gid, ok := tounicode.GlyphForCode(code)
	if !ok {
		return 0, false
	}
	if f.inverse != nil {
		gid, ok = f.inverse[gid]
	}
	return gid, ok
}

// Text returns the text for a two-byte code, as given by the ToUnicode
// CMap.
func (f *Font) Text(code cid.CID) ([]rune, bool) {
	return f.ToUnicode.Lookup(uint32(code))
}
