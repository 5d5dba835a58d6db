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

package codec

import (
	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdfops/font/standard"
	"seehuhn.de/go/pdfops/font/tounicode"
	"seehuhn.de/go/pdfops/graphics/content"
	"seehuhn.de/go/pdfops/object"
	"seehuhn.de/go/pdfops/ops"
)

// encodeText writes a "Tj" operator, or a "TJ" operator if the items
// contain kerning offsets.  Consecutive text and glyph items are merged
// into a single string.
func (e *encoder) encodeText(items []ops.TextItem) {
	if !e.inText {
		e.add(TextSection, Error, content.OpTextShow, "text shown outside text section, omitted")
		return
	}
	if !e.fontInSection {
		e.add(MissingFontBinding, Warn, content.OpTextShow,
			"text shown before a font was set in this text section")
	}

	var parts object.Array
	var cur []byte
	hasString := false
	useArray := false
	flush := func() {
		if hasString {
			parts = append(parts, object.String(cur))
			cur = nil
			hasString = false
		}
	}
	for _, item := range items {
		switch item := item.(type) {
		case ops.Text:
			cur = e.appendText(cur, string(item))
			hasString = true
		case ops.Glyph:
			cur = e.appendGlyph(cur, item)
			hasString = true
		case ops.Offset:
			flush()
			parts = append(parts, e.num(float64(item)))
			useArray = true
		}
	}
	flush()

	switch {
	case useArray:
		e.emit(content.OpTextShowArray, parts)
	case len(parts) == 1:
		e.emit(content.OpTextShow, parts[0])
	default:
		e.emit(content.OpTextShow, object.String(nil))
	}
}

// appendText appends the codes for a string in the current font.
func (e *encoder) appendText(buf []byte, text string) []byte {
	f := e.state.font
	if f.binding == nil || !f.binding.Composite {
		var codes []byte
		var ok bool
		if f.binding != nil {
			codes, ok = f.binding.Encode(text)
		} else {
			codes, ok = e.simpleEncoding().Encode(text)
		}
		if !ok {
			e.add(UnencodableText, Warn, content.OpTextShow,
				"text %q cannot be represented in a single-byte encoding", text)
		}
		return append(buf, codes...)
	}

	for _, r := range text {
		gid, ok := f.binding.GlyphForRune(r)
		if !ok {
			e.add(UnencodableText, Warn, content.OpTextShow,
				"font %q has no glyph for %q", f.binding.ID, r)
		}
		buf = e.appendCode(buf, gid)
	}
	return buf
}

// appendGlyph appends the code for a glyph.  Glyph IDs can only be used
// with composite fonts; for other fonts the glyph's text is shown instead.
func (e *encoder) appendGlyph(buf []byte, g ops.Glyph) []byte {
	f := e.state.font
	if f.binding == nil || !f.binding.Composite {
		return e.appendText(buf, string(g.Text))
	}
	return e.appendCode(buf, g.ID)
}

// appendCode appends the two-byte code for an original glyph ID.
func (e *encoder) appendCode(buf []byte, gid glyph.ID) []byte {
	code, ok := e.state.font.binding.Code(gid)
	if !ok {
		e.add(UnencodableText, Warn, content.OpTextShow,
			"glyph %d is not part of the font subset", gid)
		code = tounicode.CodeForGlyph(0)
	}
	return appendCID(buf, code)
}

func appendCID(buf []byte, code cid.CID) []byte {
	return append(buf, byte(code>>8), byte(code))
}

// simpleEncoding returns the encoding used when no font binding is
// available.
func (e *encoder) simpleEncoding() standard.Font {
	if f := e.state.font.builtin; f != "" {
		return f
	}
	return standard.Helvetica
}
