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
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdfops/font/standard"
	"seehuhn.de/go/pdfops/font/tounicode"
	"seehuhn.de/go/pdfops/graphics/content"
	"seehuhn.de/go/pdfops/object"
	"seehuhn.de/go/pdfops/ops"
	"seehuhn.de/go/pdfops/resource"
	"seehuhn.de/go/pdfops/transform"
	"seehuhn.de/go/pdfops/units"
)

func (d *decoder) decodeText(name content.OpName, args []object.Object, a *content.Args) {
	switch name {
	case content.OpTextSetCharacterSpacing:
		x := a.GetFloat()
		if d.check(name, args, a) {
			d.emit(ops.SetCharacterSpacing{Spacing: units.Pt(x)})
		}
	case content.OpTextSetWordSpacing:
		x := a.GetFloat()
		if d.check(name, args, a) {
			d.emit(ops.SetWordSpacing{Spacing: units.Pt(x)})
		}
	case content.OpTextSetHorizontalScaling:
		x := a.GetFloat()
		if d.check(name, args, a) {
			d.emit(ops.SetHorizontalScaling{Percent: x})
		}
	case content.OpTextSetLeading:
		x := a.GetFloat()
		if d.check(name, args, a) {
			d.emit(ops.SetLineHeight{Height: units.Pt(x)})
		}
	case content.OpTextSetRise:
		x := a.GetFloat()
		if d.check(name, args, a) {
			d.emit(ops.SetTextRise{Rise: units.Pt(x)})
		}
	case content.OpTextSetRenderingMode:
		mode := a.GetInt()
		if d.checkRange(name, args, a, mode, int(ops.TextClip)) {
			d.emit(ops.SetTextRenderingMode{Mode: ops.TextRenderingMode(mode)})
		}
	case content.OpTextSetFont:
		fontName := a.GetName()
		size := a.GetFloat()
		if d.check(name, args, a) {
			d.setFont(fontName, units.Pt(size))
		}

	case content.OpTextMoveOffset:
		xy := a.GetFloats(2)
		if d.checkText(name, args, a) {
			d.emit(ops.SetTextCursor{Pos: ops.Point{X: units.Pt(xy[0]), Y: units.Pt(xy[1])}})
		}
	case content.OpTextMoveOffsetSetLeading:
		xy := a.GetFloats(2)
		if d.checkText(name, args, a) {
			d.emit(ops.SetLineHeight{Height: units.Pt(-xy[1])},
				ops.SetTextCursor{Pos: ops.Point{X: units.Pt(xy[0]), Y: units.Pt(xy[1])}})
		}
	case content.OpTextSetMatrix:
		var m matrix.Matrix
		copy(m[:], a.GetFloats(6))
		if d.checkText(name, args, a) {
			d.emit(ops.SetTextMatrix{Matrix: transform.DecodeTextMatrix(m)})
		}
	case content.OpTextNextLine:
		if d.checkText(name, args, a) {
			d.emit(ops.AddLineBreak{})
		}

	case content.OpTextShow:
		s := a.GetString()
		if d.checkText(name, args, a) {
			d.emit(ops.ShowText{Items: d.decodeString(name, nil, s)})
		}
	case content.OpTextShowMoveNextLine:
		s := a.GetString()
		if d.checkText(name, args, a) {
			d.emit(ops.AddLineBreak{}, ops.ShowText{Items: d.decodeString(name, nil, s)})
		}
	case content.OpTextShowMoveNextLineSetSpacing:
		aw := a.GetFloat()
		ac := a.GetFloat()
		s := a.GetString()
		if d.checkText(name, args, a) {
			d.emit(ops.SetWordSpacing{Spacing: units.Pt(aw)},
				ops.SetCharacterSpacing{Spacing: units.Pt(ac)},
				ops.AddLineBreak{},
				ops.ShowText{Items: d.decodeString(name, nil, s)})
		}
	case content.OpTextShowArray:
		arr := a.GetArray()
		if !d.checkText(name, args, a) {
			return
		}
		var items []ops.TextItem
		for _, obj := range arr {
			switch obj := obj.(type) {
			case object.String:
				items = d.decodeString(name, items, obj)
			default:
				x, ok := object.GetNumber(obj)
				if !ok {
					d.malformed(name, args, fmt.Errorf("invalid TJ element %s", object.Format(obj)))
					return
				}
				items = append(items, ops.Offset(x))
			}
		}
		d.emit(ops.ShowText{Items: items})
	}
}

// checkText checks the operands of a text positioning or text showing
// operator, and warns if the operator is used outside a text section.
func (d *decoder) checkText(name content.OpName, args []object.Object, a *content.Args) bool {
	if !d.check(name, args, a) {
		return false
	}
	if !d.inText {
		d.add(TextSection, Warn, name, "text operator outside text section")
	}
	return true
}

func (d *decoder) setFont(name object.Name, size units.Pt) {
	if f, ok := d.res.LookupFont(name); ok {
		d.state.font = decoderFont{set: true, binding: f}
		d.emit(ops.SetFont{Font: f.ID, Size: size})
		return
	}
	if f, ok := d.res.LookupBuiltinFont(name); ok {
		d.state.font = decoderFont{set: true, builtin: f}
		d.emit(ops.SetBuiltinFont{Font: f, Size: size})
		return
	}
	d.state.font = decoderFont{set: true}
	d.emit(ops.SetFont{Font: ops.FontID(name), Size: size})
}

// decodeString converts the codes of a string operand to text items and
// appends them to items.
//
// For composite fonts every two-byte code is resolved to a glyph and its
// text.  A glyph becomes a [ops.Text] item if encoding its text gives the
// same glyph again, and a [ops.Glyph] item otherwise.
func (d *decoder) decodeString(name content.OpName, items []ops.TextItem, s object.String) []ops.TextItem {
	f := d.state.font
	if !f.set {
		d.add(MissingFontBinding, Warn, name, "text shown before a font was set")
	}

	if f.binding == nil || !f.binding.Composite {
		var text string
		switch {
		case f.binding != nil:
			text = f.binding.Decode(s)
		case f.builtin != "":
			text = f.builtin.Decode(s)
		default:
			text = standard.Helvetica.Decode(s)
		}
		return mergeText(items, text)
	}

	if len(s)%2 != 0 {
		d.add(MalformedOperator, Warn, name, "odd number of bytes for a two-byte font")
	}
	for i := 0; i+1 < len(s); i += 2 {
		code := cid.CID(s[i])<<8 | cid.CID(s[i+1])
		gid, ok := f.binding.Glyph(code)
		if !ok {
			raw, _ := tounicode.GlyphForCode(code)
			gid = raw
		}

		r := '\uFFFD'
		text, hasText := f.binding.Text(code)
		if hasText && len(text) > 0 {
			r = text[0]
		}
		if hasText && len(text) == 1 && ok && gid != 0 && roundTrips(f.binding, r, gid) {
			items = mergeText(items, string(r))
		} else {
			items = append(items, ops.Glyph{ID: gid, Text: r})
		}
	}
	return items
}

func roundTrips(f *resource.Font, r rune, gid glyph.ID) bool {
	g, ok := f.GlyphForRune(r)
	return ok && g == gid
}

// mergeText appends text to items, merging it with a preceding text
// item.
func mergeText(items []ops.TextItem, text string) []ops.TextItem {
	if n := len(items); n > 0 {
		if prev, isText := items[n-1].(ops.Text); isText {
			items[n-1] = prev + ops.Text(text)
			return items
		}
	}
	if text == "" {
		return items
	}
	return append(items, ops.Text(text))
}
