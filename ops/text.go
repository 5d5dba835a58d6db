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

package ops

import "seehuhn.de/go/sfnt/glyph"

// TextItem is one element of a [ShowText] operation: a [Text], a [Glyph]
// or an [Offset].
type TextItem interface {
	isTextItem()
}

// Text is a run of characters.  For embedded fonts the characters are
// mapped to glyphs using the font's character map.
type Text string

// Glyph is a single glyph, identified by its glyph ID in the original
// (not subsetted) font, together with the character it represents.
type Glyph struct {
	ID   glyph.ID
	Text rune
}

// Offset moves the next glyph horizontally, in thousandths of a text space
// unit.  Positive values move to the left.
type Offset float64

func (Text) isTextItem()   {}
func (Glyph) isTextItem()  {}
func (Offset) isTextItem() {}
