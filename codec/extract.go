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
	"strings"

	"seehuhn.de/go/pdfops/ops"
)

// wordGap is the kerning offset, in thousandths of a text space unit,
// from which an [ops.Offset] is taken to separate two words.
const wordGap = -250

// ExtractText returns the text shown by a sequence of operations.
//
// Lines are separated by newlines.  A new line starts after a text
// section ends, at an [ops.AddLineBreak], and when [ops.SetTextCursor]
// moves vertically.  Large negative kerning offsets are rendered as a
// single space.
func ExtractText(opList []ops.Op) string {
	b := &strings.Builder{}
	lineStart := true
	newline := func() {
		if !lineStart {
			b.WriteByte('\n')
			lineStart = true
		}
	}
	for _, op := range opList {
		switch op := op.(type) {
		case ops.ShowText:
			n := b.Len()
			for _, item := range op.Items {
				switch item := item.(type) {
				case ops.Text:
					b.WriteString(string(item))
				case ops.Glyph:
					b.WriteRune(item.Text)
				case ops.Offset:
					if item <= wordGap {
						b.WriteByte(' ')
					}
				}
			}
			if b.Len() > n {
				lineStart = false
			}
		case ops.AddLineBreak:
			newline()
		case ops.SetTextCursor:
			if op.Pos.Y != 0 {
				newline()
			}
		case ops.EndTextSection:
			newline()
		}
	}
	return b.String()
}
