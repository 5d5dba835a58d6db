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

package subset

import (
	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdfops/font/tounicode"
)

const (
	tagLetters = 6
	tagSpace   = 26 * 26 * 26 * 26 * 26 * 26
)

// Tag returns the six letter tag (AAAAAA to ZZZZZZ) which identifies the
// subset of a font with numGlyphs glyphs reduced to the glyphs in kept.
// The tag is used as a prefix of the font name, see [Join].
//
// The glyphs in kept must be in increasing order, as produced by [Subset].
func Tag(kept []glyph.ID, numGlyphs int) string {
	x := uint64(numGlyphs) % tagSpace
	for _, gid := range kept {
		// 31 is prime and does not divide tagSpace
		x = (x*31 + uint64(gid) + 1) % tagSpace
	}

	var tag [tagLetters]byte
	for i := tagLetters - 1; i >= 0; i-- {
		tag[i] = 'A' + byte(x%26)
		x /= 26
	}
	return string(tag[:])
}

// Join combines a subset tag and a font name.
func Join(tag, name string) string {
	if tag == "" {
		return name
	}
	return tag + "+" + name
}

// CIDToGIDMap returns the contents of the CIDToGIDMap stream for the
// subsetted font: two bytes per CID, giving the glyph ID in the embedded
// font.  CIDs are assigned as described at [tounicode.CodeForGlyph].
func (s *FontSubset) CIDToGIDMap() []byte {
	var maxCID cid.CID
	for _, newGID := range s.GIDMap {
		maxCID = max(maxCID, tounicode.CodeForGlyph(newGID))
	}
	res := make([]byte, 2*(int(maxCID)+1))
	for _, newGID := range s.GIDMap {
		c := tounicode.CodeForGlyph(newGID)
		res[2*c] = byte(newGID >> 8)
		res[2*c+1] = byte(newGID)
	}
	return res
}
