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

// Package tounicode reads and writes ToUnicode CMaps.
//
// A ToUnicode CMap maps the character codes used in a content stream to
// the text they represent, so that viewers can search and copy text.
// CMaps written by this package use two-byte codes, where the code for
// glyph g is g + [CodeOffset].
package tounicode

import (
	"maps"
	"slices"

	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/sfnt/glyph"
)

// CodeOffset is the difference between a character code and the glyph ID
// it selects.  Code 0 is left unused, so that no text ever maps to the
// .notdef glyph.
const CodeOffset = 1

// CodeForGlyph returns the two-byte character code (the CID) used for a
// glyph.
func CodeForGlyph(gid glyph.ID) cid.CID {
	return cid.CID(gid) + CodeOffset
}

// GlyphForCode returns the glyph selected by a two-byte character code.
// The second return value is false for codes which do not correspond to a
// glyph.
func GlyphForCode(code cid.CID) (glyph.ID, bool) {
	if code < CodeOffset {
		return 0, false
	}
	return glyph.ID(code - CodeOffset), true
}

// CMap is a parsed ToUnicode CMap.
// A CMap is not modified after it has been constructed.
type CMap struct {
	// Name is the CMap name, if present.
	Name string

	codes map[uint32][]rune
}

// Lookup returns the text for a character code.
func (c *CMap) Lookup(code uint32) ([]rune, bool) {
	if c == nil {
		return nil, false
	}
	text, ok := c.codes[code]
	return text, ok
}

// LookupGlyph returns the text for a glyph, using the code assignment
// described at [CodeForGlyph].
func (c *CMap) LookupGlyph(gid glyph.ID) ([]rune, bool) {
	return c.Lookup(uint32(CodeForGlyph(gid)))
}

// Len returns the number of mapped character codes.
func (c *CMap) Len() int {
	if c == nil {
		return 0
	}
	return len(c.codes)
}

// Codes returns all mapped character codes in increasing order.
func (c *CMap) Codes() []uint32 {
	if c == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(c.codes))
}

// Glyphs returns the mapping from glyph IDs to text.  Codes which do not
// correspond to a glyph are omitted.
func (c *CMap) Glyphs() map[glyph.ID]string {
	res := make(map[glyph.ID]string, c.Len())
	for code, text := range c.codes {
		if code > 0xFFFF {
			continue
		}
		if gid, ok := GlyphForCode(cid.CID(code)); ok {
			res[gid] = string(text)
		}
	}
	return res
}
