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

// Package subset reduces fonts to the glyphs used in a document.
//
// Subsetted fonts are embedded as CIDFonts: every glyph is shown using the
// two-byte code described in the tounicode package, and the CIDToGIDMap
// returned by [FontSubset.CIDToGIDMap] maps these codes back to glyphs of
// the embedded font.
package subset

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/text/encoding/charmap"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"
)

var (
	// ErrNoCharMap indicates that a font has no usable "cmap" table.
	ErrNoCharMap = errors.New("no usable character map")

	// ErrNoNonMacRomanGlyph indicates that every character of a font can
	// be represented in the MacRoman encoding.
	ErrNoNonMacRomanGlyph = errors.New("no glyph outside the MacRoman character set")

	// ErrGlyphRange indicates that a used glyph ID is not present in the
	// font.
	ErrGlyphRange = errors.New("glyph ID out of range")
)

// Error is returned when a font cannot be subsetted.
type Error struct {
	Font string
	Err  error
}

func (err *Error) Error() string {
	if err.Font == "" {
		return "font subset: " + err.Err.Error()
	}
	return "font subset " + err.Font + ": " + err.Err.Error()
}

func (err *Error) Unwrap() error {
	return err.Err
}

// FontSubset is the result of subsetting a font.
type FontSubset struct {
	// Data is the font file of the subsetted font.  For fonts with CFF
	// outlines this is an OpenType file, otherwise it is a TrueType file.
	Data []byte

	// GIDMap maps glyph IDs of the original font to glyph IDs of the
	// subsetted font.
	GIDMap map[glyph.ID]glyph.ID

	// IsCFF is true if Data contains CFF glyph outlines.
	IsCFF bool

	// Tag is the six letter subset tag for the font name.
	Tag string

	// PostScriptName is the PostScript name of the original font.
	PostScriptName string
}

// FontName returns the name of the subsetted font, in the form
// "ABCDEF+Name".
func (s *FontSubset) FontName() string {
	return Join(s.Tag, s.PostScriptName)
}

// Map returns the glyph ID of gid in the subsetted font.
func (s *FontSubset) Map(gid glyph.ID) (glyph.ID, bool) {
	newGID, ok := s.GIDMap[gid]
	return newGID, ok
}

// Inverse returns the mapping from glyph IDs of the subsetted font back to
// the original glyph IDs.
func (s *FontSubset) Inverse() map[glyph.ID]glyph.ID {
	res := make(map[glyph.ID]glyph.ID, len(s.GIDMap))
	for orig, newGID := range s.GIDMap {
		res[newGID] = orig
	}
	return res
}

// charMap is the part of a cmap subtable needed to select the canary
// glyph.
type charMap interface {
	Lookup(r rune) glyph.ID
	CodeRange() (low, high rune)
}

// Subset reduces the font given by data to the glyphs in used.
//
// Glyph 0 (.notdef) is always included.  In addition, the glyph of the
// first character in the font's character map which cannot be represented
// in the MacRoman encoding is included, so that the subsetted font is never
// taken to be MacRoman-encoded.  The kept glyphs keep their relative order
// and are numbered from 0.
func Subset(data []byte, used []glyph.ID) (*FontSubset, error) {
	f, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("malformed font: %w", err)}
	}
	name := f.PostScriptName()

	if f.CMapTable == nil {
		return nil, &Error{Font: name, Err: ErrNoCharMap}
	}
	cmap, err := f.CMapTable.GetBest()
	if err != nil {
		return nil, &Error{Font: name, Err: fmt.Errorf("%w: %w", ErrNoCharMap, err)}
	}

	numGlyphs := f.NumGlyphs()
	keep := map[glyph.ID]struct{}{0: {}}
	for _, gid := range used {
		if int(gid) >= numGlyphs {
			return nil, &Error{Font: name, Err: fmt.Errorf("%w: %d >= %d", ErrGlyphRange, gid, numGlyphs)}
		}
		keep[gid] = struct{}{}
	}
	canary, ok := findCanary(cmap)
	if !ok {
		return nil, &Error{Font: name, Err: ErrNoNonMacRomanGlyph}
	}
	keep[canary] = struct{}{}

	glyphs := maps.Keys(keep)
	slices.Sort(glyphs)
	gidMap := make(map[glyph.ID]glyph.ID, len(glyphs))
	for newGID, gid := range glyphs {
		gidMap[gid] = glyph.ID(newGID)
	}

	f = f.Clone()
	f.CMapTable = nil
	f.Gdef = nil
	f.Gsub = nil
	f.Gpos = nil
	sub := f.Subset(glyphs)

	buf := &bytes.Buffer{}
	if sub.IsCFF() {
		err = sub.WriteOpenTypeCFFPDF(buf)
	} else {
		_, err = sub.WriteTrueTypePDF(buf)
	}
	if err != nil {
		return nil, &Error{Font: name, Err: err}
	}

	res := &FontSubset{
		Data:           buf.Bytes(),
		GIDMap:         gidMap,
		IsCFF:          sub.IsCFF(),
		Tag:            Tag(glyphs, numGlyphs),
		PostScriptName: name,
	}
	return res, nil
}

// findCanary returns the glyph of the first character in cmap which is not
// representable in MacRoman.
func findCanary(cmap charMap) (glyph.ID, bool) {
	low, high := cmap.CodeRange()
	for r := max(low, 0); r <= high; r++ {
		if _, isMacRoman := charmap.Macintosh.EncodeRune(r); isMacRoman {
			continue
		}
		if gid := cmap.Lookup(r); gid != 0 {
			return gid, true
		}
	}
	return 0, false
}
