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
	"bytes"
	"errors"
	"testing"

	"golang.org/x/exp/slices"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
)

func TestSubsetMapping(t *testing.T) {
	f, err := sfnt.Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}
	cmap, err := f.CMapTable.GetBest()
	if err != nil {
		t.Fatal(err)
	}
	canary, ok := findCanary(cmap)
	if !ok {
		t.Fatal("Go Regular has no canary glyph")
	}

	var used []glyph.ID
	for _, r := range "Hello" {
		gid := cmap.Lookup(r)
		if gid == 0 || gid == canary {
			t.Fatalf("unexpected glyph %d for %q", gid, r)
		}
		used = append(used, gid)
	}

	s, err := Subset(goregular.TTF, used)
	if err != nil {
		t.Fatal(err)
	}

	want := map[glyph.ID]bool{0: true, canary: true}
	for _, gid := range used {
		want[gid] = true
	}
	if len(s.GIDMap) != len(want) {
		t.Errorf("got %d glyphs, want %d", len(s.GIDMap), len(want))
	}
	seen := make([]bool, len(s.GIDMap))
	for orig, newGID := range s.GIDMap {
		if !want[orig] {
			t.Errorf("unexpected glyph %d in subset", orig)
		}
		if int(newGID) >= len(seen) || seen[newGID] {
			t.Errorf("glyph %d mapped to invalid or duplicate %d", orig, newGID)
			continue
		}
		seen[newGID] = true
	}
	if s.GIDMap[0] != 0 {
		t.Errorf(".notdef mapped to %d", s.GIDMap[0])
	}

	sub, err := sfnt.Read(bytes.NewReader(s.Data))
	if err != nil {
		t.Fatal(err)
	}
	if sub.NumGlyphs() < len(s.GIDMap) {
		t.Errorf("subset font has %d glyphs, want at least %d", sub.NumGlyphs(), len(s.GIDMap))
	}
	if s.IsCFF {
		t.Error("TrueType font reported as CFF")
	}
	if len(s.Tag) != 6 || s.FontName() != s.Tag+"+"+s.PostScriptName {
		t.Errorf("invalid font name %q", s.FontName())
	}
}

func TestSubsetOrder(t *testing.T) {
	s, err := Subset(goregular.TTF, []glyph.ID{40, 10, 30, 10})
	if err != nil {
		t.Fatal(err)
	}
	orig := make([]glyph.ID, len(s.GIDMap))
	for gid, newGID := range s.GIDMap {
		orig[newGID] = gid
	}
	if !slices.IsSorted(orig) {
		t.Errorf("new glyph IDs do not preserve order: %v", orig)
	}
	inv := s.Inverse()
	for newGID, gid := range orig {
		if inv[glyph.ID(newGID)] != gid {
			t.Errorf("Inverse()[%d] = %d, want %d", newGID, inv[glyph.ID(newGID)], gid)
		}
	}
}

func TestSubsetErrors(t *testing.T) {
	_, err := Subset([]byte("not a font"), []glyph.ID{1})
	var subsetErr *Error
	if !errors.As(err, &subsetErr) {
		t.Errorf("malformed font: unexpected error %v", err)
	}

	_, err = Subset(goregular.TTF, []glyph.ID{60000})
	if !errors.Is(err, ErrGlyphRange) {
		t.Errorf("large glyph ID: unexpected error %v", err)
	}
}

// withCMap returns a copy of Go Regular with its "cmap" table replaced.
// If sub is nil, the copy has no "cmap" table.
func withCMap(t *testing.T, sub cmap.Subtable) []byte {
	t.Helper()
	f, err := sfnt.Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}
	if sub == nil {
		f.CMapTable = nil
	} else {
		f.InstallCMap(sub)
	}
	buf := &bytes.Buffer{}
	if _, err := f.Write(buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestSubsetNoCharMap(t *testing.T) {
	data := withCMap(t, nil)
	_, err := Subset(data, []glyph.ID{1})
	if !errors.Is(err, ErrNoCharMap) {
		t.Fatalf("unexpected error %v", err)
	}
	var subsetErr *Error
	if !errors.As(err, &subsetErr) || subsetErr.Font == "" {
		t.Errorf("error %v does not name the font", err)
	}
}

func TestSubsetMacRomanOnly(t *testing.T) {
	f, err := sfnt.Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}
	orig, err := f.CMapTable.GetBest()
	if err != nil {
		t.Fatal(err)
	}
	latin := cmap.Format4{}
	for r := rune(0x20); r < 0x7F; r++ {
		if gid := orig.Lookup(r); gid != 0 {
			latin[uint16(r)] = gid
		}
	}
	data := withCMap(t, latin)

	_, err = Subset(data, []glyph.ID{latin['A']})
	if !errors.Is(err, ErrNoNonMacRomanGlyph) {
		t.Fatalf("unexpected error %v", err)
	}
	var subsetErr *Error
	if !errors.As(err, &subsetErr) {
		t.Errorf("unexpected error type %T", err)
	}

	// one character outside MacRoman is enough
	latin[0x0410] = orig.Lookup(0x0410)
	if latin[0x0410] == 0 {
		t.Skip("Go Regular has no Cyrillic A")
	}
	s, err := Subset(withCMap(t, latin), []glyph.ID{latin['A']})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Map(latin[0x0410]); !ok {
		t.Error("canary glyph missing from subset")
	}
}

type fakeCMap map[rune]glyph.ID

func (m fakeCMap) Lookup(r rune) glyph.ID {
	return m[r]
}

func (m fakeCMap) CodeRange() (low, high rune) {
	low = -1
	for r := range m {
		if low < 0 || r < low {
			low = r
		}
		high = max(high, r)
	}
	return max(low, 0), high
}

func TestFindCanary(t *testing.T) {
	macOnly := fakeCMap{'A': 1, 'B': 2, 0xE9: 3} // é is in MacRoman
	if gid, ok := findCanary(macOnly); ok {
		t.Errorf("found canary %d in a MacRoman font", gid)
	}

	mixed := fakeCMap{'A': 1, 0x0410: 7, 0x0411: 8} // Cyrillic
	gid, ok := findCanary(mixed)
	if !ok || gid != 7 {
		t.Errorf("findCanary = %d, %t, want 7, true", gid, ok)
	}
}

func TestCIDToGIDMap(t *testing.T) {
	s := &FontSubset{
		GIDMap: map[glyph.ID]glyph.ID{0: 0, 36: 1, 300: 2},
	}
	got := s.CIDToGIDMap()
	want := []byte{0, 0, 0, 0, 0, 1, 0, 2}
	if !bytes.Equal(got, want) {
		t.Errorf("got % x, want % x", got, want)
	}
}

func TestTag(t *testing.T) {
	a := Tag([]glyph.ID{0, 5, 9}, 100)
	if b := Tag([]glyph.ID{0, 5, 9}, 100); b != a {
		t.Errorf("tag is not deterministic: %q != %q", a, b)
	}
	for _, other := range []string{
		Tag([]glyph.ID{0, 5, 9}, 101),
		Tag([]glyph.ID{0, 5, 10}, 100),
		Tag([]glyph.ID{0, 5}, 100),
	} {
		if other == a {
			t.Errorf("different subsets share the tag %q", a)
		}
	}
	if len(a) != 6 {
		t.Errorf("invalid tag %q", a)
	}
	for _, c := range a {
		if c < 'A' || c > 'Z' {
			t.Errorf("invalid tag %q", a)
		}
	}
}

func TestSubsetReadBack(t *testing.T) {
	f, err := sfnt.Read(bytes.NewReader(gomono.TTF))
	if err != nil {
		t.Fatal(err)
	}
	cmap, err := f.CMapTable.GetBest()
	if err != nil {
		t.Fatal(err)
	}
	var used []glyph.ID
	for _, r := range "0123456789" {
		used = append(used, cmap.Lookup(r))
	}

	s, err := Subset(gomono.TTF, used)
	if err != nil {
		t.Fatal(err)
	}
	if s.IsCFF {
		t.Error("TrueType font subsetted as CFF")
	}

	sub, err := sfnt.Read(bytes.NewReader(s.Data))
	if err != nil {
		t.Fatal(err)
	}
	if sub.NumGlyphs() != len(s.GIDMap) {
		t.Errorf("subset has %d glyphs, want %d", sub.NumGlyphs(), len(s.GIDMap))
	}
	if len(s.Tag) != 6 || s.FontName() != s.Tag+"+"+s.PostScriptName {
		t.Errorf("unexpected font name %q", s.FontName())
	}
}
