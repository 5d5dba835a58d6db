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

package tounicode

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/sfnt/glyph"
)

func TestBuildChunks(t *testing.T) {
	m := make(map[glyph.ID]string)
	for i := range 250 {
		m[glyph.ID(i)] = string(rune('A' + i))
	}
	text := Build(m, "Test")

	if n := strings.Count(text, "beginbfchar"); n != 3 {
		t.Fatalf("got %d beginbfchar blocks, want 3", n)
	}
	if n := strings.Count(text, "endbfchar"); n != 3 {
		t.Fatalf("got %d endbfchar blocks, want 3", n)
	}
	for _, want := range []string{"100 beginbfchar", "50 beginbfchar"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q", want)
		}
	}

	cmap, err := Parse([]byte(text))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(m, cmap.Glyphs()); d != "" {
		t.Error(d)
	}
	if cmap.Name != "Test-UTF16" {
		t.Errorf("wrong name %q", cmap.Name)
	}
}

func TestBuildGroups(t *testing.T) {
	m := map[glyph.ID]string{
		0x00FE: "a",
		0x00FF: "b", // code 0x0100 starts a new group
		0x0100: "c",
		0xFFFF: "x", // no two-byte code
		5:      "",
	}
	text := Build(m, "F")
	if n := strings.Count(text, "beginbfchar"); n != 2 {
		t.Errorf("got %d blocks, want 2", n)
	}
	if !strings.Contains(text, "<00FF> <0061>\nendbfchar\n2 beginbfchar\n<0100> <0062>\n<0101> <0063>\n") {
		t.Errorf("unexpected block layout:\n%s", text)
	}
	cmap, err := Parse([]byte(text))
	if err != nil {
		t.Fatal(err)
	}
	if cmap.Len() != 3 {
		t.Errorf("got %d entries, want 3", cmap.Len())
	}
}

func TestBuildText(t *testing.T) {
	m := map[glyph.ID]string{
		1: "fi",         // ligature keeps the first character
		2: "\U0001F600", // surrogate pair
		3: "e\u0301",    // composed by NFC
		4: "\u00e9x",
	}
	text := Build(m, "F")
	for _, want := range []string{
		"<0002> <0066>",
		"<0003> <D83DDE00>",
		"<0004> <00E9>",
		"<0005> <00E9>",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q", want)
		}
	}

	cmap, err := Parse([]byte(text))
	if err != nil {
		t.Fatal(err)
	}
	got, ok := cmap.LookupGlyph(2)
	if !ok || string(got) != "\U0001F600" {
		t.Errorf("glyph 2: got %q, %t", string(got), ok)
	}
}

func TestCodeOffset(t *testing.T) {
	if c := CodeForGlyph(0); c != 1 {
		t.Errorf("code for glyph 0 is %d", c)
	}
	if _, ok := GlyphForCode(0); ok {
		t.Error("code 0 maps to a glyph")
	}
	gid, ok := GlyphForCode(7)
	if !ok || gid != 6 {
		t.Errorf("GlyphForCode(7) = %d, %t", gid, ok)
	}
}

const rangeCMap = `%!PS-Adobe-3.0 Resource-CMap
/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CIDSystemInfo << /Registry (Adobe) /Ordering (UCS) /Supplement 0 >> def
/CMapName /Adobe-Identity-UCS def
/CMapType 2 def
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
2 beginbfrange
<0010> <0012> <0041>
<0020> <0022> [<0061> <0062> <00660069>]
endbfrange
1 beginbfchar
<0030> <D835DC00>
endbfchar
endcmap
CMapName currentdict /CMap defineresource pop
end
end
`

func TestParseRanges(t *testing.T) {
	cmap, err := Parse([]byte(rangeCMap))
	if err != nil {
		t.Fatal(err)
	}
	got := make(map[uint32]string)
	for _, code := range cmap.Codes() {
		text, _ := cmap.Lookup(code)
		got[code] = string(text)
	}
	want := map[uint32]string{
		0x10: "A",
		0x11: "B",
		0x12: "C",
		0x20: "a",
		0x21: "b",
		0x22: "fi",
		0x30: "\U0001D400",
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
	if cmap.Name != "Adobe-Identity-UCS" {
		t.Errorf("wrong name %q", cmap.Name)
	}
}

// cmapProgram wraps a sequence of mapping blocks into a complete CMap.
func cmapProgram(body string) string {
	return `/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CMapName /Test-UTF16 def
/CMapType 2 def
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
` + body + `endcmap
CMapName currentdict /CMap defineresource pop
end
end
`
}

func TestParseArrayMismatch(t *testing.T) {
	body := "1 beginbfrange\n<0010> <0014> [<0041> <0042> <0043> <0044>]\nendbfrange\n"
	_, err := Parse([]byte(cmapProgram(body)))
	if err == nil {
		t.Fatal("short bfrange array accepted")
	}
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("error %v does not wrap ErrInvalid", err)
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) || string(parseErr.Code) != "\x00\x10" {
		t.Errorf("unexpected error %v", err)
	}
	if !strings.Contains(err.Error(), "bfrange array length mismatch: expected 5 but got 4") {
		t.Errorf("unexpected message %q", err)
	}

	body = "1 beginbfrange\n<0010> <0014> [<0041> <0042> <0043> <0044> <0045>]\nendbfrange\n"
	cmap, err := Parse([]byte(cmapProgram(body)))
	if err != nil {
		t.Fatal(err)
	}
	if text, _ := cmap.Lookup(0x14); string(text) != "E" {
		t.Errorf("code 0x14 maps to %q", string(text))
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"1 beginbfchar\n<00G1> <0041>\nendbfchar\n",
		"1 beginbfchar\n<0001> <004>\nendbfchar\n",
		"1 beginbfchar\n<0001> <0041",
		"1 beginbfchar\n<> <0041>\nendbfchar\n",
		"1 beginbfrange\n<0005> <0001> <0041>\nendbfrange\n",
		"1 beginbfrange\n<00000000> <00FFFFFF> <0041>\nendbfrange\n",
		"1 beginbfrange\n<0001> <0002> [<0041> /B]\nendbfrange\n",
		"1 beginbfrange\n<0001> <0002> <00>\nendbfrange\n",
	}
	for i, body := range cases {
		_, err := Parse([]byte(cmapProgram(body)))
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("%d: expected ErrInvalid, got %v", i, err)
		}
	}

	// not a CMap program at all
	for _, text := range []string{"", "1 beginbfchar\n<0001> <0041>\nendbfchar\n"} {
		_, err := Parse([]byte(text))
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("%q: expected ErrInvalid, got %v", text, err)
		}
	}
}

func TestParseGlyphNames(t *testing.T) {
	body := "2 beginbfchar\n<0001> /space\n<0002> <0041>\nendbfchar\n"
	cmap, err := Parse([]byte(cmapProgram(body)))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]uint32{2}, cmap.Codes()); d != "" {
		t.Error(d)
	}
}

func FuzzParse(f *testing.F) {
	f.Add([]byte(rangeCMap))
	f.Add([]byte(Build(map[glyph.ID]string{1: "A", 300: "fi"}, "Seed")))
	f.Fuzz(func(t *testing.T, data []byte) {
		cmap, err := Parse(data)
		if err != nil {
			return
		}
		for _, code := range cmap.Codes() {
			if _, ok := cmap.Lookup(code); !ok {
				t.Fatalf("code %d listed but not mapped", code)
			}
		}
	})
}
