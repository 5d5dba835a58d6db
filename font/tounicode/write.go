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
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/template"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"

	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/sfnt/glyph"
)

// MaxBlockSize is the maximal number of entries in a single
// beginbfchar/endbfchar block.
const MaxBlockSize = 100

// Build returns the text of a ToUnicode CMap which maps the code of every
// glyph in m to the first Unicode scalar value of its text.  Codes are
// assigned as described at [CodeForGlyph].  Glyphs with empty text, and
// glyphs whose code would not fit into two bytes, are omitted.
func Build(m map[glyph.ID]string, fontName string) string {
	var entries []entry
	for _, gid := range slices.Sorted(maps.Keys(m)) {
		r, ok := firstRune(m[gid])
		if !ok {
			continue
		}
		code := CodeForGlyph(gid)
		if code > 0xFFFF {
			continue
		}
		entries = append(entries, entry{Code: code, Text: r})
	}

	var blocks [][]entry
	for len(entries) > 0 {
		n := 1
		for n < len(entries) && n < MaxBlockSize &&
			entries[n].Code>>8 == entries[0].Code>>8 {
			n++
		}
		blocks = append(blocks, entries[:n])
		entries = entries[n:]
	}

	info := &templateData{
		Name:   cmapName(fontName),
		Blocks: blocks,
	}
	buf := &strings.Builder{}
	err := toUnicodeTmpl.Execute(buf, info)
	if err != nil {
		// The template only reads fields of info, so this cannot happen.
		panic(err)
	}
	return buf.String()
}

type entry struct {
	Code cid.CID
	Text rune
}

type templateData struct {
	Name   string
	Blocks [][]entry
}

// firstRune returns the first Unicode scalar value of the NFC normal form
// of s.
func firstRune(s string) (rune, bool) {
	s = norm.NFC.String(s)
	for _, r := range s {
		return r, true
	}
	return 0, false
}

func cmapName(fontName string) string {
	var b strings.Builder
	for _, r := range fontName {
		if r > 0x20 && r < 0x7f && !strings.ContainsRune("()<>[]{}/%#", r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		b.WriteString("Font")
	}
	b.WriteString("-UTF16")
	return b.String()
}

func formatCode(code cid.CID) string {
	return fmt.Sprintf("<%04X>", uint32(code))
}

func formatText(r rune) string {
	var b strings.Builder
	b.WriteByte('<')
	for _, x := range utf16.Encode([]rune{r}) {
		fmt.Fprintf(&b, "%04X", x)
	}
	b.WriteByte('>')
	return b.String()
}

var toUnicodeTmpl = template.Must(template.New("tounicode").Funcs(template.FuncMap{
	"Code": formatCode,
	"Text": formatText,
}).Parse(`/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CIDSystemInfo << /Registry (Adobe) /Ordering (UCS) /Supplement 0 >> def
/CMapName /{{.Name}} def
/CMapType 2 def
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
{{range .Blocks -}}
{{len .}} beginbfchar
{{range . -}}
{{Code .Code}} {{Text .Text}}
{{end -}}
endbfchar
{{end -}}
endcmap
CMapName currentdict /CMap defineresource pop
end
end
`))
