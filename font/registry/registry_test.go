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

package registry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/pdfops/font/standard"
	"seehuhn.de/go/pdfops/font/subset"
	"seehuhn.de/go/pdfops/ops"
)

func textPage(font ops.FontID, items ...ops.TextItem) *ops.Page {
	return &ops.Page{
		Ops: []ops.Op{
			ops.StartTextSection{},
			ops.SetFont{Font: font, Size: 12},
			ops.ShowText{Items: items},
			ops.EndTextSection{},
		},
	}
}

func TestPrepare(t *testing.T) {
	r := New(nil)
	err := r.Add("go", goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}

	pages := []*ops.Page{
		textPage("go", ops.Text("Hello")),
		textPage("go", ops.Text("World")),
	}
	err = r.Prepare(context.Background(), pages)
	if err != nil {
		t.Fatal(err)
	}

	f, ok := r.Font("go")
	if !ok || !f.Composite {
		t.Fatalf("font not prepared: %v", f)
	}
	for _, c := range "HeloWrd" {
		gid, ok := f.GlyphForRune(c)
		if !ok {
			t.Fatalf("no glyph for %q", c)
		}
		code, ok := f.Code(gid)
		if !ok {
			t.Errorf("glyph for %q not in subset", c)
			continue
		}
		text, ok := f.Text(code)
		if !ok || string(text) != string(c) {
			t.Errorf("ToUnicode for %q gives %q", c, string(text))
		}
	}
	if gid, _ := f.GlyphForRune('Z'); gid != 0 {
		if _, ok := f.Code(gid); ok {
			t.Error("unused glyph included in subset")
		}
	}

	e, ok := r.Embedded("go")
	if !ok {
		t.Fatal("missing embedding data")
	}
	if !strings.Contains(e.ToUnicode, "beginbfchar") {
		t.Error("ToUnicode CMap has no mappings")
	}
	if len(e.CIDToGIDMap) != 2*(len(e.Subset.GIDMap)+1) {
		t.Errorf("CIDToGIDMap has %d bytes", len(e.CIDToGIDMap))
	}

	res := r.Resource()
	if res.Font["F1"] != f {
		t.Error("font not bound to /F1")
	}
}

func TestPrepareOnce(t *testing.T) {
	r := New(nil)
	if err := r.Add("go", goregular.TTF); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := r.Prepare(ctx, []*ops.Page{textPage("go", ops.Text("a"))}); err != nil {
		t.Fatal(err)
	}
	first, _ := r.Font("go")
	if err := r.Prepare(ctx, []*ops.Page{textPage("go", ops.Text("b"))}); err != nil {
		t.Fatal(err)
	}
	second, _ := r.Font("go")
	if first != second {
		t.Error("font was subsetted twice")
	}
}

func TestFallback(t *testing.T) {
	page := textPage("go", ops.Glyph{ID: 60000, Text: 'x'})

	r := New(nil)
	if err := r.Add("go", goregular.TTF); err != nil {
		t.Fatal(err)
	}
	err := r.Prepare(context.Background(), []*ops.Page{page})
	if !errors.Is(err, subset.ErrGlyphRange) {
		t.Errorf("unexpected error %v", err)
	}

	r = New(&Options{Fallback: standard.Helvetica})
	if err := r.Add("go", goregular.TTF); err != nil {
		t.Fatal(err)
	}
	err = r.Prepare(context.Background(), []*ops.Page{page})
	if err != nil {
		t.Fatal(err)
	}
	fb, ok := r.Fallback("go")
	if !ok || fb != standard.Helvetica {
		t.Errorf("Fallback = %q, %t", fb, ok)
	}
	f, _ := r.Font("go")
	if f.Composite {
		t.Error("fallback font is composite")
	}
	if _, ok := r.Embedded("go"); ok {
		t.Error("fallback font has embedding data")
	}
	if r.Resource().BuiltinFont["F1"] != standard.Helvetica {
		t.Error("fallback not bound as builtin font")
	}
}

func TestUnknownFont(t *testing.T) {
	r := New(nil)
	err := r.Prepare(context.Background(), []*ops.Page{textPage("missing", ops.Text("a"))})
	if !errors.Is(err, ErrUnknownFont) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestPrepareCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(nil).Prepare(ctx, []*ops.Page{textPage("go", ops.Text("a"))})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("unexpected error %v", err)
	}
}
