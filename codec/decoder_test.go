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
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdfops/graphics/color"
	"seehuhn.de/go/pdfops/object"
	"seehuhn.de/go/pdfops/ops"
	"seehuhn.de/go/pdfops/resource"
)

func TestDecode(t *testing.T) {
	square := []ops.LinePoint{pt(0, 0), pt(10, 0), pt(10, 20), pt(0, 20)}

	cases := []struct {
		name  string
		in    string
		want  []ops.Op
		kinds []Kind
	}{
		{
			name: "line",
			in:   "10 10 m\n100 100 l\nS\n",
			want: []ops.Op{
				ops.DrawLine{Line: ops.Line{Points: []ops.LinePoint{pt(10, 10), pt(100, 100)}}},
			},
		},
		{
			name: "closed line",
			in:   "1 2 m 3 4 l s",
			want: []ops.Op{
				ops.DrawLine{Line: ops.Line{Points: []ops.LinePoint{pt(1, 2), pt(3, 4)}, IsClosed: true}},
			},
		},
		{
			name: "curves",
			in:   "0 0 m 3 4 5 6 v 7 8 9 9 y S",
			want: []ops.Op{
				ops.DrawLine{Line: ops.Line{Points: []ops.LinePoint{
					pt(0, 0), ctrl(0, 0), ctrl(3, 4), pt(5, 6),
					ctrl(7, 8), ctrl(9, 9), pt(9, 9),
				}}},
			},
		},
		{
			name: "rectangle",
			in:   "0 0 10 20 re f",
			want: []ops.Op{
				ops.DrawPolygon{Polygon: ops.Polygon{
					Rings: []ops.PolygonRing{{Points: square}},
				}},
			},
		},
		{
			name: "clip",
			in:   "0 0 10 20 re W* B",
			want: []ops.Op{
				ops.DrawPolygon{Polygon: ops.Polygon{
					Rings: []ops.PolygonRing{{Points: square}},
					Mode:  ops.PaintFillStroke,
				}},
				ops.DrawPolygon{Polygon: ops.Polygon{
					Rings:        []ops.PolygonRing{{Points: square}},
					Mode:         ops.PaintClip,
					WindingOrder: ops.WindingEvenOdd,
				}},
			},
		},
		{
			name: "two subpaths",
			in:   "0 0 m 1 0 l h 5 5 l h S",
			want: []ops.Op{
				ops.DrawPolygon{Polygon: ops.Polygon{
					Rings: []ops.PolygonRing{
						{Points: []ops.LinePoint{pt(0, 0), pt(1, 0)}},
						{Points: []ops.LinePoint{pt(0, 0), pt(5, 5)}},
					},
					Mode: ops.PaintStroke,
				}},
			},
		},
		{
			name: "open subpaths",
			in:   "0 0 m 10 0 l 20 20 m 30 20 l S",
			want: []ops.Op{
				ops.DrawPolygon{Polygon: ops.Polygon{
					Rings: []ops.PolygonRing{
						{Points: []ops.LinePoint{pt(0, 0), pt(10, 0)}, Open: true},
						{Points: []ops.LinePoint{pt(20, 20), pt(30, 20)}, Open: true},
					},
					Mode: ops.PaintStroke,
				}},
			},
		},
		{
			name: "close last subpath",
			in:   "0 0 m 10 0 l 20 20 m 30 20 l s",
			want: []ops.Op{
				ops.DrawPolygon{Polygon: ops.Polygon{
					Rings: []ops.PolygonRing{
						{Points: []ops.LinePoint{pt(0, 0), pt(10, 0)}, Open: true},
						{Points: []ops.LinePoint{pt(20, 20), pt(30, 20)}},
					},
					Mode: ops.PaintStroke,
				}},
			},
		},
		{
			name:  "discarded path",
			in:    "0 0 m 1 1 l 1 g",
			want:  []ops.Op{ops.SetFillColor{Color: color.Gray{Gray: 1}}},
			kinds: []Kind{MalformedOperator},
		},
		{
			name:  "line without current point",
			in:    "1 1 l n",
			want:  []ops.Op{ops.Unknown{Key: "l", Operands: []object.Object{object.Integer(1), object.Integer(1)}}},
			kinds: []Kind{MalformedOperator},
		},
		{
			name: "text",
			in:   "BT /F1 12 Tf 1 2 TD (a) ' 3 4 (b) \" ET",
			want: []ops.Op{
				ops.StartTextSection{},
				ops.SetFont{Font: "F1", Size: 12},
				ops.SetLineHeight{Height: -2},
				ops.SetTextCursor{Pos: ops.Point{X: 1, Y: 2}},
				ops.AddLineBreak{},
				ops.ShowText{Items: []ops.TextItem{ops.Text("a")}},
				ops.SetWordSpacing{Spacing: 3},
				ops.SetCharacterSpacing{Spacing: 4},
				ops.AddLineBreak{},
				ops.ShowText{Items: []ops.TextItem{ops.Text("b")}},
				ops.EndTextSection{},
			},
		},
		{
			name: "builtin font",
			in:   "BT /Helvetica 10 Tf [(A) 120 (V)] TJ ET",
			want: []ops.Op{
				ops.StartTextSection{},
				ops.SetBuiltinFont{Font: "Helvetica", Size: 10},
				ops.ShowText{Items: []ops.TextItem{ops.Text("A"), ops.Offset(120), ops.Text("V")}},
				ops.EndTextSection{},
			},
		},
		{
			name: "text outside section",
			in:   "(x) Tj",
			want: []ops.Op{
				ops.ShowText{Items: []ops.TextItem{ops.Text("x")}},
			},
			kinds: []Kind{TextSection, MissingFontBinding},
		},
		{
			name:  "unterminated text section",
			in:    "BT",
			want:  []ops.Op{ops.StartTextSection{}},
			kinds: []Kind{TextSection},
		},
		{
			name:  "restore without save",
			in:    "Q",
			want:  []ops.Op{ops.RestoreGraphicsState{}},
			kinds: []Kind{UnbalancedRestore},
		},
		{
			name: "malformed",
			in:   "1 w /x w",
			want: []ops.Op{
				ops.SetOutlineThickness{Width: 1},
				ops.Unknown{Key: "w", Operands: []object.Object{object.Name("x")}},
			},
			kinds: []Kind{MalformedOperator},
		},
		{
			name: "line cap out of range",
			in:   "7 J",
			want: []ops.Op{
				ops.Unknown{Key: "J", Operands: []object.Object{object.Integer(7)}},
			},
			kinds: []Kind{MalformedOperator},
		},
		{
			name: "unknown operators",
			in:   "/Sh1 sh 1 2 foo",
			want: []ops.Op{
				ops.Unknown{Key: "sh", Operands: []object.Object{object.Name("Sh1")}},
				ops.Unknown{Key: "foo", Operands: []object.Object{object.Integer(1), object.Integer(2)}},
			},
			kinds: []Kind{UnknownOperator, UnknownOperator},
		},
		{
			name: "inline image",
			in:   "BI /W 1 /H 1 ID \xff EI\n",
			want: []ops.Op{
				ops.Unknown{Key: "BI", Operands: []object.Object{
					object.Dict{"W": object.Integer(1), "H": object.Integer(1)},
					object.String{0xff},
				}},
			},
			kinds: []Kind{UnknownOperator},
		},
		{
			name:  "truncated",
			in:    "1 0 0 rg (abc",
			want:  []ops.Op{ops.SetFillColor{Color: color.RGB{R: 1}}},
			kinds: []Kind{Truncated},
		},
		{
			name: "colour spaces",
			in:   "/DeviceRGB cs 0 0 1 sc /Pattern cs /P1 scn 1 g",
			want: []ops.Op{
				ops.SetFillColor{Color: color.RGB{B: 1}},
				ops.Unknown{Key: "cs", Operands: []object.Object{object.Name("Pattern")}},
				ops.Unknown{Key: "scn", Operands: []object.Object{object.Name("P1")}},
				ops.SetFillColor{Color: color.Gray{Gray: 1}},
			},
			kinds: []Kind{ColorSpace},
		},
		{
			name: "colour state is saved",
			in:   "0 0 0 1 K q 0 0 0 RG Q .5 SC",
			want: []ops.Op{
				ops.SetOutlineColor{Color: color.CMYK{K: 1}},
				ops.SaveGraphicsState{},
				ops.SetOutlineColor{Color: color.RGB{}},
				ops.RestoreGraphicsState{},
				ops.Unknown{Key: "SC", Operands: []object.Object{object.Real(0.5)}},
			},
			kinds: []Kind{MalformedOperator},
		},
		{
			name: "xobjects",
			in:   "q /Im1 Do Q q 2 0 0 2 5 5 cm /Im2 Do Q /Im3 Do",
			want: []ops.Op{
				ops.UseXObject{XObject: "Im1"},
				ops.UseXObject{XObject: "Im2", Transform: ops.XObjectTransform{
					TranslateX: 5, TranslateY: 5, ScaleX: 2, ScaleY: 2,
				}},
				ops.UseXObject{XObject: "Im3"},
			},
		},
		{
			name: "marked content",
			in:   "/OC /L1 BDC /Span <</MCID 0>> BDC /P /MC0 BDC /Artifact BMC EMC EMC EMC EMC /X MP",
			want: []ops.Op{
				ops.BeginLayer{Layer: "L1"},
				ops.BeginMarkedContentWithProperties{Tag: "Span", Properties: object.Dict{"MCID": object.Integer(0)}},
				ops.BeginMarkedContentWithProperties{Tag: "P", Properties: object.Name("MC0")},
				ops.BeginMarkedContent{Tag: "Artifact"},
				ops.EndMarkedContent{},
				ops.EndMarkedContent{},
				ops.EndMarkedContent{},
				ops.EndLayer{},
				ops.DefineMarkedContentPoint{Tag: "X"},
			},
		},
		{
			name:  "unmatched EMC",
			in:    "EMC",
			want:  []ops.Op{ops.EndMarkedContent{}},
			kinds: []Kind{MarkedContent},
		},
		{
			name: "compatibility section",
			in:   "BX 1 2 foo EX",
			want: []ops.Op{
				ops.BeginCompatibilitySection{},
				ops.Unknown{Key: "foo", Operands: []object.Object{object.Integer(1), object.Integer(2)}},
				ops.EndCompatibilitySection{},
			},
			kinds: []Kind{UnknownOperator},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ws := Decode([]byte(c.in), nil, nil)
			if d := cmp.Diff(c.want, got); d != "" {
				t.Errorf("ops (-want +got):\n%s", d)
			}
			if d := cmp.Diff(c.kinds, kinds(ws)); d != "" {
				t.Errorf("warnings (-want +got):\n%s\n%v", d, ws)
			}
		})
	}
}

func TestDecodeResources(t *testing.T) {
	res := &resource.Resource{
		XObject:    map[object.Name]ops.XObjectID{"X1": "logo"},
		ExtGState:  map[object.Name]ops.ExtGStateID{"GS1": "alpha"},
		Properties: map[object.Name]ops.LayerID{"OC1": "notes"},
		ColorSpace: map[object.Name]*resource.ColorSpace{
			"CS0": {Family: color.FamilyCMYK, ICC: "fogra"},
			"CS1": {Family: color.FamilySpot, Spot: "Gold"},
		},
	}
	in := "/GS1 gs /OC /OC1 BDC /X1 Do EMC /CS0 cs 0 0 0 1 scn /CS1 CS 1 SCN"
	want := []ops.Op{
		ops.LoadGraphicsState{GS: "alpha"},
		ops.BeginLayer{Layer: "notes"},
		ops.UseXObject{XObject: "logo"},
		ops.EndLayer{},
		ops.SetFillColor{Color: color.CMYK{K: 1, ICC: "fogra"}},
		ops.SetOutlineColor{Color: color.Spot{Name: "Gold", Tint: 1}},
	}
	got, ws := Decode([]byte(in), res, nil)
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("ops (-want +got):\n%s", d)
	}
	if len(ws) != 0 {
		t.Errorf("unexpected warnings %v", ws)
	}
}

func TestDecodeWarningIndex(t *testing.T) {
	_, ws := Decode([]byte("q 1 w BT ET Q Q"), nil, &Options{Page: 2})
	if len(ws) != 1 {
		t.Fatalf("expected one warning, got %v", ws)
	}
	w := ws[0]
	if w.Page != 2 || w.Index != 5 || w.Kind != UnbalancedRestore {
		t.Errorf("unexpected warning %+v", w)
	}
}

func TestDecodeEncodePaths(t *testing.T) {
	cases := []struct {
		in, out string
	}{
		{ // table rules
			in:  "0 0 m\n10 0 l\n10 10 l\n20 20 m\n30 20 l\n30 30 l\nS\n",
			out: "0 0 m\n10 0 l\n10 10 l\n20 20 m\n30 20 l\n30 30 l\nS\n",
		},
		{
			in:  "0 0 m\n10 0 l\nh\n20 20 m\n30 20 l\nS\n",
			out: "0 0 m\n10 0 l\nh\n20 20 m\n30 20 l\nS\n",
		},
		{
			in:  "0 0 m\n10 0 l\n20 20 m\n30 20 l\ns\n",
			out: "0 0 m\n10 0 l\n20 20 m\n30 20 l\nh\nS\n",
		},
		{
			in:  "0 0 m\n10 0 l\n10 10 l\nB\n",
			out: "0 0 m\n10 0 l\n10 10 l\nB\n",
		},
		{
			in:  "0 0 m\n10 0 l\n10 10 l\nb\n",
			out: "0 0 m\n10 0 l\n10 10 l\nh\nB\n",
		},
		{
			in:  "0 0 m\n10 0 l\n10 10 l\nf\n",
			out: "0 0 m\n10 0 l\n10 10 l\nf\n",
		},
	}
	for i, c := range cases {
		opList, ws := Decode([]byte(c.in), nil, nil)
		if len(ws) != 0 {
			t.Errorf("%d: unexpected decode warnings %v", i, ws)
		}
		got, ws := encodeString(t, nil, opList...)
		if len(ws) != 0 {
			t.Errorf("%d: unexpected encode warnings %v", i, ws)
		}
		if got != c.out {
			t.Errorf("%d: got %q, want %q", i, got, c.out)
		}
	}
}

func FuzzDecode(f *testing.F) {
	f.Add([]byte("10 10 m\n100 100 l\nS\n"))
	f.Add([]byte("BT /F1 12 Tf [(a) -250 (b)] TJ ET"))
	f.Add([]byte("q 1 0 0 1 5 5 cm /Im1 Do Q"))
	f.Add([]byte("/OC /L BDC 0 0 1 1 re W n EMC"))
	f.Add([]byte("BI /W 1 /H 1 ID x EI"))
	f.Fuzz(func(t *testing.T, data []byte) {
		opList, _ := Decode(data, nil, nil)

		// The encoded operations must decode to the same list.
		page := &ops.Page{Ops: opList}
		enc, _ := Encode(page, nil, nil)
		opList2, _ := Decode(enc, nil, nil)
		enc2, _ := Encode(&ops.Page{Ops: opList2}, nil, nil)
		if string(enc) != string(enc2) {
			t.Errorf("encoding not stable:\n%q\n%q", enc, enc2)
		}
	})
}
