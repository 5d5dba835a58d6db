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

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/matrix"
)

func TestXObjectTransform(t *testing.T) {
	cases := []XObjectTransform{
		{},
		{TranslateX: 10, TranslateY: 20},
		{TranslateX: 10, ScaleX: 2, ScaleY: 3},
		{ScaleY: 0.5},
	}
	for _, in := range cases {
		out := DecodeXObjectTransform(in.Matrix())
		if d := cmp.Diff(in, out); d != "" {
			t.Errorf("round trip of %+v: %s", in, d)
		}
	}

	raw := matrix.Matrix{1, 2, 3, 4, 5, 6}
	out := DecodeXObjectTransform(raw)
	if out.Raw == nil || *out.Raw != raw {
		t.Errorf("raw matrix decoded as %+v", out)
	}
	if out.Matrix() != raw {
		t.Errorf("raw matrix changed to %v", out.Matrix())
	}
}

func TestXObjectRotation(t *testing.T) {
	tr := XObjectTransform{
		Rotate: &XObjectRotation{AngleCCW: 90, CenterX: 50, CenterY: 50},
	}
	m := tr.Matrix()

	// The centre of rotation stays fixed.
	x := 50*m[0] + 50*m[2] + m[4]
	y := 50*m[1] + 50*m[3] + m[5]
	if math.Abs(x-50) > 1e-9 || math.Abs(y-50) > 1e-9 {
		t.Errorf("centre moved to (%g, %g)", x, y)
	}

	// (100, 50) rotates to (50, 100).
	x = 100*m[0] + 50*m[2] + m[4]
	y = 100*m[1] + 50*m[3] + m[5]
	if math.Abs(x-50) > 1e-9 || math.Abs(y-100) > 1e-9 {
		t.Errorf("(100, 50) moved to (%g, %g)", x, y)
	}
}

func TestNewPage(t *testing.T) {
	p := NewPage(210, 297, nil)
	if math.Abs(p.MediaBox.URx-595.27566) > 1e-4 || p.MediaBox.LLx != 0 {
		t.Errorf("unexpected media box %v", p.MediaBox)
	}
	if p.TrimBox != p.MediaBox || p.CropBox != p.MediaBox {
		t.Error("boxes differ")
	}
}
