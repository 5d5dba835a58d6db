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

package color

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/icc"
)

func TestDecodeICC(t *testing.T) {
	for _, data := range [][]byte{icc.SRGBv2Profile, icc.SRGBv4Profile} {
		p, err := DecodeICC(data)
		if err != nil {
			t.Fatal(err)
		}
		if p.Family != FamilyRGB {
			t.Errorf("sRGB profile has family %s", p.Family)
		}
		if err := p.Check(RGB{R: 1, ICC: "sRGB"}); err != nil {
			t.Error(err)
		}
		if err := p.Check(CMYK{K: 1}); err == nil {
			t.Error("CMYK colour accepted by RGB profile")
		}
	}
}

func TestDecodeICCInvalid(t *testing.T) {
	if _, err := DecodeICC(nil); err == nil {
		t.Error("missing profile accepted")
	}
	if _, err := DecodeICC([]byte("not a profile")); err == nil {
		t.Error("garbage profile accepted")
	}
}

func TestFromValues(t *testing.T) {
	cases := []Color{
		RGB{R: 1, G: 0.5, B: 0},
		CMYK{C: 0.1, M: 0.2, Y: 0.3, K: 0.4, ICC: "fogra"},
		Gray{Gray: 0.25},
		Spot{Name: "Gold", Tint: 0.8},
	}
	for _, in := range cases {
		var spot SpotID
		if s, ok := in.(Spot); ok {
			spot = s.Name
		}
		out, err := FromValues(in.Family(), in.Values(), Profile(in), spot)
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(in, out); d != "" {
			t.Error(d)
		}
	}

	if _, err := FromValues(FamilyRGB, []float64{1}, "", ""); err == nil {
		t.Error("wrong number of components accepted")
	}
}
