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

package float

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		x    float64
		prec int
		out  string
	}{
		{1, 2, "1"},
		{0.5, 2, ".5"},
		{-0.5, 2, "-.5"},
		{12.3456, 2, "12.35"},
		{100, 3, "100"},
		{-0.0001, 2, "0"},
		{0.1, -1, ".1"},
	}
	for _, c := range cases {
		if got := Format(c.x, c.prec); got != c.out {
			t.Errorf("Format(%g, %d) = %q, want %q", c.x, c.prec, got, c.out)
		}
	}
}

func TestRound(t *testing.T) {
	if got := Round(2.834646, 3); got != 2.835 {
		t.Errorf("Round = %g", got)
	}
}
