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

// Package units provides the length units used for page geometry.
//
// All coordinates in content streams are expressed in PDF points (1/72
// inch).  Millimetres and pixels are converted to points at the boundary.
package units

// Pt is a length in PDF points.
type Pt float64

// Mm is a length in millimetres.
type Mm float64

// Px is a length in image pixels.  Its size in points depends on the
// resolution, see [Px.Pt].
type Px int

const (
	ptPerMm = 2.834646
	mmPerPt = 0.352778
	mmPerIn = 25.4
)

// Pt converts millimetres to points.
func (x Mm) Pt() Pt {
	return Pt(float64(x) * ptPerMm)
}

// Mm converts points to millimetres.
func (x Pt) Mm() Mm {
	return Mm(float64(x) * mmPerPt)
}

// Mm converts pixels to millimetres at the given resolution in dots per
// inch.  A non-positive dpi is treated as 300.
func (x Px) Mm(dpi float64) Mm {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return Mm(float64(x) * mmPerIn / dpi)
}

// Pt converts pixels to points at the given resolution in dots per inch.
func (x Px) Pt(dpi float64) Pt {
	return x.Mm(dpi).Pt()
}

// DefaultDPI is the resolution used when none is specified.
const DefaultDPI = 300
