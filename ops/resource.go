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
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfops/transform"
	"seehuhn.de/go/pdfops/units"
)

// FontID identifies an embedded font within a document.
type FontID string

// XObjectID identifies an image or form XObject within a document.
type XObjectID string

// LayerID identifies an optional content group within a document.
type LayerID string

// ExtGStateID identifies an extended graphics state within a document.
type ExtGStateID string

// XObjectTransform places an XObject on the page.
//
// The XObject is first scaled, then rotated around the rotation centre,
// and finally translated.  The zero value places the XObject at the origin
// without scaling.
type XObjectTransform struct {
	TranslateX, TranslateY units.Pt

	// Rotate, if non-nil, rotates the XObject.
	Rotate *XObjectRotation

	// ScaleX and ScaleY are scale factors.  Zero is treated as one.
	ScaleX, ScaleY float64

	// Raw, if non-nil, replaces all other fields.
	Raw *matrix.Matrix
}

// XObjectRotation is a counter-clockwise rotation around a centre point.
type XObjectRotation struct {
	AngleCCW         float64 // degrees
	CenterX, CenterY units.Pt
}

// Matrix returns the transformation matrix for the placement.
func (t XObjectTransform) Matrix() matrix.Matrix {
	if t.Raw != nil {
		return *t.Raw
	}

	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	m := matrix.Scale(sx, sy)
	if r := t.Rotate; r != nil {
		cx, cy := float64(r.CenterX), float64(r.CenterY)
		m = m.Mul(matrix.Translate(-cx, -cy)).
			Mul(transform.Rotate{Deg: r.AngleCCW}.Matrix()).
			Mul(matrix.Translate(cx, cy))
	}
	return m.Mul(matrix.Translate(float64(t.TranslateX), float64(t.TranslateY)))
}

// IsIdentity reports whether the placement leaves the XObject unchanged.
func (t XObjectTransform) IsIdentity() bool {
	return t.Matrix() == matrix.Identity
}

// DecodeXObjectTransform finds a placement which reproduces m.  Scaling
// and translation are recovered into the individual fields, all other
// matrices are stored in the Raw field.
func DecodeXObjectTransform(m matrix.Matrix) XObjectTransform {
	if m[1] != 0 || m[2] != 0 || m[0] == 0 || m[3] == 0 {
		raw := m
		return XObjectTransform{Raw: &raw}
	}

	t := XObjectTransform{
		TranslateX: units.Pt(m[4]),
		TranslateY: units.Pt(m[5]),
	}
	if m[0] != 1 {
		t.ScaleX = m[0]
	}
	if m[3] != 1 {
		t.ScaleY = m[3]
	}
	return t
}
