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

// Package transform represents the affine transformations used by the
// "cm" and "Tm" content stream operators.
//
// A transformation is stored in the most specific form available, for
// example a pure translation is stored as [Translate] rather than as six
// raw numbers.  The same variant types serve as current transformation
// matrices ([CurTransMat]) and as text matrices ([TextMatrix]); [Scale] and
// [Identity] are only meaningful as current transformation matrices.
package transform

import (
	"math"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfops/units"
)

// CurTransMat is a transformation which can be concatenated to the current
// transformation matrix.
type CurTransMat interface {
	Matrix() matrix.Matrix
	isCurTransMat()
}

// TextMatrix is a transformation which can be used as a text matrix.
type TextMatrix interface {
	Matrix() matrix.Matrix
	isTextMatrix()
}

// Identity is the identity transformation.
type Identity struct{}

// Translate moves the origin to (X, Y).
type Translate struct {
	X, Y units.Pt
}

// Rotate rotates counter-clockwise by Deg degrees around the origin.
type Rotate struct {
	Deg float64
}

// TranslateRotate rotates counter-clockwise by Deg degrees around the
// origin and then moves the origin to (X, Y).
type TranslateRotate struct {
	X, Y units.Pt
	Deg  float64
}

// Scale scales the x and y axes.
type Scale struct {
	X, Y float64
}

// Raw is a general affine transformation, given by the six numbers
// a, b, c, d, e, f of the PDF matrix [a b 0; c d 0; e f 1].
type Raw matrix.Matrix

// Matrix returns the transformation as six numbers.
func (Identity) Matrix() matrix.Matrix {
	return matrix.Identity
}

// Matrix returns the transformation as six numbers.
func (t Translate) Matrix() matrix.Matrix {
	return matrix.Translate(float64(t.X), float64(t.Y))
}

// Matrix returns the transformation as six numbers.
func (r Rotate) Matrix() matrix.Matrix {
	return rotation(r.Deg, 0, 0)
}

// Matrix returns the transformation as six numbers.
func (t TranslateRotate) Matrix() matrix.Matrix {
	return rotation(t.Deg, float64(t.X), float64(t.Y))
}

// Matrix returns the transformation as six numbers.
func (s Scale) Matrix() matrix.Matrix {
	return matrix.Scale(s.X, s.Y)
}

// Matrix returns the transformation as six numbers.
func (r Raw) Matrix() matrix.Matrix {
	return matrix.Matrix(r)
}

func (Identity) isCurTransMat()        {}
func (Translate) isCurTransMat()       {}
func (Rotate) isCurTransMat()          {}
func (TranslateRotate) isCurTransMat() {}
func (Scale) isCurTransMat()           {}
func (Raw) isCurTransMat()             {}

func (Translate) isTextMatrix()       {}
func (Rotate) isTextMatrix()          {}
func (TranslateRotate) isTextMatrix() {}
func (Raw) isTextMatrix()             {}

func rotation(deg, e, f float64) matrix.Matrix {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return matrix.Matrix{cos, sin, -sin, cos, e, f}
}

// DecodeCTM returns the most specific [CurTransMat] which reproduces m
// exactly.
//
// Values which describe the same matrix decode to the same variant.  In
// particular, the identity matrix is always returned as [Identity], even
// when it was produced by Scale{1, 1}, Translate{0, 0} or Rotate{0}, and a
// rotation by 0 degrees with a translation is returned as [Translate].
func DecodeCTM(m matrix.Matrix) CurTransMat {
	switch {
	case m == matrix.Identity:
		return Identity{}
	case m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1:
		return Translate{X: units.Pt(m[4]), Y: units.Pt(m[5])}
	case m[1] == 0 && m[2] == 0 && m[4] == 0 && m[5] == 0:
		return Scale{X: m[0], Y: m[3]}
	}
	if t := decodeRotation(m); t != nil {
		return t.(CurTransMat)
	}
	return Raw(m)
}

// DecodeTextMatrix returns the most specific [TextMatrix] which reproduces
// m exactly.
func DecodeTextMatrix(m matrix.Matrix) TextMatrix {
	if m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1 {
		return Translate{X: units.Pt(m[4]), Y: units.Pt(m[5])}
	}
	if t := decodeRotation(m); t != nil {
		return t.(TextMatrix)
	}
	return Raw(m)
}

// decodeRotation returns a Rotate or TranslateRotate value if m is a
// rotation by an angle with at most six decimal digits, and nil otherwise.
func decodeRotation(m matrix.Matrix) interface{ Matrix() matrix.Matrix } {
	if m[2] != -m[1] || m[3] != m[0] {
		return nil
	}
	if math.Abs(m[0]*m[0]+m[1]*m[1]-1) > 1e-9 {
		return nil
	}

	deg := math.Atan2(m[1], m[0]) * 180 / math.Pi
	deg = math.Round(deg*1e6) / 1e6
	for _, cand := range []float64{deg, deg + 360} {
		if m[4] == 0 && m[5] == 0 {
			if r := (Rotate{Deg: cand}); r.Matrix() == m {
				return r
			}
		}
		tr := TranslateRotate{X: units.Pt(m[4]), Y: units.Pt(m[5]), Deg: cand}
		if tr.Matrix() == m {
			return tr
		}
	}
	return nil
}
