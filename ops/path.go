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
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfops/units"
)

// Point is a position in PDF user space.
type Point struct {
	X, Y units.Pt
}

// Vec converts the point to a vector.
func (p Point) Vec() vec.Vec2 {
	return vec.Vec2{X: float64(p.X), Y: float64(p.Y)}
}

// LinePoint is a point of a line or polygon ring.
//
// Two consecutive points with Bezier set are the control points of a cubic
// Bézier segment, which runs from the point before the first control point
// to the point after the second one.  All other points are connected by
// straight lines.
type LinePoint struct {
	P      Point
	Bezier bool
}

// Line is an open or closed sequence of points.
type Line struct {
	Points   []LinePoint
	IsClosed bool
}

// PolygonRing is one subpath of a [Polygon].
//
// Rings are closed by a straight line back to the first point, unless Open
// is set.  Open rings only differ from closed ones when they are stroked;
// filling implicitly closes every ring.
type PolygonRing struct {
	Points []LinePoint
	Open   bool
}

// Polygon is a shape consisting of one or more rings.
type Polygon struct {
	Rings        []PolygonRing
	Mode         PaintMode
	WindingOrder WindingOrder
}

// PaintMode determines how a polygon is painted.
type PaintMode uint8

// These are the supported paint modes.
const (
	PaintFill PaintMode = iota
	PaintStroke
	PaintFillStroke
	PaintClip
)

func (m PaintMode) String() string {
	switch m {
	case PaintFill:
		return "fill"
	case PaintStroke:
		return "stroke"
	case PaintFillStroke:
		return "fill+stroke"
	case PaintClip:
		return "clip"
	default:
		return "invalid paint mode"
	}
}

// WindingOrder is the rule used to decide which points are inside a shape.
type WindingOrder uint8

// These are the PDF winding rules.
const (
	WindingNonZero WindingOrder = iota
	WindingEvenOdd
)
