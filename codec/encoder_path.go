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
	"seehuhn.de/go/pdfops/graphics/content"
	"seehuhn.de/go/pdfops/object"
	"seehuhn.de/go/pdfops/ops"
)

func (e *encoder) encodeLine(line ops.Line) {
	if !e.checkPath(len(line.Points)) {
		return
	}
	e.writeSubpath(line.Points)
	if line.IsClosed {
		e.emit(content.OpCloseAndStroke)
	} else {
		e.emit(content.OpStroke)
	}
}

func (e *encoder) encodePolygon(poly ops.Polygon) {
	n := 0
	for _, ring := range poly.Rings {
		n += len(ring.Points)
	}
	if !e.checkPath(n) {
		return
	}

	for _, ring := range poly.Rings {
		if len(ring.Points) == 0 {
			continue
		}
		e.writeSubpath(ring.Points)
		if !ring.Open {
			e.emit(content.OpClosePath)
		}
	}

	evenOdd := poly.WindingOrder == ops.WindingEvenOdd
	switch poly.Mode {
	case ops.PaintStroke:
		e.emit(content.OpStroke)
	case ops.PaintFillStroke:
		if evenOdd {
			e.emit(content.OpFillAndStrokeEvenOdd)
		} else {
			e.emit(content.OpFillAndStroke)
		}
	case ops.PaintClip:
		if evenOdd {
			e.emit(content.OpClipEvenOdd)
		} else {
			e.emit(content.OpClipNonZero)
		}
		e.emit(content.OpEndPath)
	default:
		if evenOdd {
			e.emit(content.OpFillEvenOdd)
		} else {
			e.emit(content.OpFill)
		}
	}
}

func (e *encoder) checkPath(numPoints int) bool {
	if numPoints == 0 {
		e.add(EmptyPath, Info, "", "path without points omitted")
		return false
	}
	if e.inText {
		e.add(TextSection, Error, "", "path inside text section omitted")
		return false
	}
	return true
}

// writeSubpath writes the path construction operators for a sequence of
// points.  Two consecutive control handles, preceded by a start point and
// followed by an end point, form a cubic Bézier segment.  The "v" and "y"
// forms are used when a control point coincides with the adjacent end
// point.
func (e *encoder) writeSubpath(points []ops.LinePoint) {
	p := points[0].P
	e.emit(content.OpMoveTo, e.num(float64(p.X)), e.num(float64(p.Y)))

	n := len(points)
	i := 1
	for i < n {
		if i+2 < n && points[i].Bezier && points[i+1].Bezier {
			start := points[i-1].P
			c1 := points[i].P
			c2 := points[i+1].P
			end := points[i+2].P
			switch {
			case c1 == start:
				e.emit(content.OpCurveToV, e.point(c2, end)...)
			case c2 == end:
				e.emit(content.OpCurveToY, e.point(c1, end)...)
			default:
				e.emit(content.OpCurveTo, e.point(c1, c2, end)...)
			}
			i += 3
			continue
		}

		p := points[i].P
		e.emit(content.OpLineTo, e.num(float64(p.X)), e.num(float64(p.Y)))
		i++
	}
}

func (e *encoder) point(points ...ops.Point) []object.Object {
	res := make([]object.Object, 0, 2*len(points))
	for _, p := range points {
		res = append(res, e.num(float64(p.X)), e.num(float64(p.Y)))
	}
	return res
}
