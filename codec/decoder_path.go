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
	"seehuhn.de/go/pdfops/units"
)

type subpath struct {
	points []ops.LinePoint
	closed bool
}

func isPathOp(name content.OpName) bool {
	switch name {
	case content.OpMoveTo, content.OpLineTo, content.OpCurveTo, content.OpCurveToV,
		content.OpCurveToY, content.OpClosePath, content.OpRectangle,
		content.OpClipNonZero, content.OpClipEvenOdd,
		content.OpStroke, content.OpCloseAndStroke, content.OpFill, content.OpFillCompat,
		content.OpFillEvenOdd, content.OpFillAndStroke, content.OpFillAndStrokeEvenOdd,
		content.OpCloseFillAndStroke, content.OpCloseFillAndStrokeEvenOdd, content.OpEndPath:
		return true
	}
	return false
}

func (d *decoder) decodePathConstruction(name content.OpName, args []object.Object, a *content.Args) {
	var xy []float64
	switch name {
	case content.OpMoveTo, content.OpLineTo:
		xy = a.GetFloats(2)
	case content.OpCurveTo:
		xy = a.GetFloats(6)
	case content.OpCurveToV, content.OpCurveToY, content.OpRectangle:
		xy = a.GetFloats(4)
	}
	if !d.check(name, args, a) {
		return
	}
	pt := func(i int) ops.Point {
		return ops.Point{X: units.Pt(xy[2*i]), Y: units.Pt(xy[2*i+1])}
	}

	switch name {
	case content.OpMoveTo:
		d.current = pt(0)
		d.path = append(d.path, subpath{points: []ops.LinePoint{{P: d.current}}})
		return
	case content.OpRectangle:
		x, y, w, h := xy[0], xy[1], xy[2], xy[3]
		corner := func(x, y float64) ops.LinePoint {
			return ops.LinePoint{P: ops.Point{X: units.Pt(x), Y: units.Pt(y)}}
		}
		d.path = append(d.path, subpath{
			points: []ops.LinePoint{
				corner(x, y), corner(x+w, y), corner(x+w, y+h), corner(x, y+h),
			},
			closed: true,
		})
		d.current = pt(0)
		return
	}

	n := len(d.path)
	if n == 0 {
		d.malformed(name, args, errNoCurrentPoint)
		return
	}
	sp := &d.path[n-1]
	if name == content.OpClosePath {
		sp.closed = true
		d.current = sp.points[0].P
		return
	}
	if sp.closed {
		// a new subpath starts at the end of the closed one
		d.path = append(d.path, subpath{points: []ops.LinePoint{{P: d.current}}})
		sp = &d.path[len(d.path)-1]
	}

	switch name {
	case content.OpLineTo:
		sp.points = append(sp.points, ops.LinePoint{P: pt(0)})
		d.current = pt(0)
	case content.OpCurveTo:
		sp.points = append(sp.points,
			ops.LinePoint{P: pt(0), Bezier: true},
			ops.LinePoint{P: pt(1), Bezier: true},
			ops.LinePoint{P: pt(2)})
		d.current = pt(2)
	case content.OpCurveToV:
		sp.points = append(sp.points,
			ops.LinePoint{P: d.current, Bezier: true},
			ops.LinePoint{P: pt(0), Bezier: true},
			ops.LinePoint{P: pt(1)})
		d.current = pt(1)
	case content.OpCurveToY:
		sp.points = append(sp.points,
			ops.LinePoint{P: pt(0), Bezier: true},
			ops.LinePoint{P: pt(1), Bezier: true},
			ops.LinePoint{P: pt(1)})
		d.current = pt(1)
	}
}

// paintPath converts the current path into drawing operations.
//
// A single open subpath which is stroked becomes a [ops.DrawLine], all
// other paths become a [ops.DrawPolygon].  Subpaths which were not closed
// become open rings.  A pending clipping operator adds a second polygon
// with [ops.PaintClip].
func (d *decoder) paintPath(name content.OpName) {
	paths := d.path
	clip := d.clip
	d.path = nil
	d.clip = ""

	if len(paths) == 0 {
		if name != content.OpEndPath || clip != "" {
			d.add(EmptyPath, Info, name, "painting operator without path ignored")
		}
		return
	}

	// s, b and b* close the last subpath only
	switch name {
	case content.OpCloseAndStroke:
		if len(paths) > 1 {
			paths[len(paths)-1].closed = true
		}
	case content.OpCloseFillAndStroke, content.OpCloseFillAndStrokeEvenOdd:
		paths[len(paths)-1].closed = true
	}

	polygon := func(mode ops.PaintMode, evenOdd bool) ops.DrawPolygon {
		p := ops.Polygon{Mode: mode}
		if evenOdd {
			p.WindingOrder = ops.WindingEvenOdd
		}
		for _, sp := range paths {
			p.Rings = append(p.Rings, ops.PolygonRing{Points: sp.points, Open: !sp.closed})
		}
		return ops.DrawPolygon{Polygon: p}
	}

	switch name {
	case content.OpStroke, content.OpCloseAndStroke:
		if len(paths) == 1 && !paths[0].closed {
			line := ops.Line{
				Points:   paths[0].points,
				IsClosed: name == content.OpCloseAndStroke,
			}
			d.emit(ops.DrawLine{Line: line})
		} else {
			d.emit(polygon(ops.PaintStroke, false))
		}
	case content.OpFill, content.OpFillCompat:
		d.emit(polygon(ops.PaintFill, false))
	case content.OpFillEvenOdd:
		d.emit(polygon(ops.PaintFill, true))
	case content.OpFillAndStroke, content.OpCloseFillAndStroke:
		d.emit(polygon(ops.PaintFillStroke, false))
	case content.OpFillAndStrokeEvenOdd, content.OpCloseFillAndStrokeEvenOdd:
		d.emit(polygon(ops.PaintFillStroke, true))
	}

	if clip != "" {
		d.emit(polygon(ops.PaintClip, clip == content.OpClipEvenOdd))
	}
}
