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
	"seehuhn.de/go/pdfops/graphics/color"
	"seehuhn.de/go/pdfops/graphics/content"
	"seehuhn.de/go/pdfops/object"
)

// colorOps lists the colour operators for either filling or stroking.
type colorOps struct {
	space, set, setN, gray, rgb, cmyk content.OpName
}

var (
	fillOps = colorOps{
		space: content.OpSetFillColorSpace,
		set:   content.OpSetFillColor,
		setN:  content.OpSetFillColorN,
		gray:  content.OpSetFillGray,
		rgb:   content.OpSetFillRGB,
		cmyk:  content.OpSetFillCMYK,
	}
	strokeOps = colorOps{
		space: content.OpSetStrokeColorSpace,
		set:   content.OpSetStrokeColor,
		setN:  content.OpSetStrokeColorN,
		gray:  content.OpSetStrokeGray,
		rgb:   content.OpSetStrokeRGB,
		cmyk:  content.OpSetStrokeCMYK,
	}
)

// encodeColor sets the fill or stroke colour.  A colour space operator is
// only written when the colour space changes.
func (e *encoder) encodeColor(fill bool, c color.Color) {
	names := strokeOps
	current := &e.state.stroke
	if fill {
		names = fillOps
		current = &e.state.fill
	}
	if c == nil {
		e.add(MalformedOperator, Error, names.set, "missing colour omitted")
		return
	}

	values := make([]object.Object, 0, 4)
	for _, x := range c.Values() {
		values = append(values, e.num(x))
	}

	if spot, isSpot := c.(color.Spot); isSpot {
		name := e.res.SpotName(spot.Name)
		e.selectSpace(names.space, current, name)
		e.emit(names.setN, values...)
		return
	}

	if profile := color.Profile(c); profile != "" {
		e.checkProfile(names.setN, profile, c)
		name := e.res.ProfileName(profile)
		e.selectSpace(names.space, current, name)
		e.emit(names.setN, values...)
		return
	}

	family := c.Family().String()
	if *current == family {
		e.emit(names.set, values...)
		return
	}
	*current = family
	switch c.Family() {
	case color.FamilyRGB:
		e.emit(names.rgb, values...)
	case color.FamilyCMYK:
		e.emit(names.cmyk, values...)
	default:
		e.emit(names.gray, values...)
	}
}

// selectSpace switches to a named colour space.  Names without a
// resource binding cannot be decoded again and are reported.
func (e *encoder) selectSpace(op content.OpName, current *string, name object.Name) {
	key := "/" + string(name)
	if *current == key {
		return
	}
	*current = key
	if _, bound := e.res.LookupColorSpace(name); !bound {
		e.add(ColorSpace, Warn, op, "colour space %q has no resource binding", name)
	}
	e.emit(op, name)
}

// checkProfile verifies that a colour matches the family of its ICC
// profile, if the profile is known.
func (e *encoder) checkProfile(op content.OpName, id color.ProfileID, c color.Color) {
	if p := e.res.Profile(id); p != nil {
		if err := p.Check(c); err != nil {
			e.add(ColorSpace, Warn, op, "%v", err)
		}
		return
	}
	if cs, ok := e.res.LookupColorSpace(e.res.ProfileName(id)); ok && cs.Family != 0 && cs.Family != c.Family() {
		e.add(ColorSpace, Warn, op, "%s colour used with %s colour space %q",
			c.Family(), cs.Family, id)
	}
}
