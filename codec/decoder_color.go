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
	"seehuhn.de/go/pdfops/ops"
)

// colorSpace is the decoder's view of the current colour space.  A zero
// family indicates a colour space which cannot be represented, for
// example a pattern space.
type colorSpace struct {
	family color.Family
	icc    color.ProfileID
	spot   color.SpotID
}

func (d *decoder) decodeColor(name content.OpName, args []object.Object, a *content.Args) {
	fill := true
	switch name {
	case content.OpSetStrokeColorSpace, content.OpSetStrokeColor, content.OpSetStrokeColorN,
		content.OpSetStrokeGray, content.OpSetStrokeRGB, content.OpSetStrokeCMYK:
		fill = false
	}
	current := &d.state.stroke
	if fill {
		current = &d.state.fill
	}

	var family color.Family
	switch name {
	case content.OpSetFillColorSpace, content.OpSetStrokeColorSpace:
		csName := a.GetName()
		if !d.check(name, args, a) {
			return
		}
		cs, ok := d.lookupColorSpace(csName)
		*current = cs
		if !ok {
			d.add(ColorSpace, Info, name, "colour space %q preserved without interpretation", csName)
			d.unknown(name, args)
		}
		return

	case content.OpSetFillColor, content.OpSetStrokeColor,
		content.OpSetFillColorN, content.OpSetStrokeColorN:
		if current.family == 0 {
			d.unknown(name, args)
			return
		}
		values := a.GetFloats(current.family.Channels())
		if !d.check(name, args, a) {
			return
		}
		c, err := color.FromValues(current.family, values, current.icc, current.spot)
		if err != nil {
			d.malformed(name, args, err)
			return
		}
		d.emitColor(fill, c)
		return

	case content.OpSetFillGray, content.OpSetStrokeGray:
		family = color.FamilyGray
	case content.OpSetFillRGB, content.OpSetStrokeRGB:
		family = color.FamilyRGB
	case content.OpSetFillCMYK, content.OpSetStrokeCMYK:
		family = color.FamilyCMYK
	}

	values := a.GetFloats(family.Channels())
	if !d.check(name, args, a) {
		return
	}
	c, _ := color.FromValues(family, values, "", "")
	*current = colorSpace{family: family}
	d.emitColor(fill, c)
}

func (d *decoder) emitColor(fill bool, c color.Color) {
	if fill {
		d.emit(ops.SetFillColor{Color: c})
	} else {
		d.emit(ops.SetOutlineColor{Color: c})
	}
}

// lookupColorSpace resolves the operand of a "cs" or "CS" operator.
func (d *decoder) lookupColorSpace(name object.Name) (colorSpace, bool) {
	switch name {
	case "DeviceGray":
		return colorSpace{family: color.FamilyGray}, true
	case "DeviceRGB":
		return colorSpace{family: color.FamilyRGB}, true
	case "DeviceCMYK":
		return colorSpace{family: color.FamilyCMYK}, true
	}

	cs, ok := d.res.LookupColorSpace(name)
	if !ok {
		return colorSpace{}, false
	}
	switch {
	case cs.Spot != "":
		return colorSpace{family: color.FamilySpot, spot: cs.Spot}, true
	case cs.ICC != "":
		family := cs.Family
		if cs.Profile != nil {
			family = cs.Profile.Family
		}
		if family.Channels() == 0 || family == color.FamilySpot {
			return colorSpace{}, false
		}
		return colorSpace{family: family, icc: cs.ICC}, true
	}
	return colorSpace{}, false
}
