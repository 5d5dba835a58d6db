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

// Package resource describes the resource dictionary of a content stream.
//
// The resource dictionary binds the names used inside a content stream
// (for example /F1 in "/F1 12 Tf") to document-level resource handles.
// The document container supplies a [Resource] when encoding or decoding
// a page.  Names which have no entry in the dictionary are mapped to the
// handle with the same string value, and vice versa.  Colour spaces are the
// exception: a colour space name is only understood when it is bound to a
// [ColorSpace].
package resource

import (
	"slices"

	"seehuhn.de/go/pdfops/font/standard"
	"seehuhn.de/go/pdfops/graphics/color"
	"seehuhn.de/go/pdfops/object"
	"seehuhn.de/go/pdfops/ops"
)

// Resource is the resource dictionary of a page.
// A Resource must not be modified while it is used by an encoder or
// decoder.
type Resource struct {
	Font        map[object.Name]*Font
	BuiltinFont map[object.Name]standard.Font
	XObject     map[object.Name]ops.XObjectID
	ExtGState   map[object.Name]ops.ExtGStateID
	ColorSpace  map[object.Name]*ColorSpace

	// Properties holds the optional content groups used in
	// "/OC /Name BDC" operators.
	Properties map[object.Name]ops.LayerID
}

// ColorSpace is a colour space resource which refers to an ICC profile
// or to a spot colour.
type ColorSpace struct {
	// Family is the colour family of the space.  For ICC based spaces
	// this must match the profile.
	Family color.Family

	// ICC is set for ICC based colour spaces.
	ICC color.ProfileID

	// Profile optionally holds the profile data, used to verify colours
	// against the profile.
	Profile *color.ICCProfile

	// Spot is set for Separation colour spaces.
	Spot color.SpotID
}

// FontName returns the resource name for a font.
func (r *Resource) FontName(id ops.FontID) object.Name {
	if r != nil {
		if name, ok := reverse(r.Font, func(f *Font) bool { return f != nil && f.ID == id }); ok {
			return name
		}
	}
	return object.Name(id)
}

// LookupFont returns the font bound to a resource name.
// The second return value is false if no binding exists.
func (r *Resource) LookupFont(name object.Name) (*Font, bool) {
	if r == nil {
		return nil, false
	}
	f, ok := r.Font[name]
	return f, ok && f != nil
}

// FontByID returns the font binding for a handle, or nil if there is none.
func (r *Resource) FontByID(id ops.FontID) *Font {
	if r == nil {
		return nil
	}
	name, ok := reverse(r.Font, func(f *Font) bool { return f != nil && f.ID == id })
	if !ok {
		return nil
	}
	return r.Font[name]
}

// BuiltinFontName returns the resource name for a standard font.
// Without a binding, the PostScript name of the font is used.
func (r *Resource) BuiltinFontName(f standard.Font) object.Name {
	if r != nil {
		if name, ok := reverse(r.BuiltinFont, func(g standard.Font) bool { return g == f }); ok {
			return name
		}
	}
	return object.Name(f)
}

// LookupBuiltinFont returns the standard font for a resource name.
// Names which are not bound but equal the PostScript name of a standard
// font are recognised.
func (r *Resource) LookupBuiltinFont(name object.Name) (standard.Font, bool) {
	if r != nil {
		if f, ok := r.BuiltinFont[name]; ok {
			return f, true
		}
		if _, isFont := r.Font[name]; isFont {
			return "", false
		}
	}
	return standard.Lookup(string(name))
}

// XObjectName returns the resource name for an XObject.
func (r *Resource) XObjectName(id ops.XObjectID) object.Name {
	if r != nil {
		return nameFor(r.XObject, id)
	}
	return object.Name(id)
}

// LookupXObject returns the XObject for a resource name.
func (r *Resource) LookupXObject(name object.Name) ops.XObjectID {
	if r != nil {
		if id, ok := r.XObject[name]; ok {
			return id
		}
	}
	return ops.XObjectID(name)
}

// ExtGStateName returns the resource name for an extended graphics state.
func (r *Resource) ExtGStateName(id ops.ExtGStateID) object.Name {
	if r != nil {
		return nameFor(r.ExtGState, id)
	}
	return object.Name(id)
}

// LookupExtGState returns the extended graphics state for a resource
// name.
func (r *Resource) LookupExtGState(name object.Name) ops.ExtGStateID {
	if r != nil {
		if id, ok := r.ExtGState[name]; ok {
			return id
		}
	}
	return ops.ExtGStateID(name)
}

// LayerName returns the resource name for an optional content group.
func (r *Resource) LayerName(id ops.LayerID) object.Name {
	if r != nil {
		return nameFor(r.Properties, id)
	}
	return object.Name(id)
}

// LookupLayer returns the optional content group for a resource name.
func (r *Resource) LookupLayer(name object.Name) ops.LayerID {
	if r != nil {
		if id, ok := r.Properties[name]; ok {
			return id
		}
	}
	return ops.LayerID(name)
}

// ProfileName returns the name of the colour space resource for an ICC
// profile.
func (r *Resource) ProfileName(id color.ProfileID) object.Name {
	if r != nil {
		if name, ok := reverse(r.ColorSpace, func(cs *ColorSpace) bool { return cs != nil && cs.ICC == id && cs.Spot == "" }); ok {
			return name
		}
	}
	return object.Name(id)
}

// SpotName returns the name of the colour space resource for a spot
// colour.
func (r *Resource) SpotName(id color.SpotID) object.Name {
	if r != nil {
		if name, ok := reverse(r.ColorSpace, func(cs *ColorSpace) bool { return cs != nil && cs.Spot == id }); ok {
			return name
		}
	}
	return object.Name(id)
}

// Profile returns the profile data for an ICC profile, if known.
func (r *Resource) Profile(id color.ProfileID) *color.ICCProfile {
	if r == nil {
		return nil
	}
	name, ok := reverse(r.ColorSpace, func(cs *ColorSpace) bool { return cs != nil && cs.ICC == id && cs.Spot == "" })
	if !ok {
		return nil
	}
	return r.ColorSpace[name].Profile
}

// NewICCColorSpace returns an ICCBased colour space resource for the
// given profile data.
func NewICCColorSpace(id color.ProfileID, data []byte) (*ColorSpace, error) {
	p, err := color.DecodeICC(data)
	if err != nil {
		return nil, err
	}
	return &ColorSpace{Family: p.Family, ICC: id, Profile: p}, nil
}

// LookupColorSpace returns the colour space bound to a resource name.
func (r *Resource) LookupColorSpace(name object.Name) (*ColorSpace, bool) {
	if r == nil {
		return nil, false
	}
	cs, ok := r.ColorSpace[name]
	return cs, ok && cs != nil
}

func nameFor[H ~string](m map[object.Name]H, id H) object.Name {
	if name, ok := reverse(m, func(h H) bool { return h == id }); ok {
		return name
	}
	return object.Name(id)
}

// reverse returns the smallest name whose value satisfies match.
func reverse[V any](m map[object.Name]V, match func(V) bool) (object.Name, bool) {
	var names []object.Name
	for name, val := range m {
		if match(val) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", false
	}
	return slices.Min(names), true
}
