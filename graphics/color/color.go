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

// Package color represents the colours which can be set for filling and
// stroking.
//
// Device colours are written with the compact "rg", "k" and "g" operators
// where possible.  Colours which refer to an ICC profile or a spot colour
// are written by first selecting a colour space resource.
package color

import "fmt"

// Color is one of [RGB], [CMYK], [Gray] or [Spot].
type Color interface {
	// Family returns the colour family.
	Family() Family

	// Values returns the colour components, in the order used by the
	// colour setting operators.
	Values() []float64

	isColor()
}

// Family identifies the device colour space (or spot colour) a colour
// belongs to.
type Family uint8

// These are the supported colour families.
const (
	FamilyRGB Family = iota + 1
	FamilyCMYK
	FamilyGray
	FamilySpot
)

func (f Family) String() string {
	switch f {
	case FamilyRGB:
		return "DeviceRGB"
	case FamilyCMYK:
		return "DeviceCMYK"
	case FamilyGray:
		return "DeviceGray"
	case FamilySpot:
		return "Separation"
	default:
		return fmt.Sprintf("color.Family(%d)", f)
	}
}

// Channels returns the number of colour components.
func (f Family) Channels() int {
	switch f {
	case FamilyRGB:
		return 3
	case FamilyCMYK:
		return 4
	case FamilyGray, FamilySpot:
		return 1
	default:
		return 0
	}
}

// ProfileID identifies an ICC profile.  The empty ProfileID means that the
// device colour space is used.
type ProfileID string

// SpotID identifies a spot colour, i.e. a Separation colour space.
type SpotID string

// RGB is a colour in an RGB colour space.  Components are in the range
// 0 to 1.
type RGB struct {
	R, G, B float64
	ICC     ProfileID
}

// CMYK is a colour in a CMYK colour space.  Components are in the range
// 0 to 1.
type CMYK struct {
	C, M, Y, K float64
	ICC        ProfileID
}

// Gray is a shade of grey, from 0 (black) to 1 (white).
type Gray struct {
	Gray float64
	ICC  ProfileID
}

// Spot is a tint of a named spot colour.
type Spot struct {
	Name SpotID
	Tint float64
}

// Family implements the [Color] interface.
func (RGB) Family() Family { return FamilyRGB }

// Family implements the [Color] interface.
func (CMYK) Family() Family { return FamilyCMYK }

// Family implements the [Color] interface.
func (Gray) Family() Family { return FamilyGray }

// Family implements the [Color] interface.
func (Spot) Family() Family { return FamilySpot }

// Values implements the [Color] interface.
func (c RGB) Values() []float64 { return []float64{c.R, c.G, c.B} }

// Values implements the [Color] interface.
func (c CMYK) Values() []float64 { return []float64{c.C, c.M, c.Y, c.K} }

// Values implements the [Color] interface.
func (c Gray) Values() []float64 { return []float64{c.Gray} }

// Values implements the [Color] interface.
func (c Spot) Values() []float64 { return []float64{c.Tint} }

func (RGB) isColor()  {}
func (CMYK) isColor() {}
func (Gray) isColor() {}
func (Spot) isColor() {}

// Profile returns the ICC profile attached to c, or the empty string if c
// uses a device colour space or is a spot colour.
func Profile(c Color) ProfileID {
	switch c := c.(type) {
	case RGB:
		return c.ICC
	case CMYK:
		return c.ICC
	case Gray:
		return c.ICC
	default:
		return ""
	}
}

// FromValues constructs a colour of the given family from its components.
// The number of values must match [Family.Channels].
func FromValues(f Family, values []float64, profile ProfileID, spot SpotID) (Color, error) {
	if len(values) != f.Channels() {
		return nil, fmt.Errorf("%s: expected %d components, got %d",
			f, f.Channels(), len(values))
	}
	switch f {
	case FamilyRGB:
		return RGB{R: values[0], G: values[1], B: values[2], ICC: profile}, nil
	case FamilyCMYK:
		return CMYK{C: values[0], M: values[1], Y: values[2], K: values[3], ICC: profile}, nil
	case FamilyGray:
		return Gray{Gray: values[0], ICC: profile}, nil
	default:
		return Spot{Name: spot, Tint: values[0]}, nil
	}
}
