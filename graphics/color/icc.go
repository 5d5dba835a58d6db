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

package color

import (
	"errors"
	"fmt"

	"seehuhn.de/go/icc"
)

// ICCProfile describes the data of an ICC profile used for an ICCBased
// colour space.
type ICCProfile struct {
	// Data is the raw profile.
	Data []byte

	// Family is the colour family matching the profile's data colour space.
	Family Family
}

// DecodeICC parses an ICC profile and determines its colour family.
// Profiles with a colour space other than gray, RGB or CMYK are rejected.
func DecodeICC(data []byte) (*ICCProfile, error) {
	if len(data) == 0 {
		return nil, errors.New("ICCBased: missing profile")
	}

	p, err := icc.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("ICCBased: %w", err)
	}

	var family Family
	switch p.ColorSpace {
	case icc.GraySpace:
		family = FamilyGray
	case icc.RGBSpace:
		family = FamilyRGB
	case icc.CMYKSpace:
		family = FamilyCMYK
	default:
		return nil, fmt.Errorf("ICCBased: unsupported color space %v", p.ColorSpace)
	}
	if n := p.ColorSpace.NumComponents(); n != family.Channels() {
		return nil, fmt.Errorf("ICCBased: invalid number of components %d", n)
	}

	return &ICCProfile{Data: data, Family: family}, nil
}

// Check verifies that c can be expressed in the colour space of the
// profile.
func (p *ICCProfile) Check(c Color) error {
	if c.Family() != p.Family {
		return fmt.Errorf("ICCBased: %s colour used with %s profile",
			c.Family(), p.Family)
	}
	return nil
}
