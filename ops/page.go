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
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfops/units"
)

// Page is the content of a single page: its bounding boxes and the list of
// operations which draw the page.
type Page struct {
	MediaBox rect.Rect
	TrimBox  rect.Rect
	CropBox  rect.Rect

	Ops []Op
}

// NewPage allocates a page of the given size.  All three boxes are set to
// the full page.
func NewPage(width, height units.Mm, ops []Op) *Page {
	box := rect.Rect{
		URx: float64(width.Pt()),
		URy: float64(height.Pt()),
	}
	return &Page{
		MediaBox: box,
		TrimBox:  box,
		CropBox:  box,
		Ops:      ops,
	}
}
