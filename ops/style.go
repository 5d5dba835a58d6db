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

import "seehuhn.de/go/pdfops/object"

// LineCapStyle is the shape at the ends of open subpaths.
type LineCapStyle uint8

// These are the line cap styles defined by PDF.
const (
	LineCapButt LineCapStyle = iota
	LineCapRound
	LineCapProjectingSquare
)

// LineJoinStyle is the shape at the corners of paths.
type LineJoinStyle uint8

// These are the line join styles defined by PDF.
const (
	LineJoinMiter LineJoinStyle = iota
	LineJoinRound
	LineJoinBevel
)

// LineDashPattern describes a dash pattern for stroking.
// An empty Pattern gives a solid line.
type LineDashPattern struct {
	// Pattern alternates between the lengths of dashes and gaps.
	Pattern []float64

	// Offset is the distance into the pattern at which to start.
	Offset float64
}

// RenderingIntent is the name of a colour rendering intent.
type RenderingIntent object.Name

// These are the rendering intents defined by PDF.
const (
	IntentAbsoluteColorimetric RenderingIntent = "AbsoluteColorimetric"
	IntentRelativeColorimetric RenderingIntent = "RelativeColorimetric"
	IntentSaturation           RenderingIntent = "Saturation"
	IntentPerceptual           RenderingIntent = "Perceptual"
)

// TextRenderingMode determines how glyph outlines are used.
type TextRenderingMode uint8

// These are the text rendering modes defined by PDF.
const (
	TextFill TextRenderingMode = iota
	TextStroke
	TextFillStroke
	TextInvisible
	TextFillClip
	TextStrokeClip
	TextFillStrokeClip
	TextClip
)
