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

// Package ops defines the operations which make up the content of a page.
//
// An [Op] is one of a fixed set of concrete types.  The set is closed: the
// content stream encoder handles every type defined here, and the decoder
// produces only these types.  Operators which the decoder does not
// understand are preserved as [Unknown].
//
// Operations fall into the following groups:
//   - graphics state: [SaveGraphicsState], [RestoreGraphicsState],
//     [LoadGraphicsState], [SetOutlineThickness], [SetLineCapStyle],
//     [SetLineJoinStyle], [SetMiterLimit], [SetLineDashPattern],
//     [SetRenderingIntent], [SetTransformationMatrix]
//   - colour: [SetFillColor], [SetOutlineColor]
//   - paths: [DrawLine], [DrawPolygon]
//   - text: [StartTextSection], [EndTextSection], [SetFont],
//     [SetBuiltinFont], [SetTextCursor], [SetTextMatrix], [SetLineHeight],
//     [SetWordSpacing], [SetCharacterSpacing], [SetHorizontalScaling],
//     [SetTextRenderingMode], [SetTextRise], [AddLineBreak], [ShowText]
//   - resources and marked content: [BeginLayer], [EndLayer], [UseXObject],
//     [BeginMarkedContent], [BeginMarkedContentWithProperties],
//     [DefineMarkedContentPoint], [EndMarkedContent],
//     [BeginCompatibilitySection], [EndCompatibilitySection], [Unknown]
package ops

import (
	"seehuhn.de/go/pdfops/font/standard"
	"seehuhn.de/go/pdfops/graphics/color"
	"seehuhn.de/go/pdfops/object"
	"seehuhn.de/go/pdfops/transform"
	"seehuhn.de/go/pdfops/units"
)

// Op is a single operation on a page.
type Op interface {
	isOp()
}

// SaveGraphicsState pushes a copy of the graphics state onto the stack.
// This corresponds to the PDF operator "q".
type SaveGraphicsState struct{}

// RestoreGraphicsState restores the most recently saved graphics state.
// This corresponds to the PDF operator "Q".
type RestoreGraphicsState struct{}

// LoadGraphicsState applies the parameters from an extended graphics state
// dictionary.  This corresponds to the PDF operator "gs".
type LoadGraphicsState struct {
	GS ExtGStateID
}

// SetOutlineThickness sets the line width.
type SetOutlineThickness struct {
	Width units.Pt
}

// SetLineCapStyle sets the shape used at the ends of open subpaths.
type SetLineCapStyle struct {
	Cap LineCapStyle
}

// SetLineJoinStyle sets the shape used at the corners of paths.
type SetLineJoinStyle struct {
	Join LineJoinStyle
}

// SetMiterLimit sets the maximum ratio of miter length to line width.
type SetMiterLimit struct {
	Limit float64
}

// SetLineDashPattern sets the dash pattern for stroking.
type SetLineDashPattern struct {
	Dash LineDashPattern
}

// SetRenderingIntent selects the colour rendering intent.
type SetRenderingIntent struct {
	Intent RenderingIntent
}

// SetTransformationMatrix concatenates a matrix to the current
// transformation matrix.  This corresponds to the PDF operator "cm".
type SetTransformationMatrix struct {
	Matrix transform.CurTransMat
}

// SetFillColor sets the colour used for filling paths and for text.
type SetFillColor struct {
	Color color.Color
}

// SetOutlineColor sets the colour used for stroking.
type SetOutlineColor struct {
	Color color.Color
}

// DrawLine draws a (possibly closed) line using the current outline
// settings.
type DrawLine struct {
	Line Line
}

// DrawPolygon fills, strokes or clips a shape consisting of one or more
// closed rings.
type DrawPolygon struct {
	Polygon Polygon
}

// StartTextSection begins a text object ("BT").
// Text sections cannot be nested.
type StartTextSection struct{}

// EndTextSection ends a text object ("ET").
type EndTextSection struct{}

// SetFont selects an embedded font and its size.
type SetFont struct {
	Font FontID
	Size units.Pt
}

// SetBuiltinFont selects one of the 14 standard fonts and its size.
type SetBuiltinFont struct {
	Font standard.Font
	Size units.Pt
}

// SetTextCursor moves to the start of the next line, offset from the start
// of the current line by Pos.  This corresponds to the PDF operator "Td".
type SetTextCursor struct {
	Pos Point
}

// SetTextMatrix replaces the text matrix and the text line matrix.
type SetTextMatrix struct {
	Matrix transform.TextMatrix
}

// SetLineHeight sets the text leading, used by [AddLineBreak].
type SetLineHeight struct {
	Height units.Pt
}

// SetWordSpacing sets the extra space added after each space character.
type SetWordSpacing struct {
	Spacing units.Pt
}

// SetCharacterSpacing sets the extra space added after each glyph.
type SetCharacterSpacing struct {
	Spacing units.Pt
}

// SetHorizontalScaling sets the horizontal scaling of text, in percent.
type SetHorizontalScaling struct {
	Percent float64
}

// SetTextRenderingMode determines whether text is filled, stroked, used
// for clipping, or a combination of these.
type SetTextRenderingMode struct {
	Mode TextRenderingMode
}

// SetTextRise moves the baseline up (or down, for negative values).
type SetTextRise struct {
	Rise units.Pt
}

// AddLineBreak moves to the start of the next line ("T*").
type AddLineBreak struct{}

// ShowText shows a sequence of text items using the current font.
type ShowText struct {
	Items []TextItem
}

// BeginLayer starts content which belongs to an optional content group.
type BeginLayer struct {
	Layer LayerID
}

// EndLayer ends the content started by the most recent [BeginLayer].
type EndLayer struct{}

// UseXObject draws an external object (an image or a form).
type UseXObject struct {
	XObject   XObjectID
	Transform XObjectTransform
}

// BeginMarkedContent starts a marked-content sequence ("BMC").
type BeginMarkedContent struct {
	Tag object.Name
}

// BeginMarkedContentWithProperties starts a marked-content sequence with
// an associated property list ("BDC").  Properties is either a name
// referring to the Properties resource dictionary, or an inline dictionary.
type BeginMarkedContentWithProperties struct {
	Tag        object.Name
	Properties object.Object
}

// DefineMarkedContentPoint marks a single point in the content stream.
// If Properties is nil, this corresponds to "MP", otherwise to "DP".
type DefineMarkedContentPoint struct {
	Tag        object.Name
	Properties object.Object
}

// EndMarkedContent ends a marked-content sequence ("EMC").
type EndMarkedContent struct{}

// BeginCompatibilitySection starts a section in which unknown operators
// are ignored by viewers ("BX").
type BeginCompatibilitySection struct{}

// EndCompatibilitySection ends a compatibility section ("EX").
type EndCompatibilitySection struct{}

// Unknown is an operator which has no dedicated representation.
// The decoder uses this to preserve content it cannot interpret.
type Unknown struct {
	Key      string
	Operands []object.Object
}

func (SaveGraphicsState) isOp()                {}
func (RestoreGraphicsState) isOp()             {}
func (LoadGraphicsState) isOp()                {}
func (SetOutlineThickness) isOp()              {}
func (SetLineCapStyle) isOp()                  {}
func (SetLineJoinStyle) isOp()                 {}
func (SetMiterLimit) isOp()                    {}
func (SetLineDashPattern) isOp()               {}
func (SetRenderingIntent) isOp()               {}
func (SetTransformationMatrix) isOp()          {}
func (SetFillColor) isOp()                     {}
func (SetOutlineColor) isOp()                  {}
func (DrawLine) isOp()                         {}
func (DrawPolygon) isOp()                      {}
func (StartTextSection) isOp()                 {}
func (EndTextSection) isOp()                   {}
func (SetFont) isOp()                          {}
func (SetBuiltinFont) isOp()                   {}
func (SetTextCursor) isOp()                    {}
func (SetTextMatrix) isOp()                    {}
func (SetLineHeight) isOp()                    {}
func (SetWordSpacing) isOp()                   {}
func (SetCharacterSpacing) isOp()              {}
func (SetHorizontalScaling) isOp()             {}
func (SetTextRenderingMode) isOp()             {}
func (SetTextRise) isOp()                      {}
func (AddLineBreak) isOp()                     {}
func (ShowText) isOp()                         {}
func (BeginLayer) isOp()                       {}
func (EndLayer) isOp()                         {}
func (UseXObject) isOp()                       {}
func (BeginMarkedContent) isOp()               {}
func (BeginMarkedContentWithProperties) isOp() {}
func (DefineMarkedContentPoint) isOp()         {}
func (EndMarkedContent) isOp()                 {}
func (BeginCompatibilitySection) isOp()        {}
func (EndCompatibilitySection) isOp()          {}
func (Unknown) isOp()                          {}
