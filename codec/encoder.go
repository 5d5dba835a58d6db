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
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"seehuhn.de/go/pdfops/font/standard"
	"seehuhn.de/go/pdfops/graphics/content"
	"seehuhn.de/go/pdfops/internal/float"
	"seehuhn.de/go/pdfops/object"
	"seehuhn.de/go/pdfops/ops"
	"seehuhn.de/go/pdfops/resource"
	"seehuhn.de/go/pdfops/transform"
)

// Encode converts the operations of a page into a content stream.
// The resource dictionary res may be nil, in which case every handle is
// written using its own name.
func Encode(page *ops.Page, res *resource.Resource, opt *Options) ([]byte, []Warning) {
	buf := &bytes.Buffer{}
	ws, _ := Write(buf, page, res, opt) // writes to a bytes.Buffer cannot fail
	return buf.Bytes(), ws
}

// Write writes the content stream for a page to w.
// An error is only returned if writing to w fails.
func Write(w io.Writer, page *ops.Page, res *resource.Resource, opt *Options) ([]Warning, error) {
	e := &encoder{
		out:      w,
		res:      res,
		opt:      opt,
		version:  opt.version(),
		checked:  make(map[content.OpName]bool),
		warnings: warnings{opt: opt},
	}
	e.state.fill = deviceGray
	e.state.stroke = deviceGray

	for i, op := range page.Ops {
		e.index = i
		e.encodeOp(op)
		if e.err != nil {
			return e.list, e.err
		}
	}
	e.index = len(page.Ops)
	e.finish()
	return e.list, e.err
}

type encoder struct {
	out     io.Writer
	res     *resource.Resource
	opt     *Options
	version content.Version
	err     error
	checked map[content.OpName]bool

	warnings

	state encoderState
	stack []encoderState

	inText        bool
	fontInSection bool

	// markedContent has one entry per open marked-content sequence;
	// the value is true for layers.
	markedContent []bool
}

// encoderState is the part of the graphics state the encoder tracks.
type encoderState struct {
	font textFont

	// fill and stroke identify the current colour spaces: the family name
	// for device spaces, or the resource name (with a leading slash) for
	// other spaces.
	fill, stroke string
}

// textFont describes the current font.
type textFont struct {
	set     bool
	builtin standard.Font
	binding *resource.Font
}

const deviceGray = "DeviceGray"

func (e *encoder) encodeOp(op ops.Op) {
	switch op := op.(type) {
	case ops.SaveGraphicsState:
		e.stack = append(e.stack, e.state)
		e.emit(content.OpPushGraphicsState)
	case ops.RestoreGraphicsState:
		if len(e.stack) == 0 {
			e.add(UnbalancedRestore, Error, content.OpPopGraphicsState,
				"restore without matching save, operator omitted")
			return
		}
		e.state = e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]
		e.emit(content.OpPopGraphicsState)
	case ops.LoadGraphicsState:
		e.emit(content.OpSetExtGState, e.res.ExtGStateName(op.GS))
	case ops.SetOutlineThickness:
		e.emit(content.OpSetLineWidth, e.num(float64(op.Width)))
	case ops.SetLineCapStyle:
		e.emit(content.OpSetLineCap, object.Integer(op.Cap))
	case ops.SetLineJoinStyle:
		e.emit(content.OpSetLineJoin, object.Integer(op.Join))
	case ops.SetMiterLimit:
		e.emit(content.OpSetMiterLimit, e.num(op.Limit))
	case ops.SetLineDashPattern:
		pat := make(object.Array, len(op.Dash.Pattern))
		for i, x := range op.Dash.Pattern {
			pat[i] = e.num(x)
		}
		e.emit(content.OpSetLineDash, pat, e.num(op.Dash.Offset))
	case ops.SetRenderingIntent:
		e.emit(content.OpSetRenderingIntent, object.Name(op.Intent))
	case ops.SetTransformationMatrix:
		var m transform.CurTransMat = transform.Identity{}
		if op.Matrix != nil {
			m = op.Matrix
		}
		e.emit(content.OpTransform, e.matrix(m.Matrix())...)

	case ops.SetFillColor:
		e.encodeColor(true, op.Color)
	case ops.SetOutlineColor:
		e.encodeColor(false, op.Color)

	case ops.DrawLine:
		e.encodeLine(op.Line)
	case ops.DrawPolygon:
		e.encodePolygon(op.Polygon)

	case ops.StartTextSection:
		if e.inText {
			e.add(TextSection, Warn, content.OpTextBegin,
				"nested text section, operator omitted")
			return
		}
		e.inText = true
		e.fontInSection = false
		e.emit(content.OpTextBegin)
	case ops.EndTextSection:
		if !e.inText {
			e.add(TextSection, Warn, content.OpTextEnd,
				"end of text section without start, operator omitted")
			return
		}
		e.inText = false
		e.emit(content.OpTextEnd)
	case ops.SetFont:
		e.state.font = textFont{set: true, binding: e.res.FontByID(op.Font)}
		e.fontInSection = e.inText
		e.emit(content.OpTextSetFont, e.res.FontName(op.Font), e.num(float64(op.Size)))
	case ops.SetBuiltinFont:
		e.state.font = textFont{set: true, builtin: op.Font}
		e.fontInSection = e.inText
		e.emit(content.OpTextSetFont, e.res.BuiltinFontName(op.Font), e.num(float64(op.Size)))
	case ops.SetTextCursor:
		if e.needText(content.OpTextMoveOffset) {
			e.emit(content.OpTextMoveOffset, e.num(float64(op.Pos.X)), e.num(float64(op.Pos.Y)))
		}
	case ops.SetTextMatrix:
		if op.Matrix == nil {
			e.add(MalformedOperator, Error, content.OpTextSetMatrix,
				"missing text matrix, operator omitted")
			return
		}
		if e.needText(content.OpTextSetMatrix) {
			e.emit(content.OpTextSetMatrix, e.matrix(op.Matrix.Matrix())...)
		}
	case ops.SetLineHeight:
		e.emit(content.OpTextSetLeading, e.num(float64(op.Height)))
	case ops.SetWordSpacing:
		e.emit(content.OpTextSetWordSpacing, e.num(float64(op.Spacing)))
	case ops.SetCharacterSpacing:
		e.emit(content.OpTextSetCharacterSpacing, e.num(float64(op.Spacing)))
	case ops.SetHorizontalScaling:
		e.emit(content.OpTextSetHorizontalScaling, e.num(op.Percent))
	case ops.SetTextRenderingMode:
		e.emit(content.OpTextSetRenderingMode, object.Integer(op.Mode))
	case ops.SetTextRise:
		e.emit(content.OpTextSetRise, e.num(float64(op.Rise)))
	case ops.AddLineBreak:
		if e.needText(content.OpTextNextLine) {
			e.emit(content.OpTextNextLine)
		}
	case ops.ShowText:
		e.encodeText(op.Items)

	case ops.BeginLayer:
		e.markedContent = append(e.markedContent, true)
		e.emit(content.OpBeginMarkedContentWithProperties,
			object.Name("OC"), e.res.LayerName(op.Layer))
	case ops.EndLayer:
		e.endMarkedContent(true)
	case ops.UseXObject:
		e.encodeXObject(op)
	case ops.BeginMarkedContent:
		e.markedContent = append(e.markedContent, false)
		e.emit(content.OpBeginMarkedContent, op.Tag)
	case ops.BeginMarkedContentWithProperties:
		e.markedContent = append(e.markedContent, false)
		if op.Properties == nil {
			e.emit(content.OpBeginMarkedContent, op.Tag)
		} else {
			e.emit(content.OpBeginMarkedContentWithProperties, op.Tag, op.Properties)
		}
	case ops.DefineMarkedContentPoint:
		if op.Properties == nil {
			e.emit(content.OpMarkedContentPoint, op.Tag)
		} else {
			e.emit(content.OpMarkedContentPointWithProperties, op.Tag, op.Properties)
		}
	case ops.EndMarkedContent:
		e.endMarkedContent(false)
	case ops.BeginCompatibilitySection:
		e.emit(content.OpBeginCompatibility)
	case ops.EndCompatibilitySection:
		e.emit(content.OpEndCompatibility)

	case ops.Unknown:
		e.encodeUnknown(op)

	case nil:
		e.add(MalformedOperator, Warn, "", "nil operation omitted")
	default:
		panic(fmt.Sprintf("unexpected operation type %T", op))
	}
}

// needText checks that a text positioning operator is used inside a text
// section.
func (e *encoder) needText(name content.OpName) bool {
	if !e.inText {
		e.add(TextSection, Error, name, "text operator outside text section, omitted")
		return false
	}
	return true
}

func (e *encoder) endMarkedContent(layer bool) {
	n := len(e.markedContent)
	if n == 0 {
		e.add(MarkedContent, Warn, content.OpEndMarkedContent,
			"end of marked content without start, operator omitted")
		return
	}
	if e.markedContent[n-1] != layer {
		e.add(MarkedContent, Info, content.OpEndMarkedContent,
			"end of layer does not match the innermost marked-content sequence")
	}
	e.markedContent = e.markedContent[:n-1]
	e.emit(content.OpEndMarkedContent)
}

func (e *encoder) encodeXObject(op ops.UseXObject) {
	if e.inText {
		e.add(TextSection, Error, content.OpXObject,
			"XObject inside text section, omitted")
		return
	}
	name := e.res.XObjectName(op.XObject)
	e.emit(content.OpPushGraphicsState)
	if !op.Transform.IsIdentity() {
		e.emit(content.OpTransform, e.matrix(op.Transform.Matrix())...)
	}
	e.emit(content.OpXObject, name)
	e.emit(content.OpPopGraphicsState)
}

func (e *encoder) encodeUnknown(op ops.Unknown) {
	if op.Key == "BI" {
		e.encodeInlineImage(op)
		return
	}
	if op.Key == "" {
		e.add(MalformedOperator, Error, "", "operator without name omitted")
		return
	}

	// After an uninterpreted colour operator the current colour space is
	// unknown.
	switch content.OpName(op.Key) {
	case content.OpSetFillColorSpace, content.OpSetFillColor, content.OpSetFillColorN:
		e.state.fill = ""
	case content.OpSetStrokeColorSpace, content.OpSetStrokeColor, content.OpSetStrokeColorN:
		e.state.stroke = ""
	}
	e.emit(content.OpName(op.Key), op.Operands...)
}

// encodeInlineImage writes an inline image, as returned by the scanner.
func (e *encoder) encodeInlineImage(op ops.Unknown) {
	var dict object.Dict
	var data object.String
	ok := len(op.Operands) == 2
	if ok {
		dict, ok = op.Operands[0].(object.Dict)
	}
	if ok {
		data, ok = op.Operands[1].(object.String)
	}
	if !ok {
		e.add(MalformedOperator, Error, "BI", "malformed inline image omitted")
		return
	}

	buf := &bytes.Buffer{}
	buf.WriteString("BI\n")
	keys := make([]object.Name, 0, len(dict))
	for key, val := range dict {
		if val != nil {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	for _, key := range keys {
		key.PDF(buf)
		buf.WriteByte(' ')
		dict[key].PDF(buf)
		buf.WriteByte('\n')
	}
	buf.WriteString("ID ")
	buf.Write(data)
	buf.WriteString("\nEI\n")
	e.write(buf.Bytes())
}

// finish closes all open text sections, marked-content sequences and
// saved graphics states.
func (e *encoder) finish() {
	if e.inText {
		e.add(TextSection, Warn, content.OpTextEnd, "unterminated text section closed")
		e.inText = false
		e.emit(content.OpTextEnd)
	}
	if n := len(e.markedContent); n > 0 {
		e.add(MarkedContent, Warn, content.OpEndMarkedContent,
			"%d unterminated marked-content sequences closed", n)
		for range n {
			e.emit(content.OpEndMarkedContent)
		}
		e.markedContent = nil
	}
	if n := len(e.stack); n > 0 {
		e.add(UnbalancedSave, Warn, content.OpPushGraphicsState,
			"%d saved graphics states not restored", n)
		for range n {
			e.emit(content.OpPopGraphicsState)
		}
		e.stack = nil
	}
}

// emit writes a single operator.
func (e *encoder) emit(name content.OpName, args ...object.Object) {
	if e.err != nil {
		return
	}
	if !e.checked[name] {
		e.checked[name] = true
		err := name.CheckVersion(e.version)
		if errors.Is(err, content.ErrVersion) || errors.Is(err, content.ErrDeprecated) {
			e.add(VersionMismatch, Info, name, "%v", err)
		}
	}
	e.err = content.WriteOperator(e.out, content.Operator{Name: name, Args: args})
}

func (e *encoder) write(data []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.out.Write(data)
}

// num converts a number into a PDF object, applying the configured
// precision.
func (e *encoder) num(x float64) object.Object {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		x = 0
	}
	if e.opt != nil && e.opt.Precision > 0 {
		x = float.Round(x, e.opt.Precision)
	}
	return object.Number(x)
}

func (e *encoder) matrix(m [6]float64) []object.Object {
	res := make([]object.Object, 6)
	for i, x := range m {
		res[i] = e.num(x)
	}
	return res
}
