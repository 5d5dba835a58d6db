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
	"errors"
	"fmt"
	"slices"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfops/font/standard"
	"seehuhn.de/go/pdfops/graphics/color"
	"seehuhn.de/go/pdfops/graphics/content"
	"seehuhn.de/go/pdfops/graphics/scanner"
	"seehuhn.de/go/pdfops/object"
	"seehuhn.de/go/pdfops/ops"
	"seehuhn.de/go/pdfops/resource"
	"seehuhn.de/go/pdfops/transform"
	"seehuhn.de/go/pdfops/units"
)

// Decode reconstructs the operations of a content stream.
//
// Operators without a dedicated operation type are returned as
// [ops.Unknown].  Decoding stops at the first syntax error in the content
// stream; the operations decoded up to this point are returned, together
// with a [Truncated] warning.
func Decode(data []byte, res *resource.Resource, opt *Options) ([]ops.Op, []Warning) {
	d := &decoder{
		res:      res,
		warnings: warnings{opt: opt},
	}
	d.state.fill = colorSpace{family: color.FamilyGray}
	d.state.stroke = colorSpace{family: color.FamilyGray}

	s := scanner.New(data)
	err := s.Scan()(func(op string, args []object.Object) error {
		d.decodeOp(content.OpName(op), args)
		d.index++
		return nil
	})
	if err != nil {
		msg := err.Error()
		var syntaxErr *scanner.SyntaxError
		if errors.As(err, &syntaxErr) {
			msg = fmt.Sprintf("malformed content at byte %d: %s", syntaxErr.Offset, syntaxErr.Msg)
		}
		d.add(Truncated, Error, "", "%s", msg)
	}
	d.finish()

	return foldXObjects(d.out), d.list
}

var errNoCurrentPoint = errors.New("no current point")

type decoder struct {
	res *resource.Resource
	out []ops.Op

	warnings

	state decoderState
	stack []decoderState

	inText        bool
	markedContent []bool

	path    []subpath
	clip    content.OpName
	current ops.Point
}

// decoderState is the part of the graphics state the decoder tracks.
type decoderState struct {
	fill, stroke colorSpace
	font         decoderFont
}

type decoderFont struct {
	set     bool
	builtin standard.Font
	binding *resource.Font
}

func (d *decoder) emit(op ...ops.Op) {
	d.out = append(d.out, op...)
}

func (d *decoder) decodeOp(name content.OpName, args []object.Object) {
	if len(d.path) > 0 && !isPathOp(name) {
		d.add(MalformedOperator, Warn, name, "path construction not followed by a painting operator, path discarded")
		d.path = nil
		d.clip = ""
	}

	a := content.NewArgs(args)
	switch name {
	case content.OpPushGraphicsState:
		if d.check(name, args, a) {
			d.stack = append(d.stack, d.state)
			d.emit(ops.SaveGraphicsState{})
		}
	case content.OpPopGraphicsState:
		if d.check(name, args, a) {
			if len(d.stack) == 0 {
				d.add(UnbalancedRestore, Warn, name, "restore without matching save")
			} else {
				d.state = d.stack[len(d.stack)-1]
				d.stack = d.stack[:len(d.stack)-1]
			}
			d.emit(ops.RestoreGraphicsState{})
		}
	case content.OpSetExtGState:
		gs := a.GetName()
		if d.check(name, args, a) {
			d.emit(ops.LoadGraphicsState{GS: d.res.LookupExtGState(gs)})
		}
	case content.OpSetLineWidth:
		w := a.GetFloat()
		if d.check(name, args, a) {
			d.emit(ops.SetOutlineThickness{Width: units.Pt(w)})
		}
	case content.OpSetLineCap:
		c := a.GetInt()
		if d.checkRange(name, args, a, c, int(ops.LineCapProjectingSquare)) {
			d.emit(ops.SetLineCapStyle{Cap: ops.LineCapStyle(c)})
		}
	case content.OpSetLineJoin:
		j := a.GetInt()
		if d.checkRange(name, args, a, j, int(ops.LineJoinBevel)) {
			d.emit(ops.SetLineJoinStyle{Join: ops.LineJoinStyle(j)})
		}
	case content.OpSetMiterLimit:
		m := a.GetFloat()
		if d.check(name, args, a) {
			d.emit(ops.SetMiterLimit{Limit: m})
		}
	case content.OpSetLineDash:
		arr := a.GetArray()
		phase := a.GetFloat()
		if !d.check(name, args, a) {
			return
		}
		var pattern []float64
		for _, obj := range arr {
			x, ok := object.GetNumber(obj)
			if !ok {
				d.malformed(name, args, fmt.Errorf("invalid dash array element %s", object.Format(obj)))
				return
			}
			pattern = append(pattern, x)
		}
		d.emit(ops.SetLineDashPattern{Dash: ops.LineDashPattern{Pattern: pattern, Offset: phase}})
	case content.OpSetRenderingIntent:
		intent := a.GetName()
		if d.check(name, args, a) {
			d.emit(ops.SetRenderingIntent{Intent: ops.RenderingIntent(intent)})
		}
	case content.OpTransform:
		var m matrix.Matrix
		copy(m[:], a.GetFloats(6))
		if d.check(name, args, a) {
			d.emit(ops.SetTransformationMatrix{Matrix: transform.DecodeCTM(m)})
		}

	case content.OpMoveTo, content.OpLineTo, content.OpCurveTo, content.OpCurveToV,
		content.OpCurveToY, content.OpClosePath, content.OpRectangle:
		d.decodePathConstruction(name, args, a)
	case content.OpClipNonZero, content.OpClipEvenOdd:
		if d.check(name, args, a) {
			d.clip = name
		}
	case content.OpStroke, content.OpCloseAndStroke, content.OpFill, content.OpFillCompat,
		content.OpFillEvenOdd, content.OpFillAndStroke, content.OpFillAndStrokeEvenOdd,
		content.OpCloseFillAndStroke, content.OpCloseFillAndStrokeEvenOdd, content.OpEndPath:
		if d.check(name, args, a) {
			d.paintPath(name)
		}

	case content.OpSetFillColorSpace, content.OpSetStrokeColorSpace,
		content.OpSetFillColor, content.OpSetStrokeColor,
		content.OpSetFillColorN, content.OpSetStrokeColorN,
		content.OpSetFillGray, content.OpSetStrokeGray,
		content.OpSetFillRGB, content.OpSetStrokeRGB,
		content.OpSetFillCMYK, content.OpSetStrokeCMYK:
		d.decodeColor(name, args, a)

	case content.OpTextBegin:
		if !d.check(name, args, a) {
			return
		}
		if d.inText {
			d.add(TextSection, Warn, name, "nested text section ignored")
			return
		}
		d.inText = true
		d.emit(ops.StartTextSection{})
	case content.OpTextEnd:
		if !d.check(name, args, a) {
			return
		}
		if !d.inText {
			d.add(TextSection, Warn, name, "end of text section without start ignored")
			return
		}
		d.inText = false
		d.emit(ops.EndTextSection{})
	case content.OpTextSetCharacterSpacing, content.OpTextSetWordSpacing,
		content.OpTextSetHorizontalScaling, content.OpTextSetLeading,
		content.OpTextSetFont, content.OpTextSetRenderingMode, content.OpTextSetRise,
		content.OpTextMoveOffset, content.OpTextMoveOffsetSetLeading,
		content.OpTextSetMatrix, content.OpTextNextLine,
		content.OpTextShow, content.OpTextShowArray,
		content.OpTextShowMoveNextLine, content.OpTextShowMoveNextLineSetSpacing:
		d.decodeText(name, args, a)

	case content.OpXObject:
		xobj := a.GetName()
		if d.check(name, args, a) {
			d.emit(ops.UseXObject{XObject: d.res.LookupXObject(xobj)})
		}
	case content.OpBeginMarkedContent:
		tag := a.GetName()
		if d.check(name, args, a) {
			d.markedContent = append(d.markedContent, false)
			d.emit(ops.BeginMarkedContent{Tag: tag})
		}
	case content.OpBeginMarkedContentWithProperties:
		tag := a.GetName()
		props := a.GetObject()
		if !d.check(name, args, a) {
			return
		}
		if oc, isName := props.(object.Name); isName && tag == "OC" {
			d.markedContent = append(d.markedContent, true)
			d.emit(ops.BeginLayer{Layer: d.res.LookupLayer(oc)})
			return
		}
		d.markedContent = append(d.markedContent, false)
		d.emit(ops.BeginMarkedContentWithProperties{Tag: tag, Properties: props})
	case content.OpMarkedContentPoint:
		tag := a.GetName()
		if d.check(name, args, a) {
			d.emit(ops.DefineMarkedContentPoint{Tag: tag})
		}
	case content.OpMarkedContentPointWithProperties:
		tag := a.GetName()
		props := a.GetObject()
		if d.check(name, args, a) {
			d.emit(ops.DefineMarkedContentPoint{Tag: tag, Properties: props})
		}
	case content.OpEndMarkedContent:
		if !d.check(name, args, a) {
			return
		}
		n := len(d.markedContent)
		if n == 0 {
			d.add(MarkedContent, Warn, name, "end of marked content without start")
			d.emit(ops.EndMarkedContent{})
			return
		}
		isLayer := d.markedContent[n-1]
		d.markedContent = d.markedContent[:n-1]
		if isLayer {
			d.emit(ops.EndLayer{})
		} else {
			d.emit(ops.EndMarkedContent{})
		}
	case content.OpBeginCompatibility:
		if d.check(name, args, a) {
			d.emit(ops.BeginCompatibilitySection{})
		}
	case content.OpEndCompatibility:
		if d.check(name, args, a) {
			d.emit(ops.EndCompatibilitySection{})
		}

	default:
		if name.IsKnown() {
			d.add(UnknownOperator, Info, name, "operator preserved without interpretation")
		} else {
			d.add(UnknownOperator, Warn, name, "unknown operator preserved")
		}
		d.unknown(name, args)
	}
}

// check verifies that the operands of an operator have been read
// successfully.  Malformed operators are preserved as [ops.Unknown].
func (d *decoder) check(name content.OpName, args []object.Object, a *content.Args) bool {
	if err := a.Check(); err != nil {
		d.malformed(name, args, err)
		return false
	}
	return true
}

func (d *decoder) checkRange(name content.OpName, args []object.Object, a *content.Args, val, maxVal int) bool {
	if !d.check(name, args, a) {
		return false
	}
	if val < 0 || val > maxVal {
		d.malformed(name, args, fmt.Errorf("value %d out of range", val))
		return false
	}
	return true
}

func (d *decoder) malformed(name content.OpName, args []object.Object, err error) {
	d.add(MalformedOperator, Warn, name, "%v", err)
	d.unknown(name, args)
}

func (d *decoder) unknown(name content.OpName, args []object.Object) {
	d.emit(ops.Unknown{Key: string(name), Operands: slices.Clone(args)})
}

func (d *decoder) finish() {
	if len(d.path) > 0 {
		d.add(MalformedOperator, Warn, "", "path construction at end of content stream discarded")
		d.path = nil
	}
	if d.inText {
		d.add(TextSection, Warn, content.OpTextBegin, "unterminated text section")
	}
	if n := len(d.markedContent); n > 0 {
		d.add(MarkedContent, Warn, "", "%d unterminated marked-content sequences", n)
	}
	if n := len(d.stack); n > 0 {
		d.add(UnbalancedSave, Warn, content.OpPushGraphicsState,
			"%d saved graphics states not restored", n)
	}
}

// foldXObjects replaces the sequence "q [cm] Do Q" by a single
// [ops.UseXObject] operation with the corresponding placement.
func foldXObjects(in []ops.Op) []ops.Op {
	out := make([]ops.Op, 0, len(in))
	for i := 0; i < len(in); i++ {
		if _, isSave := in[i].(ops.SaveGraphicsState); isSave {
			j := i + 1
			m := matrix.Identity
			if j < len(in) {
				if cm, isCM := in[j].(ops.SetTransformationMatrix); isCM {
					m = cm.Matrix.Matrix()
					j++
				}
			}
			if j+1 < len(in) {
				xobj, isXObj := in[j].(ops.UseXObject)
				_, isRestore := in[j+1].(ops.RestoreGraphicsState)
				if isXObj && isRestore {
					xobj.Transform = ops.DecodeXObjectTransform(m)
					out = append(out, xobj)
					i = j + 1
					continue
				}
			}
		}
		out = append(out, in[i])
	}
	return out
}
