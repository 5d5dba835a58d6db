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

package content

import (
	"errors"
	"fmt"

	"seehuhn.de/go/pdfops/object"
)

// OpName is the name of a content stream operator, for example "re" or
// "Tj".
type OpName string

// PDF content stream operators.
const (
	// General Graphics State
	OpPushGraphicsState    OpName = "q"
	OpPopGraphicsState     OpName = "Q"
	OpTransform            OpName = "cm"
	OpSetLineWidth         OpName = "w"
	OpSetLineCap           OpName = "J"
	OpSetLineJoin          OpName = "j"
	OpSetMiterLimit        OpName = "M"
	OpSetLineDash          OpName = "d"
	OpSetRenderingIntent   OpName = "ri"
	OpSetFlatnessTolerance OpName = "i"
	OpSetExtGState         OpName = "gs"

	// Path Construction
	OpMoveTo    OpName = "m"
	OpLineTo    OpName = "l"
	OpCurveTo   OpName = "c"
	OpCurveToV  OpName = "v"
	OpCurveToY  OpName = "y"
	OpClosePath OpName = "h"
	OpRectangle OpName = "re"

	// Path Painting
	OpStroke                    OpName = "S"
	OpCloseAndStroke            OpName = "s"
	OpFill                      OpName = "f"
	OpFillCompat                OpName = "F"
	OpFillEvenOdd               OpName = "f*"
	OpFillAndStroke             OpName = "B"
	OpFillAndStrokeEvenOdd      OpName = "B*"
	OpCloseFillAndStroke        OpName = "b"
	OpCloseFillAndStrokeEvenOdd OpName = "b*"
	OpEndPath                   OpName = "n"

	// Clipping Paths
	OpClipNonZero OpName = "W"
	OpClipEvenOdd OpName = "W*"

	// Text Objects
	OpTextBegin OpName = "BT"
	OpTextEnd   OpName = "ET"

	// Text State
	OpTextSetCharacterSpacing  OpName = "Tc"
	OpTextSetWordSpacing       OpName = "Tw"
	OpTextSetHorizontalScaling OpName = "Tz"
	OpTextSetLeading           OpName = "TL"
	OpTextSetFont              OpName = "Tf"
	OpTextSetRenderingMode     OpName = "Tr"
	OpTextSetRise              OpName = "Ts"

	// Text Positioning
	OpTextMoveOffset           OpName = "Td"
	OpTextMoveOffsetSetLeading OpName = "TD"
	OpTextSetMatrix            OpName = "Tm"
	OpTextNextLine             OpName = "T*"

	// Text Showing
	OpTextShow                       OpName = "Tj"
	OpTextShowArray                  OpName = "TJ"
	OpTextShowMoveNextLine           OpName = "'"
	OpTextShowMoveNextLineSetSpacing OpName = "\""

	// Colour
	OpSetStrokeColorSpace OpName = "CS"
	OpSetFillColorSpace   OpName = "cs"
	OpSetStrokeColor      OpName = "SC"
	OpSetStrokeColorN     OpName = "SCN"
	OpSetFillColor        OpName = "sc"
	OpSetFillColorN       OpName = "scn"
	OpSetStrokeGray       OpName = "G"
	OpSetFillGray         OpName = "g"
	OpSetStrokeRGB        OpName = "RG"
	OpSetFillRGB          OpName = "rg"
	OpSetStrokeCMYK       OpName = "K"
	OpSetFillCMYK         OpName = "k"

	// XObjects
	OpXObject OpName = "Do"

	// Marked Content
	OpMarkedContentPoint               OpName = "MP"
	OpMarkedContentPointWithProperties OpName = "DP"
	OpBeginMarkedContent               OpName = "BMC"
	OpBeginMarkedContentWithProperties OpName = "BDC"
	OpEndMarkedContent                 OpName = "EMC"

	// Compatibility
	OpBeginCompatibility OpName = "BX"
	OpEndCompatibility   OpName = "EX"
)

// Operator is a content stream operator together with its operands.
type Operator struct {
	Name OpName
	Args []object.Object
}

func (o Operator) String() string {
	return string(Append(nil, o))
}

// Version is a version of the PDF standard.
type Version int

// PDF versions.
const (
	_ Version = iota
	V1_0
	V1_1
	V1_2
	V1_3
	V1_4
	V1_5
	V1_6
	V1_7
	V2_0
)

func (v Version) String() string {
	switch {
	case v >= V1_0 && v <= V1_7:
		return fmt.Sprintf("1.%d", v-V1_0)
	case v == V2_0:
		return "2.0"
	default:
		return fmt.Sprintf("content.Version(%d)", int(v))
	}
}

var (
	// ErrUnknown is returned when an operator is not recognized.
	ErrUnknown = errors.New("unknown operator")

	// ErrVersion is returned when an operator is only available in later
	// PDF versions.
	ErrVersion = errors.New("operator not available in PDF version")

	// ErrDeprecated is returned when an operator has been deprecated in the
	// target PDF version.
	ErrDeprecated = errors.New("deprecated operator")
)

// IsKnown reports whether name is an operator defined by the PDF standard.
func (name OpName) IsKnown() bool {
	_, ok := operators[name]
	return ok
}

// CheckVersion checks whether the operator can be used in a content stream
// for PDF version v.
func (name OpName) CheckVersion(v Version) error {
	info, ok := operators[name]
	if !ok {
		return ErrUnknown
	}
	if v < info.since {
		return fmt.Errorf("%q requires PDF %s: %w", name, info.since, ErrVersion)
	}
	if info.deprecated != 0 && v >= info.deprecated {
		return fmt.Errorf("%q in PDF %s: %w", name, v, ErrDeprecated)
	}
	return nil
}

type opInfo struct {
	since      Version
	deprecated Version
}

var operators = map[OpName]opInfo{
	OpPushGraphicsState:    {since: V1_0},
	OpPopGraphicsState:     {since: V1_0},
	OpTransform:            {since: V1_0},
	OpSetLineWidth:         {since: V1_0},
	OpSetLineCap:           {since: V1_0},
	OpSetLineJoin:          {since: V1_0},
	OpSetMiterLimit:        {since: V1_0},
	OpSetLineDash:          {since: V1_0},
	OpSetRenderingIntent:   {since: V1_1},
	OpSetFlatnessTolerance: {since: V1_0},
	OpSetExtGState:         {since: V1_2},

	OpMoveTo:    {since: V1_0},
	OpLineTo:    {since: V1_0},
	OpCurveTo:   {since: V1_0},
	OpCurveToV:  {since: V1_0},
	OpCurveToY:  {since: V1_0},
	OpClosePath: {since: V1_0},
	OpRectangle: {since: V1_0},

	OpStroke:                    {since: V1_0},
	OpCloseAndStroke:            {since: V1_0},
	OpFill:                      {since: V1_0},
	OpFillCompat:                {since: V1_0, deprecated: V2_0},
	OpFillEvenOdd:               {since: V1_0},
	OpFillAndStroke:             {since: V1_0},
	OpFillAndStrokeEvenOdd:      {since: V1_0},
	OpCloseFillAndStroke:        {since: V1_0},
	OpCloseFillAndStrokeEvenOdd: {since: V1_0},
	OpEndPath:                   {since: V1_0},

	OpClipNonZero: {since: V1_0},
	OpClipEvenOdd: {since: V1_0},

	OpTextBegin: {since: V1_0},
	OpTextEnd:   {since: V1_0},

	OpTextSetCharacterSpacing:  {since: V1_0},
	OpTextSetWordSpacing:       {since: V1_0},
	OpTextSetHorizontalScaling: {since: V1_0},
	OpTextSetLeading:           {since: V1_0},
	OpTextSetFont:              {since: V1_0},
	OpTextSetRenderingMode:     {since: V1_0},
	OpTextSetRise:              {since: V1_0},

	OpTextMoveOffset:           {since: V1_0},
	OpTextMoveOffsetSetLeading: {since: V1_0},
	OpTextSetMatrix:            {since: V1_0},
	OpTextNextLine:             {since: V1_0},

	OpTextShow:                       {since: V1_0},
	OpTextShowArray:                  {since: V1_0},
	OpTextShowMoveNextLine:           {since: V1_0},
	OpTextShowMoveNextLineSetSpacing: {since: V1_0},

	"d0": {since: V1_0},
	"d1": {since: V1_0},

	OpSetStrokeColorSpace: {since: V1_1},
	OpSetFillColorSpace:   {since: V1_1},
	OpSetStrokeColor:      {since: V1_1},
	OpSetStrokeColorN:     {since: V1_2},
	OpSetFillColor:        {since: V1_1},
	OpSetFillColorN:       {since: V1_2},
	OpSetStrokeGray:       {since: V1_0},
	OpSetFillGray:         {since: V1_0},
	OpSetStrokeRGB:        {since: V1_0},
	OpSetFillRGB:          {since: V1_0},
	OpSetStrokeCMYK:       {since: V1_0},
	OpSetFillCMYK:         {since: V1_0},

	"sh": {since: V1_3},

	"BI": {since: V1_0},
	"ID": {since: V1_0},
	"EI": {since: V1_0},

	OpXObject: {since: V1_0},

	OpMarkedContentPoint:               {since: V1_2},
	OpMarkedContentPointWithProperties: {since: V1_2},
	OpBeginMarkedContent:               {since: V1_2},
	OpBeginMarkedContentWithProperties: {since: V1_2},
	OpEndMarkedContent:                 {since: V1_2},

	OpBeginCompatibility: {since: V1_1},
	OpEndCompatibility:   {since: V1_1},
}
