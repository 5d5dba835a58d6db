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

// Package codec converts between operation lists and PDF content streams.
//
// [Encode] writes the operations of a [ops.Page] as content stream
// operators, and [Decode] reconstructs operations from a content stream.
// Both directions use a [resource.Resource] to translate between the
// names used in the content stream and document-level resource handles.
//
// Neither direction fails on problems in its input.  Encoding always
// produces a syntactically valid content stream, and decoding returns
// everything up to the first unrecoverable error.  Problems are reported
// as a list of [Warning] values.
package codec

import (
	"context"
	"fmt"
	"log/slog"

	"seehuhn.de/go/pdfops/graphics/content"
)

// Options controls the encoder and the decoder.
// The zero value selects PDF 1.7 and exact number formatting.
type Options struct {
	// Version is the PDF version of the output file.  Operators which are
	// not available in this version cause a warning.
	Version content.Version

	// Precision, if positive, is the number of decimal digits used for
	// numbers written by the encoder.
	Precision int

	// Page is the page index recorded in warnings.
	Page int

	// Logger, if not nil, receives every warning at level Warn.
	Logger *slog.Logger
}

func (opt *Options) version() content.Version {
	if opt == nil || opt.Version == 0 {
		return content.V1_7
	}
	return opt.Version
}

// Kind classifies warnings.
type Kind int

// These are the possible kinds of warnings.
const (
	// UnbalancedSave indicates a "q" without matching "Q".
	UnbalancedSave Kind = iota + 1

	// UnbalancedRestore indicates a "Q" without matching "q".
	UnbalancedRestore

	// TextSection indicates nested, unterminated or missing text
	// sections.
	TextSection

	// MissingFontBinding indicates text shown without a font selected in
	// the current text section, or with a font which has no binding.
	MissingFontBinding

	// UnencodableText indicates characters which the current font cannot
	// show.
	UnencodableText

	// MarkedContent indicates unbalanced marked-content sequences or
	// layers.
	MarkedContent

	// ColorSpace indicates a colour which does not match its colour space,
	// or a colour space name which cannot be resolved.
	ColorSpace

	// EmptyPath indicates a path without points.
	EmptyPath

	// VersionMismatch indicates an operator which is not available in the
	// target PDF version.
	VersionMismatch

	// UnknownOperator indicates an operator which the decoder preserved
	// as [ops.Unknown].
	UnknownOperator

	// MalformedOperator indicates an operator with invalid operands.  The
	// operator is preserved as [ops.Unknown].
	MalformedOperator

	// Truncated indicates that decoding stopped at malformed data.
	Truncated
)

func (k Kind) String() string {
	switch k {
	case UnbalancedSave:
		return "unbalanced save"
	case UnbalancedRestore:
		return "unbalanced restore"
	case TextSection:
		return "text section"
	case MissingFontBinding:
		return "missing font"
	case UnencodableText:
		return "unencodable text"
	case MarkedContent:
		return "marked content"
	case ColorSpace:
		return "colour space"
	case EmptyPath:
		return "empty path"
	case VersionMismatch:
		return "version mismatch"
	case UnknownOperator:
		return "unknown operator"
	case MalformedOperator:
		return "malformed operator"
	case Truncated:
		return "truncated"
	default:
		return fmt.Sprintf("codec.Kind(%d)", int(k))
	}
}

// Severity indicates how much a warning affects the result.
type Severity int

// These are the possible severities.
const (
	// Info warnings do not change the output.
	Info Severity = iota

	// Warn warnings indicate that the output differs from the input.
	Warn

	// Error warnings indicate lost content.
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warn:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("codec.Severity(%d)", int(s))
	}
}

// Warning describes a problem found while encoding or decoding a page.
type Warning struct {
	Page int

	// Index is the index of the operation (when encoding) or of the
	// content stream operator (when decoding).
	Index int

	Kind     Kind
	Severity Severity

	// Op is the content stream operator concerned, if any.
	Op content.OpName

	Msg string
}

func (w *Warning) Error() string {
	loc := fmt.Sprintf("page %d, op %d", w.Page, w.Index)
	if w.Op != "" {
		loc += fmt.Sprintf(" (%s)", w.Op)
	}
	return loc + ": " + w.Msg
}

// warnings collects the warnings for one page.
type warnings struct {
	opt   *Options
	index int
	list  []Warning
}

func (ws *warnings) add(kind Kind, sev Severity, op content.OpName, format string, args ...any) {
	w := Warning{
		Index:    ws.index,
		Kind:     kind,
		Severity: sev,
		Op:       op,
		Msg:      fmt.Sprintf(format, args...),
	}
	if ws.opt != nil {
		w.Page = ws.opt.Page
	}
	ws.list = append(ws.list, w)

	if ws.opt != nil && ws.opt.Logger != nil {
		ws.opt.Logger.LogAttrs(context.Background(), slog.LevelWarn, w.Msg,
			slog.String("kind", kind.String()),
			slog.Int("page", w.Page),
			slog.Int("index", w.Index),
			slog.String("op", string(op)))
	}
}
