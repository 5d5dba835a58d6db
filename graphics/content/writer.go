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
	"bytes"
	"io"

	"seehuhn.de/go/pdfops/object"
)

// WriteOperator writes a single operator, followed by a newline, to out.
// The operands are written first, separated by single spaces.
func WriteOperator(out io.Writer, op Operator) error {
	buf := &bytes.Buffer{}
	for _, arg := range op.Args {
		buf.WriteString(object.Format(arg))
		buf.WriteByte(' ')
	}
	buf.WriteString(string(op.Name))
	buf.WriteByte('\n')
	_, err := out.Write(buf.Bytes())
	return err
}

// Append appends the operator to buf, without a trailing newline.
func Append(buf []byte, op Operator) []byte {
	for _, arg := range op.Args {
		buf = append(buf, object.Format(arg)...)
		buf = append(buf, ' ')
	}
	return append(buf, op.Name...)
}
