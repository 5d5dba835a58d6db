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

// Package scanner splits a content stream into operators and their
// operands.
//
// Inline images are returned as a single pseudo-operator "BI" whose
// operands are the image dictionary and the raw image data.
package scanner

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"seehuhn.de/go/pdfops/object"
)

// A Scanner breaks a content stream into tokens.
type Scanner struct {
	data []byte
	pos  int

	args []object.Object
}

// SyntaxError describes malformed content stream data.
type SyntaxError struct {
	Offset int // byte offset of the problem
	Msg    string
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("content stream: offset %d: %s", err.Offset, err.Msg)
}

// maxDepth limits the nesting of arrays and dictionaries.
const maxDepth = 32

// New returns a new scanner which reads the content stream data.
func New(data []byte) *Scanner {
	return &Scanner{data: data}
}

// Offset returns the number of bytes consumed so far.
func (s *Scanner) Offset() int {
	return s.pos
}

// Scan returns an iterator over all operators in the content stream.
//
// The []object.Object slice passed to the yield function is nil for
// operators without operands.  It is owned by the scanner and is only
// valid until yield returns.  If yield returns an error, scanning stops
// and the error is returned.  Malformed input stops
// the scan with a [*SyntaxError]; everything before the problem has been
// passed to yield at this point.
func (s *Scanner) Scan() func(yield func(op string, args []object.Object) error) error {
	return func(yield func(string, []object.Object) error) error {
		for {
			s.skipWhiteSpace()
			start := s.pos
			obj, err := s.readObject(0)
			if err != nil {
				return err
			}
			if obj == eof {
				break
			}

			op, isOp := obj.(operator)
			if !isOp {
				s.args = append(s.args, obj)
				continue
			}
			if op == "BI" {
				if len(s.args) > 0 {
					return &SyntaxError{start, "unexpected operands before BI"}
				}
				img, err := s.readInlineImage(start)
				if err != nil {
					return err
				}
				s.args = append(s.args, img...)
			}
			args := s.args
			if len(args) == 0 {
				args = nil
			}
			err = yield(string(op), args)
			if err != nil {
				return err
			}
			s.args = s.args[:0]
		}

		if len(s.args) > 0 {
			return &SyntaxError{s.pos, "operands without operator at end of data"}
		}
		return nil
	}
}

// readObject reads the next object, including complete arrays and
// dictionaries.  Operators are returned as values of type operator.
func (s *Scanner) readObject(depth int) (object.Object, error) {
	s.skipWhiteSpace()
	start := s.pos
	tok, err := s.nextToken()
	if err != nil {
		return nil, err
	}

	var closing operator
	switch tok {
	case operator("["):
		closing = "]"
	case operator("<<"):
		closing = ">>"
	case operator("]"), operator(">>"):
		return nil, &SyntaxError{start, fmt.Sprintf("unexpected %q", tok)}
	default:
		return tok, nil
	}
	if depth >= maxDepth {
		return nil, &SyntaxError{start, "nesting too deep"}
	}

	var elems []object.Object
	for {
		s.skipWhiteSpace()
		pos := s.pos
		if s.pos >= len(s.data) {
			return nil, &SyntaxError{start, "unexpected end of data inside array or dictionary"}
		}
		if s.data[s.pos] == ']' && closing == "]" || s.hasPrefix(">>") && closing == ">>" {
			s.pos += len(closing)
			break
		}
		obj, err := s.readObject(depth + 1)
		if err != nil {
			return nil, err
		}
		if _, isOp := obj.(operator); isOp {
			return nil, &SyntaxError{pos, fmt.Sprintf("unexpected operator %q", obj)}
		}
		elems = append(elems, obj)
	}

	if closing == "]" {
		return object.Array(elems), nil
	}
	return makeDict(elems, start)
}

func makeDict(elems []object.Object, start int) (object.Dict, error) {
	if len(elems)%2 != 0 {
		return nil, &SyntaxError{start, "dictionary with odd number of elements"}
	}
	dict := object.Dict{}
	for i := 0; i < len(elems); i += 2 {
		key, ok := elems[i].(object.Name)
		if !ok {
			return nil, &SyntaxError{start, fmt.Sprintf("invalid dictionary key %T", elems[i])}
		}
		if val := elems[i+1]; val != nil {
			dict[key] = val
		}
	}
	return dict, nil
}

// readInlineImage reads the key/value pairs and the data of an inline
// image, up to and including the "EI" operator.
func (s *Scanner) readInlineImage(start int) ([]object.Object, error) {
	var kv []object.Object
	for {
		obj, err := s.readObject(1)
		if err != nil {
			return nil, err
		}
		if obj == eof {
			return nil, &SyntaxError{start, "unterminated inline image"}
		}
		if obj == operator("ID") {
			break
		}
		kv = append(kv, obj)
	}
	dict, err := makeDict(kv, start)
	if err != nil {
		return nil, err
	}

	// a single white-space character separates ID from the data
	if s.pos < len(s.data) && object.IsSpace(s.data[s.pos]) {
		s.pos++
	}
	dataStart := s.pos
	for i := dataStart; i+2 <= len(s.data); i++ {
		if s.data[i] != 'E' || s.data[i+1] != 'I' {
			continue
		}
		before := i == dataStart || object.IsSpace(s.data[i-1])
		after := i+2 == len(s.data) || object.IsSpace(s.data[i+2]) || object.IsDelimiter(s.data[i+2])
		if before && after {
			end := i
			if end > dataStart && object.IsSpace(s.data[end-1]) {
				end--
			}
			s.pos = i + 2
			return []object.Object{dict, object.String(s.data[dataStart:end])}, nil
		}
	}
	return nil, &SyntaxError{start, "inline image data without EI"}
}

func (s *Scanner) hasPrefix(prefix string) bool {
	return len(s.data)-s.pos >= len(prefix) && string(s.data[s.pos:s.pos+len(prefix)]) == prefix
}

// eof is returned by nextToken at the end of the data.
var eof = operator("")

func (s *Scanner) nextToken() (object.Object, error) {
	s.skipWhiteSpace()
	if s.pos >= len(s.data) {
		return eof, nil
	}

	start := s.pos
	c := s.data[s.pos]
	switch {
	case c == '/':
		s.pos++
		return s.readName(), nil
	case c == '(':
		s.pos++
		return s.readString(start)
	case c == '<' && s.peekByte(1) == '<':
		s.pos += 2
		return operator("<<"), nil
	case c == '<':
		s.pos++
		return s.readHexString(start)
	case c == '>' && s.peekByte(1) == '>':
		s.pos += 2
		return operator(">>"), nil
	case c == '[' || c == ']' || c == '{' || c == '}':
		s.pos++
		return operator([]byte{c}), nil
	case c == ')' || c == '>':
		return nil, &SyntaxError{start, fmt.Sprintf("unexpected %q", c)}
	}

	for s.pos < len(s.data) && isRegular(s.data[s.pos]) {
		s.pos++
	}
	word := s.data[start:s.pos]

	if x := parseNumber(word); x != nil {
		return x, nil
	}
	switch string(word) {
	case "false":
		return object.Boolean(false), nil
	case "true":
		return object.Boolean(true), nil
	case "null":
		return nil, nil
	}
	return operator(word), nil
}

func (s *Scanner) peekByte(offset int) byte {
	if s.pos+offset < len(s.data) {
		return s.data[s.pos+offset]
	}
	return 0
}

// readString reads a literal string (not including the leading
// parenthesis).
func (s *Scanner) readString(start int) (object.String, error) {
	var res []byte
	level := 1
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++
		switch c {
		case '(':
			level++
		case ')':
			level--
			if level == 0 {
				return object.String(res), nil
			}
		case '\r':
			// end-of-line markers inside strings read as a single LF
			if s.peekByte(0) == '\n' {
				s.pos++
			}
			c = '\n'
		case '\\':
			if s.pos >= len(s.data) {
				break
			}
			c = s.data[s.pos]
			s.pos++
			switch c {
			case 'n':
				c = '\n'
			case 'r':
				c = '\r'
			case 't':
				c = '\t'
			case 'b':
				c = '\b'
			case 'f':
				c = '\f'
			case '\r':
				if s.peekByte(0) == '\n' {
					s.pos++
				}
				continue
			case '\n':
				continue
			case '0', '1', '2', '3', '4', '5', '6', '7':
				oct := c - '0'
				for i := 0; i < 2 && s.pos < len(s.data); i++ {
					d := s.data[s.pos]
					if d < '0' || d > '7' {
						break
					}
					oct = oct*8 + (d - '0')
					s.pos++
				}
				c = oct
			}
		}
		res = append(res, c)
	}
	return nil, &SyntaxError{start, "unterminated string"}
}

func (s *Scanner) readHexString(start int) (object.String, error) {
	var res []byte
	var hi byte
	first := true
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++
		if c == '>' {
			if !first {
				res = append(res, hi)
			}
			return object.String(res), nil
		}
		if object.IsSpace(c) {
			continue
		}
		d := hexDigit(c)
		if d == 255 {
			return nil, &SyntaxError{s.pos - 1, fmt.Sprintf("invalid character %q in hex string", c)}
		}
		if first {
			hi = d << 4
		} else {
			res = append(res, hi|d)
		}
		first = !first
	}
	return nil, &SyntaxError{start, "unterminated hex string"}
}

// readName reads a name object (not including the leading slash).
func (s *Scanner) readName() object.Name {
	var name []byte
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if !isRegular(c) {
			break
		}
		if c == '#' && s.pos+2 < len(s.data) {
			hi, lo := hexDigit(s.data[s.pos+1]), hexDigit(s.data[s.pos+2])
			if hi != 255 && lo != 255 {
				name = append(name, hi<<4|lo)
				s.pos += 3
				continue
			}
		}
		name = append(name, c)
		s.pos++
	}
	return object.Name(name)
}

// skipWhiteSpace skips white space and comments.
func (s *Scanner) skipWhiteSpace() {
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		switch {
		case object.IsSpace(c):
			s.pos++
		case c == '%':
			for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
		default:
			return
		}
	}
}

func isRegular(c byte) bool {
	return !object.IsSpace(c) && !object.IsDelimiter(c)
}

func hexDigit(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return 255
	}
}

// parseNumber tries to interpret s as a number.
// The function returns [object.Integer] or [object.Real] in case s is a
// valid number, and nil otherwise.
func parseNumber(s []byte) object.Object {
	x, err := strconv.ParseInt(string(s), 10, 64)
	if err == nil {
		return object.Integer(x)
	}

	hasDigit := false
	for i, c := range s {
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c == '.':
		case i == 0 && (c == '+' || c == '-'):
		default:
			return nil
		}
	}
	if !hasDigit {
		return nil
	}
	y, err := strconv.ParseFloat(string(s), 64)
	if err != nil || math.IsInf(y, 0) || math.IsNaN(y) {
		return nil
	}
	return object.Real(y)
}

// operator is a PDF operator found in a content stream.
type operator string

// PDF implements the [object.Object] interface.
func (x operator) PDF(w io.Writer) error {
	_, err := w.Write([]byte(x))
	return err
}
