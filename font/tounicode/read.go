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

package tounicode

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/text/encoding/unicode"

	"seehuhn.de/go/postscript"
)

// ErrInvalid is wrapped by all errors returned by [Parse] for malformed
// CMap data.
var ErrInvalid = errors.New("invalid ToUnicode CMap")

// ParseError describes a problem in the text of a ToUnicode CMap.
type ParseError struct {
	// Code is the source code of the offending mapping, or nil if the
	// problem is not tied to a single mapping.
	Code []byte
	Err  error
}

func (err *ParseError) Error() string {
	if err.Code == nil {
		return "tounicode: " + err.Err.Error()
	}
	return fmt.Sprintf("tounicode: <%X>: %v", err.Code, err.Err)
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

// maxRange is the largest number of codes a single bfrange entry may cover.
const maxRange = 1 << 16

// Parse reads the text of a ToUnicode CMap.
//
// The CMap program is executed by a PostScript interpreter and the
// mappings from all bfchar and bfrange blocks are collected.  Both forms
// of bfrange entries are supported.  Malformed programs, destinations
// which are not UTF-16 strings, and bfrange arrays whose length does not
// match the code range are errors.
func Parse(text []byte) (*CMap, error) {
	raw, err := postscript.ReadCMap(bytes.NewReader(text))
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("%w: %w", ErrInvalid, err)}
	}
	if tp, ok := raw["CMapType"].(postscript.Integer); ok && tp != 0 && tp != 2 {
		return nil, invalid(nil, "invalid CMapType %d", tp)
	}
	codeMap, ok := raw["CodeMap"].(*postscript.CMapInfo)
	if !ok {
		return nil, invalid(nil, "missing code map")
	}

	res := &CMap{
		codes: make(map[uint32][]rune),
	}
	if name, ok := raw["CMapName"].(postscript.Name); ok {
		res.Name = string(name)
	}

	for _, entry := range codeMap.BfChars {
		code, err := codeValue(entry.Src)
		if err != nil {
			return nil, err
		}
		dst, ok := entry.Dst.(postscript.String)
		if !ok {
			// glyph names as destinations carry no Unicode value
			continue
		}
		text, err := decodeUTF16(entry.Src, dst)
		if err != nil {
			return nil, err
		}
		res.codes[code] = []rune(text)
	}

	for _, entry := range codeMap.BfRanges {
		lo, err := codeValue(entry.Low)
		if err != nil {
			return nil, err
		}
		hi, err := codeValue(entry.High)
		if err != nil {
			return nil, err
		}
		if hi < lo || hi-lo >= maxRange {
			return nil, invalid(entry.Low, "invalid bfrange <%X> <%X>", entry.Low, entry.High)
		}
		n := int(hi-lo) + 1

		switch dst := entry.Dst.(type) {
		case postscript.Array:
			if len(dst) != n {
				return nil, invalid(entry.Low,
					"bfrange array length mismatch: expected %d but got %d",
					n, len(dst))
			}
			for i, elem := range dst {
				s, ok := elem.(postscript.String)
				if !ok {
					return nil, invalid(entry.Low, "unexpected %T in bfrange array", elem)
				}
				text, err := decodeUTF16(entry.Low, s)
				if err != nil {
					return nil, err
				}
				res.codes[lo+uint32(i)] = []rune(text)
			}
		case postscript.String:
			if len(dst) < 2 {
				return nil, invalid(entry.Low, "malformed UTF-16 value <%X>", []byte(dst))
			}
			for i := range n {
				val := bytes.Clone(dst)
				incrementLast(val, i)
				text, err := decodeUTF16(entry.Low, val)
				if err != nil {
					return nil, err
				}
				res.codes[lo+uint32(i)] = []rune(text)
			}
		default:
			return nil, invalid(entry.Low, "unexpected %T in bfrange", dst)
		}
	}

	return res, nil
}

// incrementLast adds delta to the final UTF-16 code unit of val.
func incrementLast(val []byte, delta int) {
	k := len(val) - 2
	x := uint16(val[k])<<8 | uint16(val[k+1])
	x += uint16(delta)
	val[k] = byte(x >> 8)
	val[k+1] = byte(x)
}

// codeValue interprets src as a character code of one to four bytes.
func codeValue(src []byte) (uint32, error) {
	if len(src) == 0 || len(src) > 4 {
		return 0, invalid(src, "invalid character code")
	}
	var code uint32
	for _, b := range src {
		code = code<<8 | uint32(b)
	}
	return code, nil
}

var utf16Decoder = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// decodeUTF16 decodes the destination string of the mapping for src.
func decodeUTF16(src, data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", invalid(src, "odd length UTF-16 value <%X>", data)
	}
	text, err := utf16Decoder.NewDecoder().Bytes(data)
	if err != nil {
		return "", invalid(src, "%v", err)
	}
	return string(text), nil
}

func invalid(src []byte, format string, args ...any) error {
	return &ParseError{
		Code: src,
		Err:  fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...),
	}
}
