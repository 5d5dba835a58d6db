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

// Args provides a scanner-style API for reading the operands of an
// operator.  After the first error, all methods return zero values; the
// error is reported by [Args.Check].
type Args struct {
	args []object.Object
	err  error
}

// NewArgs returns an operand reader for args.
func NewArgs(args []object.Object) *Args {
	return &Args{args: args}
}

func (p *Args) next() object.Object {
	if p.err != nil {
		return nil
	}
	if len(p.args) == 0 {
		p.err = errors.New("not enough arguments")
		return nil
	}
	arg := p.args[0]
	p.args = p.args[1:]
	return arg
}

// GetFloat reads a number.
func (p *Args) GetFloat() float64 {
	arg := p.next()
	if p.err != nil {
		return 0
	}
	x, ok := object.GetNumber(arg)
	if !ok {
		p.err = fmt.Errorf("expected number, got %T", arg)
	}
	return x
}

// GetFloats reads n numbers.
func (p *Args) GetFloats(n int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = p.GetFloat()
	}
	return res
}

// GetInt reads an integer.
func (p *Args) GetInt() int {
	arg := p.next()
	if p.err != nil {
		return 0
	}
	i, ok := arg.(object.Integer)
	if !ok {
		p.err = fmt.Errorf("expected integer, got %T", arg)
		return 0
	}
	return int(i)
}

// GetName reads a name.
func (p *Args) GetName() object.Name {
	arg := p.next()
	if p.err != nil {
		return ""
	}
	name, ok := arg.(object.Name)
	if !ok {
		p.err = fmt.Errorf("expected name, got %T", arg)
		return ""
	}
	return name
}

// GetString reads a string.
func (p *Args) GetString() object.String {
	arg := p.next()
	if p.err != nil {
		return nil
	}
	str, ok := arg.(object.String)
	if !ok {
		p.err = fmt.Errorf("expected string, got %T", arg)
		return nil
	}
	return str
}

// GetArray reads an array.
func (p *Args) GetArray() object.Array {
	arg := p.next()
	if p.err != nil {
		return nil
	}
	arr, ok := arg.(object.Array)
	if !ok {
		p.err = fmt.Errorf("expected array, got %T", arg)
		return nil
	}
	return arr
}

// GetObject reads an operand of any type.
func (p *Args) GetObject() object.Object {
	return p.next()
}

// Len returns the number of remaining operands.
func (p *Args) Len() int {
	return len(p.args)
}

// Check returns the first error, or an error if not all operands have been
// consumed.
func (p *Args) Check() error {
	if p.err == nil && len(p.args) > 0 {
		return errors.New("too many arguments")
	}
	return p.err
}
