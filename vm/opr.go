// This file is part of pal - https://github.com/sdberthoud22/pal
//
// Copyright 2020 Steven Berthoud
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// relation evaluates comparison operator k (10..15) against a three-way
// comparison result r (-1, 0 or 1).
func relation(k, r int) bool {
	switch k {
	case 10:
		return r == 0
	case 11:
		return r != 0
	case 12:
		return r < 0
	case 13:
		return r >= 0
	case 14:
		return r > 0
	}
	return r <= 0 // 15
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpReal(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpBool(a, b bool) int {
	// false orders before true
	var x, y int
	if a {
		x = 1
	}
	if b {
		y = 1
	}
	return cmpInt(x, y)
}

// write sends s to program output. Output errors are not recoverable by the
// object program.
func (i *Instance) write(s string) error {
	if _, err := io.WriteString(i.out, s); err != nil {
		return errors.Wrap(err, "write failed")
	}
	return nil
}

// operate executes OPR sub-operation k. Operands are taken from the top of
// the stack and replaced by the result.
func (i *Instance) operate(k int) error {
	switch k {
	case 0: // procedure return
		return i.ret(false)

	case 1: // function return
		return i.ret(true)

	case 2: // negate
		c := &i.data[i.T]
		switch {
		case c.IsInt():
			c.SetInt(-c.AsInt())
		case c.IsReal():
			c.SetReal(-c.AsReal())
		default:
			return i.fault(ExcProgramAbort, "cannot negate a boolean or string value")
		}

	case 3, 4, 5, 6: // + - * /
		i.T--
		x, y := &i.data[i.T], i.data[i.T+1]
		if x.Tag() != y.Tag() {
			return i.fault(ExcProgramAbort, "operands must be of the same type")
		}
		switch x.Tag() {
		case TagInt:
			a, b := x.AsInt(), y.AsInt()
			switch k {
			case 3:
				x.SetInt(a + b)
			case 4:
				x.SetInt(a - b)
			case 5:
				x.SetInt(a * b)
			case 6:
				if b == 0 {
					return i.fault(ExcProgramAbort, "divide by integer 0")
				}
				x.SetInt(a / b)
			}
		case TagReal:
			a, b := x.AsReal(), y.AsReal()
			switch k {
			case 3:
				x.SetReal(a + b)
			case 4:
				x.SetReal(a - b)
			case 5:
				x.SetReal(a * b)
			case 6:
				if b == 0 {
					return i.fault(ExcProgramAbort, "divide by floating point 0.0")
				}
				x.SetReal(a / b)
			}
		default:
			return i.fault(ExcProgramAbort, "operands must be integer or real")
		}

	case 7: // exponentiation
		i.T--
		e := i.data[i.T+1]
		if !e.IsInt() {
			return i.fault(ExcProgramAbort, "exponent must be an integer")
		}
		n := e.AsInt()
		if n < 0 {
			return i.fault(ExcProgramAbort, "exponent must not be negative")
		}
		x := &i.data[i.T]
		switch x.Tag() {
		case TagInt:
			b := x.AsInt()
			v := b
			if n == 0 {
				v = 1
			} else {
				for j := 1; j < n; j++ {
					v *= b
				}
			}
			x.SetInt(v)
		case TagReal:
			b := x.AsReal()
			v := b
			if n == 0 {
				v = 1
			} else {
				for j := 1; j < n; j++ {
					v *= b
				}
			}
			x.SetReal(v)
		default:
			return i.fault(ExcProgramAbort, "operand must be an integer or a floating point")
		}

	case 8: // string concatenation
		if !i.data[i.T].IsString() || !i.data[i.T-1].IsString() {
			return i.fault(ExcProgramAbort, "string concatenation requires string operands")
		}
		i.data[i.T-1].SetString(i.data[i.T-1].AsString() + i.data[i.T].AsString())
		i.T--

	case 9: // odd
		c := &i.data[i.T]
		if !c.IsInt() {
			return i.fault(ExcProgramAbort, "odd expects an integer value")
		}
		c.SetBool(c.AsInt()%2 == 1)

	case 10, 11, 12, 13, 14, 15: // = /= < >= > <=
		i.T--
		x, y := &i.data[i.T], i.data[i.T+1]
		if x.Tag() != y.Tag() {
			return i.fault(ExcProgramAbort, "operands must be of the same type")
		}
		var r int
		switch x.Tag() {
		case TagBool:
			r = cmpBool(x.AsBool(), y.AsBool())
		case TagInt:
			r = cmpInt(x.AsInt(), y.AsInt())
		case TagReal:
			r = cmpReal(x.AsReal(), y.AsReal())
		default:
			return i.fault(ExcProgramAbort, "operands must be integer, floating point or boolean")
		}
		x.SetBool(relation(k, r))

	case 16: // not
		c := &i.data[i.T]
		if !c.IsBool() {
			return i.fault(ExcProgramAbort, "not expects a boolean value on top of stack")
		}
		c.SetBool(!c.AsBool())

	case 17: // true
		return i.push(Bool(true))

	case 18: // false
		return i.push(Bool(false))

	case 19: // eof
		return i.push(Bool(i.in.EOF()))

	case 20: // write
		c := i.data[i.T]
		var s string
		switch c.Tag() {
		case TagInt:
			s = strconv.Itoa(c.AsInt())
		case TagReal:
			s = formatReal(c.AsReal())
		case TagString:
			s = c.AsString()
		default:
			return i.fault(ExcProgramAbort, "can only write integer, floating point and string values")
		}
		if err := i.write(s); err != nil {
			return err
		}
		i.T--

	case 21: // writeln
		return i.write("\n")

	case 22: // swap
		i.data[i.T], i.data[i.T-1] = i.data[i.T-1], i.data[i.T]

	case 23: // dup
		return i.push(i.data[i.T])

	case 24: // drop
		i.T--

	case 25: // int to real
		c := &i.data[i.T]
		if !c.IsInt() {
			return i.fault(ExcProgramAbort, "int-to-real conversion expects an integer on top of stack")
		}
		c.SetReal(float64(c.AsInt()))

	case 26: // real to int, truncating
		c := &i.data[i.T]
		if !c.IsReal() {
			return i.fault(ExcProgramAbort, "real-to-int conversion expects a real on top of stack")
		}
		c.SetInt(int(c.AsReal()))

	case 27: // int to string
		c := &i.data[i.T]
		if !c.IsInt() {
			return i.fault(ExcProgramAbort, "int-to-string conversion expects an integer on top of stack")
		}
		c.SetString(strconv.Itoa(c.AsInt()))

	case 28: // real to string
		c := &i.data[i.T]
		if !c.IsReal() {
			return i.fault(ExcProgramAbort, "real-to-string conversion expects a real on top of stack")
		}
		c.SetString(formatReal(c.AsReal()))

	case 29, 30: // and, or
		if !i.data[i.T].IsBool() || !i.data[i.T-1].IsBool() {
			return i.fault(ExcProgramAbort, "logical operators expect boolean operands")
		}
		a, b := i.data[i.T-1].AsBool(), i.data[i.T].AsBool()
		if k == 29 {
			i.data[i.T-1].SetBool(a && b)
		} else {
			i.data[i.T-1].SetBool(a || b)
		}
		i.T--

	case 31: // is(exception)
		c := &i.data[i.T]
		if !c.IsInt() {
			return i.fault(ExcProgramAbort, "is expects an integer value on top of stack")
		}
		c.SetBool(c.AsInt() == i.exc)

	default:
		return i.fault(ExcProgramAbort, "unknown operation %d", k)
	}
	return nil
}

// ret tears down the current frame. For a function return the cell on top of
// stack is carried over as the result.
func (i *Instance) ret(fn bool) error {
	var v Cell
	if fn {
		v = i.data[i.T]
	}
	t := i.B - 5
	if t+2 < 1 {
		return i.fatalf("return without an activation record")
	}
	rp, dl := i.data[t+3], i.data[t+2]
	if !rp.IsInt() || !dl.IsInt() {
		return i.fatalf("corrupted activation record on return")
	}
	i.T = t
	i.PC = rp.AsInt()
	i.B = dl.AsInt()
	if fn {
		return i.push(v)
	}
	return nil
}
