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
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Run starts execution of the machine at instruction 1 and runs until the
// program counter reaches 0. "JMP 0 0" is the only normal termination path
// and yields a nil error.
//
// Recoverable run-time errors (tag mismatches, divide by zero, jumps outside
// the code store) unwind the run-time stack looking for a registered
// exception handler; execution resumes there if one is found. A non-nil
// error means the machine stopped: an exception was never handled, or a
// frame header was corrupted beyond recovery.
func (i *Instance) Run() (err error) {
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				err = errors.Wrapf(e, "machine fault @pc=%d b=%d t=%d", i.PC, i.B, i.T)
			default:
				panic(e)
			}
		}
	}()

	// synthetic main frame: four header cells, all zero
	i.insCount = 0
	i.T, i.B, i.PC = 4, 5, 1
	for k := 1; k <= 4; k++ {
		i.data[k] = Int(0)
	}

	for i.PC != 0 {
		if i.PC < 1 || i.PC > i.last {
			return i.fatalf("program counter %d outside code", i.PC)
		}
		if i.trace {
			fmt.Fprintf(i.out, "\nInstruction at %d: %v\n", i.PC, i.code[i.PC])
		}
		i.IR = i.code[i.PC]
		i.PC++
		err := i.step()
		if err != nil && err != errUnwound {
			return err
		}
		i.insCount++
		if i.trace {
			i.DumpStack(i.out)
		}
	}
	return nil
}

// push allocates one cell on top of the stack.
func (i *Instance) push(c Cell) error {
	if i.T+1 > StoreSize {
		return i.fatalf("data store overflow")
	}
	i.T++
	i.data[i.T] = c
	return nil
}

// step executes the instruction in IR. PC has already been advanced past it.
func (i *Instance) step() error {
	ins := i.IR
	switch ins.Op {
	case OpMST:
		if i.T+4 > StoreSize {
			return i.fatalf("data store overflow")
		}
		b, err := i.base(ins.Lev)
		if err != nil {
			return err
		}
		i.data[i.T+1] = Int(b)   // static link
		i.data[i.T+2] = Int(i.B) // dynamic link
		i.data[i.T+3] = Int(0)   // return address, filled by CAL
		i.data[i.T+4] = Int(0)   // exception handler
		i.T += 4

	case OpCAL:
		// Lev carries the parameter count; the parameters sit right below
		// the top of stack and become the first cells of the frame body.
		i.B = i.T - ins.Lev + 1
		i.data[i.B-2] = Int(i.PC)
		i.PC = ins.Arg.AsInt()

	case OpINC:
		n := ins.Arg.AsInt()
		if i.T+n > StoreSize {
			return i.fatalf("data store overflow")
		}
		for k := i.T + 1; k <= i.T+n; k++ {
			i.data[k] = Undef()
		}
		i.T += n

	case OpJIF:
		c := i.data[i.T]
		if !c.IsBool() {
			return i.fault(ExcProgramAbort, "JIF - top of stack is not a boolean")
		}
		// the tested boolean stays on the stack
		if !c.AsBool() {
			a := ins.Arg.AsInt()
			if a < 0 || a > i.last {
				return i.fault(ExcProgramAbort, "attempt to jump outside code")
			}
			i.PC = a
		}

	case OpJMP:
		a := ins.Arg.AsInt()
		if a < 0 || a > i.last {
			return i.fault(ExcProgramAbort, "attempt to jump outside code")
		}
		i.PC = a

	case OpLCI, OpLCR, OpLCS:
		return i.push(ins.Arg)

	case OpLDA:
		b, err := i.base(ins.Lev)
		if err != nil {
			return err
		}
		return i.push(Int(b + ins.Arg.AsInt()))

	case OpLDI:
		c := i.data[i.T]
		if !c.IsInt() {
			return i.fault(ExcProgramAbort, "LDI - top of stack is not an address")
		}
		a := c.AsInt()
		if a < 1 || a > StoreSize {
			return i.fault(ExcProgramAbort, "address %d outside data store", a)
		}
		i.data[i.T] = i.data[a]

	case OpLDV:
		b, err := i.base(ins.Lev)
		if err != nil {
			return err
		}
		a := b + ins.Arg.AsInt()
		if a < 1 || a > StoreSize {
			return i.fault(ExcProgramAbort, "address %d outside data store", a)
		}
		return i.push(i.data[a])

	case OpLDU:
		return i.push(Undef())

	case OpRDI:
		return i.readInto(ins, TagInt)

	case OpRDR:
		return i.readInto(ins, TagReal)

	case OpSTI:
		c := i.data[i.T]
		if !c.IsInt() {
			return i.fault(ExcProgramAbort, "STI - top of stack is not an address")
		}
		a := c.AsInt()
		if a < 1 || a > StoreSize {
			return i.fault(ExcProgramAbort, "address %d outside data store", a)
		}
		i.data[a] = i.data[i.T-1]
		i.T -= 2

	case OpSTO:
		b, err := i.base(ins.Lev)
		if err != nil {
			return err
		}
		a := b + ins.Arg.AsInt()
		if a < 1 || a > StoreSize {
			return i.fault(ExcProgramAbort, "address %d outside data store", a)
		}
		i.data[a] = i.data[i.T]
		i.T--

	case OpSIG:
		// zero re-raises: the current exception stays as it is and, per the
		// reference semantics, no unwinding happens either
		if n := ins.Arg.AsInt(); n != 0 {
			i.exc = n
			return i.unwind()
		}

	case OpREH:
		i.data[i.B-1] = Int(ins.Arg.AsInt())

	case OpDBG:
		i.trace = ins.Arg.AsInt() == 1

	case OpOPR:
		return i.operate(ins.Arg.AsInt())
	}
	return nil
}

// readInto reads one input token into the variable at level difference
// ins.Lev, displacement ins.Arg, tagging it int or real. End of input raises the end error, an unparseable
// token the input error; both are catchable by a registered handler.
func (i *Instance) readInto(ins Instruction, tag Tag) error {
	b, err := i.base(ins.Lev)
	if err != nil {
		return err
	}
	a := b + ins.Arg.AsInt()
	if a < 1 || a > StoreSize {
		return i.fault(ExcProgramAbort, "address %d outside data store", a)
	}
	tok, err := i.in.Token()
	if err == io.EOF {
		return i.fault(ExcEndError, "attempt to read past end of input")
	}
	if err != nil {
		return errors.Wrap(err, "input read failed")
	}
	if tag == TagInt {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return i.fault(ExcInputError, "type mis-match in input: %q is not an integer", tok)
		}
		i.data[a] = Int(v)
		return nil
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return i.fault(ExcInputError, "type mis-match in input: %q is not a number", tok)
	}
	i.data[a] = Real(v)
	return nil
}
