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
	"os"

	"github.com/pkg/errors"

	"github.com/sdberthoud22/pal/internal/pi"
)

// Store capacities. Both stores are statically bounded; exceeding either is a
// fatal error, there is no reallocation.
const (
	CodeSize  = 10000 // capacity of the instruction store
	StoreSize = 10000 // capacity of the data store, in cells
)

// Instance represents a PAL machine instance. The data store holds both
// activation records and the operand stack in a single flat sequence of
// tagged cells indexed 1..StoreSize; the stack grows into unused cells above
// the current frame.
type Instance struct {
	PC int         // program counter: index of the next instruction, 0 halts
	B  int         // base of the current activation record's body
	T  int         // index of the highest live cell
	IR Instruction // the instruction being executed

	code     []Instruction
	last     int // index of the last loaded instruction
	data     []Cell
	exc      int // current exception code
	insCount int64
	trace    bool

	in   *tokenReader
	out  io.Writer
	diag io.Writer
}

// Option is a configuration function for New and SetOptions.
type Option func(*Instance) error

// Input sets the reader RDI and RDR consume tokens from. The default is
// standard input.
func Input(r io.Reader) Option {
	return func(i *Instance) error {
		i.in = newTokenReader(r)
		return nil
	}
}

// Output sets the writer program output and the execution trace go to. The
// default is standard output.
func Output(w io.Writer) Option {
	return func(i *Instance) error {
		i.out = w
		return nil
	}
}

// Diag sets the writer run-time error reports and stack dumps go to. The
// default is standard error.
func Diag(w io.Writer) Option {
	return func(i *Instance) error {
		i.diag = w
		return nil
	}
}

// Trace enables the per-instruction execution trace from the first
// instruction on. Programs can toggle it themselves with DBG.
func Trace(on bool) Option {
	return func(i *Instance) error {
		i.trace = on
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a PAL machine instance for the given code store. The code
// parameter is indexed from 1; slot 0 is the termination sentinel and its
// contents are ignored. Use asm.Load or asm.Parse to build it from object
// code.
func New(code []Instruction, opts ...Option) (*Instance, error) {
	if len(code) < 2 {
		return nil, errors.New("empty code store")
	}
	if len(code)-1 > CodeSize {
		return nil, errors.Errorf("code store overflow: %d instructions", len(code)-1)
	}
	i := &Instance{
		code: code,
		last: len(code) - 1,
		data: make([]Cell, StoreSize+1),
		exc:  ExcProgramAbort,
		out:  os.Stdout,
		diag: os.Stderr,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	if i.in == nil {
		i.in = newTokenReader(os.Stdin)
	}
	return i, nil
}

// Data returns the live cells of the data store, from cell 1 up to the top
// of stack. Value changes are reflected in the instance's store.
func (i *Instance) Data() []Cell {
	if i.T < 0 || i.T > StoreSize {
		return nil
	}
	return i.data[1 : i.T+1]
}

// Exception returns the current exception code.
func (i *Instance) Exception() int { return i.exc }

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 { return i.insCount }

// base resolves the frame base l lexical levels outward from the current
// frame by walking static links. A static link cell that is not an integer
// is a corrupted frame; the machine unwinds with a program abort.
func (i *Instance) base(l int) (int, error) {
	b := i.B
	for ; l > 0; l-- {
		link := i.data[b-4]
		if !link.IsInt() {
			return 0, i.fault(ExcProgramAbort, "static link is not an integer")
		}
		b = link.AsInt()
	}
	return b, nil
}

// DumpStack writes a diagnostic dump of the machine registers and the live
// data store to w.
func (i *Instance) DumpStack(w io.Writer) error {
	ew := pi.NewErrWriter(w)
	fmt.Fprintf(ew, "\n*** Run-time stack:\n")
	fmt.Fprintf(ew, "     Base of activation record: %d.\n", i.B)
	fmt.Fprintf(ew, "     Current top of stack: %d.\n", i.T)
	fmt.Fprintf(ew, "     Instruction register contains: '%v'.\n\n", i.IR)
	fmt.Fprintf(ew, "Contents of stack:\n")
	fmt.Fprintf(ew, "------------------\n\n")
	for k := 1; k <= i.T && k <= StoreSize; k++ {
		fmt.Fprintf(ew, "   %d: '%v'.\n", k, i.data[k])
	}
	ew.Write([]byte{'\n'})
	return ew.Err
}
