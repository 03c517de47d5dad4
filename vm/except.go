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

	"github.com/pkg/errors"
)

// Predefined exception codes. SIG 0 0 re-raises by leaving the current code
// in place; the others name the conditions the machine itself can raise.
const (
	ExcReRaise      = 0 // re-raise the currently active exception
	ExcProgramAbort = 1 // program abort
	ExcNoReturn     = 2 // no return value generated in a function
	ExcInputError   = 3 // type mismatch in input
	ExcEndError     = 4 // read past end of input

	// Reserved codes. Declared for object programs to raise; the machine
	// itself never does.
	ExcAbortProgram = 5
	ExcOther        = 6
)

// errUnwound is the sentinel returned once control has been transferred to
// an exception handler. The run loop resumes execution when it sees it.
var errUnwound = errors.New("unwound to exception handler")

// fault reports a recoverable run-time error: it writes a diagnostic and a
// stack dump, sets the current exception and unwinds. The returned error is
// errUnwound when a handler took over, or a fatal error otherwise.
func (i *Instance) fault(exc int, format string, args ...interface{}) error {
	fmt.Fprintf(i.diag, "*** Run-time error: %s.\n", fmt.Sprintf(format, args...))
	fmt.Fprintf(i.diag, "     At address: %d.\n", i.PC-1)
	i.DumpStack(i.diag)
	if exc != ExcReRaise {
		i.exc = exc
	}
	return i.unwind()
}

// fatalf reports an unrecoverable run-time error. The dump goes to the
// diagnostic writer and the returned error terminates the run.
func (i *Instance) fatalf(format string, args ...interface{}) error {
	fmt.Fprintf(i.diag, "*** FATAL Run-time error: %s.\n", fmt.Sprintf(format, args...))
	fmt.Fprintf(i.diag, "     At address: %d.\n", i.PC-1)
	i.DumpStack(i.diag)
	return errors.Errorf(format, args...)
}

// unwind discards activation records along the dynamic chain until a frame
// advertises a live handler, then commits the handler's PC, base and top of
// stack. The current exception code must already be set.
//
// A handler slot that is not an integer, a handler address that is not
// strictly between 0 and the last instruction's index, a corrupted return
// frame and running out of frames are all fatal.
func (i *Instance) unwind() error {
	b, t := i.B, i.T
	for {
		if i.trace {
			io.WriteString(i.out, "Unwinding\n")
		}
		if b-4 < 1 || b-1 > StoreSize {
			return i.fatalUnwind("no activation record to unwind")
		}
		h := i.data[b-1]
		if !h.IsInt() {
			return i.fatalUnwind("exception handler address has the wrong type")
		}
		switch a := h.AsInt(); {
		case a == 0:
			// no handler in this frame, discard it
			t = b - 5
			if t+3 < 1 {
				return i.fatalUnwind("no activation record to unwind")
			}
			rp, dl := i.data[t+3], i.data[t+2]
			if !rp.IsInt() || !dl.IsInt() {
				return i.fatalUnwind("corrupted activation record during unwind")
			}
			b = dl.AsInt()
			if b == 0 {
				return i.fatalUnwind("exception never handled")
			}
		case a > 0 && a < i.last:
			i.PC, i.B, i.T = a, b, t
			if i.trace {
				io.WriteString(i.out, "Exception handler found\n")
				i.DumpStack(i.out)
			}
			return errUnwound
		default:
			return i.fatalUnwind("exception handler address is invalid")
		}
	}
}

// fatalUnwind is fatalf without the stack dump: unwind is reached either
// from fault, which has already dumped the faulting state, or from SIG,
// which raises without a dump.
func (i *Instance) fatalUnwind(msg string) error {
	fmt.Fprintf(i.diag, "*** FATAL Run-time error: %s.\n", msg)
	return errors.New(msg)
}
