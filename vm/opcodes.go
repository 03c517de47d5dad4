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

import "strconv"

// Opcode is a PAL machine function code.
type Opcode uint8

// PAL machine opcodes.
const (
	OpMST Opcode = iota // mark the stack
	OpCAL               // procedure call
	OpINC               // increment top-of-stack pointer
	OpJIF               // jump if false
	OpJMP               // unconditional jump
	OpLCI               // load integer constant
	OpLCR               // load real constant
	OpLCS               // load string literal
	OpLDA               // load the absolute address of a variable
	OpLDI               // load the value stored at the address on top of stack
	OpLDV               // load the value of a variable
	OpLDU               // load an undefined value
	OpOPR               // execute operation
	OpRDI               // read a value into an integer variable
	OpRDR               // read a value into a real variable
	OpSTI               // store top of stack - 1 at the address on top of stack
	OpSTO               // store into a variable
	OpSIG               // raise signal
	OpREH               // register exception handler
	OpDBG               // turn the execution trace on (1) or off
)

var opNames = [...]string{
	"MST",
	"CAL",
	"INC",
	"JIF",
	"JMP",
	"LCI",
	"LCR",
	"LCS",
	"LDA",
	"LDI",
	"LDV",
	"LDU",
	"OPR",
	"RDI",
	"RDR",
	"STI",
	"STO",
	"SIG",
	"REH",
	"DBG",
}

var opcodeIndex = make(map[string]Opcode)

func init() {
	for i, n := range opNames {
		opcodeIndex[n] = Opcode(i)
	}
}

func (op Opcode) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "OP(" + strconv.Itoa(int(op)) + ")"
}

// Lookup returns the opcode for the given mnemonic. Mnemonics are upper case.
func Lookup(mnemonic string) (Opcode, bool) {
	op, ok := opcodeIndex[mnemonic]
	return op, ok
}
