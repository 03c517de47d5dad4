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

// Package vm implements the PAL machine, a stack-based virtual machine for
// the pseudo-assembly object code emitted by compilers for block-structured
// source languages.
//
// The machine uses a tagged architecture: every location in the data store
// carries a type (bool, int, real, string or undef) alongside its value, and
// each operation checks the tags of its operands at run time. Variables are
// addressed as a ⟨level difference, displacement⟩ pair resolved by walking
// static links, so the object code never sees absolute frame layouts.
//
// Instruction set:
//
//	MST  L  0    mark the stack: push a 4-cell frame header
//	CAL  M  A    call; M parameters already pushed, jump to A
//	INC  0  I    allocate I cells, initialized undefined
//	JIF  0  A    jump to A if the boolean on top of stack is false
//	JMP  0  A    jump to A; "JMP 0 0" terminates the program
//	LCI  0  I    load integer constant
//	LCR  0  R    load real constant
//	LCS  0  S    load string literal
//	LDA  L  D    load the absolute address of a variable
//	LDI  0  0    load the value at the address on top of stack
//	LDV  L  D    load the value of a variable
//	LDU  0  0    load an undefined value
//	OPR  0  I    execute operation I (0..31)
//	RDI  L  D    read an integer token into a variable
//	RDR  L  D    read a real token into a variable
//	STI  0  0    store top of stack - 1 at the address on top of stack
//	STO  L  D    store into a variable
//	SIG  0  I    raise signal I
//	REH  0  A    register an exception handler at address A (0 clears)
//	DBG  0  I    I=1 turns the execution trace on, otherwise off
//
// Activation records live in the data store itself. Each frame carries four
// header cells immediately below its body: the static link at B-4, the
// dynamic link at B-3, the return address at B-2 and the exception handler
// address at B-1 (0 when none is registered). SIG unwinds activation records
// along the dynamic links until a frame advertises a handler; handlers test
// the exception they caught with OPR 31 and may re-raise with SIG.
package vm
