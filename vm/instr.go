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

// Instruction is one decoded object-code instruction: a function code, a
// level difference and an operand cell. The operand is a cell rather than a
// plain integer so that literal-bearing opcodes (LCI, LCR, LCS) carry their
// constant with the right tag; for every other opcode it is an integer cell.
type Instruction struct {
	Op  Opcode
	Lev int
	Arg Cell
}

// String renders the instruction the way it is written in object code.
// String operands keep their quotes.
func (ins Instruction) String() string {
	arg := ins.Arg.value()
	if ins.Arg.IsString() {
		arg = "'" + arg + "'"
	}
	return ins.Op.String() + " " + strconv.Itoa(ins.Lev) + " " + arg
}
