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

// Package asm loads PAL object code and produces program listings.
//
// Object code is plain text, one instruction per line:
//
//	OPC  <level>  <operand>  [comment text...]
//
// The mnemonic may be written in any case. Fields are separated by one or
// more whitespace characters and anything past the operand is ignored as
// comment. The operand is an integer for every opcode except LCR, where it
// is a real number, and LCS, where it is a string literal delimited by
// single quotes:
//
//	LCS 0 'hello world'   push a string constant
//	LCR 0 2.0e-3          push a real constant
//	LCI 0 -42             push an integer constant
//
// There is no escape for a quote inside a string literal - such strings are
// not representable. Loader errors (malformed lines, unknown mnemonics,
// malformed literals, a full code store) are fatal: the machine never starts
// on a partially loaded program.
package asm
