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

// Command pal executes PAL object code.
//
// Usage:
//
//	pal [flags] [filename]
//
// filename is the object file to load and execute; it defaults to "CODE" in
// the current directory. At most one filename may be given.
//
//	-h	print a help message
//	-l	print a numbered listing of the loaded program, then trace the
//		machine registers and the run-time stack after every executed
//		instruction
//
// The process exits 0 when the program terminates through "JMP 0 0",
// and nonzero on load errors, unhandled exceptions and fatal run-time
// errors.
//
// When standard input is a terminal, the RDI and RDR instructions prompt
// for input with a line editor; otherwise tokens are read directly from
// stdin.
package main
