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

package asm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sdberthoud22/pal/asm"
	"github.com/sdberthoud22/pal/vm"
)

var parseTests = [...]struct {
	name string
	line string
	ins  vm.Instruction
}{
	{"plain", "MST 0 0", vm.Instruction{Op: vm.OpMST, Lev: 0, Arg: vm.Int(0)}},
	{"lower case", "lci 0 42", vm.Instruction{Op: vm.OpLCI, Lev: 0, Arg: vm.Int(42)}},
	{"mixed case", "Jmp 0 3", vm.Instruction{Op: vm.OpJMP, Lev: 0, Arg: vm.Int(3)}},
	{"negative operand", "LCI 0 -7", vm.Instruction{Op: vm.OpLCI, Lev: 0, Arg: vm.Int(-7)}},
	{"level and displacement", "STO 1 3", vm.Instruction{Op: vm.OpSTO, Lev: 1, Arg: vm.Int(3)}},
	{"comment", "JMP 0 0 end of program", vm.Instruction{Op: vm.OpJMP, Lev: 0, Arg: vm.Int(0)}},
	{"real", "LCR 0 3.14", vm.Instruction{Op: vm.OpLCR, Lev: 0, Arg: vm.Real(3.14)}},
	{"real exponent", "LCR 0 2.0e-3", vm.Instruction{Op: vm.OpLCR, Lev: 0, Arg: vm.Real(0.002)}},
	{"string", "LCS 0 'hello'", vm.Instruction{Op: vm.OpLCS, Lev: 0, Arg: vm.Str("hello")}},
	{"string with spaces", "LCS 0 'a b  c'", vm.Instruction{Op: vm.OpLCS, Lev: 0, Arg: vm.Str("a b  c")}},
	{"string and comment", "LCS 0 'hi' a greeting", vm.Instruction{Op: vm.OpLCS, Lev: 0, Arg: vm.Str("hi")}},
	{"extra whitespace", "  LCI   0\t9", vm.Instruction{Op: vm.OpLCI, Lev: 0, Arg: vm.Int(9)}},
}

func TestParse(t *testing.T) {
	for _, test := range parseTests {
		code, err := asm.Parse(test.name, strings.NewReader(test.line))
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if len(code) != 2 {
			t.Errorf("%s: expected 1 instruction, got %d", test.name, len(code)-1)
			continue
		}
		if code[1] != test.ins {
			t.Errorf("%s: expected %v, got %v", test.name, test.ins, code[1])
		}
	}
}

var parseErrTests = [...]struct {
	name string
	line string
	msg  string
}{
	{"too few fields", "MST 0", "malformed"},
	{"unknown opcode", "XYZ 0 0", "illegal instruction"},
	{"bad level", "MST x 0", "level is not an integer"},
	{"bad operand", "LCI 0 z", "operand is not an integer"},
	{"real operand for int opcode", "LCI 0 1.5", "operand is not an integer"},
	{"bad real", "LCR 0 abc", "malformed real"},
	{"unquoted string", "LCS 0 hello", "malformed string"},
	{"empty string", "LCS 0 ''", "malformed string"},
	{"unterminated string", "LCS 0 'abc", "malformed string"},
}

func TestParseErrors(t *testing.T) {
	for _, test := range parseErrTests {
		_, err := asm.Parse(test.name, strings.NewReader(test.line))
		if err == nil {
			t.Errorf("%s: expected an error", test.name)
			continue
		}
		if !strings.Contains(err.Error(), test.msg) {
			t.Errorf("%s: error %q does not mention %q", test.name, err, test.msg)
		}
		if !strings.Contains(err.Error(), test.name+":1") {
			t.Errorf("%s: error %q does not carry the line position", test.name, err)
		}
	}
}

func TestParseProgram(t *testing.T) {
	src := "LCS 0 'hello'  push greeting\n" +
		"OPR 0 20       write it\n" +
		"OPR 0 21\n" +
		"JMP 0 0\n"
	code, err := asm.Parse("program", strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(code) != 5 {
		t.Fatalf("expected 4 instructions, got %d", len(code)-1)
	}
	if code[0] != (vm.Instruction{}) {
		t.Errorf("slot 0 is not the zero sentinel: %v", code[0])
	}
	if code[1].Arg.AsString() != "hello" {
		t.Errorf("bad string operand: %v", code[1].Arg)
	}
}

// string literals survive loading byte for byte
func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"a", "  spaced  out  ", "héllo wörld", "x\ty"} {
		code, err := asm.Parse("round trip", strings.NewReader("LCS 0 '"+s+"'"))
		if err != nil {
			t.Errorf("%q: %v", s, err)
			continue
		}
		if got := code[1].Arg.AsString(); got != s {
			t.Errorf("expected %q, got %q", s, got)
		}
	}
}

func TestParseLinePosition(t *testing.T) {
	src := "LCI 0 1\nLCI 0 2\nbogus\n"
	_, err := asm.Parse("file", strings.NewReader(src))
	if err == nil || !strings.Contains(err.Error(), "file:3") {
		t.Errorf("expected an error at file:3, got %v", err)
	}
}

func TestParseOverflow(t *testing.T) {
	var b strings.Builder
	for k := 0; k <= vm.CodeSize; k++ {
		b.WriteString("JMP 0 0\n")
	}
	_, err := asm.Parse("overflow", strings.NewReader(b.String()))
	if err == nil || !strings.Contains(err.Error(), "code store full") {
		t.Errorf("expected a code store overflow, got %v", err)
	}
}

func TestList(t *testing.T) {
	code, err := asm.Parse("list", strings.NewReader("LCI 0 3\nLCS 0 'hi'\nJMP 0 0"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := asm.List(&buf, code); err != nil {
		t.Fatal(err)
	}
	want := "     1\tLCI 0 3\n" +
		"     2\tLCS 0 'hi'\n" +
		"     3\tJMP 0 0\n"
	if got := buf.String(); got != want {
		t.Errorf("listing error: expected %q, got %q", want, got)
	}
}
