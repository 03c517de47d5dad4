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

package vm_test

import (
	"strings"
	"testing"

	"github.com/sdberthoud22/pal/vm"
)

func TestCellConstructors(t *testing.T) {
	tests := []struct {
		c   vm.Cell
		tag vm.Tag
	}{
		{vm.Undef(), vm.TagUndef},
		{vm.Bool(true), vm.TagBool},
		{vm.Int(42), vm.TagInt},
		{vm.Real(3.14), vm.TagReal},
		{vm.Str("hello"), vm.TagString},
	}
	for _, test := range tests {
		if test.c.Tag() != test.tag {
			t.Errorf("%v: expected tag %v, got %v", test.c, test.tag, test.c.Tag())
		}
	}
	var zero vm.Cell
	if !zero.IsUndef() {
		t.Error("the zero cell is not undefined")
	}
}

func TestCellAccessors(t *testing.T) {
	if v := vm.Bool(true).AsBool(); v != true {
		t.Errorf("AsBool: got %v", v)
	}
	if v := vm.Int(-7).AsInt(); v != -7 {
		t.Errorf("AsInt: got %v", v)
	}
	if v := vm.Real(2.5).AsReal(); v != 2.5 {
		t.Errorf("AsReal: got %v", v)
	}
	if v := vm.Str("x y").AsString(); v != "x y" {
		t.Errorf("AsString: got %v", v)
	}
}

func TestCellTagMismatchPanics(t *testing.T) {
	defer func() {
		e := recover()
		if e == nil {
			t.Fatal("expected a panic")
		}
		err, ok := e.(error)
		if !ok || !strings.Contains(err.Error(), "tag mismatch") {
			t.Fatalf("unexpected panic value: %v", e)
		}
	}()
	vm.Int(1).AsString()
}

func TestCellSettersRetag(t *testing.T) {
	c := vm.Int(1)
	c.SetString("x")
	if !c.IsString() || c.AsString() != "x" {
		t.Errorf("SetString: got %v", c)
	}
	c.SetReal(1.5)
	if !c.IsReal() || c.AsReal() != 1.5 {
		t.Errorf("SetReal: got %v", c)
	}
	c.SetBool(false)
	if !c.IsBool() || c.AsBool() != false {
		t.Errorf("SetBool: got %v", c)
	}
	c.SetInt(9)
	if !c.IsInt() || c.AsInt() != 9 {
		t.Errorf("SetInt: got %v", c)
	}
	c.SetUndef()
	if !c.IsUndef() {
		t.Errorf("SetUndef: got %v", c)
	}
}

func TestCellRender(t *testing.T) {
	tests := []struct {
		c    vm.Cell
		want string
	}{
		{vm.Undef(), "UNDEF"},
		{vm.Bool(true), "BOOLEAN true"},
		{vm.Bool(false), "BOOLEAN false"},
		{vm.Int(42), "INT     42"},
		{vm.Int(-1), "INT     -1"},
		{vm.Real(3.14), "REAL    3.14"},
		{vm.Real(1024), "REAL    1024.0"},
		{vm.Real(0.002), "REAL    0.002"},
		{vm.Str("hello"), "STRING  hello"},
	}
	for _, test := range tests {
		if got := test.c.String(); got != test.want {
			t.Errorf("expected %q, got %q", test.want, got)
		}
	}
}

func TestInstructionRender(t *testing.T) {
	tests := []struct {
		ins  vm.Instruction
		want string
	}{
		{vm.Instruction{Op: vm.OpLCI, Lev: 0, Arg: vm.Int(42)}, "LCI 0 42"},
		{vm.Instruction{Op: vm.OpLCR, Lev: 0, Arg: vm.Real(2.5)}, "LCR 0 2.5"},
		{vm.Instruction{Op: vm.OpLCS, Lev: 0, Arg: vm.Str("hi")}, "LCS 0 'hi'"},
		{vm.Instruction{Op: vm.OpLDV, Lev: 1, Arg: vm.Int(3)}, "LDV 1 3"},
	}
	for _, test := range tests {
		if got := test.ins.String(); got != test.want {
			t.Errorf("expected %q, got %q", test.want, got)
		}
	}
}
