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

package asm

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sdberthoud22/pal/vm"
)

// Parse reads textual object code from r, one instruction per line, and
// returns a populated code store ready for vm.New. Slot 0 of the returned
// slice is the termination sentinel; instructions occupy 1..n.
//
// The name parameter is used in error messages only; if r is a file, it
// should be the file name. Any parse error is fatal and aborts the load.
func Parse(name string, r io.Reader) ([]vm.Instruction, error) {
	code := make([]vm.Instruction, 1, 128)
	s := bufio.NewScanner(r)
	for ln := 1; s.Scan(); ln++ {
		if len(code) > vm.CodeSize {
			return nil, errors.Errorf("%s:%d: too many instructions, code store full", name, ln)
		}
		ins, err := parseLine(s.Text())
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", name, ln)
		}
		code = append(code, ins)
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "%s: read failed", name)
	}
	return code, nil
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\v', '\f', '\r', '\n':
		return true
	}
	return false
}

// parseLine decodes a single object-code line. The line holds three
// whitespace-separated fields - mnemonic, level, operand - and anything
// after the operand is comment. The operand field keeps the type the opcode
// implies: a quoted literal for LCS, a real for LCR, an integer otherwise.
func parseLine(line string) (vm.Instruction, error) {
	var ins vm.Instruction

	tokens := strings.Fields(line)
	if len(tokens) < 3 {
		return ins, errors.Errorf("instruction malformed: %q", line)
	}
	op, ok := vm.Lookup(strings.ToUpper(tokens[0]))
	if !ok {
		return ins, errors.Errorf("illegal instruction: %s", tokens[0])
	}
	lev, err := strconv.Atoi(tokens[1])
	if err != nil {
		return ins, errors.Errorf("level is not an integer: %s", tokens[1])
	}
	ins.Op, ins.Lev = op, lev

	switch op {
	case vm.OpLCR:
		v, err := strconv.ParseFloat(tokens[2], 64)
		if err != nil {
			return ins, errors.Errorf("malformed real constant: %s", tokens[2])
		}
		ins.Arg = vm.Real(v)
	case vm.OpLCS:
		s, err := stringOperand(line)
		if err != nil {
			return ins, err
		}
		ins.Arg = vm.Str(s)
	default:
		v, err := strconv.Atoi(tokens[2])
		if err != nil {
			return ins, errors.Errorf("operand is not an integer: %s", tokens[2])
		}
		ins.Arg = vm.Int(v)
	}
	return ins, nil
}

// stringOperand extracts the quoted literal of an LCS line. The operand is
// located in the raw line by skipping the first two whitespace-separated
// fields, so the quotes may enclose any text short of a quote character;
// there is no escape for embedded quotes. A zero-length body or a missing
// closing quote is an error.
func stringOperand(line string) (string, error) {
	pos := 0
	for pos < len(line) && isSpace(line[pos]) {
		pos++
	}
	for f := 0; f < 2; f++ {
		for pos < len(line) && !isSpace(line[pos]) {
			pos++
		}
		for pos < len(line) && isSpace(line[pos]) {
			pos++
		}
	}
	if pos >= len(line) || line[pos] != '\'' {
		return "", errors.Errorf("malformed string: %q", line)
	}
	pos++
	end := strings.IndexByte(line[pos:], '\'')
	if end <= 0 {
		return "", errors.Errorf("malformed string: %q", line)
	}
	return line[pos : pos+end], nil
}
