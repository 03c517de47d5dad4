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
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/sdberthoud22/pal/internal/pi"
	"github.com/sdberthoud22/pal/vm"
)

// Load reads the object file fileName into a code store ready for vm.New.
func Load(fileName string) ([]vm.Instruction, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	code, err := Parse(fileName, bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrap(err, "load failed")
	}
	return code, nil
}

// List writes a numbered listing of the code store to w, one instruction
// per line, rendered the way it was written in object code.
func List(w io.Writer, code []vm.Instruction) error {
	ew := pi.NewErrWriter(w)
	for pc := 1; pc < len(code); pc++ {
		fmt.Fprintf(ew, "% 6d\t%v\n", pc, code[pc])
	}
	return ew.Err
}
