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

package main

import (
	"bufio"
	"io"
	"os"

	"github.com/peterh/liner"
)

// stdinSource returns the reader RDI and RDR tokens come from. When standard
// input is a terminal the tokens are typed through a line editor, one line
// at a time; otherwise stdin is read as-is. The returned tearDown function,
// if not nil, must run before exit to restore the terminal.
func stdinSource() (io.Reader, func()) {
	st, err := os.Stdin.Stat()
	if err != nil || st.Mode()&os.ModeCharDevice == 0 {
		return bufio.NewReader(os.Stdin), nil
	}
	s := liner.NewLiner()
	s.SetCtrlCAborts(true)
	return &promptReader{s: s}, func() { s.Close() }
}

// promptReader adapts a liner prompt to io.Reader: each refill reads one
// line, and Ctrl-D or Ctrl-C at the prompt turns into end of input.
type promptReader struct {
	s   *liner.State
	buf []byte
	eof bool
}

func (p *promptReader) Read(b []byte) (int, error) {
	if len(p.buf) == 0 {
		if p.eof {
			return 0, io.EOF
		}
		line, err := p.s.Prompt("? ")
		if err != nil {
			p.eof = true
			return 0, io.EOF
		}
		p.buf = append([]byte(line), '\n')
	}
	n := copy(b, p.buf)
	p.buf = p.buf[n:]
	return n, nil
}
