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

import (
	"bufio"
	"io"
)

// tokenReader hands out whitespace-delimited tokens from the machine's
// input. RDI and RDR consume one token per execution; OPR 19 probes for the
// presence of a next token without consuming it.
type tokenReader struct {
	r *bufio.Reader
}

func newTokenReader(r io.Reader) *tokenReader {
	return &tokenReader{r: bufio.NewReader(r)}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// skipSpace consumes whitespace up to the next token. It returns io.EOF when
// the input is exhausted before one is found.
func (t *tokenReader) skipSpace() error {
	for {
		b, err := t.r.ReadByte()
		if err != nil {
			return err
		}
		if !isSpace(b) {
			t.r.UnreadByte()
			return nil
		}
	}
}

// Token returns the next whitespace-delimited token.
func (t *tokenReader) Token() (string, error) {
	if err := t.skipSpace(); err != nil {
		return "", err
	}
	var tok []byte
	for {
		b, err := t.r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if isSpace(b) {
			break
		}
		tok = append(tok, b)
	}
	return string(tok), nil
}

// EOF reports whether the input holds no further token.
func (t *tokenReader) EOF() bool {
	return t.skipSpace() != nil
}
