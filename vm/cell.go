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
	"strconv"
	"strings"
)

// Tag identifies the type of the value held by a Cell.
type Tag uint8

// Cell tags. Every location in the data store carries one.
const (
	TagUndef Tag = iota
	TagBool
	TagInt
	TagReal
	TagString
)

var tagNames = [...]string{
	"UNDEF",
	"BOOLEAN",
	"INT",
	"REAL",
	"STRING",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "TAG(" + strconv.Itoa(int(t)) + ")"
}

// Cell is one tagged memory location. A cell holds exactly one of a boolean,
// an integer, a real or a string, or is undefined. The tag governs which
// accessor is legal: reading a cell through the wrong As method panics with a
// tag mismatch, which the Run loop turns into a fatal machine error.
//
// The zero value of Cell is an undefined cell.
type Cell struct {
	tag Tag
	b   bool
	i   int
	r   float64
	s   string
}

// Undef returns an undefined cell.
func Undef() Cell { return Cell{} }

// Bool returns a boolean cell holding b.
func Bool(b bool) Cell { return Cell{tag: TagBool, b: b} }

// Int returns an integer cell holding i.
func Int(i int) Cell { return Cell{tag: TagInt, i: i} }

// Real returns a real cell holding r.
func Real(r float64) Cell { return Cell{tag: TagReal, r: r} }

// Str returns a string cell holding s. The cell owns its text.
func Str(s string) Cell { return Cell{tag: TagString, s: s} }

// Tag returns the cell's tag.
func (c Cell) Tag() Tag { return c.tag }

func (c Cell) IsUndef() bool  { return c.tag == TagUndef }
func (c Cell) IsBool() bool   { return c.tag == TagBool }
func (c Cell) IsInt() bool    { return c.tag == TagInt }
func (c Cell) IsReal() bool   { return c.tag == TagReal }
func (c Cell) IsString() bool { return c.tag == TagString }

type tagError struct {
	want, got Tag
}

func (e *tagError) Error() string {
	return "cell tag mismatch: want " + e.want.String() + ", cell holds " + e.got.String()
}

func (c Cell) check(want Tag) {
	if c.tag != want {
		panic(&tagError{want, c.tag})
	}
}

// AsBool returns the boolean held by c. It panics if c is not a boolean cell.
func (c Cell) AsBool() bool {
	c.check(TagBool)
	return c.b
}

// AsInt returns the integer held by c. It panics if c is not an integer cell.
func (c Cell) AsInt() int {
	c.check(TagInt)
	return c.i
}

// AsReal returns the real held by c. It panics if c is not a real cell.
func (c Cell) AsReal() float64 {
	c.check(TagReal)
	return c.r
}

// AsString returns the string held by c. It panics if c is not a string cell.
func (c Cell) AsString() string {
	c.check(TagString)
	return c.s
}

// The Set methods overwrite the cell's value and retag it.

func (c *Cell) SetUndef()          { *c = Cell{} }
func (c *Cell) SetBool(b bool)     { *c = Cell{tag: TagBool, b: b} }
func (c *Cell) SetInt(i int)       { *c = Cell{tag: TagInt, i: i} }
func (c *Cell) SetReal(r float64)  { *c = Cell{tag: TagReal, r: r} }
func (c *Cell) SetString(s string) { *c = Cell{tag: TagString, s: s} }

// String renders the cell for diagnostics: the tag name padded to eight
// columns, then the value. An undefined cell renders as the bare tag.
func (c Cell) String() string {
	if c.tag == TagUndef {
		return "UNDEF"
	}
	pad := c.tag.String()
	for len(pad) < 8 {
		pad += " "
	}
	return pad + c.value()
}

// value renders the bare value without its tag.
func (c Cell) value() string {
	switch c.tag {
	case TagBool:
		return strconv.FormatBool(c.b)
	case TagInt:
		return strconv.Itoa(c.i)
	case TagReal:
		return formatReal(c.r)
	case TagString:
		return c.s
	}
	return "undef"
}

// formatReal renders a real the way it appears in object code: shortest
// round-trip form, with a forced ".0" on values that would otherwise look
// like integers.
func formatReal(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}
