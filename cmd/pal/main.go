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
	"flag"
	"fmt"
	"os"

	"github.com/sdberthoud22/pal/asm"
	"github.com/sdberthoud22/pal/vm"
)

// defaultCodeFile is the object file executed when no filename is given.
const defaultCodeFile = "CODE"

var listing bool

func usage() {
	w := os.Stderr
	fmt.Fprintf(w, "Usage: %s [flags] [filename]\n", os.Args[0])
	fmt.Fprintf(w, "    where filename is the name of the PAL object file to be executed\n")
	fmt.Fprintf(w, "    (default %q).\n\n", defaultCodeFile)
	fmt.Fprintf(w, "    Valid flags are:\n")
	fmt.Fprintf(w, "        -h              Print out this help message.\n")
	fmt.Fprintf(w, "        -l              Print a listing of the loaded program and trace the\n")
	fmt.Fprintf(w, "                        machine registers and stack during execution.\n")
}

func atExit(err error) {
	if err == nil {
		return
	}
	if listing {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	os.Exit(1)
}

func main() {
	var err error

	help := flag.Bool("h", false, "print out this help message")
	flag.BoolVar(&listing, "l", false, "print a program listing and trace execution")
	flag.Usage = usage
	flag.Parse()
	if *help {
		usage()
		return
	}

	fileName := defaultCodeFile
	switch args := flag.Args(); len(args) {
	case 0:
	case 1:
		fileName = args[0]
	default:
		fmt.Fprintln(os.Stderr, "too many command line arguments provided")
		usage()
		os.Exit(1)
	}

	stdout := bufio.NewWriter(os.Stdout)
	defer func() {
		stdout.Flush()
		atExit(err)
	}()

	var code []vm.Instruction
	code, err = asm.Load(fileName)
	if err != nil {
		return
	}
	if listing {
		if err = asm.List(stdout, code); err != nil {
			return
		}
	}

	in, tearDown := stdinSource()
	if tearDown != nil {
		defer tearDown()
	}

	var i *vm.Instance
	i, err = vm.New(code, vm.Input(in), vm.Output(stdout), vm.Trace(listing))
	if err != nil {
		return
	}
	err = i.Run()
}
