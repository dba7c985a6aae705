// Command spvdis disassembles a SPIR-V binary into .spvasm text.
//
// Usage:
//
//	spvdis [options] <file.spv>
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/gogpu/spvfront/internal/mapfile"
	"github.com/gogpu/spvfront/internal/spvasm"
	"github.com/gogpu/spvfront/spirv"
)

var (
	names   = flag.Bool("names", false, "print ids by their OpName where available")
	indices = flag.Bool("indices", false, "prefix each instruction with its word index")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	f, err := mapfile.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	m, err := spirv.Parse(path, f.Bytes())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
		f.Close()
		os.Exit(1)
	}

	out := bufio.NewWriter(os.Stdout)
	d := spvasm.New(out)
	d.Indices = *indices
	if *names {
		d.UseNames(m)
	}
	err = d.Module(m)
	out.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "; ERROR: %s: %v\n", path, err)
		f.Close()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `spvdis - SPIR-V disassembler

Usage:
  spvdis [options] <file.spv>

Options:
`)
	flag.PrintDefaults()
}
