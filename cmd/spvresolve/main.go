// Command spvresolve resolves the identifiers of a SPIR-V module and
// prints the symbol table of every stage.
//
// Usage:
//
//	spvresolve [options] <input.spv>
//
// Examples:
//
//	spvresolve shader.spv                     # Dump every stage
//	spvresolve -stage fragment shader.spv     # Only the fragment stage
//	spvresolve -all -v shader.spv             # Report every failing stage
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gogpu/spvfront"
	"github.com/gogpu/spvfront/internal/mapfile"
	"github.com/gogpu/spvfront/internal/symdump"
	"github.com/gogpu/spvfront/resolve"
	"github.com/gogpu/spvfront/spirv"
)

var (
	stages  = flag.String("stage", "", "comma-separated execution models to resolve (default: all entry points)")
	workers = flag.Int("workers", 0, "stages resolved in parallel (default: number of CPUs)")
	all     = flag.Bool("all", false, "report every failing stage instead of the first")
	quiet   = flag.Bool("q", false, "only report errors")
	verbose = flag.Bool("v", false, "log progress to stderr")
	version = flag.Bool("version", false, "print version")
)

const spvresolveVersion = "0.1.0-dev"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("spvresolve version %s\n", spvresolveVersion)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}
	inputPath := args[0]

	opts := spvfront.DefaultOptions()
	opts.Name = inputPath
	opts.CollectAll = *all
	if *workers > 0 {
		opts.Workers = *workers
	}
	if *verbose {
		logger := log.New(os.Stderr, "spvresolve: ", 0)
		opts.Logf = logger.Printf
	}
	models, err := parseStages(*stages)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	opts.Stages = models

	f, err := mapfile.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	result, err := spvfront.Resolve(f.Bytes(), opts)
	if err != nil {
		reportError(err)
		f.Close()
		os.Exit(1)
	}
	if !*quiet {
		out := bufio.NewWriter(os.Stdout)
		symdump.Write(out, result)
		out.Flush()
	}
}

func parseStages(list string) ([]spirv.ExecutionModel, error) {
	if list == "" {
		return nil, nil
	}
	var models []spirv.ExecutionModel
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		model, ok := spirv.ParseExecutionModel(name)
		if !ok {
			return nil, fmt.Errorf("unknown execution model %q", name)
		}
		models = append(models, model)
	}
	return models, nil
}

func reportError(err error) {
	var list resolve.Errors
	if errors.As(err, &list) {
		fmt.Fprintln(os.Stderr, list.FormatAll())
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

func usage() {
	fmt.Fprintf(os.Stderr, `spvresolve - SPIR-V symbol resolver

Usage:
  spvresolve [options] <input.spv>

Options:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  spvresolve shader.spv                    Dump every stage
  spvresolve -stage fragment shader.spv    Only the fragment stage
  spvresolve -all shader.spv               Report every failing stage
`)
}
