// Command statc compiles one source file through the pipeline of
// spec.md §1 (parse -> analyze -> lower -> optimize -> emit), printing
// diagnostics to stderr.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/statlang/statc/api/options"
	"github.com/statlang/statc/catalog"
	"github.com/statlang/statc/diag"
	"github.com/statlang/statc/driver"
	"github.com/statlang/statc/ir"
	"github.com/statlang/statc/pos"
	"github.com/statlang/statc/tools/gxflag"
)

const version = "0.1.0"

func main() {
	debug := flag.Bool("d", false, "enable verbose diagnostic rendering")
	showVersion := flag.Bool("v", false, "show version")
	flag.BoolVar(debug, "debug", false, "enable verbose diagnostic rendering")
	flag.BoolVar(showVersion, "version", false, "show version")
	includePaths := gxflag.StringList("I", "add a directory to the include search path (repeatable)")
	flag.Var(&stringListAlias{includePaths}, "include", "add a directory to the include search path (repeatable)")

	flag.Parse()

	if *showVersion {
		fmt.Printf("statc version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: statc [options] <file>")
		fmt.Fprintln(os.Stderr, "\noptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}
	filename := args[0]

	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "statc: %v\n", err)
		os.Exit(1)
	}

	opts := []options.Option{
		options.WithModelName(modelNameFromFilename(filename)),
		options.WithDebug(*debug),
	}
	for _, p := range *includePaths {
		opts = append(opts, options.WithIncludePath(p))
	}
	cfg := options.New(opts...)

	out, err := driver.Compile(noParser{}, noEmitter{}, catalog.New(), cfg, filename, src)
	if err != nil {
		printErr(string(src), cfg.Debug, err)
		os.Exit(1)
	}
	fmt.Println(out)
}

// modelNameFromFilename derives the reserved model-name identifier
// (spec.md §4.5.1) from the source file's base name, stripping any
// extension -- the same convention a Stan toolchain uses to name the
// model after the file that defines it.
func modelNameFromFilename(filename string) string {
	base := filename
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '/' {
			base = base[i+1:]
			break
		}
	}
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '.' {
			return base[:i]
		}
	}
	return base
}

// printErr renders every diagnostic multierr combined into err,
// falling back to err.Error() for anything that is not a
// *diag.Diagnostic (a lowering or emission failure, for instance).
func printErr(source string, debug bool, err error) {
	for _, e := range flattenMultierr(err) {
		d, ok := e.(*diag.Diagnostic)
		if !ok {
			fmt.Fprintln(os.Stderr, e)
			continue
		}
		if debug {
			fmt.Fprint(os.Stderr, diag.Render(source, d))
			continue
		}
		fmt.Fprintln(os.Stderr, d.Error())
	}
}

// flattenMultierr unwraps the []error multierr.Combine produces,
// via the same Unwrap() []error interface errors.Join also uses, so a
// single combined error renders as one line per underlying diagnostic.
func flattenMultierr(err error) []error {
	type multiUnwrapper interface{ Unwrap() []error }
	if u, ok := err.(multiUnwrapper); ok {
		return u.Unwrap()
	}
	return []error{err}
}

// stringListAlias lets -include and gxflag's -I share one backing
// slice: gxflag.StringList already registered the flag.Value that
// owns the slice, so this second registration only needs to append to
// the same backing store under a different flag name.
type stringListAlias struct {
	list *[]string
}

func (a *stringListAlias) String() string { return "" }

func (a *stringListAlias) Set(value string) error {
	*a.list = append(*a.list, value)
	return nil
}

// noParser and noEmitter stand in for the external front-end and
// backend spec.md §1/§6 place out of this module's scope: cmd/statc
// wires driver.Compile's signature end to end, but a real lexer/parser
// and code generator are supplied by a separate project.
type noParser struct{}

func (noParser) Parse(filename string, src []byte) (*ir.Program[ir.Positioned], []*diag.Diagnostic) {
	span := pos.Span{File: filename}
	return nil, []*diag.Diagnostic{diag.New(diag.FatalInternal, span, "no parser is wired into this build of statc")}
}

type noEmitter struct{}

func (noEmitter) Emit(p *ir.Program[ir.Typed]) (string, error) {
	return "", fmt.Errorf("no emitter is wired into this build of statc")
}
