// Package driver implements the top-level compilation pipeline of
// spec.md §1: parse -> analyze -> lower -> optimize -> emit, returning
// every diagnostic collected along the way as one combined error.
package driver

import (
	"go.uber.org/multierr"

	"github.com/statlang/statc/analyzer"
	"github.com/statlang/statc/api/options"
	"github.com/statlang/statc/catalog"
	"github.com/statlang/statc/emitter"
	"github.com/statlang/statc/lower"
	"github.com/statlang/statc/optimizer"
	"github.com/statlang/statc/parser"
)

// Compile wires parser.Parser -> analyzer.Analyze -> lower.ToMIR ->
// optimizer.Optimize -> emitter.Emitter, per spec.md §6. filename and
// src are handed to p unchanged; cfg.ModelName is the identifier the
// analyzer reserves against spec.md §4.5.1. A non-positive
// cfg.OptimizationLevel skips optimizer.Optimize entirely, handing
// lower.ToMIR's output straight to the emitter.
//
// Every diagnostic collected along the way -- whatever p.Parse
// reports, everything the analyzer accumulated even when it ultimately
// failed, and any lowering or emission error -- is combined into one
// returned error via multierr, so a caller sees the complete picture of
// what went wrong instead of only the first failure.
func Compile(p parser.Parser, em emitter.Emitter, cat *catalog.Catalog, cfg *options.Config, filename string, src []byte) (string, error) {
	program, parseDiags := p.Parse(filename, src)
	var errs []error
	for _, d := range parseDiags {
		errs = append(errs, d)
	}
	if program == nil {
		return "", multierr.Combine(errs...)
	}

	a := analyzer.New(cat, cfg.ModelName)
	typed, err := a.Analyze(program)
	for _, d := range a.Diagnostics() {
		errs = append(errs, d)
	}
	if err != nil {
		return "", multierr.Combine(errs...)
	}

	mir, err := lower.ToMIR(typed)
	if err != nil {
		errs = append(errs, err)
		return "", multierr.Combine(errs...)
	}

	optimized := mir
	if cfg.OptimizationLevel > 0 {
		optimized = optimizer.New(cat).Optimize(mir)
	}

	out, err := em.Emit(optimized)
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return out, multierr.Combine(errs...)
	}
	return out, nil
}
