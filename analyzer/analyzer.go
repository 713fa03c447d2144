// Package analyzer implements the semantic analyzer of spec.md §4.5: a
// single pass over a parsed, positioned AST that resolves identifiers
// through a scoped symbol table, infers and checks types against the
// built-in catalog, enforces the block-structured language rules, and
// produces a fully typed AST.
package analyzer

import (
	"github.com/pkg/errors"

	"github.com/statlang/statc/catalog"
	"github.com/statlang/statc/diag"
	"github.com/statlang/statc/ir"
	"github.com/statlang/statc/pos"
	"github.com/statlang/statc/symtab"
	"github.com/statlang/statc/types"
)

// errTypeFailed is returned by every typing helper after it has already
// reported a diagnostic, so callers propagate failure without
// double-reporting (spec.md §7: "the analyzer raises the first it
// encounters and stops the current top-level block").
var errTypeFailed = errors.New("analyzer: type error")

// Analyzer holds the three mutable objects spec.md §5 confines to one
// compilation: the symbol table, the context-flag record, and (via the
// labeling pass run afterwards) the label counter. One Analyzer serves
// exactly one call to Analyze.
type Analyzer struct {
	catalog   *catalog.Catalog
	syms      *symtab.Table
	diags     *diag.Appender
	modelName string
	ctx       ctxFlags
	funSigs   map[string]types.UnsizedType
}

// New returns an analyzer backed by cat, rejecting modelName as an
// identifier per spec.md §4.5.1.
func New(cat *catalog.Catalog, modelName string) *Analyzer {
	return &Analyzer{
		catalog:   cat,
		syms:      symtab.New(),
		diags:     diag.NewAppender(),
		modelName: modelName,
		funSigs:   map[string]types.UnsizedType{},
	}
}

// Diagnostics returns every diagnostic raised during Analyze.
func (a *Analyzer) Diagnostics() []*diag.Diagnostic {
	return a.diags.Diagnostics()
}

// report appends a diagnostic built from kind/span/format to the
// appender every typing helper shares.
func (a *Analyzer) report(kind diag.Kind, span pos.Span, format string, args ...any) {
	a.diags.Append(diag.New(kind, span, format, args...))
}

var blockOrigins = map[string]types.BlockOrigin{
	"functions":              types.Functions,
	"data":                   types.Data,
	"transformed_data":       types.TData,
	"parameters":             types.Param,
	"transformed_parameters": types.TParam,
	"model":                  types.Model,
	"generated_quantities":   types.GQuant,
}

// Analyze walks program block-by-block in the fixed order of spec.md
// §4.5, producing a typed program or the first error encountered.
func (a *Analyzer) Analyze(program *ir.Program[ir.Positioned]) (*ir.Program[ir.Typed], error) {
	out := &ir.Program[ir.Typed]{Name: program.Name}
	for _, nb := range program.Blocks() {
		typed, err := a.analyzeBlock(nb)
		if err != nil {
			return nil, err
		}
		setBlock(out, nb.Name, typed)
	}
	return out, nil
}

func (a *Analyzer) analyzeBlock(nb ir.NamedBlock[ir.Positioned]) (*ir.Block[ir.Typed], error) {
	a.ctx.block = blockOrigins[nb.Name]
	a.diags.Push(nb.Name)
	defer a.diags.Pop()

	if nb.Name == "model" {
		a.syms.BeginScope()
		defer a.syms.EndScope()
	}

	stmts, _, err := a.typeStmts(nb.Block.Stmts)
	if err != nil {
		return nil, err
	}
	return &ir.Block[ir.Typed]{Stmts: stmts}, nil
}

func setBlock(p *ir.Program[ir.Typed], name string, b *ir.Block[ir.Typed]) {
	switch name {
	case "functions":
		p.Functions = b
	case "data":
		p.Data = b
	case "transformed_data":
		p.TransformedData = b
	case "parameters":
		p.Parameters = b
	case "transformed_parameters":
		p.TransformedParameters = b
	case "model":
		p.Model = b
	case "generated_quantities":
		p.GeneratedQuantities = b
	}
}
