package analyzer

import (
	"github.com/pkg/errors"

	"github.com/statlang/statc/diag"
	"github.com/statlang/statc/ir"
	"github.com/statlang/statc/pos"
	"github.com/statlang/statc/types"
)

// typeIndexed implements spec.md §4.5.4/§4.5.5: type the base and every
// index, reclassify a Single index over an int array as Multi, then
// apply the rank-reduction rules to compute the result type.
func (a *Analyzer) typeIndexed(d ir.Indexed[ir.Positioned], span pos.Span) (ir.Expr[ir.Typed], error) {
	base, err := a.typeExpr(d.Base)
	if err != nil {
		return ir.Expr[ir.Typed]{}, err
	}
	indices := make([]ir.Index[ir.Typed], len(d.Indices))
	singles := make([]bool, len(d.Indices))
	origin := base.Meta.Origin
	ad := base.Meta.Ad
	for i, idx := range d.Indices {
		typedIdx, single, iOrigin, iAd, err := a.typeIndex(idx)
		if err != nil {
			return ir.Expr[ir.Typed]{}, err
		}
		indices[i] = typedIdx
		singles[i] = single
		origin = types.Lub(origin, iOrigin)
		ad = types.LubAd(ad, iAd)
	}
	result, err := reduceRank(base.Meta.Type, singles)
	if err != nil {
		a.report(diag.InvalidIndex, span, "cannot index %s: %v", base.Meta.Type, err)
		return ir.Expr[ir.Typed]{}, errTypeFailed
	}
	meta := ir.Typed{Type: result, Ad: ad, Origin: origin, Span: span}
	return ir.Expr[ir.Typed]{Meta: meta, Data: ir.Indexed[ir.Typed]{Base: base, Indices: indices}}, nil
}

// typeIndex types one index and reports whether it behaves as a Single
// index for rank-reduction purposes. A Single wrapping an expression
// whose type is an int array is reclassified as Multi (spec.md §4.5.4).
func (a *Analyzer) typeIndex(idx ir.Index[ir.Positioned]) (ir.Index[ir.Typed], bool, types.BlockOrigin, types.AdLevel, error) {
	switch d := idx.Data.(type) {
	case ir.All[ir.Positioned]:
		return ir.Index[ir.Typed]{Data: ir.All[ir.Typed]{}}, false, types.Functions, types.DataOnly, nil
	case ir.Single[ir.Positioned]:
		e, err := a.typeExpr(d.E)
		if err != nil {
			return ir.Index[ir.Typed]{}, false, 0, 0, err
		}
		if e.Meta.Type.Kind() == types.ArrayKind && types.ContainsInt(e.Meta.Type) {
			return ir.Index[ir.Typed]{Data: ir.Multi[ir.Typed]{E: e}}, false, e.Meta.Origin, e.Meta.Ad, nil
		}
		if e.Meta.Type.Kind() != types.Int {
			return ir.Index[ir.Typed]{}, false, 0, 0, a.fatalf(e.Meta.Span, "index must be int or int array, got %s", e.Meta.Type)
		}
		return ir.Index[ir.Typed]{Data: ir.Single[ir.Typed]{E: e}}, true, e.Meta.Origin, e.Meta.Ad, nil
	case ir.Multi[ir.Positioned]:
		e, err := a.typeExpr(d.E)
		if err != nil {
			return ir.Index[ir.Typed]{}, false, 0, 0, err
		}
		return ir.Index[ir.Typed]{Data: ir.Multi[ir.Typed]{E: e}}, false, e.Meta.Origin, e.Meta.Ad, nil
	case ir.Upfrom[ir.Positioned]:
		e, err := a.typeExpr(d.E)
		if err != nil {
			return ir.Index[ir.Typed]{}, false, 0, 0, err
		}
		return ir.Index[ir.Typed]{Data: ir.Upfrom[ir.Typed]{E: e}}, false, e.Meta.Origin, e.Meta.Ad, nil
	case ir.Downfrom[ir.Positioned]:
		e, err := a.typeExpr(d.E)
		if err != nil {
			return ir.Index[ir.Typed]{}, false, 0, 0, err
		}
		return ir.Index[ir.Typed]{Data: ir.Downfrom[ir.Typed]{E: e}}, false, e.Meta.Origin, e.Meta.Ad, nil
	case ir.Between[ir.Positioned]:
		e1, err := a.typeExpr(d.E1)
		if err != nil {
			return ir.Index[ir.Typed]{}, false, 0, 0, err
		}
		e2, err := a.typeExpr(d.E2)
		if err != nil {
			return ir.Index[ir.Typed]{}, false, 0, 0, err
		}
		origin := types.Lub(e1.Meta.Origin, e2.Meta.Origin)
		ad := types.LubAd(e1.Meta.Ad, e2.Meta.Ad)
		return ir.Index[ir.Typed]{Data: ir.Between[ir.Typed]{E1: e1, E2: e2}}, false, origin, ad, nil
	default:
		return ir.Index[ir.Typed]{}, false, 0, 0, errors.Errorf("typeIndex: unhandled index variant %T", d)
	}
}

// reduceRank implements spec.md §4.5.5. singles[i] is true when the
// i-th index is a Single (rank-reducing) index; false for All, Multi,
// Upfrom, Downfrom and Between (all rank-preserving).
func reduceRank(base types.UnsizedType, singles []bool) (types.UnsizedType, error) {
	if len(singles) == 0 {
		return base, nil
	}
	if base.Kind() == types.Matrix && len(singles) == 2 && !singles[0] && singles[1] {
		return types.NewVector(), nil
	}
	head, rest := singles[0], singles[1:]
	switch base.Kind() {
	case types.ArrayKind:
		if head {
			return reduceRank(base.Elem(), rest)
		}
		elem, err := reduceRank(base.Elem(), rest)
		if err != nil {
			return types.UnsizedType{}, err
		}
		return types.NewArray(elem), nil
	case types.Vector, types.RowVector:
		if head {
			return reduceRank(types.NewReal(), rest)
		}
		return reduceRank(base, rest)
	case types.Matrix:
		if head {
			return reduceRank(types.NewRowVector(), rest)
		}
		return reduceRank(types.NewMatrix(), rest)
	default:
		return types.UnsizedType{}, errors.Errorf("%s is not indexable", base)
	}
}
