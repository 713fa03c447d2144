package ir

// MapExpr rebuilds e bottom-up: every child expression and statement is
// mapped first (recursively), then fe is applied to the rebuilt node.
// This is the traversal order the partial evaluator relies on (spec.md
// §4.6: "Children are evaluated first; then the current node is
// considered for rewriting").
func MapExpr[M any](e Expr[M], fe func(Expr[M]) Expr[M], fs func(Stmt[M]) Stmt[M]) Expr[M] {
	mapped := e
	switch d := e.Data.(type) {
	case Var[M], Lit[M]:
		// no children
	case FunApp[M]:
		mapped.Data = FunApp[M]{Kind: d.Kind, Name: d.Name, Args: mapExprs(d.Args, fe, fs)}
	case CondDistApp[M]:
		mapped.Data = CondDistApp[M]{Name: d.Name, Args: mapExprs(d.Args, fe, fs)}
	case TernaryIf[M]:
		mapped.Data = TernaryIf[M]{
			Cond: MapExpr(d.Cond, fe, fs),
			Then: MapExpr(d.Then, fe, fs),
			Else: MapExpr(d.Else, fe, fs),
		}
	case EAnd[M]:
		mapped.Data = EAnd[M]{A: MapExpr(d.A, fe, fs), B: MapExpr(d.B, fe, fs)}
	case EOr[M]:
		mapped.Data = EOr[M]{A: MapExpr(d.A, fe, fs), B: MapExpr(d.B, fe, fs)}
	case Indexed[M]:
		idxs := make([]Index[M], len(d.Indices))
		for i, idx := range d.Indices {
			idxs[i] = mapIndex(idx, fe, fs)
		}
		mapped.Data = Indexed[M]{Base: MapExpr(d.Base, fe, fs), Indices: idxs}
	default:
		panic("MapExpr: unhandled expression variant")
	}
	return fe(mapped)
}

func mapExprs[M any](es []Expr[M], fe func(Expr[M]) Expr[M], fs func(Stmt[M]) Stmt[M]) []Expr[M] {
	if es == nil {
		return nil
	}
	out := make([]Expr[M], len(es))
	for i, e := range es {
		out[i] = MapExpr(e, fe, fs)
	}
	return out
}

func mapIndex[M any](idx Index[M], fe func(Expr[M]) Expr[M], fs func(Stmt[M]) Stmt[M]) Index[M] {
	switch d := idx.Data.(type) {
	case All[M]:
		return idx
	case Single[M]:
		return Index[M]{Data: Single[M]{E: MapExpr(d.E, fe, fs)}}
	case Multi[M]:
		return Index[M]{Data: Multi[M]{E: MapExpr(d.E, fe, fs)}}
	case Upfrom[M]:
		return Index[M]{Data: Upfrom[M]{E: MapExpr(d.E, fe, fs)}}
	case Downfrom[M]:
		return Index[M]{Data: Downfrom[M]{E: MapExpr(d.E, fe, fs)}}
	case Between[M]:
		return Index[M]{Data: Between[M]{E1: MapExpr(d.E1, fe, fs), E2: MapExpr(d.E2, fe, fs)}}
	default:
		panic("mapIndex: unhandled index variant")
	}
}

// MapStmt rebuilds s bottom-up the same way MapExpr does.
func MapStmt[M any](s Stmt[M], fe func(Expr[M]) Expr[M], fs func(Stmt[M]) Stmt[M]) Stmt[M] {
	mapped := s
	switch d := s.Data.(type) {
	case Assign[M]:
		mapped.Data = Assign[M]{LValue: MapExpr(d.LValue, fe, fs), Op: d.Op, Rhs: MapExpr(d.Rhs, fe, fs)}
	case TargetPlusEq[M]:
		mapped.Data = TargetPlusEq[M]{E: MapExpr(d.E, fe, fs)}
	case Tilde[M]:
		mapped.Data = Tilde[M]{
			Arg:          MapExpr(d.Arg, fe, fs),
			Distribution: d.Distribution,
			Args:         mapExprs(d.Args, fe, fs),
			Trunc:        mapTruncation(d.Trunc, fe, fs),
		}
	case NRFunApp[M]:
		mapped.Data = NRFunApp[M]{Kind: d.Kind, Name: d.Name, Args: mapExprs(d.Args, fe, fs)}
	case Break[M], Continue[M], Skip[M]:
		// no children
	case Return[M]:
		if d.E == nil {
			mapped.Data = d
		} else {
			e := MapExpr(*d.E, fe, fs)
			mapped.Data = Return[M]{E: &e}
		}
	case IfElse[M]:
		var elseS *Stmt[M]
		if d.Else != nil {
			e := MapStmt(*d.Else, fe, fs)
			elseS = &e
		}
		mapped.Data = IfElse[M]{Cond: MapExpr(d.Cond, fe, fs), Then: MapStmt(d.Then, fe, fs), Else: elseS}
	case While[M]:
		mapped.Data = While[M]{Cond: MapExpr(d.Cond, fe, fs), Body: MapStmt(d.Body, fe, fs)}
	case For[M]:
		mapped.Data = For[M]{LoopVar: d.LoopVar, Lower: MapExpr(d.Lower, fe, fs), Upper: MapExpr(d.Upper, fe, fs), Body: MapStmt(d.Body, fe, fs)}
	case ForEach[M]:
		mapped.Data = ForEach[M]{LoopVar: d.LoopVar, Seq: MapExpr(d.Seq, fe, fs), Body: MapStmt(d.Body, fe, fs)}
	case Block[M]:
		mapped.Data = Block[M]{Stmts: mapStmts(d.Stmts, fe, fs)}
	case SList[M]:
		mapped.Data = SList[M]{Stmts: mapStmts(d.Stmts, fe, fs)}
	case Decl[M]:
		mapped.Data = Decl[M]{Ad: d.Ad, Name: d.Name, Type: mapSizedType(d.Type, fe, fs)}
	case FunDef[M]:
		params := make([]FunParam[M], len(d.Params))
		for i, p := range d.Params {
			params[i] = FunParam[M]{Ad: p.Ad, Name: p.Name, Type: mapSizedType(p.Type, fe, fs)}
		}
		body := d.Body
		if body.Data != nil {
			body = MapStmt(body, fe, fs)
		}
		mapped.Data = FunDef[M]{Rt: d.Rt, Name: d.Name, Params: params, Body: body}
	default:
		panic("MapStmt: unhandled statement variant")
	}
	return fs(mapped)
}

func mapStmts[M any](ss []Stmt[M], fe func(Expr[M]) Expr[M], fs func(Stmt[M]) Stmt[M]) []Stmt[M] {
	if ss == nil {
		return nil
	}
	out := make([]Stmt[M], len(ss))
	for i, s := range ss {
		out[i] = MapStmt(s, fe, fs)
	}
	return out
}

func mapTruncation[M any](t Truncation[M], fe func(Expr[M]) Expr[M], fs func(Stmt[M]) Stmt[M]) Truncation[M] {
	out := Truncation[M]{}
	if t.Lower != nil {
		e := MapExpr(*t.Lower, fe, fs)
		out.Lower = &e
	}
	if t.Upper != nil {
		e := MapExpr(*t.Upper, fe, fs)
		out.Upper = &e
	}
	return out
}

func mapSizedType[M any](t SizedType[M], fe func(Expr[M]) Expr[M], fs func(Stmt[M]) Stmt[M]) SizedType[M] {
	out := SizedType[M]{Kind: t.Kind}
	if t.Elem != nil {
		elem := mapSizedType(*t.Elem, fe, fs)
		out.Elem = &elem
	}
	if t.Dims != nil {
		out.Dims = mapExprs(t.Dims, fe, fs)
	}
	return out
}

// FoldExpr performs a strict left-to-right, pre-order fold over e and
// every subtree reachable from it (spec.md §4.4: "traversal is strict
// left-to-right and exhaustive; order matters ... and must be stable").
func FoldExpr[M, A any](e Expr[M], init A, fe func(A, Expr[M]) A, fs func(A, Stmt[M]) A) A {
	acc := fe(init, e)
	switch d := e.Data.(type) {
	case Var[M], Lit[M]:
	case FunApp[M]:
		acc = foldExprs(d.Args, acc, fe, fs)
	case CondDistApp[M]:
		acc = foldExprs(d.Args, acc, fe, fs)
	case TernaryIf[M]:
		acc = FoldExpr(d.Cond, acc, fe, fs)
		acc = FoldExpr(d.Then, acc, fe, fs)
		acc = FoldExpr(d.Else, acc, fe, fs)
	case EAnd[M]:
		acc = FoldExpr(d.A, acc, fe, fs)
		acc = FoldExpr(d.B, acc, fe, fs)
	case EOr[M]:
		acc = FoldExpr(d.A, acc, fe, fs)
		acc = FoldExpr(d.B, acc, fe, fs)
	case Indexed[M]:
		acc = FoldExpr(d.Base, acc, fe, fs)
		for _, idx := range d.Indices {
			acc = foldIndex(idx, acc, fe, fs)
		}
	default:
		panic("FoldExpr: unhandled expression variant")
	}
	return acc
}

func foldExprs[M, A any](es []Expr[M], acc A, fe func(A, Expr[M]) A, fs func(A, Stmt[M]) A) A {
	for _, e := range es {
		acc = FoldExpr(e, acc, fe, fs)
	}
	return acc
}

func foldIndex[M, A any](idx Index[M], acc A, fe func(A, Expr[M]) A, fs func(A, Stmt[M]) A) A {
	switch d := idx.Data.(type) {
	case All[M]:
		return acc
	case Single[M]:
		return FoldExpr(d.E, acc, fe, fs)
	case Multi[M]:
		return FoldExpr(d.E, acc, fe, fs)
	case Upfrom[M]:
		return FoldExpr(d.E, acc, fe, fs)
	case Downfrom[M]:
		return FoldExpr(d.E, acc, fe, fs)
	case Between[M]:
		acc = FoldExpr(d.E1, acc, fe, fs)
		return FoldExpr(d.E2, acc, fe, fs)
	default:
		panic("foldIndex: unhandled index variant")
	}
}

// FoldStmt performs the same pre-order left-to-right fold as FoldExpr,
// starting at a statement.
func FoldStmt[M, A any](s Stmt[M], init A, fe func(A, Expr[M]) A, fs func(A, Stmt[M]) A) A {
	acc := fs(init, s)
	switch d := s.Data.(type) {
	case Assign[M]:
		acc = FoldExpr(d.LValue, acc, fe, fs)
		acc = FoldExpr(d.Rhs, acc, fe, fs)
	case TargetPlusEq[M]:
		acc = FoldExpr(d.E, acc, fe, fs)
	case Tilde[M]:
		acc = FoldExpr(d.Arg, acc, fe, fs)
		acc = foldExprs(d.Args, acc, fe, fs)
		if d.Trunc.Lower != nil {
			acc = FoldExpr(*d.Trunc.Lower, acc, fe, fs)
		}
		if d.Trunc.Upper != nil {
			acc = FoldExpr(*d.Trunc.Upper, acc, fe, fs)
		}
	case NRFunApp[M]:
		acc = foldExprs(d.Args, acc, fe, fs)
	case Break[M], Continue[M], Skip[M]:
	case Return[M]:
		if d.E != nil {
			acc = FoldExpr(*d.E, acc, fe, fs)
		}
	case IfElse[M]:
		acc = FoldExpr(d.Cond, acc, fe, fs)
		acc = FoldStmt(d.Then, acc, fe, fs)
		if d.Else != nil {
			acc = FoldStmt(*d.Else, acc, fe, fs)
		}
	case While[M]:
		acc = FoldExpr(d.Cond, acc, fe, fs)
		acc = FoldStmt(d.Body, acc, fe, fs)
	case For[M]:
		acc = FoldExpr(d.Lower, acc, fe, fs)
		acc = FoldExpr(d.Upper, acc, fe, fs)
		acc = FoldStmt(d.Body, acc, fe, fs)
	case ForEach[M]:
		acc = FoldExpr(d.Seq, acc, fe, fs)
		acc = FoldStmt(d.Body, acc, fe, fs)
	case Block[M]:
		for _, child := range d.Stmts {
			acc = FoldStmt(child, acc, fe, fs)
		}
	case SList[M]:
		for _, child := range d.Stmts {
			acc = FoldStmt(child, acc, fe, fs)
		}
	case Decl[M]:
		acc = foldSizedType(d.Type, acc, fe, fs)
	case FunDef[M]:
		for _, p := range d.Params {
			acc = foldSizedType(p.Type, acc, fe, fs)
		}
		if d.Body.Data != nil {
			acc = FoldStmt(d.Body, acc, fe, fs)
		}
	default:
		panic("FoldStmt: unhandled statement variant")
	}
	return acc
}

func foldSizedType[M, A any](t SizedType[M], acc A, fe func(A, Expr[M]) A, fs func(A, Stmt[M]) A) A {
	for _, dim := range t.Dims {
		acc = FoldExpr(dim, acc, fe, fs)
	}
	if t.Elem != nil {
		acc = foldSizedType(*t.Elem, acc, fe, fs)
	}
	return acc
}
