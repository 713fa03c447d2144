package ir

// labelState is the monotonic counter threaded through the labeling
// pass; it is the State of the "traverse_with_state" operation described
// in spec.md §4.4, specialized to the one state shape every caller of
// labeling needs.
type labelState struct {
	next int
}

func (s *labelState) take() int {
	n := s.next
	s.next++
	return n
}

func newMeta(st *labelState, t Typed) Labeled {
	return Labeled{Typed: t, Label: st.take()}
}

// LabelExpr assigns a unique, monotonically increasing label to e and
// every expression reachable from it, in pre-order (spec.md §4.4: "pre-
// order, natural reading order: condition before branches, lower before
// upper, head before tail").
func LabelExpr(e Expr[Typed]) Expr[Labeled] {
	st := &labelState{}
	return labelExpr(st, e)
}

// LabelStmt is LabelExpr's statement-side counterpart.
func LabelStmt(s Stmt[Typed]) Stmt[Labeled] {
	st := &labelState{}
	return labelStmt(st, s)
}

// LabelProgram labels every block of p with one shared counter, so that
// labels are unique across the whole program rather than per block.
func LabelProgram(p *Program[Typed]) *Program[Labeled] {
	st := &labelState{}
	out := &Program[Labeled]{Name: p.Name}
	labelBlock := func(b *Block[Typed]) *Block[Labeled] {
		if b == nil {
			return nil
		}
		return &Block[Labeled]{Stmts: labelStmts(st, b.Stmts)}
	}
	out.Functions = labelBlock(p.Functions)
	out.Data = labelBlock(p.Data)
	out.TransformedData = labelBlock(p.TransformedData)
	out.Parameters = labelBlock(p.Parameters)
	out.TransformedParameters = labelBlock(p.TransformedParameters)
	out.Model = labelBlock(p.Model)
	out.GeneratedQuantities = labelBlock(p.GeneratedQuantities)
	return out
}

func labelExpr(st *labelState, e Expr[Typed]) Expr[Labeled] {
	meta := newMeta(st, e.Meta)
	switch d := e.Data.(type) {
	case Var[Typed]:
		return Expr[Labeled]{Meta: meta, Data: Var[Labeled]{Name: d.Name}}
	case Lit[Typed]:
		return Expr[Labeled]{Meta: meta, Data: Lit[Labeled]{Kind: d.Kind, Text: d.Text}}
	case FunApp[Typed]:
		return Expr[Labeled]{Meta: meta, Data: FunApp[Labeled]{Kind: d.Kind, Name: d.Name, Args: labelExprs(st, d.Args)}}
	case CondDistApp[Typed]:
		return Expr[Labeled]{Meta: meta, Data: CondDistApp[Labeled]{Name: d.Name, Args: labelExprs(st, d.Args)}}
	case TernaryIf[Typed]:
		return Expr[Labeled]{Meta: meta, Data: TernaryIf[Labeled]{
			Cond: labelExpr(st, d.Cond), Then: labelExpr(st, d.Then), Else: labelExpr(st, d.Else),
		}}
	case EAnd[Typed]:
		return Expr[Labeled]{Meta: meta, Data: EAnd[Labeled]{A: labelExpr(st, d.A), B: labelExpr(st, d.B)}}
	case EOr[Typed]:
		return Expr[Labeled]{Meta: meta, Data: EOr[Labeled]{A: labelExpr(st, d.A), B: labelExpr(st, d.B)}}
	case Indexed[Typed]:
		idxs := make([]Index[Labeled], len(d.Indices))
		for i, idx := range d.Indices {
			idxs[i] = labelIndex(st, idx)
		}
		return Expr[Labeled]{Meta: meta, Data: Indexed[Labeled]{Base: labelExpr(st, d.Base), Indices: idxs}}
	default:
		panic("labelExpr: unhandled expression variant")
	}
}

func labelExprs(st *labelState, es []Expr[Typed]) []Expr[Labeled] {
	if es == nil {
		return nil
	}
	out := make([]Expr[Labeled], len(es))
	for i, e := range es {
		out[i] = labelExpr(st, e)
	}
	return out
}

func labelIndex(st *labelState, idx Index[Typed]) Index[Labeled] {
	switch d := idx.Data.(type) {
	case All[Typed]:
		return Index[Labeled]{Data: All[Labeled]{}}
	case Single[Typed]:
		return Index[Labeled]{Data: Single[Labeled]{E: labelExpr(st, d.E)}}
	case Multi[Typed]:
		return Index[Labeled]{Data: Multi[Labeled]{E: labelExpr(st, d.E)}}
	case Upfrom[Typed]:
		return Index[Labeled]{Data: Upfrom[Labeled]{E: labelExpr(st, d.E)}}
	case Downfrom[Typed]:
		return Index[Labeled]{Data: Downfrom[Labeled]{E: labelExpr(st, d.E)}}
	case Between[Typed]:
		return Index[Labeled]{Data: Between[Labeled]{E1: labelExpr(st, d.E1), E2: labelExpr(st, d.E2)}}
	default:
		panic("labelIndex: unhandled index variant")
	}
}

func labelStmt(st *labelState, s Stmt[Typed]) Stmt[Labeled] {
	meta := newMeta(st, s.Meta)
	switch d := s.Data.(type) {
	case Assign[Typed]:
		return Stmt[Labeled]{Meta: meta, Data: Assign[Labeled]{LValue: labelExpr(st, d.LValue), Op: d.Op, Rhs: labelExpr(st, d.Rhs)}}
	case TargetPlusEq[Typed]:
		return Stmt[Labeled]{Meta: meta, Data: TargetPlusEq[Labeled]{E: labelExpr(st, d.E)}}
	case Tilde[Typed]:
		return Stmt[Labeled]{Meta: meta, Data: Tilde[Labeled]{
			Arg: labelExpr(st, d.Arg), Distribution: d.Distribution, Args: labelExprs(st, d.Args),
			Trunc: labelTruncation(st, d.Trunc),
		}}
	case NRFunApp[Typed]:
		return Stmt[Labeled]{Meta: meta, Data: NRFunApp[Labeled]{Kind: d.Kind, Name: d.Name, Args: labelExprs(st, d.Args)}}
	case Break[Typed]:
		return Stmt[Labeled]{Meta: meta, Data: Break[Labeled]{}}
	case Continue[Typed]:
		return Stmt[Labeled]{Meta: meta, Data: Continue[Labeled]{}}
	case Skip[Typed]:
		return Stmt[Labeled]{Meta: meta, Data: Skip[Labeled]{}}
	case Return[Typed]:
		if d.E == nil {
			return Stmt[Labeled]{Meta: meta, Data: Return[Labeled]{}}
		}
		e := labelExpr(st, *d.E)
		return Stmt[Labeled]{Meta: meta, Data: Return[Labeled]{E: &e}}
	case IfElse[Typed]:
		var elseS *Stmt[Labeled]
		cond := labelExpr(st, d.Cond)
		then := labelStmt(st, d.Then)
		if d.Else != nil {
			e := labelStmt(st, *d.Else)
			elseS = &e
		}
		return Stmt[Labeled]{Meta: meta, Data: IfElse[Labeled]{Cond: cond, Then: then, Else: elseS}}
	case While[Typed]:
		return Stmt[Labeled]{Meta: meta, Data: While[Labeled]{Cond: labelExpr(st, d.Cond), Body: labelStmt(st, d.Body)}}
	case For[Typed]:
		return Stmt[Labeled]{Meta: meta, Data: For[Labeled]{
			LoopVar: d.LoopVar, Lower: labelExpr(st, d.Lower), Upper: labelExpr(st, d.Upper), Body: labelStmt(st, d.Body),
		}}
	case ForEach[Typed]:
		return Stmt[Labeled]{Meta: meta, Data: ForEach[Labeled]{LoopVar: d.LoopVar, Seq: labelExpr(st, d.Seq), Body: labelStmt(st, d.Body)}}
	case Block[Typed]:
		return Stmt[Labeled]{Meta: meta, Data: Block[Labeled]{Stmts: labelStmts(st, d.Stmts)}}
	case SList[Typed]:
		return Stmt[Labeled]{Meta: meta, Data: SList[Labeled]{Stmts: labelStmts(st, d.Stmts)}}
	case Decl[Typed]:
		return Stmt[Labeled]{Meta: meta, Data: Decl[Labeled]{Ad: d.Ad, Name: d.Name, Type: labelSizedType(st, d.Type)}}
	case FunDef[Typed]:
		params := make([]FunParam[Labeled], len(d.Params))
		for i, p := range d.Params {
			params[i] = FunParam[Labeled]{Ad: p.Ad, Name: p.Name, Type: labelSizedType(st, p.Type)}
		}
		var body Stmt[Labeled]
		if d.Body.Data != nil {
			body = labelStmt(st, d.Body)
		}
		return Stmt[Labeled]{Meta: meta, Data: FunDef[Labeled]{Rt: d.Rt, Name: d.Name, Params: params, Body: body}}
	default:
		panic("labelStmt: unhandled statement variant")
	}
}

func labelStmts(st *labelState, ss []Stmt[Typed]) []Stmt[Labeled] {
	if ss == nil {
		return nil
	}
	out := make([]Stmt[Labeled], len(ss))
	for i, s := range ss {
		out[i] = labelStmt(st, s)
	}
	return out
}

func labelTruncation(st *labelState, t Truncation[Typed]) Truncation[Labeled] {
	out := Truncation[Labeled]{}
	if t.Lower != nil {
		e := labelExpr(st, *t.Lower)
		out.Lower = &e
	}
	if t.Upper != nil {
		e := labelExpr(st, *t.Upper)
		out.Upper = &e
	}
	return out
}

func labelSizedType(st *labelState, t SizedType[Typed]) SizedType[Labeled] {
	out := SizedType[Labeled]{Kind: t.Kind}
	if t.Elem != nil {
		elem := labelSizedType(st, *t.Elem)
		out.Elem = &elem
	}
	if t.Dims != nil {
		out.Dims = labelExprs(st, t.Dims)
	}
	return out
}

// Associate walks a labeled tree and indexes every labeled subtree by
// its label, per spec.md §4.4.
func Associate(s Stmt[Labeled]) (exprs map[int]Expr[Labeled], stmts map[int]Stmt[Labeled]) {
	exprs = map[int]Expr[Labeled]{}
	stmts = map[int]Stmt[Labeled]{}
	FoldStmt(s, struct{}{},
		func(_ struct{}, e Expr[Labeled]) struct{} {
			exprs[e.Meta.Label] = e
			return struct{}{}
		},
		func(_ struct{}, st Stmt[Labeled]) struct{} {
			stmts[st.Meta.Label] = st
			return struct{}{}
		},
	)
	return exprs, stmts
}

// AssociateProgram is Associate, folded over every block of a labeled
// program.
func AssociateProgram(p *Program[Labeled]) (exprs map[int]Expr[Labeled], stmts map[int]Stmt[Labeled]) {
	exprs = map[int]Expr[Labeled]{}
	stmts = map[int]Stmt[Labeled]{}
	for _, nb := range labeledBlocks(p) {
		for _, s := range nb.Stmts {
			es, ss := Associate(s)
			for k, v := range es {
				exprs[k] = v
			}
			for k, v := range ss {
				stmts[k] = v
			}
		}
	}
	return exprs, stmts
}

func labeledBlocks(p *Program[Labeled]) []*Block[Labeled] {
	all := []*Block[Labeled]{p.Functions, p.Data, p.TransformedData, p.Parameters, p.TransformedParameters, p.Model, p.GeneratedQuantities}
	out := make([]*Block[Labeled], 0, len(all))
	for _, b := range all {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}
