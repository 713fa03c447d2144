package ir

// EqualExpr reports whether a and b have the same shape and the same
// literal/name/operator content, ignoring metadata at every node (spec.md
// §9: "structural equality modulo metadata"). It is the equality the
// optimizer's specialized rewrites use to test `x == y` subtree patterns
// (spec.md §4.6.2).
func EqualExpr[M any](a, b Expr[M]) bool {
	switch da := a.Data.(type) {
	case Var[M]:
		db, ok := b.Data.(Var[M])
		return ok && da.Name == db.Name
	case Lit[M]:
		db, ok := b.Data.(Lit[M])
		return ok && da.Kind == db.Kind && da.Text == db.Text
	case FunApp[M]:
		db, ok := b.Data.(FunApp[M])
		return ok && da.Kind == db.Kind && da.Name == db.Name && equalExprs(da.Args, db.Args)
	case CondDistApp[M]:
		db, ok := b.Data.(CondDistApp[M])
		return ok && da.Name == db.Name && equalExprs(da.Args, db.Args)
	case TernaryIf[M]:
		db, ok := b.Data.(TernaryIf[M])
		return ok && EqualExpr(da.Cond, db.Cond) && EqualExpr(da.Then, db.Then) && EqualExpr(da.Else, db.Else)
	case EAnd[M]:
		db, ok := b.Data.(EAnd[M])
		return ok && EqualExpr(da.A, db.A) && EqualExpr(da.B, db.B)
	case EOr[M]:
		db, ok := b.Data.(EOr[M])
		return ok && EqualExpr(da.A, db.A) && EqualExpr(da.B, db.B)
	case Indexed[M]:
		db, ok := b.Data.(Indexed[M])
		if !ok || !EqualExpr(da.Base, db.Base) || len(da.Indices) != len(db.Indices) {
			return false
		}
		for i := range da.Indices {
			if !equalIndex(da.Indices[i], db.Indices[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func equalExprs[M any](as, bs []Expr[M]) bool {
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !EqualExpr(as[i], bs[i]) {
			return false
		}
	}
	return true
}

func equalIndex[M any](a, b Index[M]) bool {
	switch da := a.Data.(type) {
	case All[M]:
		_, ok := b.Data.(All[M])
		return ok
	case Single[M]:
		db, ok := b.Data.(Single[M])
		return ok && EqualExpr(da.E, db.E)
	case Multi[M]:
		db, ok := b.Data.(Multi[M])
		return ok && EqualExpr(da.E, db.E)
	case Upfrom[M]:
		db, ok := b.Data.(Upfrom[M])
		return ok && EqualExpr(da.E, db.E)
	case Downfrom[M]:
		db, ok := b.Data.(Downfrom[M])
		return ok && EqualExpr(da.E, db.E)
	case Between[M]:
		db, ok := b.Data.(Between[M])
		return ok && EqualExpr(da.E1, db.E1) && EqualExpr(da.E2, db.E2)
	default:
		return false
	}
}
