package check

import (
	"fmt"

	"github.com/hashicorp/go-set/v2"
	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/core"
)

// Subtype checks sub <: sup. Universes are cumulative; a Pi is invariant
// in its domain and covariant in its codomain; everything else must be
// convertible.
func (tcs *TCS) Subtype(sub, sup core.Term) error {
	return tcs.judgment(
		func() string { return fmt.Sprintf("Subtyping %v <: %v", sub, sup) },
		func() string { return fmt.Sprintf("%v <: %v", sub, sup) },
		func() error { return tcs.subtype(sub, sup) },
	)
}

func (tcs *TCS) subtype(sub, sup core.Term) error {
	if _, _, ok := tcs.funcCalls(sub, sup); ok {
		return tcs.Unify(sub, sup)
	}
	a, err := tcs.reduce(sub)
	if err != nil {
		return err
	}
	b, err := tcs.reduce(sup)
	if err != nil {
		return err
	}
	switch a := a.(type) {
	case *core.Type:
		if b, ok := b.(*core.Type); ok && a.Level <= b.Level {
			return nil
		}
	case *core.Pi:
		if b, ok := b.(*core.Pi); ok && a.Param.Licit == b.Param.Licit {
			if err := tcs.Unify(a.Param.Type, b.Param.Type); err != nil {
				return err
			}
			return tcs.underBinder(func() error {
				return tcs.Subtype(a.Body.Body, b.Body.Body)
			})
		}
	}
	return tcs.Unify(a, b)
}

// underBinder accounts for one binder crossed by unification.
func (tcs *TCS) underBinder(f func() error) error {
	tcs.UnifyDepth++
	defer func() { tcs.UnifyDepth-- }()
	return f()
}

// Unify is conversion checking. It is nominal: two calls to different
// functions are never equal, even when both would reduce to the same value,
// and two calls to the same function are compared argument by argument.
// Only a call facing something else is reduced.
func (tcs *TCS) Unify(left, right core.Term) error {
	if fa, fb, ok := tcs.funcCalls(left, right); ok {
		if fa.Def != fb.Def {
			return &DifferentName{LHS: fa.Name, RHS: fb.Name}
		}
		if len(fa.Elims) != len(fb.Elims) {
			return &DifferentTerm{LHS: fa, RHS: fb}
		}
		return tcs.unifyElims(fa.Elims, fb.Elims)
	}
	a, err := tcs.reduce(left)
	if err != nil {
		return err
	}
	b, err := tcs.reduce(right)
	if err != nil {
		return err
	}
	ra, aRedex := a.(*core.Redex)
	rb, bRedex := b.(*core.Redex)
	switch {
	case aRedex && bRedex:
		if ra.Def != rb.Def {
			return &DifferentName{LHS: ra.Name, RHS: rb.Name}
		}
		if len(ra.Elims) != len(rb.Elims) {
			return &DifferentTerm{LHS: a, RHS: b}
		}
		return tcs.unifyElims(ra.Elims, rb.Elims)
	case aRedex:
		if m, ok := b.(*core.Meta); ok && len(m.Elims) == 0 {
			return tcs.solveMeta(m.Index, a)
		}
		return &DifferentTerm{LHS: a, RHS: b}
	case bRedex:
		if m, ok := a.(*core.Meta); ok && len(m.Elims) == 0 {
			return tcs.solveMeta(m.Index, b)
		}
		return &DifferentTerm{LHS: a, RHS: b}
	}
	return tcs.UnifyVal(a.(core.Val), b.(core.Val))
}

// funcCalls reports whether both sides are unreduced calls to functions.
func (tcs *TCS) funcCalls(left, right core.Term) (*core.Redex, *core.Redex, bool) {
	ra, ok := left.(*core.Redex)
	if !ok || !tcs.isFunc(ra.Def) {
		return nil, nil, false
	}
	rb, ok := right.(*core.Redex)
	if !ok || !tcs.isFunc(rb.Def) {
		return nil, nil, false
	}
	return ra, rb, true
}

func (tcs *TCS) isFunc(gi GI) bool {
	_, ok := tcs.Def(gi).(*core.FuncDecl)
	return ok
}

func (tcs *TCS) UnifyVal(a, b core.Val) error {
	switch a := a.(type) {
	case *core.Type:
		if b, ok := b.(*core.Type); ok && a.Level == b.Level {
			return nil
		}
	case *core.Data:
		if b, ok := b.(*core.Data); ok && a.Kind == b.Kind {
			if a.Def != b.Def {
				return &DifferentName{LHS: a.Name, RHS: b.Name}
			}
			return tcs.unifyTerms(a.Args, b.Args)
		}
	case *core.Pi:
		if b, ok := b.(*core.Pi); ok && a.Param.Licit == b.Param.Licit {
			if err := tcs.Unify(a.Param.Type, b.Param.Type); err != nil {
				return err
			}
			return tcs.underBinder(func() error {
				return tcs.Unify(a.Body.Body, b.Body.Body)
			})
		}
	case *core.Cons:
		if b, ok := b.(*core.Cons); ok && a.Head.Cons == b.Head.Cons {
			return tcs.unifyTerms(a.Args, b.Args)
		}
	case *core.Axiom:
		if b, ok := b.(*core.Axiom); ok && a.UID == b.UID {
			return nil
		}
	case *core.Var:
		if b, ok := b.(*core.Var); ok && a.Index == b.Index && len(a.Elims) == len(b.Elims) {
			return tcs.unifyElims(a.Elims, b.Elims)
		}
	case *core.Id:
		if b, ok := b.(*core.Id); ok {
			if err := tcs.Unify(a.Type, b.Type); err != nil {
				return err
			}
			if err := tcs.Unify(a.LHS, b.LHS); err != nil {
				return err
			}
			return tcs.Unify(a.RHS, b.RHS)
		}
	case *core.Refl:
		if _, ok := b.(*core.Refl); ok {
			return nil
		}
	}
	return tcs.unifyFlex(a, b)
}

// unifyFlex handles the cases with an unsolved meta on either side.
func (tcs *TCS) unifyFlex(a, b core.Val) error {
	ma, aMeta := a.(*core.Meta)
	mb, bMeta := b.(*core.Meta)
	switch {
	case aMeta && bMeta && ma.Index == mb.Index && len(ma.Elims) == len(mb.Elims):
		return tcs.unifyElims(ma.Elims, mb.Elims)
	case aMeta && len(ma.Elims) == 0:
		return tcs.solveMeta(ma.Index, b)
	case bMeta && len(mb.Elims) == 0:
		return tcs.solveMeta(mb.Index, a)
	case aMeta && bMeta:
		return &FlexFlex{LHS: a, RHS: b}
	case aMeta || bMeta:
		return textf("Cannot solve `%v` = `%v`: the meta is applied to arguments.", a, b)
	default:
		return &DifferentTerm{LHS: a, RHS: b}
	}
}

func (tcs *TCS) unifyTerms(as, bs []core.Term) error {
	if len(as) != len(bs) {
		return textf("Argument counts differ: %v and %v.", as, bs)
	}
	for i := range as {
		if err := tcs.Unify(as[i], bs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (tcs *TCS) unifyElims(as, bs []core.Elim) error {
	for i := range as {
		if err := tcs.unifyElim(as[i], bs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (tcs *TCS) unifyElim(a, b core.Elim) error {
	switch a := a.(type) {
	case *core.App:
		if b, ok := b.(*core.App); ok {
			return tcs.Unify(a.Arg, b.Arg)
		}
	case *core.Proj:
		if b, ok := b.(*core.Proj); ok && a.Field == b.Field {
			return nil
		}
	}
	return &DifferentElim{LHS: a, RHS: b}
}

// ========================

// solveMeta records m := t at the current depth. The occurs check runs
// first, so a failed solve leaves the meta context untouched.
func (tcs *TCS) solveMeta(m MI, t core.Term) error {
	if tcs.occurs(m, t, set.New[MI](0)) {
		return &MetaRecursion{Meta: m, Term: t}
	}
	depth := tcs.Depth()
	tcs.MetaCtx().Solve(m, depth, t)
	tcs.traceSolved("%v := %v (depth %d)", m, t, int(depth))
	return nil
}

// occurs looks for m in t, following the solutions of other metas.
func (tcs *TCS) occurs(m MI, t core.Term, seen *set.Set[MI]) bool {
	ctx := tcs.MetaCtx()
	for _, n := range core.FreeMetas(t).Slice() {
		if n == m {
			return true
		}
		if !seen.Insert(n) {
			continue
		}
		if sol := ctx.Solution(n); sol.Solved && tcs.occurs(m, sol.Val, seen) {
			return true
		}
	}
	return false
}
