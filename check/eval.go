package check

import (
	"github.com/owo-lang/narc/abs"
	"github.com/owo-lang/narc/core"
)

// Eval builds the core term for a piece of abstract syntax without
// checking it. Projections in argument position become projection
// eliminations.
func (tcs *TCS) Eval(a abs.Abs) (core.Term, error) {
	switch a := a.(type) {
	case *abs.Type:
		return core.NewType(a.Level), nil
	case *abs.Pi:
		ty, err := tcs.Eval(a.Bind.Type)
		if err != nil {
			return nil, err
		}
		bind := core.NewBind(a.Bind.Licit, a.Bind.Name, a.Bind.Ident, ty)
		var body core.Term
		err = tcs.Under(core.Tele{bind}, func() (err error) {
			body, err = tcs.Eval(a.Body)
			return err
		})
		if err != nil {
			return nil, err
		}
		return core.NewPi(bind, body), nil
	case *abs.Id:
		ty, err := tcs.Eval(a.Type)
		if err != nil {
			return nil, err
		}
		lhs, err := tcs.Eval(a.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := tcs.Eval(a.RHS)
		if err != nil {
			return nil, err
		}
		return &core.Id{Type: ty, LHS: lhs, RHS: rhs}, nil
	case *abs.Refl:
		return &core.Refl{}, nil
	}
	head, args := abs.AppView(a)
	t, err := tcs.evalHead(head)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return t, nil
	}
	switch t.(type) {
	case *core.Var, *core.Meta, *core.Redex:
	default:
		return nil, &NotHead{Abs: head}
	}
	elims := make([]core.Elim, len(args))
	for i, arg := range args {
		if proj, ok := arg.(*abs.Proj); ok {
			elims[i] = &core.Proj{Field: proj.Ident.Text}
			continue
		}
		argTerm, err := tcs.Eval(arg)
		if err != nil {
			return nil, err
		}
		elims[i] = &core.App{Arg: argTerm}
	}
	return core.ApplyElims(t, elims), nil
}

func (tcs *TCS) evalHead(a abs.Abs) (core.Term, error) {
	switch a := a.(type) {
	case *abs.Var:
		t, _, err := tcs.lookupVar(a)
		return t, err
	case *abs.Meta:
		m := tcs.metaFor(a)
		sol, ok, err := tcs.metaSolution(m.Index, tcs.Depth())
		if err != nil || !ok {
			return m, err
		}
		return sol, nil
	case *abs.Def:
		return core.NewRedex(a.GI, a.Ident), nil
	case *abs.Cons:
		return core.NewRedex(a.GI, a.Ident), nil
	case *abs.Proj:
		return core.NewRedex(a.GI, a.Ident), nil
	default:
		return tcs.Eval(a)
	}
}

// lookupVar resolves a local through the lets first, then Gamma.
func (tcs *TCS) lookupVar(a *abs.Var) (core.Term, core.Term, error) {
	if let, ok := tcs.LetByUID(a.UID); ok {
		return let.Val, let.Type, nil
	}
	if i, bind, ok := tcs.LocalByUID(a.UID); ok {
		return core.NewVar(i), bind.Type, nil
	}
	return nil, nil, textf("Unresolved local `%v` (%v) at %v.", a.Ident.Text, a.UID, a.Ident.Loc)
}
