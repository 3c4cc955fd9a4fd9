package check

import (
	"errors"

	"github.com/davecgh/go-spew/spew"
	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/core"
)

// Simplify reduces t to weak head normal form. A call that cannot be
// unfolded yet comes back as a *BlockedError.
func (tcs *TCS) Simplify(t core.Term) (core.Val, error) {
	switch t := t.(type) {
	case *core.Meta:
		sol, ok, err := tcs.metaSolution(t.Index, tcs.Depth())
		if err != nil {
			return nil, err
		}
		if !ok {
			return t, nil
		}
		return tcs.Simplify(core.ApplyElims(sol, t.Elims))
	case core.Val:
		return t, nil
	case *core.Redex:
		return tcs.simplifyRedex(t)
	default:
		spew.Dump(t)
		panic("unreachable")
	}
}

// reduce is Simplify for callers that can live with a stuck call: the
// blocked term is returned as it is.
func (tcs *TCS) reduce(t core.Term) (core.Term, error) {
	v, err := tcs.Simplify(t)
	var blocked *BlockedError
	if errors.As(err, &blocked) {
		return blocked.Blocked.Anyway, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// whnf is Simplify for callers that need a value.
func (tcs *TCS) whnf(t core.Term) (core.Val, error) {
	v, err := tcs.Simplify(t)
	var blocked *BlockedError
	if errors.As(err, &blocked) {
		return nil, &CantSimplify{Term: t, Cause: err}
	}
	return v, err
}

// Normalize reduces t, then the subterms of whatever it reduced to. Stuck
// calls stay in place with their arguments normalized.
func (tcs *TCS) Normalize(t core.Term) (core.Term, error) {
	v, err := tcs.reduce(t)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case *core.Cons:
		args, err := tcs.normalizeTerms(v.Args)
		if err != nil {
			return nil, err
		}
		return &core.Cons{Head: v.Head, Args: args}, nil
	case *core.Data:
		args, err := tcs.normalizeTerms(v.Args)
		if err != nil {
			return nil, err
		}
		return &core.Data{Kind: v.Kind, Def: v.Def, Name: v.Name, Args: args}, nil
	case *core.Id:
		parts, err := tcs.normalizeTerms([]core.Term{v.Type, v.LHS, v.RHS})
		if err != nil {
			return nil, err
		}
		return &core.Id{Type: parts[0], LHS: parts[1], RHS: parts[2]}, nil
	case *core.Redex:
		elims := make([]core.Elim, len(v.Elims))
		for i, e := range v.Elims {
			app, ok := e.(*core.App)
			if !ok {
				elims[i] = e
				continue
			}
			arg, err := tcs.Normalize(app.Arg)
			if err != nil {
				return nil, err
			}
			elims[i] = &core.App{Arg: arg}
		}
		return &core.Redex{Def: v.Def, Name: v.Name, Elims: elims}, nil
	}
	return v, nil
}

func (tcs *TCS) normalizeTerms(ts []core.Term) ([]core.Term, error) {
	out := make([]core.Term, len(ts))
	for i, t := range ts {
		n, err := tcs.Normalize(t)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func blockedOn(stuck Stuck, t core.Term) error {
	return &BlockedError{Blocked: Blocked{Stuck: stuck, Anyway: t}}
}

func (tcs *TCS) simplifyRedex(t *core.Redex) (core.Val, error) {
	switch decl := tcs.Def(t.Def).(type) {
	case *core.DataDecl:
		args, err := elimsToTerms(t.Elims)
		if err != nil {
			return nil, err
		}
		return &core.Data{Kind: core.Inductive, Def: t.Def, Name: decl.Name, Args: args}, nil
	case *core.CodataDecl:
		args, err := elimsToTerms(t.Elims)
		if err != nil {
			return nil, err
		}
		return &core.Data{Kind: core.Coinductive, Def: t.Def, Name: decl.Name, Args: args}, nil
	case *core.ConsDecl:
		args, err := elimsToTerms(t.Elims)
		if err != nil {
			return nil, err
		}
		data := tcs.Def(decl.Data).(*core.DataDecl)
		nParams := len(data.Params)
		if len(args) < nParams+len(decl.Params) {
			return nil, blockedOn(Stuck{Kind: UnderApplied}, t)
		}
		Assertf(len(args) == nParams+len(decl.Params), "constructor %v applied to too many arguments", decl.Name)
		head := core.ConHead{Name: decl.Name, Cons: t.Def, Data: decl.Data}
		return &core.Cons{Head: head, Args: args[nParams:]}, nil
	case *core.ProjDecl:
		codata := tcs.Def(decl.Codata).(*core.CodataDecl)
		self := len(codata.Params)
		if len(t.Elims) <= self {
			return nil, blockedOn(Stuck{Kind: UnderApplied}, t)
		}
		app, ok := t.Elims[self].(*core.App)
		if !ok {
			return nil, &NotTerm{Msg: t.Elims[self].String()}
		}
		rest := append([]core.Elim{&core.Proj{Field: decl.Name.Text}}, t.Elims[self+1:]...)
		return tcs.Simplify(core.ApplyElims(app.Arg, rest))
	case *core.FuncDecl:
		return tcs.unfold(t, decl)
	default:
		spew.Dump(decl)
		panic("unreachable")
	}
}

func elimsToTerms(elims []core.Elim) ([]core.Term, error) {
	args := make([]core.Term, len(elims))
	for i, e := range elims {
		app, ok := e.(*core.App)
		if !ok {
			return nil, &NotTerm{Msg: e.String()}
		}
		args[i] = app.Arg
	}
	return args, nil
}

// unfold tries the clauses of fn in order. The first one that matches
// wins; a clause that cannot decide blocks the whole call.
func (tcs *TCS) unfold(t *core.Redex, fn *core.FuncDecl) (core.Val, error) {
	underApplied, absurdOnly := false, len(fn.Clauses) > 0
	for _, cls := range fn.Clauses {
		if cls.IsAbsurd() {
			continue
		}
		absurdOnly = false
		if len(cls.Patterns) > len(t.Elims) {
			underApplied = true
			continue
		}
		m, err := tcs.matchCopats(cls.Patterns, t.Elims[:len(cls.Patterns)])
		if err != nil {
			return nil, err
		}
		switch m.Kind {
		case Yes:
			body := core.Substitute(cls.Body, buildSubst(cls.PatTele, m.Binds))
			return tcs.Simplify(core.ApplyElims(body, t.Elims[len(cls.Patterns):]))
		case Dunno:
			return nil, blockedOn(m.Stuck, t)
		}
	}
	switch {
	case underApplied:
		return nil, blockedOn(Stuck{Kind: UnderApplied}, t)
	case absurdOnly:
		return nil, blockedOn(Stuck{Kind: AbsurdMatch}, t)
	default:
		return nil, blockedOn(Stuck{Kind: MissingClauses}, t)
	}
}

// buildSubst instantiates a clause telescope with what its pattern
// variables matched.
func buildSubst(tele core.Tele, binds map[DBI]core.Term) core.Subst {
	ts := make([]core.Term, len(tele))
	for i := range ts {
		t, ok := binds[DBI(len(ts)-1-i)]
		Assertf(ok, "pattern variable %v of %v is not bound", DBI(len(ts)-1-i), tele)
		ts[i] = t
	}
	return core.Parallel(ts)
}

// ========================

// metaSolution returns the solution of m moved to a context of length
// depth, or false if m is unsolved.
func (tcs *TCS) metaSolution(m MI, depth DBI) (core.Term, bool, error) {
	sol := tcs.MetaCtx().Solution(m)
	if !sol.Solved {
		return nil, false, nil
	}
	if depth >= sol.Depth {
		return core.RaiseTerm(sol.Val, depth-sol.Depth), true, nil
	}
	k := sol.Depth - depth
	if core.Mentions(sol.Val, k) {
		return nil, false, textf("The solution `%v` of %v is used outside of its scope.", sol.Val, m)
	}
	return core.Substitute(sol.Val, core.Lower(k)), true, nil
}
