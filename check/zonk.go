package check

import (
	"github.com/davecgh/go-spew/spew"
	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/core"
)

// Zonk inlines every solved meta of the current context into t, which
// lives in a context of length depth.
func (tcs *TCS) Zonk(t core.Term, depth DBI) (core.Term, error) {
	switch t := t.(type) {
	case *core.Type, *core.Axiom, *core.Refl:
		return t, nil
	case *core.Meta:
		sol, ok, err := tcs.metaSolution(t.Index, depth)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &MetaUnsolved{Meta: t.Index, Name: tcs.decl}
		}
		elims, err := tcs.zonkElims(t.Elims, depth)
		if err != nil {
			return nil, err
		}
		return tcs.Zonk(core.ApplyElims(sol, elims), depth)
	case *core.Var:
		elims, err := tcs.zonkElims(t.Elims, depth)
		if err != nil {
			return nil, err
		}
		return &core.Var{Index: t.Index, Elims: elims}, nil
	case *core.Redex:
		elims, err := tcs.zonkElims(t.Elims, depth)
		if err != nil {
			return nil, err
		}
		return &core.Redex{Def: t.Def, Name: t.Name, Elims: elims}, nil
	case *core.Data:
		args, err := tcs.zonkTerms(t.Args, depth)
		if err != nil {
			return nil, err
		}
		return &core.Data{Kind: t.Kind, Def: t.Def, Name: t.Name, Args: args}, nil
	case *core.Cons:
		args, err := tcs.zonkTerms(t.Args, depth)
		if err != nil {
			return nil, err
		}
		return &core.Cons{Head: t.Head, Args: args}, nil
	case *core.Pi:
		param, err := tcs.Zonk(t.Param.Type, depth)
		if err != nil {
			return nil, err
		}
		body, err := tcs.Zonk(t.Body.Body, depth+1)
		if err != nil {
			return nil, err
		}
		bind := t.Param
		bind.Type = param
		return core.NewPi(bind, body), nil
	case *core.Id:
		terms, err := tcs.zonkTerms([]core.Term{t.Type, t.LHS, t.RHS}, depth)
		if err != nil {
			return nil, err
		}
		return &core.Id{Type: terms[0], LHS: terms[1], RHS: terms[2]}, nil
	default:
		spew.Dump(t)
		panic("unreachable")
	}
}

func (tcs *TCS) zonkTerms(ts []core.Term, depth DBI) ([]core.Term, error) {
	out := make([]core.Term, len(ts))
	for i, t := range ts {
		z, err := tcs.Zonk(t, depth)
		if err != nil {
			return nil, err
		}
		out[i] = z
	}
	return out, nil
}

func (tcs *TCS) zonkElims(es []core.Elim, depth DBI) ([]core.Elim, error) {
	out := make([]core.Elim, len(es))
	for i, e := range es {
		app, ok := e.(*core.App)
		if !ok {
			out[i] = e
			continue
		}
		arg, err := tcs.Zonk(app.Arg, depth)
		if err != nil {
			return nil, err
		}
		out[i] = &core.App{Arg: arg}
	}
	return out, nil
}

// ZonkTele zonks a telescope whose first binder lives at depth.
func (tcs *TCS) ZonkTele(tele core.Tele, depth DBI) (core.Tele, error) {
	out := make(core.Tele, len(tele))
	for j, b := range tele {
		ty, err := tcs.Zonk(b.Type, depth+DBI(j))
		if err != nil {
			return nil, err
		}
		b.Type = ty
		out[j] = b
	}
	return out, nil
}

func (tcs *TCS) zonkPat(p core.Pat, depth DBI) (core.Pat, error) {
	switch p := p.(type) {
	case *core.PatForced:
		t, err := tcs.Zonk(p.Term, depth)
		if err != nil {
			return nil, err
		}
		return &core.PatForced{Term: t}, nil
	case *core.PatCons:
		args := make([]core.Pat, len(p.Args))
		for i, a := range p.Args {
			z, err := tcs.zonkPat(a, depth)
			if err != nil {
				return nil, err
			}
			args[i] = z
		}
		return &core.PatCons{Head: p.Head, Args: args}, nil
	default:
		return p, nil
	}
}

// ZonkClause zonks the telescope, patterns and body of a clause.
func (tcs *TCS) ZonkClause(c core.Clause) (core.Clause, error) {
	tele, err := tcs.ZonkTele(c.PatTele, 0)
	if err != nil {
		return core.Clause{}, err
	}
	depth := DBI(len(tele))
	pats := make([]core.Copat, len(c.Patterns))
	for i, p := range c.Patterns {
		app, ok := p.(*core.CopatApp)
		if !ok {
			pats[i] = p
			continue
		}
		pat, err := tcs.zonkPat(app.Pat, depth)
		if err != nil {
			return core.Clause{}, err
		}
		pats[i] = &core.CopatApp{Licit: app.Licit, Pat: pat}
	}
	var body core.Term
	if c.Body != nil {
		if body, err = tcs.Zonk(c.Body, depth); err != nil {
			return core.Clause{}, err
		}
	}
	return core.Clause{PatTele: tele, Patterns: pats, Body: body}, nil
}
